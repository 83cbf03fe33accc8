// Package scopes has services for running sim sessions on the scopecmd server
// decoupled from the API that accesses it.
package scopes

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tracon/scopecmd/internal/command"
	"github.com/tracon/scopecmd/internal/log"
	"github.com/tracon/scopecmd/internal/scenario"
	"github.com/tracon/scopecmd/server/dao"
	"github.com/tracon/scopecmd/server/serr"
)

// Service is a service for running sim sessions. It performs the actions
// requested and makes calls to server persistence to preserve each session's
// state.
//
// Create one with New; the zero value is not ready to be used.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// Log receives a record of every executed line. It may be nil.
	Log *log.Logger

	// each session is advanced by one line at a time.
	locks sync.Map
}

// Execution is the outcome of one command line run against a session.
type Execution struct {
	Line     string
	Commands []command.Command
	Readback []string

	// Ended is set when the line was QUIT. The session no longer exists.
	Ended bool
}

// New returns a Service that persists to db.
func New(db dao.Store, logger *log.Logger) *Service {
	return &Service{DB: db, Log: logger}
}

func (svc *Service) lock(id uuid.UUID) func() {
	v, _ := svc.locks.LoadOrStore(id, &sync.Mutex{})
	mtx := v.(*sync.Mutex)
	mtx.Lock()
	return mtx.Unlock
}

// CreateSession starts a new session. If scenarioTOML is empty the default
// empty scenario is used; otherwise it must be the text of a DATA scenario
// file.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if the
// scenario is invalid, or serr.ErrDB if it could not be stored.
func (svc *Service) CreateSession(ctx context.Context, scenarioTOML string) (dao.Session, error) {
	scn := scenario.Default()
	if scenarioTOML != "" {
		var err error
		scn, err = scenario.Parse([]byte(scenarioTOML))
		if err != nil {
			return dao.Session{}, serr.New("scenario", err, serr.ErrBadArgument)
		}
	}

	sesh, err := svc.DB.Sessions().Create(ctx, dao.Session{
		Scenario: scn.Name,
		State:    scn.State,
	})
	if err != nil {
		return dao.Session{}, serr.WrapDB("could not create session", err)
	}

	svc.Log.Info("session created", "session", sesh.ID.String(), "scenario", sesh.Scenario)
	return sesh, nil
}

// GetSession returns the session with the given ID.
//
// The returned error, if non-nil, will match serr.ErrNotFound if there is no
// such session, or serr.ErrDB for any other problem with the DB.
func (svc *Service) GetSession(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	sesh, err := svc.DB.Sessions().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Session{}, serr.ErrNotFound
		}
		return dao.Session{}, serr.WrapDB("could not get session", err)
	}
	return sesh, nil
}

// DeleteSession ends the session with the given ID and removes its history.
// The deleted session is returned.
//
// The returned error, if non-nil, will match serr.ErrNotFound if there is no
// such session, or serr.ErrDB for any other problem with the DB.
func (svc *Service) DeleteSession(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	unlock := svc.lock(id)
	defer unlock()

	return svc.deleteSession(ctx, id)
}

func (svc *Service) deleteSession(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	if _, err := svc.DB.Commands().DeleteBySession(ctx, id); err != nil {
		return dao.Session{}, serr.WrapDB("could not delete session history", err)
	}

	sesh, err := svc.DB.Sessions().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Session{}, serr.ErrNotFound
		}
		return dao.Session{}, serr.WrapDB("could not delete session", err)
	}

	svc.locks.Delete(id)
	svc.Log.Info("session deleted", "session", id.String())
	return sesh, nil
}

// ExecuteLine parses line and applies it to the session with the given ID.
// line is usually a string, but any value decoded from a request is accepted
// so that a non-string can be rejected the same way the parser rejects it.
// The new state is persisted and the line is added to the session history.
//
// A line that fails to parse or cannot be carried out changes nothing. The
// returned error then matches serr.ErrRejected, and also matches the
// scoperr sentinel for what went wrong; scoperr.ConsoleMessage gives the text
// to show for it. Otherwise the returned error, if non-nil, will match
// serr.ErrNotFound if there is no such session, or serr.ErrDB.
func (svc *Service) ExecuteLine(ctx context.Context, id uuid.UUID, line any) (Execution, error) {
	cmds, err := command.ParseInput(line)
	if err != nil {
		return Execution{}, serr.Rejected(err)
	}

	ex := Execution{
		Line:     fmt.Sprint(line),
		Commands: cmds,
	}

	unlock := svc.lock(id)
	defer unlock()

	sesh, err := svc.GetSession(ctx, id)
	if err != nil {
		return Execution{}, err
	}

	if len(cmds) == 1 && cmds[0].Name() == command.Quit {
		if _, err := svc.deleteSession(ctx, id); err != nil {
			return Execution{}, err
		}
		ex.Readback = []string{"Goodbye"}
		ex.Ended = true
		return ex, nil
	}

	ex.Readback, err = sesh.State.Advance(cmds)
	if err != nil {
		svc.Log.Debug("line rejected", "session", id.String(), "line", ex.Line, "error", err.Error())
		return Execution{}, serr.Rejected(err)
	}

	if _, err := svc.DB.Sessions().Update(ctx, id, sesh); err != nil {
		return Execution{}, serr.WrapDB("could not save session", err)
	}

	_, err = svc.DB.Commands().Create(ctx, dao.Command{
		SessionID: id,
		Line:      ex.Line,
		Readback:  ex.Readback,
	})
	if err != nil {
		return Execution{}, serr.WrapDB("could not save command", err)
	}

	svc.Log.Info("line executed", "session", id.String(), "line", ex.Line)
	return ex, nil
}

// History returns every line accepted by the session, oldest first.
//
// The returned error, if non-nil, will match serr.ErrNotFound if there is no
// such session, or serr.ErrDB.
func (svc *Service) History(ctx context.Context, id uuid.UUID) ([]dao.Command, error) {
	if _, err := svc.GetSession(ctx, id); err != nil {
		return nil, err
	}

	cmds, err := svc.DB.Commands().GetAllBySession(ctx, id)
	if err != nil {
		return nil, serr.WrapDB("could not get session history", err)
	}
	return cmds, nil
}
