package api

import (
	"errors"
	"net/http"

	"github.com/tracon/scopecmd/internal/scoperr"
	"github.com/tracon/scopecmd/server/dao"
	"github.com/tracon/scopecmd/server/middle"
	"github.com/tracon/scopecmd/server/result"
	"github.com/tracon/scopecmd/server/serr"
	"github.com/tracon/scopecmd/server/token"
)

// HTTPCreateSession returns a HandlerFunc that starts a new sim session and
// gives back its ID along with the token needed to use it. The request body
// is optional; if given it may hold the text of a scenario file.
func (api API) HTTPCreateSession() http.HandlerFunc {
	return api.Endpoint(api.epCreateSession)
}

func (api API) epCreateSession(req *http.Request) result.Result {
	var body CreateSessionRequest
	if req.ContentLength != 0 {
		if err := parseJSON(req, &body); err != nil {
			return result.BadRequest(err.Error(), err.Error())
		}
	}

	sesh, err := api.Backend.CreateSession(req.Context(), body.Scenario)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret, sesh)
	if err != nil {
		return result.InternalServerError("could not generate token: %s", err.Error())
	}

	resp := CreateSessionResponse{
		ID:    sesh.ID.String(),
		Token: tok,
	}
	return result.Created(resp, "session %s created from scenario %q", sesh.ID, sesh.Scenario)
}

// HTTPGetSession returns a HandlerFunc that gives the current state of a
// session.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session the request was authorized for.
func (api API) HTTPGetSession() http.HandlerFunc {
	return api.Endpoint(api.epGetSession)
}

func (api API) epGetSession(req *http.Request) result.Result {
	id := requireIDParam(req)
	if r, ok := checkSessionAccess(req); !ok {
		return r
	}

	sesh, err := api.Backend.GetSession(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get session: %s", err.Error())
	}

	return result.OK(sessionToModel(sesh), "got session %s", id)
}

// HTTPDeleteSession returns a HandlerFunc that ends a session.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session the request was authorized for.
func (api API) HTTPDeleteSession() http.HandlerFunc {
	return api.Endpoint(api.epDeleteSession)
}

func (api API) epDeleteSession(req *http.Request) result.Result {
	id := requireIDParam(req)
	if r, ok := checkSessionAccess(req); !ok {
		return r
	}

	_, err := api.Backend.DeleteSession(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete session: %s", err.Error())
	}

	return result.NoContent("deleted session %s", id)
}

// HTTPExecuteLine returns a HandlerFunc that runs one console line against a
// session.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session the request was authorized for.
func (api API) HTTPExecuteLine() http.HandlerFunc {
	return api.Endpoint(api.epExecuteLine)
}

func (api API) epExecuteLine(req *http.Request) result.Result {
	id := requireIDParam(req)
	if r, ok := checkSessionAccess(req); !ok {
		return r
	}

	var body ExecuteLineRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	ex, err := api.Backend.ExecuteLine(req.Context(), id, body.Line)
	if err != nil {
		switch {
		case errors.Is(err, scoperr.ErrInputType):
			return result.BadRequest(scoperr.ConsoleMessage(err), err.Error())
		case errors.Is(err, serr.ErrRejected):
			return result.Unprocessable(scoperr.ConsoleMessage(err), err.Error())
		case errors.Is(err, serr.ErrNotFound):
			return result.NotFound()
		default:
			return result.InternalServerError("could not execute line: %s", err.Error())
		}
	}

	resp := ExecuteLineResponse{
		Commands: []CommandModel{},
		Readback: ex.Readback,
		Ended:    ex.Ended,
	}
	for _, c := range ex.Commands {
		resp.Commands = append(resp.Commands, commandToModel(c))
	}

	return result.OK(resp, "session %s executed %q", id, ex.Line)
}

// HTTPGetHistory returns a HandlerFunc that lists every line a session has
// accepted, oldest first.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the session the request was authorized for.
func (api API) HTTPGetHistory() http.HandlerFunc {
	return api.Endpoint(api.epGetHistory)
}

func (api API) epGetHistory(req *http.Request) result.Result {
	id := requireIDParam(req)
	if r, ok := checkSessionAccess(req); !ok {
		return r
	}

	cmds, err := api.Backend.History(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get history: %s", err.Error())
	}

	resp := []HistoryEntryModel{}
	for _, c := range cmds {
		resp = append(resp, historyToModel(c))
	}

	return result.OK(resp, "got %d history entries for session %s", len(resp), id)
}

// checkSessionAccess makes sure the session named in the URI is the one the
// request's token was issued for. If it is not, the Result to send is
// returned with false.
func checkSessionAccess(req *http.Request) (result.Result, bool) {
	id := requireIDParam(req)
	authed := req.Context().Value(middle.AuthSession).(dao.Session)

	if authed.ID != id {
		return result.Forbidden("token for session %s used on session %s", authed.ID, id), false
	}
	return result.Result{}, true
}
