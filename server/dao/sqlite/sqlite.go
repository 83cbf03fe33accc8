// Package sqlite is a dao.Store backed by a SQLite database file, using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"github.com/tracon/scopecmd/server/dao"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	seshes *SessionsDB
	cmds   *CommandsDB
}

// NewDatastore opens (creating if needed) the database in storageDir and
// makes sure all tables exist.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "data.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	// sqlite allows only one writer; serializing through a single conn avoids
	// SQLITE_BUSY under concurrent requests.
	st.db.SetMaxOpenConns(1)

	if _, err := st.db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		st.db.Close()
		return nil, wrapDBError(err)
	}

	st.seshes = &SessionsDB{db: st.db}
	if err := st.seshes.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("sessions: %w", err)
	}

	st.cmds = &CommandsDB{db: st.db}
	if err := st.cmds.init(true); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("commands: %w", err)
	}

	return st, nil
}

func (s *store) Sessions() dao.SessionRepository {
	return s.seshes
}

func (s *store) Commands() dao.CommandRepository {
	return s.cmds
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

func convertToDB_Binary(b interface{ MarshalBinary() ([]byte, error) }) string {
	return base64.StdEncoding.EncodeToString(rezi.EncBinary(b))
}

func convertFromDB_Binary(s string, target interface{ UnmarshalBinary([]byte) error }) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	_, err = rezi.DecBinary(data, target)
	return err
}

func convertToDB_Strings(sl []string) string {
	data := rezi.EncInt(len(sl))
	for _, s := range sl {
		data = append(data, rezi.EncString(s)...)
	}
	return base64.StdEncoding.EncodeToString(data)
}

func convertFromDB_Strings(s string, target *[]string) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}

	count, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	data = data[n:]

	sl := make([]string, count)
	for i := range sl {
		sl[i], n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		data = data[n:]
	}

	*target = sl
	return nil
}
