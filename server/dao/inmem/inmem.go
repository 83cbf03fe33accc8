// Package inmem is a dao.Store that keeps everything in process memory. It is
// lost when the server stops.
package inmem

import (
	"errors"

	"github.com/tracon/scopecmd/server/dao"
)

type store struct {
	seshes *InMemorySessionsRepository
	cmds   *InMemoryCommandsRepository
}

func NewDatastore() dao.Store {
	return &store{
		seshes: NewSessionsRepository(),
		cmds:   NewCommandsRepository(),
	}
}

func (s *store) Sessions() dao.SessionRepository {
	return s.seshes
}

func (s *store) Commands() dao.CommandRepository {
	return s.cmds
}

func (s *store) Close() error {
	return errors.Join(s.seshes.Close(), s.cmds.Close())
}
