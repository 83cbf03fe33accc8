package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tracon/scopecmd/server/dao"
)

func NewSessionsRepository() *InMemorySessionsRepository {
	return &InMemorySessionsRepository{
		seshes: make(map[uuid.UUID]dao.Session),
	}
}

// InMemorySessionsRepository stores sessions in a map. Every session going in
// or out has its State deep-copied so callers never share aircraft with the
// store.
type InMemorySessionsRepository struct {
	mtx    sync.RWMutex
	seshes map[uuid.UUID]dao.Session
}

func (imsr *InMemorySessionsRepository) Close() error {
	return nil
}

func (imsr *InMemorySessionsRepository) Create(ctx context.Context, s dao.Session) (dao.Session, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Session{}, fmt.Errorf("could not generate ID: %w", err)
	}

	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	s.ID = newUUID
	s.Created = time.Now()
	s.Modified = s.Created
	s.State = s.State.Copy()

	imsr.seshes[s.ID] = s

	return copySession(s), nil
}

func (imsr *InMemorySessionsRepository) GetAll(ctx context.Context) ([]dao.Session, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	all := make([]dao.Session, 0, len(imsr.seshes))
	for k := range imsr.seshes {
		all = append(all, copySession(imsr.seshes[k]))
	}

	sort.Slice(all, func(l, r int) bool {
		return all[l].ID.String() < all[r].ID.String()
	})

	return all, nil
}

func (imsr *InMemorySessionsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	imsr.mtx.RLock()
	defer imsr.mtx.RUnlock()

	s, ok := imsr.seshes[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}

	return copySession(s), nil
}

func (imsr *InMemorySessionsRepository) Update(ctx context.Context, id uuid.UUID, s dao.Session) (dao.Session, error) {
	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	existing, ok := imsr.seshes[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}

	if s.ID != id {
		if _, ok := imsr.seshes[s.ID]; ok {
			return dao.Session{}, dao.ErrConstraintViolation
		}
	}

	// deliberately not updating created
	s.Created = existing.Created
	s.Modified = time.Now()
	s.State = s.State.Copy()

	imsr.seshes[s.ID] = s
	if s.ID != id {
		delete(imsr.seshes, id)
	}

	return copySession(s), nil
}

func (imsr *InMemorySessionsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Session, error) {
	imsr.mtx.Lock()
	defer imsr.mtx.Unlock()

	s, ok := imsr.seshes[id]
	if !ok {
		return dao.Session{}, dao.ErrNotFound
	}

	delete(imsr.seshes, s.ID)

	return s, nil
}

func copySession(s dao.Session) dao.Session {
	s.State = s.State.Copy()
	return s
}
