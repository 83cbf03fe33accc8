package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tracon/scopecmd/server/dao"
)

func NewCommandsRepository() *InMemoryCommandsRepository {
	return &InMemoryCommandsRepository{
		bySessionIndex: make(map[uuid.UUID][]dao.Command),
	}
}

type InMemoryCommandsRepository struct {
	mtx            sync.RWMutex
	bySessionIndex map[uuid.UUID][]dao.Command
}

func (imcr *InMemoryCommandsRepository) Close() error {
	return nil
}

func (imcr *InMemoryCommandsRepository) Create(ctx context.Context, c dao.Command) (dao.Command, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Command{}, fmt.Errorf("could not generate ID: %w", err)
	}

	c.ID = newUUID
	c.Created = time.Now()
	c.Readback = append([]string(nil), c.Readback...)

	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	imcr.bySessionIndex[c.SessionID] = append(imcr.bySessionIndex[c.SessionID], c)

	return c, nil
}

func (imcr *InMemoryCommandsRepository) GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]dao.Command, error) {
	imcr.mtx.RLock()
	defer imcr.mtx.RUnlock()

	cmds := imcr.bySessionIndex[sessionID]
	all := make([]dao.Command, len(cmds))
	copy(all, cmds)

	return all, nil
}

func (imcr *InMemoryCommandsRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	count := len(imcr.bySessionIndex[sessionID])
	delete(imcr.bySessionIndex, sessionID)

	return count, nil
}
