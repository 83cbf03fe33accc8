// Package dao provides data access objects for use in the scopecmd server.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tracon/scopecmd/internal/sim"
)

// Store holds all the repositories.
type Store interface {
	Sessions() SessionRepository
	Commands() CommandRepository
	Close() error
}

// Session is a single running simulation. Its State is replaced every time a
// command line is successfully applied.
type Session struct {
	ID       uuid.UUID
	Scenario string
	State    sim.State
	Created  time.Time
	Modified time.Time
}

// Command is one accepted command line and the readback it produced.
type Command struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Line      string
	Readback  []string
	Created   time.Time
}

type SessionRepository interface {

	// Create creates a new Session. All attributes except for auto-generated
	// fields are taken from the provided Session.
	Create(ctx context.Context, s Session) (Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetAll(ctx context.Context) ([]Session, error)
	Update(ctx context.Context, id uuid.UUID, s Session) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) (Session, error)
	Close() error
}

type CommandRepository interface {

	// Create records a new Command. The ID and Created fields are
	// auto-generated.
	Create(ctx context.Context, c Command) (Command, error)

	// GetAllBySession returns the commands of a session in the order they were
	// created.
	GetAllBySession(ctx context.Context, sessionID uuid.UUID) ([]Command, error)

	// DeleteBySession removes every command of a session and returns how many
	// there were.
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	Close() error
}
