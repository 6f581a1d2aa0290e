package storage

import (
	"context"
	"errors"

	"github.com/retail-kit/backoffice-console/internal/domain"
)

// ErrNotFound indicates no persisted session exists.
var ErrNotFound = errors.New("no persisted session")

// Record holds the two durable slots: the opaque credential and the
// serialized operator profile. The slots are always written and cleared
// together; a backend must never leave one without the other.
type Record struct {
	Token   string             `json:"token"`
	Profile domain.UserProfile `json:"profile"`
}

// Store is the durable credential store surviving console restarts.
type Store interface {
	// Save persists both slots atomically, replacing any previous record.
	Save(ctx context.Context, rec Record) error
	// Load returns the persisted record, or ErrNotFound when absent.
	Load(ctx context.Context) (*Record, error)
	// Clear removes both slots. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
