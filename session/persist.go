package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Persistence.Load] when no record exists yet.
var ErrNotFound = errors.New("persisted session not found")

// Persistence is the durable backend behind a [Store]. Exactly one named
// record is kept: it is overwritten on every mutation and read once at
// startup.
type Persistence interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
