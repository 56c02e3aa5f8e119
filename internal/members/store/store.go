package store

import (
	"context"

	"lettergen/internal/members"
)

// Store persists member rows keyed by resourceKey. Put is an idempotent
// full overwrite; the backends provide last-writer-wins per key, so
// concurrent upserts need no locking here.
type Store interface {
	List(ctx context.Context) ([]members.Row, error)
	Put(ctx context.Context, row members.Row) error
}
