package memory

import (
	"context"
	"sort"
	"sync"

	"lettergen/internal/members"
	"lettergen/internal/members/store"
)

// Store keeps member rows in memory for dev runs and tests.
type Store struct {
	mu   sync.RWMutex
	rows map[string]members.Row
}

// New creates an empty in-memory member store.
func New() *Store {
	return &Store{rows: make(map[string]members.Row)}
}

// List returns the rows sorted by resource key for stable output.
func (s *Store) List(ctx context.Context) ([]members.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]members.Row, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResourceKey < out[j].ResourceKey })
	return out, nil
}

// Put overwrites the row for its resource key.
func (s *Store) Put(ctx context.Context, row members.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[row.ResourceKey] = row
	return nil
}

var _ store.Store = (*Store)(nil)
