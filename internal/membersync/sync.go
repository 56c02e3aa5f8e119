package membersync

import (
	"context"
	"fmt"
	"time"

	"lettergen/internal/batch"
	"lettergen/internal/members"
	"lettergen/internal/members/store"
	"lettergen/internal/shared/metrics"
	"lettergen/internal/shared/telemetry"
)

// Directory exposes the organization's current active member list.
type Directory interface {
	ActiveMembers(ctx context.Context) ([]members.MemberRecord, error)
}

// Service reconciles the directory's active list against the persisted
// member table.
type Service struct {
	Directory Directory
	Store     store.Store
	Window    time.Duration
	Now       func() time.Time
}

// Sync fetches both snapshots, diffs them, and applies every resulting
// upsert concurrently. Per-row failures never block sibling rows; they are
// logged and returned in the outcome, and Sync reports an error so the
// scheduled invocation alarms and re-runs.
func (s *Service) Sync(ctx context.Context) (batch.Outcome, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	active, err := s.Directory.ActiveMembers(ctx)
	if err != nil {
		return batch.Outcome{}, fmt.Errorf("fetch directory members: %w", err)
	}
	// An empty active list means a broken directory read, not an empty
	// organization. Expiring every row on that basis would be destructive.
	if len(active) == 0 {
		return batch.Outcome{}, fmt.Errorf("directory returned no active members")
	}

	persisted, err := s.Store.List(ctx)
	if err != nil {
		return batch.Outcome{}, fmt.Errorf("list persisted members: %w", err)
	}

	ops := members.Diff(active, persisted, now(), s.Window)

	expiring := 0
	for _, op := range ops {
		if !op.Active() {
			expiring++
		}
	}
	telemetry.Info("membersync.diff", map[string]any{
		"active":    len(active),
		"persisted": len(persisted),
		"upserts":   len(ops) - expiring,
		"expiring":  expiring,
	})

	outcome, err := batch.Run(ctx, ops,
		func(op members.Row) string { return op.ResourceKey },
		func(ctx context.Context, op members.Row) error { return s.Store.Put(ctx, op) },
	)
	if err != nil {
		return batch.Outcome{}, err
	}

	metrics.AddMembersUpserted(len(ops) - expiring)
	metrics.AddMembersExpired(expiring)

	if len(outcome.Failed) > 0 {
		return outcome, fmt.Errorf("member sync: %d of %d upserts failed", len(outcome.Failed), len(ops))
	}
	return outcome, nil
}
