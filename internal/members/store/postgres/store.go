package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"lettergen/internal/members"
	"lettergen/internal/members/store"
)

// PGStore persists member rows in Postgres for deployments without a
// DynamoDB table. There is no native TTL sweep; a scheduled job deletes
// rows whose ttl has passed.
type PGStore struct {
	DB *sql.DB
}

// List returns every persisted USER row.
func (s *PGStore) List(ctx context.Context) ([]members.Row, error) {
	const query = `
SELECT resource_type, resource_key, name, ttl
FROM members
WHERE resource_type = $1`

	rows, err := s.DB.QueryContext(ctx, query, members.ResourceTypeUser)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var out []members.Row
	for rows.Next() {
		var row members.Row
		var ttl sql.NullInt64
		if err := rows.Scan(&row.ResourceType, &row.ResourceKey, &row.Name, &ttl); err != nil {
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		if ttl.Valid {
			v := ttl.Int64
			row.TTL = &v
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return out, nil
}

// Put upserts the row by resource_key, overwriting name and ttl.
func (s *PGStore) Put(ctx context.Context, row members.Row) error {
	const query = `
INSERT INTO members (resource_type, resource_key, name, ttl)
VALUES ($1, $2, $3, $4)
ON CONFLICT (resource_key) DO UPDATE SET
  resource_type = EXCLUDED.resource_type,
  name = EXCLUDED.name,
  ttl = EXCLUDED.ttl`

	var ttl sql.NullInt64
	if row.TTL != nil {
		ttl = sql.NullInt64{Int64: *row.TTL, Valid: true}
	}

	if _, err := s.DB.ExecContext(ctx, query, row.ResourceType, row.ResourceKey, row.Name, ttl); err != nil {
		return fmt.Errorf("upsert member row key=%s: %w", row.ResourceKey, err)
	}
	return nil
}

var _ store.Store = (*PGStore)(nil)
