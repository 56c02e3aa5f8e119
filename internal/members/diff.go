package members

import "time"

// DefaultExpiryWindow is how long a row stays after its member leaves the
// directory. The window tolerates a transiently incomplete directory read:
// a member that reappears before the sweep gets its TTL cleared by the
// next upsert.
const DefaultExpiryWindow = 7 * 24 * time.Hour

// Diff computes the idempotent upsert set that reconciles the persisted
// rows with the directory's active list.
//
// Every active member yields an upsert with no TTL, even when an identical
// row already exists. Every persisted row whose key matches no active
// member yields the same row with ttl = now + window. Keys are compared
// exactly, with no case folding. No row is ever deleted here; expiry is
// advisory metadata for a downstream sweep. A key can appear in at most
// one returned operation.
func Diff(active []MemberRecord, persisted []Row, now time.Time, window time.Duration) []Row {
	if window <= 0 {
		window = DefaultExpiryWindow
	}
	expiry := now.Round(time.Second).Unix() + int64(window/time.Second)

	activeKeys := make(map[string]struct{}, len(active))
	ops := make([]Row, 0, len(active))
	for _, m := range active {
		if _, ok := activeKeys[m.UserPrincipalName]; ok {
			continue
		}
		activeKeys[m.UserPrincipalName] = struct{}{}
		ops = append(ops, Row{
			ResourceType: ResourceTypeUser,
			ResourceKey:  m.UserPrincipalName,
			Name:         m.DisplayName,
		})
	}

	for _, row := range persisted {
		if _, ok := activeKeys[row.ResourceKey]; ok {
			continue
		}
		ttl := expiry
		ops = append(ops, Row{
			ResourceType: ResourceTypeUser,
			ResourceKey:  row.ResourceKey,
			Name:         row.Name,
			TTL:          &ttl,
		})
	}

	return ops
}
