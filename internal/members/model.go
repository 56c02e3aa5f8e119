package members

// ResourceTypeUser tags member rows in the resource table.
const ResourceTypeUser = "USER"

// MemberRecord is one active member as reported by the directory.
type MemberRecord struct {
	UserPrincipalName string `json:"userPrincipalName"`
	DisplayName       string `json:"displayName"`
}

// Row is one persisted member. A row with no TTL is active; a row with a
// TTL is retained but marked to lapse after that epoch second.
type Row struct {
	ResourceType string
	ResourceKey  string
	Name         string
	TTL          *int64
}

// Active reports whether the row is not marked to expire.
func (r Row) Active() bool { return r.TTL == nil }
