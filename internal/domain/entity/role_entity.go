package entity

import "time"

// RoleName is a well-known role identifier. Roles are immutable
// reference data seeded before the API accepts registrations.
type RoleName string

const (
	RoleUser    RoleName = "USER"
	RoleAdmin   RoleName = "ADMIN"
	RoleCreator RoleName = "CREATOR"
)

// Role represents an authorization role.
// Many-to-many with User via user_roles.
type Role struct {
	ID          int64
	Name        RoleName
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Authority returns the prefixed authority string exposed to the
// access-control layer, e.g. "ROLE_USER".
func (r Role) Authority() string {
	return "ROLE_" + string(r.Name)
}
