package application

import "github.com/BrianKimathi/event-booking-api/internal/domain/entity"

// Principal is the authenticated identity handed to the access-control
// layer. NonLocked and Enabled are derived from the account flags at
// load time; a principal is never persisted.
type Principal struct {
	ID          int64
	Email       string
	Authorities []string
	NonLocked   bool
	Enabled     bool
}

// NewPrincipal derives the security view of a user account.
// A suspended account is locked; an account must be active and not
// suspended to be enabled.
func NewPrincipal(u *entity.User) Principal {
	auths := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		auths = append(auths, r.Authority())
	}
	return Principal{
		ID:          u.ID,
		Email:       u.Email,
		Authorities: auths,
		NonLocked:   !u.IsSuspended,
		Enabled:     u.IsActive && !u.IsSuspended,
	}
}

// Usable reports whether the principal may authenticate.
func (p Principal) Usable() bool {
	return p.Enabled && p.NonLocked
}

// HasAuthority reports whether the principal carries the given
// authority string, e.g. "ROLE_ADMIN".
func (p Principal) HasAuthority(a string) bool {
	for _, x := range p.Authorities {
		if x == a {
			return true
		}
	}
	return false
}
