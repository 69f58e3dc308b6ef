package entity

import (
	"time"
)

// CreatorVerificationStatus tracks the lifecycle of a user's request to
// become an event creator.
type CreatorVerificationStatus string

const (
	CreatorNotRequested CreatorVerificationStatus = "NOT_REQUESTED"
	CreatorPending      CreatorVerificationStatus = "PENDING"
	CreatorApproved     CreatorVerificationStatus = "APPROVED"
	CreatorRejected     CreatorVerificationStatus = "REJECTED"
)

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash; the plaintext never crosses the
// registration boundary.
type User struct {
	ID              int64
	Email           string
	Password        string
	FirstName       string
	LastName        string
	Phone           string
	IsEmailVerified bool
	IsActive        bool
	IsSuspended     bool

	CreatorVerificationStatus CreatorVerificationStatus
	CreatorVerificationOTP    string
	OTPExpiryTime             *time.Time

	Roles []Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRole reports whether the user carries the named role assignment.
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
