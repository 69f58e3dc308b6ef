package repository

import (
	"context"
	"time"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
)

// UserRepository defines the persistence operations for user accounts
// and their role assignments.
type UserRepository interface {
	// Create persists a new user and its default role assignment in a
	// single transaction: neither write is visible unless both succeed.
	// Returns ErrDuplicateEmail on the users.email unique constraint and
	// ErrRoleNotFound when the named role is missing from the seed data.
	Create(ctx context.Context, u *entity.User, defaultRole entity.RoleName) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByEmail returns the user with role assignments loaded.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	UpdateProfile(ctx context.Context, u *entity.User) error

	// AssignRole attaches a role to an existing user; no-op if the
	// (user, role) pair already exists.
	AssignRole(ctx context.Context, userID int64, name entity.RoleName) error

	SetCreatorVerification(ctx context.Context, userID int64, status entity.CreatorVerificationStatus, otp string, expiry *time.Time) error
}

// RoleRepository reads the immutable role reference data.
type RoleRepository interface {
	GetByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)
}
