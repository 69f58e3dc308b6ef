package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password, first_name, last_name, phone,
		is_email_verified, is_active, is_suspended,
		creator_verification_status, creator_verification_otp, otp_expiry_time,
		created_at, updated_at`

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone,
		&u.IsEmailVerified, &u.IsActive, &u.IsSuspended,
		&u.CreatorVerificationStatus, &u.CreatorVerificationOTP, &u.OTPExpiryTime,
		&u.CreatedAt, &u.UpdatedAt)
}

// Create inserts the user and its default role assignment atomically.
// The users.email unique constraint is the arbiter for concurrent
// registrations; its violation maps to repository.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *entity.User, defaultRole entity.RoleName) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone,
			is_email_verified, is_active, is_suspended, creator_verification_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.FirstName, u.LastName, u.Phone,
		u.IsEmailVerified, u.IsActive, u.IsSuspended, u.CreatorVerificationStatus)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return repository.ErrDuplicateEmail
		}
		return err
	}

	role := &entity.Role{}
	err = tx.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE name = $1
	`, defaultRole).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrRoleNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
	`, u.ID, role.ID); err != nil {
		return err
	}
	u.Roles = []entity.Role{*role}

	return tx.Commit(ctx)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) loadRoles(ctx context.Context, u *entity.User) error {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, r.description, r.created_at, r.updated_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY ur.created_at
	`, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	u.Roles = u.Roles[:0]
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return err
		}
		u.Roles = append(u.Roles, role)
	}
	return rows.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, updated_at = $4
		WHERE id = $5
	`, u.FirstName, u.LastName, u.Phone, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AssignRole(ctx context.Context, userID int64, name entity.RoleName) error {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, name)
	if err != nil {
		return err
	}
	// zero rows means the role name itself is missing, not a conflict
	if res.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, name).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrRoleNotFound
		}
	}
	return nil
}

func (r *UserRepository) SetCreatorVerification(ctx context.Context, userID int64, status entity.CreatorVerificationStatus, otp string, expiry *time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET creator_verification_status = $1, creator_verification_otp = $2,
			otp_expiry_time = $3, updated_at = now()
		WHERE id = $4
	`, status, otp, expiry, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
