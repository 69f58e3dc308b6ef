package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
	"github.com/BrianKimathi/event-booking-api/pkg/mailer/templates"
)

// Sentinel errors the HTTP layer maps onto status codes and messages.
var (
	// ErrEmailTaken is returned by the registration pre-check and by the
	// unique-constraint verdict alike; the caller cannot tell which
	// fired.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password. Login must not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled is returned for suspended or inactive accounts
	// after the credentials themselves checked out.
	ErrAccountDisabled = errors.New("account is suspended or inactive")

	// ErrRoleSeedMissing means the default role reference data is
	// absent. A deployment problem, surfaced as a server error.
	ErrRoleSeedMissing = errors.New("default role is not seeded")

	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthResult is what a successful register or login hands back to the
// transport layer.
type AuthResult struct {
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       int64
	Email        string
}

// RegisterInput carries validated registration fields. Password is the
// plaintext; it is hashed here and never stored.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthService implements registration, login and token refresh.
type AuthService struct {
	users         repository.UserRepository
	jwt           *helpers.JWTManager
	rdb           *redis.Client
	notifications *NotificationService
	log           *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, notifications *NotificationService, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, rdb: rdb, notifications: notifications, log: log}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("user:session:%d", userID)
}

// Register creates a new account with the default USER role and signs
// the caller in. The email pre-check is a fast path only; the unique
// constraint inside the repository transaction is the final arbiter,
// so a concurrent duplicate still surfaces as ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:                     in.Email,
		Password:                  hash,
		FirstName:                 in.FirstName,
		LastName:                  in.LastName,
		Phone:                     in.Phone,
		IsActive:                  true,
		CreatorVerificationStatus: entity.CreatorNotRequested,
	}
	if err := s.users.Create(ctx, u, entity.RoleUser); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrRoleNotFound):
			s.log.WithError(err).Error("registration failed: role seed data missing")
			return nil, ErrRoleSeedMissing
		default:
			return nil, err
		}
	}

	if s.notifications != nil {
		if _, err := s.notifications.Enqueue(ctx, u.Email, templates.Welcome, map[string]any{
			"Name": u.FirstName,
		}); err != nil {
			s.log.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
		}
	}

	return s.issueTokens(ctx, u.ID, u.Email)
}

// Login authenticates by email and password. The lookup and the bcrypt
// comparison are separate steps, but their failures collapse into one
// indistinguishable ErrInvalidCredentials. Account state is only
// checked after the credentials pass, and a login performs no writes
// to the user row.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	p := NewPrincipal(u)
	if !p.Usable() {
		return nil, ErrAccountDisabled
	}

	return s.issueTokens(ctx, u.ID, u.Email)
}

// Refresh exchanges a valid refresh token for a new token pair. The
// session key in redis must still exist; logout deletes it and kills
// all outstanding refresh tokens at once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if s.rdb != nil {
		if _, err := s.rdb.Get(ctx, sessionKey(claims.UserID)).Result(); err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, ErrInvalidToken
			}
			return nil, err
		}
	}
	return s.issueTokens(ctx, claims.UserID, claims.Email)
}

// Logout drops the redis session, invalidating outstanding refresh
// tokens for the user.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

func (s *AuthService) issueTokens(ctx context.Context, userID int64, email string) (*AuthResult, error) {
	access, exp, err := s.jwt.GenerateAccessToken(userID, email)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.jwt.GenerateRefreshToken(userID, email)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, sessionKey(userID), email, s.jwt.RefreshTTL).Err(); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("failed to store session in redis")
		}
	}

	return &AuthResult{
		Token:        access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
		UserID:       userID,
		Email:        email,
	}, nil
}
