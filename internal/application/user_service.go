package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
	"github.com/BrianKimathi/event-booking-api/pkg/mailer/templates"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrOTPMismatch covers a wrong code and an expired code alike.
	ErrOTPMismatch = errors.New("invalid or expired verification code")

	// ErrAlreadyCreator means the account already holds the CREATOR role.
	ErrAlreadyCreator = errors.New("account is already a verified creator")
)

// UpdateProfileInput carries the mutable profile fields. Zero values
// mean "leave unchanged".
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

// UserService implements profile reads/updates and the creator
// verification flow (OTP request + confirmation).
type UserService struct {
	users         repository.UserRepository
	notifications *NotificationService
	otpExpiry     time.Duration
	log           *logrus.Logger
}

func NewUserService(users repository.UserRepository, notifications *NotificationService, otpExpiry time.Duration, log *logrus.Logger) *UserService {
	return &UserService{users: users, notifications: notifications, otpExpiry: otpExpiry, log: log}
}

// GetProfile returns the user with role assignments loaded.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies the provided fields and returns the fresh user.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// RequestCreatorVerification generates a fresh OTP, marks the account
// PENDING and emails the code. Requesting again replaces any earlier
// code.
func (s *UserService) RequestCreatorVerification(ctx context.Context, userID int64) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if u.HasRole(entity.RoleCreator) {
		return ErrAlreadyCreator
	}

	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.otpExpiry)
	if err := s.users.SetCreatorVerification(ctx, userID, entity.CreatorPending, code, &expiry); err != nil {
		return err
	}

	if s.notifications != nil {
		if _, err := s.notifications.Enqueue(ctx, u.Email, templates.CreatorOTP, map[string]any{
			"OTP":       code,
			"ExpiresIn": s.otpExpiry.String(),
		}); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("failed to enqueue creator OTP email")
		}
	}
	return nil
}

// ConfirmCreatorVerification checks the submitted code against the
// stored one. On success the account is marked APPROVED, the OTP is
// cleared and the CREATOR role is assigned. Wrong and expired codes
// are indistinguishable to the caller.
func (s *UserService) ConfirmCreatorVerification(ctx context.Context, userID int64, code string) error {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if u.HasRole(entity.RoleCreator) {
		return ErrAlreadyCreator
	}
	if u.CreatorVerificationStatus != entity.CreatorPending || u.CreatorVerificationOTP == "" {
		return ErrOTPMismatch
	}
	if u.OTPExpiryTime == nil || time.Now().After(*u.OTPExpiryTime) {
		return ErrOTPMismatch
	}
	if u.CreatorVerificationOTP != code {
		return ErrOTPMismatch
	}

	if err := s.users.SetCreatorVerification(ctx, userID, entity.CreatorApproved, "", nil); err != nil {
		return err
	}
	return s.users.AssignRole(ctx, userID, entity.RoleCreator)
}
