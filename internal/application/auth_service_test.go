package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access-secret", "refresh-secret", "test", time.Hour, 24*time.Hour)
}

func newAuthService(users *mockUserRepo) *AuthService {
	return NewAuthService(users, testJWT(), nil, nil, testLogger())
}

func TestRegisterCreatesUserWithDefaultRole(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User"), entity.RoleUser).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*entity.User)
			u.ID = 42
		}).
		Return(nil)

	svc := newAuthService(users)
	res, err := svc.Register(context.Background(), RegisterInput{
		Email:     "jane@example.com",
		Password:  "correct-horse",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.UserID)
	assert.Equal(t, "jane@example.com", res.Email)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.RefreshToken)

	// The persisted user carries a bcrypt hash, never the plaintext.
	u := users.Calls[1].Arguments.Get(1).(*entity.User)
	assert.NotEqual(t, "correct-horse", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "correct-horse"))
	assert.True(t, u.IsActive)
	assert.Equal(t, entity.CreatorNotRequested, u.CreatorVerificationStatus)

	users.AssertExpectations(t)
}

func TestRegisterTokenCarriesIdentityClaims(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything, entity.RoleUser).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 7 }).
		Return(nil)

	jwt := testJWT()
	svc := NewAuthService(users, jwt, nil, nil, testLogger())
	res, err := svc.Register(context.Background(), RegisterInput{
		Email:    "claims@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	claims, err := jwt.ParseAccessToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "claims@example.com", claims.Email)
}

func TestRegisterRejectsExistingEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	svc := newAuthService(users)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterConcurrentDuplicateSurfacesAsEmailTaken(t *testing.T) {
	// The pre-check passes but the insert loses the race; the unique
	// constraint verdict must look identical to the pre-check verdict.
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything, entity.RoleUser).Return(repository.ErrDuplicateEmail)

	svc := newAuthService(users)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "race@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterFailsWhenRoleSeedMissing(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything, entity.RoleUser).Return(repository.ErrRoleNotFound)

	svc := newAuthService(users)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, ErrRoleSeedMissing)
}

func activeUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		ID:       5,
		Email:    "active@example.com",
		Password: hash,
		IsActive: true,
		Roles:    []entity.Role{{ID: 1, Name: entity.RoleUser}},
	}
}

func TestLoginSucceeds(t *testing.T) {
	u := activeUser(t, "s3cretpass")
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	svc := newAuthService(users)
	res, err := svc.Login(context.Background(), u.Email, "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.UserID)
	assert.NotEmpty(t, res.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	u := activeUser(t, "s3cretpass")
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	svc := newAuthService(users)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "s3cretpass")
	_, errWrongPw := svc.Login(context.Background(), u.Email, "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	u := activeUser(t, "s3cretpass")
	u.IsSuspended = true
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	svc := newAuthService(users)
	_, err := svc.Login(context.Background(), u.Email, "s3cretpass")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	u := activeUser(t, "s3cretpass")
	u.IsActive = false
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	svc := newAuthService(users)
	_, err := svc.Login(context.Background(), u.Email, "s3cretpass")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginWrongPasswordOnSuspendedAccountStaysGeneric(t *testing.T) {
	// Credentials are checked before account state: a suspended account
	// with a wrong password must not reveal its suspension.
	u := activeUser(t, "s3cretpass")
	u.IsSuspended = true
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	svc := newAuthService(users)
	_, err := svc.Login(context.Background(), u.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginPerformsNoWrites(t *testing.T) {
	u := activeUser(t, "s3cretpass")
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	svc := newAuthService(users)
	_, err := svc.Login(context.Background(), u.Email, "s3cretpass")
	require.NoError(t, err)

	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshRoundTrip(t *testing.T) {
	users := new(mockUserRepo)
	jwt := testJWT()
	svc := NewAuthService(users, jwt, nil, nil, testLogger())

	refresh, _, err := jwt.GenerateRefreshToken(9, "r@example.com")
	require.NoError(t, err)

	res, err := svc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.UserID)
	assert.Equal(t, "r@example.com", res.Email)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc := newAuthService(new(mockUserRepo))
	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
