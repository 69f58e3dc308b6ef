package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BrianKimathi/event-booking-api/internal/application"
	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
	"github.com/BrianKimathi/event-booking-api/pkg/validation"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User, defaultRole entity.RoleName) error {
	args := m.Called(ctx, u, defaultRole)
	return args.Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) AssignRole(ctx context.Context, userID int64, name entity.RoleName) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *mockUserRepo) SetCreatorVerification(ctx context.Context, userID int64, status entity.CreatorVerificationStatus, otp string, expiry *time.Time) error {
	args := m.Called(ctx, userID, status, otp, expiry)
	return args.Error(0)
}

type envelope struct {
	Data      map[string]any `json:"data"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

func authRouter(users *mockUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	log := logrus.New()
	log.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("a", "r", "test", time.Hour, 24*time.Hour)
	svc := application.NewAuthService(users, jwt, nil, nil, log)
	h := NewAuthHandler(svc, log)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestRegisterEndpointReturns201WithToken(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User"), entity.RoleUser).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 12 }).
		Return(nil)

	w, env := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/register", gin.H{
		"email":     "new@example.com",
		"password":  "longenough",
		"firstName": "New",
		"lastName":  "User",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "registration successful", env.Message)
	assert.False(t, env.Timestamp.IsZero())
	assert.NotEmpty(t, env.Data["token"])
	assert.Equal(t, "new@example.com", env.Data["email"])
	assert.Equal(t, float64(12), env.Data["userId"])
}

func TestRegisterEndpointAcceptsEmailAndPasswordOnly(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, "a@b.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User"), entity.RoleUser).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.User).ID = 7 }).
		Return(nil)

	w, env := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/register", gin.H{
		"email":    "a@b.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, env.Data["token"])
	assert.Equal(t, float64(7), env.Data["userId"])

	created := users.Calls[1].Arguments.Get(1).(*entity.User)
	assert.Empty(t, created.FirstName)
	assert.Empty(t, created.LastName)
}

func TestRegisterEndpointRejectsDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, "dup@example.com").Return(true, nil)

	w, env := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/register", gin.H{
		"email":     "dup@example.com",
		"password":  "longenough",
		"firstName": "Dup",
		"lastName":  "User",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", env.Message)
	assert.Nil(t, env.Data)
}

func TestRegisterEndpointRejectsShortPasswordWithoutPersistence(t *testing.T) {
	users := new(mockUserRepo)

	w, _ := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/register", gin.H{
		"email":     "short@example.com",
		"password":  "tiny",
		"firstName": "Short",
		"lastName":  "User",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterEndpointReturns500WhenRoleSeedMissing(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything, entity.RoleUser).Return(repository.ErrRoleNotFound)

	w, env := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/register", gin.H{
		"email":     "seed@example.com",
		"password":  "longenough",
		"firstName": "Seed",
		"lastName":  "User",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server configuration error", env.Message)
}

func storedUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{
		ID:       5,
		Email:    "login@example.com",
		Password: hash,
		IsActive: true,
		Roles:    []entity.Role{{Name: entity.RoleUser}},
	}
}

func TestLoginEndpointReturnsTokenPair(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "login@example.com").Return(storedUser(t, "s3cretpass"), nil)

	w, env := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/login", gin.H{
		"email":    "login@example.com",
		"password": "s3cretpass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login successful", env.Message)
	assert.NotEmpty(t, env.Data["token"])
	assert.NotEmpty(t, env.Data["refreshToken"])
	assert.Equal(t, float64(5), env.Data["userId"])
}

func TestLoginEndpointWrongPasswordIsGeneric401(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "login@example.com").Return(storedUser(t, "s3cretpass"), nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	r := authRouter(users)

	wWrong, envWrong := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	wGhost, envGhost := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "s3cretpass",
	})

	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, http.StatusUnauthorized, wGhost.Code)
	assert.Equal(t, "invalid credentials", envWrong.Message)
	assert.Equal(t, envWrong.Message, envGhost.Message)
}

func TestLoginEndpointSuspendedAccountIs400(t *testing.T) {
	u := storedUser(t, "s3cretpass")
	u.IsSuspended = true
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	w, env := doJSON(t, authRouter(users), http.MethodPost, "/api/auth/login", gin.H{
		"email":    u.Email,
		"password": "s3cretpass",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Account is suspended or inactive", env.Message)
}

func TestRefreshEndpointRejectsInvalidToken(t *testing.T) {
	w, env := doJSON(t, authRouter(new(mockUserRepo)), http.MethodPost, "/api/auth/refresh", gin.H{
		"refreshToken": "garbage",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid refresh token", env.Message)
}
