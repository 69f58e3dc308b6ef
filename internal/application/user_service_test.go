package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
)

func newUserService(users *mockUserRepo) *UserService {
	return NewUserService(users, nil, 10*time.Minute, testLogger())
}

func pendingCreator(otp string, expiry time.Time) *entity.User {
	return &entity.User{
		ID:                        8,
		Email:                     "c@example.com",
		IsActive:                  true,
		CreatorVerificationStatus: entity.CreatorPending,
		CreatorVerificationOTP:    otp,
		OTPExpiryTime:             &expiry,
		Roles:                     []entity.Role{{Name: entity.RoleUser}},
	}
}

func TestRequestCreatorVerificationStoresPendingOTP(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(8)).Return(&entity.User{
		ID:    8,
		Email: "c@example.com",
		Roles: []entity.Role{{Name: entity.RoleUser}},
	}, nil)
	users.On("SetCreatorVerification", mock.Anything, int64(8), entity.CreatorPending,
		mock.MatchedBy(func(code string) bool { return len(code) == 6 }),
		mock.AnythingOfType("*time.Time")).Return(nil)

	svc := newUserService(users)
	require.NoError(t, svc.RequestCreatorVerification(context.Background(), 8))
	users.AssertExpectations(t)
}

func TestRequestCreatorVerificationRejectsExistingCreator(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(8)).Return(&entity.User{
		ID:    8,
		Roles: []entity.Role{{Name: entity.RoleCreator}},
	}, nil)

	svc := newUserService(users)
	err := svc.RequestCreatorVerification(context.Background(), 8)
	assert.ErrorIs(t, err, ErrAlreadyCreator)
	users.AssertNotCalled(t, "SetCreatorVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmCreatorVerificationApprovesAndAssignsRole(t *testing.T) {
	u := pendingCreator("123456", time.Now().Add(5*time.Minute))
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, u.ID).Return(u, nil)
	users.On("SetCreatorVerification", mock.Anything, u.ID, entity.CreatorApproved, "", (*time.Time)(nil)).Return(nil)
	users.On("AssignRole", mock.Anything, u.ID, entity.RoleCreator).Return(nil)

	svc := newUserService(users)
	require.NoError(t, svc.ConfirmCreatorVerification(context.Background(), u.ID, "123456"))
	users.AssertExpectations(t)
}

func TestConfirmCreatorVerificationRejectsWrongCode(t *testing.T) {
	u := pendingCreator("123456", time.Now().Add(5*time.Minute))
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, u.ID).Return(u, nil)

	svc := newUserService(users)
	err := svc.ConfirmCreatorVerification(context.Background(), u.ID, "654321")
	assert.ErrorIs(t, err, ErrOTPMismatch)
	users.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmCreatorVerificationRejectsExpiredCode(t *testing.T) {
	u := pendingCreator("123456", time.Now().Add(-time.Minute))
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, u.ID).Return(u, nil)

	svc := newUserService(users)
	err := svc.ConfirmCreatorVerification(context.Background(), u.ID, "123456")
	assert.ErrorIs(t, err, ErrOTPMismatch)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	stored := &entity.User{ID: 8, FirstName: "Old", LastName: "Name", Phone: "+15550001111"}
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(8)).Return(stored, nil)
	users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.FirstName == "New" && u.LastName == "Name" && u.Phone == "+15550001111"
	})).Return(nil)

	svc := newUserService(users)
	_, err := svc.UpdateProfile(context.Background(), 8, UpdateProfileInput{FirstName: "New"})
	require.NoError(t, err)
	users.AssertExpectations(t)
}
