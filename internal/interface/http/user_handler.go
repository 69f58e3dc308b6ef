package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/application"
	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/response"
	"github.com/BrianKimathi/event-booking-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
}

type confirmCreatorRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

func profileView(u *entity.User) gin.H {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r.Name))
	}
	return gin.H{
		"id":              u.ID,
		"email":           u.Email,
		"firstName":       u.FirstName,
		"lastName":        u.LastName,
		"phone":           u.Phone,
		"isEmailVerified": u.IsEmailVerified,
		"isActive":        u.IsActive,
		"roles":           roles,
		"creatorStatus":   u.CreatorVerificationStatus,
		"createdAt":       u.CreatedAt,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).Error("failed to load profile")
		response.Error(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, profileView(u), "profile")
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.WithError(err).Error("failed to update profile")
		response.Error(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, profileView(u), "profile updated")
}

// RequestCreatorVerification starts the creator onboarding flow by
// emailing a one-time code.
func (h *UserHandler) RequestCreatorVerification(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	err := h.Svc.RequestCreatorVerification(c.Request.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyCreator):
			response.Error(c, http.StatusConflict, "account is already a verified creator")
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found")
		default:
			h.Logger.WithError(err).Error("failed to start creator verification")
			response.Error(c, http.StatusInternalServerError, "failed to start creator verification")
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"status": entity.CreatorPending}, "verification code sent")
}

func (h *UserHandler) ConfirmCreatorVerification(c *gin.Context) {
	var req confirmCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	uid := c.GetInt64(middleware.CtxUserIDKey)
	err := h.Svc.ConfirmCreatorVerification(c.Request.Context(), uid, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOTPMismatch):
			response.Error(c, http.StatusBadRequest, "invalid or expired verification code")
		case errors.Is(err, application.ErrAlreadyCreator):
			response.Error(c, http.StatusConflict, "account is already a verified creator")
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found")
		default:
			h.Logger.WithError(err).Error("failed to confirm creator verification")
			response.Error(c, http.StatusInternalServerError, "failed to confirm creator verification")
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"status": entity.CreatorApproved}, "creator verification approved")
}
