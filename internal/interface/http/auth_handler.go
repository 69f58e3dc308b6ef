package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BrianKimathi/event-booking-api/internal/application"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/response"
	"github.com/BrianKimathi/event-booking-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// authPayload is the data object in register/login responses.
type authPayload struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Email        string `json:"email"`
	UserID       int64  `json:"userId"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, application.ErrRoleSeedMissing):
			h.Logger.WithError(err).Error("registration rejected: server misconfiguration")
			response.Error(c, http.StatusInternalServerError, "server configuration error")
		default:
			h.Logger.WithError(err).Error("registration failed")
			response.Error(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, authPayload{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		Email:        res.Email,
		UserID:       res.UserID,
	}, "registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, application.ErrAccountDisabled):
			response.Error(c, http.StatusBadRequest, "Account is suspended or inactive")
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, authPayload{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		Email:        res.Email,
		UserID:       res.UserID,
	}, "login successful")
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	res, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, application.ErrInvalidToken) {
			response.Error(c, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		h.Logger.WithError(err).Error("token refresh failed")
		response.Error(c, http.StatusInternalServerError, "token refresh failed")
		return
	}

	response.Success(c, http.StatusOK, authPayload{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		Email:        res.Email,
		UserID:       res.UserID,
	}, "token refreshed")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("failed to drop session")
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}
