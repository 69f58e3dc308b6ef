package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrianKimathi/event-booking-api/internal/container"
	handlers "github.com/BrianKimathi/event-booking-api/internal/interface/http"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
)

// UserModule wires profile and creator verification routes.
// Protected: GET /api/profile, PUT /api/profile,
// POST /api/creator/verify/init, POST /api/creator/verify/confirm
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)

		// OTP issuance gets its own tight budget
		otpLimiter := middleware.RateLimit(container.GetRedis(), 3, time.Minute, middleware.KeyByUserID(), nil)
		auth.POST("/creator/verify/init", otpLimiter, m.Handler.RequestCreatorVerification)
		auth.POST("/creator/verify/confirm", m.Handler.ConfirmCreatorVerification)
	}
}
