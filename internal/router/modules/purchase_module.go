package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrianKimathi/event-booking-api/internal/container"
	handlers "github.com/BrianKimathi/event-booking-api/internal/interface/http"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
)

// PurchaseModule wires ticket purchase and payment recording routes.
// All endpoints require an authenticated user.
type PurchaseModule struct {
	Handler *handlers.PurchaseHandler
	JWT     *helpers.JWTManager
}

func NewPurchaseModule(h *handlers.PurchaseHandler, jwt *helpers.JWTManager) *PurchaseModule {
	return &PurchaseModule{Handler: h, JWT: jwt}
}

func (m *PurchaseModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/purchases", m.Handler.Purchase)
		auth.GET("/purchases", m.Handler.ListMine)
		auth.GET("/purchases/:code", m.Handler.GetByCode)
		auth.POST("/purchases/:code/payment", m.Handler.RecordPayment)
	}
}
