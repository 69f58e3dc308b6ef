package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrianKimathi/event-booking-api/internal/container"
	"github.com/BrianKimathi/event-booking-api/internal/domain/entity"
	"github.com/BrianKimathi/event-booking-api/internal/domain/repository"
	handlers "github.com/BrianKimathi/event-booking-api/internal/interface/http"
	"github.com/BrianKimathi/event-booking-api/internal/interface/middleware"
	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
)

// EventModule wires event discovery (public) and event management
// (creator-only) routes.
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager, users repository.UserRepository) *EventModule {
	return &EventModule{Handler: h, JWT: jwt, Users: users}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	// Public discovery endpoints
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/events", publicLimiter, m.Handler.ListUpcoming)
	rg.GET("/events/search", publicLimiter, m.Handler.Search)
	rg.GET("/events/:id", publicLimiter, m.Handler.Get)
	rg.GET("/events/:id/ticket-types", publicLimiter, m.Handler.ListTicketTypes)
	rg.GET("/ticket-types", publicLimiter, m.Handler.TicketTypeCatalog)

	// Creator-only management endpoints
	creator := rg.Group("/")
	creator.Use(middleware.Auth(container.GetRedis(), m.JWT))
	creator.Use(middleware.RequireRole(m.Users, entity.RoleCreator))
	creator.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		creator.POST("/events", m.Handler.Create)
		creator.GET("/events/mine", m.Handler.ListMine)
		creator.PUT("/events/:id", m.Handler.Update)
		creator.GET("/events/:id/commission", m.Handler.GetCommission)
		creator.POST("/ticket-types", m.Handler.CreateTicketType)
		creator.POST("/events/:id/publish", m.Handler.Publish)
		creator.POST("/events/:id/cancel", m.Handler.Cancel)
		creator.POST("/events/:id/image", m.Handler.UploadImage)
		creator.POST("/events/:id/ticket-types", m.Handler.AttachTicketType)
	}
}
