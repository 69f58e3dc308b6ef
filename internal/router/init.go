package router

import (
	"github.com/BrianKimathi/event-booking-api/internal/application"
	"github.com/BrianKimathi/event-booking-api/internal/container"
	"github.com/BrianKimathi/event-booking-api/internal/infrastructure/objstore"
	"github.com/BrianKimathi/event-booking-api/internal/infrastructure/postgres"
	"github.com/BrianKimathi/event-booking-api/internal/infrastructure/search"
	handlers "github.com/BrianKimathi/event-booking-api/internal/interface/http"
	"github.com/BrianKimathi/event-booking-api/internal/router/modules"
)

// InitModules builds all repositories, services and handlers from the
// container singletons and registers the feature modules.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := postgres.NewUserRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	ticketRepo := postgres.NewTicketTypeRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	emailRepo := postgres.NewEmailRepository(pool)

	notifications := application.NewNotificationService(emailRepo, container.GetRabbitPub(), log)

	authSvc := application.NewAuthService(userRepo, jwt, container.GetRedis(), notifications, log)
	userSvc := application.NewUserService(userRepo, notifications, cfg.OTPExpiry, log)

	indexer := search.NewEventIndex(container.GetES(), cfg.ESEventsIndex)
	images := objstore.NewGCSImageStore(container.GetGCS(), cfg.GCSBucket)
	eventSvc := application.NewEventService(eventRepo, ticketRepo, indexer, images, log)

	purchaseSvc := application.NewPurchaseService(purchaseRepo, eventRepo, ticketRepo, userRepo, notifications, cfg.DefaultCurrency, log)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, log), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, log), jwt))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, log), jwt, userRepo))
	r.Add(modules.NewPurchaseModule(handlers.NewPurchaseHandler(purchaseSvc, log), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
