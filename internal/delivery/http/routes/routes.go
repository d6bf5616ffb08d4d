package routes

import (
	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/database"
	"pump-partner/internal/delivery/http/handler"
	v1 "pump-partner/internal/delivery/http/routes/v1"
	"pump-partner/internal/infrastructure/cache"
	"pump-partner/internal/notify"
	"pump-partner/internal/pkg/jwt"
	"pump-partner/internal/repository"
	"pump-partner/internal/usecase"
	"pump-partner/internal/ws"
)

// Deps carries everything the route tree needs, built once in app
// bootstrap.
type Deps struct {
	DB    database.DB
	Redis *cache.Redis
	JWT   jwt.Service

	Auth     usecase.AuthUsecase
	Profiles usecase.ProfileUsecase
	Matching usecase.MatchUsecase
	Requests usecase.PartnerRequestUsecase

	Gyms  repository.GymRepository
	Store notify.Store

	WS *ws.Handler
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(app)

	if deps.WS != nil {
		app.Get("/ws/notifications", deps.WS.HandleNotificationsWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		JWT:      deps.JWT,
		Auth:     deps.Auth,
		Profiles: deps.Profiles,
		Matching: deps.Matching,
		Requests: deps.Requests,
		Gyms:     deps.Gyms,
		Store:    deps.Store,
	})
}
