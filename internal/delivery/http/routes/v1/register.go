package v1

import (
	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/delivery/http/handler"
	"pump-partner/internal/delivery/http/middleware"
	"pump-partner/internal/notify"
	"pump-partner/internal/pkg/jwt"
	"pump-partner/internal/repository"
	"pump-partner/internal/usecase"
)

type Deps struct {
	JWT jwt.Service

	Auth     usecase.AuthUsecase
	Profiles usecase.ProfileUsecase
	Matching usecase.MatchUsecase
	Requests usecase.PartnerRequestUsecase

	Gyms  repository.GymRepository
	Store notify.Store
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(deps.JWT)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(deps.Auth).RegisterRoutes(authGroup)

	// The gym directory is public; everything else requires a login.
	handler.NewGymHandler(deps.Gyms).RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	handler.NewProfileHandler(deps.Profiles).RegisterRoutes(protected)
	handler.NewMatchHandler(deps.Matching).RegisterRoutes(protected)
	handler.NewPartnerRequestHandler(deps.Requests).RegisterRoutes(protected)
	handler.NewNotificationHandler(deps.Store).RegisterRoutes(protected)
}
