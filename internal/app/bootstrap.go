package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/config"
	"pump-partner/internal/database/migration"
	"pump-partner/internal/database/seeder"
	"pump-partner/internal/delivery/http/middleware"
	"pump-partner/internal/delivery/http/routes"
	"pump-partner/internal/notify"
	"pump-partner/internal/pkg/jwt"
	"pump-partner/internal/repository"
	"pump-partner/internal/usecase"
	"pump-partner/internal/ws"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

// Bootstrap wires the whole service: database, migrations, seed data,
// cache, notification plumbing, usecases, and the fiber route tree. The
// returned cleanup closes infrastructure handles.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error { return c.Close() }

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Dir: "migrations"}).Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	if err := (seeder.Runner{Seeders: []seeder.Seeder{seeder.GymsSeeder{}}}).Run(migCtx, c.DB); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}

	logger := log.Default()

	hub := ws.NewHub(logger)
	go hub.Run()

	store := notify.NewMemoryStore()
	dispatcher := notify.NewDispatcher(store, hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	profileRepo := repository.NewPostgresProfileRepository(c.DB)
	requestRepo := repository.NewPostgresPartnerRequestRepository(c.DB)
	gymRepo := repository.NewPostgresGymRepository(c.DB)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	routes.Register(f, routes.Deps{
		DB:    c.DB,
		Redis: c.Redis,
		JWT:   jwtSvc,

		Auth:     usecase.NewAuthUsecase(userRepo, jwtSvc),
		Profiles: usecase.NewProfileUsecase(profileRepo, c.Redis),
		Matching: usecase.NewMatchUsecase(profileRepo, c.Redis),
		Requests: usecase.NewPartnerRequestUsecase(requestRepo, profileRepo, dispatcher),

		Gyms:  gymRepo,
		Store: store,

		WS: ws.NewHandler(hub, logger),
	})

	return &App{Fiber: f, Hub: hub}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
