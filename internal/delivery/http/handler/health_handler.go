package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/database"
	"pump-partner/internal/infrastructure/cache"
	"pump-partner/internal/pkg/response"
)

type HealthHandler struct {
	db    database.DB
	redis *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := fiber.StatusOK
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	// Redis is a bypassable cache; report it but never fail health on it.
	redisStatus := "ok"
	if h.redis == nil || h.redis.Ping(ctx) != nil {
		redisStatus = "bypassed"
	}

	data := map[string]string{
		"database": dbStatus,
		"redis":    redisStatus,
	}
	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
