package handler

import (
	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/delivery/http/dto"
	"pump-partner/internal/delivery/http/middleware"
	"pump-partner/internal/pkg/response"
	"pump-partner/internal/repository"
)

type GymHandler struct {
	gyms repository.GymRepository
}

func NewGymHandler(gyms repository.GymRepository) *GymHandler {
	return &GymHandler{gyms: gyms}
}

func (h *GymHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/gyms", h.List)
}

// List returns the gym directory, optionally filtered by ?city=.
func (h *GymHandler) List(c fiber.Ctx) error {
	gyms, err := h.gyms.List(c.Context(), fiber.Query[string](c, "city"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.GymResponse, 0, len(gyms))
	for _, g := range gyms {
		out = append(out, dto.GymResponse{
			ID:        g.ID,
			Name:      g.Name,
			City:      g.City,
			URL:       g.URL,
			Source:    g.Source,
			ScrapedAt: g.ScrapedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
