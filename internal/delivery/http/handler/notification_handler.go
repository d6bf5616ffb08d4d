package handler

import (
	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/delivery/http/dto"
	"pump-partner/internal/notify"
	"pump-partner/internal/pkg/response"
)

type NotificationHandler struct {
	store notify.Store
}

func NewNotificationHandler(store notify.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/notifications")
	grp.Get("/delivered", h.Delivered)
	grp.Post("/reset", h.Reset)
}

// Delivered lists every notification dispatched since the last reset,
// oldest first.
func (h *NotificationHandler) Delivered(c fiber.Ctx) error {
	delivered := h.store.Delivered()

	out := make([]dto.NotificationResponse, 0, len(delivered))
	for _, n := range delivered {
		out = append(out, dto.NotificationResponse{
			Recipient: n.Recipient,
			Success:   n.Success,
			Error:     n.Error,
			Payload: dto.NotificationPayloadResponse{
				Title: n.Payload.Title,
				Body:  n.Payload.Body,
				Data:  n.Payload.Data,
			},
			Timestamp: n.Timestamp,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *NotificationHandler) Reset(c fiber.Ctx) error {
	h.store.Reset()
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
