package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"pump-partner/internal/delivery/http/dto"
	"pump-partner/internal/delivery/http/middleware"
	"pump-partner/internal/domain/compat"
	"pump-partner/internal/pkg/response"
	"pump-partner/internal/usecase"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/partners")
	grp.Get("/suggestions", h.Suggestions)
	grp.Get("/:partner_id/compatibility", h.Compatibility)
}

func (h *MatchHandler) Compatibility(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	partnerID, err := uuid.Parse(c.Params("partner_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Compatibility(c.Context(), userID, partnerID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.CompatibilityResponse{
		PartnerID: res.PartnerID,
		Score:     res.Score,
		Factors:   factorsResponse(res.Factors),
		Cached:    res.Cached,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) Suggestions(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := fiber.Query[int](c, "limit")

	suggestions, err := h.uc.Suggestions(c.Context(), userID, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := make([]dto.SuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, dto.SuggestionResponse{
			PartnerID:   s.PartnerID,
			DisplayName: s.DisplayName,
			Gym:         s.Gym,
			Score:       s.Score,
			Factors:     factorsResponse(s.Factors),
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func factorsResponse(f compat.Factors) dto.FactorsResponse {
	return dto.FactorsResponse{
		Schedule: f.Schedule,
		Split:    f.Split,
		Goals:    f.Goals,
		Level:    f.Level,
		Gym:      f.Gym,
	}
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfRequest):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot match against yourself", nil, err)
	case errors.Is(err, usecase.ErrProfileMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrIncompleteProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrPartnerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Partner not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
