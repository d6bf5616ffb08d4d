package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"pump-partner/internal/delivery/http/dto"
	"pump-partner/internal/delivery/http/middleware"
	"pump-partner/internal/pkg/response"
	"pump-partner/internal/repository"
	"pump-partner/internal/usecase"
)

type PartnerRequestHandler struct {
	uc usecase.PartnerRequestUsecase
}

type createPartnerRequestRequest struct {
	ToUserID uuid.UUID `json:"to_user_id"`
}

func NewPartnerRequestHandler(uc usecase.PartnerRequestUsecase) *PartnerRequestHandler {
	return &PartnerRequestHandler{uc: uc}
}

func (h *PartnerRequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/partner-requests")
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Post("/:request_id/accept", h.Accept)
	grp.Post("/:request_id/decline", h.Decline)
}

func (h *PartnerRequestHandler) Create(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createPartnerRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), userID, req.ToUserID)
	if err != nil {
		return mapPartnerRequestUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, partnerRequestResponse(created))
}

func (h *PartnerRequestHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requests, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapPartnerRequestUsecaseError(err)
	}

	out := make([]dto.PartnerRequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, partnerRequestResponse(req))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *PartnerRequestHandler) Accept(c fiber.Ctx) error {
	return h.respond(c, h.uc.Accept)
}

func (h *PartnerRequestHandler) Decline(c fiber.Ctx) error {
	return h.respond(c, h.uc.Decline)
}

func (h *PartnerRequestHandler) respond(
	c fiber.Ctx,
	fn func(ctx context.Context, requestID, actorID uuid.UUID) (repository.PartnerRequest, error),
) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requestID, err := uuid.Parse(c.Params("request_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	req, err := fn(c.Context(), requestID, userID)
	if err != nil {
		return mapPartnerRequestUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, partnerRequestResponse(req))
}

func partnerRequestResponse(req repository.PartnerRequest) dto.PartnerRequestResponse {
	return dto.PartnerRequestResponse{
		ID:          req.ID,
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		RespondedAt: req.RespondedAt,
	}
}

func mapPartnerRequestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfRequest):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot send a request to yourself", nil, err)
	case errors.Is(err, usecase.ErrProfileMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrIncompleteProfile):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrPartnerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Partner not found", nil, err)
	case errors.Is(err, usecase.ErrDuplicateRequest):
		return middleware.NewAppError(fiber.StatusConflict, "A pending request already exists", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrRequestResponded):
		return middleware.NewAppError(fiber.StatusConflict, "Request already responded", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
