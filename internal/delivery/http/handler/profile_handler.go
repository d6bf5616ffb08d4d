package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"pump-partner/internal/delivery/http/dto"
	"pump-partner/internal/delivery/http/middleware"
	"pump-partner/internal/domain/profile"
	"pump-partner/internal/domain/schedule"
	"pump-partner/internal/pkg/response"
	"pump-partner/internal/usecase"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type scheduleBlockRequest struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type saveProfileRequest struct {
	DisplayName    string                 `json:"display_name"`
	Gym            string                 `json:"gym"`
	Split          string                 `json:"split"`
	Goals          []string               `json:"goals"`
	Level          string                 `json:"level"`
	ScheduleBlocks []scheduleBlockRequest `json:"schedule_blocks"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/profile")
	grp.Put("/", h.Save)
	grp.Get("/", h.Get)
	grp.Get("/completeness", h.Completeness)
}

func (h *ProfileHandler) Save(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req saveProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	blocks := make([]schedule.BlockInput, 0, len(req.ScheduleBlocks))
	for _, b := range req.ScheduleBlocks {
		blocks = append(blocks, schedule.BlockInput{Day: b.Day, Start: b.Start, End: b.End})
	}

	saved, err := h.uc.Save(c.Context(), userID, usecase.ProfileInput{
		DisplayName:    req.DisplayName,
		Gym:            req.Gym,
		Split:          req.Split,
		Goals:          req.Goals,
		Level:          req.Level,
		ScheduleBlocks: blocks,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(saved))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *ProfileHandler) Completeness(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	v, err := h.uc.Completeness(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	out := dto.CompletenessResponse{Complete: v.Valid}
	if !v.Valid {
		out.Reason = v.Msg
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func profileResponse(p profile.Profile) dto.ProfileResponse {
	blocks := make([]dto.ScheduleBlockResponse, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		blocks = append(blocks, dto.ScheduleBlockResponse{
			Day:   b.Day.String(),
			Start: schedule.FormatClock(b.Start),
			End:   schedule.FormatClock(b.End),
		})
	}
	return dto.ProfileResponse{
		UserID:         p.UserID,
		DisplayName:    p.DisplayName,
		Gym:            p.Gym,
		Split:          p.Split,
		Goals:          p.Goals,
		Level:          p.Level.String(),
		ScheduleBlocks: blocks,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidSchedule):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrProfileMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
