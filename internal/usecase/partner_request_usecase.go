package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pump-partner/internal/domain/profile"
	"pump-partner/internal/notify"
	"pump-partner/internal/repository"
)

// Notifier is the dispatch seam. *notify.Dispatcher satisfies it.
type Notifier interface {
	NotifyPartnerRequest(ctx context.Context, toUID string, opts notify.PartnerRequestOpts) []notify.SendResult
	NotifyMatchAccepted(ctx context.Context, toUID string, opts notify.MatchAcceptedOpts) []notify.SendResult
}

type PartnerRequestUsecase interface {
	Create(ctx context.Context, fromID, toID uuid.UUID) (repository.PartnerRequest, error)
	Accept(ctx context.Context, requestID, actorID uuid.UUID) (repository.PartnerRequest, error)
	Decline(ctx context.Context, requestID, actorID uuid.UUID) (repository.PartnerRequest, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.PartnerRequest, error)
}

type PartnerRequests struct {
	requests repository.PartnerRequestRepository
	profiles repository.ProfileRepository
	notifier Notifier
}

func NewPartnerRequestUsecase(
	requests repository.PartnerRequestRepository,
	profiles repository.ProfileRepository,
	notifier Notifier,
) *PartnerRequests {
	return &PartnerRequests{requests: requests, profiles: profiles, notifier: notifier}
}

// Create opens a pending request and notifies the target. The sender
// must pass the completeness gate before entering long-term matching;
// a duplicate pending request to the same target is a conflict.
func (u *PartnerRequests) Create(ctx context.Context, fromID, toID uuid.UUID) (repository.PartnerRequest, error) {
	if fromID == uuid.Nil {
		return repository.PartnerRequest{}, ErrUnauthorized
	}
	if toID == uuid.Nil || fromID == toID {
		return repository.PartnerRequest{}, ErrSelfRequest
	}

	from, err := u.profiles.GetByUserID(ctx, fromID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.PartnerRequest{}, ErrProfileMissing
		}
		return repository.PartnerRequest{}, ErrInternal
	}
	if v := profile.ValidateCompleteness(completenessInput(from)); !v.Valid {
		return repository.PartnerRequest{}, fmt.Errorf("%w: %s", ErrIncompleteProfile, v.Msg)
	}

	if _, err := u.profiles.GetByUserID(ctx, toID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return repository.PartnerRequest{}, ErrPartnerNotFound
		}
		return repository.PartnerRequest{}, ErrInternal
	}

	exists, err := u.requests.ExistsPending(ctx, fromID, toID)
	if err != nil {
		return repository.PartnerRequest{}, ErrInternal
	}
	if exists {
		return repository.PartnerRequest{}, ErrDuplicateRequest
	}

	req := repository.PartnerRequest{
		ID:         uuid.New(),
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     repository.RequestStatusPending,
	}
	if err := u.requests.Create(ctx, req); err != nil {
		return repository.PartnerRequest{}, ErrInternal
	}

	if u.notifier != nil {
		u.notifier.NotifyPartnerRequest(ctx, toID.String(), notify.PartnerRequestOpts{
			FromName: from.DisplayName,
			Gym:      from.Gym,
		})
	}

	return u.requests.GetByID(ctx, req.ID)
}

// Accept marks the request accepted and notifies the requester. Only
// the recipient may respond, and only once.
func (u *PartnerRequests) Accept(ctx context.Context, requestID, actorID uuid.UUID) (repository.PartnerRequest, error) {
	req, err := u.respond(ctx, requestID, actorID, repository.RequestStatusAccepted)
	if err != nil {
		return repository.PartnerRequest{}, err
	}

	if u.notifier != nil {
		accepterName := actorID.String()
		if p, err := u.profiles.GetByUserID(ctx, actorID); err == nil && p.DisplayName != "" {
			accepterName = p.DisplayName
		}
		u.notifier.NotifyMatchAccepted(ctx, req.FromUserID.String(), notify.MatchAcceptedOpts{
			PartnerName: accepterName,
		})
	}

	return req, nil
}

func (u *PartnerRequests) Decline(ctx context.Context, requestID, actorID uuid.UUID) (repository.PartnerRequest, error) {
	return u.respond(ctx, requestID, actorID, repository.RequestStatusDeclined)
}

func (u *PartnerRequests) ListForUser(ctx context.Context, userID uuid.UUID) ([]repository.PartnerRequest, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.requests.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *PartnerRequests) respond(ctx context.Context, requestID, actorID uuid.UUID, status string) (repository.PartnerRequest, error) {
	if actorID == uuid.Nil {
		return repository.PartnerRequest{}, ErrUnauthorized
	}

	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrPartnerRequestNotFound) {
			return repository.PartnerRequest{}, ErrRequestNotFound
		}
		return repository.PartnerRequest{}, ErrInternal
	}

	if req.ToUserID != actorID {
		return repository.PartnerRequest{}, ErrForbidden
	}
	if req.Status != repository.RequestStatusPending {
		return repository.PartnerRequest{}, ErrRequestResponded
	}

	if err := u.requests.UpdateStatus(ctx, requestID, status); err != nil {
		return repository.PartnerRequest{}, ErrInternal
	}

	return u.requests.GetByID(ctx, requestID)
}
