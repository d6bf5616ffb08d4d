package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pump-partner/internal/domain/profile"
	"pump-partner/internal/domain/schedule"
	"pump-partner/internal/repository"
)

// ProfileInput is a profile as submitted over the API.
type ProfileInput struct {
	DisplayName    string
	Gym            string
	Split          string
	Goals          []string
	Level          string
	ScheduleBlocks []schedule.BlockInput
}

// CacheInvalidator drops cached scores after a profile write. The redis
// wrapper satisfies it; a nil invalidator is allowed.
type CacheInvalidator interface {
	InvalidateCompatForUser(ctx context.Context, uid string) error
}

type ProfileUsecase interface {
	Save(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Completeness(ctx context.Context, userID uuid.UUID) (schedule.Verdict, error)
}

type Profiles struct {
	repo  repository.ProfileRepository
	cache CacheInvalidator
}

func NewProfileUsecase(repo repository.ProfileRepository, cache CacheInvalidator) *Profiles {
	return &Profiles{repo: repo, cache: cache}
}

// Save validates the submitted schedule, persists the profile, and
// invalidates any cached scores involving this user. An invalid
// schedule surfaces as ErrInvalidSchedule wrapping the verdict message.
func (u *Profiles) Save(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error) {
	if userID == uuid.Nil {
		return profile.Profile{}, ErrUnauthorized
	}

	if v := schedule.ValidateBlocks(in.ScheduleBlocks); !v.Valid {
		return profile.Profile{}, fmt.Errorf("%w: %s", ErrInvalidSchedule, v.Msg)
	}

	p := profile.Profile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Gym:         strings.TrimSpace(in.Gym),
		Split:       strings.TrimSpace(in.Split),
		Goals:       trimAll(in.Goals),
		Level:       profile.ParseLevel(in.Level),
		Blocks:      schedule.ParseBlocks(in.ScheduleBlocks),
	}

	if err := u.repo.Upsert(ctx, p); err != nil {
		return profile.Profile{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.InvalidateCompatForUser(ctx, userID.String())
	}

	saved, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return saved, nil
}

func (u *Profiles) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	if userID == uuid.Nil {
		return profile.Profile{}, ErrUnauthorized
	}
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.Profile{}, ErrProfileMissing
		}
		return profile.Profile{}, ErrInternal
	}
	return p, nil
}

// Completeness runs the long-term matching gate against the stored
// profile. A missing profile is a verdict, not an error: the client
// shows the same "finish your profile" flow either way.
func (u *Profiles) Completeness(ctx context.Context, userID uuid.UUID) (schedule.Verdict, error) {
	if userID == uuid.Nil {
		return schedule.Verdict{}, ErrUnauthorized
	}

	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.ValidateCompleteness(nil), nil
		}
		return schedule.Verdict{}, ErrInternal
	}

	return profile.ValidateCompleteness(completenessInput(p)), nil
}

// completenessInput rebuilds the raw validation record from a stored
// profile, re-serializing blocks so the same checks apply to both entry
// paths.
func completenessInput(p profile.Profile) *profile.CompletenessInput {
	blocks := make([]schedule.BlockInput, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		blocks = append(blocks, schedule.BlockInput{
			Day:   b.Day.String(),
			Start: schedule.FormatClock(b.Start),
			End:   schedule.FormatClock(b.End),
		})
	}
	return &profile.CompletenessInput{
		Gym:            p.Gym,
		Split:          p.Split,
		Goals:          p.Goals,
		Level:          p.Level.String(),
		ScheduleBlocks: blocks,
	}
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
