package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/domain/compat"
	"pump-partner/internal/domain/profile"
	"pump-partner/internal/domain/schedule"
	"pump-partner/internal/infrastructure/cache"
	"pump-partner/internal/repository"
)

// ScoreCache holds computed pair scores. The redis wrapper satisfies
// it; a nil cache means every call recomputes.
type ScoreCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type CompatibilityResult struct {
	PartnerID uuid.UUID      `json:"partner_id"`
	Score     int            `json:"score"`
	Factors   compat.Factors `json:"factors"`
	Cached    bool           `json:"cached"`
}

type Suggestion struct {
	PartnerID   uuid.UUID      `json:"partner_id"`
	DisplayName string         `json:"display_name"`
	Gym         string         `json:"gym"`
	Score       int            `json:"score"`
	Factors     compat.Factors `json:"factors"`
}

type MatchUsecase interface {
	Compatibility(ctx context.Context, meID, partnerID uuid.UUID) (CompatibilityResult, error)
	Suggestions(ctx context.Context, meID uuid.UUID, limit int) ([]Suggestion, error)
}

type Matching struct {
	profiles repository.ProfileRepository
	scores   ScoreCache
}

func NewMatchUsecase(profiles repository.ProfileRepository, scores ScoreCache) *Matching {
	return &Matching{profiles: profiles, scores: scores}
}

// Compatibility scores the caller against one partner. The caller's
// profile must pass the completeness gate; the partner's only has to
// exist, since missing partner data degrades to low factor scores.
func (u *Matching) Compatibility(ctx context.Context, meID, partnerID uuid.UUID) (CompatibilityResult, error) {
	if meID == uuid.Nil {
		return CompatibilityResult{}, ErrUnauthorized
	}
	if partnerID == uuid.Nil || meID == partnerID {
		return CompatibilityResult{}, ErrSelfRequest
	}

	me, err := u.profiles.GetByUserID(ctx, meID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return CompatibilityResult{}, ErrProfileMissing
		}
		return CompatibilityResult{}, ErrInternal
	}

	if v := profile.ValidateCompleteness(completenessInput(me)); !v.Valid {
		return CompatibilityResult{}, fmt.Errorf("%w: %s", ErrIncompleteProfile, v.Msg)
	}

	partner, err := u.profiles.GetByUserID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return CompatibilityResult{}, ErrPartnerNotFound
		}
		return CompatibilityResult{}, ErrInternal
	}

	key := cache.CompatKey(meID.String(), partnerID.String())
	if u.scores != nil {
		var cached CompatibilityResult
		if ok, err := u.scores.GetJSON(ctx, key, &cached); err == nil && ok {
			cached.PartnerID = partnerID
			cached.Cached = true
			return cached, nil
		}
	}

	res, err := compat.Calculate(engineProfile(me), engineProfile(partner))
	if err != nil {
		// The uuid guard above should make this unreachable; treat an
		// engine self-match as the same caller bug.
		if errors.Is(err, compat.ErrSelfMatch) {
			return CompatibilityResult{}, ErrSelfRequest
		}
		return CompatibilityResult{}, ErrInternal
	}

	out := CompatibilityResult{PartnerID: partnerID, Score: res.Score, Factors: res.Factors}
	if u.scores != nil {
		_ = u.scores.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

// Suggestions ranks every other complete profile against the caller,
// highest score first.
func (u *Matching) Suggestions(ctx context.Context, meID uuid.UUID, limit int) ([]Suggestion, error) {
	if meID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = 20
	}

	me, err := u.profiles.GetByUserID(ctx, meID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, ErrInternal
	}
	if v := profile.ValidateCompleteness(completenessInput(me)); !v.Valid {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteProfile, v.Msg)
	}

	others, err := u.profiles.ListOthers(ctx, meID)
	if err != nil {
		return nil, ErrInternal
	}

	mine := engineProfile(me)
	out := make([]Suggestion, 0, len(others))
	for _, p := range others {
		if v := profile.ValidateCompleteness(completenessInput(p)); !v.Valid {
			continue
		}
		res, err := compat.Calculate(mine, engineProfile(p))
		if err != nil {
			continue
		}
		out = append(out, Suggestion{
			PartnerID:   p.UserID,
			DisplayName: p.DisplayName,
			Gym:         p.Gym,
			Score:       res.Score,
			Factors:     res.Factors,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// engineProfile maps a stored profile onto the engine's view, expanding
// availability blocks into canonical hour slots.
func engineProfile(p profile.Profile) compat.Profile {
	set := schedule.SlotSet(p.Blocks)
	slots := make([]schedule.Slot, 0, len(set))
	for s := range set {
		slots = append(slots, s)
	}
	return compat.Profile{
		UID:   p.UserID.String(),
		Slots: slots,
		Split: p.Split,
		Goals: p.Goals,
		Level: p.Level,
		Gym:   p.Gym,
	}
}
