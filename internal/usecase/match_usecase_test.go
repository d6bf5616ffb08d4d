package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/domain/profile"
	"pump-partner/internal/domain/schedule"
	"pump-partner/internal/repository"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]profile.Profile
	err      error
}

func newFakeProfileRepo(ps ...profile.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[uuid.UUID]profile.Profile{}}
	for _, p := range ps {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p profile.Profile) error {
	if r.err != nil {
		return r.err
	}
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	if r.err != nil {
		return profile.Profile{}, r.err
	}
	p, ok := r.profiles[userID]
	if !ok {
		return profile.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) ListOthers(_ context.Context, exclude uuid.UUID) ([]profile.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]profile.Profile, 0, len(r.profiles))
	for id, p := range r.profiles {
		if id != exclude {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeScoreCache struct {
	entries map[string][]byte
}

func newFakeScoreCache() *fakeScoreCache {
	return &fakeScoreCache{entries: map[string][]byte{}}
}

func (c *fakeScoreCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeScoreCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func completeProfile(userID uuid.UUID, name string) profile.Profile {
	return profile.Profile{
		UserID:      userID,
		DisplayName: name,
		Gym:         "City Gym",
		Split:       "Push/Pull/Legs",
		Goals:       []string{"Strength", "Hypertrophy"},
		Level:       profile.LevelIntermediate,
		Blocks: []schedule.Block{
			{Day: schedule.Monday, Start: 18 * 60, End: 20 * 60},
			{Day: schedule.Friday, Start: 18 * 60, End: 19 * 60},
		},
	}
}

func TestMatching_Compatibility_FullAlignment(t *testing.T) {
	meID := uuid.New()
	partnerID := uuid.New()
	repo := newFakeProfileRepo(completeProfile(meID, "Alex"), completeProfile(partnerID, "Jordan"))

	uc := NewMatchUsecase(repo, nil)
	res, err := uc.Compatibility(context.Background(), meID, partnerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 100 {
		t.Fatalf("identical profiles should score 100, got %d", res.Score)
	}
	if res.Cached {
		t.Fatal("first computation must not be cached")
	}
}

func TestMatching_Compatibility_CacheRoundTrip(t *testing.T) {
	meID := uuid.New()
	partnerID := uuid.New()
	repo := newFakeProfileRepo(completeProfile(meID, "Alex"), completeProfile(partnerID, "Jordan"))
	scores := newFakeScoreCache()

	uc := NewMatchUsecase(repo, scores)
	first, err := uc.Compatibility(context.Background(), meID, partnerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second, err := uc.Compatibility(context.Background(), meID, partnerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !second.Cached {
		t.Fatal("second computation should come from cache")
	}
	if second.Score != first.Score {
		t.Fatalf("cached score drifted: %d vs %d", second.Score, first.Score)
	}
}

func TestMatching_Compatibility_SelfTarget(t *testing.T) {
	meID := uuid.New()
	repo := newFakeProfileRepo(completeProfile(meID, "Alex"))

	uc := NewMatchUsecase(repo, nil)
	if _, err := uc.Compatibility(context.Background(), meID, meID); !errors.Is(err, ErrSelfRequest) {
		t.Fatalf("expected ErrSelfRequest, got %v", err)
	}
}

func TestMatching_Compatibility_IncompleteCaller(t *testing.T) {
	meID := uuid.New()
	partnerID := uuid.New()
	me := completeProfile(meID, "Alex")
	me.Split = ""
	repo := newFakeProfileRepo(me, completeProfile(partnerID, "Jordan"))

	uc := NewMatchUsecase(repo, nil)
	_, err := uc.Compatibility(context.Background(), meID, partnerID)
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}

func TestMatching_Compatibility_PartnerNotFound(t *testing.T) {
	meID := uuid.New()
	repo := newFakeProfileRepo(completeProfile(meID, "Alex"))

	uc := NewMatchUsecase(repo, nil)
	if _, err := uc.Compatibility(context.Background(), meID, uuid.New()); !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestMatching_Suggestions_RankedAndFiltered(t *testing.T) {
	meID := uuid.New()
	twinID := uuid.New()
	strangerID := uuid.New()
	incompleteID := uuid.New()

	stranger := completeProfile(strangerID, "Sam")
	stranger.Gym = "Iron Temple"
	stranger.Split = "Full Body"
	stranger.Goals = []string{"Endurance"}
	stranger.Level = profile.LevelBeginner
	stranger.Blocks = []schedule.Block{{Day: schedule.Sunday, Start: 8 * 60, End: 9 * 60}}

	incomplete := completeProfile(incompleteID, "Pat")
	incomplete.Gym = ""

	repo := newFakeProfileRepo(
		completeProfile(meID, "Alex"),
		completeProfile(twinID, "Jordan"),
		stranger,
		incomplete,
	)

	uc := NewMatchUsecase(repo, nil)
	got, err := uc.Suggestions(context.Background(), meID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("incomplete profiles must be skipped; expected 2 suggestions, got %d", len(got))
	}
	if got[0].PartnerID != twinID {
		t.Fatalf("best match should rank first, got %v", got[0].PartnerID)
	}
	if got[0].Score <= got[1].Score {
		t.Fatalf("suggestions not sorted: %d then %d", got[0].Score, got[1].Score)
	}
}

func TestMatching_Suggestions_LimitApplied(t *testing.T) {
	meID := uuid.New()
	profiles := []profile.Profile{completeProfile(meID, "Alex")}
	for i := 0; i < 5; i++ {
		profiles = append(profiles, completeProfile(uuid.New(), "Partner"))
	}
	uc := NewMatchUsecase(newFakeProfileRepo(profiles...), nil)

	got, err := uc.Suggestions(context.Background(), meID, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(got))
	}
}
