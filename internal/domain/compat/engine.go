package compat

import (
	"errors"
	"math"
	"strings"

	"pump-partner/internal/domain/profile"
	"pump-partner/internal/domain/schedule"
)

// Profile is the engine's view of a user: identity plus the five scored
// dimensions. Slots are the canonical hour-slot expansion of the user's
// availability blocks.
type Profile struct {
	UID   string
	Slots []schedule.Slot
	Split string
	Goals []string
	Level profile.Level
	Gym   string
}

// ErrSelfMatch is returned when both sides carry the same non-empty UID.
// It signals a caller bug, not bad user data.
var ErrSelfMatch = errors.New("cannot calculate compatibility with self-match")

// Factor weights. They sum to 1.0: schedule and training style dominate
// because they are the strongest predictors of a workable long-term
// partnership; gym is a minor tiebreaker since cross-gym partnerships
// are still viable.
const (
	weightSchedule = 0.40
	weightSplit    = 0.30
	weightGoals    = 0.15
	weightLevel    = 0.10
	weightGym      = 0.05
)

// Factors holds each sub-score normalized to [0,1], before weighting.
type Factors struct {
	Schedule float64
	Split    float64
	Goals    float64
	Level    float64
	Gym      float64
}

// Result is a final 0–100 score plus its per-factor breakdown.
type Result struct {
	Score   int
	Factors Factors
}

// Calculate scores two profiles for long-term partner compatibility.
// Every sub-score degrades to 0 on missing data; the only rejected
// input is a self-match.
func Calculate(me, partner Profile) (Result, error) {
	if me.UID != "" && partner.UID != "" && me.UID == partner.UID {
		return Result{}, ErrSelfMatch
	}

	f := Factors{
		Schedule: scoreScheduleOverlap(me.Slots, partner.Slots),
		Split:    scoreWorkoutSplit(me.Split, partner.Split),
		Goals:    scoreGoals(me.Goals, partner.Goals),
		Level:    scoreLevel(me.Level, partner.Level),
		Gym:      scoreGym(me.Gym, partner.Gym),
	}

	weighted := f.Schedule*weightSchedule +
		f.Split*weightSplit +
		f.Goals*weightGoals +
		f.Level*weightLevel +
		f.Gym*weightGym

	score := int(math.Round(weighted * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Result{Score: score, Factors: f}, nil
}

// scoreScheduleOverlap treats each side's slots as a set and normalizes
// the intersection by the larger set, so listing a single slot cannot
// game the factor.
func scoreScheduleOverlap(a, b []schedule.Slot) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[schedule.Slot]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[schedule.Slot]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	if denom == 0 {
		return 0
	}
	return float64(intersection) / float64(denom)
}

// strengthSplits is the family of strength-style splits that earn
// partial credit against each other.
var strengthSplits = []string{"push/pull/legs", "upper/lower", "ppl", "upperlower"}

func scoreWorkoutSplit(a, b string) float64 {
	splitA := normalize(a)
	splitB := normalize(b)

	if splitA == "" || splitB == "" {
		return 0
	}
	if splitA == splitB {
		return 1
	}
	if inStrengthFamily(splitA) && inStrengthFamily(splitB) {
		return 0.6
	}
	return 0.2
}

func inStrengthFamily(split string) bool {
	for _, s := range strengthSplits {
		if strings.Contains(split, s) {
			return true
		}
	}
	return false
}

// scoreGoals is set Jaccard similarity over normalized goal labels.
func scoreGoals(a, b []string) float64 {
	goalsA := normalizeSet(a)
	goalsB := normalizeSet(b)

	if len(goalsA) == 0 || len(goalsB) == 0 {
		return 0
	}

	intersection := 0
	union := len(goalsB)
	for g := range goalsA {
		if _, ok := goalsB[g]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func scoreLevel(a, b profile.Level) float64 {
	ordA := a.Ordinal()
	ordB := b.Ordinal()
	if ordA < 0 || ordB < 0 {
		return 0
	}

	diff := ordA - ordB
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1
	case 1:
		return 0.5
	default:
		return 0.2
	}
}

func scoreGym(a, b string) float64 {
	gymA := normalize(a)
	gymB := normalize(b)
	if gymA == "" || gymB == "" {
		return 0
	}
	if gymA == gymB {
		return 1
	}
	return 0
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		n := normalize(it)
		if n == "" {
			continue
		}
		out[n] = struct{}{}
	}
	return out
}
