package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pump-partner/internal/domain/schedule"
)

// Level is the closed experience ladder. Ordinal distance between two
// levels drives the compatibility engine's experience factor.
type Level int

const (
	LevelUnknown Level = iota
	LevelBeginner
	LevelIntermediate
	LevelAdvanced
)

var levelNames = map[Level]string{
	LevelBeginner:     "Beginner",
	LevelIntermediate: "Intermediate",
	LevelAdvanced:     "Advanced",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return ""
}

// Ordinal returns the ladder position (beginner=0, intermediate=1,
// advanced=2), or -1 for an unknown level.
func (l Level) Ordinal() int {
	if l < LevelBeginner || l > LevelAdvanced {
		return -1
	}
	return int(l) - int(LevelBeginner)
}

// ParseLevel is case and whitespace insensitive. Unrecognized labels map
// to LevelUnknown rather than an error; scoring treats unknown as zero.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return LevelBeginner
	case "intermediate":
		return LevelIntermediate
	case "advanced":
		return LevelAdvanced
	default:
		return LevelUnknown
	}
}

// Profile is a user's training profile, the record both the validator
// and the compatibility engine consume.
type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	Gym         string
	Split       string
	Goals       []string
	Level       Level
	Blocks      []schedule.Block
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
