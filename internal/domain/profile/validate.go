package profile

import (
	"strings"

	"pump-partner/internal/domain/schedule"
)

// CompletenessInput is a profile as submitted for the "complete enough
// to enter long-term matching" gate, before any parsing. It is built by
// the calling workflow from stored profile data and not persisted here.
type CompletenessInput struct {
	Gym            string
	Split          string
	Goals          []string
	Level          string
	ScheduleBlocks []schedule.BlockInput
}

// ValidateCompleteness checks the requirements in order and stops at the
// first missing field. A schedule that is present but invalid surfaces
// the nested reason.
func ValidateCompleteness(p *CompletenessInput) schedule.Verdict {
	if p == nil {
		return schedule.Verdict{Valid: false, Msg: "Profile missing"}
	}

	if strings.TrimSpace(p.Gym) == "" {
		return missing("gym")
	}
	if strings.TrimSpace(p.Split) == "" {
		return missing("split")
	}
	if len(p.Goals) == 0 || strings.TrimSpace(p.Goals[0]) == "" {
		return missing("goals")
	}
	if strings.TrimSpace(p.Level) == "" {
		return missing("level")
	}
	if len(p.ScheduleBlocks) == 0 {
		return missing("availability schedule")
	}

	if v := schedule.ValidateBlocks(p.ScheduleBlocks); !v.Valid {
		return schedule.Verdict{Valid: false, Msg: "Incomplete profile: schedule invalid (" + v.Msg + ")"}
	}

	return schedule.Verdict{Valid: true}
}

func missing(field string) schedule.Verdict {
	return schedule.Verdict{Valid: false, Msg: "Incomplete profile: missing " + field}
}
