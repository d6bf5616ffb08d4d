package schedule

import "sort"

// Verdict is a structured validation result. Domain-invalid input is
// reported here, never as a Go error.
type Verdict struct {
	Valid bool
	Msg   string
}

func invalid(msg string) Verdict {
	return Verdict{Valid: false, Msg: msg}
}

// BlockInput is an availability block as submitted by a client, before
// any parsing. All fields are raw strings.
type BlockInput struct {
	Day   string
	Start string
	End   string
}

// ValidateBlocks checks that every block carries day/start/end, that the
// times parse as 24h "HH:MM", that each block ends strictly after it
// starts, and that no two blocks on the same day overlap. It stops at
// the first failing block.
func ValidateBlocks(blocks []BlockInput) Verdict {
	if blocks == nil {
		return invalid("missing or invalid schedule blocks")
	}

	type span struct{ start, end int }
	byDay := make(map[Day][]span)

	for _, b := range blocks {
		if b.Day == "" || b.Start == "" || b.End == "" {
			return invalid("missing required schedule block fields (day/start/end)")
		}

		day, ok := ParseDay(b.Day)
		if !ok {
			return invalid("invalid day in schedule block")
		}

		start, okS := ParseClock(b.Start)
		end, okE := ParseClock(b.End)
		if !okS || !okE {
			return invalid("invalid time format in schedule block")
		}

		if end <= start {
			return invalid("end time must be after start time")
		}

		byDay[day] = append(byDay[day], span{start: start, end: end})
	}

	for _, spans := range byDay {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return invalid("time blocks cannot overlap")
			}
		}
	}

	return Verdict{Valid: true}
}

// ParseBlocks converts validated input into domain blocks. Callers must
// run ValidateBlocks first; unparsable entries are skipped here.
func ParseBlocks(blocks []BlockInput) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		day, ok := ParseDay(b.Day)
		if !ok {
			continue
		}
		start, okS := ParseClock(b.Start)
		end, okE := ParseClock(b.End)
		if !okS || !okE || end <= start {
			continue
		}
		out = append(out, Block{Day: day, Start: start, End: end})
	}
	return out
}
