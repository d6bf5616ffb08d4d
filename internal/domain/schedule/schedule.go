package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Day is a closed weekday enum. The zero value is not a valid day.
type Day int

const (
	DayUnknown Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = map[Day]string{
	Monday:    "Mon",
	Tuesday:   "Tue",
	Wednesday: "Wed",
	Thursday:  "Thu",
	Friday:    "Fri",
	Saturday:  "Sat",
	Sunday:    "Sun",
}

var daysByName = map[string]Day{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

func (d Day) String() string {
	if s, ok := dayNames[d]; ok {
		return s
	}
	return "???"
}

// ParseDay accepts short ("Mon") and full ("Monday") weekday names,
// case-insensitive.
func ParseDay(s string) (Day, bool) {
	d, ok := daysByName[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// Block is one availability range on a single day. Start and End are
// minutes since midnight; End is exclusive.
type Block struct {
	Day   Day
	Start int
	End   int
}

// ParseClock converts "HH:MM" (24h) to minutes since midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// Slot is one discrete availability hour, the unit the compatibility
// engine intersects. Canonical serialization is "Mon-18".
type Slot struct {
	Day  Day
	Hour int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s-%d", s.Day, s.Hour)
}

// ParseSlot parses the canonical "Mon-18" form.
func ParseSlot(s string) (Slot, bool) {
	dayPart, hourPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Slot{}, false
	}
	day, ok := ParseDay(dayPart)
	if !ok {
		return Slot{}, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || h < 0 || h > 23 {
		return Slot{}, false
	}
	return Slot{Day: day, Hour: h}, true
}

// Slots expands the block into one slot per started hour in [Start, End).
// An 18:00–20:00 block yields Mon-18 and Mon-19; an 18:30–19:15 block
// yields Mon-18 and Mon-19 as well, since both hours are touched.
func (b Block) Slots() []Slot {
	if b.End <= b.Start {
		return nil
	}
	first := b.Start / 60
	last := (b.End - 1) / 60
	out := make([]Slot, 0, last-first+1)
	for h := first; h <= last; h++ {
		out = append(out, Slot{Day: b.Day, Hour: h})
	}
	return out
}

// SlotSet flattens blocks into a deduplicated slot set.
func SlotSet(blocks []Block) map[Slot]struct{} {
	set := make(map[Slot]struct{})
	for _, b := range blocks {
		for _, s := range b.Slots() {
			set[s] = struct{}{}
		}
	}
	return set
}
