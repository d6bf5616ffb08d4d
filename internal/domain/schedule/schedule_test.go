package schedule

import (
	"strings"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"18:00", 18 * 60, true},
		{"23:59", 23*60 + 59, true},
		{" 9:30 ", 9*60 + 30, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"1800", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseClock(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseClock(%q) = (%d,%v), want (%d,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBlockSlots(t *testing.T) {
	b := Block{Day: Monday, Start: 18 * 60, End: 20 * 60}
	got := b.Slots()
	if len(got) != 2 || got[0].String() != "Mon-18" || got[1].String() != "Mon-19" {
		t.Fatalf("18:00-20:00 should expand to Mon-18,Mon-19, got %v", got)
	}

	// Started hours count even when the block does not cover them fully.
	b = Block{Day: Friday, Start: 18*60 + 30, End: 19*60 + 15}
	got = b.Slots()
	if len(got) != 2 || got[0].Hour != 18 || got[1].Hour != 19 {
		t.Fatalf("18:30-19:15 should touch hours 18 and 19, got %v", got)
	}

	if got := (Block{Day: Monday, Start: 600, End: 600}).Slots(); got != nil {
		t.Fatalf("zero-length block should yield no slots, got %v", got)
	}
}

func TestParseSlot(t *testing.T) {
	s, ok := ParseSlot("Mon-18")
	if !ok || s.Day != Monday || s.Hour != 18 {
		t.Fatalf("ParseSlot(Mon-18) = (%v,%v)", s, ok)
	}
	if _, ok := ParseSlot("Funday-18"); ok {
		t.Fatal("expected failure for unknown day")
	}
	if _, ok := ParseSlot("Mon-25"); ok {
		t.Fatal("expected failure for out-of-range hour")
	}
}

func TestValidateBlocks(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []BlockInput
		valid   bool
		wantMsg string
	}{
		{
			name:   "nil input",
			blocks: nil,
			valid:  false, wantMsg: "missing or invalid",
		},
		{
			name:   "empty is fine",
			blocks: []BlockInput{},
			valid:  true,
		},
		{
			name:   "single valid block",
			blocks: []BlockInput{{Day: "Mon", Start: "18:00", End: "20:00"}},
			valid:  true,
		},
		{
			name:   "missing end",
			blocks: []BlockInput{{Day: "Tue", Start: "18:00"}},
			valid:  false, wantMsg: "missing",
		},
		{
			name:   "bad time format",
			blocks: []BlockInput{{Day: "Mon", Start: "18h00", End: "20:00"}},
			valid:  false, wantMsg: "invalid time format",
		},
		{
			name:   "unknown day",
			blocks: []BlockInput{{Day: "Funday", Start: "18:00", End: "20:00"}},
			valid:  false, wantMsg: "invalid day",
		},
		{
			name:   "inverted range",
			blocks: []BlockInput{{Day: "Mon", Start: "20:00", End: "18:00"}},
			valid:  false, wantMsg: "end time must be after start time",
		},
		{
			name:   "zero-length range",
			blocks: []BlockInput{{Day: "Mon", Start: "18:00", End: "18:00"}},
			valid:  false, wantMsg: "end time must be after start time",
		},
		{
			name: "same-day overlap",
			blocks: []BlockInput{
				{Day: "Mon", Start: "18:00", End: "20:00"},
				{Day: "Mon", Start: "19:30", End: "21:00"},
			},
			valid: false, wantMsg: "overlap",
		},
		{
			name: "overlap detected out of order",
			blocks: []BlockInput{
				{Day: "Mon", Start: "19:30", End: "21:00"},
				{Day: "Mon", Start: "18:00", End: "20:00"},
			},
			valid: false, wantMsg: "overlap",
		},
		{
			name: "touching blocks do not overlap",
			blocks: []BlockInput{
				{Day: "Mon", Start: "18:00", End: "20:00"},
				{Day: "Mon", Start: "20:00", End: "21:00"},
			},
			valid: true,
		},
		{
			name: "same times on different days",
			blocks: []BlockInput{
				{Day: "Mon", Start: "18:00", End: "20:00"},
				{Day: "Wed", Start: "18:00", End: "20:00"},
			},
			valid: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateBlocks(tc.blocks)
			if v.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (msg=%q)", v.Valid, tc.valid, v.Msg)
			}
			if !tc.valid && !strings.Contains(strings.ToLower(v.Msg), tc.wantMsg) {
				t.Fatalf("msg %q does not mention %q", v.Msg, tc.wantMsg)
			}
		})
	}
}

func TestParseBlocks(t *testing.T) {
	in := []BlockInput{
		{Day: "Mon", Start: "18:00", End: "20:00"},
		{Day: "bogus", Start: "18:00", End: "20:00"},
	}
	got := ParseBlocks(in)
	if len(got) != 1 || got[0].Day != Monday || got[0].Start != 18*60 || got[0].End != 20*60 {
		t.Fatalf("unexpected parsed blocks: %v", got)
	}
}
