package profile

import (
	"strings"
	"testing"

	"pump-partner/internal/domain/schedule"
)

func completeInput() *CompletenessInput {
	return &CompletenessInput{
		Gym:   "City Gym",
		Split: "Push/Pull/Legs",
		Goals: []string{"Strength"},
		Level: "Intermediate",
		ScheduleBlocks: []schedule.BlockInput{
			{Day: "Mon", Start: "18:00", End: "20:00"},
		},
	}
}

func TestValidateCompleteness_Complete(t *testing.T) {
	v := ValidateCompleteness(completeInput())
	if !v.Valid {
		t.Fatalf("expected valid, got %q", v.Msg)
	}
}

func TestValidateCompleteness_NilProfile(t *testing.T) {
	v := ValidateCompleteness(nil)
	if v.Valid || v.Msg != "Profile missing" {
		t.Fatalf("unexpected verdict: %+v", v)
	}
}

func TestValidateCompleteness_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CompletenessInput)
		wantMsg string
	}{
		{"blank gym", func(p *CompletenessInput) { p.Gym = "  " }, "missing gym"},
		{"blank split", func(p *CompletenessInput) { p.Split = "" }, "missing split"},
		{"no goals", func(p *CompletenessInput) { p.Goals = nil }, "missing goals"},
		{"blank first goal", func(p *CompletenessInput) { p.Goals = []string{""} }, "missing goals"},
		{"blank level", func(p *CompletenessInput) { p.Level = "" }, "missing level"},
		{"no schedule", func(p *CompletenessInput) { p.ScheduleBlocks = nil }, "missing availability schedule"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := completeInput()
			tc.mutate(p)
			v := ValidateCompleteness(p)
			if v.Valid {
				t.Fatal("expected invalid")
			}
			if !strings.HasPrefix(v.Msg, "Incomplete profile: ") || !strings.Contains(v.Msg, tc.wantMsg) {
				t.Fatalf("msg %q does not mention %q", v.Msg, tc.wantMsg)
			}
		})
	}
}

func TestValidateCompleteness_OrderedShortCircuit(t *testing.T) {
	p := completeInput()
	p.Gym = ""
	p.Split = ""
	v := ValidateCompleteness(p)
	if !strings.Contains(v.Msg, "missing gym") {
		t.Fatalf("gym should be reported first, got %q", v.Msg)
	}
}

func TestValidateCompleteness_InvalidScheduleSurfacesReason(t *testing.T) {
	p := completeInput()
	p.ScheduleBlocks = []schedule.BlockInput{
		{Day: "Mon", Start: "18:00", End: "20:00"},
		{Day: "Mon", Start: "19:30", End: "21:00"},
	}
	v := ValidateCompleteness(p)
	if v.Valid {
		t.Fatal("expected invalid")
	}
	if !strings.Contains(v.Msg, "schedule invalid (") || !strings.Contains(strings.ToLower(v.Msg), "overlap") {
		t.Fatalf("unexpected msg: %q", v.Msg)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"Beginner", LevelBeginner},
		{" intermediate ", LevelIntermediate},
		{"ADVANCED", LevelAdvanced},
		{"elite", LevelUnknown},
		{"", LevelUnknown},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLevelOrdinal(t *testing.T) {
	if LevelBeginner.Ordinal() != 0 || LevelIntermediate.Ordinal() != 1 || LevelAdvanced.Ordinal() != 2 {
		t.Fatal("ladder ordinals out of order")
	}
	if LevelUnknown.Ordinal() != -1 {
		t.Fatalf("unknown level ordinal should be -1, got %d", LevelUnknown.Ordinal())
	}
}
