package plan

import "testing"

// TestDurationToSeconds covers the document's "mm:ss" forms, including the
// zero-padded minutes some table rows use.
func TestDurationToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2:30", 150},
		{"02:30", 150},
		{"5:00", 300},
		{"08:00", 480},
		{"30:00", 1800},
		{"0:45", 45},
	}
	for _, tt := range tests {
		got, err := DurationToSeconds(tt.in)
		if err != nil {
			t.Errorf("DurationToSeconds(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DurationToSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDurationToSecondsInvalid(t *testing.T) {
	for _, in := range []string{"", "2:60", "2.30", "abc", "1:2", "2:300"} {
		if _, err := DurationToSeconds(in); err == nil {
			t.Errorf("DurationToSeconds(%q): expected error", in)
		}
	}
}

// TestDurationRoundTrip verifies canonical strings survive a full
// convert-and-back cycle unchanged.
func TestDurationRoundTrip(t *testing.T) {
	for _, in := range []string{"2:30", "5:00", "30:00", "0:45", "12:05"} {
		sec, err := DurationToSeconds(in)
		if err != nil {
			t.Fatalf("DurationToSeconds(%q): %v", in, err)
		}
		if got := SecondsToDuration(sec); got != in {
			t.Errorf("round trip %q → %d → %q", in, sec, got)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		want Range
	}{
		{"220à230", Range{220, 230}},
		{"220 à 230", Range{220, 230}},
		{"70à75", Range{70, 75}},
		{"220", Range{220, 220}},
		{"180à190W", Range{180, 190}},
	}
	for _, tt := range tests {
		got, err := ParseRange(tt.in)
		if err != nil {
			t.Errorf("ParseRange(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRangeInvalid(t *testing.T) {
	for _, in := range []string{"", "230à220", "aàb", "220-230"} {
		if _, err := ParseRange(in); err == nil {
			t.Errorf("ParseRange(%q): expected error", in)
		}
	}
}

func TestRangeShift(t *testing.T) {
	got := Range{220, 230}.Shift(15)
	if got != (Range{235, 245}) {
		t.Errorf("Shift(15) = %v, want {235 245}", got)
	}
	if s := got.String(); s != "235à245" {
		t.Errorf("String() = %q, want %q", s, "235à245")
	}
}
