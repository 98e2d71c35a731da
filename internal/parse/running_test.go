package parse

import (
	"testing"

	"triplan/internal/plan"
)

func TestParsePace(t *testing.T) {
	p, err := ParsePace("4:45à4:50")
	if err != nil {
		t.Fatalf("ParsePace: %v", err)
	}
	if p.MinSecPerKM != 285 || p.MaxSecPerKM != 290 {
		t.Errorf("pace = %d/%d sec, want 285/290", p.MinSecPerKM, p.MaxSecPerKM)
	}
	if p.MinFormatted != "4:45" || p.MaxFormatted != "4:50" {
		t.Errorf("formatted = %s/%s, want 4:45/4:50", p.MinFormatted, p.MaxFormatted)
	}
}

func TestParsePaceInvalid(t *testing.T) {
	for _, in := range []string{"", "4:75à4:80", "4:45", "vite"} {
		if _, err := ParsePace(in); err == nil {
			t.Errorf("ParsePace(%q): expected error", in)
		}
	}
}

// TestParseRunningIntervals covers the three row kinds: textual warmup,
// numeric-pace body rows and textual cooldown.
func TestParseRunningIntervals(t *testing.T) {
	const table = `
15:00 Allure faible à modérée
30:00 4:45 à 4:50
10:00 5:10 à 5:15
10:00 Allure modérée à faible
`
	got := ParseRunningIntervals(lines(table), testLogger())
	if len(got) != 4 {
		t.Fatalf("intervals = %d, want 4", len(got))
	}

	if got[0].Phase != plan.Warmup || got[0].PaceDescription != "Allure faible à modérée" {
		t.Errorf("warmup = %s %q", got[0].Phase, got[0].PaceDescription)
	}
	if got[0].Duration != "15:00" {
		t.Errorf("warmup duration = %q, want 15:00", got[0].Duration)
	}

	body := got[1]
	if body.Phase != plan.Body || body.PaceMinPerKM != "4:45à4:50" {
		t.Errorf("body = %s %q", body.Phase, body.PaceMinPerKM)
	}
	if body.Duration != "30:00" {
		t.Errorf("body duration = %q, want 30:00 (pace must not shadow it)", body.Duration)
	}
	if body.PaceParsed == nil || body.PaceParsed.MaxSecPerKM != 290 {
		t.Errorf("body pace_parsed = %+v", body.PaceParsed)
	}

	if got[3].Phase != plan.Cooldown || got[3].PaceDescription != "Allure modérée à faible" {
		t.Errorf("cooldown = %s %q", got[3].Phase, got[3].PaceDescription)
	}
}

// TestParseRunningDropsInvalidPace checks a malformed pace row is dropped
// without taking the rest of the workout with it.
func TestParseRunningDropsInvalidPace(t *testing.T) {
	const table = `
30:00 4:75 à 4:80
10:00 5:10 à 5:15
`
	got := ParseRunningIntervals(lines(table), testLogger())
	if len(got) != 1 {
		t.Fatalf("intervals = %d, want 1 (invalid pace dropped)", len(got))
	}
	if got[0].PaceMinPerKM != "5:10à5:15" {
		t.Errorf("survivor pace = %q, want 5:10à5:15", got[0].PaceMinPerKM)
	}
}

func TestIsFreeRun(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Séance Fartlek naturel", true},
		{"Courir aux sensations, sans contrainte", true},
		{"30:00 4:45à4:50", false},
	}
	for _, tt := range tests {
		if got := IsFreeRun(tt.text); got != tt.want {
			t.Errorf("IsFreeRun(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
