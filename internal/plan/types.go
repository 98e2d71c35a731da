// Package plan defines the normalized training-plan model shared by the PDF
// parser, the JSON cache and the Garmin upload pipeline. Field names and
// nesting of the JSON forms are the hand-off contract with the spreadsheet
// and email collaborators and must not change.
package plan

import (
	"encoding/json"
	"fmt"
)

// Discipline identifies the sport of a workout. The values are the French
// labels printed by the coach's document and stored in the cache files.
type Discipline string

const (
	Cycling  Discipline = "Cyclisme"
	Running  Discipline = "Course à pied"
	Swimming Discipline = "Natation"
)

// Phase is the position of an interval inside a session.
type Phase string

const (
	Warmup   Phase = "Echauffement"
	Body     Phase = "Corps de séance"
	Cooldown Phase = "Récupération"
)

// Adjustment records how a power target was altered relative to the document:
// a watt offset added to both ends, or a forced replacement by a fixed
// sequence. It serializes as the cache contract's mixed-type field
// (the number 15, 0, or the string "forced").
type Adjustment struct {
	Forced bool
	Watts  int
}

func (a Adjustment) MarshalJSON() ([]byte, error) {
	if a.Forced {
		return json.Marshal("forced")
	}
	return json.Marshal(a.Watts)
}

func (a *Adjustment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "forced" {
			return fmt.Errorf("unknown power adjustment %q", s)
		}
		*a = Adjustment{Forced: true}
		return nil
	}
	var w int
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("invalid power adjustment: %w", err)
	}
	*a = Adjustment{Watts: w}
	return nil
}

// Pace is a parsed running pace range in min:sec per kilometre.
type Pace struct {
	Raw          string `json:"raw"`
	MinSecPerKM  int    `json:"min_pace_sec_per_km"`
	MaxSecPerKM  int    `json:"max_pace_sec_per_km"`
	MinFormatted string `json:"min_formatted"`
	MaxFormatted string `json:"max_formatted"`
}

// Interval is one step of a workout. Cycling intervals carry cadence and
// power; running intervals carry a pace range or a textual intensity.
// Repetition tags are set on every copy produced by expanding an "N x (...)"
// block; all copies share identical content except the iteration index.
type Interval struct {
	Phase    Phase  `json:"phase"`
	Duration string `json:"duration"`

	// Cycling. Cadence stays in the cache for reference but is never part of
	// an upload payload.
	CadenceRPM      string      `json:"cadence_rpm,omitempty"`
	CadenceUpload   *bool       `json:"cadence_upload_to_garmin,omitempty"`
	PowerOriginal   string      `json:"power_watts_original,omitempty"`
	Power           string      `json:"power_watts,omitempty"`
	PowerAdjustment *Adjustment `json:"power_adjustment_w,omitempty"`
	ForcedReason    string      `json:"forced_reason,omitempty"`
	Position        string      `json:"position,omitempty"`
	IsSubInterval   bool        `json:"is_sub_interval,omitempty"`

	// Running.
	PaceMinPerKM    string `json:"pace_min_per_km,omitempty"`
	PaceParsed      *Pace  `json:"pace_parsed,omitempty"`
	PaceDescription string `json:"pace_description,omitempty"`

	RepetitionIteration int `json:"repetition_iteration,omitempty"`
	RepetitionTotal     int `json:"repetition_total,omitempty"`
}

// PowerRange returns the adjusted power target as a numeric range.
// ok is false when the interval has no parseable power (running intervals,
// free-cadence placeholders).
func (iv Interval) PowerRange() (r Range, ok bool) {
	r, err := ParseRange(iv.Power)
	return r, err == nil
}

// Seconds returns the interval duration in seconds, 0 if unparseable.
func (iv Interval) Seconds() int {
	s, err := DurationToSeconds(iv.Duration)
	if err != nil {
		return 0
	}
	return s
}

// Series is one swimming set, kept as prose because the document encodes swim
// sessions as free-text series rather than a phase/duration grid.
type Series struct {
	Description string `json:"description"`
	Technique   string `json:"technique,omitempty"`
}

// Workout is one training session, keyed by its document code (e.g. "C16",
// "CAP17", "N5"). The code is the natural key used to cross-reference the
// cloud service and the spreadsheet; it must be unique within one document.
type Workout struct {
	Code          string     `json:"code"`
	Date          string     `json:"date,omitempty"` // YYYY-MM-DD
	Type          Discipline `json:"type"`
	Indoor        *bool      `json:"indoor,omitempty"`
	DurationTotal string     `json:"duration_total,omitempty"`
	Description   string     `json:"description,omitempty"`

	// Running only: FARTLEK sessions are unstructured free runs.
	WorkoutType string `json:"workout_type,omitempty"`
	Structured  *bool  `json:"structured,omitempty"`

	Intervals []Interval `json:"intervals"`

	// Swimming only.
	Series    []Series       `json:"series,omitempty"`
	Distances map[string]int `json:"distances,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// IsIndoor reports the indoor-trainer flag, false when absent.
func (w Workout) IsIndoor() bool {
	return w.Indoor != nil && *w.Indoor
}

// IsFreeRun reports whether a running workout is an unstructured session
// (FARTLEK), which has no uploadable intervals by design.
func (w Workout) IsFreeRun() bool {
	return w.Type == Running && w.Structured != nil && !*w.Structured
}

// Document is one parsed weekly plan. It is built fresh on every parse and
// immutable afterwards; cache files are point-in-time snapshots.
type Document struct {
	Week      string    `json:"week"`
	Period    string    `json:"period"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Workouts  []Workout `json:"workouts"`
}

// Find returns the workouts carrying the given code, in document order.
// Duplicate printings across pages keep both spans, so more than one match
// is possible.
func (d Document) Find(code string) []Workout {
	var out []Workout
	for _, w := range d.Workouts {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

// BoolPtr returns a pointer to b, for the contract's explicit boolean fields.
func BoolPtr(b bool) *bool { return &b }
