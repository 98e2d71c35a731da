package garmin

import (
	"fmt"

	"triplan/internal/plan"
)

// ErrUnsupportedDiscipline marks workouts that have no Connect payload
// mapping. Swimming stays in the JSON cache only.
type ErrUnsupportedDiscipline struct {
	Code string
	Type plan.Discipline
}

func (e *ErrUnsupportedDiscipline) Error() string {
	return fmt.Sprintf("workout %s: discipline %q not supported for upload", e.Code, e.Type)
}

// ConvertWorkout maps a parsed workout onto the Connect workout schema.
// Repetition runs in the flattened interval list are folded back into
// repeat groups: the cache keeps the expanded form for inspection, the
// API wants one copy of the pattern plus an iteration count. Cadence is
// never part of the payload, and running steps carry no pace target.
func ConvertWorkout(w *plan.Workout) (*Workout, error) {
	var sport SportType
	switch w.Type {
	case plan.Cycling:
		sport = SportType{SportTypeID: sportIDCycling, SportTypeKey: "cycling", DisplayOrder: sportIDCycling}
	case plan.Running:
		sport = SportType{SportTypeID: sportIDRunning, SportTypeKey: "running", DisplayOrder: sportIDRunning}
	default:
		return nil, &ErrUnsupportedDiscipline{Code: w.Code, Type: w.Type}
	}
	if len(w.Intervals) == 0 {
		return nil, fmt.Errorf("workout %s: no intervals to convert", w.Code)
	}

	total := 0
	for _, iv := range w.Intervals {
		total += iv.Seconds()
	}

	steps, err := buildSteps(w)
	if err != nil {
		return nil, fmt.Errorf("workout %s: %w", w.Code, err)
	}

	name := w.Code
	if w.Description != "" {
		name = fmt.Sprintf("%s - %s", w.Code, w.Description)
	}
	return &Workout{
		WorkoutName:             name,
		EstimatedDurationInSecs: total,
		SportType:               sport,
		WorkoutSegments: []Segment{{
			SegmentOrder: 1,
			SportType:    SportType{SportTypeID: sport.SportTypeID, SportTypeKey: sport.SportTypeKey},
			WorkoutSteps: steps,
		}},
	}, nil
}

// buildSteps walks the interval list, folding each consecutive run of
// repetition-tagged intervals into one repeat group and mapping everything
// else 1:1.
func buildSteps(w *plan.Workout) ([]Step, error) {
	var steps []Step
	order := 0
	next := func() int { order++; return order }

	for i := 0; i < len(w.Intervals); {
		iv := w.Intervals[i]
		if iv.RepetitionTotal == 0 {
			step, err := executableStep(next(), w.Type, iv)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
			i++
			continue
		}

		// A repetition run: N expanded copies of a fixed pattern, laid out
		// copy 1..N back to back, so iteration tags are non-decreasing
		// within one run. An iteration reset marks the start of a separate
		// block, even when both blocks share the same N.
		runEnd := i + 1
		for runEnd < len(w.Intervals) {
			cur := w.Intervals[runEnd]
			if cur.RepetitionTotal != iv.RepetitionTotal {
				break
			}
			if cur.RepetitionIteration < w.Intervals[runEnd-1].RepetitionIteration {
				break
			}
			runEnd++
		}
		runLen := runEnd - i
		if runLen%iv.RepetitionTotal != 0 {
			return nil, fmt.Errorf("repetition run of %d intervals not divisible by %d iterations", runLen, iv.RepetitionTotal)
		}
		patternLen := runLen / iv.RepetitionTotal

		group := Step{
			Type:               "RepeatGroupDTO",
			StepOrder:          next(),
			StepType:           StepType{StepTypeID: stepTypeRepeat, StepTypeKey: "repeat"},
			EndCondition:       &EndCondition{ConditionTypeID: conditionIteration, ConditionTypeKey: "iterations"},
			NumberOfIterations: iv.RepetitionTotal,
		}
		for _, child := range w.Intervals[i : i+patternLen] {
			step, err := executableStep(next(), w.Type, child)
			if err != nil {
				return nil, err
			}
			group.ChildSteps = append(group.ChildSteps, step)
		}
		steps = append(steps, group)
		i = runEnd
	}
	return steps, nil
}

func executableStep(order int, discipline plan.Discipline, iv plan.Interval) (Step, error) {
	dur := float64(iv.Seconds())

	step := Step{
		Type:              "ExecutableStepDTO",
		StepOrder:         order,
		StepType:          stepTypeFor(iv.Phase),
		EndCondition:      &EndCondition{ConditionTypeID: conditionTime, ConditionTypeKey: "time"},
		EndConditionValue: &dur,
		Description:       iv.Position,
	}

	if discipline == plan.Cycling && iv.Power != "" {
		rng, err := plan.ParseRange(iv.Power)
		if err != nil {
			return Step{}, fmt.Errorf("power %q: %w", iv.Power, err)
		}
		low, high := float64(rng.Low), float64(rng.High)
		step.TargetType = &TargetType{WorkoutTargetTypeID: targetPowerZone, WorkoutTargetTypeKey: "power.zone"}
		step.TargetValueOne = &low
		step.TargetValueTwo = &high
	} else {
		step.TargetType = &TargetType{WorkoutTargetTypeID: targetNoTarget, WorkoutTargetTypeKey: "no.target"}
	}
	return step, nil
}

func stepTypeFor(phase plan.Phase) StepType {
	switch phase {
	case plan.Warmup:
		return StepType{StepTypeID: stepTypeWarmup, StepTypeKey: "warmup"}
	case plan.Cooldown:
		return StepType{StepTypeID: stepTypeCooldown, StepTypeKey: "cooldown"}
	default:
		return StepType{StepTypeID: stepTypeInterval, StepTypeKey: "interval"}
	}
}
