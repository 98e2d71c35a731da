// Package garmin converts parsed workouts into the Garmin Connect workout
// schema and talks to the Connect API.
package garmin

import "encoding/json"

// Sport and step identifiers used by the workout-service schema.
const (
	sportIDRunning = 1
	sportIDCycling = 2

	stepTypeWarmup   = 1
	stepTypeInterval = 3
	stepTypeRest     = 4
	stepTypeCooldown = 5
	stepTypeRepeat   = 6

	conditionTime      = 2
	conditionIteration = 7

	targetNoTarget  = 1
	targetPowerZone = 5
)

// SportType identifies the workout discipline on the wire.
type SportType struct {
	SportTypeID  int    `json:"sportTypeId"`
	SportTypeKey string `json:"sportTypeKey"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
}

type StepType struct {
	StepTypeID  int    `json:"stepTypeId"`
	StepTypeKey string `json:"stepTypeKey"`
}

type EndCondition struct {
	ConditionTypeID  int    `json:"conditionTypeId"`
	ConditionTypeKey string `json:"conditionTypeKey"`
}

type TargetType struct {
	WorkoutTargetTypeID  int    `json:"workoutTargetTypeId"`
	WorkoutTargetTypeKey string `json:"workoutTargetTypeKey"`
}

// Step is either an ExecutableStepDTO or a RepeatGroupDTO; the Type field
// discriminates. Repeat groups carry child steps and an iteration count,
// executable steps carry a duration end condition and an optional target.
type Step struct {
	Type      string   `json:"type"`
	StepOrder int      `json:"stepOrder"`
	StepType  StepType `json:"stepType"`

	EndCondition      *EndCondition `json:"endCondition,omitempty"`
	EndConditionValue *float64      `json:"endConditionValue,omitempty"`
	TargetType        *TargetType   `json:"targetType,omitempty"`
	TargetValueOne    *float64      `json:"targetValueOne,omitempty"`
	TargetValueTwo    *float64      `json:"targetValueTwo,omitempty"`
	Description       string        `json:"description,omitempty"`

	NumberOfIterations int    `json:"numberOfIterations,omitempty"`
	ChildSteps         []Step `json:"workoutSteps,omitempty"`
}

type Segment struct {
	SegmentOrder int       `json:"segmentOrder"`
	SportType    SportType `json:"sportType"`
	WorkoutSteps []Step    `json:"workoutSteps"`
}

// Workout is the create-workout request body.
type Workout struct {
	WorkoutName             string    `json:"workoutName"`
	EstimatedDurationInSecs int       `json:"estimatedDurationInSecs"`
	SportType               SportType `json:"sportType"`
	WorkoutSegments         []Segment `json:"workoutSegments"`
}

// WorkoutID is the create-workout response; Connect returns the id as a
// JSON number.
type WorkoutID struct {
	WorkoutID json.Number `json:"workoutId"`
}

// Schedule is the body of the schedule-workout call.
type Schedule struct {
	WorkoutID int64  `json:"workoutId"`
	Date      string `json:"date"`
}

// Activity is the subset of the activity list entry the fetch command uses.
type Activity struct {
	ActivityID   int64   `json:"activityId"`
	ActivityName string  `json:"activityName"`
	StartTime    string  `json:"startTimeLocal"`
	Distance     float64 `json:"distance"`
	Duration     float64 `json:"duration"`
	ActivityType struct {
		TypeKey string `json:"typeKey"`
	} `json:"activityType"`
}

// dayWeight is the weight-service day view response. Weights come back in
// grams.
type dayWeight struct {
	DateWeightList []struct {
		Weight float64 `json:"weight"`
	} `json:"dateWeightList"`
}

// sleepData is the wellness-service daily sleep response.
type sleepData struct {
	DailySleepDTO struct {
		SleepTimeSeconds  int `json:"sleepTimeSeconds"`
		DeepSleepSeconds  int `json:"deepSleepSeconds"`
		LightSleepSeconds int `json:"lightSleepSeconds"`
		RemSleepSeconds   int `json:"remSleepSeconds"`
	} `json:"dailySleepDTO"`
	SleepScores struct {
		Overall struct {
			Value int `json:"value"`
		} `json:"overall"`
	} `json:"sleepScores"`
}

// Sleep is the normalized per-night summary written by the fetch command.
type Sleep struct {
	Date              string  `json:"date"`
	DurationHours     float64 `json:"duration_hours"`
	QualityScore      int     `json:"quality_score"`
	DeepSleepSeconds  int     `json:"deep_sleep_seconds"`
	LightSleepSeconds int     `json:"light_sleep_seconds"`
	RemSleepSeconds   int     `json:"rem_sleep_seconds"`
}
