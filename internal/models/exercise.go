package models

import (
	"time"

	"github.com/google/uuid"
)

// LogField identifies a value that can be recorded for a set.
type LogField string

const (
	FieldReps     LogField = "reps"
	FieldWeight   LogField = "weight"
	FieldDuration LogField = "duration"
	FieldDistance LogField = "distance"
)

// ExerciseType determines which fields are recorded when logging a set.
type ExerciseType int

const (
	WeightReps         ExerciseType = iota // bench press, curls
	BodyweightReps                         // pullups, situps
	WeightedBodyweight                     // weighted pullups
	AssistedBodyweight                     // assisted pullups
	Duration                               // planks, yoga
	DurationWeight                         // weighted plank
	DistanceDuration                       // running, cycling
	WeightDistance                         // farmers walk
)

// String returns the display name for the exercise type.
func (e ExerciseType) String() string {
	switch e {
	case WeightReps:
		return "Weight & Reps"
	case BodyweightReps:
		return "Bodyweight Reps"
	case WeightedBodyweight:
		return "Weighted Bodyweight"
	case AssistedBodyweight:
		return "Assisted Bodyweight"
	case Duration:
		return "Duration"
	case DurationWeight:
		return "Duration & Weight"
	case DistanceDuration:
		return "Distance & Duration"
	case WeightDistance:
		return "Weight & Distance"
	}

	return "Unknown"
}

// LogFields returns the fields required to log a set of this exercise type.
func (e ExerciseType) LogFields() []LogField {
	switch e {
	case WeightReps, WeightedBodyweight, AssistedBodyweight:
		return []LogField{FieldReps, FieldWeight}
	case BodyweightReps:
		return []LogField{FieldReps}
	case Duration:
		return []LogField{FieldDuration}
	case DurationWeight:
		return []LogField{FieldDuration, FieldWeight}
	case DistanceDuration:
		return []LogField{FieldDistance, FieldDuration}
	case WeightDistance:
		return []LogField{FieldWeight, FieldDistance}
	}

	return nil
}

// HasField reports whether sets of this type record the given field.
func (e ExerciseType) HasField(f LogField) bool {
	for _, v := range e.LogFields() {
		if v == f {
			return true
		}
	}

	return false
}

// Exercise is a loggable movement in the exercise library. RestDuration and
// AutoStartTimer drive the rest-timer behaviour when a set is confirmed:
// UseDefaultRest selects the app-wide default duration instead of the
// per-exercise value.
type Exercise struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Type           ExerciseType  `json:"type"`
	RestDuration   time.Duration `json:"rest_duration"`
	UseDefaultRest bool          `json:"use_default_rest"`
	AutoStartTimer bool          `json:"auto_start_timer"`
	Unilateral     bool          `json:"unilateral"`
	Favorite       bool          `json:"favorite"`
	LastUsedAt     time.Time     `json:"last_used_at"`
}

// NewExercise creates an exercise that rests for the app-wide default
// duration with timer auto-start enabled.
func NewExercise(name string, typ ExerciseType) *Exercise {
	return &Exercise{
		ID:             uuid.NewString(),
		Name:           name,
		Type:           typ,
		UseDefaultRest: true,
		AutoStartTimer: true,
	}
}

// EffectiveRest resolves the rest duration to use after a confirmed set.
func (e *Exercise) EffectiveRest(appDefault time.Duration) time.Duration {
	if e.UseDefaultRest {
		return appDefault
	}

	return e.RestDuration
}
