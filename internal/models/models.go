// Package models defines the persisted entities for workout logging.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Limits for set values. Out-of-range input is pulled back to the nearest
// bound rather than rejected.
const (
	MaxWeight   = 999.0
	MaxReps     = 999
	MaxDuration = 24 * time.Hour
	MaxDistance = 9999.0
)

// WeightUnit is the display unit for weights. Stored values are always
// kilograms.
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lbs"
)

// WorkoutSession is a single workout bounded by a start time and an optional
// end time. At most one session may be active at a time; the workout
// controller enforces this, not the store.
type WorkoutSession struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	GymID     string    `json:"gym_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
}

// NewWorkoutSession starts a session at the given gym. An empty gymID records
// a workout with no gym context.
func NewWorkoutSession(gymID string) *WorkoutSession {
	return &WorkoutSession{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		GymID:     gymID,
		IsActive:  true,
	}
}

// Duration reports how long a finished session lasted. It returns zero for a
// session that is still open.
func (w *WorkoutSession) Duration() time.Duration {
	if w.EndTime.IsZero() {
		return 0
	}

	return w.EndTime.Sub(w.StartTime)
}

// SetRecord is one logged set of an exercise within a session. SetNumber is
// 1-based and contiguous per (session, exercise) pair; deleting a set
// renumbers the ones above it.
type SetRecord struct {
	ID          string        `json:"id"`
	SessionID   string        `json:"session_id"`
	ExerciseID  string        `json:"exercise_id"`
	SetNumber   int           `json:"set_number"`
	Reps        int           `json:"reps"`
	Weight      float64       `json:"weight"` // kilograms
	Duration    time.Duration `json:"duration"`
	Distance    float64       `json:"distance"` // kilometres
	Notes       string        `json:"notes,omitempty"`
	Confirmed   bool          `json:"confirmed"`
	CompletedAt time.Time     `json:"completed_at"`
}

// NewSetRecord creates an unconfirmed set for the given session and exercise.
func NewSetRecord(sessionID, exerciseID string, setNumber int) *SetRecord {
	return &SetRecord{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
	}
}

// ApplyLimits clamps all numeric fields into their allowed ranges.
func (s *SetRecord) ApplyLimits() {
	s.Reps = clampInt(s.Reps, 0, MaxReps)
	s.Weight = clampFloat(s.Weight, 0, MaxWeight)
	s.Distance = clampFloat(s.Distance, 0, MaxDistance)

	if s.Duration < 0 {
		s.Duration = 0
	} else if s.Duration > MaxDuration {
		s.Duration = MaxDuration
	}
}

// Gym is a location where workouts take place.
type Gym struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	Default    bool      `json:"default"`
}

// NewGym creates a gym record.
func NewGym(name string) *Gym {
	return &Gym{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
