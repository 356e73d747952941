package store

import (
	"github.com/pineapplestrikesback/gymlog/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveSession creates or overwrites a workout session.
	SaveSession(sess *models.WorkoutSession) error
	// GetSession retrieves a session by its identifier.
	GetSession(id string) (*models.WorkoutSession, error)
	// DeleteSession removes a session and all of its sets.
	DeleteSession(id string) error
	// ActiveSession returns the session marked active, or nil if there is
	// none.
	ActiveSession() (*models.WorkoutSession, error)
	// RecentSessions returns up to limit finished sessions matching the gym
	// context, most recently ended first. An empty gymID matches only
	// sessions logged without a gym.
	RecentSessions(gymID string, limit int) ([]*models.WorkoutSession, error)
	// FinishedSessions returns up to limit finished sessions regardless of
	// gym, most recently ended first.
	FinishedSessions(limit int) ([]*models.WorkoutSession, error)
	// SaveSet creates or overwrites a set record, clamping its values.
	SaveSet(set *models.SetRecord) error
	// DeleteSet removes a single set record.
	DeleteSet(id string) error
	// SessionSets returns every set belonging to a session.
	SessionSets(sessionID string) ([]*models.SetRecord, error)
	// SaveExercise creates or overwrites an exercise.
	SaveExercise(ex *models.Exercise) error
	// GetExercise retrieves an exercise by its identifier.
	GetExercise(id string) (*models.Exercise, error)
	// ListExercises returns the exercise library sorted by name.
	ListExercises() ([]*models.Exercise, error)
	// SaveGym creates or overwrites a gym.
	SaveGym(gym *models.Gym) error
	// GetGym retrieves a gym by its identifier.
	GetGym(id string) (*models.Gym, error)
	// ListGyms returns all gyms sorted by name.
	ListGyms() ([]*models.Gym, error)
	// Close ends the database connection.
	Close() error
}
