package store

import (
	bolt "go.etcd.io/bbolt"

	"github.com/pineapplestrikesback/gymlog/internal/models"
)

// defaultGymName is created on first run so workouts always have a gym to
// attach to, though logging without one remains possible.
const defaultGymName = "My Gym"

var seedExercises = []struct {
	name string
	typ  models.ExerciseType
}{
	{"Barbell Bench Press", models.WeightReps},
	{"Barbell Squat", models.WeightReps},
	{"Deadlift", models.WeightReps},
	{"Overhead Press", models.WeightReps},
	{"Barbell Row", models.WeightReps},
	{"Dumbbell Curl", models.WeightReps},
	{"Lat Pulldown", models.WeightReps},
	{"Pull Up", models.BodyweightReps},
	{"Push Up", models.BodyweightReps},
	{"Weighted Pull Up", models.WeightedBodyweight},
	{"Assisted Dip", models.AssistedBodyweight},
	{"Plank", models.Duration},
	{"Weighted Plank", models.DurationWeight},
	{"Running", models.DistanceDuration},
	{"Farmers Walk", models.WeightDistance},
}

// seed populates the exercise library and the default gym if the database is
// empty. Existing data is never touched.
func (c *Client) seed() error {
	var empty bool

	err := c.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket([]byte(exerciseBucket)).Cursor().First()
		empty = k == nil

		return nil
	})
	if err != nil {
		return err
	}

	if !empty {
		return nil
	}

	for _, v := range seedExercises {
		if err := c.SaveExercise(models.NewExercise(v.name, v.typ)); err != nil {
			return err
		}
	}

	gym := models.NewGym(defaultGymName)
	gym.Default = true

	return c.SaveGym(gym)
}
