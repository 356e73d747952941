// Package store connects to the data store and manages workout sessions,
// sets, and the exercise library.
package store

import (
	"cmp"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pineapplestrikesback/gymlog/internal/models"
)

const (
	sessionBucket  = "sessions"
	setBucket      = "sets"
	exerciseBucket = "exercises"
	gymBucket      = "gyms"
)

// ErrAlreadyRunning signals that another gymlog process holds the database
// lock.
var ErrAlreadyRunning = errors.New(
	"is gymlog already running? Only one instance can be active at a time",
)

var (
	errExerciseNotFound = errors.New("exercise not found")
	errGymNotFound      = errors.New("gym not found")
	errSessionNotFound  = errors.New("session not found")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// NewClient opens (or creates) the database at the given path and ensures
// the required buckets exist. The exercise library is seeded on first run.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{
			sessionBucket,
			setBucket,
			exerciseBucket,
			gymBucket,
		} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	if err := c.seed(); err != nil {
		return nil, err
	}

	return c, nil
}

// openDB creates or opens a database and locks it.
func openDB(dbPath string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		dbPath,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

func (c *Client) SaveSession(sess *models.WorkoutSession) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(sess.ID), value)
	})
}

func (c *Client) GetSession(id string) (*models.WorkoutSession, error) {
	var sess *models.WorkoutSession

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket)).Get([]byte(id))
		if len(b) == 0 {
			return errSessionNotFound
		}

		sess = &models.WorkoutSession{}

		return json.Unmarshal(b, sess)
	})

	return sess, err
}

// DeleteSession removes the session row and cascades to its sets in the same
// transaction.
func (c *Client) DeleteSession(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(sessionBucket)).Delete([]byte(id))
		if err != nil {
			return err
		}

		sets := tx.Bucket([]byte(setBucket))
		cur := sets.Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var set models.SetRecord

			if err := json.Unmarshal(v, &set); err != nil {
				continue
			}

			if set.SessionID != id {
				continue
			}

			if err := cur.Delete(); err != nil {
				return err
			}
		}

		return nil
	})
}

// ActiveSession returns the session with the active flag set, or nil when no
// workout is in progress. Rows that fail to decode are skipped so a corrupt
// record can never block crash recovery.
func (c *Client) ActiveSession() (*models.WorkoutSession, error) {
	var active *models.WorkoutSession

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var sess models.WorkoutSession

			if err := json.Unmarshal(v, &sess); err != nil {
				continue
			}

			if sess.IsActive {
				active = &sess
				return nil
			}
		}

		return nil
	})

	return active, err
}

func (c *Client) RecentSessions(
	gymID string,
	limit int,
) ([]*models.WorkoutSession, error) {
	return c.finishedSessions(limit, func(sess *models.WorkoutSession) bool {
		return sess.GymID == gymID
	})
}

func (c *Client) FinishedSessions(
	limit int,
) ([]*models.WorkoutSession, error) {
	return c.finishedSessions(limit, func(*models.WorkoutSession) bool {
		return true
	})
}

// finishedSessions scans all inactive sessions passing the filter, ordered
// by end time descending and truncated to limit when positive.
func (c *Client) finishedSessions(
	limit int,
	keep func(*models.WorkoutSession) bool,
) ([]*models.WorkoutSession, error) {
	var sessions []*models.WorkoutSession

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var sess models.WorkoutSession

			if err := json.Unmarshal(v, &sess); err != nil {
				continue
			}

			if sess.IsActive || !keep(&sess) {
				continue
			}

			sessions = append(sessions, &sess)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(sessions, func(a, b *models.WorkoutSession) int {
		return cmp.Compare(b.EndTime.UnixNano(), a.EndTime.UnixNano())
	})

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}

	return sessions, nil
}

// SaveSet stores a set record. Numeric values are clamped into their allowed
// ranges here as a blanket policy so no out-of-range value ever reaches the
// database.
func (c *Client) SaveSet(set *models.SetRecord) error {
	set.ApplyLimits()

	value, err := json.Marshal(set)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(setBucket)).Put([]byte(set.ID), value)
	})
}

func (c *Client) DeleteSet(id string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(setBucket)).Delete([]byte(id))
	})
}

func (c *Client) SessionSets(sessionID string) ([]*models.SetRecord, error) {
	var sets []*models.SetRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(setBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var set models.SetRecord

			if err := json.Unmarshal(v, &set); err != nil {
				continue
			}

			if set.SessionID == sessionID {
				sets = append(sets, &set)
			}
		}

		return nil
	})

	return sets, err
}

func (c *Client) SaveExercise(ex *models.Exercise) error {
	value, err := json.Marshal(ex)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(exerciseBucket)).Put([]byte(ex.ID), value)
	})
}

func (c *Client) GetExercise(id string) (*models.Exercise, error) {
	var ex *models.Exercise

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(exerciseBucket)).Get([]byte(id))
		if len(b) == 0 {
			return errExerciseNotFound
		}

		ex = &models.Exercise{}

		return json.Unmarshal(b, ex)
	})

	return ex, err
}

func (c *Client) ListExercises() ([]*models.Exercise, error) {
	var exercises []*models.Exercise

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(exerciseBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var ex models.Exercise

			if err := json.Unmarshal(v, &ex); err != nil {
				continue
			}

			exercises = append(exercises, &ex)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(exercises, func(a, b *models.Exercise) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return exercises, nil
}

func (c *Client) SaveGym(gym *models.Gym) error {
	value, err := json.Marshal(gym)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(gymBucket)).Put([]byte(gym.ID), value)
	})
}

func (c *Client) GetGym(id string) (*models.Gym, error) {
	var gym *models.Gym

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(gymBucket)).Get([]byte(id))
		if len(b) == 0 {
			return errGymNotFound
		}

		gym = &models.Gym{}

		return json.Unmarshal(b, gym)
	})

	return gym, err
}

func (c *Client) ListGyms() ([]*models.Gym, error) {
	var gyms []*models.Gym

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(gymBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var gym models.Gym

			if err := json.Unmarshal(v, &gym); err != nil {
				continue
			}

			gyms = append(gyms, &gym)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(gyms, func(a, b *models.Gym) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return gyms, nil
}
