package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pineapplestrikesback/gymlog/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "gymlog.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestSeedOnFirstRun(t *testing.T) {
	c := newTestClient(t)

	exercises, err := c.ListExercises()
	require.NoError(t, err)
	assert.Len(t, exercises, len(seedExercises))

	gyms, err := c.ListGyms()
	require.NoError(t, err)
	require.Len(t, gyms, 1)
	assert.True(t, gyms[0].Default)
}

func TestActiveSessionQuery(t *testing.T) {
	c := newTestClient(t)

	got, err := c.ActiveSession()
	require.NoError(t, err)
	assert.Nil(t, got, "empty store must have no active session")

	finished := models.NewWorkoutSession("")
	finished.IsActive = false
	finished.EndTime = time.Now()
	require.NoError(t, c.SaveSession(finished))

	active := models.NewWorkoutSession("")
	require.NoError(t, c.SaveSession(active))

	got, err = c.ActiveSession()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, active.ID, got.ID)
}

func TestDeleteSessionCascades(t *testing.T) {
	c := newTestClient(t)

	sess := models.NewWorkoutSession("")
	require.NoError(t, c.SaveSession(sess))

	other := models.NewWorkoutSession("")
	require.NoError(t, c.SaveSession(other))

	for i := 1; i <= 3; i++ {
		require.NoError(t, c.SaveSet(models.NewSetRecord(sess.ID, "ex-1", i)))
	}

	keep := models.NewSetRecord(other.ID, "ex-1", 1)
	require.NoError(t, c.SaveSet(keep))

	require.NoError(t, c.DeleteSession(sess.ID))

	_, err := c.GetSession(sess.ID)
	assert.ErrorIs(t, err, errSessionNotFound)

	orphans, err := c.SessionSets(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans, "deleting a session must cascade to its sets")

	kept, err := c.SessionSets(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1, "other sessions' sets must survive the cascade")
}

func TestRecentSessionsGymFilter(t *testing.T) {
	c := newTestClient(t)

	end := time.Now()

	addFinished := func(gymID string, age time.Duration) *models.WorkoutSession {
		sess := models.NewWorkoutSession(gymID)
		sess.IsActive = false
		sess.StartTime = end.Add(-age - time.Hour)
		sess.EndTime = end.Add(-age)
		require.NoError(t, c.SaveSession(sess))

		return sess
	}

	newest := addFinished("gym-1", time.Hour)
	oldest := addFinished("gym-1", 72*time.Hour)
	middle := addFinished("gym-1", 24*time.Hour)
	noGym := addFinished("", 2*time.Hour)

	active := models.NewWorkoutSession("gym-1")
	require.NoError(t, c.SaveSession(active))

	got, err := c.RecentSessions("gym-1", 50)
	require.NoError(t, err)
	require.Len(t, got, 3, "active and other-gym sessions must be excluded")

	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, middle.ID, got[1].ID)
	assert.Equal(t, oldest.ID, got[2].ID)

	got, err = c.RecentSessions("", 50)
	require.NoError(t, err)
	require.Len(t, got, 1, "no-gym filter must match only no-gym sessions")
	assert.Equal(t, noGym.ID, got[0].ID)

	got, err = c.RecentSessions("gym-1", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2, "limit must bound the result window")
}

func TestSaveSetClampsValues(t *testing.T) {
	c := newTestClient(t)

	set := models.NewSetRecord("sess-1", "ex-1", 1)
	set.Reps = 5000
	set.Weight = -20

	require.NoError(t, c.SaveSet(set))

	sets, err := c.SessionSets("sess-1")
	require.NoError(t, err)
	require.Len(t, sets, 1)

	assert.Equal(t, models.MaxReps, sets[0].Reps)
	assert.Equal(t, 0.0, sets[0].Weight)
}
