// Package workout manages the active workout session: its lifecycle, the
// exercises and sets logged against it, rest-timer auto-start, and the
// previous-performance suggestions used to pre-fill new sets.
package workout

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/pineapplestrikesback/gymlog/internal/models"
	"github.com/pineapplestrikesback/gymlog/store"
	"github.com/pineapplestrikesback/gymlog/timer"
)

// previousSessionWindow bounds how many recent sessions are scanned when
// looking up previous performance.
const previousSessionWindow = 50

// Controller orchestrates the active workout session. It is either tracking
// one active session or none; set and exercise operations outside an active
// session are guarded no-ops.
//
// Store writes are best-effort: a failed save is logged and the in-memory
// state remains the source of truth until the next successful write.
type Controller struct {
	db           store.DB
	pool         *timer.Pool
	defaultRest  time.Duration
	autoStartOff bool

	active   *models.WorkoutSession
	sets     []*models.SetRecord
	order    []string // exercise IDs in display order
	expanded map[string]bool
}

// NewController creates a controller and attempts crash recovery: if the
// store holds a session that is still marked active, it is adopted as the
// current session with its exercise order rebuilt from the persisted sets.
func NewController(
	db store.DB,
	pool *timer.Pool,
	defaultRest time.Duration,
) *Controller {
	c := &Controller{
		db:          db,
		pool:        pool,
		defaultRest: defaultRest,
		expanded:    make(map[string]bool),
	}

	c.recover()

	return c
}

// recover restores a session interrupted by process termination. Any failure
// degrades to the no-active-session state; recovery is never fatal.
func (c *Controller) recover() {
	sess, err := c.db.ActiveSession()
	if err != nil {
		slog.Error("crash recovery failed", slog.Any("error", err))
		return
	}

	if sess == nil {
		return
	}

	sets, err := c.db.SessionSets(sess.ID)
	if err != nil {
		slog.Error("failed to load sets for recovered session",
			slog.String("session_id", sess.ID),
			slog.Any("error", err),
		)

		sets = nil
	}

	c.active = sess
	c.sets = sets
	c.order = uniqueExerciseIDs(sets)

	// Expand everything on recovery so nothing logged so far is hidden.
	for _, id := range c.order {
		c.expanded[id] = true
	}

	slog.Info("recovered active workout session",
		slog.String("session_id", sess.ID),
		slog.Int("sets", len(sets)),
	)
}

// uniqueExerciseIDs extracts exercise IDs from sets in first-appearance
// order, chronologically by completion time.
func uniqueExerciseIDs(sets []*models.SetRecord) []string {
	sorted := make([]*models.SetRecord, len(sets))
	copy(sorted, sets)

	slices.SortStableFunc(sorted, func(a, b *models.SetRecord) int {
		return cmp.Compare(a.CompletedAt.UnixNano(), b.CompletedAt.UnixNano())
	})

	seen := make(map[string]bool)

	var order []string

	for _, s := range sorted {
		if !seen[s.ExerciseID] {
			seen[s.ExerciseID] = true
			order = append(order, s.ExerciseID)
		}
	}

	return order
}

// DisableAutoStart turns rest-timer auto-start off globally, overriding the
// per-exercise setting. Timers can still be started through the pool.
func (c *Controller) DisableAutoStart() {
	c.autoStartOff = true
}

// Active returns the current session, or nil when no workout is in progress.
func (c *Controller) Active() *models.WorkoutSession {
	return c.active
}

// Pool exposes the rest-timer pool the controller drives.
func (c *Controller) Pool() *timer.Pool {
	return c.pool
}

// Start begins a new workout session, optionally at a gym. Starting while a
// session is already active is a no-op: at most one session is active at a
// time.
func (c *Controller) Start(gym *models.Gym) {
	if c.active != nil {
		return
	}

	gymID := ""
	if gym != nil {
		gymID = gym.ID
	}

	sess := models.NewWorkoutSession(gymID)

	c.save(sess)

	c.active = sess
	c.sets = nil
	c.order = nil
	c.expanded = make(map[string]bool)

	if gym != nil {
		gym.LastUsedAt = time.Now()

		if err := c.db.SaveGym(gym); err != nil {
			slog.Error("failed to stamp gym last-used time", slog.Any("error", err))
		}
	}
}

// Finish completes the active session: the end time is stamped, the active
// flag cleared, and the session row kept as history. All rest timers are
// cancelled.
func (c *Controller) Finish() {
	if c.active == nil {
		return
	}

	c.active.EndTime = time.Now()
	c.active.IsActive = false

	c.save(c.active)

	c.pool.CancelAll()
	c.clear()
}

// Discard deletes the active session and, by cascade, all of its sets.
// Nothing is stamped.
func (c *Controller) Discard() {
	if c.active == nil {
		return
	}

	if err := c.db.DeleteSession(c.active.ID); err != nil {
		slog.Error("failed to delete discarded session", slog.Any("error", err))
	}

	c.pool.CancelAll()
	c.clear()
}

func (c *Controller) clear() {
	c.active = nil
	c.sets = nil
	c.order = nil
	c.expanded = make(map[string]bool)
}

// AddExercise appends an exercise to the display order (if absent), expands
// it, and stamps its last-used time.
func (c *Controller) AddExercise(ex *models.Exercise) {
	if c.active == nil || ex == nil {
		return
	}

	if !slices.Contains(c.order, ex.ID) {
		c.order = append(c.order, ex.ID)
	}

	c.expanded[ex.ID] = true

	ex.LastUsedAt = time.Now()

	if err := c.db.SaveExercise(ex); err != nil {
		slog.Error("failed to stamp exercise last-used time", slog.Any("error", err))
	}
}

// RemoveExercise drops an exercise from the session along with every set
// logged for it.
func (c *Controller) RemoveExercise(exerciseID string) {
	if c.active == nil {
		return
	}

	c.order = slices.DeleteFunc(c.order, func(id string) bool {
		return id == exerciseID
	})
	delete(c.expanded, exerciseID)

	kept := c.sets[:0]

	for _, s := range c.sets {
		if s.ExerciseID != exerciseID {
			kept = append(kept, s)
			continue
		}

		if err := c.db.DeleteSet(s.ID); err != nil {
			slog.Error("failed to delete set", slog.Any("error", err))
		}

		c.pool.RemoveForSet(s.ID)
	}

	c.sets = kept
}

// MoveExercise reorders the display order only; the stored sets are
// independent of display order.
func (c *Controller) MoveExercise(from, to int) {
	if c.active == nil ||
		from < 0 || from >= len(c.order) ||
		to < 0 || to >= len(c.order) {
		return
	}

	id := c.order[from]
	c.order = slices.Delete(c.order, from, from+1)
	c.order = slices.Insert(c.order, to, id)
}

// AddSet appends a set for the exercise, numbered after the existing ones
// and pre-filled from the previous workout's performance when available.
func (c *Controller) AddSet(ex *models.Exercise) *models.SetRecord {
	if c.active == nil || ex == nil {
		return nil
	}

	n := len(c.SetsForExercise(ex.ID)) + 1

	set := models.NewSetRecord(c.active.ID, ex.ID, n)

	if prev := c.SuggestedValues(ex.ID, n); prev != nil {
		prefill(set, prev, ex.Type)
	}

	if !slices.Contains(c.order, ex.ID) {
		c.order = append(c.order, ex.ID)
		c.expanded[ex.ID] = true
	}

	c.saveSet(set)
	c.sets = append(c.sets, set)

	return set
}

// prefill copies the previous performance into a new set, but only the
// fields the exercise type actually logs.
func prefill(set, prev *models.SetRecord, typ models.ExerciseType) {
	for _, f := range typ.LogFields() {
		switch f {
		case models.FieldReps:
			set.Reps = prev.Reps
		case models.FieldWeight:
			set.Weight = prev.Weight
		case models.FieldDuration:
			set.Duration = prev.Duration
		case models.FieldDistance:
			set.Distance = prev.Distance
		}
	}
}

// DeleteSet removes one set and renumbers the remaining sets of the same
// exercise so the set numbers stay a contiguous 1..N run.
func (c *Controller) DeleteSet(setID string) {
	if c.active == nil {
		return
	}

	idx := slices.IndexFunc(c.sets, func(s *models.SetRecord) bool {
		return s.ID == setID
	})
	if idx == -1 {
		return
	}

	deleted := c.sets[idx]

	if err := c.db.DeleteSet(deleted.ID); err != nil {
		slog.Error("failed to delete set", slog.Any("error", err))
	}

	c.pool.RemoveForSet(deleted.ID)
	c.sets = slices.Delete(c.sets, idx, idx+1)

	for _, s := range c.sets {
		if s.ExerciseID == deleted.ExerciseID && s.SetNumber > deleted.SetNumber {
			s.SetNumber--
			c.saveSet(s)
		}
	}
}

// UpdateSet persists edited set values, clamping them into range.
func (c *Controller) UpdateSet(set *models.SetRecord) {
	if c.active == nil || set == nil {
		return
	}

	set.ApplyLimits()
	c.saveSet(set)
}

// ToggleConfirm flips a set's confirmed state. Confirming stamps the
// completion time and, when the exercise opts in and the effective rest
// duration is positive, starts a rest timer for the set. Unconfirming
// removes the set's timer; removing a timer that does not exist is a no-op.
func (c *Controller) ToggleConfirm(setID string) {
	if c.active == nil {
		return
	}

	idx := slices.IndexFunc(c.sets, func(s *models.SetRecord) bool {
		return s.ID == setID
	})
	if idx == -1 {
		return
	}

	set := c.sets[idx]

	if set.Confirmed {
		set.Confirmed = false
		c.saveSet(set)
		c.pool.RemoveForSet(set.ID)

		return
	}

	set.Confirmed = true
	set.CompletedAt = time.Now()
	c.saveSet(set)

	ex, err := c.db.GetExercise(set.ExerciseID)
	if err != nil {
		slog.Error("failed to load exercise for confirmed set", slog.Any("error", err))
		return
	}

	ex.LastUsedAt = time.Now()

	if err := c.db.SaveExercise(ex); err != nil {
		slog.Error("failed to stamp exercise last-used time", slog.Any("error", err))
	}

	if c.autoStartOff || !ex.AutoStartTimer {
		return
	}

	rest := ex.EffectiveRest(c.defaultRest)
	if rest <= 0 {
		return
	}

	c.pool.RemoveExpired()
	c.pool.Start(set.ID, rest)
}

// SetsForExercise returns the active session's sets for one exercise,
// ordered by set number.
func (c *Controller) SetsForExercise(exerciseID string) []*models.SetRecord {
	var out []*models.SetRecord

	for _, s := range c.sets {
		if s.ExerciseID == exerciseID {
			out = append(out, s)
		}
	}

	slices.SortFunc(out, func(a, b *models.SetRecord) int {
		return cmp.Compare(a.SetNumber, b.SetNumber)
	})

	return out
}

// Order returns the exercise IDs in display order.
func (c *Controller) Order() []string {
	return slices.Clone(c.order)
}

// Expanded reports whether an exercise section is expanded.
func (c *Controller) Expanded(exerciseID string) bool {
	return c.expanded[exerciseID]
}

// ToggleExpanded flips an exercise section between expanded and collapsed.
func (c *Controller) ToggleExpanded(exerciseID string) {
	c.expanded[exerciseID] = !c.expanded[exerciseID]
}

// save persists a session, logging and ignoring failures.
func (c *Controller) save(sess *models.WorkoutSession) {
	if err := c.db.SaveSession(sess); err != nil {
		slog.Error("failed to save session",
			slog.String("session_id", sess.ID),
			slog.Any("error", err),
		)
	}
}

// saveSet persists a set, logging and ignoring failures.
func (c *Controller) saveSet(set *models.SetRecord) {
	if err := c.db.SaveSet(set); err != nil {
		slog.Error("failed to save set",
			slog.String("set_id", set.ID),
			slog.Any("error", err),
		)
	}
}
