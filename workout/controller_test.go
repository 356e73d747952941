package workout

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pineapplestrikesback/gymlog/internal/models"
	"github.com/pineapplestrikesback/gymlog/store"
	"github.com/pineapplestrikesback/gymlog/timer"
)

const testDefaultRest = 2 * time.Minute

// gatewaySpy records scheduled notifications for assertions.
type gatewaySpy struct {
	scheduled map[string]time.Duration
}

func newGatewaySpy() *gatewaySpy {
	return &gatewaySpy{scheduled: make(map[string]time.Duration)}
}

func (g *gatewaySpy) RequestPermission() bool { return true }

func (g *gatewaySpy) Schedule(id string, after time.Duration) {
	g.scheduled[id] = after
}

func (g *gatewaySpy) Cancel(id string) { delete(g.scheduled, id) }

func (g *gatewaySpy) CancelAll() {
	g.scheduled = make(map[string]time.Duration)
}

type fixture struct {
	db      *store.Client
	gateway *gatewaySpy
	ctrl    *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "gymlog.db")

	db, err := store.NewClient(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	g := newGatewaySpy()

	return &fixture{
		db:      db,
		gateway: g,
		ctrl:    NewController(db, timer.NewPool(g), testDefaultRest),
	}
}

func (f *fixture) addExercise(t *testing.T, name string, typ models.ExerciseType) *models.Exercise {
	t.Helper()

	ex := models.NewExercise(name, typ)
	if err := f.db.SaveExercise(ex); err != nil {
		t.Fatal(err)
	}

	return ex
}

func (f *fixture) activeCount(t *testing.T) int {
	t.Helper()

	sess, err := f.db.ActiveSession()
	if err != nil {
		t.Fatal(err)
	}

	if sess == nil {
		return 0
	}

	return 1
}

func TestSessionSingleton(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(nil)

	if f.activeCount(t) != 1 {
		t.Fatal("expected one active session after start")
	}

	// Starting again while active is a guarded no-op.
	first := f.ctrl.Active().ID
	f.ctrl.Start(nil)

	if f.ctrl.Active().ID != first {
		t.Error("starting during an active session must not replace it")
	}

	f.ctrl.Finish()

	if f.activeCount(t) != 0 {
		t.Error("expected no active session after finish")
	}

	f.ctrl.Start(nil)
	f.ctrl.Discard()

	if f.activeCount(t) != 0 {
		t.Error("expected no active session after discard")
	}

	// Finished session survives as history; discarded one does not.
	sessions, err := f.db.RecentSessions("", 50)
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions) != 1 {
		t.Errorf("expected exactly the finished session in history, got %d", len(sessions))
	}
}

func TestGuardedWithoutActiveSession(t *testing.T) {
	f := newFixture(t)
	ex := f.addExercise(t, "Bench Press", models.WeightReps)

	// None of these may panic or create state without an active session.
	f.ctrl.AddExercise(ex)

	if set := f.ctrl.AddSet(ex); set != nil {
		t.Error("expected AddSet to be a no-op without an active session")
	}

	f.ctrl.DeleteSet("missing")
	f.ctrl.ToggleConfirm("missing")
	f.ctrl.Finish()
	f.ctrl.Discard()

	if len(f.ctrl.Order()) != 0 {
		t.Error("expected empty exercise order")
	}
}

// Scenario: no history, confirm with auto-start and an explicit 90s rest.
func TestConfirmStartsTimer(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Bench Press", models.WeightReps)
	ex.UseDefaultRest = false
	ex.RestDuration = 90 * time.Second

	if err := f.db.SaveExercise(ex); err != nil {
		t.Fatal(err)
	}

	f.ctrl.Start(nil)
	f.ctrl.AddExercise(ex)

	if got := f.ctrl.SuggestedValues(ex.ID, 1); got != nil {
		t.Errorf("expected no suggestion without history, got %+v", got)
	}

	set := f.ctrl.AddSet(ex)
	if set == nil || set.SetNumber != 1 {
		t.Fatalf("expected set number 1, got %+v", set)
	}

	f.ctrl.ToggleConfirm(set.ID)

	timers := f.ctrl.Pool().Timers()
	if len(timers) != 1 {
		t.Fatalf("expected exactly one timer, got %d", len(timers))
	}

	remaining := timers[0].RemainingSeconds(time.Now())
	if remaining < 89 || remaining > 90 {
		t.Errorf("expected remaining in [89, 90], got %d", remaining)
	}

	if len(f.gateway.scheduled) != 1 {
		t.Fatalf("expected one scheduled notification, got %d", len(f.gateway.scheduled))
	}

	if _, ok := f.gateway.scheduled[timers[0].ID]; !ok {
		t.Error("scheduled notification must target the started timer")
	}
}

func TestConfirmUsesDefaultRest(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Squat", models.WeightReps) // UseDefaultRest is on

	f.ctrl.Start(nil)
	set := f.ctrl.AddSet(ex)

	f.ctrl.ToggleConfirm(set.ID)

	timers := f.ctrl.Pool().Timers()
	if len(timers) != 1 {
		t.Fatalf("expected one timer, got %d", len(timers))
	}

	if timers[0].Duration != testDefaultRest {
		t.Errorf("expected default rest %v, got %v", testDefaultRest, timers[0].Duration)
	}
}

func TestConfirmRespectsAutoStartFlag(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Deadlift", models.WeightReps)
	ex.AutoStartTimer = false

	if err := f.db.SaveExercise(ex); err != nil {
		t.Fatal(err)
	}

	f.ctrl.Start(nil)
	set := f.ctrl.AddSet(ex)
	f.ctrl.ToggleConfirm(set.ID)

	if !setConfirmed(f.ctrl, set.ID) {
		t.Error("set should be confirmed even when no timer starts")
	}

	if len(f.ctrl.Pool().Timers()) != 0 {
		t.Error("auto-start disabled must not start a timer")
	}
}

func TestUnconfirmRemovesTimer(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Bench Press", models.WeightReps)

	f.ctrl.Start(nil)
	set := f.ctrl.AddSet(ex)

	f.ctrl.ToggleConfirm(set.ID)

	if len(f.ctrl.Pool().Timers()) != 1 {
		t.Fatal("expected a timer after confirming")
	}

	f.ctrl.ToggleConfirm(set.ID)

	if setConfirmed(f.ctrl, set.ID) {
		t.Error("expected set unconfirmed")
	}

	if len(f.ctrl.Pool().Timers()) != 0 {
		t.Error("unconfirming must remove the set's timer")
	}

	// Unconfirmed set with no timer: toggling twice more must not blow up.
	f.ctrl.ToggleConfirm(set.ID)
	f.ctrl.ToggleConfirm(set.ID)
}

// Scenario: three sets, delete the middle one, remaining renumber to 1..2.
func TestDeleteSetRenumbers(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Curl", models.WeightReps)

	f.ctrl.Start(nil)

	f.ctrl.AddSet(ex)
	second := f.ctrl.AddSet(ex)
	f.ctrl.AddSet(ex)

	f.ctrl.DeleteSet(second.ID)

	sets := f.ctrl.SetsForExercise(ex.ID)

	var numbers []int
	for _, s := range sets {
		numbers = append(numbers, s.SetNumber)
	}

	if diff := cmp.Diff([]int{1, 2}, numbers); diff != "" {
		t.Errorf("unexpected set numbers (-want +got):\n%s", diff)
	}

	// The store agrees with memory.
	stored, err := f.db.SessionSets(f.ctrl.Active().ID)
	if err != nil {
		t.Fatal(err)
	}

	if len(stored) != 2 {
		t.Errorf("expected 2 stored sets, got %d", len(stored))
	}
}

func TestSetNumbersContiguousUnderChurn(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Row", models.WeightReps)

	f.ctrl.Start(nil)

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, f.ctrl.AddSet(ex).ID)
	}

	f.ctrl.DeleteSet(ids[0])
	f.ctrl.DeleteSet(ids[3])
	f.ctrl.AddSet(ex)
	f.ctrl.DeleteSet(ids[4])

	sets := f.ctrl.SetsForExercise(ex.ID)

	for i, s := range sets {
		if s.SetNumber != i+1 {
			t.Fatalf("set numbers not contiguous: position %d holds %d", i, s.SetNumber)
		}
	}
}

// Scenario: crash recovery rebuilds exercise order from completion times.
func TestCrashRecovery(t *testing.T) {
	f := newFixture(t)

	bench := f.addExercise(t, "Bench Press", models.WeightReps)
	squat := f.addExercise(t, "Squat", models.WeightReps)

	f.ctrl.Start(nil)
	sessID := f.ctrl.Active().ID

	// Two sets for different exercises with distinct completion times,
	// logged in the opposite of their completion order.
	late := models.NewSetRecord(sessID, bench.ID, 1)
	late.Confirmed = true
	late.CompletedAt = time.Now()

	early := models.NewSetRecord(sessID, squat.ID, 1)
	early.Confirmed = true
	early.CompletedAt = time.Now().Add(-10 * time.Minute)

	for _, s := range []*models.SetRecord{late, early} {
		if err := f.db.SaveSet(s); err != nil {
			t.Fatal(err)
		}
	}

	// A fresh controller against the same store simulates a restart.
	recovered := NewController(f.db, timer.NewPool(newGatewaySpy()), testDefaultRest)

	if recovered.Active() == nil || recovered.Active().ID != sessID {
		t.Fatal("expected recovery to adopt the active session")
	}

	want := []string{squat.ID, bench.ID}
	if diff := cmp.Diff(want, recovered.Order()); diff != "" {
		t.Errorf("unexpected exercise order (-want +got):\n%s", diff)
	}

	for _, id := range want {
		if !recovered.Expanded(id) {
			t.Errorf("expected recovered exercise %s to be expanded", id)
		}
	}
}

func TestRecoveryWithEmptyStore(t *testing.T) {
	f := newFixture(t)

	if f.ctrl.Active() != nil {
		t.Error("expected no active session on a fresh store")
	}
}

func TestPreviousPerformanceLookup(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Bench Press", models.WeightReps)

	// Log a finished workout with two sets.
	f.ctrl.Start(nil)

	first := f.ctrl.AddSet(ex)
	first.Reps = 8
	first.Weight = 60
	f.ctrl.UpdateSet(first)
	f.ctrl.ToggleConfirm(first.ID)

	second := f.ctrl.AddSet(ex)
	second.Reps = 6
	second.Weight = 65
	f.ctrl.UpdateSet(second)
	f.ctrl.ToggleConfirm(second.ID)

	f.ctrl.Finish()

	// New session: suggestions come from the finished one.
	f.ctrl.Start(nil)

	got := f.ctrl.SuggestedValues(ex.ID, 1)
	if got == nil || got.Reps != 8 || got.Weight != 60 {
		t.Errorf("unexpected suggestion for set 1: %+v", got)
	}

	got = f.ctrl.SuggestedValues(ex.ID, 2)
	if got == nil || got.Reps != 6 || got.Weight != 65 {
		t.Errorf("unexpected suggestion for set 2: %+v", got)
	}

	if got := f.ctrl.SuggestedValues(ex.ID, 3); got != nil {
		t.Errorf("expected no suggestion past the previous set count, got %+v", got)
	}

	// New sets are pre-filled from the suggestions.
	set := f.ctrl.AddSet(ex)
	if set.Reps != 8 || set.Weight != 60 {
		t.Errorf("expected pre-filled set 8x60, got %dx%g", set.Reps, set.Weight)
	}
}

func TestPreviousPerformanceGymContext(t *testing.T) {
	f := newFixture(t)

	ex := f.addExercise(t, "Bench Press", models.WeightReps)

	gym := models.NewGym("Iron Temple")
	if err := f.db.SaveGym(gym); err != nil {
		t.Fatal(err)
	}

	// History at the gym.
	f.ctrl.Start(gym)
	set := f.ctrl.AddSet(ex)
	set.Reps = 10
	f.ctrl.UpdateSet(set)
	f.ctrl.ToggleConfirm(set.ID)
	f.ctrl.Finish()

	// A no-gym session must not see gym history.
	f.ctrl.Start(nil)

	if got := f.ctrl.SuggestedValues(ex.ID, 1); got != nil {
		t.Errorf("no-gym session must not match gym history, got %+v", got)
	}

	f.ctrl.Discard()

	// A session at the same gym does.
	f.ctrl.Start(gym)

	got := f.ctrl.SuggestedValues(ex.ID, 1)
	if got == nil || got.Reps != 10 {
		t.Errorf("expected suggestion from same-gym history, got %+v", got)
	}
}

func TestRemoveExerciseDeletesItsSets(t *testing.T) {
	f := newFixture(t)

	bench := f.addExercise(t, "Bench Press", models.WeightReps)
	squat := f.addExercise(t, "Squat", models.WeightReps)

	f.ctrl.Start(nil)
	f.ctrl.AddExercise(bench)
	f.ctrl.AddExercise(squat)

	f.ctrl.AddSet(bench)
	f.ctrl.AddSet(bench)
	keep := f.ctrl.AddSet(squat)

	f.ctrl.RemoveExercise(bench.ID)

	if diff := cmp.Diff([]string{squat.ID}, f.ctrl.Order()); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}

	stored, err := f.db.SessionSets(f.ctrl.Active().ID)
	if err != nil {
		t.Fatal(err)
	}

	if len(stored) != 1 || stored[0].ID != keep.ID {
		t.Errorf("expected only the squat set to remain, got %d sets", len(stored))
	}
}

func TestMoveExercise(t *testing.T) {
	f := newFixture(t)

	a := f.addExercise(t, "A", models.WeightReps)
	b := f.addExercise(t, "B", models.WeightReps)
	c := f.addExercise(t, "C", models.WeightReps)

	f.ctrl.Start(nil)

	for _, ex := range []*models.Exercise{a, b, c} {
		f.ctrl.AddExercise(ex)
	}

	f.ctrl.MoveExercise(2, 0)

	want := []string{c.ID, a.ID, b.ID}
	if diff := cmp.Diff(want, f.ctrl.Order()); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}

	// Out-of-range moves are ignored.
	f.ctrl.MoveExercise(-1, 1)
	f.ctrl.MoveExercise(0, 5)

	if diff := cmp.Diff(want, f.ctrl.Order()); diff != "" {
		t.Errorf("out-of-range move changed the order (-want +got):\n%s", diff)
	}
}

func setConfirmed(c *Controller, setID string) bool {
	for _, s := range c.sets {
		if s.ID == setID {
			return s.Confirmed
		}
	}

	return false
}
