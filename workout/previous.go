package workout

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/pineapplestrikesback/gymlog/internal/models"
)

// PreviousSets returns the sets logged for an exercise in the most recent
// finished session with the same gym context as the active one (sessions
// with no gym only match other no-gym sessions). The scan is bounded to the
// most recent sessions and stops at the first one containing the exercise.
// The result is ordered by set number.
func (c *Controller) PreviousSets(exerciseID string) []*models.SetRecord {
	if c.active == nil {
		return nil
	}

	sessions, err := c.db.RecentSessions(c.active.GymID, previousSessionWindow)
	if err != nil {
		slog.Error("previous-performance lookup failed", slog.Any("error", err))
		return nil
	}

	for _, sess := range sessions {
		sets, err := c.db.SessionSets(sess.ID)
		if err != nil {
			slog.Error("failed to load previous session sets",
				slog.String("session_id", sess.ID),
				slog.Any("error", err),
			)

			continue
		}

		var matched []*models.SetRecord

		for _, s := range sets {
			if s.ExerciseID == exerciseID {
				matched = append(matched, s)
			}
		}

		if len(matched) == 0 {
			continue
		}

		slices.SortFunc(matched, func(a, b *models.SetRecord) int {
			return cmp.Compare(a.SetNumber, b.SetNumber)
		})

		return matched
	}

	return nil
}

// SuggestedValues returns the previous workout's performance for the given
// 1-based set number, or nil when that set number was not reached last time.
// Suggestions pre-fill new sets; they are never used for validation.
func (c *Controller) SuggestedValues(
	exerciseID string,
	setNumber int,
) *models.SetRecord {
	prev := c.PreviousSets(exerciseID)

	if setNumber < 1 || setNumber > len(prev) {
		return nil
	}

	return prev[setNumber-1]
}
