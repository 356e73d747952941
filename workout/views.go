package workout

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/pineapplestrikesback/gymlog/internal/models"
	"github.com/pineapplestrikesback/gymlog/internal/timeutil"
)

func (m *Model) timeFormat() string {
	if m.cfg.TwentyFourHourClock {
		return "15:04"
	}

	return "03:04 PM"
}

// setLabel renders the logged values of a set, restricted to the fields the
// exercise type tracks.
func (m *Model) setLabel(s *models.SetRecord, typ models.ExerciseType) string {
	var parts []string

	for _, f := range typ.LogFields() {
		switch f {
		case models.FieldReps:
			parts = append(parts, fmt.Sprintf("%d reps", s.Reps))
		case models.FieldWeight:
			parts = append(parts, fmt.Sprintf("%g %s", s.Weight, m.cfg.WeightUnit))
		case models.FieldDuration:
			parts = append(parts, timeutil.FormatClock(s.Duration))
		case models.FieldDistance:
			parts = append(parts, fmt.Sprintf("%g km", s.Distance))
		}
	}

	return strings.Join(parts, ", ")
}

func (m *Model) headerTimerView() string {
	header, ok := m.ctrl.Pool().Header()
	if !ok {
		return ""
	}

	now := time.Now()

	var s strings.Builder

	s.WriteString(m.styles.title.Render(
		"Rest " + timeutil.FormatClock(header.Remaining(now)),
	))
	s.WriteString(m.styles.hint.Render(
		fmt.Sprintf(" (until %s)", header.EndTime.Format(m.timeFormat())),
	))
	s.WriteString("\n")
	s.WriteString(m.progress.ViewAs(header.Progress(now)))
	s.WriteString("\n\n")

	return s.String()
}

func (m *Model) startView() string {
	var s strings.Builder

	s.WriteString(m.styles.title.Render("No workout in progress"))
	s.WriteString("\n\n")
	s.WriteString(m.styles.hint.Render("Press ENTER to start a new workout"))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.enter,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) pickerView() string {
	var s strings.Builder

	s.WriteString(m.styles.title.Render("Add exercise"))
	s.WriteString("\n\n")

	for i, ex := range m.picker {
		line := fmt.Sprintf("%s (%s)", ex.Name, ex.Type)

		if i == m.pickerCursor {
			line = m.styles.selected.Render("> " + line)
		} else {
			line = "  " + line
		}

		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.up,
		defaultKeymap.down,
		defaultKeymap.enter,
		defaultKeymap.esc,
	}))

	return s.String()
}

func (m *Model) sessionView() string {
	var s strings.Builder

	s.WriteString(m.headerTimerView())

	s.WriteString(m.styles.title.Render(
		"Workout started " + m.ctrl.Active().StartTime.Format(m.timeFormat()),
	))
	s.WriteString("\n\n")

	if len(m.ctrl.Order()) == 0 {
		s.WriteString(m.styles.hint.Render("No exercises yet. Press e to add one."))
		s.WriteString("\n")
	}

	for i, r := range m.rows() {
		s.WriteString(m.rowView(r, i == m.cursor))
	}

	s.WriteString(m.sessionHelpView())

	return s.String()
}

func (m *Model) rowView(r row, selected bool) string {
	ex := m.cacheExercise(r.exerciseID)
	if ex == nil {
		return ""
	}

	var line string

	if r.setID == "" {
		marker := "-"
		if !m.ctrl.Expanded(r.exerciseID) {
			marker = "+"
		}

		line = fmt.Sprintf(
			"%s %s (%d sets)",
			marker,
			ex.Name,
			len(m.ctrl.SetsForExercise(r.exerciseID)),
		)
	} else {
		for _, set := range m.ctrl.SetsForExercise(r.exerciseID) {
			if set.ID != r.setID {
				continue
			}

			check := "[ ]"
			if set.Confirmed {
				check = m.styles.confirmed.Render("[x]")
			}

			line = fmt.Sprintf(
				"  %s %d. %s",
				check,
				set.SetNumber,
				m.setLabel(set, ex.Type),
			)

			if t, ok := m.ctrl.Pool().ForSet(set.ID); ok {
				line += m.styles.hint.Render(
					" rest " + timeutil.FormatClock(t.Remaining(time.Now())),
				)
			}
		}
	}

	if selected {
		line = m.styles.selected.Render("> " + line)
	} else {
		line = "  " + line
	}

	return line + "\n"
}

func (m *Model) sessionHelpView() string {
	return "\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.addSet,
		defaultKeymap.addExercise,
		defaultKeymap.confirm,
		defaultKeymap.skipTimer,
		defaultKeymap.finish,
		defaultKeymap.quit,
	})
}

func (m *Model) View() string {
	if m.confirmForm != nil {
		return m.styles.base.Render(m.confirmForm.View())
	}

	if m.showPicker {
		return m.styles.base.Render(m.pickerView())
	}

	if m.ctrl.Active() == nil {
		return m.styles.base.Render(m.startView())
	}

	return m.styles.base.Render(m.sessionView())
}
