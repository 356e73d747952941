package workout

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pineapplestrikesback/gymlog/internal/models"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// the confirmation form takes over input while it is open
	if m.confirmForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "ctrl+c" {
			return m, tea.Batch(tea.ClearScreen, tea.Quit)
		}

		form, cmd := m.confirmForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.confirmForm = f
		}

		if m.confirmForm.State == huh.StateCompleted {
			kind := m.confirming
			m.confirmForm = nil
			m.confirming = ""

			if m.confirmed {
				if kind == confirmFinish {
					m.ctrl.Finish()
				} else {
					m.ctrl.Discard()
				}

				return m, tea.Batch(tea.ClearScreen, tea.Quit)
			}
		}

		if _, ok := msg.(tickMsg); ok {
			return m, tea.Batch(cmd, tick())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tickMsg:
		// drop finished countdowns so the view and the header timer stay
		// current; the fired notification itself is the gateway's business
		m.ctrl.Pool().RemoveExpired()

		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width

		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPicker {
		return m.handlePickerKey(msg)
	}

	if m.ctrl.Active() == nil {
		switch {
		case key.Matches(msg, defaultKeymap.enter):
			m.startSession()
			m.cursor = 0

		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Batch(tea.ClearScreen, tea.Quit)
		}

		return m, nil
	}

	switch {
	case key.Matches(msg, defaultKeymap.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, defaultKeymap.down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, defaultKeymap.addExercise):
		m.openPicker()

	case key.Matches(msg, defaultKeymap.addSet):
		if r, ok := m.currentRow(); ok {
			if ex := m.cacheExercise(r.exerciseID); ex != nil {
				m.ctrl.AddSet(ex)
			}
		}

	case key.Matches(msg, defaultKeymap.deleteSet):
		if r, ok := m.currentRow(); ok && r.setID != "" {
			m.ctrl.DeleteSet(r.setID)
			m.clampCursor()
		}

	case key.Matches(msg, defaultKeymap.confirm):
		if r, ok := m.currentRow(); ok && r.setID != "" {
			m.ctrl.ToggleConfirm(r.setID)
		}

	case key.Matches(msg, defaultKeymap.collapse):
		if r, ok := m.currentRow(); ok {
			m.ctrl.ToggleExpanded(r.exerciseID)
			m.clampCursor()
		}

	case key.Matches(msg, defaultKeymap.repsUp):
		m.nudgeReps(1)

	case key.Matches(msg, defaultKeymap.repsDown):
		m.nudgeReps(-1)

	case key.Matches(msg, defaultKeymap.weightUp):
		m.nudgeWeight(weightStep)

	case key.Matches(msg, defaultKeymap.weightDown):
		m.nudgeWeight(-weightStep)

	case key.Matches(msg, defaultKeymap.skipTimer):
		if header, ok := m.ctrl.Pool().Header(); ok {
			m.ctrl.Pool().Skip(header.ID)
		}

	case key.Matches(msg, defaultKeymap.extendTimer):
		if header, ok := m.ctrl.Pool().Header(); ok {
			m.ctrl.Pool().Extend(header.ID, restExtend)
		}

	case key.Matches(msg, defaultKeymap.finish):
		m.openConfirm(confirmFinish)

	case key.Matches(msg, defaultKeymap.discard):
		m.openConfirm(confirmDiscard)

	case key.Matches(msg, defaultKeymap.quit):
		// the session stays active and is recovered on the next run
		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}

	case key.Matches(msg, defaultKeymap.down):
		if m.pickerCursor < len(m.picker)-1 {
			m.pickerCursor++
		}

	case key.Matches(msg, defaultKeymap.enter):
		if len(m.picker) > 0 {
			ex := m.picker[m.pickerCursor]
			m.exercises[ex.ID] = ex
			m.ctrl.AddExercise(ex)
		}

		m.showPicker = false

	case key.Matches(msg, defaultKeymap.esc):
		m.showPicker = false

	case key.Matches(msg, defaultKeymap.quit):
		return m, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return m, nil
}

func (m *Model) nudgeReps(delta int) {
	set, ex := m.currentSet()
	if set == nil || ex == nil || !ex.Type.HasField(models.FieldReps) {
		return
	}

	set.Reps += delta
	m.ctrl.UpdateSet(set)
}

func (m *Model) nudgeWeight(delta float64) {
	set, ex := m.currentSet()
	if set == nil || ex == nil || !ex.Type.HasField(models.FieldWeight) {
		return
	}

	set.Weight += delta
	m.ctrl.UpdateSet(set)
}
