package workout

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pineapplestrikesback/gymlog/config"
	"github.com/pineapplestrikesback/gymlog/internal/models"
)

const (
	padding  = 2
	maxWidth = 64
)

const (
	weightStep = 2.5
	restExtend = 30 * time.Second
)

const (
	confirmFinish  = "finish"
	confirmDiscard = "discard"
)

type tickMsg time.Time

// row addresses one selectable line in the workout view: an exercise header
// when setID is empty, otherwise a single set.
type row struct {
	exerciseID string
	setID      string
}

type styles struct {
	base      lipgloss.Style
	title     lipgloss.Style
	selected  lipgloss.Style
	confirmed lipgloss.Style
	hint      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		base:  lipgloss.NewStyle().Padding(1, padding),
		title: lipgloss.NewStyle().Bold(true),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		confirmed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		hint:      lipgloss.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model for the interactive workout view.
type Model struct {
	ctrl *Controller
	cfg  *config.App

	exercises map[string]*models.Exercise
	cursor    int

	picker       []*models.Exercise
	pickerCursor int
	showPicker   bool

	confirmForm *huh.Form
	confirming  string
	confirmed   bool

	progress progress.Model
	help     help.Model
	styles   styles
	width    int
}

// NewModel builds the TUI over an existing controller. A session recovered
// by the controller shows up immediately; otherwise the start view is shown
// until the user begins a workout.
func NewModel(ctrl *Controller, cfg *config.App) *Model {
	m := &Model{
		ctrl:      ctrl,
		cfg:       cfg,
		exercises: make(map[string]*models.Exercise),
		progress:  progress.New(progress.WithDefaultGradient()),
		help:      help.New(),
		styles:    defaultStyles(),
	}

	for _, id := range ctrl.Order() {
		m.cacheExercise(id)
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) cacheExercise(id string) *models.Exercise {
	if ex, ok := m.exercises[id]; ok {
		return ex
	}

	ex, err := m.ctrl.db.GetExercise(id)
	if err != nil {
		slog.Error("failed to load exercise",
			slog.String("exercise_id", id),
			slog.Any("error", err),
		)

		return nil
	}

	m.exercises[id] = ex

	return ex
}

// rows flattens the session into selectable lines, honouring the expanded
// state of each exercise section.
func (m *Model) rows() []row {
	var rows []row

	for _, exID := range m.ctrl.Order() {
		rows = append(rows, row{exerciseID: exID})

		if !m.ctrl.Expanded(exID) {
			continue
		}

		for _, s := range m.ctrl.SetsForExercise(exID) {
			rows = append(rows, row{exerciseID: exID, setID: s.ID})
		}
	}

	return rows
}

func (m *Model) currentRow() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}

	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	last := len(m.rows()) - 1
	if m.cursor > last {
		m.cursor = last
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentSet() (*models.SetRecord, *models.Exercise) {
	r, ok := m.currentRow()
	if !ok || r.setID == "" {
		return nil, nil
	}

	for _, s := range m.ctrl.SetsForExercise(r.exerciseID) {
		if s.ID == r.setID {
			return s, m.cacheExercise(r.exerciseID)
		}
	}

	return nil, nil
}

// startSession begins a workout at the default gym, or without one when no
// gym is marked default.
func (m *Model) startSession() {
	gyms, err := m.ctrl.db.ListGyms()
	if err != nil {
		slog.Error("failed to list gyms", slog.Any("error", err))
	}

	var gym *models.Gym

	for _, g := range gyms {
		if g.Default {
			gym = g
			break
		}
	}

	m.ctrl.Start(gym)
}

func (m *Model) openPicker() {
	exercises, err := m.ctrl.db.ListExercises()
	if err != nil {
		slog.Error("failed to list exercises", slog.Any("error", err))
		return
	}

	m.picker = exercises
	m.pickerCursor = 0
	m.showPicker = true
}

func (m *Model) openConfirm(kind string) {
	title := "Finish this workout?"
	if kind == confirmDiscard {
		title = "Discard this workout? All logged sets will be deleted."
	}

	m.confirmed = false
	m.confirming = kind
	m.confirmForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&m.confirmed),
		),
	)
}
