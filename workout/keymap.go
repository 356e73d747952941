package workout

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	addSet      key.Binding
	addExercise key.Binding
	deleteSet   key.Binding
	confirm     key.Binding
	collapse    key.Binding
	repsUp      key.Binding
	repsDown    key.Binding
	weightUp    key.Binding
	weightDown  key.Binding
	skipTimer   key.Binding
	extendTimer key.Binding
	finish      key.Binding
	discard     key.Binding
	esc         key.Binding
	quit        key.Binding
}

var defaultKeymap = keymap{
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "start workout"),
	),
	addSet: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add set"),
	),
	addExercise: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "add exercise"),
	),
	deleteSet: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete set"),
	),
	confirm: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "confirm set"),
	),
	collapse: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "collapse"),
	),
	repsUp: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "reps +1"),
	),
	repsDown: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "reps -1"),
	),
	weightUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "weight up"),
	),
	weightDown: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "weight down"),
	),
	skipTimer: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip rest"),
	),
	extendTimer: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "rest +30s"),
	),
	finish: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "finish workout"),
	),
	discard: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "discard workout"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
