package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pineapplestrikesback/gymlog/config"
	"github.com/pineapplestrikesback/gymlog/internal/models"
	"github.com/pineapplestrikesback/gymlog/internal/timeutil"
	"github.com/pineapplestrikesback/gymlog/internal/ui"
	"github.com/pineapplestrikesback/gymlog/notify"
	"github.com/pineapplestrikesback/gymlog/store"
	"github.com/pineapplestrikesback/gymlog/timer"
	"github.com/pineapplestrikesback/gymlog/workout"
)

const (
	envNoColor       = "NO_COLOR"
	envGymlogNoColor = "GYMLOG_NO_COLOR"
)

var errGymNotFound = errors.New("no gym with that name exists")

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// initLogging routes the structured log to a rotating file in the data
// directory so log output never competes with the TUI for the terminal.
func initLogging() {
	w := &lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, nil)))
}

// editConfigAction handles the edit-config command which opens the gymlog
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.Get(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// historyAction handles the history command and prints a table of finished
// workouts, optionally restricted to one gym.
func historyAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	limit := int(ctx.Uint("limit"))

	var sessions []*models.WorkoutSession

	if gymName := ctx.String("gym"); gymName != "" {
		gymID, err := resolveGym(db, gymName)
		if err != nil {
			return err
		}

		sessions, err = db.RecentSessions(gymID, limit)
		if err != nil {
			return err
		}
	} else {
		sessions, err = db.FinishedSessions(limit)
		if err != nil {
			return err
		}
	}

	if len(sessions) == 0 {
		pterm.Println("No finished workouts yet")
		return nil
	}

	gymNames := make(map[string]string)

	tableBody := [][]string{
		{"#", "DATE", "DURATION", "GYM", "SETS"},
	}

	for i, sess := range sessions {
		sets, err := db.SessionSets(sess.ID)
		if err != nil {
			return err
		}

		gym := "-"

		if sess.GymID != "" {
			name, ok := gymNames[sess.GymID]
			if !ok {
				g, err := db.GetGym(sess.GymID)
				if err == nil {
					name = g.Name
				}

				gymNames[sess.GymID] = name
			}

			if name != "" {
				gym = name
			}
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			sess.StartTime.Format("Jan 02, 2006 03:04 PM"),
			timeutil.FormatClock(sess.Duration()),
			gym,
			fmt.Sprintf("%d", len(sets)),
		}

		tableBody = append(tableBody, row)
	}

	ui.PrintTable(tableBody, os.Stdout)

	return nil
}

func resolveGym(db store.DB, name string) (string, error) {
	gyms, err := db.ListGyms()
	if err != nil {
		return "", err
	}

	for _, g := range gyms {
		if strings.EqualFold(g.Name, name) {
			return g.ID, nil
		}
	}

	return "", fmt.Errorf("%w: %s", errGymNotFound, name)
}

// statusAction handles the status command and prints the state of the
// active workout, if any.
func statusAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		// the lock being held means a workout view is open elsewhere
		if errors.Is(err, store.ErrAlreadyRunning) {
			pterm.Println(ui.Green("A workout is in progress in another terminal"))
			return nil
		}

		return err
	}

	defer func() {
		_ = db.Close()
	}()

	sess, err := db.ActiveSession()
	if err != nil {
		return err
	}

	if sess == nil {
		pterm.Println("No workout in progress")
		return nil
	}

	sets, err := db.SessionSets(sess.ID)
	if err != nil {
		return err
	}

	var confirmed int

	for _, s := range sets {
		if s.Confirmed {
			confirmed++
		}
	}

	timeFormat := "03:04 PM"
	if cfg.TwentyFourHourClock {
		timeFormat = "15:04"
	}

	pterm.Printfln(
		"%s started at %s: %s logged (%d confirmed)",
		ui.Green("Active workout"),
		ui.Highlight(sess.StartTime.Format(timeFormat)),
		ui.Cyan(fmt.Sprintf("%d sets", len(sets))),
		confirmed,
	)

	return nil
}

// defaultAction opens the store and launches the interactive workout view,
// recovering an interrupted session if one exists.
func defaultAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	var gateway notify.Gateway = notify.NewDesktop()
	if !cfg.Notify {
		gateway = notify.Silent{}
	}

	ctrl := workout.NewController(db, timer.NewPool(gateway), cfg.DefaultRest)

	if !cfg.AutoStartTimers {
		ctrl.DisableAutoStart()
	}

	p := tea.NewProgram(workout.NewModel(ctrl, cfg))

	_, err = p.Run()

	return err
}

func beforeAction(ctx *cli.Context) error {
	config.InitializePaths()
	initLogging()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if GYMLOG_NO_COLOR is set
	if _, exists := os.LookupEnv(envGymlogNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
