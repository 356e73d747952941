// Package app defines the gymlog command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/pineapplestrikesback/gymlog/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the gymlog app instance.
func Get() *cli.App {
	gymlogApp := &cli.App{
		Name: "gymlog",
		Usage: `
		Gymlog is a workout logger for the command-line. It tracks exercises,
		sets, and per-set rest timers during a gym session, and recovers an
		interrupted workout on the next run.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "history",
				Usage:  "Print a table of recently finished workouts",
				Action: historyAction,
				Flags: []cli.Flag{
					gymFlag,
					limitFlag,
				},
			},
			{
				Name:   "status",
				Usage:  "Print the status of the active workout",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			restFlag,
			disableNotificationFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return gymlogApp
}
