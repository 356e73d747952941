package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a rest timer completes",
	}

	restFlag = &cli.UintFlag{
		Name:    "rest",
		Aliases: []string{"r"},
		Usage:   "Default rest duration in seconds (default: 120)",
	}

	gymFlag = &cli.StringFlag{
		Name:  "gym",
		Usage: "Only list workouts logged at the named gym",
	}

	limitFlag = &cli.UintFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "The maximum number of workouts to list",
		Value:   25,
	}
)
