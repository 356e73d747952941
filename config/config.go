// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/pineapplestrikesback/gymlog/internal/models"
)

const Version = "v0.1.0"

var once sync.Once

var errInitFailed = errors.New(
	"unable to initialise gymlog settings from the configuration file",
)

var (
	configDir      = "gymlog"
	configFileName = "config.yml"
	dbFileName     = "gymlog.db"
	logFileName    = "gymlog.log"
	configFilePath string
	dbFilePath     string
	logFilePath    string
)

const defaultRestSecs = 120

const (
	configDefaultRestSecs = "default_rest_secs"
	configAutoStartTimers = "auto_start_timers"
	configNotify          = "notify"
	configWeightUnit      = "weight_unit"
	config24HourClock     = "24hr_clock"
)

// App represents the program configuration derived from the config file
// and command-line arguments.
type App struct {
	PathToConfig        string
	PathToDB            string
	DefaultRest         time.Duration
	WeightUnit          models.WeightUnit
	Notify              bool
	AutoStartTimers     bool
	TwentyFourHourClock bool
}

var appCfg = &App{}

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	gymlogEnv := strings.TrimSpace(os.Getenv("GYMLOG_ENV"))
	if gymlogEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", gymlogEnv)
		dbFileName = fmt.Sprintf("gymlog_%s.db", gymlogEnv)
		logFileName = fmt.Sprintf("gymlog_%s.log", gymlogEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// appDefaults sets the program's default configuration values.
func appDefaults() {
	viper.SetDefault(configDefaultRestSecs, defaultRestSecs)
	viper.SetDefault(configAutoStartTimers, true)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configWeightUnit, string(models.Kilograms))
	viper.SetDefault(config24HourClock, false)
}

// createAppConfig writes the default configuration to the user's config
// directory.
func createAppConfig() error {
	err := viper.WriteConfigAs(configFilePath)
	if err != nil {
		return err
	}

	if os.Getenv("GYMLOG_ENV") != "testing" {
		pterm.Info.Printfln(
			"Default settings have been saved to: %s",
			configFilePath,
		)
	}

	return nil
}

// initAppConfig initialises the application configuration. If the config
// file does not exist, one is created with the default values.
func initAppConfig() error {
	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(filepath.Dir(configFilePath))

	appDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createAppConfig()
		}

		return err
	}

	return nil
}

func setAppConfig(ctx *cli.Context) {
	appCfg.PathToConfig = configFilePath
	appCfg.PathToDB = dbFilePath

	// set from config file
	appCfg.DefaultRest = time.Duration(
		viper.GetInt(configDefaultRestSecs),
	) * time.Second
	appCfg.AutoStartTimers = viper.GetBool(configAutoStartTimers)
	appCfg.Notify = viper.GetBool(configNotify)
	appCfg.TwentyFourHourClock = viper.GetBool(config24HourClock)

	appCfg.WeightUnit = models.Kilograms
	if viper.GetString(configWeightUnit) == string(models.Pounds) {
		appCfg.WeightUnit = models.Pounds
	}

	// set from command-line arguments
	if ctx.Bool("disable-notification") {
		appCfg.Notify = false
	}

	if ctx.Uint("rest") > 0 {
		appCfg.DefaultRest = time.Duration(ctx.Uint("rest")) * time.Second
	}
}

// Get initializes and returns the app configuration. This initialization
// is done just once no matter how many times it is called.
func Get(ctx *cli.Context) *App {
	once.Do(func() {
		err := initAppConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setAppConfig(ctx)
	})

	return appCfg
}
