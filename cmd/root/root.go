// Package root contains the root command for the application
package root

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/spendlens/internal/config"
	"fjacquet/spendlens/internal/container"
	"fjacquet/spendlens/internal/logging"
	"fjacquet/spendlens/internal/store"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigFile string
	DataPath   string
	Backend    string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "spendlens",
		Short: "Log expenses from plain sentences and analyze your spending.",
		Long: `spendlens records expenses described in everyday language
("Spent $15 at Starbucks yesterday"), keeps them in a CSV, XLSX, SQLite or
Google Sheets store, summarizes spending per category, exports a formatted
Excel report and answers questions about your expenses with a language model.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			teardown()
		},
	}

	// SharedFlags are the persistent flags accessible to all commands
	SharedFlags = GlobalFlags{}

	app      *container.Container
	injected bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.spendlens, .spendlens or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.DataPath, "data", "", "Expense data file, overrides storage.path")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "backend", "", "Storage backend: "+strings.Join(store.FileBackendNames(), ", ")+" or "+store.BackendSheets)
}

// LoadConfig reads the configuration and applies the persistent flag overrides.
func LoadConfig(flags GlobalFlags) (*config.Config, error) {
	cfg, err := config.InitializeConfigFromFile(flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if flags.Backend != "" {
		cfg.Storage.Backend = flags.Backend
	}
	if flags.DataPath != "" {
		cfg.Storage.Path = flags.DataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if flags.DataPath != "" && !slices.Contains(store.FileBackendNames(), cfg.Storage.Backend) {
		return nil, fmt.Errorf("--data applies only to the %s backends", strings.Join(store.FileBackendNames(), ", "))
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) error {
	if app != nil {
		return nil
	}

	config.LoadEnv(Log)
	cfg, err := LoadConfig(SharedFlags)
	if err != nil {
		return err
	}
	Log = config.NewLogger(cfg)

	c, err := container.NewContainer(cfg,
		container.WithContext(cmd.Context()),
		container.WithLogger(Log))
	if err != nil {
		return err
	}
	app = c
	return nil
}

func teardown() {
	if app == nil || injected {
		return
	}
	if err := app.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close resources")
	}
	app = nil
}

// App returns the container built for the running command.
func App() (*container.Container, error) {
	if app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}

// SetApp installs a prebuilt container, bypassing configuration loading.
// Passing nil restores normal initialization.
func SetApp(c *container.Container) {
	app = c
	injected = c != nil
	if c != nil {
		Log = c.GetLogger()
	}
}
