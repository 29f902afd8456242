// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fjacquet/mocktest/internal/config"
	"fjacquet/mocktest/internal/container"
	"fjacquet/mocktest/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	Config    string
	LogLevel  string
	LogFormat string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "mocktest",
		Short: "Extract multiple-choice questions from PDFs and serve them as mock tests.",
		Long: `mocktest turns PDFs of numbered multiple-choice questions into mock tests.
It extracts and validates every question block, stores the accepted ones and
serves the tests, submissions and leaderboards over an HTTP API.`,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return Close()
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	cfg          *config.Config
	log          logging.Logger
	appContainer *container.Container
	extraOptions []container.Option
)

// Init initializes the root command flags.
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file or directory")
	pf.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (default: stdout)")
	pf.StringVar(&SharedFlags.Config, "config", "", "Config file (default: $HOME/.mocktest/config.yaml)")
	pf.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
}

func initialize(cmd *cobra.Command, args []string) error {
	// PersistentPostRunE is skipped when a command fails.
	if err := Close(); err != nil {
		return err
	}
	config.LoadEnv(nil)

	c, err := config.InitializeConfig(SharedFlags.Config)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		c.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		c.Log.Format = SharedFlags.LogFormat
	}
	cfg = c
	log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	log.Debug("Configuration loaded", logging.F("command", cmd.Name()))
	return nil
}

// SetContainerOptions adds options to every container built by GetContainer.
func SetContainerOptions(opts ...container.Option) {
	extraOptions = opts
}

// GetConfig returns the configuration loaded for the running command.
func GetConfig() *config.Config {
	return cfg
}

// GetLogger returns the shared logger for commands.
func GetLogger() logging.Logger {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return log
}

// GetContainer returns the application container, creating it on first use.
// Commands that never call it do not open the database.
func GetContainer(ctx context.Context) (*container.Container, error) {
	if appContainer != nil {
		return appContainer, nil
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	opts := append([]container.Option{container.WithLogger(GetLogger())}, extraOptions...)
	c, err := container.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	return c, nil
}

// Close releases the container if one was created.
func Close() error {
	if appContainer == nil {
		return nil
	}
	err := appContainer.Close()
	appContainer = nil
	return err
}
