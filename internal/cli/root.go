// Package cli implements the syndicate command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ibeckermayer/syndicate/internal/app"
	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/logging"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "syndicate",
	Short:         "syndicate publishes content to many websites and comments on LinkedIn.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <config dir>/syndicate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolvedConfigPath returns --config or the default location
func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.ConfigPath()
}

// loadConfig reads the config file, writing the defaults on first run
func loadConfig() (*config.Config, error) {
	path, err := resolvedConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
		if err := cfg.SaveFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save default config: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Created default config at: %s\n", path)
		}
		return cfg, nil
	}
	return cfg, err
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	return logging.New(level, cfg.IsProduction())
}

// withApp loads config, builds the App, runs fn and closes the App
func withApp(ctx context.Context, fn func(a *app.App, logger *slog.Logger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Warn("shutdown incomplete", "error", err)
		}
	}()

	return fn(a, logger)
}
