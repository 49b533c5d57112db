package cli

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/ibeckermayer/syndicate/internal/app"
	"github.com/ibeckermayer/syndicate/internal/config"
)

var openCmd = &cobra.Command{
	Use:       "open <config|cache|report>",
	Short:     "Opens the config file, the cache directory or the latest report.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"config", "cache", "report"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		var err error

		switch args[0] {
		case "config":
			path, err = resolvedConfigPath()
		case "cache":
			path, err = config.CacheDir()
		case "report":
			var cfg *config.Config
			if cfg, err = loadConfig(); err == nil {
				var dir string
				if dir, err = app.ReportDir(cfg); err == nil {
					path, err = app.LatestReport(dir)
				}
			}
		default:
			return fmt.Errorf("unknown target: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get path: %w", err)
		}

		return browser.OpenFile(path)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
