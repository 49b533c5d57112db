package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibeckermayer/syndicate/internal/browser"
)

const botTestURL = "https://bot.sannysoft.com"

var botTestCmd = &cobra.Command{
	Use:   "bot-test",
	Short: "Opens bot.sannysoft.com with the publishing browser options to audit the fingerprint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Always visible so the fingerprint report can be inspected
		bcfg := browser.Config{
			UserAgent:     cfg.Browser.UserAgent,
			ExtensionPath: cfg.Browser.ExtensionPath,
			Timeout:       cfg.BrowserTimeout(),
		}
		sess, err := browser.OpenPage(cmd.Context(), bcfg, botTestURL)
		if err != nil {
			return err
		}
		defer sess.Close()

		fmt.Println("Press Enter to close the browser...")
		fmt.Scanln()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(botTestCmd)
}
