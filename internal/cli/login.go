package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ibeckermayer/syndicate/internal/app"
)

var loginCmd = &cobra.Command{
	Use:   "login <site>",
	Short: "Signs in to a browser site and stores its cookies.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App, logger *slog.Logger) error {
			return a.Login(cmd.Context(), args[0])
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout <site>",
	Short: "Removes the stored cookies for a site.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App, logger *slog.Logger) error {
			if !a.IsAuthenticated(args[0]) {
				fmt.Printf("%s has no stored session\n", args[0])
				return nil
			}
			if err := a.Logout(args[0]); err != nil {
				return err
			}
			fmt.Printf("Logged out of %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
