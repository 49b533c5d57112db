package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var linkedinCmd = &cobra.Command{
	Use:   "linkedin",
	Short: "LinkedIn helpers.",
}

var authURLOpen bool

var authURLCmd = &cobra.Command{
	Use:   "auth-url",
	Short: "Prints the URL that starts LinkedIn sign-in on the running server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		url := serverURL(cfg.Server.Addr) + "/auth"
		fmt.Println(url)
		if authURLOpen {
			return browser.OpenURL(url)
		}
		return nil
	},
}

func init() {
	authURLCmd.Flags().BoolVar(&authURLOpen, "open", false, "open the URL in the default browser")
	linkedinCmd.AddCommand(authURLCmd)
	rootCmd.AddCommand(linkedinCmd)
}

// serverURL turns a listen address into a URL a local browser can reach
func serverURL(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	if host, port, ok := strings.Cut(addr, ":"); ok && (host == "0.0.0.0" || host == "") {
		addr = "localhost:" + port
	}
	return "http://" + addr
}
