package cli

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ibeckermayer/syndicate/internal/auth"
	"github.com/ibeckermayer/syndicate/internal/sites"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Lists the supported sites.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cookies *auth.CookieStore
		if dir, err := auth.DefaultCookieDir(); err == nil {
			cookies = auth.NewCookieStore(dir)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Name", "Kind", "Group", "Login"})
		for _, info := range sites.List() {
			login := "-"
			if info.LoginURL != "" {
				login = "required"
				if cookies != nil && cookies.IsValid(info.Key) {
					login = "stored"
				}
			}
			t.AppendRow(table.Row{info.Key, info.Name, info.Kind, info.Group, login})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
