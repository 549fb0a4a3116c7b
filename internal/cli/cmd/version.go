package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, app.Theme.Title.Render(app.BuildInfo.String()))
		fmt.Fprintln(out, app.Theme.Subtle.Render(build.RepoURL()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
