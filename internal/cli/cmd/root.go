// Package cmd provides Cobra CLI commands for bilishell.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/cli"
	"github.com/bnema/bilishell/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "bilishell",
		Short: "A single-site browser shell for bilibili",
		Long: `bilishell - a dedicated bilibili window driven from the terminal.

It opens bilibili in a Chromium app window and keeps a small control panel
in the terminal with the current page, a search box and player controls.

Features:
  - Every navigation is classified (home, video, bangumi, search, ...)
  - Search, back and home from the keyboard
  - Fullscreen and play/pause on video and bangumi pages
  - Optional auto-fullscreen when a player page loads
  - Hot-reloaded TOML configuration

Use 'bilishell browse' to open the shell, or explore the subcommands for
offline helpers like URL classification.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
