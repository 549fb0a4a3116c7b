package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/bootstrap"
)

var (
	browseNoPanel  bool
	browseHeadless bool
	browseRemote   string
)

var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Open the bilibili shell",
	Long: `Launch Chromium on bilibili and show the control panel.

If a URL is provided it must belong to bilibili. Otherwise the home page opens.

Examples:
  bilishell browse
  bilishell browse https://www.bilibili.com/video/BV1xx411c7mD
  bilishell browse --remote ws://127.0.0.1:9222/devtools/browser/<id>
  bilishell browse --no-panel    # logs to stderr, no terminal UI`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
	browseCmd.Flags().BoolVar(&browseNoPanel, "no-panel", false, "run without the terminal control panel")
	browseCmd.Flags().BoolVar(&browseHeadless, "headless", false, "launch Chromium headless")
	browseCmd.Flags().StringVar(&browseRemote, "remote", "", "attach to a running browser's DevTools URL instead of launching one")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if app.LoadErr != nil {
		return app.LoadErr
	}

	cfg := app.Manager.Get()
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = browseHeadless
		if browseHeadless {
			cfg.Browser.AppMode = false
		}
	}
	if browseRemote != "" {
		cfg.Browser.RemoteURL = browseRemote
	}
	if err := cfg.ChromiumOptions().Validate(); err != nil {
		return err
	}

	var start string
	if len(args) > 0 {
		start = args[0]
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bootstrap.RunShell(ctx, bootstrap.ShellOptions{
		Config:   cfg,
		Manager:  app.Manager,
		StartURL: start,
		NoPanel:  browseNoPanel,
	})
}
