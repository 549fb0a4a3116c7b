package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/bilishell/internal/cli/styles"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/infrastructure/chromium"
	"github.com/bnema/bilishell/internal/infrastructure/scriptcheck"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, browser and player scripts",
	Long: `Doctor checks everything the shell needs before it opens a window:

- the configuration file loads and validates
- a Chromium binary is available, or the remote DevTools URL is well formed
- every player script parses and runs against a stub page

Examples:
  bilishell doctor`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	report := styles.DoctorReport{
		Config: styles.DoctorConfigReport{Path: app.Manager.Path()},
	}
	if app.LoadErr != nil {
		report.Config.Error = app.LoadErr.Error()
	}
	report.Browser = checkBrowser(app.Config.ChromiumOptions())
	report.Scripts = checkPlayerScripts(app.Ctx(), scriptcheck.NewChecker(0), entity.BilibiliProfile().Scripts)

	scriptsOK := true
	for _, s := range report.Scripts {
		scriptsOK = scriptsOK && s.Parsed && s.Rehearsed
	}
	report.OverallOK = app.LoadErr == nil && report.Browser.OK && scriptsOK

	renderer := styles.NewDoctorRenderer(app.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(report))

	if !report.OverallOK {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func checkBrowser(opts chromium.Options) styles.DoctorBrowserReport {
	if opts.Remote() {
		r := styles.DoctorBrowserReport{Mode: "attach", Target: opts.RemoteURL, OK: true}
		if err := opts.Validate(); err != nil {
			r.OK = false
			r.Error = err.Error()
		}
		return r
	}

	r := styles.DoctorBrowserReport{Mode: "launch"}
	if err := opts.Validate(); err != nil {
		r.Error = err.Error()
		return r
	}
	path, err := opts.Locate()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Target = path
	r.OK = true
	return r
}

func checkPlayerScripts(ctx context.Context, checker *scriptcheck.Checker, scripts entity.PlayerScripts) []styles.DoctorScriptCheck {
	named := scriptcheck.Named(scripts)
	out := make([]styles.DoctorScriptCheck, 0, len(named))
	for _, s := range named {
		check := styles.DoctorScriptCheck{Name: s.Name}
		if err := checker.Validate(s.Name, s.Source); err != nil {
			check.Error = err.Error()
			out = append(out, check)
			continue
		}
		check.Parsed = true
		if _, err := checker.Rehearse(ctx, s.Name, s.Source, true); err != nil {
			check.Error = err.Error()
		} else {
			check.Rehearsed = true
		}
		out = append(out, check)
	}
	return out
}
