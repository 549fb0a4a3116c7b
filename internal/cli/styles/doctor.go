package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

type DoctorReport struct {
	OverallOK bool
	Config    DoctorConfigReport
	Browser   DoctorBrowserReport
	Scripts   []DoctorScriptCheck
}

type DoctorConfigReport struct {
	Path  string
	Error string
}

type DoctorBrowserReport struct {
	// Mode is "launch" or "attach".
	Mode   string
	Target string
	OK     bool
	Error  string
}

type DoctorScriptCheck struct {
	Name string
	// Parsed reports a clean sobek compile; Rehearsed a clean run against the stub page.
	Parsed    bool
	Rehearsed bool
	Error     string
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	header := r.renderHeader(report.OverallOK)

	sections := []string{
		r.renderConfig(report.Config),
		r.renderBrowser(report.Browser),
	}
	if len(report.Scripts) > 0 {
		sections = append(sections, r.renderScripts(report.Scripts))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", strings.Join(sections, "\n\n"))
}

func (r *DoctorRenderer) renderHeader(ok bool) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "OK"
	if !ok {
		statusStyle = r.theme.WarningStyle
		statusText = "Needs attention"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconDoctor), r.theme.Title.Render("Doctor"))
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
}

func (r *DoctorRenderer) section(icon, name, body string) string {
	return r.theme.Box.Render(r.theme.BoxHeader.Render(fmt.Sprintf("%s %s", r.theme.Highlight.Render(icon), name)) + "\n" + body)
}

func (r *DoctorRenderer) status(ok bool) (string, lipgloss.Style) {
	if ok {
		return IconCheck, r.theme.SuccessStyle
	}
	return IconX, r.theme.ErrorStyle
}

func (r *DoctorRenderer) renderConfig(c DoctorConfigReport) string {
	icon, style := r.status(c.Error == "")
	lines := []string{fmt.Sprintf("%s %s", style.Render(icon), r.theme.Normal.Render(c.Path))}
	if c.Error != "" {
		lines = append(lines, "  "+r.theme.Subtle.Render(c.Error))
	}
	return r.section(IconConfig, "Config", strings.Join(lines, "\n"))
}

func (r *DoctorRenderer) renderBrowser(b DoctorBrowserReport) string {
	icon, style := r.status(b.OK)
	target := b.Target
	if target == "" {
		target = "auto-detect"
	}
	lines := []string{fmt.Sprintf(
		"%s %s %s",
		style.Render(icon),
		r.theme.BadgeMuted.Render(b.Mode),
		r.theme.Normal.Render(target),
	)}
	if b.Error != "" {
		lines = append(lines, "  "+r.theme.Subtle.Render(b.Error))
	}
	return r.section(IconGlobe, "Browser", strings.Join(lines, "\n"))
}

func (r *DoctorRenderer) renderScripts(checks []DoctorScriptCheck) string {
	lines := make([]string, 0, len(checks))
	for _, c := range checks {
		icon := IconCheck
		statusStyle := r.theme.SuccessStyle
		status := "OK"
		switch {
		case !c.Parsed:
			icon = IconX
			statusStyle = r.theme.ErrorStyle
			status = "Syntax error"
		case !c.Rehearsed:
			icon = IconWarning
			statusStyle = r.theme.WarningStyle
			status = "Rehearsal failed"
		}

		line := fmt.Sprintf("%s %s %s", statusStyle.Render(icon), r.theme.Normal.Render(c.Name), r.theme.BadgeMuted.Render(statusStyle.Render(status)))
		if c.Error != "" {
			line += "\n  " + r.theme.Subtle.Render(c.Error)
		}
		lines = append(lines, line)
	}
	return r.section(IconCode, "Player scripts", strings.Join(lines, "\n"))
}
