package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/bilishell/internal/domain/entity"
)

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// PageBadge renders the page kind, highlighted for playable pages.
func (t *Theme) PageBadge(page entity.Page) string {
	switch page.Kind {
	case entity.PageVideoWatch:
		return t.AccentBadge(IconVideo + " " + page.Kind.String())
	case entity.PageBangumiEpisode:
		return t.AccentBadge(IconFilm + " " + page.Kind.String())
	default:
		return t.MutedBadge(page.Kind.String())
	}
}

// PhaseBadge renders the navigation phase.
func (t *Theme) PhaseBadge(phase entity.NavigationPhase) string {
	switch phase {
	case entity.PhaseLoadRequested:
		return t.StatusBadge(phase.String(), t.Background, t.Warning)
	case entity.PhaseSettled:
		return t.StatusBadge(phase.String(), t.Background, t.Success)
	default:
		return t.MutedBadge(phase.String())
	}
}

// ActionButton renders a command button, dimmed when the command does not apply.
func (t *Theme) ActionButton(label string, enabled bool) string {
	if enabled {
		return t.Button.Render(label)
	}
	return t.ButtonDisabled.Render(label)
}
