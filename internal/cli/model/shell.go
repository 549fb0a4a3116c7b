// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/bilishell/internal/cli/styles"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/bnema/bilishell/internal/logging"
)

// Controller receives the panel's commands. Implementations hand them to
// the navigation coordinator and report back through StatusMsg.
type Controller interface {
	GoHome()
	Search(keyword string)
	GoBack()
	ToggleFullscreen()
	TogglePlayPause()
}

// SnapshotMsg carries the latest navigation snapshot.
type SnapshotMsg struct {
	Snapshot entity.NavigationSnapshot
}

// StatusMsg is a one-line status shown under the buttons.
type StatusMsg struct {
	Text  string
	Error bool
}

// SurfaceClosedMsg tells the panel the browser window is gone.
type SurfaceClosedMsg struct{}

// ShellModel is the Bubble Tea model for the shell control panel.
type ShellModel struct {
	help   help.Model
	keys   styles.ShellKeyMap
	search textinput.Model

	snapshot entity.NavigationSnapshot
	status   StatusMsg
	closed   bool
	width    int

	controller Controller
	theme      *styles.Theme
}

// NewShellModel creates the control panel model.
func NewShellModel(theme *styles.Theme, controller Controller) ShellModel {
	return ShellModel{
		help:       styles.NewStyledHelp(theme),
		keys:       styles.DefaultShellKeyMap(),
		search:     styles.NewSearchInput(theme),
		width:      80,
		controller: controller,
		theme:      theme,
	}
}

// Init implements tea.Model.
func (m ShellModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-8, 10)
		return m, nil

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		return m, nil

	case StatusMsg:
		m.status = msg
		return m, nil

	case SurfaceClosedMsg:
		m.closed = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ShellModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		keyword := m.search.Value()
		if !url.CanSearch(keyword) {
			m.status = StatusMsg{Text: "type a keyword first", Error: true}
			return m, nil
		}
		m.controller.Search(keyword)
		m.search.Blur()
		m.search.SetValue("")
		m.status = StatusMsg{Text: fmt.Sprintf("searching %q", strings.TrimSpace(keyword))}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m ShellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	aff := m.snapshot.Affordances

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Home):
		m.controller.GoHome()
	case key.Matches(msg, m.keys.Search):
		m.status = StatusMsg{}
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		if !aff.CanGoBack {
			m.status = StatusMsg{Text: "nothing to go back to", Error: true}
			return m, nil
		}
		m.controller.GoBack()
	case key.Matches(msg, m.keys.Fullscreen):
		if !aff.CanToggleFullscreen {
			return m, nil
		}
		m.controller.ToggleFullscreen()
	case key.Matches(msg, m.keys.PlayPause):
		if !aff.CanTogglePlayPause {
			return m, nil
		}
		m.controller.TogglePlayPause()
	}
	return m, nil
}

// View implements tea.Model.
func (m ShellModel) View() string {
	if m.closed {
		return m.theme.Subtle.Render("browser window closed") + "\n"
	}

	snap := m.snapshot
	address := snap.State.AuthoritativeURL
	if address == "" {
		address = m.theme.Subtle.Render("(no page)")
	} else {
		address = logging.TruncateURL(address)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.Highlight.Render(styles.IconGlobe+" bilishell"),
		" ",
		m.theme.PhaseBadge(snap.State.Phase),
		" ",
		m.theme.PageBadge(snap.Page),
	)
	if !snap.SurfaceAttached {
		header += " " + m.theme.WarningStyle.Render("detached")
	}

	aff := snap.Affordances
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.ActionButton(styles.IconHome+" home", true),
		m.theme.ActionButton(styles.IconBack+" back", aff.CanGoBack),
		m.theme.ActionButton(styles.IconExpand+" fullscreen", aff.CanToggleFullscreen),
		m.theme.ActionButton(styles.IconPlay+" play/pause", aff.CanTogglePlayPause),
	)

	lines := []string{
		header,
		m.theme.AddressBar.Render(address),
		buttons,
		m.theme.InputBox(m.search.View(), m.search.Focused()),
	}
	if m.status.Text != "" {
		style := m.theme.Subtle
		if m.status.Error {
			style = m.theme.ErrorStyle
		}
		lines = append(lines, style.Render(m.status.Text))
	}
	lines = append(lines, m.help.View(m.keys))

	return strings.Join(lines, "\n") + "\n"
}
