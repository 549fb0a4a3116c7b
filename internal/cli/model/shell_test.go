package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/bilishell/internal/cli/styles"
	"github.com/bnema/bilishell/internal/domain/entity"
)

type recordingController struct {
	calls    []string
	keywords []string
}

func (c *recordingController) GoHome()           { c.calls = append(c.calls, "home") }
func (c *recordingController) GoBack()           { c.calls = append(c.calls, "back") }
func (c *recordingController) ToggleFullscreen() { c.calls = append(c.calls, "fullscreen") }
func (c *recordingController) TogglePlayPause()  { c.calls = append(c.calls, "playpause") }
func (c *recordingController) Search(keyword string) {
	c.calls = append(c.calls, "search")
	c.keywords = append(c.keywords, keyword)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m ShellModel, msgs ...tea.Msg) (ShellModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(ShellModel)
	}
	return m, cmd
}

func watchSnapshot(canGoBack bool) entity.NavigationSnapshot {
	page := entity.Page{Kind: entity.PageVideoWatch, ID: "BV1xx411c7mD"}
	return entity.NavigationSnapshot{
		State: entity.NavigationState{
			AuthoritativeURL: "https://www.bilibili.com/video/BV1xx411c7mD",
			CanGoBack:        canGoBack,
			Phase:            entity.PhaseSettled,
		},
		Page:            page,
		Affordances:     entity.AffordancesFor(page, canGoBack),
		SurfaceAttached: true,
	}
}

func TestShellModel_CommandsFollowAffordances(t *testing.T) {
	ctrl := &recordingController{}
	m := NewShellModel(styles.NewTheme(), ctrl)

	// Home page: only home is applicable.
	m, _ = send(t, m, runes("h"), runes("b"), runes("f"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []string{"home"}, ctrl.calls)
	assert.True(t, m.status.Error, "back without history reports a status")

	m, _ = send(t, m, SnapshotMsg{Snapshot: watchSnapshot(true)})
	_, _ = send(t, m, runes("b"), runes("f"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []string{"home", "back", "fullscreen", "playpause"}, ctrl.calls)
}

func TestShellModel_SearchFlow(t *testing.T) {
	ctrl := &recordingController{}
	m := NewShellModel(styles.NewTheme(), ctrl)

	m, _ = send(t, m, runes("/"))
	require.True(t, m.search.Focused())

	// Keys go to the input while it has focus.
	m, _ = send(t, m, runes("4k h"))
	assert.Empty(t, ctrl.calls)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"search"}, ctrl.calls)
	assert.Equal(t, []string{"4k h"}, ctrl.keywords)
	assert.False(t, m.search.Focused())
	assert.Empty(t, m.search.Value())
}

func TestShellModel_EmptySearchIsRejected(t *testing.T) {
	ctrl := &recordingController{}
	m := NewShellModel(styles.NewTheme(), ctrl)

	m, _ = send(t, m, runes("/"), runes("   "), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, ctrl.calls)
	assert.True(t, m.status.Error)
	assert.True(t, m.search.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.False(t, m.search.Focused())
}

func TestShellModel_Quit(t *testing.T) {
	m := NewShellModel(styles.NewTheme(), &recordingController{})

	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m, cmd = send(t, m, SurfaceClosedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "closed")
}

func TestShellModel_ViewShowsSnapshot(t *testing.T) {
	m := NewShellModel(styles.NewTheme(), &recordingController{})
	m, _ = send(t, m, SnapshotMsg{Snapshot: watchSnapshot(false)}, StatusMsg{Text: "fullscreen failed", Error: true})

	view := m.View()
	assert.Contains(t, view, "https://www.bilibili.com/video/BV1xx411c7mD")
	assert.Contains(t, view, entity.PhaseSettled.String())
	assert.Contains(t, view, entity.PageVideoWatch.String())
	assert.Contains(t, view, "fullscreen failed")
	assert.NotContains(t, view, "detached")
}
