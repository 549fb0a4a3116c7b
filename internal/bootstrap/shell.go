package bootstrap

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/application/usecase"
	"github.com/bnema/bilishell/internal/cli/model"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/bnema/bilishell/internal/logging"
	"github.com/bnema/bilishell/internal/ui/coordinator"
	"github.com/bnema/bilishell/internal/ui/mainloop"
)

const snapshotKey = "snapshot"

// Shell holds the coordinating loop and everything that runs on it.
type Shell struct {
	Loop         *mainloop.Loop
	Site         entity.SiteProfile
	Sync         *usecase.SyncNavigationUseCase
	Inject       *usecase.InjectScriptUseCase
	Fullscreen   *usecase.AutoFullscreenUseCase
	Coordinator  *coordinator.NavigationCoordinator
	unsubscribes []func()
}

// NewShell builds the use cases and the coordinator on a fresh loop.
func NewShell(ctx context.Context, site entity.SiteProfile, policy entity.AutoFullscreenPolicy) *Shell {
	loop := mainloop.New()
	classifier := url.NewClassifier(site)

	syncUC := usecase.NewSyncNavigationUseCase(loop.Post, classifier)
	injectUC := usecase.NewInjectScriptUseCase(syncUC)
	fullscreenUC := usecase.NewAutoFullscreenUseCase(injectUC, loop.Post, policy)
	coord := coordinator.NewNavigationCoordinator(
		logging.WithComponent(ctx, "coordinator"),
		site, classifier, syncUC, injectUC, fullscreenUC,
	)

	return &Shell{
		Loop:        loop,
		Site:        site,
		Sync:        syncUC,
		Inject:      injectUC,
		Fullscreen:  fullscreenUC,
		Coordinator: coord,
	}
}

// Open attaches surface and makes startURL authoritative. It posts onto the loop.
func (s *Shell) Open(ctx context.Context, surface port.Surface, startURL string) {
	s.Loop.Post(func() {
		s.Sync.Attach(ctx, surface)
		s.Sync.Set(ctx, startURL)
	})
}

// Publish forwards snapshots and auto-fullscreen outcomes to send.
// Bursts of navigation events collapse into one snapshot.
func (s *Shell) Publish(send func(tea.Msg)) {
	unsubscribe := s.Sync.Subscribe(func(usecase.NavigationEvent) {
		s.Loop.Coalesce(snapshotKey, func() {
			send(model.SnapshotMsg{Snapshot: s.Sync.Snapshot()})
		})
	})
	s.unsubscribes = append(s.unsubscribes, unsubscribe)

	s.Fullscreen.OnOutcome(func(o usecase.FullscreenOutcome) {
		if o.Success {
			send(model.StatusMsg{Text: "fullscreen on " + o.Page.String()})
			return
		}
		send(model.StatusMsg{Text: "could not enter fullscreen on " + o.Page.String(), Error: true})
	})
}

// Close detaches observers and the coordinator. It must run on the loop.
func (s *Shell) Close(ctx context.Context) {
	for _, unsubscribe := range s.unsubscribes {
		unsubscribe()
	}
	s.unsubscribes = nil
	s.Coordinator.Close()
	s.Sync.Detach(ctx)
}

// Controller returns the panel's command sink. Every command is posted
// onto the loop; failures come back to send as status lines.
func (s *Shell) Controller(ctx context.Context, send func(tea.Msg)) model.Controller {
	return &loopController{ctx: ctx, shell: s, send: send}
}

type loopController struct {
	ctx   context.Context
	shell *Shell
	send  func(tea.Msg)
}

func (c *loopController) GoHome() {
	c.shell.Loop.Post(func() { c.shell.Coordinator.GoHome(c.ctx) })
}

func (c *loopController) Search(keyword string) {
	c.shell.Loop.Post(func() {
		if err := c.shell.Coordinator.Search(c.ctx, keyword); err != nil {
			c.send(model.StatusMsg{Text: err.Error(), Error: true})
		}
	})
}

func (c *loopController) GoBack() {
	c.shell.Loop.Post(func() {
		if err := c.shell.Coordinator.GoBack(c.ctx); err != nil {
			c.send(model.StatusMsg{Text: err.Error(), Error: true})
		}
	})
}

func (c *loopController) ToggleFullscreen() {
	c.shell.Loop.Post(func() {
		if !c.shell.Coordinator.ToggleFullscreen(c.ctx) {
			c.send(model.StatusMsg{Text: "fullscreen toggle did not complete", Error: true})
		}
	})
}

func (c *loopController) TogglePlayPause() {
	c.shell.Loop.Post(func() {
		if !c.shell.Coordinator.TogglePlayPause(c.ctx) {
			c.send(model.StatusMsg{Text: "play/pause did not complete", Error: true})
		}
	})
}
