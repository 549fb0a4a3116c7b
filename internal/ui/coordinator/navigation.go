// Package coordinator dispatches user commands to the navigation use cases.
package coordinator

import (
	"context"
	"fmt"

	"github.com/bnema/bilishell/internal/application/usecase"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/bnema/bilishell/internal/logging"
)

// NavigationCoordinator is the command dispatcher: it turns the host UI's
// commands into authoritative URL changes, surface history moves and
// player script injections. All methods run on the coordinating loop.
type NavigationCoordinator struct {
	site         entity.SiteProfile
	classifier   *url.Classifier
	syncUC       *usecase.SyncNavigationUseCase
	injector     usecase.Injector
	fullscreenUC *usecase.AutoFullscreenUseCase
	unsubscribe  func()
}

// NewNavigationCoordinator creates a new NavigationCoordinator and hooks it
// to the synchronizer's new-window requests and arrival events.
// fullscreenUC may be nil to disable auto-fullscreen entirely.
func NewNavigationCoordinator(
	ctx context.Context,
	site entity.SiteProfile,
	classifier *url.Classifier,
	syncUC *usecase.SyncNavigationUseCase,
	injector usecase.Injector,
	fullscreenUC *usecase.AutoFullscreenUseCase,
) *NavigationCoordinator {
	log := logging.FromContext(ctx)
	log.Debug().Str("site", site.Name).Msg("creating navigation coordinator")

	c := &NavigationCoordinator{
		site:         site,
		classifier:   classifier,
		syncUC:       syncUC,
		injector:     injector,
		fullscreenUC: fullscreenUC,
	}
	syncUC.SetNewWindowHandler(c.OpenInSurface)
	c.unsubscribe = syncUC.Subscribe(func(ev usecase.NavigationEvent) {
		if ev.Kind == usecase.EventArrived {
			c.onArrived(ctx, ev.Snapshot.Page)
		}
	})
	return c
}

// Close detaches the coordinator from the synchronizer.
func (c *NavigationCoordinator) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Snapshot returns the current navigation snapshot.
func (c *NavigationCoordinator) Snapshot() entity.NavigationSnapshot {
	return c.syncUC.Snapshot()
}

// GoHome makes the site's home page authoritative.
func (c *NavigationCoordinator) GoHome(ctx context.Context) {
	logging.FromContext(ctx).Debug().Msg("go home")
	c.syncUC.Set(ctx, c.site.HomeURL)
}

// CanSearch reports whether keyword enables the search command.
func (c *NavigationCoordinator) CanSearch(keyword string) bool {
	return url.CanSearch(keyword)
}

// Search navigates to the site's search results for keyword.
// A blank keyword is a no-op reported as url.ErrEmptyKeyword.
func (c *NavigationCoordinator) Search(ctx context.Context, keyword string) error {
	target, err := url.BuildSearchURL(c.site, keyword)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("search ignored")
		return err
	}
	logging.FromContext(ctx).Debug().Str("url", logging.TruncateURL(target)).Msg("search")
	c.syncUC.Set(ctx, target)
	return nil
}

// GoBack moves the surface one entry back in its own history. The
// synchronizer adopts the resulting page when it finishes loading.
func (c *NavigationCoordinator) GoBack(ctx context.Context) error {
	log := logging.FromContext(ctx)

	surface := c.syncUC.Surface()
	if surface == nil {
		log.Debug().Msg("no surface for go back")
		return usecase.ErrNoSurface
	}
	if !c.syncUC.State().CanGoBack {
		log.Debug().Msg("go back disabled")
		return usecase.ErrCannotGoBack
	}

	if err := surface.GoBack(ctx); err != nil {
		log.Warn().Err(err).Msg("go back failed")
		return fmt.Errorf("go back: %w", err)
	}
	return nil
}

// ToggleFullscreen clicks the player's web-fullscreen control on watch and
// bangumi pages. It is a no-op elsewhere.
func (c *NavigationCoordinator) ToggleFullscreen(ctx context.Context) bool {
	page := c.currentPage()
	script := c.fullscreenScript(page.Kind)
	if script == "" {
		logging.FromContext(ctx).Debug().Str("page", page.String()).Msg("fullscreen not available")
		return false
	}
	return c.injector.Inject(ctx, entity.InjectionRequest{
		Name:    "toggle-fullscreen",
		Script:  script,
		Timeout: entity.DefaultInjectionTimeout,
	})
}

// TogglePlayPause clicks the player's play control on watch pages.
// Bangumi pages have no play/pause script and are a no-op.
func (c *NavigationCoordinator) TogglePlayPause(ctx context.Context) bool {
	page := c.currentPage()
	if page.Kind != entity.PageVideoWatch {
		logging.FromContext(ctx).Debug().Str("page", page.String()).Msg("play/pause not available")
		return false
	}
	return c.injector.Inject(ctx, entity.InjectionRequest{
		Name:    "toggle-play-pause",
		Script:  c.site.Scripts.WatchPlayPause,
		Timeout: entity.DefaultInjectionTimeout,
	})
}

// OpenInSurface loads a destination the page asked to open in a new window
// in the existing surface instead. Destinations off the site are dropped.
func (c *NavigationCoordinator) OpenInSurface(ctx context.Context, uri string) {
	log := logging.FromContext(ctx)

	target := url.Normalize(uri)
	host := url.ExtractHost(target)
	if host == "" {
		log.Debug().Str("uri", logging.TruncateURL(uri)).Msg("ignoring new-window request without a web destination")
		return
	}
	if !url.HostMatches(host, c.site.Domain) {
		log.Info().Str("url", logging.TruncateURL(target)).Msg("ignoring new-window request off the site")
		return
	}
	log.Debug().Str("url", logging.TruncateURL(target)).Msg("redirecting new-window request into surface")
	c.syncUC.Set(ctx, target)
}

func (c *NavigationCoordinator) onArrived(ctx context.Context, page entity.Page) {
	if c.fullscreenUC == nil || !page.IsPlayable() {
		return
	}
	c.fullscreenUC.Start(ctx, page, c.fullscreenScript(page.Kind))
}

func (c *NavigationCoordinator) currentPage() entity.Page {
	return c.classifier.Classify(c.syncUC.State().AuthoritativeURL)
}

func (c *NavigationCoordinator) fullscreenScript(kind entity.PageKind) string {
	switch kind {
	case entity.PageVideoWatch:
		return c.site.Scripts.WatchFullscreen
	case entity.PageBangumiEpisode:
		return c.site.Scripts.BangumiFullscreen
	default:
		return ""
	}
}
