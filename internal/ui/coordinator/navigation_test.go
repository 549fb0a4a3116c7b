package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/application/port/mocks"
	"github.com/bnema/bilishell/internal/application/usecase"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingInjector struct {
	mu       sync.Mutex
	result   bool
	requests []entity.InjectionRequest
}

func (r *recordingInjector) Inject(_ context.Context, req entity.InjectionRequest) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return r.result
}

func (r *recordingInjector) scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, req.Script)
	}
	return out
}

type fixture struct {
	site     entity.SiteProfile
	syncUC   *usecase.SyncNavigationUseCase
	surface  *mocks.MockSurface
	injector *recordingInjector
	coord    *NavigationCoordinator
}

func syncPost(fn func()) { fn() }

func newFixture(t *testing.T, fullscreen *usecase.AutoFullscreenUseCase, injector *recordingInjector) *fixture {
	t.Helper()
	site := entity.BilibiliProfile()
	classifier := url.NewClassifier(site)

	f := &fixture{
		site:     site,
		syncUC:   usecase.NewSyncNavigationUseCase(syncPost, classifier),
		surface:  mocks.NewMockSurface(t),
		injector: injector,
	}
	f.surface.EXPECT().SetCallbacks(mock.Anything).Return().Maybe()
	f.surface.EXPECT().URI().Return("").Maybe()
	f.surface.EXPECT().CanGoBack().Return(false).Maybe()
	f.surface.EXPECT().LoadURI(mock.Anything, mock.Anything).Return(nil).Maybe()

	f.coord = NewNavigationCoordinator(context.Background(), site, classifier, f.syncUC, injector, fullscreen)
	t.Cleanup(f.coord.Close)
	f.syncUC.Attach(context.Background(), f.surface)
	return f
}

func (f *fixture) arriveAt(raw string, canGoBack bool) {
	ctx := context.Background()
	f.syncUC.Set(ctx, raw)
	f.syncUC.HandleNavigationFinished(ctx, raw, canGoBack)
}

func TestNavigationCoordinator_GoHomeSetsHomeURL(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})

	f.coord.GoHome(context.Background())

	assert.Equal(t, "https://www.bilibili.com", f.syncUC.State().AuthoritativeURL)
	f.surface.AssertCalled(t, "LoadURI", mock.Anything, "https://www.bilibili.com")
}

func TestNavigationCoordinator_SearchBuildsSearchURL(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})

	require.NoError(t, f.coord.Search(context.Background(), "4k 街景"))

	got := f.syncUC.State().AuthoritativeURL
	assert.Equal(t,
		"https://search.bilibili.com/all?keyword=4k%20%E8%A1%97%E6%99%AF&from_source=webtop_search&spm_id_from=333.788&search_source=3",
		got)
	assert.Equal(t, entity.PageSearch, f.coord.Snapshot().Page.Kind)
}

func TestNavigationCoordinator_EmptySearchIsNoop(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})

	err := f.coord.Search(context.Background(), "   ")

	assert.ErrorIs(t, err, url.ErrEmptyKeyword)
	assert.Empty(t, f.syncUC.State().AuthoritativeURL)
	assert.False(t, f.coord.CanSearch(" "))
	assert.True(t, f.coord.CanSearch("cats"))
	f.surface.AssertNotCalled(t, "LoadURI", mock.Anything, mock.Anything)
}

func TestNavigationCoordinator_GoBack(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})

	err := f.coord.GoBack(context.Background())
	assert.ErrorIs(t, err, usecase.ErrCannotGoBack)

	f.arriveAt("https://www.bilibili.com/video/BV1xyz/", true)
	f.surface.EXPECT().GoBack(mock.Anything).Return(nil).Once()
	require.NoError(t, f.coord.GoBack(context.Background()))
}

func TestNavigationCoordinator_GoBackWrapsSurfaceError(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})
	f.arriveAt("https://www.bilibili.com/video/BV1xyz/", true)

	cause := errors.New("no history entry")
	f.surface.EXPECT().GoBack(mock.Anything).Return(cause).Once()

	err := f.coord.GoBack(context.Background())
	assert.ErrorIs(t, err, cause)
}

func TestNavigationCoordinator_GoBackWithoutSurface(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})
	f.syncUC.Detach(context.Background())

	assert.ErrorIs(t, f.coord.GoBack(context.Background()), usecase.ErrNoSurface)
}

func TestNavigationCoordinator_ToggleCommandsByPageKind(t *testing.T) {
	scripts := entity.BilibiliProfile().Scripts

	tests := []struct {
		name           string
		url            string
		wantFullscreen []string
		wantPlayPause  []string
	}{
		{
			name:           "watch page",
			url:            "https://www.bilibili.com/video/BV1xyz/?p=1",
			wantFullscreen: []string{scripts.WatchFullscreen},
			wantPlayPause:  []string{scripts.WatchPlayPause},
		},
		{
			name:           "bangumi page has no play/pause",
			url:            "https://www.bilibili.com/bangumi/play/ep733316",
			wantFullscreen: []string{scripts.BangumiFullscreen},
			wantPlayPause:  []string{},
		},
		{
			name:           "home page",
			url:            "https://www.bilibili.com",
			wantFullscreen: []string{},
			wantPlayPause:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			inj := &recordingInjector{result: true}
			f := newFixture(t, nil, inj)
			f.arriveAt(tt.url, false)

			fs := f.coord.ToggleFullscreen(ctx)
			assert.Equal(t, len(tt.wantFullscreen) == 1, fs)
			assert.Equal(t, tt.wantFullscreen, inj.scripts())

			inj.requests = nil
			pp := f.coord.TogglePlayPause(ctx)
			assert.Equal(t, len(tt.wantPlayPause) == 1, pp)
			assert.Equal(t, tt.wantPlayPause, inj.scripts())
		})
	}
}

func TestNavigationCoordinator_ToggleUsesInjectionTimeout(t *testing.T) {
	inj := &recordingInjector{result: true}
	f := newFixture(t, nil, inj)
	f.arriveAt("https://www.bilibili.com/video/BV1xyz/", false)

	f.coord.ToggleFullscreen(context.Background())

	require.Len(t, inj.requests, 1)
	assert.Equal(t, 200*time.Millisecond, inj.requests[0].Timeout)
}

func TestNavigationCoordinator_NewWindowOpensInSurface(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})

	var cb *port.SurfaceCallbacks
	for _, call := range f.surface.Calls {
		if call.Method == "SetCallbacks" {
			cb = call.Arguments.Get(0).(*port.SurfaceCallbacks)
		}
	}
	require.NotNil(t, cb)

	cb.OnNewWindowRequested("//www.bilibili.com/video/BV1new")

	assert.Equal(t, "https://www.bilibili.com/video/BV1new", f.syncUC.State().AuthoritativeURL)
}

func TestNavigationCoordinator_OpenInSurfaceIgnoresNonWebTargets(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})

	f.coord.OpenInSurface(context.Background(), "about:blank")
	f.coord.OpenInSurface(context.Background(), "")

	assert.Empty(t, f.syncUC.State().AuthoritativeURL)
}

func TestNavigationCoordinator_OpenInSurfaceStaysOnSite(t *testing.T) {
	f := newFixture(t, nil, &recordingInjector{})
	ctx := context.Background()

	f.coord.OpenInSurface(ctx, "https://www.example.com/login")
	f.coord.OpenInSurface(ctx, "https://notbilibili.com/")
	assert.Empty(t, f.syncUC.State().AuthoritativeURL)

	f.coord.OpenInSurface(ctx, "https://space.bilibili.com/2")
	assert.Equal(t, "https://space.bilibili.com/2", f.syncUC.State().AuthoritativeURL)
}

func TestNavigationCoordinator_ArrivalOnPlayablePageStartsAutoFullscreen(t *testing.T) {
	inj := &recordingInjector{result: true}
	posted := make(chan func(), 4)
	fullscreen := usecase.NewAutoFullscreenUseCase(inj, func(fn func()) { posted <- fn }, entity.AutoFullscreenPolicy{
		Enabled:        true,
		InitialDelay:   time.Millisecond,
		AttemptTimeout: time.Millisecond,
		MaxRetries:     1,
	})
	outcomes := make(chan usecase.FullscreenOutcome, 1)
	fullscreen.OnOutcome(func(o usecase.FullscreenOutcome) { outcomes <- o })

	f := newFixture(t, fullscreen, inj)
	f.arriveAt("https://www.bilibili.com/video/BV1xyz/", false)

	for {
		select {
		case fn := <-posted:
			fn()
		case o := <-outcomes:
			assert.True(t, o.Success)
			assert.Equal(t, entity.PageVideoWatch, o.Page.Kind)
			assert.Equal(t, []string{f.site.Scripts.WatchFullscreen}, inj.scripts())
			return
		case <-time.After(2 * time.Second):
			t.Fatal("auto-fullscreen did not run")
		}
	}
}

func TestNavigationCoordinator_ArrivalOnHomeDoesNotStartAutoFullscreen(t *testing.T) {
	inj := &recordingInjector{result: true}
	fullscreen := usecase.NewAutoFullscreenUseCase(inj, func(fn func()) { fn() }, entity.AutoFullscreenPolicy{
		Enabled:        true,
		AttemptTimeout: time.Millisecond,
	})

	f := newFixture(t, fullscreen, inj)
	f.arriveAt("https://www.bilibili.com", false)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, inj.scripts())
}
