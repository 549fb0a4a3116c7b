package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/application/port/mocks"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/domain/url"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	homeURL  = "https://www.bilibili.com"
	watchURL = "https://www.bilibili.com/video/BV1xyz/?p=1"
	otherURL = "https://www.bilibili.com/video/BV9abc/"
)

// taskQueue stands in for the coordinating loop.
type taskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *taskQueue) post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

func (q *taskQueue) drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

type syncFixture struct {
	uc        *SyncNavigationUseCase
	queue     *taskQueue
	surface   *mocks.MockSurface
	callbacks *port.SurfaceCallbacks
	events    []NavigationEvent
}

func (f *syncFixture) kinds() []NavigationEventKind {
	out := make([]NavigationEventKind, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (f *syncFixture) count(kind NavigationEventKind) int {
	n := 0
	for _, ev := range f.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// newSyncFixture builds a synchronizer with an observer and a mock surface
// that reports live as its current URL. The surface is not attached yet.
func newSyncFixture(t *testing.T, live string) *syncFixture {
	t.Helper()
	f := &syncFixture{
		queue:   &taskQueue{},
		surface: mocks.NewMockSurface(t),
	}
	f.uc = NewSyncNavigationUseCase(f.queue.post, url.NewClassifier(entity.BilibiliProfile()))
	f.uc.Subscribe(func(ev NavigationEvent) { f.events = append(f.events, ev) })

	f.surface.EXPECT().SetCallbacks(mock.Anything).
		Run(func(cb *port.SurfaceCallbacks) {
			if cb != nil {
				f.callbacks = cb
			}
		}).Return()
	f.surface.EXPECT().URI().Return(live).Maybe()
	f.surface.EXPECT().CanGoBack().Return(false).Maybe()
	return f
}

func TestSync_SetBeforeAttachDefersLoad(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")

	f.uc.Set(ctx, homeURL)
	assert.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)

	f.surface.EXPECT().LoadURI(mock.Anything, homeURL).Return(nil).Once()
	f.uc.Attach(ctx, f.surface)

	assert.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)
	assert.True(t, f.uc.Snapshot().SurfaceAttached)
}

func TestSync_SetCanonicallyEqualToLiveDoesNotLoad(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, watchURL+"&vd_source=0f9e8d")

	f.uc.Attach(ctx, f.surface)
	f.uc.Set(ctx, watchURL)

	// No LoadURI expectation: any load call fails the test.
	st := f.uc.State()
	assert.Equal(t, entity.PhaseSettled, st.Phase)
	assert.Equal(t, watchURL, st.AuthoritativeURL)
}

func TestSync_SetIssuesLoadAndSettlesOnMatchingFinish(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, watchURL).Return(nil).Once()
	f.uc.Set(ctx, watchURL)
	assert.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)

	f.uc.HandleNavigationFinished(ctx, watchURL+"&vd_source=abc", true)

	st := f.uc.State()
	assert.Equal(t, entity.PhaseSettled, st.Phase)
	assert.Equal(t, watchURL, st.AuthoritativeURL, "canonically equal finish keeps the requested URL")
	assert.True(t, st.CanGoBack)
	assert.Equal(t, 1, f.count(EventArrived))

	snap := f.uc.Snapshot()
	assert.Equal(t, entity.Page{Kind: entity.PageVideoWatch, ID: "BV1xyz"}, snap.Page)
	assert.True(t, snap.Affordances.CanToggleFullscreen)
	assert.True(t, snap.Affordances.CanTogglePlayPause)
}

func TestSync_FinishWithDifferentURLIsAdopted(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, homeURL).Return(nil).Once()
	f.uc.Set(ctx, homeURL)
	f.events = nil

	f.uc.HandleNavigationFinished(ctx, otherURL, true)

	st := f.uc.State()
	assert.Equal(t, otherURL, st.AuthoritativeURL)
	assert.Equal(t, entity.PhaseSettled, st.Phase)
	assert.Equal(t, []NavigationEventKind{EventAuthoritativeChanged, EventSettled, EventArrived}, f.kinds())
	assert.Equal(t, entity.PageVideoWatch, f.events[2].Snapshot.Page.Kind)
}

func TestSync_InPageNavigationWhileSettledIsAdopted(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, homeURL).Return(nil).Once()
	f.uc.Set(ctx, homeURL)
	f.uc.HandleNavigationFinished(ctx, homeURL+"/", false)
	require.Equal(t, entity.PhaseSettled, f.uc.State().Phase)

	f.uc.HandleNavigationFinished(ctx, watchURL, true)

	assert.Equal(t, watchURL, f.uc.State().AuthoritativeURL)
	assert.Equal(t, 2, f.count(EventArrived))
}

func TestSync_RedirectBackToPreviousPageIsAdopted(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, homeURL+"/")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, watchURL).Return(nil).Once()
	f.uc.Set(ctx, watchURL)

	f.uc.HandleNavigationFinished(ctx, homeURL+"/", false)

	st := f.uc.State()
	assert.Equal(t, homeURL+"/", st.AuthoritativeURL)
	assert.Equal(t, entity.PhaseSettled, st.Phase)
	assert.Equal(t, entity.PageHome, f.uc.Snapshot().Page.Kind)
	assert.False(t, f.uc.Snapshot().Affordances.CanTogglePlayPause)
}

func TestSync_HomeWhileOnHomeSettles(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, homeURL+"/")
	f.uc.Attach(ctx, f.surface)

	// The configured home has no trailing slash, so it is a different URL.
	f.surface.EXPECT().LoadURI(mock.Anything, homeURL).Return(nil).Once()
	f.uc.Set(ctx, homeURL)
	require.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)

	f.uc.HandleNavigationFinished(ctx, homeURL+"/", false)

	st := f.uc.State()
	assert.Equal(t, entity.PhaseSettled, st.Phase)
	assert.Equal(t, homeURL+"/", st.LiveURL)
	assert.Equal(t, homeURL+"/", st.AuthoritativeURL)
}

func TestSync_RepeatedSetWhilePendingLoadsOnce(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, watchURL).Return(nil).Once()
	f.uc.Set(ctx, watchURL)
	f.uc.Set(ctx, watchURL+"&vd_source=x")

	assert.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)
}

func TestSync_FailureKeepsPhaseAndAllowsManualRetry(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, watchURL).Return(nil).Twice()
	f.uc.Set(ctx, watchURL)

	failure := errors.New("net::ERR_NAME_NOT_RESOLVED")
	f.uc.HandleNavigationFailed(ctx, failure, true)

	assert.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)
	require.Equal(t, 1, f.count(EventFailed))
	last := f.events[len(f.events)-1]
	assert.Equal(t, EventFailed, last.Kind)
	assert.ErrorIs(t, last.Err, failure)

	f.uc.Set(ctx, watchURL)
}

func TestSync_LoadErrorIsReportedNotReturned(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, watchURL).Return(errors.New("target closed")).Once()
	f.uc.Set(ctx, watchURL)

	assert.Equal(t, entity.PhaseLoadRequested, f.uc.State().Phase)
	assert.Equal(t, 1, f.count(EventFailed))
}

func TestSync_SurfaceCallbacksArePostedToLoop(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)
	require.NotNil(t, f.callbacks)

	f.surface.EXPECT().LoadURI(mock.Anything, homeURL).Return(nil).Once()
	f.uc.Set(ctx, homeURL)

	done := make(chan struct{})
	go func() {
		f.callbacks.OnNavigationFinished(watchURL, true)
		close(done)
	}()
	<-done

	assert.Equal(t, homeURL, f.uc.State().AuthoritativeURL, "state untouched until the loop runs")
	assert.Equal(t, 1, f.queue.drain())
	assert.Equal(t, watchURL, f.uc.State().AuthoritativeURL)
}

func TestSync_NewWindowLoadsInSameSurface(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	f.surface.EXPECT().LoadURI(mock.Anything, otherURL).Return(nil).Once()
	f.callbacks.OnNewWindowRequested(otherURL)
	f.queue.drain()

	assert.Equal(t, otherURL, f.uc.State().AuthoritativeURL)
}

func TestSync_NewWindowHandlerOverride(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, "")
	f.uc.Attach(ctx, f.surface)

	var got string
	f.uc.SetNewWindowHandler(func(_ context.Context, uri string) { got = uri })
	f.callbacks.OnNewWindowRequested(otherURL)
	f.queue.drain()

	assert.Equal(t, otherURL, got)
}

func TestSync_FailureRefreshesCanGoBack(t *testing.T) {
	ctx := context.Background()
	q := &taskQueue{}
	s := mocks.NewMockSurface(t)
	s.EXPECT().SetCallbacks(mock.Anything).Return()
	s.EXPECT().URI().Return("")
	s.EXPECT().CanGoBack().Return(false).Once()
	s.EXPECT().CanGoBack().Return(true).Once()

	uc := NewSyncNavigationUseCase(q.post, url.NewClassifier(entity.BilibiliProfile()))
	uc.Attach(ctx, s)
	assert.False(t, uc.State().CanGoBack)

	uc.HandleNavigationFailed(ctx, errors.New("boom"), false)
	assert.True(t, uc.State().CanGoBack)
	assert.True(t, uc.Snapshot().Affordances.CanGoBack)
}

func TestSync_DetachClearsSurface(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t, homeURL)
	f.uc.Attach(ctx, f.surface)

	f.uc.Detach(ctx)

	assert.Nil(t, f.uc.Surface())
	assert.False(t, f.uc.Snapshot().SurfaceAttached)
	f.surface.AssertCalled(t, "SetCallbacks", (*port.SurfaceCallbacks)(nil))
}

func TestSync_UnsubscribeStopsEvents(t *testing.T) {
	q := &taskQueue{}
	uc := NewSyncNavigationUseCase(q.post, url.NewClassifier(entity.BilibiliProfile()))

	n := 0
	unsubscribe := uc.Subscribe(func(NavigationEvent) { n++ })
	uc.Set(context.Background(), homeURL)
	unsubscribe()
	uc.Set(context.Background(), watchURL)

	assert.Equal(t, 1, n)
}

func TestNewSyncNavigationUseCase_PanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() {
		NewSyncNavigationUseCase(nil, url.NewClassifier(entity.BilibiliProfile()))
	})
}
