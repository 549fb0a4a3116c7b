// Package mainloop provides the serial coordinating context every
// navigation state mutation runs on.
package mainloop

import (
	"context"
	"sync"

	"github.com/bnema/bilishell/internal/logging"
)

// Loop is a single goroutine draining a FIFO of closures. Post is safe from
// any goroutine, including from tasks already running on the loop.
type Loop struct {
	mu      sync.Mutex
	tasks   []func()
	keyed   map[string]func()
	stopped bool

	wake chan struct{}
	quit chan struct{}
	once sync.Once
}

// New creates a stopped-until-Run loop.
func New() *Loop {
	return &Loop{
		keyed: make(map[string]func()),
		wake:  make(chan struct{}, 1),
		quit:  make(chan struct{}),
	}
}

// Post queues fn. Work posted after Stop is dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	l.signal()
}

// Coalesce merges bursts of same-key work: while a task for key is queued,
// later calls replace its body instead of queueing again. The task keeps
// its original queue position and runs the latest body.
func (l *Loop) Coalesce(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	_, pending := l.keyed[key]
	l.keyed[key] = fn
	if !pending {
		l.tasks = append(l.tasks, func() { l.runKeyed(key) })
	}
	l.mu.Unlock()

	if !pending {
		l.signal()
	}
}

func (l *Loop) runKeyed(key string) {
	l.mu.Lock()
	fn := l.keyed[key]
	delete(l.keyed, key)
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Drain runs every task queued at the time of the call on the calling
// goroutine and returns how many ran. Run uses it; tests call it directly
// to step a loop without a goroutine.
func (l *Loop) Drain(ctx context.Context) int {
	l.mu.Lock()
	batch := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, fn := range batch {
		l.runTask(ctx, fn)
	}
	return len(batch)
}

func (l *Loop) runTask(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Interface("panic", r).
				Msg("mainloop task panicked")
		}
	}()
	fn()
}

// Run drains the loop until ctx is cancelled or Stop is called.
// It must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Debug().Msg("mainloop started")
	defer log.Debug().Msg("mainloop stopped")

	for {
		if l.Drain(ctx) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.quit:
			return nil
		case <-l.wake:
		}
	}
}

// Stop makes Run return and drops queued and future work.
func (l *Loop) Stop() {
	l.once.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.tasks = nil
		l.keyed = make(map[string]func())
		l.mu.Unlock()
		close(l.quit)
	})
}
