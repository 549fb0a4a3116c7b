package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/logging"
)

// FullscreenOutcome reports how an auto-fullscreen sequence ended.
type FullscreenOutcome struct {
	Page     entity.Page
	Attempts int
	Success  bool
}

// AutoFullscreenUseCase clicks the player's fullscreen control shortly after
// arriving on a playable page. The player DOM renders after the load event,
// so the sequence is: wait, inject, and on failure wait again and retry.
//
// Delays run on timers off the loop; each attempt is posted back onto it.
// Sequences are never cancelled: a stale retry on an unrelated page finds
// no control and fails harmlessly.
type AutoFullscreenUseCase struct {
	injector Injector
	post     func(func())
	after    func(d time.Duration, fn func())

	mu        sync.Mutex
	policy    entity.AutoFullscreenPolicy
	onOutcome func(FullscreenOutcome)
}

// NewAutoFullscreenUseCase creates the sequence runner.
func NewAutoFullscreenUseCase(
	injector Injector,
	post func(func()),
	policy entity.AutoFullscreenPolicy,
) *AutoFullscreenUseCase {
	if post == nil {
		panic("usecase.NewAutoFullscreenUseCase: post function cannot be nil")
	}
	return &AutoFullscreenUseCase{
		injector: injector,
		post:     post,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		policy: policy.Normalized(),
	}
}

// SetPolicy replaces the timing policy. Sequences already running keep
// the policy they started with.
func (uc *AutoFullscreenUseCase) SetPolicy(policy entity.AutoFullscreenPolicy) {
	uc.mu.Lock()
	uc.policy = policy.Normalized()
	uc.mu.Unlock()
}

// Policy returns the active policy.
func (uc *AutoFullscreenUseCase) Policy() entity.AutoFullscreenPolicy {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.policy
}

// OnOutcome registers a hook called on the loop when a sequence ends.
func (uc *AutoFullscreenUseCase) OnOutcome(fn func(FullscreenOutcome)) {
	uc.mu.Lock()
	uc.onOutcome = fn
	uc.mu.Unlock()
}

// Start schedules the sequence for page using script. It returns false
// when the policy is disabled.
func (uc *AutoFullscreenUseCase) Start(ctx context.Context, page entity.Page, script string) bool {
	policy := uc.Policy()
	if !policy.Enabled || script == "" {
		return false
	}

	logging.FromContext(ctx).Debug().
		Str("page", page.String()).
		Dur("delay", policy.InitialDelay).
		Msg("auto-fullscreen scheduled")

	uc.schedule(ctx, policy.InitialDelay, func() {
		uc.attempt(ctx, policy, page, script, 1)
	})
	return true
}

func (uc *AutoFullscreenUseCase) schedule(ctx context.Context, d time.Duration, fn func()) {
	uc.after(d, func() {
		if ctx.Err() != nil {
			return
		}
		uc.post(fn)
	})
}

func (uc *AutoFullscreenUseCase) attempt(
	ctx context.Context,
	policy entity.AutoFullscreenPolicy,
	page entity.Page,
	script string,
	n int,
) {
	log := logging.FromContext(ctx)

	ok := uc.injector.Inject(ctx, entity.InjectionRequest{
		Name:    "auto-fullscreen",
		Script:  script,
		Timeout: policy.AttemptTimeout,
	})
	if ok {
		log.Debug().Str("page", page.String()).Int("attempt", n).Msg("auto-fullscreen succeeded")
		uc.report(FullscreenOutcome{Page: page, Attempts: n, Success: true})
		return
	}

	if n <= policy.MaxRetries {
		log.Debug().
			Str("page", page.String()).
			Int("attempt", n).
			Dur("retry_in", policy.RetryDelay).
			Msg("auto-fullscreen attempt failed, retrying")
		uc.schedule(ctx, policy.RetryDelay, func() {
			uc.attempt(ctx, policy, page, script, n+1)
		})
		return
	}

	log.Warn().Str("page", page.String()).Int("attempts", n).Msg("auto-fullscreen gave up")
	uc.report(FullscreenOutcome{Page: page, Attempts: n, Success: false})
}

func (uc *AutoFullscreenUseCase) report(outcome FullscreenOutcome) {
	uc.mu.Lock()
	fn := uc.onOutcome
	uc.mu.Unlock()
	if fn != nil {
		fn(outcome)
	}
}
