package entity

import "time"

// InjectionRequest is one script execution against the live page.
type InjectionRequest struct {
	Name    string // used in logs only
	Script  string
	Timeout time.Duration
}

// DefaultInjectionTimeout bounds one script execution when the request
// does not set its own timeout.
const DefaultInjectionTimeout = 200 * time.Millisecond

// Auto-fullscreen defaults. The player DOM renders some time after the
// load event, so the first attempt is delayed and one retry is allowed.
const (
	DefaultFullscreenInitialDelay   = 1 * time.Second
	DefaultFullscreenAttemptTimeout = DefaultInjectionTimeout
	DefaultFullscreenRetryDelay     = 2 * time.Second
	MaxFullscreenRetries            = 1
)

// AutoFullscreenPolicy bounds the fullscreen-on-arrival sequence.
type AutoFullscreenPolicy struct {
	Enabled        bool
	InitialDelay   time.Duration
	AttemptTimeout time.Duration
	RetryDelay     time.Duration
	MaxRetries     int
}

// DefaultAutoFullscreenPolicy returns the documented timing values.
func DefaultAutoFullscreenPolicy() AutoFullscreenPolicy {
	return AutoFullscreenPolicy{
		Enabled:        true,
		InitialDelay:   DefaultFullscreenInitialDelay,
		AttemptTimeout: DefaultFullscreenAttemptTimeout,
		RetryDelay:     DefaultFullscreenRetryDelay,
		MaxRetries:     MaxFullscreenRetries,
	}
}

// Normalized clamps the policy to sane values.
func (p AutoFullscreenPolicy) Normalized() AutoFullscreenPolicy {
	if p.InitialDelay < 0 {
		p.InitialDelay = 0
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = DefaultFullscreenAttemptTimeout
	}
	if p.RetryDelay < 0 {
		p.RetryDelay = 0
	}
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.MaxRetries > MaxFullscreenRetries {
		p.MaxRetries = MaxFullscreenRetries
	}
	return p
}
