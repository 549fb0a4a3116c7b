package usecase

import (
	"context"
	"time"

	"github.com/bnema/bilishell/internal/application/port"
	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/bnema/bilishell/internal/logging"
)

// SurfaceProvider returns the currently attached surface, or nil.
type SurfaceProvider interface {
	Surface() port.Surface
}

// Injector executes a script against the live page.
type Injector interface {
	Inject(ctx context.Context, req entity.InjectionRequest) bool
}

// InjectScriptUseCase runs scripts in the attached surface with a bounded
// wait. It is the only blocking call made on the coordinating loop.
type InjectScriptUseCase struct {
	surfaces SurfaceProvider
}

// NewInjectScriptUseCase creates a new injector over surfaces.
func NewInjectScriptUseCase(surfaces SurfaceProvider) *InjectScriptUseCase {
	return &InjectScriptUseCase{surfaces: surfaces}
}

// Inject executes req.Script and reports whether it completed without error
// before req.Timeout. With no attached surface it returns false at once.
//
// Past the deadline the evaluation is not cancelled: it may still click the
// control after Inject returned false. Its late result is discarded.
func (uc *InjectScriptUseCase) Inject(ctx context.Context, req entity.InjectionRequest) bool {
	log := logging.FromContext(ctx).With().Str("script", req.Name).Logger()

	var surface port.Surface
	if uc.surfaces != nil {
		surface = uc.surfaces.Surface()
	}
	if surface == nil {
		log.Debug().Err(ErrNoSurface).Msg("injection skipped")
		return false
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = entity.DefaultInjectionTimeout
	}

	results := make(chan port.ScriptResult, 1)
	start := time.Now()
	surface.EvaluateScript(ctx, req.Script, func(res port.ScriptResult) {
		select {
		case results <- res:
		default:
		}
	})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-results:
		if res.Err != nil {
			log.Warn().Err(res.Err).Dur("elapsed", time.Since(start)).Msg("script failed")
			return false
		}
		log.Debug().Dur("elapsed", time.Since(start)).Interface("value", res.Value).Msg("script completed")
		return true
	case <-timer.C:
		log.Warn().Dur("timeout", timeout).Msg("script timed out")
		return false
	case <-ctx.Done():
		log.Debug().Err(ctx.Err()).Msg("injection cancelled")
		return false
	}
}
