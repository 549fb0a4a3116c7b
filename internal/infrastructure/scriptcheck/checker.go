// Package scriptcheck parses and rehearses player scripts in an embedded
// JavaScript engine before they are injected into a page.
package scriptcheck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/bilishell/internal/domain/entity"
	"github.com/grafana/sobek"
)

const defaultRehearsalTimeout = time.Second

// Checker validates script bodies with sobek. It implements port.ScriptValidator.
type Checker struct {
	timeout time.Duration
	mu      sync.Mutex
}

// Rehearsal is the outcome of running a script against a stub document.
type Rehearsal struct {
	// Queried lists the selectors passed to document.querySelector, in order.
	Queried []string
	// Clicked lists the selectors whose element received click().
	Clicked []string
	Value   any
}

// NewChecker creates a checker. A non-positive timeout bounds rehearsals at one second.
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultRehearsalTimeout
	}
	return &Checker{timeout: timeout}
}

// Validate parses source without executing it.
func (c *Checker) Validate(name, source string) error {
	if _, err := sobek.Compile(name, source, false); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// NamedScript pairs a script body with a stable name for diagnostics.
type NamedScript struct {
	Name   string
	Source string
}

// Named lists the player scripts in a fixed order.
func Named(scripts entity.PlayerScripts) []NamedScript {
	return []NamedScript{
		{Name: "watch-fullscreen", Source: scripts.WatchFullscreen},
		{Name: "watch-play-pause", Source: scripts.WatchPlayPause},
		{Name: "bangumi-fullscreen", Source: scripts.BangumiFullscreen},
	}
}

// Rehearse runs source against a stub document. When present is true every
// querySelector call returns a clickable element; otherwise it returns null.
// A script that throws, or runs past the timeout, returns an error.
func (c *Checker) Rehearse(ctx context.Context, name, source string, present bool) (*Rehearsal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	program, err := sobek.Compile(name, source, false)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	vm := sobek.New()
	result := &Rehearsal{}
	if err := installDocument(vm, result, present); err != nil {
		return nil, fmt.Errorf("failed to install stub document: %w", err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-timer.C:
			vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	val, err := vm.RunProgram(program)
	if err != nil {
		return result, fmt.Errorf("script %s: %w", name, err)
	}
	result.Value = exportValue(val)
	return result, nil
}

func installDocument(vm *sobek.Runtime, result *Rehearsal, present bool) error {
	doc := vm.NewObject()
	err := doc.Set("querySelector", func(call sobek.FunctionCall) sobek.Value {
		selector := call.Argument(0).String()
		result.Queried = append(result.Queried, selector)
		if !present {
			return sobek.Null()
		}
		el := vm.NewObject()
		_ = el.Set("click", func(sobek.FunctionCall) sobek.Value {
			result.Clicked = append(result.Clicked, selector)
			return sobek.Undefined()
		})
		return el
	})
	if err != nil {
		return err
	}
	if err := vm.Set("document", doc); err != nil {
		return err
	}
	return vm.Set("window", vm.GlobalObject())
}

func exportValue(val sobek.Value) any {
	if val == nil || sobek.IsUndefined(val) || sobek.IsNull(val) {
		return nil
	}
	return val.Export()
}
