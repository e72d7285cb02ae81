package sequence

import (
	"fmt"
	"time"
)

type entry struct {
	step       Step
	bestEffort bool
}

// Runner executes steps strictly in registration order.
type Runner struct {
	entries []entry
}

// NewRunner returns an empty step runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Add registers steps that abort the sequence on failure.
func (r *Runner) Add(steps ...Step) *Runner {
	for _, s := range steps {
		r.entries = append(r.entries, entry{step: s})
	}
	return r
}

// AddBestEffort registers steps whose failure is reported as a warning
// without stopping the sequence.
func (r *Runner) AddBestEffort(steps ...Step) *Runner {
	for _, s := range steps {
		r.entries = append(r.entries, entry{step: s, bestEffort: true})
	}
	return r
}

// Len returns the number of registered steps.
func (r *Runner) Len() int {
	return len(r.entries)
}

// Run executes all registered steps sequentially. It returns the first
// error from a non-best-effort step, wrapped with the step name.
func (r *Runner) Run(ctx *Context) error {
	start := time.Now()
	ctx.Observer.Info("Starting provisioning with %d steps", len(r.entries))

	for i, e := range r.entries {
		stepStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", e.step.Name(), i+1, len(r.entries))

		ctx.Observer.Info("[%s] starting", name)

		if err := e.step.Run(ctx); err != nil {
			if e.bestEffort {
				ctx.Observer.Warn("[%s] failed (ignored): %v", name, err)
				continue
			}
			ctx.Observer.Error("[%s] failed: %v", name, err)
			return fmt.Errorf("%s step failed: %w", e.step.Name(), err)
		}

		ctx.Observer.Success("[%s] completed in %v", name, time.Since(stepStart).Round(time.Millisecond))
	}

	ctx.Observer.Success("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
