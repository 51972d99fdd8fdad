package solver

import (
	"github.com/rybkr/sudoku-solver/internal/grid"
)

// DefaultStepInterval is the default throttle for the OnStep callback.
const DefaultStepInterval = 50

// Options configures solve behavior.
type Options struct {
	// Animate enables the OnStep progress callback.
	Animate bool

	// OnStep receives a snapshot of the working grid and the running step
	// count. It is invoked at most once per StepInterval recursive steps,
	// and only when Animate is true. The snapshot is a value copy — callers
	// may retain it without aliasing solver state.
	OnStep func(g grid.Grid, steps int)

	// StepInterval throttles OnStep. Values <= 0 fall back to
	// DefaultStepInterval. The throttle bounds callback volume only; it has
	// no effect on the search itself.
	StepInterval int
}

// DefaultOptions returns standard solver options.
func DefaultOptions() *Options {
	return &Options{
		StepInterval: DefaultStepInterval,
	}
}
