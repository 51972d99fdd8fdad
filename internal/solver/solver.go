// Package solver implements a backtracking Sudoku solver that tracks placed
// digits with per-row, per-column, and per-box bitmasks and picks the next
// cell with the MRV (Minimum Remaining Values) heuristic.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"github.com/rybkr/sudoku-solver/internal/grid"
	"github.com/rybkr/sudoku-solver/internal/validator"
)

var (
	ErrInvalidGrid = errors.New("grid violates Sudoku constraints")
)

// Bitmask of all nine candidate digits.
const allNine = 511

// Result is the outcome of one solve call.
type Result struct {
	// Solved reports whether a complete assignment was found.
	Solved bool

	// Grid is the working grid at the end of the search: the solution when
	// Solved is true, otherwise the state after exhausting the search (all
	// tried placements undone).
	Grid grid.Grid

	// Steps counts the recursive decision points explored, >= 1 for any call.
	Steps int
}

// Solver holds the working state for one solve call: a private copy of the
// grid and the three constraint mask arrays. Bit d-1 of a mask is set iff
// digit d is placed somewhere in that row, column, or box; every placement
// and removal updates the grid and all three masks together.
//
// A Solver is single-use. It is not safe for concurrent use, but independent
// Solvers may run concurrently.
type Solver struct {
	grid    grid.Grid
	options Options

	rowMask [9]uint
	colMask [9]uint
	boxMask [9]uint

	steps int
}

// New creates a solver for the given grid. The grid is copied; the caller's
// instance is never mutated. If options is nil, DefaultOptions is used.
func New(g grid.Grid, options *Options) *Solver {
	opts := *DefaultOptions()
	if options != nil {
		opts = *options
	}
	if opts.StepInterval <= 0 {
		opts.StepInterval = DefaultStepInterval
	}

	s := &Solver{
		grid:    g,
		options: opts,
	}
	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			if val := g[row][col]; val != grid.EmptyCell {
				bit := uint(1) << (val - 1)
				s.rowMask[row] |= bit
				s.colMask[col] |= bit
				s.boxMask[grid.BoxIndex(row, col)] |= bit
			}
		}
	}
	return s
}

// Solve runs the search to the first complete assignment.
//
// An unsolvable grid is a normal outcome, not an error: the Result carries
// Solved=false and a trustworthy step count. Errors are reserved for inputs
// that already violate constraints (ErrInvalidGrid) and for ctx cancellation.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if len(validator.Conflicts(s.grid)) > 0 {
		return nil, ErrInvalidGrid
	}

	solved, err := s.step(ctx)
	if err != nil {
		return nil, fmt.Errorf("solve aborted after %d steps: %w", s.steps, err)
	}
	return &Result{
		Solved: solved,
		Grid:   s.grid,
		Steps:  s.steps,
	}, nil
}

// Solve is a convenience wrapper: New(g, options).Solve(ctx).
func Solve(ctx context.Context, g grid.Grid, options *Options) (*Result, error) {
	return New(g, options).Solve(ctx)
}

// step is one recursive decision point. Every invocation counts as one step,
// including the outer call and failed branches.
func (s *Solver) step(ctx context.Context) (bool, error) {
	s.steps++

	if err := ctx.Err(); err != nil {
		return false, err
	}

	// MRV scan: find the empty cell with the fewest candidates. Ties go to
	// the first cell in row-major order. An empty cell with no candidates
	// means this branch cannot be completed.
	bestRow, bestCol := -1, -1
	bestAllowed := uint(0)
	bestCount := 10

	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			if s.grid[row][col] != grid.EmptyCell {
				continue
			}
			box := grid.BoxIndex(row, col)
			allowed := allNine &^ (s.rowMask[row] | s.colMask[col] | s.boxMask[box])
			count := bits.OnesCount(allowed)
			if count == 0 {
				return false, nil
			}
			if count < bestCount {
				bestCount = count
				bestRow, bestCol = row, col
				bestAllowed = allowed
			}
		}
	}

	// No empty cell left: the grid is complete.
	if bestRow < 0 {
		return true, nil
	}

	box := grid.BoxIndex(bestRow, bestCol)
	for allowed := bestAllowed; allowed != 0; {
		// Lowest set bit first; TrailingZeros recovers the digit exactly.
		bit := allowed & -allowed
		digit := bits.TrailingZeros(bit) + 1

		s.grid[bestRow][bestCol] = digit
		s.rowMask[bestRow] |= bit
		s.colMask[bestCol] |= bit
		s.boxMask[box] |= bit

		if s.options.Animate && s.options.OnStep != nil && s.steps%s.options.StepInterval == 0 {
			s.options.OnStep(s.grid, s.steps)
		}

		solved, err := s.step(ctx)
		if err != nil {
			return false, err
		}
		if solved {
			return true, nil
		}

		s.grid[bestRow][bestCol] = grid.EmptyCell
		s.rowMask[bestRow] &^= bit
		s.colMask[bestCol] &^= bit
		s.boxMask[box] &^= bit

		allowed &^= bit
	}

	return false, nil
}
