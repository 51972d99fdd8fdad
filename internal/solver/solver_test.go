package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/rybkr/sudoku-solver/internal/grid"
	"github.com/rybkr/sudoku-solver/internal/validator"
)

// A classic puzzle with a unique solution.
const (
	samplePuzzle   = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	sampleSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

// unsolvablePuzzle has 17 conflict-free givens but admits no completion:
// cell (0,0) is empty and its row, column, and box together exclude all
// nine digits.
const unsolvablePuzzle = "012340000" +
	"578000000" +
	"690000000" +
	"000000000" +
	"000000000" +
	"000000000" +
	"000000123" +
	"000000456" +
	"000000780"

func mustParse(t *testing.T, s string) grid.Grid {
	t.Helper()
	g, err := grid.Parse(s)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func TestSolveClassic(t *testing.T) {
	g := mustParse(t, samplePuzzle)

	result, err := Solve(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Solved {
		t.Fatalf("Solved = false, want true (steps=%d)", result.Steps)
	}
	if got := result.Grid.String(); got != sampleSolution {
		t.Errorf("solution = %q, want %q", got, sampleSolution)
	}
	if result.Steps < 1 {
		t.Errorf("Steps = %d, want >= 1", result.Steps)
	}
}

func TestSolveEmptyGrid(t *testing.T) {
	var g grid.Grid

	result, err := Solve(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Solved {
		t.Fatal("empty grid reported unsolvable")
	}
	if !result.Grid.IsComplete() {
		t.Error("solved grid is not complete")
	}
	if conflicts := validator.Conflicts(result.Grid); len(conflicts) != 0 {
		t.Errorf("solved grid has conflicts: %v", conflicts.Cells())
	}
}

func TestSolveCompleteGrid(t *testing.T) {
	g := mustParse(t, sampleSolution)

	result, err := Solve(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Solved {
		t.Fatal("complete grid reported unsolvable")
	}
	if result.Steps != 1 {
		t.Errorf("Steps = %d, want 1 for an already-complete grid", result.Steps)
	}
	if result.Grid != g {
		t.Error("complete grid was altered")
	}
}

func TestSolveUnsolvable(t *testing.T) {
	g := mustParse(t, unsolvablePuzzle)
	if conflicts := validator.Conflicts(g); len(conflicts) != 0 {
		t.Fatalf("fixture has conflicts: %v", conflicts.Cells())
	}

	result, err := Solve(context.Background(), g, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v, unsolvable must not be an error", err)
	}
	if result.Solved {
		t.Fatal("Solved = true for an unsolvable grid")
	}
	if result.Steps < 1 {
		t.Errorf("Steps = %d, want >= 1", result.Steps)
	}
	if result.Grid != g {
		t.Error("exhausted search left placements on the grid")
	}
}

func TestSolveInvalidGrid(t *testing.T) {
	var g grid.Grid
	g[0][0], g[0][1] = 5, 5

	_, err := Solve(context.Background(), g, nil)
	if !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("Solve() error = %v, want ErrInvalidGrid", err)
	}
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, grid.Grid{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve() error = %v, want context.Canceled", err)
	}
}

func TestStepCallbackThrottle(t *testing.T) {
	g := mustParse(t, samplePuzzle)

	const interval = 10
	var reported []int
	opts := &Options{
		Animate:      true,
		StepInterval: interval,
		OnStep: func(snapshot grid.Grid, steps int) {
			reported = append(reported, steps)
		},
	}

	result, err := Solve(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(reported) == 0 {
		t.Fatalf("no callbacks for a %d-step solve", result.Steps)
	}
	prev := 0
	for _, steps := range reported {
		if steps%interval != 0 {
			t.Errorf("callback at step %d, want multiples of %d only", steps, interval)
		}
		if steps < prev {
			t.Errorf("step counts went backwards: %d after %d", steps, prev)
		}
		prev = steps
	}
	if result.Steps < prev {
		t.Errorf("final Steps = %d, below last reported %d", result.Steps, prev)
	}
}

func TestStepCallbackDisabled(t *testing.T) {
	g := mustParse(t, samplePuzzle)

	calls := 0
	opts := &Options{
		Animate:      false,
		StepInterval: 1,
		OnStep: func(snapshot grid.Grid, steps int) {
			calls++
		},
	}

	if _, err := Solve(context.Background(), g, opts); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("OnStep invoked %d times with Animate disabled", calls)
	}
}

// TestMaskConsistencyDuringCallback checks that at every callback the three
// mask arrays decode to exactly the filled cells of the grid snapshot.
func TestMaskConsistencyDuringCallback(t *testing.T) {
	g := mustParse(t, samplePuzzle)

	var s *Solver
	checked := 0
	opts := &Options{
		Animate:      true,
		StepInterval: 5,
		OnStep: func(snapshot grid.Grid, steps int) {
			checked++
			var rowMask, colMask, boxMask [9]uint
			for row := 0; row < grid.Size; row++ {
				for col := 0; col < grid.Size; col++ {
					if val := snapshot[row][col]; val != grid.EmptyCell {
						bit := uint(1) << (val - 1)
						rowMask[row] |= bit
						colMask[col] |= bit
						boxMask[grid.BoxIndex(row, col)] |= bit
					}
				}
			}
			if rowMask != s.rowMask || colMask != s.colMask || boxMask != s.boxMask {
				t.Errorf("masks diverge from grid at step %d", steps)
			}
		},
	}
	s = New(g, opts)

	if _, err := s.Solve(context.Background()); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if checked == 0 {
		t.Fatal("callback never fired, consistency unchecked")
	}
}

func TestSolverDoesNotAliasCallbackSnapshot(t *testing.T) {
	g := mustParse(t, samplePuzzle)

	opts := &Options{
		Animate:      true,
		StepInterval: 5,
		OnStep: func(snapshot grid.Grid, steps int) {
			// Scribbling on the snapshot must not corrupt the search.
			for row := 0; row < grid.Size; row++ {
				for col := 0; col < grid.Size; col++ {
					snapshot[row][col] = 9
				}
			}
		},
	}

	result, err := Solve(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Solved || result.Grid.String() != sampleSolution {
		t.Error("snapshot mutation leaked into solver state")
	}
}

func BenchmarkSolveClassic(b *testing.B) {
	g, err := grid.Parse(samplePuzzle)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Solve(context.Background(), g, nil); err != nil {
			b.Fatal(err)
		}
	}
}
