package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rybkr/sudoku-solver/internal/grid"
	"github.com/rybkr/sudoku-solver/internal/solver"
	"github.com/rybkr/sudoku-solver/internal/validator"
)

var (
	solveTimeout     time.Duration
	showProgress     bool
	progressInterval int
	prettyOutput     bool
	solveInputFile   string
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve [puzzle]",
		Short: "Solve a Sudoku puzzle",
		Long: `Solve a 9x9 Sudoku puzzle.

Examples:
  sudoku-solver solve 530070000600195000098000060800060003400803001700020006060000280000419005000080079
  sudoku-solver solve --file puzzle.txt --pretty
  cat puzzle.txt | sudoku-solver solve --progress`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSolve,
	}

	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 10*time.Second, "Solve timeout")
	solveCmd.Flags().BoolVar(&showProgress, "progress", false, "Print search progress to stderr")
	solveCmd.Flags().IntVar(&progressInterval, "progress-interval", solver.DefaultStepInterval, "Steps between progress updates")
	solveCmd.Flags().BoolVarP(&prettyOutput, "pretty", "p", false, "Print the solved grid with box lines")
	solveCmd.Flags().StringVarP(&solveInputFile, "file", "f", "", "Read the puzzle from a file")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	raw, err := readPuzzle(args, solveInputFile)
	if err != nil {
		return err
	}
	g, err := grid.Parse(raw)
	if err != nil {
		return err
	}

	opts := solver.DefaultOptions()
	if showProgress {
		opts.Animate = true
		opts.StepInterval = progressInterval
		opts.OnStep = func(snapshot grid.Grid, steps int) {
			fmt.Fprintf(os.Stderr, "step %d: %d cells remaining\n", steps, snapshot.EmptyCount())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()

	start := time.Now()
	result, err := solver.Solve(ctx, g, opts)
	if err != nil {
		if errors.Is(err, solver.ErrInvalidGrid) {
			for _, c := range validator.Conflicts(g).Cells() {
				fmt.Fprintf(os.Stderr, "conflict at row %d, col %d\n", c.Row, c.Col)
			}
		}
		return fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(start)

	if !result.Solved {
		fmt.Printf("No solution found (%d steps, %v)\n", result.Steps, elapsed.Round(time.Millisecond))
		return nil
	}

	if prettyOutput {
		fmt.Println(result.Grid.Format())
		givens := grid.CellCount - g.EmptyCount()
		fmt.Printf("Givens: %d, filled by solver: %d\n", givens, g.EmptyCount())
	} else {
		fmt.Println(result.Grid.String())
	}
	fmt.Printf("Solved in %d steps (%v)\n", result.Steps, elapsed.Round(time.Millisecond))
	return nil
}
