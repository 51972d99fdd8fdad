package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rybkr/sudoku-solver/internal/grid"
	"github.com/rybkr/sudoku-solver/internal/validator"
)

var validateInputFile string

func init() {
	validateCmd := &cobra.Command{
		Use:   "validate [puzzle]",
		Short: "Check a Sudoku puzzle for rule conflicts",
		Long: `Report every cell that shares its digit with another cell in the same
row, column, or 3x3 box. A puzzle with no conflicts and no blanks is a
complete, correct solution.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	validateCmd.Flags().StringVarP(&validateInputFile, "file", "f", "", "Read the puzzle from a file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := readPuzzle(args, validateInputFile)
	if err != nil {
		return err
	}
	g, err := grid.Parse(raw)
	if err != nil {
		return err
	}

	conflicts := validator.Conflicts(g)
	if len(conflicts) == 0 {
		if g.IsComplete() {
			fmt.Println("Valid and complete")
		} else {
			fmt.Printf("Valid, %d cells to fill\n", g.EmptyCount())
		}
		return nil
	}

	for _, c := range conflicts.Cells() {
		fmt.Printf("conflict at row %d, col %d\n", c.Row, c.Col)
	}
	return fmt.Errorf("%d conflicting cells", len(conflicts))
}
