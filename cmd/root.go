package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sudoku-solver",
	Short: "Solve and validate 9x9 Sudoku puzzles",
	Long: `sudoku-solver is a constraint-satisfaction solver for standard 9x9 Sudoku.

Puzzles are given as 81-character row-major strings where '1'-'9' are cell
values and any other character is a blank.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readPuzzle resolves the puzzle text from, in order of preference, an
// explicit file, the first positional argument, or stdin. Whitespace is
// stripped so multi-line puzzle files are accepted.
func readPuzzle(args []string, file string) (string, error) {
	var raw string
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read puzzle file: %w", err)
		}
		raw = string(data)
	case len(args) > 0 && args[0] != "":
		raw = args[0]
	default:
		data, err := io.ReadAll(io.LimitReader(os.Stdin, 1024))
		if err != nil {
			return "", fmt.Errorf("read puzzle from stdin: %w", err)
		}
		raw = string(data)
	}
	return strings.Join(strings.Fields(raw), ""), nil
}
