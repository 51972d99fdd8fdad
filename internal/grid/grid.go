package grid

import (
	"fmt"
	"strings"
)

// Special cell values
const (
	EmptyCell = 0
	Size      = 9
	CellCount = 81
)

// Grid represents a 9x9 Sudoku grid.
// It is a value type: assignment and passing by value produce independent
// copies, which the solver relies on for snapshots.
type Grid [Size][Size]int

// Coord identifies a cell by row and column, both in [0, 8].
type Coord struct {
	Row int
	Col int
}

// BoxIndex returns the index 0-8 of the 3x3 box containing (row, col).
func BoxIndex(row, col int) int {
	return (row/3)*3 + col/3
}

// Parse creates a Grid from an 81-character row-major string.
// Characters '1'-'9' are cell values; any other character (including '0'
// and '.') is an empty cell. Only a wrong length is an error.
func Parse(s string) (Grid, error) {
	var g Grid
	if len(s) != CellCount {
		return g, fmt.Errorf("puzzle string must be exactly %d characters, got %d", CellCount, len(s))
	}
	for i := 0; i < CellCount; i++ {
		ch := s[i]
		if ch >= '1' && ch <= '9' {
			g[i/Size][i%Size] = int(ch - '0')
		}
	}
	return g, nil
}

// String returns the grid as an 81-character row-major string,
// with '0' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteByte('0' + byte(g[row][col]))
		}
	}
	return sb.String()
}

// Format returns a human-readable grid representation with box lines.
func (g Grid) Format() string {
	var sb strings.Builder
	line := "+-------+-------+-------+\n"
	sb.WriteString(line)

	for row := 0; row < Size; row++ {
		sb.WriteString("| ")
		for col := 0; col < Size; col++ {
			val := g[row][col]
			if val == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(val))
			}
			sb.WriteByte(' ')

			if (col+1)%3 == 0 {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("\n")

		if (row+1)%3 == 0 {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// IsComplete reports whether every cell holds a value 1-9.
// Completeness says nothing about rule consistency; pair it with
// validator.Conflicts for a "valid and complete" check.
func (g Grid) IsComplete() bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if g[row][col] == EmptyCell {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (g Grid) EmptyCount() int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if g[row][col] == EmptyCell {
				n++
			}
		}
	}
	return n
}
