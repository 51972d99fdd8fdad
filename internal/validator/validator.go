// Package validator reports rule conflicts on a Sudoku grid.
//
// A conflict is a pair of cells in the same row, column, or box holding the
// same nonzero digit. Validation is a pure scan over the full grid: no state
// is retained between calls, and callers must re-validate after every grid
// mutation.
package validator

import (
	"sort"

	"github.com/rybkr/sudoku-solver/internal/grid"
)

// ConflictSet is a set of cell coordinates participating in at least one
// row, column, or box duplicate.
type ConflictSet map[grid.Coord]struct{}

// Has reports whether (row, col) is part of a conflict.
func (s ConflictSet) Has(row, col int) bool {
	_, ok := s[grid.Coord{Row: row, Col: col}]
	return ok
}

// Cells returns the conflicting coordinates sorted in row-major order.
func (s ConflictSet) Cells() []grid.Coord {
	cells := make([]grid.Coord, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// Conflicts scans the grid and returns every cell that shares its digit with
// another cell in the same row, column, or box. Empty cells never conflict.
// The returned set is freshly allocated on each call.
func Conflicts(g grid.Grid) ConflictSet {
	conflicts := make(ConflictSet)

	for row := 0; row < grid.Size; row++ {
		unit := func(col int) grid.Coord { return grid.Coord{Row: row, Col: col} }
		collectUnit(g, unit, conflicts)
	}
	for col := 0; col < grid.Size; col++ {
		unit := func(row int) grid.Coord { return grid.Coord{Row: row, Col: col} }
		collectUnit(g, unit, conflicts)
	}
	for box := 0; box < grid.Size; box++ {
		baseRow, baseCol := (box/3)*3, (box%3)*3
		unit := func(i int) grid.Coord {
			return grid.Coord{Row: baseRow + i/3, Col: baseCol + i%3}
		}
		collectUnit(g, unit, conflicts)
	}

	return conflicts
}

// collectUnit walks the 9 cells of one unit. seen[d] holds every coordinate
// observed with digit d so far; a repeat marks all of them plus the current
// cell as conflicting.
func collectUnit(g grid.Grid, cell func(i int) grid.Coord, conflicts ConflictSet) {
	var seen [10][]grid.Coord

	for i := 0; i < grid.Size; i++ {
		c := cell(i)
		val := g[c.Row][c.Col]
		if val == grid.EmptyCell {
			continue
		}
		if len(seen[val]) > 0 {
			for _, prev := range seen[val] {
				conflicts[prev] = struct{}{}
			}
			conflicts[c] = struct{}{}
		}
		seen[val] = append(seen[val], c)
	}
}
