// Package session owns the state of one opened map entity: its symbol grid,
// resolved palette, tool and view state, and the bounded undo history.
package session

import (
	"fmt"
	"sort"
)

// Grid is a rectangular array of single-character symbols. Dimensions are
// fixed for the lifetime of a session; individual cells are mutable.
type Grid struct {
	cells [][]rune
}

// ParseGrid builds a Grid from a record's row strings. Every row must have
// the same number of symbols and there must be at least one row and column;
// anything else is fatal for the load.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("session: rows are empty")
	}
	cells := make([][]rune, len(rows))
	width := -1
	for i, row := range rows {
		r := []rune(row)
		if width == -1 {
			width = len(r)
		} else if len(r) != width {
			return nil, fmt.Errorf("session: row %d has %d symbols, want %d", i, len(r), width)
		}
		cells[i] = r
	}
	if width == 0 {
		return nil, fmt.Errorf("session: rows have zero width")
	}
	return &Grid{cells: cells}, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.cells) }

// Width returns the number of columns.
func (g *Grid) Width() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height() && col >= 0 && col < g.Width()
}

// At returns the symbol at (row, col). Caller guarantees bounds.
func (g *Grid) At(row, col int) rune { return g.cells[row][col] }

// Set writes a symbol at (row, col). Out-of-bounds writes are ignored.
func (g *Grid) Set(row, col int, sym rune) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row][col] = sym
}

// Clone deep-copies the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]rune, len(g.cells))
	for i, row := range g.cells {
		cells[i] = make([]rune, len(row))
		copy(cells[i], row)
	}
	return &Grid{cells: cells}
}

// Equal reports whether both grids hold identical symbols.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Height() != other.Height() || g.Width() != other.Width() {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Rows rejoins each row into one string, the record's on-disk form.
func (g *Grid) Rows() []string {
	rows := make([]string, len(g.cells))
	for i, row := range g.cells {
		rows[i] = string(row)
	}
	return rows
}

// Symbols returns the sorted set of symbols present anywhere in the grid.
func (g *Grid) Symbols() []rune {
	seen := make(map[rune]bool)
	for _, row := range g.cells {
		for _, sym := range row {
			seen[sym] = true
		}
	}
	out := make([]rune, 0, len(seen))
	for sym := range seen {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
