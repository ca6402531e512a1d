package session

// Tool selects how pointer input edits the grid.
type Tool int

const (
	ToolHand Tool = iota
	ToolPaint
	ToolLine
	ToolBox
	ToolFill
	ToolEyedropper
)

func (t Tool) String() string {
	switch t {
	case ToolHand:
		return "Hand"
	case ToolPaint:
		return "Paint"
	case ToolLine:
		return "Line"
	case ToolBox:
		return "Box"
	case ToolFill:
		return "Fill"
	case ToolEyedropper:
		return "Eyedropper"
	default:
		return "Unknown"
	}
}

// Cell addresses one grid cell.
type Cell struct {
	Row, Col int
}

// ToolState is the interactive tool state machine's data. Anchor is the
// first click of a two-click tool (Line/Box); nil when no click is pending.
type ToolState struct {
	Tool      Tool
	BoxFilled bool
	Anchor    *Cell
}

// LinePoints rasterizes the straight line from a to b using integer error
// accumulation, correct in all octants. Both endpoints are included; no cell
// repeats.
func LinePoints(a, b Cell) []Cell {
	var points []Cell
	x0, y0 := a.Col, a.Row
	x1, y1 := b.Col, b.Row
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		points = append(points, Cell{Row: y0, Col: x0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

// BoxCells returns every cell of the axis-aligned rectangle spanned by the
// two corners, or only its perimeter when filled is false. Cells are emitted
// row-major without duplicates.
func BoxCells(a, b Cell, filled bool) []Cell {
	minR, maxR := a.Row, b.Row
	if minR > maxR {
		minR, maxR = maxR, minR
	}
	minC, maxC := a.Col, b.Col
	if minC > maxC {
		minC, maxC = maxC, minC
	}

	var cells []Cell
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			if filled || r == minR || r == maxR || c == minC || c == maxC {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// FloodFill returns the 4-connected region of cells sharing start's original
// symbol, bounded by the grid edges. When the replacement symbol equals the
// original the result is empty: no vacuous edit.
func FloodFill(g *Grid, start Cell, sym rune) []Cell {
	if g == nil || !g.InBounds(start.Row, start.Col) {
		return nil
	}
	target := g.At(start.Row, start.Col)
	if target == sym {
		return nil
	}

	var region []Cell
	visited := make(map[Cell]bool)
	stack := []Cell{start}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cell] || !g.InBounds(cell.Row, cell.Col) {
			continue
		}
		if g.At(cell.Row, cell.Col) != target {
			continue
		}
		visited[cell] = true
		region = append(region, cell)
		stack = append(stack,
			Cell{Row: cell.Row, Col: cell.Col + 1},
			Cell{Row: cell.Row, Col: cell.Col - 1},
			Cell{Row: cell.Row + 1, Col: cell.Col},
			Cell{Row: cell.Row - 1, Col: cell.Col},
		)
	}
	return region
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
