package session

const (
	minZoom = 0.25
	maxZoom = 8.0
)

// ViewState maps screen coordinates onto grid cells. Pan is in screen pixels;
// Zoom scales the base cell size.
type ViewState struct {
	PanX, PanY float64
	Zoom       float64
	CellSize   float64
}

// NewViewState returns a view at 1:1 zoom with the given base cell size in
// pixels.
func NewViewState(cellSize float64) *ViewState {
	return &ViewState{Zoom: 1.0, CellSize: cellSize}
}

// PanBy shifts the view by a screen-space delta.
func (v *ViewState) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// ZoomAt multiplies the zoom by factor, clamped, and adjusts the pan so the
// world point under the given screen position stays put.
func (v *ViewState) ZoomAt(sx, sy, factor float64) {
	next := v.Zoom * factor
	if next < minZoom {
		next = minZoom
	}
	if next > maxZoom {
		next = maxZoom
	}
	if next == v.Zoom {
		return
	}
	wx := (sx - v.PanX) / v.Zoom
	wy := (sy - v.PanY) / v.Zoom
	v.Zoom = next
	v.PanX = sx - wx*v.Zoom
	v.PanY = sy - wy*v.Zoom
}

// CellAt converts a screen position to the cell under it. The second return
// is false when the position falls outside the grid; no clamping to the
// nearest edge cell.
func (v *ViewState) CellAt(sx, sy float64, g *Grid) (Cell, bool) {
	if g == nil {
		return Cell{}, false
	}
	wx := (sx - v.PanX) / v.Zoom
	wy := (sy - v.PanY) / v.Zoom
	if wx < 0 || wy < 0 {
		return Cell{}, false
	}
	col := int(wx / v.CellSize)
	row := int(wy / v.CellSize)
	if !g.InBounds(row, col) {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col}, true
}

// CellOrigin returns the screen position of a cell's top-left corner.
func (v *ViewState) CellOrigin(c Cell) (float64, float64) {
	return float64(c.Col)*v.CellSize*v.Zoom + v.PanX,
		float64(c.Row)*v.CellSize*v.Zoom + v.PanY
}

// ScaledCellSize is the on-screen size of one cell at the current zoom.
func (v *ViewState) ScaledCellSize() float64 {
	return v.CellSize * v.Zoom
}
