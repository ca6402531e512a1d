package session

import (
	"context"
	"fmt"

	"github.com/milk9111/mapforge/palette"
)

const defaultHistoryMax = 64

// Session is the edit state of one opened map entity: the working grid, its
// undo history, the view transform, the active tool, and the resolved symbol
// table.
type Session struct {
	Key string

	grid     *Grid
	baseline *Grid
	history  *History
	view     *ViewState
	tool     ToolState
	symbol   rune

	resolution *palette.Resolution
	record     map[string]any

	strokeActive bool
	preStroke    *Grid
}

// Open parses a mapgen record, fetches its external palettes, resolves the
// symbol table, and returns a session seeded with a baseline history entry.
// historyMax bounds the undo log; zero or negative picks the default. A
// palette that fails to fetch degrades the resolution but never fails the
// open.
func Open(ctx context.Context, record map[string]any, key string, fetcher palette.Fetcher, cellSize float64, historyMax int) (*Session, error) {
	obj := objectOf(record)
	rows, err := stringSlice(obj["rows"])
	if err != nil {
		return nil, fmt.Errorf("session: open %s: rows: %w", key, err)
	}
	grid, err := ParseGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", key, err)
	}

	var paletteIDs []string
	if raw, ok := obj["palettes"].([]any); ok {
		for _, v := range raw {
			if id, ok := v.(string); ok {
				paletteIDs = append(paletteIDs, id)
			}
		}
	}
	external := palette.FetchAll(ctx, fetcher, paletteIDs)

	if historyMax <= 0 {
		historyMax = defaultHistoryMax
	}

	fillTer, _ := obj["fill_ter"].(string)
	inlineTerrain, _ := obj["terrain"].(map[string]any)
	inlineFurniture, _ := obj["furniture"].(map[string]any)

	s := &Session{
		Key:        key,
		grid:       grid,
		baseline:   grid.Clone(),
		history:    NewHistory(historyMax),
		view:       NewViewState(cellSize),
		tool:       ToolState{Tool: ToolHand},
		resolution: palette.Resolve(fillTer, external, inlineTerrain, inlineFurniture, grid.Symbols()),
		record:     record,
	}
	s.history.Reset(grid)
	return s, nil
}

func objectOf(record map[string]any) map[string]any {
	if obj, ok := record["object"].(map[string]any); ok {
		return obj
	}
	return record
}

func stringSlice(v any) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", v)
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("row %d: expected string, got %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}

func (s *Session) Grid() *Grid                     { return s.grid }
func (s *Session) View() *ViewState                { return s.view }
func (s *Session) Tool() Tool                      { return s.tool.Tool }
func (s *Session) Anchor() *Cell                   { return s.tool.Anchor }
func (s *Session) BoxFilled() bool                 { return s.tool.BoxFilled }
func (s *Session) Symbol() rune                    { return s.symbol }
func (s *Session) Resolution() *palette.Resolution { return s.resolution }
func (s *Session) Record() map[string]any          { return s.record }
func (s *Session) CanUndo() bool                   { return s.history.CanUndo() }
func (s *Session) CanRedo() bool                   { return s.history.CanRedo() }

// Dirty reports whether the working grid differs from the last loaded or
// saved state.
func (s *Session) Dirty() bool {
	return !s.grid.Equal(s.baseline)
}

// MarkSaved makes the current state the new clean baseline.
func (s *Session) MarkSaved() {
	s.baseline = s.grid.Clone()
}

// SetSymbol picks the brush symbol applied by the drawing tools.
func (s *Session) SetSymbol(r rune) { s.symbol = r }

// SetBoxFilled toggles between filled and outline rectangles.
func (s *Session) SetBoxFilled(filled bool) { s.tool.BoxFilled = filled }

// SetTool switches the active tool. Any pending two-click anchor is
// discarded so a stale first corner never pairs with a click made under a
// different tool.
func (s *Session) SetTool(t Tool) {
	if s.tool.Tool == t {
		return
	}
	s.tool.Tool = t
	s.tool.Anchor = nil
	s.abortStroke()
}

// CancelAnchor drops a pending two-click anchor without switching tools.
func (s *Session) CancelAnchor() { s.tool.Anchor = nil }

func (s *Session) abortStroke() {
	if s.strokeActive && s.preStroke != nil {
		s.grid = s.preStroke.Clone()
	}
	s.strokeActive = false
	s.preStroke = nil
}

// Undo reverts to the previous history snapshot.
func (s *Session) Undo() bool {
	g := s.history.Undo()
	if g == nil {
		return false
	}
	s.grid = g
	s.tool.Anchor = nil
	return true
}

// Redo reapplies the next history snapshot.
func (s *Session) Redo() bool {
	g := s.history.Redo()
	if g == nil {
		return false
	}
	s.grid = g
	s.tool.Anchor = nil
	return true
}

// HandleEvent runs one normalized input event through the tool state
// machine. Pointer positions that do not land on a cell are ignored for the
// drawing tools; pan and zoom always apply.
func (s *Session) HandleEvent(ev Event) {
	switch e := ev.(type) {
	case PointerDrag:
		s.view.PanBy(e.DX, e.DY)
	case Wheel:
		factor := 1.1
		if e.Delta < 0 {
			factor = 1 / 1.1
		}
		s.view.ZoomAt(e.X, e.Y, factor)
	case PointerDown:
		s.pointerDown(e.X, e.Y)
	case PointerMove:
		s.pointerMove(e.X, e.Y)
	case PointerUp:
		s.pointerUp()
	}
}

func (s *Session) pointerDown(x, y float64) {
	cell, ok := s.view.CellAt(x, y, s.grid)
	if !ok {
		return
	}
	switch s.tool.Tool {
	case ToolHand:
		// Hand only pans, which arrives as PointerDrag.
	case ToolPaint:
		s.strokeActive = true
		s.preStroke = s.grid.Clone()
		s.grid.Set(cell.Row, cell.Col, s.symbol)
	case ToolLine:
		if s.tool.Anchor == nil {
			c := cell
			s.tool.Anchor = &c
			return
		}
		s.applyCells(LinePoints(*s.tool.Anchor, cell))
		s.tool.Anchor = nil
	case ToolBox:
		if s.tool.Anchor == nil {
			c := cell
			s.tool.Anchor = &c
			return
		}
		s.applyCells(BoxCells(*s.tool.Anchor, cell, s.tool.BoxFilled))
		s.tool.Anchor = nil
	case ToolFill:
		s.applyCells(FloodFill(s.grid, cell, s.symbol))
	case ToolEyedropper:
		s.symbol = s.grid.At(cell.Row, cell.Col)
	}
}

func (s *Session) pointerMove(x, y float64) {
	if !s.strokeActive {
		return
	}
	cell, ok := s.view.CellAt(x, y, s.grid)
	if !ok {
		return
	}
	s.grid.Set(cell.Row, cell.Col, s.symbol)
}

func (s *Session) pointerUp() {
	if !s.strokeActive {
		return
	}
	s.strokeActive = false
	pre := s.preStroke
	s.preStroke = nil
	if pre != nil && !s.grid.Equal(pre) {
		s.history.Commit(s.grid)
	}
}

// applyCells writes the brush symbol to every cell and commits a single
// history entry when at least one cell actually changed.
func (s *Session) applyCells(cells []Cell) {
	changed := false
	for _, c := range cells {
		if !s.grid.InBounds(c.Row, c.Col) {
			continue
		}
		if s.grid.At(c.Row, c.Col) != s.symbol {
			s.grid.Set(c.Row, c.Col, s.symbol)
			changed = true
		}
	}
	if changed {
		s.history.Commit(s.grid)
	}
}
