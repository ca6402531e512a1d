package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/mapforge/palette"
	"github.com/milk9111/mapforge/session"
)

var (
	backgroundColor = color.RGBA{16, 16, 20, 255}
	gridLineColor   = color.RGBA{255, 255, 255, 30}
	anchorColor     = color.RGBA{255, 220, 80, 200}
)

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if a.pixel == nil {
		a.pixel = ebiten.NewImage(1, 1)
		a.pixel.Fill(color.White)
	}

	s := a.manager.Current()
	if s != nil {
		a.drawGrid(screen, s)
		a.drawAnchor(screen, s)
		a.drawStatus(screen, s)
	}
	a.ui.UI.Draw(screen)
}

func (a *App) drawGrid(screen *ebiten.Image, s *session.Session) {
	grid := s.Grid()
	view := s.View()
	cell := view.ScaledCellSize()
	res := s.Resolution()
	bounds := screen.Bounds()

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			sx, sy := view.CellOrigin(session.Cell{Row: row, Col: col})
			if sx+cell < 0 || sy+cell < 0 || sx > float64(bounds.Dx()) || sy > float64(bounds.Dy()) {
				continue
			}
			a.drawCell(screen, res, grid.At(row, col), sx, sy, cell)
		}
	}

	if cell >= 8 {
		a.drawGridLines(screen, grid, view)
	}
}

func (a *App) drawCell(screen *ebiten.Image, res *palette.Resolution, sym rune, sx, sy, cell float64) {
	entry, _ := res.Entry(sym)

	drawn := false
	if a.sprites != nil {
		drawn = a.drawTileSprites(screen, entry, sx, sy, cell)
	}
	if !drawn {
		c := color.RGBA{50, 50, 56, 255}
		if entry.Terrain != "" {
			c = colorFor(a.terrainInfo[entry.Terrain].Color)
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(cell, cell)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
		screen.DrawImage(a.pixel, op)

		if sym != ' ' && cell >= 10 {
			top := &text.DrawOptions{}
			top.GeoM.Translate(sx+cell*0.3, sy+cell*0.15)
			text.Draw(screen, string(sym), a.ui.FontFace, top)
		}
	}
}

// drawTileSprites renders the cell through the tileset: furniture sprite
// over terrain sprite. Reports whether anything was drawn.
func (a *App) drawTileSprites(screen *ebiten.Image, entry palette.SymbolEntry, sx, sy, cell float64) bool {
	drawn := false
	for _, id := range []string{entry.Terrain, entry.Furniture} {
		if id == "" {
			continue
		}
		bg, fg := a.sprites.tileSprites(id)
		for _, sprite := range []*ebiten.Image{bg, fg} {
			if sprite == nil {
				continue
			}
			b := sprite.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cell/float64(b.Dx()), cell/float64(b.Dy()))
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(sprite, op)
			drawn = true
		}
	}
	return drawn
}

func (a *App) drawGridLines(screen *ebiten.Image, grid *session.Grid, view *session.ViewState) {
	cell := view.ScaledCellSize()
	ox, oy := view.CellOrigin(session.Cell{})
	width := float64(grid.Width()) * cell
	height := float64(grid.Height()) * cell

	line := func(x, y, w, h float64) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w, h)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(gridLineColor)
		screen.DrawImage(a.pixel, op)
	}
	for col := 0; col <= grid.Width(); col++ {
		line(ox+float64(col)*cell, oy, 1, height)
	}
	for row := 0; row <= grid.Height(); row++ {
		line(ox, oy+float64(row)*cell, width, 1)
	}
}

// drawAnchor outlines the pending first corner of a Line or Box.
func (a *App) drawAnchor(screen *ebiten.Image, s *session.Session) {
	anchor := s.Anchor()
	if anchor == nil {
		return
	}
	view := s.View()
	cell := view.ScaledCellSize()
	sx, sy := view.CellOrigin(*anchor)

	edge := func(x, y, w, h float64) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w, h)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(anchorColor)
		screen.DrawImage(a.pixel, op)
	}
	edge(sx, sy, cell, 2)
	edge(sx, sy+cell-2, cell, 2)
	edge(sx, sy, 2, cell)
	edge(sx+cell-2, sy, 2, cell)
}

func (a *App) drawStatus(screen *ebiten.Image, s *session.Session) {
	status := fmt.Sprintf("%s  tool: %s  brush: %q", s.Key, s.Tool(), s.Symbol())
	if s.Dirty() {
		status += "  *"
	}
	status += a.hoverInfo(s)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(screen.Bounds().Dy())-24)
	text.Draw(screen, status, a.ui.FontFace, op)
}

// hoverInfo describes the cell under the cursor: its symbol and the terrain
// and furniture it resolves to, with display names from the catalog.
func (a *App) hoverInfo(s *session.Session) string {
	cx, cy := ebiten.CursorPosition()
	cell, ok := s.View().CellAt(float64(cx), float64(cy), s.Grid())
	if !ok {
		return ""
	}
	sym := s.Grid().At(cell.Row, cell.Col)
	entry, _ := s.Resolution().Entry(sym)

	info := fmt.Sprintf("  |  (%d,%d) %q", cell.Row, cell.Col, sym)
	if entry.Terrain != "" {
		info += "  " + entry.Terrain
		if o, ok := a.terrainInfo[entry.Terrain]; ok && o.Name != "" {
			info += " (" + o.Name + ")"
		}
	}
	if entry.Furniture != "" {
		info += "  " + entry.Furniture
		if o, ok := a.furnitureInfo[entry.Furniture]; ok && o.Name != "" {
			info += " (" + o.Name + ")"
		}
	}
	return info
}
