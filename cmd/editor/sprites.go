package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/mapforge/tileset"
)

// spriteBank holds a tileset's sheets uploaded to the GPU and answers sprite
// draws by tile id.
type spriteBank struct {
	config *tileset.Config
	sheets []*ebiten.Image
}

func loadSpriteBank(cfg *tileset.Config) (*spriteBank, error) {
	bank := &spriteBank{config: cfg}
	for _, sheet := range cfg.Sheets {
		f, err := os.Open(filepath.Join(cfg.Dir, sheet.File))
		if err != nil {
			return nil, fmt.Errorf("open sheet %s: %w", sheet.File, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode sheet %s: %w", sheet.File, err)
		}
		bank.sheets = append(bank.sheets, ebiten.NewImageFromImage(img))
	}
	return bank, nil
}

// sprite returns the sub-image for a global sprite index, or nil when the
// index is out of range.
func (b *spriteBank) sprite(global int) *ebiten.Image {
	sheetIdx, local, ok := b.config.Locate(global)
	if !ok {
		return nil
	}
	sheet := b.config.Sheets[sheetIdx]
	col := local % sheet.Columns
	row := local / sheet.Columns
	rect := image.Rect(
		col*sheet.SpriteWidth,
		row*sheet.SpriteHeight,
		(col+1)*sheet.SpriteWidth,
		(row+1)*sheet.SpriteHeight,
	)
	return b.sheets[sheetIdx].SubImage(rect).(*ebiten.Image)
}

// tileSprites returns the background and foreground sprites for a tile id.
// Either may be nil.
func (b *spriteBank) tileSprites(id string) (bg, fg *ebiten.Image) {
	ref, ok := b.config.Lookup(id)
	if !ok {
		return nil, nil
	}
	if ref.Background >= 0 {
		bg = b.sprite(ref.Background)
	}
	if ref.Foreground >= 0 {
		fg = b.sprite(ref.Foreground)
	}
	return bg, fg
}
