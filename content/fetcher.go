package content

import (
	"context"
	"fmt"

	"github.com/milk9111/mapforge/palette"
)

// PaletteFetcher resolves palette ids against the loaded packs.
type PaletteFetcher struct {
	store *Store
}

func NewPaletteFetcher(store *Store) *PaletteFetcher {
	return &PaletteFetcher{store: store}
}

// Fetch implements palette.Fetcher.
func (f *PaletteFetcher) Fetch(ctx context.Context, id string) (*palette.Palette, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := f.store.Entity("palette:" + id)
	if !ok {
		return nil, fmt.Errorf("content: palette %s not found", id)
	}
	p, err := palette.Parse(e.Record(), id)
	if err != nil {
		return nil, fmt.Errorf("content: palette %s: %w", id, err)
	}
	return p, nil
}
