package palette

import (
	"context"
	"log"
	"sync"
)

// Fetcher retrieves one palette record by id. Implementations search the
// loaded content packs and the game's own data files.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*Palette, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (*Palette, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, id string) (*Palette, error) {
	return f(ctx, id)
}

// FetchAll fetches every declared palette concurrently and returns them in
// declaration order regardless of completion order. A palette that fails to
// fetch yields a nil slot (logged, never fatal) so precedence stays stable
// for the rest. Includes inside a fetched palette are expanded depth-first
// ahead of the including palette's own mappings, matching how the game layers
// included palettes underneath the includer.
func FetchAll(ctx context.Context, fetcher Fetcher, ids []string) []*Palette {
	if fetcher == nil || len(ids) == 0 {
		return nil
	}

	slots := make([]*Palette, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			p, err := fetchWithIncludes(ctx, fetcher, id, make(map[string]bool))
			if err != nil {
				log.Printf("palette: fetch %s: %v", id, err)
				return
			}
			slots[i] = p
		}(i, id)
	}
	wg.Wait()

	return slots
}

// fetchWithIncludes resolves a palette and flattens its include chain into
// the returned mapping list, included palettes first. seen guards against
// include cycles.
func fetchWithIncludes(ctx context.Context, fetcher Fetcher, id string, seen map[string]bool) (*Palette, error) {
	if seen[id] {
		return nil, nil
	}
	seen[id] = true

	p, err := fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || len(p.Includes) == 0 {
		return p, nil
	}

	merged := &Palette{ID: p.ID}
	for _, inc := range p.Includes {
		child, err := fetchWithIncludes(ctx, fetcher, inc, seen)
		if err != nil {
			log.Printf("palette: include %s of %s: %v", inc, id, err)
			continue
		}
		if child != nil {
			merged.Mappings = append(merged.Mappings, child.Mappings...)
		}
	}
	merged.Mappings = append(merged.Mappings, p.Mappings...)
	return merged, nil
}
