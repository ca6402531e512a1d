package palette

import "sort"

// SourceKind tells which definition source currently supplies a symbol's
// resolved values.
type SourceKind int

const (
	// SourceInline marks entries owned by the entity itself.
	SourceInline SourceKind = iota
	// SourceExternal marks entries supplied by an external palette.
	SourceExternal
)

func (k SourceKind) String() string {
	switch k {
	case SourceInline:
		return "inline"
	case SourceExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Source is the per-entry provenance. PaletteID is set only for external
// entries.
type Source struct {
	Kind      SourceKind
	PaletteID string
}

// SymbolEntry is one resolved symbol mapping. Empty Terrain/Furniture means
// the field resolved to nothing.
type SymbolEntry struct {
	Symbol    rune
	Terrain   string
	Furniture string
	Source    Source
	// Synthesized is true for entries the resolver invented to satisfy the
	// every-grid-symbol-has-an-entry invariant (fill defaults and otherwise
	// undefined symbols). Synthesized entries are never serialized back into
	// the entity's inline maps.
	Synthesized bool
}

// Resolution is the resolved symbol table for one entity. Iteration via
// Entries is sorted by symbol so downstream consumers are deterministic.
type Resolution struct {
	entries map[rune]SymbolEntry
}

// Entry returns the resolved entry for a symbol.
func (r *Resolution) Entry(sym rune) (SymbolEntry, bool) {
	if r == nil {
		return SymbolEntry{}, false
	}
	e, ok := r.entries[sym]
	return e, ok
}

// Entries returns all entries sorted by symbol.
func (r *Resolution) Entries() []SymbolEntry {
	if r == nil {
		return nil
	}
	out := make([]SymbolEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len reports the number of resolved symbols.
func (r *Resolution) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// backgroundSymbol reports whether the fill default applies to sym. Only the
// two conventional background symbols take the fill terrain.
func backgroundSymbol(sym rune) bool {
	return sym == ' ' || sym == '.'
}

// Resolve merges the layered definition sources into one symbol table.
//
// Precedence, highest wins:
//  1. inline terrain/furniture maps from the entity itself
//  2. external palettes in declaration order, later palettes overwriting
//     earlier ones field by field
//  3. the fill-default terrain, blank and period symbols only
//  4. symbols observed in the grid with no definition at all get a
//     synthesized entry
//
// A nil slot in external (a palette that failed to fetch) contributes
// nothing. Provenance is tracked per entry: the moment any inline field is
// set the whole entry becomes inline.
func Resolve(fillTerrain string, external []*Palette, inlineTerrain, inlineFurniture map[string]any, observed []rune) *Resolution {
	entries := make(map[rune]SymbolEntry)

	ensure := func(sym rune) SymbolEntry {
		if e, ok := entries[sym]; ok {
			return e
		}
		return SymbolEntry{Symbol: sym}
	}

	// External palettes in declaration order. Terrain and furniture may land
	// from different palettes independently; the last palette to touch a
	// field owns the entry's provenance.
	for _, p := range external {
		if p == nil {
			continue
		}
		for _, m := range p.Mappings {
			sym, ok := firstRune(m.Symbol)
			if !ok {
				continue
			}
			e := ensure(sym)
			if m.Terrain != "" {
				e.Terrain = m.Terrain
				e.Source = Source{Kind: SourceExternal, PaletteID: p.ID}
			}
			if m.Furniture != "" {
				e.Furniture = m.Furniture
				e.Source = Source{Kind: SourceExternal, PaletteID: p.ID}
			}
			entries[sym] = e
		}
	}

	// Inline overrides win over everything and collapse the entry's
	// provenance to inline even when only one field is overridden.
	for symStr, v := range inlineTerrain {
		sym, ok := firstRune(symStr)
		if !ok {
			continue
		}
		e := ensure(sym)
		e.Terrain = ExtractFirstID(v)
		e.Source = Source{Kind: SourceInline}
		e.Synthesized = false
		entries[sym] = e
	}
	for symStr, v := range inlineFurniture {
		sym, ok := firstRune(symStr)
		if !ok {
			continue
		}
		e := ensure(sym)
		e.Furniture = ExtractFirstID(v)
		e.Source = Source{Kind: SourceInline}
		e.Synthesized = false
		entries[sym] = e
	}

	// Fill default for the background symbols, only where nothing above
	// supplied a terrain.
	if fillTerrain != "" {
		for _, sym := range []rune{' ', '.'} {
			e, ok := entries[sym]
			if ok && e.Terrain != "" {
				continue
			}
			if !ok {
				e = SymbolEntry{Symbol: sym, Source: Source{Kind: SourceInline}, Synthesized: true}
			}
			e.Terrain = fillTerrain
			entries[sym] = e
		}
	}

	// Every symbol observed in the grid ends up with exactly one entry.
	for _, sym := range observed {
		if _, ok := entries[sym]; ok {
			continue
		}
		e := SymbolEntry{Symbol: sym, Source: Source{Kind: SourceInline}, Synthesized: true}
		if fillTerrain != "" && backgroundSymbol(sym) {
			e.Terrain = fillTerrain
		}
		entries[sym] = e
	}

	return &Resolution{entries: entries}
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
