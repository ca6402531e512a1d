// Package palette parses reusable symbol->terrain/furniture mapping records
// and resolves layered definition sources into one deterministic table.
package palette

import (
	"fmt"
	"sort"
)

// Mapping is a single symbol mapping inside a palette record. Empty strings
// mean the palette does not define that field for the symbol.
type Mapping struct {
	Symbol    string
	Terrain   string
	Furniture string
}

// Palette is a parsed external palette record.
type Palette struct {
	ID       string
	Mappings []Mapping
	// Includes lists the ids of other palettes this one pulls in.
	Includes []string
}

// Parse builds a Palette from a decoded palette record. The record's terrain
// and furniture objects map symbols to values in any of the forms accepted by
// ExtractFirstID; malformed values parse to empty fields rather than failing.
func Parse(raw map[string]any, id string) (*Palette, error) {
	if raw == nil {
		return nil, fmt.Errorf("palette: record %s is not an object", id)
	}

	bySymbol := make(map[string]*Mapping)
	ensure := func(sym string) *Mapping {
		m, ok := bySymbol[sym]
		if !ok {
			m = &Mapping{Symbol: sym}
			bySymbol[sym] = m
		}
		return m
	}

	if terrain, ok := raw["terrain"].(map[string]any); ok {
		for sym, v := range terrain {
			ensure(sym).Terrain = ExtractFirstID(v)
		}
	}
	if furniture, ok := raw["furniture"].(map[string]any); ok {
		for sym, v := range furniture {
			ensure(sym).Furniture = ExtractFirstID(v)
		}
	}

	p := &Palette{ID: id}
	for _, m := range bySymbol {
		p.Mappings = append(p.Mappings, *m)
	}
	sort.Slice(p.Mappings, func(i, j int) bool {
		return p.Mappings[i].Symbol < p.Mappings[j].Symbol
	})

	if includes, ok := raw["palettes"].([]any); ok {
		for _, v := range includes {
			if s, ok := v.(string); ok {
				p.Includes = append(p.Includes, s)
			}
		}
	}

	return p, nil
}

// ExtractFirstID pulls the first concrete id out of a terrain/furniture value.
// Accepted forms: "t_floor", ["t_floor", "t_grass"], [["t_floor", 2], "t_grass"].
// Anything else extracts to "".
func ExtractFirstID(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		switch first := v[0].(type) {
		case string:
			return first
		case []any:
			// weighted pair: ["t_floor", 2]
			if len(first) > 0 {
				if s, ok := first[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
