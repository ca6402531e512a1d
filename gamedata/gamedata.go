// Package gamedata catalogs the terrain and furniture definitions the game
// ships so the editor can offer real ids with their display names, symbols,
// and colors.
package gamedata

import (
	"sort"

	"github.com/milk9111/mapforge/content"
)

// Object is one terrain or furniture definition.
type Object struct {
	ID     string
	Name   string
	Symbol string
	Color  string
}

// Catalog is the scanned set of placeable definitions, each list sorted by
// id with duplicates removed.
type Catalog struct {
	Terrain   []Object
	Furniture []Object
}

// Scan builds a catalog from the records already loaded into the store.
func Scan(store *content.Store) *Catalog {
	return &Catalog{
		Terrain:   scanType(store, "terrain"),
		Furniture: scanType(store, "furniture"),
	}
}

func scanType(store *content.Store, typ string) []Object {
	seen := make(map[string]bool)
	var out []Object
	for _, key := range store.Search("", typ) {
		e, ok := store.Entity(key)
		if !ok {
			continue
		}
		record := e.Record()
		id, _ := record["id"].(string)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Object{
			ID:     id,
			Name:   displayName(record["name"]),
			Symbol: stringField(record["symbol"]),
			Color:  stringField(record["color"]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// displayName handles both plain string names and the translated object form
// {"str": ...}.
func displayName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["str"].(string); ok {
			return s
		}
		if s, ok := t["str_sp"].(string); ok {
			return s
		}
	}
	return ""
}

// stringField returns v as a string, taking the first element when the game
// lists alternatives.
func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return stringField(t[0])
		}
	}
	return ""
}
