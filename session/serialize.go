package session

import "github.com/milk9111/mapforge/palette"

// Serialize rebuilds the record from the working grid and the resolved
// symbol table: rows come from the grid, and the inline terrain and
// furniture maps are regenerated from inline-provenance entries only, so
// mappings inherited from external palettes or the fill default never fork
// into the record. Every other field is carried through untouched. Returns
// nil when no entity is loaded.
func (s *Session) Serialize() map[string]any {
	if s == nil || s.grid == nil {
		return nil
	}

	record := make(map[string]any, len(s.record))
	for k, v := range s.record {
		record[k] = v
	}

	obj := objectOf(s.record)
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		out[k] = v
	}

	rows := s.grid.Rows()
	rowsAny := make([]any, len(rows))
	for i, r := range rows {
		rowsAny[i] = r
	}
	out["rows"] = rowsAny

	terrain := make(map[string]any)
	furniture := make(map[string]any)
	if s.resolution != nil {
		for _, entry := range s.resolution.Entries() {
			if entry.Source.Kind != palette.SourceInline || entry.Synthesized {
				continue
			}
			sym := string(entry.Symbol)
			if entry.Terrain != "" {
				terrain[sym] = entry.Terrain
			}
			if entry.Furniture != "" {
				furniture[sym] = entry.Furniture
			}
		}
	}
	if len(terrain) > 0 {
		out["terrain"] = terrain
	} else {
		delete(out, "terrain")
	}
	if len(furniture) > 0 {
		out["furniture"] = furniture
	} else {
		delete(out, "furniture")
	}

	if _, wrapped := s.record["object"].(map[string]any); wrapped {
		record["object"] = out
		return record
	}
	return out
}
