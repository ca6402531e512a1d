package content

import "fmt"

// validateRecord checks the structure every game record must have before the
// store accepts an edit. Records that copy from another entity get a pass on
// most fields; they inherit them at game load time.
func validateRecord(record map[string]any) error {
	typ, _ := record["type"].(string)
	if typ == "" {
		return fmt.Errorf("record has no 'type' field")
	}

	if err := validateIdentity(record, typ); err != nil {
		return err
	}

	if typ == "mapgen" {
		return validateMapgen(record)
	}
	return nil
}

// validateIdentity checks that a non-abstract record names itself. Recipes
// identify through their result, mapgens through om_terrain or one of the
// nested/update id fields.
func validateIdentity(record map[string]any, typ string) error {
	if _, ok := record["abstract"]; ok {
		return nil
	}
	if _, ok := record["id"]; ok {
		return nil
	}
	if typ == "recipe" || typ == "uncraft" {
		if _, ok := record["result"]; ok {
			return nil
		}
	}
	if typ == "mapgen" {
		if recordID(record) != "" {
			return nil
		}
		return fmt.Errorf("mapgen record has no om_terrain, nested_mapgen_id, or update_mapgen_id")
	}
	return fmt.Errorf("record has no 'id' field")
}

func validateMapgen(record map[string]any) error {
	obj, ok := record["object"].(map[string]any)
	if !ok {
		if _, copies := record["copy-from"]; copies {
			return nil
		}
		return fmt.Errorf("mapgen record has no 'object' field")
	}

	rows, hasRows := obj["rows"]
	_, hasFill := obj["fill_ter"]
	if !hasRows && !hasFill {
		return fmt.Errorf("mapgen object has neither 'rows' nor 'fill_ter'")
	}
	if !hasRows {
		return nil
	}

	list, ok := rows.([]any)
	if !ok {
		return fmt.Errorf("mapgen rows: expected array, got %T", rows)
	}
	width := -1
	for i, v := range list {
		row, ok := v.(string)
		if !ok {
			return fmt.Errorf("mapgen rows[%d]: expected string, got %T", i, v)
		}
		n := len([]rune(row))
		if width == -1 {
			width = n
		} else if n != width {
			return fmt.Errorf("mapgen rows[%d]: width %d, want %d", i, n, width)
		}
	}
	return nil
}
