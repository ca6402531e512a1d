package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// priorityFields are hoisted to the front of every written record so saved
// files diff cleanly against the game's own formatting.
var priorityFields = []string{"type", "id", "name"}

// Save writes every dirty entity back to disk. Dirty records are grouped by
// source file; within each file only the edited array slots are re-encoded,
// untouched slots keep their original bytes.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byFile := make(map[string][]*Entity)
	for _, key := range s.order {
		e := s.entities[key]
		if e == nil || !e.dirty {
			continue
		}
		if e.ReadOnly {
			return fmt.Errorf("content: save %s: %s is read-only", e.Key, e.File)
		}
		byFile[e.File] = append(byFile[e.File], e)
	}

	for path, dirty := range byFile {
		pf, ok := s.files[path]
		if !ok {
			return fmt.Errorf("content: save: no loaded file for %s", path)
		}
		for _, e := range dirty {
			encoded, err := marshalRecord(e.record)
			if err != nil {
				return fmt.Errorf("content: save %s: %w", e.Key, err)
			}
			if e.Index < 0 || e.Index >= len(pf.raw) {
				return fmt.Errorf("content: save %s: index %d out of range", e.Key, e.Index)
			}
			pf.raw[e.Index] = encoded
		}
		if err := writePackFile(pf); err != nil {
			return err
		}
		for _, e := range dirty {
			e.dirty = false
		}
	}
	return nil
}

func writePackFile(pf *packFile) error {
	var buf bytes.Buffer
	if pf.isArray {
		buf.WriteString("[\n")
		for i, msg := range pf.raw {
			buf.WriteString("  ")
			buf.Write(indentRaw(msg, "  "))
			if i < len(pf.raw)-1 {
				buf.WriteString(",")
			}
			buf.WriteString("\n")
		}
		buf.WriteString("]\n")
	} else {
		buf.Write(pf.raw[0])
		buf.WriteString("\n")
	}
	if err := os.WriteFile(pf.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("content: write %s: %w", pf.path, err)
	}
	return nil
}

// indentRaw reindents a raw record for embedding at the given prefix depth.
func indentRaw(msg json.RawMessage, prefix string) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, msg, prefix, "  "); err != nil {
		return msg
	}
	return buf.Bytes()
}

// marshalRecord encodes a record with the priority fields first and the
// remaining keys sorted, two-space indented.
func marshalRecord(record map[string]any) (json.RawMessage, error) {
	keys := make([]string, 0, len(record))
	seen := make(map[string]bool, len(priorityFields))
	for _, k := range priorityFields {
		if _, ok := record[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(record))
	for k := range record {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.MarshalIndent(record[k], "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.WriteString("  ")
		buf.Write(kb)
		buf.WriteString(": ")
		buf.Write(vb)
		if i < len(keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}
