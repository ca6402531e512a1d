package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Root is one content directory to load. Read-only roots index normally but
// reject edits, so the game's own data never gets rewritten.
type Root struct {
	Path     string
	ReadOnly bool
}

// Load walks every root recursively and indexes each .json file it finds.
// Files that fail to parse are logged and skipped so one broken mod never
// blocks the rest. modinfo.json carries no editable records and is ignored.
func (s *Store) Load(ctx context.Context, roots ...Root) error {
	s.mu.Lock()
	s.roots = append(s.roots, roots...)
	s.mu.Unlock()

	for _, root := range roots {
		err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
				return nil
			}
			if strings.EqualFold(filepath.Base(path), "modinfo.json") {
				s.loadModinfo(path)
				return nil
			}
			if err := s.loadFile(path); err != nil {
				log.Printf("content: skip %s: %v", path, err)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("content: load %s: %w", root.Path, err)
		}
	}
	return nil
}

// readOnlyPath reports whether path sits under a read-only root.
func (s *Store) readOnlyPath(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, root := range s.roots {
		if !root.ReadOnly {
			continue
		}
		clean := filepath.Clean(root.Path)
		if path == clean || strings.HasPrefix(path, clean+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Reload drops everything previously indexed from path and loads it again.
func (s *Store) Reload(path string) error {
	s.mu.Lock()
	s.evictFileLocked(path)
	s.mu.Unlock()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return s.loadFile(path)
}

func (s *Store) evictFileLocked(path string) {
	delete(s.files, path)
	kept := s.order[:0]
	for _, key := range s.order {
		if e := s.entities[key]; e != nil && e.File == path {
			delete(s.entities, key)
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
}

// loadModinfo records the pack metadata without indexing its record. The
// MOD_INFO record carries no editable content.
func (s *Store) loadModinfo(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("content: modinfo %s: %v", path, err)
		return
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		var single map[string]any
		if err := json.Unmarshal(data, &single); err != nil {
			log.Printf("content: modinfo %s: %v", path, err)
			return
		}
		records = []map[string]any{single}
	}
	for _, record := range records {
		if typ, _ := record["type"].(string); typ != "MOD_INFO" {
			continue
		}
		id, _ := record["id"].(string)
		name, _ := record["name"].(string)
		readOnly := s.readOnlyPath(path)
		s.mu.Lock()
		s.packs = append(s.packs, Pack{ID: id, Name: name, Root: filepath.Dir(path), ReadOnly: readOnly})
		s.mu.Unlock()
	}
}

func (s *Store) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	isArray := strings.HasPrefix(trimmed, "[")

	var raw []json.RawMessage
	if isArray {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse array: %w", err)
		}
	} else {
		var single json.RawMessage
		if err := json.Unmarshal(data, &single); err != nil {
			return fmt.Errorf("parse object: %w", err)
		}
		raw = []json.RawMessage{single}
	}

	readOnly := s.readOnlyPath(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = &packFile{path: path, raw: raw, isArray: isArray}
	for i, msg := range raw {
		var record map[string]any
		if err := json.Unmarshal(msg, &record); err != nil {
			// Non-object array elements are legal JSON but not records.
			continue
		}
		key := s.entityKey(record, path)
		typ, _ := record["type"].(string)
		e := &Entity{
			Key:      key,
			Type:     typ,
			ID:       recordID(record),
			File:     path,
			Index:    i,
			ReadOnly: readOnly,
			record:   record,
		}
		s.entities[key] = e
		s.order = append(s.order, key)
	}
	return nil
}
