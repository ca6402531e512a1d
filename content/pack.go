// Package content loads, indexes, and saves the JSON content packs the
// editor works on: the game's own data directory plus any mod directories.
package content

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Entity is one JSON record inside a pack file, addressed by its position in
// that file's top-level array.
type Entity struct {
	Key      string
	Type     string
	ID       string
	File     string
	Index    int
	ReadOnly bool

	record map[string]any
	dirty  bool
}

// Record returns the decoded record. Callers must not mutate it; edits go
// through Store.UpdateEntity.
func (e *Entity) Record() map[string]any { return e.record }

func (e *Entity) Dirty() bool { return e.dirty }

type packFile struct {
	path    string
	raw     []json.RawMessage
	isArray bool
}

// Pack is the modinfo.json metadata of one loaded content pack.
type Pack struct {
	ID       string
	Name     string
	Root     string
	ReadOnly bool
}

// Store is the in-memory index of every loaded pack. Untouched records keep
// their original bytes so saving never reformats what the user did not edit.
type Store struct {
	mu       sync.RWMutex
	files    map[string]*packFile
	entities map[string]*Entity
	order    []string
	packs    []Pack
	roots    []Root
}

func NewStore() *Store {
	return &Store{
		files:    make(map[string]*packFile),
		entities: make(map[string]*Entity),
	}
}

// Packs lists the modinfo metadata of every loaded pack, in load order.
func (s *Store) Packs() []Pack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Pack, len(s.packs))
	copy(out, s.packs)
	return out
}

// Entity looks up a record by key.
func (s *Store) Entity(key string) (*Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[key]
	return e, ok
}

// Keys returns every entity key in load order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len reports the number of loaded entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// UpdateEntity replaces an entity's record. The record is re-validated
// before it is accepted: it must encode cleanly and pass the structural
// checks in validateRecord. A rejected record leaves the store untouched,
// and entities under read-only roots never accept edits.
func (s *Store) UpdateEntity(key string, record map[string]any) error {
	if record == nil {
		return fmt.Errorf("content: update %s: nil record", key)
	}
	if err := validateRecord(record); err != nil {
		return fmt.Errorf("content: update %s: %w", key, err)
	}
	if _, err := marshalRecord(record); err != nil {
		return fmt.Errorf("content: update %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[key]
	if !ok {
		return fmt.Errorf("content: update %s: unknown entity", key)
	}
	if e.ReadOnly {
		return fmt.Errorf("content: update %s: %s is read-only", key, e.File)
	}
	e.record = record
	e.dirty = true
	return nil
}

// DirtyCount reports how many entities carry unsaved edits.
func (s *Store) DirtyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entities {
		if e.dirty {
			n++
		}
	}
	return n
}

// entityKey derives the "type:id" key for a record, deduplicating clashes
// with the source file's stem and a counter.
func (s *Store) entityKey(record map[string]any, path string) string {
	typ, _ := record["type"].(string)
	if typ == "" {
		typ = "unknown"
	}
	id := recordID(record)
	base := typ + ":" + id
	if id == "" {
		base = typ + ":@" + fileStem(path)
	}

	if _, taken := s.entities[base]; !taken {
		return base
	}
	withStem := base + "@" + fileStem(path)
	if _, taken := s.entities[withStem]; !taken {
		return withStem
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s@%s_%d", base, fileStem(path), n)
		if _, taken := s.entities[candidate]; !taken {
			return candidate
		}
	}
}

// recordID extracts the record's id. Mapgen records name themselves through
// om_terrain, which may be a string, an array, or a nested 2D array; nested
// mapgens use nested_mapgen_id instead.
func recordID(record map[string]any) string {
	if id, ok := record["id"].(string); ok {
		return id
	}
	if id := omTerrainID(record["om_terrain"]); id != "" {
		return id
	}
	if id, ok := record["nested_mapgen_id"].(string); ok {
		return id
	}
	if id, ok := record["update_mapgen_id"].(string); ok {
		return id
	}
	if id, ok := record["abstract"].(string); ok {
		return id
	}
	return ""
}

func omTerrainID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
		return omTerrainID(t[0])
	default:
		return ""
	}
}

func fileStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
