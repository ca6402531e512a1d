package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadIndexesRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maps.json", `[
  {"type": "mapgen", "om_terrain": "field", "object": {"rows": ["."]}},
  {"type": "palette", "id": "base", "terrain": {"#": "t_wall"}}
]`)
	writeFile(t, dir, "single.json", `{"type": "terrain", "id": "t_dirt", "name": "dirt"}`)
	writeFile(t, dir, "modinfo.json", `[{"type": "MOD_INFO", "id": "core", "name": "Core Content"}]`)
	writeFile(t, dir, "broken.json", `[{"type": "mapgen",`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"mapgen:field", "palette:base", "terrain:t_dirt"} {
		if _, ok := s.Entity(key); !ok {
			t.Errorf("missing entity %s", key)
		}
	}
	if _, ok := s.Entity("MOD_INFO:core"); ok {
		t.Error("modinfo.json must not be indexed as an entity")
	}
	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
	packs := s.Packs()
	if len(packs) != 1 || packs[0].ID != "core" || packs[0].Name != "Core Content" {
		t.Errorf("packs = %v", packs)
	}
}

func TestEntityKeyForms(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[
  {"type": "mapgen", "om_terrain": ["h_start", "h_mid"]},
  {"type": "mapgen", "om_terrain": [["g1", "g2"], ["g3", "g4"]]},
  {"type": "mapgen", "nested_mapgen_id": "shed_interior"},
  {"type": "mapgen"}
]`)
	writeFile(t, dir, "b.json", `[{"type": "mapgen", "om_terrain": "h_start"}]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{
		"mapgen:h_start",
		"mapgen:g1",
		"mapgen:shed_interior",
		"mapgen:@a",
		"mapgen:h_start@b",
	} {
		if _, ok := s.Entity(key); !ok {
			t.Errorf("missing entity %s, have %v", key, s.Keys())
		}
	}
}

func TestUpdateEntityValidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maps.json", `[{"type": "mapgen", "om_terrain": "field"}]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	rejected := []struct {
		name   string
		record map[string]any
	}{
		{"nil record", nil},
		{"missing type", map[string]any{"om_terrain": "field"}},
		{"missing id", map[string]any{"type": "terrain", "name": "x"}},
		{"mapgen without identity", map[string]any{"type": "mapgen", "object": map[string]any{"rows": []any{"."}}}},
		{"mapgen without object", map[string]any{"type": "mapgen", "om_terrain": "field"}},
		{"mapgen object without rows or fill_ter", map[string]any{
			"type": "mapgen", "om_terrain": "field", "object": map[string]any{},
		}},
		{"ragged rows", map[string]any{
			"type": "mapgen", "om_terrain": "field",
			"object": map[string]any{"rows": []any{"..", "."}},
		}},
		{"unencodable value", map[string]any{"type": "terrain", "id": "t_dirt", "color": make(chan int)}},
	}
	for _, tc := range rejected {
		if err := s.UpdateEntity("mapgen:field", tc.record); err == nil {
			t.Errorf("%s must be rejected", tc.name)
		}
	}
	if err := s.UpdateEntity("missing:key", map[string]any{"type": "terrain", "id": "x"}); err == nil {
		t.Error("unknown key must be rejected")
	}
	if s.DirtyCount() != 0 {
		t.Errorf("dirty = %d after rejected updates, want 0", s.DirtyCount())
	}

	good := map[string]any{
		"type": "mapgen", "om_terrain": "field",
		"object": map[string]any{"rows": []any{".#", ".."}},
	}
	if err := s.UpdateEntity("mapgen:field", good); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}
	abstract := map[string]any{"type": "mapgen", "abstract": "field", "copy-from": "field"}
	if err := validateRecord(abstract); err != nil {
		t.Errorf("abstract record rejected: %v", err)
	}
}

func TestReadOnlyRootRejectsEdits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maps.json", `[{"type": "mapgen", "om_terrain": "field", "object": {"rows": ["."]}}]`)
	writeFile(t, dir, "modinfo.json", `[{"type": "MOD_INFO", "id": "core", "name": "Core"}]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir, ReadOnly: true}); err != nil {
		t.Fatal(err)
	}

	e, ok := s.Entity("mapgen:field")
	if !ok {
		t.Fatal("read-only roots must still index")
	}
	if !e.ReadOnly {
		t.Error("entity under a read-only root must be flagged")
	}
	if packs := s.Packs(); len(packs) != 1 || !packs[0].ReadOnly {
		t.Errorf("pack must carry the read-only flag, got %v", packs)
	}

	record := map[string]any{
		"type": "mapgen", "om_terrain": "field",
		"object": map[string]any{"rows": []any{"#"}},
	}
	if err := s.UpdateEntity("mapgen:field", record); err == nil {
		t.Error("edit of a read-only entity must be rejected")
	}
	if s.DirtyCount() != 0 {
		t.Errorf("dirty = %d, want 0", s.DirtyCount())
	}

	before, err := os.ReadFile(filepath.Join(dir, "maps.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(filepath.Join(dir, "maps.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("save must not touch files under a read-only root")
	}
}

func TestSaveRewritesOnlyDirtySlots(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "maps.json", `[
  {"type": "mapgen", "om_terrain": "field", "weight": 100, "object": {"rows": ["."]}},
  {"type": "palette", "id": "base", "terrain": {"#": "t_wall"}}
]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	e, _ := s.Entity("mapgen:field")
	record := map[string]any{
		"type":       "mapgen",
		"om_terrain": "field",
		"weight":     float64(50),
		"object":     map[string]any{"rows": []any{"#"}},
	}
	if err := s.UpdateEntity(e.Key, record); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.DirtyCount() != 0 {
		t.Errorf("dirty = %d after save, want 0", s.DirtyCount())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, `"weight": 50`) {
		t.Errorf("edited record not written:\n%s", text)
	}
	if !strings.Contains(text, `"t_wall"`) {
		t.Errorf("untouched record lost:\n%s", text)
	}
	if strings.Index(text, `"type": "mapgen"`) > strings.Index(text, `"om_terrain"`) {
		t.Errorf("type must be hoisted ahead of other fields:\n%s", text)
	}

	reloaded := NewStore()
	if err := reloaded.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}
	got, ok := reloaded.Entity("mapgen:field")
	if !ok {
		t.Fatal("entity lost after save")
	}
	if got.Record()["weight"] != float64(50) {
		t.Errorf("weight = %v, want 50", got.Record()["weight"])
	}
}

func TestReloadEvictsStaleEntities(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "maps.json", `[{"type": "mapgen", "om_terrain": "field"}]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	writeFile(t, dir, "maps.json", `[{"type": "mapgen", "om_terrain": "meadow"}]`)
	if err := s.Reload(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Entity("mapgen:field"); ok {
		t.Error("stale entity survived reload")
	}
	if _, ok := s.Entity("mapgen:meadow"); !ok {
		t.Error("new entity missing after reload")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(path); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Entity("mapgen:meadow"); ok {
		t.Error("entities from a removed file must be evicted")
	}
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maps.json", `[
  {"type": "mapgen", "om_terrain": "farm_house"},
  {"type": "mapgen", "om_terrain": "farm_barn"},
  {"type": "mapgen", "om_terrain": "farm"},
  {"type": "palette", "id": "farm_palette"}
]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	if got := s.Search("farm", ""); len(got) != 4 {
		t.Errorf("search farm = %v, want 4 hits", got)
	} else if got[0] != "mapgen:farm" {
		t.Errorf("exact id match must sort first, got %v", got)
	}
	if got := s.Search("farm", "mapgen"); len(got) != 3 {
		t.Errorf("search farm mapgen = %v, want 3 hits", got)
	}
	if got := s.Search("BARN", ""); len(got) != 1 || got[0] != "mapgen:farm_barn" {
		t.Errorf("search BARN = %v", got)
	}
	if got := s.Search("", "palette"); len(got) != 1 {
		t.Errorf("empty query with type = %v", got)
	}
}

func TestPaletteFetcher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "palettes.json", `[
  {"type": "palette", "id": "base", "terrain": {"#": "t_wall", "+": "t_door"}, "palettes": ["roof"]}
]`)

	s := NewStore()
	if err := s.Load(context.Background(), Root{Path: dir}); err != nil {
		t.Fatal(err)
	}

	f := NewPaletteFetcher(s)
	p, err := f.Fetch(context.Background(), "base")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Mappings) != 2 {
		t.Errorf("mappings = %v", p.Mappings)
	}
	if len(p.Includes) != 1 || p.Includes[0] != "roof" {
		t.Errorf("includes = %v", p.Includes)
	}

	if _, err := f.Fetch(context.Background(), "missing"); err == nil {
		t.Error("missing palette must error")
	}
}
