package gamedata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/mapforge/content"
)

func loadStore(t *testing.T, body string) *content.Store {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s := content.NewStore()
	if err := s.Load(context.Background(), content.Root{Path: dir}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestScan(t *testing.T) {
	store := loadStore(t, `[
  {"type": "terrain", "id": "t_wall", "name": "wall", "symbol": "#", "color": "light_gray"},
  {"type": "terrain", "id": "t_dirt", "name": {"str": "dirt"}, "symbol": ".", "color": ["brown", "black"]},
  {"type": "terrain", "id": "t_wall", "name": "wall again"},
  {"type": "furniture", "id": "f_chair", "name": "chair", "symbol": "h", "color": "yellow"},
  {"type": "mapgen", "om_terrain": "field"}
]`)

	cat := Scan(store)
	if len(cat.Terrain) != 2 {
		t.Fatalf("terrain = %v, want 2 deduped entries", cat.Terrain)
	}
	if cat.Terrain[0].ID != "t_dirt" || cat.Terrain[1].ID != "t_wall" {
		t.Errorf("terrain not sorted by id: %v", cat.Terrain)
	}
	if cat.Terrain[0].Name != "dirt" {
		t.Errorf("translated name = %q, want dirt", cat.Terrain[0].Name)
	}
	if cat.Terrain[0].Color != "brown" {
		t.Errorf("color = %q, want first alternative", cat.Terrain[0].Color)
	}
	if len(cat.Furniture) != 1 || cat.Furniture[0].Symbol != "h" {
		t.Errorf("furniture = %v", cat.Furniture)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if _, ok, err := cache.Get(ctx, "/game"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	cat := &Catalog{
		Terrain:   []Object{{ID: "t_dirt", Name: "dirt", Symbol: ".", Color: "brown"}},
		Furniture: []Object{{ID: "f_chair", Name: "chair", Symbol: "h", Color: "yellow"}},
	}
	if err := cache.Put(ctx, "/game", cat); err != nil {
		t.Fatal(err)
	}

	got, ok, err := cache.Get(ctx, "/game")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.Terrain) != 1 || got.Terrain[0] != cat.Terrain[0] {
		t.Errorf("terrain = %v", got.Terrain)
	}
	if len(got.Furniture) != 1 || got.Furniture[0] != cat.Furniture[0] {
		t.Errorf("furniture = %v", got.Furniture)
	}
}

func TestCacheInvalidateIsWholesale(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	cat := &Catalog{Terrain: []Object{{ID: "t_dirt"}}}
	if err := cache.Put(ctx, "/game", cat); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, "/mods", cat); err != nil {
		t.Fatal(err)
	}

	if err := cache.Invalidate(ctx, "/game"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(ctx, "/game"); ok {
		t.Error("invalidated root must be gone")
	}
	if _, ok, _ := cache.Get(ctx, "/mods"); !ok {
		t.Error("other roots must survive")
	}
}

func TestCachePutReplaces(t *testing.T) {
	ctx := context.Background()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if err := cache.Put(ctx, "/game", &Catalog{Terrain: []Object{{ID: "t_old"}}}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, "/game", &Catalog{Terrain: []Object{{ID: "t_new"}}}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := cache.Get(ctx, "/game")
	if err != nil || !ok {
		t.Fatal(err)
	}
	if len(got.Terrain) != 1 || got.Terrain[0].ID != "t_new" {
		t.Errorf("terrain = %v, want only t_new", got.Terrain)
	}
}
