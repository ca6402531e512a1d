package tileset

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func writeTileset(t *testing.T, dir string) {
	t.Helper()
	writePNG(t, filepath.Join(dir, "tiles.png"), 64, 32)
	writePNG(t, filepath.Join(dir, "large.png"), 64, 64)
	config := `{
  "tile_info": [{"width": 16, "height": 16}],
  "tiles-new": [
    {
      "file": "tiles.png",
      "tiles": [
        {"id": "t_wall", "fg": 3, "bg": 0},
        {"id": ["t_dirt", "t_soil"], "fg": [5, 6], "bg": [{"sprite": 1, "weight": 10}]},
        {"id": "t_open_air", "fg": 2}
      ]
    },
    {
      "file": "large.png",
      "sprite_width": 32,
      "sprite_height": 32,
      "tiles": [{"id": "f_crate", "fg": 9}]
    }
  ]
}`
	if err := os.WriteFile(filepath.Join(dir, "tile_config.json"), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeTileset(t, dir)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TileWidth != 16 || cfg.TileHeight != 16 {
		t.Errorf("tile size %dx%d, want 16x16", cfg.TileWidth, cfg.TileHeight)
	}
	if len(cfg.Sheets) != 2 {
		t.Fatalf("sheets = %d, want 2", len(cfg.Sheets))
	}
	// 64x32 at 16x16 sprites.
	if s := cfg.Sheets[0]; s.Count != 8 || s.Columns != 4 || s.Offset != 0 {
		t.Errorf("sheet 0 = %+v", s)
	}
	// 64x64 at 32x32 sprites, offset past the first sheet.
	if s := cfg.Sheets[1]; s.Count != 4 || s.Columns != 2 || s.Offset != 8 {
		t.Errorf("sheet 1 = %+v", s)
	}
}

func TestLookupForms(t *testing.T) {
	dir := t.TempDir()
	writeTileset(t, dir)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id     string
		fg, bg int
	}{
		{id: "t_wall", fg: 3, bg: 0},
		{id: "t_dirt", fg: 5, bg: 1},
		{id: "t_soil", fg: 5, bg: 1},
		{id: "t_open_air", fg: 2, bg: -1},
		{id: "f_crate", fg: 9, bg: -1},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			ref, ok := cfg.Lookup(tt.id)
			if !ok {
				t.Fatalf("id %s not indexed", tt.id)
			}
			if ref.Foreground != tt.fg || ref.Background != tt.bg {
				t.Errorf("ref = %+v, want fg=%d bg=%d", ref, tt.fg, tt.bg)
			}
		})
	}
	if _, ok := cfg.Lookup("t_missing"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	writeTileset(t, dir)
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		global, sheet, local int
		ok                   bool
	}{
		{global: 0, sheet: 0, local: 0, ok: true},
		{global: 7, sheet: 0, local: 7, ok: true},
		{global: 8, sheet: 1, local: 0, ok: true},
		{global: 11, sheet: 1, local: 3, ok: true},
		{global: 12, ok: false},
		{global: -1, ok: false},
	}
	for _, tt := range tests {
		sheet, local, ok := cfg.Locate(tt.global)
		if ok != tt.ok || (ok && (sheet != tt.sheet || local != tt.local)) {
			t.Errorf("Locate(%d) = (%d, %d, %v), want (%d, %d, %v)",
				tt.global, sheet, local, ok, tt.sheet, tt.local, tt.ok)
		}
	}
}

func TestList(t *testing.T) {
	game := t.TempDir()
	retro := filepath.Join(game, "gfx", "RetroTiles")
	if err := os.MkdirAll(retro, 0o755); err != nil {
		t.Fatal(err)
	}
	writeTileset(t, retro)
	if err := os.WriteFile(filepath.Join(retro, "tileset.txt"),
		[]byte("#comment\nNAME: Retro Days\nVIEW: retro\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(game, "gfx", "NotATileset"), 0o755); err != nil {
		t.Fatal(err)
	}

	sets, err := List(game)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 {
		t.Fatalf("tilesets = %v, want 1", sets)
	}
	if sets[0].Name != "Retro Days" {
		t.Errorf("name = %q, want tileset.txt name", sets[0].Name)
	}
}
