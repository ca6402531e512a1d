// Package tileset reads the game's tileset definitions: which tilesets an
// install ships, their sprite sheet layout, and how tile ids map onto sprite
// indices.
package tileset

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/png"
)

// Tileset names one installed tileset.
type Tileset struct {
	Name string
	Dir  string
}

// List scans the install's gfx directory for tilesets. A directory counts as
// a tileset when it carries a tile_config.json; the display name comes from
// tileset.txt when present, the directory name otherwise.
func List(gamePath string) ([]Tileset, error) {
	gfx := filepath.Join(gamePath, "gfx")
	entries, err := os.ReadDir(gfx)
	if err != nil {
		return nil, fmt.Errorf("tileset: list %s: %w", gfx, err)
	}

	var out []Tileset
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(gfx, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "tile_config.json")); err != nil {
			continue
		}
		name := entry.Name()
		if n := readTilesetName(filepath.Join(dir, "tileset.txt")); n != "" {
			name = n
		}
		out = append(out, Tileset{Name: name, Dir: dir})
	}
	return out, nil
}

func readTilesetName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "NAME:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// pngDimensions reads a sprite sheet's pixel size without decoding it.
func pngDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return cfg.Width, cfg.Height, nil
}
