package tileset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Sheet is one sprite sheet of a tileset. Offset is the first global sprite
// index the sheet covers; sheets partition the global index space in
// declaration order.
type Sheet struct {
	File         string
	SpriteWidth  int
	SpriteHeight int
	Columns      int
	Count        int
	Offset       int
}

// TileRef is the sprite pair for one tile id. Negative means the tile has no
// sprite for that layer.
type TileRef struct {
	Foreground int
	Background int
}

// Config is one tileset's parsed tile_config.json.
type Config struct {
	Dir        string
	TileWidth  int
	TileHeight int
	Sheets     []Sheet

	tiles map[string]TileRef
}

type rawConfig struct {
	TileInfo []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"tile_info"`
	TilesNew []rawSheet `json:"tiles-new"`
}

type rawSheet struct {
	File         string    `json:"file"`
	SpriteWidth  int       `json:"sprite_width"`
	SpriteHeight int       `json:"sprite_height"`
	Tiles        []rawTile `json:"tiles"`
}

type rawTile struct {
	ID json.RawMessage `json:"id"`
	Fg json.RawMessage `json:"fg"`
	Bg json.RawMessage `json:"bg"`
}

// LoadConfig parses dir/tile_config.json. Sprite counts come from each
// sheet's PNG dimensions, so the global sprite index ranges match what the
// game itself computes.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, "tile_config.json"))
	if err != nil {
		return nil, fmt.Errorf("tileset: read config: %w", err)
	}
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tileset: parse config: %w", err)
	}
	if len(raw.TileInfo) == 0 {
		return nil, fmt.Errorf("tileset: %s: missing tile_info", dir)
	}

	cfg := &Config{
		Dir:        dir,
		TileWidth:  raw.TileInfo[0].Width,
		TileHeight: raw.TileInfo[0].Height,
		tiles:      make(map[string]TileRef),
	}

	offset := 0
	for _, rs := range raw.TilesNew {
		sw, sh := rs.SpriteWidth, rs.SpriteHeight
		if sw == 0 {
			sw = cfg.TileWidth
		}
		if sh == 0 {
			sh = cfg.TileHeight
		}
		pw, ph, err := pngDimensions(filepath.Join(dir, rs.File))
		if err != nil {
			return nil, fmt.Errorf("tileset: sheet %s: %w", rs.File, err)
		}
		cols := pw / sw
		count := cols * (ph / sh)
		cfg.Sheets = append(cfg.Sheets, Sheet{
			File:         rs.File,
			SpriteWidth:  sw,
			SpriteHeight: sh,
			Columns:      cols,
			Count:        count,
			Offset:       offset,
		})

		for _, rt := range rs.Tiles {
			ref := TileRef{
				Foreground: spriteIndex(rt.Fg),
				Background: spriteIndex(rt.Bg),
			}
			for _, id := range tileIDs(rt.ID) {
				cfg.tiles[id] = ref
			}
		}
		offset += count
	}
	return cfg, nil
}

// Lookup returns the sprite pair for a tile id.
func (c *Config) Lookup(id string) (TileRef, bool) {
	ref, ok := c.tiles[id]
	return ref, ok
}

// Locate converts a global sprite index into a sheet and a local index
// within it.
func (c *Config) Locate(global int) (sheet int, local int, ok bool) {
	if global < 0 {
		return 0, 0, false
	}
	for i, s := range c.Sheets {
		if global < s.Offset+s.Count {
			return i, global - s.Offset, true
		}
	}
	return 0, 0, false
}

// tileIDs handles both a single id string and an array of aliases.
func tileIDs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

// spriteIndex extracts the first sprite index from the fg/bg field, which
// may be a bare number, an array of numbers, or an array of weighted
// {sprite, weight} objects. Returns -1 when absent.
func spriteIndex(raw json.RawMessage) int {
	if len(raw) == 0 {
		return -1
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		if err := json.Unmarshal(arr[0], &n); err == nil {
			return n
		}
		var weighted struct {
			Sprite json.RawMessage `json:"sprite"`
		}
		if err := json.Unmarshal(arr[0], &weighted); err == nil && len(weighted.Sprite) > 0 {
			return spriteIndex(weighted.Sprite)
		}
	}
	return -1
}
