package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/mapforge/content"
	"github.com/milk9111/mapforge/gamedata"
	"github.com/milk9111/mapforge/settings"
	"github.com/milk9111/mapforge/tileset"
)

func main() {
	settingsPath := flag.String("settings", "", "settings file (defaults to the user config dir)")
	gamePath := flag.String("game", "", "game install path (overrides settings)")
	noTiles := flag.Bool("no-tiles", false, "render symbols instead of tileset sprites")
	rescan := flag.Bool("rescan", false, "drop the cached terrain/furniture catalog and rescan")
	flag.Parse()

	path := *settingsPath
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			log.Fatal(err)
		}
	}
	cfg, err := settings.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	if *gamePath != "" {
		cfg.GamePath = *gamePath
	}
	if err := settings.ValidateGamePath(cfg.GamePath); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	store := content.NewStore()
	roots := []content.Root{{Path: cfg.DataRoot(), ReadOnly: true}}
	for _, dir := range cfg.ModDirectories {
		roots = append(roots, content.Root{Path: dir})
	}
	if err := store.Load(ctx, roots...); err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d entities from %d roots", store.Len(), len(roots))

	catalog := loadCatalog(ctx, cfg, store, *rescan)
	sprites := loadSprites(cfg, *noTiles)

	app := newApp(store, catalog, sprites, cfg.HistoryLimit)
	if watcher, err := content.NewWatcher(cfg.ContentRoots()...); err != nil {
		log.Printf("watcher disabled: %v", err)
	} else {
		app.watcher = watcher
		defer watcher.Close()
	}

	ebiten.SetWindowSize(1500, 900)
	ebiten.SetWindowTitle("mapforge")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}

// loadCatalog serves the terrain/furniture catalog from the cache when it
// has one for this install, scanning and filling the cache otherwise. With
// rescan set the cached catalog is dropped first so a game update is picked
// up even though the install path did not change.
func loadCatalog(ctx context.Context, cfg *settings.Settings, store *content.Store, rescan bool) *gamedata.Catalog {
	cachePath := cfg.CacheFile
	if cachePath == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			cachePath = filepath.Join(dir, "mapforge", "gamedata.db")
		}
	}
	if cachePath == "" {
		return gamedata.Scan(store)
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		log.Printf("gamedata cache disabled: %v", err)
		return gamedata.Scan(store)
	}

	cache, err := gamedata.OpenCache(cachePath)
	if err != nil {
		log.Printf("gamedata cache disabled: %v", err)
		return gamedata.Scan(store)
	}
	defer cache.Close()

	root := cfg.DataRoot()
	if rescan {
		if err := cache.Invalidate(ctx, root); err != nil {
			log.Printf("gamedata cache invalidate: %v", err)
		}
	}
	if catalog, ok, err := cache.Get(ctx, root); err == nil && ok {
		return catalog
	}
	catalog := gamedata.Scan(store)
	if err := cache.Put(ctx, root, catalog); err != nil {
		log.Printf("gamedata cache write: %v", err)
	}
	return catalog
}

func loadSprites(cfg *settings.Settings, noTiles bool) *spriteBank {
	if noTiles || cfg.Tileset == "" {
		return nil
	}
	sets, err := tileset.List(cfg.GamePath)
	if err != nil {
		log.Printf("tilesets unavailable: %v", err)
		return nil
	}
	for _, ts := range sets {
		if ts.Name != cfg.Tileset && filepath.Base(ts.Dir) != cfg.Tileset {
			continue
		}
		tcfg, err := tileset.LoadConfig(ts.Dir)
		if err != nil {
			log.Printf("tileset %s: %v", ts.Name, err)
			return nil
		}
		bank, err := loadSpriteBank(tcfg)
		if err != nil {
			log.Printf("tileset %s: %v", ts.Name, err)
			return nil
		}
		log.Printf("tileset %s: %d sheets", ts.Name, len(bank.sheets))
		return bank
	}
	log.Printf("tileset %q not found", cfg.Tileset)
	return nil
}
