// Package settings persists the editor's configuration: where the game
// lives, which tileset to render with, and which mod directories to load.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Settings is the editor configuration. Values load from the YAML file and
// can be overridden per run through the environment.
type Settings struct {
	GamePath       string   `yaml:"game_path" env:"MAPFORGE_GAME_PATH"`
	Tileset        string   `yaml:"tileset" env:"MAPFORGE_TILESET"`
	ModDirectories []string `yaml:"mod_directories" env:"MAPFORGE_MOD_DIRS" envSeparator:":"`
	HistoryLimit   int      `yaml:"history_limit" env:"MAPFORGE_HISTORY_LIMIT" envDefault:"64"`
	CacheFile      string   `yaml:"cache_file" env:"MAPFORGE_CACHE_FILE"`
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("settings: config dir: %w", err)
	}
	return filepath.Join(dir, "mapforge", "settings.yaml"), nil
}

// Load reads the settings file and applies environment overrides. A missing
// file is not an error; defaults and environment still apply.
func Load(path string) (*Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("settings: unmarshal %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("settings: env: %w", err)
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = 64
	}
	return &s, nil
}

// Save writes the settings file, creating its directory as needed.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", path, err)
	}
	return nil
}

// DataRoot is the game's JSON content directory under the install path.
func (s *Settings) DataRoot() string {
	return filepath.Join(s.GamePath, "data", "json")
}

// ContentRoots lists every directory the editor loads records from.
func (s *Settings) ContentRoots() []string {
	roots := []string{s.DataRoot()}
	return append(roots, s.ModDirectories...)
}

// ValidateGamePath checks that the path looks like a game install: it must
// contain the data/json directory.
func ValidateGamePath(path string) error {
	if path == "" {
		return fmt.Errorf("settings: game path is empty")
	}
	info, err := os.Stat(filepath.Join(path, "data", "json"))
	if err != nil {
		return fmt.Errorf("settings: %s does not look like a game install: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("settings: %s: data/json is not a directory", path)
	}
	return nil
}
