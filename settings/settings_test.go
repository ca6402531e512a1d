package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if s.HistoryLimit != 64 {
		t.Errorf("history limit = %d, want default 64", s.HistoryLimit)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := "game_path: /opt/game\ntileset: retro\nmod_directories:\n  - /mods/a\n  - /mods/b\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MAPFORGE_TILESET", "ultica")

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.GamePath != "/opt/game" {
		t.Errorf("game path = %q", s.GamePath)
	}
	if s.Tileset != "ultica" {
		t.Errorf("tileset = %q, environment must win over the file", s.Tileset)
	}
	if len(s.ModDirectories) != 2 {
		t.Errorf("mod dirs = %v", s.ModDirectories)
	}
	if got := s.ContentRoots(); len(got) != 3 || got[0] != filepath.Join("/opt/game", "data", "json") {
		t.Errorf("content roots = %v", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	s := &Settings{GamePath: "/opt/game", Tileset: "retro", HistoryLimit: 32}
	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.GamePath != s.GamePath || got.Tileset != s.Tileset || got.HistoryLimit != 32 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestValidateGamePath(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateGamePath(dir); err == nil {
		t.Error("bare directory must fail validation")
	}
	if err := ValidateGamePath(""); err == nil {
		t.Error("empty path must fail validation")
	}
	if err := os.MkdirAll(filepath.Join(dir, "data", "json"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := ValidateGamePath(dir); err != nil {
		t.Errorf("valid install rejected: %v", err)
	}
}
