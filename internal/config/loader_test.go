package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  address: ":9090"
game:
  width: 30
  height: 15
leaderboard:
  path: "/tmp/scores.json"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("Address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Game.Width != 30 || cfg.Game.Height != 15 {
		t.Errorf("Grid = %dx%d, want 30x15", cfg.Game.Width, cfg.Game.Height)
	}
	if cfg.Leaderboard.Path != "/tmp/scores.json" {
		t.Errorf("Leaderboard path = %q", cfg.Leaderboard.Path)
	}

	// Unset sections keep defaults.
	if cfg.SSH.Address != ":23235" {
		t.Errorf("SSH address should keep its default, got %q", cfg.SSH.Address)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() with an explicit missing path should fail")
	}
}

func TestLoadMalformedCustomPathFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with a malformed config should fail")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	// Isolate from any real ~/.snakerush/config.yaml or ./snakerush.yaml so
	// Load("") falls through to the embedded default.
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	def := Default()
	if cfg.Game != def.Game {
		t.Errorf("Embedded game defaults %+v differ from %+v", cfg.Game, def.Game)
	}
	if cfg.Server.Address != def.Server.Address {
		t.Errorf("Embedded server address %q differs from %q", cfg.Server.Address, def.Server.Address)
	}
	if cfg.Leaderboard.Path != def.Leaderboard.Path {
		t.Errorf("Embedded leaderboard path %q differs from %q", cfg.Leaderboard.Path, def.Leaderboard.Path)
	}
}
