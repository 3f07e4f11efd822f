package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test grid defaults
	if cfg.Grid.Width != 24 {
		t.Errorf("expected grid width 24, got %d", cfg.Grid.Width)
	}
	if cfg.Grid.Height != 16 {
		t.Errorf("expected grid height 16, got %d", cfg.Grid.Height)
	}
	if cfg.Grid.TileSize != 32 {
		t.Errorf("expected tile size 32, got %f", cfg.Grid.TileSize)
	}

	// Test camera defaults
	if cfg.Camera.MinZoom != 0.5 {
		t.Errorf("expected min zoom 0.5, got %f", cfg.Camera.MinZoom)
	}
	if cfg.Camera.MaxZoom != 3.0 {
		t.Errorf("expected max zoom 3.0, got %f", cfg.Camera.MaxZoom)
	}
	if !cfg.Camera.EdgeScroll {
		t.Error("expected edge scroll to be enabled by default")
	}

	// Test gameplay defaults
	if cfg.Gameplay.StartingMoney != 150 {
		t.Errorf("expected starting money 150, got %d", cfg.Gameplay.StartingMoney)
	}
	if cfg.Gameplay.StartingLives != 20 {
		t.Errorf("expected starting lives 20, got %d", cfg.Gameplay.StartingLives)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  show_fps: true

grid:
  width: 32
  height: 20
  tile_size: 48

camera:
  min_zoom: 0.25
  max_zoom: 4.0
  edge_scroll: false

gameplay:
  starting_money: 300
  starting_lives: 10

logging:
  level: "debug"
  log_file: "game.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if !cfg.Graphics.ShowFPS {
		t.Error("expected show_fps to be true")
	}
	if cfg.Grid.Width != 32 {
		t.Errorf("expected grid width 32, got %d", cfg.Grid.Width)
	}
	if cfg.Grid.TileSize != 48 {
		t.Errorf("expected tile size 48, got %f", cfg.Grid.TileSize)
	}
	if cfg.Camera.MinZoom != 0.25 {
		t.Errorf("expected min zoom 0.25, got %f", cfg.Camera.MinZoom)
	}
	if cfg.Camera.EdgeScroll {
		t.Error("expected edge scroll to be false")
	}
	if cfg.Gameplay.StartingMoney != 300 {
		t.Errorf("expected starting money 300, got %d", cfg.Gameplay.StartingMoney)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileKeepsUnsetDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Only override graphics; everything else should keep defaults
	yamlContent := `
graphics:
  width: 800
  height: 600
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Grid.Width != 24 {
		t.Errorf("expected default grid width 24, got %d", cfg.Grid.Width)
	}
	if cfg.Camera.MaxZoom != 3.0 {
		t.Errorf("expected default max zoom 3.0, got %f", cfg.Camera.MaxZoom)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1600
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Graphics.Width != 1600 {
		t.Errorf("expected width 1600 after round-trip, got %d", loaded.Graphics.Width)
	}
}
