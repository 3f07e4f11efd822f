// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Grid     GridConfig     `yaml:"grid"`
	Camera   CameraConfig   `yaml:"camera"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	TPS        int    `yaml:"tps"`
	ShowFPS    bool   `yaml:"show_fps"`
}

// GridConfig holds the logical playfield dimensions.
type GridConfig struct {
	Width    int     `yaml:"width"`     // Columns
	Height   int     `yaml:"height"`    // Rows
	TileSize float64 `yaml:"tile_size"` // Pixels per tile
}

// CameraConfig holds camera behavior settings.
type CameraConfig struct {
	MinZoom          float64 `yaml:"min_zoom"`
	MaxZoom          float64 `yaml:"max_zoom"`
	TransitionSpeed  float64 `yaml:"transition_speed"` // Position approach rate, 1/s
	ZoomSpeed        float64 `yaml:"zoom_speed"`
	RotationSpeed    float64 `yaml:"rotation_speed"` // Degrees per second
	EdgeScroll       bool    `yaml:"edge_scroll"`
	EdgeScrollMargin float64 `yaml:"edge_scroll_margin"` // Pixels from viewport edge
	EdgeScrollSpeed  float64 `yaml:"edge_scroll_speed"`  // Pixels per second
}

// GameplayConfig holds balance settings.
type GameplayConfig struct {
	StartingMoney   int     `yaml:"starting_money"`
	StartingLives   int     `yaml:"starting_lives"`
	PreparationTime float64 `yaml:"preparation_time"` // Seconds between waves
	WaveScaling     float64 `yaml:"wave_scaling"`     // Difficulty multiplier per wave
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Title:      "Steam Defense",
			Fullscreen: false,
			VSync:      true,
			TPS:        60,
			ShowFPS:    false,
		},
		Grid: GridConfig{
			Width:    24,
			Height:   16,
			TileSize: 32,
		},
		Camera: CameraConfig{
			MinZoom:          0.5,
			MaxZoom:          3.0,
			TransitionSpeed:  3.0,
			ZoomSpeed:        2.0,
			RotationSpeed:    180.0,
			EdgeScroll:       true,
			EdgeScrollMargin: 50,
			EdgeScrollSpeed:  200,
		},
		Gameplay: GameplayConfig{
			StartingMoney:   150,
			StartingLives:   20,
			PreparationTime: 10.0,
			WaveScaling:     1.15,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
