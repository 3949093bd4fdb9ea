// Package config handles scene configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/isocore/internal/slope"
)

// Config holds all renderer settings.
type Config struct {
	Tiles    TilesConfig    `yaml:"tiles"`
	Viewport ViewportConfig `yaml:"viewport"`
	Scene    SceneConfig    `yaml:"scene"`
	Debug    DebugConfig    `yaml:"debug"`
	Map      MapConfig      `yaml:"map"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TilesConfig holds tile geometry.
type TilesConfig struct {
	Width     int      `yaml:"width"`      // Tile sprite width in pixels
	Height    int      `yaml:"height"`     // Tile sprite height in pixels
	WorldSize int      `yaml:"world_size"` // Tile size in world units
	MaxZ      int      `yaml:"max_z"`      // Highest tile height, 0 derives it from the map
	Slopes    [][4]int `yaml:"slopes"`     // Slope corner heights [n, e, s, w]; empty uses the built-in table
}

// ViewportConfig holds the output frame geometry.
type ViewportConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	OffsetX int `yaml:"offset_x"`
	OffsetY int `yaml:"offset_y"`
}

// SceneConfig holds per-frame candidate capacities.
type SceneConfig struct {
	MaxSprites int `yaml:"max_sprites"`
	MaxTexts   int `yaml:"max_texts"`
}

// DebugConfig holds overlay settings.
type DebugConfig struct {
	Overlay  bool    `yaml:"overlay"`
	FontSize float64 `yaml:"font_size"`
}

// MapConfig selects the terrain. Without a path a sample map of the given
// size is generated.
type MapConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// OutputConfig holds frame capture settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Tiles: TilesConfig{
			Width:     64,
			Height:    32,
			WorldSize: 16,
		},
		Viewport: ViewportConfig{
			Width:   800,
			Height:  600,
			OffsetX: -400,
			OffsetY: 0,
		},
		Scene: SceneConfig{
			MaxSprites: 512,
			MaxTexts:   64,
		},
		Debug: DebugConfig{
			Overlay:  false,
			FontSize: 12,
		},
		Map: MapConfig{
			Width:  12,
			Height: 12,
		},
		Output: OutputConfig{
			Dir:    "frames",
			Prefix: "isoscene",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// SlopeTable returns the configured slope table.
func (c *Config) SlopeTable() slope.Table {
	if len(c.Tiles.Slopes) == 0 {
		return slope.DefaultTable()
	}
	table := make(slope.Table, len(c.Tiles.Slopes))
	for i, h := range c.Tiles.Slopes {
		table[i] = slope.Corners{N: h[0], E: h[1], S: h[2], W: h[3]}
	}
	return table
}

// Validate reports every unusable setting.
func (c *Config) Validate() error {
	var err error
	if c.Tiles.Width <= 0 || c.Tiles.Height <= 0 || c.Tiles.WorldSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("tiles: invalid geometry %dx%d with world size %d",
			c.Tiles.Width, c.Tiles.Height, c.Tiles.WorldSize))
	}
	if c.Tiles.MaxZ < 0 {
		err = multierr.Append(err, fmt.Errorf("tiles: negative max_z %d", c.Tiles.MaxZ))
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("viewport: invalid size %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Scene.MaxSprites < 0 || c.Scene.MaxTexts < 0 {
		err = multierr.Append(err, errors.New("scene: negative pool size"))
	}
	if c.Map.Path == "" && (c.Map.Width <= 0 || c.Map.Height <= 0) {
		err = multierr.Append(err, fmt.Errorf("map: invalid sample size %dx%d", c.Map.Width, c.Map.Height))
	}
	if c.Debug.FontSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("debug: invalid font size %g", c.Debug.FontSize))
	}
	return err
}
