// Package main renders one frame of an isometric scene to a PNG file.
package main

import (
	"fmt"
	"image/color"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/isocore/internal/config"
	"github.com/Faultbox/isocore/internal/logger"
	"github.com/Faultbox/isocore/internal/render"
	"github.com/Faultbox/isocore/internal/scene"
	"github.com/Faultbox/isocore/internal/slope"
	"github.com/Faultbox/isocore/internal/terrain"
	"github.com/Faultbox/isocore/internal/world"
	"github.com/Faultbox/isocore/pkg/geom"
)

var background = color.RGBA{R: 24, G: 28, B: 36, A: 255}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== isoscene ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	table := cfg.SlopeTable()
	cls, err := slope.New(cfg.Tiles.Width, cfg.Tiles.Height, cfg.Tiles.WorldSize, table)
	if err != nil {
		logger.Fatal("invalid tile geometry", zap.Error(err))
	}
	logger.Debug("slope classifier ready", zap.Int("shapes", cls.Shapes()))

	m, err := loadMap(cfg, table)
	if err != nil {
		logger.Fatal("failed to load map", zap.Error(err))
	}

	maxZ := cfg.Tiles.MaxZ
	if maxZ == 0 {
		maxZ = m.MaxHeight(table)
	}
	iso := geom.Isometric{TileW: cfg.Tiles.Width, TileH: cfg.Tiles.Height, TileSize: cfg.Tiles.WorldSize}

	canvas := render.NewCanvas(cfg.Viewport.Width, cfg.Viewport.Height, render.DefaultFace(cfg.Debug.FontSize))
	canvas.Clear(background)

	w, err := world.New(m, cfg.Tiles.WorldSize, logger.Named("world"))
	if err != nil {
		logger.Fatal("failed to create world", zap.Error(err))
	}
	w.SetGround(canvas.Ground(table, cfg.Tiles.WorldSize, render.GroundColors{
		Flat:  color.RGBA{R: 86, G: 130, B: 62, A: 255},
		Slope: color.RGBA{R: 110, G: 150, B: 74, A: 255},
		Edge:  color.RGBA{R: 60, G: 92, B: 44, A: 255},
	}))

	populate(w, canvas, iso)
	logger.Info("world populated", zap.Int("objects", w.Len()))

	sm, err := scene.New(scene.Config{
		TileSize:   cfg.Tiles.WorldSize,
		TileMaxZ:   maxZ,
		ViewportW:  cfg.Viewport.Width,
		ViewportH:  cfg.Viewport.Height,
		MaxSprites: cfg.Scene.MaxSprites,
		MaxTexts:   cfg.Scene.MaxTexts,
		Debug:      cfg.Debug.Overlay,
	}, canvas, iso, logger.Named("scene"))
	if err != nil {
		logger.Fatal("failed to create scene", zap.Error(err))
	}

	offset := geom.Point{X: cfg.Viewport.OffsetX, Y: cfg.Viewport.OffsetY}
	stats := w.Render(sm, offset)
	logger.Info("frame rendered",
		zap.Int("sprites", stats.Sprites),
		zap.Int("texts", stats.Texts),
		zap.Int("dropped", stats.Dropped))

	// Screen points map back to real coordinates by undoing the scene shift
	// and the viewport offset.
	shift := maxZ * cfg.Tiles.WorldSize
	origin := offset.Sub(iso.ToReal(geom.Point3{X: shift, Y: shift}))
	centre := geom.Point{X: cfg.Viewport.Width / 2, Y: cfg.Viewport.Height / 2}

	picker := terrain.NewPicker(cls, m)
	if x, y, ok := picker.Pick(centre.Add(origin)); ok {
		tile := m.Tile(x, y)
		logger.Info("tile under viewport centre",
			zap.Int("x", x),
			zap.Int("y", y),
			zap.Int("height", tile.Height),
			zap.Stringer("corners", table[tile.Shape]))
		if obj, ok := w.ObjectAt(x, y); ok {
			logger.Info("object under viewport centre", zap.Any("position", obj.Position()))
		}
	} else {
		logger.Info("viewport centre is off the map")
	}

	capture := render.NewCapture(cfg.Output.Dir, cfg.Output.Prefix)
	path, err := capture.Save(canvas.Image())
	if err != nil {
		logger.Fatal("failed to save frame", zap.Error(err))
	}
	logger.Info("frame saved", zap.String("path", path))
}

func loadMap(cfg *config.Config, table slope.Table) (*terrain.Map, error) {
	if cfg.Map.Path != "" {
		return terrain.Load(cfg.Map.Path, table)
	}
	return sampleMap(cfg.Map.Width, cfg.Map.Height, table)
}
