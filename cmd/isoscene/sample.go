package main

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/isocore/internal/logger"
	"github.com/Faultbox/isocore/internal/render"
	"github.com/Faultbox/isocore/internal/slope"
	"github.com/Faultbox/isocore/internal/terrain"
	"github.com/Faultbox/isocore/internal/world"
	"github.com/Faultbox/isocore/pkg/geom"
)

const hillHeight = 3

// sampleMap builds a width x height map with a stepped hill in the middle.
// Corner heights fall by one per ring, so every tile gets a gentle shape.
func sampleMap(width, height int, table slope.Table) (*terrain.Map, error) {
	m, err := terrain.New(width, height)
	if err != nil {
		return nil, err
	}

	cx, cy := width/2, height/2
	corner := func(i, j int) int {
		d := max(abs(i-cx), abs(j-cy))
		return max(0, hillHeight-d)
	}

	for y := range height {
		for x := range width {
			n, e, s, w := corner(x, y), corner(x+1, y), corner(x+1, y+1), corner(x, y+1)
			if err := m.SetCorners(x, y, n, e, s, w, table); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

type blockKind struct {
	key     string
	w, h, l int
	colors  render.BlockColors
}

var blockKinds = []blockKind{
	{
		key: "crate", w: 16, h: 16, l: 16,
		colors: render.BlockColors{
			Top:   color.RGBA{R: 196, G: 150, B: 92, A: 255},
			Left:  color.RGBA{R: 150, G: 108, B: 60, A: 255},
			Right: color.RGBA{R: 120, G: 84, B: 44, A: 255},
		},
	},
	{
		key: "pillar", w: 8, h: 8, l: 40,
		colors: render.BlockColors{
			Top:   color.RGBA{R: 210, G: 210, B: 220, A: 255},
			Left:  color.RGBA{R: 160, G: 160, B: 172, A: 255},
			Right: color.RGBA{R: 128, G: 128, B: 140, A: 255},
		},
	},
	{
		key: "house", w: 32, h: 32, l: 24,
		colors: render.BlockColors{
			Top:   color.RGBA{R: 176, G: 64, B: 56, A: 255},
			Left:  color.RGBA{R: 220, G: 206, B: 180, A: 255},
			Right: color.RGBA{R: 186, G: 172, B: 148, A: 255},
		},
	},
}

// populate registers the block sprites and scatters objects over the flat
// tiles of the world, each with a name label above it.
func populate(w *world.World, canvas *render.Canvas, iso geom.Isometric) {
	for _, k := range blockKinds {
		canvas.RegisterSprite(k.key, render.Block(iso, k.w, k.h, k.l, k.colors))
	}

	m := w.Terrain()
	size := w.TileSize()
	n := 0
	for y := 1; y < m.Height; y += 3 {
		for x := 1; x < m.Width; x += 3 {
			if m.Tile(x, y).Shape != slope.Flat {
				continue
			}
			kind := blockKinds[n%len(blockKinds)]
			n++

			tilesW, tilesH := (kind.w+size-1)/size, (kind.h+size-1)/size
			pos := geom.Point3{X: (x + tilesW) * size, Y: (y + tilesH) * size, Z: w.GroundZ(x, y)}

			obj := &world.Sprite{Pos: pos, Key: kind.key}
			if err := w.Place(obj, world.Footprint{W: kind.w, H: kind.h}); err != nil {
				logger.Warn("object not placed", zap.String("kind", kind.key), zap.Error(err))
				continue
			}

			label := &world.Label{
				Pos:   geom.Point3{X: pos.X - kind.w/2, Y: pos.Y - kind.h/2, Z: pos.Z + kind.l + size},
				Value: fmt.Sprintf("%s %d", kind.key, n),
			}
			if err := w.Place(label, world.Footprint{}); err != nil {
				logger.Warn("label not placed", zap.String("label", label.Value), zap.Error(err))
			}
		}
	}

	// Summit marker on the hill top
	top := geom.Point3{X: m.Width / 2 * size, Y: m.Height / 2 * size}
	top.Z = hillHeight*size + size
	summit := &world.Label{Pos: top, Value: "summit", Tint: color.RGBA{R: 255, G: 220, B: 80, A: 255}}
	if err := w.Place(summit, world.Footprint{}); err != nil {
		logger.Warn("summit label not placed", zap.Error(err))
	}

}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
