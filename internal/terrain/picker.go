package terrain

import (
	"github.com/Faultbox/isocore/internal/slope"
	"github.com/Faultbox/isocore/pkg/geom"
)

// Picker finds the tile drawn under a screen point.
type Picker struct {
	cls      *slope.Classifier
	terrain  *Map
	iso      geom.Isometric
	maxZ     int
	maxSteps int
}

// NewPicker creates a picker for m using the classifier geometry.
func NewPicker(cls *slope.Classifier, m *Map) *Picker {
	tileW, tileH := cls.TileSize()
	maxZ := m.MaxHeight(cls.Table())
	return &Picker{
		cls:      cls,
		terrain:  m,
		iso:      geom.Isometric{TileW: tileW, TileH: tileH, TileSize: cls.WorldTileSize()},
		maxZ:     maxZ,
		maxSteps: 4 * (maxZ + 2),
	}
}

// Pick returns the tile whose surface covers the real point p.
//
// The search starts at the tile under p assuming the highest terrain, which
// is the frontmost candidate, and walks to neighbours in the direction of
// the edge p fell outside of. It reports false when p is off the map or the
// walk does not settle.
func (p *Picker) Pick(real geom.Point) (x, y int, ok bool) {
	size := p.cls.WorldTileSize()
	start := p.iso.ToVirtual(real, p.maxZ*size)
	x, y = floorDiv(start.X, size), floorDiv(start.Y, size)

	for range p.maxSteps {
		switch p.Region(real, x, y) {
		case slope.Inside:
			return x, y, p.terrain.Tile(x, y) != nil
		case slope.AboveNE:
			y--
		case slope.BelowES:
			x++
		case slope.BelowSW:
			y++
		case slope.AboveWN:
			x--
		}
	}
	return 0, 0, false
}

// Region classifies the real point p against tile (x, y). Tiles outside the
// map are treated as flat ground at height 0.
func (p *Picker) Region(real geom.Point, x, y int) slope.Region {
	var tile Tile
	if t := p.terrain.Tile(x, y); t != nil {
		tile = *t
	}
	size := p.cls.WorldTileSize()
	_, tileH := p.cls.TileSize()

	north := p.iso.ToReal(geom.Point3{X: x * size, Y: y * size, Z: tile.Height * size})
	local := geom.Point{X: real.X - north.X + tileH, Y: real.Y - north.Y}
	return p.cls.Classify(local, tile.Shape)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
