package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/Faultbox/isocore/internal/slope"
	"github.com/Faultbox/isocore/internal/terrain"
	"github.com/Faultbox/isocore/pkg/geom"
)

// GroundColors holds the colors of terrain tiles.
type GroundColors struct {
	Flat  color.Color
	Slope color.Color
	Edge  color.Color // outline, nil for none
}

// Ground returns a painter that draws every tile of a map as a filled quad
// through its four corners, row by row. Tiles only cover tiles with a lower
// x or y, so row order is back to front.
func (c *Canvas) Ground(table slope.Table, tileSize int, colors GroundColors) func(*terrain.Map, func(geom.Point3) geom.Point) {
	return func(m *terrain.Map, project func(geom.Point3) geom.Point) {
		bounds := c.img.Bounds()
		for y := range m.Height {
			for x := range m.Width {
				tile := m.Tile(x, y)
				quad := tileQuad(x, y, tile, table, tileSize, project)

				r := quadBounds(quad)
				if !r.Overlaps(bounds) {
					continue
				}

				fill := colors.Flat
				if tile.Shape != slope.Flat {
					fill = colors.Slope
				}
				c.fillQuad(quad, r, fill)

				if colors.Edge != nil {
					c.outline(quad, colors.Edge)
				}
			}
		}
	}
}

// tileQuad projects the N, E, S and W corners of tile (x, y).
func tileQuad(x, y int, tile *terrain.Tile, table slope.Table, s int, project func(geom.Point3) geom.Point) [4]geom.Point {
	h := table[tile.Shape]
	z := tile.Height
	return [4]geom.Point{
		project(geom.Point3{X: x * s, Y: y * s, Z: (z + h.N) * s}),
		project(geom.Point3{X: (x + 1) * s, Y: y * s, Z: (z + h.E) * s}),
		project(geom.Point3{X: (x + 1) * s, Y: (y + 1) * s, Z: (z + h.S) * s}),
		project(geom.Point3{X: x * s, Y: (y + 1) * s, Z: (z + h.W) * s}),
	}
}

func quadBounds(q [4]geom.Point) image.Rectangle {
	r := image.Rect(q[0].X, q[0].Y, q[0].X+1, q[0].Y+1)
	for _, p := range q[1:] {
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
	}
	return r
}

// fillQuad rasterizes q into a scratch image covering r and composites it.
func (c *Canvas) fillQuad(q [4]geom.Point, r image.Rectangle, fill color.Color) {
	w, h := r.Dx(), r.Dy()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))

	z := vector.NewRasterizer(w, h)
	for i, p := range q {
		px, py := float32(p.X-r.Min.X), float32(p.Y-r.Min.Y)
		if i == 0 {
			z.MoveTo(px, py)
		} else {
			z.LineTo(px, py)
		}
	}
	z.ClosePath()
	z.Draw(tmp, tmp.Bounds(), image.NewUniform(fill), image.Point{})

	xdraw.Draw(c.img, r, tmp, image.Point{}, xdraw.Over)
}

func (c *Canvas) outline(q [4]geom.Point, col color.Color) {
	saved := c.lineColor
	c.lineColor = col
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		c.DrawLine(a.X, a.Y, b.X, b.Y)
	}
	c.lineColor = saved
}
