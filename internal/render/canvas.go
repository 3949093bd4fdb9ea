// Package render provides a software drawing backend for scenes.
package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/isocore/internal/scene"
	"github.com/Faultbox/isocore/pkg/geom"
)

// Canvas draws scenes into an RGBA image. It implements scene.Drawer.
type Canvas struct {
	img        *image.RGBA
	face       font.Face
	lineColor  color.Color
	labelColor color.Color
	sprites    map[string]*scene.Sprite
}

// NewCanvas creates a w x h canvas. face is used for debug labels and for
// text objects without a face of their own.
func NewCanvas(w, h int, face font.Face) *Canvas {
	return &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		face:       face,
		lineColor:  color.RGBA{R: 255, G: 0, B: 255, A: 255},
		labelColor: color.White,
		sprites:    make(map[string]*scene.Sprite),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the canvas with col.
func (c *Canvas) Clear(col color.Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

// SetLineColor sets the color used by DrawLine.
func (c *Canvas) SetLineColor(col color.Color) {
	c.lineColor = col
}

// RegisterSprite makes s the sprite of every object with the given key.
func (c *Canvas) RegisterSprite(key string, s *scene.Sprite) {
	c.sprites[key] = s
}

// ObjectSprite resolves the sprite registered for obj.
func (c *Canvas) ObjectSprite(obj scene.SpriteObject) (*scene.Sprite, bool) {
	s, ok := c.sprites[obj.SpriteKey()]
	return s, ok
}

// DrawImage composites img with its top-left corner at (x, y).
func (c *Canvas) DrawImage(x, y int, img image.Image) {
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	xdraw.Draw(c.img, dst, img, b.Min, xdraw.Over)
}

// DrawLine draws a one pixel line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	for {
		c.img.Set(x1, y1, c.lineColor)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawLabel draws s with the canvas face and label color.
func (c *Canvas) DrawLabel(x, y int, s string) {
	c.DrawText(x, y, s, nil, c.labelColor)
}

// DrawText draws s with its top-left corner at (x, y).
func (c *Canvas) DrawText(x, y int, s string, face font.Face, col color.Color) {
	if face == nil {
		face = c.face
	}
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// StringBounds returns the advance width and line height of s.
func (c *Canvas) StringBounds(s string, face font.Face) geom.Point {
	if face == nil {
		face = c.face
	}
	if face == nil {
		return geom.Point{}
	}
	m := face.Metrics()
	return geom.Point{
		X: font.MeasureString(face, s).Ceil(),
		Y: (m.Ascent + m.Descent).Ceil(),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
