package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/Faultbox/isocore/internal/scene"
	"github.com/Faultbox/isocore/pkg/geom"
)

var white = color.RGBA{255, 255, 255, 255}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(32, 32, basicfont.Face7x13)
	c.SetLineColor(white)

	c.DrawLine(2, 3, 20, 11)
	c.DrawLine(30, 30, 30, 5) // vertical, drawn upwards

	for _, p := range []image.Point{{2, 3}, {20, 11}, {30, 30}, {30, 5}, {30, 17}} {
		if got := c.Image().RGBAAt(p.X, p.Y); got != white {
			t.Errorf("pixel %v = %v, want white", p, got)
		}
	}
	if got := c.Image().RGBAAt(0, 0); got == white {
		t.Error("pixel off the line should stay untouched")
	}
}

func TestDrawLineClipped(t *testing.T) {
	c := NewCanvas(8, 8, nil)
	// Must not panic when the line leaves the canvas.
	c.DrawLine(-10, -10, 20, 20)
	if got := c.Image().RGBAAt(4, 4); got.A == 0 {
		t.Error("visible part of the line should be drawn")
	}
}

func TestDrawImage(t *testing.T) {
	c := NewCanvas(16, 16, nil)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(0, 0, white)

	c.DrawImage(5, 6, src)
	if got := c.Image().RGBAAt(5, 6); got != white {
		t.Errorf("expected white at image origin, got %v", got)
	}
	if got := c.Image().RGBAAt(6, 6); got.A != 0 {
		t.Errorf("transparent source pixel should keep the canvas, got %v", got)
	}
}

func TestStringBounds(t *testing.T) {
	c := NewCanvas(8, 8, basicfont.Face7x13)
	got := c.StringBounds("abc", nil)
	if got != (geom.Point{X: 21, Y: 13}) {
		t.Errorf("StringBounds = %v, want {21 13}", got)
	}

	empty := NewCanvas(8, 8, nil)
	if got := empty.StringBounds("abc", nil); got != (geom.Point{}) {
		t.Errorf("canvas without face should measure zero, got %v", got)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	c := NewCanvas(40, 20, basicfont.Face7x13)
	c.DrawText(0, 0, "HI", nil, white)

	drawn := false
	b := c.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y && !drawn; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.Image().RGBAAt(x, y).A != 0 {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Error("expected text pixels on the canvas")
	}
}

type keyed string

func (k keyed) Position() geom.Point3 { return geom.Point3{} }
func (k keyed) Visible() bool         { return true }
func (k keyed) Selected() bool        { return false }
func (k keyed) SetSelected(bool)      {}
func (k keyed) SpriteKey() string     { return string(k) }

func TestObjectSprite(t *testing.T) {
	c := NewCanvas(8, 8, nil)
	s := &scene.Sprite{BoxW: 1}
	c.RegisterSprite("tree", s)

	if got, ok := c.ObjectSprite(keyed("tree")); !ok || got != s {
		t.Error("registered sprite should resolve")
	}
	if _, ok := c.ObjectSprite(keyed("rock")); ok {
		t.Error("unknown key should miss")
	}
}

func TestBlockSprite(t *testing.T) {
	iso := geom.Isometric{TileW: 64, TileH: 32, TileSize: 16}
	s := Block(iso, 16, 16, 16, BlockColors{Top: white, Left: white, Right: white})

	// A 16 unit cube covers one tile diamond plus 16 pixels of height.
	size := s.Image.Bounds().Size()
	if size.X != 65 || size.Y != 49 {
		t.Errorf("block image size = %v, want 65x49", size)
	}
	if s.AnchorX != 32 || s.AnchorY != 48 {
		t.Errorf("anchor = %d,%d, want 32,48", s.AnchorX, s.AnchorY)
	}
	if s.BoxW != 16 || s.BoxH != 16 || s.BoxL != 16 {
		t.Errorf("unexpected box extents %+v", s)
	}

	img := s.Image.(*image.RGBA)
	if img.RGBAAt(32, 24).A == 0 {
		t.Error("block centre should be filled")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("block corner should be transparent")
	}
}

func TestCaptureSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	capture := NewCapture(dir, "frame")

	c := NewCanvas(4, 4, nil)
	c.Clear(white)

	path, err := capture.Save(c.Image())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "frame_") {
		t.Errorf("unexpected file name %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}
