// Package scene builds, orders and draws the visible objects of one frame.
package scene

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/Faultbox/isocore/pkg/geom"
)

// Object is a world object that may take part in a frame.
// The scene sets the selected flag while the object sits in a candidate
// pool, which keeps objects indexed in several grid cells from being
// inserted twice.
type Object interface {
	Position() geom.Point3
	Visible() bool
	Selected() bool
	SetSelected(selected bool)
}

// SpriteObject is drawn with an image resolved through Drawer.ObjectSprite.
type SpriteObject interface {
	Object
	SpriteKey() string
}

// TextObject is drawn as a string centred on its projected position.
type TextObject interface {
	Object
	Text() string
	Face() font.Face
	Color() color.Color
}

// Sprite describes the image of a sprite object and its bounding box.
// The box is anchored at its maximum x/y and minimum z corner.
type Sprite struct {
	Image image.Image

	// Offset from the projected object position to the image top-left corner.
	AnchorX, AnchorY int

	BoxOffsetX, BoxOffsetY, BoxOffsetZ int
	BoxW, BoxH, BoxL                   int // extents along x, y and z
}

// Drawer is the drawing backend the scene renders through.
type Drawer interface {
	DrawImage(x, y int, img image.Image)
	DrawLine(x1, y1, x2, y2 int)
	// DrawLabel draws a debug string with the default face and color.
	DrawLabel(x, y int, s string)
	DrawText(x, y int, s string, face font.Face, c color.Color)
	// StringBounds returns the width and height of s in pixels.
	StringBounds(s string, face font.Face) geom.Point
	// ObjectSprite resolves the current sprite of obj. It reports false
	// when no sprite is available and the object must be skipped.
	ObjectSprite(obj SpriteObject) (*Sprite, bool)
}
