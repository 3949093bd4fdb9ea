package world

import (
	"image/color"

	"golang.org/x/image/font"

	"github.com/Faultbox/isocore/pkg/geom"
)

// Sprite is a world object drawn with the sprite registered under Key.
type Sprite struct {
	Pos    geom.Point3
	Key    string
	Hidden bool

	selected bool
}

// Position returns the virtual position of the sprite.
func (s *Sprite) Position() geom.Point3 { return s.Pos }

// Visible reports whether the sprite should be drawn.
func (s *Sprite) Visible() bool { return !s.Hidden }

// Selected reports whether the sprite is in the current frame.
func (s *Sprite) Selected() bool { return s.selected }

// SetSelected marks the sprite as part of the current frame.
func (s *Sprite) SetSelected(selected bool) { s.selected = selected }

// SpriteKey returns the key of the sprite image.
func (s *Sprite) SpriteKey() string { return s.Key }

// Label is a world object drawn as text centred on its position.
// A nil FontFace selects the drawer's default face.
type Label struct {
	Pos      geom.Point3
	Value    string
	FontFace font.Face
	Tint     color.Color
	Hidden   bool

	selected bool
}

// Position returns the virtual position of the label.
func (l *Label) Position() geom.Point3 { return l.Pos }

// Visible reports whether the label has text and is not hidden.
func (l *Label) Visible() bool { return !l.Hidden && l.Value != "" }

// Selected reports whether the label is in the current frame.
func (l *Label) Selected() bool { return l.selected }

// SetSelected marks the label as part of the current frame.
func (l *Label) SetSelected(selected bool) { l.selected = selected }

// Text returns the string drawn for the label.
func (l *Label) Text() string { return l.Value }

// Face returns the font face of the label, nil for the default.
func (l *Label) Face() font.Face { return l.FontFace }

// Color returns the text color, white when unset.
func (l *Label) Color() color.Color {
	if l.Tint == nil {
		return color.White
	}
	return l.Tint
}
