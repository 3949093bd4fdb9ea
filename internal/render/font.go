package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFace parses a TrueType or OpenType font at the given point size.
func LoadFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	return face, nil
}

// DefaultFace returns Go Regular at size, or the 7x13 bitmap face if the
// embedded font cannot be loaded.
func DefaultFace(size float64) font.Face {
	face, err := LoadFace(goregular.TTF, size)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
