// Package terrain holds the tile height map and picks tiles under screen points.
package terrain

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/isocore/internal/slope"
)

// Map errors.
var (
	ErrInvalidSize  = errors.New("invalid map size")
	ErrUnknownShape = errors.New("corner heights match no slope shape")
)

// Tile is one map cell: the height of its lowest corner and its slope shape.
type Tile struct {
	Height int
	Shape  slope.Shape
}

// Map is a grid of tiles stored row by row.
type Map struct {
	Width  int
	Height int
	Tiles  []Tile
}

// New creates a flat map at height 0.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 || width > 4096 || height > 4096 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Map{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}, nil
}

// Tile returns the tile at (x, y), or nil when out of bounds.
func (m *Map) Tile(x, y int) *Tile {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return nil
	}
	return &m.Tiles[y*m.Width+x]
}

// SetCorners sets the tile at (x, y) from absolute corner heights.
func (m *Map) SetCorners(x, y int, n, e, s, w int, table slope.Table) error {
	tile := m.Tile(x, y)
	if tile == nil {
		return fmt.Errorf("tile (%d,%d) out of bounds", x, y)
	}
	corners, base := slope.Normalize(n, e, s, w)
	shape, ok := table.ShapeOf(corners)
	if !ok {
		return fmt.Errorf("%w: tile (%d,%d) corners %s", ErrUnknownShape, x, y, corners)
	}
	tile.Height = base
	tile.Shape = shape
	return nil
}

// MaxHeight returns the highest corner on the map.
func (m *Map) MaxHeight(table slope.Table) int {
	highest := 0
	for _, tile := range m.Tiles {
		c := table[tile.Shape]
		highest = max(highest, tile.Height+max(c.N, c.E, c.S, c.W))
	}
	return highest
}

// mapFile is the YAML layout of a map: rows of [n, e, s, w] absolute corner heights.
type mapFile struct {
	Rows [][][4]int `yaml:"rows"`
}

// Parse builds a map from YAML data.
func Parse(data []byte, table slope.Table) (*Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding map: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}

	m, err := New(len(f.Rows[0]), len(f.Rows))
	if err != nil {
		return nil, err
	}
	for y, row := range f.Rows {
		if len(row) != m.Width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrInvalidSize, y, len(row), m.Width)
		}
		for x, c := range row {
			if err := m.SetCorners(x, y, c[0], c[1], c[2], c[3], table); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Load reads a map file from disk. Binary altitude tables are recognized
// by their magic, anything else is decoded as YAML.
func Load(path string, table slope.Table) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	if IsAltitudeTable(data) {
		return ParseAltitude(data, table)
	}
	return Parse(data, table)
}
