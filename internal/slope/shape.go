// Package slope classifies points against the screen-space polygon of a sloped tile.
package slope

import "fmt"

// Shape identifies one tile height profile inside a Table.
type Shape uint8

// Corners holds corner heights relative to the lowest corner of the tile.
type Corners struct {
	N, E, S, W int
}

// String returns the corners as "n,e,s,w".
func (c Corners) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.N, c.E, c.S, c.W)
}

// Table lists the corner heights of every slope shape, indexed by Shape.
type Table []Corners

// Shape indices of the default table.
const (
	Flat Shape = iota
	RaisedW
	RaisedS
	RaisedSW
	RaisedE
	RaisedEW
	RaisedSE
	RaisedSEW
	RaisedN
	RaisedNW
	RaisedNS
	RaisedNSW
	RaisedNE
	RaisedNEW
	RaisedNSE
	SteepN
	SteepE
	SteepS
	SteepW
)

// DefaultTable returns the 19 shapes used by the engine: flat ground, the 14
// gentle shapes with corners at 0 or 1 and the 4 steep shapes with one corner
// raised by 2. Gentle shape bits follow the order N, E, S, W (N is bit 3).
func DefaultTable() Table {
	t := make(Table, 0, 19)
	for bits := 0; bits < 15; bits++ {
		t = append(t, Corners{
			N: bits>>3&1,
			E: bits>>2&1,
			S: bits>>1&1,
			W: bits & 1,
		})
	}
	return append(t,
		Corners{N: 2, E: 1, S: 0, W: 1},
		Corners{N: 1, E: 2, S: 1, W: 0},
		Corners{N: 0, E: 1, S: 2, W: 1},
		Corners{N: 1, E: 0, S: 1, W: 2},
	)
}

// ShapeOf returns the shape whose corners match c.
func (t Table) ShapeOf(c Corners) (Shape, bool) {
	for i, corners := range t {
		if corners == c {
			return Shape(i), true
		}
	}
	return 0, false
}

// Normalize lowers absolute corner heights so the minimum corner sits at 0.
// It also returns the removed base height.
func Normalize(n, e, s, w int) (Corners, int) {
	base := min(n, e, s, w)
	return Corners{N: n - base, E: e - base, S: s - base, W: w - base}, base
}
