package slope

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/isocore/pkg/geom"
)

// Slope table errors.
var (
	ErrInvalidTile         = errors.New("invalid tile geometry")
	ErrVerticalEdge        = errors.New("vertical tile edge")
	ErrUnsupportedSlope    = errors.New("unsupported edge slope")
	ErrFractionalIntercept = errors.New("fractional edge intercept")
)

// Edge names one boundary line of the tile polygon.
//
//	           N
//	  WN     /   \     NE
//	       /       \
//	    W/           \E
//	     \           /
//	  SW   \       /   ES
//	         \   /
//	           S
type Edge uint8

// Boundary edges in classification order.
const (
	EdgeNE Edge = iota
	EdgeES
	EdgeSW
	EdgeWN
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeNE:
		return "NE"
	case EdgeES:
		return "ES"
	case EdgeSW:
		return "SW"
	case EdgeWN:
		return "WN"
	default:
		return fmt.Sprintf("Edge(%d)", e)
	}
}

// Region is the position of a point relative to the slope polygon.
type Region uint8

// Regions reported by Classify.
const (
	Inside Region = iota
	AboveNE
	BelowES
	BelowSW
	AboveWN
)

// String returns a human-readable region name.
func (r Region) String() string {
	switch r {
	case Inside:
		return "Inside"
	case AboveNE:
		return "AboveNE"
	case BelowES:
		return "BelowES"
	case BelowSW:
		return "BelowSW"
	case AboveWN:
		return "AboveWN"
	default:
		return fmt.Sprintf("Region(%d)", r)
	}
}

// Coef is one of the five slopes an edge may take.
type Coef uint8

// Edge slope coefficients.
const (
	Zero Coef = iota
	Half
	MinusHalf
	One
	MinusOne
)

// String returns the coefficient as a fraction.
func (c Coef) String() string {
	switch c {
	case Zero:
		return "0"
	case Half:
		return "1/2"
	case MinusHalf:
		return "-1/2"
	case One:
		return "1"
	case MinusOne:
		return "-1"
	default:
		return fmt.Sprintf("Coef(%d)", c)
	}
}

// Line is the boundary equation y = Slope*x + Intercept in tile-local pixels.
type Line struct {
	Slope     Coef
	Intercept int
}

// At evaluates the line at x. Half slopes use an arithmetic shift.
func (l Line) At(x int) int {
	switch l.Slope {
	case Half:
		return l.Intercept + (x >> 1)
	case MinusHalf:
		return l.Intercept - (x >> 1)
	case One:
		return l.Intercept + x
	case MinusOne:
		return l.Intercept - x
	default:
		return l.Intercept
	}
}

// corner indices into the per-shape point set
const (
	pointN = iota
	pointE
	pointS
	pointW
)

var edgePoints = [4][2]int{
	EdgeNE: {pointN, pointE},
	EdgeES: {pointE, pointS},
	EdgeSW: {pointS, pointW},
	EdgeWN: {pointW, pointN},
}

// Classifier holds the precomputed boundary lines of every slope shape.
// It is immutable after New and safe for concurrent use.
//
// Classification is approximate: integer-only slopes give an error of about
// +/- 2 pixels near the boundaries.
type Classifier struct {
	tileW, tileH  int
	worldTileSize int
	table         Table
	lines         [][4]Line
}

// New computes the boundary lines for every shape in table.
// Points are given relative to the rectangle around the tile: north corner at
// (tileH, 0) for a flat tile, west corner at (0, worldTileSize).
// All malformed shapes are reported together.
func New(tileW, tileH, worldTileSize int, table Table) (*Classifier, error) {
	if tileW <= 0 || tileH <= 0 || worldTileSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, world tile size %d", ErrInvalidTile, tileW, tileH, worldTileSize)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty slope table", ErrInvalidTile)
	}
	if len(table) > 256 {
		return nil, fmt.Errorf("%w: %d slope shapes, at most 256 supported", ErrInvalidTile, len(table))
	}

	c := &Classifier{
		tileW:         tileW,
		tileH:         tileH,
		worldTileSize: worldTileSize,
		table:         append(Table(nil), table...),
		lines:         make([][4]Line, len(table)),
	}

	var errs error
	s := worldTileSize
	for i, corners := range table {
		var points [4]geom.Point
		points[pointN] = geom.Point{X: tileH, Y: -corners.N * s}
		points[pointE] = geom.Point{X: tileW, Y: -corners.E*s + s}
		points[pointS] = geom.Point{X: tileH, Y: -corners.S*s + 2*s}
		points[pointW] = geom.Point{X: 0, Y: -corners.W*s + s}

		for edge, ends := range edgePoints {
			line, err := lineThrough(points[ends[0]], points[ends[1]])
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("shape %d (%s) edge %s: %w", i, corners, Edge(edge), err))
				continue
			}
			c.lines[i][edge] = line
		}
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// lineThrough derives the exact line through a and b.
func lineThrough(a, b geom.Point) (Line, error) {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx == 0 {
		return Line{}, ErrVerticalEdge
	}

	var coef Coef
	switch {
	case dy == 0:
		coef = Zero
	case 2*dy == dx:
		coef = Half
	case 2*dy == -dx:
		coef = MinusHalf
	case dy == dx:
		coef = One
	case dy == -dx:
		coef = MinusOne
	default:
		return Line{}, fmt.Errorf("%w: %d/%d", ErrUnsupportedSlope, dy, dx)
	}

	// b = y2 - (dy/dx)*x2, kept exact.
	num := b.Y*dx - dy*b.X
	if num%dx != 0 {
		return Line{}, fmt.Errorf("%w: %d/%d", ErrFractionalIntercept, num, dx)
	}
	return Line{Slope: coef, Intercept: num / dx}, nil
}

// Shapes returns the number of slope shapes.
func (c *Classifier) Shapes() int {
	return len(c.lines)
}

// Table returns the corner heights the classifier was built from.
func (c *Classifier) Table() Table {
	return c.table
}

// TileSize returns the tile width and height in pixels.
func (c *Classifier) TileSize() (w, h int) {
	return c.tileW, c.tileH
}

// WorldTileSize returns the size of one tile in virtual world units.
func (c *Classifier) WorldTileSize() int {
	return c.worldTileSize
}

// Lines returns the four boundary lines of shape, indexed by Edge.
func (c *Classifier) Lines(shape Shape) [4]Line {
	return c.lines[shape]
}

// EdgeValue returns the line value at p.X minus p.Y.
// Positive values mean p lies above the line on screen.
func (c *Classifier) EdgeValue(p geom.Point, shape Shape, edge Edge) int {
	return c.lines[shape][edge].At(p.X) - p.Y
}

// Classify returns the position of p relative to the polygon of shape.
// p is relative to the rectangle around the tile. Edges are tested in the
// order NE, ES, SW, WN and the first failing test decides the region.
func (c *Classifier) Classify(p geom.Point, shape Shape) Region {
	if c.EdgeValue(p, shape, EdgeNE) > 0 {
		return AboveNE
	}
	if c.EdgeValue(p, shape, EdgeES) < 0 {
		return BelowES
	}
	if c.EdgeValue(p, shape, EdgeSW) <= 0 {
		return BelowSW
	}
	if c.EdgeValue(p, shape, EdgeWN) > 0 {
		return AboveWN
	}
	return Inside
}
