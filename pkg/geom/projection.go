package geom

// Projector converts virtual world coordinates into real (screen) coordinates.
type Projector interface {
	ToReal(v Point3) Point
}

// ProjectorFunc adapts a plain function to the Projector interface.
type ProjectorFunc func(v Point3) Point

// ToReal calls f(v).
func (f ProjectorFunc) ToReal(v Point3) Point {
	return f(v)
}

// Isometric is the classic 2:1 dimetric projection.
// One tile spans TileSize virtual units on each ground axis and one height
// step of TileSize units lifts a point by TileH/2 pixels.
type Isometric struct {
	TileW    int // Tile width in pixels
	TileH    int // Tile height in pixels
	TileSize int // Tile size in virtual world units
}

// ToReal projects v onto the screen. The tile at virtual (0,0,0) has its
// north corner at real (0,0).
func (iso Isometric) ToReal(v Point3) Point {
	halfW := iso.TileW >> 1
	halfH := iso.TileH >> 1
	return Point{
		X: floorDiv((v.X-v.Y)*halfW, iso.TileSize),
		Y: floorDiv((v.X+v.Y-v.Z)*halfH, iso.TileSize),
	}
}

// ToVirtual inverts ToReal for points lying on the ground plane at height z.
// Results are floored to whole virtual units.
func (iso Isometric) ToVirtual(p Point, z int) Point3 {
	halfW := iso.TileW >> 1
	halfH := iso.TileH >> 1
	// a = x - y, b = x + y - z
	a := floorDiv(p.X*iso.TileSize, halfW)
	b := floorDiv(p.Y*iso.TileSize, halfH) + z
	return Point3{X: (a + b) >> 1, Y: (b - a) >> 1, Z: z}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
