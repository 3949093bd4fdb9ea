// Package geom provides integer geometry types for isometric rendering.
package geom

// Point is a 2D integer point in pixel space.
type Point struct {
	X, Y int
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Point3 is a 3D integer point in virtual world space.
// X and Y span the ground plane, Z is the height.
type Point3 struct {
	X, Y, Z int
}

// Add returns p + other.
func (p Point3) Add(other Point3) Point3 {
	return Point3{p.X + other.X, p.Y + other.Y, p.Z + other.Z}
}

// XY returns the ground plane components as Point.
func (p Point3) XY() Point {
	return Point{p.X, p.Y}
}

// Rect is an axis-aligned rectangle. Min is inclusive, Max is exclusive.
type Rect struct {
	Min, Max Point
}

// RectWH builds a rectangle from its top-left corner and size.
func RectWH(x, y, w, h int) Rect {
	return Rect{Min: Point{x, y}, Max: Point{x + w, y + h}}
}

// Dx returns the width of r.
func (r Rect) Dx() int {
	return r.Max.X - r.Min.X
}

// Dy returns the height of r.
func (r Rect) Dy() int {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether r and other share at least one pixel.
func (r Rect) Overlaps(other Rect) bool {
	return r.Min.X < other.Max.X && other.Min.X < r.Max.X &&
		r.Min.Y < other.Max.Y && other.Min.Y < r.Max.Y
}
