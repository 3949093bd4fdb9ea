// Package depth orders isometric objects back to front.
//
// The ordering is an approximate painter's order: DrawsBefore is a heuristic
// that is neither transitive nor antisymmetric for mutually overlapping boxes,
// so Sort yields a deterministic best-effort linearization rather than a
// verified topological sort. It follows the criterion used by OpenTTD.
package depth

// Box is an axis-aligned bounding box in virtual world units. Bounds are inclusive.
type Box struct {
	MinX, MaxX int
	MinY, MaxY int
	MinZ, MaxZ int
}

// Intersects reports whether the ranges [min1,max1] and [min2,max2] overlap.
func Intersects(min1, max1, min2, max2 int) bool {
	return max1 >= min2 && min1 <= max2
}

// DrawsBefore reports whether b must be drawn before a.
//
// Every axis on which the boxes are separated, or every axis when they overlap
// on all three, is scored by |a.min - b.max|. The best scoring axis, in the
// order x, y, z with later axes needing a strictly greater score, decides:
// b goes first when its max lies below a's min on that axis.
func DrawsBefore(a, b Box) bool {
	xIntersects := Intersects(a.MinX, a.MaxX, b.MinX, b.MaxX)
	yIntersects := Intersects(a.MinY, a.MaxY, b.MinY, b.MaxY)
	zIntersects := Intersects(a.MinZ, a.MaxZ, b.MinZ, b.MaxZ)
	all := xIntersects && yIntersects && zIntersects

	bMax, aMin := b.MaxX, a.MinX
	maxDiff := 0
	if all || !xIntersects {
		maxDiff = abs(a.MinX - b.MaxX)
	}

	diffY := 0
	if all || !yIntersects {
		diffY = abs(a.MinY - b.MaxY)
	}
	if maxDiff < diffY {
		maxDiff = diffY
		bMax, aMin = b.MaxY, a.MinY
	}

	diffZ := 0
	if all || !zIntersects {
		diffZ = abs(a.MinZ - b.MaxZ)
	}
	if maxDiff < diffZ {
		bMax, aMin = b.MaxZ, a.MinZ
	}

	return bMax < aMin
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
