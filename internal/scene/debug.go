package scene

import "github.com/Faultbox/isocore/pkg/geom"

// Visible corners of a sprite bounding box. A is the object anchor at the
// max x, max y, min z corner; the hidden back-bottom corner is not drawn.
//
//	           /\ <--- G
//	          /  \
//	  F ---> \    / <--- C
//	        | \  / |
//	        |  \/  | <--- D
//	        |   |  |
//	  E --->\   |  / <--- B
//	         \  | /
//	          \ |/ <--- A
const (
	cornerA = iota
	cornerB
	cornerC
	cornerD
	cornerE
	cornerF
	cornerG
	numCorners
)

// boxEdges lists the wireframe as corner pairs with a one pixel nudge to the
// right on either end so adjacent lines meet without gaps.
var boxEdges = [...]struct {
	from, to           int
	fromNudge, toNudge int
}{
	{cornerA, cornerB, 0, 1},
	{cornerA, cornerD, 0, 0},
	{cornerE, cornerA, 0, 1},
	{cornerE, cornerF, 0, 0},
	{cornerB, cornerC, 1, 1},
	{cornerF, cornerD, 0, 1},
	{cornerD, cornerC, 0, 1},
	{cornerF, cornerG, 0, 1},
	{cornerG, cornerC, 0, 1},
}

// boxCorners projects the visible corners of the sprite box of c.
func (m *Manager) boxCorners(c *spriteCandidate) [numCorners]geom.Point {
	p := c.obj.Position()
	s := c.sprite
	base := geom.Point3{X: p.X + s.BoxOffsetX, Y: p.Y + s.BoxOffsetY, Z: p.Z + s.BoxOffsetZ}

	var corners [numCorners]geom.Point
	corners[cornerA] = m.ToScreen(base)
	corners[cornerB] = m.ToScreen(base.Add(geom.Point3{X: -s.BoxW}))
	corners[cornerC] = m.ToScreen(base.Add(geom.Point3{X: -s.BoxW, Z: s.BoxL}))
	corners[cornerD] = m.ToScreen(base.Add(geom.Point3{Z: s.BoxL}))
	corners[cornerE] = m.ToScreen(base.Add(geom.Point3{Y: -s.BoxH}))
	corners[cornerF] = m.ToScreen(base.Add(geom.Point3{Y: -s.BoxH, Z: s.BoxL}))
	corners[cornerG] = m.ToScreen(base.Add(geom.Point3{X: -s.BoxW, Y: -s.BoxH, Z: s.BoxL}))
	return corners
}

func (m *Manager) drawBoundingBox(c *spriteCandidate) {
	corners := m.boxCorners(c)
	for _, e := range boxEdges {
		from, to := corners[e.from], corners[e.to]
		m.drawer.DrawLine(from.X+e.fromNudge, from.Y, to.X+e.toNudge, to.Y)
	}
}

func (m *Manager) drawTextBounds(c *textCandidate) {
	x, y := c.pos.X, c.pos.Y
	w, h := c.bounds.X, c.bounds.Y
	m.drawer.DrawLine(x, y, x, y+h)
	m.drawer.DrawLine(x, y, x+w, y)
	m.drawer.DrawLine(x+w, y+h, x, y+h)
	m.drawer.DrawLine(x+w, y+h, x+w, y)
}
