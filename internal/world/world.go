// Package world owns the objects of a map, indexes them by tile and feeds
// them to the scene every frame.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/isocore/internal/grid"
	"github.com/Faultbox/isocore/internal/scene"
	"github.com/Faultbox/isocore/internal/terrain"
	"github.com/Faultbox/isocore/pkg/geom"
)

// World errors.
var (
	ErrPlaced    = errors.New("object already placed")
	ErrNotPlaced = errors.New("object not placed")
	ErrOffGrid   = errors.New("footprint outside the map")
)

// Footprint is the ground extent of an object in world units. The object
// position marks its max x, max y corner; a zero footprint occupies the
// single point at the position.
type Footprint struct {
	W, H int
}

// GroundFunc paints the terrain of a frame before any object is drawn.
// project maps a virtual position to viewport coordinates.
type GroundFunc func(m *terrain.Map, project func(geom.Point3) geom.Point)

type placement struct {
	id grid.ObjectID
	fp Footprint
}

// World is not safe for concurrent use.
type World struct {
	terrain *terrain.Map
	grid    *grid.Grid[scene.Object]
	placed  map[scene.Object]placement
	ground  GroundFunc
	log     *zap.Logger

	visited []bool // per-frame dedup, indexed by ObjectID
}

// New creates a world over m with tiles of tileSize world units.
// A nil logger disables diagnostics.
func New(m *terrain.Map, tileSize int, log *zap.Logger) (*World, error) {
	if m == nil {
		return nil, errors.New("world needs a terrain map")
	}
	g, err := grid.New[scene.Object](m.Width, m.Height, tileSize)
	if err != nil {
		return nil, fmt.Errorf("world grid: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		terrain: m,
		grid:    g,
		placed:  make(map[scene.Object]placement),
		log:     log,
	}, nil
}

// Terrain returns the map of the world.
func (w *World) Terrain() *terrain.Map {
	return w.terrain
}

// TileSize returns the tile size in world units.
func (w *World) TileSize() int {
	return w.grid.TileSize()
}

// Len returns the number of placed objects.
func (w *World) Len() int {
	return len(w.placed)
}

// SetGround installs the terrain painter used by Render.
func (w *World) SetGround(f GroundFunc) {
	w.ground = f
}

// GroundZ returns the height of the lowest corner of tile (gx, gy) in
// world units, or 0 off the map.
func (w *World) GroundZ(gx, gy int) int {
	tile := w.terrain.Tile(gx, gy)
	if tile == nil {
		return 0
	}
	return tile.Height * w.grid.TileSize()
}

type cellVertex struct {
	cx, cy int
	v      grid.Vertex
}

// anchor returns the north corner of the footprint, the position the grid
// stores for the object. It lies in the first cell the object is linked
// into, so ObjectAt finds the object on its north tile.
func anchor(pos geom.Point3, fp Footprint) (x, y int) {
	return pos.X - fp.W, pos.Y - fp.H
}

// footprintCells returns the distinct cells under the footprint vertices,
// in vertex order N, E, S, W.
func (w *World) footprintCells(pos geom.Point3, fp Footprint) ([]cellVertex, error) {
	maxX, maxY := pos.X, pos.Y
	if fp.W > 0 {
		maxX--
	}
	if fp.H > 0 {
		maxY--
	}
	minX, minY := pos.X-fp.W, pos.Y-fp.H

	vertices := [grid.NumVertices]geom.Point{
		grid.VertexN: {X: minX, Y: minY},
		grid.VertexE: {X: maxX, Y: minY},
		grid.VertexS: {X: maxX, Y: maxY},
		grid.VertexW: {X: minX, Y: maxY},
	}

	cells := make([]cellVertex, 0, grid.NumVertices)
	for v, p := range vertices {
		cx, cy := w.grid.CellOf(p.X, p.Y)
		if !w.grid.InBounds(cx, cy) {
			return nil, fmt.Errorf("%w: vertex %s at (%d,%d)", ErrOffGrid, grid.Vertex(v), p.X, p.Y)
		}
		duplicate := false
		for _, c := range cells {
			if c.cx == cx && c.cy == cy {
				duplicate = true
				break
			}
		}
		if !duplicate {
			cells = append(cells, cellVertex{cx: cx, cy: cy, v: grid.Vertex(v)})
		}
	}
	return cells, nil
}

func (w *World) link(id grid.ObjectID, cells []cellVertex) error {
	for _, c := range cells {
		if err := w.grid.InsertObject(c.cx, c.cy, id, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Place adds obj at its current position and links it into every cell
// under its footprint.
func (w *World) Place(obj scene.Object, fp Footprint) error {
	if _, ok := w.placed[obj]; ok {
		return ErrPlaced
	}
	if fp.W < 0 || fp.H < 0 {
		return fmt.Errorf("invalid footprint %dx%d", fp.W, fp.H)
	}

	pos := obj.Position()
	cells, err := w.footprintCells(pos, fp)
	if err != nil {
		return err
	}

	ax, ay := anchor(pos, fp)
	id := w.grid.Add(obj, ax, ay)
	if err := w.link(id, cells); err != nil {
		_ = w.grid.Release(id)
		return err
	}
	w.placed[obj] = placement{id: id, fp: fp}

	w.log.Debug("object placed",
		zap.Int32("id", int32(id)),
		zap.Int("x", pos.X),
		zap.Int("y", pos.Y),
		zap.Int("cells", len(cells)))
	return nil
}

// Remove takes obj out of the world.
func (w *World) Remove(obj scene.Object) error {
	p, ok := w.placed[obj]
	if !ok {
		return ErrNotPlaced
	}
	if err := w.grid.Release(p.id); err != nil {
		return err
	}
	delete(w.placed, obj)
	return nil
}

// Update relinks obj after its position changed. When the new footprint
// leaves the map the object keeps its previous cells.
func (w *World) Update(obj scene.Object) error {
	p, ok := w.placed[obj]
	if !ok {
		return ErrNotPlaced
	}

	pos := obj.Position()
	cells, err := w.footprintCells(pos, p.fp)
	if err != nil {
		return err
	}
	if err := w.grid.Unlink(p.id); err != nil {
		return err
	}
	ax, ay := anchor(pos, p.fp)
	if err := w.grid.Move(p.id, ax, ay); err != nil {
		return err
	}
	return w.link(p.id, cells)
}

// ObjectAt returns the object whose footprint has its north corner on
// tile (gx, gy).
func (w *World) ObjectAt(gx, gy int) (scene.Object, bool) {
	id, ok := w.grid.FindObject(gx, gy)
	if !ok {
		return nil, false
	}
	return w.grid.Value(id)
}

// ObjectsIn returns the objects linked into cell (cx, cy) in insertion order.
func (w *World) ObjectsIn(cx, cy int) []scene.Object {
	ids := w.grid.Objects(cx, cy)
	out := make([]scene.Object, 0, len(ids))
	for _, id := range ids {
		if obj, ok := w.grid.Value(id); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Render draws one frame through m: the ground first, then every object
// linked into the grid, visited row by row. An object spanning several cells
// is offered to the scene once per frame, so a drop from a full pool is
// counted and logged once.
func (w *World) Render(m *scene.Manager, offset geom.Point) scene.Stats {
	m.Start(offset)
	if w.ground != nil {
		w.ground(w.terrain, m.ToScreen)
	}

	if n := w.grid.Cap(); len(w.visited) < n {
		w.visited = make([]bool, n)
	} else {
		clear(w.visited)
	}

	width, height := w.grid.Size()
	for cy := range height {
		for cx := range width {
			for id := range w.grid.Chain(cx, cy) {
				if w.visited[id] {
					continue
				}
				w.visited[id] = true
				if obj, ok := w.grid.Value(id); ok {
					m.Insert(obj)
				}
			}
		}
	}

	stats := m.Stats()
	m.Draw()
	return stats
}
