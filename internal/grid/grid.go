// Package grid implements a spatial index of objects over the tile grid.
//
// Objects live in an arena and are addressed by stable ObjectID values. Each
// object has one link slot per footprint vertex; a slot threads the object
// into the chain of the cell that vertex falls in. A cell keeps the head of
// its chain plus the unordered set of its members.
//
// The grid has no internal locking: callers serialize mutations with reads.
package grid

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// Grid errors.
var (
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrUnknownObject = errors.New("unknown object")
	ErrVertexLinked  = errors.New("vertex already linked")
)

// ObjectID addresses an object in the grid arena.
type ObjectID int32

// NoObject marks an empty link or cell head.
const NoObject ObjectID = -1

// Vertex is one corner of an object footprint.
type Vertex uint8

// Footprint vertices.
const (
	VertexN Vertex = iota
	VertexE
	VertexS
	VertexW

	NumVertices = 4
)

// String returns the vertex name.
func (v Vertex) String() string {
	switch v {
	case VertexN:
		return "N"
	case VertexE:
		return "E"
	case VertexS:
		return "S"
	case VertexW:
		return "W"
	default:
		return fmt.Sprintf("Vertex(%d)", v)
	}
}

// ref points at one link slot of one object.
type ref struct {
	id ObjectID
	v  Vertex
}

var noRef = ref{id: NoObject}

// link is the chain position of one object vertex.
type link struct {
	cell int // -1 when the vertex is not linked
	prev ref
	next ref
}

var unlinked = link{cell: -1, prev: noRef, next: noRef}

type node[T any] struct {
	value    T
	x, y     int
	live     bool
	links    [NumVertices]link
	nextFree ObjectID
}

type cell struct {
	head    ref
	members []ObjectID
}

// Grid indexes objects of type T by tile cell.
type Grid[T any] struct {
	width, height int
	tileSize      int
	cells         []cell
	nodes         []node[T]
	free          ObjectID
	live          int
}

// New creates a width x height grid whose tiles span tileSize world units.
func New[T any](width, height, tileSize int) (*Grid[T], error) {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil, fmt.Errorf("invalid grid %dx%d with tile size %d", width, height, tileSize)
	}
	g := &Grid[T]{
		width:    width,
		height:   height,
		tileSize: tileSize,
		cells:    make([]cell, width*height),
		free:     NoObject,
	}
	for i := range g.cells {
		g.cells[i].head = noRef
	}
	return g, nil
}

// Size returns the grid dimensions in cells.
func (g *Grid[T]) Size() (width, height int) {
	return g.width, g.height
}

// TileSize returns the tile size in world units.
func (g *Grid[T]) TileSize() int {
	return g.tileSize
}

// Len returns the number of live objects.
func (g *Grid[T]) Len() int {
	return g.live
}

// Cap returns the arena size. Every ObjectID handed out is below Cap.
func (g *Grid[T]) Cap() int {
	return len(g.nodes)
}

// CellOf returns the cell containing world position (x, y).
func (g *Grid[T]) CellOf(x, y int) (cx, cy int) {
	return floorDiv(x, g.tileSize), floorDiv(y, g.tileSize)
}

// InBounds reports whether (cx, cy) is a valid cell.
func (g *Grid[T]) InBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.width && cy < g.height
}

func (g *Grid[T]) cellIndex(cx, cy int) (int, error) {
	if !g.InBounds(cx, cy) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, cx, cy)
	}
	return cy*g.width + cx, nil
}

func (g *Grid[T]) node(id ObjectID) (*node[T], error) {
	if id < 0 || int(id) >= len(g.nodes) || !g.nodes[id].live {
		return nil, fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	return &g.nodes[id], nil
}

// Add stores value at world position (x, y) and returns its id.
// The object is not linked into any cell until InsertObject is called.
// Ids of released objects are reused.
func (g *Grid[T]) Add(value T, x, y int) ObjectID {
	var id ObjectID
	if g.free != NoObject {
		id = g.free
		g.free = g.nodes[id].nextFree
	} else {
		id = ObjectID(len(g.nodes))
		g.nodes = append(g.nodes, node[T]{})
	}

	n := &g.nodes[id]
	*n = node[T]{value: value, x: x, y: y, live: true, nextFree: NoObject}
	for v := range n.links {
		n.links[v] = unlinked
	}
	g.live++
	return id
}

// Value returns the value stored for id.
func (g *Grid[T]) Value(id ObjectID) (T, bool) {
	n, err := g.node(id)
	if err != nil {
		var zero T
		return zero, false
	}
	return n.value, true
}

// Position returns the stored world position of id.
func (g *Grid[T]) Position(id ObjectID) (x, y int, ok bool) {
	n, err := g.node(id)
	if err != nil {
		return 0, 0, false
	}
	return n.x, n.y, true
}

// Move updates the stored world position of id. Cell links are left as they
// are; callers relink the object when its footprint changes cells.
func (g *Grid[T]) Move(id ObjectID, x, y int) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	n.x, n.y = x, y
	return nil
}

// Unlink removes id from every cell it is linked into. The object keeps
// its id and value and may be inserted again.
func (g *Grid[T]) Unlink(id ObjectID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	for v := range n.links {
		if c := n.links[v].cell; c >= 0 {
			g.removeFromCell(c, id)
		}
	}
	return nil
}

// Release unlinks id from every cell and frees its slot.
func (g *Grid[T]) Release(id ObjectID) error {
	if err := g.Unlink(id); err != nil {
		return err
	}

	n := &g.nodes[id]
	*n = node[T]{nextFree: g.free}
	g.free = id
	g.live--
	return nil
}

// InsertObject makes vertex v of id the new head of cell (cx, cy) and adds id
// to the cell's members. The previous head stays reachable as the next
// element of the chain and links back to id.
func (g *Grid[T]) InsertObject(cx, cy int, id ObjectID, v Vertex) error {
	idx, err := g.cellIndex(cx, cy)
	if err != nil {
		return err
	}
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if v >= NumVertices {
		return fmt.Errorf("invalid vertex %d", v)
	}
	if n.links[v].cell >= 0 {
		return fmt.Errorf("%w: object %d vertex %s", ErrVertexLinked, id, v)
	}

	c := &g.cells[idx]
	previous := c.head

	n.links[v] = link{cell: idx, prev: noRef, next: previous}
	if previous.id != NoObject {
		g.nodes[previous.id].links[previous.v].prev = ref{id: id, v: v}
	}
	c.head = ref{id: id, v: v}

	if !slices.Contains(c.members, id) {
		c.members = append(c.members, id)
	}
	return nil
}

// RemoveObject removes id from the members of cell (cx, cy) and unlinks every
// vertex of id chained in that cell. It reports whether id was a member;
// removing an absent object changes nothing.
func (g *Grid[T]) RemoveObject(cx, cy int, id ObjectID) bool {
	idx, err := g.cellIndex(cx, cy)
	if err != nil {
		return false
	}
	if _, err := g.node(id); err != nil {
		return false
	}
	return g.removeFromCell(idx, id)
}

func (g *Grid[T]) removeFromCell(idx int, id ObjectID) bool {
	c := &g.cells[idx]
	i := slices.Index(c.members, id)
	if i < 0 {
		return false
	}
	c.members = slices.Delete(c.members, i, i+1)

	n := &g.nodes[id]
	for v := range n.links {
		if n.links[v].cell == idx {
			g.unlink(id, Vertex(v))
		}
	}
	return true
}

func (g *Grid[T]) unlink(id ObjectID, v Vertex) {
	l := g.nodes[id].links[v]
	if l.prev.id != NoObject {
		g.nodes[l.prev.id].links[l.prev.v].next = l.next
	} else {
		g.cells[l.cell].head = l.next
	}
	if l.next.id != NoObject {
		g.nodes[l.next.id].links[l.next.v].prev = l.prev
	}
	g.nodes[id].links[v] = unlinked
}

// FindObject returns the first member of cell (gx, gy) whose position lies
// within half a tile of the cell centre. Lower window bounds are inclusive,
// upper bounds exclusive, so windows of neighbouring cells never overlap.
func (g *Grid[T]) FindObject(gx, gy int) (ObjectID, bool) {
	idx, err := g.cellIndex(gx, gy)
	if err != nil {
		return NoObject, false
	}
	minX, minY := gx*g.tileSize, gy*g.tileSize
	for _, id := range g.cells[idx].members {
		n := &g.nodes[id]
		if n.x >= minX && n.x < minX+g.tileSize && n.y >= minY && n.y < minY+g.tileSize {
			return id, true
		}
	}
	return NoObject, false
}

// Objects returns the members of cell (cx, cy) in insertion order.
// The returned slice must not be modified.
func (g *Grid[T]) Objects(cx, cy int) []ObjectID {
	idx, err := g.cellIndex(cx, cy)
	if err != nil {
		return nil
	}
	return g.cells[idx].members
}

// Head returns the first chain element of cell (cx, cy).
func (g *Grid[T]) Head(cx, cy int) (ObjectID, Vertex, bool) {
	idx, err := g.cellIndex(cx, cy)
	if err != nil {
		return NoObject, 0, false
	}
	h := g.cells[idx].head
	return h.id, h.v, h.id != NoObject
}

// Next returns the chain element after vertex v of id.
func (g *Grid[T]) Next(id ObjectID, v Vertex) (ObjectID, Vertex, bool) {
	n, err := g.node(id)
	if err != nil || v >= NumVertices {
		return NoObject, 0, false
	}
	r := n.links[v].next
	return r.id, r.v, r.id != NoObject
}

// Prev returns the chain element before vertex v of id.
func (g *Grid[T]) Prev(id ObjectID, v Vertex) (ObjectID, Vertex, bool) {
	n, err := g.node(id)
	if err != nil || v >= NumVertices {
		return NoObject, 0, false
	}
	r := n.links[v].prev
	return r.id, r.v, r.id != NoObject
}

// Chain iterates the chain of cell (cx, cy) from its head.
func (g *Grid[T]) Chain(cx, cy int) iter.Seq2[ObjectID, Vertex] {
	return func(yield func(ObjectID, Vertex) bool) {
		id, v, ok := g.Head(cx, cy)
		for ok {
			if !yield(id, v) {
				return
			}
			id, v, ok = g.Next(id, v)
		}
	}
}

// ChainBackward iterates from vertex v of id back towards the cell head.
func (g *Grid[T]) ChainBackward(id ObjectID, v Vertex) iter.Seq2[ObjectID, Vertex] {
	return func(yield func(ObjectID, Vertex) bool) {
		if _, err := g.node(id); err != nil || v >= NumVertices {
			return
		}
		ok := true
		for ok {
			if !yield(id, v) {
				return
			}
			id, v, ok = g.Prev(id, v)
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
