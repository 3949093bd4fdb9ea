package world

import (
	"errors"
	"image/color"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/basicfont"

	"github.com/Faultbox/isocore/internal/render"
	"github.com/Faultbox/isocore/internal/scene"
	"github.com/Faultbox/isocore/internal/terrain"
	"github.com/Faultbox/isocore/pkg/geom"
)

var iso = geom.Isometric{TileW: 64, TileH: 32, TileSize: 16}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	m, err := terrain.New(4, 4)
	if err != nil {
		t.Fatalf("terrain.New failed: %v", err)
	}
	w, err := New(m, 16, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w
}

func sprite(x, y, z int) *Sprite {
	return &Sprite{Pos: geom.Point3{X: x, Y: y, Z: z}, Key: "block"}
}

func TestPlacePointObject(t *testing.T) {
	w := newTestWorld(t)
	obj := sprite(8, 8, 0)

	if err := w.Place(obj, Footprint{}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d, want 1", w.Len())
	}

	got, ok := w.ObjectAt(0, 0)
	if !ok || got != obj {
		t.Errorf("ObjectAt(0, 0) = %v, %v; want the placed object", got, ok)
	}
	if _, ok := w.ObjectAt(1, 0); ok {
		t.Error("ObjectAt(1, 0) should find nothing")
	}
}

func TestFootprintSpansCells(t *testing.T) {
	w := newTestWorld(t)
	obj := sprite(32, 32, 0)

	if err := w.Place(obj, Footprint{W: 32, H: 32}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	for _, c := range [][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		objs := w.ObjectsIn(c[0], c[1])
		if len(objs) != 1 || objs[0] != obj {
			t.Errorf("cell %v holds %v, want the placed object", c, objs)
		}
	}
	if objs := w.ObjectsIn(2, 2); len(objs) != 0 {
		t.Errorf("cell (2,2) should be empty, got %v", objs)
	}
}

func TestObjectAtFootprintObject(t *testing.T) {
	w := newTestWorld(t)
	small := sprite(32, 32, 0)
	big := sprite(64, 64, 0)

	if err := w.Place(small, Footprint{W: 16, H: 16}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := w.Place(big, Footprint{W: 32, H: 32}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if got, ok := w.ObjectAt(1, 1); !ok || got != small {
		t.Errorf("ObjectAt(1, 1) = %v, %v; want the tile-sized object", got, ok)
	}
	if got, ok := w.ObjectAt(2, 2); !ok || got != big {
		t.Errorf("ObjectAt(2, 2) = %v, %v; want the 2x2 object", got, ok)
	}
	if _, ok := w.ObjectAt(3, 3); ok {
		t.Error("ObjectAt(3, 3) should find nothing: it only holds the far corner")
	}

	big.Pos = geom.Point3{X: 32, Y: 64}
	if err := w.Update(big); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got, ok := w.ObjectAt(0, 2); !ok || got != big {
		t.Errorf("ObjectAt(0, 2) after Update = %v, %v; want the moved object", got, ok)
	}
	if _, ok := w.ObjectAt(2, 2); ok {
		t.Error("ObjectAt(2, 2) should be empty after the move")
	}
}

func TestFootprintWithinOneCell(t *testing.T) {
	w := newTestWorld(t)
	obj := sprite(16, 16, 0)

	if err := w.Place(obj, Footprint{W: 16, H: 16}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	n := 0
	for range w.grid.Chain(0, 0) {
		n++
	}
	if n != 1 {
		t.Errorf("chain of cell (0,0) has %d links, want 1", n)
	}
	if objs := w.ObjectsIn(1, 1); len(objs) != 0 {
		t.Errorf("cell (1,1) should be empty, got %v", objs)
	}
}

func TestPlaceErrors(t *testing.T) {
	w := newTestWorld(t)

	if err := w.Place(sprite(80, 8, 0), Footprint{}); !errors.Is(err, ErrOffGrid) {
		t.Errorf("off-grid Place error = %v, want ErrOffGrid", err)
	}
	if err := w.Place(sprite(8, 8, 0), Footprint{W: 16}); !errors.Is(err, ErrOffGrid) {
		t.Errorf("footprint crossing the edge error = %v, want ErrOffGrid", err)
	}
	if w.Len() != 0 {
		t.Errorf("failed placements left %d objects", w.Len())
	}

	obj := sprite(8, 8, 0)
	if err := w.Place(obj, Footprint{}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := w.Place(obj, Footprint{}); !errors.Is(err, ErrPlaced) {
		t.Errorf("second Place error = %v, want ErrPlaced", err)
	}
	if err := w.Place(sprite(8, 8, 0), Footprint{W: -1}); err == nil {
		t.Error("negative footprint should fail")
	}
	if err := w.Remove(sprite(0, 0, 0)); !errors.Is(err, ErrNotPlaced) {
		t.Errorf("Remove of unknown object error = %v, want ErrNotPlaced", err)
	}
}

func TestUpdateRelinks(t *testing.T) {
	w := newTestWorld(t)
	obj := sprite(8, 8, 0)
	if err := w.Place(obj, Footprint{}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	obj.Pos = geom.Point3{X: 40, Y: 8}
	if err := w.Update(obj); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if objs := w.ObjectsIn(0, 0); len(objs) != 0 {
		t.Errorf("old cell still holds %v", objs)
	}
	if got, ok := w.ObjectAt(2, 0); !ok || got != obj {
		t.Errorf("ObjectAt(2, 0) = %v, %v; want the moved object", got, ok)
	}

	obj.Pos = geom.Point3{X: 200, Y: 8}
	if err := w.Update(obj); !errors.Is(err, ErrOffGrid) {
		t.Errorf("off-grid Update error = %v, want ErrOffGrid", err)
	}
	if objs := w.ObjectsIn(2, 0); !slices.Contains(objs, scene.Object(obj)) {
		t.Error("failed Update should keep the previous cells")
	}
}

func TestRemove(t *testing.T) {
	w := newTestWorld(t)
	obj := sprite(32, 32, 0)
	if err := w.Place(obj, Footprint{W: 32, H: 32}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := w.Remove(obj); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if w.Len() != 0 {
		t.Errorf("Len = %d, want 0", w.Len())
	}
	for cy := range 4 {
		for cx := range 4 {
			if _, _, ok := w.grid.Head(cx, cy); ok {
				t.Errorf("cell (%d,%d) still has a chain head", cx, cy)
			}
		}
	}
	if err := w.Place(obj, Footprint{}); err != nil {
		t.Errorf("removed object should be placeable again: %v", err)
	}
}

func TestGroundZ(t *testing.T) {
	w := newTestWorld(t)
	w.Terrain().Tile(1, 2).Height = 3

	if z := w.GroundZ(1, 2); z != 48 {
		t.Errorf("GroundZ(1, 2) = %d, want 48", z)
	}
	if z := w.GroundZ(-1, 0); z != 0 {
		t.Errorf("GroundZ off the map = %d, want 0", z)
	}
}

func newTestScene(t *testing.T, maxSprites int, log *zap.Logger) *scene.Manager {
	t.Helper()
	canvas := render.NewCanvas(200, 200, basicfont.Face7x13)
	canvas.RegisterSprite("block", render.Block(iso, 16, 16, 16, render.BlockColors{
		Top:   color.White,
		Left:  color.Gray{Y: 128},
		Right: color.Gray{Y: 64},
	}))

	m, err := scene.New(scene.Config{
		TileSize:   16,
		ViewportW:  200,
		ViewportH:  200,
		MaxSprites: maxSprites,
		MaxTexts:   4,
	}, canvas, iso, log)
	if err != nil {
		t.Fatalf("scene.New failed: %v", err)
	}
	return m
}

func TestRenderDropsOverflowOnce(t *testing.T) {
	w := newTestWorld(t)
	core, logs := observer.New(zapcore.WarnLevel)
	m := newTestScene(t, 1, zap.New(core))

	// The point object sits in cell (0,0) and takes the only pool slot.
	// The big one is linked into four cells and must be dropped once.
	point := sprite(8, 8, 0)
	big := sprite(48, 48, 0)
	if err := w.Place(point, Footprint{}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := w.Place(big, Footprint{W: 32, H: 32}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if n := len(w.ObjectsIn(2, 2)); n != 1 {
		t.Fatalf("big object not linked into cell (2,2): %d objects", n)
	}

	for frame := range 2 {
		logs.TakeAll()
		stats := w.Render(m, geom.Point{X: -100})

		if stats.Sprites != 1 {
			t.Errorf("frame %d: Sprites = %d, want 1", frame, stats.Sprites)
		}
		if stats.Dropped != 1 {
			t.Errorf("frame %d: Dropped = %d, want 1", frame, stats.Dropped)
		}
		dropped := logs.FilterMessage("sprite pool exhausted, object dropped from scene").Len()
		if dropped != 1 {
			t.Errorf("frame %d: %d drop warnings, want 1", frame, dropped)
		}
	}
}

func TestRenderFeedsScene(t *testing.T) {
	w := newTestWorld(t)
	m := newTestScene(t, 8, nil)

	big := sprite(32, 32, 0)
	hidden := sprite(8, 40, 0)
	hidden.Hidden = true
	label := &Label{Pos: geom.Point3{X: 8, Y: 8}, Value: "hi"}

	for obj, fp := range map[scene.Object]Footprint{
		big:    {W: 32, H: 32},
		hidden: {},
		label:  {},
	} {
		if err := w.Place(obj, fp); err != nil {
			t.Fatalf("Place failed: %v", err)
		}
	}

	grounds := 0
	w.SetGround(func(tm *terrain.Map, project func(geom.Point3) geom.Point) {
		grounds++
		if tm != w.Terrain() {
			t.Error("ground painter got a foreign map")
		}
		if got := project(geom.Point3{}); got != (geom.Point{X: 100}) {
			t.Errorf("project(origin) = %v, want (100,0)", got)
		}
	})

	stats := w.Render(m, geom.Point{X: -100})

	if grounds != 1 {
		t.Errorf("ground painted %d times, want 1", grounds)
	}
	if stats.Sprites != 1 {
		t.Errorf("Sprites = %d, want 1: an object in four cells is drawn once", stats.Sprites)
	}
	if stats.Texts != 1 {
		t.Errorf("Texts = %d, want 1", stats.Texts)
	}
	if big.Selected() || label.Selected() {
		t.Error("selected flags should be cleared after Render")
	}
}
