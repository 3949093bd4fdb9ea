package depth

import (
	"math/rand"
	"testing"
)

func boxOf(b *Box) Box { return *b }

func TestIntersects(t *testing.T) {
	tests := []struct {
		min1, max1, min2, max2 int
		want                   bool
	}{
		{0, 10, 5, 15, true},
		{0, 10, 10, 20, true}, // touching bounds are inclusive
		{0, 10, 11, 20, false},
		{11, 20, 0, 10, false},
		{0, 30, 10, 20, true},
	}
	for _, tt := range tests {
		if got := Intersects(tt.min1, tt.max1, tt.min2, tt.max2); got != tt.want {
			t.Errorf("Intersects(%d,%d,%d,%d) = %v, want %v", tt.min1, tt.max1, tt.min2, tt.max2, got, tt.want)
		}
	}
}

func TestDrawsBeforeDisjointX(t *testing.T) {
	a := Box{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	b := Box{MinX: 20, MaxX: 30, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}

	if DrawsBefore(a, b) {
		t.Error("b should not be drawn before a")
	}
	if !DrawsBefore(b, a) {
		t.Error("a should be drawn before b")
	}
}

func TestDrawsBeforeDominantAxis(t *testing.T) {
	// Separated on y by a larger gap than on x: y decides.
	a := Box{MinX: 12, MaxX: 20, MinY: 50, MaxY: 60, MinZ: 0, MaxZ: 5}
	b := Box{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 5}
	if !DrawsBefore(a, b) {
		t.Error("b lies behind a on y and should be drawn first")
	}

	// Behind on x but in front on y: the larger y gap wins.
	a = Box{MinX: 20, MaxX: 30, MinY: 0, MaxY: 5, MinZ: 0, MaxZ: 5}
	b = Box{MinX: 0, MaxX: 10, MinY: 10, MaxY: 20, MinZ: 0, MaxZ: 5}
	// x: |20-10| = 10, y: |0-20| = 20 -> y decides, b.MaxY 20 < a.MinY 0 is false.
	if DrawsBefore(a, b) {
		t.Error("y separation should decide and keep b after a")
	}
}

func TestDrawsBeforeFullOverlap(t *testing.T) {
	a := Box{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	b := Box{MinX: 5, MaxX: 15, MinY: 5, MaxY: 15, MinZ: 5, MaxZ: 15}

	// Always a definite answer, never both directions at once for this pair.
	if DrawsBefore(a, b) && DrawsBefore(b, a) {
		t.Error("overlapping boxes should not both precede each other")
	}
}

func TestSortTwoBoxes(t *testing.T) {
	a := Box{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	b := Box{MinX: 20, MaxX: 30, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}

	for _, items := range [][]Box{{a, b}, {b, a}} {
		Sort(items, boxOf)
		if items[0] != a || items[1] != b {
			t.Errorf("expected A before B, got %v", items)
		}
	}
}

func TestSortRow(t *testing.T) {
	// Boxes separated along x only must come out in ascending x.
	rng := rand.New(rand.NewSource(1))
	items := make([]Box, 40)
	for i := range items {
		x := i * 20
		items[i] = Box{MinX: x, MaxX: x + 10, MinY: 0, MaxY: 10, MinZ: 0, MaxZ: 10}
	}
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	Sort(items, boxOf)

	for i := 1; i < len(items); i++ {
		if items[i-1].MinX > items[i].MinX {
			t.Fatalf("row out of order at %d: %v before %v", i, items[i-1], items[i])
		}
	}
}

func TestSortDisjointPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for n := 0; n < 200; n++ {
		a := randomBox(rng)
		// Place b strictly beyond a on one axis.
		b := randomBox(rng)
		switch n % 3 {
		case 0:
			shift := a.MaxX - b.MinX + 1 + rng.Intn(5)
			b.MinX += shift
			b.MaxX += shift
		case 1:
			shift := a.MaxY - b.MinY + 1 + rng.Intn(5)
			b.MinY += shift
			b.MaxY += shift
		case 2:
			shift := a.MaxZ - b.MinZ + 1 + rng.Intn(5)
			b.MinZ += shift
			b.MaxZ += shift
		}
		// Keep the other axes overlapping so the separating axis is unique.
		switch n % 3 {
		case 0:
			b.MinY, b.MaxY, b.MinZ, b.MaxZ = a.MinY, a.MaxY, a.MinZ, a.MaxZ
		case 1:
			b.MinX, b.MaxX, b.MinZ, b.MaxZ = a.MinX, a.MaxX, a.MinZ, a.MaxZ
		case 2:
			b.MinX, b.MaxX, b.MinY, b.MaxY = a.MinX, a.MaxX, a.MinY, a.MaxY
		}

		for _, items := range [][]Box{{a, b}, {b, a}} {
			Sort(items, boxOf)
			if items[0] != a {
				t.Fatalf("case %d: lower box should come first, got %v", n, items)
			}
		}
	}
}

func TestSortDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// Heavily overlapping boxes produce ambiguous, possibly cyclic, comparisons.
	input := make([]Box, 64)
	for i := range input {
		input[i] = randomBox(rng)
	}

	first := append([]Box(nil), input...)
	Sort(first, boxOf)

	for run := 0; run < 5; run++ {
		again := append([]Box(nil), input...)
		Sort(again, boxOf)
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("run %d differs at %d: %v vs %v", run, i, first[i], again[i])
			}
		}
	}
}

func TestSortEmpty(t *testing.T) {
	Sort([]Box(nil), boxOf)
	one := []Box{{MaxX: 1}}
	Sort(one, boxOf)
	if one[0].MaxX != 1 {
		t.Error("single element should be untouched")
	}
}

func randomBox(rng *rand.Rand) Box {
	x, y, z := rng.Intn(50), rng.Intn(50), rng.Intn(20)
	return Box{
		MinX: x, MaxX: x + 1 + rng.Intn(20),
		MinY: y, MaxY: y + 1 + rng.Intn(20),
		MinZ: z, MaxZ: z + 1 + rng.Intn(10),
	}
}
