package render

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"

	"github.com/Faultbox/isocore/internal/scene"
	"github.com/Faultbox/isocore/pkg/geom"
)

// BlockColors holds the fill of the three visible faces of a block.
type BlockColors struct {
	Top   color.Color
	Left  color.Color // face at max y
	Right color.Color // face at max x
}

// Block renders a solid w x h x l box as a sprite. The box spans
// x in [-w, 0], y in [-h, 0] and z in [0, l] around the object position, so
// the sprite needs no bounding box offsets.
func Block(iso geom.Isometric, w, h, l int, colors BlockColors) *scene.Sprite {
	corners := [8]geom.Point3{
		{X: 0, Y: 0, Z: 0}, {X: -w, Y: 0, Z: 0}, {X: -w, Y: -h, Z: 0}, {X: 0, Y: -h, Z: 0},
		{X: 0, Y: 0, Z: l}, {X: -w, Y: 0, Z: l}, {X: -w, Y: -h, Z: l}, {X: 0, Y: -h, Z: l},
	}

	var projected [8]geom.Point
	minP, maxP := iso.ToReal(corners[0]), iso.ToReal(corners[0])
	for i, c := range corners {
		p := iso.ToReal(c)
		projected[i] = p
		minP.X, minP.Y = min(minP.X, p.X), min(minP.Y, p.Y)
		maxP.X, maxP.Y = max(maxP.X, p.X), max(maxP.Y, p.Y)
	}

	width, height := maxP.X-minP.X+1, maxP.Y-minP.Y+1
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	faces := []struct {
		idx [4]int
		col color.Color
	}{
		{[4]int{0, 1, 5, 4}, colors.Left},
		{[4]int{0, 3, 7, 4}, colors.Right},
		{[4]int{4, 5, 6, 7}, colors.Top},
	}

	z := vector.NewRasterizer(width, height)
	for _, f := range faces {
		z.Reset(width, height)
		for i, idx := range f.idx {
			p := projected[idx].Sub(minP)
			if i == 0 {
				z.MoveTo(float32(p.X), float32(p.Y))
			} else {
				z.LineTo(float32(p.X), float32(p.Y))
			}
		}
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(f.col), image.Point{})
	}

	return &scene.Sprite{
		Image:   img,
		AnchorX: -minP.X,
		AnchorY: -minP.Y,
		BoxW:    w,
		BoxH:    h,
		BoxL:    l,
	}
}
