package viewer

import (
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/pkg/math"
)

// BoundsWireframeVertexCount is the number of line endpoints produced by
// BoundsWireframe (12 edges).
const BoundsWireframeVertexCount = 24

// BoundsWireframe returns line-list endpoints outlining b grown by padding
// on every side. An empty box yields nil.
func BoundsWireframe(b model.Bounds, padding float32) []math.Vec3 {
	if b.Empty() {
		return nil
	}
	lo := b.Min.Sub(math.Splat(padding))
	hi := b.Max.Add(math.Splat(padding))

	corner := func(x, y, z bool) math.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}

	lines := make([]math.Vec3, 0, BoundsWireframeVertexCount)
	for _, y := range []bool{false, true} {
		// Bottom then top ring
		lines = append(lines,
			corner(false, y, false), corner(true, y, false),
			corner(true, y, false), corner(true, y, true),
			corner(true, y, true), corner(false, y, true),
			corner(false, y, true), corner(false, y, false),
		)
	}
	for _, xz := range [][2]bool{{false, false}, {true, false}, {true, true}, {false, true}} {
		lines = append(lines, corner(xz[0], false, xz[1]), corner(xz[0], true, xz[1]))
	}
	return lines
}
