package viewer

import (
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/pkg/math"
)

// Ray is a half-line in 3D space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay unprojects a pixel into a world-space ray through the near
// and far planes. ok is false when viewProj cannot be inverted.
func ScreenToRay(x, y, width, height float32, viewProj math.Mat4) (Ray, bool) {
	inv, ok := viewProj.Inverse()
	if !ok {
		return Ray{}, false
	}

	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height // Pixel rows grow downward

	near := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: -1})
	far := inv.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}, true
}

// IntersectBounds returns the entry distance of the ray into b, or the exit
// distance when the origin is inside.
func (r Ray) IntersectBounds(b model.Bounds) (float32, bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := b.Min.Array(), b.Max.Array()
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the ray parameter of the hit on triangle
// (p0, p1, p2), from either side. Hits behind the origin are misses.
func (r Ray) IntersectTriangle(p0, p1, p2 math.Vec3) (float32, bool) {
	const eps = 1e-7

	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(p0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}

// Hit is the nearest triangle under a ray.
type Hit struct {
	Mesh     int       // Index into Model.Meshes
	Triangle int       // Triangle index within the mesh, as in Vertex.TriangleID
	Distance float32   // Ray parameter of the hit
	Point    math.Vec3 // World-space hit point
}

// Pick finds the nearest triangle of m hit by a world-space ray, with the
// model drawn through modelMatrix.
func Pick(r Ray, m *model.Model, modelMatrix math.Mat4) (Hit, bool) {
	inv, ok := modelMatrix.Inverse()
	if !ok {
		return Hit{}, false
	}
	// Same parameterization as r, so distances stay comparable
	local := Ray{Origin: inv.TransformPoint(r.Origin), Direction: inv.TransformDirection(r.Direction)}

	if _, ok := local.IntersectBounds(m.BoundingBox()); !ok {
		return Hit{}, false
	}

	best := Hit{Mesh: -1, Distance: gomath.MaxFloat32}
	for mi, mesh := range m.Meshes() {
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			p0 := mesh.Vertices[mesh.Indices[i]].Position
			p1 := mesh.Vertices[mesh.Indices[i+1]].Position
			p2 := mesh.Vertices[mesh.Indices[i+2]].Position
			if t, ok := local.IntersectTriangle(p0, p1, p2); ok && t < best.Distance {
				best = Hit{Mesh: mi, Triangle: i / 3, Distance: t}
			}
		}
	}
	if best.Mesh < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}
