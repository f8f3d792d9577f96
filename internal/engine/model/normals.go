package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objview/pkg/math"
)

// generateNormals replaces vertex normals with area-weighted smooth normals:
// each triangle adds its unnormalized face normal to its three vertices and
// the sums are normalized. Vertices with a zero sum keep a zero normal.
func generateNormals(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position

		n := p1.Sub(p0).Cross(p2.Sub(p0))
		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(n)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// generateCubicUVs projects every vertex onto the bounding box face its
// normal points at most directly.
func generateCubicUVs(m *Mesh, bounds Bounds) {
	size := bounds.Size()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.TexCoord = cubicUV(v.Position, v.Normal, bounds.Min, size)
	}
}

// cubicUV maps p into [0,1]^2 using the two axes orthogonal to the
// dominant component of n. Ties fall through to the Z axis.
func cubicUV(p, n, min, size math.Vec3) math.Vec2 {
	ax, ay, az := math32.Abs(n.X), math32.Abs(n.Y), math32.Abs(n.Z)
	switch {
	case ax > ay && ax > az:
		return math.Vec2{X: unit(p.Z, min.Z, size.Z), Y: unit(p.Y, min.Y, size.Y)}
	case ay > ax && ay > az:
		return math.Vec2{X: unit(p.X, min.X, size.X), Y: unit(p.Z, min.Z, size.Z)}
	default:
		return math.Vec2{X: unit(p.X, min.X, size.X), Y: unit(p.Y, min.Y, size.Y)}
	}
}

// unit rescales x from [min, min+extent] to [0,1]. A flat axis maps to 0.
func unit(x, min, extent float32) float32 {
	if extent <= 0 {
		return 0
	}
	return (x - min) / extent
}
