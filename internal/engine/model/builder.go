package model

import (
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// pools holds the file-global attribute records in declaration order.
type pools struct {
	positions []math.Vec3
	texCoords []math.Vec2
	normals   []math.Vec3
}

// resolve rebases a face-vertex token against the pools, failing on any
// reference that falls outside them.
func (p *pools) resolve(fv formats.FaceVertex) (vertexKey, error) {
	key := vertexKey{
		pos:  formats.ResolveIndex(fv.V, len(p.positions)),
		tex:  formats.AbsentIndex,
		norm: formats.AbsentIndex,
	}
	if err := formats.CheckIndex("position", key.pos, len(p.positions)); err != nil {
		return key, err
	}
	if fv.HasTexCoord() {
		key.tex = formats.ResolveIndex(fv.VT, len(p.texCoords))
		if err := formats.CheckIndex("texcoord", key.tex, len(p.texCoords)); err != nil {
			return key, err
		}
	}
	if fv.HasNormal() {
		key.norm = formats.ResolveIndex(fv.VN, len(p.normals))
		if err := formats.CheckIndex("normal", key.norm, len(p.normals)); err != nil {
			return key, err
		}
	}
	return key, nil
}

// vertex materializes a resolved key. Missing attributes are zero.
func (p *pools) vertex(key vertexKey) Vertex {
	v := Vertex{
		Position:   p.positions[key.pos],
		TriangleID: -1,
	}
	if key.tex != formats.AbsentIndex {
		v.TexCoord = p.texCoords[key.tex]
	}
	if key.norm != formats.AbsentIndex {
		v.Normal = p.normals[key.norm]
	}
	return v
}

// meshBuilder accumulates the faces of the open segment.
type meshBuilder struct {
	mesh  Mesh
	cache vertexCache
}

func newMeshBuilder(name string) *meshBuilder {
	return &meshBuilder{
		mesh:  Mesh{Name: name},
		cache: make(vertexCache),
	}
}

// empty reports whether the segment has produced any vertex yet.
func (b *meshBuilder) empty() bool {
	return len(b.mesh.Vertices) == 0
}

// addFace deduplicates the face's vertices and fan-triangulates it as
// (0, i, i+1). Faces with fewer than three tokens are skipped before any
// token is resolved. It returns the number of triangles emitted.
func (b *meshBuilder) addFace(tokens []string, p *pools) (int, error) {
	if len(tokens) < 3 {
		return 0, nil
	}

	face := make([]uint32, len(tokens))
	for i, tok := range tokens {
		fv, err := formats.ParseFaceVertex(tok)
		if err != nil {
			return 0, err
		}
		key, err := p.resolve(fv)
		if err != nil {
			return 0, err
		}
		if fv.HasTexCoord() {
			b.mesh.HasTexCoords = true
		}
		if fv.HasNormal() {
			b.mesh.HasNormals = true
		}
		face[i] = b.cache.lookupOrInsert(key, &b.mesh, func() Vertex { return p.vertex(key) })
	}

	for i := 1; i+1 < len(face); i++ {
		b.mesh.Indices = append(b.mesh.Indices, face[0], face[i], face[i+1])
	}
	return len(face) - 2, nil
}

// finish closes the segment. An unset material inherits lastMaterial.
// Normals and texture coordinates the file did not supply are synthesized,
// the latter against the model bounds seen so far.
func (b *meshBuilder) finish(bounds Bounds, lastMaterial string) Mesh {
	m := b.mesh
	if m.MaterialName == "" {
		m.MaterialName = lastMaterial
	}

	assignTriangleIDs(&m)
	if !m.HasNormals {
		generateNormals(&m)
	}
	if !m.HasTexCoords {
		generateCubicUVs(&m, bounds)
	}
	return m
}

// assignTriangleIDs tags each vertex with the first triangle using it.
func assignTriangleIDs(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].TriangleID = -1
	}
	for i, idx := range m.Indices {
		if v := &m.Vertices[idx]; v.TriangleID < 0 {
			v.TriangleID = int32(i / 3)
		}
	}
}
