// Package model assembles Wavefront OBJ files and their MTL libraries into
// indexed triangle meshes ready for GPU upload.
package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// Vertex is one unique (position, texcoord, normal) combination of a mesh.
type Vertex struct {
	Position   math.Vec3
	Normal     math.Vec3
	TexCoord   math.Vec2
	TriangleID int32 // First triangle of the mesh that uses the vertex, -1 if none
}

// Mesh is one segment of an OBJ file: the faces between two group or
// material switches, sharing a single material.
type Mesh struct {
	Name         string
	MaterialName string
	Vertices     []Vertex
	Indices      []uint32

	// Set when the file supplied the data; otherwise it was synthesized.
	HasNormals   bool
	HasTexCoords bool
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns an inverted box that any point will extend.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Splat(math32.MaxFloat32),
		Max: math.Splat(-math32.MaxFloat32),
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Size returns the extent along each axis, zero for an empty box.
func (b Bounds) Size() math.Vec3 {
	if b.Empty() {
		return math.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box, the origin for an empty box.
func (b Bounds) Center() math.Vec3 {
	if b.Empty() {
		return math.Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Material is an MTL material with its texture maps decoded.
type Material struct {
	formats.Material

	DiffuseTexture  *texture.Texture
	SpecularTexture *texture.Texture
	NormalTexture   *texture.Texture
}

// Model is a loaded OBJ file.
type Model struct {
	Name string
	Path string

	meshes    []Mesh
	materials map[string]*Material
	bounds    Bounds
}

// Meshes returns the meshes in file order.
func (m *Model) Meshes() []Mesh {
	return m.meshes
}

// Materials returns the material bank keyed by material name.
func (m *Model) Materials() map[string]*Material {
	return m.materials
}

// Material returns the named material, or nil.
func (m *Model) Material(name string) *Material {
	return m.materials[name]
}

// BoundingBox returns the box around every position record in the file.
func (m *Model) BoundingBox() Bounds {
	return m.bounds
}

// Stats summarizes a loaded model.
type Stats struct {
	Meshes    int
	Materials int
	Vertices  int
	Triangles int
	Textures  int // Distinct decoded textures
}

// Stats returns counts over all meshes and materials.
func (m *Model) Stats() Stats {
	s := Stats{
		Meshes:    len(m.meshes),
		Materials: len(m.materials),
	}
	for i := range m.meshes {
		s.Vertices += len(m.meshes[i].Vertices)
		s.Triangles += m.meshes[i].TriangleCount()
	}

	seen := make(map[*texture.Texture]bool)
	for _, mat := range m.materials {
		for _, tex := range []*texture.Texture{mat.DiffuseTexture, mat.SpecularTexture, mat.NormalTexture} {
			if tex != nil && !seen[tex] {
				seen[tex] = true
				s.Textures++
			}
		}
	}
	return s
}

// LoadOptions configures Load.
type LoadOptions struct {
	// Textures decodes material texture maps. Nil uses a FileLoader with
	// texture.DefaultOptions.
	Textures texture.Loader

	// Charset labels the text encoding of OBJ and MTL files, such as
	// "windows-1252". Empty reads bytes as-is. A byte order mark wins.
	Charset string
}
