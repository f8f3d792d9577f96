package model

// vertexKey identifies a vertex by its rebased pool indices.
// Absent texcoord or normal references are formats.AbsentIndex.
type vertexKey struct {
	pos, tex, norm int
}

// vertexCache maps index triples to mesh-local vertex indices.
// A cache lives for one segment only.
type vertexCache map[vertexKey]uint32

// lookupOrInsert returns the mesh index of key, appending newVertex() to
// the mesh the first time the key is seen.
func (c vertexCache) lookupOrInsert(key vertexKey, mesh *Mesh, newVertex func() Vertex) uint32 {
	if idx, ok := c[key]; ok {
		return idx
	}
	idx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, newVertex())
	c[key] = idx
	return idx
}
