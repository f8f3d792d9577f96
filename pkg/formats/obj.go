package formats

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// AbsentIndex marks a missing texcoord or normal reference after rebasing.
const AbsentIndex = -1

// FaceVertex holds the raw OBJ indices of one face-vertex token.
// Zero means the field was absent; OBJ indices are never zero.
type FaceVertex struct {
	V  int // Position index
	VT int // Texture coordinate index
	VN int // Normal index
}

// HasTexCoord reports whether the token referenced a texture coordinate.
func (fv FaceVertex) HasTexCoord() bool {
	return fv.VT != 0
}

// HasNormal reports whether the token referenced a normal.
func (fv FaceVertex) HasNormal() bool {
	return fv.VN != 0
}

// ParseFaceVertex parses a face-vertex token of the form v, v/vt, v//vn or v/vt/vn.
func ParseFaceVertex(token string) (FaceVertex, error) {
	var fv FaceVertex

	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return fv, fmt.Errorf("%w: %q has too many fields", ErrInvalidFaceVertex, token)
	}
	if parts[0] == "" {
		return fv, fmt.Errorf("%w: %q has no position index", ErrInvalidFaceVertex, token)
	}

	dst := [3]*int{&fv.V, &fv.VT, &fv.VN}
	for i, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return FaceVertex{}, fmt.Errorf("%w: %q is not an integer in %q", ErrInvalidFaceVertex, p, token)
		}
		*dst[i] = n
	}
	return fv, nil
}

// ResolveIndex converts an OBJ index into a zero-based position in a pool of
// the given size. Positive ids are 1-based, negative ids count back from the
// end of the pool (-1 is the last element) and zero yields AbsentIndex.
// The result is not bounds checked.
func ResolveIndex(id, poolSize int) int {
	switch {
	case id > 0:
		return id - 1
	case id < 0:
		return poolSize + id
	default:
		return AbsentIndex
	}
}

// CheckIndex returns ErrIndexOutOfRange unless 0 <= idx < poolSize.
func CheckIndex(kind string, idx, poolSize int) error {
	if idx < 0 || idx >= poolSize {
		return fmt.Errorf("%w: %s index %d (pool has %d)", ErrIndexOutOfRange, kind, idx, poolSize)
	}
	return nil
}

// MaterialKey returns the material lookup key for a usemtl argument.
// Exporters sometimes prefix names with a library, as in "lib:brick";
// only the part after the last ':' names the material.
func MaterialKey(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ValidOBJPath rejects paths that are too short or lack an .obj extension.
func ValidOBJPath(path string) error {
	if len(path) < 5 || !strings.EqualFold(filepath.Ext(path), ".obj") {
		return fmt.Errorf("%w: %q", ErrInvalidOBJPath, path)
	}
	return nil
}
