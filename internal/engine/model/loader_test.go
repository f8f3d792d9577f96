package model

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/pkg/encoding"
	"github.com/Faultbox/objview/pkg/formats"
	"github.com/Faultbox/objview/pkg/math"
)

// stubTextures records requested paths instead of decoding files.
type stubTextures struct {
	loaded []string
	err    error
}

func (s *stubTextures) Load(path string) (*texture.Texture, error) {
	s.loaded = append(s.loaded, path)
	if s.err != nil {
		return nil, s.err
	}
	return &texture.Texture{Path: path, Width: 1, Height: 1}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const colorsMTL = `
newmtl red
Kd 1 0 0

newmtl green
Kd 0 1 0
Ns 64
`

func TestLoad_Triangle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", `# a single triangle
v 0 0 0
v 1 0 0
v 0 1 0

f 1 2 3
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	assert.Equal(t, "tri", m.Name)
	require.Len(t, m.Meshes(), 1)
	mesh := m.Meshes()[0]
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	assert.False(t, mesh.HasNormals)
	assert.False(t, mesh.HasTexCoords)
	for _, v := range mesh.Vertices {
		assertVec3(t, math.Vec3{Z: 1}, v.Normal)
	}
	// Z-dominant projection against the model box
	assert.Equal(t, math.Vec2{X: 1, Y: 0}, mesh.Vertices[1].TexCoord)
	assert.Equal(t, math.Vec2{X: 0, Y: 1}, mesh.Vertices[2].TexCoord)
}

func TestLoad_SegmentsByMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.mtl", colorsMTL)
	path := writeFile(t, dir, "two.obj", `mtllib colors.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl red
f 1 2 3
usemtl lib:green
f 2 4 3
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	require.Len(t, m.Meshes(), 2)
	assert.Equal(t, "red", m.Meshes()[0].MaterialName)
	assert.Equal(t, "green", m.Meshes()[1].MaterialName)

	// Each segment has its own vertex cache
	assert.Len(t, m.Meshes()[0].Vertices, 3)
	assert.Len(t, m.Meshes()[1].Vertices, 3)

	green := m.Material("green")
	require.NotNil(t, green)
	assert.Equal(t, math.Vec3{Y: 1}, green.Diffuse)
	assert.Equal(t, float32(64), green.Shininess)
	assert.Equal(t, float32(formats.DefaultOpacity), green.Opacity)
}

func TestLoad_GroupsAndInheritance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.mtl", colorsMTL)
	path := writeFile(t, dir, "groups.obj", `mtllib colors.mtl
o Crate
v 0 0 0
v 1 0 0
v 0 1 0
g lid
usemtl red
f 1 2 3
g body
f 3 2 1
g empty
g side
f 1 3 2
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	assert.Equal(t, "Crate", m.Name)
	meshes := m.Meshes()
	require.Len(t, meshes, 3)

	assert.Equal(t, "lid", meshes[0].Name)
	assert.Equal(t, "red", meshes[0].MaterialName)
	assert.Equal(t, "body", meshes[1].Name)
	assert.Equal(t, "red", meshes[1].MaterialName)
	assert.Equal(t, "side", meshes[2].Name)
	assert.Equal(t, "red", meshes[2].MaterialName)
}

func TestLoad_ExplicitAttributes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "attrs.obj", `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25 0.5
vt 0.75
vn 0 0 -1
f 1/1/1 2/2/1 3/1/1
f -3/-2/-1 -2/-1/-1 -1/-2/-1
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	mesh := m.Meshes()[0]
	assert.True(t, mesh.HasNormals)
	assert.True(t, mesh.HasTexCoords)
	require.Len(t, mesh.Vertices, 3, "negative indices name the same vertices")
	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2}, mesh.Indices)
	assert.Equal(t, math.Vec3{Z: -1}, mesh.Vertices[0].Normal)
	assert.Equal(t, math.Vec2{X: 0.25, Y: 0.5}, mesh.Vertices[0].TexCoord)
	assert.Equal(t, math.Vec2{X: 0.75, Y: 0}, mesh.Vertices[1].TexCoord)
}

func TestLoad_DegenerateFace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "degen.obj", `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2
f 1 2 3
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)
	require.Len(t, m.Meshes(), 1)
	assert.Equal(t, 1, m.Meshes()[0].TriangleCount())
}

func TestLoad_BoundingBox(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "box.obj", `v -1 2 3
v 4 -5 6
v 7 8 -9
v 0 0 0 1
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	b := m.BoundingBox()
	assert.Equal(t, math.Vec3{X: -1, Y: -5, Z: -9}, b.Min)
	assert.Equal(t, math.Vec3{X: 7, Y: 8, Z: 6}, b.Max)
	assert.Empty(t, m.Meshes(), "positions without faces produce no mesh")
}

func TestRead_LargeCoordinates(t *testing.T) {
	src := "v 2e10 2e10 2e10\nv 3e10 2e10 2e10\nv 2e10 3e10 2e10\nf 1 2 3\n"
	m, err := Read(strings.NewReader(src), "far.obj", LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	b := m.BoundingBox()
	assert.Equal(t, math.Splat(2e10), b.Min)
	assert.Equal(t, math.Vec3{X: 3e10, Y: 3e10, Z: 2e10}, b.Max)

	require.Len(t, m.Meshes(), 1)
	v := m.Meshes()[0].Vertices
	assert.Equal(t, math.Vec2{}, v[0].TexCoord)
	assert.Equal(t, math.Vec2{X: 1}, v[1].TexCoord)
	assert.Equal(t, math.Vec2{Y: 1}, v[2].TexCoord)
	assert.Equal(t, math.Vec3{Z: 1}, v[0].Normal)
}

func TestLoad_UVsUseBoundsSoFar(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "late.obj", `v 0 0 0
v 1 0 0
v 0 1 0
g first
f 1 2 3
g second
v 10 10 0
f 1 2 4
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)
	require.Len(t, m.Meshes(), 2)

	assert.Equal(t, math.Vec2{X: 1, Y: 0}, m.Meshes()[0].Vertices[1].TexCoord)
	assert.Equal(t, math.Vec2{X: 0.1, Y: 0}, m.Meshes()[1].Vertices[1].TexCoord)
}

func TestLoad_MaterialLibraries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mats/base.mtl", `newmtl paint
Kd 1 0 0
map_Kd tex/paint.png
map_Bump -bm 0.5 tex/paint bump.png
`)
	writeFile(t, dir, "mats/override.mtl", `newmtl paint
Kd 0 0 1
map_Kd -s 2 2 1 tex/blue.png
newmtl plain
`)
	path := writeFile(t, dir, "car.obj", "mtllib mats/base.mtl ./mats/override.mtl\n")

	stub := &stubTextures{}
	m, err := Load(path, LoadOptions{Textures: stub})
	require.NoError(t, err)

	paint := m.Material("paint")
	require.NotNil(t, paint)
	assert.Equal(t, math.Vec3{Z: 1}, paint.Diffuse)
	require.NotNil(t, paint.DiffuseTexture)
	assert.Equal(t, filepath.Join(dir, "mats", "tex", "blue.png"), paint.DiffuseTexture.Path)
	assert.Nil(t, paint.NormalTexture, "override replaces the whole material")

	assert.Equal(t, []string{
		filepath.Join(dir, "mats", "tex", "paint.png"),
		filepath.Join(dir, "mats", "tex", "paint bump.png"),
		filepath.Join(dir, "mats", "tex", "blue.png"),
	}, stub.loaded)

	s := m.Stats()
	assert.Equal(t, 2, s.Materials)
	assert.Equal(t, 1, s.Textures)
}

func TestLoad_DecodesTextures(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "red.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	writeFile(t, dir, "red.mtl", "newmtl red\nmap_Kd red.png\nmap_Ks red.png\n")
	path := writeFile(t, dir, "red.obj", "mtllib red.mtl\n")

	m, err := Load(path, LoadOptions{})
	require.NoError(t, err)

	red := m.Material("red")
	require.NotNil(t, red)
	require.NotNil(t, red.DiffuseTexture)
	assert.Equal(t, 2, red.DiffuseTexture.Width)
	assert.Equal(t, 3, red.DiffuseTexture.Height)
	assert.Same(t, red.DiffuseTexture, red.SpecularTexture)
	assert.Equal(t, 1, m.Stats().Textures)
}

func TestLoad_Stats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.mtl", colorsMTL)
	path := writeFile(t, dir, "stats.obj", `mtllib colors.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
usemtl red
f 1 2 3 4
usemtl green
f 1 2 3
`)

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)

	assert.Equal(t, Stats{Meshes: 2, Materials: 2, Vertices: 7, Triangles: 3}, m.Stats())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "colors.mtl", colorsMTL)
	writeFile(t, dir, "bad.mtl", "newmtl bad\nNs shiny\n")
	writeFile(t, dir, "tex.mtl", "newmtl wood\nmap_Kd wood.png\n")

	tests := []struct {
		name string
		obj  string
		line int
		want error
	}{
		{"missing material", "v 0 0 0\nusemtl Foo\nf 1 1 1\n", 2, ErrMaterialNotFound},
		{"material from other library", "mtllib colors.mtl\nusemtl blue\n", 2, ErrMaterialNotFound},
		{"empty usemtl", "mtllib colors.mtl\nusemtl\n", 2, ErrMaterialNotFound},
		{"position out of range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", 3, formats.ErrIndexOutOfRange},
		{"normal out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//2 3//1\n", 5, formats.ErrIndexOutOfRange},
		{"bad face token", "v 0 0 0\nf 1 1 a\n", 2, formats.ErrInvalidFaceVertex},
		{"short position", "v 0 0\n", 1, formats.ErrMalformedRecord},
		{"bad normal", "vn 0 x 1\n", 1, formats.ErrMalformedRecord},
		{"missing library", "\n\nmtllib nowhere.mtl\n", 3, ErrIO},
		{"malformed library", "mtllib bad.mtl\n", 1, formats.ErrMalformedRecord},
		{"missing texture", "mtllib tex.mtl\n", 1, ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".obj", tt.obj)

			m, err := Load(path, LoadOptions{})
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)

			var perr *formats.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, path, perr.File)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestLoad_MalformedLibraryLocation(t *testing.T) {
	dir := t.TempDir()
	mtl := writeFile(t, dir, "bad.mtl", "newmtl bad\nKd 1 0 0\nNs shiny\n")
	path := writeFile(t, dir, "uses_bad.obj", "mtllib bad.mtl\n")

	_, err := Load(path, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), mtl+":3:")
}

func TestLoad_TextureFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wood.mtl", "newmtl wood\nmap_Kd wood.png\n")
	path := writeFile(t, dir, "wood.obj", "mtllib wood.mtl\n")

	boom := errors.New("boom")
	_, err := Load(path, LoadOptions{Textures: &stubTextures{err: boom}})
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, boom)
}

func TestLoad_PathErrors(t *testing.T) {
	for _, p := range []string{"", ".obj", "model.ob", "model.stl", "dir/model"} {
		_, err := Load(p, LoadOptions{})
		assert.ErrorIs(t, err, formats.ErrInvalidOBJPath, p)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.OBJ"), LoadOptions{})
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRead(t *testing.T) {
	src := "o Quad\nv 0 0 0\nv 2 0 0\nv 2 1 0\nv 0 1 0\nf 1 2 3 4\n"

	m, err := Read(strings.NewReader(src), "inline", LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err)
	assert.Equal(t, "Quad", m.Name)
	assert.Equal(t, "inline", m.Path)
	require.Len(t, m.Meshes(), 1)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Meshes()[0].Indices)
}

func TestLoad_Charset(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "legacy.mtl", "newmtl caf\xe9\nKd 1 0 0\n")
	path := writeFile(t, dir, "legacy.obj",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nmtllib legacy.mtl\nusemtl caf\xe9\nf 1 2 3\n")

	m, err := Load(path, LoadOptions{Textures: &stubTextures{}, Charset: "windows-1252"})
	require.NoError(t, err)
	require.Len(t, m.Meshes(), 1)
	assert.Equal(t, "café", m.Meshes()[0].MaterialName)
	assert.NotNil(t, m.Material("café"))

	m, err = Load(path, LoadOptions{Textures: &stubTextures{}})
	require.NoError(t, err, "raw bytes still match between OBJ and MTL")
	assert.Equal(t, "caf\xe9", m.Meshes()[0].MaterialName)

	_, err = Load(path, LoadOptions{Charset: "klingon"})
	assert.ErrorIs(t, err, encoding.ErrUnknownCharset)
}

func TestLoad_ByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	bom := "\xef\xbb\xbf"
	writeFile(t, dir, "bom.mtl", bom+"newmtl café\nKd 1 0 0\n")
	path := writeFile(t, dir, "bom.obj",
		bom+"v 0 0 0\nv 1 0 0\nv 0 1 0\nmtllib bom.mtl\nusemtl café\nf 1 2 3\n")

	for _, charset := range []string{"", "windows-1252"} {
		m, err := Load(path, LoadOptions{Textures: &stubTextures{}, Charset: charset})
		require.NoError(t, err, "charset %q", charset)
		require.Len(t, m.Meshes(), 1)
		assert.Equal(t, "café", m.Meshes()[0].MaterialName, "the byte order mark selects UTF-8")
		assert.Len(t, m.Meshes()[0].Vertices, 3, "first record is not swallowed by the mark")
	}
}
