package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertMatEqual(t *testing.T, name string, got Mat4, want mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], eps, name)
}

func assertVecNear(t *testing.T, want, got Vec3, msg string) {
	t.Helper()
	assert.InDeltaSlice(t, []float32{want.X, want.Y, want.Z}, []float32{got.X, got.Y, got.Z}, eps, msg)
}

func TestIdentity(t *testing.T) {
	assertMatEqual(t, "Identity", Identity(), mgl32.Ident4())
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	assert.Equal(t, m, m.Mul(Identity()), "M * I should equal M")
}

func TestTranslate(t *testing.T) {
	assertMatEqual(t, "Translate", Translate(Vec3{5, 10, 15}), mgl32.Translate3D(5, 10, 15))
}

func TestScale(t *testing.T) {
	assertMatEqual(t, "Scale", Scale(Vec3{2, 3, 4}), mgl32.Scale3D(2, 3, 4))
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(Vec3{10, 20, 30}), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(Splat(2)), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"scale then translate", Scale(Splat(0.5)).Mul(Translate(Vec3{-2, -2, -2})), Vec3{4, 4, 4}, Vec3{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.TransformPoint(tt.p))
		})
	}
}

func TestRotateY90(t *testing.T) {
	// (1,0,0) rotated 90 degrees about Y lands on (0,0,-1)
	got := RotateY(gomath.Pi / 2).TransformPoint(Vec3{1, 0, 0})
	assertVecNear(t, Vec3{0, 0, -1}, got, "RotateY 90")
}

func TestRotateMatchesReference(t *testing.T) {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}, {0.3, -0.5, 0.8}}
	for _, axis := range axes {
		n := axis.Normalize()
		want := mgl32.HomogRotate3D(0.7, mgl32.Vec3{n.X, n.Y, n.Z})
		assertMatEqual(t, "Rotate", Rotate(axis, 0.7), want)
	}

	assertMatEqual(t, "RotateX", RotateX(0.4), mgl32.HomogRotate3DX(0.4))
	assertMatEqual(t, "RotateY", RotateY(0.4), mgl32.HomogRotate3DY(0.4))
	assertMatEqual(t, "RotateZ", RotateZ(0.4), mgl32.HomogRotate3DZ(0.4))
}

func TestPerspective(t *testing.T) {
	fov := float32(gomath.Pi / 4)
	m := Perspective(fov, 1.5, 0.1, 100)
	assertMatEqual(t, "Perspective", m, mgl32.Perspective(fov, 1.5, 0.1, 100))

	assert.Equal(t, float32(0), m[15])
	assert.Equal(t, float32(-1), m[11])
}

func TestOrtho(t *testing.T) {
	assertMatEqual(t, "Ortho", Ortho(-2, 2, -1, 1, 0.1, 10), mgl32.Ortho(-2, 2, -1, 1, 0.1, 10))
}

func TestLookAt(t *testing.T) {
	eye := Vec3{1, 2, 5}

	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	want := mgl32.LookAtV(mgl32.Vec3{1, 2, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	assertMatEqual(t, "LookAt", m, want)

	// The eye maps to the view-space origin
	assertVecNear(t, Vec3{}, m.TransformPoint(eye), "eye in view space")
}

func TestTranspose(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	tr := m.Transpose()
	assert.Equal(t, []float32{1, 2, 3}, []float32{tr[3], tr[7], tr[11]}, "translation moves to the row ends")
	assert.Equal(t, m, tr.Transpose())
}

func TestInverse(t *testing.T) {
	m := Perspective(0.8, 1.5, 0.1, 100).
		Mul(LookAt(Vec3{1, 2, 5}, Vec3{}, Vec3{0, 1, 0})).
		Mul(Rotate(Vec3{1, 1, 0}, 0.3)).
		Mul(Scale(Vec3{2, 2, 2}))

	inv, ok := m.Inverse()
	require.True(t, ok, "a regular matrix is invertible")

	want := mgl32.Mat4(m).Inv()
	assert.InDeltaSlice(t, want[:], inv[:], 1e-3)

	id := m.Mul(inv)
	ident := Identity()
	assert.InDeltaSlice(t, ident[:], id[:], 1e-3, "m * m^-1")
}

func TestInverseSingular(t *testing.T) {
	_, ok := Scale(Vec3{1, 0, 1}).Inverse()
	assert.False(t, ok, "a flattening scale has no inverse")
}
