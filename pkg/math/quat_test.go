package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	assert.Equal(t, Quat{W: 1}, q)
	assertMatEqual(t, "identity quat", q.ToMat4(), mgl32.Ident4())
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := gomath.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W))
	assert.InDelta(t, 1.0, length, eps)

	assert.Equal(t, QuatIdentity(), Quat{}.Normalize(), "zero quaternion normalizes to identity")
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 2}, gomath.Pi/2)

	assert.InDelta(t, gomath.Cos(gomath.Pi/4), q.W, eps)
	assert.InDelta(t, gomath.Sin(gomath.Pi/4), q.Y, eps)
}

func TestQuatToMat4MatchesReference(t *testing.T) {
	axis := Vec3{0.3, -0.5, 0.8}.Normalize()
	q := QuatFromAxisAngle(axis, 1.1)
	want := mgl32.QuatRotate(1.1, mgl32.Vec3{axis.X, axis.Y, axis.Z}).Mat4()
	assertMatEqual(t, "ToMat4", q.ToMat4(), want)
	assertMatEqual(t, "Rotate", Rotate(axis, 1.1), want)
}

func TestQuatMulComposesRotations(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Y: 1}, 0.5)
	b := QuatFromAxisAngle(Vec3{X: 1}, 0.25)

	got := a.Mul(b).ToMat4()
	want := a.ToMat4().Mul(b.ToMat4())
	assert.InDeltaSlice(t, want[:], got[:], eps)
}
