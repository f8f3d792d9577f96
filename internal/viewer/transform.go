package viewer

import (
	gomath "math"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/pkg/math"
)

// Transform defaults.
const (
	DefaultScaleStep    = 0.9
	DefaultMoveStep     = 0.05
	DefaultRotationStep = 5 * gomath.Pi / 180
)

// Transform is the model matrix of the displayed object. It starts as the
// normalization matrix of the model bounds, which fits the model in a unit
// cube around the origin.
type Transform struct {
	Matrix      math.Mat4
	Center      math.Vec3 // Pivot for rotations, in world space
	ScaleFactor float32
	Orientation math.Quat // Accumulated rotation since the last reset

	ScaleStep    float32
	MoveStep     float32
	RotationStep float32 // Radians

	base       math.Mat4
	baseCenter math.Vec3
}

// NewTransform builds the base transform for bounds. Non-positive steps
// fall back to the defaults.
func NewTransform(bounds model.Bounds, scaleStep, moveStep float32) *Transform {
	if scaleStep <= 0 || scaleStep == 1 {
		scaleStep = DefaultScaleStep
	}
	if moveStep <= 0 {
		moveStep = DefaultMoveStep
	}

	base, center := model.NormalizationMatrix(bounds)
	t := &Transform{
		ScaleStep:    scaleStep,
		MoveStep:     moveStep,
		RotationStep: DefaultRotationStep,
		base:         base,
		baseCenter:   center,
	}
	t.Reset()
	return t
}

// Reset restores the normalization matrix.
func (t *Transform) Reset() {
	t.Matrix = t.base
	t.Center = t.baseCenter
	t.ScaleFactor = 1
	t.Orientation = math.QuatIdentity()
}

// Rotate turns the model by angle radians about axis through Center.
func (t *Transform) Rotate(axis math.Vec3, angle float32) {
	q := math.QuatFromAxisAngle(axis, angle)
	t.Orientation = q.Mul(t.Orientation).Normalize()

	pivot := math.Translate(t.Center).Mul(q.ToMat4()).Mul(math.Translate(t.Center.Negate()))
	t.Matrix = pivot.Mul(t.Matrix)
}

// RotateStep rotates by one RotationStep, negative when reverse is set.
func (t *Transform) RotateStep(a Axis, reverse bool) {
	var axis math.Vec3
	*a.of(&axis) = 1
	angle := t.RotationStep
	if reverse {
		angle = -angle
	}
	t.Rotate(axis, angle)
}

// Move translates the model and its pivot by one MoveStep along a.
func (t *Transform) Move(a Axis, reverse bool) {
	var d math.Vec3
	*a.of(&d) = t.MoveStep
	if reverse {
		d = d.Negate()
	}
	t.Matrix = math.Translate(d).Mul(t.Matrix)
	t.Center = t.Center.Add(d)
}

// ShrinkStep scales the model down by ScaleStep in model space.
func (t *Transform) ShrinkStep() {
	t.scale(t.ScaleStep)
}

// GrowStep undoes one ShrinkStep.
func (t *Transform) GrowStep() {
	t.scale(1 / t.ScaleStep)
}

func (t *Transform) scale(f float32) {
	t.Matrix = t.Matrix.Mul(math.Scale(math.Splat(f)))
	t.ScaleFactor *= f
}
