package viewer

import "github.com/Faultbox/objview/pkg/math"

// DefaultLightStep is the per-press increment of light components.
const DefaultLightStep = 0.01

// Axis names a vector component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) of(v *math.Vec3) *float32 {
	switch a {
	case AxisX:
		return &v.X
	case AxisY:
		return &v.Y
	default:
		return &v.Z
	}
}

// Light is a single point light plus the eye position used for specular.
type Light struct {
	Position     math.Vec3
	Color        math.Vec3
	ViewPosition math.Vec3
	Step         float32

	initial [3]math.Vec3
}

// NewLight returns a light that Reset restores to the given values.
func NewLight(position, color, viewPosition math.Vec3, step float32) Light {
	if step <= 0 {
		step = DefaultLightStep
	}
	return Light{
		Position:     position,
		Color:        color,
		ViewPosition: viewPosition,
		Step:         step,
		initial:      [3]math.Vec3{position, color, viewPosition},
	}
}

// DefaultLight is a white light in front of the model, seen from the front.
func DefaultLight() Light {
	front := math.Vec3{Z: 1}
	return NewLight(front, math.Splat(1), front, DefaultLightStep)
}

// NudgePosition steps one light position component, wrapping from 1 to -1.
func (l *Light) NudgePosition(a Axis) {
	step(a.of(&l.Position), l.Step, -1)
}

// NudgeColor steps one color channel, wrapping from 1 to 0.
func (l *Light) NudgeColor(a Axis) {
	step(a.of(&l.Color), l.Step, 0)
}

// NudgeViewPosition steps one view position component, wrapping from 1 to -1.
func (l *Light) NudgeViewPosition(a Axis) {
	step(a.of(&l.ViewPosition), l.Step, -1)
}

// Reset restores the values the light was created with.
func (l *Light) Reset() {
	l.Position, l.Color, l.ViewPosition = l.initial[0], l.initial[1], l.initial[2]
}

func step(c *float32, by, wrapTo float32) {
	*c += by
	if *c >= 1 {
		*c = wrapTo
	}
}
