package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/math"
)

// Options configures a new State.
type Options struct {
	Mode          RenderMode
	Light         Light
	ScaleStep     float32
	MoveStep      float32
	CustomTexture *texture.Texture // Used by ModeCustomTexture, may be nil
}

// State is everything a renderer needs besides the model data itself.
type State struct {
	Model         *model.Model
	Mode          RenderMode
	Light         Light
	Transform     *Transform
	Camera        *OrbitCamera
	CustomTexture *texture.Texture

	initialMode RenderMode
}

// New creates the viewer state for a loaded model.
func New(m *model.Model, opts Options) *State {
	light := opts.Light
	if light.Step == 0 {
		light = DefaultLight()
	}
	s := &State{
		Model:         m,
		Mode:          opts.Mode,
		Light:         light,
		Transform:     NewTransform(m.BoundingBox(), opts.ScaleStep, opts.MoveStep),
		Camera:        NewOrbitCamera(),
		CustomTexture: opts.CustomTexture,
		initialMode:   opts.Mode,
	}
	s.fitCamera()
	return s
}

// unitRadius bounds a model normalized into the unit cube.
const unitRadius = 0.8660254 // sqrt(3)/2

func (s *State) fitCamera() {
	s.Camera.Reset(s.Transform.Center)
	s.Camera.Fit(s.Transform.Center, unitRadius*s.Transform.ScaleFactor)
}

// ViewProjection returns projection * view for a viewport of the given size.
func (s *State) ViewProjection(width, height float32) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	return s.Camera.Projection(aspect).Mul(s.Camera.ViewMatrix())
}

// Pick returns the triangle under pixel (x, y) of a width x height viewport.
func (s *State) Pick(x, y, width, height float32) (Hit, bool) {
	ray, ok := ScreenToRay(x, y, width, height, s.ViewProjection(width, height))
	if !ok {
		return Hit{}, false
	}
	hit, ok := Pick(ray, s.Model, s.Transform.Matrix)
	if ok {
		logger.Debug("picked triangle",
			zap.String("mesh", s.Model.Meshes()[hit.Mesh].Name),
			zap.Int("triangle", hit.Triangle),
			zap.Float32("distance", hit.Distance))
	}
	return hit, ok
}

// BoundsOverlay returns the model-space wireframe of the model bounds,
// drawn through Transform.Matrix.
func (s *State) BoundsOverlay() []math.Vec3 {
	return BoundsWireframe(s.Model.BoundingBox(), 0)
}

// Toggle switches to mode, or back to shaded when mode is already active.
func (s *State) Toggle(mode RenderMode) {
	if s.Mode == mode {
		s.Mode = ModeShaded
	} else {
		s.Mode = mode
	}
	logger.Debug("render mode changed", zap.Stringer("mode", s.Mode))
}

// Action is one discrete viewer command, typically bound to a key.
type Action int

const (
	ActionToggleFaces Action = iota
	ActionToggleLines
	ActionTogglePoints
	ActionToggleColors
	ActionToggleCustomTexture

	ActionRotateXPos
	ActionRotateXNeg
	ActionRotateYPos
	ActionRotateYNeg
	ActionRotateZPos
	ActionRotateZNeg

	ActionMoveXPos
	ActionMoveXNeg
	ActionMoveYPos
	ActionMoveYNeg
	ActionMoveZPos
	ActionMoveZNeg

	ActionShrink
	ActionGrow
	ActionResetTransform

	ActionLightX
	ActionLightY
	ActionLightZ
	ActionLightRed
	ActionLightGreen
	ActionLightBlue
	ActionViewX
	ActionViewY
	ActionViewZ
	ActionResetLight

	ActionReset
)

var toggleModes = map[Action]RenderMode{
	ActionToggleFaces:         ModeFaces,
	ActionToggleLines:         ModeLines,
	ActionTogglePoints:        ModePoints,
	ActionToggleColors:        ModeColors,
	ActionToggleCustomTexture: ModeCustomTexture,
}

// Apply performs one action.
func (s *State) Apply(a Action) {
	if mode, ok := toggleModes[a]; ok {
		s.Toggle(mode)
		return
	}

	t := s.Transform
	switch a {
	case ActionRotateXPos, ActionRotateXNeg:
		t.RotateStep(AxisX, a == ActionRotateXNeg)
	case ActionRotateYPos, ActionRotateYNeg:
		t.RotateStep(AxisY, a == ActionRotateYNeg)
	case ActionRotateZPos, ActionRotateZNeg:
		t.RotateStep(AxisZ, a == ActionRotateZNeg)
	case ActionMoveXPos, ActionMoveXNeg:
		t.Move(AxisX, a == ActionMoveXNeg)
	case ActionMoveYPos, ActionMoveYNeg:
		t.Move(AxisY, a == ActionMoveYNeg)
	case ActionMoveZPos, ActionMoveZNeg:
		t.Move(AxisZ, a == ActionMoveZNeg)
	case ActionShrink:
		t.ShrinkStep()
	case ActionGrow:
		t.GrowStep()
	case ActionResetTransform:
		t.Reset()
		s.fitCamera()
	case ActionLightX:
		s.Light.NudgePosition(AxisX)
	case ActionLightY:
		s.Light.NudgePosition(AxisY)
	case ActionLightZ:
		s.Light.NudgePosition(AxisZ)
	case ActionLightRed:
		s.Light.NudgeColor(AxisX)
	case ActionLightGreen:
		s.Light.NudgeColor(AxisY)
	case ActionLightBlue:
		s.Light.NudgeColor(AxisZ)
	case ActionViewX:
		s.Light.NudgeViewPosition(AxisX)
	case ActionViewY:
		s.Light.NudgeViewPosition(AxisY)
	case ActionViewZ:
		s.Light.NudgeViewPosition(AxisZ)
	case ActionResetLight:
		s.Light.Reset()
	case ActionReset:
		t.Reset()
		s.fitCamera()
		s.Light.Reset()
		s.Mode = s.initialMode
	}
}
