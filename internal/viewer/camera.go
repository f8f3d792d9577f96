package viewer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objview/pkg/math"
)

// Camera defaults, sized for a model normalized to a unit cube.
const (
	DefaultFOV      = 45 // Degrees
	DefaultDistance = 2
	NearPlane       = 0.1
	FarPlane        = 100
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // Radians, positive looks down
	Yaw      float32 // Radians
	FOV      float32 // Vertical field of view in degrees

	MinDistance float32
	MaxDistance float32
	MaxPitch    float32 // Symmetric clamp
	MinFOV      float32
	MaxFOV      float32

	DragSensitivity float32
	ZoomSensitivity float32
	PanSpeed        float32
}

// NewOrbitCamera returns a camera looking at the origin from +Z.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:     0.2,
		MaxDistance:     50,
		MaxPitch:        1.5,
		MinFOV:          1,
		MaxFOV:          DefaultFOV,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSpeed:        0.5,
	}
	c.Reset(math.Vec3{})
	return c
}

// Reset aims the camera at center from the default distance and angle.
func (c *OrbitCamera) Reset(center math.Vec3) {
	c.Center = center
	c.Distance = DefaultDistance
	c.Pitch = 0
	c.Yaw = 0
	c.FOV = DefaultFOV
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	offset := math.Vec3{X: cp * sy, Y: sp, Z: cp * cy}
	return c.Center.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// Projection returns the perspective projection for a viewport aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, aspect, NearPlane, FarPlane)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleZoom moves the camera toward the center on a positive scroll delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleFOV narrows the field of view on a positive scroll delta.
func (c *OrbitCamera) HandleFOV(delta float32) {
	c.FOV = clamp(c.FOV-delta, c.MinFOV, c.MaxFOV)
}

// HandleMovement pans the center in the camera's ground plane.
// dt is the frame time in seconds.
func (c *OrbitCamera) HandleMovement(forward, right, up, dt float32) {
	speed := c.PanSpeed * c.Distance * dt

	sy, cy := math32.Sincos(c.Yaw)
	// Forward points from the camera into the scene
	fwd := math.Vec3{X: -sy, Z: -cy}
	side := math.Vec3{X: cy, Z: -sy}

	move := fwd.Scale(forward).Add(side.Scale(right)).Add(math.Vec3{Y: up})
	c.Center = c.Center.Add(move.Scale(speed))
}

// Fit places the camera so a sphere of the given radius around center
// fills the view.
func (c *OrbitCamera) Fit(center math.Vec3, radius float32) {
	c.Center = center
	if radius <= 0 {
		return
	}
	half := c.FOV * math32.Pi / 360
	c.Distance = clamp(radius/math32.Sin(half), c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
