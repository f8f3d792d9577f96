package model

import "github.com/Faultbox/objview/pkg/math"

// NormalizationMatrix returns the transform that centers b on the origin
// and scales its largest extent to 1, together with the transformed center.
// Empty or zero-size boxes are only translated.
func NormalizationMatrix(b Bounds) (math.Mat4, math.Vec3) {
	center := b.Center()

	scale := float32(1)
	if extent := b.Size().MaxComponent(); extent > 0 {
		scale = 1 / extent
	}

	m := math.Scale(math.Splat(scale)).Mul(math.Translate(center.Negate()))
	return m, m.TransformPoint(center)
}
