package graphics

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// QuadOffset is where the spinning quad is translated to in clip space.
var QuadOffset = mgl32.Vec3{0.5, -0.5, 0}

// QuadTransform returns the model transform for the quad after elapsed time:
// identity, then a translation by QuadOffset, then a rotation about Z of one
// radian per second. The result is column-major and can be passed straight to
// UniformMatrix4fv.
func QuadTransform(elapsed time.Duration) mgl32.Mat4 {
	return TranslateRotateZ(QuadOffset, float32(elapsed.Seconds()))
}

// TranslateRotateZ composes translate(offset) * rotateZ(angle) onto identity,
// so vertices are rotated first and then moved.
func TranslateRotateZ(offset mgl32.Vec3, angle float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	m = m.Mul4(mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
	m = m.Mul4(mgl32.HomogRotate3DZ(angle))
	return m
}

// Seconds converts a clock reading in fractional seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
