package graphics

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestQuadTransformAtZero(t *testing.T) {
	got := QuadTransform(0)
	want := mgl32.Translate3D(0.5, -0.5, 0)
	if !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("QuadTransform(0) =\n%v\nwant\n%v", got, want)
	}
}

func TestQuadTransformAtPi(t *testing.T) {
	got := QuadTransform(Seconds(math.Pi))
	want := mgl32.Translate3D(0.5, -0.5, 0).Mul4(mgl32.HomogRotate3DZ(math.Pi))
	if !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("QuadTransform(pi) =\n%v\nwant\n%v", got, want)
	}

	// Rotation part is a half turn: x and y axes are negated.
	if math.Abs(float64(got.At(0, 0)+1)) > eps || math.Abs(float64(got.At(1, 1)+1)) > eps {
		t.Errorf("rotation block = [%v %v; %v %v], want -I", got.At(0, 0), got.At(0, 1), got.At(1, 0), got.At(1, 1))
	}
	// Translation column is unaffected by the rotation.
	if got.Col(3) != (mgl32.Vec4{0.5, -0.5, 0, 1}) {
		t.Errorf("translation column = %v", got.Col(3))
	}
}

func TestQuadTransformRotatesBeforeTranslating(t *testing.T) {
	// A quarter turn takes the top-right corner (0.5, 0.5) to (-0.5, 0.5)
	// before the offset is applied.
	m := QuadTransform(Seconds(math.Pi / 2))
	p := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0, 1})
	want := mgl32.Vec4{0, 0, 0, 1}
	if !vecNear(p, want) {
		t.Errorf("transformed corner = %v, want %v", p, want)
	}
}

// vecNear compares with an absolute tolerance. mgl32's ApproxEqualThreshold
// switches to eps*eps when one side is zero, which float32 sin/cos miss.
func vecNear(got, want mgl32.Vec4) bool {
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > eps {
			return false
		}
	}
	return true
}

func TestSeconds(t *testing.T) {
	if got := Seconds(1.5); got != 1500*time.Millisecond {
		t.Errorf("Seconds(1.5) = %v", got)
	}
}
