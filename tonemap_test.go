package pick2d

import (
	"testing"

	"cogentcore.org/core/math32"
)

func TestTonemapReinhard(t *testing.T) {
	got := TonemapReinhard(math32.Vec3(1, 3, 0))
	if got.X != 0.5 || got.Y != 0.75 || got.Z != 0 {
		t.Errorf("TonemapReinhard(1, 3, 0) = %+v, want (0.5, 0.75, 0)", got)
	}
}

func TestTonemapReinhardRange(t *testing.T) {
	// Any non-negative input lands in [0, 1).
	for _, x := range []float32{0, 0.5, 1, 10, 1e6} {
		out := TonemapReinhard(math32.Vec3(x, x, x))
		if out.X < 0 || out.X >= 1 {
			t.Errorf("TonemapReinhard(%v) = %v, outside [0, 1)", x, out.X)
		}
	}
}
