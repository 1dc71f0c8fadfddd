package pick2d

import (
	"testing"

	"cogentcore.org/core/math32"
)

func TestIdentityViewTransform(t *testing.T) {
	v := NewIdentityView(100, 50)
	vp := v.ViewProjection()
	p := math32.Vec4(0.25, -0.5, 0, 1).MulMatrix4(&vp)
	if p.X != 0.25 || p.Y != -0.5 || p.W != 1 {
		t.Errorf("identity transform moved the point: %+v", p)
	}
	if v.Viewport.Width != 100 || v.Viewport.Height != 50 {
		t.Errorf("viewport = %+v, want 100x50", v.Viewport)
	}
}

func TestOrthographicViewRoundTrip(t *testing.T) {
	v := NewOrthographicView(800, 600, 0.1, 1000)

	clip := math32.Vec4(100, 50, -1, 1).MulMatrix4(&v.Projection)
	back := clip.MulMatrix4(&v.InverseProjection)

	const eps = 1e-3
	if diff(back.X, 100) > eps || diff(back.Y, 50) > eps {
		t.Errorf("projection round trip = %+v, want (100, 50, ...)", back)
	}
}

func TestViewProjectionComposition(t *testing.T) {
	v := NewOrthographicView(2, 2, 0.1, 10)
	// With an identity view matrix, ViewProjection equals Projection.
	vp := v.ViewProjection()
	p := math32.Vec4(0.5, 0.5, -1, 1)
	a, b := p.MulMatrix4(&vp), p.MulMatrix4(&v.Projection)
	if a != b {
		t.Errorf("ViewProjection != Projection under identity view: %+v vs %+v", a, b)
	}
}

func TestInverseViewProjectionRoundTrip(t *testing.T) {
	v := NewOrthographicView(640, 480, 0.1, 100)
	vp := v.ViewProjection()
	inv := v.InverseViewProjection()

	world := math32.Vec4(120, -60, -5, 1)
	back := world.MulMatrix4(&vp).MulMatrix4(&inv)

	const eps = 1e-3
	if diff(back.X, world.X) > eps || diff(back.Y, world.Y) > eps || diff(back.Z, world.Z) > eps {
		t.Errorf("inverse round trip = %+v, want %+v", back, world)
	}
}
