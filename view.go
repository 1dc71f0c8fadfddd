package pick2d

import "cogentcore.org/core/math32"

// Viewport is the render-target rectangle a View draws into, in pixels.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// View is the per-frame camera transform bundle, shared read-only by every
// draw in a frame. The shading stage consumes it and never mutates it;
// updates happen between frames in the surrounding pipeline.
type View struct {
	// Projection transforms camera space into clip space.
	Projection math32.Matrix4

	// InverseProjection is the precomputed inverse of Projection.
	InverseProjection math32.Matrix4

	// ViewMatrix transforms world space into camera space.
	ViewMatrix math32.Matrix4

	// InverseView is the precomputed inverse of ViewMatrix.
	InverseView math32.Matrix4

	// WorldPosition is the camera position in world space.
	WorldPosition math32.Vector3

	// Viewport is the target rectangle in pixels.
	Viewport Viewport
}

// NewOrthographicView creates a view with an orthographic projection
// covering width x height pixels, the usual camera for 2D sprite and
// material passes. The camera sits at the origin looking down -Z.
func NewOrthographicView(width, height, near, far float32) *View {
	v := &View{
		Viewport: Viewport{Width: width, Height: height},
	}
	v.Projection.SetOrthographic(width, height, near, far)
	v.ViewMatrix.SetIdentity()
	v.InverseView.SetIdentity()
	if inv, err := v.Projection.Inverse(); err == nil {
		v.InverseProjection = *inv
	}
	return v
}

// NewIdentityView creates a view whose transform is the identity, so
// vertex positions are interpreted as already being in clip space. Useful
// for tests and for callers that pre-transform geometry.
func NewIdentityView(width, height float32) *View {
	v := &View{
		Viewport: Viewport{Width: width, Height: height},
	}
	v.Projection.SetIdentity()
	v.InverseProjection.SetIdentity()
	v.ViewMatrix.SetIdentity()
	v.InverseView.SetIdentity()
	return v
}

// ViewProjection returns the combined clip transform applied by the vertex
// stages: Projection x ViewMatrix.
func (v *View) ViewProjection() math32.Matrix4 {
	var m math32.Matrix4
	m.MulMatrices(&v.Projection, &v.ViewMatrix)
	return m
}

// InverseViewProjection returns the inverse of the combined clip
// transform, built from the precomputed inverses.
func (v *View) InverseViewProjection() math32.Matrix4 {
	var m math32.Matrix4
	m.MulMatrices(&v.InverseView, &v.InverseProjection)
	return m
}
