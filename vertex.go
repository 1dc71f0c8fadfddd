package pick2d

import "cogentcore.org/core/math32"

// SpriteVertex is one corner of a sprite quad as produced by the upstream
// quad generator. The entity identifier rides along as a vertex attribute
// because sprite batches interleave quads owned by different entities in
// one draw.
type SpriteVertex struct {
	// Position in world space (or clip space under an identity view).
	Position math32.Vector3

	// UV is the texture coordinate for this corner.
	UV math32.Vector2

	// EntityIndex is the virtual index of the owning entity
	// (see VirtualIndex). It must reach the fragment stage unchanged.
	EntityIndex uint32

	// Color is the optional per-vertex tint, consumed only by the
	// Colored sprite variant. Leave as White when unused.
	Color Color
}

// MeshVertex is a vertex of a color-material mesh. Unlike sprites there is
// no per-vertex identifier: every vertex of a material draw shares the one
// identity carried by the material uniform block.
type MeshVertex struct {
	Position math32.Vector3
	UV       math32.Vector2

	// Color is the optional per-vertex tint, consumed only when the
	// program's VertexColors toggle is set.
	Color Color
}

// FragmentOutput is the pair a fragment invocation writes: the shaded
// color and the owning entity's virtual index for the picking target.
// The two are produced independently and written together as one value;
// there is no partial-write state.
type FragmentOutput struct {
	Color  Color
	PickID uint32
}
