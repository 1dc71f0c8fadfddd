package pick2d

// Material flag bits. Only bit 0 is assigned; the rest of the word is
// reserved for future options and must be ignored by flag checks.
const (
	// MaterialFlagTextureBit gates the texture multiply in the
	// color-material fragment stage.
	MaterialFlagTextureBit uint32 = 1 << 0
)

// ColorMaterial is the per-draw uniform block of the color-material
// program: one instance per draw call, read-only during the draw.
//
// The entity identifier travels here rather than per vertex: color
// materials are drawn as whole meshes whose vertices all share one entity
// identity, so per-vertex storage would be redundant.
type ColorMaterial struct {
	// Color is the base color every other term multiplies into.
	Color Color

	// Flags is a forward-compatible bit field; see MaterialFlagTextureBit.
	Flags uint32

	// EntityIndex is the virtual index of the owning entity
	// (see VirtualIndex), written verbatim to the picking channel.
	EntityIndex uint32
}

// HasTexture reports whether the texture flag bit is set. The check is a
// bitwise AND against the single assigned bit; unknown bits never
// influence it.
func (m *ColorMaterial) HasTexture() bool {
	return m.Flags&MaterialFlagTextureBit != 0
}
