package pick2d

import "cogentcore.org/core/math32"

// ColorMaterialProgram is the fragment program for flat and textured
// color materials. The vertex stage is the shared generic mesh transform;
// only the fragment contract lives here.
//
// The identifier comes from the material uniform block, never from a
// vertex attribute: one value covers the whole draw.
type ColorMaterialProgram struct {
	// Material is the per-draw uniform block.
	Material *ColorMaterial

	// Texture is consulted only when the material's texture flag bit
	// is set. It may be nil otherwise.
	Texture *Texture

	// VertexColors enables per-vertex tinting of the base color.
	VertexColors bool

	// QuantizeCoverage applies the alpha quantization policy to the
	// color output; see SpriteProgram.QuantizeCoverage.
	QuantizeCoverage bool
}

// Fragment shades one covered pixel: base color, optional vertex tint,
// optional flag-gated texture multiply, then the color and the
// material-sourced identifier emitted as one pair.
//
// The flag check tests the single assigned bit; reserved bits are
// ignored, so a material with unknown future flags shades exactly as one
// without them.
func (p *ColorMaterialProgram) Fragment(uv math32.Vector2, vertexColor Color) FragmentOutput {
	c := p.Material.Color
	if p.VertexColors {
		c = c.Mul(vertexColor)
	}
	if p.Material.HasTexture() {
		c = c.Mul(p.Texture.Sample(uv.X, uv.Y))
	}
	if p.QuantizeCoverage {
		c.A = QuantizeAlpha(c.A)
	}
	return FragmentOutput{Color: c, PickID: p.Material.EntityIndex}
}
