package pick2d

import "cogentcore.org/core/math32"

// SpriteProgram is the shading program for textured sprite quads: a fixed
// vertex stage followed by a fragment stage, each a pure function of its
// inputs. The toggles select the program variant; each one adds or removes
// a color step and never touches the identifier path.
//
// Invocations share the program read-only, so one SpriteProgram can shade
// any number of vertices and fragments concurrently.
type SpriteProgram struct {
	// View supplies the clip transform for the vertex stage.
	View *View

	// Texture is the bound texture + sampler pair.
	Texture *Texture

	// Colored enables per-vertex color tinting of the texture sample.
	Colored bool

	// Tonemap, when non-nil, is applied to the RGB channels of the
	// shaded color. Alpha is left untouched.
	Tonemap Tonemap

	// QuantizeCoverage applies the alpha quantization policy to the
	// color output, for pipelines that derive picking from the color
	// target's alpha rather than a dedicated integer target.
	QuantizeCoverage bool
}

// SpriteVaryings is the interpolated payload between the sprite stages.
// UV and Color interpolate across the primitive; EntityIndex is flat and
// must arrive at every fragment exactly as the vertex stage emitted it.
type SpriteVaryings struct {
	ClipPosition math32.Vector4
	UV           math32.Vector2
	Color        Color
	EntityIndex  uint32
}

// Vertex transforms one quad corner into clip space and forwards the
// texture coordinate, optional color, and entity identifier unchanged.
func (p *SpriteProgram) Vertex(v SpriteVertex) SpriteVaryings {
	vp := p.View.ViewProjection()
	pos := math32.Vector4FromVector3(v.Position, 1).MulMatrix4(&vp)
	return SpriteVaryings{
		ClipPosition: pos,
		UV:           v.UV,
		Color:        v.Color,
		EntityIndex:  v.EntityIndex,
	}
}

// Fragment shades one covered pixel: sample the texture, tint and
// tone-map per the enabled variants, and emit the color together with the
// untouched entity identifier. No step of the color computation reads or
// writes the identifier.
func (p *SpriteProgram) Fragment(in SpriteVaryings) FragmentOutput {
	c := p.Texture.Sample(in.UV.X, in.UV.Y)
	if p.Colored {
		c = c.Mul(in.Color)
	}
	if p.Tonemap != nil {
		c = c.WithRGB(p.Tonemap(c.RGBVector()))
	}
	if p.QuantizeCoverage {
		c.A = QuantizeAlpha(c.A)
	}
	return FragmentOutput{Color: c, PickID: in.EntityIndex}
}
