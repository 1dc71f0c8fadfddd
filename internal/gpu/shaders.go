//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"
	"strings"
)

// Embedded WGSL shader sources. picking.wgsl holds the codec and alpha
// policy functions shared by both shading programs.

//go:embed shaders/picking.wgsl
var pickingShaderSource string

//go:embed shaders/sprite.wgsl
var spriteShaderBody string

//go:embed shaders/color_material.wgsl
var materialShaderBody string

// SpriteVariant selects one member of the closed set of sprite pipeline
// specializations. Each toggle adds or removes a color step in the
// fragment stage; none of them changes the identifier output path.
type SpriteVariant struct {
	// Colored enables per-vertex color tinting.
	Colored bool

	// Tonemap enables the in-shader tone-mapping call.
	Tonemap bool

	// QuantizeAlpha applies the alpha quantization policy to the color
	// output.
	QuantizeAlpha bool
}

// MaterialVariant selects a color-material pipeline specialization.
type MaterialVariant struct {
	// VertexColors enables per-vertex tinting of the base color.
	VertexColors bool

	// QuantizeAlpha applies the alpha quantization policy to the color
	// output.
	QuantizeAlpha bool
}

// spriteShaderSource assembles the full WGSL module for one sprite
// variant: const flags, the shared picking helpers, then the shader body.
// Branching on module-scope bool consts folds away at compilation, so
// each variant is a specialized pipeline rather than a runtime branch.
func spriteShaderSource(v SpriteVariant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const COLORED: bool = %t;\n", v.Colored)
	fmt.Fprintf(&b, "const TONEMAP_IN_SHADER: bool = %t;\n", v.Tonemap)
	fmt.Fprintf(&b, "const PICKING_QUANTIZE_ALPHA: bool = %t;\n\n", v.QuantizeAlpha)
	b.WriteString(pickingShaderSource)
	b.WriteString("\n")
	b.WriteString(spriteShaderBody)
	return b.String()
}

// materialShaderSource assembles the full WGSL module for one
// color-material variant.
func materialShaderSource(v MaterialVariant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const VERTEX_COLORS: bool = %t;\n", v.VertexColors)
	fmt.Fprintf(&b, "const PICKING_QUANTIZE_ALPHA: bool = %t;\n\n", v.QuantizeAlpha)
	b.WriteString(pickingShaderSource)
	b.WriteString("\n")
	b.WriteString(materialShaderBody)
	return b.String()
}
