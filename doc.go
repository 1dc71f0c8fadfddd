// Package pick2d implements the picking-aware shading stage for 2D
// drawables in the GoGPU ecosystem.
//
// # Overview
//
// pick2d provides the two shading programs used by a 2D renderer —
// textured sprites and flat/textured color materials — together with the
// scheme that carries a 32-bit entity identifier through the fragment
// pipeline into a second render target. A downstream picking pass can then
// answer, for any screen pixel, which logical object produced it.
//
// Every fragment emits a [FragmentOutput]: the shaded color and the
// untouched identifier of the owning draw, written together as one value.
// Color post-processing (tinting, tone-mapping, the alpha quantization
// policy) never influences the identifier, and the identifier never
// influences the color.
//
// # Backends
//
// The root package contains the programs as pure float32 functions, usable
// directly and serving as the reference for the GPU path:
//
//	prog := &pick2d.SpriteProgram{View: view, Texture: tex}
//	out := prog.Fragment(prog.Vertex(vert))
//	// out.Color is the shaded color, out.PickID the entity identifier.
//
// The render package rasterizes sprite quads and material meshes on the
// CPU into a dual target (color pixmap + identifier plane). The
// internal/gpu package drives the same contracts on the GPU via gogpu/wgpu
// render pipelines with two color attachments.
//
// # Identifier transport
//
// Identifier 0 is reserved for "no entity". Draws carry a virtual index
// (identifier + 1), the picking target clears to 0, and readback resolves
// the offset. Where only color-like channels are available, the codec in
// this package splits the 32-bit value into 8/12/12-bit fields across
// three float channels; see [PackIDVec3].
package pick2d
