// Package gpu implements the GPU path of the pick2d shading stage:
// render pipelines for sprites and color materials that write a color
// attachment and a picking attachment in one pass, plus the readback
// machinery that recovers per-pixel entity identifiers on the CPU.
//
// Pipelines follow the create/ensure/destroy lifecycle; the noop HAL
// backend exercises them in tests without a physical GPU.
package gpu
