// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides render targets and renderers for the pick2d
// shading stage.
//
// The package contains:
//   - PickTarget: a dual CPU target pairing a color pixmap with a
//     per-pixel entity identifier plane (and a depth plane)
//   - SoftwareRenderer: CPU rasterization of sprite quads and material
//     meshes, invoking the pick2d shading programs per covered pixel
//   - GPURenderer: draws routed through the GPU picking pipelines when
//     the host's device handle exposes HAL access, with software fallback
//   - PickPass: the GPU picking pass (dual color attachments plus depth)
//     with readback of the shaded image, pick map, and depth map
//
// Draws composite in submission order: the color channel blends, the
// picking channel overwrites wherever quantized coverage is non-zero.
package render
