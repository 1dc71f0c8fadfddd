// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"errors"

	"github.com/gogpu/pick2d"
)

// GPURenderer renders sprite and material draws using the GPU device
// provided by the host application.
//
// The renderer does NOT create its own GPU device; the DeviceHandle must
// come from the host (e.g. gogpu.App). When the handle also exposes raw
// HAL access (the HalDevice/HalQueue contract shared-device providers
// follow), each draw runs through the GPU picking pipelines and the
// result composites into the target. Handles without HAL access fall back
// to the software renderer, which implements the identical shading
// contracts.
type GPURenderer struct {
	// handle is the GPU device handle from the host application.
	handle DeviceHandle

	// pass drives the GPU pipelines; nil when the handle exposes no HAL
	// access or after Destroy.
	pass *PickPass

	// softwareFallback serves handles without HAL access.
	softwareFallback *SoftwareRenderer
}

// NewGPURenderer creates a renderer over a host-provided device handle.
func NewGPURenderer(handle DeviceHandle) (*GPURenderer, error) {
	if handle == nil {
		return nil, errors.New("render: nil device handle")
	}
	r := &GPURenderer{
		handle:           handle,
		softwareFallback: NewSoftwareRenderer(),
	}
	pass, err := NewPickPassFromProvider(handle)
	switch {
	case err == nil:
		r.pass = pass
	case errors.Is(err, ErrNoHALAccess):
		// Software fallback.
	default:
		return nil, err
	}
	return r, nil
}

// DrawSprite rasterizes one sprite quad into the target.
func (r *GPURenderer) DrawSprite(target *PickTarget, d SpriteDraw) error {
	if target == nil {
		return ErrNilTarget
	}
	if r.pass == nil {
		return r.softwareFallback.DrawSprite(target, d)
	}
	if d.Program == nil || d.Program.View == nil || d.Program.Texture == nil {
		return ErrNilProgram
	}

	result, err := r.pass.Render(&Frame{
		View: d.Program.View,
		Sprites: []SpriteBatch{{
			Variant:  spriteVariant(d.Program),
			Texture:  d.Program.Texture,
			Vertices: d.Vertices[:],
		}},
	})
	if err != nil {
		return err
	}
	compositeFrame(target, result)
	return nil
}

// DrawMesh rasterizes a color-material mesh into the target.
func (r *GPURenderer) DrawMesh(target *PickTarget, d MeshDraw) error {
	if target == nil {
		return ErrNilTarget
	}
	if r.pass == nil {
		return r.softwareFallback.DrawMesh(target, d)
	}
	if d.Program == nil || d.Program.Material == nil || d.View == nil {
		return ErrNilProgram
	}
	if len(d.Indices)%3 != 0 {
		return ErrBadIndices
	}
	for _, idx := range d.Indices {
		if int(idx) >= len(d.Vertices) {
			return ErrBadIndices
		}
	}
	if len(d.Indices) == 0 {
		return nil
	}

	result, err := r.pass.Render(&Frame{
		View: d.View,
		Meshes: []MeshBatch{{
			Variant:  materialVariant(d.Program),
			Material: *d.Program.Material,
			Texture:  d.Program.Texture,
			Vertices: d.Vertices,
			Indices:  d.Indices,
		}},
	})
	if err != nil {
		return err
	}
	compositeFrame(target, result)
	return nil
}

// DeviceHandle returns the underlying device handle, for hosts that need
// to share resources with their own pipelines.
func (r *GPURenderer) DeviceHandle() DeviceHandle {
	return r.handle
}

// Destroy releases the GPU resources of the underlying pick pass. Safe to
// call multiple times; afterwards draws serve through the software
// fallback.
func (r *GPURenderer) Destroy() {
	if r.pass != nil {
		r.pass.Destroy()
		r.pass = nil
	}
}

// spriteVariant maps a sprite program's toggles onto the GPU pipeline
// specialization set.
func spriteVariant(p *pick2d.SpriteProgram) SpriteVariant {
	return SpriteVariant{
		Colored:       p.Colored,
		Tonemap:       p.Tonemap != nil,
		QuantizeAlpha: p.QuantizeCoverage,
	}
}

// materialVariant maps a color-material program's toggles onto the GPU
// pipeline specialization set.
func materialVariant(p *pick2d.ColorMaterialProgram) MaterialVariant {
	return MaterialVariant{
		VertexColors:  p.VertexColors,
		QuantizeAlpha: p.QuantizeCoverage,
	}
}

// compositeFrame writes a rendered frame into the target in submission
// order, through the same fragment path the software renderer uses: color
// blends source-over, identifier and depth overwrite where coverage
// quantizes to non-zero. Frame pixels no draw covered are skipped so the
// target's prior contents show through.
func compositeFrame(target *PickTarget, res *FrameResult) {
	w, h := target.Width(), target.Height()
	if res.Width < w {
		w = res.Width
	}
	if res.Height < h {
		h = res.Height
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := res.Picks.IndexAt(x, y)
			off := (y*res.Width + x) * 4
			if idx == pick2d.NoEntity && res.Color[off+3] == 0 {
				continue
			}
			src := pick2d.Color{
				R: float32(res.Color[off]) / 255,
				G: float32(res.Color[off+1]) / 255,
				B: float32(res.Color[off+2]) / 255,
				A: float32(res.Color[off+3]) / 255,
			}
			target.writeFragment(x, y, pick2d.FragmentOutput{
				Color:  src,
				PickID: idx,
			}, res.Depth.DepthAt(x, y))
		}
	}
}
