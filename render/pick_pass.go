// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick2d/internal/gpu"
)

// Re-exported picking pass types. The pipelines live in the internal gpu
// package; hosts see them through PickPass.
type (
	// SpriteVariant selects a sprite pipeline specialization.
	SpriteVariant = gpu.SpriteVariant

	// MaterialVariant selects a color-material pipeline specialization.
	MaterialVariant = gpu.MaterialVariant

	// SpriteBatch is one textured sprite draw of four-vertex quads.
	SpriteBatch = gpu.SpriteBatch

	// MeshBatch is one indexed color-material draw.
	MeshBatch = gpu.MeshBatch

	// Frame is one picking pass submission.
	Frame = gpu.Frame

	// FrameResult holds the shaded color image and the pick map.
	FrameResult = gpu.FrameResult

	// PickMap maps pixels to virtual entity indices.
	PickMap = gpu.PickMap

	// DepthMap maps pixels to the depth of their last writer.
	DepthMap = gpu.DepthMap
)

// ErrNoHALAccess is returned when a device provider does not expose raw
// HAL handles.
var ErrNoHALAccess = errors.New("render: device provider does not expose HAL types")

// PickPass drives the GPU picking pipelines: one render pass per frame
// writing a color attachment and an R32Uint pick attachment, followed by
// readback of both.
//
// Like GPURenderer, a PickPass never creates its own device; the host
// hands one in. Not safe for concurrent use.
type PickPass struct {
	session *gpu.PickSession
}

// NewPickPass creates a picking pass over raw HAL handles.
func NewPickPass(device hal.Device, queue hal.Queue) (*PickPass, error) {
	if device == nil || queue == nil {
		return nil, errors.New("render: nil device or queue")
	}
	return &PickPass{session: gpu.NewPickSession(device, queue)}, nil
}

// NewPickPassFromProvider creates a picking pass from a device provider
// that exposes HAL access. The provider must implement HalDevice() any
// and HalQueue() any returning hal.Device and hal.Queue, the same
// contract gogpu's shared-device providers follow.
func NewPickPassFromProvider(provider any) (*PickPass, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return NewPickPass(device, queue)
}

// Render submits one frame and reads back its color image and pick map.
func (p *PickPass) Render(frame *Frame) (*FrameResult, error) {
	if p.session == nil {
		return nil, errors.New("render: pick pass destroyed")
	}
	return p.session.Render(frame)
}

// Destroy releases all GPU resources held by the pass. Safe to call
// multiple times.
func (p *PickPass) Destroy() {
	if p.session != nil {
		p.session.Destroy()
		p.session = nil
	}
}
