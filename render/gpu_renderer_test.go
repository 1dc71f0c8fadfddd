// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package render

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pick2d"
	"github.com/gogpu/pick2d/internal/gpu"
)

// plainProvider implements gpucontext.DeviceProvider without HAL access.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device   { return nil }
func (plainProvider) Queue() gpucontext.Queue     { return nil }
func (plainProvider) Adapter() gpucontext.Adapter { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// halAwareProvider additionally exposes raw HAL handles, the contract
// shared-device providers follow.
type halAwareProvider struct {
	plainProvider
	device hal.Device
	queue  hal.Queue
}

func (p *halAwareProvider) HalDevice() any { return p.device }
func (p *halAwareProvider) HalQueue() any  { return p.queue }

func TestNewGPURendererNilHandle(t *testing.T) {
	if _, err := NewGPURenderer(nil); err == nil {
		t.Error("expected error for nil handle")
	}
}

func TestGPURendererSoftwareFallback(t *testing.T) {
	r, err := NewGPURenderer(plainProvider{})
	if err != nil {
		t.Fatalf("NewGPURenderer failed: %v", err)
	}
	defer r.Destroy()
	if r.pass != nil {
		t.Fatal("provider without HAL access created a pick pass")
	}

	target := NewPickTarget(8, 8)
	prog := &pick2d.SpriteProgram{
		View:    pick2d.NewIdentityView(8, 8),
		Texture: pick2d.NewUniformTexture(pick2d.RGBA(1, 0, 0, 1)),
	}
	err = r.DrawSprite(target, SpriteDraw{
		Program:  prog,
		Vertices: fullQuad(pick2d.VirtualIndex(6), pick2d.White),
	})
	if err != nil {
		t.Fatalf("DrawSprite failed: %v", err)
	}
	if id, ok := target.EntityAt(4, 4); !ok || id != 6 {
		t.Errorf("EntityAt(4, 4) = (%d, %v), want (6, true)", id, ok)
	}
}

func TestGPURendererUsesPickPass(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := NewGPURenderer(&halAwareProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewGPURenderer failed: %v", err)
	}
	defer r.Destroy()
	if r.pass == nil {
		t.Fatal("HAL-aware provider did not create a pick pass")
	}

	target := NewPickTarget(8, 8)
	prog := &pick2d.SpriteProgram{
		View:    pick2d.NewIdentityView(8, 8),
		Texture: pick2d.NewUniformTexture(pick2d.White),
	}
	err = r.DrawSprite(target, SpriteDraw{
		Program:  prog,
		Vertices: fullQuad(pick2d.VirtualIndex(2), pick2d.White),
	})
	if err != nil {
		t.Fatalf("DrawSprite failed: %v", err)
	}

	err = r.DrawMesh(target, MeshDraw{
		Program: &pick2d.ColorMaterialProgram{
			Material: &pick2d.ColorMaterial{Color: pick2d.White},
		},
		View: pick2d.NewIdentityView(8, 8),
		Vertices: []pick2d.MeshVertex{
			{}, {}, {},
		},
		Indices: []uint16{0, 1, 2},
	})
	if err != nil {
		t.Fatalf("DrawMesh failed: %v", err)
	}
}

func TestGPURendererDrawErrors(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := NewGPURenderer(&halAwareProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewGPURenderer failed: %v", err)
	}
	defer r.Destroy()

	target := NewPickTarget(4, 4)
	if err := r.DrawSprite(nil, SpriteDraw{}); err != ErrNilTarget {
		t.Errorf("nil target: err = %v, want ErrNilTarget", err)
	}
	if err := r.DrawSprite(target, SpriteDraw{}); err != ErrNilProgram {
		t.Errorf("nil program: err = %v, want ErrNilProgram", err)
	}

	err = r.DrawMesh(target, MeshDraw{
		Program:  &pick2d.ColorMaterialProgram{Material: &pick2d.ColorMaterial{}},
		View:     pick2d.NewIdentityView(4, 4),
		Vertices: []pick2d.MeshVertex{{}},
		Indices:  []uint16{0, 0},
	})
	if err != ErrBadIndices {
		t.Errorf("short indices: err = %v, want ErrBadIndices", err)
	}
}

func TestGPURendererDestroyFallsBack(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := NewGPURenderer(&halAwareProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewGPURenderer failed: %v", err)
	}
	r.Destroy()
	r.Destroy()

	target := NewPickTarget(4, 4)
	prog := &pick2d.SpriteProgram{
		View:    pick2d.NewIdentityView(4, 4),
		Texture: pick2d.NewUniformTexture(pick2d.White),
	}
	err = r.DrawSprite(target, SpriteDraw{
		Program:  prog,
		Vertices: fullQuad(pick2d.VirtualIndex(9), pick2d.White),
	})
	if err != nil {
		t.Fatalf("DrawSprite after Destroy failed: %v", err)
	}
	if id, ok := target.EntityAt(2, 2); !ok || id != 9 {
		t.Errorf("EntityAt(2, 2) = (%d, %v), want (9, true)", id, ok)
	}
}

func TestVariantMapping(t *testing.T) {
	sp := &pick2d.SpriteProgram{
		Colored:          true,
		Tonemap:          pick2d.TonemapReinhard,
		QuantizeCoverage: true,
	}
	sv := spriteVariant(sp)
	if !sv.Colored || !sv.Tonemap || !sv.QuantizeAlpha {
		t.Errorf("spriteVariant = %+v, want all toggles set", sv)
	}
	if v := spriteVariant(&pick2d.SpriteProgram{}); v != (SpriteVariant{}) {
		t.Errorf("spriteVariant of plain program = %+v, want zero", v)
	}

	mp := &pick2d.ColorMaterialProgram{VertexColors: true, QuantizeCoverage: true}
	mv := materialVariant(mp)
	if !mv.VertexColors || !mv.QuantizeAlpha {
		t.Errorf("materialVariant = %+v, want both toggles set", mv)
	}
}

func TestCompositeFrame(t *testing.T) {
	// A 2x2 frame with one covered pixel at (0, 0): opaque red, entity 9,
	// depth 0.25.
	pickRaw := make([]byte, 16)
	binary.LittleEndian.PutUint32(pickRaw[0:], pick2d.VirtualIndex(9))
	depthRaw := make([]byte, 16)
	binary.LittleEndian.PutUint32(depthRaw[0:], 0x3E800000) // 0.25
	binary.LittleEndian.PutUint32(depthRaw[4:], 0x3F800000)
	binary.LittleEndian.PutUint32(depthRaw[8:], 0x3F800000)
	binary.LittleEndian.PutUint32(depthRaw[12:], 0x3F800000)

	res := &FrameResult{
		Width:  2,
		Height: 2,
		Color: []byte{
			255, 0, 0, 255, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		Picks: gpu.DecodePickRows(pickRaw, 2, 2, 8),
		Depth: gpu.DecodeDepthRows(depthRaw, 2, 2, 8),
	}

	target := NewPickTarget(2, 2)
	target.Clear(pick2d.RGBA(0, 0, 1, 1))
	compositeFrame(target, res)

	if got := target.ColorAt(0, 0); got != pick2d.RGBA(1, 0, 0, 1) {
		t.Errorf("ColorAt(0, 0) = %+v, want red", got)
	}
	if id, ok := target.EntityAt(0, 0); !ok || id != 9 {
		t.Errorf("EntityAt(0, 0) = (%d, %v), want (9, true)", id, ok)
	}
	if got := target.DepthAt(0, 0); got != 0.25 {
		t.Errorf("DepthAt(0, 0) = %v, want 0.25", got)
	}

	// Uncovered frame pixels leave the target alone.
	if got := target.ColorAt(1, 1); got != pick2d.RGBA(0, 0, 1, 1) {
		t.Errorf("ColorAt(1, 1) = %+v, want the clear blue", got)
	}
	if _, ok := target.EntityAt(1, 1); ok {
		t.Error("uncovered pixel gained an entity")
	}
}
