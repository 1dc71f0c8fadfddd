// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pick2d"
)

func TestNewPickTargetCleared(t *testing.T) {
	target := NewPickTarget(8, 4)

	if target.Width() != 8 || target.Height() != 4 {
		t.Fatalf("size = %dx%d, want 8x4", target.Width(), target.Height())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if target.PickAt(x, y) != pick2d.NoEntity {
				t.Fatalf("pick plane not cleared at (%d, %d)", x, y)
			}
			if _, ok := target.EntityAt(x, y); ok {
				t.Fatalf("EntityAt(%d, %d) reported an entity on a cleared target", x, y)
			}
			if target.DepthAt(x, y) != 1 {
				t.Fatalf("depth plane not cleared at (%d, %d)", x, y)
			}
		}
	}
}

func TestPickTargetFormats(t *testing.T) {
	target := NewPickTarget(1, 1)
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("color format = %v, want RGBA8Unorm", target.Format())
	}
	if target.PickFormat() != gputypes.TextureFormatR32Uint {
		t.Errorf("pick format = %v, want R32Uint", target.PickFormat())
	}
}

func TestWriteFragmentAtomicPair(t *testing.T) {
	target := NewPickTarget(2, 2)

	out := pick2d.FragmentOutput{Color: pick2d.RGBA(1, 0, 0, 1), PickID: pick2d.VirtualIndex(7)}
	target.writeFragment(1, 1, out, 0.25)

	if got := target.ColorAt(1, 1); got != pick2d.RGBA(1, 0, 0, 1) {
		t.Errorf("color = %+v, want (1,0,0,1)", got)
	}
	id, ok := target.EntityAt(1, 1)
	if !ok || id != 7 {
		t.Errorf("EntityAt = (%d, %v), want (7, true)", id, ok)
	}
	if target.DepthAt(1, 1) != 0.25 {
		t.Errorf("depth = %v, want 0.25", target.DepthAt(1, 1))
	}
	// Neighbors untouched.
	if target.PickAt(0, 0) != pick2d.NoEntity {
		t.Error("fragment write leaked into a neighboring pixel")
	}
}

func TestWriteFragmentZeroCoverageSkipsPick(t *testing.T) {
	target := NewPickTarget(1, 1)

	out := pick2d.FragmentOutput{Color: pick2d.RGBA(1, 1, 1, 0), PickID: pick2d.VirtualIndex(3)}
	target.writeFragment(0, 0, out, 0.5)

	if target.PickAt(0, 0) != pick2d.NoEntity {
		t.Error("zero-coverage fragment wrote the pick plane")
	}
	if target.DepthAt(0, 0) != 1 {
		t.Error("zero-coverage fragment wrote the depth plane")
	}
}

func TestWriteFragmentSubmissionOrder(t *testing.T) {
	target := NewPickTarget(1, 1)

	first := pick2d.FragmentOutput{Color: pick2d.RGBA(1, 0, 0, 1), PickID: pick2d.VirtualIndex(1)}
	second := pick2d.FragmentOutput{Color: pick2d.RGBA(0, 1, 0, 1), PickID: pick2d.VirtualIndex(2)}
	target.writeFragment(0, 0, first, 0.5)
	target.writeFragment(0, 0, second, 0.5)

	id, _ := target.EntityAt(0, 0)
	if id != 2 {
		t.Errorf("pick id = %d, want the later draw's 2", id)
	}
	if got := target.ColorAt(0, 0); got != pick2d.RGBA(0, 1, 0, 1) {
		t.Errorf("color = %+v, want the later opaque draw's green", got)
	}
}

func TestWriteFragmentSemiTransparentPickNotBlended(t *testing.T) {
	// Two overlapping semi-transparent draws: the color blends, but the
	// pick id is the later draw's identifier exactly, never a mix.
	target := NewPickTarget(1, 1)

	target.writeFragment(0, 0, pick2d.FragmentOutput{Color: pick2d.RGBA(1, 0, 0, 0.5), PickID: pick2d.VirtualIndex(10)}, 0.5)
	target.writeFragment(0, 0, pick2d.FragmentOutput{Color: pick2d.RGBA(0, 0, 1, 0.5), PickID: pick2d.VirtualIndex(20)}, 0.5)

	id, ok := target.EntityAt(0, 0)
	if !ok || id != 20 {
		t.Errorf("pick id = (%d, %v), want exactly (20, true)", id, ok)
	}
	c := target.ColorAt(0, 0)
	if c.B <= c.R*0.9 {
		t.Errorf("color %+v does not favor the later blue draw", c)
	}
}

func TestClearResetsAllPlanes(t *testing.T) {
	target := NewPickTarget(2, 1)
	target.writeFragment(0, 0, pick2d.FragmentOutput{Color: pick2d.RGBA(1, 1, 1, 1), PickID: 5}, 0)

	target.Clear(pick2d.RGB(0, 0, 0))

	if target.PickAt(0, 0) != pick2d.NoEntity || target.DepthAt(0, 0) != 1 {
		t.Error("Clear left stale pick/depth data")
	}
	if got := target.ColorAt(0, 0); got != pick2d.RGBA(0, 0, 0, 1) {
		t.Errorf("Clear color = %+v, want opaque black", got)
	}
}
