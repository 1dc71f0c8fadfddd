// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/pick2d"
)

// PickTarget is a CPU-backed dual render target: an RGBA color pixmap
// plus a per-pixel entity identifier plane and a depth plane, the software
// counterpart of a color attachment paired with a picking attachment.
//
// The identifier plane stores virtual indices (pick2d.VirtualIndex); a
// cleared pixel holds pick2d.NoEntity. Color and identifier are written
// together per fragment — there is no state in which one is updated and
// the other is not.
type PickTarget struct {
	img   *image.RGBA
	pick  []uint32
	depth []float32
	w, h  int
}

// NewPickTarget creates a dual target of the given size, cleared to
// transparent black with an empty identifier plane.
func NewPickTarget(width, height int) *PickTarget {
	t := &PickTarget{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		pick:  make([]uint32, width*height),
		depth: make([]float32, width*height),
		w:     width,
		h:     height,
	}
	t.Clear(pick2d.Color{})
	return t
}

// Width returns the target width in pixels.
func (t *PickTarget) Width() int { return t.w }

// Height returns the target height in pixels.
func (t *PickTarget) Height() int { return t.h }

// Format returns the color plane's pixel format.
func (t *PickTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// PickFormat returns the identifier plane's pixel format.
func (t *PickTarget) PickFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatR32Uint
}

// Pixels returns direct access to the color plane's pixel data.
func (t *PickTarget) Pixels() []byte { return t.img.Pix }

// Stride returns the number of bytes per color-plane row.
func (t *PickTarget) Stride() int { return t.img.Stride }

// Image returns the underlying color image. The returned image shares
// memory with the target.
func (t *PickTarget) Image() *image.RGBA { return t.img }

// Clear fills the color plane with c, the identifier plane with NoEntity,
// and the depth plane with the far value 1.
func (t *PickTarget) Clear(c pick2d.Color) {
	cc := c.Clamped()
	r := uint8(cc.R*255 + 0.5)
	g := uint8(cc.G*255 + 0.5)
	b := uint8(cc.B*255 + 0.5)
	a := uint8(cc.A*255 + 0.5)
	for i := 0; i < len(t.img.Pix); i += 4 {
		t.img.Pix[i] = r
		t.img.Pix[i+1] = g
		t.img.Pix[i+2] = b
		t.img.Pix[i+3] = a
	}
	for i := range t.pick {
		t.pick[i] = pick2d.NoEntity
		t.depth[i] = 1
	}
}

// ColorAt returns the color at (x, y).
func (t *PickTarget) ColorAt(x, y int) pick2d.Color {
	off := t.img.PixOffset(x, y)
	p := t.img.Pix[off : off+4 : off+4]
	return pick2d.Color{
		R: float32(p[0]) / 255,
		G: float32(p[1]) / 255,
		B: float32(p[2]) / 255,
		A: float32(p[3]) / 255,
	}
}

// PickAt returns the raw virtual index stored at (x, y). A value of
// pick2d.NoEntity means no draw covered the pixel.
func (t *PickTarget) PickAt(x, y int) uint32 {
	return t.pick[y*t.w+x]
}

// EntityAt resolves the entity identifier at (x, y). The second return is
// false for uncovered pixels.
func (t *PickTarget) EntityAt(x, y int) (uint32, bool) {
	return pick2d.ResolveVirtualIndex(t.PickAt(x, y))
}

// DepthAt returns the depth stored at (x, y); 1 where nothing was drawn.
func (t *PickTarget) DepthAt(x, y int) float32 {
	return t.depth[y*t.w+x]
}

// writeFragment composites one fragment at (x, y): the color blends
// source-over in submission order, and whenever quantized coverage is
// non-zero the identifier and depth overwrite. Both planes update within
// this one call, preserving the atomic-pair contract.
func (t *PickTarget) writeFragment(x, y int, out pick2d.FragmentOutput, depth float32) {
	src := out.Color.Clamped()
	dst := t.ColorAt(x, y)

	outA := src.A + dst.A*(1-src.A)
	var blended pick2d.Color
	if outA > 0 {
		blended = pick2d.Color{
			R: (src.R*src.A + dst.R*dst.A*(1-src.A)) / outA,
			G: (src.G*src.A + dst.G*dst.A*(1-src.A)) / outA,
			B: (src.B*src.A + dst.B*dst.A*(1-src.A)) / outA,
			A: outA,
		}
	}

	off := t.img.PixOffset(x, y)
	t.img.Pix[off] = uint8(blended.R*255 + 0.5)
	t.img.Pix[off+1] = uint8(blended.G*255 + 0.5)
	t.img.Pix[off+2] = uint8(blended.B*255 + 0.5)
	t.img.Pix[off+3] = uint8(blended.A*255 + 0.5)

	if pick2d.QuantizeAlpha(out.Color.A) > 0 {
		idx := y*t.w + x
		t.pick[idx] = out.PickID
		t.depth[idx] = depth
	}
}
