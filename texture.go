package pick2d

import (
	"image"
	"image/draw"

	"cogentcore.org/core/math32"
	xdraw "golang.org/x/image/draw"
)

// AddressMode selects how texture coordinates outside [0, 1] resolve.
// The mode is sampler configuration, external to the shading programs;
// out-of-bounds coordinates are never a failure condition.
type AddressMode uint8

const (
	// AddressModeClampToEdge clamps coordinates to the edge texel.
	AddressModeClampToEdge AddressMode = iota

	// AddressModeRepeat wraps coordinates, tiling the texture.
	AddressModeRepeat
)

// FilterMode selects the sampling filter.
type FilterMode uint8

const (
	// FilterModeLinear blends the four nearest texels.
	FilterModeLinear FilterMode = iota

	// FilterModeNearest picks the single nearest texel.
	FilterModeNearest
)

// Sampler is the filtering and wrap configuration bound alongside a
// texture, mirroring the GPU sampler object.
type Sampler struct {
	AddressModeU AddressMode
	AddressModeV AddressMode
	Filter       FilterMode
}

// Texture is a CPU-side 2D image with its sampler, the software
// counterpart of a bound texture + sampler pair.
type Texture struct {
	pix     *image.RGBA
	w, h    int
	sampler Sampler
}

// NewTexture wraps an image as a texture with the given sampler. The
// source is converted to RGBA; the original is not retained.
func NewTexture(src image.Image, sampler Sampler) *Texture {
	b := src.Bounds()
	pix := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), src, b.Min, draw.Src)
	return &Texture{pix: pix, w: b.Dx(), h: b.Dy(), sampler: sampler}
}

// NewTextureScaled wraps an image resampled to width x height, for assets
// whose source resolution does not match the atlas slot.
func NewTextureScaled(src image.Image, width, height int, sampler Sampler) *Texture {
	pix := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(pix, pix.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return &Texture{pix: pix, w: width, h: height, sampler: sampler}
}

// NewUniformTexture creates a 1x1 texture of a single color. Sampling it
// returns that color for every coordinate.
func NewUniformTexture(c Color) *Texture {
	pix := image.NewRGBA(image.Rect(0, 0, 1, 1))
	cc := c.Clamped()
	pix.Pix[0] = uint8(cc.R*255 + 0.5)
	pix.Pix[1] = uint8(cc.G*255 + 0.5)
	pix.Pix[2] = uint8(cc.B*255 + 0.5)
	pix.Pix[3] = uint8(cc.A*255 + 0.5)
	return &Texture{pix: pix, w: 1, h: 1}
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.w }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.h }

// Pixels returns the backing pixel data, 4 bytes per texel (RGBA) in
// row-major order with no row padding.
func (t *Texture) Pixels() []byte { return t.pix.Pix }

// SamplerConfig returns the sampler the texture was created with.
func (t *Texture) SamplerConfig() Sampler { return t.sampler }

// Sample samples the texture at (u, v) per the configured sampler.
// Coordinates are in texture space: (0,0) is the top-left corner,
// (1,1) the bottom-right. Total on all inputs.
func (t *Texture) Sample(u, v float32) Color {
	switch t.sampler.Filter {
	case FilterModeNearest:
		x := t.resolveTexel(u, t.w, t.sampler.AddressModeU)
		y := t.resolveTexel(v, t.h, t.sampler.AddressModeV)
		return t.texel(x, y)
	default:
		return t.sampleLinear(u, v)
	}
}

// sampleLinear blends the four texels around the sample point with
// texel-center alignment (coordinate 0.5/w hits texel 0 exactly).
func (t *Texture) sampleLinear(u, v float32) Color {
	fx := u*float32(t.w) - 0.5
	fy := v*float32(t.h) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	tx := fx - x0
	ty := fy - y0

	ix0 := wrapTexel(int(x0), t.w, t.sampler.AddressModeU)
	ix1 := wrapTexel(int(x0)+1, t.w, t.sampler.AddressModeU)
	iy0 := wrapTexel(int(y0), t.h, t.sampler.AddressModeV)
	iy1 := wrapTexel(int(y0)+1, t.h, t.sampler.AddressModeV)

	top := t.texel(ix0, iy0).Lerp(t.texel(ix1, iy0), tx)
	bot := t.texel(ix0, iy1).Lerp(t.texel(ix1, iy1), tx)
	return top.Lerp(bot, ty)
}

func (t *Texture) resolveTexel(coord float32, size int, mode AddressMode) int {
	return wrapTexel(int(math32.Floor(coord*float32(size))), size, mode)
}

func wrapTexel(i, size int, mode AddressMode) int {
	if mode == AddressModeRepeat {
		i %= size
		if i < 0 {
			i += size
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

func (t *Texture) texel(x, y int) Color {
	off := t.pix.PixOffset(x, y)
	p := t.pix.Pix[off : off+4 : off+4]
	return Color{
		R: float32(p[0]) / 255,
		G: float32(p[1]) / 255,
		B: float32(p[2]) / 255,
		A: float32(p[3]) / 255,
	}
}
