package pick2d

import (
	"image"
	"image/color"
	"testing"
)

// checkerImage returns a 2x2 image: red, green / blue, white.
func checkerImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestTextureSampleNearest(t *testing.T) {
	tex := NewTexture(checkerImage(), Sampler{Filter: FilterModeNearest})

	tests := []struct {
		u, v float32
		want Color
	}{
		{0.25, 0.25, RGB(1, 0, 0)},
		{0.75, 0.25, RGB(0, 1, 0)},
		{0.25, 0.75, RGB(0, 0, 1)},
		{0.75, 0.75, RGB(1, 1, 1)},
	}
	for _, tt := range tests {
		if got := tex.Sample(tt.u, tt.v); got != tt.want {
			t.Errorf("Sample(%v, %v) = %+v, want %+v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestTextureSampleLinearCenter(t *testing.T) {
	tex := NewTexture(checkerImage(), Sampler{Filter: FilterModeLinear})

	// Dead center blends all four texels equally.
	got := tex.Sample(0.5, 0.5)
	const eps = 1e-3
	wantR, wantG, wantB := float32(0.5), float32(0.5), float32(0.5)
	if diff(got.R, wantR) > eps || diff(got.G, wantG) > eps || diff(got.B, wantB) > eps {
		t.Errorf("center sample = %+v, want ~(0.5, 0.5, 0.5)", got)
	}
}

func TestTextureAddressModeClamp(t *testing.T) {
	tex := NewTexture(checkerImage(), Sampler{Filter: FilterModeNearest})

	// Out-of-range coordinates clamp to the edge texel.
	if got := tex.Sample(-1, -1); got != RGB(1, 0, 0) {
		t.Errorf("Sample(-1, -1) = %+v, want edge texel (1,0,0)", got)
	}
	if got := tex.Sample(2, 2); got != RGB(1, 1, 1) {
		t.Errorf("Sample(2, 2) = %+v, want edge texel (1,1,1)", got)
	}
}

func TestTextureAddressModeRepeat(t *testing.T) {
	tex := NewTexture(checkerImage(), Sampler{
		AddressModeU: AddressModeRepeat,
		AddressModeV: AddressModeRepeat,
		Filter:       FilterModeNearest,
	})

	if got := tex.Sample(1.25, 1.25); got != RGB(1, 0, 0) {
		t.Errorf("Sample(1.25, 1.25) = %+v, want wrapped (1,0,0)", got)
	}
	if got := tex.Sample(-0.75, 0.25); got != RGB(1, 0, 0) {
		t.Errorf("Sample(-0.75, 0.25) = %+v, want wrapped (1,0,0)", got)
	}
}

func TestUniformTexture(t *testing.T) {
	tex := NewUniformTexture(RGBA(0.25, 0.5, 0.75, 1))
	a, b := tex.Sample(0, 0), tex.Sample(0.9, 0.1)
	if a != b {
		t.Errorf("uniform texture varies: %+v vs %+v", a, b)
	}
}

func TestNewTextureScaled(t *testing.T) {
	tex := NewTextureScaled(checkerImage(), 4, 4, Sampler{Filter: FilterModeNearest})
	if tex.Width() != 4 || tex.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", tex.Width(), tex.Height())
	}
}

func diff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
