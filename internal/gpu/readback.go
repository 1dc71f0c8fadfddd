//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pick2d"
)

// PickMap is the CPU-side copy of a pick attachment: one virtual entity
// index per pixel, row-major. Zero means no entity covered the pixel.
type PickMap struct {
	width  int
	height int
	data   []uint32
}

// Width returns the map width in pixels.
func (m *PickMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *PickMap) Height() int { return m.height }

// IndexAt returns the virtual entity index at (x, y). Out-of-bounds
// coordinates return zero, same as an uncovered pixel.
func (m *PickMap) IndexAt(x, y int) uint32 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return pick2d.NoEntity
	}
	return m.data[y*m.width+x]
}

// EntityAt returns the entity index at (x, y) and whether any entity
// covered the pixel.
func (m *PickMap) EntityAt(x, y int) (uint32, bool) {
	return pick2d.ResolveVirtualIndex(m.IndexAt(x, y))
}

// DecodePickRows decodes an R32Uint readback with aligned row pitch into
// a PickMap. data must hold at least pitch*h bytes.
func DecodePickRows(data []byte, w, h, pitch int) *PickMap {
	m := &PickMap{
		width:  w,
		height: h,
		data:   make([]uint32, w*h),
	}
	for y := 0; y < h; y++ {
		row := data[y*pitch:]
		for x := 0; x < w; x++ {
			m.data[y*w+x] = binary.LittleEndian.Uint32(row[x*4:])
		}
	}
	return m
}

// DepthMap is the CPU-side copy of a depth attachment: the depth value of
// each pixel's last writer, row-major. Uncovered pixels keep the clear
// value of 1.
type DepthMap struct {
	width  int
	height int
	data   []float32
}

// Width returns the map width in pixels.
func (m *DepthMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *DepthMap) Height() int { return m.height }

// DepthAt returns the depth value at (x, y). Out-of-bounds coordinates
// return 1, same as an uncovered pixel.
func (m *DepthMap) DepthAt(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 1
	}
	return m.data[y*m.width+x]
}

// DecodeDepthRows decodes a Depth32Float readback with aligned row pitch
// into a DepthMap. data must hold at least pitch*h bytes.
func DecodeDepthRows(data []byte, w, h, pitch int) *DepthMap {
	m := &DepthMap{
		width:  w,
		height: h,
		data:   make([]float32, w*h),
	}
	for y := 0; y < h; y++ {
		row := data[y*pitch:]
		for x := 0; x < w; x++ {
			m.data[y*w+x] = math.Float32frombits(binary.LittleEndian.Uint32(row[x*4:]))
		}
	}
	return m
}

// DecodeLegacyPickRows decodes an RGBA16Float readback, 8 bytes per
// pixel, into a PickMap. This is the compatibility path for picking
// attachments that pack the index split across the R, G, and B float
// channels instead of using an R32Uint attachment.
func DecodeLegacyPickRows(data []byte, w, h, pitch int) *PickMap {
	m := &PickMap{
		width:  w,
		height: h,
		data:   make([]uint32, w*h),
	}
	for y := 0; y < h; y++ {
		row := data[y*pitch:]
		for x := 0; x < w; x++ {
			px := row[x*8:]
			r := binary.LittleEndian.Uint16(px[0:2])
			g := binary.LittleEndian.Uint16(px[2:4])
			b := binary.LittleEndian.Uint16(px[4:6])
			m.data[y*w+x] = decodeLegacyPickPixel(r, g, b)
		}
	}
	return m
}

// decodeLegacyPickPixel reassembles a virtual entity index from three
// half-float channels holding the low 8, middle 12, and high 12 bits as
// whole numbers. Channels are rounded to the nearest integer before
// recombining; interpolation never touches these values but float
// storage can.
func decodeLegacyPickPixel(r, g, b uint16) uint32 {
	low := uint32(math.RoundToEven(float64(float16ToFloat32(r))))
	mid := uint32(math.RoundToEven(float64(float16ToFloat32(g))))
	high := uint32(math.RoundToEven(float64(float16ToFloat32(b))))
	return (low & 0xFF) | (mid&0xFFF)<<8 | (high&0xFFF)<<20
}
