//go:build !nogpu

package gpu

import "math"

// float16ToFloat32 converts an IEEE 754 half-precision bit pattern to
// float32. Subnormals, infinities, and NaN are handled; the legacy pick
// decode only ever sees small whole numbers, which are exact in half
// precision up to 2048.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	var bits uint32
	switch {
	case exp == 0 && frac == 0:
		// Signed zero.
		bits = sign << 31
	case exp == 0:
		// Subnormal: normalize into float32 range.
		e := uint32(127 - 15 + 1)
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3FF
		bits = sign<<31 | e<<23 | frac<<13
	case exp == 0x1F:
		// Infinity or NaN.
		bits = sign<<31 | 0xFF<<23 | frac<<13
	default:
		bits = sign<<31 | (exp+127-15)<<23 | frac<<13
	}
	return math.Float32frombits(bits)
}
