package pick2d

// Bit layout of a 32-bit entity identifier split across three numeric
// channels. A plain u32 cannot survive three 8-bit color channels, so the
// split trades channel count for headroom: 8 + 12 + 12 = 32 bits exactly,
// with the 8-bit field first for alignment with single-byte debug
// visualizations.
const (
	idLowBits  = 8
	idMidBits  = 12
	idHighBits = 12

	idLowMask  = 1<<idLowBits - 1
	idMidMask  = 1<<idMidBits - 1
	idHighMask = 1<<idHighBits - 1

	idMidShift  = idLowBits
	idHighShift = idLowBits + idMidBits
)

// NoEntity is the picking-channel value meaning "no draw covered this
// pixel". Picking targets clear to it, and it is why identifiers travel as
// virtual indices (identifier + 1) on the wire.
const NoEntity uint32 = 0

// PackIDVec3 splits a 32-bit entity identifier into three float channels:
// bits 0-7 in low, 8-19 in mid, 20-31 in high. Each channel holds the
// field's integer value cast to float32, unnormalized; the consuming
// target must carry enough numeric precision for the raw values. Total on
// all inputs, no rounding or clamping.
func PackIDVec3(id uint32) (low, mid, high float32) {
	low = float32(id & idLowMask)
	mid = float32((id >> idMidShift) & idMidMask)
	high = float32((id >> idHighShift) & idHighMask)
	return low, mid, high
}

// UnpackIDVec3 is the exact mirror of [PackIDVec3]. For every 32-bit
// value, UnpackIDVec3(PackIDVec3(id)) == id.
func UnpackIDVec3(low, mid, high float32) uint32 {
	return uint32(low)&idLowMask |
		(uint32(mid)&idMidMask)<<idMidShift |
		(uint32(high)&idHighMask)<<idHighShift
}

// VirtualIndex converts an entity identifier to its on-the-wire form.
// The shift past zero keeps [NoEntity] unambiguous: a cleared picking
// pixel can never collide with entity 0.
func VirtualIndex(id uint32) uint32 { return id + 1 }

// ResolveVirtualIndex inverts [VirtualIndex]. The second return is false
// when the pixel held [NoEntity].
func ResolveVirtualIndex(v uint32) (uint32, bool) {
	if v == NoEntity {
		return 0, false
	}
	return v - 1, true
}
