package pick2d

import "testing"

func TestPackIDVec3Fields(t *testing.T) {
	tests := []struct {
		id             uint32
		low, mid, high float32
	}{
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{255, 255, 0, 0},
		{256, 0, 1, 0},
		{0x00100000, 0, 0, 1},
		{0x00ABCDEF, 0xEF, 0xBCD, 0x00A},
		{0xFFFFFFFF, 255, 4095, 4095},
	}
	for _, tt := range tests {
		low, mid, high := PackIDVec3(tt.id)
		if low != tt.low || mid != tt.mid || high != tt.high {
			t.Errorf("PackIDVec3(%#x) = (%v, %v, %v), want (%v, %v, %v)",
				tt.id, low, mid, high, tt.low, tt.mid, tt.high)
		}
	}
}

func TestPackIDVec3RoundTrip(t *testing.T) {
	ids := []uint32{
		0, 1, 2, 255, 256, 257, 4095, 4096,
		0x000FFFFF, 0x00100000, 0x00ABCDEF,
		0x7FFFFFFF, 0x80000000, 0xDEADBEEF, 0xFFFFFFFE, 0xFFFFFFFF,
	}
	for _, id := range ids {
		low, mid, high := PackIDVec3(id)
		if got := UnpackIDVec3(low, mid, high); got != id {
			t.Errorf("round trip of %#x = %#x", id, got)
		}
	}
}

func TestPackIDVec3RoundTripExhaustiveLowWords(t *testing.T) {
	// Sweep every value of the low 20 bits combined with a few high
	// fields; covers all low/mid boundaries without a 2^32 loop.
	for _, high := range []uint32{0, 1 << 20, 0xFFF00000} {
		for i := uint32(0); i < 1<<20; i += 7 {
			id := high | i
			low, mid, h := PackIDVec3(id)
			if got := UnpackIDVec3(low, mid, h); got != id {
				t.Fatalf("round trip of %#x = %#x", id, got)
			}
		}
	}
}

func TestVirtualIndex(t *testing.T) {
	if VirtualIndex(0) != 1 {
		t.Errorf("VirtualIndex(0) = %d, want 1", VirtualIndex(0))
	}
	if id, ok := ResolveVirtualIndex(VirtualIndex(41)); !ok || id != 41 {
		t.Errorf("ResolveVirtualIndex(VirtualIndex(41)) = (%d, %v)", id, ok)
	}
	if _, ok := ResolveVirtualIndex(NoEntity); ok {
		t.Error("ResolveVirtualIndex(NoEntity) reported an entity")
	}
}
