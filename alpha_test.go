package pick2d

import "testing"

func TestQuantizeAlphaBoundary(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.0, 0.0},
		{0.0001, 1.0},
		{0.5, 1.0},
		{0.999, 1.0},
		{1.0, 1.0},
	}
	for _, tt := range tests {
		if got := QuantizeAlpha(tt.in); got != tt.want {
			t.Errorf("QuantizeAlpha(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuantizeAlphaIdempotent(t *testing.T) {
	for _, a := range []float32{0, 1e-6, 0.25, 0.5, 0.75, 1} {
		once := QuantizeAlpha(a)
		if twice := QuantizeAlpha(once); twice != once {
			t.Errorf("QuantizeAlpha(QuantizeAlpha(%v)) = %v, want %v", a, twice, once)
		}
	}
}

func TestQuantizeAlphaClampsOutOfRange(t *testing.T) {
	if got := QuantizeAlpha(2.5); got != 1 {
		t.Errorf("QuantizeAlpha(2.5) = %v, want 1", got)
	}
	if got := QuantizeAlpha(-0.5); got != 0 {
		t.Errorf("QuantizeAlpha(-0.5) = %v, want 0", got)
	}
}
