package window

import (
	"math"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64} {
		if got := len(Generate(TypeHann, n)); got != n {
			t.Errorf("len(Generate(Hann, %d)) = %d", n, got)
		}
	}
	if Generate(TypeHann, 0) != nil {
		t.Error("zero length should return nil")
	}
}

func TestRectangular(t *testing.T) {
	for i, v := range Generate(TypeRectangular, 8) {
		if v != 1 {
			t.Errorf("coeff[%d] = %v, want 1", i, v)
		}
	}
}

func TestHannSymmetric(t *testing.T) {
	w := Hann(9)
	if math.Abs(w[0]) > 1e-15 || math.Abs(w[8]) > 1e-15 {
		t.Errorf("symmetric Hann endpoints: %v, %v", w[0], w[8])
	}
	if math.Abs(w[4]-1) > 1e-15 {
		t.Errorf("symmetric Hann center = %v, want 1", w[4])
	}
	for i := range w {
		if math.Abs(w[i]-w[8-i]) > 1e-15 {
			t.Errorf("Hann not symmetric at %d", i)
		}
	}
}

func TestPeriodicHannOverlapAdd(t *testing.T) {
	// 50%-overlapped periodic Hann frames must tile to a constant.
	const n = 64
	w := Hann(n, WithPeriodic())
	for i := range n / 2 {
		sum := w[i] + w[i+n/2]
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("overlap sum at %d = %v, want 1", i, sum)
		}
	}
}

func TestHammingEndpoints(t *testing.T) {
	w := Hamming(11)
	if math.Abs(w[0]-0.08) > 1e-12 {
		t.Errorf("Hamming edge = %v, want 0.08", w[0])
	}
}

func TestKaiserShape(t *testing.T) {
	w := Kaiser(33, 8.6)
	if math.Abs(w[16]-1) > 1e-12 {
		t.Errorf("Kaiser center = %v, want 1", w[16])
	}
	if w[0] >= w[8] || w[8] >= w[16] {
		t.Error("Kaiser should increase monotonically toward the center")
	}
	// beta = 0 degenerates to rectangular.
	for i, v := range Kaiser(8, 0) {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("Kaiser(beta=0)[%d] = %v, want 1", i, v)
		}
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{0.5, 0.5, 0.5}
	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatalf("ApplyCoefficients: %v", err)
	}
	want := []float64{0.5, 1, 1.5}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	if _, err := ApplyCoefficients(samples, coeffs[:2]); err == nil {
		t.Error("length mismatch should error")
	}
}
