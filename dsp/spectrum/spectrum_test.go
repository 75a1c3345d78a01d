package spectrum

import (
	"math"
	"testing"
)

func TestMagnitude(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, 0), complex(-1, 0)}
	got := Magnitude(in)
	want := []float64{5, 0, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("mag[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if Magnitude(nil) != nil {
		t.Error("empty input should return nil")
	}
}

func TestPower(t *testing.T) {
	in := []complex128{complex(3, 4), complex(2, 0)}
	got := Power(in)
	want := []float64{25, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("power[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMagnitudeDB(t *testing.T) {
	in := []complex128{complex(10, 0), complex(1, 0), complex(0, 0)}
	got := MagnitudeDB(in)
	if math.Abs(got[0]-20) > 1e-12 {
		t.Errorf("dB[0] = %v, want 20", got[0])
	}
	if math.Abs(got[1]) > 1e-12 {
		t.Errorf("dB[1] = %v, want 0", got[1])
	}
	if !math.IsInf(got[2], -1) {
		t.Errorf("dB[2] = %v, want -Inf", got[2])
	}
}

func TestMagnitudeReusesScratch(t *testing.T) {
	// Exercise the pool path twice with different sizes.
	a := make([]complex128, 64)
	b := make([]complex128, 128)
	for i := range a {
		a[i] = complex(1, 1)
	}
	for i := range b {
		b[i] = complex(1, -1)
	}
	for _, in := range [][]complex128{a, b, a} {
		got := Magnitude(in)
		for i, v := range got {
			if math.Abs(v-math.Sqrt2) > 1e-12 {
				t.Fatalf("mag[%d] = %v, want sqrt(2)", i, v)
			}
		}
	}
}
