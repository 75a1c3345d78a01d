package fir

import (
	"math"
	"math/cmplx"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNew(t *testing.T) {
	coeffs := []float64{0.25, 0.5, 0.25}
	f := New(coeffs)
	if f.Order() != 2 {
		t.Fatalf("Order: got %d, want 2", f.Order())
	}
	got := f.Coefficients()
	for i := range coeffs {
		if got[i] != coeffs[i] {
			t.Errorf("coeffs[%d]: got %v, want %v", i, got[i], coeffs[i])
		}
	}
	// Verify it's a copy.
	coeffs[0] = 999
	if f.coeffs[0] == 999 {
		t.Error("New did not copy coefficients")
	}
}

func TestProcessSample_Impulse(t *testing.T) {
	// Impulse response of FIR should equal the coefficients.
	coeffs := []float64{0.25, 0.5, 0.25}
	f := New(coeffs)

	for i, want := range coeffs {
		var x float64
		if i == 0 {
			x = 1
		}
		y := f.ProcessSample(x)
		if !almostEqual(y, want, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want)
		}
	}
	// After the impulse response, output should be zero.
	for i := range 5 {
		y := f.ProcessSample(0)
		if !almostEqual(y, 0, eps) {
			t.Errorf("post-IR sample %d: got %v, want 0", i, y)
		}
	}
}

func TestProcess_Impulse(t *testing.T) {
	f := New([]float64{0.5, 0.5})
	got := f.Process([]float64{1, 0, 0, 0})
	want := []float64{0.5, 0.5, 0, 0}
	for i := range want {
		if !almostEqual(got[i], want[i], eps) {
			t.Errorf("y[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProcess_ResetsState(t *testing.T) {
	f := New([]float64{1, 1})
	f.ProcessSample(7) // dirty the delay line
	got := f.Process([]float64{1, 0})
	if !almostEqual(got[0], 1, eps) || !almostEqual(got[1], 1, eps) {
		t.Errorf("got %v, want [1 1]", got)
	}
}

func TestProcessBlock_MovingAverage(t *testing.T) {
	f := New([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	buf := []float64{3, 3, 3, 3}
	f.ProcessBlock(buf)
	want := []float64{1, 2, 3, 3}
	for i := range want {
		if !almostEqual(buf[i], want[i], eps) {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestReset(t *testing.T) {
	f := New([]float64{1, 1, 1})
	f.ProcessSample(5)
	f.Reset()
	if y := f.ProcessSample(0); !almostEqual(y, 0, eps) {
		t.Errorf("after Reset: got %v, want 0", y)
	}
}

func TestResponse(t *testing.T) {
	// Moving average of 2: H(w) = (1 + e^{-jw})/2, |H(0)| = 1,
	// |H(Nyquist)| = 0.
	f := New([]float64{0.5, 0.5})
	if got := cmplx.Abs(f.Response(0, 48000)); !almostEqual(got, 1, eps) {
		t.Errorf("|H(0)| = %v, want 1", got)
	}
	if got := cmplx.Abs(f.Response(24000, 48000)); !almostEqual(got, 0, 1e-9) {
		t.Errorf("|H(Nyquist)| = %v, want 0", got)
	}
}

func TestMagnitudeDB(t *testing.T) {
	f := New([]float64{2})
	got := f.MagnitudeDB(1000, 48000)
	want := 20 * math.Log10(2)
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("MagnitudeDB = %v, want %v", got, want)
	}
}
