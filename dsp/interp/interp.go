package interp

// Linear2 interpolates linearly between x0 and x1 at fraction t in [0, 1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// At reads samples at fractional position pos using Hermite interpolation,
// clamping neighbor lookups at the slice edges. Positions outside the
// sample range return 0.
func At(samples []float64, pos float64) float64 {
	n := len(samples)
	if n == 0 || pos < 0 || pos > float64(n-1) {
		return 0
	}

	i := int(pos)
	frac := pos - float64(i)
	if frac == 0 {
		return samples[i]
	}

	xm1 := samples[clampIndex(i-1, n)]
	x0 := samples[i]
	x1 := samples[clampIndex(i+1, n)]
	x2 := samples[clampIndex(i+2, n)]

	return Hermite4(frac, xm1, x0, x1, x2)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
