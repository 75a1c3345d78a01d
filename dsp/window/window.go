package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeKaiser
)

var errMismatchedLength = errors.New("window: samples and coefficients length mismatch")

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 1}
}

// WithAlpha configures the alpha/beta parameter for parametric windows
// (the beta of the Kaiser window).
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic configures periodic form (FFT framing) instead of the
// symmetric form. Overlap-add synthesis wants the periodic form so that
// 50%-overlapped Hann frames sum to a constant.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) []float64 {
	return Generate(TypeHann, size, opts...)
}

// Hamming returns Hamming window coefficients.
func Hamming(size int, opts ...Option) []float64 {
	return Generate(TypeHamming, size, opts...)
}

// Blackman returns Blackman window coefficients.
func Blackman(size int, opts ...Option) []float64 {
	return Generate(TypeBlackman, size, opts...)
}

// Kaiser returns Kaiser window coefficients with shape parameter beta.
func Kaiser(size int, beta float64, opts ...Option) []float64 {
	return Generate(TypeKaiser, size, append(opts, WithAlpha(beta))...)
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// samplePosition maps index i to normalized position x in [0, 1].
// Symmetric windows place the last sample at exactly 1; periodic windows
// behave as if one sample longer, so frame n and frame n+length tile.
func samplePosition(i, length int, periodic bool) float64 {
	denom := length - 1
	if periodic {
		denom = length
	}
	if denom <= 0 {
		return 0
	}
	return float64(i) / float64(denom)
}

func evalWindow(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	case TypeKaiser:
		r := 2*x - 1
		arg := 1 - r*r
		if arg < 0 {
			arg = 0
		}
		return besselI0(cfg.alpha*math.Sqrt(arg)) / besselI0(cfg.alpha)
	default:
		return 1
	}
}

// besselI0 computes the zeroth-order modified Bessel function of the first
// kind via its power series. Converges quickly for the beta range used by
// Kaiser windows.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2

	for k := 1; k < 64; k++ {
		term *= (half / float64(k)) * (half / float64(k))
		sum += term
		if term < 1e-21*sum {
			break
		}
	}

	return sum
}
