package minphase

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/interp"
	"github.com/cwbudde/algo-compose/dsp/spectrum"
)

// Errors returned by the designer.
var (
	ErrTooFewPoints  = errors.New("minphase: curve needs at least 2 points")
	ErrInvalidRate   = errors.New("minphase: sample rate must be > 0")
	ErrEmptyKernel   = errors.New("minphase: empty kernel")
	ErrInvalidPoints = errors.New("minphase: invalid points requested")
)

// floorDB is the magnitude floor substituted for zero (or padded) bins so
// the cepstral logarithm stays finite.
const floorDB = -200.0

// Point is one frequency/magnitude sample of a target curve.
type Point struct {
	Frequency float64 // Hz
	Magnitude float64 // dB
}

// Option configures the designer.
type Option func(*config)

type config struct {
	taps    int
	fftSize int
}

func defaultConfig() config {
	return config{taps: 256}
}

// WithTapCount sets the designed kernel length. The default of 256 taps
// resolves magnitude features down to roughly fs/256 Hz.
func WithTapCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.taps = n
		}
	}
}

// WithFFTSize overrides the internal FFT size. It is rounded up to a power
// of two and never below 8x the tap count.
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fftSize = n
		}
	}
}

// FIR designs a causal, stable, minimum-phase FIR kernel whose magnitude
// response follows the given curve at the given sample rate.
//
// The curve is interpreted as in the filter model: values above Nyquist are
// truncated, the gap between the last point and Nyquist is padded with
// (linear) zero magnitude, and the first value is held down to DC. The
// phase is the unique minimum-phase response for that magnitude, recovered
// by folding the real cepstrum of the log-magnitude spectrum.
func FIR(curve []Point, sampleRate float64, opts ...Option) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, sampleRate)
	}
	if len(curve) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(curve))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fftSize := cfg.fftSize
	if fftSize < 8*cfg.taps {
		fftSize = 8 * cfg.taps
	}
	if fftSize < 1024 {
		fftSize = 1024
	}
	fftSize = nextPowerOf2(fftSize)

	half := fftSize / 2
	logMag := make([]float64, half+1)
	gridDB(logMag, curve, sampleRate)
	for k, db := range logMag {
		// ln|H| from dB: ln(10^(db/20)).
		logMag[k] = db * math.Ln10 / 20
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("minphase: failed to create FFT plan: %w", err)
	}

	// Hermitian-symmetric log-magnitude spectrum.
	buf := make([]complex128, fftSize)
	for k := 0; k <= half; k++ {
		buf[k] = complex(logMag[k], 0)
	}
	for k := 1; k < half; k++ {
		buf[fftSize-k] = buf[k]
	}

	// Real cepstrum of the target magnitude.
	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("minphase: inverse FFT failed: %w", err)
	}

	// Fold the anti-causal half onto the causal half. This is the
	// homomorphic construction: exp(FFT(folded cepstrum)) has the same
	// magnitude and minimum phase.
	buf[0] = complex(real(buf[0]), 0)
	for k := 1; k < half; k++ {
		buf[k] = complex(2*real(buf[k]), 0)
	}
	buf[half] = complex(real(buf[half]), 0)
	for k := half + 1; k < fftSize; k++ {
		buf[k] = 0
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("minphase: forward FFT failed: %w", err)
	}
	for k := range buf {
		buf[k] = cmplx.Exp(buf[k])
	}
	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("minphase: inverse FFT failed: %w", err)
	}

	h := make([]float64, cfg.taps)
	for i := range h {
		h[i] = real(buf[i])
	}
	return h, nil
}

// ResponseDB evaluates the magnitude response of kernel h in dB on a
// uniform grid of n points spanning 0 to Nyquist, inclusive. It is the
// measurement counterpart of [FIR], used to validate a design against its
// target curve.
func ResponseDB(h []float64, n int, sampleRate float64) ([]Point, error) {
	if len(h) == 0 {
		return nil, ErrEmptyKernel
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPoints, n)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, sampleRate)
	}

	fftSize := nextPowerOf2(max(len(h), 2*(n-1), 1024))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("minphase: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, fftSize)
	for i, v := range h {
		buf[i] = complex(v, 0)
	}
	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("minphase: forward FFT failed: %w", err)
	}

	half := fftSize / 2
	mags := spectrum.Magnitude(buf[:half+1])

	nyquist := sampleRate / 2
	out := make([]Point, n)
	for i := range out {
		freq := float64(i) * nyquist / float64(n-1)
		pos := float64(i) * float64(half) / float64(n-1)
		bin := int(pos)
		var mag float64
		if bin >= half {
			mag = mags[half]
		} else {
			mag = interp.Linear2(pos-float64(bin), mags[bin], mags[bin+1])
		}
		out[i] = Point{Frequency: freq, Magnitude: core.LinearToDB(math.Max(mag, 0))}
	}
	return out, nil
}

// gridDB fills dst with the curve's magnitude in dB on a uniform grid of
// len(dst) bins spanning 0 to Nyquist. The curve is sorted by frequency
// first; bins below the curve hold its first value, bins above it sit at
// the floor.
func gridDB(dst []float64, curve []Point, sampleRate float64) {
	pts := make([]Point, len(curve))
	copy(pts, curve)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Frequency < pts[j].Frequency })
	for i := range pts {
		// Deep nulls come in as -Inf dB; pin them to the floor so the
		// interpolation below stays finite.
		if !(pts[i].Magnitude > floorDB) {
			pts[i].Magnitude = floorDB
		}
	}

	nyquist := sampleRate / 2
	n := len(dst)
	seg := 0
	for k := range dst {
		freq := float64(k) * nyquist / float64(n-1)
		switch {
		case freq <= pts[0].Frequency:
			dst[k] = pts[0].Magnitude
		case freq > pts[len(pts)-1].Frequency:
			dst[k] = floorDB
		default:
			for seg < len(pts)-2 && pts[seg+1].Frequency < freq {
				seg++
			}
			lo, hi := pts[seg], pts[seg+1]
			span := hi.Frequency - lo.Frequency
			if span <= 0 {
				dst[k] = hi.Magnitude
				continue
			}
			t := (freq - lo.Frequency) / span
			dst[k] = interp.Linear2(t, lo.Magnitude, hi.Magnitude)
		}
		if dst[k] < floorDB {
			dst[k] = floorDB
		}
	}
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
