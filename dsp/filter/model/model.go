package model

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/filter/design/minphase"
	"github.com/cwbudde/algo-compose/dsp/filter/fir"
	"github.com/cwbudde/algo-compose/dsp/signal"
)

// Errors returned by the filter model.
var (
	ErrMultipleDefinitions = errors.New("model: more than one filter definition supplied")
	ErrInvalidRate         = errors.New("model: sample rate must be > 0")
	ErrInvalidCoefficients = errors.New("model: leading denominator coefficient must not be zero")
	ErrTooFewPoints        = errors.New("model: response curve needs at least 2 points")
	ErrNoCoefficients      = errors.New("model: no coefficients defined")
	ErrRateMismatch        = errors.New("model: sample rate mismatch")
)

// Point is one frequency/magnitude sample of a response curve.
type Point = minphase.Point

// origin tracks which representation was written last. Derived writes go
// through the unexported setters below, so a public write never re-enters
// itself through the mirror side.
type origin int

const (
	originNone origin = iota
	originCoefficients
	originResponse
)

// Model keeps the two representations of a linear filter consistent: the
// rational transfer-function coefficients (b, a) and the magnitude response
// curve. Writing either representation rederives the other; clearing one
// clears both. The sample rate is fixed at construction.
type Model struct {
	sampleRate float64
	taps       int

	b        []float64
	a        []float64
	response []Point
	origin   origin
}

// Option configures model construction.
type Option func(*config)

type config struct {
	b, a     []float64
	response []Point
	path     string
	taps     int

	definitions int
}

// WithCoefficients defines the filter by transfer-function coefficients.
func WithCoefficients(b, a []float64) Option {
	return func(c *config) {
		c.b, c.a = b, a
		c.definitions++
	}
}

// WithResponse defines the filter by a magnitude response curve.
func WithResponse(points []Point) Option {
	return func(c *config) {
		c.response = points
		c.definitions++
	}
}

// WithResponseFile defines the filter from a legacy FRF text file.
func WithResponseFile(path string) Option {
	return func(c *config) {
		c.path = path
		c.definitions++
	}
}

// WithTapCount sets the kernel length used when deriving coefficients from
// a response curve.
func WithTapCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.taps = n
		}
	}
}

// New creates a filter model at the given fixed sample rate. At most one
// definition source (coefficients, response curve, or FRF file) may be
// supplied; an undefined model is valid and can be defined later through
// the setters.
func New(sampleRate float64, opts ...Option) (*Model, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, sampleRate)
	}

	cfg := config{taps: 256}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.definitions > 1 {
		return nil, fmt.Errorf("%w: got %d", ErrMultipleDefinitions, cfg.definitions)
	}

	m := &Model{sampleRate: sampleRate, taps: cfg.taps}

	switch {
	case cfg.b != nil || cfg.a != nil:
		if err := m.SetCoefficients(cfg.b, cfg.a); err != nil {
			return nil, err
		}
	case cfg.response != nil:
		if err := m.SetResponse(cfg.response); err != nil {
			return nil, err
		}
	case cfg.path != "":
		if err := m.LoadResponseFile(cfg.path); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// SampleRate returns the fixed sample rate the model was created at.
func (m *Model) SampleRate() float64 {
	return m.sampleRate
}

// Defined reports whether the model currently holds a filter definition.
func (m *Model) Defined() bool {
	return len(m.b) > 0 && len(m.a) > 0
}

// Coefficients returns copies of the numerator and denominator coefficients.
func (m *Model) Coefficients() (b, a []float64) {
	return core.CopyFloats(m.b), core.CopyFloats(m.a)
}

// Response returns a copy of the magnitude response curve.
func (m *Model) Response() []Point {
	if m.response == nil {
		return nil
	}
	out := make([]Point, len(m.response))
	copy(out, m.response)
	return out
}

// SetCoefficients stores the transfer-function coefficients and rederives
// the response curve from them. The denominator is normalized so a[0] = 1.
// An empty numerator or denominator clears both representations.
func (m *Model) SetCoefficients(b, a []float64) error {
	if len(b) == 0 || len(a) == 0 {
		m.clear()
		return nil
	}
	if a[0] == 0 {
		return ErrInvalidCoefficients
	}

	m.b = core.CopyFloats(b)
	m.a = core.CopyFloats(a)
	if a[0] != 1 {
		inv := 1 / a[0]
		for i := range m.b {
			m.b[i] *= inv
		}
		for i := range m.a {
			m.a[i] *= inv
		}
	}
	m.origin = originCoefficients
	m.deriveResponse()
	return nil
}

// SetResponse stores the magnitude response curve and rederives the
// coefficients as a minimum-phase FIR matching the curve (the denominator
// becomes [1]). An empty curve clears both representations; a single-point
// curve is rejected.
func (m *Model) SetResponse(points []Point) error {
	if len(points) == 0 {
		m.clear()
		return nil
	}
	if len(points) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	b, err := minphase.FIR(points, m.sampleRate, minphase.WithTapCount(m.taps))
	if err != nil {
		return fmt.Errorf("model: response design failed: %w", err)
	}

	m.response = make([]Point, len(points))
	copy(m.response, points)
	m.origin = originResponse
	m.setDerivedCoefficients(b, []float64{1})
	return nil
}

// LoadResponseFile reads a legacy FRF text file and applies its curve as
// with SetResponse.
func (m *Model) LoadResponseFile(path string) error {
	points, err := ReadFRF(path)
	if err != nil {
		return err
	}
	return m.SetResponse(points)
}

// Filter applies the difference equation
//
//	y[n] = sum_k b[k]*x[n-k] - sum_{k>=1} a[k]*y[n-k]
//
// to the input and returns a signal of the same length and rate. The input
// rate must match the model's rate and the model must be defined.
func (m *Model) Filter(in signal.Signal) (signal.Signal, error) {
	if !core.SameRate(in.SampleRate, m.sampleRate) {
		return signal.Signal{}, fmt.Errorf("%w: signal at %g Hz, filter at %g Hz",
			ErrRateMismatch, in.SampleRate, m.sampleRate)
	}
	if !m.Defined() {
		return signal.Signal{}, ErrNoCoefficients
	}

	if len(m.a) == 1 {
		// Pure FIR after normalization: run on the FIR runtime.
		out := fir.New(m.b).Process(in.Data)
		return signal.New(out, in.SampleRate), nil
	}

	out := make([]float64, len(in.Data))
	for n := range in.Data {
		var y float64
		for k, bk := range m.b {
			if n-k < 0 {
				break
			}
			y += bk * in.Data[n-k]
		}
		for k := 1; k < len(m.a); k++ {
			if n-k < 0 {
				break
			}
			y -= m.a[k] * out[n-k]
		}
		out[n] = y
	}
	return signal.New(out, in.SampleRate), nil
}

// clear drops both representations; the model returns to its undefined state.
func (m *Model) clear() {
	m.b = nil
	m.a = nil
	m.response = nil
	m.origin = originNone
}

// setDerivedCoefficients is the mirror-side write used when the response is
// authoritative. It bypasses SetCoefficients so no re-derivation triggers.
func (m *Model) setDerivedCoefficients(b, a []float64) {
	m.b = b
	m.a = a
}

// deriveResponse is the mirror-side write used when the coefficients are
// authoritative: it evaluates the rational transfer function's magnitude on
// a uniform grid spanning 0 to Nyquist, with max(len(b), 2) points so that
// every stored curve has at least two entries.
func (m *Model) deriveResponse() {
	n := max(len(m.b), 2)
	nyquist := m.sampleRate / 2

	points := make([]Point, n)
	for i := range points {
		freq := float64(i) * nyquist / float64(n-1)
		points[i] = Point{
			Frequency: freq,
			Magnitude: m.magnitudeDBAt(freq),
		}
	}
	m.response = points
}

// magnitudeDBAt evaluates |B(e^{-jw}) / A(e^{-jw})| in dB at the given
// frequency.
func (m *Model) magnitudeDBAt(freqHz float64) float64 {
	w := 2 * math.Pi * freqHz / m.sampleRate

	var num, den complex128
	for k, c := range m.b {
		num += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	for k, c := range m.a {
		den += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	if den == 0 {
		return math.Inf(1)
	}
	return core.LinearToDB(cmplx.Abs(num / den))
}
