package source

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-compose/dsp/interp"
	"github.com/cwbudde/algo-compose/dsp/signal"
)

// Errors shared by the generator variants.
var (
	ErrInvalidRate     = errors.New("source: sample rate must be > 0")
	ErrInvalidDuration = errors.New("source: duration must be > 0")
	ErrTooFewPoints    = errors.New("source: spectrum needs at least 2 points")
	ErrNoPartials      = errors.New("source: harmonics need at least one partial")
	ErrEmptyClip       = errors.New("source: clip has no samples")
	ErrEmptyControl    = errors.New("source: control curve is empty")
	ErrUnknownType     = errors.New("source: unknown source type")
)

// Type tags a generator variant. The numeric values are fixed: they select
// the variant in project files.
type Type int

const (
	TypeSpectrum Type = iota
	TypeNoise
	TypeNoiseControl
	TypeHarmonics
	TypeHarmonicsControl
	TypeClip
)

// String returns a short display name for the variant.
func (t Type) String() string {
	switch t {
	case TypeSpectrum:
		return "spectrum"
	case TypeNoise:
		return "noise"
	case TypeNoiseControl:
		return "noise+control"
	case TypeHarmonics:
		return "harmonics"
	case TypeHarmonicsControl:
		return "harmonics+control"
	case TypeClip:
		return "clip"
	default:
		return "unknown"
	}
}

// Source produces a time-domain signal at a requested sample rate. Each
// call generates fresh samples; nothing is cached between rates.
type Source interface {
	Type() Type
	Generate(sampleRate float64) (signal.Signal, error)
}

// New returns an empty generator of the given variant, ready to be filled
// from a persistence record.
func New(t Type) (Source, error) {
	switch t {
	case TypeSpectrum:
		return &Spectrum{}, nil
	case TypeNoise:
		return &Noise{}, nil
	case TypeNoiseControl:
		return &NoiseControl{}, nil
	case TypeHarmonics:
		return &Harmonics{}, nil
	case TypeHarmonicsControl:
		return &HarmonicsControl{}, nil
	case TypeClip:
		return &Clip{}, nil
	default:
		return nil, ErrUnknownType
	}
}

// SpectrumPoint is one frequency/magnitude sample of a spectrum envelope.
type SpectrumPoint struct {
	Frequency float64 `yaml:"frequency"` // Hz
	Magnitude float64 `yaml:"magnitude"` // dB
}

// ControlPoint is one time/value sample of a control curve.
type ControlPoint struct {
	Time  float64 `yaml:"time"` // seconds
	Value float64 `yaml:"value"`
}

// ControlCurve maps time to a control value by linear interpolation,
// holding the edge values outside the curve's time span.
type ControlCurve []ControlPoint

// ValueAt evaluates the curve at time t (seconds).
func (c ControlCurve) ValueAt(t float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if t <= c[0].Time {
		return c[0].Value
	}
	last := c[len(c)-1]
	if t >= last.Time {
		return last.Value
	}

	i := sort.Search(len(c), func(i int) bool { return c[i].Time > t }) - 1
	lo, hi := c[i], c[i+1]
	span := hi.Time - lo.Time
	if span <= 0 {
		return hi.Value
	}
	return interp.Linear2((t-lo.Time)/span, lo.Value, hi.Value)
}

// numSamples converts a duration to a sample count at the given rate.
func numSamples(duration, sampleRate float64) int {
	return int(math.Round(duration * sampleRate))
}

// validateTiming checks the rate/duration pair common to all variants.
func validateTiming(sampleRate, duration float64) error {
	if sampleRate <= 0 {
		return ErrInvalidRate
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
