package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-compose/dsp/core"
)

// Errors returned by signal operations.
var (
	ErrEmpty        = errors.New("signal: empty input")
	ErrRateMismatch = errors.New("signal: sample rate mismatch")
	ErrLenMismatch  = errors.New("signal: length mismatch")
)

// Signal is a block of samples together with the sample rate they were
// produced at. The time axis is implicit: sample i sits at i/SampleRate
// seconds. The zero value represents an absent signal.
type Signal struct {
	Data       []float64
	SampleRate float64
}

// New wraps data and sampleRate in a Signal. The data is not copied.
func New(data []float64, sampleRate float64) Signal {
	return Signal{Data: data, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.Data)
}

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Data)) / s.SampleRate
}

// IsZero reports whether the signal is absent (no samples and no rate).
func (s Signal) IsZero() bool {
	return s.Data == nil && s.SampleRate == 0
}

// Clone returns a deep copy of the signal.
func (s Signal) Clone() Signal {
	return Signal{Data: core.CopyFloats(s.Data), SampleRate: s.SampleRate}
}

// Peak returns the maximum absolute sample value.
func (s Signal) Peak() float64 {
	peak := 0.0
	for _, v := range s.Data {
		if av := math.Abs(v); av > peak {
			peak = av
		}
	}
	return peak
}

// RMS returns the root-mean-square sample value.
func (s Signal) RMS() float64 {
	if len(s.Data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s.Data)))
}

// ApplyGain scales the signal by 10^(gainDB/20) and returns a new signal.
// A gain of exactly 0 dB returns an unscaled copy.
func ApplyGain(s Signal, gainDB float64) Signal {
	out := s.Clone()
	if gainDB == 0 || len(out.Data) == 0 {
		return out
	}
	vecmath.ScaleBlockInPlace(out.Data, core.DBToLinear(gainDB))
	return out
}

// Sum adds the given signals element-wise, left to right, and returns the
// aggregate. All inputs must share length and sample rate; float rounding
// makes the result depend on the order, so callers that need reproducible
// output must pass a fixed order.
func Sum(signals []Signal) (Signal, error) {
	if len(signals) == 0 {
		return Signal{}, ErrEmpty
	}

	first := signals[0]
	for i, s := range signals[1:] {
		if !core.SameRate(s.SampleRate, first.SampleRate) {
			return Signal{}, fmt.Errorf("%w: signal %d has %g Hz, want %g Hz",
				ErrRateMismatch, i+1, s.SampleRate, first.SampleRate)
		}
		if s.Len() != first.Len() {
			return Signal{}, fmt.Errorf("%w: signal %d has %d samples, want %d",
				ErrLenMismatch, i+1, s.Len(), first.Len())
		}
	}

	out := first.Clone()
	for _, s := range signals[1:] {
		vecmath.AddBlockInPlace(out.Data, s.Data)
	}
	return out, nil
}
