package source

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/interp"
	"github.com/cwbudde/algo-compose/dsp/signal"
	"github.com/cwbudde/algo-compose/dsp/window"
)

// spectrumFrameSize is the synthesis frame length. 2048 bins resolve the
// envelope down to ~23 Hz at 48 kHz while keeping frames short enough for
// sub-second durations.
const spectrumFrameSize = 2048

// Spectrum plays back a magnitude spectrum as a stationary signal: each
// synthesis frame fills the FFT bins from the envelope with random phase,
// and 50%-overlapped Hann frames are added into the output. The random
// phase stream is seeded, so generation is deterministic.
type Spectrum struct {
	Points   []SpectrumPoint `yaml:"points"`
	Duration float64         `yaml:"duration"` // seconds
	Seed     int64           `yaml:"seed"`
}

// Type returns TypeSpectrum.
func (s *Spectrum) Type() Type { return TypeSpectrum }

// Generate renders the spectrum at the given sample rate.
func (s *Spectrum) Generate(sampleRate float64) (signal.Signal, error) {
	if err := validateTiming(sampleRate, s.Duration); err != nil {
		return signal.Signal{}, err
	}
	if len(s.Points) < 2 {
		return signal.Signal{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(s.Points))
	}

	frame := spectrumFrameSize
	samples := numSamples(s.Duration, sampleRate)

	plan, err := algofft.NewPlan64(frame)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("source: failed to create FFT plan: %w", err)
	}

	// Per-bin target amplitudes from the envelope. A bin carrying linear
	// amplitude A needs |X[k]| = A*N/2 after the normalized inverse FFT.
	half := frame / 2
	amps := make([]float64, half+1)
	s.binAmplitudes(amps, sampleRate)
	for k := range amps {
		amps[k] *= float64(frame) / 2
	}

	rng := rand.New(rand.NewSource(s.Seed))
	coeffs := window.Hann(frame, window.WithPeriodic())
	out := make([]float64, samples)
	bins := make([]complex128, frame)

	hop := frame / 2
	for start := -hop; start < samples; start += hop {
		bins[0] = complex(amps[0], 0)
		bins[half] = complex(amps[half], 0)
		for k := 1; k < half; k++ {
			phase := rng.Float64() * 2 * math.Pi
			bins[k] = complex(amps[k]*math.Cos(phase), amps[k]*math.Sin(phase))
			bins[frame-k] = complex(real(bins[k]), -imag(bins[k]))
		}
		if err := plan.Inverse(bins, bins); err != nil {
			return signal.Signal{}, fmt.Errorf("source: inverse FFT failed: %w", err)
		}

		for i := range frame {
			pos := start + i
			if pos < 0 || pos >= samples {
				continue
			}
			out[pos] += real(bins[i]) * coeffs[i]
		}
	}

	return signal.New(out, sampleRate), nil
}

// binAmplitudes fills dst with linear amplitudes for each FFT bin of a
// half-spectrum, interpolating the envelope in dB. Bins outside the
// envelope's frequency span are silent.
func (s *Spectrum) binAmplitudes(dst []float64, sampleRate float64) {
	pts := make([]SpectrumPoint, len(s.Points))
	copy(pts, s.Points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Frequency < pts[j].Frequency })

	n := len(dst)
	nyquist := sampleRate / 2
	seg := 0
	for k := range dst {
		freq := float64(k) * nyquist / float64(n-1)
		if freq < pts[0].Frequency || freq > pts[len(pts)-1].Frequency {
			dst[k] = 0
			continue
		}
		for seg < len(pts)-2 && pts[seg+1].Frequency < freq {
			seg++
		}
		lo, hi := pts[seg], pts[seg+1]
		span := hi.Frequency - lo.Frequency
		db := hi.Magnitude
		if span > 0 {
			db = interp.Linear2((freq-lo.Frequency)/span, lo.Magnitude, hi.Magnitude)
		}
		dst[k] = core.DBToLinear(db)
	}
}
