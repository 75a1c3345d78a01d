package source

import (
	"math"

	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/signal"
)

// Partial is one harmonic component, relative to the fundamental.
type Partial struct {
	Ratio     float64 `yaml:"ratio"`           // frequency multiple of the fundamental
	Amplitude float64 `yaml:"amplitude"`       // linear peak amplitude
	Phase     float64 `yaml:"phase,omitempty"` // radians
}

// Harmonics generates a sum of sinusoidal partials at a fixed fundamental.
// Partials that land at or above Nyquist for the requested rate are
// skipped rather than aliased.
type Harmonics struct {
	Fundamental float64   `yaml:"fundamental"` // Hz
	Partials    []Partial `yaml:"partials"`
	Duration    float64   `yaml:"duration"` // seconds
}

// Type returns TypeHarmonics.
func (h *Harmonics) Type() Type { return TypeHarmonics }

// Generate renders the harmonic stack at the given sample rate.
func (h *Harmonics) Generate(sampleRate float64) (signal.Signal, error) {
	if err := validateTiming(sampleRate, h.Duration); err != nil {
		return signal.Signal{}, err
	}
	if len(h.Partials) == 0 {
		return signal.Signal{}, ErrNoPartials
	}

	nyquist := sampleRate / 2
	out := make([]float64, numSamples(h.Duration, sampleRate))
	for _, p := range h.Partials {
		freq := h.Fundamental * p.Ratio
		if freq <= 0 || freq >= nyquist || p.Amplitude == 0 {
			continue
		}
		step := 2 * math.Pi * freq / sampleRate
		for i := range out {
			out[i] += p.Amplitude * math.Sin(step*float64(i)+p.Phase)
		}
	}
	return signal.New(out, sampleRate), nil
}

// HarmonicsControl is the harmonics variant with two controls: the
// fundamental frequency (Hz) and the overall level (dB) each follow a
// control curve over time. The phase accumulates per sample, so frequency
// sweeps stay continuous.
type HarmonicsControl struct {
	Partials []Partial `yaml:"partials"`
	Duration float64   `yaml:"duration"` // seconds

	// Frequency and Level are persisted as the record's separate control
	// blob, not as part of the source parameters.
	Frequency ControlCurve `yaml:"-"`
	Level     ControlCurve `yaml:"-"`
}

// Type returns TypeHarmonicsControl.
func (h *HarmonicsControl) Type() Type { return TypeHarmonicsControl }

// Generate renders the controlled harmonic stack at the given sample rate.
func (h *HarmonicsControl) Generate(sampleRate float64) (signal.Signal, error) {
	if err := validateTiming(sampleRate, h.Duration); err != nil {
		return signal.Signal{}, err
	}
	if len(h.Partials) == 0 {
		return signal.Signal{}, ErrNoPartials
	}
	if len(h.Frequency) == 0 {
		return signal.Signal{}, ErrEmptyControl
	}

	nyquist := sampleRate / 2
	out := make([]float64, numSamples(h.Duration, sampleRate))
	phases := make([]float64, len(h.Partials))
	for i := range phases {
		phases[i] = h.Partials[i].Phase
	}

	for i := range out {
		t := float64(i) / sampleRate
		fundamental := h.Frequency.ValueAt(t)
		gain := 1.0
		if len(h.Level) > 0 {
			gain = core.DBToLinear(h.Level.ValueAt(t))
		}

		var sample float64
		for j, p := range h.Partials {
			freq := fundamental * p.Ratio
			if freq > 0 && freq < nyquist && p.Amplitude != 0 {
				sample += p.Amplitude * math.Sin(phases[j])
			}
			phases[j] += 2 * math.Pi * freq / sampleRate
		}
		out[i] = sample * gain
	}
	return signal.New(out, sampleRate), nil
}
