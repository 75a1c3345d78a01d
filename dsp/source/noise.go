package source

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/filter/design/minphase"
	"github.com/cwbudde/algo-compose/dsp/filter/fir"
	"github.com/cwbudde/algo-compose/dsp/signal"
)

// noiseShapingTaps is the kernel length used to imprint the spectrum
// envelope on the noise.
const noiseShapingTaps = 128

// Noise generates broadband noise. With an empty envelope the noise is
// white; otherwise it is shaped by a minimum-phase FIR designed from the
// envelope. The sample stream is seeded, so generation is deterministic.
type Noise struct {
	Envelope []SpectrumPoint `yaml:"envelope,omitempty"` // shaping curve, dB vs Hz
	LevelDB  float64         `yaml:"level"`              // broadband level in dB
	Duration float64         `yaml:"duration"`           // seconds
	Seed     int64           `yaml:"seed"`
}

// Type returns TypeNoise.
func (n *Noise) Type() Type { return TypeNoise }

// Generate renders the noise at the given sample rate.
func (n *Noise) Generate(sampleRate float64) (signal.Signal, error) {
	if err := validateTiming(sampleRate, n.Duration); err != nil {
		return signal.Signal{}, err
	}

	out := n.raw(sampleRate)
	if len(n.Envelope) > 0 {
		if len(n.Envelope) < 2 {
			return signal.Signal{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(n.Envelope))
		}
		curve := make([]minphase.Point, len(n.Envelope))
		for i, p := range n.Envelope {
			curve[i] = minphase.Point{Frequency: p.Frequency, Magnitude: p.Magnitude}
		}
		kernel, err := minphase.FIR(curve, sampleRate, minphase.WithTapCount(noiseShapingTaps))
		if err != nil {
			return signal.Signal{}, fmt.Errorf("source: envelope design failed: %w", err)
		}
		fir.New(kernel).ProcessBlock(out)
	}

	return signal.New(out, sampleRate), nil
}

// raw produces the unshaped seeded noise at the broadband level.
func (n *Noise) raw(sampleRate float64) []float64 {
	amp := core.DBToLinear(n.LevelDB)
	rng := rand.New(rand.NewSource(n.Seed))
	out := make([]float64, numSamples(n.Duration, sampleRate))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amp
	}
	return out
}

// NoiseControl is the noise variant with a level control: the broadband
// level in dB follows a control curve over time.
type NoiseControl struct {
	Envelope []SpectrumPoint `yaml:"envelope,omitempty"`
	LevelDB  float64         `yaml:"level"`
	Duration float64         `yaml:"duration"`
	Seed     int64           `yaml:"seed"`

	// Control is persisted as the record's separate control blob, not as
	// part of the source parameters.
	Control ControlCurve `yaml:"-"`
}

// Type returns TypeNoiseControl.
func (n *NoiseControl) Type() Type { return TypeNoiseControl }

// Generate renders the controlled noise at the given sample rate.
func (n *NoiseControl) Generate(sampleRate float64) (signal.Signal, error) {
	if len(n.Control) == 0 {
		return signal.Signal{}, ErrEmptyControl
	}

	base := Noise{
		Envelope: n.Envelope,
		LevelDB:  n.LevelDB,
		Duration: n.Duration,
		Seed:     n.Seed,
	}
	out, err := base.Generate(sampleRate)
	if err != nil {
		return signal.Signal{}, err
	}

	for i := range out.Data {
		t := float64(i) / sampleRate
		out.Data[i] *= core.DBToLinear(n.Control.ValueAt(t))
	}
	return out, nil
}
