package source

import (
	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/interp"
	"github.com/cwbudde/algo-compose/dsp/signal"
)

// Clip replays stored audio samples. When the requested rate differs from
// the clip's native rate, the samples are resampled by cubic Hermite
// interpolation; the replayed duration stays the same.
type Clip struct {
	Data []float64 `yaml:"data,flow"`
	Rate float64   `yaml:"rate"` // native sample rate, Hz
}

// Type returns TypeClip.
func (c *Clip) Type() Type { return TypeClip }

// Generate replays the clip at the given sample rate.
func (c *Clip) Generate(sampleRate float64) (signal.Signal, error) {
	if sampleRate <= 0 || c.Rate <= 0 {
		return signal.Signal{}, ErrInvalidRate
	}
	if len(c.Data) == 0 {
		return signal.Signal{}, ErrEmptyClip
	}

	if core.SameRate(sampleRate, c.Rate) {
		return signal.New(core.CopyFloats(c.Data), sampleRate), nil
	}

	ratio := c.Rate / sampleRate
	out := make([]float64, numSamples(float64(len(c.Data))/c.Rate, sampleRate))
	for i := range out {
		out[i] = interp.At(c.Data, float64(i)*ratio)
	}
	return signal.New(out, sampleRate), nil
}
