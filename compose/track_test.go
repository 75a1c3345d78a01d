package compose

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-compose/dsp/filter/model"
	"github.com/cwbudde/algo-compose/dsp/source"
)

func TestTrackProcessWithoutSource(t *testing.T) {
	tr := NewTrack("empty")
	if err := tr.Process(48000); !errors.Is(err, ErrNoSource) {
		t.Fatalf("Process() error = %v, want ErrNoSource", err)
	}
	if _, ok := tr.Output(); ok {
		t.Fatal("Output() ok = true after failed Process")
	}
}

func TestTrackOutputBeforeProcess(t *testing.T) {
	tr := NewTrack("pending")
	tr.SetSource(&source.Clip{Data: []float64{1, 0, -1}, Rate: 48000})
	if _, ok := tr.Output(); ok {
		t.Fatal("Output() ok = true before Process")
	}
}

func TestTrackIdentity(t *testing.T) {
	data := []float64{0.25, -0.5, 0.75, -1}
	tr := NewTrack("pass")
	tr.SetSource(&source.Clip{Data: data, Rate: 48000})

	if err := tr.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out, ok := tr.Output()
	if !ok {
		t.Fatal("Output() ok = false after Process")
	}
	if out.SampleRate != 48000 {
		t.Fatalf("SampleRate = %g, want 48000", out.SampleRate)
	}
	for i, want := range data {
		if out.Data[i] != want {
			t.Fatalf("Data[%d] = %g, want %g", i, out.Data[i], want)
		}
	}
}

func TestTrackGain(t *testing.T) {
	tr := NewTrack("quiet")
	tr.SetSource(&source.Harmonics{
		Fundamental: 1000,
		Partials:    []source.Partial{{Ratio: 1, Amplitude: 1}},
		Duration:    0.1,
	})
	tr.SetGainDB(-6)

	if err := tr.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out, _ := tr.Output()

	peak := 0.0
	for _, v := range out.Data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	want := math.Pow(10, -6.0/20) // ~0.5012
	if math.Abs(peak-want) > 1e-3 {
		t.Fatalf("peak = %g, want about %g", peak, want)
	}
}

func TestTrackFilterRateMismatch(t *testing.T) {
	m, err := model.New(44100, model.WithCoefficients([]float64{1}, []float64{1}))
	if err != nil {
		t.Fatalf("model.New() error = %v", err)
	}

	tr := NewTrack("mismatched")
	tr.SetSource(&source.Clip{Data: []float64{1}, Rate: 48000})
	tr.SetFilter(m)

	if err := tr.Process(48000); !errors.Is(err, ErrFilterRate) {
		t.Fatalf("Process() error = %v, want ErrFilterRate", err)
	}
}

func TestTrackFilterApplied(t *testing.T) {
	// Two-tap averager halves a unit impulse across two samples.
	m, err := model.New(48000, model.WithCoefficients([]float64{0.5, 0.5}, []float64{1}))
	if err != nil {
		t.Fatalf("model.New() error = %v", err)
	}

	tr := NewTrack("filtered")
	tr.SetSource(&source.Clip{Data: []float64{1, 0, 0, 0}, Rate: 48000})
	tr.SetFilter(m)

	if err := tr.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out, _ := tr.Output()

	want := []float64{0.5, 0.5, 0, 0}
	for i, w := range want {
		if math.Abs(out.Data[i]-w) > 1e-15 {
			t.Fatalf("Data[%d] = %g, want %g", i, out.Data[i], w)
		}
	}
}

func TestTrackSettersInvalidate(t *testing.T) {
	tr := NewTrack("stale")
	tr.SetSource(&source.Clip{Data: []float64{1}, Rate: 48000})
	if err := tr.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, ok := tr.Output(); !ok {
		t.Fatal("Output() ok = false after Process")
	}

	tr.SetGainDB(-3)
	if _, ok := tr.Output(); ok {
		t.Fatal("Output() ok = true after SetGainDB")
	}
}
