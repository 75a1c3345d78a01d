package compose

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/filter/model"
	"github.com/cwbudde/algo-compose/dsp/signal"
	"github.com/cwbudde/algo-compose/dsp/source"
)

// Errors returned by track processing.
var (
	ErrNoSource   = errors.New("compose: track has no source")
	ErrFilterRate = errors.New("compose: track filter sample rate mismatch")
)

// Track is one generation chain: a source, an optional filter, and a gain.
// Processing renders the source at the requested rate, runs it through the
// filter when one is set, scales it by the gain, and keeps the result
// until the next Process call.
type Track struct {
	name   string
	gainDB float64
	source source.Source
	filter *model.Model

	output    signal.Signal
	processed bool
}

// NewTrack creates an empty track with a display name.
func NewTrack(name string) *Track {
	return &Track{name: name}
}

// Name returns the display name.
func (t *Track) Name() string { return t.name }

// SetName changes the display name.
func (t *Track) SetName(name string) { t.name = name }

// GainDB returns the track gain in dB.
func (t *Track) GainDB() float64 { return t.gainDB }

// SetGainDB changes the track gain in dB.
func (t *Track) SetGainDB(gain float64) {
	t.gainDB = gain
	t.invalidate()
}

// Source returns the track's source, or nil.
func (t *Track) Source() source.Source { return t.source }

// SetSource replaces the track's source; nil removes it.
func (t *Track) SetSource(src source.Source) {
	t.source = src
	t.invalidate()
}

// Filter returns the track's filter model, or nil.
func (t *Track) Filter() *model.Model { return t.filter }

// SetFilter replaces the track's filter; nil removes it.
func (t *Track) SetFilter(m *model.Model) {
	t.filter = m
	t.invalidate()
}

// Process renders the track at the given sample rate. It fails when no
// source is set, or when a filter is set whose fixed rate does not match
// (compared at 0.1 Hz resolution).
func (t *Track) Process(sampleRate float64) error {
	if t.source == nil {
		return ErrNoSource
	}
	if t.filter != nil && !core.SameRate(t.filter.SampleRate(), sampleRate) {
		return fmt.Errorf("%w: filter at %g Hz, processing at %g Hz",
			ErrFilterRate, t.filter.SampleRate(), sampleRate)
	}

	out, err := t.source.Generate(sampleRate)
	if err != nil {
		return fmt.Errorf("compose: track %q: %w", t.name, err)
	}
	if t.filter != nil {
		out, err = t.filter.Filter(out)
		if err != nil {
			return fmt.Errorf("compose: track %q: %w", t.name, err)
		}
	}
	if t.gainDB != 0 {
		out = signal.ApplyGain(out, t.gainDB)
	}

	t.output = out
	t.processed = true
	return nil
}

// Output returns the last processed signal. ok is false before the first
// successful Process call and after any setter invalidates the result.
func (t *Track) Output() (signal.Signal, bool) {
	if !t.processed {
		return signal.Signal{}, false
	}
	return t.output, true
}

func (t *Track) invalidate() {
	t.output = signal.Signal{}
	t.processed = false
}
