package compose

import (
	"fmt"

	"github.com/cwbudde/algo-compose/dsp/signal"
)

// Composer owns an ordered list of tracks and produces their summed
// signal. The track order is fixed by insertion: summation is
// mathematically commutative, but float rounding is not, so a stable
// order keeps repeated renders bit-identical.
type Composer struct {
	name   string
	tracks []*Track

	output    signal.Signal
	processed bool
}

// NewComposer creates an empty project with a display name.
func NewComposer(name string) *Composer {
	return &Composer{name: name}
}

// Name returns the project name.
func (c *Composer) Name() string { return c.name }

// SetName changes the project name.
func (c *Composer) SetName(name string) { c.name = name }

// Tracks returns the tracks in insertion order. The slice is a copy; the
// tracks themselves are shared.
func (c *Composer) Tracks() []*Track {
	out := make([]*Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// AddTrack appends a track. Duplicate names are allowed.
func (c *Composer) AddTrack(t *Track) {
	c.tracks = append(c.tracks, t)
	c.invalidate()
}

// Process renders every track at the given sample rate, in insertion
// order, and stores the element-wise sum. An empty project is not an
// error: the output simply becomes absent, which Output reports via
// ok=false.
func (c *Composer) Process(sampleRate float64) error {
	c.invalidate()
	if len(c.tracks) == 0 {
		return nil
	}

	parts := make([]signal.Signal, len(c.tracks))
	for i, t := range c.tracks {
		if err := t.Process(sampleRate); err != nil {
			return err
		}
		out, _ := t.Output()
		parts[i] = out
	}

	sum, err := signal.Sum(parts)
	if err != nil {
		return fmt.Errorf("compose: summing tracks: %w", err)
	}

	c.output = sum
	c.processed = true
	return nil
}

// Output returns the last aggregate signal. ok is false before the first
// successful Process call, after the track list changes, and after
// processing an empty project.
func (c *Composer) Output() (signal.Signal, bool) {
	if !c.processed {
		return signal.Signal{}, false
	}
	return c.output, true
}

// OutputSamples returns the raw samples of the last aggregate signal, for
// presentation layers that only consume arrays.
func (c *Composer) OutputSamples() ([]float64, bool) {
	out, ok := c.Output()
	return out.Data, ok
}

func (c *Composer) invalidate() {
	c.output = signal.Signal{}
	c.processed = false
}
