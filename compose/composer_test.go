package compose

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-compose/dsp/source"
)

func clipTrack(name string, data []float64) *Track {
	tr := NewTrack(name)
	tr.SetSource(&source.Clip{Data: data, Rate: 48000})
	return tr
}

func TestComposerEmptyProcess(t *testing.T) {
	c := NewComposer("empty")
	if err := c.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, ok := c.Output(); ok {
		t.Fatal("Output() ok = true for empty project")
	}
	if _, ok := c.OutputSamples(); ok {
		t.Fatal("OutputSamples() ok = true for empty project")
	}
}

func TestComposerSingleTrackIdentity(t *testing.T) {
	data := []float64{0.1, -0.2, 0.3}
	c := NewComposer("solo")
	c.AddTrack(clipTrack("only", data))

	if err := c.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out, ok := c.Output()
	if !ok {
		t.Fatal("Output() ok = false after Process")
	}
	for i, want := range data {
		if out.Data[i] != want {
			t.Fatalf("Data[%d] = %g, want %g", i, out.Data[i], want)
		}
	}
}

func TestComposerSum(t *testing.T) {
	c := NewComposer("mix")
	c.AddTrack(clipTrack("a", []float64{1, 2, 3}))
	c.AddTrack(clipTrack("b", []float64{10, 20, 30}))

	if err := c.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	out, _ := c.Output()

	want := []float64{11, 22, 33}
	for i, w := range want {
		if out.Data[i] != w {
			t.Fatalf("Data[%d] = %g, want %g", i, out.Data[i], w)
		}
	}
}

func TestComposerProcessDeterministic(t *testing.T) {
	c := NewComposer("stable")
	for i, gain := range []float64{0, -3.3, 2.7} {
		tr := NewTrack("noise")
		tr.SetSource(&source.Noise{LevelDB: 0, Duration: 0.05, Seed: int64(i + 1)})
		tr.SetGainDB(gain)
		c.AddTrack(tr)
	}

	if err := c.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	first, _ := c.Output()
	firstCopy := append([]float64(nil), first.Data...)

	if err := c.Process(48000); err != nil {
		t.Fatalf("second Process() error = %v", err)
	}
	second, _ := c.Output()

	if len(second.Data) != len(firstCopy) {
		t.Fatalf("len = %d, want %d", len(second.Data), len(firstCopy))
	}
	for i := range firstCopy {
		if second.Data[i] != firstCopy[i] {
			t.Fatalf("Data[%d] differs between runs: %g vs %g", i, second.Data[i], firstCopy[i])
		}
	}
}

func TestComposerTrackFailureStopsProcess(t *testing.T) {
	c := NewComposer("broken")
	c.AddTrack(clipTrack("good", []float64{1}))
	c.AddTrack(NewTrack("sourceless"))

	if err := c.Process(48000); !errors.Is(err, ErrNoSource) {
		t.Fatalf("Process() error = %v, want ErrNoSource", err)
	}
	if _, ok := c.Output(); ok {
		t.Fatal("Output() ok = true after failed Process")
	}
}

func TestComposerAddTrackInvalidates(t *testing.T) {
	c := NewComposer("growing")
	c.AddTrack(clipTrack("a", []float64{1}))
	if err := c.Process(48000); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, ok := c.Output(); !ok {
		t.Fatal("Output() ok = false after Process")
	}

	c.AddTrack(clipTrack("b", []float64{2}))
	if _, ok := c.Output(); ok {
		t.Fatal("Output() ok = true after AddTrack")
	}
}

func TestComposerTracksCopy(t *testing.T) {
	c := NewComposer("guarded")
	c.AddTrack(clipTrack("a", []float64{1}))

	got := c.Tracks()
	got[0] = nil
	if c.Tracks()[0] == nil {
		t.Fatal("mutating the returned slice reached the composer")
	}
}

func TestComposerUnequalTrackLengths(t *testing.T) {
	c := NewComposer("uneven")
	c.AddTrack(clipTrack("short", []float64{1, 1}))
	c.AddTrack(clipTrack("long", []float64{1, 1, 1, 1}))

	if err := c.Process(48000); err == nil {
		t.Fatal("Process() error = nil for tracks of different lengths")
	}
	if _, ok := c.Output(); ok {
		t.Fatal("Output() ok = true after failed Process")
	}
}
