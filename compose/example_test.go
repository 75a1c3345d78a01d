package compose_test

import (
	"fmt"

	"github.com/cwbudde/algo-compose/compose"
	"github.com/cwbudde/algo-compose/dsp/source"
)

func ExampleComposer() {
	tone := compose.NewTrack("tone")
	tone.SetSource(&source.Harmonics{
		Fundamental: 1000,
		Partials:    []source.Partial{{Ratio: 1, Amplitude: 0.5}},
		Duration:    0.25,
	})

	c := compose.NewComposer("demo")
	c.AddTrack(tone)

	if err := c.Process(48000); err != nil {
		fmt.Println("process:", err)
		return
	}
	out, ok := c.Output()
	fmt.Printf("ok=%v samples=%d rate=%g\n", ok, out.Len(), out.SampleRate)
	// Output:
	// ok=true samples=12000 rate=48000
}

func ExampleTrack_Output() {
	tr := compose.NewTrack("pending")
	if _, ok := tr.Output(); !ok {
		fmt.Println("not processed yet")
	}
	// Output:
	// not processed yet
}
