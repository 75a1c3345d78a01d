// Command composeinfo renders a composition project and prints per-track
// and aggregate signal statistics.
//
// Usage:
//
//	composeinfo [flags] project.yaml
//
// Examples:
//
//	composeinfo project.yaml
//	composeinfo -fs 44100 project.yaml
//	composeinfo -tracks project.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-compose/compose"
	"github.com/cwbudde/algo-compose/dsp/core"
	"github.com/cwbudde/algo-compose/dsp/signal"
)

func main() {
	fs := flag.Float64("fs", core.DefaultSampleRate, "processing sample rate in Hz")
	tracksOnly := flag.Bool("tracks", false, "list the track configuration without rendering")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: composeinfo [flags] project.yaml\n\n")
		fmt.Fprintf(os.Stderr, "Renders a composition project and prints signal statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  composeinfo project.yaml\n")
		fmt.Fprintf(os.Stderr, "  composeinfo -fs 44100 project.yaml\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	project, err := compose.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Project: %s (%d tracks)\n\n", project.Name(), len(project.Tracks()))

	if *tracksOnly {
		printConfiguration(project)
		return
	}

	if err := project.Process(*fs); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printStatistics(project, *fs)
}

func printConfiguration(project *compose.Composer) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Track\tSource\tGain [dB]\tFilter\n")
	fmt.Fprintf(tw, "-----\t------\t---------\t------\n")

	for _, t := range project.Tracks() {
		srcName := "(none)"
		if src := t.Source(); src != nil {
			srcName = src.Type().String()
		}
		filterDesc := "-"
		if m := t.Filter(); m != nil {
			b, _ := m.Coefficients()
			filterDesc = fmt.Sprintf("%d taps @ %g Hz", len(b), m.SampleRate())
		}
		fmt.Fprintf(tw, "%s\t%s\t%+.2f\t%s\n", t.Name(), srcName, t.GainDB(), filterDesc)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printStatistics(project *compose.Composer, fs float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Track\tSource\tSamples\tDuration [s]\tPeak [dB]\tRMS [dB]\n")
	fmt.Fprintf(tw, "-----\t------\t-------\t------------\t---------\t--------\n")

	for _, t := range project.Tracks() {
		out, ok := t.Output()
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.3f\t%.2f\t%.2f\n",
			t.Name(),
			t.Source().Type(),
			out.Len(),
			out.Duration(),
			core.LinearToDB(out.Peak()),
			core.LinearToDB(out.RMS()),
		)
	}

	if mix, ok := project.Output(); ok {
		fmt.Fprintf(tw, "\t\t\t\t\t\n")
		fmt.Fprintf(tw, "mix @ %g Hz\t\t%d\t%.3f\t%.2f\t%.2f\n",
			fs, mix.Len(), mix.Duration(),
			core.LinearToDB(mix.Peak()),
			core.LinearToDB(mix.RMS()),
		)
		warnClipping(mix)
	} else {
		fmt.Fprintf(tw, "(no output: project has no tracks)\n")
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func warnClipping(mix signal.Signal) {
	if mix.Peak() > 1 {
		fmt.Fprintf(os.Stderr, "warning: mix peaks above full scale (%.2f dB)\n",
			core.LinearToDB(mix.Peak()))
	}
}
