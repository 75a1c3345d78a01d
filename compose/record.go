package compose

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-compose/dsp/filter/model"
	"github.com/cwbudde/algo-compose/dsp/source"
)

// sourceTypeNone tags a track record without a source.
const sourceTypeNone = -1

type projectRecord struct {
	Name   string   `yaml:"name"`
	Tracks []*Track `yaml:"tracks"`
}

type trackRecord struct {
	Name       string        `yaml:"name"`
	GainDB     float64       `yaml:"gain"`
	SourceType int           `yaml:"sourcetype"`
	Source     yaml.Node     `yaml:"source,omitempty"`
	Control    yaml.Node     `yaml:"control,omitempty"`
	Filter     *filterRecord `yaml:"filter,omitempty"`
}

type filterRecord struct {
	SampleRate float64      `yaml:"samplerate"`
	Response   []curvePoint `yaml:"response"`
}

type curvePoint struct {
	Frequency float64 `yaml:"frequency"`
	Magnitude float64 `yaml:"magnitude"`
}

// harmonicsControls is the control-blob layout of the swept-harmonics
// source: two curves, fundamental frequency and level.
type harmonicsControls struct {
	Frequency source.ControlCurve `yaml:"frequency"`
	Level     source.ControlCurve `yaml:"level,omitempty"`
}

// MarshalYAML encodes the track as its persistence record: name, gain,
// source type tag, source-parameter blob, control blob, and the filter's
// response curve when a filter is set.
func (t *Track) MarshalYAML() (any, error) {
	rec := trackRecord{
		Name:       t.name,
		GainDB:     t.gainDB,
		SourceType: sourceTypeNone,
	}

	if t.source != nil {
		rec.SourceType = int(t.source.Type())

		params := &yaml.Node{}
		if err := params.Encode(t.source); err != nil {
			return nil, fmt.Errorf("compose: encode source parameters: %w", err)
		}
		rec.Source = *params

		ctrl, err := controlBlob(t.source)
		if err != nil {
			return nil, err
		}
		if ctrl != nil {
			rec.Control = *ctrl
		}
	}

	if t.filter != nil {
		points := t.filter.Response()
		fr := &filterRecord{
			SampleRate: t.filter.SampleRate(),
			Response:   make([]curvePoint, len(points)),
		}
		for i, p := range points {
			fr.Response[i] = curvePoint{Frequency: p.Frequency, Magnitude: p.Magnitude}
		}
		rec.Filter = fr
	}

	return rec, nil
}

// UnmarshalYAML restores a track from its persistence record.
func (t *Track) UnmarshalYAML(node *yaml.Node) error {
	var rec trackRecord
	if err := node.Decode(&rec); err != nil {
		return err
	}

	t.name = rec.Name
	t.gainDB = rec.GainDB
	t.source = nil
	t.filter = nil
	t.invalidate()

	if rec.SourceType != sourceTypeNone {
		src, err := source.New(source.Type(rec.SourceType))
		if err != nil {
			return fmt.Errorf("compose: track %q: %w", rec.Name, err)
		}
		if !rec.Source.IsZero() {
			if err := rec.Source.Decode(src); err != nil {
				return fmt.Errorf("compose: track %q: decode source parameters: %w", rec.Name, err)
			}
		}
		if !rec.Control.IsZero() {
			if err := decodeControl(src, &rec.Control); err != nil {
				return fmt.Errorf("compose: track %q: decode source control: %w", rec.Name, err)
			}
		}
		t.source = src
	}

	if rec.Filter != nil {
		points := make([]model.Point, len(rec.Filter.Response))
		for i, p := range rec.Filter.Response {
			points[i] = model.Point{Frequency: p.Frequency, Magnitude: p.Magnitude}
		}
		m, err := model.New(rec.Filter.SampleRate, model.WithResponse(points))
		if err != nil {
			return fmt.Errorf("compose: track %q: restore filter: %w", rec.Name, err)
		}
		t.filter = m
	}

	return nil
}

// controlBlob extracts the control curves of the two-control variants into
// their own record node; plain variants have none.
func controlBlob(src source.Source) (*yaml.Node, error) {
	var v any
	switch s := src.(type) {
	case *source.NoiseControl:
		v = s.Control
	case *source.HarmonicsControl:
		v = harmonicsControls{Frequency: s.Frequency, Level: s.Level}
	default:
		return nil, nil
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("compose: encode source control: %w", err)
	}
	return node, nil
}

func decodeControl(src source.Source, node *yaml.Node) error {
	switch s := src.(type) {
	case *source.NoiseControl:
		return node.Decode(&s.Control)
	case *source.HarmonicsControl:
		var ctrl harmonicsControls
		if err := node.Decode(&ctrl); err != nil {
			return err
		}
		s.Frequency = ctrl.Frequency
		s.Level = ctrl.Level
		return nil
	default:
		return nil
	}
}

// Save writes the project (name plus the ordered track records) to path.
func (c *Composer) Save(path string) error {
	data, err := yaml.Marshal(projectRecord{Name: c.name, Tracks: c.tracks})
	if err != nil {
		return fmt.Errorf("compose: marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("compose: write project: %w", err)
	}
	return nil
}

// Load reads a project from path. A file holding zero track records loads
// cleanly into an empty composer.
func Load(path string) (*Composer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compose: read project: %w", err)
	}

	var rec projectRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("compose: parse project: %w", err)
	}

	return &Composer{name: rec.Name, tracks: rec.Tracks}, nil
}
