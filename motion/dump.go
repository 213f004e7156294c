package motion

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/echoji/field"
)

// Timeline is the exported keyframe document for a whole field
type Timeline struct {
	Alignment *field.Point    `yaml:"alignment,omitempty"`
	Glyphs    []TimelineGlyph `yaml:"glyphs"`
}

// TimelineGlyph pairs an instance's resting state with its plan
type TimelineGlyph struct {
	Shape   string  `yaml:"shape"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Scale   float64 `yaml:"scale"`
	Opacity float64 `yaml:"opacity"`
	Plan    Plan    `yaml:"plan,inline"`
}

// BuildTimeline plans every instance in a snapshot
func BuildTimeline(snap field.Snapshot) Timeline {
	tl := Timeline{Glyphs: make([]TimelineGlyph, 0, snap.Len())}
	if snap.Alignment.Active {
		t := snap.Alignment.Target
		tl.Alignment = &t
	}
	for _, inst := range snap.Instances {
		tl.Glyphs = append(tl.Glyphs, TimelineGlyph{
			Shape:   inst.Shape.Data(),
			X:       inst.X,
			Y:       inst.Y,
			Scale:   inst.Scale,
			Opacity: inst.Opacity,
			Plan:    NewPlan(inst),
		})
	}
	return tl
}

// WriteYAML encodes the timeline
func WriteYAML(w io.Writer, tl Timeline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tl); err != nil {
		return fmt.Errorf("encode timeline: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush timeline: %w", err)
	}
	return nil
}
