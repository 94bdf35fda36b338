// Package settings describes the user-tunable parameters of the sketch.
//
// Values are owned by the settings panel; the animation pipeline only reads
// them. Each parameter carries a descriptor with its valid range so the panel
// can clamp and step values before they reach the pipeline.
package settings

import (
	"fmt"
	"math"
)

// Parameter names, as shown in the panel and used in config snapshots.
const (
	Progress             = "progress"
	BloomThreshold       = "bloomThreshold"
	BloomStrength        = "bloomStrength"
	BloomRadius          = "bloomRadius"
	AberrationMaxDistort = "aberrationMaxDistort"
)

// Settings is a snapshot of every tunable parameter.
type Settings struct {
	Progress             float64
	BloomThreshold       float64
	BloomStrength        float64
	BloomRadius          float64
	AberrationMaxDistort float64
}

// Descriptor defines the valid range and slider step of one parameter.
type Descriptor struct {
	Name    string
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	get     func(*Settings) *float64
}

var descriptors = []Descriptor{
	{Name: Progress, Label: "Progress", Min: 0, Max: 1, Step: 0.01, Default: 0,
		get: func(s *Settings) *float64 { return &s.Progress }},
	{Name: BloomThreshold, Label: "Bloom threshold", Min: 0, Max: 2, Step: 0.001, Default: 0.1,
		get: func(s *Settings) *float64 { return &s.BloomThreshold }},
	{Name: BloomStrength, Label: "Bloom strength", Min: 0, Max: 2, Step: 0.01, Default: 0.9,
		get: func(s *Settings) *float64 { return &s.BloomStrength }},
	{Name: BloomRadius, Label: "Bloom radius", Min: 0, Max: 2, Step: 0.01, Default: 0.01,
		get: func(s *Settings) *float64 { return &s.BloomRadius }},
	{Name: AberrationMaxDistort, Label: "Aberration", Min: 0, Max: 50, Step: 0.01, Default: 1.4,
		get: func(s *Settings) *float64 { return &s.AberrationMaxDistort }},
}

// Descriptors returns the parameter descriptors in panel order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Lookup returns the descriptor for a parameter name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Defaults returns the initial settings.
func Defaults() Settings {
	var s Settings
	for _, d := range descriptors {
		*d.get(&s) = d.Default
	}
	return s
}

// Clamp restricts v to the descriptor range. NaN maps to the default.
func (d Descriptor) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}
	return math.Max(d.Min, math.Min(d.Max, v))
}

// Snap rounds v to the nearest slider step, then clamps it.
func (d Descriptor) Snap(v float64) float64 {
	if d.Step > 0 && !math.IsNaN(v) {
		v = d.Min + math.Round((v-d.Min)/d.Step)*d.Step
	}
	return d.Clamp(v)
}

// Get returns the value of a named parameter.
func (s Settings) Get(name string) (float64, error) {
	d, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("unknown setting %q", name)
	}
	return *d.get(&s), nil
}

// Set assigns a named parameter, clamped to its range.
func (s *Settings) Set(name string, v float64) error {
	d, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown setting %q", name)
	}
	*d.get(s) = d.Clamp(v)
	return nil
}

// Clamp returns a copy with every parameter clamped to its range.
func Clamp(s Settings) Settings {
	for _, d := range descriptors {
		p := d.get(&s)
		*p = d.Clamp(*p)
	}
	return s
}

// Map returns the settings keyed by parameter name.
func (s Settings) Map() map[string]float64 {
	m := make(map[string]float64, len(descriptors))
	for _, d := range descriptors {
		m[d.Name] = *d.get(&s)
	}
	return m
}
