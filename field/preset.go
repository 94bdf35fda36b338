package field

import (
	"fmt"
	"sort"
)

// Preset names.
const (
	PresetDNA         = "dna"
	PresetDNAOriginal = "dna-original"
	PresetEscalator   = "escalator"
	PresetMolecule    = "molecule"
)

// presets maps names to (column angle step, radius step).
// Height step and vertical offset are shared by every preset.
var presets = map[string][2]float64{
	PresetDNA:         {0.002, 0.06},
	PresetDNAOriginal: {0.002, 0.03},
	PresetEscalator:   {0.01, 0.09}, // strange spiral escalator
	PresetMolecule:    {0.1, 0.3},   // round, molecule-like
}

// PresetByName returns the params for a named preset.
// An empty name selects the default preset.
func PresetByName(name string) (Params, error) {
	if name == "" {
		name = PresetDNA
	}
	steps, ok := presets[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfiguration, name)
	}
	p := DefaultParams()
	p.ColumnAngleStep = steps[0]
	p.RadiusStep = steps[1]
	return p, nil
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithOverrides returns p with every non-nil override applied. Zero is a
// valid override; nil keeps the preset value.
func (p Params) WithOverrides(columnAngleStep, radiusStep, heightStep, verticalOffset *float64) Params {
	if columnAngleStep != nil {
		p.ColumnAngleStep = *columnAngleStep
	}
	if radiusStep != nil {
		p.RadiusStep = *radiusStep
	}
	if heightStep != nil {
		p.HeightStep = *heightStep
	}
	if verticalOffset != nil {
		p.VerticalOffset = *verticalOffset
	}
	return p
}
