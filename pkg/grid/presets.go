package grid

import (
	"fmt"
	"sort"
)

// A Preset is a named Julia constant together with a region that frames it.
type Preset struct {
	C      complex128
	Region Region
}

var square = Region{XMin: -1.5, XMax: 1.5, YMin: -1.5, YMax: 1.5}

// Classic Julia sets.
var Presets = map[string]Preset{
	// Dendrite – c = i, a tree of branches with no interior
	"dendrite": {C: 1i, Region: square},

	// Douady rabbit – three-lobed interior repeated along the boundary
	"rabbit": {C: complex(-0.123, 0.745), Region: square},

	// Siegel disk – rotation domain around an irrational neutral fixed point
	"siegel": {C: complex(-0.390541, -0.586788), Region: square},

	// San Marco – the basilica, c = -3/4
	"san-marco": {C: -0.75, Region: Region{XMin: -1.8, XMax: 1.8, YMin: -1.2, YMax: 1.2}},

	// Dragon – spiralling filaments near the main cardioid cusp
	"dragon": {C: complex(0.360284, 0.100376), Region: square},
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (known: %v)", name, PresetNames())
	}
	return p, nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
