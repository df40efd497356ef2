package config

import (
	"sort"

	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/sigil"
)

// Presets maps preset names to render parameters.
var Presets = map[string]sigil.Params{
	"classic": sigil.DefaultParams(),
	"flower": {
		Layers: 5, Iterations: 50, SacredGeometry: true,
		Theme: palette.ThemeWarm, FieldSize: sigil.DefaultFieldSize,
	},
	"abyss": {
		Layers: 2, Iterations: 200, Fractal: true, Particles: true,
		Theme: palette.ThemeCool, FieldSize: sigil.DefaultFieldSize,
	},
	"orbit": {
		Layers: 3, Iterations: 50, Parametric: true, Relativity: true, Particles: true,
		Theme: palette.ThemeRandom, FieldSize: sigil.DefaultFieldSize,
	},
	"ghost": {
		Layers: 4, Iterations: 80, SacredGeometry: true, Fractal: true, Relativity: true,
		Theme: palette.ThemeMonochrome, FieldSize: sigil.DefaultFieldSize,
	},
}

// GetPreset returns the default config with the named preset's parameters,
// or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
