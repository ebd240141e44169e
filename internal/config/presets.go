package config

import (
	"sort"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
)

var Presets = map[string]*Config{
	"idle": {
		RPM: 800, Dt: DefaultDt, Duration: 10.0,
		Geometry: engine.DefaultGeometry(),
		Bank:     BankConfig{Cylinders: 4, Offsets: OffsetsFiring},
	},
	"cruise": {
		RPM: 2200, Dt: DefaultDt, Duration: 5.0,
		Geometry: engine.DefaultGeometry(),
		Bank:     BankConfig{Cylinders: 4, Offsets: OffsetsFiring},
	},
	"redline": {
		RPM: 3500, Dt: 1.0 / 120.0, Duration: 3.0,
		Geometry: engine.DefaultGeometry(),
		Bank:     BankConfig{Cylinders: 4, Offsets: OffsetsFiring},
	},
	// Index-ordered offsets, the alternative table some variants of the
	// original demo shipped with.
	"wasted-spark": {
		RPM: 1500, Dt: DefaultDt, Duration: 5.0,
		Geometry: engine.DefaultGeometry(),
		Bank:     BankConfig{Cylinders: 4, Offsets: OffsetsIndex},
	},
	// Long-rod geometry: same stroke, flatter displacement curve.
	"long-rod": {
		RPM: 1000, Dt: DefaultDt, Duration: 5.0,
		Geometry: engine.Geometry{CrankRadius: 0.5, RodLength: 3.5, Bore: 0.5},
		Bank:     BankConfig{Cylinders: 4, Offsets: OffsetsFiring},
	},
}

// GetPreset returns a copy of the named preset, or nil. Callers may layer
// flag overrides on top without touching the table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
