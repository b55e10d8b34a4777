package gear

import (
	"math"

	"fluxgear/domain/core"
)

// Config is one named operating regime: nutrient-uptake bounds plus the
// plasmid-burden fraction permanently removed from biomass capacity.
// Configs are immutable after construction and read-only during a sweep.
type Config struct {
	Name string `json:"name"`
	// GlucoseUptakeBound is the glucose-exchange lower bound; negative,
	// magnitude = maximum uptake rate (mmol/gDW/h).
	GlucoseUptakeBound float64 `json:"glucose_uptake_bound"`
	// OxygenUptakeBound is the oxygen-exchange lower bound; negative.
	OxygenUptakeBound float64 `json:"oxygen_uptake_bound"`
	// PlasmidBurden is the biomass-capacity fraction lost to plasmid
	// maintenance, in [0, 1).
	PlasmidBurden float64 `json:"plasmid_burden"`
}

// GlucoseMagnitude returns the maximum glucose uptake rate.
func (c Config) GlucoseMagnitude() float64 {
	return math.Abs(c.GlucoseUptakeBound)
}

// Validate rejects configs the sweep must never run with. Violations are
// fatal at construction time; the sweep never starts.
func (c Config) Validate() error {
	if c.Name == "" {
		return core.NewGearConfigError(c.Name, "name is required")
	}
	if c.GlucoseUptakeBound >= 0 {
		return core.NewGearConfigError(c.Name, "glucose uptake bound must be negative")
	}
	if c.OxygenUptakeBound >= 0 {
		return core.NewGearConfigError(c.Name, "oxygen uptake bound must be negative")
	}
	if c.PlasmidBurden < 0 || c.PlasmidBurden >= 1 {
		return core.NewGearConfigError(c.Name, "plasmid burden must be in [0, 1)")
	}
	return nil
}

// ValidateAll validates an ordered registry, failing on the first bad entry.
func ValidateAll(gears []Config) error {
	for _, g := range gears {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultGears returns the five-gear registry, in sweep order. Gear 1 is the
// baseline for fold-change comparisons.
func DefaultGears() []Config {
	return []Config{
		{Name: "Gear 1", GlucoseUptakeBound: -10.0, OxygenUptakeBound: -18.0, PlasmidBurden: 0.0},
		{Name: "Gear 2", GlucoseUptakeBound: -30.0, OxygenUptakeBound: -30.0, PlasmidBurden: 0.05},
		{Name: "Gear 3", GlucoseUptakeBound: -80.0, OxygenUptakeBound: -60.0, PlasmidBurden: 0.12},
		{Name: "Gear 4", GlucoseUptakeBound: -150.0, OxygenUptakeBound: -100.0, PlasmidBurden: 0.18},
		{Name: "Gear 5", GlucoseUptakeBound: -250.0, OxygenUptakeBound: -150.0, PlasmidBurden: 0.25},
	}
}
