package app

import (
	"fmt"
	"math"

	"fluxgear/domain/gear"
	"fluxgear/domain/sim"
	"fluxgear/domain/stress"
	"fluxgear/ports"
)

const (
	// biomassFloor keeps the adjusted biomass bound strictly positive even
	// when burden + penalty >= 1.
	biomassFloor = 0.001
	// maintenanceBase is the nominal ATP-maintenance demand the stress cost
	// is added on top of.
	maintenanceBase = 35.0
	// fermentationCeiling is the permissive secretion window opened for the
	// lactate and ethanol exchanges in every gear.
	fermentationCeiling = 1000.0
)

// AdjustedBiomassBound applies the plasmid burden and the capacity penalty
// to the nominal biomass upper bound. nominal must be read before the
// sweep's first mutation so repeated applications do not compound.
func AdjustedBiomassBound(nominal, burden, uptake float64) float64 {
	factor := 1 - burden - stress.CapacityPenalty(uptake)
	return nominal * math.Max(biomassFloor, factor)
}

// ApplyGear mutates the model's bounds for one gear. Every mutation must
// complete before the solve; lower <= upper holds for each touched reaction
// afterward. The mutation order itself is not significant.
func ApplyGear(model ports.MetabolicModel, cfg gear.Config, nominalBiomass float64) error {
	uptake := cfg.GlucoseMagnitude()

	if err := model.SetLowerBound(sim.ReactionGlucoseExchange, cfg.GlucoseUptakeBound); err != nil {
		return fmt.Errorf("set glucose uptake for %s: %w", cfg.Name, err)
	}
	if err := model.SetLowerBound(sim.ReactionOxygenExchange, cfg.OxygenUptakeBound); err != nil {
		return fmt.Errorf("set oxygen uptake for %s: %w", cfg.Name, err)
	}

	if err := model.SetUpperBound(sim.ReactionBiomass, AdjustedBiomassBound(nominalBiomass, cfg.PlasmidBurden, uptake)); err != nil {
		return fmt.Errorf("set biomass capacity for %s: %w", cfg.Name, err)
	}

	if err := model.SetLowerBound(sim.ReactionATPMaintenance, maintenanceBase+stress.MaintenanceCost(uptake)); err != nil {
		return fmt.Errorf("set ATP maintenance for %s: %w", cfg.Name, err)
	}

	// Fixed permissive windows so fermentation byproducts may be secreted in
	// every gear.
	for _, reactionID := range []string{sim.ReactionLactateExchange, sim.ReactionEthanolExchange} {
		if err := model.SetLowerBound(reactionID, 0.0); err != nil {
			return fmt.Errorf("open secretion window %s for %s: %w", reactionID, cfg.Name, err)
		}
		if err := model.SetUpperBound(reactionID, fermentationCeiling); err != nil {
			return fmt.Errorf("open secretion window %s for %s: %w", reactionID, cfg.Name, err)
		}
	}

	return nil
}
