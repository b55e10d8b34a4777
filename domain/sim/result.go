package sim

import "math"

// Reaction identifiers in the iML1515 E. coli model. The sweep mutates the
// first six; ATPS4rpp is read back from solutions only.
const (
	ReactionGlucoseExchange = "EX_glc__D_e"
	ReactionOxygenExchange  = "EX_o2_e"
	ReactionBiomass         = "BIOMASS_Ec_iML1515_core_75p37M"
	ReactionATPMaintenance  = "ATPM"
	ReactionLactateExchange = "EX_lac__D_e"
	ReactionEthanolExchange = "EX_etoh_e"
	ReactionATPSynthase     = "ATPS4rpp"
)

// Result holds the extracted metrics for one solved gear. Created once after
// the solve and never mutated; flux fields default to 0.0 when the solver's
// solution omits them, and all fields are 0.0 for an infeasible gear.
type Result struct {
	Gear string `json:"gear"`
	// GrowthRate is the optimized biomass objective value (1/h).
	GrowthRate float64 `json:"growth_rate"`
	// ATPFlux is the ATP synthase flux (mmol/gDW/h).
	ATPFlux float64 `json:"atp_flux"`
	// GlucoseFlux is the glucose-exchange flux; negative means uptake.
	GlucoseFlux float64 `json:"glucose_flux"`
	// LactateFlux and EthanolFlux are fermentation secretion fluxes.
	LactateFlux float64 `json:"lactate_flux"`
	EthanolFlux float64 `json:"ethanol_flux"`
}

// GlucoseUptakeMagnitude returns the absolute glucose uptake rate.
func (r Result) GlucoseUptakeMagnitude() float64 {
	return math.Abs(r.GlucoseFlux)
}

// FoldChange is the ratio of a gear's metrics against the baseline (first)
// gear. Derived only after the full result sequence exists; a zero baseline
// denominator is rejected upstream, never divided through.
type FoldChange struct {
	Gear              string  `json:"gear"`
	GlucoseUptakeFold float64 `json:"glucose_uptake_fold"`
	ATPProductionFold float64 `json:"atp_production_fold"`
	GrowthRateFold    float64 `json:"growth_rate_fold"`
}

// Metrics summarizes a completed sweep across all gears.
type Metrics struct {
	GearCount        int     `json:"gear_count"`
	MeanGrowth       float64 `json:"mean_growth"`
	PeakGrowth       float64 `json:"peak_growth"`
	GrowthStdDev     float64 `json:"growth_std_dev"`
	PeakATP          float64 `json:"peak_atp"`
	PeakFermentation float64 `json:"peak_fermentation"`
}
