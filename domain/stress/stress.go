package stress

import "math"

// Maintenance cost curve: extra ATP-maintenance demand grows superlinearly
// with glucose uptake and is hard-capped so the ATPM lower bound stays in a
// physically sane range at extreme uptake.
const (
	costScale    = 0.02
	costExponent = 1.8
	costCap      = 200.0
)

// Capacity penalty regimes. The three divisor pairs are tuned independently
// per uptake regime and are not interpolations of each other; regime
// boundaries are inclusive on the lower side (g <= 30 is low, g <= 80 mid).
const (
	lowRegimeMax = 30.0
	midRegimeMax = 80.0

	lowScale = 35.0
	midScale = 25.0
	topScale = 40.0

	lowDivisor = 20.0
	midDivisor = 15.0
	topDivisor = 10.0

	// At least 5% of nominal biomass capacity is always reserved.
	penaltyCap = 0.95
)

// MaintenanceCost returns the additional ATP-maintenance lower-bound demand
// for the given glucose uptake. The input is the uptake magnitude; a signed
// uptake bound may be passed directly, only its absolute value is used.
func MaintenanceCost(uptake float64) float64 {
	g := math.Abs(uptake)
	return math.Min(math.Pow(g*costScale, costExponent), costCap)
}

// CapacityPenalty returns the fractional biomass-capacity reduction for the
// given glucose uptake, in [0, 0.95]. Piecewise by uptake regime.
func CapacityPenalty(uptake float64) float64 {
	g := math.Abs(uptake)

	var penalty float64
	switch {
	case g <= lowRegimeMax:
		penalty = math.Exp(g/lowScale) / lowDivisor
	case g <= midRegimeMax:
		penalty = math.Exp(g/midScale) / midDivisor
	default:
		penalty = math.Exp(g/topScale) / topDivisor
	}

	return math.Min(penalty, penaltyCap)
}

// Outputs bundles both stress adjustments for a single uptake magnitude.
// Derived fresh per gear; never stored across gears.
type Outputs struct {
	MaintenanceCost float64 `json:"maintenance_cost"`
	CapacityPenalty float64 `json:"capacity_penalty"`
}

// Compute evaluates both stress functions for one uptake magnitude.
func Compute(uptake float64) Outputs {
	return Outputs{
		MaintenanceCost: MaintenanceCost(uptake),
		CapacityPenalty: CapacityPenalty(uptake),
	}
}
