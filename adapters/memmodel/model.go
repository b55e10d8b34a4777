// Package memmodel emulates the external constraint-based metabolic model
// for tests and the demo binary. It stores per-reaction flux bounds like the
// real facility and answers Optimize with a deterministic closed-form flux
// response (yield-limited growth with overflow fermentation under oxygen
// limitation). It is a stand-in collaborator, not an LP solver.
package memmodel

import (
	"context"
	"fmt"
	"math"

	"fluxgear/domain/core"
	"fluxgear/domain/sim"
	"fluxgear/ports"
)

// Emulated stoichiometry. The yields are coarse E. coli-like constants, not
// fitted values; they only need to produce plausible, reproducible numbers.
const (
	// o2PerGlucose is the oxygen demand to fully respire one glucose.
	o2PerGlucose = 2.0
	// respiratoryATPYield and fermentativeATPYield are ATP per glucose for
	// the respired and overflow fractions.
	respiratoryATPYield  = 26.0
	fermentativeATPYield = 2.0
	// synthaseYieldPerGlucose is the ATP synthase share of respiratory ATP.
	synthaseYieldPerGlucose = 17.5
	// growthPerATP converts growth-available ATP into biomass flux.
	growthPerATP = 0.004
)

type bounds struct {
	lower float64
	upper float64
}

// Model is an in-memory metabolic model over the fixed reaction set the
// sweep touches. Bound mutations persist across Optimize calls, matching the
// in-place mutation semantics of the real model handle.
type Model struct {
	reactions map[string]*bounds
}

var _ ports.MetabolicModel = (*Model)(nil)
var _ ports.ModelSnapshotter = (*Model)(nil)

// New creates a model with nominal (unstressed) bounds.
func New() *Model {
	return &Model{
		reactions: map[string]*bounds{
			sim.ReactionGlucoseExchange: {lower: -10.0, upper: 1000.0},
			sim.ReactionOxygenExchange:  {lower: -18.5, upper: 1000.0},
			sim.ReactionBiomass:         {lower: 0.0, upper: 10.0},
			sim.ReactionATPMaintenance:  {lower: 6.86, upper: 1000.0},
			sim.ReactionLactateExchange: {lower: 0.0, upper: 1000.0},
			sim.ReactionEthanolExchange: {lower: 0.0, upper: 1000.0},
			sim.ReactionATPSynthase:     {lower: -1000.0, upper: 1000.0},
		},
	}
}

// SetLowerBound sets the named reaction's lower flux bound
func (m *Model) SetLowerBound(reactionID string, value float64) error {
	b, ok := m.reactions[reactionID]
	if !ok {
		return core.NewReactionNotFoundError(reactionID)
	}
	b.lower = value
	return nil
}

// SetUpperBound sets the named reaction's upper flux bound
func (m *Model) SetUpperBound(reactionID string, value float64) error {
	b, ok := m.reactions[reactionID]
	if !ok {
		return core.NewReactionNotFoundError(reactionID)
	}
	b.upper = value
	return nil
}

// LowerBound reads the named reaction's lower flux bound
func (m *Model) LowerBound(reactionID string) (float64, error) {
	b, ok := m.reactions[reactionID]
	if !ok {
		return 0, core.NewReactionNotFoundError(reactionID)
	}
	return b.lower, nil
}

// UpperBound reads the named reaction's upper flux bound
func (m *Model) UpperBound(reactionID string) (float64, error) {
	b, ok := m.reactions[reactionID]
	if !ok {
		return 0, core.NewReactionNotFoundError(reactionID)
	}
	return b.upper, nil
}

// Snapshot returns an independent deep copy with the current bounds.
func (m *Model) Snapshot() ports.MetabolicModel {
	copied := make(map[string]*bounds, len(m.reactions))
	for id, b := range m.reactions {
		c := *b
		copied[id] = &c
	}
	return &Model{reactions: copied}
}

// Optimize evaluates the emulated flux response under the current bounds.
// The emulation consumes the full glucose window, respires as much of it as
// the oxygen window allows, ferments the rest to lactate and ethanol, pays
// the ATP-maintenance demand, and converts the remaining ATP into growth up
// to the biomass capacity. A maintenance demand the available ATP cannot
// cover is reported as infeasible (nil objective), as the solver would.
func (m *Model) Optimize(ctx context.Context) (ports.Solution, error) {
	if err := ctx.Err(); err != nil {
		return ports.Solution{}, err
	}
	for id, b := range m.reactions {
		if b.lower > b.upper {
			return ports.Solution{}, fmt.Errorf("%w: %s", core.ErrInvalidBounds, id)
		}
	}

	glucoseCap := math.Max(0, -m.reactions[sim.ReactionGlucoseExchange].lower)
	oxygenCap := math.Max(0, -m.reactions[sim.ReactionOxygenExchange].lower)
	maintenance := m.reactions[sim.ReactionATPMaintenance].lower
	biomassCap := m.reactions[sim.ReactionBiomass].upper

	respired := math.Min(glucoseCap, oxygenCap/o2PerGlucose)
	overflow := glucoseCap - respired

	atpTotal := respired*respiratoryATPYield + overflow*fermentativeATPYield
	if atpTotal < maintenance {
		// Maintenance demand cannot be met: no solution.
		return ports.Solution{Objective: nil, Fluxes: map[string]float64{}}, nil
	}

	growth := math.Min(biomassCap, (atpTotal-maintenance)*growthPerATP)
	growth = math.Max(0, growth)

	lactate := math.Min(overflow, m.reactions[sim.ReactionLactateExchange].upper)
	ethanol := math.Min(overflow, m.reactions[sim.ReactionEthanolExchange].upper)

	objective := growth
	return ports.Solution{
		Objective: &objective,
		Fluxes: map[string]float64{
			sim.ReactionBiomass:         growth,
			sim.ReactionGlucoseExchange: -glucoseCap,
			sim.ReactionOxygenExchange:  -oxygenCap * o2Utilization(respired, oxygenCap),
			sim.ReactionATPSynthase:     respired * synthaseYieldPerGlucose,
			sim.ReactionLactateExchange: lactate,
			sim.ReactionEthanolExchange: ethanol,
		},
	}, nil
}

// o2Utilization scales the reported oxygen flux to the respired fraction.
func o2Utilization(respired, oxygenCap float64) float64 {
	if oxygenCap == 0 {
		return 0
	}
	return math.Min(1, respired*o2PerGlucose/oxygenCap)
}
