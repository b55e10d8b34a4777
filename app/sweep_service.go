package app

import (
	"context"
	"log"
	"math"

	"fluxgear/domain/core"
	"fluxgear/domain/gear"
	"fluxgear/domain/sim"
	"fluxgear/internal/errors"
	"fluxgear/ports"
)

// SweepService drives the gear sweep: it applies each gear's constraints to
// the shared model, invokes the solver once per gear, extracts the named
// flux metrics, derives fold changes against the baseline gear, and
// persists the completed record.
type SweepService struct {
	repo       ports.SweepRepository
	aggregator *Aggregator
}

// NewSweepService creates a sweep service
func NewSweepService(repo ports.SweepRepository) *SweepService {
	return &SweepService{
		repo:       repo,
		aggregator: NewAggregator(),
	}
}

// Run sweeps the gears in registry order against the given model.
//
// The sweep is strictly sequential: later gears overwrite earlier gears'
// bounds on the same model instance, so gears are not independent and must
// not be solved concurrently against one model. A solver failure for a gear
// is recovered locally as an all-zero result and the sweep proceeds; an
// invalid gear config or a zero baseline metric aborts with an error.
//
// Run mutates the model in place. Re-running against the same instance
// starts from the last gear's bounds, not nominal; callers wanting
// repeatable sweeps should pass a fresh snapshot each time.
func (s *SweepService) Run(ctx context.Context, model ports.MetabolicModel, gears []gear.Config) (*ports.SweepRecord, error) {
	if len(gears) == 0 {
		return nil, errors.InvalidGear("sweep requires at least one gear")
	}
	if err := gear.ValidateAll(gears); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidGear, err)
	}

	// Read the nominal biomass capacity once, before any mutation, so the
	// per-gear adjustment never compounds across gears.
	nominalBiomass, err := model.UpperBound(sim.ReactionBiomass)
	if err != nil {
		return nil, errors.ModelError("read nominal biomass bound", err)
	}

	results := make([]sim.Result, 0, len(gears))
	for _, cfg := range gears {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "sweep canceled")
		}

		if err := ApplyGear(model, cfg, nominalBiomass); err != nil {
			return nil, errors.ModelError("apply gear constraints", err)
		}

		solution, err := model.Optimize(ctx)
		if err != nil {
			// Recovered locally: the gear records zeros and the sweep
			// proceeds to the next gear.
			log.Printf("[SweepService] %s: solver failed, recording zero result: %v", cfg.Name, err)
			results = append(results, sim.Result{Gear: cfg.Name})
			continue
		}

		results = append(results, extractResult(cfg.Name, solution))
	}

	foldChanges, err := s.aggregator.FoldChanges(results)
	if err != nil {
		return nil, err
	}

	record := &ports.SweepRecord{
		ID:          core.SweepID(core.NewID()),
		CreatedAt:   core.Now(),
		Results:     results,
		FoldChanges: foldChanges,
	}

	if s.repo != nil {
		if err := s.repo.SaveSweep(ctx, *record); err != nil {
			return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "persist sweep")
		}
	}

	return record, nil
}

// extractResult reads the fixed metric set out of one solution. Missing
// fluxes default to 0.0; an infeasible or non-finite objective records a
// growth rate of 0.0.
func extractResult(gearName string, solution ports.Solution) sim.Result {
	growth := 0.0
	if solution.Feasible() && !math.IsNaN(*solution.Objective) && !math.IsInf(*solution.Objective, 0) {
		growth = *solution.Objective
	}

	return sim.Result{
		Gear:        gearName,
		GrowthRate:  growth,
		ATPFlux:     solution.Flux(sim.ReactionATPSynthase),
		GlucoseFlux: solution.Flux(sim.ReactionGlucoseExchange),
		LactateFlux: solution.Flux(sim.ReactionLactateExchange),
		EthanolFlux: solution.Flux(sim.ReactionEthanolExchange),
	}
}
