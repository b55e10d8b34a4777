package app

import (
	"fluxgear/domain/core"
	"fluxgear/domain/sim"
	"fluxgear/domain/stress"
	"fluxgear/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Aggregator derives comparison metrics from a completed result sequence.
// The first result is always the baseline.
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// FoldChanges computes, for every non-baseline result, the glucose-uptake,
// ATP-production and growth-rate ratios against the baseline. A baseline
// denominator of exactly 0.0 is surfaced as a ZERO_BASELINE error rather
// than propagating an infinite or NaN ratio.
func (a *Aggregator) FoldChanges(results []sim.Result) ([]sim.FoldChange, error) {
	if len(results) == 0 {
		return nil, errors.WithCode(errors.CodeInternalError, core.ErrEmptySweep)
	}

	if len(results) == 1 {
		// Nothing to compare against the baseline, so no denominator is
		// ever needed; a lone all-zero result is still a valid sweep.
		return []sim.FoldChange{}, nil
	}

	baseline := results[0]
	if baseline.GlucoseUptakeMagnitude() == 0 {
		return nil, errors.WithCode(errors.CodeZeroBaseline, core.NewZeroBaselineError("glucose uptake"))
	}
	if baseline.ATPFlux == 0 {
		return nil, errors.WithCode(errors.CodeZeroBaseline, core.NewZeroBaselineError("ATP production"))
	}
	if baseline.GrowthRate == 0 {
		return nil, errors.WithCode(errors.CodeZeroBaseline, core.NewZeroBaselineError("growth rate"))
	}

	folds := make([]sim.FoldChange, 0, len(results)-1)
	for _, target := range results[1:] {
		folds = append(folds, foldAgainst(baseline, target))
	}
	return folds, nil
}

func foldAgainst(baseline, target sim.Result) sim.FoldChange {
	return sim.FoldChange{
		Gear:              target.Gear,
		GlucoseUptakeFold: target.GlucoseUptakeMagnitude() / baseline.GlucoseUptakeMagnitude(),
		ATPProductionFold: target.ATPFlux / baseline.ATPFlux,
		GrowthRateFold:    target.GrowthRate / baseline.GrowthRate,
	}
}

// Summarize computes cross-gear summary statistics for reporting.
func (a *Aggregator) Summarize(results []sim.Result) (sim.Metrics, error) {
	if len(results) == 0 {
		return sim.Metrics{}, errors.WithCode(errors.CodeInternalError, core.ErrEmptySweep)
	}

	growth := make([]float64, len(results))
	atp := make([]float64, len(results))
	fermentation := make([]float64, len(results))
	for i, r := range results {
		growth[i] = r.GrowthRate
		atp[i] = r.ATPFlux
		fermentation[i] = r.LactateFlux + r.EthanolFlux
	}

	meanGrowth, err := stats.Mean(growth)
	if err != nil {
		return sim.Metrics{}, errors.Wrap(err, "mean growth")
	}
	stdDev := 0.0
	if len(growth) > 1 {
		stdDev, err = stats.StandardDeviationSample(growth)
		if err != nil {
			return sim.Metrics{}, errors.Wrap(err, "growth standard deviation")
		}
	}

	return sim.Metrics{
		GearCount:        len(results),
		MeanGrowth:       meanGrowth,
		PeakGrowth:       floats.Max(growth),
		GrowthStdDev:     stdDev,
		PeakATP:          floats.Max(atp),
		PeakFermentation: floats.Max(fermentation),
	}, nil
}

// PenaltyCurve samples the capacity-penalty function on a uniform uptake
// grid, for chart rendering. Returns parallel uptake and penalty slices.
func (a *Aggregator) PenaltyCurve(maxUptake float64, samples int) ([]float64, []float64) {
	if samples < 2 {
		samples = 2
	}
	uptakes := make([]float64, samples)
	floats.Span(uptakes, 0, maxUptake)

	penalties := make([]float64, samples)
	for i, g := range uptakes {
		penalties[i] = stress.CapacityPenalty(g)
	}
	return uptakes, penalties
}
