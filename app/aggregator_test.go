package app

import (
	"math"
	"testing"

	"fluxgear/domain/core"
	"fluxgear/domain/sim"
	apperrors "fluxgear/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []sim.Result {
	return []sim.Result{
		{Gear: "Gear 1", GrowthRate: 0.8, ATPFlux: 150, GlucoseFlux: -10, LactateFlux: 1, EthanolFlux: 1},
		{Gear: "Gear 2", GrowthRate: 1.2, ATPFlux: 300, GlucoseFlux: -30, LactateFlux: 10, EthanolFlux: 10},
		{Gear: "Gear 3", GrowthRate: 0.4, ATPFlux: 600, GlucoseFlux: -80, LactateFlux: 40, EthanolFlux: 40},
	}
}

func TestFoldChangesAgainstBaseline(t *testing.T) {
	agg := NewAggregator()
	folds, err := agg.FoldChanges(sampleResults())
	require.NoError(t, err)
	require.Len(t, folds, 2)

	assert.Equal(t, "Gear 2", folds[0].Gear)
	assert.InDelta(t, 3.0, folds[0].GlucoseUptakeFold, 1e-12)
	assert.InDelta(t, 2.0, folds[0].ATPProductionFold, 1e-12)
	assert.InDelta(t, 1.5, folds[0].GrowthRateFold, 1e-12)

	assert.Equal(t, "Gear 3", folds[1].Gear)
	assert.InDelta(t, 8.0, folds[1].GlucoseUptakeFold, 1e-12)
	assert.InDelta(t, 0.5, folds[1].GrowthRateFold, 1e-12)
}

func TestFoldChangeOfBaselineAgainstItselfIsOne(t *testing.T) {
	agg := NewAggregator()
	baseline := sampleResults()[0]
	folds, err := agg.FoldChanges([]sim.Result{baseline, baseline})
	require.NoError(t, err)
	require.Len(t, folds, 1)

	assert.Equal(t, 1.0, folds[0].GlucoseUptakeFold)
	assert.Equal(t, 1.0, folds[0].ATPProductionFold)
	assert.Equal(t, 1.0, folds[0].GrowthRateFold)
}

func TestFoldChangesRejectZeroBaseline(t *testing.T) {
	agg := NewAggregator()

	tests := []struct {
		name   string
		mutate func(*sim.Result)
	}{
		{"zero glucose", func(r *sim.Result) { r.GlucoseFlux = 0 }},
		{"zero atp", func(r *sim.Result) { r.ATPFlux = 0 }},
		{"zero growth", func(r *sim.Result) { r.GrowthRate = 0 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			results := sampleResults()
			test.mutate(&results[0])

			folds, err := agg.FoldChanges(results)
			require.Error(t, err)
			assert.Nil(t, folds)
			assert.Equal(t, apperrors.CodeZeroBaseline, apperrors.GetCode(err))
			assert.True(t, core.IsZeroBaselineError(err))
		})
	}
}

func TestFoldChangesNeverProduceNonFinite(t *testing.T) {
	agg := NewAggregator()
	folds, err := agg.FoldChanges(sampleResults())
	require.NoError(t, err)
	for _, f := range folds {
		assert.False(t, math.IsInf(f.GlucoseUptakeFold, 0) || math.IsNaN(f.GlucoseUptakeFold))
		assert.False(t, math.IsInf(f.ATPProductionFold, 0) || math.IsNaN(f.ATPProductionFold))
		assert.False(t, math.IsInf(f.GrowthRateFold, 0) || math.IsNaN(f.GrowthRateFold))
	}
}

func TestFoldChangesRejectEmptySequence(t *testing.T) {
	agg := NewAggregator()
	folds, err := agg.FoldChanges(nil)
	require.Error(t, err)
	assert.Nil(t, folds)
}

func TestFoldChangesSingleResultYieldsNoRecords(t *testing.T) {
	agg := NewAggregator()
	folds, err := agg.FoldChanges(sampleResults()[:1])
	require.NoError(t, err)
	assert.Empty(t, folds)
}

func TestFoldChangesSingleZeroResultIsAccepted(t *testing.T) {
	// With one result there is no ratio to compute, so an all-zero result
	// (failed solve) must not trip the zero-baseline rejection.
	agg := NewAggregator()
	folds, err := agg.FoldChanges([]sim.Result{{Gear: "Gear 1"}})
	require.NoError(t, err)
	assert.Empty(t, folds)
}

func TestSummarize(t *testing.T) {
	agg := NewAggregator()
	metrics, err := agg.Summarize(sampleResults())
	require.NoError(t, err)

	assert.Equal(t, 3, metrics.GearCount)
	assert.InDelta(t, 0.8, metrics.MeanGrowth, 1e-12)
	assert.InDelta(t, 1.2, metrics.PeakGrowth, 1e-12)
	assert.InDelta(t, 600, metrics.PeakATP, 1e-12)
	assert.InDelta(t, 80, metrics.PeakFermentation, 1e-12)
	assert.Greater(t, metrics.GrowthStdDev, 0.0)
}

func TestSummarizeRejectsEmptySequence(t *testing.T) {
	agg := NewAggregator()
	_, err := agg.Summarize(nil)
	require.Error(t, err)
}

func TestPenaltyCurve(t *testing.T) {
	agg := NewAggregator()
	uptakes, penalties := agg.PenaltyCurve(250, 101)

	require.Len(t, uptakes, 101)
	require.Len(t, penalties, 101)
	assert.Equal(t, 0.0, uptakes[0])
	assert.InDelta(t, 250.0, uptakes[100], 1e-9)
	assert.InDelta(t, math.Exp(0)/20, penalties[0], 1e-12)
	for i, p := range penalties {
		assert.LessOrEqual(t, p, 0.95, "sample %d", i)
		assert.GreaterOrEqual(t, p, 0.0, "sample %d", i)
	}
}
