package app

import (
	"context"
	"errors"
	"testing"

	"fluxgear/adapters/memmodel"
	"fluxgear/adapters/memory"
	"fluxgear/domain/gear"
	apperrors "fluxgear/internal/errors"
	"fluxgear/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyModel wraps the emulated model and fails Optimize for chosen calls.
type flakyModel struct {
	ports.MetabolicModel
	calls    int
	failCall int // 1-based call index that fails
}

func (m *flakyModel) Optimize(ctx context.Context) (ports.Solution, error) {
	m.calls++
	if m.calls == m.failCall {
		return ports.Solution{}, errors.New("simulated solver crash")
	}
	return m.MetabolicModel.Optimize(ctx)
}

func TestRunProducesOneResultPerGearInOrder(t *testing.T) {
	repo := memory.NewSweepRepository()
	service := NewSweepService(repo)

	record, err := service.Run(context.Background(), memmodel.New(), gear.DefaultGears())
	require.NoError(t, err)
	require.Len(t, record.Results, 5)

	expectedGears := []string{"Gear 1", "Gear 2", "Gear 3", "Gear 4", "Gear 5"}
	expectedUptake := []float64{10, 30, 80, 150, 250}
	for i, result := range record.Results {
		assert.Equal(t, expectedGears[i], result.Gear)
		assert.InDelta(t, expectedUptake[i], result.GlucoseUptakeMagnitude(), 1e-9)
		// All five numeric fields populated (defaulted, never missing)
		assert.False(t, result.GrowthRate < 0)
	}

	// Fold changes exist for every non-baseline gear
	require.Len(t, record.FoldChanges, 4)
	assert.InDelta(t, 3.0, record.FoldChanges[0].GlucoseUptakeFold, 1e-9)
	assert.InDelta(t, 25.0, record.FoldChanges[3].GlucoseUptakeFold, 1e-9)
}

func TestRunIsDeterministicOnFreshModels(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())

	first, err := service.Run(context.Background(), memmodel.New(), gear.DefaultGears())
	require.NoError(t, err)
	second, err := service.Run(context.Background(), memmodel.New(), gear.DefaultGears())
	require.NoError(t, err)

	// Bit-identical result sequences from fresh models
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.FoldChanges, second.FoldChanges)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRunRejectsInvalidGearBeforeSweeping(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	bad := []gear.Config{
		{Name: "Gear 1", GlucoseUptakeBound: -10, OxygenUptakeBound: -18},
		{Name: "broken", GlucoseUptakeBound: 10, OxygenUptakeBound: -18},
	}

	record, err := service.Run(context.Background(), memmodel.New(), bad)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.Equal(t, apperrors.CodeInvalidGear, apperrors.GetCode(err))
}

func TestRunRejectsEmptyRegistry(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	record, err := service.Run(context.Background(), memmodel.New(), nil)
	require.Error(t, err)
	assert.Nil(t, record)
}

func TestRunRecoversSolverFailureAsZeroResult(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	model := &flakyModel{MetabolicModel: memmodel.New(), failCall: 3}

	record, err := service.Run(context.Background(), model, gear.DefaultGears())
	require.NoError(t, err)
	require.Len(t, record.Results, 5)

	// Gear 3's solve failed: zero-valued result, sweep continued
	failed := record.Results[2]
	assert.Equal(t, "Gear 3", failed.Gear)
	assert.Zero(t, failed.GrowthRate)
	assert.Zero(t, failed.ATPFlux)
	assert.Zero(t, failed.GlucoseFlux)
	assert.Zero(t, failed.LactateFlux)
	assert.Zero(t, failed.EthanolFlux)

	// Neighbors solved normally
	assert.NotZero(t, record.Results[1].GlucoseFlux)
	assert.NotZero(t, record.Results[3].GlucoseFlux)
}

func TestRunSurfacesZeroBaselineExplicitly(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	// Baseline solve fails, so every baseline metric is 0.0: the fold
	// change is undefined and must be an explicit error, not Inf/NaN.
	model := &flakyModel{MetabolicModel: memmodel.New(), failCall: 1}

	record, err := service.Run(context.Background(), model, gear.DefaultGears())
	require.Error(t, err)
	assert.Nil(t, record)
	assert.Equal(t, apperrors.CodeZeroBaseline, apperrors.GetCode(err))
}

func TestRunRecordsInfeasibleGearAsZero(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	gears := []gear.Config{
		{Name: "Gear 1", GlucoseUptakeBound: -10, OxygenUptakeBound: -18},
		// Starved gear: uptake far too small to cover the ATP-maintenance
		// demand, so the solve reports no solution.
		{Name: "Starved", GlucoseUptakeBound: -0.001, OxygenUptakeBound: -0.001},
	}

	record, err := service.Run(context.Background(), memmodel.New(), gears)
	require.NoError(t, err)
	require.Len(t, record.Results, 2)
	assert.Zero(t, record.Results[1].GrowthRate)
	assert.Zero(t, record.Results[1].ATPFlux)
	assert.Zero(t, record.Results[1].GlucoseFlux)
}

func TestRunRecordsOneGearSweepWithFailedSolve(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	model := &flakyModel{MetabolicModel: memmodel.New(), failCall: 1}
	gears := gear.DefaultGears()[:1]

	record, err := service.Run(context.Background(), model, gears)
	require.NoError(t, err)
	require.Len(t, record.Results, 1)
	assert.Zero(t, record.Results[0].GrowthRate)
	assert.Empty(t, record.FoldChanges)
}

func TestRunPersistsRecord(t *testing.T) {
	repo := memory.NewSweepRepository()
	service := NewSweepService(repo)

	record, err := service.Run(context.Background(), memmodel.New(), gear.DefaultGears())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Count())

	stored, err := repo.LatestSweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)
	assert.Equal(t, record.Results, stored.Results)
}

func TestRunHonorsCanceledContext(t *testing.T) {
	service := NewSweepService(memory.NewSweepRepository())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	record, err := service.Run(ctx, memmodel.New(), gear.DefaultGears())
	require.Error(t, err)
	assert.Nil(t, record)
}
