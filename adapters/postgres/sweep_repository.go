package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fluxgear/domain/core"
	"fluxgear/domain/sim"
	"fluxgear/ports"

	"github.com/jmoiron/sqlx"
)

// SweepRepositoryImpl implements SweepRepository for PostgreSQL
type SweepRepositoryImpl struct {
	db *sqlx.DB
}

// NewSweepRepository creates a new PostgreSQL sweep repository
func NewSweepRepository(db *sqlx.DB) *SweepRepositoryImpl {
	return &SweepRepositoryImpl{db: db}
}

var _ ports.SweepRepository = (*SweepRepositoryImpl)(nil)

// EnsureSchema creates the sweep tables if they do not exist
func (r *SweepRepositoryImpl) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sweeps (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sweep_results (
			sweep_id TEXT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
			position INT NOT NULL,
			gear TEXT NOT NULL,
			growth_rate DOUBLE PRECISION NOT NULL,
			atp_flux DOUBLE PRECISION NOT NULL,
			glucose_flux DOUBLE PRECISION NOT NULL,
			lactate_flux DOUBLE PRECISION NOT NULL,
			ethanol_flux DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (sweep_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS sweep_fold_changes (
			sweep_id TEXT NOT NULL REFERENCES sweeps(id) ON DELETE CASCADE,
			position INT NOT NULL,
			gear TEXT NOT NULL,
			glucose_uptake_fold DOUBLE PRECISION NOT NULL,
			atp_production_fold DOUBLE PRECISION NOT NULL,
			growth_rate_fold DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (sweep_id, position)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSweep stores a sweep record with its results and fold changes
func (r *SweepRepositoryImpl) SaveSweep(ctx context.Context, record ports.SweepRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sweeps (id, created_at) VALUES ($1, $2)
	`, record.ID.String(), record.CreatedAt.Time())
	if err != nil {
		return err
	}

	for i, result := range record.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sweep_results (sweep_id, position, gear, growth_rate, atp_flux, glucose_flux, lactate_flux, ethanol_flux)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, record.ID.String(), i, result.Gear, result.GrowthRate, result.ATPFlux, result.GlucoseFlux, result.LactateFlux, result.EthanolFlux)
		if err != nil {
			return err
		}
	}

	for i, fold := range record.FoldChanges {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sweep_fold_changes (sweep_id, position, gear, glucose_uptake_fold, atp_production_fold, growth_rate_fold)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, record.ID.String(), i, fold.Gear, fold.GlucoseUptakeFold, fold.ATPProductionFold, fold.GrowthRateFold)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSweep retrieves a sweep by ID
func (r *SweepRepositoryImpl) GetSweep(ctx context.Context, id core.SweepID) (*ports.SweepRecord, error) {
	var header struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &header, `
		SELECT id, created_at FROM sweeps WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSweepNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.loadRecord(ctx, header.ID, header.CreatedAt)
}

// LatestSweep retrieves the most recent sweep
func (r *SweepRepositoryImpl) LatestSweep(ctx context.Context) (*ports.SweepRecord, error) {
	var header struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	err := r.db.GetContext(ctx, &header, `
		SELECT id, created_at FROM sweeps ORDER BY created_at DESC LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSweepNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.loadRecord(ctx, header.ID, header.CreatedAt)
}

func (r *SweepRepositoryImpl) loadRecord(ctx context.Context, id string, createdAt time.Time) (*ports.SweepRecord, error) {
	var resultRows []struct {
		Gear        string  `db:"gear"`
		GrowthRate  float64 `db:"growth_rate"`
		ATPFlux     float64 `db:"atp_flux"`
		GlucoseFlux float64 `db:"glucose_flux"`
		LactateFlux float64 `db:"lactate_flux"`
		EthanolFlux float64 `db:"ethanol_flux"`
	}
	err := r.db.SelectContext(ctx, &resultRows, `
		SELECT gear, growth_rate, atp_flux, glucose_flux, lactate_flux, ethanol_flux
		FROM sweep_results WHERE sweep_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}

	var foldRows []struct {
		Gear              string  `db:"gear"`
		GlucoseUptakeFold float64 `db:"glucose_uptake_fold"`
		ATPProductionFold float64 `db:"atp_production_fold"`
		GrowthRateFold    float64 `db:"growth_rate_fold"`
	}
	err = r.db.SelectContext(ctx, &foldRows, `
		SELECT gear, glucose_uptake_fold, atp_production_fold, growth_rate_fold
		FROM sweep_fold_changes WHERE sweep_id = $1 ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}

	record := &ports.SweepRecord{
		ID:        core.SweepID(id),
		CreatedAt: core.NewTimestamp(createdAt),
	}
	for _, row := range resultRows {
		record.Results = append(record.Results, sim.Result{
			Gear:        row.Gear,
			GrowthRate:  row.GrowthRate,
			ATPFlux:     row.ATPFlux,
			GlucoseFlux: row.GlucoseFlux,
			LactateFlux: row.LactateFlux,
			EthanolFlux: row.EthanolFlux,
		})
	}
	for _, row := range foldRows {
		record.FoldChanges = append(record.FoldChanges, sim.FoldChange{
			Gear:              row.Gear,
			GlucoseUptakeFold: row.GlucoseUptakeFold,
			ATPProductionFold: row.ATPProductionFold,
			GrowthRateFold:    row.GrowthRateFold,
		})
	}
	return record, nil
}
