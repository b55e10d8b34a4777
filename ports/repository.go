package ports

import (
	"context"

	"fluxgear/domain/core"
	"fluxgear/domain/sim"
)

// SweepRecord is one persisted sweep: the ordered per-gear results plus the
// fold changes derived against the first (baseline) result.
type SweepRecord struct {
	ID          core.SweepID     `json:"id"`
	CreatedAt   core.Timestamp   `json:"created_at"`
	Results     []sim.Result     `json:"results"`
	FoldChanges []sim.FoldChange `json:"fold_changes"`
}

// SweepRepository stores completed sweeps for downstream consumers.
type SweepRepository interface {
	SaveSweep(ctx context.Context, record SweepRecord) error
	GetSweep(ctx context.Context, id core.SweepID) (*SweepRecord, error)
	LatestSweep(ctx context.Context) (*SweepRecord, error)
}
