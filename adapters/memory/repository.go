// Package memory provides the in-memory sweep repository used by tests and
// by deployments without a configured database.
package memory

import (
	"context"
	"sync"

	"fluxgear/domain/core"
	"fluxgear/ports"
)

// SweepRepository stores sweep records in memory, newest last.
type SweepRepository struct {
	mu      sync.RWMutex
	records []ports.SweepRecord
	byID    map[core.SweepID]int
}

var _ ports.SweepRepository = (*SweepRepository)(nil)

// NewSweepRepository creates an empty in-memory sweep repository
func NewSweepRepository() *SweepRepository {
	return &SweepRepository{
		byID: make(map[core.SweepID]int),
	}
}

// SaveSweep appends a sweep record
func (r *SweepRepository) SaveSweep(ctx context.Context, record ports.SweepRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[record.ID] = len(r.records)
	r.records = append(r.records, record)
	return nil
}

// GetSweep returns the sweep with the given ID
func (r *SweepRepository) GetSweep(ctx context.Context, id core.SweepID) (*ports.SweepRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, core.ErrSweepNotFound
	}
	record := r.records[idx]
	return &record, nil
}

// LatestSweep returns the most recently saved sweep
func (r *SweepRepository) LatestSweep(ctx context.Context) (*ports.SweepRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.records) == 0 {
		return nil, core.ErrSweepNotFound
	}
	record := r.records[len(r.records)-1]
	return &record, nil
}

// Count returns the number of stored sweeps
func (r *SweepRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
