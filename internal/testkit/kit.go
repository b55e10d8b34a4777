// Package testkit bundles the in-memory collaborators (emulated model,
// memory repository, default gear registry) for tests, the CLI, and server
// deployments without a database.
package testkit

import (
	"fluxgear/adapters/memmodel"
	"fluxgear/adapters/memory"
	"fluxgear/domain/gear"
	"fluxgear/ports"
)

// Kit provides wired in-memory collaborators.
type Kit struct {
	repo  *memory.SweepRepository
	gears []gear.Config
}

// NewKit creates a kit with the default five-gear registry
func NewKit() *Kit {
	return &Kit{
		repo:  memory.NewSweepRepository(),
		gears: gear.DefaultGears(),
	}
}

// Repository returns the shared in-memory sweep repository
func (k *Kit) Repository() ports.SweepRepository {
	return k.repo
}

// Gears returns the gear registry, in sweep order
func (k *Kit) Gears() []gear.Config {
	return k.gears
}

// NewModel returns a fresh emulated model with nominal bounds. Each sweep
// gets its own instance: bounds are mutated in place during a sweep, so a
// reused model would start from the previous sweep's final gear.
func (k *Kit) NewModel() ports.MetabolicModel {
	return memmodel.New()
}
