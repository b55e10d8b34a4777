package ports

import "context"

// Solution is the output of one solver invocation. Objective is nil when the
// solver found no solution (infeasible model); flux values for reactions the
// solver did not report are simply absent from Fluxes.
type Solution struct {
	Objective *float64
	Fluxes    map[string]float64
}

// Flux returns the named reaction's flux, defaulting to 0.0 when the
// solution does not contain it.
func (s Solution) Flux(reactionID string) float64 {
	v, ok := s.Fluxes[reactionID]
	if !ok {
		return 0.0
	}
	return v
}

// Feasible reports whether the solver produced an objective value.
func (s Solution) Feasible() bool {
	return s.Objective != nil
}

// MetabolicModel is the external constraint-based model/solver collaborator.
// The model is a single shared mutable resource: bound mutations are applied
// in place and persist across Optimize calls, so a sweep must not interleave
// mutate-then-solve cycles from concurrent goroutines.
type MetabolicModel interface {
	// SetLowerBound sets the named reaction's lower flux bound.
	SetLowerBound(reactionID string, value float64) error
	// SetUpperBound sets the named reaction's upper flux bound.
	SetUpperBound(reactionID string, value float64) error
	// LowerBound reads the named reaction's current lower flux bound.
	LowerBound(reactionID string) (float64, error)
	// UpperBound reads the named reaction's current upper flux bound.
	UpperBound(reactionID string) (float64, error)
	// Optimize solves the model under its current bounds.
	Optimize(ctx context.Context) (Solution, error)
}

// ModelSnapshotter is implemented by models that can produce an independent
// deep copy with the current bounds. Callers that need repeatable sweeps
// (bounds are mutated in place, so re-running against the same instance
// starts from the last gear's bounds) take a snapshot per sweep.
type ModelSnapshotter interface {
	Snapshot() MetabolicModel
}
