package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrSweepNotFound    = fmt.Errorf("%w: sweep", ErrNotFound)
	ErrReactionNotFound = fmt.Errorf("%w: reaction", ErrNotFound)

	// Configuration errors
	ErrInvalidGearConfig = errors.New("invalid gear configuration")

	// Sweep errors
	ErrEmptySweep    = errors.New("sweep produced no results")
	ErrInvalidBounds = errors.New("reaction lower bound exceeds upper bound")
	ErrModelMutation = errors.New("model bound mutation failed")
	ErrSolverFailed  = errors.New("solver invocation failed")

	// Aggregation errors
	ErrZeroBaseline = errors.New("baseline metric is zero, fold change undefined")
)

// Error constructors with context
func NewGearConfigError(gear string, reason string) error {
	return fmt.Errorf("%w: gear %q: %s", ErrInvalidGearConfig, gear, reason)
}

func NewReactionNotFoundError(reactionID string) error {
	return fmt.Errorf("%w: %s", ErrReactionNotFound, reactionID)
}

func NewZeroBaselineError(metric string) error {
	return fmt.Errorf("%w: baseline %s is 0.0", ErrZeroBaseline, metric)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsGearConfigError(err error) bool {
	return errors.Is(err, ErrInvalidGearConfig)
}

func IsZeroBaselineError(err error) bool {
	return errors.Is(err, ErrZeroBaseline)
}
