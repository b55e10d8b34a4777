package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SweepID    ID
	GearName   ID
	ReactionID ID
)

// String conversions for domain IDs
func (id SweepID) String() string    { return ID(id).String() }
func (id GearName) String() string   { return ID(id).String() }
func (id ReactionID) String() string { return ID(id).String() }

// ParseSweepID parses a string into SweepID
func ParseSweepID(s string) (SweepID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("sweep ID cannot be empty")
	}
	return SweepID(s), nil
}

// ParseGearName parses a string into GearName
func ParseGearName(s string) (GearName, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("gear name cannot be empty")
	}
	return GearName(s), nil
}
