package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidGeneType     = errors.New("invalid gene type")
	ErrInvalidRating       = errors.New("rating must be -1 or 1")
	ErrMutationSkipped     = errors.New("mutation skipped")
	ErrIncompleteSynthesis = errors.New("incomplete synthesis")
)

// IncompleteSynthesisError reports which required slot had no eligible gene.
// It matches ErrIncompleteSynthesis under errors.Is so callers can branch on
// the condition without inspecting the slot.
type IncompleteSynthesisError struct {
	Slot GeneType
}

func (e *IncompleteSynthesisError) Error() string {
	return fmt.Sprintf("incomplete synthesis: no gene available for required slot %q", e.Slot)
}

func (e *IncompleteSynthesisError) Is(target error) bool {
	return target == ErrIncompleteSynthesis
}
