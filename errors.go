package zetascan

import (
	"fmt"

	"github.com/okushigue/zetascan/scan"
)

var (
	// ErrNoZeros is returned when a hunt starts with an empty zero
	// sequence.
	ErrNoZeros = scan.ErrNoZeros
)

// ErrUnknownCatalog indicates a catalog name with no registration.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownCatalog struct {
	Name  string
	cause error
}

func (e *ErrUnknownCatalog) Error() string {
	return fmt.Sprintf("unknown catalog: %q", e.Name)
}

func (e *ErrUnknownCatalog) Unwrap() error { return e.cause }

// ErrInvalidCatalog indicates a catalog that failed validation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidCatalog struct {
	Name  string
	cause error
}

func (e *ErrInvalidCatalog) Error() string {
	return fmt.Sprintf("invalid catalog: %q", e.Name)
}

func (e *ErrInvalidCatalog) Unwrap() error { return e.cause }
