package discovery

import (
	"errors"
	"fmt"
)

// ErrConstruction matches every *ConstructionError via errors.Is.
var ErrConstruction = errors.New("discovery: cannot construct type")

// ConstructionError reports a discovered type whose zero-argument constructor
// is missing, panicked, or produced an unusable value. It is fatal to
// bootstrap: a malformed module is never skipped silently.
type ConstructionError struct {
	Type string // display name of the offending type
	Err  error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("discovery: construct %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConstructionError) Unwrap() error { return e.Err }

// Is reports ErrConstruction as a match.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }
