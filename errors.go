package digitizer

import (
	"errors"
	"fmt"
)

// Input validation errors. They are detected before any computation and are
// deterministic: retrying with the same input fails the same way.
var (
	ErrInvalidStep          = errors.New("digitizer: sampling step must be positive")
	ErrMissingGeometry      = errors.New("digitizer: missing path geometry")
	ErrInvalidExtent        = errors.New("digitizer: vertical extent needs zmin < zmax")
	ErrInvalidCanvas        = errors.New("digitizer: canvas width and height must be positive")
	ErrDegenerateCurve      = errors.New("digitizer: reference curve has no length")
	ErrInvalidReferenceType = errors.New("digitizer: reference curve does not support arc-length interpolation")
	ErrTooFewPoints         = errors.New("digitizer: path needs at least two points")
	ErrOutOfCanvas          = errors.New("digitizer: point outside the canvas")
)

// ErrDegeneratePath is returned for a path whose arc length is zero or not
// finite.
var ErrDegeneratePath = errors.New("digitizer: path has no length")

// PathError ties a failure to the path that caused it, so that batch callers
// can decide to skip that path or abort.
type PathError struct {
	ID  string
	Err error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %v", e.ID, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
