package constructs

import "github.com/pkg/errors"

// Error kinds. Every failure returned by this module wraps exactly one of
// these, so callers can tell them apart with errors.Is.
var (
	// ErrConstruction indicates an object was built with invalid sizes or shapes.
	ErrConstruction = errors.New("morphac: construction error")

	// ErrDimensionMismatch indicates operands whose shapes disagree.
	ErrDimensionMismatch = errors.New("morphac: dimension mismatch")

	// ErrDomain indicates a dimensionally valid input outside the allowed domain.
	ErrDomain = errors.New("morphac: domain error")

	// ErrIndexOutOfRange indicates an element or knot point index out of bounds.
	ErrIndexOutOfRange = errors.New("morphac: index out of range")

	// ErrInvalidArgument indicates a malformed argument that is not a shape problem.
	ErrInvalidArgument = errors.New("morphac: invalid argument")

	// ErrNotFound is returned by accessor style lookups (GetRobot, GetPilot, ...).
	ErrNotFound = errors.New("morphac: not found")

	// ErrKeyNotFound is returned by map style lookups on oracle views.
	ErrKeyNotFound = errors.New("morphac: key not found")
)
