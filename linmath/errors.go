package linmath

import (
	"github.com/pkg/errors"
)

// Epsilon is the tolerance used by the Equals methods of every
// numeric type in this module.
const Epsilon = 1e-13

var (
	// ErrInvalidArgument reports an argument a caller should never
	// have passed (bad dimension, non-finite component).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch reports operands whose shapes are
	// incompatible with the requested operation.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDegenerate reports an input for which the operation has no
	// numerically meaningful result (for example extracting a
	// rotation axis from an identity quaternion).
	ErrDegenerate = errors.New("degenerate input")
)

// IsInvalidArgument reports whether err is ErrInvalidArgument,
// however deeply wrapped.
func IsInvalidArgument(err error) bool {
	return errors.Cause(err) == ErrInvalidArgument
}

// IsDimensionMismatch reports whether err is ErrDimensionMismatch,
// however deeply wrapped.
func IsDimensionMismatch(err error) bool {
	return errors.Cause(err) == ErrDimensionMismatch
}

// IsDegenerate reports whether err is ErrDegenerate, however deeply
// wrapped.
func IsDegenerate(err error) bool {
	return errors.Cause(err) == ErrDegenerate
}

// NearEqual reports whether a and b differ by less than Epsilon.
func NearEqual(a, b float64) bool {
	d := a - b
	return d < Epsilon && d > -Epsilon
}
