// Package linmath provides the generic vector/matrix primitives the
// fixed-size math3d types are built on. Dimensions are checked at
// runtime; the package is scaffolding, not a linear algebra library.
package linmath

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Vector is an immutable n-dimensional vector. The zero value is a
// vector of dimension 0.
type Vector struct {
	vals []float64
}

// NewVector builds a vector of the given dimension. Missing values
// are zero-padded on the right, extra values are truncated.
func NewVector(dim int, values ...float64) (Vector, error) {
	if dim < 0 {
		return Vector{}, errors.Wrapf(ErrInvalidArgument, "vector dimension %d", dim)
	}
	vals := make([]float64, dim)
	for i := 0; i < dim && i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return Vector{}, errors.Wrapf(ErrInvalidArgument, "non-finite component %v at %d", values[i], i)
		}
		vals[i] = values[i]
	}
	return Vector{vals: vals}, nil
}

// Dim returns the dimension of v.
func (v Vector) Dim() int { return len(v.vals) }

// At returns the i-th component of v.
func (v Vector) At(i int) float64 { return v.vals[i] }

// Values returns a copy of the components of v.
func (v Vector) Values() []float64 {
	vals := make([]float64, len(v.vals))
	copy(vals, v.vals)
	return vals
}

func (v Vector) sameDim(w Vector, op string) error {
	if len(v.vals) != len(w.vals) {
		return errors.Wrapf(ErrDimensionMismatch, "%s: %d != %d", op, len(v.vals), len(w.vals))
	}
	return nil
}

// Add returns v + w.
func (v Vector) Add(w Vector) (Vector, error) {
	if err := v.sameDim(w, "add"); err != nil {
		return Vector{}, err
	}
	vals := make([]float64, len(v.vals))
	for i := range vals {
		vals[i] = v.vals[i] + w.vals[i]
	}
	return Vector{vals: vals}, nil
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) (Vector, error) {
	if err := v.sameDim(w, "sub"); err != nil {
		return Vector{}, err
	}
	vals := make([]float64, len(v.vals))
	for i := range vals {
		vals[i] = v.vals[i] - w.vals[i]
	}
	return Vector{vals: vals}, nil
}

// MulScalar returns s * v.
func (v Vector) MulScalar(s float64) Vector {
	vals := make([]float64, len(v.vals))
	for i := range vals {
		vals[i] = v.vals[i] * s
	}
	return Vector{vals: vals}
}

// Negate returns -v.
func (v Vector) Negate() Vector { return v.MulScalar(-1) }

// Dot returns the inner product of v and w.
func (v Vector) Dot(w Vector) (float64, error) {
	if err := v.sameDim(w, "dot"); err != nil {
		return 0, err
	}
	d := 0.0
	for i := range v.vals {
		d += v.vals[i] * w.vals[i]
	}
	return d, nil
}

// Magnitude returns the length of v.
func (v Vector) Magnitude() float64 {
	d := 0.0
	for _, x := range v.vals {
		d += x * x
	}
	return math.Sqrt(d)
}

// DistanceTo returns |v - w|.
func (v Vector) DistanceTo(w Vector) (float64, error) {
	d, err := v.Sub(w)
	if err != nil {
		return 0, err
	}
	return d.Magnitude(), nil
}

// Normalize returns v scaled to unit length. The zero vector has no
// direction and is returned unchanged.
func (v Vector) Normalize() Vector {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.MulScalar(1 / m)
}

// Equals reports whether v and w have the same dimension and all
// components match within Epsilon.
func (v Vector) Equals(w Vector) bool {
	if len(v.vals) != len(w.vals) {
		return false
	}
	for i := range v.vals {
		if !NearEqual(v.vals[i], w.vals[i]) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, x := range v.vals {
		if i != 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatFloat(x))
	}
	sb.WriteByte(')')
	return sb.String()
}
