package math3d

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/mogaika/scenemath/linmath"
)

// Vector4 is an immutable 4-component vector.
type Vector4 struct {
	X, Y, Z, W float64
}

var (
	Zero4 = Vector4{0, 0, 0, 0}
	One4  = Vector4{1, 1, 1, 1}
)

// Add returns v + w.
func (v Vector4) Add(w Vector4) Vector4 {
	return Vector4{v.X + w.X, v.Y + w.Y, v.Z + w.Z, v.W + w.W}
}

// Sub returns v - w.
func (v Vector4) Sub(w Vector4) Vector4 {
	return Vector4{v.X - w.X, v.Y - w.Y, v.Z - w.Z, v.W - w.W}
}

// MulScalar returns s * v.
func (v Vector4) MulScalar(s float64) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Negate returns -v.
func (v Vector4) Negate() Vector4 {
	return Vector4{-v.X, -v.Y, -v.Z, -v.W}
}

// Dot returns the inner product of v and w.
func (v Vector4) Dot(w Vector4) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W
}

// Magnitude returns the length of v.
func (v Vector4) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// DistanceTo returns |v - w|.
func (v Vector4) DistanceTo(w Vector4) float64 {
	return v.Sub(w).Magnitude()
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vector4) Normalize() Vector4 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.MulScalar(1 / m)
}

// Equals reports whether all components of v and w match within
// linmath.Epsilon.
func (v Vector4) Equals(w Vector4) bool {
	return linmath.NearEqual(v.X, w.X) &&
		linmath.NearEqual(v.Y, w.Y) &&
		linmath.NearEqual(v.Z, w.Z) &&
		linmath.NearEqual(v.W, w.W)
}

// Vector3 drops the w component.
func (v Vector4) Vector3() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Vec returns v as a generic 4-dimensional vector.
func (v Vector4) Vec() linmath.Vector {
	vec, _ := linmath.NewVector(4, v.X, v.Y, v.Z, v.W)
	return vec
}

// Vector4FromVec narrows a generic vector to a Vector4.
func Vector4FromVec(v linmath.Vector) (Vector4, error) {
	if v.Dim() != 4 {
		return Vector4{}, errors.Wrapf(linmath.ErrInvalidArgument, "expected 4 components, got %d", v.Dim())
	}
	return Vector4{v.At(0), v.At(1), v.At(2), v.At(3)}, nil
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", v.X, v.Y, v.Z, v.W)
}
