// Package math3d implements the fixed-size 3D math types: Vector3,
// Vector4, Quaternion and Matrix4x4. The convention is left-handed,
// y-up, z-forward, with Euler rotations applied in z-x-y order.
package math3d

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/mogaika/scenemath/linmath"
)

// Vector3 is an immutable 3-component vector.
type Vector3 struct {
	X, Y, Z float64
}

// Axis constants. Right is +x, up is +y, forward is +z.
var (
	Zero    = Vector3{0, 0, 0}
	One     = Vector3{1, 1, 1}
	Up      = Vector3{0, 1, 0}
	Down    = Vector3{0, -1, 0}
	Left    = Vector3{-1, 0, 0}
	Right   = Vector3{1, 0, 0}
	Forward = Vector3{0, 0, 1}
	Back    = Vector3{0, 0, -1}
)

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// MulScalar returns s * v.
func (v Vector3) MulScalar(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Scale returns the component-wise (Hadamard) product of v and w.
func (v Vector3) Scale(w Vector3) Vector3 {
	return Vector3{v.X * w.X, v.Y * w.Y, v.Z * w.Z}
}

// Negate returns -v.
func (v Vector3) Negate() Vector3 { return Vector3{-v.X, -v.Y, -v.Z} }

// Dot returns the inner product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Average returns the midpoint of v and w.
func (v Vector3) Average(w Vector3) Vector3 {
	return v.Add(w).MulScalar(0.5)
}

// Magnitude returns the length of v.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

// DistanceTo returns |v - w|.
func (v Vector3) DistanceTo(w Vector3) float64 {
	return v.Sub(w).Magnitude()
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vector3) Normalize() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.MulScalar(1 / m)
}

// Equals reports whether all components of v and w match within
// linmath.Epsilon.
func (v Vector3) Equals(w Vector3) bool {
	return linmath.NearEqual(v.X, w.X) &&
		linmath.NearEqual(v.Y, w.Y) &&
		linmath.NearEqual(v.Z, w.Z)
}

// Homogeneous returns v as a point in homogeneous coordinates (w=1).
func (v Vector3) Homogeneous() Vector4 {
	return Vector4{v.X, v.Y, v.Z, 1}
}

// Vector4 returns v as a direction in homogeneous coordinates (w=0).
func (v Vector3) Vector4() Vector4 {
	return Vector4{v.X, v.Y, v.Z, 0}
}

// Vec returns v as a generic 3-dimensional vector.
func (v Vector3) Vec() linmath.Vector {
	vec, _ := linmath.NewVector(3, v.X, v.Y, v.Z)
	return vec
}

// Vector3FromVec narrows a generic vector to a Vector3.
func Vector3FromVec(v linmath.Vector) (Vector3, error) {
	if v.Dim() != 3 {
		return Vector3{}, errors.Wrapf(linmath.ErrInvalidArgument, "expected 3 components, got %d", v.Dim())
	}
	return Vector3{v.At(0), v.At(1), v.At(2)}, nil
}

// Vector3FromVector4 drops the w component.
func Vector3FromVector4(v Vector4) Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}
