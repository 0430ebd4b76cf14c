package math3d

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/mogaika/scenemath/linmath"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi

	// sin of the pitch angle gets within this distance of ±1 at the
	// gimbal poles; past it the y/z extraction is meaningless.
	gimbalTolerance = 1e-9
)

// Quaternion is an immutable rotation stored as a unit quaternion
// (x, y, z, w) with w = cos(angle/2). NewQuaternion normalizes, so
// every Quaternion built through the constructors is unit length.
type Quaternion struct {
	X, Y, Z, W float64
}

// QuaternionIdentity is the no-rotation quaternion.
var QuaternionIdentity = Quaternion{0, 0, 0, 1}

// NewQuaternion builds a quaternion and normalizes it to unit
// length. A zero-magnitude input cannot be normalized and is kept
// as-is.
func NewQuaternion(x, y, z, w float64) Quaternion {
	m := math.Sqrt(x*x + y*y + z*z + w*w)
	if m == 0 {
		return Quaternion{}
	}
	return Quaternion{x / m, y / m, z / m, w / m}
}

// Euler builds a rotation from Euler angles in degrees, applied in
// z-x-y order. The y angle turns clockwise around +y (heading), which
// is what sends forward to the left at y=90 in this convention.
func Euler(x, y, z float64) Quaternion {
	sx, cx := math.Sincos(x * deg2rad / 2)
	sy, cy := math.Sincos(-y * deg2rad / 2)
	sz, cz := math.Sincos(z * deg2rad / 2)

	return Quaternion{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}

// AngleAxis builds a rotation of angle degrees around axis. The axis
// is normalized before use.
func AngleAxis(axis Vector3, angle float64) Quaternion {
	n := axis.Normalize()
	s, c := math.Sincos(angle * deg2rad / 2)
	return NewQuaternion(n.X*s, n.Y*s, n.Z*s, c)
}

// EulerAngles extracts the z-x-y Euler angles of q in degrees, each
// normalized into [0,360). At the gimbal poles (pitch ±90) heading
// and bank collapse onto one axis and exactly (90,0,0) or (-90,0,0)
// is returned.
func (q Quaternion) EulerAngles() Vector3 {
	t := q.X*q.W - q.Y*q.Z
	if t > 0.5-gimbalTolerance {
		return Vector3{X: 90}
	}
	if t < -(0.5 - gimbalTolerance) {
		return Vector3{X: -90}
	}

	x := math.Asin(clamp1(2 * t))
	y := -math.Atan2(2*(q.W*q.Y+q.X*q.Z), 1-2*(q.X*q.X+q.Y*q.Y))
	z := math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.X*q.X+q.Z*q.Z))

	return Vector3{
		X: normDeg(x * rad2deg),
		Y: normDeg(y * rad2deg),
		Z: normDeg(z * rad2deg),
	}
}

// AngleAxis extracts the rotation axis and angle (degrees) of q.
// A quaternion within tolerance of the identity has no defined axis
// and yields linmath.ErrDegenerate.
func (q Quaternion) AngleAxis() (Vector3, float64, error) {
	s := math.Sqrt(1 - math.Min(q.W*q.W, 1))
	if s < gimbalTolerance {
		return Vector3{}, 0, errors.Wrap(linmath.ErrDegenerate, "no rotation, axis undefined")
	}
	axis := Vector3{q.X / s, q.Y / s, q.Z / s}
	return axis, 2 * math.Acos(clamp1(q.W)) * rad2deg, nil
}

// Mul returns the Hamilton product q * r: the rotation that applies
// r first, then q. (q.Mul(r)).MulVector3(v) == q.MulVector3(r.MulVector3(v)).
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		X: q.W*r.X + r.W*q.X + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y + r.W*q.Y + q.Z*r.X - q.X*r.Z,
		Z: q.W*r.Z + r.W*q.Z + q.X*r.Y - q.Y*r.X,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// MulVector3 rotates v by q using the expanded sandwich product
// q·v·q*. The result matches RotationMatrix(q).MulVector3(v).
func (q Quaternion) MulVector3(v Vector3) Vector3 {
	// t = 2 * (q.xyz × v); v' = v + w*t + q.xyz × t
	tx := 2 * (q.Y*v.Z - q.Z*v.Y)
	ty := 2 * (q.Z*v.X - q.X*v.Z)
	tz := 2 * (q.X*v.Y - q.Y*v.X)
	return Vector3{
		X: v.X + q.W*tx + q.Y*tz - q.Z*ty,
		Y: v.Y + q.W*ty + q.Z*tx - q.X*tz,
		Z: v.Z + q.W*tz + q.X*ty - q.Y*tx,
	}
}

// Conjugate negates the vector part of q. For a unit quaternion this
// is the inverse rotation.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse is Conjugate; the two coincide for unit quaternions.
func (q Quaternion) Inverse() Quaternion { return q.Conjugate() }

// Dot returns the 4-component inner product of q and r.
func (q Quaternion) Dot(r Quaternion) float64 {
	return q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
}

// DistanceTo returns 1 - dot², a similarity score in [0,1]. Zero
// means the same rotation (up to sign). Not a metric: the triangle
// inequality does not hold.
func (q Quaternion) DistanceTo(r Quaternion) float64 {
	d := q.Dot(r)
	return 1 - d*d
}

// AngleTo returns the angular distance between q and r in degrees.
func (q Quaternion) AngleTo(r Quaternion) float64 {
	d := q.Dot(r)
	return math.Acos(clamp1(2*d*d-1)) * rad2deg
}

// Equals reports whether all components of q and r match within
// linmath.Epsilon. Construction normalizes, so mathematically equal
// rotations may still differ by floating error; never compare with ==.
func (q Quaternion) Equals(r Quaternion) bool {
	return linmath.NearEqual(q.X, r.X) &&
		linmath.NearEqual(q.Y, r.Y) &&
		linmath.NearEqual(q.Z, r.Z) &&
		linmath.NearEqual(q.W, r.W)
}

// Vec returns q as a generic 4-dimensional vector (x, y, z, w).
func (q Quaternion) Vec() linmath.Vector {
	vec, _ := linmath.NewVector(4, q.X, q.Y, q.Z, q.W)
	return vec
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", q.X, q.Y, q.Z, q.W)
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// normDeg maps an angle in degrees into [0,360).
func normDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
