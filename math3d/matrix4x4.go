package math3d

import (
	"github.com/pkg/errors"

	"github.com/mogaika/scenemath/linmath"
)

// Matrix4x4 is an immutable 4x4 matrix with row-major flat storage:
// element (i,j), 1-indexed, lives at vals[4*(i-1)+(j-1)].
type Matrix4x4 struct {
	vals [16]float64
}

// Matrix4x4Identity is the 4x4 identity.
var Matrix4x4Identity = NewMatrix4x4(
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
)

// NewMatrix4x4 builds a matrix from row-major values. Missing values
// are zero-padded, extra values are truncated.
func NewMatrix4x4(values ...float64) Matrix4x4 {
	var m Matrix4x4
	for i := 0; i < 16 && i < len(values); i++ {
		m.vals[i] = values[i]
	}
	return m
}

// Matrix4x4FromMatrix narrows a generic matrix to 4x4.
func Matrix4x4FromMatrix(m linmath.Matrix) (Matrix4x4, error) {
	if m.Rows() != 4 || m.Cols() != 4 {
		return Matrix4x4{}, errors.Wrapf(linmath.ErrInvalidArgument, "expected 4x4 matrix, got %dx%d", m.Rows(), m.Cols())
	}
	return NewMatrix4x4(m.Values()...), nil
}

// Mat returns m as a generic 4x4 matrix.
func (m Matrix4x4) Mat() linmath.Matrix {
	mat, _ := linmath.NewMatrix(4, 4, m.vals[:]...)
	return mat
}

// At returns the element at row r, column c (0-indexed).
func (m Matrix4x4) At(r, c int) float64 { return m.vals[r*4+c] }

func (m Matrix4x4) M11() float64 { return m.vals[0] }
func (m Matrix4x4) M12() float64 { return m.vals[1] }
func (m Matrix4x4) M13() float64 { return m.vals[2] }
func (m Matrix4x4) M14() float64 { return m.vals[3] }
func (m Matrix4x4) M21() float64 { return m.vals[4] }
func (m Matrix4x4) M22() float64 { return m.vals[5] }
func (m Matrix4x4) M23() float64 { return m.vals[6] }
func (m Matrix4x4) M24() float64 { return m.vals[7] }
func (m Matrix4x4) M31() float64 { return m.vals[8] }
func (m Matrix4x4) M32() float64 { return m.vals[9] }
func (m Matrix4x4) M33() float64 { return m.vals[10] }
func (m Matrix4x4) M34() float64 { return m.vals[11] }
func (m Matrix4x4) M41() float64 { return m.vals[12] }
func (m Matrix4x4) M42() float64 { return m.vals[13] }
func (m Matrix4x4) M43() float64 { return m.vals[14] }
func (m Matrix4x4) M44() float64 { return m.vals[15] }

// Row returns row r (0-indexed) of m.
func (m Matrix4x4) Row(r int) Vector4 {
	return Vector4{m.vals[r*4], m.vals[r*4+1], m.vals[r*4+2], m.vals[r*4+3]}
}

// Col returns column c (0-indexed) of m.
func (m Matrix4x4) Col(c int) Vector4 {
	return Vector4{m.vals[c], m.vals[4+c], m.vals[8+c], m.vals[12+c]}
}

// ScaleMatrix returns a non-uniform scale matrix.
func ScaleMatrix(s Vector3) Matrix4x4 {
	return NewMatrix4x4(
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	)
}

// ScaleMatrixUniform returns a uniform scale matrix.
func ScaleMatrixUniform(s float64) Matrix4x4 {
	return ScaleMatrix(Vector3{s, s, s})
}

// FlipMatrix returns a mirror matrix negating the selected axes.
func FlipMatrix(x, y, z bool) Matrix4x4 {
	s := One
	if x {
		s.X = -1
	}
	if y {
		s.Y = -1
	}
	if z {
		s.Z = -1
	}
	return ScaleMatrix(s)
}

// TranslationMatrix returns a translation matrix.
func TranslationMatrix(t Vector3) Matrix4x4 {
	return NewMatrix4x4(
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	)
}

// RotationMatrix returns the rotation matrix of q, so that
// RotationMatrix(q).MulVector3(v) == q.MulVector3(v).
func RotationMatrix(q Quaternion) Matrix4x4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return NewMatrix4x4(
		1-2*(yy+zz), 2*(xy-wz), 2*(xz+wy), 0,
		2*(xy+wz), 1-2*(xx+zz), 2*(yz-wx), 0,
		2*(xz-wy), 2*(yz+wx), 1-2*(xx+yy), 0,
		0, 0, 0, 1,
	)
}

// TRS returns Translation(t) * Rotation(r) * Scale(s); applied to a
// vector the scale acts first and the translation last.
func TRS(t Vector3, r Quaternion, s Vector3) Matrix4x4 {
	return TranslationMatrix(t).Mul(RotationMatrix(r)).Mul(ScaleMatrix(s))
}

// LocalToWorldMatrix is the TRS matrix of a local frame.
func LocalToWorldMatrix(pos Vector3, rot Quaternion, scale Vector3) Matrix4x4 {
	return TRS(pos, rot, scale)
}

// WorldToLocalMatrix is the inverse of LocalToWorldMatrix. ok is
// false when any scale component is zero.
func WorldToLocalMatrix(pos Vector3, rot Quaternion, scale Vector3) (Matrix4x4, bool) {
	return LocalToWorldMatrix(pos, rot, scale).Inverse()
}

// Add returns m + n.
func (m Matrix4x4) Add(n Matrix4x4) Matrix4x4 {
	res, _ := m.Mat().Add(n.Mat())
	return NewMatrix4x4(res.Values()...)
}

// Sub returns m - n.
func (m Matrix4x4) Sub(n Matrix4x4) Matrix4x4 {
	res, _ := m.Mat().Sub(n.Mat())
	return NewMatrix4x4(res.Values()...)
}

// MulScalar returns s * m.
func (m Matrix4x4) MulScalar(s float64) Matrix4x4 {
	return NewMatrix4x4(m.Mat().MulScalar(s).Values()...)
}

// Negate returns -m.
func (m Matrix4x4) Negate() Matrix4x4 {
	return NewMatrix4x4(m.Mat().Negate().Values()...)
}

// Transpose returns the transpose of m.
func (m Matrix4x4) Transpose() Matrix4x4 {
	return NewMatrix4x4(m.Mat().Transpose().Values()...)
}

// Mul returns the product m * n.
func (m Matrix4x4) Mul(n Matrix4x4) Matrix4x4 {
	res, _ := m.Mat().Mul(n.Mat())
	return NewMatrix4x4(res.Values()...)
}

// MulVector4 returns m * v, treating v as a column vector.
func (m Matrix4x4) MulVector4(v Vector4) Vector4 {
	a := &m.vals
	return Vector4{
		X: a[0]*v.X + a[1]*v.Y + a[2]*v.Z + a[3]*v.W,
		Y: a[4]*v.X + a[5]*v.Y + a[6]*v.Z + a[7]*v.W,
		Z: a[8]*v.X + a[9]*v.Y + a[10]*v.Z + a[11]*v.W,
		W: a[12]*v.X + a[13]*v.Y + a[14]*v.Z + a[15]*v.W,
	}
}

// MulVector3 lifts v to a homogeneous point (w=1), multiplies, and
// drops w. The matrix is assumed affine; no perspective divide.
func (m Matrix4x4) MulVector3(v Vector3) Vector3 {
	return m.MulVector4(v.Homogeneous()).Vector3()
}

// Determinant returns the determinant by cofactor expansion over
// 2x2 minors.
func (m Matrix4x4) Determinant() float64 {
	s, c := m.minors()
	return s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
}

// Inverse returns the adjugate-over-determinant inverse. ok is false
// when the determinant is exactly zero; the matrix result is then
// meaningless.
func (m Matrix4x4) Inverse() (Matrix4x4, bool) {
	s, c := m.minors()
	det := s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
	if det == 0 {
		return Matrix4x4{}, false
	}
	idet := 1 / det

	a := &m.vals
	return NewMatrix4x4(
		(c[5]*a[5]-c[4]*a[6]+c[3]*a[7])*idet,
		(-c[5]*a[1]+c[4]*a[2]-c[3]*a[3])*idet,
		(s[5]*a[13]-s[4]*a[14]+s[3]*a[15])*idet,
		(-s[5]*a[9]+s[4]*a[10]-s[3]*a[11])*idet,
		(-c[5]*a[4]+c[2]*a[6]-c[1]*a[7])*idet,
		(c[5]*a[0]-c[2]*a[2]+c[1]*a[3])*idet,
		(-s[5]*a[12]+s[2]*a[14]-s[1]*a[15])*idet,
		(s[5]*a[8]-s[2]*a[10]+s[1]*a[11])*idet,
		(c[4]*a[4]-c[2]*a[5]+c[0]*a[7])*idet,
		(-c[4]*a[0]+c[2]*a[1]-c[0]*a[3])*idet,
		(s[4]*a[12]-s[2]*a[13]+s[0]*a[15])*idet,
		(-s[4]*a[8]+s[2]*a[9]-s[0]*a[11])*idet,
		(-c[3]*a[4]+c[1]*a[5]-c[0]*a[6])*idet,
		(c[3]*a[0]-c[1]*a[1]+c[0]*a[2])*idet,
		(-s[3]*a[12]+s[1]*a[13]-s[0]*a[14])*idet,
		(s[3]*a[8]-s[1]*a[9]+s[0]*a[10])*idet,
	), true
}

// minors returns the six 2x2 minors of the top two and bottom two
// rows used by both Determinant and Inverse.
func (m Matrix4x4) minors() (s, c [6]float64) {
	a := &m.vals
	s[0] = a[0]*a[5] - a[1]*a[4]
	s[1] = a[0]*a[6] - a[2]*a[4]
	s[2] = a[0]*a[7] - a[3]*a[4]
	s[3] = a[1]*a[6] - a[2]*a[5]
	s[4] = a[1]*a[7] - a[3]*a[5]
	s[5] = a[2]*a[7] - a[3]*a[6]
	c[0] = a[8]*a[13] - a[9]*a[12]
	c[1] = a[8]*a[14] - a[10]*a[12]
	c[2] = a[8]*a[15] - a[11]*a[12]
	c[3] = a[9]*a[14] - a[10]*a[13]
	c[4] = a[9]*a[15] - a[11]*a[13]
	c[5] = a[10]*a[15] - a[11]*a[14]
	return
}

// Equals reports whether all elements of m and n match within
// linmath.Epsilon.
func (m Matrix4x4) Equals(n Matrix4x4) bool {
	for i := range m.vals {
		if !linmath.NearEqual(m.vals[i], n.vals[i]) {
			return false
		}
	}
	return true
}

func (m Matrix4x4) String() string {
	return m.Mat().String()
}
