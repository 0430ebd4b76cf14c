package linmath

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Matrix is an immutable rows×cols matrix with row-major flat
// storage. The zero value is a 0×0 matrix.
type Matrix struct {
	rows, cols int
	vals       []float64
}

// NewMatrix builds a rows×cols matrix from row-major values. Missing
// values are zero-padded on the right, extra values are truncated.
func NewMatrix(rows, cols int, values ...float64) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, errors.Wrapf(ErrInvalidArgument, "matrix shape %dx%d", rows, cols)
	}
	vals := make([]float64, rows*cols)
	for i := 0; i < len(vals) && i < len(values); i++ {
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return Matrix{}, errors.Wrapf(ErrInvalidArgument, "non-finite component %v at %d", values[i], i)
		}
		vals[i] = values[i]
	}
	return Matrix{rows: rows, cols: cols, vals: vals}, nil
}

// IdentityMatrix returns the n×n identity.
func IdentityMatrix(n int) (Matrix, error) {
	if n < 0 {
		return Matrix{}, errors.Wrapf(ErrInvalidArgument, "matrix shape %dx%d", n, n)
	}
	vals := make([]float64, n*n)
	for i := 0; i < n; i++ {
		vals[i*n+i] = 1
	}
	return Matrix{rows: n, cols: n, vals: vals}, nil
}

// Rows returns the row count of m.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the column count of m.
func (m Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c (0-indexed).
func (m Matrix) At(r, c int) float64 { return m.vals[r*m.cols+c] }

// Values returns a copy of the row-major values of m.
func (m Matrix) Values() []float64 {
	vals := make([]float64, len(m.vals))
	copy(vals, m.vals)
	return vals
}

// Row returns row r of m as a vector.
func (m Matrix) Row(r int) Vector {
	vals := make([]float64, m.cols)
	copy(vals, m.vals[r*m.cols:(r+1)*m.cols])
	return Vector{vals: vals}
}

// Col returns column c of m as a vector.
func (m Matrix) Col(c int) Vector {
	vals := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		vals[r] = m.vals[r*m.cols+c]
	}
	return Vector{vals: vals}
}

func (m Matrix) sameShape(n Matrix, op string) error {
	if m.rows != n.rows || m.cols != n.cols {
		return errors.Wrapf(ErrDimensionMismatch, "%s: %dx%d != %dx%d", op, m.rows, m.cols, n.rows, n.cols)
	}
	return nil
}

// Add returns m + n.
func (m Matrix) Add(n Matrix) (Matrix, error) {
	if err := m.sameShape(n, "add"); err != nil {
		return Matrix{}, err
	}
	vals := make([]float64, len(m.vals))
	for i := range vals {
		vals[i] = m.vals[i] + n.vals[i]
	}
	return Matrix{rows: m.rows, cols: m.cols, vals: vals}, nil
}

// Sub returns m - n.
func (m Matrix) Sub(n Matrix) (Matrix, error) {
	if err := m.sameShape(n, "sub"); err != nil {
		return Matrix{}, err
	}
	vals := make([]float64, len(m.vals))
	for i := range vals {
		vals[i] = m.vals[i] - n.vals[i]
	}
	return Matrix{rows: m.rows, cols: m.cols, vals: vals}, nil
}

// MulScalar returns s * m.
func (m Matrix) MulScalar(s float64) Matrix {
	vals := make([]float64, len(m.vals))
	for i := range vals {
		vals[i] = m.vals[i] * s
	}
	return Matrix{rows: m.rows, cols: m.cols, vals: vals}
}

// Negate returns -m.
func (m Matrix) Negate() Matrix { return m.MulScalar(-1) }

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	vals := make([]float64, len(m.vals))
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			vals[c*m.rows+r] = m.vals[r*m.cols+c]
		}
	}
	return Matrix{rows: m.cols, cols: m.rows, vals: vals}
}

// Mul returns the chain product m * ns[0] * ns[1] * ... with inner
// dimension checks at every step.
func (m Matrix) Mul(ns ...Matrix) (Matrix, error) {
	out := m
	for _, n := range ns {
		if out.cols != n.rows {
			return Matrix{}, errors.Wrapf(ErrDimensionMismatch,
				"mul: %dx%d by %dx%d", out.rows, out.cols, n.rows, n.cols)
		}
		vals := make([]float64, out.rows*n.cols)
		for r := 0; r < out.rows; r++ {
			for c := 0; c < n.cols; c++ {
				s := 0.0
				for k := 0; k < out.cols; k++ {
					s += out.vals[r*out.cols+k] * n.vals[k*n.cols+c]
				}
				vals[r*n.cols+c] = s
			}
		}
		out = Matrix{rows: out.rows, cols: n.cols, vals: vals}
	}
	return out, nil
}

// MulVector returns m * v, treating v as a column vector.
func (m Matrix) MulVector(v Vector) (Vector, error) {
	if m.cols != v.Dim() {
		return Vector{}, errors.Wrapf(ErrDimensionMismatch,
			"mulvector: %dx%d by %d", m.rows, m.cols, v.Dim())
	}
	vals := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		s := 0.0
		for c := 0; c < m.cols; c++ {
			s += m.vals[r*m.cols+c] * v.vals[c]
		}
		vals[r] = s
	}
	return Vector{vals: vals}, nil
}

// Equals reports whether m and n have the same shape and all
// elements match within Epsilon.
func (m Matrix) Equals(n Matrix) bool {
	if m.rows != n.rows || m.cols != n.cols {
		return false
	}
	for i := range m.vals {
		if !NearEqual(m.vals[i], n.vals[i]) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		if r != 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte('[')
		for c := 0; c < m.cols; c++ {
			if c != 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFloat(m.vals[r*m.cols+c]))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}
