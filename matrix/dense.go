// SPDX-License-Identifier: MIT
// Dense is a concrete, row-major exact integer matrix, storing elements in a
// flat slice for cache friendliness. Zero-row matrices are valid: they carry
// their column count so that empty constraint systems keep their dimension.

package matrix

import (
	"math/big"
	"strings"

	"github.com/katalvlaran/lvcone/number"
)

// Dense is a row-major r×c matrix over ring.
type Dense[T any] struct {
	ring number.Ring[T]
	r, c int // number of rows and columns
	data []T // flat backing storage, length == r*c
}

// NewDense creates an r×c zero matrix.
// Stage 1 (Validate): r, c ≥ 0.
// Stage 2 (Prepare): allocate and fill with ring zero.
// Complexity: O(r*c).
func NewDense[T any](ring number.Ring[T], rows, cols int) (*Dense[T], error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opNew, ErrBadShape)
	}

	return zeros(ring, rows, cols), nil
}

// zeros is NewDense without validation, for internal callers with known shapes.
func zeros[T any](ring number.Ring[T], rows, cols int) *Dense[T] {
	data := make([]T, rows*cols)
	z := ring.Zero()
	for i := range data {
		data[i] = z
	}

	return &Dense[T]{ring: ring, r: rows, c: cols, data: data}
}

// Identity returns the n×n identity matrix.
func Identity[T any](ring number.Ring[T], n int) *Dense[T] {
	m := zeros(ring, n, n)
	one := ring.One()
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}

	return m
}

// FromRows builds a matrix with cols columns from rows; every row must have
// exactly cols entries. The values are copied by reference.
func FromRows[T any](ring number.Ring[T], cols int, rows [][]T) (*Dense[T], error) {
	if cols < 0 {
		return nil, matrixErrorf(opNew, ErrBadShape)
	}
	m := zeros(ring, len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, matrixErrorf(opNew, ErrBadShape)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// FromInt64 builds a matrix from int64 rows.
func FromInt64[T any](ring number.Ring[T], cols int, rows [][]int64) (*Dense[T], error) {
	conv := make([][]T, len(rows))
	for i, row := range rows {
		conv[i] = make([]T, len(row))
		for j, v := range row {
			conv[i][j] = ring.FromInt64(v)
		}
	}

	return FromRows(ring, cols, conv)
}

// FromBig builds a matrix from *big.Int rows.
func FromBig[T any](ring number.Ring[T], cols int, rows [][]*big.Int) (*Dense[T], error) {
	conv := make([][]T, len(rows))
	for i, row := range rows {
		conv[i] = make([]T, len(row))
		for j, v := range row {
			conv[i][j] = ring.FromBig(v)
		}
	}

	return FromRows(ring, cols, conv)
}

// Ring returns the arithmetic of m.
func (m *Dense[T]) Ring() number.Ring[T] { return m.ring }

// Rows returns the number of rows in the matrix.
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense[T]) Cols() int { return m.c }

// At retrieves the element at (row, col).
func (m *Dense[T]) At(row, col int) (T, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		var zero T
		return zero, matrixErrorf(opAt, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col).
func (m *Dense[T]) Set(row, col int, v T) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return matrixErrorf(opSet, ErrOutOfRange)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Row returns a view of row i. Writing through the view mutates m.
// Panics on an out-of-range index like slice indexing does.
func (m *Dense[T]) Row(i int) []T {
	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// RowCopy returns a fresh copy of row i.
func (m *Dense[T]) RowCopy(i int) []T {
	out := make([]T, m.c)
	copy(out, m.Row(i))

	return out
}

// ToRows returns copies of all rows.
func (m *Dense[T]) ToRows() [][]T {
	out := make([][]T, m.r)
	for i := range out {
		out[i] = m.RowCopy(i)
	}

	return out
}

// AppendRow appends a copy of v as the last row.
func (m *Dense[T]) AppendRow(v []T) error {
	if len(v) != m.c {
		return matrixErrorf(opConcat, ErrDimensionMismatch)
	}
	m.data = append(m.data, v...)
	m.r++

	return nil
}

// Clone returns a deep copy of m.
func (m *Dense[T]) Clone() *Dense[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)

	return &Dense[T]{ring: m.ring, r: m.r, c: m.c, data: data}
}

// Transpose returns mᵀ.
func (m *Dense[T]) Transpose() *Dense[T] {
	t := zeros(m.ring, m.c, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			t.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return t
}

// Equal reports whether m and o have the same shape and entries.
func (m *Dense[T]) Equal(o *Dense[T]) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for i := range m.data {
		if !m.ring.Equal(m.data[i], o.data[i]) {
			return false
		}
	}

	return true
}

// IsZero reports whether every entry is zero (true for empty matrices).
func (m *Dense[T]) IsZero() bool {
	for _, v := range m.data {
		if !m.ring.IsZero(v) {
			return false
		}
	}

	return true
}

// String renders m one row per line.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(VectorString(m.ring, m.Row(i)))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Int64Rows converts m into int64 rows; entries outside int64 are truncated
// by big.Int.Int64 semantics, so use BigRows for unbounded data.
func (m *Dense[T]) Int64Rows() [][]int64 {
	out := make([][]int64, m.r)
	for i := range out {
		out[i] = make([]int64, m.c)
		for j := 0; j < m.c; j++ {
			out[i][j] = m.ring.ToBig(m.data[i*m.c+j]).Int64()
		}
	}

	return out
}

// BigRows converts m into *big.Int rows.
func (m *Dense[T]) BigRows() [][]*big.Int {
	out := make([][]*big.Int, m.r)
	for i := range out {
		out[i] = make([]*big.Int, m.c)
		for j := 0; j < m.c; j++ {
			out[i][j] = m.ring.ToBig(m.data[i*m.c+j])
		}
	}

	return out
}

// Convert maps m from its ring into dst. A nil m converts to nil.
func Convert[S, D any](m *Dense[S], dst number.Ring[D]) *Dense[D] {
	if m == nil {
		return nil
	}
	out := zeros(dst, m.r, m.c)
	for i, v := range m.data {
		out.data[i] = number.Convert(m.ring, dst, v)
	}

	return out
}
