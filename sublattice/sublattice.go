// SPDX-License-Identifier: MIT
// Package: lvcone/sublattice
//
// sublattice.go - construction, coordinate changes and composition.

package sublattice

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

// ErrDimension is returned when a vector or representation has the wrong size.
var ErrDimension = errors.New("sublattice: dimension mismatch")

// ErrNotSaturated is returned by ComposeDual when the inner representation
// has a non-trivial annihilator.
var ErrNotSaturated = errors.New("sublattice: dual composition needs a saturated representation")

// ErrInvalidCongruence is returned for a non-positive congruence modulus.
var ErrInvalidCongruence = errors.New("sublattice: congruence modulus must be positive")

// Representation is a change of basis from Zᵈ to a rank r sublattice.
type Representation[T any] struct {
	ring     number.Ring[T]
	dim      int
	rank     int
	a        *matrix.Dense[T] // r×d
	b        *matrix.Dense[T] // d×r
	c        T
	identity bool
}

// Identity returns the trivial representation of Zᵈ.
func Identity[T any](r number.Ring[T], dim int) *Representation[T] {
	id := matrix.Identity(r, dim)

	return &Representation[T]{ring: r, dim: dim, rank: dim, a: id, b: id.Clone(), c: r.One(), identity: true}
}

// FromGenerators builds the representation of the lattice generated by the
// rows of m, or of its saturation span_R(m) ∩ Zᵈ when saturate is set.
// Stage 1: column echelon M·U = [L|0], V = U⁻¹; rows of V_r span the saturation.
// Stage 2 (lattice): H = Hermite(L), A = H·V_r, B = U_r·adj(H), c = |det H|.
func FromGenerators[T any](m *matrix.Dense[T], saturate bool) (*Representation[T], error) {
	r := m.Ring()
	d := m.Cols()
	cf := matrix.ColumnEchelon(m)
	if err := number.Check(r); err != nil {
		return nil, err
	}
	rank := cf.Rank
	if rank == d && isUnimodularLattice(cf, saturate) {
		return Identity(r, d), nil
	}
	first := make([]int, rank)
	for i := range first {
		first[i] = i
	}
	vr, err := matrix.Submatrix(cf.V, first)
	if err != nil {
		return nil, fmt.Errorf("FromGenerators: %w", err)
	}
	ur, err := matrix.SelectColumns(cf.U, first)
	if err != nil {
		return nil, fmt.Errorf("FromGenerators: %w", err)
	}
	rep := &Representation[T]{ring: r, dim: d, rank: rank, a: vr, b: ur, c: r.One()}
	if saturate || rank == 0 {
		return rep, nil
	}

	h, _ := matrix.Hermite(cf.L)
	det, err := matrix.Determinant(h)
	if err != nil {
		return nil, fmt.Errorf("FromGenerators: %w", err)
	}
	adj, err := matrix.Adjugate(h)
	if err != nil {
		return nil, fmt.Errorf("FromGenerators: %w", err)
	}
	a, err := matrix.Mul(h, vr)
	if err != nil {
		return nil, fmt.Errorf("FromGenerators: %w", err)
	}
	b, err := matrix.Mul(ur, adj)
	if err != nil {
		return nil, fmt.Errorf("FromGenerators: %w", err)
	}
	if r.Sign(det) < 0 {
		det = r.Neg(det)
		b = matrix.Negated(b)
	}
	rep.a, rep.b, rep.c = a, b, det
	rep.reduce()

	return rep, number.Check(r)
}

// isUnimodularLattice reports whether a full rank lattice is all of Zᵈ.
func isUnimodularLattice[T any](cf matrix.ColumnForm[T], saturate bool) bool {
	if saturate {
		return true
	}
	h, _ := matrix.Hermite(cf.L)
	det, err := matrix.Determinant(h)

	return err == nil && cf.L.Ring().Equal(cf.L.Ring().Abs(det), cf.L.Ring().One())
}

// reduce cancels a common factor of B and c.
func (s *Representation[T]) reduce() {
	r := s.ring
	g := s.c
	for i := 0; i < s.b.Rows(); i++ {
		g = r.Gcd(g, matrix.VectorGcd(r, s.b.Row(i)))
	}
	if r.IsZero(g) || r.Equal(g, r.One()) {
		return
	}
	for i := 0; i < s.b.Rows(); i++ {
		matrix.DivideVec(r, s.b.Row(i), g)
	}
	s.c = r.Quo(s.c, g)
}

// FromEquations returns the saturated lattice {x ∈ Zᵈ : E·x = 0}.
func FromEquations[T any](e *matrix.Dense[T]) (*Representation[T], error) {
	if e.Rows() == 0 {
		return Identity(e.Ring(), e.Cols()), nil
	}

	return FromGenerators(matrix.Kernel(e), true)
}

// CongruenceLattice returns generators of {x ∈ Zᵈ : C·x ≡ 0 mod m} where every
// row of cong is (c_1, ..., c_d, m).
// Stage 1: kernel of [C | −diag(m)].
// Stage 2: projection of the kernel basis onto the first d coordinates.
func CongruenceLattice[T any](cong *matrix.Dense[T]) (*matrix.Dense[T], error) {
	r := cong.Ring()
	n := cong.Rows()
	if cong.Cols() < 1 {
		return nil, fmt.Errorf("CongruenceLattice: %w", ErrDimension)
	}
	d := cong.Cols() - 1
	ext, _ := matrix.NewDense(r, n, d+n)
	for i := 0; i < n; i++ {
		row := cong.Row(i)
		if r.Sign(row[d]) <= 0 {
			return nil, fmt.Errorf("CongruenceLattice: row %d: %w", i, ErrInvalidCongruence)
		}
		for j := 0; j < d; j++ {
			_ = ext.Set(i, j, row[j])
		}
		_ = ext.Set(i, d+i, r.Neg(row[d]))
	}
	k := matrix.Kernel(ext)
	cols := make([]int, d)
	for j := range cols {
		cols[j] = j
	}
	gens, err := matrix.SelectColumns(k, cols)
	if err != nil {
		return nil, fmt.Errorf("CongruenceLattice: %w", err)
	}

	return gens, number.Check(r)
}

// Ring returns the arithmetic.
func (s *Representation[T]) Ring() number.Ring[T] { return s.ring }

// Dim returns the ambient dimension d.
func (s *Representation[T]) Dim() int { return s.dim }

// Rank returns the rank r of the sublattice.
func (s *Representation[T]) Rank() int { return s.rank }

// IsIdentity reports whether the representation is the trivial one.
func (s *Representation[T]) IsIdentity() bool { return s.identity }

// Embedding returns A.
func (s *Representation[T]) Embedding() *matrix.Dense[T] { return s.a }

// Projection returns B.
func (s *Representation[T]) Projection() *matrix.Dense[T] { return s.b }

// Annihilator returns c.
func (s *Representation[T]) Annihilator() T { return s.c }

// ExternalIndex returns [span_R(L) ∩ Zᵈ : L], the product of the invariant
// factors of A.
func (s *Representation[T]) ExternalIndex() T {
	r := s.ring
	idx := r.One()
	if s.identity {
		return idx
	}
	for _, f := range matrix.Smith(s.a).Diagonal {
		idx = r.Mul(idx, f)
	}

	return idx
}

// ToSublattice returns the coordinates v·B/c of v ∈ L.
func (s *Representation[T]) ToSublattice(v []T) ([]T, error) {
	if len(v) != s.dim {
		return nil, fmt.Errorf("ToSublattice: %w", ErrDimension)
	}
	if s.identity {
		return matrix.CloneVec(v), nil
	}
	w, err := matrix.VxM(v, s.b)
	if err != nil {
		return nil, fmt.Errorf("ToSublattice: %w", err)
	}
	if !s.ring.Equal(s.c, s.ring.One()) {
		matrix.DivideVec(s.ring, w, s.c)
	}

	return w, nil
}

// FromSublattice returns w·A.
func (s *Representation[T]) FromSublattice(w []T) ([]T, error) {
	if len(w) != s.rank {
		return nil, fmt.Errorf("FromSublattice: %w", ErrDimension)
	}
	if s.identity {
		return matrix.CloneVec(w), nil
	}
	v, err := matrix.VxM(w, s.a)
	if err != nil {
		return nil, fmt.Errorf("FromSublattice: %w", err)
	}

	return v, nil
}

// ToSublatticeDual restricts the linear form f to L and makes it primitive.
func (s *Representation[T]) ToSublatticeDual(f []T) ([]T, error) {
	g, err := s.ToSublatticeDualNoDiv(f)
	if err != nil {
		return nil, err
	}
	matrix.MakePrimitive(s.ring, g)

	return g, nil
}

// ToSublatticeDualNoDiv restricts f to L without normalization: g = A·f.
func (s *Representation[T]) ToSublatticeDualNoDiv(f []T) ([]T, error) {
	if len(f) != s.dim {
		return nil, fmt.Errorf("ToSublatticeDual: %w", ErrDimension)
	}
	if s.identity {
		return matrix.CloneVec(f), nil
	}

	return matrix.MxV(s.a, f)
}

// FromSublatticeDual lifts a form on L to Zᵈ: B·g made primitive.
func (s *Representation[T]) FromSublatticeDual(g []T) ([]T, error) {
	if len(g) != s.rank {
		return nil, fmt.Errorf("FromSublatticeDual: %w", ErrDimension)
	}
	if s.identity {
		return matrix.CloneVec(g), nil
	}
	f, err := matrix.MxV(s.b, g)
	if err != nil {
		return nil, fmt.Errorf("FromSublatticeDual: %w", err)
	}
	matrix.MakePrimitive(s.ring, f)

	return f, nil
}

// mapRows applies fn to every row of m, producing a matrix with cols columns.
func mapRows[T any](m *matrix.Dense[T], cols int, fn func([]T) ([]T, error)) (*matrix.Dense[T], error) {
	out, _ := matrix.NewDense(m.Ring(), 0, cols)
	for i := 0; i < m.Rows(); i++ {
		v, err := fn(m.Row(i))
		if err != nil {
			return nil, err
		}
		if err = out.AppendRow(v); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ToSublatticeRows maps every row of m into sublattice coordinates.
func (s *Representation[T]) ToSublatticeRows(m *matrix.Dense[T]) (*matrix.Dense[T], error) {
	return mapRows(m, s.rank, s.ToSublattice)
}

// FromSublatticeRows maps every row of m back into Zᵈ.
func (s *Representation[T]) FromSublatticeRows(m *matrix.Dense[T]) (*matrix.Dense[T], error) {
	return mapRows(m, s.dim, s.FromSublattice)
}

// ToSublatticeDualRows restricts every row of m (a form) to L.
func (s *Representation[T]) ToSublatticeDualRows(m *matrix.Dense[T]) (*matrix.Dense[T], error) {
	return mapRows(m, s.rank, s.ToSublatticeDual)
}

// FromSublatticeDualRows lifts every row of m (a form on L) to Zᵈ.
func (s *Representation[T]) FromSublatticeDualRows(m *matrix.Dense[T]) (*matrix.Dense[T], error) {
	return mapRows(m, s.dim, s.FromSublatticeDual)
}

// Compose returns the representation of inner (given in coordinates of s)
// as a sublattice of Zᵈ: A = A₂·A₁, B = B₁·B₂, c = c₁c₂.
func (s *Representation[T]) Compose(inner *Representation[T]) (*Representation[T], error) {
	if inner.dim != s.rank {
		return nil, fmt.Errorf("Compose: %w", ErrDimension)
	}
	if inner.identity {
		return s, nil
	}
	if s.identity {
		return inner, nil
	}
	a, err := matrix.Mul(inner.a, s.a)
	if err != nil {
		return nil, fmt.Errorf("Compose: %w", err)
	}
	b, err := matrix.Mul(s.b, inner.b)
	if err != nil {
		return nil, fmt.Errorf("Compose: %w", err)
	}
	out := &Representation[T]{ring: s.ring, dim: s.dim, rank: inner.rank, a: a, b: b, c: s.ring.Mul(s.c, inner.c)}
	out.reduce()

	return out, number.Check(s.ring)
}

// ComposeDual composes with a representation of a sublattice of the dual
// space of L. The primal side becomes a quotient: A = B₂ᵀ·A₁, B = B₁·A₂ᵀ.
// inner must be saturated (c = 1).
func (s *Representation[T]) ComposeDual(inner *Representation[T]) (*Representation[T], error) {
	if inner.dim != s.rank {
		return nil, fmt.Errorf("ComposeDual: %w", ErrDimension)
	}
	if !s.ring.Equal(inner.c, s.ring.One()) {
		return nil, fmt.Errorf("ComposeDual: %w", ErrNotSaturated)
	}
	if inner.identity {
		return s, nil
	}
	a, err := matrix.Mul(inner.b.Transpose(), s.a)
	if err != nil {
		return nil, fmt.Errorf("ComposeDual: %w", err)
	}
	b, err := matrix.Mul(s.b, inner.a.Transpose())
	if err != nil {
		return nil, fmt.Errorf("ComposeDual: %w", err)
	}

	return &Representation[T]{ring: s.ring, dim: s.dim, rank: inner.rank, a: a, b: b, c: s.c}, number.Check(s.ring)
}

// Equations returns a basis of the linear forms vanishing on L.
func (s *Representation[T]) Equations() *matrix.Dense[T] {
	if s.rank == s.dim {
		out, _ := matrix.NewDense(s.ring, 0, s.dim)
		return out
	}

	return matrix.Kernel(s.a)
}

// Congruences returns rows (c_1..c_d, m) with m > 1 such that L is cut out of
// its saturation by c·x ≡ 0 mod m.
// Stage 1: A·U = [L|0]; coordinates of the saturation are y = x·U_r.
// Stage 2: Smith form P·L·Q = D; x ∈ L ⇔ (x·U_r·Q)_i ≡ 0 mod d_i.
func (s *Representation[T]) Congruences() *matrix.Dense[T] {
	r := s.ring
	out, _ := matrix.NewDense(r, 0, s.dim+1)
	if s.identity || s.rank == 0 {
		return out
	}
	cf := matrix.ColumnEchelon(s.a)
	sf := matrix.Smith(cf.L)
	first := make([]int, s.rank)
	for i := range first {
		first[i] = i
	}
	ur, _ := matrix.SelectColumns(cf.U, first)
	uq, _ := matrix.Mul(ur, sf.Q)
	one := r.One()
	for i, d := range sf.Diagonal {
		if r.Equal(d, one) {
			continue
		}
		row := make([]T, s.dim+1)
		for j := 0; j < s.dim; j++ {
			v, _ := uq.At(j, i)
			row[j] = r.Mod(v, d)
		}
		row[s.dim] = d
		_ = out.AppendRow(row)
	}

	return out
}
