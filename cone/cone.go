// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// cone.go - construction, input normalization and modification.
//
// Input rules:
//   • Generator kinds and constraint kinds do not mix, except the pair
//     PrecomputedExtremeRays + PrecomputedSupportHyperplanes.
//   • Vertices, InhomInequalities or Dehomogenization make the cone
//     inhomogeneous: homogeneous kinds get a 0 appended and the embedding
//     dimension counts the homogenizing coordinate.
//   • Grading, Dehomogenization and Signs are single rows.

package cone

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sort"
	"sync"

	"github.com/katalvlaran/lvcone"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
)

const (
	opNew             = "cone.New"
	opCompute         = "cone.Compute"
	opAddInequalities = "cone.AddInequalities"
	opAddGenerators   = "cone.AddGenerators"
)

var bigRing number.Ring[*big.Int] = number.NewBig()

// Cone is a rational polyhedral cone with a property cache. Methods are safe
// for concurrent use; Compute calls are serialized.
type Cone struct {
	mu    sync.Mutex
	dim   int
	inhom bool
	input map[InputType]*matrix.Dense[*big.Int]
	opts  Options
	log   *slog.Logger
	st    *results
}

// New builds a cone from int64 input rows.
func New(input map[InputType][][]int64, opts ...Option) (*Cone, error) {
	raw := make(map[InputType][][]*big.Int, len(input))
	for t, rows := range input {
		conv := make([][]*big.Int, len(rows))
		for i, row := range rows {
			conv[i] = make([]*big.Int, len(row))
			for j, v := range row {
				conv[i][j] = big.NewInt(v)
			}
		}
		raw[t] = conv
	}

	return NewBig(raw, opts...)
}

// NewBig builds a cone from arbitrary precision input rows. The rows are
// copied.
func NewBig(input map[InputType][][]*big.Int, opts ...Option) (*Cone, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = lvcone.Logger()
	}
	c := &Cone{opts: o, log: log, st: newResults()}
	if err := c.load(input); err != nil {
		return nil, err
	}

	return c, nil
}

func malformed(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), ErrMalformedInput)
}

// sortedTypes returns the keys of input in declaration order.
func sortedTypes[V any](input map[InputType]V) []InputType {
	types := make([]InputType, 0, len(input))
	for t := range input {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	return types
}

// load validates input and stores it homogenized.
func (c *Cone) load(input map[InputType][][]*big.Int) error {
	var gen, cons bool
	for _, t := range sortedTypes(input) {
		if t < Generators || t > Dehomogenization {
			return malformed(opNew, "unknown input type %d", int(t))
		}
		if len(input[t]) == 0 {
			continue
		}
		c.inhom = c.inhom || t.inhomogeneous()
		gen = gen || t.generatorType()
		cons = cons || t.constraintType()
	}
	if len(input[PrecomputedExtremeRays]) > 0 && len(input[PrecomputedSupportHyperplanes]) > 0 {
		for _, t := range sortedTypes(input) {
			if len(input[t]) > 0 && t != PrecomputedExtremeRays && t != PrecomputedSupportHyperplanes && t != Grading {
				return malformed(opNew, "%s mixed with precomputed data", t)
			}
		}
	} else if gen && cons {
		return malformed(opNew, "generators and constraints mixed")
	}
	if !gen && !cons {
		return malformed(opNew, "no generators or constraints")
	}

	dim := -1
	for _, t := range sortedTypes(input) {
		rows := input[t]
		if len(rows) == 0 {
			continue
		}
		w := len(rows[0])
		if w == 0 {
			return malformed(opNew, "%s has empty rows", t)
		}
		for i, row := range rows {
			if len(row) != w {
				return malformed(opNew, "%s row %d has %d entries, want %d", t, i, len(row), w)
			}
			for j, v := range row {
				if v == nil {
					return malformed(opNew, "%s row %d entry %d is nil", t, i, j)
				}
			}
		}
		implied := c.impliedDim(t, w)
		if dim >= 0 && implied != dim {
			return malformed(opNew, "%s implies dimension %d, others %d", t, implied, dim)
		}
		dim = implied
	}
	if dim <= 0 {
		return malformed(opNew, "unknown ambient dimension")
	}
	c.dim = dim

	for _, t := range []InputType{Grading, Dehomogenization, Signs} {
		if n := len(input[t]); n > 1 {
			return malformed(opNew, "%s has %d rows, want 1", t, n)
		}
	}
	if c.inhom {
		for _, t := range []InputType{Polytope, Grading, PrecomputedExtremeRays, PrecomputedSupportHyperplanes} {
			if len(input[t]) > 0 {
				return malformed(opNew, "%s with inhomogeneous input", t)
			}
		}
	}
	if len(input[Polytope]) > 0 && len(input[Grading]) > 0 {
		return malformed(opNew, "Polytope carries its own grading")
	}

	c.input = make(map[InputType]*matrix.Dense[*big.Int])
	for _, t := range sortedTypes(input) {
		if len(input[t]) == 0 {
			continue
		}
		rows, err := c.normalize(t, input[t])
		if err != nil {
			return err
		}
		target := t
		if t == Signs {
			target = Inequalities
		}
		m, _ := matrix.FromRows(bigRing, len(rows[0]), rows)
		if prev, ok := c.input[target]; ok {
			m, _ = matrix.Concat(prev, m)
		}
		c.input[target] = m
	}
	if _, ok := c.input[Polytope]; ok {
		g := matrix.NewVector(bigRing, dim)
		g[dim-1] = big.NewInt(1)
		c.input[Grading], _ = matrix.FromRows(bigRing, dim, [][]*big.Int{g})
	}
	if _, ok := c.input[Dehomogenization]; c.inhom && !ok {
		e := matrix.NewVector(bigRing, dim)
		e[dim-1] = big.NewInt(1)
		c.input[Dehomogenization], _ = matrix.FromRows(bigRing, dim, [][]*big.Int{e})
	}
	if c.inhom && matrix.IsZeroVec(bigRing, c.input[Dehomogenization].Row(0)) {
		return malformed(opNew, "zero Dehomogenization")
	}

	return nil
}

// impliedDim returns the embedding dimension implied by rows of width w.
func (c *Cone) impliedDim(t InputType, w int) int {
	switch t {
	case Vertices, InhomInequalities, Dehomogenization:
		return w
	case Polytope:
		return w + 1
	case Congruences:
		w--
	}
	if c.inhom {
		return w + 1
	}

	return w
}

// normalize copies rows of kind t into homogenized form.
func (c *Cone) normalize(t InputType, rows [][]*big.Int) ([][]*big.Int, error) {
	if t == Signs {
		return c.signInequalities(rows[0])
	}
	out := make([][]*big.Int, len(rows))
	for i, row := range rows {
		v := make([]*big.Int, 0, len(row)+1)
		for _, x := range row {
			v = append(v, new(big.Int).Set(x))
		}
		last := v[len(v)-1]
		switch t {
		case Polytope:
			v = append(v, big.NewInt(1))
		case Vertices:
			if last.Sign() <= 0 {
				return nil, malformed(opNew, "vertex %d has denominator %s", i, last)
			}
		case Congruences:
			if last.Sign() <= 0 {
				return nil, malformed(opNew, "congruence %d has modulus %s", i, last)
			}
			if c.inhom {
				v = append(v[:len(v)-1], new(big.Int), last)
			}
		case Generators, Normalization, Subspace, Inequalities, Equations:
			if c.inhom {
				v = append(v, new(big.Int))
			}
		}
		out[i] = v
	}

	return out, nil
}

// signInequalities turns a sign row into coordinate inequalities.
func (c *Cone) signInequalities(signs []*big.Int) ([][]*big.Int, error) {
	var out [][]*big.Int
	for j, s := range signs {
		if !s.IsInt64() || s.Int64() < -1 || s.Int64() > 1 {
			return nil, malformed(opNew, "sign %s at %d", s, j)
		}
		if s.Sign() == 0 {
			continue
		}
		ineq := matrix.NewVector(bigRing, c.dim)
		ineq[j] = new(big.Int).Set(s)
		out = append(out, ineq)
	}
	if len(out) == 0 {
		return nil, malformed(opNew, "Signs without a non-zero entry")
	}

	return out, nil
}

// EmbeddingDimension returns the ambient dimension, including the
// homogenizing coordinate of inhomogeneous input.
func (c *Cone) EmbeddingDimension() int { return c.dim }

// IsInhomogeneous reports whether the cone homogenizes a polyhedron.
func (c *Cone) IsInhomogeneous() bool { return c.inhom }

func (c *Cone) has(t InputType) bool {
	m, ok := c.input[t]
	return ok && m.Rows() > 0
}

// trusted reports whether both precomputed matrices were given.
func (c *Cone) trusted() bool {
	return c.has(PrecomputedExtremeRays) && c.has(PrecomputedSupportHyperplanes)
}

// generatorInput reports whether the cone is described from inside.
func (c *Cone) generatorInput() bool {
	for t := range c.input {
		if t.generatorType() && c.has(t) {
			return true
		}
	}

	return false
}

// originalGenerators reports whether the input names the monoid generators.
func (c *Cone) originalGenerators() bool {
	return !c.inhom && (c.has(Generators) || c.has(Normalization) || c.has(Polytope))
}

// AddInequalities intersects the cone with {x : a·x ≥ 0} for every row a
// (width EmbeddingDimension). A cone given by generators is first replaced
// by its support hyperplanes and sublattice. Every cached property is
// dropped.
func (c *Cone) AddInequalities(ctx context.Context, rows [][]int64) error {
	extra, err := c.bigRows(opAddInequalities, rows)
	if err != nil {
		return err
	}
	if c.generatorInput() {
		if err = c.Compute(ctx, SupportHyperplanes, SublatticeEquations, SublatticeCongruences); err != nil {
			return err
		}
		c.mu.Lock()
		next := map[InputType]*matrix.Dense[*big.Int]{
			Inequalities: c.st.mats[SupportHyperplanes],
			Equations:    c.st.mats[SublatticeEquations],
			Congruences:  c.st.mats[SublatticeCongruences],
		}
		for _, t := range []InputType{Grading, Dehomogenization} {
			if m, ok := c.input[t]; ok {
				next[t] = m
			}
		}
		c.input = next
		c.mu.Unlock()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.input[Inequalities]; ok {
		extra, _ = matrix.Concat(prev, extra)
	}
	c.input[Inequalities] = extra
	c.dropEmpty()
	c.st = newResults()
	c.log.Debug("cone: inequalities added", "rows", len(rows))

	return nil
}

// AddGenerators replaces the cone by the cone generated by it and the rows
// (width EmbeddingDimension). A cone given by constraints is first replaced
// by its extreme rays; that needs a pointed cone in a saturated lattice.
// Every cached property is dropped.
func (c *Cone) AddGenerators(ctx context.Context, rows [][]int64) error {
	extra, err := c.bigRows(opAddGenerators, rows)
	if err != nil {
		return err
	}
	target := Generators
	if !c.generatorInput() {
		if err = c.Compute(ctx, ExtremeRays, SublatticeCongruences); err != nil {
			return err
		}
		c.mu.Lock()
		if c.st.mats[SublatticeCongruences].Rows() > 0 {
			c.mu.Unlock()
			return fmt.Errorf("%s: lattice with congruences: %w", opAddGenerators, ErrNotComputable)
		}
		gens := c.st.mats[ExtremeRays]
		next := map[InputType]*matrix.Dense[*big.Int]{}
		if c.inhom {
			next[Vertices] = c.st.mats[VerticesOfPolyhedron]
		}
		next[Generators] = gens
		for _, t := range []InputType{Grading, Dehomogenization} {
			if m, ok := c.input[t]; ok {
				next[t] = m
			}
		}
		c.input = next
		c.mu.Unlock()
	} else if c.has(Normalization) {
		target = Normalization
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.input[target]; ok {
		extra, _ = matrix.Concat(prev, extra)
	}
	c.input[target] = extra
	c.dropEmpty()
	c.st = newResults()
	c.log.Debug("cone: generators added", "rows", len(rows))

	return nil
}

// dropEmpty removes input matrices without rows.
func (c *Cone) dropEmpty() {
	for t, m := range c.input {
		if m.Rows() == 0 {
			delete(c.input, t)
		}
	}
}

func (c *Cone) bigRows(op string, rows [][]int64) (*matrix.Dense[*big.Int], error) {
	m, err := matrix.FromInt64(bigRing, c.dim, rows)
	if err != nil {
		return nil, malformed(op, "rows of width %d expected: %v", c.dim, err)
	}

	return m, nil
}
