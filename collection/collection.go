// SPDX-License-Identifier: MIT
// Package: lvcone/collection
//
// collection.go - the cell arena, location and refinement.

package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"

	"github.com/katalvlaran/lvcone"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/polar"
	"github.com/katalvlaran/lvcone/simplex"
)

var (
	// ErrNilInput indicates a nil generator matrix.
	ErrNilInput = errors.New("collection: nil generator matrix")

	// ErrKey indicates a cell key of the wrong size or with an index out of range.
	ErrKey = errors.New("collection: invalid cell key")

	// ErrNotPrimitive indicates a generator with a common divisor.
	ErrNotPrimitive = errors.New("collection: generator is not primitive")

	// ErrDegree indicates a generator of non-positive degree under the form
	// given to GradedVolume.
	ErrDegree = errors.New("collection: generator degree must be positive")

	// ErrBadThreads indicates a negative thread count.
	ErrBadThreads = errors.New("collection: thread count must be non-negative")
)

const (
	opNew    = "collection.New"
	opInsert = "collection.InsertVectors"
	opAdd    = "collection.AddGenerators"
	opUnimod = "collection.MakeUnimodular"
)

// Options configures a Collection.
type Options struct {
	Threads int
	Logger  *slog.Logger
}

// Option configures a Collection.
type Option func(*Options)

// WithThreads sets the worker count; 0 means NumCPU. Panics on negatives.
func WithThreads(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadThreads.Error())
		}
		o.Threads = n
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// MiniCone is one simplicial cell of the tree.
type MiniCone[T any] struct {
	ID           int
	Parent       int // -1 at level 0
	Level        int
	Key          []int // ascending generator indices
	Multiplicity T
	Children     []int

	cone *simplex.Cone[T]
}

// Leaf reports whether the cell has not been subdivided.
func (m *MiniCone[T]) Leaf() bool { return len(m.Children) == 0 }

// Place names a ray (generator index) to be inserted into a cell.
type Place struct {
	Ray  int
	Cell int
}

// Collection is a refinable triangulation.
type Collection[T any] struct {
	r      number.Ring[T]
	gens   *matrix.Dense[T]
	cells  []*MiniCone[T]
	levels [][]int
	rays   map[string]struct{}

	subdivisions int
	opts         Options
	log          *slog.Logger
}

// New builds the collection of the given triangulation of the cone spanned by
// the rows of gens. gens is copied; its rows must be primitive.
func New[T any](gens *matrix.Dense[T], triangulation []polar.Simplex[T], opts ...Option) (*Collection[T], error) {
	if gens == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNilInput)
	}
	r := gens.Ring()
	for i := 0; i < gens.Rows(); i++ {
		g := matrix.VectorGcd(r, gens.Row(i))
		if !r.IsZero(g) && !r.Equal(g, r.One()) {
			return nil, fmt.Errorf("%s: row %d: %w", opNew, i, ErrNotPrimitive)
		}
	}
	c := &Collection[T]{
		r:    r,
		gens: gens.Clone(),
		rays: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	c.log = c.opts.Logger
	if c.log == nil {
		c.log = lvcone.Logger()
	}
	d := gens.Cols()
	for _, s := range triangulation {
		if len(s.Key) != d {
			return nil, fmt.Errorf("%s: key %v in dimension %d: %w", opNew, s.Key, d, ErrKey)
		}
		key := append([]int(nil), s.Key...)
		sort.Ints(key)
		for _, g := range key {
			if g < 0 || g >= gens.Rows() {
				return nil, fmt.Errorf("%s: key %v: %w", opNew, s.Key, ErrKey)
			}
			c.rays[matrix.VectorKey(r, gens.Row(g))] = struct{}{}
		}
		c.add(0, -1, key, s.Volume)
	}

	return c, nil
}

// add appends a cell to the arena.
func (c *Collection[T]) add(level, parent int, key []int, mult T) {
	m := &MiniCone[T]{ID: len(c.cells), Parent: parent, Level: level, Key: key, Multiplicity: mult}
	c.cells = append(c.cells, m)
	for len(c.levels) <= level {
		c.levels = append(c.levels, nil)
	}
	c.levels[level] = append(c.levels[level], m.ID)
	if parent >= 0 {
		c.cells[parent].Children = append(c.cells[parent].Children, m.ID)
	}
}

// Generators returns the generators, including the rays added by refinement.
func (c *Collection[T]) Generators() *matrix.Dense[T] { return c.gens }

// Cell returns the cell with the given id.
func (c *Collection[T]) Cell(id int) *MiniCone[T] { return c.cells[id] }

// Len returns the number of cells in the arena.
func (c *Collection[T]) Len() int { return len(c.cells) }

// Depth returns the number of levels.
func (c *Collection[T]) Depth() int { return len(c.levels) }

// Subdivisions returns the number of cells that have been subdivided.
func (c *Collection[T]) Subdivisions() int { return c.subdivisions }

// leaves returns the leaf ids, level by level.
func (c *Collection[T]) leaves() []int {
	var out []int
	for _, ids := range c.levels {
		for _, id := range ids {
			if c.cells[id].Leaf() {
				out = append(out, id)
			}
		}
	}

	return out
}

func (c *Collection[T]) simplexOf(m *MiniCone[T]) (*simplex.Cone[T], error) {
	if m.cone != nil {
		return m.cone, nil
	}
	s, err := simplex.New(c.gens, m.Key)
	if err != nil {
		return nil, err
	}
	m.cone = s

	return s, nil
}

// classify returns the facets of m with positive value on v, or ok == false
// if v is outside m.
func (c *Collection[T]) classify(m *MiniCone[T], v []T) (opposite []int, ok bool, err error) {
	s, err := c.simplexOf(m)
	if err != nil {
		return nil, false, err
	}
	hyps := s.SupportHyperplanes()
	for i := 0; i < hyps.Rows(); i++ {
		switch c.r.Sign(matrix.Dot(c.r, hyps.Row(i), v)) {
		case -1:
			return nil, false, nil
		case 1:
			opposite = append(opposite, i)
		}
	}

	return opposite, true, nil
}

// Locate returns the leaves into which generator ray must be inserted. It
// stops at the first leaf containing the ray in its interior. Rays already in
// the collection and the zero vector are not located.
func (c *Collection[T]) Locate(ray int) ([]Place, error) {
	v := c.gens.Row(ray)
	if matrix.IsZeroVec(c.r, v) {
		return nil, nil
	}
	if _, ok := c.rays[matrix.VectorKey(c.r, v)]; ok {
		return nil, nil
	}
	var out []Place
	for _, id := range c.leaves() {
		m := c.cells[id]
		opposite, ok, err := c.classify(m, v)
		if err != nil {
			return nil, err
		}
		// a single positive facet means v spans a ray of m
		if !ok || len(opposite) == 1 {
			continue
		}
		out = append(out, Place{Ray: ray, Cell: id})
		if len(opposite) == len(m.Key) {
			break
		}
	}

	return out, nil
}

// Refine inserts generator ray into cell id and reports whether the ray lies
// in the cell. A subdivided cell passes the ray on to its children.
func (c *Collection[T]) Refine(id, ray int) (bool, error) {
	m := c.cells[id]
	v := c.gens.Row(ray)
	opposite, ok, err := c.classify(m, v)
	if err != nil || !ok || len(opposite) == 1 {
		return false, err
	}
	if !m.Leaf() {
		for _, child := range m.Children {
			if _, err = c.Refine(child, ray); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	for _, i := range opposite {
		key := append([]int(nil), m.Key...)
		key[i] = ray
		sort.Ints(key)
		mult, err := simplex.Volume(c.gens, key)
		if err != nil {
			return false, err
		}
		c.add(m.Level+1, id, key, mult)
	}
	c.subdivisions++

	return true, nil
}

// InsertVectors refines the located cells and registers the rays.
func (c *Collection[T]) InsertVectors(ctx context.Context, places []Place) error {
	for _, p := range places {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", opInsert, err)
		}
		if _, err := c.Refine(p.Cell, p.Ray); err != nil {
			return fmt.Errorf("%s: ray %d: %w", opInsert, p.Ray, err)
		}
	}
	for _, p := range places {
		c.rays[matrix.VectorKey(c.r, c.gens.Row(p.Ray))] = struct{}{}
	}
	if err := number.Check(c.r); err != nil {
		return fmt.Errorf("%s: %w", opInsert, err)
	}

	return nil
}

// AddGenerators appends the rows of extra to the generators and inserts them.
// Rows already spanning a ray of the collection are skipped.
func (c *Collection[T]) AddGenerators(ctx context.Context, extra *matrix.Dense[T]) error {
	if extra == nil {
		return fmt.Errorf("%s: %w", opAdd, ErrNilInput)
	}
	if extra.Cols() != c.gens.Cols() {
		return fmt.Errorf("%s: width %d, want %d: %w", opAdd, extra.Cols(), c.gens.Cols(), matrix.ErrDimensionMismatch)
	}
	var places []Place
	for i := 0; i < extra.Rows(); i++ {
		v := extra.RowCopy(i)
		matrix.MakePrimitive(c.r, v)
		if _, ok := c.rays[matrix.VectorKey(c.r, v)]; ok || matrix.IsZeroVec(c.r, v) {
			continue
		}
		if err := c.gens.AppendRow(v); err != nil {
			return fmt.Errorf("%s: %w", opAdd, err)
		}
		found, err := c.Locate(c.gens.Rows() - 1)
		if err != nil {
			return fmt.Errorf("%s: %w", opAdd, err)
		}
		places = append(places, found...)
	}

	return c.InsertVectors(ctx, places)
}

// Flatten returns the leaves with their multiplicities, level by level.
func (c *Collection[T]) Flatten() []polar.Simplex[T] {
	ids := c.leaves()
	out := make([]polar.Simplex[T], len(ids))
	for i, id := range ids {
		m := c.cells[id]
		out[i] = polar.Simplex[T]{Key: append([]int(nil), m.Key...), Volume: m.Multiplicity}
	}

	return out
}

// TotalVolume returns the raw sum of the leaf determinants. It is preserved
// by refinement only while every inserted ray has degree 1; use GradedVolume
// for the invariant.
func (c *Collection[T]) TotalVolume() T {
	sum := c.r.Zero()
	for _, id := range c.leaves() {
		sum = c.r.Add(sum, c.cells[id].Multiplicity)
	}

	return sum
}

// GradedVolume returns Σ det(σ) / Π deg(g) over the leaves σ, the degrees
// taken under the form deg. Refinement never changes it. Every generator of
// a leaf must have positive degree.
func (c *Collection[T]) GradedVolume(deg []T) (*big.Rat, error) {
	if len(deg) != c.gens.Cols() {
		return nil, fmt.Errorf("collection: degree form of length %d, generators have %d: %w",
			len(deg), c.gens.Cols(), matrix.ErrDimensionMismatch)
	}
	sum := new(big.Rat)
	for _, id := range c.leaves() {
		m := c.cells[id]
		den := big.NewInt(1)
		for _, g := range m.Key {
			d := c.r.ToBig(matrix.Dot(c.r, deg, c.gens.Row(g)))
			if d.Sign() <= 0 {
				return nil, fmt.Errorf("collection: generator %d has degree %s: %w", g, d, ErrDegree)
			}
			den.Mul(den, d)
		}
		sum.Add(sum, new(big.Rat).SetFrac(c.r.ToBig(m.Multiplicity), den))
	}

	return sum, nil
}

// Rays returns the distinct generators used by the leaves, sorted
// lexicographically.
func (c *Collection[T]) Rays() *matrix.Dense[T] {
	used := make(map[int]bool)
	for _, id := range c.leaves() {
		for _, g := range c.cells[id].Key {
			used[g] = true
		}
	}
	idx := make([]int, 0, len(used))
	for g := range used {
		idx = append(idx, g)
	}
	sort.Ints(idx)
	out, _ := matrix.Submatrix(c.gens, idx)
	matrix.SortLex(out)

	return matrix.RemoveDuplicateRows(out)
}
