// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// state.go - the property cache and its accessors.

package cone

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/lvcone/facelattice"
	"github.com/katalvlaran/lvcone/matrix"
	"github.com/katalvlaran/lvcone/number"
	"github.com/katalvlaran/lvcone/polar"
)

// valueKind is the accessor a property is read with.
type valueKind int

const (
	kindMatrix valueKind = iota
	kindInt
	kindRat
	kindBool
	kindFaces
	kindCells
	kindList
)

var propKinds = map[Property]valueKind{
	SupportHyperplanes:      kindMatrix,
	ExtremeRays:             kindMatrix,
	MaximalSubspace:         kindMatrix,
	Sublattice:              kindMatrix,
	SublatticeEquations:     kindMatrix,
	SublatticeCongruences:   kindMatrix,
	HilbertBasis:            kindMatrix,
	Deg1Elements:            kindMatrix,
	ModuleGenerators:        kindMatrix,
	VerticesOfPolyhedron:    kindMatrix,
	GradingForm:             kindMatrix,
	Triangulation:           kindCells,
	UnimodularTriangulation: kindCells,
	RecessionRank:           kindInt,
	TriangulationDetSum:     kindInt,
	Rank:                    kindInt,
	EmbeddingDim:            kindInt,
	Index:                   kindInt,
	Multiplicity:            kindRat,
	Volume:                  kindRat,
	IsPointed:               kindBool,
	IsDeg1HilbertBasis:      kindBool,
	IsIntegrallyClosed:      kindBool,
	FaceLattice:             kindFaces,
	FVector:                 kindList,
	ClassGroup:              kindList,
}

// frozen is the ring independent part of the dualization, in coordinates of
// the cone's sublattice.
type frozen struct {
	pointed   bool
	shL       *matrix.Dense[*big.Int]
	erL       *matrix.Dense[*big.Int] // vertices first, then rays
	subL      *matrix.Dense[*big.Int]
	nVert     int
	gradL     []*big.Int
	dehomL    []*big.Int
	recession int
	implicit  *matrix.Dense[*big.Int] // equations derived from inequalities, ambient
}

// results is what one stage produces; the cone accumulates them.
type results struct {
	base  *frozen
	tri   []polar.Simplex[*big.Int]
	mats  map[Property]*matrix.Dense[*big.Int]
	ints  map[Property]*big.Int
	rats  map[Property]*big.Rat
	bools map[Property]bool
	cells map[Property][]Cell
	lists map[Property][]*big.Int
	faces *facelattice.Lattice
}

func newResults() *results {
	return &results{
		mats:  make(map[Property]*matrix.Dense[*big.Int]),
		ints:  make(map[Property]*big.Int),
		rats:  make(map[Property]*big.Rat),
		bools: make(map[Property]bool),
		cells: make(map[Property][]Cell),
		lists: make(map[Property][]*big.Int),
	}
}

// merge adds the entries of r.
func (s *results) merge(r *results) {
	if r.base != nil {
		s.base = r.base
	}
	if r.tri != nil {
		s.tri = r.tri
	}
	if r.faces != nil {
		s.faces = r.faces
	}
	for p, v := range r.mats {
		s.mats[p] = v
	}
	for p, v := range r.ints {
		s.ints[p] = v
	}
	for p, v := range r.rats {
		s.rats[p] = v
	}
	for p, v := range r.bools {
		s.bools[p] = v
	}
	for p, v := range r.cells {
		s.cells[p] = v
	}
	for p, v := range r.lists {
		s.lists[p] = v
	}
}

// has reports whether p is cached.
func (s *results) has(p Property) bool {
	var ok bool
	switch propKinds[p] {
	case kindMatrix:
		_, ok = s.mats[p]
	case kindInt:
		_, ok = s.ints[p]
	case kindRat:
		_, ok = s.rats[p]
	case kindBool:
		_, ok = s.bools[p]
	case kindCells:
		_, ok = s.cells[p]
	case kindList:
		_, ok = s.lists[p]
	case kindFaces:
		ok = s.faces != nil
	}

	return ok
}

// lookup checks that p is read with want and was computed.
func (c *Cone) lookup(p Property, want valueKind) error {
	k, ok := propKinds[p]
	if !ok || k != want {
		return fmt.Errorf("cone: %s: %w", p, ErrWrongAccessor)
	}
	if !c.st.has(p) {
		return fmt.Errorf("cone: %s: %w", p, ErrNotComputed)
	}

	return nil
}

// Matrix returns a matrix valued property, or the generators a triangulation
// refers to. Rows are fresh copies.
func (c *Cone) Matrix(p Property) ([][]*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if propKinds[p] == kindCells {
		if err := c.lookup(p, kindCells); err != nil {
			return nil, err
		}
	} else if err := c.lookup(p, kindMatrix); err != nil {
		return nil, err
	}

	return c.st.mats[p].BigRows(), nil
}

// Int64Matrix is Matrix with entries converted to int64. Entries out of range
// yield number.ErrRange.
func (c *Cone) Int64Matrix(p Property) ([][]int64, error) {
	rows, err := c.Matrix(p)
	if err != nil {
		return nil, err
	}
	out := make([][]int64, len(rows))
	for i, row := range rows {
		out[i] = make([]int64, len(row))
		for j, v := range row {
			if !v.IsInt64() {
				return nil, fmt.Errorf("cone: %s entry %s: %w", p, v, number.ErrRange)
			}
			out[i][j] = v.Int64()
		}
	}

	return out, nil
}

// Int returns an integer valued property.
func (c *Cone) Int(p Property) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(p, kindInt); err != nil {
		return nil, err
	}

	return new(big.Int).Set(c.st.ints[p]), nil
}

// Rat returns a rational valued property.
func (c *Cone) Rat(p Property) (*big.Rat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(p, kindRat); err != nil {
		return nil, err
	}

	return new(big.Rat).Set(c.st.rats[p]), nil
}

// Bool returns a boolean property.
func (c *Cone) Bool(p Property) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(p, kindBool); err != nil {
		return false, err
	}

	return c.st.bools[p], nil
}

// Faces returns the face lattice. Face rays index VerticesOfPolyhedron
// followed by ExtremeRays, the row order of Matrix(Triangulation).
func (c *Cone) Faces() (*facelattice.Lattice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(FaceLattice, kindFaces); err != nil {
		return nil, err
	}

	return c.st.faces, nil
}

// FVector returns the number of faces per codimension.
func (c *Cone) FVector() ([]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(FVector, kindList); err != nil {
		return nil, err
	}
	out := make([]int, len(c.st.lists[FVector]))
	for i, v := range c.st.lists[FVector] {
		out[i] = int(v.Int64())
	}

	return out, nil
}

// ClassGroup returns the rank of the class group followed by the orders of
// its torsion summands.
func (c *Cone) ClassGroup() ([]*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(ClassGroup, kindList); err != nil {
		return nil, err
	}
	out := make([]*big.Int, len(c.st.lists[ClassGroup]))
	for i, v := range c.st.lists[ClassGroup] {
		out[i] = new(big.Int).Set(v)
	}

	return out, nil
}

// TriangulationCells returns the simplices of Triangulation or
// UnimodularTriangulation. Keys index the rows of Matrix(p).
func (c *Cone) TriangulationCells(p Property) ([]Cell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lookup(p, kindCells); err != nil {
		return nil, err
	}
	cells := c.st.cells[p]
	out := make([]Cell, len(cells))
	for i, cell := range cells {
		out[i] = Cell{Key: append([]int(nil), cell.Key...), Volume: new(big.Int).Set(cell.Volume)}
	}

	return out, nil
}
