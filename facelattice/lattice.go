// SPDX-License-Identifier: MIT
// Package: lvcone/facelattice
//
// lattice.go - breadth-first face enumeration over incidence bitsets.

package facelattice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvcone"
	"github.com/katalvlaran/lvcone/internal/parallel"
	"github.com/katalvlaran/lvcone/matrix"
)

var (
	// ErrNilInput indicates a nil ray or hyperplane matrix.
	ErrNilInput = errors.New("facelattice: nil input matrix")

	// ErrDimension indicates rays and hyperplanes of different widths.
	ErrDimension = errors.New("facelattice: dimension mismatch")

	// ErrNotPointed indicates hyperplanes of rank below the dimension.
	ErrNotPointed = errors.New("facelattice: cone is not pointed")

	// ErrBadOption indicates a negative thread count or vertex count.
	ErrBadOption = errors.New("facelattice: invalid option")
)

const opCompute = "facelattice.Compute"

// Options configures Compute.
//
// CodimBound – faces of codimension > CodimBound are skipped; negative means all.
// Dual       – Map keys by hyperplanes instead of rays.
// Vertices   – number of leading rays that are vertices of a polyhedron; 0 is
//              the homogeneous case.
type Options struct {
	CodimBound int
	Dual       bool
	Vertices   int
	Threads    int
	Logger     *slog.Logger
}

// Option configures Compute.
type Option func(*Options)

// DefaultOptions returns the unbounded homogeneous configuration.
func DefaultOptions() Options {
	return Options{CodimBound: -1}
}

// WithCodimBound limits the codimension of the computed faces.
func WithCodimBound(k int) Option {
	return func(o *Options) { o.CodimBound = k }
}

// WithDualKeys keys Map by containing hyperplanes.
func WithDualKeys() Option {
	return func(o *Options) { o.Dual = true }
}

// WithVertices marks the first n rays as vertices of a polyhedron. Panics on
// negatives.
func WithVertices(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadOption.Error())
		}
		o.Vertices = n
	}
}

// WithThreads sets the worker count; 0 means NumCPU. Panics on negatives.
func WithThreads(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadOption.Error())
		}
		o.Threads = n
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Face is one face of the cone.
type Face struct {
	Rays  *bitset.BitSet
	Hyps  *bitset.BitSet
	Codim int
}

// Lattice is the computed face lattice.
type Lattice struct {
	faces   []Face
	fvector []int
	dual    bool
}

// Faces returns the faces sorted by codimension, then by rays.
func (l *Lattice) Faces() []Face { return l.faces }

// Len returns the number of faces.
func (l *Lattice) Len() int { return len(l.faces) }

// FVector returns the number of faces of each codimension 0, 1, ….
func (l *Lattice) FVector() []int { return l.fvector }

// Map returns the faces keyed by the canonical string of their ray bitset,
// or of their hyperplane bitset with WithDualKeys, mapped to codimension.
func (l *Lattice) Map() map[string]int {
	out := make(map[string]int, len(l.faces))
	for _, f := range l.faces {
		if l.dual {
			out[f.Hyps.String()] = f.Codim
		} else {
			out[f.Rays.String()] = f.Codim
		}
	}

	return out
}

// builder carries the read-only data shared by the workers.
type builder[T any] struct {
	hyps       *matrix.Dense[T]
	dim        int
	nrRays     int
	nrHyps     int
	incidence  []*bitset.BitSet // per hyperplane: rays on it
	simpleRays *bitset.BitSet
	useSimple  bool
	recession  *bitset.BitSet // nil in the homogeneous case
}

// Compute enumerates the faces of the pointed cone with the given extreme rays
// and support hyperplanes (rows).
func Compute[T any](ctx context.Context, rays, hyps *matrix.Dense[T], opts ...Option) (*Lattice, error) {
	if rays == nil || hyps == nil {
		return nil, fmt.Errorf("%s: %w", opCompute, ErrNilInput)
	}
	if rays.Cols() != hyps.Cols() {
		return nil, fmt.Errorf("%s: rays %d, hyperplanes %d columns: %w", opCompute, rays.Cols(), hyps.Cols(), ErrDimension)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = lvcone.Logger()
	}
	dim := hyps.Cols()
	rank := matrix.Rank(hyps)
	if rank < dim {
		return nil, fmt.Errorf("%s: rank %d < %d: %w", opCompute, rank, dim, ErrNotPointed)
	}
	if o.Vertices > rays.Rows() {
		return nil, fmt.Errorf("%s: %d vertices among %d rays: %w", opCompute, o.Vertices, rays.Rows(), ErrBadOption)
	}

	b, err := newBuilder(ctx, rays, hyps, o)
	if err != nil {
		return nil, err
	}

	all := bitset.New(uint(b.nrRays))
	for j := 0; j < b.nrRays; j++ {
		all.Set(uint(j))
	}
	work := []Face{{Rays: all, Hyps: bitset.New(uint(b.nrHyps)), Codim: 0}}
	var faces []Face
	for codim := 0; len(work) > 0; codim++ {
		faces = append(faces, work...)
		if codim == o.CodimBound {
			break
		}
		next, err := b.step(ctx, work, codim+1, o.Threads)
		if err != nil {
			return nil, err
		}
		log.Debug("facelattice: codimension done", "codim", codim+1, "faces", len(next))
		work = next
	}
	if b.recession != nil && o.Vertices != 1 && (o.CodimBound < 0 || rank <= o.CodimBound) {
		allHyps := bitset.New(uint(b.nrHyps))
		for i := 0; i < b.nrHyps; i++ {
			allHyps.Set(uint(i))
		}
		faces = append(faces, Face{Rays: bitset.New(uint(b.nrRays)), Hyps: allHyps, Codim: rank})
	}

	sort.SliceStable(faces, func(i, j int) bool {
		if faces[i].Codim != faces[j].Codim {
			return faces[i].Codim < faces[j].Codim
		}
		return lexLess(faces[i].Rays, faces[j].Rays)
	})
	l := &Lattice{faces: faces, dual: o.Dual}
	for _, f := range faces {
		for len(l.fvector) <= f.Codim {
			l.fvector = append(l.fvector, 0)
		}
		l.fvector[f.Codim]++
	}

	return l, nil
}

// newBuilder classifies the rays against every hyperplane in parallel.
func newBuilder[T any](ctx context.Context, rays, hyps *matrix.Dense[T], o Options) (*builder[T], error) {
	r := hyps.Ring()
	b := &builder[T]{
		hyps:   hyps,
		dim:    hyps.Cols(),
		nrRays: rays.Rows(),
		nrHyps: hyps.Rows(),
	}
	inc, err := parallel.Map(ctx, b.nrHyps, o.Threads, func(ctx context.Context, blk parallel.Block) ([]*bitset.BitSet, error) {
		out := make([]*bitset.BitSet, 0, blk.Hi-blk.Lo)
		for i := blk.Lo; i < blk.Hi; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			set := bitset.New(uint(b.nrRays))
			for j := 0; j < b.nrRays; j++ {
				if r.IsZero(matrix.Dot(r, hyps.Row(i), rays.Row(j))) {
					set.Set(uint(j))
				}
			}
			out = append(out, set)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	for _, blk := range inc {
		b.incidence = append(b.incidence, blk...)
	}

	b.simpleRays = bitset.New(uint(b.nrRays))
	nrSimple := 0
	for j := 0; j < b.nrRays; j++ {
		on := 0
		for _, set := range b.incidence {
			if set.Test(uint(j)) {
				on++
			}
		}
		if on == b.dim-1 {
			b.simpleRays.Set(uint(j))
			nrSimple++
		}
	}
	b.useSimple = 10*nrSimple > b.nrRays

	if o.Vertices > 0 {
		b.recession = bitset.New(uint(b.nrRays))
		for j := o.Vertices; j < b.nrRays; j++ {
			b.recession.Set(uint(j))
		}
	}

	return b, nil
}

type cut struct {
	rays    *bitset.BitSet
	hyp     int
	maximal bool
}

// step returns the faces of codimension codim below the faces in work.
func (b *builder[T]) step(ctx context.Context, work []Face, codim, threads int) ([]Face, error) {
	parts, err := parallel.Map(ctx, len(work), threads, func(ctx context.Context, blk parallel.Block) ([]Face, error) {
		var out []Face
		for _, f := range work[blk.Lo:blk.Hi] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out = append(out, b.facets(f, codim)...)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: codimension %d: %w", opCompute, codim, err)
	}

	seen := make(map[string]bool)
	var next []Face
	for _, p := range parts {
		for _, f := range p {
			key := f.Hyps.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			next = append(next, f)
		}
	}

	return next, nil
}

// facets returns the facets of f.
func (b *builder[T]) facets(f Face, codim int) []Face {
	var cuts []cut
	for i := 0; i < b.nrHyps; i++ {
		if f.Hyps.Test(uint(i)) {
			continue
		}
		rays := f.Rays.Intersection(b.incidence[i])
		if b.recession != nil && b.recession.IsSuperSet(rays) {
			continue
		}
		cuts = append(cuts, cut{rays: rays, hyp: i, maximal: true})
	}
	sort.SliceStable(cuts, func(i, j int) bool { return lexLess(cuts[i].rays, cuts[j].rays) })

	// drop repeated and non-maximal intersections
	for i := range cuts {
		if i > 0 && cuts[i].rays.Equal(cuts[i-1].rays) {
			cuts[i].maximal = false
			continue
		}
		for j := range cuts {
			if j != i && !cuts[j].rays.Equal(cuts[i].rays) && cuts[j].rays.IsSuperSet(cuts[i].rays) {
				cuts[i].maximal = false
				break
			}
		}
	}

	fSimple := int(f.Hyps.Count()) == codim-1
	var out []Face
	for _, c := range cuts {
		if !c.maximal {
			continue
		}
		containing := f.Hyps.Clone()
		containing.Set(uint(c.hyp))
		if fSimple && b.useSimple && c.rays.Intersection(b.simpleRays).Any() {
			out = append(out, Face{Rays: c.rays, Hyps: containing, Codim: codim})
			continue
		}
		extra := false
		for j := 0; j < b.nrHyps; j++ {
			if !containing.Test(uint(j)) && b.incidence[j].IsSuperSet(c.rays) {
				containing.Set(uint(j))
				extra = true
			}
		}
		if !(fSimple && !extra) && matrix.RankRows(b.hyps, members(containing)) > codim {
			continue
		}
		out = append(out, Face{Rays: c.rays, Hyps: containing, Codim: codim})
	}

	return out
}

// lexLess orders bitsets as 0/1 words read from index 0: the first differing
// index decides and the set containing it comes first.
func lexLess(a, b *bitset.BitSet) bool {
	i, okA := a.NextSet(0)
	j, okB := b.NextSet(0)
	for okA && okB {
		if i != j {
			return i < j
		}
		i, okA = a.NextSet(i + 1)
		j, okB = b.NextSet(j + 1)
	}

	return okA && !okB
}

// members lists the set bits of s.
func members(s *bitset.BitSet) []int {
	out := make([]int, 0, s.Count())
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}
