// SPDX-License-Identifier: MIT
// Package: lvcone/cone
//
// compute.go - property scheduling, integer escalation and error mapping.
//
// Stages run in a fixed order; each one reads the frozen base data and adds
// to the cache:
//   base          → hyperplanes, rays, lattice data, grading, class group
//   triangulation → Triangulation, TriangulationDetSum, Multiplicity, Volume
//   hilbert       → HilbertBasis, Deg1Elements, ModuleGenerators, flags
//   unimodular    → UnimodularTriangulation (after triangulation)
//   faces         → FaceLattice, FVector
// A stage that overflows machine integers is rerun from scratch on the next
// wider kind; the cache only ever sees complete stage results.

package cone

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/lvcone/number"
)

type stage int

const (
	stageBase stage = iota
	stageTriangulation
	stageHilbert
	stageUnimodular
	stageFaces
)

func (s stage) String() string {
	switch s {
	case stageBase:
		return "base"
	case stageTriangulation:
		return "triangulation"
	case stageHilbert:
		return "hilbert"
	case stageUnimodular:
		return "unimodular"
	case stageFaces:
		return "faces"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// stageProps lists the properties every non-base stage produces.
var stageProps = []struct {
	st    stage
	props []Property
}{
	{stageTriangulation, []Property{Triangulation, TriangulationDetSum, Multiplicity, Volume}},
	{stageHilbert, []Property{HilbertBasis, Deg1Elements, ModuleGenerators, IsDeg1HilbertBasis, IsIntegrallyClosed}},
	{stageUnimodular, []Property{UnimodularTriangulation}},
	{stageFaces, []Property{FaceLattice, FVector}},
}

// Compute computes the requested properties and caches them. DualMode,
// PrimalMode and DefaultMode select the Hilbert basis route for this call.
// Cached properties are not recomputed.
//
// Errors:
//   - ErrNotComputable: an unknown property, or a property whose input is
//     missing (the message names it);
//   - ErrMalformedInput: input found inconsistent during computation;
//   - ErrInternal: a violated invariant or an overflow of arbitrary
//     precision arithmetic;
//   - the context error when ctx is done.
//
// On error the cache keeps every stage that completed.
func (c *Cone) Compute(ctx context.Context, props ...Property) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	alg := c.opts.Algorithm
	want := make([]Property, 0, len(props))
	for _, p := range props {
		switch {
		case p == DualMode:
			alg = Dual
		case p == PrimalMode:
			alg = Primal
		case p == DefaultMode:
			alg = Auto
		default:
			if _, ok := propKinds[p]; !ok {
				return fmt.Errorf("%s: %s: %w", opCompute, p, ErrNotComputable)
			}
			want = append(want, p)
		}
	}

	if c.st.base == nil {
		if err := c.run(ctx, stageBase, nil, alg); err != nil {
			return err
		}
	}
	var missing []Property
	for _, p := range want {
		if c.st.has(p) {
			continue
		}
		if err := c.check(p); err != nil {
			return err
		}
		missing = append(missing, p)
	}

	for _, sp := range stageProps {
		var todo []Property
		for _, p := range missing {
			if wants(sp.props, p) && !c.st.has(p) {
				todo = append(todo, p)
			}
		}
		if len(todo) == 0 {
			continue
		}
		if sp.st == stageUnimodular && !c.st.has(Triangulation) {
			if err := c.run(ctx, stageTriangulation, []Property{Triangulation}, alg); err != nil {
				return err
			}
		}
		if err := c.run(ctx, sp.st, todo, alg); err != nil {
			return err
		}
	}

	return nil
}

// check returns ErrNotComputable when p cannot be computed from the input.
// It needs the base stage.
func (c *Cone) check(p Property) error {
	b := c.st.base
	missing := func(what string) error {
		return fmt.Errorf("%s: %s needs %s: %w", opCompute, p, what, ErrNotComputable)
	}

	switch p {
	case ModuleGenerators, VerticesOfPolyhedron, RecessionRank:
		if !c.inhom {
			return missing("input Dehomogenization")
		}
	case Deg1Elements, IsDeg1HilbertBasis, GradingForm:
		if c.inhom || b.gradL == nil {
			return missing("input Grading")
		}
	case Multiplicity, Volume:
		if c.inhom && b.recession > 0 {
			return missing("a bounded polyhedron")
		}
		if !c.inhom && b.gradL == nil {
			return missing("input Grading")
		}
	case IsIntegrallyClosed:
		if !c.originalGenerators() {
			return missing("input Generators")
		}
	}

	switch p {
	case ExtremeRays, VerticesOfPolyhedron, Triangulation, UnimodularTriangulation,
		TriangulationDetSum, Multiplicity, Volume, FaceLattice, FVector:
		if !b.pointed {
			return missing("a pointed cone")
		}
	}

	return nil
}

// run executes one stage with escalation and merges its results.
func (c *Cone) run(ctx context.Context, st stage, want []Property, alg Algorithm) error {
	var out *results
	onRetry := func(from, to number.Kind) {
		c.log.Info("cone: escalating integer kind", "stage", st.String(), "from", from.String(), "to", to.String())
	}
	err := number.Escalate(ctx, c.opts.Kind, onRetry, func(k number.Kind) error {
		return number.Dispatch(k,
			func(r number.Ring[int64]) (err error) {
				out, err = runStage(ctx, c, r, st, want, alg)
				return err
			},
			func(r number.Ring[*big.Int]) (err error) {
				out, err = runStage(ctx, c, r, st, want, alg)
				return err
			})
	})
	if err != nil {
		return classify(st, err)
	}
	c.st.merge(out)
	c.log.Debug("cone: stage done", "stage", st.String(), "properties", len(want))

	return nil
}

// runStage builds a frame in ring r and runs st in it.
func runStage[T any](ctx context.Context, c *Cone, r number.Ring[T], st stage, want []Property, alg Algorithm) (*results, error) {
	f, err := newFrame(c, r)
	if err != nil {
		return nil, err
	}

	var out *results
	switch st {
	case stageBase:
		out, err = baseStage(ctx, f)
	case stageTriangulation:
		out, err = triangulationStage(ctx, f)
	case stageHilbert:
		out, err = hilbertStage(ctx, f, want, alg)
	case stageUnimodular:
		out, err = unimodularStage(ctx, f)
	case stageFaces:
		out, err = faceStage(ctx, f)
	default:
		return nil, internalf(nil, "unknown stage %s", st)
	}
	if err != nil {
		return nil, err
	}

	return out, number.Check(r)
}

// classify maps an engine error to the errors Compute documents.
func classify(st stage, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %s: %w", opCompute, st, err)
	case errors.Is(err, ErrMalformedInput), errors.Is(err, ErrNotComputable), errors.Is(err, ErrInternal):
		return err
	default:
		return internalf(err, "%s: %s stage", opCompute, st)
	}
}

// internalf wraps ErrInternal with a stack trace; cause, when non-nil, is
// appended to the message.
func internalf(cause error, format string, args ...any) error {
	if cause != nil {
		format += ": %v"
		args = append(args, cause)
	}

	return pkgerrors.Wrapf(ErrInternal, format, args...)
}
