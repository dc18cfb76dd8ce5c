// SPDX-License-Identifier: MIT

// Package dual computes the Hilbert basis of a cone given by inequalities,
// cutting the ambient lattice with one halfspace at a time.
//
// Overview:
//
//	The engine keeps a monoid generating system of the cone cut out by the
//	hyperplanes processed so far: the intermediate Hilbert basis plus a
//	lattice basis of the maximal linear subspace. For the next hyperplane λ:
//
//	  1. Lifting. If λ does not vanish on the maximal subspace, the subspace is
//	     re-based so that one basis vector h has λ(h) = g > 0 and the others
//	     span the new, smaller subspace. ±h join the generators; the old basis
//	     elements are reduced modulo h so that |λ| < g.
//	  2. Classification into positive, negative and neutral elements by λ.
//	  3. Rounds of pairwise sums p+n (p positive, n negative, at least one of
//	     them produced in the previous round). Sums reducible by an element of
//	     the same sign class or by a neutral element are discarded; sums that
//	     are certainly reducible are skipped before they are formed, using the
//	     value of the λ-operand that produced each element (its mother).
//	  4. New elements become final only up to a guaranteed degree below which
//	     the list is complete; the rest waits in a depot for the next round.
//	  5. Positive and neutral elements form the next intermediate basis.
//
//	With truncation the first hyperplane is a level form and only the part of
//	the basis of level ≤ 1 is computed (degree 1 elements, module generators
//	of inhomogeneous systems).
//
// Determinism:
//
//	Pair generation runs in parallel over contiguous blocks of the positive
//	list; every block fills its own buffers and the buffers are merged in
//	block order, sorted and deduplicated. Reducer tables are read-only while
//	workers run. The result does not depend on the thread count.
//
// Errors:
//
//	ErrNilInput, ErrDimension and ErrNoLevel report malformed input.
//	number.ErrRange reports machine integer overflow; rerun under a wider ring.
//	Context cancellation is returned wrapped with the operation name.
package dual
