// SPDX-License-Identifier: MIT

// Package candidate holds the bookkeeping elements of Hilbert basis
// computations.
//
// A Candidate is a lattice vector together with its (absolute) values under
// the hyperplanes processed so far, the sum of those values (SortDeg), the
// sort degree it had before the current hyperplane (OldTotDeg) and the value of
// the operand that produced it (Mother), which drives cheap reducibility
// prediction in dual elimination.
//
// Reducibility is decided on values alone: y reduces x when every value of y
// is at most the corresponding value of x and y's SortDeg is strictly smaller.
// Both operands are assumed to lie in the same sign class, so x−y is then a
// lattice point of the cone.
//
// List keeps candidates ordered by (SortDeg, Values, Mother). Table is a
// degree-bucketed index over reducers for the unordered reducibility tests of
// the generation phase.
package candidate
