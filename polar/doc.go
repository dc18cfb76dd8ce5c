// SPDX-License-Identifier: MIT

// Package polar converts between the two descriptions of a full-dimensional
// cone: generators and support hyperplanes.
//
// Dualize runs the beneath-beyond variant of the double description method.
// It starts from a simplicial cone on a maximal independent subset of the
// generators and inserts the remaining generators one at a time. For a new
// generator x every pair of facets (P, N) with P·x > 0 > N·x whose common
// generators span a ridge yields the facet (P·x)·N − (N·x)·P. Adjacency is
// decided by rank on the generator incidence bitsets. Facets visible from x
// are dropped.
//
// As a byproduct Dualize can produce the placing triangulation: x is joined
// with every boundary face of the current triangulation lying in a visible
// facet.
//
// Applying Dualize to the support hyperplanes of a pointed cone yields its
// extreme rays; that is how the cone facade computes generators from
// inequalities.
package polar
