// SPDX-License-Identifier: MIT

// Package collection refines a triangulation of a cone into a unimodular one.
//
// A Collection is a tree of simplicial cells (MiniCones) stored in an arena:
// every cell has an integer id, the id of its parent and the ids of its
// children. The initial triangulation forms level 0. Inserting a ray v into
// a leaf whose support hyperplanes are all non-negative on v replaces the
// leaf by the cells obtained by exchanging v for each generator opposite to a
// facet with a positive value on v. The leaves always form a triangulation of
// the original cone. When all rays lie at degree 1 of a grading, as for the
// cone over a lattice polytope, the leaf volumes add up to the original
// volume.
//
// MakeUnimodular repeats two steps until every leaf has volume 1:
//
//  1. compute, in parallel, the local Hilbert basis of every non-unimodular
//     leaf and keep the elements that are not yet rays of the collection;
//  2. sort the new vectors, register each distinct one as a generator and
//     insert it into the leaves that found it.
//
// Each refinement strictly decreases the volume of the refined cells, so the
// loop terminates. Generators must be primitive: a non-primitive generator
// would leave a Hilbert basis element on its own ray.
package collection
