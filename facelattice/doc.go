// SPDX-License-Identifier: MIT

// Package facelattice enumerates the faces of a pointed cone given by its
// extreme rays and support hyperplanes.
//
// Faces are represented twice: by the bitset of extreme rays they contain and
// by the bitset of support hyperplanes containing them. The lattice is built
// breadth-first by codimension. At codimension k every face F of codimension
// k−1 is intersected with each hyperplane not containing it; the
// intersections that are maximal among them are the facets of F. A face is
// simple when it lies in exactly codim hyperplanes. If F is simple and the
// new face contains a ray lying in exactly dim−1 hyperplanes, the new face
// is simple too and no closure or rank computation is needed.
//
// With WithVertices(n) the first n rays are the vertices of a polyhedron and
// the rest span its recession cone: faces at infinity are skipped and the
// empty face is appended with codimension rank(hyperplanes).
//
// Faces of one codimension are processed in parallel; new faces are merged in
// the order of their parents, so the result does not depend on threads.
package facelattice
