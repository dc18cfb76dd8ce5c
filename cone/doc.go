// SPDX-License-Identifier: MIT

// Package cone is the facade of lvcone: a rational polyhedral cone (or
// polyhedron) given by typed input matrices, a property cache and Compute.
//
// Input. New takes a map from InputType to rows. Generator kinds
// (Generators, Normalization, Polytope, Subspace, Vertices) and constraint
// kinds (Inequalities, InhomInequalities, Signs, Equations, Congruences)
// never mix. Grading and Dehomogenization may accompany either. Vertices,
// InhomInequalities or Dehomogenization make the input inhomogeneous: the
// cone is the homogenization of a polyhedron, and the last coordinate is the
// homogenizing one unless Dehomogenization says otherwise.
//
// The lattice. Generators live in Zᵈ ∩ span; Normalization generators in the
// lattice they generate. Constraints define Zᵈ ∩ {equations} ∩ {congruences}.
// Every computation happens in coordinates of that sublattice and results
// are reported in ambient coordinates.
//
// Compute. Properties are grouped into stages that run in a fixed order and
// are cached; asking for a cached property costs nothing. Each stage first
// runs on machine integers and is rerun on big integers when it overflows.
//
//	c, err := cone.New(map[cone.InputType][][]int64{
//		cone.Inequalities: {{1, 0}, {-1, 2}},
//	})
//	err = c.Compute(ctx, cone.HilbertBasis, cone.ExtremeRays)
//	hb, err := c.Matrix(cone.HilbertBasis)
//
// Accessors match property types: Matrix and Int64Matrix for row sets, Int,
// Rat and Bool for scalars, TriangulationCells, Faces, FVector and
// ClassGroup for the structured ones.
//
// Non-pointed cones have support hyperplanes, a maximal subspace and a
// Hilbert basis of their pointed quotient, but no extreme rays,
// triangulation or faces.
package cone
