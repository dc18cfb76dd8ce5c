// SPDX-License-Identifier: MIT

// Package simplex holds the data of a simplicial cone: d linearly independent
// generators of Zᵈ, their support hyperplanes and their lattice volume.
//
// The volume |det G| is the index of the lattice spanned by the generators.
// The lattice points of the half-open fundamental parallelepiped
//
//	{ Σ λᵢ·gᵢ : 0 ≤ λᵢ < 1 }
//
// form a system of representatives of Zᵈ modulo that lattice, so there are
// exactly |det G| of them. They are enumerated from the Hermite normal form
// of G: every box vector 0 ≤ aⱼ < Hⱼⱼ is a representative and is moved into
// the parallelepiped by taking its barycentric coordinates modulo |det G|.
//
// The Hilbert basis of a simplicial cone is the set of generators plus the
// irreducible parallelepiped points; reducibility is decided on the values
// against the support hyperplanes.
package simplex
