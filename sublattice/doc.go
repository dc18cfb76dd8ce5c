// SPDX-License-Identifier: MIT

// Package sublattice represents a sublattice L ⊂ Zᵈ of rank r through a change
// of basis:
//
//	A   r×d  embedding:  from(w) = w·A        (rows of A are a basis of L)
//	B   d×r  projection: to(v)   = v·B / c    (exact for v ∈ L)
//	c   annihilator with A·B = c·I_r
//
// Linear forms move the other way: toDual(f) = A·f (made primitive) and
// fromDual(g) = B·g (made primitive). Representations compose along chains
// of sublattices (Compose) and along dual restrictions (ComposeDual).
//
// From a representation one can read off the equations (the annihilator of L
// in the dual space) and the congruences cutting L out of its saturation.
package sublattice
