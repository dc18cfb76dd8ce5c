// SPDX-License-Identifier: MIT
// Package: matrix
//
// smith.go - Smith normal form with the column transform.

package matrix

// SmithForm holds P·M·Q = diag(Diagonal) (padded with zeros). Only Q is
// tracked; the row transform is not needed by any caller.
type SmithForm[T any] struct {
	Diagonal []T // positive invariant factors d1 | d2 | ... | dr
	Q        *Dense[T]
}

// Smith computes the Smith normal form of m.
// Stage 1: move the smallest non-zero entry of the trailing block to (t,t).
// Stage 2: clear row t and column t by floor division, repeating Stage 1
// while remainders appear.
// Stage 3: enforce divisibility by folding an offending row into row t.
func Smith[T any](m *Dense[T]) SmithForm[T] {
	r := m.ring
	a := m.ToRows()
	nr, nc := m.r, m.c
	q := Identity(r, nc).ToRows()

	colSub := func(j, k int, f T) { // col_j -= f·col_k
		for i := 0; i < nr; i++ {
			a[i][j] = r.Sub(a[i][j], r.Mul(f, a[i][k]))
		}
		for i := 0; i < nc; i++ {
			q[i][j] = r.Sub(q[i][j], r.Mul(f, q[i][k]))
		}
	}
	colSwap := func(j, k int) {
		for i := 0; i < nr; i++ {
			a[i][j], a[i][k] = a[i][k], a[i][j]
		}
		for i := 0; i < nc; i++ {
			q[i][j], q[i][k] = q[i][k], q[i][j]
		}
	}

	var diag []T
	for t := 0; t < nr && t < nc; t++ {
		found := false
		for !r.Overflowed() {
			pi, pj := -1, -1
			for i := t; i < nr; i++ {
				for j := t; j < nc; j++ {
					if r.IsZero(a[i][j]) {
						continue
					}
					if pi < 0 || r.Cmp(r.Abs(a[i][j]), r.Abs(a[pi][pj])) < 0 {
						pi, pj = i, j
					}
				}
			}
			if pi < 0 {
				break
			}
			found = true
			a[t], a[pi] = a[pi], a[t]
			colSwap(t, pj)
			p := a[t][t]
			clean := true
			for i := t + 1; i < nr; i++ {
				if r.IsZero(a[i][t]) {
					continue
				}
				axpy(r, a[i], a[t], r.FloorDiv(a[i][t], p))
				if !r.IsZero(a[i][t]) {
					clean = false
				}
			}
			for j := t + 1; j < nc; j++ {
				if r.IsZero(a[t][j]) {
					continue
				}
				colSub(j, t, r.FloorDiv(a[t][j], p))
				if !r.IsZero(a[t][j]) {
					clean = false
				}
			}
			if !clean {
				continue
			}
			for i := t + 1; i < nr && clean; i++ {
				for j := t + 1; j < nc; j++ {
					if !r.IsZero(r.Mod(a[i][j], p)) {
						for k := range a[t] {
							a[t][k] = r.Add(a[t][k], a[i][k])
						}
						clean = false
						break
					}
				}
			}
			if clean {
				break
			}
		}
		if !found || r.Overflowed() {
			break
		}
		diag = append(diag, r.Abs(a[t][t]))
	}
	qm, _ := FromRows(r, nc, q)
	// Sign of each invariant factor is absorbed into Q so that column t of
	// P·M·Q equals +d_t.
	for t, d := range diag {
		if !r.Equal(d, a[t][t]) {
			for i := 0; i < nc; i++ {
				qm.data[i*nc+t] = r.Neg(qm.data[i*nc+t])
			}
		}
	}

	return SmithForm[T]{Diagonal: diag, Q: qm}
}
