// SPDX-License-Identifier: MIT

// Package number provides the exact integer rings used by every cone engine.
//
// Two rings are available:
//
//	Machine - int64 arithmetic with explicit overflow detection. An overflow
//	          never panics; it sets a sticky flag on the ring and the result of
//	          the offending operation is meaningless. Engines poll the flag at
//	          round boundaries and return ErrRange.
//	Big     - *big.Int arithmetic, never overflows.
//
// Algorithms are written once against Ring[T] and instantiated per ring.
// Escalate runs such a computation starting from the narrowest requested
// Kind and retries it from scratch under a wider Kind whenever it reports
// ErrRange. No partial results are carried across kinds.
package number
