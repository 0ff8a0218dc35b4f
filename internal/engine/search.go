package engine

import (
	"github.com/tphakala/go-spline/internal/simdops"
)

// InvStep returns the reciprocal of the mean knot spacing, used by Locate to
// guess the segment under the assumption of uniform spacing.
func InvStep[F simdops.Float](xs []F) F {
	n := len(xs)
	if n < 2 {
		return 0
	}
	span := xs[n-1] - xs[0]
	if !(span > 0) {
		return 0
	}
	return F(n-1) / span
}

// Locate returns the index of the segment that owns x: the largest i with
// xs[i] <= x, clamped to [0, len(xs)-2]. Queries left of the first knot map
// to segment 0 and queries right of the last knot to the final segment, so
// out-of-domain values extrapolate the boundary cubic. NaN maps to 0.
//
// A query equal to an interior knot xs[i] returns i.
func Locate[F simdops.Float](xs []F, invStep, x F) int {
	last := len(xs) - 2
	if last <= 0 {
		return 0
	}

	// Guess under the assumption of uniform spacing.
	if g := (x - xs[0]) * invStep; g >= 0 && g < F(last+1) {
		guess := int(g)
		if xs[guess] <= x && (guess == last || x < xs[guess+1]) {
			return guess
		}
	}

	if !(x >= xs[1]) {
		return 0
	}
	if x >= xs[last] {
		return last
	}

	// Binary search with xs[lo] <= x < xs[hi].
	lo, hi := 1, last
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if x >= xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
