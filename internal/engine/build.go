package engine

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-spline/internal/mathutil"
	"github.com/tphakala/go-spline/internal/simdops"
)

var (
	// ErrNarrowInterval indicates two knots closer than the configured minimum width.
	ErrNarrowInterval = errors.New("knot interval narrower than minimum")

	// ErrCapacity indicates more knots than the fixed arrays can hold.
	ErrCapacity = errors.New("knot count exceeds capacity")
)

// SecondDerivatives computes the second derivative M at every knot of the
// natural spline through (xs, ys), writing the result to m.
//
// M[0] and M[n-1] are zero. The n-2 interior values come from the symmetric
// tridiagonal system solved in fixed-size stack arrays. Any interval whose
// width is below minInterval fails with ErrNarrowInterval before elimination.
func SecondDerivatives[F simdops.Float](xs, ys []F, minInterval F, m []F) error {
	n := len(xs)
	if n > MaxKnots {
		return fmt.Errorf("%w: %d knots, capacity %d", ErrCapacity, n, MaxKnots)
	}
	if n < 2 || len(ys) != n || len(m) != n {
		return fmt.Errorf("%w: %d xs, %d ys, %d outputs", mathutil.ErrDimension, n, len(ys), len(m))
	}

	var h [MaxSegments]F
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
		if !(h[i] > 0) || h[i] < minInterval {
			return fmt.Errorf("%w: interval %d has width %v, minimum %v",
				ErrNarrowInterval, i, h[i], minInterval)
		}
	}

	m[0], m[n-1] = 0, 0
	interior := n - 2
	if interior == 0 {
		return nil
	}

	var diag, rhs, off [maxInterior]F
	for k := range interior {
		i := k + 1
		diag[k] = diagonalFactor * (h[i-1] + h[i])
		rhs[k] = rhsFactor * ((ys[i+1]-ys[i])/h[i] - (ys[i]-ys[i-1])/h[i-1])
		if k < interior-1 {
			off[k] = h[i]
		}
	}

	err := mathutil.SolveSymmetricTridiagonal(off[:interior-1], diag[:interior], rhs[:interior], m[1:n-1])
	if err != nil {
		return fmt.Errorf("second derivatives: %w", err)
	}
	return nil
}

// Coefficients converts knot values and second derivatives into one cubic
// per interval. segs must have exactly len(xs)-1 elements.
func Coefficients[F simdops.Float](xs, ys, m []F, segs []Segment[F]) error {
	n := len(xs)
	if n < 2 || len(ys) != n || len(m) != n || len(segs) != n-1 {
		return fmt.Errorf("%w: %d xs, %d ys, %d second derivatives, %d segments",
			mathutil.ErrDimension, n, len(ys), len(m), len(segs))
	}

	for i := range segs {
		h := xs[i+1] - xs[i]
		segs[i] = Segment[F]{
			A: ys[i],
			B: (ys[i+1]-ys[i])/h - h*(slopeWeight*m[i]+m[i+1])/cubicDivisor,
			C: m[i] / curvatureHalf,
			D: (m[i+1] - m[i]) / (cubicDivisor * h),
		}
	}
	return nil
}
