package spline

import (
	"fmt"

	"github.com/tphakala/go-spline/internal/mathutil"
)

// Point is one (x, y) pair the curve must pass through.
type Point[F Float] struct {
	X, Y F
}

// KnotSet is a validated, ordered set of knots: the unbuilt state of a spline.
// It stores up to MaxKnots points in fixed arrays and never changes after
// NewKnotSet returns.
type KnotSet[F Float] struct {
	n  int
	xs [MaxKnots]F
	ys [MaxKnots]F
}

// NewKnotSet validates points and copies them into a KnotSet.
//
// Points must already be ordered: x values strictly increasing, every
// coordinate finite, and between MinKnots and MaxKnots points. The input is
// never re-sorted. Any violation fails with ErrInvalidInput.
func NewKnotSet[F Float](points []Point[F]) (KnotSet[F], error) {
	var k KnotSet[F]
	if err := checkCount(len(points)); err != nil {
		return k, err
	}

	for i, p := range points {
		if err := k.push(i, p.X, p.Y); err != nil {
			return KnotSet[F]{}, err
		}
	}
	return k, nil
}

// NewKnotSetXY is NewKnotSet for parallel x and y slices.
func NewKnotSetXY[F Float](xs, ys []F) (KnotSet[F], error) {
	var k KnotSet[F]
	if len(xs) != len(ys) {
		return k, fmt.Errorf("%w: %d x values but %d y values", ErrInvalidInput, len(xs), len(ys))
	}
	if err := checkCount(len(xs)); err != nil {
		return k, err
	}

	for i := range xs {
		if err := k.push(i, xs[i], ys[i]); err != nil {
			return KnotSet[F]{}, err
		}
	}
	return k, nil
}

func checkCount(n int) error {
	if n < MinKnots {
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidInput, MinKnots, n)
	}
	if n > MaxKnots {
		return fmt.Errorf("%w: %d points exceed capacity %d", ErrInvalidInput, n, MaxKnots)
	}
	return nil
}

// push appends point i after checking it against its predecessor.
func (k *KnotSet[F]) push(i int, x, y F) error {
	if !mathutil.IsFinite(x) || !mathutil.IsFinite(y) {
		return fmt.Errorf("%w: point %d (%v, %v) is not finite", ErrInvalidInput, i, x, y)
	}
	if i > 0 && !(x > k.xs[i-1]) {
		return fmt.Errorf("%w: x[%d]=%v does not exceed x[%d]=%v",
			ErrInvalidInput, i, x, i-1, k.xs[i-1])
	}
	k.xs[i], k.ys[i] = x, y
	k.n = i + 1
	return nil
}

// Len returns the number of knots.
func (k *KnotSet[F]) Len() int {
	return k.n
}

// Point returns knot i.
func (k *KnotSet[F]) Point(i int) Point[F] {
	return Point[F]{X: k.xs[i], Y: k.ys[i]}
}

// Domain returns the first and last knot abscissae.
func (k *KnotSet[F]) Domain() (lo, hi F) {
	if k.n == 0 {
		return 0, 0
	}
	return k.xs[0], k.xs[k.n-1]
}
