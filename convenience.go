package spline

import (
	"fmt"
)

// Single-precision names for the primary instantiation.
type (
	// Point32 is a float32 knot.
	Point32 = Point[float32]

	// KnotSet32 is a float32 knot set.
	KnotSet32 = KnotSet[float32]

	// Spline32 is a float32 natural cubic spline.
	Spline32 = Spline[float32]
)

// Double-precision names.
type (
	// Point64 is a float64 knot.
	Point64 = Point[float64]

	// KnotSet64 is a float64 knot set.
	KnotSet64 = KnotSet[float64]

	// Spline64 is a float64 natural cubic spline.
	Spline64 = Spline[float64]
)

// Build32 builds a float32 spline from parallel x and y slices.
func Build32(xs, ys []float32) (Spline32, error) {
	return BuildXY(xs, ys)
}

// Build64 builds a float64 spline from parallel x and y slices.
func Build64(xs, ys []float64) (Spline64, error) {
	return BuildXY(xs, ys)
}

// Interpolate is a convenience function for one-shot interpolation.
// It builds a spline through (xs, ys), evaluates every query and returns
// the results in a new slice.
func Interpolate[F Float](xs, ys, queries []F) ([]F, error) {
	s, err := BuildXY(xs, ys)
	if err != nil {
		return nil, err
	}

	out := make([]F, len(queries))
	if err := s.EvaluateInto(out, queries); err != nil {
		return nil, err
	}
	return out, nil
}

// FromFunc samples fn at n evenly spaced knots from lo to hi inclusive and
// builds the spline through them.
//
// It is the usual way to approximate an expensive transfer curve with a table
// that evaluates in O(log n).
func FromFunc[F Float](fn func(F) F, lo, hi F, n int) (Spline[F], error) {
	if err := checkCount(n); err != nil {
		return Spline[F]{}, err
	}
	if !(hi > lo) {
		return Spline[F]{}, fmt.Errorf("%w: empty range [%v, %v]", ErrInvalidInput, lo, hi)
	}

	var xs, ys [MaxKnots]F
	step := (hi - lo) / F(n-1)
	for i := range n - 1 {
		xs[i] = lo + F(i)*step
		ys[i] = fn(xs[i])
	}
	xs[n-1] = hi
	ys[n-1] = fn(hi)

	return BuildXY(xs[:n], ys[:n])
}
