// Package spline provides natural cubic spline interpolation in pure Go.
//
// A spline is built once from an ordered table of knots and then evaluated
// any number of times. All storage is sized by the compile-time constant
// [MaxKnots], so neither building nor evaluating touches the heap, and build
// time is O(n) while each evaluation is O(log n).
//
// # Features
//
//   - Natural boundary conditions (zero curvature at both end knots)
//   - Thomas algorithm solve of the symmetric tridiagonal curvature system
//   - float32 and float64 instantiations of one generic implementation
//   - Value, derivative (orders 0 to 3) and definite integral queries
//   - Immutable built splines, safe for concurrent evaluation without locks
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
//	s, err := spline.Build([]spline.Point32{
//	    {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 3, Y: 1},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := s.Evaluate(1.5) // 0.5
//
// For one-shot use, [Interpolate] builds and evaluates in a single call.
// [FromFunc] tabulates a function on a uniform grid and fits a spline
// through the samples.
//
// # Input Rules
//
// Knots must be supplied with strictly increasing x, finite coordinates and
// between [MinKnots] and [MaxKnots] points. Input is never re-sorted. Any
// violation fails with [ErrInvalidInput]. Knots closer together than
// [Config].MinInterval fail with [ErrDegenerateInput].
//
// # Extrapolation
//
// Queries outside the knot domain evaluate the cubic of the nearest boundary
// segment. Callers that need clamping should clamp x to [Spline.Domain]
// before calling [Spline.Evaluate].
//
// # Thread Safety
//
// A built [Spline] is never mutated, so one value may be shared by any number
// of goroutines. Splines built concurrently share no state.
package spline
