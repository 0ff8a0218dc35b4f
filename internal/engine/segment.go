// Package engine implements natural cubic spline construction and evaluation
// over fixed-capacity arrays.
package engine

import (
	"github.com/tphakala/go-spline/internal/simdops"
)

// Segment holds the cubic S(dx) = A + B*dx + C*dx^2 + D*dx^3 for one knot
// interval, where dx is measured from the interval's left knot.
type Segment[F simdops.Float] struct {
	A, B, C, D F
}

// Eval evaluates the polynomial using Horner's scheme:
// y = ((D*dx + C)*dx + B)*dx + A
func (s Segment[F]) Eval(dx F) F {
	return ((s.D*dx+s.C)*dx+s.B)*dx + s.A
}

// Slope returns the first derivative at dx.
func (s Segment[F]) Slope(dx F) F {
	return (cubicSlope*s.D*dx+quadraticSlope*s.C)*dx + s.B
}

// Curvature returns the second derivative at dx.
func (s Segment[F]) Curvature(dx F) F {
	return cubicDivisor*s.D*dx + curvatureHalf*s.C
}

// Deriv returns the derivative of the given order at dx. Orders above three
// are identically zero; negative orders are treated as zero.
func (s Segment[F]) Deriv(dx F, order int) F {
	switch order {
	case slopeOrder:
		return s.Slope(dx)
	case curvatureOrder:
		return s.Curvature(dx)
	case jerkOrder:
		return cubicDivisor * s.D
	default:
		if order <= valueOrder {
			return s.Eval(dx)
		}
		return 0
	}
}

// Integral returns the integral of the polynomial from 0 to dx.
func (s Segment[F]) Integral(dx F) F {
	return (((s.D/integralD*dx+s.C/integralC)*dx+s.B/integralB)*dx + s.A) * dx
}
