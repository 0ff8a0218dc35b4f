package spline

import "github.com/tphakala/go-spline/internal/engine"

// Capacity constants
const (
	// MaxKnots is the compile-time capacity of a KnotSet and a Spline.
	MaxKnots = engine.MaxKnots

	// MinKnots is the smallest point count that defines a curve.
	MinKnots = 2
)

// Numerical stability defaults
const (
	// DefaultMinInterval is the narrowest knot spacing accepted by Build.
	// Narrower intervals make the elimination unstable in single precision.
	DefaultMinInterval = 1e-6
)
