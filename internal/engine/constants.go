package engine

// Capacity constants
const (
	// MaxKnots is the compile-time capacity of every knot and scratch array.
	MaxKnots = 64

	// MaxSegments is the capacity of a segment table.
	MaxSegments = MaxKnots - 1

	// maxInterior is the largest number of unknowns in the second-derivative system.
	maxInterior = MaxKnots - 2
)

// Natural spline system constants.
// For interior knot i with widths h[i-1], h[i]:
//
//	h[i-1]*M[i-1] + 2*(h[i-1]+h[i])*M[i] + h[i]*M[i+1] = 6*(s[i] - s[i-1])
//
// where s[i] is the chord slope of interval i.
const (
	diagonalFactor = 2
	rhsFactor      = 6
)

// Cubic segment constants
const (
	// Coefficient relations: c = M/2, d = (M1-M0)/(6h), b = s - h*(2*M0+M1)/6.
	curvatureHalf = 2
	cubicDivisor  = 6
	slopeWeight   = 2

	// Power-rule factors for the first derivative.
	cubicSlope     = 3
	quadraticSlope = 2

	// Derivative orders of a cubic.
	valueOrder     = 0
	slopeOrder     = 1
	curvatureOrder = 2
	jerkOrder      = 3

	// Antiderivative divisors for the b, c and d terms.
	integralB = 2
	integralC = 3
	integralD = 4
)
