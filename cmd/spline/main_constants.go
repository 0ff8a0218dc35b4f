package main

// Environment and defaults
const (
	inlineTableName = "inline"
	defaultSamples  = 0
	checkPoints     = 1001 // Grid size for --check
	minCheckKnots   = 3    // Reference fit needs an interior knot
)

// Reference tolerances, scaled by the largest |y| in the table.
const (
	checkTolerance32 = 1e-4
	checkTolerance64 = 1e-9
)
