// Package testutil provides reusable test helper functions for spline tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-spline/internal/simdops"
)

// ContinuityTolerance bounds derivative mismatches across a knot.
const ContinuityTolerance = 1e-3

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(float64(v)) {
			return assert.Fail(t, fmt.Sprintf("found NaN at s[%d]", i), msgAndArgs...)
		}
		if math.IsInf(float64(v), 0) {
			return assert.Fail(t, fmt.Sprintf("found Inf at s[%d]", i), msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
// Near zero the check falls back to an absolute delta.
func AssertRelativeError[F simdops.Float](t *testing.T, expected, actual F, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	e, a := float64(expected), float64(actual)
	if math.Abs(e) < 1 {
		return assert.InDelta(t, e, a, tolerance, msgAndArgs...)
	}
	relError := math.Abs(a-e) / math.Abs(e)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%v, actual=%v)",
		relError, tolerance, expected, actual)
}

// AssertSliceInDelta verifies element-wise closeness of two equally long slices.
func AssertSliceInDelta[F simdops.Float](t *testing.T, expected, actual []F, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, float64(expected[i]), float64(actual[i]), delta,
			"element %d: expected %v, got %v", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace[F simdops.Float](lo, hi F, n int) []F {
	out := make([]F, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / F(n-1)
	for i := range out {
		out[i] = lo + F(i)*step
	}
	out[n-1] = hi
	return out
}
