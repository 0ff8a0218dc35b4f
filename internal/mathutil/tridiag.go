// Package mathutil provides the numerical kernels shared by the spline builder.
package mathutil

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-spline/internal/simdops"
)

var (
	// ErrDimension indicates that the slices describing a system disagree in length.
	ErrDimension = errors.New("tridiagonal system dimensions do not match")

	// ErrSingular indicates a zero or non-finite pivot during elimination.
	ErrSingular = errors.New("tridiagonal system is singular")
)

// SolveTridiagonal solves A*x = rhs for a tridiagonal A using the Thomas
// algorithm.
//
//	| d0 u0          |
//	| l0 d1 u1       |
//	|    l1 d2 u2    |
//	|       .. .. .. |
//
// diag and rhs are overwritten by the forward elimination. lower and upper
// must have len(diag)-1 elements, rhs and x len(diag). No pivoting is done,
// so the system should be diagonally dominant.
func SolveTridiagonal[F simdops.Float](lower, diag, upper, rhs, x []F) error {
	n := len(diag)
	if n == 0 {
		if len(rhs) != 0 || len(x) != 0 {
			return fmt.Errorf("%w: empty diagonal with %d right-hand values", ErrDimension, len(rhs))
		}
		return nil
	}
	if len(lower) != n-1 || len(upper) != n-1 {
		return fmt.Errorf("%w: off-diagonals have %d and %d elements, want %d",
			ErrDimension, len(lower), len(upper), n-1)
	}
	if len(rhs) != n || len(x) != n {
		return fmt.Errorf("%w: rhs has %d and x %d elements, want %d",
			ErrDimension, len(rhs), len(x), n)
	}

	for i := 1; i < n; i++ {
		if !usablePivot(diag[i-1]) {
			return fmt.Errorf("%w: pivot %d is %v", ErrSingular, i-1, diag[i-1])
		}
		mc := lower[i-1] / diag[i-1]
		diag[i] -= mc * upper[i-1]
		rhs[i] -= mc * rhs[i-1]
	}
	if !usablePivot(diag[n-1]) {
		return fmt.Errorf("%w: pivot %d is %v", ErrSingular, n-1, diag[n-1])
	}

	x[n-1] = rhs[n-1] / diag[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = (rhs[i] - upper[i]*x[i+1]) / diag[i]
	}
	return nil
}

// SolveSymmetricTridiagonal is SolveTridiagonal for a symmetric matrix, where
// off holds the shared sub- and super-diagonal.
func SolveSymmetricTridiagonal[F simdops.Float](off, diag, rhs, x []F) error {
	return SolveTridiagonal(off, diag, off, rhs, x)
}

func usablePivot[F simdops.Float](v F) bool {
	return v != 0 && IsFinite(v)
}
