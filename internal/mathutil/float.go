package mathutil

import (
	"math"

	"github.com/tphakala/go-spline/internal/simdops"
)

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite[F simdops.Float](v F) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

