package spline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-spline/internal/testutil"
)

// TestEvaluateConcurrent verifies that goroutines sharing one spline get
// bit-exact results compared to sequential evaluation.
func TestEvaluateConcurrent(t *testing.T) {
	const workers = 8

	s, err := BuildXY(tableXs, tableYs)
	require.NoError(t, err)

	queries := testutil.Linspace[float32](-2, 17, 4096)
	want := make([]float32, len(queries))
	require.NoError(t, s.EvaluateInto(want, queries))

	results := make([][]float32, workers)
	var wg sync.WaitGroup
	for w := range workers {
		results[w] = make([]float32, len(queries))
		wg.Add(1)
		go func(dst []float32) {
			defer wg.Done()
			for i, x := range queries {
				dst[i] = s.Evaluate(x)
			}
		}(results[w])
	}
	wg.Wait()

	for w := range workers {
		assert.Equal(t, want, results[w], "worker %d", w)
	}
}

// TestBuildConcurrent verifies that independent builds share no state.
func TestBuildConcurrent(t *testing.T) {
	const workers = 16

	splines := make([]Spline32, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ys := make([]float32, len(tableYs))
			for i, y := range tableYs {
				ys[i] = y * float32(w+1)
			}
			splines[w], errs[w] = BuildXY(tableXs, ys)
		}(w)
	}
	wg.Wait()

	base, err := BuildXY(tableXs, tableYs)
	require.NoError(t, err)
	for w := range workers {
		require.NoError(t, errs[w])
		scale := float32(w + 1)
		for _, x := range []float32{0.75, 4.2, 9.9, 14.5} {
			testutil.AssertRelativeError(t, base.Evaluate(x)*scale, splines[w].Evaluate(x), 1e-4,
				"worker %d x=%v", w, x)
		}
	}
}
