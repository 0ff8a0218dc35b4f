package main

import (
	"fmt"
	"io"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/tphakala/go-spline"
	"github.com/tphakala/go-spline/internal/table"
)

// options holds the parsed command line.
type options struct {
	tablePath    string
	points       string
	at           []float64
	samples      int
	coefficients bool
	check        bool
	double       bool
	verbose      bool
}

// loadTable returns the inline knots when given, else the table file named by
// --table or the environment.
func loadTable(opts *options) (*table.Table, error) {
	if opts.points != "" {
		knots, err := table.ParsePairs(opts.points)
		if err != nil {
			return nil, err
		}
		return &table.Table{Name: inlineTableName, Knots: knots}, nil
	}

	path, err := table.Resolve(opts.tablePath)
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		log.Printf("Table: %s", path)
	}
	return table.Load(path)
}

// report builds the spline at precision F and prints what opts asks for.
func report[F spline.Float](w io.Writer, tbl *table.Table, opts *options) error {
	s, err := table.Build[F](tbl)
	if err != nil {
		return err
	}

	lo, hi := s.Domain()
	if opts.verbose {
		log.Printf("Domain: [%g, %g], %d segments", lo, hi, s.Len()-1)
	}

	quiet := true
	if opts.coefficients {
		quiet = false
		c, err := table.Describe(tbl.Name, &s)
		if err != nil {
			return err
		}
		if err := c.Write(w); err != nil {
			return err
		}
	}

	for _, x := range opts.at {
		quiet = false
		fmt.Fprintf(w, "%g\t%g\n", x, s.Evaluate(F(x)))
	}

	if opts.samples > 0 {
		quiet = false
		if err := printSamples(w, &s, opts.samples); err != nil {
			return err
		}
	}

	if opts.check {
		quiet = false
		maxErr, tol, err := checkReference(tbl, &s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "max |spline - reference| = %.3g (tolerance %.3g)\n", maxErr, tol)
		if maxErr > tol {
			return fmt.Errorf("reference check failed: %.3g exceeds %.3g", maxErr, tol)
		}
	}

	if quiet {
		fmt.Fprintf(w, "%d knots on [%g, %g]\n", s.Len(), lo, hi)
	}
	return nil
}

// printSamples prints n evenly spaced samples across the domain.
func printSamples[F spline.Float](w io.Writer, s *spline.Spline[F], n int) error {
	lo, hi := s.Domain()
	ys := make([]F, n)
	if err := s.Sample(ys, lo, hi); err != nil {
		return err
	}

	xs := make([]float64, n)
	if n == 1 {
		xs[0] = float64(lo)
	} else {
		floats.Span(xs, float64(lo), float64(hi))
	}
	for i, y := range ys {
		fmt.Fprintf(w, "%g\t%g\n", xs[i], y)
	}
	return nil
}

// checkReference compares s with gonum's float64 natural cubic on a dense
// grid inside the domain. It returns the largest absolute difference and the
// tolerance for the precision of F.
func checkReference[F spline.Float](tbl *table.Table, s *spline.Spline[F]) (maxErr, tol float64, err error) {
	n := len(tbl.Knots)
	if n < minCheckKnots {
		return 0, 0, fmt.Errorf("--check needs at least %d knots, got %d", minCheckKnots, n)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	absYs := make([]float64, n)
	for i, k := range tbl.Knots {
		xs[i], ys[i], absYs[i] = k.X, k.Y, math.Abs(k.Y)
	}

	var ref interp.NaturalCubic
	if err := ref.Fit(xs, ys); err != nil {
		return 0, 0, fmt.Errorf("reference fit: %w", err)
	}

	grid := floats.Span(make([]float64, checkPoints), xs[0], xs[n-1])
	want := make([]float64, checkPoints)
	got := make([]float64, checkPoints)
	for i, x := range grid {
		want[i] = ref.Predict(x)
		got[i] = float64(s.Evaluate(F(x)))
	}
	floats.Sub(got, want)

	var zero F
	tol = checkTolerance64
	if _, single := any(zero).(float32); single {
		tol = checkTolerance32
	}
	tol *= math.Max(1, floats.Max(absYs))

	return floats.Norm(got, math.Inf(1)), tol, nil
}
