package spline

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-spline/internal/engine"
	"github.com/tphakala/go-spline/internal/mathutil"
	"github.com/tphakala/go-spline/internal/simdops"
)

// Float is the type constraint for supported floating-point types.
type Float = simdops.Float

// Segment is the cubic A + B*dx + C*dx^2 + D*dx^3 valid on one knot
// interval, with dx measured from the interval's left knot.
type Segment[F Float] = engine.Segment[F]

// Common errors returned by the spline builder.
var (
	// ErrInvalidInput indicates too few or too many points, a non-finite
	// coordinate, or x values that are not strictly increasing.
	ErrInvalidInput = errors.New("invalid spline input")

	// ErrDegenerateInput indicates knots too close together for a stable solve.
	ErrDegenerateInput = errors.New("degenerate spline input")

	// ErrNotBuilt indicates use of a zero-value Spline.
	ErrNotBuilt = errors.New("spline not built")

	// ErrBufferTooSmall indicates the output buffer is too small.
	ErrBufferTooSmall = errors.New("output buffer too small")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid spline configuration")
)

// Config holds build configuration.
type Config struct {
	// MinInterval is the narrowest accepted distance between consecutive
	// knots. Builds with a narrower interval fail with ErrDegenerateInput.
	// Zero accepts any strictly increasing input.
	MinInterval float64
}

// DefaultConfig returns the configuration used when Build is given nil.
func DefaultConfig() *Config {
	return &Config{MinInterval: DefaultMinInterval}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if math.IsNaN(c.MinInterval) || math.IsInf(c.MinInterval, 0) {
		return fmt.Errorf("%w: min interval must be finite", ErrInvalidConfig)
	}
	if c.MinInterval < 0 {
		return fmt.Errorf("%w: min interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Spline is a built natural cubic spline: the knot abscissae plus one cubic
// per interval, all in fixed arrays.
//
// A Spline is immutable once Build returns it, so a single value may be
// evaluated from any number of goroutines without locking. The zero value is
// an unbuilt spline: Built reports false, Evaluate returns 0 and the
// error-returning methods fail with ErrNotBuilt.
type Spline[F Float] struct {
	n       int
	xs      [MaxKnots]F
	segs    [engine.MaxSegments]Segment[F]
	lastY   F
	invStep F
}

// Build validates points and constructs the natural cubic spline through them
// using the default configuration.
func Build[F Float](points []Point[F]) (Spline[F], error) {
	return BuildWithConfig(points, nil)
}

// BuildXY is Build for parallel x and y slices.
func BuildXY[F Float](xs, ys []F) (Spline[F], error) {
	k, err := NewKnotSetXY(xs, ys)
	if err != nil {
		return Spline[F]{}, err
	}
	return k.Build(nil)
}

// BuildWithConfig is Build with an explicit configuration. A nil config uses
// DefaultConfig.
func BuildWithConfig[F Float](points []Point[F], cfg *Config) (Spline[F], error) {
	k, err := NewKnotSet(points)
	if err != nil {
		return Spline[F]{}, err
	}
	return k.Build(cfg)
}

// Build solves for the knot second derivatives, converts them into segment
// coefficients and returns the finished spline. The knot set is not modified.
func (k *KnotSet[F]) Build(cfg *Config) (Spline[F], error) {
	if k.n < MinKnots {
		return Spline[F]{}, fmt.Errorf("%w: knot set holds %d points", ErrInvalidInput, k.n)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return Spline[F]{}, err
	}

	n := k.n
	xs, ys := k.xs[:n], k.ys[:n]

	var m [MaxKnots]F
	if err := engine.SecondDerivatives(xs, ys, F(cfg.MinInterval), m[:n]); err != nil {
		return Spline[F]{}, classify(err)
	}

	var s Spline[F]
	if err := engine.Coefficients(xs, ys, m[:n], s.segs[:n-1]); err != nil {
		return Spline[F]{}, classify(err)
	}
	for i := range n - 1 {
		seg := &s.segs[i]
		if !mathutil.IsFinite(seg.A) || !mathutil.IsFinite(seg.B) ||
			!mathutil.IsFinite(seg.C) || !mathutil.IsFinite(seg.D) {
			return Spline[F]{}, fmt.Errorf("%w: segment %d coefficients overflow", ErrDegenerateInput, i)
		}
	}

	s.n = n
	copy(s.xs[:n], xs)
	s.lastY = ys[n-1]
	s.invStep = engine.InvStep(xs)
	return s, nil
}

// classify maps engine failures onto the public error taxonomy.
func classify(err error) error {
	if errors.Is(err, engine.ErrNarrowInterval) || errors.Is(err, mathutil.ErrSingular) {
		return fmt.Errorf("%w: %w", ErrDegenerateInput, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Built reports whether s was produced by Build.
func (s *Spline[F]) Built() bool {
	return s.n >= MinKnots
}

// Len returns the number of knots.
func (s *Spline[F]) Len() int {
	return s.n
}

// Domain returns the first and last knot abscissae.
func (s *Spline[F]) Domain() (lo, hi F) {
	if !s.Built() {
		return 0, 0
	}
	return s.xs[0], s.xs[s.n-1]
}

// Knot returns knot i, 0 <= i < Len().
func (s *Spline[F]) Knot(i int) Point[F] {
	if i == s.n-1 {
		return Point[F]{X: s.xs[i], Y: s.lastY}
	}
	return Point[F]{X: s.xs[i], Y: s.segs[i].A}
}

// Segment returns the cubic of interval i, 0 <= i < Len()-1. An unbuilt
// spline returns the zero Segment.
func (s *Spline[F]) Segment(i int) Segment[F] {
	if !s.Built() {
		return Segment[F]{}
	}
	return s.segs[:s.n-1][i]
}

// Locate returns the index of the segment used to evaluate x: the largest i
// with x_i <= x, clamped to the first and last segment.
func (s *Spline[F]) Locate(x F) int {
	if !s.Built() {
		return 0
	}
	return engine.Locate(s.xs[:s.n], s.invStep, x)
}

// Evaluate returns the spline value at x.
//
// Queries outside the knot domain extrapolate the nearest boundary cubic
// rather than clamping. A query equal to an interior knot uses the segment
// starting at that knot. Evaluate never allocates.
func (s *Spline[F]) Evaluate(x F) F {
	if !s.Built() {
		return 0
	}
	i := engine.Locate(s.xs[:s.n], s.invStep, x)
	return s.segs[i].Eval(x - s.xs[i])
}

// Derivative returns the derivative of the given order at x. Order 0 is the
// value, orders above 3 are zero. Extrapolation follows Evaluate.
func (s *Spline[F]) Derivative(x F, order int) F {
	if !s.Built() {
		return 0
	}
	i := engine.Locate(s.xs[:s.n], s.invStep, x)
	return s.segs[i].Deriv(x-s.xs[i], order)
}

// Integrate returns the signed integral of the spline from lo to hi.
// Bounds outside the domain integrate the extrapolated boundary cubics.
func (s *Spline[F]) Integrate(lo, hi F) F {
	if !s.Built() || lo == hi {
		return 0
	}
	if lo > hi {
		return -s.Integrate(hi, lo)
	}

	xs := s.xs[:s.n]
	iLo := engine.Locate(xs, s.invStep, lo)
	iHi := engine.Locate(xs, s.invStep, hi)

	first := s.segs[iLo]
	if iLo == iHi {
		return first.Integral(hi-xs[iLo]) - first.Integral(lo-xs[iLo])
	}

	sum := first.Integral(xs[iLo+1]-xs[iLo]) - first.Integral(lo-xs[iLo])
	for i := iLo + 1; i < iHi; i++ {
		sum += s.segs[i].Integral(xs[i+1] - xs[i])
	}
	return sum + s.segs[iHi].Integral(hi-xs[iHi])
}

// EvaluateInto evaluates every query in xs, writing the results to dst.
func (s *Spline[F]) EvaluateInto(dst, xs []F) error {
	if !s.Built() {
		return ErrNotBuilt
	}
	if len(dst) < len(xs) {
		return fmt.Errorf("%w: %d slots for %d queries", ErrBufferTooSmall, len(dst), len(xs))
	}
	for i, x := range xs {
		dst[i] = s.Evaluate(x)
	}
	return nil
}

// Sample fills dst with the spline evaluated on len(dst) evenly spaced
// points from lo to hi inclusive.
func (s *Spline[F]) Sample(dst []F, lo, hi F) error {
	if !s.Built() {
		return ErrNotBuilt
	}
	n := len(dst)
	switch n {
	case 0:
		return nil
	case 1:
		dst[0] = s.Evaluate(lo)
		return nil
	}

	step := (hi - lo) / F(n-1)
	for i := range n - 1 {
		dst[i] = s.Evaluate(lo + F(i)*step)
	}
	dst[n-1] = s.Evaluate(hi)
	return nil
}
