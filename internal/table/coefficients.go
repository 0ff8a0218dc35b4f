package table

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-spline"
)

// yamlIndent matches the indentation of hand-written tables.
const yamlIndent = 2

// SegmentRecord is one segment of a built spline, valid on [From, To].
type SegmentRecord struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
	A    float64 `yaml:"a"`
	B    float64 `yaml:"b"`
	C    float64 `yaml:"c"`
	D    float64 `yaml:"d"`
}

// Coefficients is the YAML form of a built spline.
type Coefficients struct {
	Name     string          `yaml:"name,omitempty"`
	Knots    []Knot          `yaml:"knots"`
	Segments []SegmentRecord `yaml:"segments"`
}

// Describe captures the knots and segment coefficients of s.
func Describe[F spline.Float](name string, s *spline.Spline[F]) (*Coefficients, error) {
	if !s.Built() {
		return nil, spline.ErrNotBuilt
	}

	n := s.Len()
	c := &Coefficients{
		Name:     name,
		Knots:    make([]Knot, n),
		Segments: make([]SegmentRecord, n-1),
	}
	for i := range n {
		p := s.Knot(i)
		c.Knots[i] = Knot{X: float64(p.X), Y: float64(p.Y)}
	}
	for i := range n - 1 {
		seg := s.Segment(i)
		c.Segments[i] = SegmentRecord{
			From: c.Knots[i].X,
			To:   c.Knots[i+1].X,
			A:    float64(seg.A),
			B:    float64(seg.B),
			C:    float64(seg.C),
			D:    float64(seg.D),
		}
	}
	return c, nil
}

// Write encodes c as YAML.
func (c *Coefficients) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode coefficients: %w", err)
	}
	return enc.Close()
}
