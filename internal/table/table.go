// Package table loads knot tables from YAML files and writes built spline
// coefficients back out as YAML.
//
// A table file looks like:
//
//	name: soft-clip
//	min_interval: 1e-6
//	knots:
//	  - {x: -1, y: -1}
//	  - [0, 0]
//	  - {x: 1, y: 1}
//
// Knots may be written either as mappings or as two-element sequences.
// Unknown fields are rejected.
package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-spline"
)

// EnvVar names the environment variable consulted when no table path is given.
const EnvVar = "SPLINE_TABLE"

// Errors returned by the loader.
var (
	// ErrNoTable indicates neither a path nor EnvVar was provided.
	ErrNoTable = errors.New("no knot table given")

	// ErrMalformed indicates a table that parses as YAML but is not a knot table.
	ErrMalformed = errors.New("malformed knot table")
)

// Table is a knot table as stored on disk.
type Table struct {
	// Name is an optional label echoed by the commands.
	Name string `yaml:"name,omitempty"`

	// MinInterval overrides spline.DefaultMinInterval when set.
	MinInterval *float64 `yaml:"min_interval,omitempty"`

	// Knots lists the points in increasing x order.
	Knots []Knot `yaml:"knots"`
}

// Knot is one table row.
type Knot struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// UnmarshalYAML accepts both {x: .., y: ..} and [x, y].
func (k *Knot) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("%w: line %d: knot needs 2 values, got %d",
				ErrMalformed, value.Line, len(pair))
		}
		k.X, k.Y = pair[0], pair[1]
		return nil
	}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: knot must be a mapping or a sequence",
			ErrMalformed, value.Line)
	}

	var seenX, seenY bool
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var dst *float64
		switch key.Value {
		case "x":
			if seenX {
				return fmt.Errorf("%w: line %d: duplicate field x", ErrMalformed, key.Line)
			}
			seenX, dst = true, &k.X
		case "y":
			if seenY {
				return fmt.Errorf("%w: line %d: duplicate field y", ErrMalformed, key.Line)
			}
			seenY, dst = true, &k.Y
		default:
			return fmt.Errorf("%w: line %d: field %s not found in type table.Knot",
				ErrMalformed, key.Line, key.Value)
		}
		if err := val.Decode(dst); err != nil {
			return err
		}
	}
	if !seenX || !seenY {
		return fmt.Errorf("%w: line %d: knot needs both x and y", ErrMalformed, value.Line)
	}
	return nil
}

// Resolve returns path, or the value of EnvVar when path is empty.
func Resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("%w: pass a table path or set %s", ErrNoTable, EnvVar)
}

// Load reads a table from a file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a table from r.
func Parse(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		return nil, err
	}
	if len(t.Knots) == 0 {
		return nil, fmt.Errorf("%w: no knots", ErrMalformed)
	}
	return &t, nil
}

// ParsePairs parses inline knots of the form "x:y,x:y,...".
func ParsePairs(s string) ([]Knot, error) {
	fields := strings.Split(s, ",")
	knots := make([]Knot, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		xs, ys, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("%w: pair %d %q is not x:y", ErrMalformed, i, field)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: pair %d: %w", ErrMalformed, i, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: pair %d: %w", ErrMalformed, i, err)
		}
		knots = append(knots, Knot{X: x, Y: y})
	}
	if len(knots) == 0 {
		return nil, fmt.Errorf("%w: no knots", ErrMalformed)
	}
	return knots, nil
}

// Config returns the spline configuration described by the table.
func (t *Table) Config() *spline.Config {
	cfg := spline.DefaultConfig()
	if t.MinInterval != nil {
		cfg.MinInterval = *t.MinInterval
	}
	return cfg
}

// Points converts the knots to spline points of type F.
func Points[F spline.Float](knots []Knot) []spline.Point[F] {
	points := make([]spline.Point[F], len(knots))
	for i, k := range knots {
		points[i] = spline.Point[F]{X: F(k.X), Y: F(k.Y)}
	}
	return points
}

// Build converts the table and builds a spline of type F.
func Build[F spline.Float](t *Table) (spline.Spline[F], error) {
	return spline.BuildWithConfig(Points[F](t.Knots), t.Config())
}
