package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/go-spline"
)

const zigzag = `
name: zigzag
min_interval: 1e-3
knots:
  - {x: 0, y: 0}
  - [1, 1]
  - {x: 2, y: 0}
  - [3, 1]
`

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(zigzag))
	require.NoError(t, err)

	assert.Equal(t, "zigzag", tbl.Name)
	require.NotNil(t, tbl.MinInterval)
	assert.InDelta(t, 1e-3, *tbl.MinInterval, 1e-15)
	assert.Equal(t, []Knot{{0, 0}, {1, 1}, {2, 0}, {3, 1}}, tbl.Knots)
	assert.InDelta(t, 1e-3, tbl.Config().MinInterval, 1e-15)
}

func TestParse_DefaultsMinInterval(t *testing.T) {
	tbl, err := Parse(strings.NewReader("knots: [[0, 0], [1, 2]]\n"))
	require.NoError(t, err)

	assert.Nil(t, tbl.MinInterval)
	assert.Equal(t, spline.DefaultConfig(), tbl.Config())
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"no knots", "name: empty\n"},
		{"unknown field", "knots: [[0, 0], [1, 1]]\ndegree: 3\n"},
		{"short pair", "knots: [[0, 0], [1]]\n"},
		{"long pair", "knots: [[0, 0, 0], [1, 1]]\n"},
		{"non-numeric", "knots: [[zero, 0], [1, 1]]\n"},
		{"unknown knot field", "knots: [{x: 0, y: 0, z: 1}, {x: 1, y: 1}]\n"},
		{"misspelled knot field", "knots: [{x: 0, y: 0}, {x: 1, Y: 2}]\n"},
		{"missing y", "knots: [{x: 0, y: 0}, {x: 1}]\n"},
		{"duplicate x", "knots: [{x: 0, x: 1, y: 0}, {x: 2, y: 1}]\n"},
		{"scalar knot", "knots: [0, 1]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParse_StrictKnotFields(t *testing.T) {
	for _, in := range []string{
		"knots: [{x: 0, y: 0, z: 1}, {x: 1, y: 1}]\n",
		"knots: [{x: 0, y: 0}, {x: 1, yy: 2}]\n",
		"knots: [{x: 0, y: 0}, {x: 1}]\n",
	} {
		_, err := Parse(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}

	tbl, err := Parse(strings.NewReader("knots: [{y: 2, x: 1}, [3, 4]]\n"))
	require.NoError(t, err)
	assert.Equal(t, []Knot{{1, 2}, {3, 4}}, tbl.Knots)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zigzag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(zigzag), 0o600))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, tbl.Knots, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvVar, "")
	_, err := Resolve("")
	assert.ErrorIs(t, err, ErrNoTable)

	got, err := Resolve("explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "explicit.yaml", got)

	t.Setenv(EnvVar, "from-env.yaml")
	got, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", got)

	got, err = Resolve("explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "explicit.yaml", got)
}

func TestParsePairs(t *testing.T) {
	knots, err := ParsePairs("0:0, 1:1,2:0 ,3:1,")
	require.NoError(t, err)
	assert.Equal(t, []Knot{{0, 0}, {1, 1}, {2, 0}, {3, 1}}, knots)

	knots, err = ParsePairs("-1.5:2e-1")
	require.NoError(t, err)
	assert.Equal(t, []Knot{{-1.5, 0.2}}, knots)
}

func TestParsePairs_Rejects(t *testing.T) {
	for _, in := range []string{"", " , ", "1", "1:a", "b:1", "1;2"} {
		_, err := ParsePairs(in)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestBuild(t *testing.T) {
	tbl, err := Parse(strings.NewReader(zigzag))
	require.NoError(t, err)

	s, err := Build[float32](tbl)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Evaluate(1.5), 1e-5)

	tbl.Knots[2].X = 0.5
	_, err = Build[float64](tbl)
	assert.ErrorIs(t, err, spline.ErrInvalidInput)
}

func TestDescribe(t *testing.T) {
	s, err := spline.Build32([]float32{0, 1, 2, 3}, []float32{0, 1, 0, 1})
	require.NoError(t, err)

	c, err := Describe("zigzag", &s)
	require.NoError(t, err)
	require.Len(t, c.Knots, 4)
	require.Len(t, c.Segments, 3)

	mid := c.Segments[1]
	assert.Equal(t, 1.0, mid.From)
	assert.Equal(t, 2.0, mid.To)
	assert.InDelta(t, 1.0, mid.A, 1e-6)
	assert.InDelta(t, -2.0, mid.C, 1e-5)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	assert.Contains(t, buf.String(), "segments:")

	var decoded Coefficients
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, c.Knots, decoded.Knots)
	assert.Len(t, decoded.Segments, 3)
}

func TestDescribe_NotBuilt(t *testing.T) {
	var s spline.Spline64
	_, err := Describe("", &s)
	assert.ErrorIs(t, err, spline.ErrNotBuilt)
}
