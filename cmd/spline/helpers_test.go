package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-spline"
	"github.com/tphakala/go-spline/internal/table"
)

const regressionTable = `
name: regression
knots:
  - [0.5, 0]
  - [1, 0]
  - [2, 1]
  - [3, 2]
  - [4.5, 4]
  - [5, 7]
  - [6, 9]
  - [7, 10]
  - [8, 8]
  - [9, 6]
  - [10, 3]
  - [11.5, 2]
  - [12, 2]
  - [13, 1]
  - [14, 1]
  - [15, 0]
`

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knots.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCapture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out)
	return out.String(), err
}

func TestRun_InlinePointsAt(t *testing.T) {
	out, err := runCapture(t, "--double", "--points", "0:1,1:3,2:5", "--at", "0.5", "--at", "3")
	require.NoError(t, err)
	assert.Equal(t, "0.5\t2\n3\t7\n", out)
}

func TestRun_Summary(t *testing.T) {
	out, err := runCapture(t, "-p", "0:1,1:3,2:5")
	require.NoError(t, err)
	assert.Equal(t, "3 knots on [0, 2]\n", out)
}

func TestRun_Samples(t *testing.T) {
	out, err := runCapture(t, "--double", "-p", "0:1,1:3,2:5", "--samples", "3")
	require.NoError(t, err)
	assert.Equal(t, "0\t1\n1\t3\n2\t5\n", out)
}

func TestRun_SampleValuesFloat32(t *testing.T) {
	out, err := runCapture(t, "-p", "0:0,1:1,2:0,3:1", "--samples", "7")
	require.NoError(t, err)

	want := []float64{0, 0.75, 1, 0.5, 0, 0.25, 1}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(want))
	for i, line := range lines {
		_, ys, ok := strings.Cut(line, "\t")
		require.True(t, ok, "line %q", line)
		y, err := strconv.ParseFloat(ys, 64)
		require.NoError(t, err)
		assert.InDelta(t, want[i], y, 1e-5, "sample %d", i)
	}
}

func TestRun_Coefficients(t *testing.T) {
	out, err := runCapture(t, "--table", writeTable(t, regressionTable), "--coefficients")
	require.NoError(t, err)
	assert.Contains(t, out, "name: regression")
	assert.Contains(t, out, "segments:")
	assert.Equal(t, 15, strings.Count(out, "from:"))
}

func TestRun_CheckPasses(t *testing.T) {
	path := writeTable(t, regressionTable)

	for _, precision := range [][]string{nil, {"--double"}} {
		args := append([]string{"--table", path, "--check"}, precision...)
		out, err := runCapture(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.Contains(t, out, "max |spline - reference|")
	}
}

func TestRun_CheckNeedsInteriorKnot(t *testing.T) {
	_, err := runCapture(t, "-p", "0:0,1:1", "--check")
	assert.ErrorContains(t, err, "--check needs at least")
}

func TestRun_TableFromEnvironment(t *testing.T) {
	t.Setenv(table.EnvVar, writeTable(t, "knots: [[0, 1], [1, 3], [2, 5]]\n"))

	out, err := runCapture(t, "--double", "--at", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.5\t4\n", out)
}

func TestRun_Errors(t *testing.T) {
	t.Setenv(table.EnvVar, "")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no table", nil, table.ErrNoTable},
		{"malformed points", []string{"-p", "0:0,1"}, table.ErrMalformed},
		{"decreasing knots", []string{"-p", "0:0,2:1,1:2"}, spline.ErrInvalidInput},
		{"missing file", []string{"-t", filepath.Join(t.TempDir(), "none.yaml")}, os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCapture(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	_, err := runCapture(t, "-p", "0:0,1:1", "extra")
	assert.ErrorContains(t, err, "unexpected argument")

	_, err = runCapture(t, "-p", "0:0,1:1", "--samples", "-1")
	assert.ErrorContains(t, err, "--samples")

	_, err = runCapture(t, "--no-such-flag")
	assert.Error(t, err)
}

func TestRun_Help(t *testing.T) {
	_, err := runCapture(t, "--help")
	assert.NoError(t, err)
}

func TestCheckReference_Float32(t *testing.T) {
	tbl, err := table.Parse(strings.NewReader(regressionTable))
	require.NoError(t, err)
	s, err := table.Build[float32](tbl)
	require.NoError(t, err)

	maxErr, tol, err := checkReference(tbl, &s)
	require.NoError(t, err)
	assert.InDelta(t, checkTolerance32*10, tol, 1e-12)
	assert.Less(t, maxErr, tol)
}
