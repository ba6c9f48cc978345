package svgpath

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumbers(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected []float64
	}{
		{"", nil},
		{"1 2,3", []float64{1, 2, 3}},
		{"10-5", []float64{10, -5}},
		{"1.5.5", []float64{1.5, 0.5}},
		{"1e2 -1E-1", []float64{100, -0.1}},
		{" \n+4 , ,5 ", []float64{4, 5}},
	} {
		got, err := ParseNumbers(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.expected, got, test.input)
	}

	_, err := ParseNumbers("1 2 a")
	assert.Error(t, err)
}

func TestParseTransform(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected Matrix2D
	}{
		{"", Identity},
		{"translate(5)", Identity.Translate(5, 0)},
		{"translate(5, 6)", Identity.Translate(5, 6)},
		{"scale(2)", Identity.Scale(2, 2)},
		{"scale(2 3)", Identity.Scale(2, 3)},
		{"matrix(1 2 3 4 5 6)", Matrix2D{1, 2, 3, 4, 5, 6}},
		{"rotate(90)", Identity.Rotate(math.Pi / 2)},
		{"rotate(90 10 10)", Identity.Translate(10, 10).Rotate(math.Pi / 2).Translate(-10, -10)},
		{"skewX(45)", Identity.SkewX(math.Pi / 4)},
		{"skewY(45)", Identity.SkewY(math.Pi / 4)},
		{"translate(10,0) scale(2)", Identity.Translate(10, 0).Scale(2, 2)},
		{"translate(10,0),scale(2)", Identity.Translate(10, 0).Scale(2, 2)},
	} {
		got, err := ParseTransform(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.expected, got, test.input)
	}

	// the rightmost transform is applied first
	m, err := ParseTransform("translate(10,0) scale(2)")
	require.NoError(t, err)
	x, y := m.Transform(1, 1)
	assert.Equal(t, 12., x)
	assert.Equal(t, 2., y)

	for _, invalid := range []string{"translate(1 2 3)", "foo(1)", "rotate(1 2)", "matrix(1 2 3)", "scale"} {
		_, err := ParseTransform(invalid)
		assert.True(t, errors.Is(err, ErrParamMismatch), invalid)
	}
}

func compile(t *testing.T, d string) Path {
	t.Helper()
	var p Path
	err := CompilePath(d, &p)
	require.NoError(t, err, d)
	return p
}

func TestCompilePath(t *testing.T) {
	for _, test := range []struct {
		d        string
		expected Path
	}{
		{"M0,0 L10,0 Z", Path{MoveTo{0, 0}, LineTo{10, 0}, Close{}}},
		{"m1 1 2 0 0 2z", Path{MoveTo{1, 1}, LineTo{3, 1}, LineTo{3, 3}, Close{}}},
		{"M0 0H10V10h-5v-5", Path{MoveTo{0, 0}, LineTo{10, 0}, LineTo{10, 10}, LineTo{5, 10}, LineTo{5, 5}}},
		{"M0 0C1 1 2 2 3 3S5 5 6 6", Path{
			MoveTo{0, 0},
			CubicTo{Point{1, 1}, Point{2, 2}, Point{3, 3}},
			CubicTo{Point{4, 4}, Point{5, 5}, Point{6, 6}},
		}},
		{"M0 0Q3 3 6 0T12 0", Path{
			MoveTo{0, 0},
			CubicTo{Point{2, 2}, Point{4, 2}, Point{6, 0}},
			CubicTo{Point{8, -2}, Point{10, -2}, Point{12, 0}},
		}},
		// drawing after a close restarts at the subpath start
		{"M1 1L2 2ZL3 3", Path{MoveTo{1, 1}, LineTo{2, 2}, Close{}, MoveTo{1, 1}, LineTo{3, 3}}},
		// arcs with a null radius are lines
		{"M0 0A0 5 0 0 1 10 0", Path{MoveTo{0, 0}, LineTo{10, 0}}},
		{"M0 0A5 5 0 0 1 0 0", Path{MoveTo{0, 0}}},
	} {
		assertPathInDelta(t, test.expected, compile(t, test.d))
	}
}

func TestCompileArc(t *testing.T) {
	p := compile(t, "M0,0 A5,5 0 0 1 10,0")
	require.Greater(t, len(p), 1)
	last, ok := p[len(p)-1].(CubicTo)
	require.True(t, ok)
	assert.Equal(t, Point{10, 0}, last.To)

	bbox := p.Bounds()
	assert.InDelta(t, 10, bbox.W, 1e-2)
	assert.InDelta(t, 5, bbox.H, 1e-2)

	// packed flags
	p2 := compile(t, "M0,0 a5,5 0 0110,0")
	assertPathInDelta(t, p, p2)

	// radii too small are scaled up
	p3 := compile(t, "M0,0 A1,1 0 0 1 10,0")
	assert.InDelta(t, 5, p3.Bounds().H, 1e-2)
}

func TestCompilePathInvalid(t *testing.T) {
	for _, d := range []string{"L10 10", "M0 0 L10", "M0 0 X 1", "M0 0 A 1 1 0 2 0 1 1", "M 0 0 Z 1"} {
		var p Path
		err := CompilePath(d, &p)
		assert.Error(t, err, d)
	}
}
