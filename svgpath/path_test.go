package svgpath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randPoint() Point {
	return Point{rand.Float64()*200 - 100, rand.Float64()*200 - 100}
}

func randMatrix() Matrix2D {
	return Identity.Translate(rand.Float64()*20, rand.Float64()*20).
		Rotate(rand.Float64() * math.Pi).
		Scale(0.5+rand.Float64(), 0.5+rand.Float64())
}

func assertPathInDelta(t *testing.T, expected, got Path) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i := range expected {
		switch exp := expected[i].(type) {
		case MoveTo:
			g, ok := got[i].(MoveTo)
			require.True(t, ok, "command %d: expected move, got %T", i, got[i])
			assert.InDelta(t, exp.X, g.X, 1e-9)
			assert.InDelta(t, exp.Y, g.Y, 1e-9)
		case LineTo:
			g, ok := got[i].(LineTo)
			require.True(t, ok, "command %d: expected line, got %T", i, got[i])
			assert.InDelta(t, exp.X, g.X, 1e-9)
			assert.InDelta(t, exp.Y, g.Y, 1e-9)
		case CubicTo:
			g, ok := got[i].(CubicTo)
			require.True(t, ok, "command %d: expected cubic, got %T", i, got[i])
			for _, pair := range [][2]Point{{exp.Control1, g.Control1}, {exp.Control2, g.Control2}, {exp.To, g.To}} {
				assert.InDelta(t, pair[0].X, pair[1].X, 1e-9)
				assert.InDelta(t, pair[0].Y, pair[1].Y, 1e-9)
			}
		case Close:
			assert.Equal(t, Close{}, got[i])
		}
	}
}

func TestPushPreservesOrder(t *testing.T) {
	var p Path
	ops := []Operation{
		LineTo{1, 1}, // no validation : a line may come first
		MoveTo{0, 0},
		CubicTo{Point{1, 2}, Point{3, 4}, Point{5, 6}},
		Close{},
		Close{},
		MoveTo{7, 8},
	}
	for _, op := range ops {
		p.Push(op)
	}
	assert.Equal(t, Path(ops), p)
}

func TestTransform(t *testing.T) {
	p := Path{MoveTo{0, 0}, LineTo{10, 0}, Close{}}
	p.Transform(Identity.Translate(5, 5))
	assert.Equal(t, Path{MoveTo{5, 5}, LineTo{15, 5}, Close{}}, p)
}

func TestTransformComposition(t *testing.T) {
	for range [50]int{} {
		var p Path
		p.Start(randPoint())
		p.Line(randPoint())
		p.CubeBezier(randPoint(), randPoint(), randPoint())
		p.Stop(true)

		t1, t2 := randMatrix(), randMatrix()

		twice := p.Copy()
		twice.Transform(t1)
		twice.Transform(t2)

		once := p.Copy()
		once.Transform(t2.Mult(t1))

		assertPathInDelta(t, once, twice)
	}
}

func TestInvert(t *testing.T) {
	for range [50]int{} {
		m := randMatrix()
		got := m.Mult(m.Invert())
		assert.InDelta(t, 1, got.A, 1e-9)
		assert.InDelta(t, 0, got.B, 1e-9)
		assert.InDelta(t, 0, got.C, 1e-9)
		assert.InDelta(t, 1, got.D, 1e-9)
		assert.InDelta(t, 0, got.E, 1e-9)
		assert.InDelta(t, 0, got.F, 1e-9)
	}
	assert.Equal(t, Identity, Matrix2D{}.Invert())
}

func TestQuadBezierElevation(t *testing.T) {
	var p Path
	p.Start(Point{0, 0})
	p.QuadBezier(Point{3, 3}, Point{6, 0})
	assertPathInDelta(t, Path{
		MoveTo{0, 0},
		CubicTo{Point{2, 2}, Point{4, 2}, Point{6, 0}},
	}, p)
}

func TestToSVGPath(t *testing.T) {
	p := Path{MoveTo{1, 2}, LineTo{3, 4}, CubicTo{Point{1, 1}, Point{2, 2}, Point{3, 3}}, Close{}}
	assert.Equal(t, "M1.000,2.000 L3.000,4.000 C1.000,1.000,2.000,2.000,3.000,3.000 Z", p.ToSVGPath())
}

func TestAddTo(t *testing.T) {
	p := Path{MoveTo{1, 2}, LineTo{3, 4}, MoveTo{0, 0}, LineTo{1, 1}, Close{}}
	var q Path
	p.AddTo(&q)
	assert.Equal(t, p, q)
}
