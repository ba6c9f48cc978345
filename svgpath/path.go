// Implements an abstract representation of
// svg paths, reduced to the minimal set of commands
// a plotter needs: moves, lines, cubic beziers and closes.
package svgpath

import (
	"fmt"
	"strings"
)

// Point is a 2D point, in user units.
type Point struct{ X, Y float64 }

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Adder is implemented by types that can accumulate path commands.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a Point)
	// Line adds a line segment to the path
	Line(b Point)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d Point)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

// MoveTo starts a new subpath.
type MoveTo Point

// LineTo draws a straight segment from the current point.
type LineTo Point

// CubicTo draws a cubic bezier curve from the current point,
// using two control points.
type CubicTo struct {
	Control1, Control2 Point
	To                 Point
}

// Close draws a straight line back to the start of the current subpath.
type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic commands.
// Higher-level shapes are reduced to a path.
// The insertion order is the drawing order; no validation is done
// when pushing commands.
type Path []Operation

// Push appends the given command as it is.
func (p *Path) Push(op Operation) {
	*p = append(*p, op)
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve,
// elevated to a cubic one.
func (p *Path) QuadBezier(b, c Point) {
	a := p.currentPoint()
	// the cubic control points sit at 2/3 of the way to the quadratic one
	c1 := a.add(b.sub(a).scale(2. / 3))
	c2 := c.add(b.sub(c).scale(2. / 3))
	*p = append(*p, CubicTo{Control1: c1, Control2: c2, To: c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{Control1: b, Control2: c, To: d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// currentPoint returns the end point of the path,
// taking into account close commands
func (p Path) currentPoint() Point {
	var current, start Point
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, start = Point(op), Point(op)
		case LineTo:
			current = Point(op)
		case CubicTo:
			current = op.To
		case Close:
			current = start
		}
	}
	return current
}

// Copy returns a deep copy of the path.
func (p Path) Copy() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Transform applies the matrix `m` to every point of the path,
// in place.
func (p Path) Transform(m Matrix2D) {
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			p[i] = MoveTo(m.TransformPoint(Point(op)))
		case LineTo:
			p[i] = LineTo(m.TransformPoint(Point(op)))
		case CubicTo:
			p[i] = CubicTo{
				Control1: m.TransformPoint(op.Control1),
				Control2: m.TransformPoint(op.Control2),
				To:       m.TransformPoint(op.To),
			}
		}
	}
}

// AddTo replays the path on `q`.
func (p Path) AddTo(q Adder) {
	inPath := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if inPath {
				q.Stop(false)
			}
			q.Start(Point(op))
			inPath = true
		case LineTo:
			q.Line(Point(op))
		case CubicTo:
			q.CubeBezier(op.Control1, op.Control2, op.To)
		case Close:
			q.Stop(true)
			inPath = false
		}
	}
	if inPath {
		q.Stop(false)
	}
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op.Control1.X, op.Control1.Y,
				op.Control2.X, op.Control2.Y, op.To.X, op.To.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}
