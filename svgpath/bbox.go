package svgpath

import (
	"math"
)

// compute the exact bounding box of a path, needed to size outputs
// and to resolve objectBoundingBox units

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// Union returns the smallest box containing b and other.
// Empty boxes (negative size) are ignored.
func (b Bounds) Union(other Bounds) Bounds {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	minX, minY := math.Min(b.X, other.X), math.Min(b.Y, other.Y)
	maxX := math.Max(b.X+b.W, other.X+other.W)
	maxY := math.Max(b.Y+b.H, other.Y+other.H)
	return Bounds{minX, minY, maxX - minX, maxY - minY}
}

// IsEmpty returns true for the box returned by an empty path.
func (b Bounds) IsEmpty() bool { return b.W < 0 || b.H < 0 }

// emptyBounds is the neutral element of Union
var emptyBounds = Bounds{W: -1, H: -1}

type line [2]Point

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	return bezierLine(l[0].X, l[1].X, t), bezierLine(l[0].Y, l[1].Y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type cubicBezier [4]Point

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].X, cu[1].X, cu[2].X, cu[3].X)
	aY, bY, cY := cubicDerivative(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierSpline(cu[0].X, cu[1].X, cu[2].X, cu[3].X, t), bezierSpline(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y, t)
}

func (cu cubicBezier) pointAt(t float64) Point {
	x, y := cu.evaluateCurve(t)
	return Point{x, y}
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		// simple line: x = -c / b
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

func computeBoundingBox(curve bezier) Bounds {
	resX, resY := curve.criticalPoints()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return Bounds{minX, minY, maxX - minX, maxY - minY}
}

// Bounds returns the exact extent of the path (control points
// of the curves are not included).
// An empty path returns a box with negative size.
func (p Path) Bounds() Bounds {
	out := emptyBounds
	var current, start Point
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, start = Point(op), Point(op)
			out = out.Union(Bounds{X: op.X, Y: op.Y})
		case LineTo:
			out = out.Union(computeBoundingBox(line{current, Point(op)}))
			current = Point(op)
		case CubicTo:
			out = out.Union(computeBoundingBox(cubicBezier{current, op.Control1, op.Control2, op.To}))
			current = op.To
		case Close:
			current = start
		}
	}
	return out
}
