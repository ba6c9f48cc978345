package svgpath

import "math"

// Polyline is a sequence of connected points.
type Polyline []Point

// maxFlattenDepth bounds the subdivision of a single curve
const maxFlattenDepth = 16

// Flatten approximates the path by polylines, one per subpath.
// Cubic beziers are subdivided (De Casteljau) until their control
// points are within `tolerance` of the chord.
// Closed subpaths end with their first point.
func (p Path) Flatten(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	var (
		out     []Polyline
		current Polyline
		start   Point
	)
	flush := func() {
		if len(current) >= 2 {
			out = append(out, current)
		}
		current = nil
	}
	last := func() Point {
		if len(current) == 0 {
			return start
		}
		return current[len(current)-1]
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			flush()
			start = Point(op)
			current = Polyline{start}
		case LineTo:
			if len(current) == 0 {
				current = Polyline{start}
			}
			current = append(current, Point(op))
		case CubicTo:
			if len(current) == 0 {
				current = Polyline{start}
			}
			cu := cubicBezier{last(), op.Control1, op.Control2, op.To}
			current = flattenCubic(current, cu, tolerance, 0)
		case Close:
			if len(current) > 0 && last() != start {
				current = append(current, start)
			}
			flush()
		}
	}
	flush()
	return out
}

// flattenCubic appends to dst the points approximating cu,
// excluding its start point.
func flattenCubic(dst Polyline, cu cubicBezier, tolerance float64, depth int) Polyline {
	if depth >= maxFlattenDepth || isFlat(cu, tolerance) {
		return append(dst, cu[3])
	}
	left, right := cu.split()
	dst = flattenCubic(dst, left, tolerance, depth+1)
	return flattenCubic(dst, right, tolerance, depth+1)
}

// split divides the curve at t = 0.5
func (cu cubicBezier) split() (left, right cubicBezier) {
	mid := func(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }
	p01, p12, p23 := mid(cu[0], cu[1]), mid(cu[1], cu[2]), mid(cu[2], cu[3])
	p012, p123 := mid(p01, p12), mid(p12, p23)
	m := mid(p012, p123)
	return cubicBezier{cu[0], p01, p012, m}, cubicBezier{m, p123, p23, cu[3]}
}

func isFlat(cu cubicBezier, tolerance float64) bool {
	return distToSegment(cu[1], cu[0], cu[3]) <= tolerance &&
		distToSegment(cu[2], cu[0], cu[3]) <= tolerance
}

func distToSegment(p, a, b Point) float64 {
	ab := b.sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	proj := a.add(ab.scale(t))
	return math.Hypot(p.X-proj.X, p.Y-proj.Y)
}

// Length returns the total length of the polyline.
func (pl Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(pl); i++ {
		l += math.Hypot(pl[i].X-pl[i-1].X, pl[i].Y-pl[i-1].Y)
	}
	return l
}

// ToPath converts polylines back to a path made of moves and lines.
func ToPath(lines []Polyline) Path {
	var out Path
	for _, pl := range lines {
		if len(pl) < 2 {
			continue
		}
		out.Start(pl[0])
		for _, pt := range pl[1:] {
			out.Line(pt)
		}
	}
	return out
}
