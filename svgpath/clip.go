package svgpath

import "sort"

// Contains returns true if pt is inside the region delimited
// by the (implicitly closed) polylines, using the even-odd rule.
func Contains(boundary []Polyline, pt Point) bool {
	inside := false
	for _, pl := range boundary {
		n := len(pl)
		if n < 3 {
			continue
		}
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := pl[i], pl[j]
			if (a.Y > pt.Y) != (b.Y > pt.Y) &&
				pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentIntersection returns the parameter t along [p, q] of the
// intersection with [a, b], if any.
func segmentIntersection(p, q, a, b Point) (float64, bool) {
	r, s := q.sub(p), b.sub(a)
	denom := r.X*s.Y - r.Y*s.X
	if denom == 0 {
		return 0, false // parallel
	}
	ap := a.sub(p)
	t := (ap.X*s.Y - ap.Y*s.X) / denom
	u := (ap.X*r.Y - ap.Y*r.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// ClipPolyline returns the parts of `line` lying inside `boundary`
// (even-odd rule, boundary polylines implicitly closed).
func ClipPolyline(line Polyline, boundary []Polyline) []Polyline {
	var (
		out     []Polyline
		current Polyline
	)
	flush := func() {
		if len(current) >= 2 {
			out = append(out, current)
		}
		current = nil
	}
	for i := 1; i < len(line); i++ {
		p, q := line[i-1], line[i]
		ts := []float64{0, 1}
		for _, pl := range boundary {
			n := len(pl)
			for k, l := 0, n-1; k < n; l, k = k, k+1 {
				if t, ok := segmentIntersection(p, q, pl[l], pl[k]); ok {
					ts = append(ts, t)
				}
			}
		}
		sort.Float64s(ts)
		for k := 1; k < len(ts); k++ {
			t0, t1 := ts[k-1], ts[k]
			if t1-t0 < 1e-12 {
				continue
			}
			mid := p.add(q.sub(p).scale((t0 + t1) / 2))
			if !Contains(boundary, mid) {
				flush()
				continue
			}
			start, end := p.add(q.sub(p).scale(t0)), p.add(q.sub(p).scale(t1))
			if len(current) == 0 {
				current = Polyline{start}
			}
			current = append(current, end)
		}
	}
	flush()
	return out
}
