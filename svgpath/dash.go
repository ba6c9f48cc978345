package svgpath

import "math"

// DashArray stores the alternating lengths of dashes and gaps,
// as given by `stroke-dasharray`. An empty array means a solid line.
type DashArray []float64

// DashedPath is the finalized record handed to exporters:
// an outline in document coordinates, its dash pattern, and
// the transform mapping document coordinates back to the
// coordinates of the source element.
type DashedPath struct {
	Path             Path
	Dashes           DashArray
	InverseTransform Matrix2D
}

// Normalized returns the dash pattern to use when stroking :
// nil for a solid line (empty array, negative values or zero total length),
// otherwise an array of even length (odd arrays are repeated once).
func (d DashArray) Normalized() DashArray {
	if len(d) == 0 {
		return nil
	}
	var total float64
	for _, v := range d {
		if v < 0 || math.IsNaN(v) {
			return nil
		}
		total += v
	}
	if total == 0 {
		return nil
	}
	out := append(DashArray(nil), d...)
	if len(out)%2 == 1 {
		out = append(out, d...)
	}
	return out
}

// PatternLength returns the length of one repetition of the pattern.
func (d DashArray) PatternLength() float64 {
	var total float64
	for _, v := range d.Normalized() {
		total += v
	}
	return total
}

// Apply splits the polylines into the visible dashes.
// The pattern starts at `offset` and continues through the vertices of
// each polyline; it restarts for every polyline.
// For a solid pattern, the input is returned.
func (d DashArray) Apply(lines []Polyline, offset float64) []Polyline {
	dashes := d.Normalized()
	if dashes == nil {
		return lines
	}
	total := dashes.PatternLength()
	var out []Polyline
	for _, pl := range lines {
		out = append(out, dashPolyline(pl, dashes, total, offset)...)
	}
	return out
}

func dashPolyline(pl Polyline, dashes DashArray, total, offset float64) []Polyline {
	if len(pl) < 2 {
		return nil
	}
	// locate the starting dash
	offset = math.Mod(offset, total)
	if offset < 0 {
		offset += total
	}
	index := 0
	for offset >= dashes[index] {
		offset -= dashes[index]
		index = (index + 1) % len(dashes)
	}
	remaining := dashes[index] - offset // left in the current dash or gap
	on := index%2 == 0

	var (
		out     []Polyline
		current Polyline
	)
	if on {
		current = Polyline{pl[0]}
	}
	for i := 1; i < len(pl); i++ {
		a, b := pl[i-1], pl[i]
		segLength := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.
		for segLength-pos > remaining {
			pos += remaining
			pt := a.add(b.sub(a).scale(pos / segLength))
			if on {
				current = append(current, pt)
				out = append(out, current)
				current = nil
			} else {
				current = Polyline{pt}
			}
			on = !on
			index = (index + 1) % len(dashes)
			remaining = dashes[index]
		}
		remaining -= segLength - pos
		if on {
			current = append(current, b)
		}
	}
	if on && len(current) >= 2 {
		out = append(out, current)
	}
	return out
}

// DocumentDashes returns the normalized dash pattern, with lengths
// converted from the source element units to document units,
// using the mean scale factor of the inverse transform.
func (dp DashedPath) DocumentDashes() DashArray {
	dashes := dp.Dashes.Normalized()
	det := math.Abs(dp.InverseTransform.Determinant())
	if dashes == nil || det == 0 || det == 1 {
		return dashes
	}
	scale := 1 / math.Sqrt(det)
	for i := range dashes {
		dashes[i] *= scale
	}
	return dashes
}
