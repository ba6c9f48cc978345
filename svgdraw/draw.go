// Package svgdraw provides simple exporters for the records
// produced by the processing of an SVG document : an in-memory
// recorder, a fan-out to several exporters, and an SVG preview
// of the plotted outlines.
package svgdraw

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgcut/svgpath"
)

// Exporter is the interface implemented by the backends
// receiving the finalized records.
type Exporter interface {
	Plot(svgpath.DashedPath)
}

var (
	_ Exporter = (*Recorder)(nil)
	_ Exporter = Multi(nil)
)

// Recorder stores the records in memory.
type Recorder struct {
	Records []svgpath.DashedPath
}

// Plot implements Exporter
func (r *Recorder) Plot(rec svgpath.DashedPath) { r.Records = append(r.Records, rec) }

// Bounds returns the union of the extents of the records.
func (r *Recorder) Bounds() svgpath.Bounds { return Bounds(r.Records) }

// Replay sends the records, in order, to `exp`.
func (r *Recorder) Replay(exp Exporter) {
	for _, rec := range r.Records {
		exp.Plot(rec)
	}
}

// Multi sends each record to all its exporters.
// Each exporter receives its own copy of the record.
type Multi []Exporter

// Plot implements Exporter
func (m Multi) Plot(rec svgpath.DashedPath) {
	for i, exp := range m {
		if i != len(m)-1 {
			exp.Plot(copyRecord(rec))
		} else {
			exp.Plot(rec) // the last one takes ownership
		}
	}
}

func copyRecord(rec svgpath.DashedPath) svgpath.DashedPath {
	rec.Path = rec.Path.Copy()
	if rec.Dashes != nil {
		rec.Dashes = append(svgpath.DashArray{}, rec.Dashes...)
	}
	return rec
}

// Bounds returns the union of the extents of the records,
// which is empty (negative size) when there is no geometry.
func Bounds(records []svgpath.DashedPath) svgpath.Bounds {
	out := svgpath.Bounds{W: -1, H: -1}
	for _, rec := range records {
		out = out.Union(rec.Path.Bounds())
	}
	return out
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func dashAttribute(dashes svgpath.DashArray) string {
	chunks := make([]string, len(dashes))
	for i, d := range dashes {
		chunks[i] = strconv.FormatFloat(d, 'f', 3, 64)
	}
	return strings.Join(chunks, " ")
}

// WriteSVG writes a preview of the records, as hairline
// outlines, sized to `bounds`.
func WriteSVG(w io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		formatFloat(bounds.W), formatFloat(bounds.H),
		formatFloat(bounds.X), formatFloat(bounds.Y), formatFloat(bounds.W), formatFloat(bounds.H))
	for _, rec := range records {
		if len(rec.Path) == 0 {
			continue
		}
		fmt.Fprintf(out, `<path d="%s" fill="none" stroke="black" stroke-width="0.5" vector-effect="non-scaling-stroke"`, rec.Path.ToSVGPath())
		if dashes := rec.DocumentDashes(); len(dashes) != 0 {
			fmt.Fprintf(out, ` stroke-dasharray="%s"`, dashAttribute(dashes))
		}
		fmt.Fprintln(out, "/>")
	}
	fmt.Fprintln(out, "</svg>")
	return out.Flush()
}
