// Package svgplotter writes the plotted outlines as a GPGL command
// stream, the language of Silhouette and Graphtec cutting plotters.
//
// Each record is flattened and dashed, then sent as a sequence of
// pen up moves (M) and pen down draws (D). Coordinates are given
// row first, in plotter units (20 per millimeter), and every command
// is terminated by the ETX (0x03) byte.
package svgplotter

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/benoitkugler/svgcut/svgcontext"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
)

var _ svgdraw.Exporter = (*Writer)(nil) // assert interface conformance

const (
	// UnitsPerMM is the resolution of the plotter.
	UnitsPerMM = 20

	pxToMM = 25.4 / 96
	etx    = '\x03'
)

// Writer is an exporter sending GPGL commands to an underlying writer.
// Write errors are sticky : once one occurred, the following records
// are ignored and the error is returned by Flush.
type Writer struct {
	w        *bufio.Writer
	view     svgpath.Matrix2D // document to plotter units
	flatness float64

	pen     [2]int
	penDown bool // true if pen is the end of the last draw
	err     error
}

// NewWriter returns a writer placing the document area `bounds`
// at the origin of the plotter. Curves are approximated by segments
// within `flatness` (in document units); zero means svgcontext.DefaultFlatness.
func NewWriter(w io.Writer, bounds svgpath.Bounds, flatness float64) *Writer {
	if flatness <= 0 {
		flatness = svgcontext.DefaultFlatness
	}
	scale := UnitsPerMM * pxToMM
	return &Writer{
		w:        bufio.NewWriter(w),
		view:     svgpath.Identity.Scale(scale, scale).Translate(-bounds.X, -bounds.Y),
		flatness: flatness,
	}
}

func (pw *Writer) toPlotter(p svgpath.Point) [2]int {
	p = pw.view.TransformPoint(p)
	return [2]int{int(math.Round(p.X)), int(math.Round(p.Y))}
}

func (pw *Writer) command(op byte, pt [2]int) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, "%c%d,%d%c", op, pt[1], pt[0], etx)
	pw.pen = pt
}

func (pw *Writer) polyline(line svgpath.Polyline) {
	start := pw.toPlotter(line[0])
	if !pw.penDown || start != pw.pen {
		pw.command('M', start)
	}
	for _, p := range line[1:] {
		pt := pw.toPlotter(p)
		if pt == pw.pen {
			continue
		}
		pw.command('D', pt)
	}
	pw.penDown = true
}

// Plot sends the outline of the record, cut along its dashes.
func (pw *Writer) Plot(rec svgpath.DashedPath) {
	if pw.err != nil {
		return
	}
	lines := rec.Path.Flatten(pw.flatness)
	lines = rec.DocumentDashes().Apply(lines, 0)
	for _, line := range lines {
		if len(line) < 2 || line.Length() == 0 {
			continue
		}
		pw.polyline(line)
	}
}

// Flush writes the buffered commands, and returns the
// first error met while writing.
func (pw *Writer) Flush() error {
	if pw.err != nil {
		return pw.err
	}
	pw.err = pw.w.Flush()
	return pw.err
}

// WriteRecords writes the GPGL commands for the given records to `w`.
func WriteRecords(w io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds, flatness float64) error {
	pw := NewWriter(w, bounds, flatness)
	for _, rec := range records {
		pw.Plot(rec)
	}
	return pw.Flush()
}
