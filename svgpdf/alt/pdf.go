// Alternative implementation of PDF output, writing the
// content stream directly with github.com/benoitkugler/pdf.
package alt

import (
	"io"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/benoitkugler/svgcut/svgconvert"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
)

var _ svgdraw.Exporter = (*Renderer)(nil) // assert interface conformance

// pxToPt converts document units (CSS pixels) to PDF points
const pxToPt = 72. / 96

// LineWidth is the width of the outlines, in points.
const LineWidth = 0.3

// Renderer writes each record as a stroked path
// into a content stream.
type Renderer struct {
	pdf  *contentstream.Appearance
	view svgpath.Matrix2D // document to PDF user space
}

// implements svgpath.Adder by issuing
// the path operators
type pather struct {
	pdf *contentstream.Appearance
	m   svgpath.Matrix2D
}

func (p pather) Start(a svgpath.Point) {
	a = p.m.TransformPoint(a)
	p.pdf.Ops(contentstream.OpMoveTo{X: a.X, Y: a.Y})
}

func (p pather) Line(b svgpath.Point) {
	b = p.m.TransformPoint(b)
	p.pdf.Ops(contentstream.OpLineTo{X: b.X, Y: b.Y})
}

func (p pather) CubeBezier(b, c, d svgpath.Point) {
	b, c, d = p.m.TransformPoint(b), p.m.TransformPoint(c), p.m.TransformPoint(d)
	p.pdf.Ops(contentstream.OpCubicTo{X1: b.X, Y1: b.Y, X2: c.X, Y2: c.Y, X3: d.X, Y3: d.Y})
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.Ops(contentstream.OpClosePath{})
	}
}

// PageSize returns the size, in points, of a page
// containing the document area `bounds`.
func PageSize(bounds svgpath.Bounds) (width, height float64) {
	width, height = bounds.W*pxToPt, bounds.H*pxToPt
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return width, height
}

// NewRenderer return a renderer which will write to the given
// content stream, of height `pageHeight` (in points).
// The document area `bounds` is placed at the top left corner of the page.
func NewRenderer(cs *contentstream.Appearance, bounds svgpath.Bounds, pageHeight float64) *Renderer {
	cs.Ops(
		contentstream.OpSetLineWidth{W: LineWidth},
		contentstream.OpSetLineCap{Style: 0},  // butt
		contentstream.OpSetLineJoin{Style: 2}, // bevel
	)
	// the PDF y axis points up
	view := svgpath.Identity.Translate(0, pageHeight).Scale(pxToPt, -pxToPt).Translate(-bounds.X, -bounds.Y)
	return &Renderer{pdf: cs, view: view}
}

// Plot strokes the outline of the record, with its dashes.
func (rd *Renderer) Plot(rec svgpath.DashedPath) {
	if len(rec.Path) == 0 {
		return
	}
	dashes := rec.DocumentDashes()
	for i := range dashes {
		dashes[i] *= pxToPt
	}
	rd.pdf.Ops(contentstream.OpSetDash{Dash: model.DashPattern{Array: dashes}})
	rec.Path.AddTo(pather{pdf: rd.pdf, m: rd.view})
	rd.pdf.Ops(contentstream.OpStroke{})
}

// RenderRecordsToFile writes a one page PDF file,
// containing the given records.
func RenderRecordsToFile(records []svgpath.DashedPath, bounds svgpath.Bounds, pdfName string) error {
	width, height := PageSize(bounds)
	cs := contentstream.NewAppearance(width, height)
	renderer := NewRenderer(&cs, bounds, height)
	for _, rec := range records {
		renderer.Plot(rec)
	}

	var doc model.Document
	var page model.PageObject
	cs.ApplyToPageObject(&page, true)
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, &page)
	return doc.WriteFile(pdfName, nil)
}

// RenderSVGToPDF converts the given document and writes
// the plotted outlines into the PDF file `pdfName`.
func RenderSVGToPDF(svg io.Reader, pdfName string, opts ...svgconvert.Option) error {
	var rec svgdraw.Recorder
	bounds, err := svgconvert.Convert(svg, &rec, opts...)
	if err != nil {
		return err
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		bounds = rec.Bounds()
	}
	return RenderRecordsToFile(rec.Records, bounds, pdfName)
}
