// Implements a PDF backend to output the plotted
// outlines, by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/benoitkugler/svgcut/svgconvert"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/jung-kurt/gofpdf"
)

var _ svgdraw.Exporter = (*Renderer)(nil) // assert interface conformance

// pxToMM converts document units (CSS pixels) to millimeters
const pxToMM = 25.4 / 96

// DefaultLineWidth is the width of the outlines, in millimeters.
const DefaultLineWidth = 0.1

// Renderer writes each record as a stroked path
// on the current page of a PDF document.
type Renderer struct {
	pdf  *gofpdf.Fpdf
	view svgpath.Matrix2D // document to page, in mm
}

// implements svgpath.Adder by issuing
// the path commands
type pather struct {
	pdf *gofpdf.Fpdf
	m   svgpath.Matrix2D
}

func (p pather) Start(a svgpath.Point) {
	a = p.m.TransformPoint(a)
	p.pdf.MoveTo(a.X, a.Y)
}

func (p pather) Line(b svgpath.Point) {
	b = p.m.TransformPoint(b)
	p.pdf.LineTo(b.X, b.Y)
}

func (p pather) CubeBezier(b, c, d svgpath.Point) {
	b, c, d = p.m.TransformPoint(b), p.m.TransformPoint(c), p.m.TransformPoint(d)
	p.pdf.CurveBezierCubicTo(b.X, b.Y, c.X, c.Y, d.X, d.Y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// NewRenderer return a renderer which will write to the current
// page of the given `pdf`, whose unit must be the millimeter.
// The document area `bounds` is placed at the top left corner of the page.
func NewRenderer(pdf *gofpdf.Fpdf, bounds svgpath.Bounds) *Renderer {
	return &Renderer{
		pdf:  pdf,
		view: svgpath.Identity.Scale(pxToMM, pxToMM).Translate(-bounds.X, -bounds.Y),
	}
}

// NewDocument returns a one page PDF document, sized to
// contain `bounds`, with the line settings used for plotting.
func NewDocument(bounds svgpath.Bounds) *gofpdf.Fpdf {
	size := gofpdf.SizeType{Wd: bounds.W * pxToMM, Ht: bounds.H * pxToMM}
	if size.Wd <= 0 {
		size.Wd = 1
	}
	if size.Ht <= 0 {
		size.Ht = 1
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{OrientationStr: "P", UnitStr: "mm", Size: size})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineWidth(DefaultLineWidth)
	pdf.SetLineCapStyle("butt")
	pdf.SetLineJoinStyle("bevel")
	pdf.SetDrawColor(0, 0, 0)
	return pdf
}

// Plot strokes the outline of the record, with its dashes.
func (rd *Renderer) Plot(rec svgpath.DashedPath) {
	if len(rec.Path) == 0 {
		return
	}
	dashes := rec.DocumentDashes()
	for i := range dashes {
		dashes[i] *= pxToMM
	}
	rd.pdf.SetDashPattern(dashes, 0)
	rec.Path.AddTo(pather{pdf: rd.pdf, m: rd.view})
	rd.pdf.DrawPath("D")
}

// RenderRecords writes a one page PDF document to `w`,
// containing the given records.
func RenderRecords(w io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds) error {
	pdf := NewDocument(bounds)
	renderer := NewRenderer(pdf, bounds)
	for _, rec := range records {
		renderer.Plot(rec)
	}
	return pdf.Output(w)
}

// RenderSVGToPDF converts the given document and writes
// the plotted outlines as PDF to `w`.
func RenderSVGToPDF(svg io.Reader, w io.Writer, opts ...svgconvert.Option) error {
	var rec svgdraw.Recorder
	bounds, err := svgconvert.Convert(svg, &rec, opts...)
	if err != nil {
		return err
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		bounds = rec.Bounds()
	}
	return RenderRecords(w, rec.Records, bounds)
}
