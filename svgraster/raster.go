// Implements a raster backend to preview the plotted
// outlines, by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/benoitkugler/svgcut/svgconvert"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Exporter = (*Renderer)(nil) // assert interface conformance

// Renderer draws each record as a hairline.
type Renderer struct {
	dasher *rasterx.Dasher
	view   svgpath.Matrix2D // document to image
	scale  float64

	// LineWidth is the width of the outlines, in pixels
	LineWidth float64
	Color     color.Color
}

// NewRenderer returns a renderer drawing into `img`,
// where the document area `bounds` is scaled to fit the image.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(img draw.Image, bounds svgpath.Bounds, scanner rasterx.Scanner) *Renderer {
	rect := img.Bounds()
	w, h := rect.Dx(), rect.Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, img, rect)
	}
	scale := 1.
	if bounds.W > 0 && bounds.H > 0 {
		scale = math.Min(float64(w)/bounds.W, float64(h)/bounds.H)
	}
	return &Renderer{
		dasher:    rasterx.NewDasher(w, h, scanner),
		view:      svgpath.Identity.Scale(scale, scale).Translate(-bounds.X, -bounds.Y),
		scale:     scale,
		LineWidth: 1,
		Color:     color.Black,
	}
}

func fToFixed(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// fixedAdder maps points to the image and
// sends them to rasterx
type fixedAdder struct {
	adder rasterx.Adder
	m     svgpath.Matrix2D
}

func (f fixedAdder) Start(a svgpath.Point) { f.adder.Start(fToFixed(f.m.TransformPoint(a))) }

func (f fixedAdder) Line(b svgpath.Point) { f.adder.Line(fToFixed(f.m.TransformPoint(b))) }

func (f fixedAdder) CubeBezier(b, c, d svgpath.Point) {
	f.adder.CubeBezier(fToFixed(f.m.TransformPoint(b)), fToFixed(f.m.TransformPoint(c)), fToFixed(f.m.TransformPoint(d)))
}

func (f fixedAdder) Stop(closeLoop bool) { f.adder.Stop(closeLoop) }

// Plot draws the outline of the record, with its dashes.
func (rd *Renderer) Plot(rec svgpath.DashedPath) {
	if len(rec.Path) == 0 {
		return
	}
	dashes := rec.DocumentDashes()
	for i := range dashes {
		dashes[i] *= rd.scale
	}
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(rd.LineWidth*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Bevel, dashes, 0)
	rec.Path.AddTo(fixedAdder{adder: rd.dasher, m: rd.view})
	rd.dasher.SetColor(rd.Color)
	rd.dasher.Draw()
}

// RenderRecords draws the records on a white image `width` pixels wide,
// whose height follows the aspect ratio of `bounds`.
func RenderRecords(records []svgpath.DashedPath, bounds svgpath.Bounds, width int) *image.RGBA {
	height := width
	if bounds.W > 0 {
		height = int(math.Ceil(float64(width) * bounds.H / bounds.W))
	}
	if height <= 0 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	renderer := NewRenderer(img, bounds, nil)
	for _, rec := range records {
		renderer.Plot(rec)
	}
	return img
}

// RasterSVGToImage converts the given document and renders
// the plotted outlines on a white image `width` pixels wide.
func RasterSVGToImage(svg io.Reader, width int, opts ...svgconvert.Option) (*image.RGBA, error) {
	var rec svgdraw.Recorder
	bounds, err := svgconvert.Convert(svg, &rec, opts...)
	if err != nil {
		return nil, err
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		bounds = rec.Bounds()
	}
	return RenderRecords(rec.Records, bounds, width), nil
}
