package svgcontext

import (
	"log/slog"
	"math"

	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

const (
	userSpaceOnUse    = "userSpaceOnUse"
	objectBoundingBox = "objectBoundingBox"
)

// patternSeed is the parent of a <pattern> element processed
// as the fill of a shape. It carries the outline of the shape.
type patternSeed struct {
	shape    *ShapeContext
	boundary svgpath.Path // in document space
	chain    []string
}

func (ps *patternSeed) Transform() svgpath.Matrix2D { return ps.shape.Transform() }

func (ps *patternSeed) Viewport() svgpath.Bounds { return ps.shape.Viewport() }

func (ps *patternSeed) Exporter() Exporter { return ps.shape.Exporter() }

func (ps *patternSeed) Document() Document { return ps.shape.Document() }

func (ps *patternSeed) Loader() ReferenceLoader { return ps.shape.Loader() }

func (ps *patternSeed) Logger() *slog.Logger { return ps.shape.Logger() }

func (ps *patternSeed) Config() Config { return ps.shape.Config() }

// the content of a pattern does not inherit from the shape
func (ps *patternSeed) paint() paintState { return defaultPaint() }

func (ps *patternSeed) patterns() []string { return ps.chain }

func (ps *patternSeed) EnterElement(kind svgtraverse.ElementKind) (svgtraverse.Handler, error) {
	return NewContext(kind, ps)
}

func (ps *patternSeed) SetAttribute(svgtraverse.Attribute) {}

func (ps *patternSeed) ExitElement() error { return nil }

// PatternContext handles a <pattern> element used as fill.
// Its children are plotted in the pattern content space, into
// the pattern itself. When exited, the collected records are
// repeated over the tiles covering the shape, clipped to
// the shape outline and sent to the shape exporter.
type PatternContext struct {
	seed  *patternSeed
	style paintState

	x, y, width, height svgdoc.Length
	viewBox             *svgtraverse.ViewBox
	aspect              svgtraverse.AspectRatio
	units               string
	contentUnits        string
	patternTransform    svgpath.Matrix2D

	records []svgpath.DashedPath
}

func newPatternContext(seed *patternSeed) *PatternContext {
	return &PatternContext{
		seed:             seed,
		style:            seed.paint(),
		aspect:           svgtraverse.DefaultAspectRatio,
		units:            objectBoundingBox,
		contentUnits:     userSpaceOnUse,
		patternTransform: svgpath.Identity,
	}
}

// Transform returns the identity : children are collected
// in the content space of the pattern.
func (pc *PatternContext) Transform() svgpath.Matrix2D { return svgpath.Identity }

func (pc *PatternContext) Viewport() svgpath.Bounds {
	if pc.viewBox != nil {
		return svgpath.Bounds(*pc.viewBox)
	}
	return pc.seed.Viewport()
}

// Exporter returns the pattern itself.
func (pc *PatternContext) Exporter() Exporter { return pc }

func (pc *PatternContext) Document() Document { return pc.seed.Document() }

func (pc *PatternContext) Loader() ReferenceLoader { return pc.seed.Loader() }

func (pc *PatternContext) Logger() *slog.Logger { return pc.seed.Logger() }

func (pc *PatternContext) Config() Config { return pc.seed.Config() }

func (pc *PatternContext) paint() paintState { return pc.style }

func (pc *PatternContext) patterns() []string { return pc.seed.chain }

// Plot collects the records of the pattern content.
func (pc *PatternContext) Plot(rec svgpath.DashedPath) { pc.records = append(pc.records, rec) }

func (pc *PatternContext) EnterElement(kind svgtraverse.ElementKind) (svgtraverse.Handler, error) {
	return NewContext(kind, pc)
}

func (pc *PatternContext) SetAttribute(attr svgtraverse.Attribute) {
	if pc.style.set(attr, pc.Logger()) {
		return
	}
	switch v := attr.Value.(type) {
	case svgtraverse.Transform:
		pc.patternTransform = svgpath.Matrix2D(v)
	case svgtraverse.ViewBox:
		vb := v
		pc.viewBox = &vb
	case svgtraverse.AspectRatio:
		pc.aspect = v
	case svgtraverse.Keyword:
		if attr.Kind == svgtraverse.AttrPatternUnits {
			pc.units = string(v)
		} else if attr.Kind == svgtraverse.AttrPatternContentUnits {
			pc.contentUnits = string(v)
		}
	case svgtraverse.Length:
		switch attr.Kind {
		case svgtraverse.AttrX:
			pc.x = svgdoc.Length(v)
		case svgtraverse.AttrY:
			pc.y = svgdoc.Length(v)
		case svgtraverse.AttrWidth:
			pc.width = svgdoc.Length(v)
		case svgtraverse.AttrHeight:
			pc.height = svgdoc.Length(v)
		}
	}
}

// fraction resolves a length given in objectBoundingBox units
func fraction(l svgdoc.Length) float64 {
	if l.Unit == svgdoc.Percent {
		return l.Value / 100
	}
	return l.Value
}

// tile returns the first tile, in pattern space, and the
// transform mapping the content space into this tile.
// `bbox` is the bounding box of the shape in its user space.
func (pc *PatternContext) tile(bbox svgpath.Bounds) (tile svgpath.Bounds, content svgpath.Matrix2D) {
	if pc.units == objectBoundingBox {
		tile = svgpath.Bounds{
			X: bbox.X + fraction(pc.x)*bbox.W,
			Y: bbox.Y + fraction(pc.y)*bbox.H,
			W: fraction(pc.width) * bbox.W,
			H: fraction(pc.height) * bbox.H,
		}
	} else {
		vp := pc.seed.Viewport()
		tile = svgpath.Bounds{
			X: pc.x.Resolve(vp.W),
			Y: pc.y.Resolve(vp.H),
			W: pc.width.Resolve(vp.W),
			H: pc.height.Resolve(vp.H),
		}
	}

	switch {
	case pc.viewBox != nil:
		content = svgtraverse.ViewBoxTransform(*pc.viewBox, tile.W, tile.H, pc.aspect)
	case pc.contentUnits == objectBoundingBox:
		content = svgpath.Identity.Scale(bbox.W, bbox.H)
	default:
		content = svgpath.Identity
	}
	return tile, content
}

// rectangle returns the corners of b, mapped by m
func rectangle(b svgpath.Bounds, m svgpath.Matrix2D) svgpath.Polyline {
	return svgpath.Polyline{
		m.TransformPoint(svgpath.Point{X: b.X, Y: b.Y}),
		m.TransformPoint(svgpath.Point{X: b.X + b.W, Y: b.Y}),
		m.TransformPoint(svgpath.Point{X: b.X + b.W, Y: b.Y + b.H}),
		m.TransformPoint(svgpath.Point{X: b.X, Y: b.Y + b.H}),
	}
}

// ExitElement tiles the collected content over the shape.
func (pc *PatternContext) ExitElement() error {
	records := pc.records
	pc.records = nil
	if len(records) == 0 {
		return nil
	}

	cfg, logger := pc.Config(), pc.Logger()
	id := pc.seed.chain[len(pc.seed.chain)-1]

	shapeT := pc.seed.Transform()
	local := pc.seed.boundary.Copy()
	local.Transform(shapeT.Invert())
	tile, content := pc.tile(local.Bounds())
	if !(tile.W > 0 && tile.H > 0) {
		logger.Debug("empty pattern tile", "id", id)
		return nil
	}

	boundary := pc.seed.boundary.Flatten(cfg.Flatness)
	if len(boundary) == 0 {
		return nil
	}

	// range of tiles covering the shape, in pattern space
	tileSpace := shapeT.Mult(pc.patternTransform)
	inPattern := pc.seed.boundary.Copy()
	inPattern.Transform(tileSpace.Invert())
	extent := inPattern.Bounds()
	if extent.IsEmpty() {
		return nil
	}
	i0, i1 := math.Floor((extent.X-tile.X)/tile.W), math.Floor((extent.X+extent.W-tile.X)/tile.W)
	j0, j1 := math.Floor((extent.Y-tile.Y)/tile.H), math.Floor((extent.Y+extent.H-tile.Y)/tile.H)
	if count := (i1 - i0 + 1) * (j1 - j0 + 1); count > float64(cfg.MaxPatternTiles) {
		logger.Warn("too many pattern tiles, fill ignored", "id", id, "tiles", count, "max", cfg.MaxPatternTiles)
		return nil
	}

	exporter := pc.seed.Exporter()
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			cell := tile
			cell.X += i * tile.W
			cell.Y += j * tile.H
			clip := []svgpath.Polyline{rectangle(cell, tileSpace)}
			full := tileSpace.Translate(cell.X, cell.Y).Mult(content)
			fromDocument := full.Invert()
			for _, rec := range records {
				pc.plotTile(exporter, rec, full, fromDocument, clip, boundary)
			}
		}
	}
	return nil
}

// plotTile maps one record of the pattern content to the document,
// and plots the parts inside the tile and the boundary.
func (pc *PatternContext) plotTile(exporter Exporter, rec svgpath.DashedPath, full, fullInverse svgpath.Matrix2D,
	clip, boundary []svgpath.Polyline,
) {
	path := rec.Path.Copy()
	path.Transform(full)
	inverse := rec.InverseTransform.Mult(fullInverse)

	lines := path.Flatten(pc.Config().Flatness)
	dashes := svgpath.DashedPath{Dashes: rec.Dashes, InverseTransform: inverse}.DocumentDashes()
	lines = dashes.Apply(lines, 0)

	var kept []svgpath.Polyline
	for _, line := range lines {
		for _, piece := range svgpath.ClipPolyline(line, clip) {
			kept = append(kept, svgpath.ClipPolyline(piece, boundary)...)
		}
	}
	if len(kept) == 0 {
		return
	}
	exporter.Plot(svgpath.DashedPath{Path: svgpath.ToPath(kept), InverseTransform: inverse})
}
