package svgcontext

import (
	"log/slog"

	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

// paintState stores the resolved values of `fill`, `stroke`
// and `stroke-dasharray`.
type paintState struct {
	stroke bool
	dashes svgpath.DashArray
	fill   string // id of the pattern, empty for no fill
}

// defaultPaint : outlines are plotted, solid, with no fill
func defaultPaint() paintState { return paintState{stroke: true} }

// inherit returns a copy not sharing memory with p
func (p paintState) inherit() paintState {
	if p.dashes != nil {
		p.dashes = append(svgpath.DashArray{}, p.dashes...)
	}
	return p
}

// set updates the state with a paint attribute, and reports
// whether attr was a paint attribute.
// Values which are not supported are logged and ignored.
func (p *paintState) set(attr svgtraverse.Attribute, logger *slog.Logger) bool {
	switch attr.Kind {
	case svgtraverse.AttrStrokeDasharray:
		switch v := attr.Value.(type) {
		case svgtraverse.None:
			p.dashes = nil
		case svgtraverse.Numbers:
			p.dashes = append(svgpath.DashArray{}, v...)
		}
	case svgtraverse.AttrStroke:
		if _, isNone := attr.Value.(svgtraverse.None); isNone {
			p.stroke = false
		} else {
			logUnsupportedPaint(logger, attr)
		}
	case svgtraverse.AttrFill:
		switch v := attr.Value.(type) {
		case svgtraverse.None:
			p.fill = ""
		case svgtraverse.IRI:
			p.fill = string(v)
		default:
			logUnsupportedPaint(logger, attr)
		}
	default:
		return false
	}
	return true
}

// plain colors are common and harmless : they are only
// reported at the debug level.
func logUnsupportedPaint(logger *slog.Logger, attr svgtraverse.Attribute) {
	switch v := attr.Value.(type) {
	case svgtraverse.Color:
		logger.Debug("color paint ignored", "attribute", attr.Kind.String(), "value", v)
	case svgtraverse.CurrentColor:
		logger.Debug("color paint ignored", "attribute", attr.Kind.String(), "value", "currentColor")
	case svgtraverse.UnsupportedPaint:
		logger.Warn("unsupported paint value", "attribute", attr.Kind.String(), "value", string(v))
	default:
		logger.Warn("unsupported paint value", "attribute", attr.Kind.String())
	}
}
