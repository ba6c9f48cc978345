// Package svgtraverse walks a parsed SVG document and delivers
// its content, as events, to handlers provided by the caller.
//
// Shapes are converted to a minimal set of path commands:
// absolute moves, lines, cubic beziers and closes.
// Only the processed elements and attributes are delivered:
// other elements are skipped with all their children.
package svgtraverse

import "github.com/benoitkugler/svgcut/svgpath"

// Handler receives the events of one element.
type Handler interface {
	// EnterElement is called on the parent handler to create
	// the handler of a child element.
	EnterElement(kind ElementKind) (Handler, error)

	// SetAttribute is called for each processed attribute
	// of the element, in document order. Properties given in
	// a `style` attribute come last.
	SetAttribute(attr Attribute)

	// ExitElement is called once all the content of the
	// element (attributes, geometry, children) has been delivered.
	ExitElement() error
}

// PathHandler is implemented by the handlers of shape elements.
// The geometry events are sent after the attributes, in
// absolute coordinates.
type PathHandler interface {
	Handler

	PathMoveTo(x, y float64)
	PathLineTo(x, y float64)
	PathCubicBezierTo(x1, y1, x2, y2, x, y float64)
	PathClosePath()
	// PathExit is called after the last geometry event
	PathExit()
}

// Viewporter is an optional interface providing the viewport
// used to resolve percentage lengths.
type Viewporter interface {
	Viewport() svgpath.Bounds
}

// pathAdder forwards path commands as geometry events
type pathAdder struct {
	h PathHandler
}

func (a pathAdder) Start(p svgpath.Point) { a.h.PathMoveTo(p.X, p.Y) }

func (a pathAdder) Line(p svgpath.Point) { a.h.PathLineTo(p.X, p.Y) }

func (a pathAdder) CubeBezier(b, c, d svgpath.Point) {
	a.h.PathCubicBezierTo(b.X, b.Y, c.X, c.Y, d.X, d.Y)
}

func (a pathAdder) Stop(closeLoop bool) {
	if closeLoop {
		a.h.PathClosePath()
	}
}
