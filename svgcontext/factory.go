package svgcontext

import (
	"fmt"

	"github.com/benoitkugler/svgcut/svgtraverse"
)

var (
	_ Context = (*RootContext)(nil)
	_ Context = (*StructuralContext)(nil)
	_ Context = (*ShapeContext)(nil)
	_ Context = (*patternSeed)(nil)
	_ Context = (*PatternContext)(nil)
)

// NewContext returns the context handling the element `kind`,
// child of `parent`.
// A <pattern> is only accepted when processing a fill, that is
// when `parent` comes from a shape referencing it.
// An error wrapping svgtraverse.ErrUnexpectedElement is returned
// for the other elements.
func NewContext(kind svgtraverse.ElementKind, parent Context) (svgtraverse.Handler, error) {
	switch kind {
	case svgtraverse.ElemSVG, svgtraverse.ElemG:
		return newStructuralContext(kind, parent), nil
	case svgtraverse.ElemPath, svgtraverse.ElemRect, svgtraverse.ElemCircle, svgtraverse.ElemEllipse,
		svgtraverse.ElemLine, svgtraverse.ElemPolyline, svgtraverse.ElemPolygon:
		return newShapeContext(kind, parent), nil
	case svgtraverse.ElemPattern:
		if seed, ok := parent.(*patternSeed); ok {
			return newPatternContext(seed), nil
		}
		return nil, fmt.Errorf("%w: <pattern> outside of a fill", svgtraverse.ErrUnexpectedElement)
	default:
		return nil, fmt.Errorf("%w: <%s>", svgtraverse.ErrUnexpectedElement, kind)
	}
}
