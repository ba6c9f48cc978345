package svgcontext

import (
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

// StructuralContext handles <svg> and <g> elements : they
// have no geometry, but their transform and paint attributes
// apply to their children. An <svg> element also establishes
// a new viewport.
type StructuralContext struct {
	base
	kind  svgtraverse.ElementKind
	style paintState

	// viewport attributes, only used by <svg>
	x, y, width, height svgdoc.Length
	viewBox             *svgtraverse.ViewBox
	aspect              svgtraverse.AspectRatio
}

func newStructuralContext(kind svgtraverse.ElementKind, parent Context) *StructuralContext {
	return &StructuralContext{
		base:   newBase(parent),
		kind:   kind,
		style:  parent.paint().inherit(),
		width:  svgdoc.Length{Value: 100, Unit: svgdoc.Percent},
		height: svgdoc.Length{Value: 100, Unit: svgdoc.Percent},
		aspect: svgtraverse.DefaultAspectRatio,
	}
}

func (sc *StructuralContext) paint() paintState { return sc.style }

func (sc *StructuralContext) isOutermost() bool {
	_, isRoot := sc.parent.(*RootContext)
	return isRoot
}

// size returns the size of the viewport established by an <svg> element,
// in the user space of its parent.
func (sc *StructuralContext) size() (w, h float64) {
	pv := sc.parent.Viewport()
	return sc.width.Resolve(pv.W), sc.height.Resolve(pv.H)
}

// Transform returns the parent transform, composed with the `transform`
// attribute, and for <svg> with the viewport placement and the viewBox mapping.
func (sc *StructuralContext) Transform() svgpath.Matrix2D {
	m := sc.base.Transform()
	if sc.kind != svgtraverse.ElemSVG {
		return m
	}
	if !sc.isOutermost() { // x and y are ignored on the outermost element
		pv := sc.parent.Viewport()
		m = m.Translate(sc.x.Resolve(pv.W), sc.y.Resolve(pv.H))
	}
	if sc.viewBox != nil {
		w, h := sc.size()
		m = m.Mult(svgtraverse.ViewBoxTransform(*sc.viewBox, w, h, sc.aspect))
	}
	return m
}

// Viewport returns the reference used by the children
// to resolve percentages.
func (sc *StructuralContext) Viewport() svgpath.Bounds {
	if sc.kind != svgtraverse.ElemSVG {
		return sc.base.Viewport()
	}
	if sc.viewBox != nil {
		return svgpath.Bounds(*sc.viewBox)
	}
	w, h := sc.size()
	return svgpath.Bounds{W: w, H: h}
}

func (sc *StructuralContext) EnterElement(kind svgtraverse.ElementKind) (svgtraverse.Handler, error) {
	return NewContext(kind, sc)
}

func (sc *StructuralContext) SetAttribute(attr svgtraverse.Attribute) {
	if sc.style.set(attr, sc.Logger()) {
		return
	}
	switch v := attr.Value.(type) {
	case svgtraverse.Transform:
		sc.local = svgpath.Matrix2D(v)
	case svgtraverse.ViewBox:
		vb := v
		sc.viewBox = &vb
	case svgtraverse.AspectRatio:
		sc.aspect = v
	case svgtraverse.Length:
		switch attr.Kind {
		case svgtraverse.AttrX:
			sc.x = svgdoc.Length(v)
		case svgtraverse.AttrY:
			sc.y = svgdoc.Length(v)
		case svgtraverse.AttrWidth:
			sc.width = svgdoc.Length(v)
		case svgtraverse.AttrHeight:
			sc.height = svgdoc.Length(v)
		}
	}
}

// ExitElement records the document size when leaving
// the outermost <svg> element.
func (sc *StructuralContext) ExitElement() error {
	if root, ok := sc.parent.(*RootContext); ok && sc.kind == svgtraverse.ElemSVG {
		w, h := sc.size()
		root.bounds = svgpath.Bounds{W: w, H: h}
	}
	return nil
}
