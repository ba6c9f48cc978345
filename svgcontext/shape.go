package svgcontext

import (
	"fmt"
	"slices"

	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

// ShapeContext accumulates the geometry of a shape element.
// When the element is exited, the path is transformed to document
// space, its fill pattern (if any) is processed, and the outline
// is sent to the exporter (unless the stroke is disabled).
type ShapeContext struct {
	base
	kind  svgtraverse.ElementKind
	style paintState

	path      svgpath.Path
	finalized bool
}

var _ svgtraverse.PathHandler = (*ShapeContext)(nil)

func newShapeContext(kind svgtraverse.ElementKind, parent Context) *ShapeContext {
	return &ShapeContext{
		base:  newBase(parent),
		kind:  kind,
		style: parent.paint().inherit(),
	}
}

func (sh *ShapeContext) paint() paintState { return sh.style }

// EnterElement always fails : shapes have no children.
func (sh *ShapeContext) EnterElement(kind svgtraverse.ElementKind) (svgtraverse.Handler, error) {
	return nil, fmt.Errorf("%w: %s inside %s", svgtraverse.ErrUnexpectedElement, kind, sh.kind)
}

func (sh *ShapeContext) SetAttribute(attr svgtraverse.Attribute) {
	if sh.style.set(attr, sh.Logger()) {
		return
	}
	if v, ok := attr.Value.(svgtraverse.Transform); ok {
		sh.local = svgpath.Matrix2D(v)
	}
}

func (sh *ShapeContext) PathMoveTo(x, y float64) { sh.path.Start(svgpath.Point{X: x, Y: y}) }

func (sh *ShapeContext) PathLineTo(x, y float64) { sh.path.Line(svgpath.Point{X: x, Y: y}) }

func (sh *ShapeContext) PathCubicBezierTo(x1, y1, x2, y2, x, y float64) {
	sh.path.CubeBezier(svgpath.Point{X: x1, Y: y1}, svgpath.Point{X: x2, Y: y2}, svgpath.Point{X: x, Y: y})
}

func (sh *ShapeContext) PathClosePath() { sh.path.Stop(true) }

func (sh *ShapeContext) PathExit() {}

// ExitElement finalizes the shape. It is a no-op
// when called more than once.
func (sh *ShapeContext) ExitElement() error {
	if sh.finalized {
		return nil
	}
	sh.finalized = true

	tr := sh.Transform()
	sh.path.Transform(tr)

	if err := sh.fillWithPattern(); err != nil {
		return err
	}

	// shapes without geometry are plotted too
	if sh.style.stroke {
		sh.Exporter().Plot(svgpath.DashedPath{
			Path:             sh.path,
			Dashes:           sh.style.dashes,
			InverseTransform: tr.Invert(),
		})
	}
	// the record now belongs to the exporter
	sh.path, sh.style.dashes = nil, nil
	return nil
}

var patternElements = svgtraverse.NewElementSet(svgtraverse.ElemPattern)

// fillWithPattern processes the pattern referenced by `fill`,
// using the transformed path as boundary.
func (sh *ShapeContext) fillWithPattern() error {
	id := sh.style.fill
	if id == "" {
		return nil
	}
	node := sh.Document().FindByID(id)
	if node == nil { // dangling references are common
		return nil
	}
	logger := sh.Logger()
	if kind := svgtraverse.ElementKindFromName(node.Name.Local); !node.IsSVG() || kind != svgtraverse.ElemPattern {
		logger.Warn("unsupported paint server", "id", id, "element", node.Name.Local)
		return nil
	}
	chain := sh.patterns()
	if slices.Contains(chain, id) {
		logger.Warn("cyclic pattern reference ignored", "id", id)
		return nil
	}
	if len(chain) >= sh.Config().MaxPatternDepth {
		logger.Warn("pattern nesting too deep, fill ignored", "id", id, "depth", len(chain))
		return nil
	}

	seed := &patternSeed{
		shape:    sh,
		boundary: sh.path,
		chain:    append(slices.Clip(chain), id),
	}
	if err := sh.Loader().LoadReferenced(node, seed, patternElements); err != nil {
		return fmt.Errorf("pattern %q: %w", id, err)
	}
	return nil
}
