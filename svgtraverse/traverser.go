package svgtraverse

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/benoitkugler/svgcut/logging"
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
)

// ErrUnexpectedElement is returned when an element is
// not of an expected kind.
var ErrUnexpectedElement = errors.New("unexpected element")

// Traverser walks documents. The zero value is not usable : see NewTraverser.
type Traverser struct {
	// Processed are the elements visited, others are skipped.
	Processed ElementSet
	// Attributes are the attributes delivered to handlers.
	Attributes AttributeSet
	// ErrorMode determines if the traversal ignores, errors out, or logs a warning
	// when it meets an SVG element it does not know.
	ErrorMode ErrorMode

	logger *slog.Logger
}

// NewTraverser returns a traverser processing the default elements and attributes.
// A nil logger means logging.Logger().
func NewTraverser(logger *slog.Logger, mode ErrorMode) *Traverser {
	return &Traverser{
		Processed:  ProcessedElements,
		Attributes: ProcessedAttributes,
		ErrorMode:  mode,
		logger:     logging.OrDefault(logger),
	}
}

// kindOf returns the kind of the node, and false for
// elements outside of the SVG namespace
func kindOf(node *svgdoc.Node) (ElementKind, bool) {
	if !node.IsSVG() {
		return ElemUnknown, false
	}
	return ElementKindFromName(node.Name.Local), true
}

func describe(node *svgdoc.Node) string {
	if id := node.ID(); id != "" {
		return fmt.Sprintf("<%s id=%q>", node.Name.Local, id)
	}
	return "<" + node.Name.Local + ">"
}

// LoadDocument traverses the whole document. The root element
// must be an <svg> element, entered as a child of `root`.
func (t *Traverser) LoadDocument(doc *svgdoc.Document, root Handler) error {
	if kind, _ := kindOf(doc.Root); kind != ElemSVG {
		return fmt.Errorf("%w: root element is %s", ErrUnexpectedElement, describe(doc.Root))
	}
	return t.load(doc.Root, root, t.Processed.Union(NewElementSet(ElemSVG)))
}

// LoadReferenced traverses the element `node` (and its children), as a child of
// `parent`. The kind of `node` must be in `expected`, otherwise
// an error wrapping ErrUnexpectedElement is returned.
// `expected` overrides the processed elements for `node` only: this is how
// a <pattern>, usually skipped, is processed when referenced.
func (t *Traverser) LoadReferenced(node *svgdoc.Node, parent Handler, expected ElementSet) error {
	if kind, _ := kindOf(node); !expected.Has(kind) {
		return fmt.Errorf("%w: %s, expected one of %s", ErrUnexpectedElement, describe(node), expected)
	}
	return t.load(node, parent, expected)
}

func (t *Traverser) skip(node *svgdoc.Node, kind ElementKind, isSVG bool) error {
	if !isSVG || kind != ElemUnknown {
		return nil // known elements not processed, or foreign elements
	}
	errStr := "cannot process svg element " + node.Name.Local
	switch t.ErrorMode {
	case StrictErrorMode:
		return errors.New(errStr)
	case WarnErrorMode:
		t.logger.Warn(errStr)
	}
	return nil
}

func (t *Traverser) load(node *svgdoc.Node, parent Handler, processed ElementSet) error {
	kind, isSVG := kindOf(node)
	if !processed.Has(kind) {
		return t.skip(node, kind, isSVG)
	}

	h, err := parent.EnterElement(kind)
	if err != nil {
		return fmt.Errorf("%s: %w", describe(node), err)
	}

	if err = t.deliverAttributes(node, kind, h); err != nil {
		return fmt.Errorf("%s: %w", describe(node), err)
	}

	if kind.IsShape() {
		if ph, ok := h.(PathHandler); ok {
			if err = t.emitGeometry(node, kind, ph); err != nil {
				return fmt.Errorf("%s: %w", describe(node), err)
			}
			ph.PathExit()
		}
	} else {
		for _, child := range node.Children {
			if err = t.load(child, h, t.Processed); err != nil {
				return err
			}
		}
	}

	return h.ExitElement()
}

func viewportOf(h Handler) svgpath.Bounds {
	if v, ok := h.(Viewporter); ok {
		return v.Viewport()
	}
	return svgpath.Bounds{}
}

func (t *Traverser) deliver(h Handler, elem ElementKind, name, value string) error {
	kind, ok := attributesByName[name]
	if !ok || !t.Attributes.Has(kind) || !supportedAttributes(elem).Has(kind) {
		return nil
	}
	val, err := parseAttribute(kind, value, viewportOf(h))
	if err != nil {
		return fmt.Errorf("attribute %s: %w", name, err)
	}
	if val != nil {
		h.SetAttribute(Attribute{Kind: kind, Value: val})
	}
	return nil
}

// deliverAttributes sends the processed attributes, in document order,
// then the properties of the `style` attribute.
func (t *Traverser) deliverAttributes(node *svgdoc.Node, elem ElementKind, h Handler) error {
	var style string
	for _, attr := range node.Attrs {
		if attr.Name.Space != "" && attr.Name.Space != svgdoc.SVGNamespace {
			continue
		}
		if attr.Name.Local == "style" {
			style = attr.Value
			continue
		}
		if err := t.deliver(h, elem, attr.Name.Local, attr.Value); err != nil {
			return err
		}
	}

	for _, pair := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		kind, known := attributesByName[k]
		if !known || !PaintAttributes.Has(kind) {
			continue
		}
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		if err := t.deliver(h, elem, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (t *Traverser) emitGeometry(node *svgdoc.Node, kind ElementKind, h PathHandler) error {
	f := shapeFuncs[kind]
	c := shapeCursor{viewport: viewportOf(h)}
	return f(c, node, pathAdder{h})
}
