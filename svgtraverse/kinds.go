package svgtraverse

import "strings"

// ElementKind identifies an SVG element.
type ElementKind uint8

const (
	ElemUnknown ElementKind = iota // not part of the SVG vocabulary known here

	ElemSVG
	ElemG
	ElemPath
	ElemRect
	ElemCircle
	ElemEllipse
	ElemLine
	ElemPolyline
	ElemPolygon
	ElemPattern

	// known, never processed
	ElemDefs
	ElemUse
	ElemSymbol
	ElemLinearGradient
	ElemRadialGradient
	ElemStop
	ElemTitle
	ElemDesc
	ElemMetadata
	ElemStyle
	ElemText
	ElemImage
	ElemClipPath
	ElemMask
	ElemMarker
	ElemFilter
	ElemSwitch
	ElemA

	elemCount
)

var elementNames = [...]string{
	ElemUnknown:        "unknown",
	ElemSVG:            "svg",
	ElemG:              "g",
	ElemPath:           "path",
	ElemRect:           "rect",
	ElemCircle:         "circle",
	ElemEllipse:        "ellipse",
	ElemLine:           "line",
	ElemPolyline:       "polyline",
	ElemPolygon:        "polygon",
	ElemPattern:        "pattern",
	ElemDefs:           "defs",
	ElemUse:            "use",
	ElemSymbol:         "symbol",
	ElemLinearGradient: "linearGradient",
	ElemRadialGradient: "radialGradient",
	ElemStop:           "stop",
	ElemTitle:          "title",
	ElemDesc:           "desc",
	ElemMetadata:       "metadata",
	ElemStyle:          "style",
	ElemText:           "text",
	ElemImage:          "image",
	ElemClipPath:       "clipPath",
	ElemMask:           "mask",
	ElemMarker:         "marker",
	ElemFilter:         "filter",
	ElemSwitch:         "switch",
	ElemA:              "a",
}

var elementsByName = func() map[string]ElementKind {
	out := make(map[string]ElementKind, len(elementNames))
	for kind, name := range elementNames {
		if kind != int(ElemUnknown) {
			out[name] = ElementKind(kind)
		}
	}
	return out
}()

func (k ElementKind) String() string {
	if int(k) < len(elementNames) {
		return elementNames[k]
	}
	return "<invalid element>"
}

// ElementKindFromName returns the kind of the element with the given
// local name, or ElemUnknown.
func ElementKindFromName(local string) ElementKind {
	return elementsByName[local]
}

// IsShape returns true for the elements converted to a path.
func (k ElementKind) IsShape() bool { return ShapeElements.Has(k) }

// ElementSet is a set of element kinds.
type ElementSet uint64

// NewElementSet returns the set of the given kinds.
func NewElementSet(kinds ...ElementKind) ElementSet {
	var s ElementSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has returns true if k belongs to the set.
func (s ElementSet) Has(k ElementKind) bool { return s&(1<<k) != 0 }

// Union returns the elements in s or in other.
func (s ElementSet) Union(other ElementSet) ElementSet { return s | other }

func (s ElementSet) String() string {
	var names []string
	for k := ElementKind(0); k < elemCount; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

var (
	// ShapeElements are converted to paths by the traversal.
	ShapeElements = NewElementSet(ElemPath, ElemRect, ElemCircle, ElemEllipse, ElemLine, ElemPolyline, ElemPolygon)

	// StructuralElements group other elements.
	StructuralElements = NewElementSet(ElemSVG, ElemG)

	// ProcessedElements are the elements visited during a document traversal.
	// Other elements are skipped, with their children.
	// Patterns are only processed when referenced.
	ProcessedElements = ShapeElements.Union(StructuralElements)
)

// AttributeKind identifies an attribute (or a CSS property given
// in a `style` attribute).
type AttributeKind uint8

const (
	AttrTransform AttributeKind = iota
	AttrFill
	AttrStroke
	AttrStrokeDasharray

	// viewport attributes of <svg> and tile attributes of <pattern>
	AttrX
	AttrY
	AttrWidth
	AttrHeight
	AttrViewBox
	AttrPreserveAspectRatio

	AttrPatternUnits
	AttrPatternContentUnits
	AttrPatternTransform

	attrCount
)

var attributeNames = [...]string{
	AttrTransform:           "transform",
	AttrFill:                "fill",
	AttrStroke:              "stroke",
	AttrStrokeDasharray:     "stroke-dasharray",
	AttrX:                   "x",
	AttrY:                   "y",
	AttrWidth:               "width",
	AttrHeight:              "height",
	AttrViewBox:             "viewBox",
	AttrPreserveAspectRatio: "preserveAspectRatio",
	AttrPatternUnits:        "patternUnits",
	AttrPatternContentUnits: "patternContentUnits",
	AttrPatternTransform:    "patternTransform",
}

var attributesByName = func() map[string]AttributeKind {
	out := make(map[string]AttributeKind, len(attributeNames))
	for kind, name := range attributeNames {
		out[name] = AttributeKind(kind)
	}
	return out
}()

func (a AttributeKind) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return "<invalid attribute>"
}

// AttributeSet is a set of attribute kinds.
type AttributeSet uint32

// NewAttributeSet returns the set of the given kinds.
func NewAttributeSet(kinds ...AttributeKind) AttributeSet {
	var s AttributeSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has returns true if a belongs to the set.
func (s AttributeSet) Has(a AttributeKind) bool { return s&(1<<a) != 0 }

// Union returns the attributes in s or in other.
func (s AttributeSet) Union(other AttributeSet) AttributeSet { return s | other }

var (
	// PaintAttributes are the presentation attributes, which may
	// also be given as properties in a `style` attribute.
	PaintAttributes = NewAttributeSet(AttrFill, AttrStroke, AttrStrokeDasharray)

	viewportAttributes = NewAttributeSet(AttrX, AttrY, AttrWidth, AttrHeight, AttrViewBox, AttrPreserveAspectRatio)

	// ProcessedAttributes are the attributes delivered to handlers,
	// for the elements supporting them.
	ProcessedAttributes = PaintAttributes.Union(viewportAttributes).
				Union(NewAttributeSet(AttrTransform, AttrPatternUnits, AttrPatternContentUnits, AttrPatternTransform))
)

// supportedAttributes returns the attributes meaningful for the
// element `kind`.
func supportedAttributes(kind ElementKind) AttributeSet {
	switch kind {
	case ElemSVG:
		return PaintAttributes.Union(viewportAttributes).Union(NewAttributeSet(AttrTransform))
	case ElemPattern:
		return PaintAttributes.Union(viewportAttributes).
			Union(NewAttributeSet(AttrPatternUnits, AttrPatternContentUnits, AttrPatternTransform))
	default: // g and shapes
		return PaintAttributes.Union(NewAttributeSet(AttrTransform))
	}
}
