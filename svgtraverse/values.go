package svgtraverse

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
	"golang.org/x/image/colornames"
)

// Value groups the different types of attribute values
// delivered to handlers.
type Value interface {
	isValue()
}

// None is the keyword `none`.
type None struct{}

// IRI is a reference to an element of the same document,
// given by its id (without the leading #).
type IRI string

// Color is a plain color.
type Color color.NRGBA

// CurrentColor is the keyword `currentColor`.
type CurrentColor struct{}

// UnsupportedPaint is a paint value which is valid SVG
// but not handled, such as a reference to an external file.
type UnsupportedPaint string

// Numbers is a list of numbers, already converted to user units.
type Numbers []float64

// Transform is an affine transformation.
type Transform svgpath.Matrix2D

// Length is a length with its unit, not resolved yet.
type Length svgdoc.Length

// ViewBox is the content of a `viewBox` attribute.
type ViewBox svgpath.Bounds

// Keyword is an enumerated value, such as `userSpaceOnUse`.
type Keyword string

// AspectRatio is the content of a `preserveAspectRatio` attribute.
type AspectRatio struct {
	// AlignX and AlignY are 0 for min, 0.5 for mid and 1 for max
	AlignX, AlignY float64
	// None disables uniform scaling
	None bool
	// Slice is true for `slice` and false for `meet`
	Slice bool
}

// DefaultAspectRatio is `xMidYMid meet`
var DefaultAspectRatio = AspectRatio{AlignX: 0.5, AlignY: 0.5}

func (None) isValue()             {}
func (IRI) isValue()              {}
func (Color) isValue()            {}
func (CurrentColor) isValue()     {}
func (UnsupportedPaint) isValue() {}
func (Numbers) isValue()          {}
func (Transform) isValue()        {}
func (Length) isValue()           {}
func (ViewBox) isValue()          {}
func (Keyword) isValue()          {}
func (AspectRatio) isValue()      {}

// Attribute is the event sent to handlers.
type Attribute struct {
	Kind  AttributeKind
	Value Value
}

var errInvalidColor = errors.New("invalid color")

// ErrorMode is the for setting how the traversal responds to elements
// outside the SVG vocabulary it knows
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unknown elements silently
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unknown elements
	WarnErrorMode
	// StrictErrorMode aborts the traversal on unknown elements
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<invalid error mode>"
	}
}

// parsePaint parses a value of `fill` or `stroke`.
// It returns nil for `inherit`.
func parsePaint(v string) Value {
	v = strings.TrimSpace(v)
	switch v {
	case "none":
		return None{}
	case "currentColor":
		return CurrentColor{}
	case "inherit":
		return nil
	}
	if strings.HasPrefix(v, "url(") {
		end := strings.IndexByte(v, ')')
		if end == -1 {
			return UnsupportedPaint(v)
		}
		ref := strings.Trim(strings.TrimSpace(v[len("url("):end]), `'"`)
		if !strings.HasPrefix(ref, "#") || len(ref) == 1 {
			return UnsupportedPaint(v) // only local references are supported
		}
		return IRI(ref[1:])
	}
	// an optional ICC color may follow the sRGB one
	if i := strings.Index(v, "icc-color("); i > 0 {
		v = strings.TrimSpace(v[:i])
	}
	col, err := parseSVGColor(v)
	if err != nil {
		return UnsupportedPaint(v)
	}
	return col
}

// parseSVGColor parses an SVG color: keywords, #rgb, #rrggbb
// and the rgb() functional notation.
func parseSVGColor(colorStr string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if v == "transparent" {
		return Color{}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return Color{cn.R, cn.G, cn.B, cn.A}, nil
	}
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6:
		default:
			return Color{}, errInvalidColor
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, errInvalidColor
		}
		return Color{uint8(n >> 16), uint8(n >> 8), uint8(n), 0xff}, nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(parts) != 3 {
			return Color{}, errInvalidColor
		}
		var cs [3]uint8
		for i, part := range parts {
			part = strings.TrimSpace(part)
			scale := 1.
			if strings.HasSuffix(part, "%") {
				scale = 255. / 100
				part = strings.TrimSuffix(part, "%")
			}
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return Color{}, errInvalidColor
			}
			cs[i] = uint8(math.Max(0, math.Min(255, math.Round(f*scale))))
		}
		return Color{cs[0], cs[1], cs[2], 0xff}, nil
	}
	return Color{}, errInvalidColor
}

// parseDasharray parses a `stroke-dasharray` value. Percentages
// are resolved against `diagonal`.
func parseDasharray(v string, diagonal float64) (Value, error) {
	v = strings.TrimSpace(v)
	switch v {
	case "none":
		return None{}, nil
	case "inherit":
		return nil, nil
	}
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make(Numbers, len(fields))
	for i, field := range fields {
		l, err := svgdoc.ParseLength(field)
		if err != nil {
			return nil, err
		}
		out[i] = l.Resolve(diagonal)
		if out[i] < 0 {
			return nil, fmt.Errorf("negative value in dash array %q", v)
		}
	}
	return out, nil
}

// parseViewBox parses the 4 numbers of a `viewBox` attribute
func parseViewBox(v string) (ViewBox, error) {
	points, err := svgpath.ParseNumbers(v)
	if err != nil {
		return ViewBox{}, err
	}
	if len(points) != 4 {
		return ViewBox{}, fmt.Errorf("invalid viewBox %q: %w", v, svgpath.ErrParamMismatch)
	}
	if points[2] < 0 || points[3] < 0 {
		return ViewBox{}, fmt.Errorf("negative size in viewBox %q", v)
	}
	return ViewBox{points[0], points[1], points[2], points[3]}, nil
}

var alignValues = map[string]float64{"min": 0, "mid": 0.5, "max": 1}

// parseAspectRatio parses a `preserveAspectRatio` attribute
func parseAspectRatio(v string) (AspectRatio, error) {
	fields := strings.Fields(v)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	if len(fields) == 0 || len(fields) > 2 {
		return AspectRatio{}, fmt.Errorf("invalid preserveAspectRatio %q", v)
	}
	out := DefaultAspectRatio
	if fields[0] == "none" {
		out = AspectRatio{None: true}
	} else {
		align := fields[0]
		// xMinYMax...
		if len(align) != 8 || align[0] != 'x' || align[4] != 'Y' {
			return AspectRatio{}, fmt.Errorf("invalid alignment %q", align)
		}
		ax, okx := alignValues[strings.ToLower(align[1:4])]
		ay, oky := alignValues[strings.ToLower(align[5:8])]
		if !okx || !oky {
			return AspectRatio{}, fmt.Errorf("invalid alignment %q", align)
		}
		out.AlignX, out.AlignY = ax, ay
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "meet":
		case "slice":
			out.Slice = true
		default:
			return AspectRatio{}, fmt.Errorf("invalid preserveAspectRatio %q", v)
		}
	}
	return out, nil
}

// parseAttribute converts the raw value of a processed attribute.
// A nil Value means nothing should be delivered.
func parseAttribute(kind AttributeKind, v string, viewport svgpath.Bounds) (Value, error) {
	switch kind {
	case AttrFill, AttrStroke:
		return parsePaint(v), nil
	case AttrStrokeDasharray:
		return parseDasharray(v, diagonal(viewport))
	case AttrTransform, AttrPatternTransform:
		m, err := svgpath.ParseTransform(v)
		return Transform(m), err
	case AttrX, AttrY, AttrWidth, AttrHeight:
		l, err := svgdoc.ParseLength(v)
		return Length(l), err
	case AttrViewBox:
		return parseViewBox(v)
	case AttrPreserveAspectRatio:
		return parseAspectRatio(v)
	case AttrPatternUnits, AttrPatternContentUnits:
		v = strings.TrimSpace(v)
		if v != "userSpaceOnUse" && v != "objectBoundingBox" {
			return nil, fmt.Errorf("invalid units %q", v)
		}
		return Keyword(v), nil
	}
	return nil, nil
}

// diagonal is the reference length for percentages which
// are neither horizontal nor vertical
func diagonal(viewport svgpath.Bounds) float64 {
	return math.Hypot(viewport.W, viewport.H) / math.Sqrt2
}
