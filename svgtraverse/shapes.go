package svgtraverse

import (
	"errors"
	"math"

	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
)

// reference used to resolve percentages
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// shapeCursor is used while converting shapes to paths
type shapeCursor struct {
	viewport svgpath.Bounds
}

// parseUnit converts a length to user units.
func (c shapeCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	l, err := svgdoc.ParseLength(s)
	if err != nil {
		return 0, err
	}
	var reference float64
	switch asPerc {
	case widthPercentage:
		reference = c.viewport.W
	case heightPercentage:
		reference = c.viewport.H
	case diagPercentage:
		reference = diagonal(c.viewport)
	}
	return l.Resolve(reference), nil
}

type shapeFunc func(c shapeCursor, n *svgdoc.Node, q svgpath.Adder) error

var shapeFuncs = map[ElementKind]shapeFunc{
	ElemRect:     rectF,
	ElemCircle:   circleF,
	ElemEllipse:  circleF, // circleF handles ellipse also
	ElemLine:     lineF,
	ElemPolyline: polylineF,
	ElemPolygon:  polygonF,
	ElemPath:     pathF,
}

func rectF(c shapeCursor, n *svgdoc.Node, q svgpath.Adder) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range n.Attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if w <= 0 || h <= 0 { // not drawn, but not an error
		return nil
	}
	svgpath.AddRoundRect(q, x, y, x+w, y+h, rx, ry, 0)
	return nil
}

func circleF(c shapeCursor, n *svgdoc.Node, q svgpath.Adder) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range n.Attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	// an ellipse with a single radius uses it for both axis
	if rx == 0 {
		rx = ry
	} else if ry == 0 {
		ry = rx
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	svgpath.AddEllipse(q, cx, cy, rx, ry)
	return nil
}

func lineF(c shapeCursor, n *svgdoc.Node, q svgpath.Adder) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range n.Attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value, widthPercentage)
		case "x2":
			x2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "y2":
			y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	svgpath.AddPolyline(q, []float64{x1, y1, x2, y2}, false)
	return nil
}

func readPoints(n *svgdoc.Node) ([]float64, error) {
	v, _ := n.Attr("points")
	points, err := svgpath.ParseNumbers(v)
	if err != nil {
		return nil, err
	}
	if len(points)%2 != 0 {
		return nil, errors.New("polygon has odd number of points")
	}
	return points, nil
}

func polylineF(_ shapeCursor, n *svgdoc.Node, q svgpath.Adder) error {
	points, err := readPoints(n)
	if err != nil {
		return err
	}
	svgpath.AddPolyline(q, points, false)
	return nil
}

func polygonF(_ shapeCursor, n *svgdoc.Node, q svgpath.Adder) error {
	points, err := readPoints(n)
	if err != nil {
		return err
	}
	svgpath.AddPolyline(q, points, true)
	return nil
}

func pathF(_ shapeCursor, n *svgdoc.Node, q svgpath.Adder) error {
	d, _ := n.Attr("d")
	return svgpath.CompilePath(d, q)
}

// ViewBoxTransform returns the transform mapping the viewBox `vb`
// into the viewport of size (width, height), following `aspect`.
func ViewBoxTransform(vb ViewBox, width, height float64, aspect AspectRatio) svgpath.Matrix2D {
	if vb.W == 0 || vb.H == 0 {
		return svgpath.Identity
	}
	sx, sy := width/vb.W, height/vb.H
	if aspect.None {
		return svgpath.Identity.Scale(sx, sy).Translate(-vb.X, -vb.Y)
	}
	s := math.Min(sx, sy)
	if aspect.Slice {
		s = math.Max(sx, sy)
	}
	tx := (width - vb.W*s) * aspect.AlignX
	ty := (height - vb.H*s) * aspect.AlignY
	return svgpath.Identity.Translate(tx, ty).Scale(s, s).Translate(-vb.X, -vb.Y)
}
