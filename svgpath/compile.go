package svgpath

import (
	"fmt"
	"math"
	"strconv"
)

// pathCursor is used while compiling SVG path data
type pathCursor struct {
	adder Adder
	data  string
	pos   int

	points []float64

	start, current Point
	inPath         bool
	// subpath was closed and no move followed
	closed bool

	lastControl Point
	lastKind    byte // 'C' or 'Q' when the previous command was a curve, 0 otherwise
}

// CompilePath reads the SVG path data `d` and sends it to `q` as
// moves, lines, cubic beziers and closes.
// Relative commands are resolved, quadratic curves are elevated to cubics
// and elliptic arcs are approximated by cubics.
func CompilePath(d string, q Adder) error {
	c := pathCursor{adder: q, data: d}
	return c.compile()
}

func argsCount(cmd byte) int {
	switch cmd {
	case 'M', 'L', 'T':
		return 2
	case 'H', 'V':
		return 1
	case 'C':
		return 6
	case 'S', 'Q':
		return 4
	case 'A':
		return 7
	case 'Z':
		return 0
	default:
		return -1
	}
}

func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.data) && isSeparator(c.data[c.pos]) {
		c.pos++
	}
}

func (c *pathCursor) readNumber() (float64, error) {
	c.skipSeparators()
	n := scanNumber(c.data[c.pos:])
	if n == 0 {
		return 0, fmt.Errorf("expected number at offset %d in path data: %w", c.pos, ErrParamMismatch)
	}
	f, err := strconv.ParseFloat(c.data[c.pos:c.pos+n], 64)
	c.pos += n
	return f, err
}

// arc flags may be packed without separators
func (c *pathCursor) readFlag() (float64, error) {
	c.skipSeparators()
	if c.pos < len(c.data) {
		switch c.data[c.pos] {
		case '0':
			c.pos++
			return 0, nil
		case '1':
			c.pos++
			return 1, nil
		}
	}
	return 0, fmt.Errorf("expected arc flag at offset %d in path data: %w", c.pos, ErrParamMismatch)
}

func (c *pathCursor) readArgs(cmd byte) error {
	c.points = c.points[:0]
	for i := 0; i < argsCount(cmd); i++ {
		var (
			f   float64
			err error
		)
		if cmd == 'A' && (i == 3 || i == 4) {
			f, err = c.readFlag()
		} else {
			f, err = c.readNumber()
		}
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
	return nil
}

// hasNumber returns true if the next token is a number,
// meaning an implicit repetition of the previous command.
func (c *pathCursor) hasNumber() bool {
	c.skipSeparators()
	return c.pos < len(c.data) && scanNumber(c.data[c.pos:]) > 0
}

func (c *pathCursor) compile() error {
	var cmd byte
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			break
		}
		b := c.data[c.pos]
		if ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') {
			cmd = b
			c.pos++
		} else if cmd == 0 || argsCount(upper(cmd)) == 0 || !c.hasNumber() {
			return fmt.Errorf("unexpected character %q in path data: %w", b, ErrParamMismatch)
		}
		if argsCount(upper(cmd)) < 0 {
			return fmt.Errorf("unknown path command %q: %w", cmd, ErrParamMismatch)
		}
		if !c.inPath && !c.closed && upper(cmd) != 'M' {
			return fmt.Errorf("path data must start with a move, got %q: %w", cmd, ErrParamMismatch)
		}
		if err := c.readArgs(upper(cmd)); err != nil {
			return err
		}
		c.addSeg(cmd)
		// subsequent pairs after a move are implicit lines
		if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}
	}
	if c.inPath {
		c.adder.Stop(false)
	}
	return nil
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// abs returns the absolute point for the coordinates at index i
func (c *pathCursor) abs(rel bool, i int) Point {
	p := Point{c.points[i], c.points[i+1]}
	if rel {
		p = p.add(c.current)
	}
	return p
}

// reflect returns the reflection of the last control point
// if the previous command has the given kind, or the current point.
func (c *pathCursor) reflect(kind byte) Point {
	if c.lastKind == kind {
		return c.current.scale(2).sub(c.lastControl)
	}
	return c.current
}

// restart starts a new subpath at the current point
// after a close, when no move was given
func (c *pathCursor) restart() {
	if !c.inPath {
		c.adder.Start(c.current)
		c.inPath, c.closed = true, false
	}
}

func (c *pathCursor) addSeg(cmd byte) {
	rel := cmd != upper(cmd)
	kind := byte(0)
	switch upper(cmd) {
	case 'M':
		if c.inPath {
			c.adder.Stop(false)
		}
		p := c.abs(rel, 0)
		c.adder.Start(p)
		c.start, c.current = p, p
		c.inPath, c.closed = true, false
	case 'L':
		c.restart()
		p := c.abs(rel, 0)
		c.adder.Line(p)
		c.current = p
	case 'H':
		c.restart()
		p := Point{c.points[0], c.current.Y}
		if rel {
			p.X += c.current.X
		}
		c.adder.Line(p)
		c.current = p
	case 'V':
		c.restart()
		p := Point{c.current.X, c.points[0]}
		if rel {
			p.Y += c.current.Y
		}
		c.adder.Line(p)
		c.current = p
	case 'C':
		c.restart()
		c1, c2, p := c.abs(rel, 0), c.abs(rel, 2), c.abs(rel, 4)
		c.adder.CubeBezier(c1, c2, p)
		c.lastControl, c.current, kind = c2, p, 'C'
	case 'S':
		c.restart()
		c1 := c.reflect('C')
		c2, p := c.abs(rel, 0), c.abs(rel, 2)
		c.adder.CubeBezier(c1, c2, p)
		c.lastControl, c.current, kind = c2, p, 'C'
	case 'Q':
		c.restart()
		ctrl, p := c.abs(rel, 0), c.abs(rel, 2)
		c.quadTo(ctrl, p)
		c.lastControl, c.current, kind = ctrl, p, 'Q'
	case 'T':
		c.restart()
		ctrl := c.reflect('Q')
		p := c.abs(rel, 0)
		c.quadTo(ctrl, p)
		c.lastControl, c.current, kind = ctrl, p, 'Q'
	case 'A':
		c.restart()
		p := c.abs(rel, 5)
		c.arcTo(p)
		c.current = p
	case 'Z':
		if c.inPath {
			c.adder.Stop(true)
		}
		c.current = c.start
		c.inPath, c.closed = false, true
	}
	c.lastKind = kind
}

func (c *pathCursor) quadTo(ctrl, p Point) {
	a := c.current
	c1 := a.add(ctrl.sub(a).scale(2. / 3))
	c2 := p.add(ctrl.sub(p).scale(2. / 3))
	c.adder.CubeBezier(c1, c2, p)
}

func (c *pathCursor) arcTo(p Point) {
	if p == c.current {
		return // omitted, per the SVG implementation notes
	}
	rx, ry := math.Abs(c.points[0]), math.Abs(c.points[1])
	if rx == 0 || ry == 0 {
		c.adder.Line(p)
		return
	}
	rot := c.points[2]
	cx, cy := findEllipseCenter(&rx, &ry, rot*math.Pi/180, c.current.X, c.current.Y,
		p.X, p.Y, c.points[4] == 0, c.points[3] == 0)
	addArc(c.adder, []float64{rx, ry, rot, c.points[3], c.points[4], p.X, p.Y}, cx, cy, c.current.X, c.current.Y)
}
