package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParamMismatch is returned when the number of arguments
// of a path or transform command is invalid.
var ErrParamMismatch = errors.New("param mismatch")

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// scanNumber returns the length of the number at the start of s,
// or 0 if s does not start with a number.
// Following the SVG grammar, "1.5.5" is read as "1.5" and ".5" and
// "10-5" as "10" and "-5".
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && isDigit(s[i]) {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

// ParseNumbers reads a list of numbers separated by
// white spaces and/or commas.
func ParseNumbers(s string) ([]float64, error) {
	var out []float64
	for i := 0; i < len(s); {
		if isSeparator(s[i]) {
			i++
			continue
		}
		n := scanNumber(s[i:])
		if n == 0 {
			return nil, fmt.Errorf("invalid number list %q", s)
		}
		f, err := strconv.ParseFloat(s[i:i+n], 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
		i += n
	}
	return out, nil
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, ErrParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, ErrParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, ErrParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, ErrParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, ErrParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, ErrParamMismatch
		}
	default:
		return m1, fmt.Errorf("unknown transform %q: %w", k, ErrParamMismatch)
	}
	return m1, nil
}

// ParseTransform parses the value of a `transform` attribute.
// The transforms of the list are composed from left to right,
// so that the rightmost is applied first to the points.
func ParseTransform(v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := Identity
	for _, t := range ts {
		t = strings.Trim(t, " \t\n\r,")
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, ErrParamMismatch // badly formed transformation
		}
		points, err := ParseNumbers(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}
