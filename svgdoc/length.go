package svgdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// DPI is the resolution used to convert absolute units
// to user units (pixels).
const DPI = 96.

// Unit is the unit of a length.
type Unit uint8

const (
	UserUnit Unit = iota // no unit
	Px
	Mm
	Cm
	In
	Pt
	Pc
	Em
	Ex
	Percent
)

// font size assumed for em and ex, since fonts are not supported
const defaultFontSize = 16.

var unitSuffixes = [...]string{
	Px:      "px",
	Mm:      "mm",
	Cm:      "cm",
	In:      "in",
	Pt:      "pt",
	Pc:      "pc",
	Em:      "em",
	Ex:      "ex",
	Percent: "%",
}

func (u Unit) String() string {
	if u == UserUnit {
		return ""
	}
	return unitSuffixes[u]
}

// size of one unit, in user units (percentages excepted)
var unitFactors = [...]float64{
	UserUnit: 1,
	Px:       1,
	Mm:       DPI / 25.4,
	Cm:       DPI / 2.54,
	In:       DPI,
	Pt:       DPI / 72,
	Pc:       DPI / 6,
	Em:       defaultFontSize,
	Ex:       defaultFontSize / 2,
}

// Length is a number with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

// Resolve returns the length in user units. Percentages
// are resolved against `reference`.
func (l Length) Resolve(reference float64) float64 {
	if l.Unit == Percent {
		return l.Value * reference / 100
	}
	return l.Value * unitFactors[l.Unit]
}

// ParseLength parses a length such as "12", "4.5mm" or "50%".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	for u := Px; u <= Percent; u++ {
		if num := strings.TrimSuffix(s, unitSuffixes[u]); len(num) != len(s) {
			v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
			if err != nil {
				return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
			}
			return Length{Value: v, Unit: u}, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return Length{Value: v}, nil
}
