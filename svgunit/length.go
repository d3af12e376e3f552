// Package svgunit converts SVG length and number tokens into
// device independent values (px).
//
// Malformed input never fails at the public boundary : the
// Parse* functions report a *ParseFailure, and their lenient
// counterparts (Number, Resolve) map it to 0.
package svgunit

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// Axis selects the viewport dimension a length is resolved against.
type Axis uint8

const (
	Width Axis = iota
	Height
	Diagonal // normalized diagonal, used for radii and stroke widths
)

func (a Axis) String() string {
	switch a {
	case Width:
		return "width"
	case Height:
		return "height"
	case Diagonal:
		return "diagonal"
	default:
		return "<unknown Axis>"
	}
}

// Viewport is the root coordinate space of a document.
type Viewport struct {
	Width, Height float64
}

// size returns the dimension used by percentages on `axis`.
func (vp Viewport) size(axis Axis) float64 {
	switch axis {
	case Width:
		return vp.Width
	case Height:
		return vp.Height
	default:
		return math.Sqrt(vp.Width*vp.Width+vp.Height*vp.Height) / math.Sqrt2
	}
}

// Bounds defines a box, such as a viewBox or the
// bounding box of an object.
type Bounds struct{ X, Y, W, H float64 }

func (b Bounds) origin(axis Axis) float64 {
	switch axis {
	case Width:
		return b.X
	case Height:
		return b.Y
	default:
		return 0
	}
}

func (b Bounds) size(axis Axis) float64 {
	return Viewport{Width: b.W, Height: b.H}.size(axis)
}

// Length is a resolved length, with the axis it was resolved against.
type Length struct {
	Value float64
	Axis  Axis
}

var (
	errEmpty       = errors.New("empty value")
	errSyntax      = errors.New("invalid number syntax")
	errUnknownUnit = errors.New("unknown unit")
)

// ParseFailure reports a token which could not be read as a number
// or a length.
type ParseFailure struct {
	Text string
	Err  error
}

func (pf *ParseFailure) Error() string {
	return "svgunit: " + pf.Err.Error() + ": " + strconv.Quote(pf.Text)
}

func (pf *ParseFailure) Unwrap() error { return pf.Err }

// signedZero matches zero values with any sign, including
// the unicode minus sign.
var signedZero = regexp.MustCompile(`^[-+\x{2212}\x{2013}]?0*\.?0*$`)

// conversion factors to px, for each supported unit
var unitFactors = map[string]float64{
	"":   1,
	"px": 1,
	"in": 96,
	"pt": 72. / 96,
	"cm": 72. / (96 * 2.54),
	"mm": 72. / (96 * 2.54) / 10,
}

// splitDimension returns the number and the unit parts of `text`,
// which must already be trimmed.
func splitDimension(text string) (num, unit string) {
	nn, _ := parse.Dimension([]byte(text))
	return text[:nn], strings.ToLower(strings.TrimSpace(text[nn:]))
}

// ParseNumber parses a plain number, without unit.
func ParseNumber(text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &ParseFailure{Text: text, Err: errEmpty}
	}
	if strings.ContainsAny(s, "0123456789") && signedZero.MatchString(s) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseFailure{Text: text, Err: errSyntax}
	}
	return f, nil
}

// Number is the lenient version of ParseNumber : malformed text
// resolves to 0.
func Number(text string) float64 {
	f, _ := ParseNumber(text)
	return f
}

// ParseLength resolves `text` to a value in px.
// Percentages are resolved against the viewport dimension given by `axis`,
// and resolve to 0 when `vp` is nil.
// When `rel` is not nil, the value is expressed in the object bounding box
// space : a bare number (or a percentage, as a fraction) is scaled by the
// box size and offset by its origin.
func ParseLength(text string, axis Axis, vp *Viewport, rel *Bounds) (Length, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Length{Axis: axis}, &ParseFailure{Text: text, Err: errEmpty}
	}
	numS, unit := splitDimension(s)
	if numS == "" {
		return Length{Axis: axis}, &ParseFailure{Text: text, Err: errSyntax}
	}
	num, err := ParseNumber(numS)
	if err != nil {
		return Length{Axis: axis}, &ParseFailure{Text: text, Err: errSyntax}
	}

	if rel != nil {
		switch unit {
		case "%":
			num /= 100
		case "", "px":
		default:
			return Length{Axis: axis}, &ParseFailure{Text: text, Err: errUnknownUnit}
		}
		return Length{Value: rel.origin(axis) + num*rel.size(axis), Axis: axis}, nil
	}

	if unit == "%" {
		if vp == nil {
			return Length{Axis: axis}, nil
		}
		return Length{Value: num / 100 * vp.size(axis), Axis: axis}, nil
	}
	factor, ok := unitFactors[unit]
	if !ok {
		return Length{Axis: axis}, &ParseFailure{Text: text, Err: errUnknownUnit}
	}
	return Length{Value: num * factor, Axis: axis}, nil
}

// Resolve is the lenient version of ParseLength : malformed
// text resolves to 0.
func Resolve(text string, axis Axis, vp *Viewport, rel *Bounds) float64 {
	l, _ := ParseLength(text, axis, vp, rel)
	return l.Value
}

// ParseFraction reads a number or a percentage, returning the
// percentage divided by 100.
func ParseFraction(text string) (float64, error) {
	v := strings.TrimSpace(text)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := ParseNumber(v)
	return f / d, err
}

// ParseList returns the numbers of a comma or space separated list.
// Malformed items resolve to 0 but are reported through the returned error.
func ParseList(text string) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, len(fields))
	var firstErr error
	for i, field := range fields {
		f, err := ParseNumber(field)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out[i] = f
	}
	return out, firstErr
}
