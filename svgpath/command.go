// Package svgpath parses SVG path data into typed commands,
// derives the marker vertices of a path, and converts
// paths into absolute outlines.
package svgpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a point in user space.
type Point struct{ X, Y float64 }

// Kind identifies a path command.
type Kind uint8

const (
	MoveTo Kind = iota
	LineTo
	HorizontalLineTo
	VerticalLineTo
	CubicCurveTo
	SmoothCubicCurveTo
	QuadraticCurveTo
	SmoothQuadraticCurveTo
	EllipticalArc
	ClosePath
)

// param describes how a parameter value is resolved
type param uint8

const (
	xLength param = iota // resolved against the viewport width
	yLength              // resolved against the viewport height
	number               // plain number, such as an angle
	flag                 // 0 or 1
)

var commandParams = [...][]param{
	MoveTo:                 {xLength, yLength},
	LineTo:                 {xLength, yLength},
	HorizontalLineTo:       {xLength},
	VerticalLineTo:         {yLength},
	CubicCurveTo:           {xLength, yLength, xLength, yLength, xLength, yLength},
	SmoothCubicCurveTo:     {xLength, yLength, xLength, yLength},
	QuadraticCurveTo:       {xLength, yLength, xLength, yLength},
	SmoothQuadraticCurveTo: {xLength, yLength},
	EllipticalArc:          {xLength, yLength, number, flag, flag, xLength, yLength},
	ClosePath:              {},
}

var commandLetters = [...]byte{
	MoveTo:                 'M',
	LineTo:                 'L',
	HorizontalLineTo:       'H',
	VerticalLineTo:         'V',
	CubicCurveTo:           'C',
	SmoothCubicCurveTo:     'S',
	QuadraticCurveTo:       'Q',
	SmoothQuadraticCurveTo: 'T',
	EllipticalArc:          'A',
	ClosePath:              'Z',
}

// Arity returns the number of parameters of the command.
func (k Kind) Arity() int {
	if int(k) >= len(commandParams) {
		return 0
	}
	return len(commandParams[k])
}

// Letter returns the absolute command letter.
func (k Kind) Letter() byte {
	if int(k) >= len(commandLetters) {
		return '?'
	}
	return commandLetters[k]
}

func (k Kind) String() string {
	switch k {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case HorizontalLineTo:
		return "HorizontalLineTo"
	case VerticalLineTo:
		return "VerticalLineTo"
	case CubicCurveTo:
		return "CubicCurveTo"
	case SmoothCubicCurveTo:
		return "SmoothCubicCurveTo"
	case QuadraticCurveTo:
		return "QuadraticCurveTo"
	case SmoothQuadraticCurveTo:
		return "SmoothQuadraticCurveTo"
	case EllipticalArc:
		return "EllipticalArc"
	case ClosePath:
		return "ClosePath"
	default:
		return "<unknown Kind>"
	}
}

// kindFromLetter returns the command for the given letter,
// lower case letters being relative.
func kindFromLetter(c byte) (kind Kind, relative bool, ok bool) {
	relative = 'a' <= c && c <= 'z'
	if relative {
		c -= 'a' - 'A'
	}
	for k, l := range commandLetters {
		if l == c {
			return Kind(k), relative, true
		}
	}
	return 0, false, false
}

// Command is one resolved path command.
// Params holds exactly Kind.Arity() values, as declared
// (that is, relative to Start when Relative is true).
type Command struct {
	Kind     Kind
	Relative bool
	Params   []float64

	Start Point // current point before the command
	End   Point // current point after the command
}

// absParams returns the parameters in absolute coordinates.
func (c Command) absParams() []float64 {
	out := append([]float64(nil), c.Params...)
	if !c.Relative {
		return out
	}
	for i, p := range commandParams[c.Kind] {
		if c.Kind == EllipticalArc && i < 5 {
			continue // radii are never offset
		}
		switch p {
		case xLength:
			out[i] += c.Start.X
		case yLength:
			out[i] += c.Start.Y
		}
	}
	return out
}

// String returns the command in path data syntax.
func (c Command) String() string {
	letter := c.Kind.Letter()
	if c.Relative {
		letter += 'a' - 'A'
	}
	chunks := make([]string, len(c.Params))
	for i, p := range c.Params {
		chunks[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return string(letter) + strings.Join(chunks, ",")
}

// Path is a parsed path data attribute.
type Path struct {
	Commands []Command
	// Vertices holds the anchor point of each command, in order.
	Vertices []Vertex
}

// String returns the path in path data syntax.
func (p Path) String() string {
	chunks := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, " ")
}

// GoString is used in test failures.
func (p Path) GoString() string {
	return fmt.Sprintf("svgpath.Path(%q)", p.String())
}
