// Package svggradient resolves linearGradient and radialGradient
// definitions, following their href inheritance chains.
//
// A gradient which can't be resolved (unknown id, no stops) is reported
// as "no paint" rather than as an error.
package svggradient

import (
	"image/color"
	"math"
	"strings"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/srwiley/rasterx"
)

// Kind is the geometry of a gradient.
type Kind uint8

const (
	Linear Kind = iota
	Radial
)

func (k Kind) String() string {
	if k == Radial {
		return "radial"
	}
	return "linear"
}

// Spread is the spreadMethod attribute.
type Spread uint8

const (
	PadSpread Spread = iota
	ReflectSpread
	RepeatSpread
)

var spreads = map[string]Spread{
	"pad":     PadSpread,
	"reflect": ReflectSpread,
	"repeat":  RepeatSpread,
}

func (s Spread) String() string {
	switch s {
	case ReflectSpread:
		return "reflect"
	case RepeatSpread:
		return "repeat"
	default:
		return "pad"
	}
}

// Units is the gradientUnits attribute.
type Units uint8

const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

func (u Units) String() string {
	if u == UserSpaceOnUse {
		return "userSpaceOnUse"
	}
	return "objectBoundingBox"
}

// StopSpec is one color stop. Color has its alpha already
// multiplied by the stop-opacity.
type StopSpec struct {
	Offset float64 // in [0,1]
	Color  color.NRGBA
}

// Spec is a gradient element, as declared. Nil fields are not
// declared locally and may be inherited through Href.
type Spec struct {
	ID   string
	Kind Kind
	Href string // id of the referenced gradient, or empty

	Stops     []StopSpec // nil if the element has no stop child
	Transform *svgstyle.Transform
	Spread    *Spread
	Units     *Units
	// Coords holds the raw coordinate attributes declared locally:
	// x1, y1, x2, y2 for linear gradients, cx, cy, r, fx, fy, fr for radial ones.
	Coords map[string]string
}

var coordNames = [...][]string{
	Linear: {"x1", "y1", "x2", "y2"},
	Radial: {"cx", "cy", "r", "fx", "fy", "fr"},
}

// FromElement reads a linearGradient or radialGradient element. The
// styles of the stop children are computed with `cascade`.
// It returns false for other elements.
func FromElement(el *svgtree.Element, cascade svgstyle.Cascade) (*Spec, bool) {
	var out Spec
	switch el.Tag {
	case "linearGradient":
		out.Kind = Linear
	case "radialGradient":
		out.Kind = Radial
	default:
		return nil, false
	}
	out.ID = el.ID()
	if href, ok := el.Attr("href"); ok {
		out.Href = localRef(href)
	}
	for _, name := range coordNames[out.Kind] {
		if v, ok := el.Attr(name); ok {
			if out.Coords == nil {
				out.Coords = make(map[string]string)
			}
			out.Coords[name] = v
		}
	}
	if v, ok := el.Attr("gradientTransform"); ok {
		tr, err := svgstyle.ParseTransform(v)
		if err != nil {
			logx.Logger().Debug("svggradient: invalid gradientTransform", "id", out.ID, "err", err)
		} else {
			out.Transform = &tr
		}
	}
	if v, ok := el.Attr("gradientUnits"); ok {
		switch strings.TrimSpace(v) {
		case "userSpaceOnUse":
			u := UserSpaceOnUse
			out.Units = &u
		case "objectBoundingBox":
			u := ObjectBoundingBox
			out.Units = &u
		}
	}
	if v, ok := el.Attr("spreadMethod"); ok {
		if s, ok := spreads[strings.TrimSpace(v)]; ok {
			out.Spread = &s
		}
	}

	for _, child := range el.Children {
		if child.Tag != "stop" {
			continue
		}
		stop := readStop(child, cascade)
		// offsets are monotonic
		if n := len(out.Stops); n > 0 && stop.Offset < out.Stops[n-1].Offset {
			stop.Offset = out.Stops[n-1].Offset
		}
		out.Stops = append(out.Stops, stop)
	}
	return &out, true
}

// localRef returns the id of a "#id" reference, or an empty string
// for external references.
func localRef(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "#") {
		return href[1:]
	}
	return ""
}

func readStop(el *svgtree.Element, cascade svgstyle.Cascade) StopSpec {
	var stop StopSpec
	if v, ok := el.Attr("offset"); ok {
		f, err := svgunit.ParseFraction(v)
		if err != nil {
			logx.Logger().Debug("svggradient: invalid stop offset", "offset", v)
		}
		stop.Offset = math.Max(0, math.Min(1, f))
	}
	style := cascade.Apply(el)
	stop.Color = color.NRGBA{A: 0xFF}
	if v, ok := style.Properties.Get(svgstyle.PropStopColor); ok {
		switch p := v.(svgstyle.Paint); p.Kind {
		case svgstyle.PaintColor:
			stop.Color = p.Color
		case svgstyle.PaintCurrentColor:
			stop.Color = style.CurrentColor()
		}
	}
	if v, ok := style.Properties.Get(svgstyle.PropStopOpacity); ok {
		stop.Color = svgstyle.MultiplyAlpha(stop.Color, float64(v.(svgstyle.Number)))
	}
	return stop
}

// Registry stores the gradient definitions of a document, by id.
type Registry map[string]*Spec

// Add registers `spec`, returning false if its id is empty or
// already used. The first definition of an id wins.
func (reg Registry) Add(spec *Spec) bool {
	if spec.ID == "" {
		return false
	}
	if _, has := reg[spec.ID]; has {
		return false
	}
	reg[spec.ID] = spec
	return true
}

// Resolved is a gradient with its inheritance chain applied and its
// coordinates resolved. It must not be modified, since it is shared
// by every reference to its id.
type Resolved struct {
	ID   string
	Kind Kind
	// Points are x1, y1, x2, y2 (and 0) for linear gradients,
	// and cx, cy, fx, fy, r for radial ones. They are fractions
	// of the bounding box for ObjectBoundingBox units.
	Points    [5]float64
	Stops     []StopSpec
	Transform svgstyle.Transform
	Spread    Spread
	Units     Units
}

// Rasterx converts the gradient to the rasterx representation, using `bounds`
// as the bounding box of the painted object.
func (g *Resolved) Rasterx(bounds svgunit.Bounds) rasterx.Gradient {
	stops := make([]rasterx.GradStop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = rasterx.GradStop{StopColor: s.Color, Offset: s.Offset, Opacity: 1}
	}
	out := rasterx.Gradient{
		Points:   g.Points,
		Stops:    stops,
		Matrix:   g.Transform.Matrix(),
		IsRadial: g.Kind == Radial,
	}
	out.Bounds.X, out.Bounds.Y, out.Bounds.W, out.Bounds.H = bounds.X, bounds.Y, bounds.W, bounds.H
	switch g.Spread {
	case ReflectSpread:
		out.Spread = rasterx.ReflectSpread
	case RepeatSpread:
		out.Spread = rasterx.RepeatSpread
	default:
		out.Spread = rasterx.PadSpread
	}
	if g.Units == UserSpaceOnUse {
		out.Units = rasterx.UserSpaceOnUse
	} else {
		out.Units = rasterx.ObjectBoundingBox
	}
	return out
}
