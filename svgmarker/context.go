package svgmarker

import (
	"math"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgpath"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/srwiley/rasterx"
)

// Position is the place of a marker on a path.
type Position uint8

const (
	Start Position = iota
	Mid
	End
)

func (p Position) String() string {
	switch p {
	case Start:
		return "start"
	case Mid:
		return "mid"
	case End:
		return "end"
	default:
		return "<unknown Position>"
	}
}

// Context is the set of markers referenced by one element, with the
// paints visible to their content through context-fill and context-stroke.
type Context struct {
	Start, Mid, End *Spec // nil for no marker

	ContextFill   svgstyle.Paint
	ContextStroke svgstyle.Paint
	StrokeWidth   float64
}

// Resolve looks up the markers declared by `style`. The marker shorthand
// provides the positions not explicitly set. References to unknown ids
// are dropped. It returns nil if no marker is found.
func Resolve(style svgstyle.EffectiveStyle, reg Registry) *Context {
	start, mid, end := style.MarkerRefs()
	lookup := func(id string) *Spec {
		if id == "" {
			return nil
		}
		spec, ok := reg[id]
		if !ok {
			logx.Logger().Debug("svgmarker: unknown marker, omitted", "id", id)
			return nil
		}
		return spec
	}
	out := Context{Start: lookup(start), Mid: lookup(mid), End: lookup(end)}
	if out.Start == nil && out.Mid == nil && out.End == nil {
		return nil
	}
	out.ContextFill = usedPaint(style.Fill(), style)
	out.ContextStroke = usedPaint(style.Stroke(), style)
	out.StrokeWidth = style.StrokeWidth()
	return &out
}

// usedPaint resolves currentColor against the referencing element,
// so that marker content never sees it.
func usedPaint(p svgstyle.Paint, style svgstyle.EffectiveStyle) svgstyle.Paint {
	if p.Kind == svgstyle.PaintCurrentColor {
		return svgstyle.Paint{Kind: svgstyle.PaintColor, Color: style.CurrentColor()}
	}
	if p.Fallback != nil && p.Fallback.Kind == svgstyle.PaintCurrentColor {
		fb := usedPaint(*p.Fallback, style)
		p.Fallback = &fb
	}
	return p
}

// Instance is one marker placed on a vertex.
type Instance struct {
	Position Position
	Spec     *Spec
	Vertex   svgpath.Vertex
	Angle    float64 // orientation, in degrees
	// Transform maps the marker content to the user space of the path.
	Transform rasterx.Matrix2D
}

// Place returns the marker instances for the vertices of a path,
// in start, mid, end order.
func (c *Context) Place(markers svgpath.Markers) []Instance {
	if c == nil {
		return nil
	}
	var out []Instance
	add := func(pos Position, spec *Spec, vertices []svgpath.Vertex) {
		if spec == nil {
			return
		}
		for _, v := range vertices {
			out = append(out, c.instance(pos, spec, v))
		}
	}
	add(Start, c.Start, markers.Start)
	add(Mid, c.Mid, markers.Mid)
	add(End, c.End, markers.End)
	return out
}

// angle returns the orientation of `spec` at `v`.
func angle(pos Position, spec *Spec, v svgpath.Vertex) float64 {
	switch spec.Orient.Kind {
	case OrientAngle:
		return spec.Orient.Degrees
	case OrientAuto:
		return v.Bisector()
	case OrientAutoStartReverse:
		if pos == Start {
			return v.Bisector() + 180
		}
		return v.Bisector()
	default:
		return 0
	}
}

// scale returns the viewBox to marker viewport scaling factors.
// Without viewBox, marker content uses the marker units directly.
func (spec *Spec) scale() (sx, sy float64) {
	if spec.ViewBox == nil {
		return 1, 1
	}
	size := spec.EffectiveSize()
	sx, sy = size.Width/spec.ViewBox.W, size.Height/spec.ViewBox.H
	if spec.PreserveAspect {
		m := math.Min(sx, sy)
		sx, sy = m, m
	}
	return sx, sy
}

func (c *Context) instance(pos Position, spec *Spec, v svgpath.Vertex) Instance {
	out := Instance{Position: pos, Spec: spec, Vertex: v, Angle: angle(pos, spec, v)}
	sx, sy := spec.scale()
	if spec.Units == StrokeWidth {
		sx, sy = sx*c.StrokeWidth, sy*c.StrokeWidth
	}
	out.Transform = rasterx.Identity.
		Translate(v.X, v.Y).
		Rotate(out.Angle*math.Pi/180).
		Scale(sx, sy).
		Translate(-spec.RefX, -spec.RefY)
	return out
}
