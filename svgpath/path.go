package svgpath

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCubic
	opClose
)

// Operation groups the absolute primitives of an Outline.
type Operation interface {
	command() opKind
}

type OpMove fixed.Point26_6

type OpLine fixed.Point26_6

type OpQuad [2]fixed.Point26_6

type OpCubic [3]fixed.Point26_6

type OpClose struct{}

func (OpMove) command() opKind  { return opMove }
func (OpLine) command() opKind  { return opLine }
func (OpQuad) command() opKind  { return opQuad }
func (OpCubic) command() opKind { return opCubic }
func (OpClose) command() opKind { return opClose }

// Outline is a sequence of absolute primitives, suitable for
// painting drivers : smooth curves are expanded and arcs are
// approximated by cubic beziers.
type Outline []Operation

// ToSVGPath returns a string representation of the outline.
func (p Outline) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case OpMove:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case OpLine:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case OpQuad:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case OpCubic:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case OpClose:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

func (p Outline) String() string {
	return p.ToSVGPath()
}

// Start starts a new curve at the given point.
func (p *Outline) Start(a fixed.Point26_6) {
	*p = append(*p, OpMove{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Outline) Line(b fixed.Point26_6) {
	*p = append(*p, OpLine{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Outline) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, OpQuad{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Outline) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, OpCubic{b, c, d})
}

// Stop joins the ends of the path
func (p *Outline) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, OpClose{})
	}
}

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// segment is the floating point version of an outline primitive.
// For opClose, pts[0] is the start of the closed subpath.
type segment struct {
	op  opKind
	pts [3]Point
}

// end returns the last point of the segment
func (s segment) end() Point {
	switch s.op {
	case opQuad:
		return s.pts[1]
	case opCubic:
		return s.pts[2]
	default:
		return s.pts[0]
	}
}

// walker converts commands into absolute segments, keeping track of
// the control points reflected by smooth curves.
type walker struct {
	prevKind  Kind
	prevCtrl  Point // last control point of the previous curve
	hasPrev   bool
	subpathAt Point
}

func reflect(ctrl, around Point) Point {
	return Point{2*around.X - ctrl.X, 2*around.Y - ctrl.Y}
}

// segments returns the primitives drawn by `c`.
func (w *walker) segments(c Command) []segment {
	a := c.absParams()
	s := c.Start
	var (
		out  []segment
		ctrl = c.End
	)
	switch c.Kind {
	case MoveTo:
		w.subpathAt = c.End
		out = []segment{{op: opMove, pts: [3]Point{c.End}}}
	case LineTo, HorizontalLineTo, VerticalLineTo:
		out = []segment{{op: opLine, pts: [3]Point{c.End}}}
	case ClosePath:
		out = []segment{{op: opClose, pts: [3]Point{w.subpathAt}}}
	case CubicCurveTo:
		c1, c2 := Point{a[0], a[1]}, Point{a[2], a[3]}
		out = []segment{{op: opCubic, pts: [3]Point{c1, c2, c.End}}}
		ctrl = c2
	case SmoothCubicCurveTo:
		c1 := s
		if w.hasPrev && (w.prevKind == CubicCurveTo || w.prevKind == SmoothCubicCurveTo) {
			c1 = reflect(w.prevCtrl, s)
		}
		c2 := Point{a[0], a[1]}
		out = []segment{{op: opCubic, pts: [3]Point{c1, c2, c.End}}}
		ctrl = c2
	case QuadraticCurveTo:
		q := Point{a[0], a[1]}
		out = []segment{{op: opQuad, pts: [3]Point{q, c.End}}}
		ctrl = q
	case SmoothQuadraticCurveTo:
		q := s
		if w.hasPrev && (w.prevKind == QuadraticCurveTo || w.prevKind == SmoothQuadraticCurveTo) {
			q = reflect(w.prevCtrl, s)
		}
		out = []segment{{op: opQuad, pts: [3]Point{q, c.End}}}
		ctrl = q
	case EllipticalArc:
		out = arcSegments(a, s)
	}
	w.prevKind, w.prevCtrl, w.hasPrev = c.Kind, ctrl, true
	return out
}

// arcSegments approximates an elliptical arc command (with absolute parameters)
// starting at `s`. Degenerate arcs are drawn as lines, or omitted when
// the end point is the start point.
func arcSegments(a []float64, s Point) []segment {
	end := Point{a[5], a[6]}
	if end == s {
		return nil
	}
	rx, ry := math.Abs(a[0]), math.Abs(a[1])
	if rx == 0 || ry == 0 {
		return []segment{{op: opLine, pts: [3]Point{end}}}
	}
	points := []float64{rx, ry, a[2], a[3], a[4], a[5], a[6]}
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, s.X, s.Y,
		end.X, end.Y, points[4] == 0, points[3] == 0)
	return addArc(points, cx, cy, s.X, s.Y)
}

// Outline converts the path to absolute primitives.
func (p Path) Outline() Outline {
	var (
		w   walker
		out Outline
	)
	for _, c := range p.Commands {
		for _, seg := range w.segments(c) {
			switch seg.op {
			case opMove:
				out.Start(toFixedP(seg.pts[0].X, seg.pts[0].Y))
			case opLine:
				out.Line(toFixedP(seg.pts[0].X, seg.pts[0].Y))
			case opQuad:
				out.QuadBezier(toFixedP(seg.pts[0].X, seg.pts[0].Y), toFixedP(seg.pts[1].X, seg.pts[1].Y))
			case opCubic:
				out.CubeBezier(toFixedP(seg.pts[0].X, seg.pts[0].Y), toFixedP(seg.pts[1].X, seg.pts[1].Y),
					toFixedP(seg.pts[2].X, seg.pts[2].Y))
			case opClose:
				out.Stop(true)
			}
		}
	}
	return out
}
