package svgpath

import (
	"math"

	"github.com/benoitkugler/svgmodel/svgunit"
	"golang.org/x/image/math/fixed"
)

// segmentControls holds the control values of one bezier segment
// (2, 3 or 4 of them) on each axis.
type segmentControls struct {
	xs, ys []float64
}

func controlsOf(points ...fixed.Point26_6) segmentControls {
	out := segmentControls{xs: make([]float64, len(points)), ys: make([]float64, len(points))}
	for i, p := range points {
		out.xs[i], out.ys[i] = fixedTof(p)
	}
	return out
}

// evalBezier evaluates the one dimensional bezier with control
// values `p` at `t`, by repeated interpolation.
func evalBezier(p []float64, t float64) float64 {
	var buf [4]float64
	work := buf[:copy(buf[:], p)]
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] += (work[i+1] - work[i]) * t
		}
	}
	return work[0]
}

// stationary returns the parameters in ]0, 1[ where the derivative
// of the bezier with control values `p` vanishes.
func stationary(p []float64) []float64 {
	var a, b, c float64 // derivative is a t^2 + b t + c
	switch len(p) {
	case 3:
		b, c = 2*(p[0]-2*p[1]+p[2]), 2*(p[1]-p[0])
	case 4:
		a = 3 * (p[3] - 3*p[2] + 3*p[1] - p[0])
		b = 6 * (p[2] - 2*p[1] + p[0])
		c = 3 * (p[1] - p[0])
	default:
		return nil
	}
	var roots []float64
	if a == 0 {
		if b != 0 {
			roots = append(roots, -c/b)
		}
	} else if disc := b*b - 4*a*c; disc >= 0 {
		sq := math.Sqrt(disc)
		roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
	}
	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// box accumulates extremal points
type box struct {
	minX, minY, maxX, maxY float64
}

func emptyBox() box {
	return box{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
}

func (b *box) add(x, y float64) {
	b.minX = math.Min(x, b.minX)
	b.minY = math.Min(y, b.minY)
	b.maxX = math.Max(x, b.maxX)
	b.maxY = math.Max(y, b.maxY)
}

// addSegment adds the end point and the axis extrema of a segment.
// The start point is already in the box.
func (b *box) addSegment(seg segmentControls) {
	last := len(seg.xs) - 1
	b.add(seg.xs[last], seg.ys[last])
	for _, t := range append(stationary(seg.xs), stationary(seg.ys)...) {
		b.add(evalBezier(seg.xs, t), evalBezier(seg.ys, t))
	}
}

// Bounds returns the tight bounding box of the outline.
// An empty outline has zero bounds.
func (p Outline) Bounds() svgunit.Bounds {
	var (
		bb      = emptyBox()
		current fixed.Point26_6
		start   fixed.Point26_6
	)
	for _, op := range p {
		switch op := op.(type) {
		case OpMove:
			current, start = fixed.Point26_6(op), fixed.Point26_6(op)
			bb.add(fixedTof(current))
		case OpLine:
			bb.addSegment(controlsOf(current, fixed.Point26_6(op)))
			current = fixed.Point26_6(op)
		case OpQuad:
			bb.addSegment(controlsOf(current, op[0], op[1]))
			current = op[1]
		case OpCubic:
			bb.addSegment(controlsOf(current, op[0], op[1], op[2]))
			current = op[2]
		case OpClose:
			current = start
		}
	}
	if math.IsInf(bb.minX, 0) {
		return svgunit.Bounds{}
	}
	return svgunit.Bounds{X: bb.minX, Y: bb.minY, W: bb.maxX - bb.minX, H: bb.maxY - bb.minY}
}
