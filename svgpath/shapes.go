package svgpath

import (
	"math"

	"github.com/benoitkugler/svgmodel/svgunit"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an off-axis ellipse.
const maxDx float64 = math.Pi / 8

// build returns the path made of the absolute commands added by `fn`.
func build(fn func(pr *parser)) Path {
	var pr parser
	fn(&pr)
	return Path{Commands: pr.commands, Vertices: vertices(pr.commands)}
}

// Rect returns the outline of a rectangle, with optional rounded corners.
// A zero radius on one axis takes the value of the other, and radii are
// clamped to half the size of the rectangle.
// An empty rectangle (zero or negative size) has no commands.
func Rect(x, y, w, h, rx, ry float64) Path {
	if w <= 0 || h <= 0 {
		return Path{}
	}
	rx, ry = math.Max(rx, 0), math.Max(ry, 0)
	if rx == 0 {
		rx = ry
	} else if ry == 0 {
		ry = rx
	}
	rx, ry = math.Min(rx, w/2), math.Min(ry, h/2)
	if rx == 0 || ry == 0 {
		return build(func(pr *parser) {
			pr.emit(MoveTo, false, []float64{x, y})
			pr.emit(HorizontalLineTo, false, []float64{x + w})
			pr.emit(VerticalLineTo, false, []float64{y + h})
			pr.emit(HorizontalLineTo, false, []float64{x})
			pr.emit(ClosePath, false, nil)
		})
	}
	return build(func(pr *parser) {
		pr.emit(MoveTo, false, []float64{x + rx, y})
		pr.emit(HorizontalLineTo, false, []float64{x + w - rx})
		pr.emit(EllipticalArc, false, []float64{rx, ry, 0, 0, 1, x + w, y + ry})
		pr.emit(VerticalLineTo, false, []float64{y + h - ry})
		pr.emit(EllipticalArc, false, []float64{rx, ry, 0, 0, 1, x + w - rx, y + h})
		pr.emit(HorizontalLineTo, false, []float64{x + rx})
		pr.emit(EllipticalArc, false, []float64{rx, ry, 0, 0, 1, x, y + h - ry})
		pr.emit(VerticalLineTo, false, []float64{y + ry})
		pr.emit(EllipticalArc, false, []float64{rx, ry, 0, 0, 1, x + rx, y})
		pr.emit(ClosePath, false, nil)
	})
}

// Ellipse returns the outline of an ellipse, made of two half arcs.
// Circles use rx = ry. A zero or negative radius has no commands.
func Ellipse(cx, cy, rx, ry float64) Path {
	if rx <= 0 || ry <= 0 {
		return Path{}
	}
	return build(func(pr *parser) {
		pr.emit(MoveTo, false, []float64{cx + rx, cy})
		pr.emit(EllipticalArc, false, []float64{rx, ry, 0, 0, 1, cx - rx, cy})
		pr.emit(EllipticalArc, false, []float64{rx, ry, 0, 0, 1, cx + rx, cy})
		pr.emit(ClosePath, false, nil)
	})
}

// Line returns a one segment path.
func Line(x1, y1, x2, y2 float64) Path {
	return build(func(pr *parser) {
		pr.emit(MoveTo, false, []float64{x1, y1})
		pr.emit(LineTo, false, []float64{x2, y2})
	})
}

// Polyline returns the path joining `points`, closed
// for polygons.
func Polyline(points []Point, closed bool) Path {
	if len(points) == 0 {
		return Path{}
	}
	return build(func(pr *parser) {
		pr.emit(MoveTo, false, []float64{points[0].X, points[0].Y})
		for _, p := range points[1:] {
			pr.emit(LineTo, false, []float64{p.X, p.Y})
		}
		if closed {
			pr.emit(ClosePath, false, nil)
		}
	})
}

// ParsePoints reads the `points` attribute of polyline and polygon elements.
// A trailing odd coordinate is ignored. Malformed numbers resolve to 0.
func ParsePoints(text string) []Point {
	values, _ := svgunit.ParseList(text)
	out := make([]Point, len(values)/2)
	for i := range out {
		out[i] = Point{values[2*i], values[2*i+1]}
	}
	return out
}

// addArc approximates the arc described by `points` (with absolute end point)
// and centered at (cx, cy), starting from (px, py).
func addArc(points []float64, cx, cy, px, py float64) []segment {
	rotX := points[2] * math.Pi / 180 // Convert degress to radians
	largeArc := points[3] != 0
	sweep := points[4] != 0
	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(points[6]-cy, points[5]-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// Approximate ellipse using cubic bezeir splines
	etaStart := math.Atan2(math.Sin(startAngle)/points[1], math.Cos(startAngle)/points[0])
	etaEnd := math.Atan2(math.Sin(endAngle)/points[1], math.Cos(endAngle)/points[0])
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// This check might be needed if the center point of the elipse is
	// at the midpoint of the start and end lines.
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := px, py
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(points[0], points[1], sinTheta, cosTheta, etaStart, cx, cy)
	out := make([]segment, 0, segs)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = points[5], points[6] // Just makes the end point exact; no roundoff error
		} else {
			px, py = ellipsePointAt(points[0], points[1], sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(points[0], points[1], sinTheta, cosTheta, eta, cx, cy)
		out = append(out, segment{op: opCubic, pts: [3]Point{
			{lx + alpha*ldx, ly + alpha*ldy},
			{px - alpha*dx, py - alpha*dy},
			{px, py},
		}})
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	return out
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePrime(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the Ellipse if it exists. If it does not exist,
// the radius values will be increased minimally for a solution to be possible
// while preserving the ra to rb ratio.  ra and rb arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that ra = rb
	nx *= *rb / *ra // Now the ellipse is a circle radius rb; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// Requested ellipse does not exist; scale ra, rb to fit. Length of
		// span is greater than max width of ellipse, must scale *ra, *rb
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse scale
	cx *= *ra / *rb
	// Reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
