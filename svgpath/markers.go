package svgpath

import "math"

// Vertex is the anchor point of a command, with the direction
// of the path when entering and leaving it, in degrees.
type Vertex struct {
	Point
	In, Out float64
}

// Bisector returns the mean direction of In and Out, used
// to orient mid markers.
func (v Vertex) Bisector() float64 {
	in, out := v.In*math.Pi/180, v.Out*math.Pi/180
	x, y := math.Cos(in)+math.Cos(out), math.Sin(in)+math.Sin(out)
	if math.Abs(x) < 1e-12 && math.Abs(y) < 1e-12 {
		return v.In
	}
	return math.Atan2(y, x) * 180 / math.Pi
}

// Markers splits the vertices of a path into the points
// receiving start, mid and end markers.
type Markers struct {
	Start, Mid, End []Vertex
}

// Markers classifies the vertices of the path : the first one
// is a start point, the last one an end point (for at least two vertices)
// and the others are mid points (for at least three vertices).
func (p Path) Markers() Markers {
	var out Markers
	n := len(p.Vertices)
	if n >= 1 {
		out.Start = p.Vertices[:1]
	}
	if n >= 2 {
		out.End = p.Vertices[n-1:]
	}
	if n >= 3 {
		out.Mid = p.Vertices[1 : n-1]
	}
	return out
}

func sub(a, b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

func isZero(p Point) bool { return p.X == 0 && p.Y == 0 }

// firstNonZero returns the first non null vector
func firstNonZero(vs ...Point) (Point, bool) {
	for _, v := range vs {
		if !isZero(v) {
			return v, true
		}
	}
	return Point{}, false
}

// directions returns the start and end tangents of the segment
// drawn from `from`.
func (s segment) directions(from Point) (start, end Point, ok bool) {
	switch s.op {
	case opLine, opClose:
		d := sub(s.pts[0], from)
		return d, d, !isZero(d)
	case opQuad:
		st, ok1 := firstNonZero(sub(s.pts[0], from), sub(s.pts[1], from))
		en, ok2 := firstNonZero(sub(s.pts[1], s.pts[0]), sub(s.pts[1], from))
		return st, en, ok1 && ok2
	case opCubic:
		st, ok1 := firstNonZero(sub(s.pts[0], from), sub(s.pts[1], from), sub(s.pts[2], from))
		en, ok2 := firstNonZero(sub(s.pts[2], s.pts[1]), sub(s.pts[2], s.pts[0]), sub(s.pts[2], from))
		return st, en, ok1 && ok2
	default:
		return Point{}, Point{}, false
	}
}

func angle(v Point) float64 { return math.Atan2(v.Y, v.X) * 180 / math.Pi }

// commandTangents holds the directions at the start and the end of a command,
// when defined
type commandTangents struct {
	start, end float64
	ok         bool
}

// vertices returns one vertex per command, located at its end point.
func vertices(commands []Command) []Vertex {
	var w walker
	tangents := make([]commandTangents, len(commands))
	for i, c := range commands {
		from := c.Start
		var ct commandTangents
		for _, seg := range w.segments(c) {
			st, en, ok := seg.directions(from)
			from = seg.end()
			if !ok {
				continue
			}
			if !ct.ok {
				ct.start = angle(st)
			}
			ct.end, ct.ok = angle(en), true
		}
		tangents[i] = ct
	}

	out := make([]Vertex, len(commands))
	for i, c := range commands {
		v := Vertex{Point: c.End}
		in, hasIn := tangents[i].end, tangents[i].ok && c.Kind != MoveTo
		var (
			outA   float64
			hasOut bool
		)
		if i+1 < len(commands) && commands[i+1].Kind != MoveTo && tangents[i+1].ok {
			outA, hasOut = tangents[i+1].start, true
		}
		switch {
		case hasIn && hasOut:
			v.In, v.Out = in, outA
		case hasIn:
			v.In, v.Out = in, in
		case hasOut:
			v.In, v.Out = outA, outA
		}
		out[i] = v
	}
	return out
}
