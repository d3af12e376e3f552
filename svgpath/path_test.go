package svgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkersThresholds(t *testing.T) {
	p, err := Parse("M3 4", nil)
	require.NoError(t, err)
	require.Len(t, p.Commands, 1)
	assert.Equal(t, MoveTo, p.Commands[0].Kind)
	m := p.Markers()
	assert.Len(t, p.Vertices, 1)
	assert.Equal(t, []Vertex{{Point: Point{3, 4}}}, m.Start)
	assert.Empty(t, m.Mid)
	assert.Empty(t, m.End)

	p, err = Parse("M0 0 L10 0", nil)
	require.NoError(t, err)
	m = p.Markers()
	assert.Len(t, m.Start, 1)
	assert.Len(t, m.End, 1)
	assert.Len(t, m.Mid, 0)
	assert.Equal(t, Point{10, 0}, m.End[0].Point)

	p, err = Parse("M0,0 L10,0 L10,10 Z", nil)
	require.NoError(t, err)
	m = p.Markers()
	assert.Len(t, m.Start, 1)
	assert.Len(t, m.Mid, 2)
	assert.Len(t, m.End, 1)
	assert.Equal(t, Point{0, 0}, m.End[0].Point)
}

func TestVertexAngles(t *testing.T) {
	p, err := Parse("M0,0 L10,0 L10,10", nil)
	require.NoError(t, err)
	v := p.Vertices
	require.Len(t, v, 3)
	// start : leaving along +x
	assert.InDelta(t, 0, v[0].In, 1e-9)
	assert.InDelta(t, 0, v[0].Out, 1e-9)
	// corner : in along +x, out along +y
	assert.InDelta(t, 0, v[1].In, 1e-9)
	assert.InDelta(t, 90, v[1].Out, 1e-9)
	assert.InDelta(t, 45, v[1].Bisector(), 1e-9)
	// end
	assert.InDelta(t, 90, v[2].In, 1e-9)
	assert.InDelta(t, 90, v[2].Out, 1e-9)
}

func TestVertexAnglesCurves(t *testing.T) {
	p, err := Parse("M0 0 C 0 10 10 10 10 0", nil)
	require.NoError(t, err)
	v := p.Vertices
	assert.InDelta(t, 90, v[0].Out, 1e-9)
	assert.InDelta(t, -90, v[1].In, 1e-9)

	// smooth quadratic reflects the previous control point
	p, err = Parse("M0 0 Q 5 5 10 0 T 20 0", nil)
	require.NoError(t, err)
	assert.InDelta(t, -45, p.Vertices[1].Out, 1e-9)
}

func TestOutline(t *testing.T) {
	p, err := Parse("M0 0 L10 0 Q 15 5 10 10 S 0 10 0 0 Z", nil)
	require.NoError(t, err)
	out := p.Outline()
	require.Len(t, out, 5)
	assert.Equal(t, OpMove{0, 0}, out[0])
	assert.Equal(t, OpLine{X: 10 * 64, Y: 0}, out[1])
	assert.IsType(t, OpQuad{}, out[2])
	// no previous cubic : the first control point is the current point
	cu := out[3].(OpCubic)
	assert.Equal(t, toFixedP(10, 10), cu[0])
	assert.Equal(t, OpClose{}, out[4])
}

func TestOutlineArc(t *testing.T) {
	p, err := Parse("M0 0 A 10 10 0 0 1 20 0", nil)
	require.NoError(t, err)
	out := p.Outline()
	require.True(t, len(out) >= 2)
	for _, op := range out[1:] {
		assert.IsType(t, OpCubic{}, op)
	}
	last := out[len(out)-1].(OpCubic)
	assert.Equal(t, toFixedP(20, 0), last[2])

	// half circle above the x axis (y going down)
	bb := out.Bounds()
	assert.InDelta(t, 0, bb.X, 0.05)
	assert.InDelta(t, 20, bb.W, 0.05)
	assert.InDelta(t, 10, bb.H, 0.05)

	// degenerate arcs
	p, err = Parse("M0 0 A 0 10 0 0 1 20 0 A 5 5 0 0 1 20 0", nil)
	require.NoError(t, err)
	out = p.Outline()
	assert.Equal(t, Outline{OpMove{}, OpLine(toFixedP(20, 0))}, out)
}

func TestBounds(t *testing.T) {
	p, err := Parse("M10 20 L30 20 L30 60 Z", nil)
	require.NoError(t, err)
	bb := p.Outline().Bounds()
	assert.Equal(t, 10., bb.X)
	assert.Equal(t, 20., bb.Y)
	assert.Equal(t, 20., bb.W)
	assert.Equal(t, 40., bb.H)

	// the control point lies outside the curve
	p, err = Parse("M0 0 Q 5 10 10 0", nil)
	require.NoError(t, err)
	bb = p.Outline().Bounds()
	assert.InDelta(t, 5, bb.H, 1e-9)

	p, err = Parse("M0 0 C 0 10 10 10 10 0", nil)
	require.NoError(t, err)
	bb = p.Outline().Bounds()
	assert.InDelta(t, 0, bb.X, 1e-9)
	assert.InDelta(t, 10, bb.W, 1e-9)
	assert.InDelta(t, 7.5, bb.H, 1e-9)

	// both extrema of an S shaped cubic
	p, err = Parse("M0 0 C 10 20 -10 -20 0 0", nil)
	require.NoError(t, err)
	bb = p.Outline().Bounds()
	assert.Greater(t, bb.W, 0.)
	assert.InDelta(t, -bb.Y, bb.Y+bb.H, 1e-6)

	assert.Equal(t, 0., Outline(nil).Bounds().W)
}

func TestShapes(t *testing.T) {
	r := Rect(1, 2, 10, 20, 0, 0)
	assert.Equal(t, "M1,2 H11 V22 H1 Z", r.String())
	assert.Len(t, r.Markers().Mid, 3)

	r = Rect(0, 0, 10, 20, 2, 0)
	assert.Equal(t, EllipticalArc, r.Commands[2].Kind)
	assert.Equal(t, []float64{2, 2, 0, 0, 1, 10, 2}, r.Commands[2].Params)

	r = Rect(0, 0, 10, 20, 8, 30)
	assert.Equal(t, []float64{5, 10, 0, 0, 1, 10, 10}, r.Commands[2].Params)

	assert.Empty(t, Rect(0, 0, 0, 10, 0, 0).Commands)

	e := Ellipse(10, 10, 5, 5)
	bb := e.Outline().Bounds()
	assert.InDelta(t, 5, bb.X, 0.05)
	assert.InDelta(t, 10, bb.W, 0.05)
	assert.Empty(t, Ellipse(0, 0, 0, 1).Commands)

	l := Line(0, 0, 3, 4)
	assert.Equal(t, "M0,0 L3,4", l.String())

	poly := Polyline(ParsePoints("0,0 10,0 10,10 5"), true)
	assert.Equal(t, "M0,0 L10,0 L10,10 Z", poly.String())
	assert.Empty(t, Polyline(nil, false).Commands)
}
