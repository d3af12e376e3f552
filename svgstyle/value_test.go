package svgstyle

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected color.NRGBA
	}{
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#F00a", color.NRGBA{255, 0, 0, 0xaa}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 255}},
		{"#ff000080", color.NRGBA{255, 0, 0, 0x80}},
		{"rgb(255, 0, 0)", color.NRGBA{255, 0, 0, 255}},
		{"rgb(100%,0%,0%)", color.NRGBA{255, 0, 0, 255}},
		{"rgba(0,0,255,0.5)", color.NRGBA{0, 0, 255, 128}},
		{"rgb(300, -5, 0)", color.NRGBA{255, 0, 0, 255}},
		{"hsl(120, 100%, 50%)", color.NRGBA{0, 255, 0, 255}},
		{"hsla(0, 100%, 50%, 0)", color.NRGBA{255, 0, 0, 0}},
		{"Blue", color.NRGBA{0, 0, 255, 255}},
		{" transparent ", color.NRGBA{}},
	} {
		c, err := ParseColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.expected, c, test.in)
	}

	for _, in := range []string{"", "bogus", "#12", "#gggggg", "rgb(1,2)", "hsl(a, b, c)"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestMultiplyAlpha(t *testing.T) {
	c := MultiplyAlpha(color.NRGBA{10, 20, 30, 200}, 0.5)
	assert.Equal(t, color.NRGBA{10, 20, 30, 100}, c)
	c = MultiplyAlpha(color.NRGBA{10, 20, 30, 200}, 3)
	assert.Equal(t, uint8(200), c.A)
}

func TestParsePaint(t *testing.T) {
	p, err := ParsePaint("url(#g)")
	require.NoError(t, err)
	assert.Equal(t, Paint{Kind: PaintGradient, Ref: "g"}, p)
	assert.Equal(t, "url(#g)", p.String())

	p, err = ParsePaint("url(#g) none")
	require.NoError(t, err)
	require.NotNil(t, p.Fallback)
	assert.Equal(t, PaintNone, p.Fallback.Kind)

	p, err = ParsePaint("currentColor")
	require.NoError(t, err)
	assert.Equal(t, PaintCurrentColor, p.Kind)

	p, err = ParsePaint("#0000ff")
	require.NoError(t, err)
	assert.Equal(t, "#0000ffff", p.String())

	for _, in := range []string{"url(#)", "url(#a", "url(#a) url(#b)", "url(http://x/y.svg#a)", "notacolor"} {
		_, err = ParsePaint(in)
		assert.Error(t, err, in)
	}

	_, err = ParseValue(PropStopColor, "url(#a)", nil)
	assert.Error(t, err)
	_, err = ParseValue(PropFill, "inherit", nil)
	assert.Error(t, err)
}

func TestParseDashes(t *testing.T) {
	d, err := ParseDashes("none", nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDashes("0, 0", nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDashes("4,2", nil)
	require.NoError(t, err)
	assert.Equal(t, Dashes{4, 2}, d)

	_, err = ParseDashes("4 -2", nil)
	assert.Error(t, err)
}

func TestParseTransform(t *testing.T) {
	tr, err := ParseTransform("translate(10 20) scale(2)")
	require.NoError(t, err)
	assert.Equal(t, Transform{
		{Kind: Translate, Args: []float64{10, 20}},
		{Kind: Scale, Args: []float64{2}},
	}, tr)
	assert.Equal(t, "translate(10 20) scale(2)", tr.String())

	m := tr.Matrix()
	assert.Equal(t, 2., m.A)
	assert.Equal(t, 2., m.D)
	assert.Equal(t, 10., m.E)
	assert.Equal(t, 20., m.F)

	tr, err = ParseTransform("rotate(90)")
	require.NoError(t, err)
	m = tr.Matrix()
	assert.InDelta(t, 0, m.A, 1e-9)
	assert.InDelta(t, 1, m.B, 1e-9)
	assert.InDelta(t, -1, m.C, 1e-9)

	tr, err = ParseTransform("matrix(1,0,0,1,5,6), skewX(45)")
	require.NoError(t, err)
	m = tr.Matrix()
	assert.Equal(t, 5., m.E)
	assert.InDelta(t, math.Tan(math.Pi/4), m.C, 1e-9)

	assert.Equal(t, 1., Transform(nil).Matrix().A)

	for _, in := range []string{"rotate(1, 2)", "translate()", "spin(3)", "matrix(1 2 3)", "skewX(a)"} {
		_, err = ParseTransform(in)
		assert.Error(t, err, in)
	}
}

func TestTransformThen(t *testing.T) {
	a := Transform{{Kind: Translate, Args: []float64{1, 0}}}
	b := Transform{{Kind: Scale, Args: []float64{3}}}
	ab := a.Then(b)
	assert.Len(t, ab, 2)
	assert.Len(t, a, 1)
	assert.Equal(t, 3., ab.Matrix().A)
	assert.Equal(t, 1., ab.Matrix().E)
}

func TestLookupProperty(t *testing.T) {
	p, ok := LookupProperty(" Stroke-Width ")
	assert.True(t, ok)
	assert.Equal(t, PropStrokeWidth, p)
	_, ok = LookupProperty("x")
	assert.False(t, ok)
}
