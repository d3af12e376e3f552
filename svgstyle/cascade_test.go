package svgstyle

import (
	"image/color"
	"testing"

	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	green = color.NRGBA{0, 128, 0, 255}
)

func element(tag string, attrs ...string) *svgtree.Element {
	el := &svgtree.Element{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attrs = append(el.Attrs, svgtree.Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return el
}

func TestCascadePrecedence(t *testing.T) {
	sheet, err := ParseSheet(`rect { fill: red } .a { fill: blue }`, nil)
	require.NoError(t, err)
	c := Cascade{Sheet: sheet}

	st := c.Apply(element("rect", "class", "a", "style", "fill:green"))
	assert.Equal(t, green, st.Fill().Color)

	st = c.Apply(element("rect", "class", "a"))
	assert.Equal(t, blue, st.Fill().Color)

	st = c.Apply(element("rect"))
	assert.Equal(t, red, st.Fill().Color)
}

func TestCascadeTiers(t *testing.T) {
	sheet, err := ParseSheet(`
		.a { stroke: red; stroke-width: 3 }
		.b { stroke: blue }
	`, nil)
	require.NoError(t, err)
	c := Cascade{Sheet: sheet}

	// classes in attribute order, properties merged one by one
	st := c.Apply(element("path", "class", "b a"))
	assert.Equal(t, red, st.Stroke().Color)
	assert.Equal(t, 3., st.StrokeWidth())

	st = c.Apply(element("path", "class", "a b"))
	assert.Equal(t, blue, st.Stroke().Color)
	assert.Equal(t, 3., st.StrokeWidth())

	// presentation attribute over class, inline style last
	st = c.Apply(element("path", "style", "stroke-width: 5", "class", "a", "stroke-width", "4"))
	assert.Equal(t, 5., st.StrokeWidth())
	st = c.Apply(element("path", "class", "a", "stroke-width", "4"))
	assert.Equal(t, 4., st.StrokeWidth())
}

func TestSheetSelectorCopies(t *testing.T) {
	sheet, err := ParseSheet(`.a, .b { fill: red } g > rect { fill: blue } @media print { .c { fill: green } }`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{".a", ".b"}, sheet.Selectors())

	ra := sheet.rules[".a"]
	ra.Set(PropStroke, Paint{Kind: PaintNone})
	_, has := sheet.rules[".b"].Get(PropStroke)
	assert.False(t, has)

	var nilSheet *Sheet
	_, ok := nilSheet.Rule("rect")
	assert.False(t, ok)
}

func TestSheetMerge(t *testing.T) {
	s1, err := ParseSheet(`.a { fill: red; stroke: red }`, nil)
	require.NoError(t, err)
	s2, err := ParseSheet(`.a { fill: blue }`, nil)
	require.NoError(t, err)
	s1.Merge(s2)
	rule, ok := s1.Rule(".a")
	require.True(t, ok)
	fill, _ := rule.Get(PropFill)
	stroke, _ := rule.Get(PropStroke)
	assert.Equal(t, blue, fill.(Paint).Color)
	assert.Equal(t, red, stroke.(Paint).Color)
}

func TestOpacity(t *testing.T) {
	c := Cascade{}
	assert.Equal(t, 1., c.Apply(element("rect", "opacity", "1.5")).Opacity())
	assert.Equal(t, 0., c.Apply(element("rect", "opacity", "-0.5")).Opacity())
	assert.Equal(t, 0.5, c.Apply(element("rect", "fill-opacity", "50%")).FillOpacity())

	// a failed parse leaves the property unset
	st := c.Apply(element("rect", "opacity", "0.3", "style", "opacity: abc"))
	assert.Equal(t, 0.3, st.Opacity())
	st = c.Apply(element("rect", "opacity", "abc"))
	_, has := st.Properties.Get(PropOpacity)
	assert.False(t, has)
	assert.Equal(t, 1., st.Opacity())
}

func TestFontComposition(t *testing.T) {
	sheet, err := ParseSheet(`text { font-family: 'Open Sans', serif } .big { font-size: 20px }`, nil)
	require.NoError(t, err)
	c := Cascade{Sheet: sheet}

	st := c.Apply(element("text", "class", "big", "style", "font-weight: bold; font-style: italic"))
	require.NotNil(t, st.Font)
	assert.Equal(t, &Font{
		Family: []string{"Open Sans", "serif"},
		Weight: 700,
		Style:  FontItalic,
		Size:   20,
	}, st.Font)

	st = c.Apply(element("tspan", "font-size", "large"))
	require.NotNil(t, st.Font)
	assert.Equal(t, 18., st.Font.Size)
	assert.Equal(t, DefaultFontWeight, st.Font.Weight)

	assert.Nil(t, c.Apply(element("rect", "fill", "red")).Font)
}

func TestStrokeOptions(t *testing.T) {
	vp := &svgunit.Viewport{Width: 200, Height: 100}
	c := Cascade{Viewport: vp}
	st := c.Apply(element("path",
		"stroke-width", "10%",
		"stroke-linecap", "round",
		"stroke-linejoin", "bevel",
		"stroke-miterlimit", "8",
		"stroke-dasharray", "5 10 5",
	))
	opts := st.StrokeOptions()
	assert.Equal(t, 20., opts.LineWidth)
	assert.Equal(t, RoundCap, opts.Join.TrailLineCap)
	assert.Equal(t, RoundCap, opts.Join.LeadLineCap)
	assert.Equal(t, Bevel, opts.Join.LineJoin)
	assert.Equal(t, 8., opts.Join.MiterLimit)
	assert.Equal(t, []float64{5, 10, 5, 5, 10, 5}, opts.Dash.Dash)

	def := Cascade{}.Apply(element("path")).StrokeOptions()
	assert.Equal(t, 1., def.LineWidth)
	assert.Equal(t, Miter, def.Join.LineJoin)
	assert.Equal(t, ButtCap, def.Join.TrailLineCap)
	assert.Equal(t, 4., def.Join.MiterLimit)
	assert.Nil(t, def.Dash.Dash)

	// invalid values are ignored
	st = c.Apply(element("path", "stroke-width", "-2", "stroke-linejoin", "wavy", "stroke-miterlimit", "0.5"))
	assert.Equal(t, 0, st.Properties.Len())
}

func TestReferences(t *testing.T) {
	c := Cascade{}
	st := c.Apply(element("path",
		"marker", "url(#m)",
		"marker-end", "none",
		"filter", "url(#f)",
		"clip-path", "url('#c')",
	))
	start, mid, end := st.MarkerRefs()
	assert.Equal(t, "m", start)
	assert.Equal(t, "m", mid)
	assert.Equal(t, "", end)
	assert.Equal(t, "f", st.FilterRef())
	assert.Equal(t, "c", st.ClipRef())

	st = c.Apply(element("path", "fill", "url(#grad) red", "stroke", "context-stroke", "transform", "translate(1,2)"))
	assert.Equal(t, PaintGradient, st.Fill().Kind)
	assert.Equal(t, "grad", st.Fill().Ref)
	require.NotNil(t, st.Fill().Fallback)
	assert.Equal(t, red, st.Fill().Fallback.Color)
	assert.Equal(t, PaintContextStroke, st.Stroke().Kind)
	assert.Equal(t, Transform{{Kind: Translate, Args: []float64{1, 2}}}, st.Transform())
}

func TestVisible(t *testing.T) {
	c := Cascade{}
	assert.True(t, c.Apply(element("g")).Visible())
	assert.False(t, c.Apply(element("g", "display", "none")).Visible())
	assert.False(t, c.Apply(element("g", "style", "visibility: hidden")).Visible())
}

func TestPropertySetOrder(t *testing.T) {
	var ps PropertySet
	ps.Set(PropStroke, Paint{})
	ps.Set(PropFill, Paint{})
	ps.Set(PropStroke, Paint{Kind: PaintColor})
	assert.Equal(t, []Property{PropStroke, PropFill}, ps.Properties())
	ps.Delete(PropStroke)
	assert.Equal(t, []Property{PropFill}, ps.Properties())
	assert.Equal(t, 1, ps.Len())
}
