package svgmarker

import (
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/svgmodel/svgpath"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryFrom(t *testing.T, content string) Registry {
	t.Helper()
	root, err := svgtree.Parse(strings.NewReader(content))
	require.NoError(t, err)
	reg := Registry{}
	root.Walk(func(el *svgtree.Element) bool {
		if spec, ok := FromElement(el, nil); ok {
			reg.Add(spec)
		}
		return true
	})
	return reg
}

func styleOf(attrs ...string) svgstyle.EffectiveStyle {
	el := &svgtree.Element{Tag: "path"}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attrs = append(el.Attrs, svgtree.Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return svgstyle.Cascade{}.Apply(el)
}

func markersOf(t *testing.T, d string) svgpath.Markers {
	t.Helper()
	p, err := svgpath.Parse(d, nil)
	require.NoError(t, err)
	return p.Markers()
}

func TestParseOrient(t *testing.T) {
	assert.Equal(t, Orient{Kind: OrientAuto}, ParseOrient("auto"))
	assert.Equal(t, Orient{Kind: OrientAutoStartReverse}, ParseOrient(" auto-start-reverse "))
	assert.Equal(t, Orient{Kind: OrientAngle, Degrees: 45}, ParseOrient("45"))
	assert.Equal(t, Orient{Kind: OrientAngle, Degrees: 45}, ParseOrient("45deg"))
	assert.Equal(t, Orient{Kind: OrientAngle, Degrees: 90}, ParseOrient("100grad"))
	assert.Equal(t, Orient{Kind: OrientAngle, Degrees: 180}, ParseOrient("0.5turn"))
	o := ParseOrient("3.141592653589793rad")
	assert.InDelta(t, 180, o.Degrees, 1e-9)
	assert.Equal(t, Orient{}, ParseOrient("sideways"))
}

func TestFromElement(t *testing.T) {
	reg := registryFrom(t, `<svg><defs>
		<marker id="a" refX="5" refY="2" markerWidth="6" orient="auto" viewBox="0 0 10 10" markerUnits="userSpaceOnUse">
			<path d="M0,0 L10,5 L0,10 z" fill="context-stroke"/>
		</marker>
		<marker id="b" viewBox="0 0 -1 10" preserveAspectRatio="none"/>
		<marker id="a"/>
	</defs></svg>`)
	require.Len(t, reg, 2)

	a := reg["a"]
	assert.Equal(t, 5., a.RefX)
	assert.Equal(t, 2., a.RefY)
	assert.Equal(t, &Size{Width: 6, Height: 3}, a.Size)
	assert.Equal(t, OrientAuto, a.Orient.Kind)
	assert.Equal(t, &svgunit.Bounds{W: 10, H: 10}, a.ViewBox)
	assert.True(t, a.PreserveAspect)
	assert.Equal(t, UserSpaceOnUse, a.Units)
	require.NotNil(t, a.Content)
	assert.Len(t, a.Content.Children, 1)

	b := reg["b"]
	assert.Nil(t, b.ViewBox)
	assert.Nil(t, b.Size)
	assert.Equal(t, DefaultSize, b.EffectiveSize())
	assert.False(t, b.PreserveAspect)
	assert.Equal(t, StrokeWidth, b.Units)
	assert.Equal(t, OrientNone, b.Orient.Kind)
}

func TestResolveContext(t *testing.T) {
	reg := registryFrom(t, `<svg><marker id="m"/><marker id="e"/></svg>`)

	ctx := Resolve(styleOf("marker", "url(#m)", "marker-end", "url(#missing)", "fill", "red", "stroke", "blue", "stroke-width", "3"), reg)
	require.NotNil(t, ctx)
	assert.Same(t, reg["m"], ctx.Start)
	assert.Same(t, reg["m"], ctx.Mid)
	assert.Nil(t, ctx.End)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, ctx.ContextFill.Color)
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, ctx.ContextStroke.Color)
	assert.Equal(t, 3., ctx.StrokeWidth)

	ctx = Resolve(styleOf("marker-end", "url(#e)"), reg)
	require.NotNil(t, ctx)
	assert.Nil(t, ctx.Start)
	assert.Same(t, reg["e"], ctx.End)
	assert.Equal(t, svgstyle.PaintNone, ctx.ContextStroke.Kind)

	assert.Nil(t, Resolve(styleOf("marker-start", "url(#missing)"), reg))
	assert.Nil(t, Resolve(styleOf(), reg))
}

func TestResolveContextCurrentColor(t *testing.T) {
	reg := registryFrom(t, `<svg><marker id="m"/></svg>`)

	ctx := Resolve(styleOf("marker-start", "url(#m)", "color", "red", "fill", "currentColor", "stroke", "url(#g) currentColor"), reg)
	require.NotNil(t, ctx)
	assert.Equal(t, svgstyle.PaintColor, ctx.ContextFill.Kind)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, ctx.ContextFill.Color)
	assert.Equal(t, svgstyle.PaintGradient, ctx.ContextStroke.Kind)
	require.NotNil(t, ctx.ContextStroke.Fallback)
	assert.Equal(t, svgstyle.PaintColor, ctx.ContextStroke.Fallback.Kind)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, ctx.ContextStroke.Fallback.Color)
}

func TestPlaceAngles(t *testing.T) {
	reg := registryFrom(t, `<svg>
		<marker id="auto" orient="auto"/>
		<marker id="rev" orient="auto-start-reverse"/>
		<marker id="fixed" orient="30"/>
	</svg>`)
	markers := markersOf(t, "M0,0 L10,0 L10,10")

	ctx := Resolve(styleOf("marker", "url(#auto)"), reg)
	inst := ctx.Place(markers)
	require.Len(t, inst, 3)
	assert.Equal(t, Start, inst[0].Position)
	assert.Equal(t, Mid, inst[1].Position)
	assert.Equal(t, End, inst[2].Position)
	assert.InDelta(t, 0, inst[0].Angle, 1e-9)
	assert.InDelta(t, 45, inst[1].Angle, 1e-9)
	assert.InDelta(t, 90, inst[2].Angle, 1e-9)
	assert.Equal(t, svgpath.Point{X: 10, Y: 10}, inst[2].Vertex.Point)

	ctx = Resolve(styleOf("marker-start", "url(#rev)", "marker-end", "url(#rev)"), reg)
	inst = ctx.Place(markers)
	require.Len(t, inst, 2)
	assert.InDelta(t, 180, inst[0].Angle, 1e-9)
	assert.InDelta(t, 90, inst[1].Angle, 1e-9)

	ctx = Resolve(styleOf("marker-mid", "url(#fixed)"), reg)
	inst = ctx.Place(markers)
	require.Len(t, inst, 1)
	assert.Equal(t, 30., inst[0].Angle)

	// degenerate paths receive fewer markers
	ctx = Resolve(styleOf("marker", "url(#auto)"), reg)
	assert.Len(t, ctx.Place(markersOf(t, "M1,1")), 1)
	assert.Len(t, ctx.Place(markersOf(t, "M1,1 L2,2")), 2)

	var nilCtx *Context
	assert.Nil(t, nilCtx.Place(markers))
}

func TestPlaceTransform(t *testing.T) {
	reg := registryFrom(t, `<svg>
		<marker id="sw" viewBox="0 0 10 10" markerWidth="5" markerHeight="5" refX="5" refY="5"/>
		<marker id="stretch" viewBox="0 0 10 20" markerWidth="5" markerHeight="5" preserveAspectRatio="none" markerUnits="userSpaceOnUse"/>
		<marker id="meet" viewBox="0 0 10 20" markerWidth="5" markerHeight="5" markerUnits="userSpaceOnUse"/>
		<marker id="plain" markerWidth="10" refX="1" refY="1"/>
	</svg>`)
	markers := markersOf(t, "M10,0 L20,0")

	// viewBox scale 0.5, stroke width 2
	inst := Resolve(styleOf("marker-start", "url(#sw)", "stroke-width", "2"), reg).Place(markers)
	require.Len(t, inst, 1)
	m := inst[0].Transform
	assert.InDelta(t, 1, m.A, 1e-9)
	assert.InDelta(t, 1, m.D, 1e-9)
	assert.InDelta(t, 5, m.E, 1e-9)
	assert.InDelta(t, -5, m.F, 1e-9)

	m = Resolve(styleOf("marker-start", "url(#stretch)", "stroke-width", "2"), reg).Place(markers)[0].Transform
	assert.InDelta(t, 0.5, m.A, 1e-9)
	assert.InDelta(t, 0.25, m.D, 1e-9)

	m = Resolve(styleOf("marker-start", "url(#meet)"), reg).Place(markers)[0].Transform
	assert.InDelta(t, 0.25, m.A, 1e-9)
	assert.InDelta(t, 0.25, m.D, 1e-9)

	// no viewBox : only the stroke width scales the content
	m = Resolve(styleOf("marker-start", "url(#plain)", "stroke-width", "3"), reg).Place(markers)[0].Transform
	assert.InDelta(t, 3, m.A, 1e-9)
	assert.InDelta(t, 10-3, m.E, 1e-9)
	assert.InDelta(t, -3, m.F, 1e-9)
}
