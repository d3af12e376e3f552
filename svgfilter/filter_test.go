package svgfilter

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specFrom(t *testing.T, content string) *Spec {
	t.Helper()
	root, err := svgtree.Parse(strings.NewReader(content))
	require.NoError(t, err)
	spec, ok := FromElement(root, svgstyle.Cascade{})
	require.True(t, ok)
	return spec
}

func TestParseInput(t *testing.T) {
	assert.Equal(t, Input{Kind: PreviousResult}, ParseInput(""))
	assert.Equal(t, Input{Kind: SourceGraphic}, ParseInput(" SourceGraphic"))
	assert.Equal(t, Input{Kind: SourceAlpha}, ParseInput("SourceAlpha"))
	assert.Equal(t, Input{Kind: PreviousResult}, ParseInput("BackgroundImage"))
	assert.Equal(t, Input{Kind: NamedResult, Name: "blur1"}, ParseInput("blur1"))
}

func TestFromElement(t *testing.T) {
	spec := specFrom(t, `<filter id="f">
		<feGaussianBlur stdDeviation="3 -1" result="b"/>
		<feColorMatrix type="saturate" values="0.5"/>
		<feDropShadow dx="4" flood-color="red" flood-opacity="0.5"/>
		<feFlood style="flood-color: blue"/>
		<feOffset dx="1" dy="abc" in="SourceAlpha"/>
		<feComposite operator="arithmetic" k2="1" k3="0.5" in2="b"/>
		<feMerge><feMergeNode in="b"/><feMergeNode/><desc/></feMerge>
		<feSpecularLighting specularExponent="20" lighting-color="yellow">
			<feSpotLight x="1" y="2" z="3" limitingConeAngle="30"/>
		</feSpecularLighting>
		<feDiffuseLighting><feDistantLight azimuth="45" elevation="60"/></feDiffuseLighting>
	</filter>`)
	assert.Equal(t, "f", spec.ID)
	assert.Equal(t, ObjectBoundingBox, spec.Units)
	assert.Equal(t, svgunit.Bounds{X: -0.1, Y: -0.1, W: 1.2, H: 1.2}, spec.Region)
	require.Len(t, spec.Effects, 8)

	assert.Equal(t, Effect{Result: "b", Params: GaussianBlur{StdDevX: 3, StdDevY: 0}}, spec.Effects[0])
	assert.Equal(t, DropShadow{Dx: 4, Dy: 2, StdDevX: 2, StdDevY: 2, Color: color.NRGBA{255, 0, 0, 128}}, spec.Effects[1].Params)
	assert.Equal(t, Flood{Color: color.NRGBA{0, 0, 255, 255}}, spec.Effects[2].Params)
	assert.Equal(t, Effect{In: Input{Kind: SourceAlpha}, Params: Offset{Dx: 1, Dy: 0}}, spec.Effects[3])
	assert.Equal(t, Composite{In2: Input{Kind: NamedResult, Name: "b"}, Operator: OpArithmetic, K2: 1, K3: 0.5}, spec.Effects[4].Params)
	assert.Equal(t, Merge{Inputs: []Input{{Kind: NamedResult, Name: "b"}, {Kind: PreviousResult}}}, spec.Effects[5].Params)

	spec6 := spec.Effects[6].Params.(SpecularLighting)
	assert.Equal(t, 20., spec6.SpecularExponent)
	assert.Equal(t, 1., spec6.SurfaceScale)
	assert.Equal(t, color.NRGBA{255, 255, 0, 255}, spec6.Color)
	assert.Equal(t, SpotLight, spec6.Light.Kind)
	require.NotNil(t, spec6.Light.LimitingConeAngle)
	assert.Equal(t, 30., *spec6.Light.LimitingConeAngle)

	diffuse := spec.Effects[7].Params.(DiffuseLighting)
	assert.Equal(t, Light{Kind: DistantLight, Azimuth: 45, Elevation: 60}, diffuse.Light)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, diffuse.Color)
}

func TestUserSpaceRegion(t *testing.T) {
	root, err := svgtree.Parse(strings.NewReader(`<filter id="f" filterUnits="userSpaceOnUse" x="10" width="50%"/>`))
	require.NoError(t, err)
	spec, ok := FromElement(root, svgstyle.Cascade{Viewport: &svgunit.Viewport{Width: 200, Height: 100}})
	require.True(t, ok)
	assert.Equal(t, svgunit.Bounds{X: 10, Y: -10, W: 100, H: 120}, spec.Region)

	_, ok = FromElement(&svgtree.Element{Tag: "g"}, svgstyle.Cascade{})
	assert.False(t, ok)
}

func TestNamedResult(t *testing.T) {
	spec := specFrom(t, `<filter id="f">
		<feGaussianBlur stdDeviation="2" result="blur1"/>
		<feDropShadow in="blur1"/>
	</filter>`)
	chain, err := Resolve(spec)
	require.NoError(t, err)
	require.Len(t, chain.Effects, 2)
	assert.Equal(t, Binding{Kind: BindNone}, chain.Effects[0].In)
	assert.Equal(t, Binding{Kind: BindEffect, Index: 0}, chain.Effects[1].In)
	assert.Equal(t, Binding{Kind: BindEffect, Index: 1}, chain.Output)
}

func TestForwardReference(t *testing.T) {
	spec := specFrom(t, `<filter id="f">
		<feOffset dx="1" in="SourceGraphic"/>
		<feGaussianBlur in="later" stdDeviation="1"/>
		<feFlood result="later"/>
		<feOffset in="self" result="self"/>
	</filter>`)
	chain, err := Resolve(spec)
	require.NoError(t, err)
	assert.Equal(t, Binding{Kind: BindSourceGraphic}, chain.Effects[0].In)
	assert.Equal(t, Binding{Kind: BindEffect, Index: 0}, chain.Effects[1].In)
	assert.Equal(t, Binding{Kind: BindEffect, Index: 2}, chain.Effects[3].In)
}

func TestCompositeNonAdjacent(t *testing.T) {
	spec := specFrom(t, `<filter id="f">
		<feGaussianBlur stdDeviation="2" result="blur"/>
		<feOffset dx="3" dy="3" result="offset"/>
		<feFlood flood-color="black"/>
		<feComposite in="SourceGraphic" in2="blur" operator="in"/>
	</filter>`)
	chain, err := Resolve(spec)
	require.NoError(t, err)
	comp := chain.Effects[3]
	assert.Equal(t, Binding{Kind: BindSourceGraphic}, comp.In)
	assert.Equal(t, Binding{Kind: BindEffect, Index: 0}, comp.In2)
	assert.Equal(t, OpIn, comp.Params.(Composite).Operator)
}

func TestMergeReduction(t *testing.T) {
	spec := specFrom(t, `<filter id="f">
		<feGaussianBlur result="a"/>
		<feOffset result="b"/>
		<feMerge>
			<feMergeNode in="a"/>
			<feMergeNode in="SourceAlpha"/>
			<feMergeNode in="b"/>
			<feMergeNode/>
		</feMerge>
		<feMerge><feMergeNode in="a"/></feMerge>
	</filter>`)
	chain, err := Resolve(spec)
	require.NoError(t, err)
	a, b := Binding{Kind: BindEffect, Index: 0}, Binding{Kind: BindEffect, Index: 1}
	assert.Equal(t, []Blend{
		{Bottom: a, Top: Binding{Kind: BindSourceAlpha}},
		{Bottom: Binding{Kind: BindBlend, Index: 0}, Top: b},
		{Bottom: Binding{Kind: BindBlend, Index: 1}, Top: b},
	}, chain.Blends)
	assert.Equal(t, Binding{Kind: BindBlend, Index: 2}, chain.Effects[2].In)
	// a single input needs no blend
	assert.Equal(t, a, chain.Effects[3].In)
	assert.Equal(t, "blend[2]", chain.Effects[2].In.String())
}

func TestGraphErrors(t *testing.T) {
	spec := specFrom(t, `<filter id="f"><feOffset/><feMerge/></filter>`)
	_, err := Resolve(spec)
	var ge *GraphError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, 1, ge.Effect)
	assert.ErrorIs(t, err, errEmptyMerge)

	spec = specFrom(t, `<filter id="f"><feComposite/></filter>`)
	_, err = Resolve(spec)
	assert.ErrorIs(t, err, errUnboundInputs)
}

func TestResolver(t *testing.T) {
	reg := Registry{}
	assert.True(t, reg.Add(specFrom(t, `<filter id="ok"><feFlood/></filter>`)))
	assert.True(t, reg.Add(specFrom(t, `<filter id="bad"><feMerge/></filter>`)))
	assert.False(t, reg.Add(specFrom(t, `<filter id="ok"/>`)))
	assert.False(t, reg.Add(&Spec{}))

	r := NewResolver(reg)
	c1, err := r.Resolve("ok")
	require.NoError(t, err)
	c2, _ := r.Resolve("ok")
	assert.Same(t, c1, c2)
	assert.Len(t, c2.Effects, 1)

	_, err1 := r.Resolve("bad")
	_, err2 := r.Resolve("bad")
	assert.Error(t, err1)
	assert.Same(t, err1, err2)

	c, err := r.Resolve("missing")
	assert.NoError(t, err)
	assert.Nil(t, c)
}
