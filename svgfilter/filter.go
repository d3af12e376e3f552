// Package svgfilter reads filter elements and wires their primitives
// into an ordered chain of effects with explicit input bindings.
package svgfilter

import (
	"image/color"
	"strings"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// InputKind is the source of a primitive input.
type InputKind uint8

const (
	PreviousResult InputKind = iota
	NamedResult
	SourceGraphic
	SourceAlpha
)

func (k InputKind) String() string {
	switch k {
	case PreviousResult:
		return "PreviousResult"
	case NamedResult:
		return "NamedResult"
	case SourceGraphic:
		return "SourceGraphic"
	case SourceAlpha:
		return "SourceAlpha"
	default:
		return "<unknown InputKind>"
	}
}

// Input is the value of an `in` attribute.
type Input struct {
	Kind InputKind
	Name string // for NamedResult
}

// ParseInput reads an `in` attribute. An empty value, and the
// unsupported BackgroundImage, BackgroundAlpha, FillPaint and StrokePaint
// keywords, refer to the previous result.
func ParseInput(text string) Input {
	switch text = strings.TrimSpace(text); text {
	case "":
		return Input{Kind: PreviousResult}
	case "SourceGraphic":
		return Input{Kind: SourceGraphic}
	case "SourceAlpha":
		return Input{Kind: SourceAlpha}
	case "BackgroundImage", "BackgroundAlpha", "FillPaint", "StrokePaint":
		logx.Logger().Debug("svgfilter: input not supported", "in", text)
		return Input{Kind: PreviousResult}
	default:
		return Input{Kind: NamedResult, Name: text}
	}
}

func (in Input) String() string {
	if in.Kind == NamedResult {
		return in.Name
	}
	return in.Kind.String()
}

// EffectType identifies the primitive of an Effect.
type EffectType uint8

const (
	GaussianBlurType EffectType = iota
	DropShadowType
	FloodType
	OffsetType
	CompositeType
	MergeType
	SpecularLightingType
	DiffuseLightingType
)

func (t EffectType) String() string {
	switch t {
	case GaussianBlurType:
		return "GaussianBlur"
	case DropShadowType:
		return "DropShadow"
	case FloodType:
		return "Flood"
	case OffsetType:
		return "Offset"
	case CompositeType:
		return "Composite"
	case MergeType:
		return "Merge"
	case SpecularLightingType:
		return "SpecularLighting"
	case DiffuseLightingType:
		return "DiffuseLighting"
	default:
		return "<unknown EffectType>"
	}
}

// Params holds the parameters of one primitive. Its concrete type is one of
// GaussianBlur, DropShadow, Flood, Offset, Composite, Merge,
// SpecularLighting or DiffuseLighting.
type Params interface {
	Type() EffectType
}

type GaussianBlur struct {
	StdDevX, StdDevY float64
}

// DropShadow is an offset, blurred and colored copy of its input,
// painted below it.
type DropShadow struct {
	Dx, Dy           float64
	StdDevX, StdDevY float64
	Color            color.NRGBA // flood-color with flood-opacity applied
}

type Flood struct {
	Color color.NRGBA // flood-color with flood-opacity applied
}

type Offset struct {
	Dx, Dy float64
}

// CompositeOperator is the operator attribute of feComposite.
type CompositeOperator uint8

const (
	OpOver CompositeOperator = iota
	OpIn
	OpOut
	OpAtop
	OpXor
	OpArithmetic
)

var compositeOperators = map[string]CompositeOperator{
	"over":       OpOver,
	"in":         OpIn,
	"out":        OpOut,
	"atop":       OpAtop,
	"xor":        OpXor,
	"arithmetic": OpArithmetic,
}

var operatorNames = [...]string{
	OpOver:       "over",
	OpIn:         "in",
	OpOut:        "out",
	OpAtop:       "atop",
	OpXor:        "xor",
	OpArithmetic: "arithmetic",
}

func (op CompositeOperator) String() string {
	if int(op) < len(operatorNames) {
		return operatorNames[op]
	}
	return "<unknown CompositeOperator>"
}

// Composite combines its input with a second one.
type Composite struct {
	In2            Input
	Operator       CompositeOperator
	K1, K2, K3, K4 float64 // for OpArithmetic
}

// Merge stacks its inputs, the first one at the bottom.
type Merge struct {
	Inputs []Input
}

// LightKind is the light source of a lighting primitive.
type LightKind uint8

const (
	NoLight LightKind = iota
	DistantLight
	PointLight
	SpotLight
)

func (k LightKind) String() string {
	switch k {
	case DistantLight:
		return "distant"
	case PointLight:
		return "point"
	case SpotLight:
		return "spot"
	default:
		return "none"
	}
}

// Light is the light source child of a lighting primitive.
type Light struct {
	Kind LightKind

	Azimuth, Elevation float64 // DistantLight

	X, Y, Z                         float64 // PointLight and SpotLight
	PointsAtX, PointsAtY, PointsAtZ float64 // SpotLight
	SpecularExponent                float64 // SpotLight
	// LimitingConeAngle is nil when not declared.
	LimitingConeAngle *float64
}

type SpecularLighting struct {
	SurfaceScale     float64
	SpecularConstant float64
	SpecularExponent float64
	Color            color.NRGBA // lighting-color
	Light            Light
}

type DiffuseLighting struct {
	SurfaceScale    float64
	DiffuseConstant float64
	Color           color.NRGBA // lighting-color
	Light           Light
}

func (GaussianBlur) Type() EffectType     { return GaussianBlurType }
func (DropShadow) Type() EffectType       { return DropShadowType }
func (Flood) Type() EffectType            { return FloodType }
func (Offset) Type() EffectType           { return OffsetType }
func (Composite) Type() EffectType        { return CompositeType }
func (Merge) Type() EffectType            { return MergeType }
func (SpecularLighting) Type() EffectType { return SpecularLightingType }
func (DiffuseLighting) Type() EffectType  { return DiffuseLightingType }

// Effect is one filter primitive.
type Effect struct {
	Result string // name given by the result attribute, or empty
	In     Input
	Params Params
}

// Units is the filterUnits attribute.
type Units uint8

const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

func (u Units) String() string {
	if u == UserSpaceOnUse {
		return "userSpaceOnUse"
	}
	return "objectBoundingBox"
}

// Spec is a filter element with its supported primitives,
// in document order.
type Spec struct {
	ID string
	// Region is the filter region, as fractions of the bounding box
	// for ObjectBoundingBox units.
	Region  svgunit.Bounds
	Units   Units
	Effects []Effect
}

// Registry stores the filter definitions of a document, by id.
type Registry map[string]*Spec

// Add registers `spec`, returning false if its id is empty or
// already used. The first definition of an id wins.
func (reg Registry) Add(spec *Spec) bool {
	if spec.ID == "" {
		return false
	}
	if _, has := reg[spec.ID]; has {
		return false
	}
	reg[spec.ID] = spec
	return true
}

var unitBox = svgunit.Bounds{W: 1, H: 1}

// number returns the attribute `name` of `el`, or `def` if it is missing.
// Malformed values resolve to 0.
func number(el *svgtree.Element, name string, def float64) float64 {
	v, ok := el.Attr(name)
	if !ok {
		return def
	}
	return svgunit.Number(v)
}

// FromElement reads a filter element. Primitives are styled with `cascade`,
// whose viewport resolves userSpaceOnUse percentages.
// It returns false for other elements.
func FromElement(el *svgtree.Element, cascade svgstyle.Cascade) (*Spec, bool) {
	if el.Tag != "filter" {
		return nil, false
	}
	out := &Spec{ID: el.ID()}
	if v, _ := el.Attr("filterUnits"); strings.TrimSpace(v) == "userSpaceOnUse" {
		out.Units = UserSpaceOnUse
	}
	region := func(name, def string, axis svgunit.Axis) float64 {
		text, ok := el.Attr(name)
		if !ok {
			text = def
		}
		if out.Units == UserSpaceOnUse {
			return svgunit.Resolve(text, axis, cascade.Viewport, nil)
		}
		return svgunit.Resolve(text, axis, nil, &unitBox)
	}
	out.Region = svgunit.Bounds{
		X: region("x", "-10%", svgunit.Width),
		Y: region("y", "-10%", svgunit.Height),
		W: region("width", "120%", svgunit.Width),
		H: region("height", "120%", svgunit.Height),
	}

	for _, child := range el.Children {
		params, ok := readParams(child, cascade)
		if !ok {
			logx.Logger().Debug("svgfilter: primitive not supported", "filter", out.ID, "tag", child.Tag)
			continue
		}
		eff := Effect{Params: params}
		eff.Result, _ = child.Attr("result")
		eff.Result = strings.TrimSpace(eff.Result)
		in, _ := child.Attr("in")
		eff.In = ParseInput(in)
		out.Effects = append(out.Effects, eff)
	}
	return out, true
}

// stdDeviation reads one or two non negative values.
func stdDeviation(el *svgtree.Element, def float64) (x, y float64) {
	v, ok := el.Attr("stdDeviation")
	if !ok {
		return def, def
	}
	list, _ := svgunit.ParseList(v)
	switch len(list) {
	case 0:
		return 0, 0
	case 1:
		x, y = list[0], list[0]
	default:
		x, y = list[0], list[1]
	}
	return max(x, 0), max(y, 0)
}

// styleColor returns the color property `col`, or `def` if it is not set.
func styleColor(style svgstyle.EffectiveStyle, col svgstyle.Property, def color.NRGBA) color.NRGBA {
	if v, ok := style.Properties.Get(col); ok {
		if p, ok := v.(svgstyle.Paint); ok {
			switch p.Kind {
			case svgstyle.PaintColor:
				return p.Color
			case svgstyle.PaintCurrentColor:
				return style.CurrentColor()
			}
		}
	}
	return def
}

// floodColor returns the flood-color multiplied by the flood-opacity.
func floodColor(style svgstyle.EffectiveStyle) color.NRGBA {
	out := styleColor(style, svgstyle.PropFloodColor, black)
	if v, ok := style.Properties.Get(svgstyle.PropFloodOpacity); ok {
		if n, ok := v.(svgstyle.Number); ok {
			out = svgstyle.MultiplyAlpha(out, float64(n))
		}
	}
	return out
}

var (
	black = color.NRGBA{A: 0xFF}
	white = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

func readParams(el *svgtree.Element, cascade svgstyle.Cascade) (Params, bool) {
	switch el.Tag {
	case "feGaussianBlur":
		var out GaussianBlur
		out.StdDevX, out.StdDevY = stdDeviation(el, 0)
		return out, true
	case "feDropShadow":
		out := DropShadow{Dx: number(el, "dx", 2), Dy: number(el, "dy", 2)}
		out.StdDevX, out.StdDevY = stdDeviation(el, 2)
		out.Color = floodColor(cascade.Apply(el))
		return out, true
	case "feFlood":
		return Flood{Color: floodColor(cascade.Apply(el))}, true
	case "feOffset":
		return Offset{Dx: number(el, "dx", 0), Dy: number(el, "dy", 0)}, true
	case "feComposite":
		out := Composite{
			K1: number(el, "k1", 0),
			K2: number(el, "k2", 0),
			K3: number(el, "k3", 0),
			K4: number(el, "k4", 0),
		}
		in2, _ := el.Attr("in2")
		out.In2 = ParseInput(in2)
		if v, ok := el.Attr("operator"); ok {
			op, ok := compositeOperators[strings.TrimSpace(v)]
			if !ok {
				logx.Logger().Debug("svgfilter: unknown composite operator", "operator", v)
			}
			out.Operator = op
		}
		return out, true
	case "feMerge":
		var out Merge
		for _, node := range el.Children {
			if node.Tag != "feMergeNode" {
				continue
			}
			in, _ := node.Attr("in")
			out.Inputs = append(out.Inputs, ParseInput(in))
		}
		return out, true
	case "feSpecularLighting":
		return SpecularLighting{
			SurfaceScale:     number(el, "surfaceScale", 1),
			SpecularConstant: number(el, "specularConstant", 1),
			SpecularExponent: number(el, "specularExponent", 1),
			Color:            styleColor(cascade.Apply(el), svgstyle.PropLightingColor, white),
			Light:            readLight(el),
		}, true
	case "feDiffuseLighting":
		return DiffuseLighting{
			SurfaceScale:    number(el, "surfaceScale", 1),
			DiffuseConstant: number(el, "diffuseConstant", 1),
			Color:           styleColor(cascade.Apply(el), svgstyle.PropLightingColor, white),
			Light:           readLight(el),
		}, true
	default:
		return nil, false
	}
}

// readLight returns the first light source child of `el`.
func readLight(el *svgtree.Element) Light {
	for _, child := range el.Children {
		switch child.Tag {
		case "feDistantLight":
			return Light{
				Kind:      DistantLight,
				Azimuth:   number(child, "azimuth", 0),
				Elevation: number(child, "elevation", 0),
			}
		case "fePointLight":
			return Light{
				Kind: PointLight,
				X:    number(child, "x", 0),
				Y:    number(child, "y", 0),
				Z:    number(child, "z", 0),
			}
		case "feSpotLight":
			out := Light{
				Kind:             SpotLight,
				X:                number(child, "x", 0),
				Y:                number(child, "y", 0),
				Z:                number(child, "z", 0),
				PointsAtX:        number(child, "pointsAtX", 0),
				PointsAtY:        number(child, "pointsAtY", 0),
				PointsAtZ:        number(child, "pointsAtZ", 0),
				SpecularExponent: number(child, "specularExponent", 1),
			}
			if _, ok := child.Attr("limitingConeAngle"); ok {
				angle := number(child, "limitingConeAngle", 0)
				out.LimitingConeAngle = &angle
			}
			return out
		}
	}
	return Light{}
}
