// Package svgmarker links the marker-start, marker-mid and marker-end
// properties of an element to their marker definitions, and places
// the markers on the vertices of a path.
package svgmarker

import (
	"math"
	"strings"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// Units is the markerUnits attribute.
type Units uint8

const (
	StrokeWidth Units = iota // the default
	UserSpaceOnUse
)

func (u Units) String() string {
	if u == UserSpaceOnUse {
		return "userSpaceOnUse"
	}
	return "strokeWidth"
}

// OrientKind is the form of the orient attribute.
type OrientKind uint8

const (
	OrientNone OrientKind = iota // no orient attribute, same as a zero angle
	OrientAngle
	OrientAuto
	OrientAutoStartReverse
)

func (k OrientKind) String() string {
	switch k {
	case OrientAngle:
		return "angle"
	case OrientAuto:
		return "auto"
	case OrientAutoStartReverse:
		return "auto-start-reverse"
	default:
		return "none"
	}
}

// Orient is the orientation of a marker.
type Orient struct {
	Kind    OrientKind
	Degrees float64 // for OrientAngle
}

// angle units, in degrees; grad is tested before rad
var angleUnits = [...]struct {
	suffix string
	factor float64
}{
	{"deg", 1},
	{"grad", 0.9},
	{"rad", 180 / math.Pi},
	{"turn", 360},
}

// ParseOrient reads an orient attribute. Invalid values
// are reported as OrientNone.
func ParseOrient(text string) Orient {
	text = strings.TrimSpace(text)
	switch text {
	case "auto":
		return Orient{Kind: OrientAuto}
	case "auto-start-reverse":
		return Orient{Kind: OrientAutoStartReverse}
	}
	factor := 1.
	for _, unit := range angleUnits {
		if strings.HasSuffix(text, unit.suffix) {
			text, factor = strings.TrimSuffix(text, unit.suffix), unit.factor
			break
		}
	}
	deg, err := svgunit.ParseNumber(text)
	if err != nil {
		logx.Logger().Debug("svgmarker: invalid orient", "orient", text)
		return Orient{}
	}
	return Orient{Kind: OrientAngle, Degrees: deg * factor}
}

// Size is the markerWidth and markerHeight attributes.
type Size struct {
	Width, Height float64
}

// DefaultSize is used when markerWidth or markerHeight is not declared.
var DefaultSize = Size{Width: 3, Height: 3}

// Spec is a marker element.
type Spec struct {
	ID         string
	RefX, RefY float64 // in viewBox coordinates
	// Size is nil if neither markerWidth nor markerHeight is declared.
	Size   *Size
	Orient Orient
	// ViewBox is nil if no valid viewBox attribute is declared.
	ViewBox *svgunit.Bounds
	// PreserveAspect is false for preserveAspectRatio="none".
	PreserveAspect bool
	Units          Units
	// Content is the marker element itself, whose children
	// are painted at each vertex.
	Content *svgtree.Element
}

// EffectiveSize returns Size, or DefaultSize.
func (sp *Spec) EffectiveSize() Size {
	if sp.Size == nil {
		return DefaultSize
	}
	return *sp.Size
}

// ParseViewBox reads a viewBox attribute, returning false if
// it is malformed or has a non positive size.
func ParseViewBox(text string) (svgunit.Bounds, bool) {
	list, err := svgunit.ParseList(text)
	if err != nil || len(list) != 4 || list[2] <= 0 || list[3] <= 0 {
		return svgunit.Bounds{}, false
	}
	return svgunit.Bounds{X: list[0], Y: list[1], W: list[2], H: list[3]}, true
}

// FromElement reads a marker element. Lengths are resolved against `vp`,
// which may be nil. It returns false for other elements.
func FromElement(el *svgtree.Element, vp *svgunit.Viewport) (*Spec, bool) {
	if el.Tag != "marker" {
		return nil, false
	}
	out := &Spec{ID: el.ID(), Content: el, PreserveAspect: true}
	length := func(name string, def float64, axis svgunit.Axis) float64 {
		v, ok := el.Attr(name)
		if !ok {
			return def
		}
		return svgunit.Resolve(v, axis, vp, nil)
	}
	out.RefX = length("refX", 0, svgunit.Width)
	out.RefY = length("refY", 0, svgunit.Height)
	_, hasW := el.Attr("markerWidth")
	_, hasH := el.Attr("markerHeight")
	if hasW || hasH {
		out.Size = &Size{
			Width:  length("markerWidth", DefaultSize.Width, svgunit.Width),
			Height: length("markerHeight", DefaultSize.Height, svgunit.Height),
		}
	}
	if v, ok := el.Attr("orient"); ok {
		out.Orient = ParseOrient(v)
	}
	if v, ok := el.Attr("viewBox"); ok {
		if vb, ok := ParseViewBox(v); ok {
			out.ViewBox = &vb
		} else {
			logx.Logger().Debug("svgmarker: invalid viewBox", "id", out.ID, "viewBox", v)
		}
	}
	if v, ok := el.Attr("preserveAspectRatio"); ok && strings.TrimSpace(v) == "none" {
		out.PreserveAspect = false
	}
	if v, _ := el.Attr("markerUnits"); strings.TrimSpace(v) == "userSpaceOnUse" {
		out.Units = UserSpaceOnUse
	}
	return out, true
}

// Registry stores the marker definitions of a document, by id.
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
