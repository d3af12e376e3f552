package svgstyle

import (
	"image/color"
	"strconv"
	"strings"
)

// FontStyle is the slant of a font.
type FontStyle uint8

const (
	FontNormal FontStyle = iota
	FontItalic
	FontOblique
)

// Font is the font descriptor composed from the font properties
// set on an element.
type Font struct {
	Family     []string // in preference order, without quotes
	Weight     int      // 100 to 900, 400 being normal
	Style      FontStyle
	Size       float64 // in px
	Decoration string  // text-decoration keywords, or empty
}

// default font values, used for the properties not set
const (
	DefaultFontSize   = 16.
	DefaultFontWeight = 400
)

// EffectiveStyle is the merged style of one element.
// Accessors return the SVG defaults for unset properties.
type EffectiveStyle struct {
	Properties PropertySet
	// Font is nil if no font property is set.
	Font *Font
}

// NewEffectiveStyle returns the style made of `props`, composing its font.
func NewEffectiveStyle(props PropertySet) EffectiveStyle {
	return EffectiveStyle{Properties: props, Font: composeFont(props)}
}

func splitFamilies(family string) []string {
	var out []string
	for _, name := range strings.Split(family, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func parseWeight(kw Keyword) int {
	switch kw {
	case "normal":
		return 400
	case "bold":
		return 700
	case "bolder":
		return 700
	case "lighter":
		return 300
	default:
		w, err := strconv.Atoi(string(kw))
		if err != nil {
			return DefaultFontWeight
		}
		return w
	}
}

// composeFont builds one descriptor from whichever font
// properties were set, once all the tiers have been merged.
func composeFont(props PropertySet) *Font {
	family, hasFamily := props.Get(PropFontFamily)
	weight, hasWeight := props.Get(PropFontWeight)
	style, hasStyle := props.Get(PropFontStyle)
	size, hasSize := props.Get(PropFontSize)
	decoration, hasDecoration := props.Get(PropTextDecoration)
	if !(hasFamily || hasWeight || hasStyle || hasSize || hasDecoration) {
		return nil
	}
	out := &Font{Weight: DefaultFontWeight, Size: DefaultFontSize}
	if f, ok := family.(Text); hasFamily && ok {
		out.Family = splitFamilies(string(f))
	}
	if w, ok := weight.(Keyword); hasWeight && ok {
		out.Weight = parseWeight(w)
	}
	if s, ok := style.(Keyword); hasStyle && ok {
		switch s {
		case "italic":
			out.Style = FontItalic
		case "oblique":
			out.Style = FontOblique
		}
	}
	if s, ok := size.(Length); hasSize && ok {
		out.Size = float64(s)
	}
	if d, ok := decoration.(Keyword); hasDecoration && ok && d != "none" {
		out.Decoration = string(d)
	}
	return out
}

func (es EffectiveStyle) paint(p Property, def Paint) Paint {
	if v, ok := es.Properties.Get(p); ok {
		if pt, ok := v.(Paint); ok {
			return pt
		}
	}
	return def
}

func (es EffectiveStyle) number(p Property, def float64) float64 {
	if v, ok := es.Properties.Get(p); ok {
		switch v := v.(type) {
		case Number:
			return float64(v)
		case Length:
			return float64(v)
		}
	}
	return def
}

func (es EffectiveStyle) keyword(p Property) Keyword {
	if v, ok := es.Properties.Get(p); ok {
		if kw, ok := v.(Keyword); ok {
			return kw
		}
	}
	return ""
}

func (es EffectiveStyle) ref(p Property) (string, bool) {
	if v, ok := es.Properties.Get(p); ok {
		if r, ok := v.(Ref); ok {
			return string(r), true
		}
	}
	return "", false
}

// Fill returns the fill paint, black by default.
func (es EffectiveStyle) Fill() Paint {
	return es.paint(PropFill, Paint{Kind: PaintColor, Color: color.NRGBA{A: 0xFF}})
}

// Stroke returns the stroke paint, none by default.
func (es EffectiveStyle) Stroke() Paint {
	return es.paint(PropStroke, Paint{Kind: PaintNone})
}

// CurrentColor returns the value of the color property, black by default.
func (es EffectiveStyle) CurrentColor() color.NRGBA {
	p := es.paint(PropColor, Paint{Kind: PaintColor, Color: color.NRGBA{A: 0xFF}})
	if p.Kind != PaintColor {
		return color.NRGBA{A: 0xFF}
	}
	return p.Color
}

// Opacity returns the group opacity, 1 by default.
func (es EffectiveStyle) Opacity() float64 { return es.number(PropOpacity, 1) }

// FillOpacity returns the fill opacity, 1 by default.
func (es EffectiveStyle) FillOpacity() float64 { return es.number(PropFillOpacity, 1) }

// StrokeOpacity returns the stroke opacity, 1 by default.
func (es EffectiveStyle) StrokeOpacity() float64 { return es.number(PropStrokeOpacity, 1) }

// StrokeWidth returns the stroke width, 1 by default.
func (es EffectiveStyle) StrokeWidth() float64 { return es.number(PropStrokeWidth, 1) }

// UseNonZeroWinding returns false for the evenodd fill rule.
func (es EffectiveStyle) UseNonZeroWinding() bool {
	return es.keyword(PropFillRule) != "evenodd"
}

// StrokeOptions returns the resolved stroke geometry.
// Defaults are a width of 1, a miter join with a limit of 4, butt caps
// and no dashes.
func (es EffectiveStyle) StrokeOptions() StrokeOptions {
	out := StrokeOptions{
		LineWidth: es.StrokeWidth(),
		Join: JoinOptions{
			MiterLimit:   es.number(PropStrokeMiterlimit, 4),
			LineJoin:     Miter,
			TrailLineCap: ButtCap,
		},
	}
	if j, ok := joinModes[string(es.keyword(PropStrokeLinejoin))]; ok {
		out.Join.LineJoin = j
	}
	if c, ok := capModes[string(es.keyword(PropStrokeLinecap))]; ok {
		out.Join.TrailLineCap = c
	}
	out.Join.LeadLineCap = out.Join.TrailLineCap
	if c, ok := capModes[string(es.keyword(PropStrokeLeadLinecap))]; ok {
		out.Join.LeadLineCap = c
	}
	if g, ok := gapModes[string(es.keyword(PropStrokeLinegap))]; ok {
		out.Join.LineGap = g
	}
	if v, ok := es.Properties.Get(PropStrokeDasharray); ok {
		if d, ok := v.(Dashes); ok {
			out.Dash.Dash = d
		}
	}
	out.Dash.DashOffset = es.number(PropStrokeDashoffset, 0)
	return out
}

// Transform returns the transform list, empty by default.
func (es EffectiveStyle) Transform() Transform {
	if v, ok := es.Properties.Get(PropTransform); ok {
		if t, ok := v.(Transform); ok {
			return t
		}
	}
	return nil
}

// FilterRef returns the id of the filter, or an empty string.
func (es EffectiveStyle) FilterRef() string {
	id, _ := es.ref(PropFilter)
	return id
}

// ClipRef returns the id of the clip path, or an empty string.
func (es EffectiveStyle) ClipRef() string {
	id, _ := es.ref(PropClipPath)
	return id
}

// MarkerRefs returns the ids of the start, mid and end markers.
// The marker shorthand provides the positions not explicitly set.
func (es EffectiveStyle) MarkerRefs() (start, mid, end string) {
	all, _ := es.ref(PropMarker)
	pick := func(p Property) string {
		if id, ok := es.ref(p); ok {
			return id
		}
		return all
	}
	return pick(PropMarkerStart), pick(PropMarkerMid), pick(PropMarkerEnd)
}

// Visible returns false if the element is hidden by display or visibility.
func (es EffectiveStyle) Visible() bool {
	vis := es.keyword(PropVisibility)
	return es.keyword(PropDisplay) != "none" && (vis == "" || vis == "visible")
}

// TextAnchor returns the text-anchor keyword, "start" by default.
func (es EffectiveStyle) TextAnchor() string {
	if kw := es.keyword(PropTextAnchor); kw != "" {
		return string(kw)
	}
	return "start"
}
