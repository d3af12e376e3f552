package svgstyle

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/benoitkugler/svgmodel/svgunit"
)

var errInvalidValue = errors.New("invalid property value")

// Value is the resolved value of a property. It is one of
// Paint, Length, Dashes, Keyword, Number, Transform, Ref or Text.
type Value interface {
	isValue()
}

// PaintKind distinguishes the forms of a fill or stroke value.
type PaintKind uint8

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintGradient // reference to a paint server, such as a gradient
	PaintContextFill
	PaintContextStroke
	PaintCurrentColor
)

func (k PaintKind) String() string {
	switch k {
	case PaintNone:
		return "none"
	case PaintColor:
		return "color"
	case PaintGradient:
		return "gradient"
	case PaintContextFill:
		return "context-fill"
	case PaintContextStroke:
		return "context-stroke"
	case PaintCurrentColor:
		return "currentColor"
	default:
		return "<unknown PaintKind>"
	}
}

// Paint is a fill or stroke value.
type Paint struct {
	Kind  PaintKind
	Color color.NRGBA // for PaintColor
	Ref   string      // id of the paint server, for PaintGradient
	// Fallback is used when the paint server can't be resolved.
	// It is nil if no fallback is declared.
	Fallback *Paint
}

func (p Paint) String() string {
	switch p.Kind {
	case PaintColor:
		return fmt.Sprintf("#%02x%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	case PaintGradient:
		return "url(#" + p.Ref + ")"
	default:
		return p.Kind.String()
	}
}

// Length is a length resolved to px.
type Length float64

// Dashes is a resolved dash array, nil for none.
type Dashes []float64

// Keyword is a lower cased identifier.
type Keyword string

// Number is a plain number, such as an opacity.
type Number float64

// Ref is the id targeted by a url(#id) reference, empty for none.
type Ref string

// Text is a free form value, such as a font family.
type Text string

func (Paint) isValue()   {}
func (Length) isValue()  {}
func (Dashes) isValue()  {}
func (Keyword) isValue() {}
func (Number) isValue()  {}
func (Ref) isValue()     {}
func (Text) isValue()    {}

// ParseURL extracts the id of a local url(#id) reference.
func ParseURL(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	urlStr := strings.Trim(strings.TrimSpace(v[4:len(v)-1]), `"'`)
	if !strings.HasPrefix(urlStr, "#") || len(urlStr) == 1 {
		return "", false
	}
	return urlStr[1:], true
}

// ParsePaint reads a fill or stroke value.
func ParsePaint(v string) (Paint, error) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "none":
		return Paint{Kind: PaintNone}, nil
	case "context-fill":
		return Paint{Kind: PaintContextFill}, nil
	case "context-stroke":
		return Paint{Kind: PaintContextStroke}, nil
	case "currentcolor":
		return Paint{Kind: PaintCurrentColor}, nil
	}
	if strings.HasPrefix(v, "url(") {
		end := strings.IndexByte(v, ')')
		if end == -1 {
			return Paint{}, fmt.Errorf("%w: %q", errInvalidValue, v)
		}
		id, ok := ParseURL(v[:end+1])
		if !ok {
			return Paint{}, fmt.Errorf("%w: %q", errInvalidValue, v)
		}
		out := Paint{Kind: PaintGradient, Ref: id}
		if rest := strings.TrimSpace(v[end+1:]); rest != "" {
			fallback, err := ParsePaint(rest)
			if err != nil || fallback.Kind == PaintGradient {
				return Paint{}, fmt.Errorf("%w: invalid fallback in %q", errInvalidValue, v)
			}
			out.Fallback = &fallback
		}
		return out, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return Paint{}, err
	}
	return Paint{Kind: PaintColor, Color: c}, nil
}

// parseColorOnly accepts colors and currentColor
func parseColorOnly(v string) (Paint, error) {
	p, err := ParsePaint(v)
	if err != nil {
		return p, err
	}
	if p.Kind != PaintColor && p.Kind != PaintCurrentColor {
		return Paint{}, fmt.Errorf("%w: expected a color, got %q", errInvalidValue, v)
	}
	return p, nil
}

// ParseRef reads a reference property, such as filter or clip-path.
// "none" is returned as an empty reference.
func ParseRef(v string) (Ref, error) {
	if strings.TrimSpace(v) == "none" {
		return "", nil
	}
	id, ok := ParseURL(v)
	if !ok {
		return "", fmt.Errorf("%w: expected url(#id), got %q", errInvalidValue, v)
	}
	return Ref(id), nil
}

// ParseDashes reads a dash array. Odd length lists are repeated,
// as required by SVG.
func ParseDashes(v string, vp *svgunit.Viewport) (Dashes, error) {
	v = strings.TrimSpace(v)
	if v == "none" {
		return nil, nil
	}
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty dash array", errInvalidValue)
	}
	out := make(Dashes, 0, 2*len(fields))
	allZero := true
	for _, f := range fields {
		l, err := svgunit.ParseLength(f, svgunit.Diagonal, vp, nil)
		if err != nil {
			return nil, err
		}
		if l.Value < 0 {
			return nil, fmt.Errorf("%w: negative dash %q", errInvalidValue, f)
		}
		if l.Value != 0 {
			allZero = false
		}
		out = append(out, l.Value)
	}
	if allZero {
		return nil, nil
	}
	if len(out)%2 == 1 {
		out = append(out, out...)
	}
	return out, nil
}

// absolute font size keywords, in px
var fontSizes = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

var keywords = map[Property][]string{
	PropFillRule:       {"nonzero", "evenodd"},
	PropClipRule:       {"nonzero", "evenodd"},
	PropFontStyle:      {"normal", "italic", "oblique"},
	PropFontWeight:     {"normal", "bold", "bolder", "lighter", "100", "200", "300", "400", "500", "600", "700", "800", "900"},
	PropTextAnchor:     {"start", "middle", "end"},
	PropVisibility:     {"visible", "hidden", "collapse"},
	PropDisplay:        {"inline", "block", "none", "inherit"},
	PropTextDecoration: {"none", "underline", "overline", "line-through"},
}

func parseKeyword(p Property, v string) (Keyword, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	var ok bool
	switch p {
	case PropStrokeLinecap, PropStrokeLeadLinecap:
		_, ok = capModes[v]
	case PropStrokeLinejoin:
		_, ok = joinModes[v]
	case PropStrokeLinegap:
		_, ok = gapModes[v]
	case PropTextDecoration:
		ok = true
		for _, word := range strings.Fields(v) {
			ok = ok && contains(keywords[p], word)
		}
	default:
		ok = contains(keywords[p], v)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s: %q", errInvalidValue, p, v)
	}
	return Keyword(v), nil
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}

func parseNonNegative(v string, axis svgunit.Axis, vp *svgunit.Viewport) (Length, error) {
	l, err := svgunit.ParseLength(v, axis, vp, nil)
	if err != nil {
		return 0, err
	}
	if l.Value < 0 {
		return 0, fmt.Errorf("%w: negative length %q", errInvalidValue, v)
	}
	return Length(l.Value), nil
}

// ParseValue resolves the text of the property `p`.
// Percentages are resolved against `vp`, which may be nil.
func ParseValue(p Property, v string, vp *svgunit.Viewport) (Value, error) {
	if strings.TrimSpace(v) == "inherit" && p != PropDisplay {
		return nil, fmt.Errorf("%w: inherit is not supported", errInvalidValue)
	}
	switch p {
	case PropFill, PropStroke:
		return ParsePaint(v)
	case PropColor, PropStopColor, PropFloodColor, PropLightingColor:
		return parseColorOnly(v)
	case PropStrokeWidth:
		return parseNonNegative(v, svgunit.Width, vp)
	case PropStrokeDashoffset:
		l, err := svgunit.ParseLength(v, svgunit.Diagonal, vp, nil)
		return Length(l.Value), err
	case PropFontSize:
		if size, ok := fontSizes[strings.ToLower(strings.TrimSpace(v))]; ok {
			return Length(size), nil
		}
		return parseNonNegative(v, svgunit.Height, vp)
	case PropStrokeDasharray:
		return ParseDashes(v, vp)
	case PropStrokeMiterlimit:
		f, err := svgunit.ParseNumber(v)
		if err != nil {
			return nil, err
		}
		if f < 1 {
			return nil, fmt.Errorf("%w: miter limit %q below 1", errInvalidValue, v)
		}
		return Number(f), nil
	case PropOpacity, PropFillOpacity, PropStrokeOpacity, PropStopOpacity, PropFloodOpacity:
		f, err := svgunit.ParseFraction(v)
		if err != nil {
			return nil, err
		}
		return Number(clamp(f, 0, 1)), nil
	case PropTransform:
		return ParseTransform(v)
	case PropFilter, PropClipPath, PropMarkerStart, PropMarkerMid, PropMarkerEnd, PropMarker:
		return ParseRef(v)
	case PropFontFamily:
		family := strings.TrimSpace(v)
		if family == "" {
			return nil, fmt.Errorf("%w: empty font family", errInvalidValue)
		}
		return Text(family), nil
	default:
		return parseKeyword(p, v)
	}
}
