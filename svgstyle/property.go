package svgstyle

import "strings"

// Property is a recognized style property.
type Property uint8

const (
	PropFill Property = iota
	PropFillOpacity
	PropFillRule
	PropStroke
	PropStrokeWidth
	PropStrokeDasharray
	PropStrokeDashoffset
	PropStrokeLinecap
	PropStrokeLinejoin
	PropStrokeMiterlimit
	PropStrokeOpacity
	PropStrokeLeadLinecap // rasterx extension, not an SVG property
	PropStrokeLinegap     // rasterx extension, not an SVG property
	PropOpacity
	PropColor
	PropStopColor
	PropStopOpacity
	PropFloodColor
	PropFloodOpacity
	PropLightingColor
	PropFontFamily
	PropFontWeight
	PropFontStyle
	PropFontSize
	PropTextDecoration
	PropTextAnchor
	PropTransform
	PropFilter
	PropClipPath
	PropClipRule
	PropMarkerStart
	PropMarkerMid
	PropMarkerEnd
	PropMarker
	PropDisplay
	PropVisibility
)

var propertyNames = [...]string{
	PropFill:              "fill",
	PropFillOpacity:       "fill-opacity",
	PropFillRule:          "fill-rule",
	PropStroke:            "stroke",
	PropStrokeWidth:       "stroke-width",
	PropStrokeDasharray:   "stroke-dasharray",
	PropStrokeDashoffset:  "stroke-dashoffset",
	PropStrokeLinecap:     "stroke-linecap",
	PropStrokeLinejoin:    "stroke-linejoin",
	PropStrokeMiterlimit:  "stroke-miterlimit",
	PropStrokeOpacity:     "stroke-opacity",
	PropStrokeLeadLinecap: "stroke-leadlinecap",
	PropStrokeLinegap:     "stroke-linegap",
	PropOpacity:           "opacity",
	PropColor:             "color",
	PropStopColor:         "stop-color",
	PropStopOpacity:       "stop-opacity",
	PropFloodColor:        "flood-color",
	PropFloodOpacity:      "flood-opacity",
	PropLightingColor:     "lighting-color",
	PropFontFamily:        "font-family",
	PropFontWeight:        "font-weight",
	PropFontStyle:         "font-style",
	PropFontSize:          "font-size",
	PropTextDecoration:    "text-decoration",
	PropTextAnchor:        "text-anchor",
	PropTransform:         "transform",
	PropFilter:            "filter",
	PropClipPath:          "clip-path",
	PropClipRule:          "clip-rule",
	PropMarkerStart:       "marker-start",
	PropMarkerMid:         "marker-mid",
	PropMarkerEnd:         "marker-end",
	PropMarker:            "marker",
	PropDisplay:           "display",
	PropVisibility:        "visibility",
}

var propertyByName = func() map[string]Property {
	out := make(map[string]Property, len(propertyNames))
	for p, name := range propertyNames {
		out[name] = Property(p)
	}
	return out
}()

// LookupProperty returns the property with the given (case insensitive) name.
func LookupProperty(name string) (Property, bool) {
	p, ok := propertyByName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "<unknown Property>"
}
