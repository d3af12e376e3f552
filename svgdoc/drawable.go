package svgdoc

import (
	"image/color"

	"github.com/benoitkugler/svgmodel/svgfilter"
	"github.com/benoitkugler/svgmodel/svggradient"
	"github.com/benoitkugler/svgmodel/svgmarker"
	"github.com/benoitkugler/svgmodel/svgpath"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/srwiley/rasterx"
)

// Kind is the kind of geometry of a drawable.
type Kind uint8

const (
	KindGroup Kind = iota // g, a, switch, nested svg and use
	KindPath
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindText
	KindImage
)

var kindNames = [...]string{
	KindGroup:    "group",
	KindPath:     "path",
	KindRect:     "rect",
	KindCircle:   "circle",
	KindEllipse:  "ellipse",
	KindLine:     "line",
	KindPolyline: "polyline",
	KindPolygon:  "polygon",
	KindText:     "text",
	KindImage:    "image",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown Kind>"
}

// hasMarkers returns true for the kinds on which markers are painted.
func (k Kind) hasMarkers() bool {
	switch k {
	case KindPath, KindLine, KindPolyline, KindPolygon:
		return true
	default:
		return false
	}
}

// Shape holds the declared geometry, in user units.
type Shape struct {
	X, Y          float64 // origin of rect, image and text; center of circle and ellipse
	Width, Height float64 // rect and image
	Rx, Ry        float64 // corner radii of rect; radii of circle and ellipse
	// Points are the end points of line, and the vertices of polyline and polygon.
	Points []svgpath.Point
}

// TextRun is the content of a text or tspan element.
type TextRun struct {
	X, Y float64
	// Positioned is false when neither x nor y is declared, meaning
	// the run continues after the previous one.
	Positioned bool
	Content    string // with white space collapsed
	Font       svgstyle.Font
	Anchor     string
}

// ResolvedPaint is a fill or stroke, with paint server references
// and context paints resolved.
type ResolvedPaint struct {
	// Kind is one of PaintNone, PaintColor or PaintGradient.
	Kind     svgstyle.PaintKind
	Color    color.NRGBA
	Gradient *svggradient.Resolved
	Opacity  float64 // fill-opacity or stroke-opacity
}

// IsNone returns true if nothing is painted.
func (p ResolvedPaint) IsNone() bool { return p.Kind == svgstyle.PaintNone }

// ClipUnits is the clipPathUnits attribute.
type ClipUnits uint8

const (
	ClipUserSpaceOnUse ClipUnits = iota // the default
	ClipObjectBoundingBox
)

func (u ClipUnits) String() string {
	if u == ClipObjectBoundingBox {
		return "objectBoundingBox"
	}
	return "userSpaceOnUse"
}

// Clip is a resolved clipPath element. It is shared by
// all the elements referencing it, so the Matrix of its children
// is relative to the user space of the clipped element.
type Clip struct {
	ID        string
	Units     ClipUnits
	Transform svgstyle.Transform
	Children  []*Drawable
}

// MarkerInstance is a marker placed on a vertex, with its content
// resolved. The content matrices include the instance transform.
type MarkerInstance struct {
	svgmarker.Instance
	Children []*Drawable
}

// Drawable is a resolved element.
type Drawable struct {
	Tag  string
	ID   string
	Kind Kind

	// Path is the outline of shapes, nil for groups, text and images.
	Path *svgpath.Path
	// Bounds is the bounding box of Path, in user units. It is the
	// reference box of objectBoundingBox gradients.
	Bounds svgunit.Bounds
	Shape  Shape
	Text   *TextRun
	Href   string // image source, kept opaque

	Style        svgstyle.EffectiveStyle
	Fill, Stroke ResolvedPaint

	// Transform is the transform declared on the element.
	Transform svgstyle.Transform
	// Matrix maps the user space of the element to the
	// coordinates of the document (before the root viewBox mapping).
	Matrix rasterx.Matrix2D

	Filter          *svgfilter.Chain   // nil if not filtered
	Clip            *Clip              // nil if not clipped
	Markers         *svgmarker.Context // nil without markers
	MarkerInstances []MarkerInstance

	Children []*Drawable
}

// Walk calls fn for d and its descendants, depth first.
// Clip and marker content is not visited. The children of a
// drawable are skipped when fn returns false.
func (d *Drawable) Walk(fn func(*Drawable) bool) {
	if !fn(d) {
		return
	}
	for _, child := range d.Children {
		child.Walk(fn)
	}
}

// Document is a resolved SVG document.
type Document struct {
	// Viewport is the size declared by the root element, or the
	// one provided with WithViewport, or zero.
	Viewport svgunit.Viewport
	// ViewBox is nil if the root element has no valid viewBox.
	// Drivers map it to the viewport.
	ViewBox *svgunit.Bounds

	Titles, Descriptions []string

	// Drawables are the resolved children of the root element.
	Drawables []*Drawable
}
