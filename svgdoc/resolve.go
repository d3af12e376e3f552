package svgdoc

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgfilter"
	"github.com/benoitkugler/svgmodel/svggradient"
	"github.com/benoitkugler/svgmodel/svgmarker"
	"github.com/benoitkugler/svgmodel/svgpath"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/srwiley/rasterx"
)

var (
	errUnsupportedElement = errors.New("unsupported element")
	errNegativeSize       = errors.New("negative size")
	errMissingHref        = errors.New("use without local href")
	errUnknownTarget      = errors.New("use of an unknown id")
	errUseCycle           = errors.New("use reference cycle")
)

// ElementError reports an element which can't be resolved.
type ElementError struct {
	Tag, ID string
	Err     error
}

func (e *ElementError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("svgdoc: <%s id=%q>: %s", e.Tag, e.ID, e.Err)
	}
	return fmt.Sprintf("svgdoc: <%s>: %s", e.Tag, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// notRendered are the elements which are never painted directly:
// definitions, metadata and animations.
var notRendered = map[string]bool{
	"defs": true, "linearGradient": true, "radialGradient": true, "stop": true,
	"filter": true, "marker": true, "clipPath": true, "mask": true,
	"pattern": true, "symbol": true, "style": true, "title": true,
	"desc": true, "metadata": true, "script": true,
	"animate": true, "animateColor": true, "animateMotion": true,
	"animateTransform": true, "set": true, "mpath": true,
}

// elementFunc fills `d` with the geometry of `el`.
type elementFunc func(r *Resolver, el *svgtree.Element, d *Drawable) error

var elementFuncs = map[string]elementFunc{
	"path":     pathF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  ellipseF,
	"line":     lineF,
	"polyline": polylineF,
	"polygon":  polygonF,
	"image":    imageF,
}

func init() {
	// these functions resolve children, which
	// would otherwise trigger an initialization cycle
	elementFuncs["g"] = groupF
	elementFuncs["a"] = groupF
	elementFuncs["svg"] = svgF
	elementFuncs["switch"] = switchF
	elementFuncs["use"] = useF
	elementFuncs["text"] = textF
	elementFuncs["tspan"] = textF
}

// Resolver resolves the elements of one document.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	reg     *Registries
	mode    ErrorMode
	cascade svgstyle.Cascade

	gradients *svggradient.Resolver
	filters   *svgfilter.Resolver
	clips     map[string]*Clip

	uses    map[*svgtree.Element]bool // use targets being expanded
	markers map[*svgmarker.Spec]bool  // markers being resolved
	// context is the element whose marker content is being
	// resolved, or nil.
	context *Drawable
}

// NewResolver returns a resolver for the definitions in `reg`.
// Only the error mode option is used.
func NewResolver(reg *Registries, opts ...Option) *Resolver {
	o := newOptions(opts)
	return &Resolver{
		reg:       reg,
		mode:      o.mode,
		cascade:   reg.Cascade(),
		gradients: svggradient.NewResolver(reg.Gradients, reg.Viewport),
		filters:   svgfilter.NewResolver(reg.Filters),
		clips:     make(map[string]*Clip),
		uses:      make(map[*svgtree.Element]bool),
		markers:   make(map[*svgmarker.Spec]bool),
	}
}

// Element resolves `el` and its descendants. It returns nil and
// no error for elements which are not rendered, such as definitions
// or hidden elements. Errors of descendants are handled according to
// the error mode.
func (r *Resolver) Element(el *svgtree.Element) (*Drawable, error) {
	return r.element(el, rasterx.Identity)
}

// handle applies the error mode to `err`, returning it only
// in StrictErrorMode.
func (r *Resolver) handle(err error) error {
	switch r.mode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		logx.Logger().Warn("svgdoc: element dropped", "err", err)
	}
	return nil
}

func (r *Resolver) element(el *svgtree.Element, parent rasterx.Matrix2D) (*Drawable, error) {
	if notRendered[el.Tag] {
		return nil, nil
	}
	fn, ok := elementFuncs[el.Tag]
	if !ok {
		return nil, &ElementError{Tag: el.Tag, ID: el.ID(), Err: errUnsupportedElement}
	}
	style := r.cascade.Apply(el)
	if !style.Visible() {
		return nil, nil
	}
	d := &Drawable{Tag: el.Tag, ID: el.ID(), Style: style, Transform: style.Transform()}
	d.Matrix = parent.Mult(d.Transform.Matrix())
	if err := fn(r, el, d); err != nil {
		var ee *ElementError
		if errors.As(err, &ee) {
			return nil, err
		}
		return nil, &ElementError{Tag: el.Tag, ID: d.ID, Err: err}
	}
	if d.Path != nil {
		d.Bounds = d.Path.Outline().Bounds()
	}

	d.Fill = r.paint(style.Fill(), style.FillOpacity(), style)
	d.Stroke = r.paint(style.Stroke(), style.StrokeOpacity(), style)

	if id := style.FilterRef(); id != "" {
		chain, err := r.filters.Resolve(id)
		if err != nil {
			return nil, &ElementError{Tag: el.Tag, ID: d.ID, Err: err}
		}
		d.Filter = chain
	}
	if id := style.ClipRef(); id != "" {
		clip, err := r.clip(id)
		if err != nil {
			return nil, err
		}
		d.Clip = clip
	}
	if d.Path != nil && d.Kind.hasMarkers() {
		if err := r.placeMarkers(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// children resolves the children of `el` into `d`.
func (r *Resolver) children(el *svgtree.Element, d *Drawable) error {
	for _, child := range el.Children {
		cd, err := r.element(child, d.Matrix)
		if err != nil {
			if err = r.handle(err); err != nil {
				return err
			}
			continue
		}
		if cd != nil {
			d.Children = append(d.Children, cd)
		}
	}
	return nil
}

// paint resolves `p`. Gradients which can't be resolved use the
// fallback color, if any, or paint nothing. In marker content, context
// paints are the resolved fill and stroke of the referencing element,
// with `opacity` applied on top. Elsewhere they paint nothing.
func (r *Resolver) paint(p svgstyle.Paint, opacity float64, style svgstyle.EffectiveStyle) ResolvedPaint {
	out := ResolvedPaint{Opacity: opacity}
	switch p.Kind {
	case svgstyle.PaintContextFill, svgstyle.PaintContextStroke:
		if r.context == nil {
			return out
		}
		out = r.context.Stroke
		if p.Kind == svgstyle.PaintContextFill {
			out = r.context.Fill
		}
		out.Opacity *= opacity
	case svgstyle.PaintColor:
		out.Kind, out.Color = svgstyle.PaintColor, p.Color
	case svgstyle.PaintCurrentColor:
		out.Kind, out.Color = svgstyle.PaintColor, style.CurrentColor()
	case svgstyle.PaintGradient:
		if g, ok := r.gradients.Resolve(p.Ref); ok {
			out.Kind, out.Gradient = svgstyle.PaintGradient, g
		} else if p.Fallback != nil && p.Fallback.Kind != svgstyle.PaintGradient {
			return r.paint(*p.Fallback, opacity, style)
		}
	}
	return out
}

// clip resolves the clipPath `id`, once. Unknown ids and self
// referencing clip paths resolve to nil.
func (r *Resolver) clip(id string) (*Clip, error) {
	if c, done := r.clips[id]; done {
		return c, nil
	}
	el, ok := r.reg.Clips[id]
	if !ok {
		logx.Logger().Debug("svgdoc: unknown clip path, ignored", "id", id)
		r.clips[id] = nil
		return nil, nil
	}
	r.clips[id] = nil // a reference while resolving is a cycle

	out := &Clip{ID: id, Transform: r.cascade.Apply(el).Transform()}
	if v, _ := el.Attr("clipPathUnits"); strings.TrimSpace(v) == "objectBoundingBox" {
		out.Units = ClipObjectBoundingBox
	}
	holder := Drawable{Matrix: out.Transform.Matrix()}
	if err := r.children(el, &holder); err != nil {
		delete(r.clips, id)
		return nil, err
	}
	out.Children = holder.Children
	r.clips[id] = out
	return out, nil
}

// placeMarkers resolves the markers of `d` and their content.
func (r *Resolver) placeMarkers(d *Drawable) error {
	d.Markers = svgmarker.Resolve(d.Style, r.reg.Markers)
	instances := d.Markers.Place(d.Path.Markers())
	if len(instances) == 0 {
		return nil
	}
	previous := r.context
	r.context = d
	defer func() { r.context = previous }()

	for _, inst := range instances {
		mi := MarkerInstance{Instance: inst}
		if r.markers[inst.Spec] {
			logx.Logger().Debug("svgdoc: recursive marker, content ignored", "id", inst.Spec.ID)
		} else {
			r.markers[inst.Spec] = true
			holder := Drawable{Matrix: d.Matrix.Mult(inst.Transform)}
			err := r.children(inst.Spec.Content, &holder)
			delete(r.markers, inst.Spec)
			if err != nil {
				return err
			}
			mi.Children = holder.Children
		}
		d.MarkerInstances = append(d.MarkerInstances, mi)
	}
	return nil
}

// length resolves the attribute `name`, 0 if missing.
func (r *Resolver) length(el *svgtree.Element, name string, axis svgunit.Axis) float64 {
	v, ok := el.Attr(name)
	if !ok {
		return 0
	}
	return svgunit.Resolve(v, axis, r.cascade.Viewport, nil)
}

// firstLength resolves the first item of a length list.
func (r *Resolver) firstLength(el *svgtree.Element, name string, axis svgunit.Axis) (float64, bool) {
	v, ok := el.Attr(name)
	if !ok {
		return 0, false
	}
	items := strings.FieldsFunc(v, func(c rune) bool { return c == ',' || unicode.IsSpace(c) })
	if len(items) == 0 {
		return 0, false
	}
	return svgunit.Resolve(items[0], axis, r.cascade.Viewport, nil), true
}

func pathF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	v, _ := el.Attr("d")
	path, err := svgpath.Parse(v, r.cascade.Viewport)
	if err != nil {
		return err
	}
	d.Kind, d.Path = KindPath, &path
	return nil
}

func rectF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	s := Shape{
		X:      r.length(el, "x", svgunit.Width),
		Y:      r.length(el, "y", svgunit.Height),
		Width:  r.length(el, "width", svgunit.Width),
		Height: r.length(el, "height", svgunit.Height),
		Rx:     r.length(el, "rx", svgunit.Width),
		Ry:     r.length(el, "ry", svgunit.Height),
	}
	if s.Width < 0 || s.Height < 0 {
		return errNegativeSize
	}
	path := svgpath.Rect(s.X, s.Y, s.Width, s.Height, s.Rx, s.Ry)
	d.Kind, d.Shape, d.Path = KindRect, s, &path
	return nil
}

func circleF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	radius := r.length(el, "r", svgunit.Diagonal)
	if radius < 0 {
		return errNegativeSize
	}
	s := Shape{
		X:  r.length(el, "cx", svgunit.Width),
		Y:  r.length(el, "cy", svgunit.Height),
		Rx: radius,
		Ry: radius,
	}
	path := svgpath.Ellipse(s.X, s.Y, s.Rx, s.Ry)
	d.Kind, d.Shape, d.Path = KindCircle, s, &path
	return nil
}

func ellipseF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	s := Shape{
		X:  r.length(el, "cx", svgunit.Width),
		Y:  r.length(el, "cy", svgunit.Height),
		Rx: r.length(el, "rx", svgunit.Width),
		Ry: r.length(el, "ry", svgunit.Height),
	}
	if s.Rx < 0 || s.Ry < 0 {
		return errNegativeSize
	}
	path := svgpath.Ellipse(s.X, s.Y, s.Rx, s.Ry)
	d.Kind, d.Shape, d.Path = KindEllipse, s, &path
	return nil
}

func lineF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	p1 := svgpath.Point{X: r.length(el, "x1", svgunit.Width), Y: r.length(el, "y1", svgunit.Height)}
	p2 := svgpath.Point{X: r.length(el, "x2", svgunit.Width), Y: r.length(el, "y2", svgunit.Height)}
	path := svgpath.Line(p1.X, p1.Y, p2.X, p2.Y)
	d.Kind, d.Shape.Points, d.Path = KindLine, []svgpath.Point{p1, p2}, &path
	return nil
}

func polylineF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	v, _ := el.Attr("points")
	points := svgpath.ParsePoints(v)
	path := svgpath.Polyline(points, false)
	d.Kind, d.Shape.Points, d.Path = KindPolyline, points, &path
	return nil
}

func polygonF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	v, _ := el.Attr("points")
	points := svgpath.ParsePoints(v)
	path := svgpath.Polyline(points, true)
	d.Kind, d.Shape.Points, d.Path = KindPolygon, points, &path
	return nil
}

func imageF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	d.Kind = KindImage
	d.Shape = Shape{
		X:      r.length(el, "x", svgunit.Width),
		Y:      r.length(el, "y", svgunit.Height),
		Width:  r.length(el, "width", svgunit.Width),
		Height: r.length(el, "height", svgunit.Height),
	}
	if d.Shape.Width < 0 || d.Shape.Height < 0 {
		return errNegativeSize
	}
	d.Href, _ = el.Attr("href")
	d.Href = strings.TrimSpace(d.Href)
	return nil
}

func groupF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	d.Kind = KindGroup
	return r.children(el, d)
}

// svgF handles nested svg elements, positioned at (x, y).
func svgF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	d.Kind = KindGroup
	x, y := r.length(el, "x", svgunit.Width), r.length(el, "y", svgunit.Height)
	translate(d, x, y)
	return r.children(el, d)
}

// switchF keeps the first rendered child.
func switchF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	d.Kind = KindGroup
	for _, child := range el.Children {
		cd, err := r.element(child, d.Matrix)
		if err != nil {
			if err = r.handle(err); err != nil {
				return err
			}
			continue
		}
		if cd != nil {
			d.Children = []*Drawable{cd}
			return nil
		}
	}
	return nil
}

// translate appends translate(x, y) to the transform of `d`.
func translate(d *Drawable, x, y float64) {
	if x == 0 && y == 0 {
		return
	}
	d.Transform = d.Transform.Then(svgstyle.Transform{{Kind: svgstyle.Translate, Args: []float64{x, y}}})
	d.Matrix = d.Matrix.Translate(x, y)
}

// useF expands the referenced element as the only child
// of the use element, translated by (x, y).
func useF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	d.Kind = KindGroup
	href, _ := el.Attr("href")
	href = strings.TrimSpace(href)
	if !strings.HasPrefix(href, "#") || len(href) == 1 {
		return errMissingHref
	}
	target, ok := r.reg.Nodes[href[1:]]
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownTarget, href[1:])
	}
	if r.uses[target] {
		return fmt.Errorf("%w: %q", errUseCycle, href[1:])
	}
	translate(d, r.length(el, "x", svgunit.Width), r.length(el, "y", svgunit.Height))

	r.uses[target] = true
	defer delete(r.uses, target)
	if target.Tag == "symbol" {
		return r.children(target, d)
	}
	child, err := r.element(target, d.Matrix)
	if err != nil {
		return err
	}
	if child != nil {
		d.Children = []*Drawable{child}
	}
	return nil
}

// textF handles text and tspan elements. Nested tspan
// elements are resolved as children.
func textF(r *Resolver, el *svgtree.Element, d *Drawable) error {
	d.Kind = KindText
	run := &TextRun{
		Content: collapseSpaces(el.Text),
		Anchor:  d.Style.TextAnchor(),
		Font:    svgstyle.Font{Weight: svgstyle.DefaultFontWeight, Size: svgstyle.DefaultFontSize},
	}
	if d.Style.Font != nil {
		run.Font = *d.Style.Font
	}
	var hasX, hasY bool
	run.X, hasX = r.firstLength(el, "x", svgunit.Width)
	run.Y, hasY = r.firstLength(el, "y", svgunit.Height)
	run.Positioned = hasX || hasY
	d.Text = run
	d.Shape.X, d.Shape.Y = run.X, run.Y
	return r.children(el, d)
}

// Resolve collects the definitions of the document rooted at `root`,
// then resolves its rendered elements.
func Resolve(root *svgtree.Element, opts ...Option) (*Document, error) {
	reg, err := Collect(root, opts...)
	if err != nil {
		return nil, err
	}
	out := &Document{
		ViewBox:      reg.ViewBox,
		Titles:       reg.Titles,
		Descriptions: reg.Descriptions,
	}
	if reg.Viewport != nil {
		out.Viewport = *reg.Viewport
	}
	r := NewResolver(reg, opts...)
	holder := Drawable{Matrix: rasterx.Identity}
	if err := r.children(root, &holder); err != nil {
		return nil, err
	}
	out.Drawables = holder.Children
	return out, nil
}

// Read parses and resolves an SVG document.
func Read(stream io.Reader, opts ...Option) (*Document, error) {
	root, err := svgtree.Parse(stream)
	if err != nil {
		return nil, fmt.Errorf("svgdoc: %w", err)
	}
	return Resolve(root, opts...)
}

// ReadFile parses and resolves the named SVG file.
func ReadFile(filename string, opts ...Option) (*Document, error) {
	root, err := svgtree.ParseFile(filename)
	if err != nil {
		return nil, fmt.Errorf("svgdoc: %w", err)
	}
	return Resolve(root, opts...)
}
