// Package svgdoc resolves a parsed SVG document into a tree of drawables,
// whose styles, paints, filters, clip paths and markers are fully
// resolved, ready to be consumed by a rendering driver.
//
// Resolution happens in two phases. Collect scans the whole tree once,
// building the registries of referenceable definitions. Then the
// rendered elements are walked and resolved against these registries.
package svgdoc

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgfilter"
	"github.com/benoitkugler/svgmodel/svggradient"
	"github.com/benoitkugler/svgmodel/svgmarker"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// Registries holds the definitions of a document, by id.
// When an id is repeated, the first definition wins.
type Registries struct {
	// Viewport is nil if the document declares no size
	// and none is provided with WithViewport.
	Viewport *svgunit.Viewport
	// ViewBox is nil if the root element has no valid viewBox.
	ViewBox *svgunit.Bounds
	Sheet   *svgstyle.Sheet // nil without style element

	Gradients svggradient.Registry
	Filters   svgfilter.Registry
	Markers   svgmarker.Registry
	Clips     map[string]*svgtree.Element
	// Nodes holds every element with an id, the targets of use elements.
	Nodes map[string]*svgtree.Element

	Titles, Descriptions []string
}

// Cascade returns the style cascade of the document.
func (reg *Registries) Cascade() svgstyle.Cascade {
	return svgstyle.Cascade{Sheet: reg.Sheet, Viewport: reg.Viewport}
}

// rootViewport returns the size declared by the root element: width and
// height, or the viewBox size for the missing ones, or the size provided
// as option.
func rootViewport(root *svgtree.Element, viewBox *svgunit.Bounds, def *svgunit.Viewport) *svgunit.Viewport {
	if root.Tag != "svg" {
		return def
	}
	dimension := func(name string, axis svgunit.Axis) (float64, bool) {
		v, ok := root.Attr(name)
		if !ok {
			return 0, false
		}
		l, err := svgunit.ParseLength(v, axis, nil, nil)
		if err != nil || l.Value <= 0 {
			logx.Logger().Debug("svgdoc: invalid root dimension", "attr", name, "value", v)
			return 0, false
		}
		return l.Value, true
	}
	w, hasW := dimension("width", svgunit.Width)
	h, hasH := dimension("height", svgunit.Height)
	if viewBox != nil {
		if !hasW {
			w, hasW = viewBox.W, true
		}
		if !hasH {
			h, hasH = viewBox.H, true
		}
	}
	if !hasW && !hasH {
		return def
	}
	if def != nil {
		if !hasW {
			w = def.Width
		}
		if !hasH {
			h = def.Height
		}
	}
	return &svgunit.Viewport{Width: w, Height: h}
}

// Collect scans the tree rooted at `root` and builds its registries.
// Only an invalid style sheet, in StrictErrorMode, is reported
// as an error.
func Collect(root *svgtree.Element, opts ...Option) (*Registries, error) {
	o := newOptions(opts)
	reg := &Registries{
		Gradients: make(svggradient.Registry),
		Filters:   make(svgfilter.Registry),
		Markers:   make(svgmarker.Registry),
		Clips:     make(map[string]*svgtree.Element),
		Nodes:     make(map[string]*svgtree.Element),
	}
	if root.Tag == "svg" {
		if v, ok := root.Attr("viewBox"); ok {
			if vb, ok := svgmarker.ParseViewBox(v); ok {
				reg.ViewBox = &vb
			} else {
				logx.Logger().Debug("svgdoc: invalid root viewBox", "viewBox", v)
			}
		}
	}
	reg.Viewport = rootViewport(root, reg.ViewBox, o.viewport)

	// the sheet is needed by the styles of gradient stops and
	// filter primitives, so it is built first
	var sheetErr error
	root.Walk(func(el *svgtree.Element) bool {
		if el.Tag != "style" || sheetErr != nil {
			return true
		}
		if typ, ok := el.Attr("type"); ok && strings.TrimSpace(typ) != "text/css" {
			return false
		}
		sheet, err := svgstyle.ParseSheet(el.Text, reg.Viewport)
		if err != nil {
			switch o.mode {
			case StrictErrorMode:
				sheetErr = fmt.Errorf("svgdoc: %w", err)
			case WarnErrorMode:
				logx.Logger().Warn("svgdoc: style sheet ignored", "err", err)
			}
			return false
		}
		if reg.Sheet == nil {
			reg.Sheet = sheet
		} else {
			reg.Sheet.Merge(sheet)
		}
		return false
	})
	if sheetErr != nil {
		return nil, sheetErr
	}

	cascade := reg.Cascade()
	root.Walk(func(el *svgtree.Element) bool {
		if id := el.ID(); id != "" {
			if _, has := reg.Nodes[id]; has {
				logx.Logger().Debug("svgdoc: duplicated id, first definition used", "id", id)
			} else {
				reg.Nodes[id] = el
			}
		}
		switch el.Tag {
		case "linearGradient", "radialGradient":
			if spec, ok := svggradient.FromElement(el, cascade); ok {
				reg.Gradients.Add(spec)
			}
			return false
		case "filter":
			if spec, ok := svgfilter.FromElement(el, cascade); ok {
				reg.Filters.Add(spec)
			}
			return false
		case "marker":
			if spec, ok := svgmarker.FromElement(el, reg.Viewport); ok {
				reg.Markers.Add(spec)
			}
		case "clipPath":
			if id := el.ID(); id != "" {
				if _, has := reg.Clips[id]; !has {
					reg.Clips[id] = el
				}
			}
		case "title":
			reg.Titles = append(reg.Titles, collapseSpaces(el.Text))
		case "desc":
			reg.Descriptions = append(reg.Descriptions, collapseSpaces(el.Text))
		}
		return true
	})
	return reg, nil
}

// collapseSpaces trims `s` and replaces its runs of white space
// by a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
