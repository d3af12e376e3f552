package main

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/svgmodel/svgdoc"
	"github.com/benoitkugler/svgmodel/svgstyle"
	"github.com/benoitkugler/svgmodel/svgunit"
	"github.com/srwiley/rasterx"
)

type summary struct {
	Viewport     [2]float64  `yaml:"viewport" json:"viewport"`
	ViewBox      *[4]float64 `yaml:"viewBox,omitempty" json:"viewBox,omitempty"`
	Titles       []string    `yaml:"titles,omitempty" json:"titles,omitempty"`
	Descriptions []string    `yaml:"descriptions,omitempty" json:"descriptions,omitempty"`
	Drawables    []node      `yaml:"drawables" json:"drawables"`
}

type node struct {
	Kind      string      `yaml:"kind" json:"kind"`
	ID        string      `yaml:"id,omitempty" json:"id,omitempty"`
	Fill      string      `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke    string      `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	Transform string      `yaml:"transform,omitempty" json:"transform,omitempty"`
	Commands  int         `yaml:"commands,omitempty" json:"commands,omitempty"`
	Bounds    *[4]float64 `yaml:"bounds,omitempty" json:"bounds,omitempty"`
	Text      string      `yaml:"text,omitempty" json:"text,omitempty"`
	Href      string      `yaml:"href,omitempty" json:"href,omitempty"`
	Filter    []string    `yaml:"filter,omitempty" json:"filter,omitempty"`
	Clip      string      `yaml:"clip,omitempty" json:"clip,omitempty"`
	Markers   []string    `yaml:"markers,omitempty" json:"markers,omitempty"`
	Children  []node      `yaml:"children,omitempty" json:"children,omitempty"`
}

func summarize(doc *svgdoc.Document) summary {
	out := summary{
		Viewport:     [2]float64{doc.Viewport.Width, doc.Viewport.Height},
		Titles:       doc.Titles,
		Descriptions: doc.Descriptions,
	}
	if vb := doc.ViewBox; vb != nil {
		out.ViewBox = &[4]float64{vb.X, vb.Y, vb.W, vb.H}
	}
	for _, d := range doc.Drawables {
		out.Drawables = append(out.Drawables, summarizeNode(d))
	}
	return out
}

func hex(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func paint(p svgdoc.ResolvedPaint, bounds svgunit.Bounds) string {
	var s string
	switch p.Kind {
	case svgstyle.PaintColor:
		s = hex(p.Color)
	case svgstyle.PaintGradient:
		g := p.Gradient.Rasterx(bounds)
		kind := "linear"
		if g.IsRadial {
			kind = "radial"
		}
		s = fmt.Sprintf("%s gradient #%s, %d stops", kind, p.Gradient.ID, len(g.Stops))
		if g.Spread != rasterx.PadSpread {
			s += ", " + p.Gradient.Spread.String()
		}
	default:
		return ""
	}
	if p.Opacity != 1 {
		s += fmt.Sprintf(" @%g", p.Opacity)
	}
	return s
}

func summarizeNode(d *svgdoc.Drawable) node {
	out := node{
		Kind:      d.Kind.String(),
		ID:        d.ID,
		Transform: d.Transform.String(),
		Href:      d.Href,
	}
	if d.Kind != svgdoc.KindGroup {
		out.Fill = paint(d.Fill, d.Bounds)
		out.Stroke = paint(d.Stroke, d.Bounds)
	}
	if d.Path != nil {
		out.Commands = len(d.Path.Commands)
		b := d.Bounds
		out.Bounds = &[4]float64{b.X, b.Y, b.W, b.H}
	}
	if d.Text != nil {
		out.Text = d.Text.Content
	}
	if d.Filter != nil {
		for _, eff := range d.Filter.Effects {
			out.Filter = append(out.Filter, fmt.Sprintf("%s <- %s", eff.Params.Type(), eff.In))
		}
	}
	if d.Clip != nil {
		out.Clip = d.Clip.ID
	}
	for _, mi := range d.MarkerInstances {
		out.Markers = append(out.Markers, fmt.Sprintf("%s #%s at (%g, %g), %g deg",
			mi.Position, mi.Spec.ID, mi.Vertex.X, mi.Vertex.Y, mi.Angle))
	}
	for _, child := range d.Children {
		out.Children = append(out.Children, summarizeNode(child))
	}
	return out
}
