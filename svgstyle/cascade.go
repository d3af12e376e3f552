// Package svgstyle resolves the effective style of SVG elements, by
// merging the rules of the document style sheet with the presentation
// attributes and the inline style of each element.
//
// Only explicitly set properties are merged : there is no CSS inheritance
// between parent and child elements.
package svgstyle

import (
	"strings"

	"github.com/benoitkugler/svgmodel/svgtree"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// Cascade holds what is needed to compute the style of an element.
type Cascade struct {
	Sheet    *Sheet            // may be nil
	Viewport *svgunit.Viewport // may be nil
}

// Apply merges, from lowest to highest precedence :
//   - the rule matching the tag name of `el`
//   - the rules of its classes, in attribute order
//   - its presentation attributes, in document order
//   - its inline style attribute
//
// Each tier overwrites the previous ones property by property.
func (c Cascade) Apply(el *svgtree.Element) EffectiveStyle {
	var props PropertySet
	if rule, ok := c.Sheet.Rule(el.Tag); ok {
		props.Merge(rule)
	}
	if class, ok := el.Attr("class"); ok {
		for _, name := range strings.Fields(class) {
			if rule, ok := c.Sheet.Rule("." + name); ok {
				props.Merge(rule)
			}
		}
	}
	var inline []string
	for _, attr := range el.Attrs {
		if attr.Name == "style" {
			inline = append(inline, attr.Value)
			continue
		}
		setDeclaration(&props, attr.Name, attr.Value, c.Viewport)
	}
	for _, style := range inline {
		for _, decl := range parseDeclarations(style) {
			setDeclaration(&props, decl[0], decl[1], c.Viewport)
		}
	}
	return NewEffectiveStyle(props)
}
