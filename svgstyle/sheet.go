package svgstyle

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/svgmodel/internal/logx"
	"github.com/benoitkugler/svgmodel/svgunit"
)

// Sheet holds the rules of the <style> elements of a document,
// keyed by selector : a tag name, or a class name prefixed by a dot.
type Sheet struct {
	rules map[string]PropertySet
	order []string
}

// isSupportedSelector returns true for tag and class selectors.
func isSupportedSelector(sel string) bool {
	if sel == "" {
		return false
	}
	name := strings.TrimPrefix(sel, ".")
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')) {
			return false
		}
	}
	return true
}

// ParseSheet parses the content of a <style> element.
// Percentages are resolved against `vp`, which may be nil.
// Only tag and class selectors are supported : other selectors
// and at-rules are ignored. Invalid declarations are skipped.
func ParseSheet(content string, vp *svgunit.Viewport) (*Sheet, error) {
	pss, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("svgstyle: invalid style sheet: %w", err)
	}
	out := &Sheet{rules: make(map[string]PropertySet)}
	for _, r := range pss.Rules {
		if r.Kind == css.AtRule {
			logx.Logger().Debug("svgstyle: at-rule not supported", "name", r.Name)
			continue
		}
		props := declarationsToSet(r.Declarations, vp)
		for _, sel := range r.Selectors {
			sel = strings.TrimSpace(sel)
			if !isSupportedSelector(sel) {
				logx.Logger().Debug("svgstyle: selector not supported", "selector", sel)
				continue
			}
			// each selector receives its own copy
			out.add(sel, props.Clone())
		}
	}
	return out, nil
}

func (s *Sheet) add(sel string, props PropertySet) {
	existing, has := s.rules[sel]
	if !has {
		s.order = append(s.order, sel)
	}
	existing.Merge(props)
	s.rules[sel] = existing
}

// Merge adds the rules of `other`, which take precedence.
func (s *Sheet) Merge(other *Sheet) {
	if other == nil {
		return
	}
	if s.rules == nil {
		s.rules = make(map[string]PropertySet)
	}
	for _, sel := range other.order {
		s.add(sel, other.rules[sel].Clone())
	}
}

// Rule returns a copy of the properties declared for `selector`.
// It is safe to call on a nil sheet.
func (s *Sheet) Rule(selector string) (PropertySet, bool) {
	if s == nil {
		return PropertySet{}, false
	}
	props, ok := s.rules[selector]
	if !ok {
		return PropertySet{}, false
	}
	return props.Clone(), true
}

// Selectors returns the selectors of the sheet, in declaration order.
func (s *Sheet) Selectors() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// declarationsToSet resolves the recognized declarations.
func declarationsToSet(decls []*css.Declaration, vp *svgunit.Viewport) PropertySet {
	var out PropertySet
	for _, decl := range decls {
		setDeclaration(&out, decl.Property, decl.Value, vp)
	}
	return out
}

// setDeclaration resolves and adds one declaration. Unknown properties
// and invalid values leave `props` unchanged.
func setDeclaration(props *PropertySet, name, value string, vp *svgunit.Viewport) {
	p, ok := LookupProperty(name)
	if !ok {
		return
	}
	v, err := ParseValue(p, value, vp)
	if err != nil {
		logx.Logger().Debug("svgstyle: invalid value, property left unset", "property", name, "value", value, "err", err)
		return
	}
	props.Set(p, v)
}

// parseDeclarations reads an inline style attribute. The CSS parser
// is tried first, then a plain split on ';' and ':' for inputs it
// rejects.
func parseDeclarations(style string) [][2]string {
	text := strings.TrimSpace(style)
	// the CSS parser is strict about the final semicolon
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	if decls, err := parser.ParseDeclarations(text); err == nil {
		out := make([][2]string, len(decls))
		for i, d := range decls {
			out[i] = [2]string{d.Property, d.Value}
		}
		return out
	}
	var out [][2]string
	for _, pair := range strings.Split(style, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			out = append(out, [2]string{strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])})
		}
	}
	return out
}
