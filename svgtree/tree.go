// Package svgtree provides the parsed element tree consumed by the
// resolution packages : tag names, ordered attributes, children
// and character data. It knows nothing about SVG semantics.
package svgtree

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

var errInvalidDocument = errors.New("invalid svg xml document")

// Attr is one attribute of an element. The namespace prefix
// is dropped, so that xlink:href is seen as href.
type Attr struct {
	Name, Value string
}

// Element is a node of the tree. Attributes are kept in document order.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string // character data and CDATA sections, concatenated
}

// Attr returns the value of the attribute `name`, the last one winning
// if it is repeated.
func (e *Element) Attr(name string) (string, bool) {
	var (
		value string
		found bool
	)
	for _, a := range e.Attrs {
		if a.Name == name {
			value, found = a.Value, true
		}
	}
	return value, found
}

// ID returns the trimmed id attribute, or an empty string.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return strings.TrimSpace(id)
}

// Walk calls fn for e and its descendants, depth first, in document order.
// The children of an element are skipped when fn returns false.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, child := range e.Children {
		child.Walk(fn)
	}
}

// Parse reads an XML stream and returns its root element.
func Parse(stream io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity

	var (
		root  *Element
		stack []*Element
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return root, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			el := &Element{Tag: se.Name.Local, Attrs: make([]Attr, 0, len(se.Attr))}
			for _, attr := range se.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
			}
			if len(stack) == 0 {
				if root == nil {
					root = el
				}
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(se)
			}
		}
	}
	if root == nil {
		return nil, errInvalidDocument
	}
	return root, nil
}

// ParseFile reads the named file.
func ParseFile(filename string) (*Element, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Parse(fin)
}
