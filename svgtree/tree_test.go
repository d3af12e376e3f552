package svgtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="10" height="20">
	<style><![CDATA[ .a { fill: red } ]]></style>
	<g id="group"><use xlink:href="#r" x="1"/></g>
	<text>Hello &amp; bye</text>
</svg>`
	root, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, []Attr{{"width", "10"}, {"height", "20"}}, root.Attrs)
	require.Len(t, root.Children, 3)

	assert.Contains(t, root.Children[0].Text, ".a { fill: red }")

	use := root.Children[1].Children[0]
	href, ok := use.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "#r", href)
	assert.Equal(t, "group", root.Children[1].ID())

	assert.Equal(t, "Hello & bye", root.Children[2].Text)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("   "))
	assert.Error(t, err)
}

func TestWalk(t *testing.T) {
	root, err := Parse(strings.NewReader(`<svg><g><rect/><circle/></g><defs><path/></defs></svg>`))
	require.NoError(t, err)

	var tags []string
	root.Walk(func(e *Element) bool {
		tags = append(tags, e.Tag)
		return e.Tag != "defs"
	})
	assert.Equal(t, []string{"svg", "g", "rect", "circle", "defs"}, tags)
}

func TestAttrLastWins(t *testing.T) {
	e := &Element{Attrs: []Attr{{"fill", "red"}, {"fill", "blue"}}}
	v, ok := e.Attr("fill")
	assert.True(t, ok)
	assert.Equal(t, "blue", v)
	_, ok = e.Attr("stroke")
	assert.False(t, ok)
}
