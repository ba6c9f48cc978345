package svgdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="100mm" height="50mm">
	<title> Sample </title>
	<defs>
		<pattern id="hatch" width="10" height="10"><path d="M0 0L10 10"/></pattern>
	</defs>
	<g id="group" transform="translate(5,5)">
		<rect id="r" width="10" height="10" fill="url(#hatch)"/>
		<circle id="r" r="4"/>
	</g>
	<other:elem xmlns:other="http://example.com" id="foreign"/>
</svg>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "svg", doc.Root.Name.Local)
	assert.True(t, doc.Root.IsSVG())
	assert.Equal(t, "Sample", doc.Title())
	require.Len(t, doc.Root.Children, 4)

	width, ok := doc.Root.Attr("width")
	assert.True(t, ok)
	assert.Equal(t, "100mm", width)

	pattern := doc.FindByID("hatch")
	require.NotNil(t, pattern)
	assert.Equal(t, "pattern", pattern.Name.Local)
	assert.Equal(t, "defs", pattern.Parent.Name.Local)

	// first element wins
	r := doc.FindByID("r")
	require.NotNil(t, r)
	assert.Equal(t, "rect", r.Name.Local)

	assert.Nil(t, doc.FindByID("missing"))

	foreign := doc.FindByID("foreign")
	require.NotNil(t, foreign)
	assert.False(t, foreign.IsSVG())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrNoRoot))

	_, err = Parse(strings.NewReader("<svg><g></svg>"))
	assert.Error(t, err)
}

func TestParseCharset(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><title>caf\xe9</title></svg>"
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "café", doc.Title())
}

func TestParseLength(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected Length
		user     float64
	}{
		{"12", Length{12, UserUnit}, 12},
		{"12px", Length{12, Px}, 12},
		{"1in", Length{1, In}, 96},
		{"25.4mm", Length{25.4, Mm}, 96},
		{"2.54cm", Length{2.54, Cm}, 96},
		{"72pt", Length{72, Pt}, 96},
		{"6pc", Length{6, Pc}, 96},
		{"50%", Length{50, Percent}, 100},
		{" -3 ", Length{-3, UserUnit}, -3},
	} {
		got, err := ParseLength(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.expected, got)
		assert.InDelta(t, test.user, got.Resolve(200), 1e-9, test.input)
	}

	for _, invalid := range []string{"", "mm", "12 apples", "1e"} {
		_, err := ParseLength(invalid)
		assert.Error(t, err, invalid)
	}
}
