package seatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleNode(css string) SceneNode {
	return SceneNode{
		Type:     "element",
		TagName:  "style",
		Children: []SceneNode{{Type: "text", Value: css}},
	}
}

func TestExtractStylesheetTextFirstDepthFirstMatch(t *testing.T) {
	root := SceneNode{
		TagName: "g",
		Children: []SceneNode{
			{TagName: "g", Children: []SceneNode{
				{TagName: "rect"},
				styleNode(".first{fill:red}"),
			}},
			styleNode(".second{fill:blue}"),
		},
	}
	assert.Equal(t, ".first{fill:red}", ExtractStylesheetText(root))
}

func TestExtractStylesheetTextMissing(t *testing.T) {
	root := SceneNode{TagName: "g", Children: []SceneNode{{TagName: "rect"}}}
	assert.Equal(t, "", ExtractStylesheetText(root))
	assert.Empty(t, CompileStyles(ExtractStylesheetText(root)))
}

func TestCompileStylesNormalizesValues(t *testing.T) {
	styles := CompileStyles(`
		/* seats */
		.seat {
			stroke-width: .5px;
			fill: none;
			stroke-dasharray: 4 2;
			text-align: center;
			font-size: 14px;
			stroke: #333;
		}
	`)
	seat := styles["seat"]
	require.NotNil(t, seat)

	assert.Equal(t, 0.5, seat["strokeWidth"])
	assert.Equal(t, "transparent", seat["fill"])
	assert.Equal(t, []float64{4, 2}, seat["dash"])
	assert.Equal(t, "center", seat["align"])
	assert.Equal(t, 14.0, seat["fontSize"])
	assert.Equal(t, "#333", seat["stroke"])
	assert.NotContains(t, seat, "strokeDasharray")
	assert.NotContains(t, seat, "textAlign")
}

func TestCompileStylesFixesLeadingDotAfterSeparators(t *testing.T) {
	styles := CompileStyles(`.row { stroke-dasharray: .5, .25 1; opacity: .75 }`)
	assert.Equal(t, []float64{0.5, 0.25, 1}, styles["row"]["dash"])
	assert.Equal(t, 0.75, styles["row"]["opacity"])
}

func TestCompileStylesMergesPerProperty(t *testing.T) {
	styles := CompileStyles(`
		.a { fill: red; stroke: blue; }
		.b { fill: black; }
		.a { fill: green; }
	`)
	assert.Equal(t, Style{"fill": "green", "stroke": "blue"}, styles["a"])
	assert.Equal(t, Style{"fill": "black"}, styles["b"])
}

func TestCompileStylesSharedSelectorList(t *testing.T) {
	styles := CompileStyles(`.a, .b { opacity: .25 } div { color: red }`)
	assert.Equal(t, 0.25, styles["a"]["opacity"])
	assert.Equal(t, 0.25, styles["b"]["opacity"])
	assert.NotContains(t, styles, "div")
}

func TestCompileStylesIsDeterministic(t *testing.T) {
	css := `.a{fill:red;stroke-width:2px}.b{stroke-dasharray:1 1}.a{opacity:.5}`
	assert.Equal(t, CompileStyles(css), CompileStyles(css))
}

func TestClassStylesLookupMergesMultipleClasses(t *testing.T) {
	styles := CompileStyles(`.a{fill:red;stroke:blue}.b{fill:green}`)
	assert.Equal(t, Style{"fill": "green", "stroke": "blue"}, styles.Lookup("a b"))
	assert.Equal(t, Style{}, styles.Lookup("missing"))
	assert.Equal(t, Style{}, styles.Lookup(""))
}

func TestStyleCacheReusesCompiledStyles(t *testing.T) {
	cache := NewStyleCache(time.Minute)
	css := `.a{fill:red}`

	first := cache.Compile(css)
	first["a"]["fill"] = "mutated"
	second := cache.Compile(css)

	assert.Equal(t, "red", second["a"]["fill"])
	assert.Equal(t, 1, cache.Len())
}

func TestStyleCacheExpires(t *testing.T) {
	cache := NewStyleCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Compile(`.a{fill:red}`)
	require.Equal(t, 1, cache.Len())

	now = now.Add(2 * time.Minute)
	if _, ok := cache.get(stylesheetHash(`.a{fill:red}`)); ok {
		t.Fatalf("expected entry to expire")
	}
	assert.Equal(t, 0, cache.Len())
}

func TestStyleCacheDisabled(t *testing.T) {
	cache := NewStyleCache(0)
	styles := cache.Compile(`.a{fill:red}`)
	assert.Equal(t, "red", styles["a"]["fill"])
	assert.Equal(t, 0, cache.Len())
}
