package svgjson

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-seatmap/components/seatmap"
)

const venue = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 1000 800">
  <!-- exported -->
  <style>
    .seat { fill: #0a0; stroke-width: .5px }
  </style>
  <rect id="bg" width="1000" height="800"/>
  <g id="tickets">
    <g id="ZV-SA-r0012">
      <rect class="seat" width="10" height="10"/>
    </g>
    <text x="5" y="30"><tspan>Stage</tspan></text>
    <image xlink:href="/logo.png" width="20" height="20"/>
  </g>
</svg>`

func TestParseBuildsSceneTree(t *testing.T) {
	scene, err := Parse(strings.NewReader(venue))
	require.NoError(t, err)

	assert.Equal(t, [2]float64{1000, 800}, scene.ViewBox)
	assert.Equal(t, "g", scene.Root.TagName)
	require.Len(t, scene.Root.Children, 3)

	style := scene.Root.Children[0]
	assert.Equal(t, "style", style.TagName)
	require.Len(t, style.Children, 1)
	assert.Contains(t, style.Children[0].Value, ".seat")

	tickets := scene.Root.Children[2]
	assert.Equal(t, "tickets", tickets.ID())
	require.Len(t, tickets.Children, 3)
	assert.Equal(t, "Stage", tickets.Children[1].Children[0].Children[0].Value)
	assert.Equal(t, "/logo.png", tickets.Children[2].Prop("href"))
}

func TestParsedSceneConverts(t *testing.T) {
	scene, err := Parse(strings.NewReader(venue))
	require.NoError(t, err)

	res, err := seatmap.NewConverter(seatmap.ConverterOptions{}).Convert(context.Background(), scene)
	require.NoError(t, err)

	row := res.Root.FindByID("ZV-SA-r0012")
	require.NotNil(t, row)
	assert.True(t, row.Purchasable)
	assert.True(t, row.CachedGroup)
	assert.Equal(t, "#0a0", row.Children[0].Fill)
	assert.Equal(t, 0.5, row.Children[0].StrokeWidth)

	label := res.Root.Find(func(s *seatmap.Shape) bool { return s.Kind == seatmap.ShapeText })
	require.NotNil(t, label)
	assert.Equal(t, "Stage", label.Text)
}

func TestParseFallsBackToWidthAndHeight(t *testing.T) {
	scene, err := Parse(strings.NewReader(`<svg width="300px" height="200"><rect/></svg>`))
	require.NoError(t, err)
	assert.Equal(t, [2]float64{300, 200}, scene.ViewBox)
}

func TestParseRejectsNonSVG(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body/></html>`))
	if !errors.Is(err, ErrNotSVG) {
		t.Fatalf("expected ErrNotSVG, got %v", err)
	}
	_, err = Parse(strings.NewReader(``))
	if !errors.Is(err, ErrNotSVG) {
		t.Fatalf("expected ErrNotSVG for empty input, got %v", err)
	}
}
