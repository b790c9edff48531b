package seatmap

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func attrValue(op PreviewOp, name string) string {
	for _, attr := range op.Attrs {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

func TestPreviewOpsFlattenTree(t *testing.T) {
	res := convertScene(t, el("g", map[string]any{"id": "tickets"},
		el("g", map[string]any{"id": "ZA-R1", "transform": "translate(5 6)"},
			el("circle", map[string]any{"r": "2", "fill": "red"}),
			el("foreignObject", nil),
		),
		el("text", map[string]any{"font-size": "10", "y": "20"}, textNode("Stage")),
	))
	ops := PreviewOps(res.Root)

	tags := []string{}
	for _, op := range ops {
		switch {
		case op.Open:
			tags = append(tags, "<"+op.Tag)
		case op.Close:
			tags = append(tags, op.Tag+">")
		default:
			tags = append(tags, op.Tag)
		}
	}
	assert.Equal(t, []string{"<g", "<g", "circle", "g>", "text", "g>"}, tags)

	row := ops[1]
	assert.Equal(t, "purchasable", attrValue(row, "class"))
	assert.Equal(t, "ZA-R1", attrValue(row, "data-ticket"))
	assert.Equal(t, "translate(5 6)", attrValue(row, "transform"))

	assert.Equal(t, "red", attrValue(ops[2], "fill"))
	assert.Equal(t, "28", attrValue(ops[4], "y"))
	assert.Equal(t, "Stage", ops[4].Text)
}

func TestPreviewKeepsExplicitZeroOpacity(t *testing.T) {
	res := convertScene(t, el("g", nil,
		styleNode(`.ghost{opacity:0}`),
		el("rect", map[string]any{"opacity": "0", "width": "1"}),
		el("rect", map[string]any{"class": "ghost", "opacity": "1", "width": "1"}),
		el("rect", map[string]any{"width": "1"}),
	))
	hidden, ghost, plain := res.Root.Children[0], res.Root.Children[1], res.Root.Children[2]
	require.NotNil(t, hidden.Opacity)
	assert.Equal(t, 0.0, *hidden.Opacity)
	require.NotNil(t, ghost.Opacity)
	assert.Equal(t, 0.0, *ghost.Opacity, "class opacity overrides the attribute")
	assert.Nil(t, plain.Opacity)

	var opacities []string
	for _, op := range PreviewOps(res.Root) {
		if op.Tag != "rect" {
			continue
		}
		for _, attr := range op.Attrs {
			if attr.Name == "opacity" {
				opacities = append(opacities, attr.Value)
			}
		}
	}
	assert.Equal(t, []string{"0", "0"}, opacities)
}

func TestRenderPreviewUsesRenderer(t *testing.T) {
	res := inventoryScene(t)
	renderer := &stubRenderer{}
	var buf bytes.Buffer
	require.NoError(t, RenderPreview(renderer, "Hall", res, &buf))

	assert.Equal(t, previewTemplate, renderer.lastTemplate)
	assert.Equal(t, "Hall", renderer.lastPayload["title"])
	assert.Equal(t, 3, renderer.lastPayload["purchasable"])
	assert.Equal(t, "<html></html>", buf.String())
}

func TestRenderPreviewPropagatesErrors(t *testing.T) {
	res := inventoryScene(t)
	err := RenderPreview(&stubRenderer{err: errors.New("boom")}, "Hall", res, io.Discard)
	assert.Error(t, err)
	assert.Error(t, RenderPreview(nil, "Hall", res, io.Discard))
}
