package seatmap

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Renderer describes the template renderer contract used for previews.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

const previewTemplate = "preview"

// PreviewAttr is one SVG attribute.
type PreviewAttr struct {
	Name  string
	Value string
}

// PreviewOp is a flattened drawing instruction consumed by the preview
// template. Groups are emitted as Open/Close pairs.
type PreviewOp struct {
	Open  bool
	Close bool
	Tag   string
	Text  string
	Attrs []PreviewAttr
}

// PreviewOps flattens root into SVG drawing instructions in paint order.
func PreviewOps(root *Shape) []PreviewOp {
	var ops []PreviewOp
	appendPreviewOps(&ops, root)
	return ops
}

func appendPreviewOps(ops *[]PreviewOp, s *Shape) {
	if s == nil {
		return
	}
	switch s.Kind {
	case ShapeGroup, ShapeLabel:
		attrs := commonAttrs(s)
		if t := groupTransform(s); t != "" {
			attrs = append(attrs, PreviewAttr{"transform", t})
		}
		*ops = append(*ops, PreviewOp{Open: true, Tag: "g", Attrs: attrs})
		for _, child := range s.Children {
			appendPreviewOps(ops, child)
		}
		*ops = append(*ops, PreviewOp{Close: true, Tag: "g"})
	case ShapeUnknown:
		return
	default:
		if op, ok := leafOp(s); ok {
			*ops = append(*ops, op)
		}
	}
}

func leafOp(s *Shape) (PreviewOp, bool) {
	op := PreviewOp{Attrs: commonAttrs(s)}
	add := func(name string, v float64) {
		op.Attrs = append(op.Attrs, PreviewAttr{name, formatFloat(v)})
	}
	switch s.Kind {
	case ShapeRect:
		op.Tag = "rect"
		add("x", s.X)
		add("y", s.Y)
		add("width", s.Width)
		add("height", s.Height)
	case ShapeCircle:
		op.Tag = "circle"
		add("cx", s.X)
		add("cy", s.Y)
		add("r", s.Radius)
	case ShapeRing:
		op.Tag = "circle"
		add("cx", s.X)
		add("cy", s.Y)
		add("r", s.OuterRadius)
	case ShapeEllipse:
		op.Tag = "ellipse"
		add("cx", s.X)
		add("cy", s.Y)
		add("rx", s.RadiusX)
		add("ry", s.RadiusY)
	case ShapePath:
		op.Tag = "path"
		op.Attrs = append(op.Attrs, PreviewAttr{"d", s.Data})
	case ShapeLine:
		op.Tag = "polyline"
		op.Attrs = append(op.Attrs, PreviewAttr{"points", formatPoints(s.Points)})
	case ShapePolygon:
		op.Tag = "polygon"
		op.Attrs = append(op.Attrs, PreviewAttr{"points", formatPoints(s.Points)})
	case ShapeImage:
		op.Tag = "image"
		add("x", s.X)
		add("y", s.Y)
		add("width", s.Width)
		add("height", s.Height)
		op.Attrs = append(op.Attrs, PreviewAttr{"href", s.Href})
	case ShapeText:
		op.Tag = "text"
		op.Text = s.Text
		add("x", s.X)
		// shapes store the top of the text box; SVG wants the baseline
		add("y", s.Y+textBaselineFactor*s.FontSize)
		add("font-size", s.FontSize)
	default:
		return PreviewOp{}, false
	}
	if t := leafTransform(s); t != "" {
		op.Attrs = append(op.Attrs, PreviewAttr{"transform", t})
	}
	return op, true
}

func commonAttrs(s *Shape) []PreviewAttr {
	var attrs []PreviewAttr
	if s.ID != "" {
		attrs = append(attrs, PreviewAttr{"id", s.ID})
	}
	if s.Fill != "" {
		attrs = append(attrs, PreviewAttr{"fill", s.Fill})
	}
	if s.Stroke != "" {
		attrs = append(attrs, PreviewAttr{"stroke", s.Stroke})
	}
	if s.StrokeWidth > 0 {
		attrs = append(attrs, PreviewAttr{"stroke-width", formatFloat(s.StrokeWidth)})
	}
	if len(s.Dash) > 0 {
		attrs = append(attrs, PreviewAttr{"stroke-dasharray", formatPoints(s.Dash)})
	}
	if s.Opacity != nil {
		attrs = append(attrs, PreviewAttr{"opacity", formatFloat(*s.Opacity)})
	}
	if s.Purchasable {
		attrs = append(attrs,
			PreviewAttr{"class", "purchasable"},
			PreviewAttr{"data-ticket", SerializeIdentifier(s.Ticket)},
		)
	}
	return attrs
}

func groupTransform(s *Shape) string {
	var parts []string
	if s.X != 0 || s.Y != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s %s)", formatFloat(s.X), formatFloat(s.Y)))
	}
	if rest := affineParts(s.Transform); rest != "" {
		parts = append(parts, rest)
	}
	return strings.Join(parts, " ")
}

func leafTransform(s *Shape) string {
	return affineParts(s.Transform)
}

func affineParts(t *Transform) string {
	if t == nil {
		return ""
	}
	var parts []string
	if t.Rotation != 0 {
		parts = append(parts, "rotate("+formatFloat(t.Rotation)+")")
	}
	if t.ScaleX != 1 || t.ScaleY != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s %s)", formatFloat(t.ScaleX), formatFloat(t.ScaleY)))
	}
	if t.SkewX != 0 {
		parts = append(parts, "skewX("+formatFloat(t.SkewX)+")")
	}
	if t.SkewY != 0 {
		parts = append(parts, "skewY("+formatFloat(t.SkewY)+")")
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatPoints(points []float64) string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = formatFloat(p)
	}
	return strings.Join(out, " ")
}

// RenderPreview renders an HTML page embedding an SVG preview of the result.
func RenderPreview(renderer Renderer, title string, res *Result, out io.Writer) error {
	if renderer == nil {
		return fmt.Errorf("seatmap: preview renderer not configured")
	}
	if res == nil {
		return fmt.Errorf("seatmap: preview of nil result")
	}
	width, height := res.Size.Width, res.Size.Height
	if width <= 0 || height <= 0 {
		if r, ok := NewGeometryHost(res.Root).ClientRect(res.Root.Key); ok {
			width, height = r.X+r.Width, r.Y+r.Height
		}
	}
	data := map[string]any{
		"title":       title,
		"width":       formatFloat(width),
		"height":      formatFloat(height),
		"ops":         PreviewOps(res.Root),
		"purchasable": res.Stats.Purchasable,
	}
	var buf bytes.Buffer
	if _, err := renderer.Render(previewTemplate, data, &buf); err != nil {
		return fmt.Errorf("seatmap: render preview: %w", err)
	}
	_, err := out.Write(buf.Bytes())
	return err
}
