package seatmap

import (
	"strconv"
	"strings"
)

// DefaultFontSize applies when neither the element nor its class sets one.
const DefaultFontSize = 12

func parseLength(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "px")
	if strings.HasPrefix(raw, ".") {
		raw = "0" + raw
	}
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParsePoints reads a polygon point list of whitespace or comma separated
// numbers. A trailing odd coordinate is dropped.
func ParsePoints(raw string) []float64 {
	points := parseFloatList(raw)
	if len(points)%2 == 1 {
		points = points[:len(points)-1]
	}
	return points
}

// closedPolylineCommands builds the custom draw routine used for polygons.
func closedPolylineCommands(points []float64) []DrawCommand {
	if len(points) < 2 {
		return nil
	}
	cmds := make([]DrawCommand, 0, len(points)/2+2)
	cmds = append(cmds, DrawCommand{Op: "moveTo", Args: []float64{points[0], points[1]}})
	for i := 2; i+1 < len(points); i += 2 {
		cmds = append(cmds, DrawCommand{Op: "lineTo", Args: []float64{points[i], points[i+1]}})
	}
	cmds = append(cmds,
		DrawCommand{Op: "closePath"},
		DrawCommand{Op: "fillStrokeShape"},
	)
	return cmds
}

// applyGeometry coerces the tag specific properties onto shape.
func applyGeometry(shape *Shape, node SceneNode) {
	shape.X = node.Float("x", 0)
	shape.Y = node.Float("y", 0)
	switch shape.Kind {
	case ShapeRect:
		shape.Width = node.Float("width", 0)
		shape.Height = node.Float("height", 0)
	case ShapeCircle:
		shape.X = node.Float("cx", shape.X)
		shape.Y = node.Float("cy", shape.Y)
		shape.Radius = node.Float("r", 0)
	case ShapeEllipse:
		shape.X = node.Float("cx", shape.X)
		shape.Y = node.Float("cy", shape.Y)
		shape.RadiusX = node.Float("rx", 0)
		shape.RadiusY = node.Float("ry", 0)
	case ShapeRing:
		shape.X = node.Float("cx", shape.X)
		shape.Y = node.Float("cy", shape.Y)
		shape.InnerRadius = node.Float("innerRadius", 0)
		shape.OuterRadius = node.Float("outerRadius", node.Float("r", 0))
	case ShapePath:
		shape.Data = node.Prop("d")
	case ShapeImage:
		shape.Width = node.Float("width", 0)
		shape.Height = node.Float("height", 0)
		shape.Href = node.Prop("href")
		if shape.Href == "" {
			shape.Href = node.Prop("xlink:href")
		}
	case ShapeLine:
		if raw := node.Prop("points"); raw != "" {
			shape.Points = ParsePoints(raw)
			break
		}
		shape.Points = []float64{
			node.Float("x1", 0), node.Float("y1", 0),
			node.Float("x2", 0), node.Float("y2", 0),
		}
	case ShapePolygon:
		shape.Points = ParsePoints(node.Prop("points"))
		shape.DrawCommands = closedPolylineCommands(shape.Points)
	}
}

// applyPaint resolves fill and stroke. Class styles override element
// attributes.
func applyPaint(shape *Shape, node SceneNode, style Style) {
	shape.Fill = node.Prop("fill")
	if shape.Fill == "none" {
		shape.Fill = "transparent"
	}
	shape.Stroke = node.Prop("stroke")
	shape.StrokeWidth = node.Float("stroke-width", 0)
	if v := node.Float("opacity", -1); v >= 0 {
		shape.Opacity = &v
	}
	if raw := node.Prop("stroke-dasharray"); raw != "" {
		shape.Dash = parseFloatList(raw)
	}

	if v, ok := style.Text("fill"); ok {
		shape.Fill = v
	}
	if v, ok := style.Text("stroke"); ok {
		shape.Stroke = v
	}
	if v, ok := style.Float("strokeWidth"); ok {
		shape.StrokeWidth = v
	}
	if v, ok := style.Float("opacity"); ok {
		shape.Opacity = &v
	}
	if v, ok := style.Floats("dash"); ok {
		shape.Dash = v
	}
}

// localBounds estimates a shape's bounding box in its parent's space,
// ignoring rotation and skew.
func localBounds(shape *Shape) (Rect, bool) {
	var r Rect
	ok := true
	switch shape.Kind {
	case ShapeRect, ShapeImage:
		r = Rect{X: shape.X, Y: shape.Y, Width: shape.Width, Height: shape.Height}
	case ShapeCircle:
		r = Rect{X: shape.X - shape.Radius, Y: shape.Y - shape.Radius, Width: 2 * shape.Radius, Height: 2 * shape.Radius}
	case ShapeEllipse:
		r = Rect{X: shape.X - shape.RadiusX, Y: shape.Y - shape.RadiusY, Width: 2 * shape.RadiusX, Height: 2 * shape.RadiusY}
	case ShapeRing:
		r = Rect{X: shape.X - shape.OuterRadius, Y: shape.Y - shape.OuterRadius, Width: 2 * shape.OuterRadius, Height: 2 * shape.OuterRadius}
	case ShapeLine, ShapePolygon:
		r, ok = pointsBounds(shape.Points)
	case ShapePath:
		r, ok = pointsBounds(PathPoints(shape.Data))
	case ShapeText:
		size := shape.FontSize
		r = Rect{X: shape.X, Y: shape.Y, Width: float64(len([]rune(shape.Text))) * size * 0.6, Height: size}
	default:
		ok = false
	}
	if !ok {
		return Rect{}, false
	}
	if t := shape.Transform; t != nil {
		r.Width *= abs(t.ScaleX)
		r.Height *= abs(t.ScaleY)
	}
	return r, true
}

func pointsBounds(points []float64) (Rect, bool) {
	if len(points) < 2 {
		return Rect{}, false
	}
	minX, minY := points[0], points[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(points); i += 2 {
		minX = min(minX, points[i])
		maxX = max(maxX, points[i])
		minY = min(minY, points[i+1])
		maxY = max(maxY, points[i+1])
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
