package seatmap

import (
	"math"
	"regexp"
	"strings"
)

// textBaselineFactor shifts translated text up so SVG baselines line up with
// top-left anchored text boxes.
const textBaselineFactor = 0.8

var transformCall = regexp.MustCompile(`([A-Za-z]+)\s*\(([^)]*)\)`)

// ParseTransform parses an SVG transform list. Unknown functions and
// malformed arguments are ignored; the result is nil when nothing applied.
func ParseTransform(raw string) *Transform {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t := &Transform{ScaleX: 1, ScaleY: 1}
	applied := false
	for _, call := range transformCall.FindAllStringSubmatch(raw, -1) {
		args := parseFloatList(call[2])
		if applyTransformCall(t, call[1], args) {
			applied = true
		}
	}
	if !applied {
		return nil
	}
	return t
}

func applyTransformCall(t *Transform, name string, args []float64) bool {
	arg := func(i int, def float64) float64 {
		if i < len(args) {
			return args[i]
		}
		return def
	}
	switch name {
	case "translate":
		if len(args) == 0 {
			return false
		}
		t.Translated = true
		t.X = arg(0, 0)
		t.Y = arg(1, 0)
	case "rotate":
		if len(args) == 0 {
			return false
		}
		t.Rotation = args[0]
	case "scale":
		if len(args) == 0 {
			return false
		}
		t.ScaleX = args[0]
		t.ScaleY = arg(1, args[0])
	case "skew":
		if len(args) == 0 {
			return false
		}
		t.SkewX = args[0]
		t.SkewY = arg(1, 0)
	case "skewX":
		if len(args) == 0 {
			return false
		}
		t.SkewX = args[0]
	case "skewY":
		if len(args) == 0 {
			return false
		}
		t.SkewY = args[0]
	case "matrix":
		if len(args) < 6 {
			return false
		}
		return applyMatrix(t, args[0], args[1], args[2], args[3], args[4], args[5])
	default:
		return false
	}
	return true
}

// applyMatrix decomposes matrix(a b c d e f) into translate, rotate, scale
// and a horizontal skew. Angles are in degrees like the other calls.
func applyMatrix(t *Transform, a, b, c, d, e, f float64) bool {
	scaleX := math.Hypot(a, b)
	if scaleX == 0 {
		return false
	}
	t.Translated = true
	t.X = e
	t.Y = f
	t.Rotation = math.Atan2(b, a) * 180 / math.Pi
	t.ScaleX = scaleX
	t.ScaleY = (a*d - b*c) / scaleX
	t.SkewX = math.Atan2(a*c+b*d, a*a+b*b) * 180 / math.Pi
	t.SkewY = 0
	return true
}

// applyTransform attaches t to the shape. Translation replaces the position;
// text is lifted by the baseline factor of its font size.
func applyTransform(shape *Shape, t *Transform) {
	if t == nil {
		return
	}
	shape.Transform = t
	if !t.Translated {
		return
	}
	shape.X = t.X
	shape.Y = t.Y
	if shape.Kind == ShapeText {
		shape.Y -= textBaselineFactor * shape.FontSize
	}
}
