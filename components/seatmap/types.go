package seatmap

import (
	"fmt"
	"strconv"
	"strings"
)

// SceneNode is a single element of the SVG-derived scene tree.
type SceneNode struct {
	Type       string         `json:"type,omitempty"`
	TagName    string         `json:"tagName,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Children   []SceneNode    `json:"children,omitempty"`
	Value      string         `json:"value,omitempty"`
}

// Scene is the load payload handed over by the template page.
type Scene struct {
	Root    SceneNode  `json:"root"`
	ViewBox [2]float64 `json:"viewBox"`
}

// Size returns the logical scene bounds.
func (s Scene) Size() Size {
	return Size{Width: s.ViewBox[0], Height: s.ViewBox[1]}
}

// Prop returns a property as a trimmed string.
func (n SceneNode) Prop(name string) string {
	if n.Properties == nil {
		return ""
	}
	switch v := n.Properties[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Float returns a numeric property or def when it is missing or malformed.
func (n SceneNode) Float(name string, def float64) float64 {
	if n.Properties == nil {
		return def
	}
	switch v := n.Properties[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, ok := parseLength(v); ok {
			return f
		}
	}
	return def
}

// ID returns the element identifier.
func (n SceneNode) ID() string {
	return n.Prop("id")
}

func (n SceneNode) isGroup() bool {
	return n.TagName == "g"
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Union returns the smallest rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ShapeKind enumerates the geometries the converter knows how to build.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeCircle
	ShapeEllipse
	ShapeGroup
	ShapeImage
	ShapeLabel
	ShapeLine
	ShapePath
	ShapeRect
	ShapePolygon
	ShapeRing
	ShapeText
)

var shapeKindNames = map[ShapeKind]string{
	ShapeUnknown: "unknown",
	ShapeCircle:  "circle",
	ShapeEllipse: "ellipse",
	ShapeGroup:   "group",
	ShapeImage:   "image",
	ShapeLabel:   "label",
	ShapeLine:    "line",
	ShapePath:    "path",
	ShapeRect:    "rect",
	ShapePolygon: "polygon",
	ShapeRing:    "ring",
	ShapeText:    "text",
}

// tagKinds is the fixed dispatch table from scene tag names to shape kinds.
var tagKinds = map[string]ShapeKind{
	"circle":  ShapeCircle,
	"ellipse": ShapeEllipse,
	"g":       ShapeGroup,
	"image":   ShapeImage,
	"label":   ShapeLabel,
	"line":    ShapeLine,
	"path":    ShapePath,
	"rect":    ShapeRect,
	"polygon": ShapePolygon,
	"ring":    ShapeRing,
	"text":    ShapeText,
	"tspan":   ShapeText,
}

// KindForTag resolves a tag name through the dispatch table.
func KindForTag(tag string) ShapeKind {
	if kind, ok := tagKinds[tag]; ok {
		return kind
	}
	return ShapeUnknown
}

func (k ShapeKind) String() string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes the kind by name.
func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; unrecognized names map to ShapeUnknown.
func (k *ShapeKind) UnmarshalText(text []byte) error {
	name := string(text)
	for kind, n := range shapeKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	*k = ShapeUnknown
	return nil
}

// Transform holds the affine components parsed from an SVG transform list.
type Transform struct {
	Translated bool    `json:"translated,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Rotation   float64 `json:"rotation"`
	ScaleX     float64 `json:"scaleX"`
	ScaleY     float64 `json:"scaleY"`
	SkewX      float64 `json:"skewX"`
	SkewY      float64 `json:"skewY"`
}

// DrawCommand is one step of a custom draw routine.
type DrawCommand struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// Shape is a renderable node produced by the converter.
type Shape struct {
	Key   string    `json:"key"`
	ID    string    `json:"id,omitempty"`
	Kind  ShapeKind `json:"kind"`
	Tag   string    `json:"tag,omitempty"`
	Class string    `json:"class,omitempty"`

	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	Radius      float64   `json:"radius,omitempty"`
	RadiusX     float64   `json:"radiusX,omitempty"`
	RadiusY     float64   `json:"radiusY,omitempty"`
	InnerRadius float64   `json:"innerRadius,omitempty"`
	OuterRadius float64   `json:"outerRadius,omitempty"`
	Data        string    `json:"data,omitempty"`
	Points      []float64 `json:"points,omitempty"`
	Text        string    `json:"text,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	Href        string    `json:"href,omitempty"`

	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	Opacity     *float64  `json:"opacity,omitempty"`
	Style       Style     `json:"style,omitempty"`

	Transform    *Transform    `json:"transform,omitempty"`
	DrawCommands []DrawCommand `json:"drawCommands,omitempty"`

	Listening     bool             `json:"listening"`
	Ticket        TicketAttributes `json:"ticket,omitempty"`
	Purchasable   bool             `json:"purchasable"`
	Cache         bool             `json:"cache,omitempty"`
	CachedGroup   bool             `json:"cachedGroup,omitempty"`
	TicketSection bool             `json:"ticketSection,omitempty"`

	Children []*Shape `json:"children,omitempty"`
}

// Walk visits the shape and its descendants in pre-order. Returning false
// from fn skips the node's children.
func (s *Shape) Walk(fn func(*Shape) bool) {
	if s == nil {
		return
	}
	if !fn(s) {
		return
	}
	for _, child := range s.Children {
		child.Walk(fn)
	}
}

// Find returns the first shape in pre-order satisfying pred.
func (s *Shape) Find(pred func(*Shape) bool) *Shape {
	var found *Shape
	s.Walk(func(n *Shape) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByID returns the first shape carrying id.
func (s *Shape) FindByID(id string) *Shape {
	return s.Find(func(n *Shape) bool { return n.ID == id })
}

// Diagnostic reports a recoverable problem found while converting.
type Diagnostic struct {
	Key     string `json:"key"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}
