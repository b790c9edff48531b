// Package svgjson turns venue SVG documents into the scene trees consumed by
// the seat map converter.
package svgjson

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-seatmap/components/seatmap"
)

// ErrNotSVG is returned when the document root is not an svg element.
var ErrNotSVG = errors.New("svgjson: document root is not <svg>")

const stylesheetTag = "style"

// Parse reads an SVG document. The svg root becomes a g node and the scene
// size comes from viewBox, falling back to width and height.
func Parse(r io.Reader) (seatmap.Scene, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	var stack []*seatmap.SceneNode
	var root *seatmap.SceneNode
	var viewBox [2]float64

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return seatmap.Scene{}, fmt.Errorf("svgjson: parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &seatmap.SceneNode{
				Type:       "element",
				TagName:    t.Name.Local,
				Properties: attributes(t.Attr),
			}
			if root == nil {
				if t.Name.Local != "svg" {
					return seatmap.Scene{}, ErrNotSVG
				}
				viewBox = sceneSize(node.Properties)
				node.TagName = "g"
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, *node)
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			value := string(t)
			if parent.TagName != stylesheetTag {
				value = strings.TrimSpace(value)
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			parent.Children = append(parent.Children, seatmap.SceneNode{Type: "text", Value: value})
		}
	}
	if root == nil {
		return seatmap.Scene{}, ErrNotSVG
	}
	if len(stack) > 0 {
		return seatmap.Scene{}, fmt.Errorf("svgjson: unclosed <%s>", stack[len(stack)-1].TagName)
	}
	return seatmap.Scene{Root: *root, ViewBox: viewBox}, nil
}

// ParseFile reads an SVG document from disk.
func ParseFile(path string) (seatmap.Scene, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return seatmap.Scene{}, fmt.Errorf("svgjson: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func attributes(attrs []xml.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	props := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		name := attr.Name.Local
		switch {
		case attr.Name.Space == "xmlns" || name == "xmlns":
			continue
		case name == "href":
			// xlink:href and href are interchangeable
			name = "href"
		}
		props[name] = attr.Value
	}
	return props
}

func sceneSize(props map[string]any) [2]float64 {
	if raw, ok := props["viewBox"].(string); ok {
		fields := strings.FieldsFunc(raw, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		if len(fields) == 4 {
			w, errW := strconv.ParseFloat(fields[2], 64)
			h, errH := strconv.ParseFloat(fields[3], 64)
			if errW == nil && errH == nil {
				return [2]float64{w, h}
			}
		}
	}
	return [2]float64{length(props["width"]), length(props["height"])}
}

func length(v any) float64 {
	raw, _ := v.(string)
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "px")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
