package seatmap

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ettle/strcase"
)

// stylesheetTag marks the scene node holding the embedded stylesheet.
const stylesheetTag = "style"

// Style is a normalized property bag. Values are float64, string or []float64.
type Style map[string]any

// ClassStyles maps a CSS class name to its compiled style.
type ClassStyles map[string]Style

// Lookup returns the style for class, or an empty style.
func (c ClassStyles) Lookup(class string) Style {
	class = strings.TrimSpace(class)
	if class == "" || c == nil {
		return Style{}
	}
	// class attributes may carry several names; merge left to right
	names := strings.Fields(class)
	if len(names) == 1 {
		if style, ok := c[names[0]]; ok {
			return style
		}
		return Style{}
	}
	merged := Style{}
	for _, name := range names {
		for k, v := range c[name] {
			merged[k] = v
		}
	}
	return merged
}

// Float returns a numeric style value.
func (s Style) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Text returns a style value as text.
func (s Style) Text(key string) (string, bool) {
	switch v := s[key].(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

// Floats returns a sequence style value such as dash.
func (s Style) Floats(key string) ([]float64, bool) {
	switch v := s[key].(type) {
	case []float64:
		return v, true
	case float64:
		return []float64{v}, true
	}
	return nil, false
}

// propertyAliases remaps camel-cased CSS keys onto shape property names.
var propertyAliases = map[string]string{
	"strokeDasharray": "dash",
	"textAlign":       "align",
	"strokeLinecap":   "lineCap",
	"strokeLinejoin":  "lineJoin",
}

var (
	ruleBlock   = regexp.MustCompile(`([^{}]+)\{([^{}]*)\}`)
	leadingDot  = regexp.MustCompile(`(^|[\s,])\.(\d)`)
	pixelSuffix = regexp.MustCompile(`(\d)px\b`)
	cssComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// ExtractStylesheetText returns the raw text of the first stylesheet node in
// a depth-first, pre-order walk, or "" when the scene has none.
func ExtractStylesheetText(node SceneNode) string {
	sheet, ok := findStylesheet(node)
	if !ok {
		return ""
	}
	if len(sheet.Children) == 0 {
		return sheet.Value
	}
	return sheet.Children[0].Value
}

func findStylesheet(node SceneNode) (SceneNode, bool) {
	if node.TagName == stylesheetTag {
		return node, true
	}
	for _, child := range node.Children {
		if sheet, ok := findStylesheet(child); ok {
			return sheet, true
		}
	}
	return SceneNode{}, false
}

// CompileStyles parses class rules into normalized property bags. Later rule
// blocks for the same class override earlier ones property by property.
func CompileStyles(css string) ClassStyles {
	styles := ClassStyles{}
	css = cssComment.ReplaceAllString(css, "")
	for _, match := range ruleBlock.FindAllStringSubmatch(css, -1) {
		classes := selectorClasses(match[1])
		if len(classes) == 0 {
			continue
		}
		decls := compileDeclarations(match[2])
		for _, class := range classes {
			style, ok := styles[class]
			if !ok {
				style = Style{}
				styles[class] = style
			}
			for k, v := range decls {
				style[k] = v
			}
		}
	}
	return styles
}

func selectorClasses(selector string) []string {
	var classes []string
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, ".") || len(part) < 2 {
			continue
		}
		classes = append(classes, part[1:])
	}
	return classes
}

func compileDeclarations(body string) Style {
	style := Style{}
	for _, decl := range strings.Split(body, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = normalizeStyleKey(key)
		if key == "" {
			continue
		}
		style[key] = normalizeStyleValue(key, value)
	}
	return style
}

func normalizeStyleKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	key = strcase.ToCamel(key)
	if alias, ok := propertyAliases[key]; ok {
		return alias
	}
	return key
}

func normalizeStyleValue(key, value string) any {
	value = strings.TrimSpace(value)
	value = leadingDot.ReplaceAllString(value, "${1}0.${2}")
	value = pixelSuffix.ReplaceAllString(value, "${1}")

	if key == "dash" {
		return parseFloatList(value)
	}
	if key == "fill" && value == "none" {
		return "transparent"
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func parseFloatList(value string) []float64 {
	fields := strings.FieldsFunc(value, isListSeparator)
	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isListSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
