package seatmap

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// DefaultTicketContainer is the id of the element whose descendants may carry
// ticket identifiers.
const DefaultTicketContainer = "tickets"

// forceCacheIDs are decorative layers that never need live vector rendering.
var forceCacheIDs = map[string]bool{
	"bg":         true,
	"background": true,
	"mask":       true,
}

// ConverterOptions configures a Converter.
type ConverterOptions struct {
	Logger          *slog.Logger
	Telemetry       Telemetry
	Styles          StyleCompiler
	ContainerID     string
	DefaultFontSize float64
}

// Converter turns scene trees into shape trees.
type Converter struct {
	opts ConverterOptions
}

// NewConverter builds a Converter with safe defaults.
func NewConverter(opts ConverterOptions) *Converter {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Styles == nil {
		opts.Styles = StyleCompilerFunc(CompileStyles)
	}
	if opts.ContainerID == "" {
		opts.ContainerID = DefaultTicketContainer
	}
	if opts.DefaultFontSize <= 0 {
		opts.DefaultFontSize = DefaultFontSize
	}
	return &Converter{opts: opts}
}

// ConvertStats summarizes a conversion pass.
type ConvertStats struct {
	Nodes        int `json:"nodes"`
	Purchasable  int `json:"purchasable"`
	Cached       int `json:"cached"`
	CachedGroups int `json:"cached_groups"`
	Sections     int `json:"sections"`
	Unknown      int `json:"unknown"`
}

// Result is the output of a conversion pass. Every pass builds a fresh tree.
type Result struct {
	Root        *Shape       `json:"root"`
	Styles      ClassStyles  `json:"styles"`
	Size        Size         `json:"size"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Stats       ConvertStats `json:"stats"`
}

// Convert resolves the scene's stylesheet and builds the shape tree. Malformed
// input never fails; the only error is a cancelled context.
func (c *Converter) Convert(ctx context.Context, scene Scene) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	styles := c.opts.Styles.Compile(ExtractStylesheetText(scene.Root))
	w := &walker{ctx: ctx, conv: c, styles: styles}
	root := w.convert(scene.Root, "0", frame{})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("seatmap: convert scene: %w", err)
	}
	if root == nil {
		root = &Shape{Key: "0", Kind: ShapeGroup}
	}
	result := &Result{
		Root:        root,
		Styles:      styles,
		Size:        scene.Size(),
		Diagnostics: w.diagnostics,
		Stats:       w.stats,
	}
	c.opts.Telemetry.Record(ctx, "seatmap.scene.convert", map[string]any{
		"nodes":         w.stats.Nodes,
		"purchasable":   w.stats.Purchasable,
		"cached_groups": w.stats.CachedGroups,
		"unknown":       w.stats.Unknown,
	})
	return result, nil
}

// ConvertNode converts a single subtree against precompiled styles.
func (c *Converter) ConvertNode(node SceneNode, styles ClassStyles) (*Shape, []Diagnostic) {
	w := &walker{ctx: context.Background(), conv: c, styles: styles}
	return w.convert(node, "0", frame{}), w.diagnostics
}

// frame carries what the descent knows about a node's ancestry.
type frame struct {
	inContainer     bool
	parentContainer bool
	parentSection   bool
}

type walker struct {
	ctx         context.Context
	conv        *Converter
	styles      ClassStyles
	diagnostics []Diagnostic
	stats       ConvertStats
}

func (w *walker) convert(node SceneNode, key string, f frame) *Shape {
	if w.ctx.Err() != nil {
		return nil
	}
	if node.TagName == stylesheetTag {
		return nil
	}
	w.stats.Nodes++

	style := w.styles.Lookup(node.Prop("class"))
	shape := &Shape{
		Key:       key,
		ID:        node.ID(),
		Tag:       node.TagName,
		Class:     node.Prop("class"),
		Listening: true,
	}
	if len(style) > 0 {
		shape.Style = style
	}

	if node.Type == "text" || KindForTag(node.TagName) == ShapeText {
		w.buildText(shape, node, style)
		applyTransform(shape, ParseTransform(node.Prop("transform")))
		w.markTicket(shape, node, f)
		return shape
	}

	shape.Kind = KindForTag(node.TagName)
	if shape.Kind == ShapeUnknown {
		w.stats.Unknown++
		msg := "unsupported element " + strconv.Quote(node.TagName)
		w.diagnostics = append(w.diagnostics, Diagnostic{Key: key, Tag: node.TagName, Message: msg})
		w.conv.opts.Logger.Warn("seatmap: unsupported element", "tag", node.TagName, "key", key)
		shape.Listening = false
		return shape
	}

	applyGeometry(shape, node)
	applyPaint(shape, node, style)
	applyTransform(shape, ParseTransform(node.Prop("transform")))
	w.markTicket(shape, node, f)

	child := frame{
		inContainer:     f.inContainer || w.isContainer(shape),
		parentContainer: w.isContainer(shape),
		parentSection:   shape.TicketSection,
	}
	for i, n := range node.Children {
		if converted := w.convert(n, key+"."+strconv.Itoa(i), child); converted != nil {
			shape.Children = append(shape.Children, converted)
		}
	}
	return shape
}

func (w *walker) buildText(shape *Shape, node SceneNode, style Style) {
	shape.Kind = ShapeText
	shape.Text = textContent(node)
	shape.FontSize = w.fontSize(node, style)
	shape.X = node.Float("x", 0)
	shape.Y = node.Float("y", 0)
	applyPaint(shape, node, style)
	// text never takes part in hit testing
	shape.Listening = false
}

func textContent(node SceneNode) string {
	leaf := node
	for len(leaf.Children) > 0 {
		leaf = leaf.Children[0]
	}
	if leaf.Value != "" {
		return leaf.Value
	}
	if text := leaf.Prop("text"); text != "" {
		return text
	}
	return node.Value
}

func (w *walker) fontSize(node SceneNode, style Style) float64 {
	for _, name := range []string{"font-size", "fontSize"} {
		if size := node.Float(name, 0); size > 0 {
			return size
		}
	}
	if size, ok := style.Float("fontSize"); ok && size > 0 {
		return size
	}
	return w.conv.opts.DefaultFontSize
}

func (w *walker) isContainer(shape *Shape) bool {
	return shape.ID != "" && shape.ID == w.conv.opts.ContainerID
}

// wrapsContainer reports whether the ticket container sits below node.
// NOTE: layers wrapping the container (the root `<svg id="Layer_1">` of
// editor exports) stay live so decaching rows inside them has an effect.
func (w *walker) wrapsContainer(node SceneNode) bool {
	id := w.conv.opts.ContainerID
	for _, child := range node.Children {
		if child.ID() == id || w.wrapsContainer(child) {
			return true
		}
	}
	return false
}

// markTicket derives caching marks and ticket metadata for nodes with an id.
func (w *walker) markTicket(shape *Shape, node SceneNode, f frame) {
	if shape.ID == "" || w.isContainer(shape) {
		return
	}
	switch {
	case forceCacheIDs[shape.ID]:
		shape.Cache = true
	case !f.inContainer && !w.wrapsContainer(node):
		shape.Cache = true
	case shape.Kind == ShapeGroup && (f.parentContainer || f.parentSection) && !hasGroupChild(node):
		shape.Cache = true
		shape.CachedGroup = true
		w.stats.CachedGroups++
	case shape.Kind == ShapeGroup && isTicketSection(node):
		shape.TicketSection = true
		w.stats.Sections++
	}
	if shape.Cache {
		w.stats.Cached++
	}
	if !f.inContainer {
		return
	}
	parsed, ok := ParseIdentifier(shape.ID)
	if !ok {
		return
	}
	shape.Ticket = mergeTicketAttributes(presetTicketAttributes(node), parsed)
	shape.Purchasable = true
	w.stats.Purchasable++
}

// mergeTicketAttributes keeps values already set on the element and only
// fills the gaps from the parsed identifier.
// NOTE: first-set wins on conflict; switch to last-set only if real venue
// data shows authored overrides are not intended.
func mergeTicketAttributes(existing, parsed TicketAttributes) TicketAttributes {
	merged := existing.Clone()
	if merged == nil {
		merged = TicketAttributes{}
	}
	for k, v := range parsed {
		if _, ok := merged[k]; ok {
			continue
		}
		merged[k] = v
	}
	return merged
}

// presetTicketAttributes reads data-<attribute> properties authored on the
// element.
func presetTicketAttributes(node SceneNode) TicketAttributes {
	var attrs TicketAttributes
	for _, entry := range ticketAlphabet {
		value := node.Prop("data-" + entry.attr)
		if value == "" {
			continue
		}
		if attrs == nil {
			attrs = TicketAttributes{}
		}
		attrs[entry.attr] = value
	}
	return attrs
}

func hasGroupChild(node SceneNode) bool {
	for _, child := range node.Children {
		if child.isGroup() {
			return true
		}
	}
	return false
}

func isTicketSection(node SceneNode) bool {
	found := false
	for _, child := range node.Children {
		if !child.isGroup() {
			continue
		}
		if hasGroupChild(child) {
			return false
		}
		found = true
	}
	return found
}
