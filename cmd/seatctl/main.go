package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-seatmap/components/seatmap"
	"github.com/goliatone/go-seatmap/components/seatmap/svgjson"
)

type cli struct {
	Config  string `type:"path" help:"Builder config YAML (viewport and converter tuning)."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Convert   convertCmd   `cmd:"" help:"Convert a venue scene (JSON, JSONC or SVG) into a shape tree."`
	Ticket    ticketCmd    `cmd:"" help:"Parse or format ticket identifiers."`
	Styles    stylesCmd    `cmd:"" help:"Print the class styles compiled from a scene stylesheet."`
	Inventory inventoryCmd `cmd:"" help:"Summarize purchasable elements of a scene."`
	Preview   previewCmd   `cmd:"" help:"Render an HTML preview of a scene."`
}

type convertCmd struct {
	Scene  string `arg:"" type:"existingfile" help:"Scene file (.json, .jsonc or .svg)."`
	Format string `enum:"json,yaml,cbor" default:"json" help:"Output format (json, yaml, cbor)."`
	Out    string `short:"o" type:"path" help:"Write output to a file instead of stdout."`
}

type ticketCmd struct {
	Parse  ticketParseCmd  `cmd:"" help:"Decode a ticket identifier into attributes."`
	Format ticketFormatCmd `cmd:"" help:"Build the canonical identifier for a set of attributes."`
}

type ticketParseCmd struct {
	ID string `arg:"" help:"Ticket identifier, e.g. ZV-SA-r0012."`
}

type ticketFormatCmd struct {
	Attr map[string]string `required:"" help:"Attributes as name=value (repeatable), e.g. --attr zone=V."`
}

type stylesCmd struct {
	Scene string `arg:"" type:"existingfile" help:"Scene file (.json, .jsonc or .svg)."`
}

type inventoryCmd struct {
	Scene string `arg:"" type:"existingfile" help:"Scene file (.json, .jsonc or .svg)."`
	Attr  string `default:"zone" help:"Ticket attribute to chart."`
	Chart string `type:"path" help:"Write a bar chart of the attribute to this HTML file."`
}

type previewCmd struct {
	Scene string `arg:"" type:"existingfile" help:"Scene file (.json, .jsonc or .svg)."`
	Out   string `short:"o" required:"" type:"path" help:"HTML file to write."`
	Title string `help:"Page title (defaults to the scene file name)."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Description("Seat map template tooling for go-seatmap scenes."),
		kong.UsageOnError(),
	)
	env, err := newEnvironment(app.Config, app.Verbose)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(context.Background(), env)
	ctx.FatalIfErrorf(err)
}

// environment carries the shared config, logger and converter.
type environment struct {
	config    seatmap.Config
	logger    *slog.Logger
	converter *seatmap.Converter
	out       io.Writer
}

func newEnvironment(configPath string, verbose bool) (*environment, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := seatmap.DefaultConfig()
	if configPath != "" {
		loaded, err := seatmap.ReadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	converter := seatmap.NewConverter(seatmap.ConverterOptions{
		Logger:          logger,
		Styles:          seatmap.NewStyleCache(cfg.StyleCacheTTL),
		ContainerID:     cfg.Converter.TicketContainer,
		DefaultFontSize: cfg.Converter.DefaultFontSize,
	})
	return &environment{config: cfg, logger: logger, converter: converter, out: os.Stdout}, nil
}

func (env *environment) convert(ctx context.Context, path string) (*seatmap.Result, error) {
	scene, err := loadScene(path)
	if err != nil {
		return nil, err
	}
	res, err := env.converter.Convert(ctx, scene)
	if err != nil {
		return nil, err
	}
	env.logger.Debug("seatctl: converted scene", "path", path, "nodes", res.Stats.Nodes, "purchasable", res.Stats.Purchasable)
	return res, nil
}

// loadScene picks the decoder from the file extension.
func loadScene(path string) (seatmap.Scene, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return svgjson.ParseFile(path)
	}
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return seatmap.Scene{}, fmt.Errorf("seatctl: read scene: %w", err)
	}
	raw := seatmap.NormalizeScene(data)
	if err := seatmap.NewJSONSchemaValidator().Validate(raw); err != nil {
		return seatmap.Scene{}, err
	}
	return seatmap.DecodeScene(raw)
}

func (cmd *convertCmd) Run(ctx context.Context, env *environment) error {
	res, err := env.convert(ctx, cmd.Scene)
	if err != nil {
		return err
	}
	data, err := encodeResult(res, cmd.Format)
	if err != nil {
		return err
	}
	return writeOutput(env.out, cmd.Out, data)
}

func encodeResult(res *seatmap.Result, format string) ([]byte, error) {
	switch format {
	case "cbor":
		return seatmap.EncodeSnapshot(res)
	case "yaml":
		// round-trip through JSON so YAML keys match the JSON field names
		raw, err := json.Marshal(res)
		if err != nil {
			return nil, fmt.Errorf("seatctl: encode result: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("seatctl: encode result: %w", err)
		}
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return nil, fmt.Errorf("seatctl: encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("seatctl: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("seatctl: encode result: %w", err)
		}
		return append(data, '\n'), nil
	}
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("seatctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("seatctl: write %s: %w", path, err)
	}
	return nil
}

func (cmd *ticketParseCmd) Run(env *environment) error {
	attrs, ok := seatmap.ParseIdentifier(cmd.ID)
	if !ok {
		return fmt.Errorf("seatctl: %q is not a ticket identifier", cmd.ID)
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(env.out, "%s\t%s\n", k, attrs[k])
	}
	return nil
}

func (cmd *ticketFormatCmd) Run(env *environment) error {
	for name := range cmd.Attr {
		if _, ok := seatmap.CodeFor(name); !ok {
			return fmt.Errorf("seatctl: unknown ticket attribute %q", name)
		}
	}
	id := seatmap.SerializeIdentifier(seatmap.TicketAttributes(cmd.Attr))
	if id == "" {
		return fmt.Errorf("seatctl: no attributes to format")
	}
	fmt.Fprintln(env.out, id)
	return nil
}

func (cmd *stylesCmd) Run(env *environment) error {
	scene, err := loadScene(cmd.Scene)
	if err != nil {
		return err
	}
	styles := seatmap.CompileStyles(seatmap.ExtractStylesheetText(scene.Root))
	data, err := json.MarshalIndent(styles, "", "  ")
	if err != nil {
		return fmt.Errorf("seatctl: encode styles: %w", err)
	}
	fmt.Fprintln(env.out, string(data))
	return nil
}

func (cmd *inventoryCmd) Run(ctx context.Context, env *environment) error {
	res, err := env.convert(ctx, cmd.Scene)
	if err != nil {
		return err
	}
	report := seatmap.BuildInventory(res.Root)
	fmt.Fprintf(env.out, "%d purchasable of %d shapes\n", report.Purchasable, report.Shapes)
	for _, bucket := range report.Buckets(cmd.Attr) {
		fmt.Fprintf(env.out, "%s=%s\t%d\n", cmd.Attr, bucket.Value, bucket.Count)
	}
	if cmd.Chart == "" {
		return nil
	}
	html, err := seatmap.RenderInventoryChart(report, cmd.Attr, seatmap.ChartOptions{})
	if err != nil {
		return err
	}
	return writeOutput(env.out, cmd.Chart, []byte(html))
}

func (cmd *previewCmd) Run(ctx context.Context, env *environment) error {
	res, err := env.convert(ctx, cmd.Scene)
	if err != nil {
		return err
	}
	renderer, err := seatmap.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("seatctl: template renderer: %w", err)
	}
	title := cmd.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(cmd.Scene), filepath.Ext(cmd.Scene))
	}
	var buf bytes.Buffer
	if err := seatmap.RenderPreview(renderer, title, res, &buf); err != nil {
		return err
	}
	if err := writeOutput(env.out, cmd.Out, buf.Bytes()); err != nil {
		return err
	}
	env.logger.Info("seatctl: preview written", "path", cmd.Out)
	return nil
}
