package seatmap

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// ChartOptions tunes the inventory chart.
type ChartOptions struct {
	Title      string
	Theme      string
	AssetsHost string
}

// RenderInventoryChart renders a bar chart of ticket counts for attr.
func RenderInventoryChart(report InventoryReport, attr string, options ChartOptions) (string, error) {
	if _, ok := CodeFor(attr); !ok {
		return "", fmt.Errorf("seatmap: unknown ticket attribute %q", attr)
	}
	if options.Title == "" {
		options.Title = "Tickets by " + attr
	}
	if options.Theme == "" {
		options.Theme = types.ThemeWesteros
	}

	buckets := report.Buckets(attr)
	xAxis := make([]string, len(buckets))
	data := make([]opts.BarData, len(buckets))
	for i, bucket := range buckets {
		xAxis[i] = bucket.Value
		data[i] = opts.BarData{Name: bucket.Value, Value: bucket.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions(options, report)...)
	bar.SetXAxis(xAxis)
	bar.AddSeries("tickets", data)
	return renderChart(bar)
}

func chartOptions(options ChartOptions, report InventoryReport) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  options.Theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if options.AssetsHost != "" {
		initOpts.AssetsHost = options.AssetsHost
	}
	subtitle := fmt.Sprintf("%d purchasable of %d shapes", report.Purchasable, report.Shapes)
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: options.Title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", fmt.Errorf("seatmap: render chart: %w", err)
	}
	return buf.String(), nil
}
