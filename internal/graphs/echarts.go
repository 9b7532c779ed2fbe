package graphs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/sankey/internal/lib"
	"github.com/psidex/sankey/internal/sankey"
)

// ECharts defines a Renderer that renders a go-echarts Sankey chart to a HTML file.
type ECharts struct {
	width  int
	height int
	logger *slog.Logger
}

var _ Renderer = (*ECharts)(nil)

// NewECharts creates an ECharts renderer drawing a width x height pixel chart.
func NewECharts(width, height int, logger *slog.Logger) *ECharts {
	if logger == nil {
		logger = lib.DiscardLogger()
	}
	return &ECharts{
		width:  width,
		height: height,
		logger: logger,
	}
}

func (e ECharts) RenderToFile(_ context.Context, d *sankey.Diagram, filename string) (string, error) {
	filename = filename + ".html"

	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := e.Render(f, d); err != nil {
		return "", err
	}

	return filename, f.Close()
}

// Render writes the HTML page for d to w.
func (e ECharts) Render(w io.Writer, d *sankey.Diagram) error {
	if d.HasCycle() {
		e.logger.Warn("Diagram contains a cycle, the Sankey layout will not be able to draw it", "title", d.Title)
	}
	if n := inexactValues(d.Edges); n > 0 {
		e.logger.Warn("Link values rounded to float32 for the chart", "title", d.Title, "links", n)
	}

	page := components.NewPage()
	page.PageTitle = d.Title
	page.AddCharts(sankeyBase(d, e.width, e.height))

	return page.Render(w)
}

// chartNodes turns the positional labels into chart nodes. ECharts identifies Sankey
// nodes by name, so repeated labels get a suffix.
func chartNodes(labels []string) []opts.SankeyNode {
	namer := lib.NewUniqueNamer()
	nodes := make([]opts.SankeyNode, len(labels))
	for i, label := range labels {
		nodes[i] = opts.SankeyNode{Name: namer.Name(label)}
	}
	return nodes
}

// chartLinks maps edges onto the chart nodes. ECharts link values are float32, so
// values beyond float32 precision are rounded (see inexactValues).
func chartLinks(nodes []opts.SankeyNode, edges []sankey.Edge) []opts.SankeyLink {
	links := make([]opts.SankeyLink, len(edges))
	for i, e := range edges {
		links[i] = opts.SankeyLink{
			Source: nodes[e.Source].Name,
			Target: nodes[e.Target].Name,
			Value:  float32(e.Value),
		}
	}
	return links
}

// inexactValues counts the edges whose value changes when narrowed to float32.
func inexactValues(edges []sankey.Edge) int {
	n := 0
	for _, e := range edges {
		if float64(float32(e.Value)) != e.Value {
			n++
		}
	}
	return n
}

func sankeyBase(d *sankey.Diagram, width, height int) *charts.Sankey {
	nodes := chartNodes(d.Labels)

	chart := charts.NewSankey()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: d.Title,
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: d.Title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
	)
	chart.AddSeries(
		"sankey",
		nodes,
		chartLinks(nodes, d.Edges),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: "source",
		}),
		charts.WithLabelOpts(opts.Label{
			Show:  opts.Bool(true),
			Color: "black",
		}),
	)
	return chart
}
