package graphs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/psidex/sankey/internal/lib"
	"github.com/psidex/sankey/internal/sankey"
)

func testDiagram() *sankey.Diagram {
	return &sankey.Diagram{
		Title:  "Direction of effect - B",
		Labels: []string{"A", "B", "C"},
		Edges:  []sankey.Edge{{Source: 1, Target: 2, Value: 3}},
	}
}

// pageTitle returns the text of the first <title> element.
func pageTitle(t *testing.T, page []byte) string {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	require.NoError(t, err)

	var title string
	var visitNode func(*html.Node)
	visitNode = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil && title == "" {
			title = n.FirstChild.Data
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visitNode(c)
		}
	}
	visitNode(doc)
	return title
}

func TestEChartsRenderToFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "Direction of effect - B")

	path, err := NewECharts(1000, 1000, nil).RenderToFile(context.Background(), testDiagram(), base)
	require.NoError(t, err)
	assert.Equal(t, base+".html", path)

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Direction of effect - B", pageTitle(t, page))

	content := string(page)
	assert.Contains(t, content, `"sankey"`)
	assert.Contains(t, content, "1000px")
	for _, label := range []string{`"A"`, `"B"`, `"C"`} {
		assert.Contains(t, content, label)
	}
}

func TestEChartsRenderToMissingDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "missing", "out")
	_, err := NewECharts(10, 10, nil).RenderToFile(context.Background(), testDiagram(), base)
	assert.Error(t, err)
}

func TestChartNodesDisambiguatesLabels(t *testing.T) {
	nodes := chartNodes([]string{"A", "B", "A"})
	assert.Equal(t, []opts.SankeyNode{{Name: "A"}, {Name: "B"}, {Name: "A (2)"}}, nodes)

	links := chartLinks(nodes, []sankey.Edge{{Source: 2, Target: 1, Value: 4}})
	require.Len(t, links, 1)
	assert.Equal(t, "A (2)", links[0].Source)
	assert.Equal(t, "B", links[0].Target)
	assert.Equal(t, float32(4), links[0].Value)
}

func TestEChartsWarnsOnRoundedValues(t *testing.T) {
	d := testDiagram()
	d.Edges = append(d.Edges, sankey.Edge{Source: 0, Target: 1, Value: 0.1}, sankey.Edge{Source: 0, Target: 2, Value: 1e300})

	var logs bytes.Buffer
	var page bytes.Buffer
	require.NoError(t, NewECharts(100, 100, lib.NiceLogger(&logs, slog.LevelWarn)).Render(&page, d))

	assert.Contains(t, logs.String(), "Link values rounded to float32")
	assert.Contains(t, logs.String(), "links=2")
}

func TestEChartsExactValuesDoNotWarn(t *testing.T) {
	var logs bytes.Buffer
	var page bytes.Buffer
	require.NoError(t, NewECharts(100, 100, lib.NiceLogger(&logs, slog.LevelWarn)).Render(&page, testDiagram()))
	assert.Empty(t, logs.String())
}

func TestJSONRenderToFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "diagram")

	path, err := NewJSON().RenderToFile(context.Background(), testDiagram(), base)
	require.NoError(t, err)
	assert.Equal(t, base+".json", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got sankey.Diagram
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *testDiagram(), got)
}

func TestNewRenderer(t *testing.T) {
	o := Options{Width: 800, Height: 600, SnapshotTimeout: time.Second}

	r, err := NewRenderer(FormatHTML, o, nil)
	require.NoError(t, err)
	assert.IsType(t, &ECharts{}, r)

	r, err = NewRenderer(FormatJSON, o, nil)
	require.NoError(t, err)
	assert.IsType(t, JSON{}, r)

	r, err = NewRenderer(FormatPNG, o, nil)
	require.NoError(t, err)
	assert.IsType(t, &PNG{}, r)

	_, err = NewRenderer("svg", o, nil)
	assert.ErrorContains(t, err, "svg")
}

func haveChrome() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestPNGRenderToFile(t *testing.T) {
	if testing.Short() || !haveChrome() {
		t.Skip("needs a local Chrome")
	}

	base := filepath.Join(t.TempDir(), "diagram")
	r := NewPNG(NewECharts(400, 300, nil), 30*time.Second, nil)

	path, err := r.RenderToFile(context.Background(), testDiagram(), base)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\x89PNG"))
}
