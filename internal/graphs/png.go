package graphs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/psidex/sankey/internal/lib"
	"github.com/psidex/sankey/internal/sankey"
	"github.com/psidex/sankey/internal/snapshot"
)

// PNG defines a Renderer that renders the ECharts HTML page and screenshots it with a
// headless Chrome.
type PNG struct {
	charts  *ECharts
	timeout time.Duration
	logger  *slog.Logger
}

var _ Renderer = (*PNG)(nil)

func NewPNG(charts *ECharts, timeout time.Duration, logger *slog.Logger) *PNG {
	if logger == nil {
		logger = lib.DiscardLogger()
	}
	return &PNG{charts: charts, timeout: timeout, logger: logger}
}

func (p PNG) RenderToFile(ctx context.Context, d *sankey.Diagram, filename string) (string, error) {
	dir, err := os.MkdirTemp("", "sankey-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	htmlPath, err := p.charts.RenderToFile(ctx, d, filepath.Join(dir, "diagram"))
	if err != nil {
		return "", err
	}

	pageURL, err := snapshot.FileURL(htmlPath)
	if err != nil {
		return "", err
	}

	buf, err := snapshot.Capture(ctx, p.logger, pageURL, snapshot.Config{
		Width:   int64(p.charts.width),
		Height:  int64(p.charts.height),
		Timeout: p.timeout,
		Settle:  time.Second,
	})
	if err != nil {
		return "", err
	}

	filename = filename + ".png"
	if err := os.WriteFile(filename, buf, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
