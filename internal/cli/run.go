package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/psidex/sankey/internal/config"
	"github.com/psidex/sankey/internal/graphs"
	"github.com/psidex/sankey/internal/lib"
	"github.com/psidex/sankey/internal/sankey"
	"github.com/psidex/sankey/internal/table"
	"github.com/psidex/sankey/internal/ui"
)

// environment is everything a run needs once flags and config are resolved.
type environment struct {
	opts   *options
	cfg    *config.Config
	logger *slog.Logger
	loader *table.Loader
}

func (o *options) environment(cmd *cobra.Command, stderr io.Writer) (*environment, error) {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return nil, err
	}

	level, err := lib.ParseSLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := lib.NiceLogger(stderr, level)

	return &environment{
		opts:   o,
		cfg:    cfg,
		logger: logger,
		loader: table.NewLoader(&http.Client{Timeout: cfg.HTTP.Timeout.Duration}, logger),
	}, nil
}

// buildDiagram loads both tables and builds the diagram.
func (e *environment) buildDiagram(ctx context.Context) (*sankey.Diagram, error) {
	nodes, err := e.loader.LoadNodes(ctx, e.opts.nodesPath)
	if err != nil {
		return nil, err
	}

	links, err := e.loader.LoadLinks(ctx, e.opts.linksPath, e.opts.valuesCol)
	if err != nil {
		return nil, err
	}

	d, err := sankey.Build(nodes, links, e.opts.source)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Built diagram",
		"title", d.Title,
		"nodes", len(d.Labels),
		"links", len(links),
		"edges", len(d.Edges),
	)
	return d, nil
}

func (e *environment) graphOptions() graphs.Options {
	return graphs.Options{
		Width:           e.cfg.Chart.Width,
		Height:          e.cfg.Chart.Height,
		SnapshotTimeout: e.cfg.Chart.SnapshotTimeout.Duration,
	}
}

// runRender is the whole one-shot pipeline: load, filter, map, render, open.
func runRender(ctx context.Context, e *environment, stdout io.Writer) error {
	d, err := e.buildDiagram(ctx)
	if err != nil {
		return err
	}

	renderer, err := graphs.NewRenderer(e.cfg.Format, e.graphOptions(), e.logger)
	if err != nil {
		return err
	}

	path, err := renderer.RenderToFile(ctx, d, filepath.Join(e.cfg.OutDir, d.Title))
	if err != nil {
		return err
	}
	e.logger.Info("Wrote diagram", "path", path, "format", e.cfg.Format)

	ui.Good.Fprintf(stdout, "%s wrote %s\n", ui.StatusIcon(true), path)

	if e.cfg.Open {
		if err := openFile(path); err != nil {
			e.logger.Warn("Could not open diagram", "path", path, "error", err)
			ui.Warn.Fprintln(stdout, "  Open it yourself to see the diagram")
		}
	}
	return nil
}
