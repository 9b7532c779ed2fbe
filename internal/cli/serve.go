package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/psidex/sankey/internal/graphs"
	"github.com/psidex/sankey/internal/serve"
	"github.com/psidex/sankey/internal/table"
	"github.com/psidex/sankey/internal/ui"
)

func serveCmd(o *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live view of the diagram that reloads when the tables change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.environment(cmd, stderr)
			if err != nil {
				return err
			}

			// Fail before listening if the tables are unusable.
			if _, err := env.buildDiagram(cmd.Context()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runServe(ctx, env, stdout)
		},
	}

	addTableFlags(cmd, o)
	cmd.Flags().StringVar(&o.bind, "bind", "", "The ip:port to bind the webserver to (default from config).")

	return cmd
}

func runServe(ctx context.Context, e *environment, stdout io.Writer) error {
	var watch []string
	for _, path := range []string{e.opts.nodesPath, e.opts.linksPath} {
		if !table.IsRemote(path) {
			watch = append(watch, path)
		}
	}

	s := serve.NewServer(
		e.logger,
		e.buildDiagram,
		graphs.NewECharts(e.cfg.Chart.Width, e.cfg.Chart.Height, e.logger),
		watch,
		e.cfg.Serve.PollInterval.Duration,
	)

	srv := &http.Server{
		Addr:              e.cfg.Serve.Bind,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	ui.Info.Fprintf(stdout, "Serving live diagram on http://%s\n", e.cfg.Serve.Bind)
	e.logger.Info("Started live server", "address", e.cfg.Serve.Bind, "watching", watch)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	e.logger.Info("Stopped live server")
	return nil
}
