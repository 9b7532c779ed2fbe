// Package serve hosts a live view of a diagram: the chart page is rebuilt from the
// tables on every request, and a websocket tells open pages to reload when the table
// files change on disk.
package serve

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/psidex/sankey/internal/graphs"
	"github.com/psidex/sankey/internal/lib"
	"github.com/psidex/sankey/internal/sankey"
)

const writeTimeout = 10 * time.Second

// BuildFunc loads the tables and builds the diagram to show.
type BuildFunc func(ctx context.Context) (*sankey.Diagram, error)

type Server struct {
	logger   *slog.Logger
	build    BuildFunc
	charts   *graphs.ECharts
	watch    []string
	poll     time.Duration
	upgrader websocket.Upgrader
}

// NewServer creates a Server. watch lists local files whose modification makes open
// pages reload; it is polled every poll.
func NewServer(logger *slog.Logger, build BuildFunc, charts *graphs.ECharts, watch []string, poll time.Duration) *Server {
	if logger == nil {
		logger = lib.DiscardLogger()
	}
	return &Server{
		logger: logger,
		build:  build,
		charts: charts,
		watch:  watch,
		poll:   poll,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.page)
	mux.HandleFunc("/ws", s.session)
	return mux
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	d, err := s.build(r.Context())
	if err != nil {
		s.logger.Error("Failed to build diagram", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.charts.Render(&buf, d); err != nil {
		s.logger.Error("Failed to render diagram", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := injectScript(&buf, liveScript)
	if err != nil {
		s.logger.Error("Failed to inject live script", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		s.logger.Debug("Failed to write page", "error", err)
	}
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("ws upgrade err", "error", err)
		return
	}

	ws := lib.NewThreadSafeWebSocket(c, writeTimeout)
	defer ws.Close()

	// Taken before building so an edit during the build still triggers a reload.
	stamps := modTimes(s.watch)

	d, err := s.build(r.Context())
	if err != nil {
		s.logger.Error("Failed to build diagram", "error", err)
		_ = ws.WriteText(errorMessage(err))
	} else if err := ws.WriteText(summaryMessage(d)); err != nil {
		s.logger.Debug("ws write err", "error", err)
		return
	}

	wsrecv := make(chan struct{})
	go func() {
		// The client never sends anything; a read only returns once the socket closes.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				close(wsrecv)
				return
			}
		}
	}()

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-wsrecv:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !changed(stamps, modTimes(s.watch)) {
				continue
			}
			s.logger.Info("Tables changed, reloading open pages")
			if err := ws.WriteText(reloadMessage()); err != nil {
				s.logger.Debug("ws write err", "error", err)
			}
			return
		}
	}
}

// modTimes returns the modification time of each path; unreadable paths get the zero
// time so that their reappearance counts as a change.
func modTimes(paths []string) []time.Time {
	stamps := make([]time.Time, len(paths))
	for i, path := range paths {
		if info, err := os.Stat(path); err == nil {
			stamps[i] = info.ModTime()
		}
	}
	return stamps
}

func changed(before, after []time.Time) bool {
	for i := range before {
		if !before[i].Equal(after[i]) {
			return true
		}
	}
	return false
}
