package graphs

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatHTML, FormatJSON, FormatPNG}

// Options holds what the renderers need from configuration.
type Options struct {
	Width           int
	Height          int
	SnapshotTimeout time.Duration
}

// NewRenderer returns the Renderer for an output format.
func NewRenderer(format string, o Options, logger *slog.Logger) (Renderer, error) {
	switch format {
	case FormatHTML:
		return NewECharts(o.Width, o.Height, logger), nil
	case FormatJSON:
		return NewJSON(), nil
	case FormatPNG:
		return NewPNG(NewECharts(o.Width, o.Height, logger), o.SnapshotTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q (want one of %v)", format, Formats)
	}
}
