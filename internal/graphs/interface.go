package graphs

import (
	"context"

	"github.com/psidex/sankey/internal/sankey"
)

// Renderer defines something that can draw a sankey.Diagram to a file.
type Renderer interface {
	// RenderToFile writes d to filename plus the renderer's extension. filename should
	// be the desired file name without an extension. It returns the path written.
	RenderToFile(ctx context.Context, d *sankey.Diagram, filename string) (string, error)
}
