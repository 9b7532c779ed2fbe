package graphs

import (
	"context"
	"encoding/json"
	"os"

	"github.com/psidex/sankey/internal/sankey"
)

// JSON defines a Renderer that writes the diagram itself to a JSON file, for feeding
// other plotting tools.
type JSON struct{}

var _ Renderer = JSON{}

func NewJSON() JSON {
	return JSON{}
}

func (JSON) RenderToFile(_ context.Context, d *sankey.Diagram, filename string) (string, error) {
	filename = filename + ".json"

	jsonData, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err = file.Write(jsonData); err != nil {
		return "", err
	}

	return filename, file.Close()
}
