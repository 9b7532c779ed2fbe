package main

import (
	"os"

	"github.com/psidex/sankey/internal/cli"
	"github.com/psidex/sankey/internal/ui"
)

func main() {
	if err := cli.Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "sankey: %v\n", err)
		os.Exit(1)
	}
}
