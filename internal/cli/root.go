package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/psidex/sankey/internal/config"
	"github.com/psidex/sankey/internal/graphs"
	"github.com/psidex/sankey/internal/lib"
)

var version = "0.1.0"

// options are the values of the command-line flags.
type options struct {
	nodesPath  string
	linksPath  string
	valuesCol  string
	source     string
	configPath string
	logLevel   string

	format string
	outDir string
	noOpen bool

	bind string
}

// NewRootCmd builds the sankey command tree. stdout receives the result line, stderr
// receives logs.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "sankey",
		Short: "Render a Sankey flow diagram from node and link tables",
		Long: "sankey reads a tab-separated node table (Index, Label) and link table\n" +
			"(source, target and a value column) and draws the flow between them.\n" +
			"With --source only the flow around that node is shown.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.environment(cmd, stderr)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), env, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", config.DefaultPath(), "Path to the TOML config file.")
	pf.StringVar(&o.logLevel, "log-level", "", "Logging level: debug, info, warn or error (default from config).")

	addTableFlags(cmd, o)
	f := cmd.Flags()
	f.StringVar(&o.format, "format", "", fmt.Sprintf("Output format, one of %v (default from config).", graphs.Formats))
	f.StringVar(&o.outDir, "out_dir", "", "Directory to write the diagram to (default from config).")
	f.BoolVar(&o.noOpen, "no-open", false, "Do not open the diagram once written.")

	cmd.AddCommand(
		serveCmd(o, stdout, stderr),
		configCmd(o, stdout),
	)

	return cmd
}

// addTableFlags registers the table flags on the commands that build a diagram.
func addTableFlags(cmd *cobra.Command, o *options) {
	f := cmd.Flags()
	f.StringVar(&o.nodesPath, "nodes_path", "", "Table with all the nodes to be represented in the diagram in TSV format (path or URL).")
	f.StringVar(&o.linksPath, "links_path", "", "Table with all the links between nodes to be represented in the diagram in TSV format (path or URL).")
	f.StringVar(&o.valuesCol, "values_col", "", "Name of the column in the links table to represent the strength of the flow.")
	f.StringVar(&o.source, "source", "", "Optional label of a node to restrict the diagram to.")
	for _, name := range []string{"nodes_path", "links_path", "values_col"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCmd(os.Stdout, os.Stderr).Execute()
}

// resolve loads the config file and applies flag overrides to it.
func (o *options) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("out_dir") {
		cfg.OutDir = o.outDir
	}
	if flags.Changed("no-open") {
		cfg.Open = !o.noOpen
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("bind") {
		cfg.Serve.Bind = o.bind
	}

	if !slices.Contains(graphs.Formats, cfg.Format) {
		return nil, fmt.Errorf("unknown output format: %q (want one of %v)", cfg.Format, graphs.Formats)
	}
	if _, err := lib.ParseSLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
