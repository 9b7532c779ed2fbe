package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/psidex/sankey/internal/config"
	"github.com/psidex/sankey/internal/ui"
)

func configCmd(o *options, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the sankey config file",
	}

	cmd.AddCommand(configInitCmd(o, stdout))

	return cmd
}

func configInitCmd(o *options, stdout io.Writer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to the --config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(o.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", o.configPath)
			}

			if err := config.Save(config.Default(), o.configPath); err != nil {
				return err
			}

			ui.Good.Fprintf(stdout, "%s wrote %s\n", ui.StatusIcon(true), o.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file.")

	return cmd
}
