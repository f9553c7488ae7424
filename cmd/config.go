package cmd

import (
	"fmt"

	"github.com/grovetools/navcore/cli"
	"github.com/grovetools/navcore/config"
	"github.com/grovetools/navcore/pkg/paths"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration and its schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of navcore.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after defaults are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.File() != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.File())
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "Print the directories navcore reads and writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "config_dir: %s\n", paths.ConfigDir())
			fmt.Fprintf(w, "state_dir:  %s\n", paths.StateDir())
			fmt.Fprintf(w, "prefs_file: %s\n", paths.PrefsFile())
			fmt.Fprintf(w, "log_dir:    %s\n", paths.LogDir())
			return nil
		},
	})

	return cmd
}
