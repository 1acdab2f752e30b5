package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/marklog/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `config prints the configuration marklog would use after layering the
defaults, the config file, MARKLOG_* environment variables and command line
flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if _, err := cfg.Options(); err != nil {
				return err
			}
			data, err := config.Dump(cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or toml")
	return cmd
}
