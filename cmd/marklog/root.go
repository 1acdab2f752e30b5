package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/marklog/config"
	"pkt.systems/marklog/level"
)

type rootFlags struct {
	configPath string
	theme      string
	template   string
	level      string
	noColor    bool
	forceColor bool
}

// NewRootCmd builds the command tree. Each call returns a fresh tree so
// tests can run commands independently.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "marklog",
		Short: "Preview and inspect marklog console output",
		Long: `marklog renders sample log events with the marklog console renderer so
themes, templates and configuration files can be tried out before they are
used by an application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/marklog/config.yaml)")
	pf.StringVar(&flags.theme, "theme", "", "theme name, see 'marklog themes'")
	pf.StringVarP(&flags.template, "template", "t", "", "output template for every level")
	pf.StringVarP(&flags.level, "level", "l", "", "minimum level")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colour")
	pf.BoolVar(&flags.forceColor, "force-color", false, "emit colour even when not writing to a terminal")

	root.AddCommand(newDemoCmd(flags))
	root.AddCommand(newParseCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newThemesCmd())
	return root
}

// load reads the configuration and applies command line overrides.
func (f *rootFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.theme != "" {
		cfg.Theme = f.theme
	}
	if f.template != "" {
		cfg.Template = f.template
	}
	if f.level != "" {
		var lvl level.Level
		if err := lvl.UnmarshalText([]byte(f.level)); err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}
	if f.noColor {
		cfg.NoColor = true
	}
	if f.forceColor {
		cfg.ForceColor = true
	}
	return cfg, nil
}
