package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pkt.systems/marklog"
	"pkt.systems/marklog/render"
	"pkt.systems/marklog/theme"
)

func newParseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [template]",
		Short: "Show how a template is split and which renderer handles each part",
		Long: `parse prints the segments of an output template and the renderer each
placeholder resolves to. Without an argument the configured template is
used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl := ""
			if len(args) == 1 {
				tmpl = args[0]
			} else {
				cfg, err := flags.load()
				if err != nil {
					return err
				}
				tmpl = cfg.Template
				if tmpl == "" {
					opts, err := cfg.Options()
					if err != nil {
						return err
					}
					th := theme.Default
					if opts.Theme != nil {
						th = *opts.Theme
					}
					tmpl = marklog.DefaultTemplate(th)
				}
			}
			if tmpl == "" {
				return fmt.Errorf("no template given and none configured")
			}
			pipeline := render.NewBuilder(render.NewRegistry(render.Builtins()...)).Build(tmpl)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OFFSET\tSEGMENT\tRENDERER")
			for _, step := range pipeline.Steps {
				fmt.Fprintf(w, "%d\t%s\t%s\n", step.Segment.Offset, step.Segment, describe(step))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if pipeline.NeedsCaller {
				fmt.Fprintln(cmd.OutOrStdout(), "caller lookup: enabled")
			}
			return nil
		},
	}
}

func describe(step render.Step) string {
	switch {
	case !step.Segment.Placeholder:
		return "static"
	case step.Err != nil:
		return "passthrough (" + step.Err.Error() + ")"
	case step.Descriptor == "":
		return "passthrough"
	default:
		return step.Descriptor
	}
}
