package main

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pkt.systems/marklog"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/render"
	"pkt.systems/marklog/scope"
	"pkt.systems/marklog/theme"
)

func newDemoCmd(flags *rootFlags) *cobra.Command {
	var allThemes bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render sample events at every level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			// The demo always writes to the command output.
			cfg.Output = "default"
			out := cmd.OutOrStdout()
			if !allThemes {
				p, err := cfg.NewProvider(out)
				if err != nil {
					return err
				}
				runDemo(cmd.Context(), p)
				return p.Close()
			}
			for _, name := range theme.Names() {
				cfg.Theme = name
				fmt.Fprintf(out, "%s:\n", name)
				p, err := cfg.NewProvider(out)
				if err != nil {
					return err
				}
				paintTheWorld(cmd.Context(), p, name)
				if err := p.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allThemes, "all-themes", false, "render one line per theme")
	return cmd
}

func runDemo(ctx context.Context, p *marklog.Provider) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := p.Logger("Demo.Checkout")
	ctx = scope.WithActivity(ctx, "7f3c9a10")
	ctx, release := log.BeginScope(ctx, scope.KV("order", 1042))
	defer release()

	log.Trace(ctx, "resolving {Count} price rules", 12)
	log.Debug(ctx, "cache {Hit} after {Elapsed}", true, 1500*time.Microsecond)
	log.Info(ctx, "charged {Amount:N2} to {Customer} at {When:t}", 1234.5, "alice", time.Now())
	log.Warn(ctx, "retrying {@Request} in {Delay}", map[string]any{"gateway": "acme", "attempt": 2}, 2*time.Second)
	cause := pkgerrors.New("connection reset by peer")
	log.LogError(ctx, level.Error, pkgerrors.Wrap(cause, "authorize payment"), "payment {Id} failed", "pay_91x")
	_ = log.Render(ctx, marklog.Entry{
		Level:   level.Critical,
		EventID: render.EventID{ID: 5001, Name: "LedgerMismatch"},
		Message: "ledger out of balance by {Delta:F2}",
		Args:    []any{-0.01},
	})
}

func paintTheWorld(ctx context.Context, p *marklog.Provider, msg string) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := p.Logger("Demo.Themes")
	for _, lvl := range level.All {
		if lvl == level.Trace || lvl == level.Critical {
			continue
		}
		log.Log(ctx, lvl, "{Theme} {Count} {Ok} {Nothing}", msg, 42, true, nil)
	}
}
