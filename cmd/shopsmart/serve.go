package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"shopsmart/app"
)

func newServeCmd(c *cli) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the storefront HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("watch") {
				c.cfg.CatalogWatch = watch
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.Initialize(ctx, c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return a.Serve(gctx)
			})
			g.Go(func() error {
				return a.Sessions.Run(gctx, time.Minute)
			})
			if a.Watcher != nil {
				g.Go(func() error {
					return a.Watcher.Run(gctx)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog file when it changes")
	return cmd
}

// commandContext returns cmd's context, or Background for commands run without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
