package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"shopsmart/service"
)

func newRenderCmd(c *cli) *cobra.Command {
	var (
		flags  viewFlags
		format string
		trace  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the storefront once to stdout",
		Example: `  shopsmart render --format text --tag winter --sort price-asc
  shopsmart render --format html --add hoodie --add mug > storefront.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			var traceOut io.Writer
			if trace {
				traceOut = cmd.ErrOrStderr()
			}
			s, err := c.buildSession(commandContext(cmd), &flags, traceOut)
			if err != nil {
				return err
			}
			view := s.Snapshot()

			switch format {
			case "text":
				_, err := fmt.Fprintln(out, service.NewTextRenderer(out).Snapshot(view))
				return err
			case "html":
				renderer, err := service.NewRenderService(service.NewMediaService(c.cfg.MediaCacheDir, c.logger), c.cfg.BaseURL, c.logger)
				if err != nil {
					return err
				}
				return renderer.RenderHTML(out, view, service.RenderOptions{InlineMedia: true})
			default:
				return fmt.Errorf("unsupported format %q (valid: html, text)", format)
			}
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: html, text")
	cmd.Flags().BoolVar(&trace, "trace", false, "print every view update to stderr")
	return cmd
}
