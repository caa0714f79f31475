package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopsmart/service"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		flags  viewFlags
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the storefront as a PDF or PNG through headless Chrome",
		RunE: func(cmd *cobra.Command, _ []string) error {
			exportFormat, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = "storefront." + string(exportFormat)
			}

			ctx := commandContext(cmd)
			s, err := c.buildSession(ctx, &flags, nil)
			if err != nil {
				return err
			}

			renderer, err := service.NewRenderService(service.NewMediaService(c.cfg.MediaCacheDir, c.logger), c.cfg.BaseURL, c.logger)
			if err != nil {
				return err
			}
			html, err := renderer.RenderHTMLString(s.Snapshot(), service.RenderOptions{InlineMedia: true})
			if err != nil {
				return err
			}

			exporter := service.NewExportService(service.DetectChromePath(c.cfg.ChromePath), c.logger)
			data, err := exporter.Export(ctx, html, exportFormat)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			c.logger.Info("💾 Storefront exported", zap.String("file", out), zap.Int("bytes", len(data)))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "pdf", "export format: pdf, png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default storefront.<format>)")
	return cmd
}
