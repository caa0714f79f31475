package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shopsmart/app"
	"shopsmart/config"
	"shopsmart/service"
)

func newSyncCmd(c *cli) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy a file or Drive catalog into the SQL catalog",
		Example: `  shopsmart sync --from data/catalog.yaml
  shopsmart sync --from drive:1AbCdEf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			if from == "" {
				from = c.cfg.CatalogSource
			}
			ref, err := config.ParseCatalogSource(from)
			if err != nil {
				return err
			}
			if ref.Kind == config.SourceSQL {
				return errors.New("--from must be a file or Drive catalog")
			}

			source, err := app.OpenCatalogSource(ctx, c.cfg, ref, c.logger)
			if err != nil {
				return err
			}
			defer source.Close()

			dest, err := app.OpenCatalogSource(ctx, c.cfg, config.CatalogSourceRef{Kind: config.SourceSQL}, c.logger)
			if err != nil {
				return err
			}
			defer dest.Close()

			stats, err := service.NewSyncService(source.Repo, dest.SQL, c.logger).SyncCatalog(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ synced %d products (%d added, %d kept, %d removed)\n",
				stats.Total, stats.Added, stats.Kept, stats.Removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source catalog: file path or drive:<fileID> (default from config)")
	return cmd
}
