package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopsmart/repository"
)

func newValidateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog file>",
		Short: "Check a JSON or YAML catalog file against the catalog schema and rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := repository.NewFileCatalogRepository(args[0], c.logger)
			cat, err := repository.LoadCatalog(commandContext(cmd), repo)
			if err != nil {
				return fmt.Errorf("❌ %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d products, %d categories, %d tags, max price bound %s\n",
				args[0], cat.Len(), len(cat.Categories()), len(cat.Tags()), cat.MaxPriceBound().StringFixed(2))
			return nil
		},
	}
}
