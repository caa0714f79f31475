package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopsmart/config"
	"shopsmart/logging"
)

// cli carries what PersistentPreRunE prepares for every command.
type cli struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "shopsmart",
		Short: "ShopSmart storefront server and tools",
		Long: `ShopSmart serves a product storefront with filtering, sorting, a cart and
a light/dark theme, and renders, exports, validates and syncs catalogs.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./shopsmart.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(c),
		newRenderCmd(c),
		newExportCmd(c),
		newValidateCmd(c),
		newSyncCmd(c),
		newDriveCmd(c),
	)
	return rootCmd
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if c.verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}
