package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopsmart/service"
)

func newDriveCmd(c *cli) *cobra.Command {
	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "Google Drive catalog helpers",
	}
	driveCmd.AddCommand(&cobra.Command{
		Use:   "ls <folderID>",
		Short: "List JSON and YAML catalog files in a Drive folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.DriveCreds == "" {
				return errors.New("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
			}
			ds, err := service.NewDriveService(commandContext(cmd), c.cfg.DriveCreds, c.logger)
			if err != nil {
				return err
			}
			files, err := ds.ListCatalogFiles(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE")
			for _, f := range files {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Name, f.MimeType)
			}
			return tw.Flush()
		},
	})
	return driveCmd
}
