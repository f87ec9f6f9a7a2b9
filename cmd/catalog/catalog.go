// Package catalog implements read-only commands over the persisted
// catalogs, currently a tabular listing of the harvested hutbes.
package catalog

import (
	"github.com/spf13/cobra"
)

// Command returns the catalog parent command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the persisted catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand())

	return cmd
}
