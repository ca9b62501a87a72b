package cmd

import (
	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the known search types and their filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), domain.KnownTypes())
			}
			return printTypesTable(cmd.OutOrStdout(), domain.KnownTypes())
		},
	}
}
