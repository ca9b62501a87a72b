package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/searchselect/internal/api/client"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

func suggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "suggest <type>",
		Short:   "List quick suggestions for a search type",
		Example: `  searchselect suggest empresa --limit 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			return runSuggest(cmd.Context(), cmd.OutOrStdout(), newClient(cfg, log),
				domain.SearchType(args[0]), limit, jsonOutput())
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of suggestions")

	return cmd
}

func runSuggest(
	ctx context.Context,
	w io.Writer,
	c *apiclient.Client,
	t domain.SearchType,
	limit int,
	asJSON bool,
) error {
	sugg, err := c.Suggestions(ctx, t, limit)
	if err != nil {
		return fmt.Errorf("fetching suggestions: %w", err)
	}

	if asJSON {
		return outputJSON(w, sugg)
	}
	return printSuggestionsTable(w, sugg)
}
