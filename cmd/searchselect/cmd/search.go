package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/searchselect/internal/api/client"
	"github.com/donaldgifford/searchselect/internal/widget"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

func searchCmd() *cobra.Command {
	var (
		page    int
		limit   int
		filters []string
	)

	cmd := &cobra.Command{
		Use:   "search <type> [query]",
		Short: "Run a single search and print the results",
		Long: "Sends one GET /api/search/{type} request and prints the page of results.\n" +
			"Types: empresa, tarefa, colaborador, setor.",
		Example: `  searchselect search empresa acme
  searchselect search colaborador --filter ativo --page 2
  searchselect search tarefa "folha de pagamento" --output json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			req := domain.SearchRequest{
				Type:    domain.SearchType(args[0]),
				Page:    page,
				Limit:   limit,
				Filters: filters,
			}
			if len(args) == 2 {
				req.Query = args[1]
			}
			if req.Limit == 0 {
				req.Limit = cfg.WidgetFor(req.Type).MaxResults
			}
			if err := validateFilters(req.Type, req.Filters); err != nil {
				return err
			}

			return runSearch(cmd.Context(), cmd.OutOrStdout(), newClient(cfg, log), req, jsonOutput())
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "results per page (default from config)")
	cmd.Flags().StringSliceVar(&filters, "filter", nil, "filter key to enable (repeatable)")

	return cmd
}

func runSearch(
	ctx context.Context,
	w io.Writer,
	c *apiclient.Client,
	req domain.SearchRequest,
	asJSON bool,
) error {
	resp, err := c.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("searching %s: %w", req.Type, err)
	}

	if asJSON {
		return outputJSON(w, resp)
	}
	return printResultsTable(w, resp, req)
}

// validateFilters rejects filter keys the type does not declare.
func validateFilters(t domain.SearchType, keys []string) error {
	info, _ := domain.Lookup(t)
	for _, key := range keys {
		known := slices.ContainsFunc(info.Filters, func(f domain.FilterOption) bool {
			return f.Key == key
		})
		if !known {
			return fmt.Errorf("%w %q for type %s", widget.ErrUnknownFilter, key, t)
		}
	}
	return nil
}
