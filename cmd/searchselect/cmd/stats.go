package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/searchselect/internal/api/client"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per search category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			return runStats(cmd.Context(), cmd.OutOrStdout(), newClient(cfg, log), jsonOutput())
		},
	}
}

func runStats(ctx context.Context, w io.Writer, c *apiclient.Client, asJSON bool) error {
	resp, err := c.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetching stats: %w", err)
	}

	if asJSON {
		return outputJSON(w, resp)
	}
	return printStatsTable(w, resp)
}
