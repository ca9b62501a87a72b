package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printResultsTable(w io.Writer, resp *domain.SearchResponse, req domain.SearchRequest) error {
	if len(resp.Results) == 0 {
		_, err := fmt.Fprintln(w, "No results found")
		return err
	}

	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tDESCRIPTION\tSTATUS\n")
	for i := range resp.Results {
		it := &resp.Results[i]
		tw.writef("%s\t%s\t%s\t%s\n",
			it.ID,
			truncate(it.Name, 40),
			truncate(orDash(it.Description), 40),
			orDash(it.Status),
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	page, pages := pageInfo(resp, req)
	_, err := fmt.Fprintf(w, "\nPage %d of %d (%d results)\n", page, pages, resp.Total)
	return err
}

// pageInfo prefers the server's pagination fields and falls back to
// computing them from the request.
func pageInfo(resp *domain.SearchResponse, req domain.SearchRequest) (page, pages int) {
	page = resp.Page
	if page < 1 {
		page = max(req.Page, 1)
	}

	pages = resp.TotalPages
	if pages < 1 {
		size := resp.Limit
		if size < 1 {
			size = req.Limit
		}
		if size > 0 && resp.Total > 0 {
			pages = (resp.Total + size - 1) / size
		}
	}
	return page, max(pages, 1)
}

func printSuggestionsTable(w io.Writer, suggestions []domain.Suggestion) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\n")
	for _, s := range suggestions {
		tw.writef("%s\t%s\n", s.ID, truncate(s.Name, 60))
	}
	return tw.finish()
}

func printStatsTable(w io.Writer, resp *domain.StatsResponse) error {
	categories := make([]string, 0, len(resp.Stats))
	for c := range resp.Stats {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	tw := newTabWriter(w)
	tw.writef("CATEGORY\tTOTAL\tACCESSIBLE\n")
	for _, c := range categories {
		st := resp.Stats[c]
		tw.writef("%s\t%d\t%d\n", c, st.Total, st.Accessible)
	}
	if resp.UserType != "" {
		tw.writef("\nUser type:\t%s\n", resp.UserType)
	}
	return tw.finish()
}

func printTypesTable(w io.Writer, types []domain.TypeInfo) error {
	tw := newTabWriter(w)
	tw.writef("TYPE\tLABEL\tENDPOINT\tFILTERS\n")
	for i := range types {
		keys := make([]string, 0, len(types[i].Filters))
		for _, f := range types[i].Filters {
			keys = append(keys, f.Key)
		}
		tw.writef("%s\t%s\t/api/search/%s\t%s\n",
			types[i].Type,
			types[i].Label,
			types[i].Endpoint,
			orDash(strings.Join(keys, ",")),
		)
	}
	return tw.finish()
}

func printSelectionTable(w io.Writer, selected []domain.SearchItem) error {
	if len(selected) == 0 {
		_, err := fmt.Fprintln(w, "Nothing selected")
		return err
	}

	tw := newTabWriter(w)
	tw.writef("ID\tNAME\n")
	for _, it := range selected {
		tw.writef("%s\t%s\n", it.ID, truncate(it.Name, 60))
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to maxLen runes; record names are often accented.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
