package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

// CacheLookups returns a timeseries panel of widget cache lookups by result.
func CacheLookups() *timeseries.PanelBuilder {
	return stacked(lineSeries(
		"Cache Lookups",
		"Widget result cache lookups by result (hit, miss, stale)",
		`sum by (result) (rate(searchselect_widget_cache_lookups_total[5m]))`,
		"{{result}}", "ops",
	)).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// SuppressedSearches returns a timeseries panel of searches that never hit
// the network, by reason (min_length, busy).
func SuppressedSearches() *timeseries.PanelBuilder {
	return lineSeries(
		"Suppressed Searches",
		"Searches skipped for a short query or dropped while another was in flight",
		`sum by (reason) (rate(searchselect_widget_searches_suppressed_total[5m]))`,
		"{{reason}}", "ops",
	).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// StaleResponses returns a timeseries panel of responses discarded because
// the user had already moved on.
func StaleResponses() *timeseries.PanelBuilder {
	return lineSeries(
		"Stale Responses",
		"Responses that arrived after a newer search intent and were not rendered",
		`sum by (type) (rate(searchselect_widget_stale_responses_total[5m]))`,
		"{{type}}", "ops",
	).Thresholds(ThresholdsGreenOnly())
}

// SelectionChanges returns a timeseries panel of change notifications.
func SelectionChanges() *timeseries.PanelBuilder {
	return lineSeries(
		"Selection Changes",
		"Change notifications emitted by widgets, by search type",
		`sum by (type) (rate(searchselect_widget_selection_changes_total[5m]))`,
		"{{type}}", "ops",
	)
}
