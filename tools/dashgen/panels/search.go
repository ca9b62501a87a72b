package panels

import "github.com/grafana/grafana-foundation-sdk/go/timeseries"

// SearchRate returns a timeseries panel of remote searches by outcome.
func SearchRate() *timeseries.PanelBuilder {
	return stacked(lineSeries(
		"Searches by Outcome",
		"Remote searches per second split by success, empty, api_error and network_error",
		`sum by (outcome) (rate(searchselect_search_requests_total[5m]))`,
		"{{outcome}}", "ops",
	)).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip())
}

// SearchLatency returns a timeseries panel of p95 remote search latency per
// search type.
func SearchLatency() *timeseries.PanelBuilder {
	return lineSeries(
		"Search Latency p95",
		"95th percentile remote search duration by search type",
		`histogram_quantile(0.95, sum(rate(searchselect_search_request_duration_seconds_bucket[5m])) by (le, type))`,
		"{{type}}", "s",
	).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly())
}

// RateLimitWaits returns a full-width panel of client rate limiter waits.
func RateLimitWaits() *timeseries.PanelBuilder {
	return lineSeries(
		"Rate Limiter Waits",
		"Requests that passed through the client-side token bucket",
		`rate(searchselect_client_rate_limit_waits_total[5m])`,
		"waits/s", "ops",
	).Span(FullWidth)
}
