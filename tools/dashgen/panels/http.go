package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the mock server request rate.
func RequestRate() *timeseries.PanelBuilder {
	return lineSeries(
		"Request Rate",
		"Mock server HTTP requests per second",
		`searchselect:http_requests:rate5m`,
		"req/s", "reqps",
	).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// mock server latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	quantile := func(q string) string {
		return fmt.Sprintf(
			`histogram_quantile(%s, sum(rate(searchselect_http_request_duration_seconds_bucket{job=%q}[5m])) by (le))`,
			q, MockServerJob,
		)
	}

	return lineSeries(
		"Latency Percentiles",
		"Mock server request duration percentiles",
		quantile("0.50"), "p50", "s",
	).
		WithTarget(PromQuery(quantile("0.95"), "p95", "B")).
		WithTarget(PromQuery(quantile("0.99"), "p99", "C")).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly())
}

// ErrorRate returns a timeseries panel showing the 5xx error rate as a
// percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return lineSeries(
		"Error Rate %",
		"HTTP 5xx error rate as percentage of total requests",
		`searchselect:http_errors:rate5m / searchselect:http_requests:rate5m * 100`,
		"error %", "percent",
	).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}
