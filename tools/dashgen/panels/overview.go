package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat returns a stat panel showing the mock server health check.
func HealthzStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Healthz").
		Description("Mock server health check status (1 = ok, 0 = failing)").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`searchselect_healthz_up`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// CacheHitGauge returns a gauge panel showing the widget cache hit ratio.
func CacheHitGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Cache Hit %").
		Description("Share of widget searches answered from the result cache").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`searchselect:cache_hits:rate5m / searchselect:cache_lookups:rate5m * 100`,
			"", "A",
		)).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedGreen(30)).
		ColorScheme(ColorSchemeThresholds())
}

// SearchFailureStat returns a stat panel showing the share of failed remote
// searches.
func SearchFailureStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Search Failures %").
		Description("Network and API failures as percentage of remote searches").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`searchselect:search_failures:rate5m / searchselect:search_requests:rate5m * 100`,
			"", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// UptimeStat returns a stat panel showing mock server uptime.
func UptimeStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Uptime").
		Description("Time since the mock server process started").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`time() - process_start_time_seconds{job=%q}`, MockServerJob),
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
