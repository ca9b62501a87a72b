package main

import "errors"

// KnownMetrics is the set of metric names exported by searchselect (the CLI
// via its textfile export, the mock server via /metrics) plus recording rule
// names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Search client metrics.
	"searchselect_search_requests_total":                  true,
	"searchselect_search_request_duration_seconds_bucket": true,
	"searchselect_client_rate_limit_waits_total":          true,

	// Widget metrics.
	"searchselect_widget_cache_lookups_total":       true,
	"searchselect_widget_searches_suppressed_total": true,
	"searchselect_widget_stale_responses_total":     true,
	"searchselect_widget_selection_changes_total":   true,

	// Mock server HTTP metrics.
	"searchselect_http_request_duration_seconds_bucket": true,
	"searchselect_http_requests_total":                  true,
	"searchselect_healthz_up":                           true,

	// Recording rules.
	"searchselect:search_requests:rate5m": true,
	"searchselect:search_failures:rate5m": true,
	"searchselect:cache_hits:rate5m":      true,
	"searchselect:cache_lookups:rate5m":   true,
	"searchselect:http_requests:rate5m":   true,
	"searchselect:http_errors:rate5m":     true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
