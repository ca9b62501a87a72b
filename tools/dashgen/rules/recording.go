package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name:   "searchselect-recording-rules",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "searchselect-recording",
					Rules: []Rule{
						{
							Record: "searchselect:search_requests:rate5m",
							Expr:   `sum(rate(searchselect_search_requests_total[5m]))`,
						},
						{
							Record: "searchselect:search_failures:rate5m",
							Expr:   `sum(rate(searchselect_search_requests_total{outcome=~"network_error|api_error"}[5m]))`,
						},
						{
							Record: "searchselect:cache_hits:rate5m",
							Expr:   `sum(rate(searchselect_widget_cache_lookups_total{result="hit"}[5m]))`,
						},
						{
							Record: "searchselect:cache_lookups:rate5m",
							Expr:   `sum(rate(searchselect_widget_cache_lookups_total[5m]))`,
						},
						{
							Record: "searchselect:http_requests:rate5m",
							Expr:   `sum(rate(searchselect_http_requests_total[5m]))`,
						},
						{
							Record: "searchselect:http_errors:rate5m",
							Expr:   `sum(rate(searchselect_http_requests_total{status=~"5.."}[5m]))`,
						},
					},
				},
			},
		},
	}
}

func ruleLabels() map[string]string {
	return map[string]string{"prometheus": "system-rules-prometheus"}
}
