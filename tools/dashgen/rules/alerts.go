package rules

// AlertRules returns a PrometheusRule CR with alerts on search health.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name:   "searchselect-alerts",
			Labels: ruleLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "searchselect-alerts",
					Rules: []Rule{
						{
							Alert:  "SearchselectMockServerDown",
							Expr:   `searchselect_healthz_up == 0`,
							For:    "2m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Mock search server health check is failing",
								"description": "The mock server /healthz probe has failed for more than 2 minutes.",
							},
						},
						{
							Alert:  "SearchselectHighSearchFailureRate",
							Expr:   `searchselect:search_failures:rate5m / searchselect:search_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Remote search failure rate is elevated",
								"description": "More than 5% of remote searches failed with network or API errors over 5 minutes.",
							},
						},
						{
							Alert:  "SearchselectHighHTTPErrorRate",
							Expr:   `searchselect:http_errors:rate5m / searchselect:http_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the mock search server",
								"description": "More than 5% of mock server requests returned 5xx over the last 5 minutes.",
							},
						},
						{
							Alert:  "SearchselectLowCacheHitRatio",
							Expr:   `searchselect:cache_hits:rate5m / searchselect:cache_lookups:rate5m < 0.1`,
							For:    "30m",
							Labels: severity("info"),
							Annotations: map[string]string{
								"summary":     "Widget cache is rarely hit",
								"description": "Fewer than 10% of widget searches were served from cache for 30 minutes; check cache_time.",
							},
						},
					},
				},
			},
		},
	}
}

func severity(s string) map[string]string {
	return map[string]string{"severity": s}
}
