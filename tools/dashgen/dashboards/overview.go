// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/searchselect/tools/dashgen/panels"
)

// BuildOverview constructs the searchselect overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Searchselect Overview").
		Uid("searchselect-overview").
		Tags([]string{"searchselect"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.CacheHitGauge()).
		WithPanel(panels.SearchFailureStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Search Client").
		WithPanel(panels.SearchRate()).
		WithPanel(panels.SearchLatency()).
		WithPanel(panels.RateLimitWaits()))

	b.WithRow(dashboard.NewRowBuilder("Widget").
		WithPanel(panels.CacheLookups()).
		WithPanel(panels.SuppressedSearches()).
		WithPanel(panels.StaleResponses()).
		WithPanel(panels.SelectionChanges()))

	b.WithRow(dashboard.NewRowBuilder("Mock Server").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
