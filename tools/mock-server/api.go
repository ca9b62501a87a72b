package main

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
)

// newAPI mounts a huma API on e. It serves the OpenAPI document at
// /openapi.json and the docs UI at /docs.
func newAPI(e *echo.Echo) huma.API {
	cfg := huma.DefaultConfig("Searchselect Mock API", "1.0.0")
	cfg.Info.Description = "Fixture-backed search API for exercising the searchselect widget."
	return humaecho.New(e, cfg)
}

type categoryStats struct {
	Total     int `json:"total" doc:"Records visible to the user"`
	Acessivel int `json:"acessivel" doc:"Records the user may select"`
}

// StatsOutput is the response body for the stats endpoint.
type StatsOutput struct {
	Body struct {
		Success  bool                     `json:"success"`
		Stats    map[string]categoryStats `json:"stats" doc:"Counts keyed by endpoint name"`
		UserType string                   `json:"user_type" doc:"Role of the calling user" example:"admin"`
	}
}

// Stats reports record counts per category. Companies and employees only
// count active records.
func (s *server) Stats(_ context.Context, _ *struct{}) (*StatsOutput, error) {
	out := &StatsOutput{}
	out.Body.Success = true
	out.Body.UserType = s.userType
	out.Body.Stats = make(map[string]categoryStats, len(s.fixtures))
	for endpoint, cat := range s.fixtures {
		total := len(cat.records)
		if endpoint == "empresas" || endpoint == "colaboradores" {
			total = cat.countActive()
		}
		out.Body.Stats[endpoint] = categoryStats{Total: total, Acessivel: total}
	}
	return out, nil
}

func registerStatsRoutes(api huma.API, s *server) {
	huma.Register(api, huma.Operation{
		OperationID: "get-search-stats",
		Method:      http.MethodGet,
		Path:        "/api/search/stats",
		Summary:     "Get search stats",
		Description: "Returns per-category record counts and the caller's user type.",
		Tags:        []string{"search"},
	}, s.Stats)
}
