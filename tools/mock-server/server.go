package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/donaldgifford/searchselect/internal/api/middleware"
)

const (
	defaultLimit           = 20
	maxLimit               = 50
	defaultSuggestionLimit = 10
	maxSuggestionLimit     = 20
)

// searchResponse mirrors the application's search envelope.
type searchResponse struct {
	Success    bool              `json:"success"`
	Results    []json.RawMessage `json:"results"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	HasNext    bool              `json:"has_next"`
	HasPrev    bool              `json:"has_prev"`
}

type suggestion struct {
	ID   json.RawMessage `json:"id"`
	Nome string          `json:"nome"`
}

type server struct {
	fixtures fixtures
	latency  time.Duration
	userType string
	log      *slog.Logger
}

// newServer builds the echo instance with every route and middleware wired.
func newServer(f fixtures, latency time.Duration, log *slog.Logger) *echo.Echo {
	s := &server{fixtures: f, latency: latency, userType: "admin", log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Static segments win over the :endpoint param in echo's router.
	e.GET("/api/search/suggestions", s.suggestions)
	e.GET("/api/search/:endpoint", s.search)

	registerStatsRoutes(newAPI(e), s)

	return e
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]any{"success": false, "message": msg})
}

// wait simulates server latency so debounce and stale-response handling can
// be exercised by hand. It returns false when the client went away.
func (s *server) wait(c echo.Context) bool {
	if s.latency <= 0 {
		return true
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-c.Request().Context().Done():
		return false
	}
}

func (s *server) search(c echo.Context) error {
	endpoint := c.Param("endpoint")
	cat, ok := s.fixtures[endpoint]
	if !ok {
		return fail(c, http.StatusNotFound, "unknown search type: "+endpoint)
	}
	if !s.wait(c) {
		return nil
	}

	page := intParam(c, "page", 1, 1, 0)
	limit := intParam(c, "limit", defaultLimit, 1, maxLimit)
	activeOnly := c.QueryParam("ativo") == "true"

	matched := cat.match(c.QueryParam("q"), activeOnly)
	total := len(matched)

	offset := (page - 1) * limit
	results := make([]json.RawMessage, 0, limit)
	if offset < total {
		for _, r := range matched[offset:min(offset+limit, total)] {
			results = append(results, json.RawMessage(r.raw))
		}
	}

	s.log.Debug("search",
		"endpoint", endpoint,
		"q", c.QueryParam("q"),
		"matched", total,
		"returned", len(results),
		"page", page,
	)

	return c.JSON(http.StatusOK, searchResponse{
		Success:    true,
		Results:    results,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	})
}

func (s *server) suggestions(c echo.Context) error {
	t := c.QueryParam("type")
	if t == "" {
		t = "empresa"
	}
	cat, ok := s.fixtures.byType(t)
	if !ok {
		return fail(c, http.StatusBadRequest, "unknown search type: "+t)
	}
	limit := intParam(c, "limit", defaultSuggestionLimit, 1, maxSuggestionLimit)

	// Companies and employees only suggest active records.
	activeOnly := cat.info.Endpoint == "empresas" || cat.info.Endpoint == "colaboradores"

	out := make([]suggestion, 0, limit)
	for _, r := range cat.match("", activeOnly) {
		if len(out) == limit {
			break
		}
		out = append(out, suggestion{ID: json.RawMessage(idJSON(r.id)), Nome: r.name})
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "suggestions": out})
}

// intParam parses a positive integer query parameter, falling back to def
// when it is missing or malformed and clamping to [lo, hi] (hi 0 = no cap).
func intParam(c echo.Context, name string, def, lo, hi int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		v = def
	}
	v = max(v, lo)
	if hi > 0 {
		v = min(v, hi)
	}
	return v
}

// idJSON renders numeric ids as numbers and anything else as a string.
func idJSON(id string) string {
	if _, err := strconv.Atoi(id); err == nil {
		return id
	}
	b, _ := json.Marshal(id) //nolint:errcheck // marshaling a string cannot fail
	return string(b)
}
