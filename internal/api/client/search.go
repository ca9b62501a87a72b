package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/searchselect/internal/metrics"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

const searchBasePath = "/api/search/"

// Search runs one page of a remote search:
// GET /api/search/{endpoint}?q=&page=&limit=&<filter>=true.
func (c *Client) Search(
	ctx context.Context,
	req domain.SearchRequest,
) (*domain.SearchResponse, error) {
	q := url.Values{}
	q.Set("q", req.Query)

	page := req.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))

	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	for _, f := range req.Filters {
		q.Set(f, "true")
	}

	typeLabel := string(req.Type)
	path := searchBasePath + url.PathEscape(req.Type.Endpoint())

	start := time.Now()
	var resp domain.SearchResponse
	err := c.get(ctx, path, q, &resp)
	metrics.SearchRequestDuration.WithLabelValues(typeLabel).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(typeLabel, "network_error").Inc()
		return nil, err
	}
	if !resp.Success {
		metrics.SearchRequestsTotal.WithLabelValues(typeLabel, "api_error").Inc()
		return nil, &APIError{Message: resp.Message}
	}

	if len(resp.Results) == 0 {
		metrics.SearchRequestsTotal.WithLabelValues(typeLabel, "empty").Inc()
	} else {
		metrics.SearchRequestsTotal.WithLabelValues(typeLabel, "success").Inc()
	}
	return &resp, nil
}

// Suggestions returns commonly used items for a search type.
func (c *Client) Suggestions(
	ctx context.Context,
	t domain.SearchType,
	limit int,
) ([]domain.Suggestion, error) {
	q := url.Values{}
	q.Set("type", string(t))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp domain.SuggestionsResponse
	if err := c.get(ctx, searchBasePath+"suggestions", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return resp.Suggestions, nil
}

// Stats returns per-category totals for the current user.
func (c *Client) Stats(ctx context.Context) (*domain.StatsResponse, error) {
	var resp domain.StatsResponse
	if err := c.get(ctx, searchBasePath+"stats", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return &resp, nil
}
