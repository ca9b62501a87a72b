package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Search(context.Background(), domain.SearchRequest{Type: domain.TypeCompany})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
	assert.True(t, IsNetworkError(err))
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"database down"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Search(context.Background(), domain.SearchRequest{Type: domain.TypeTask})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 500): database down")

	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	assert.False(t, IsAPIError(err))
}

func TestClient_HTTPErrorPlainBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, "API error (HTTP 502): upstream unavailable", err.Error())
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "searchselect-test", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"stats":{},"user_type":"admin"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithUserAgent("searchselect-test"), WithTimeout(time.Second))
	assert.Equal(t, srv.URL, c.BaseURL())

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", stats.UserType)
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"success":true,"suggestions":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.Suggestions(context.Background(), domain.TypeSector, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_RateLimiter(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"stats":{}}`))
	}))
	defer srv.Close()

	rl := NewRateLimiter(1000, 5)
	c := New(srv.URL, WithRateLimiter(rl))
	for range 3 {
		_, err := c.Stats(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), rl.Count())
}

func TestClient_RateLimiterCanceled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.001, 1)
	c := New("http://127.0.0.1:1", WithRateLimiter(rl))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// First call consumes the only token, the second must wait and fail.
	_, _ = c.Stats(ctx)
	_, err := c.Stats(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
