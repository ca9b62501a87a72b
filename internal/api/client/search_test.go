package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

func TestClient_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       domain.SearchRequest
		wantPath  string
		wantQuery map[string]string
		body      string
		wantErr   string
		checkFunc func(t *testing.T, resp *domain.SearchResponse)
	}{
		{
			name: "companies with filter",
			req: domain.SearchRequest{
				Type:    domain.TypeCompany,
				Query:   "acme",
				Page:    2,
				Limit:   20,
				Filters: []string{"ativo"},
			},
			wantPath: "/api/search/empresas",
			wantQuery: map[string]string{
				"q": "acme", "page": "2", "limit": "20", "ativo": "true",
			},
			body: `{"success":true,"results":[{"id":7,"nome":"Acme Ltda","descricao":"Simples"}],
				"total":21,"page":2,"limit":20,"total_pages":2,"has_next":false,"has_prev":true}`,
			checkFunc: func(t *testing.T, resp *domain.SearchResponse) {
				t.Helper()
				require.Len(t, resp.Results, 1)
				assert.Equal(t, "7", resp.Results[0].ID)
				assert.Equal(t, "Acme Ltda", resp.Results[0].Name)
				assert.Equal(t, 21, resp.Total)
				assert.True(t, resp.HasPrev)
			},
		},
		{
			name:      "page defaults to one",
			req:       domain.SearchRequest{Type: domain.TypeEmployee},
			wantPath:  "/api/search/colaboradores",
			wantQuery: map[string]string{"q": "", "page": "1"},
			body:      `{"success":true,"results":[],"total":0,"page":1}`,
			checkFunc: func(t *testing.T, resp *domain.SearchResponse) {
				t.Helper()
				assert.Empty(t, resp.Results)
			},
		},
		{
			name:     "unknown type uses raw endpoint",
			req:      domain.SearchRequest{Type: "produto", Query: "x"},
			wantPath: "/api/search/produto",
			body:     `{"success":false,"message":"Tipo de busca inválido"}`,
			wantErr:  "search failed: Tipo de busca inválido",
		},
		{
			name:     "success false is an API error",
			req:      domain.SearchRequest{Type: domain.TypeSector, Query: "fi"},
			wantPath: "/api/search/setores",
			body:     `{"success":false,"message":"boom"}`,
			wantErr:  "boom",
		},
		{
			name:     "malformed item",
			req:      domain.SearchRequest{Type: domain.TypeTask, Query: "nf"},
			wantPath: "/api/search/tarefas",
			body:     `{"success":true,"results":[{"nome":"no id"}]}`,
			wantErr:  "decoding response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				for k, v := range tt.wantQuery {
					assert.Equal(t, v, r.URL.Query().Get(k), "query param %s", k)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			resp, err := c.Search(context.Background(), tt.req)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, resp)
			}
		})
	}
}

func TestClient_SearchAPIErrorKind(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), domain.SearchRequest{Type: domain.TypeCompany})
	require.Error(t, err)
	assert.True(t, IsAPIError(err))
	assert.False(t, IsNetworkError(err))
}

func TestClient_Suggestions(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/suggestions", r.URL.Path)
		assert.Equal(t, "tarefa", r.URL.Query().Get("type"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"suggestions":[{"id":1,"nome":"Fechamento"},{"id":"2","nome":"DCTF"}]}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Suggestions(context.Background(), domain.TypeTask, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "DCTF", got[1].Name)
}

func TestClient_Stats(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"stats":{"empresas":{"total":12,"acessivel":9}},"user_type":"colaborador"}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stats["empresas"].Total)
	assert.Equal(t, 9, got.Stats["empresas"].Accessible)
	assert.Equal(t, "colaborador", got.UserType)
}

func TestClient_StatsFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"not allowed"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, "search failed: not allowed", err.Error())
}
