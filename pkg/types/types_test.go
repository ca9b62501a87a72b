package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchItem_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SearchItem
		wantErr string
	}{
		{
			name:  "portuguese keys with numeric id",
			input: `{"id": 42, "nome": "Acme Ltda", "descricao": "Código: 001", "tipo": "Empresa", "status": "ativo", "codigo": "001"}`,
			want: SearchItem{
				ID:          "42",
				Name:        "Acme Ltda",
				Description: "Código: 001",
				Category:    "Empresa",
				Status:      "ativo",
				Code:        "001",
			},
		},
		{
			name:  "english keys with string id",
			input: `{"id": "abc", "name": "Fiscal", "description": "Sector", "category": "Setor"}`,
			want: SearchItem{
				ID:          "abc",
				Name:        "Fiscal",
				Description: "Sector",
				Category:    "Setor",
			},
		},
		{
			name:  "null optional fields are empty",
			input: `{"id": 7, "nome": "Task", "descricao": null, "setor": "Contábil"}`,
			want:  SearchItem{ID: "7", Name: "Task", Sector: "Contábil"},
		},
		{
			name:    "missing id",
			input:   `{"nome": "no id"}`,
			wantErr: "missing id",
		},
		{
			name:    "not an object",
			input:   `[1, 2]`,
			wantErr: "must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got SearchItem
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchResponse_Decode(t *testing.T) {
	t.Parallel()

	body := `{
		"success": true,
		"results": [{"id": 1, "nome": "A"}, {"id": 2, "nome": "B"}],
		"total": 45,
		"page": 1,
		"limit": 20,
		"total_pages": 3,
		"has_next": true,
		"has_prev": false
	}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 45, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "2", resp.Results[1].ID)
	assert.Equal(t, "B", resp.Results[1].Name)
}

func TestLookup(t *testing.T) {
	t.Parallel()

	info, ok := Lookup(TypeCompany)
	require.True(t, ok)
	assert.Equal(t, "empresas", info.Endpoint)
	assert.Len(t, info.Filters, 2)

	info, ok = Lookup(SearchType("contrato"))
	assert.False(t, ok)
	assert.Equal(t, "contrato", info.Endpoint)
	assert.Empty(t, info.Filters)

	assert.Equal(t, "setores", TypeSector.Endpoint())
}

func TestKnownTypes_Sorted(t *testing.T) {
	t.Parallel()

	types := KnownTypes()
	require.Len(t, types, 4)
	assert.Equal(t, TypeEmployee, types[0].Type)
	assert.Equal(t, TypeCompany, types[1].Type)
	assert.Equal(t, TypeSector, types[2].Type)
	assert.Equal(t, TypeTask, types[3].Type)
}

func TestSearchItem_Matches(t *testing.T) {
	t.Parallel()

	item := SearchItem{ID: "1", Name: "Acme Ltda", Description: "Código: 001"}

	assert.True(t, item.Matches(""))
	assert.True(t, item.Matches("acme"))
	assert.True(t, item.Matches("  CÓDIGO "))
	assert.False(t, item.Matches("globex"))
}

func TestSuggestion_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var resp SuggestionsResponse
	body := `{"success": true, "suggestions": [{"id": 3, "nome": "Acme"}, {"id": "x", "name": "Globex"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Suggestions, 2)
	assert.Equal(t, Suggestion{ID: "3", Name: "Acme"}, resp.Suggestions[0])
	assert.Equal(t, Suggestion{ID: "x", Name: "Globex"}, resp.Suggestions[1])
}
