// Package domain defines the core types shared by the search client, the
// search/select widget, and the terminal front end.
package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// SearchType identifies a searchable category on the application server.
type SearchType string

// Search type constants.
const (
	TypeCompany  SearchType = "empresa"
	TypeTask     SearchType = "tarefa"
	TypeEmployee SearchType = "colaborador"
	TypeSector   SearchType = "setor"
)

// FilterOption is a category-specific checkbox sent as `<Key>=true`.
type FilterOption struct {
	Key   string `json:"key"   yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// TypeInfo describes how a search type maps onto the server API.
type TypeInfo struct {
	Type     SearchType     `json:"type"`
	Label    string         `json:"label"`
	Endpoint string         `json:"endpoint"` // path segment under /api/search/
	Filters  []FilterOption `json:"filters"`
}

var registry = map[SearchType]TypeInfo{
	TypeCompany: {
		Type:     TypeCompany,
		Label:    "Companies",
		Endpoint: "empresas",
		Filters: []FilterOption{
			{Key: "ativo", Label: "Active only"},
			{Key: "tributacao", Label: "By taxation"},
		},
	},
	TypeTask: {
		Type:     TypeTask,
		Label:    "Tasks",
		Endpoint: "tarefas",
		Filters: []FilterOption{
			{Key: "tipo", Label: "By type"},
			{Key: "setor", Label: "By sector"},
		},
	},
	TypeEmployee: {
		Type:     TypeEmployee,
		Label:    "Employees",
		Endpoint: "colaboradores",
		Filters: []FilterOption{
			{Key: "ativo", Label: "Active only"},
			{Key: "setor", Label: "By sector"},
		},
	},
	TypeSector: {
		Type:     TypeSector,
		Label:    "Sectors",
		Endpoint: "setores",
		Filters: []FilterOption{
			{Key: "ativo", Label: "Active only"},
		},
	},
}

// Lookup returns the registry entry for t. Unknown types get a synthetic
// entry whose endpoint is the type string itself and which has no filters.
func Lookup(t SearchType) (TypeInfo, bool) {
	info, ok := registry[t]
	if !ok {
		return TypeInfo{Type: t, Label: string(t), Endpoint: string(t)}, false
	}
	return info, true
}

// KnownTypes returns the registered search types sorted by name.
func KnownTypes() []TypeInfo {
	out := make([]TypeInfo, 0, len(registry))
	for _, info := range registry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Endpoint returns the path segment used under /api/search/ for t.
func (t SearchType) Endpoint() string {
	info, _ := Lookup(t)
	return info.Endpoint
}

// SearchItem is a single search result. It is immutable once received and
// identified by ID.
type SearchItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Status      string `json:"status,omitempty"`
	Code        string `json:"code,omitempty"`
}

// UnmarshalJSON accepts the server's Portuguese keys (nome, descricao, tipo,
// setor, codigo) as well as the English ones, and numeric or string ids.
func (s *SearchItem) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid search item JSON")
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return fmt.Errorf("search item must be an object, got %s", r.Type)
	}

	id := r.Get("id")
	if !id.Exists() || id.Type == gjson.Null {
		return fmt.Errorf("search item is missing id")
	}

	*s = SearchItem{
		ID:          id.String(),
		Name:        firstString(r, "nome", "name"),
		Description: firstString(r, "descricao", "description"),
		Category:    firstString(r, "tipo", "category"),
		Sector:      firstString(r, "setor", "sector"),
		Status:      r.Get("status").String(),
		Code:        firstString(r, "codigo", "code"),
	}
	return nil
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() && v.Type != gjson.Null {
			return v.String()
		}
	}
	return ""
}

// Matches reports whether the item's name or description contains text,
// case-insensitively. An empty text matches everything.
func (s *SearchItem) Matches(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), text) ||
		strings.Contains(strings.ToLower(s.Description), text)
}

// SearchRequest defines the parameters for one remote search call.
type SearchRequest struct {
	Type    SearchType
	Query   string
	Page    int
	Limit   int
	Filters []string // active filter keys, each sent as key=true
}

// SearchResponse is the envelope returned by GET /api/search/{type}.
type SearchResponse struct {
	Success    bool         `json:"success"`
	Results    []SearchItem `json:"results"`
	Total      int          `json:"total"`
	Page       int          `json:"page,omitempty"`
	Limit      int          `json:"limit,omitempty"`
	TotalPages int          `json:"total_pages,omitempty"`
	HasNext    bool         `json:"has_next,omitempty"`
	HasPrev    bool         `json:"has_prev,omitempty"`
	Message    string       `json:"message,omitempty"`
}

// Suggestion is a lightweight id/name pair from /api/search/suggestions.
type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts numeric or string ids and the nome/name keys.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return fmt.Errorf("suggestion must be an object")
	}
	s.ID = r.Get("id").String()
	s.Name = firstString(r, "nome", "name")
	return nil
}

// SuggestionsResponse is the envelope returned by /api/search/suggestions.
type SuggestionsResponse struct {
	Success     bool         `json:"success"`
	Suggestions []Suggestion `json:"suggestions"`
	Message     string       `json:"message,omitempty"`
}

// CategoryStats holds the total and user-accessible counts for a category.
type CategoryStats struct {
	Total      int `json:"total"`
	Accessible int `json:"acessivel"`
}

// StatsResponse is the envelope returned by /api/search/stats.
type StatsResponse struct {
	Success  bool                     `json:"success"`
	Stats    map[string]CategoryStats `json:"stats"`
	UserType string                   `json:"user_type,omitempty"`
	Message  string                   `json:"message,omitempty"`
}
