package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/searchselect/internal/config"
	"github.com/donaldgifford/searchselect/internal/widget"
	"github.com/donaldgifford/searchselect/pkg/logger"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

type nopSearcher struct{}

func (nopSearcher) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	return &domain.SearchResponse{Success: true, Page: req.Page}, nil
}

func TestWidgetOptions(t *testing.T) {
	t.Parallel()

	s := config.Default().WidgetFor(domain.TypeEmployee)
	s.Multiple = false
	s.AllowClear = false
	s.Placeholder = "Buscar colaborador..."
	s.Debounce = time.Millisecond

	w, err := widget.New(nopSearcher{}, widgetOptions(domain.TypeEmployee, s, logger.Discard())...)
	require.NoError(t, err)
	t.Cleanup(w.Destroy)

	st := w.State()
	assert.Equal(t, domain.TypeEmployee, st.Type)
	assert.False(t, st.Multiple)
	assert.False(t, st.AllowClear)
	assert.True(t, st.ShowFilters)
	assert.Equal(t, "Buscar colaborador...", st.Placeholder)
	assert.Equal(t, "Employees", st.Label)
}

func TestPrintChange(t *testing.T) {
	t.Parallel()

	change := widget.ChangeEvent{
		WidgetID:       "w-1",
		Type:           domain.TypeCompany,
		SelectedItems:  []string{"1", "3"},
		SelectedValues: "1,3",
	}
	selected := []domain.SearchItem{{ID: "1", Name: "Acme Ltda"}, {ID: "3", Name: "Gamma Servicos"}}

	var buf bytes.Buffer
	require.NoError(t, printChange(&buf, change, selected, true))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1,3", got["selectedValues"])
	assert.Equal(t, "empresa", got["type"])

	buf.Reset()
	require.NoError(t, printChange(&buf, change, selected, false))
	assert.Contains(t, buf.String(), "Gamma Servicos")
}
