package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/searchselect/internal/widget"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

var companies = []domain.SearchItem{
	{ID: "1", Name: "Acme Ltda", Description: "Simples Nacional"},
	{ID: "2", Name: "Beta Comercio", Description: "Lucro Presumido"},
	{ID: "3", Name: "Gamma Servicos", Description: "Lucro Real"},
}

// stubSearcher implements widget.Searcher for testing.
type stubSearcher struct {
	mu    sync.Mutex
	reqs  []domain.SearchRequest
	items []domain.SearchItem
	total int
	err   error
}

func (s *stubSearcher) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	total := s.total
	if total == 0 {
		total = len(s.items)
	}
	return &domain.SearchResponse{Success: true, Results: s.items, Total: total, Page: req.Page}, nil
}

func (s *stubSearcher) last() domain.SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reqs[len(s.reqs)-1]
}

func (s *stubSearcher) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reqs)
}

func newTestModel(t *testing.T, s *stubSearcher, opts ...widget.Option) (*Model, *widget.Widget) {
	t.Helper()

	opts = append([]widget.Option{
		widget.WithType(domain.TypeCompany),
		widget.WithDebounce(time.Millisecond),
	}, opts...)
	w, err := widget.New(s, opts...)
	require.NoError(t, err)

	m := New(t.Context(), w)
	t.Cleanup(func() {
		m.Close()
		w.Destroy()
	})

	msg := m.mount()()
	_, ok := msg.(mountedMsg)
	require.True(t, ok)
	return m, w
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestView_InitialResults(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubSearcher{items: companies})
	view := m.View()

	assert.Contains(t, view, "Companies")
	assert.Contains(t, view, "Acme Ltda")
	assert.Contains(t, view, "Gamma Servicos")
	assert.Contains(t, view, "[ ] alt+1 Active only")
	assert.Contains(t, view, "ctrl+x clear")
	assert.NotContains(t, view, "Page ")
}

func TestUpdate_MultiSelect(t *testing.T) {
	t.Parallel()

	m, w := newTestModel(t, &stubSearcher{items: companies})

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyDown))
	_, cmd := m.Update(key(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Equal(t, []string{"2"}, w.SelectedItems())
	view := m.View()
	assert.Contains(t, view, "1 selected:")
	assert.Contains(t, view, "Beta Comercio x")
	assert.Contains(t, view, "[x] Beta Comercio")
}

func TestUpdate_SingleSelectSubmits(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubSearcher{items: companies}, widget.WithMultiple(false))

	m.Update(key(tea.KeyDown))
	_, cmd := m.Update(key(tea.KeyEnter))

	require.True(t, isQuit(cmd))
	res := m.Result()
	assert.True(t, res.Submitted)
	assert.False(t, res.Aborted)
	assert.Equal(t, []string{"1"}, res.Change.SelectedItems)
	assert.Equal(t, "1", res.Change.SelectedValues)
	assert.Equal(t, domain.TypeCompany, res.Change.Type)
}

func TestUpdate_AbortAndSubmit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		key           tea.KeyType
		wantSubmitted bool
		wantAborted   bool
	}{
		{name: "ctrl+c aborts", key: tea.KeyCtrlC, wantAborted: true},
		{name: "ctrl+s submits", key: tea.KeyCtrlS, wantSubmitted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := newTestModel(t, &stubSearcher{items: companies})
			_, cmd := m.Update(key(tt.key))

			require.True(t, isQuit(cmd))
			assert.Equal(t, tt.wantSubmitted, m.Result().Submitted)
			assert.Equal(t, tt.wantAborted, m.Result().Aborted)
		})
	}
}

func TestUpdate_TypingSearches(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{items: companies}
	m, w := newTestModel(t, s)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("acme")})

	require.Eventually(t, func() bool {
		return w.State().ShownQuery == "acme"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "acme", s.last().Query)
	assert.Equal(t, 2, s.count())
}

func TestUpdate_Pagination(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{items: companies, total: 45}
	m, w := newTestModel(t, s)
	assert.Contains(t, m.View(), "Page 1 of 3 (45 results)")

	_, cmd := m.Update(key(tea.KeyPgDown))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, 2, w.State().CurrentPage)
	assert.Contains(t, m.View(), "Page 2 of 3 (45 results)")

	_, cmd = m.Update(key(tea.KeyPgUp))
	cmd()
	assert.Equal(t, 1, w.State().CurrentPage)
	assert.Equal(t, 2, s.count())
}

func TestUpdate_ToggleFilter(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{items: companies}
	m, w := newTestModel(t, s)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1"), Alt: true})
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{"ativo"}, s.last().Filters)
	assert.Equal(t, []string{"ativo"}, w.ActiveFilters())
	assert.Contains(t, m.View(), "[x] alt+1 Active only")
	assert.Empty(t, m.input.Value(), "filter keys are not typed into the input")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9"), Alt: true})
	assert.Nil(t, cmd, "no filter at that position")
}

func TestUpdate_Clear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowClear bool
		wantLeft   []string
	}{
		{name: "clears when allowed", allowClear: true, wantLeft: nil},
		{name: "ignored when not allowed", allowClear: false, wantLeft: []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, w := newTestModel(t, &stubSearcher{items: companies}, widget.WithAllowClear(tt.allowClear))
			require.NoError(t, w.Select("1"))

			m.Update(key(tea.KeyCtrlX))

			assert.Equal(t, tt.wantLeft, w.SelectedItems())
			assert.Equal(t, tt.allowClear, strings.Contains(m.View(), "ctrl+x clear"))
		})
	}
}

func TestUpdate_BackspaceRemovesLastChip(t *testing.T) {
	t.Parallel()

	m, w := newTestModel(t, &stubSearcher{items: companies})
	require.NoError(t, w.Select("1"))
	require.NoError(t, w.Select("3"))

	m.Update(key(tea.KeyBackspace))

	assert.Equal(t, []string{"1"}, w.SelectedItems())
}

func TestUpdate_EscapeClosesPanel(t *testing.T) {
	t.Parallel()

	m, w := newTestModel(t, &stubSearcher{items: companies})
	require.True(t, w.State().PanelOpen)

	m.Update(key(tea.KeyEsc))
	assert.False(t, w.State().PanelOpen)
	assert.NotContains(t, m.View(), "Acme Ltda")

	m.Update(key(tea.KeyEnter))
	assert.True(t, w.State().PanelOpen, "enter reopens a closed panel")
}

func TestUpdate_LocalFilter(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{items: companies}
	m, w := newTestModel(t, s)

	m.Update(key(tea.KeyCtrlF))
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("lucro")})

	assert.Len(t, w.State().Items, 2)
	assert.NotContains(t, m.View(), "Acme Ltda")
	assert.Empty(t, m.input.Value())
	assert.Equal(t, 1, s.count())

	m.Update(key(tea.KeyEsc))
	assert.False(t, m.filterFocus)
	assert.True(t, w.State().PanelOpen, "first esc leaves the filter box")
}

func TestView_ErrorAndEmpty(t *testing.T) {
	t.Parallel()

	s := &stubSearcher{items: companies}
	m, w := newTestModel(t, s)

	s.mu.Lock()
	s.err = errors.New("search failed: boom")
	s.mu.Unlock()
	w.Search(t.Context(), "acme", 1)
	assert.Contains(t, m.View(), "Error: search failed: boom")

	s.mu.Lock()
	s.err = nil
	s.items = nil
	s.mu.Unlock()
	w.Search(t.Context(), "zzz", 1)
	assert.Contains(t, m.View(), "No results found")
}

func TestForward_DropsWhenFull(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, &stubSearcher{items: companies})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range eventBuffer * 2 {
			m.forward(widget.PanelEvent{Open: true})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forward blocked on a full buffer")
	}

	msg := m.waitForEvent()()
	_, ok := msg.(eventMsg)
	assert.True(t, ok)
}

func TestFilterKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    string
		want   int
		wantOK bool
	}{
		{key: "alt+1", want: 0, wantOK: true},
		{key: "alt+9", want: 8, wantOK: true},
		{key: "alt+0", wantOK: false},
		{key: "alt+x", wantOK: false},
		{key: "alt+10", wantOK: false},
		{key: "1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			got, ok := filterKey(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
