package widget_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/searchselect/internal/widget"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

var companies = []domain.SearchItem{
	{ID: "1", Name: "Acme Ltda", Description: "Simples Nacional"},
	{ID: "2", Name: "Beta Comercio", Description: "Lucro Presumido"},
	{ID: "3", Name: "Gamma Servicos", Description: "Lucro Real"},
}

// fakeSearcher implements widget.Searcher for testing. Queries registered
// with hold block until released or their context is canceled.
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []domain.SearchRequest
	results []domain.SearchItem
	total   int
	err     error
	holds   map[string]chan struct{}
	started chan domain.SearchRequest
}

func newFakeSearcher(items ...domain.SearchItem) *fakeSearcher {
	return &fakeSearcher{
		results: items,
		holds:   make(map[string]chan struct{}),
		started: make(chan domain.SearchRequest, 64),
	}
}

func (f *fakeSearcher) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	hold := f.holds[req.Query]
	err := f.err
	results := f.results
	total := f.total
	f.mu.Unlock()

	select {
	case f.started <- req:
	default:
	}

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if total == 0 {
		total = len(results)
	}
	return &domain.SearchResponse{
		Success: true,
		Results: results,
		Total:   total,
		Page:    req.Page,
		Limit:   req.Limit,
	}, nil
}

func (f *fakeSearcher) hold(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holds[query] = make(chan struct{})
}

func (f *fakeSearcher) release(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.holds[query]; ok {
		close(ch)
		delete(f.holds, query)
	}
}

func (f *fakeSearcher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSearcher) lastCall() domain.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return domain.SearchRequest{}
	}
	return f.calls[len(f.calls)-1]
}

// fakeClock is a settable clock for cache freshness tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recorder collects widget events.
type recorder struct {
	mu     sync.Mutex
	events []widget.Event
}

func (r *recorder) record(ev widget.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) changes() []widget.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []widget.ChangeEvent
	for _, ev := range r.events {
		if c, ok := ev.(widget.ChangeEvent); ok {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) count(match func(widget.Event) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

func newWidget(t *testing.T, s widget.Searcher, opts ...widget.Option) *widget.Widget {
	t.Helper()

	opts = append([]widget.Option{widget.WithType(domain.TypeCompany)}, opts...)
	w, err := widget.New(s, opts...)
	require.NoError(t, err)
	t.Cleanup(w.Destroy)
	return w
}
