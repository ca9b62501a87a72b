// Package widget implements the SearchSelect widget: debounced remote search
// with a result cache, pagination, category filters, and single or
// multi-select state. It owns no rendering; front ends read State and
// subscribe to events.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/romdo/go-debounce"

	"github.com/donaldgifford/searchselect/internal/api/client"
	"github.com/donaldgifford/searchselect/internal/metrics"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// Sentinel errors returned by widget operations.
var (
	ErrTypeRequired     = errors.New("widget: search type is required")
	ErrSearcherRequired = errors.New("widget: searcher is required")
	ErrUnknownFilter    = errors.New("widget: unknown filter")
	ErrUnknownItem      = errors.New("widget: unknown item")
	ErrDestroyed        = errors.New("widget: destroyed")
)

// Searcher fetches one page of results from the search API.
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}

// intent is the query and page the user most recently asked for. Filter
// changes also advance the sequence, so a response fetched under a previous
// filter set is never rendered as current.
type intent struct {
	query string
	page  int
}

// Widget is a single SearchSelect instance. All methods are safe for
// concurrent use; each instance owns its cache, selection and timers.
type Widget struct {
	searcher Searcher
	id       string
	info     domain.TypeInfo
	log      *slog.Logger
	now      func() time.Time

	typ          domain.SearchType
	multiple     bool
	minLength    int
	debounceWait time.Duration
	cacheTime    time.Duration
	cacheSize    int
	maxResults   int
	allowClear   bool
	showFilters  bool
	placeholder  string
	blurGrace    time.Duration

	ctx    context.Context // parent of debounced searches, canceled by Destroy
	cancel context.CancelFunc
	wg     sync.WaitGroup

	debounced      func()
	cancelDebounce func()

	mu        sync.Mutex
	cache     *resultCache
	index     map[string]domain.SearchItem
	sel       *selection
	filters   map[string]bool
	destroyed bool

	query       string // current input text
	shown       string // query of the rendered page
	currentPage int
	totalPages  int
	total       int
	items       []domain.SearchItem
	status      Status
	errMsg      string
	isLoading   bool
	panelOpen   bool
	cursor      int
	localFilter string

	seq             uint64
	rendered        uint64
	intent          intent
	debouncePending bool

	blurTimer *time.Timer
	blurGen   uint64

	listeners    map[int]func(Event)
	nextListener int
}

// New creates a widget bound to searcher. The widget does nothing until
// Mount or Input is called.
func New(searcher Searcher, opts ...Option) (*Widget, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	w := &Widget{
		searcher:     searcher,
		id:           uuid.NewString(),
		log:          slog.Default(),
		now:          time.Now,
		multiple:     true,
		minLength:    DefaultMinLength,
		debounceWait: DefaultDebounce,
		cacheTime:    DefaultCacheTime,
		cacheSize:    DefaultCacheSize,
		maxResults:   DefaultMaxResults,
		allowClear:   true,
		showFilters:  true,
		placeholder:  DefaultPlaceholder,
		blurGrace:    DefaultBlurGrace,
		index:        make(map[string]domain.SearchItem),
		sel:          newSelection(),
		filters:      make(map[string]bool),
		currentPage:  1,
		status:       StatusIdle,
		cursor:       -1,
		listeners:    make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.typ == "" {
		return nil, ErrTypeRequired
	}
	if w.minLength < 0 {
		w.minLength = 0
	}
	if w.maxResults < 1 {
		w.maxResults = DefaultMaxResults
	}
	if w.cacheSize < 1 {
		w.cacheSize = DefaultCacheSize
	}

	cache, err := newResultCache(w.cacheSize, w.cacheTime)
	if err != nil {
		return nil, err
	}
	w.cache = cache
	w.info, _ = domain.Lookup(w.typ)
	w.log = w.log.With("widget", w.id, "type", string(w.typ))
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.debounced, w.cancelDebounce = debounce.New(w.debounceWait, w.fireDebounce)

	return w, nil
}

// ID returns the widget's unique instance id.
func (w *Widget) ID() string { return w.id }

// Type returns the widget's search category.
func (w *Widget) Type() domain.SearchType { return w.typ }

// Info returns the registry entry for the widget's search category.
func (w *Widget) Info() domain.TypeInfo { return w.info }

// Mount populates the initial results with an empty-query search for page 1.
// It returns once that search has settled.
func (w *Widget) Mount(ctx context.Context) {
	w.Search(ctx, "", 1)
}

// Input records a keystroke. The search fires after the debounce delay; a
// non-empty query shorter than the minimum length cancels any pending search
// and closes the results panel instead.
func (w *Widget) Input(query string) {
	query = strings.TrimSpace(query)

	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.query = query
	if query != w.intent.query {
		w.setIntentLocked(query, 1)
	}

	if w.tooShort(query) {
		w.debouncePending = false
		metrics.SearchesSuppressedTotal.WithLabelValues(string(w.typ), "min_length").Inc()
		events := w.closePanelLocked()
		w.mu.Unlock()

		w.cancelDebounce()
		w.emit(events...)
		return
	}

	w.debouncePending = true
	w.mu.Unlock()

	w.debounced()
}

// fireDebounce runs when the debounce delay elapses. The search itself runs
// on its own goroutine so the debouncer is never blocked on the network.
func (w *Widget) fireDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed || !w.debouncePending {
		return
	}
	w.debouncePending = false
	query := w.query
	w.wg.Go(func() {
		w.Search(w.ctx, query, 1)
	})
}

// Search shows one page of results for query. A fresh cached page is rendered
// without a network call. A search requested while another is in flight is
// dropped. Failures are rendered as state and never returned.
func (w *Widget) Search(ctx context.Context, query string, page int) {
	w.search(ctx, query, page)
}

// search reports false when the request was dropped by the loading guard or
// suppressed for being too short.
func (w *Widget) search(ctx context.Context, query string, page int) bool {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}

	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return false
	}
	cancelPending := w.debouncePending
	w.debouncePending = false

	if w.tooShort(query) {
		w.query = query
		w.setIntentLocked(query, page)
		metrics.SearchesSuppressedTotal.WithLabelValues(string(w.typ), "min_length").Inc()
		events := w.closePanelLocked()
		w.mu.Unlock()
		w.afterUnlock(cancelPending, events)
		return false
	}

	filters := w.activeFiltersLocked()
	key := cacheKey(w.typ, query, page, filters)

	entry, res := w.cache.get(key, w.now())
	metrics.CacheLookupsTotal.WithLabelValues(string(w.typ), string(res)).Inc()
	if res == lookupHit {
		w.query = query
		w.setIntentLocked(query, page)
		events := w.renderLocked(query, page, entry, true)
		w.mu.Unlock()
		w.afterUnlock(cancelPending, events)
		return true
	}

	if w.isLoading {
		metrics.SearchesSuppressedTotal.WithLabelValues(string(w.typ), "busy").Inc()
		w.log.Debug("search dropped while loading", "query", query, "page", page)
		w.mu.Unlock()
		w.afterUnlock(cancelPending, nil)
		return false
	}

	w.query = query
	w.setIntentLocked(query, page)
	token := w.seq
	w.isLoading = true
	events := append([]Event{LoadingEvent{Loading: true}}, w.openPanelLocked()...)
	req := domain.SearchRequest{
		Type:    w.typ,
		Query:   query,
		Page:    page,
		Limit:   w.maxResults,
		Filters: filters,
	}
	w.mu.Unlock()
	w.afterUnlock(cancelPending, events)

	resp, err := w.searcher.Search(ctx, req)
	w.complete(ctx, token, key, req, resp, err)
	return true
}

// complete applies a finished remote search. Only the response for the
// current intent is rendered; others are cached and, if nothing else will
// serve the current intent, it is searched once more.
func (w *Widget) complete(
	ctx context.Context,
	token uint64,
	key string,
	req domain.SearchRequest,
	resp *domain.SearchResponse,
	err error,
) {
	switch {
	case err != nil:
	case resp == nil:
		err = errors.New("empty response")
	case !resp.Success:
		err = &client.APIError{Message: resp.Message}
	}

	w.mu.Lock()
	w.isLoading = false
	if w.destroyed {
		w.mu.Unlock()
		return
	}

	if err == nil {
		w.cache.put(key, cacheEntry{items: resp.Results, total: resp.Total, fetchedAt: w.now()})
		w.indexLocked(resp.Results)
	}

	events := []Event{LoadingEvent{Loading: false}}
	retry := false
	next := w.intent

	switch {
	case token != w.seq:
		metrics.StaleResponsesTotal.WithLabelValues(string(w.typ)).Inc()
		w.log.Debug("discarding stale response", "query", req.Query, "page", req.Page)
		retry = !w.debouncePending && w.rendered != w.seq && !w.tooShort(next.query)
	case err != nil:
		w.log.Warn("search failed", "query", req.Query, "page", req.Page, "error", err)
		w.rendered = token
		w.status = StatusError
		w.errMsg = err.Error()
		events = append(events, ErrorEvent{Query: req.Query, Err: err})
	default:
		events = append(events, w.renderLocked(req.Query, req.Page, cacheEntry{
			items: resp.Results,
			total: resp.Total,
		}, false)...)
	}
	w.mu.Unlock()

	w.emit(events...)
	if retry {
		w.Search(ctx, next.query, next.page)
	}
}

// renderLocked makes entry the visible page.
func (w *Widget) renderLocked(query string, page int, entry cacheEntry, fromCache bool) []Event {
	w.rendered = w.seq
	w.shown = query
	w.items = entry.items
	w.total = entry.total
	w.currentPage = page
	w.totalPages = pageCount(entry.total, w.maxResults)
	w.errMsg = ""
	w.cursor = -1
	w.localFilter = ""
	w.indexLocked(entry.items)

	if len(entry.items) == 0 {
		w.status = StatusEmpty
	} else {
		w.status = StatusResults
	}

	events := []Event{ResultsEvent{
		Query:      query,
		Page:       page,
		TotalPages: w.totalPages,
		Total:      w.total,
		Items:      entry.items,
		FromCache:  fromCache,
	}}
	return append(events, w.openPanelLocked()...)
}

func (w *Widget) indexLocked(items []domain.SearchItem) {
	for _, it := range items {
		w.index[it.ID] = it
	}
}

func (w *Widget) setIntentLocked(query string, page int) {
	w.seq++
	w.intent = intent{query: query, page: page}
}

func (w *Widget) tooShort(query string) bool {
	return query != "" && utf8.RuneCountInString(query) < w.minLength
}

// afterUnlock finishes work that must not run under w.mu: stopping the
// debounce timer and notifying listeners.
func (w *Widget) afterUnlock(cancelDebounce bool, events []Event) {
	if cancelDebounce {
		w.cancelDebounce()
	}
	w.emit(events...)
}

// NextPage shows the following page of the current results. Reports false,
// doing nothing, when already on the last page.
func (w *Widget) NextPage(ctx context.Context) bool {
	w.mu.Lock()
	page := w.currentPage + 1
	w.mu.Unlock()
	return w.GoToPage(ctx, page)
}

// PrevPage shows the preceding page. Reports false on the first page.
func (w *Widget) PrevPage(ctx context.Context) bool {
	w.mu.Lock()
	page := w.currentPage - 1
	w.mu.Unlock()
	return w.GoToPage(ctx, page)
}

// GoToPage shows page n of the current results. Pages outside
// [1, TotalPages] are a no-op and report false, as does a page request
// dropped while another search is loading.
func (w *Widget) GoToPage(ctx context.Context, n int) bool {
	w.mu.Lock()
	if w.destroyed || n < 1 || n > w.totalPages {
		w.mu.Unlock()
		return false
	}
	query := w.shown
	w.mu.Unlock()

	return w.search(ctx, query, n)
}

// Select toggles (multi-select) or sets (single-select) the item with the
// given id. The id must belong to a result the widget has rendered.
func (w *Widget) Select(id string) error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrDestroyed
	}
	if _, ok := w.index[id]; !ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	events := w.selectLocked(id)
	w.mu.Unlock()

	w.emit(events...)
	return nil
}

// SelectItem is Select for an item supplied by the host, which is indexed
// first so its name can be shown.
func (w *Widget) SelectItem(item domain.SearchItem) error {
	if item.ID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownItem)
	}

	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrDestroyed
	}
	w.index[item.ID] = item
	events := w.selectLocked(item.ID)
	w.mu.Unlock()

	w.emit(events...)
	return nil
}

func (w *Widget) selectLocked(id string) []Event {
	var events []Event
	if w.multiple {
		w.sel.toggle(id)
	} else {
		w.sel.replace(id)
		events = w.closePanelLocked()
	}
	return append(events, w.changeLocked())
}

// Remove deselects id. Reports whether it was selected.
func (w *Widget) Remove(id string) bool {
	w.mu.Lock()
	if w.destroyed || !w.sel.remove(id) {
		w.mu.Unlock()
		return false
	}
	ev := w.changeLocked()
	w.mu.Unlock()

	w.emit(ev)
	return true
}

// SelectedItems returns the selected ids in the order they were added.
func (w *Widget) SelectedItems() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sel.list()
}

// SelectedValues returns the selected ids joined with commas.
func (w *Widget) SelectedValues() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sel.values()
}

// SetSelectedItems replaces the selection without emitting a change. In
// single-select mode only the first id is kept.
func (w *Widget) SetSelectedItems(ids []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return
	}
	if !w.multiple && len(ids) > 1 {
		ids = ids[:1]
	}
	w.sel.reset(ids)
}

// Clear empties the selection and the query, closes the panel, and emits a
// change.
func (w *Widget) Clear() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	cancelPending := w.debouncePending
	w.debouncePending = false
	w.sel.reset(nil)
	w.query = ""
	w.localFilter = ""
	w.cursor = -1
	events := append(w.closePanelLocked(), w.changeLocked())
	w.mu.Unlock()

	w.afterUnlock(cancelPending, events)
}

// Payload returns the current selection in change-notification form without
// emitting anything.
func (w *Widget) Payload() ChangeEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.payloadLocked()
}

func (w *Widget) payloadLocked() ChangeEvent {
	return ChangeEvent{
		WidgetID:       w.id,
		Type:           w.typ,
		SelectedItems:  w.sel.list(),
		SelectedValues: w.sel.values(),
	}
}

func (w *Widget) changeLocked() ChangeEvent {
	metrics.SelectionChangesTotal.WithLabelValues(string(w.typ)).Inc()
	return w.payloadLocked()
}

// ClearCache drops every cached page.
func (w *Widget) ClearCache() {
	w.cache.purge()
}

// Destroy stops timers, cancels debounced searches, drops the cache and all
// listeners, and waits for background searches to return. Every later call
// is a no-op. Destroy must not be called from an event listener.
func (w *Widget) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	w.debouncePending = false
	w.stopBlurLocked()
	w.cache.purge()
	clear(w.index)
	clear(w.listeners)
	w.mu.Unlock()

	w.cancelDebounce()
	w.cancel()
	w.wg.Wait()
	w.log.Debug("widget destroyed")
}
