package widget

import (
	"log/slog"
	"time"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// Defaults applied by New when the corresponding option is not given.
const (
	DefaultMinLength   = 2
	DefaultDebounce    = 300 * time.Millisecond
	DefaultCacheTime   = 5 * time.Minute
	DefaultMaxResults  = 20
	DefaultBlurGrace   = 150 * time.Millisecond
	DefaultCacheSize   = 256
	DefaultPlaceholder = "Type to search..."
)

// Option configures a Widget.
type Option func(*Widget)

// WithType sets the search category. Required.
func WithType(t domain.SearchType) Option {
	return func(w *Widget) {
		w.typ = t
	}
}

// WithMultiple selects multi-select (true) or single-select (false) mode.
func WithMultiple(multiple bool) Option {
	return func(w *Widget) {
		w.multiple = multiple
	}
}

// WithMinLength sets the minimum query length before a remote search fires.
func WithMinLength(n int) Option {
	return func(w *Widget) {
		w.minLength = n
	}
}

// WithDebounce sets the delay between the last keystroke and the search.
func WithDebounce(d time.Duration) Option {
	return func(w *Widget) {
		w.debounceWait = d
	}
}

// WithCacheTime sets how long a cached page of results stays fresh.
func WithCacheTime(d time.Duration) Option {
	return func(w *Widget) {
		w.cacheTime = d
	}
}

// WithCacheSize bounds the number of cached result pages.
func WithCacheSize(n int) Option {
	return func(w *Widget) {
		w.cacheSize = n
	}
}

// WithMaxResults sets the page size sent to the search endpoint.
func WithMaxResults(n int) Option {
	return func(w *Widget) {
		w.maxResults = n
	}
}

// WithAllowClear controls whether the clear-all affordance is offered.
func WithAllowClear(allow bool) Option {
	return func(w *Widget) {
		w.allowClear = allow
	}
}

// WithShowFilters controls whether the category filter toggles are offered.
func WithShowFilters(show bool) Option {
	return func(w *Widget) {
		w.showFilters = show
	}
}

// WithPlaceholder sets the input placeholder text.
func WithPlaceholder(p string) Option {
	return func(w *Widget) {
		w.placeholder = p
	}
}

// WithBlurGrace sets how long the panel stays open after focus leaves the
// widget, so a click on a result can still land.
func WithBlurGrace(d time.Duration) Option {
	return func(w *Widget) {
		w.blurGrace = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		w.log = l
	}
}

// WithNowFunc overrides the clock used for cache freshness. Intended for tests.
func WithNowFunc(fn func() time.Time) Option {
	return func(w *Widget) {
		w.now = fn
	}
}
