package widget

import (
	"context"
	"fmt"
	"slices"
)

// ToggleFilter flips a category filter and re-runs the current query from
// page 1. Active filters are sent as <key>=true on every search.
func (w *Widget) ToggleFilter(ctx context.Context, key string) error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrDestroyed
	}
	if !w.knownFilter(key) {
		w.mu.Unlock()
		w.log.Warn("ignoring unknown filter", "key", key)
		return fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	if w.filters[key] {
		delete(w.filters, key)
	} else {
		w.filters[key] = true
	}
	query := w.query
	// A response already in flight was fetched without this filter set.
	w.setIntentLocked(query, 1)
	w.mu.Unlock()

	w.Search(ctx, query, 1)
	return nil
}

// ActiveFilters returns the keys of the enabled filters, sorted.
func (w *Widget) ActiveFilters() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeFiltersLocked()
}

func (w *Widget) knownFilter(key string) bool {
	for _, f := range w.info.Filters {
		if f.Key == key {
			return true
		}
	}
	return false
}

func (w *Widget) activeFiltersLocked() []string {
	keys := make([]string, 0, len(w.filters))
	for k := range w.filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (w *Widget) filterStatesLocked() []FilterState {
	out := make([]FilterState, 0, len(w.info.Filters))
	for _, f := range w.info.Filters {
		out = append(out, FilterState{Key: f.Key, Label: f.Label, Active: w.filters[f.Key]})
	}
	return out
}
