package widget

import (
	"slices"
	"strings"
	"time"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// Status is what the results panel is currently showing.
type Status string

// Panel statuses.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusResults Status = "results"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// FilterState is one category filter toggle.
type FilterState struct {
	Key    string
	Label  string
	Active bool
}

// State is a point-in-time snapshot of a widget, used by front ends to render
// it.
type State struct {
	ID          string
	Type        domain.SearchType
	Label       string
	Placeholder string
	Multiple    bool
	AllowClear  bool
	ShowFilters bool

	Query       string
	ShownQuery  string
	CurrentPage int
	TotalPages  int
	Total       int
	Items       []domain.SearchItem // after the local filter
	Cursor      int                 // index into Items, -1 when nothing is highlighted
	LocalFilter string

	Selected       []domain.SearchItem
	SelectedValues string

	Loading      bool
	PanelOpen    bool
	Status       Status
	ErrorMessage string
	Filters      []FilterState
}

// IsSelected reports whether id is in the selection.
func (s State) IsSelected(id string) bool {
	return slices.ContainsFunc(s.Selected, func(it domain.SearchItem) bool { return it.ID == id })
}

// HasNext reports whether a following page exists.
func (s State) HasNext() bool { return s.CurrentPage < s.TotalPages }

// HasPrev reports whether a preceding page exists.
func (s State) HasPrev() bool { return s.CurrentPage > 1 && s.TotalPages > 0 }

// State returns a snapshot of the widget.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	status := w.status
	if w.isLoading {
		status = StatusLoading
	}

	return State{
		ID:             w.id,
		Type:           w.typ,
		Label:          w.info.Label,
		Placeholder:    w.placeholder,
		Multiple:       w.multiple,
		AllowClear:     w.allowClear,
		ShowFilters:    w.showFilters && len(w.info.Filters) > 0,
		Query:          w.query,
		ShownQuery:     w.shown,
		CurrentPage:    w.currentPage,
		TotalPages:     w.totalPages,
		Total:          w.total,
		Items:          w.visibleLocked(),
		Cursor:         w.cursor,
		LocalFilter:    w.localFilter,
		Selected:       w.selectedItemsLocked(),
		SelectedValues: w.sel.values(),
		Loading:        w.isLoading,
		PanelOpen:      w.panelOpen,
		Status:         status,
		ErrorMessage:   w.errMsg,
		Filters:        w.filterStatesLocked(),
	}
}

// selectedItemsLocked resolves selected ids through the item index. Ids the
// widget has never seen keep the id as their name.
func (w *Widget) selectedItemsLocked() []domain.SearchItem {
	ids := w.sel.list()
	out := make([]domain.SearchItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := w.index[id]; ok {
			out = append(out, it)
			continue
		}
		out = append(out, domain.SearchItem{ID: id, Name: id})
	}
	return out
}

func (w *Widget) visibleLocked() []domain.SearchItem {
	if w.localFilter == "" {
		return slices.Clone(w.items)
	}
	var out []domain.SearchItem
	for _, it := range w.items {
		if it.Matches(w.localFilter) {
			out = append(out, it)
		}
	}
	return out
}

// SetLocalFilter narrows the rendered results to those whose name or
// description contains text. No search is issued.
func (w *Widget) SetLocalFilter(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.localFilter = strings.TrimSpace(text)
	w.cursor = -1
}

// MoveCursor moves the highlight by delta rows, wrapping at both ends.
func (w *Widget) MoveCursor(delta int) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	n := len(w.visibleLocked())
	switch {
	case n == 0:
		w.cursor = -1
	case w.cursor < 0 && delta < 0:
		w.cursor = n - 1
	case w.cursor < 0:
		w.cursor = 0
	default:
		w.cursor = ((w.cursor+delta)%n + n) % n
	}
	events := w.openPanelLocked()
	w.mu.Unlock()

	w.emit(events...)
}

// SelectActive selects the highlighted result. Reports false when nothing is
// highlighted.
func (w *Widget) SelectActive() bool {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return false
	}
	visible := w.visibleLocked()
	if w.cursor < 0 || w.cursor >= len(visible) {
		w.mu.Unlock()
		return false
	}
	events := w.selectLocked(visible[w.cursor].ID)
	w.mu.Unlock()

	w.emit(events...)
	return true
}

// Focus opens the results panel.
func (w *Widget) Focus() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.stopBlurLocked()
	events := w.openPanelLocked()
	w.mu.Unlock()

	w.emit(events...)
}

// FocusLost closes the panel after the blur grace period unless focus comes
// back inside the widget first.
func (w *Widget) FocusLost() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return
	}
	w.stopBlurLocked()
	gen := w.blurGen
	w.blurTimer = time.AfterFunc(w.blurGrace, func() {
		w.mu.Lock()
		if w.destroyed || gen != w.blurGen {
			w.mu.Unlock()
			return
		}
		w.blurTimer = nil
		events := w.closePanelLocked()
		w.mu.Unlock()

		w.emit(events...)
	})
}

// FocusGained cancels a pending blur close.
func (w *Widget) FocusGained() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopBlurLocked()
}

// ClickInside records a click within the widget; it never dismisses the
// panel.
func (w *Widget) ClickInside() {
	w.FocusGained()
}

// ClickOutside closes the panel immediately.
func (w *Widget) ClickOutside() {
	w.dismiss()
}

// Escape closes the panel and clears the highlight.
func (w *Widget) Escape() {
	w.dismiss()
}

func (w *Widget) dismiss() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.stopBlurLocked()
	w.cursor = -1
	events := w.closePanelLocked()
	w.mu.Unlock()

	w.emit(events...)
}

func (w *Widget) stopBlurLocked() {
	w.blurGen++
	if w.blurTimer != nil {
		w.blurTimer.Stop()
		w.blurTimer = nil
	}
}

func (w *Widget) openPanelLocked() []Event {
	if w.panelOpen {
		return nil
	}
	w.panelOpen = true
	return []Event{PanelEvent{Open: true}}
}

func (w *Widget) closePanelLocked() []Event {
	if !w.panelOpen {
		return nil
	}
	w.panelOpen = false
	return []Event{PanelEvent{Open: false}}
}
