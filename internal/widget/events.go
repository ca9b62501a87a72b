package widget

import (
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// Event is a notification delivered to subscribers after a state change.
type Event interface {
	event()
}

// ChangeEvent is emitted whenever the selection changes through user action
// or Clear. Its JSON form is the payload host code consumes.
type ChangeEvent struct {
	WidgetID       string            `json:"widgetId"`
	Type           domain.SearchType `json:"type"`
	SelectedItems  []string          `json:"selectedItems"`
	SelectedValues string            `json:"selectedValues"`
}

// ResultsEvent is emitted when a page of results is rendered.
type ResultsEvent struct {
	Query      string
	Page       int
	TotalPages int
	Total      int
	Items      []domain.SearchItem
	FromCache  bool
}

// LoadingEvent is emitted when a remote search starts and when it settles.
type LoadingEvent struct {
	Loading bool
}

// ErrorEvent is emitted when a search fails. The error is rendered as state
// and is never returned to the caller.
type ErrorEvent struct {
	Query string
	Err   error
}

// PanelEvent is emitted when the results panel opens or closes.
type PanelEvent struct {
	Open bool
}

func (ChangeEvent) event()  {}
func (ResultsEvent) event() {}
func (LoadingEvent) event() {}
func (ErrorEvent) event()   {}
func (PanelEvent) event()   {}

// Subscribe registers fn to receive events and returns a function that
// removes it. Listeners run on the goroutine that caused the change, after
// the widget's lock is released.
func (w *Widget) Subscribe(fn func(Event)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextListener
	w.nextListener++
	w.listeners[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

// emit delivers events to a snapshot of the current listeners. Must be called
// without holding w.mu.
func (w *Widget) emit(events ...Event) {
	if len(events) == 0 {
		return
	}

	w.mu.Lock()
	listeners := make([]func(Event), 0, len(w.listeners))
	for i := range w.nextListener {
		if fn, ok := w.listeners[i]; ok {
			listeners = append(listeners, fn)
		}
	}
	w.mu.Unlock()

	for _, ev := range events {
		for _, fn := range listeners {
			w.deliver(fn, ev)
		}
	}
}

func (w *Widget) deliver(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("event listener panicked", "widget", w.id, "event", ev, "panic", r)
		}
	}()
	fn(ev)
}
