// Package tui renders a search/select widget in the terminal with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/donaldgifford/searchselect/internal/widget"
)

const eventBuffer = 64

// Result is how an interactive session ended.
type Result struct {
	Submitted bool
	Aborted   bool
	Change    widget.ChangeEvent
}

// eventMsg carries a widget event into the Bubble Tea loop.
type eventMsg struct {
	event widget.Event
}

type mountedMsg struct{}

// Model is the Bubble Tea model for one widget.
type Model struct {
	ctx         context.Context
	w           *widget.Widget
	input       textinput.Model
	filter      textinput.Model
	filterFocus bool
	spinner     spinner.Model
	events      chan widget.Event
	unsubscribe func()
	styles      styles
	width       int

	submitted bool
	aborted   bool
}

// New creates a model bound to w and subscribes to its events. The caller
// keeps ownership of w.
func New(ctx context.Context, w *widget.Widget) *Model {
	st := w.State()

	in := textinput.New()
	in.Placeholder = st.Placeholder
	in.Prompt = "> "
	in.CharLimit = 200
	in.Focus()

	filter := textinput.New()
	filter.Placeholder = "Filter results..."
	filter.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		w:       w,
		input:   in,
		filter:  filter,
		spinner: s,
		events:  make(chan widget.Event, eventBuffer),
		styles:  defaultStyles(),
	}
	s.Style = m.styles.spinner
	m.spinner = s
	m.unsubscribe = w.Subscribe(m.forward)
	return m
}

// forward hands events to the program without ever blocking the widget.
func (m *Model) forward(ev widget.Event) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-m.events:
			return eventMsg{event: ev}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) mount() tea.Cmd {
	return func() tea.Msg {
		m.w.Mount(m.ctx)
		return mountedMsg{}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.mount(), m.waitForEvent())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		return m, m.waitForEvent()

	case mountedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.w.State()

	switch msg.String() {
	case "ctrl+c":
		m.aborted = true
		return m, tea.Quit

	case "ctrl+s":
		m.submitted = true
		return m, tea.Quit

	case "esc":
		if m.filterFocus {
			m.blurFilter()
			return m, nil
		}
		m.w.Escape()
		return m, nil

	case "up":
		m.w.MoveCursor(-1)
		return m, nil

	case "down":
		m.w.MoveCursor(1)
		return m, nil

	case "enter":
		if !st.PanelOpen {
			m.w.Focus()
			return m, nil
		}
		if m.w.SelectActive() && !st.Multiple {
			m.submitted = true
			return m, tea.Quit
		}
		return m, nil

	case "tab":
		m.w.FocusLost()
		return m, nil

	case "shift+tab":
		m.w.Focus()
		return m, nil

	case "pgdown":
		return m, m.page(m.w.NextPage)

	case "pgup":
		return m, m.page(m.w.PrevPage)

	case "ctrl+x":
		if st.AllowClear {
			m.w.Clear()
			m.input.SetValue("")
		}
		return m, nil

	case "ctrl+f":
		m.focusFilter()
		return m, nil

	case "backspace":
		if !m.filterFocus && m.input.Value() == "" && len(st.Selected) > 0 {
			m.w.Remove(st.Selected[len(st.Selected)-1].ID)
			return m, nil
		}
	}

	if n, ok := filterKey(msg.String()); ok {
		return m, m.toggleFilter(st, n)
	}

	return m.updateInputs(msg)
}

// filterKey maps alt+1..alt+9 to a zero-based filter index.
func filterKey(key string) (int, bool) {
	digit, ok := strings.CutPrefix(key, "alt+")
	if !ok || len(digit) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(digit)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func (m *Model) toggleFilter(st widget.State, i int) tea.Cmd {
	if !st.ShowFilters || i >= len(st.Filters) {
		return nil
	}
	key := st.Filters[i].Key
	return func() tea.Msg {
		_ = m.w.ToggleFilter(m.ctx, key)
		return nil
	}
}

func (m *Model) page(nav func(context.Context) bool) tea.Cmd {
	return func() tea.Msg {
		nav(m.ctx)
		return nil
	}
}

func (m *Model) focusFilter() {
	m.filterFocus = true
	m.input.Blur()
	m.filter.Focus()
}

func (m *Model) blurFilter() {
	m.filterFocus = false
	m.filter.Blur()
	m.input.Focus()
}

// updateInputs passes msg to the focused text input and reports any change
// in its value to the widget.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.filterFocus {
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if v := m.filter.Value(); v != before {
			m.w.SetLocalFilter(v)
		}
		return m, cmd
	}

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.w.Input(v)
	}
	return m, cmd
}

// Result reports how the session ended and the final selection.
func (m *Model) Result() Result {
	return Result{
		Submitted: m.submitted,
		Aborted:   m.aborted,
		Change:    m.w.Payload(),
	}
}

// Close unsubscribes from the widget.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Run drives an interactive session for w until the user submits or aborts.
func Run(ctx context.Context, w *widget.Widget, opts ...tea.ProgramOption) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, w)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return Result{}, fmt.Errorf("running picker: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return fm.Result(), nil
}
