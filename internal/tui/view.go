package tui

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/searchselect/internal/widget"
	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// View implements tea.Model.
func (m *Model) View() string {
	st := m.w.State()

	var b strings.Builder
	b.WriteString(m.styles.title.Render(st.Label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if st.ShowFilters {
		b.WriteString(m.renderFilters(st))
		b.WriteString("\n")
	}

	if st.PanelOpen {
		panel := m.styles.panel
		if m.width > 4 {
			panel = panel.Width(m.width - 4)
		}
		b.WriteString(panel.Render(m.renderPanel(st)))
		b.WriteString("\n")
	}

	if len(st.Selected) > 0 {
		b.WriteString(m.renderChips(st))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp(st))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderFilters(st widget.State) string {
	parts := make([]string, 0, len(st.Filters))
	for i, f := range st.Filters {
		if f.Active {
			parts = append(parts, m.styles.filterOn.Render(fmt.Sprintf("[x] alt+%d %s", i+1, f.Label)))
			continue
		}
		parts = append(parts, fmt.Sprintf("[ ] alt+%d %s", i+1, f.Label))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderPanel(st widget.State) string {
	var lines []string

	if m.filterFocus || st.LocalFilter != "" {
		lines = append(lines, m.filter.View())
	}

	switch {
	case st.Loading && len(st.Items) == 0:
		lines = append(lines, m.spinner.View()+" Searching...")
	case st.Status == widget.StatusError:
		lines = append(lines, m.styles.errText.Render("Error: "+st.ErrorMessage))
	case st.Status == widget.StatusEmpty || (st.Status == widget.StatusResults && len(st.Items) == 0):
		lines = append(lines, m.styles.muted.Render("No results found"))
	default:
		if st.Loading {
			lines = append(lines, m.spinner.View()+" Searching...")
		}
		for i, it := range st.Items {
			lines = append(lines, m.renderRow(st, i, it))
		}
	}

	if st.TotalPages > 1 {
		lines = append(lines, m.styles.muted.Render(
			fmt.Sprintf("Page %d of %d (%d results)", st.CurrentPage, st.TotalPages, st.Total)))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(st widget.State, i int, it domain.SearchItem) string {
	cursor := "  "
	style := m.styles.row
	if i == st.Cursor {
		cursor = "> "
		style = m.styles.active
	}

	mark := ""
	if st.Multiple {
		mark = "[ ] "
		if st.IsSelected(it.ID) {
			mark = "[x] "
		}
	} else if st.IsSelected(it.ID) {
		mark = "* "
	}

	text := it.Name
	if it.Description != "" {
		text += m.styles.muted.Render(" - " + it.Description)
	}
	return cursor + style.Render(mark+text)
}

func (m *Model) renderChips(st widget.State) string {
	chips := make([]string, 0, len(st.Selected))
	for _, it := range st.Selected {
		chips = append(chips, m.styles.chip.Render(it.Name+" x"))
	}
	return fmt.Sprintf("%d selected: %s", len(st.Selected), strings.Join(chips, " "))
}

func (m *Model) renderHelp(st widget.State) string {
	keys := []string{"up/down move", "enter select", "pgup/pgdn page", "ctrl+f filter", "esc close"}
	if st.AllowClear {
		keys = append(keys, "ctrl+x clear")
	}
	keys = append(keys, "ctrl+s done", "ctrl+c quit")
	return m.styles.help.Render(strings.Join(keys, " | "))
}
