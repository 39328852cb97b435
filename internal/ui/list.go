package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/todoterm/internal/todos"
)

// fixedRows is the number of lines renderMain uses outside the item rows:
// title, blank, input, blank, blank, footer, banner, hints.
const fixedRows = 8

// renderMain renders the list screen.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	width := max(m.width, 20)

	var b strings.Builder

	b.WriteString(styles.Title.Render("todos"))
	if m.snap.Loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderInput(width))
	b.WriteString("\n\n")

	for _, row := range m.renderRows(width) {
		b.WriteString(row)
		b.WriteString("\n")
	}
	if row := m.renderTransient(width); row != "" {
		b.WriteString(row)
		b.WriteString("\n")
	}

	if footer := m.renderFooter(); footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	b.WriteString(m.renderHints(width))
	return b.String()
}

func (m Model) renderInput(width int) string {
	border := m.theme.Border
	if m.focus == focusInput {
		border = m.theme.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(border)).
		Width(min(width, 80)).
		Render(m.input.View())
}

// renderRows renders the visible items, scrolled so the cursor stays on
// screen.
func (m Model) renderRows(width int) []string {
	styles := m.theme.Styles()
	visible := m.snap.Visible()

	if len(visible) == 0 {
		switch {
		case !m.snap.Loaded && m.snap.Loading:
			return []string{m.spinner.View() + styles.MutedText.Render(" Loading todos")}
		case !m.snap.Loaded:
			return nil
		case len(m.snap.Items) == 0:
			return []string{styles.MutedText.Render("Nothing to do")}
		default:
			return []string{styles.MutedText.Render("No " + strings.ToLower(m.snap.Filter.Label()) + " todos")}
		}
	}

	capacity := m.height - fixedRows
	if m.snap.Transient != nil {
		capacity--
	}
	start, end := visibleWindow(len(visible), m.cursor, capacity)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(visible[i], i == m.cursor && m.focus == focusList, width))
	}
	return rows
}

func (m Model) renderRow(item todos.Item, selected bool, width int) string {
	styles := m.theme.Styles()

	marker := "  "
	if selected {
		marker = styles.AccentText.Render("› ")
	}

	check := styles.MutedText.Render("[ ]")
	if item.Completed {
		check = styles.SuccessText.Render("[✓]")
	}

	busy := "  "
	if m.snap.IsPending(item.ID) {
		busy = m.spinner.View() + " "
	}

	title := truncate(item.Title, max(width-10, 5))
	titleStyle := styles.Text
	if item.Completed {
		titleStyle = styles.Completed
	}
	if selected {
		titleStyle = titleStyle.Background(lipgloss.Color(m.theme.SelectionBg))
	}

	return marker + check + " " + busy + titleStyle.Render(title)
}

// renderTransient renders the placeholder for a create that is still in
// flight.
func (m Model) renderTransient(width int) string {
	if m.snap.Transient == nil {
		return ""
	}
	styles := m.theme.Styles()
	title := truncate(m.snap.Transient.Title, max(width-20, 5))
	return "  " + styles.MutedText.Render("[ ]") + " " + m.spinner.View() + " " +
		styles.Text.Render(title) + styles.FaintText.Render("  saving")
}

// renderFooter renders counts, filter tabs and the clear action. It is
// hidden while the list is empty.
func (m Model) renderFooter() string {
	if len(m.snap.Items) == 0 {
		return ""
	}
	styles := m.theme.Styles()

	left := styles.MutedText.Render(pluralize(m.snap.ActiveCount(), "item left", "items left"))

	tabs := make([]string, 0, len(todos.Filters()))
	for _, f := range todos.Filters() {
		if f == m.snap.Filter {
			tabs = append(tabs, styles.ActiveTab.Render(f.Label()))
		} else {
			tabs = append(tabs, styles.Tab.Render(f.Label()))
		}
	}

	parts := []string{left, strings.Join(tabs, "")}
	if m.snap.CanClearCompleted() {
		parts = append(parts, styles.WarningText.Render("c")+styles.MutedText.Render(":clear completed"))
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderBanner() string {
	if !m.snap.HasError() {
		return ""
	}
	styles := m.theme.Styles()
	return styles.Banner.Render("✗ "+m.snap.Notice.Message) + styles.FaintText.Render("  esc to dismiss")
}

// renderHints renders the key hint bar.
func (m Model) renderHints(width int) string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	hints := m.hints()
	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		help := h.Help()
		segments = append(segments,
			bg.Render(help.Key, styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(help.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(width).Render(bg.Join(segments, "  "))
}

// visibleWindow returns the [start, end) range of rows to draw so that
// cursor stays inside a window of at most capacity rows. A non-positive
// capacity draws everything.
func visibleWindow(total, cursor, capacity int) (int, int) {
	if capacity <= 0 || total <= capacity {
		return 0, total
	}
	start := cursor - capacity/2
	if start < 0 {
		start = 0
	}
	if start+capacity > total {
		start = total - capacity
	}
	return start, start + capacity
}
