package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/todoterm/internal/logtail"
)

// resizeLogViewport fits the overlay to the window: a box with borders plus
// one status line below it.
func (m *Model) resizeLogViewport() {
	w, h := max(m.width-4, 10), max(m.height-3, 3)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
		return
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
}

// renderLogs renders the log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Render(m.logViewport.View())

	status := fmt.Sprintf("%s  %d lines  %3.f%%", m.logFile, len(m.logEntries), m.logViewport.ScrollPercent()*100)
	hint := styles.AccentText.Render("esc") + styles.MutedText.Render(":close  ") +
		styles.AccentText.Render("pgup/pgdown") + styles.MutedText.Render(":scroll")

	return box + "\n" + styles.FaintText.Render(truncate(status, max(m.width-30, 10))) + "  " + hint
}

// renderLogContent formats the loaded entries for the viewport.
func (m Model) renderLogContent() string {
	styles := m.theme.Styles()

	if m.logErr != nil {
		return styles.DangerText.Render("Unable to read log: " + m.logErr.Error())
	}
	if m.logFile == "" {
		return styles.MutedText.Render("Logging to stderr; no log file to show")
	}
	if len(m.logEntries) == 0 {
		return styles.MutedText.Render("No log entries")
	}

	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, renderLogEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

func renderLogEntry(e logtail.Entry, styles Styles) string {
	if e.Level == "" {
		return styles.Text.Render(e.Raw)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteByte(' ')
	}
	b.WriteString(styles.LevelStyle(e.Level).Bold(true).Render(logtail.LevelTag(e.Level)))
	if e.Component != "" {
		b.WriteByte(' ')
		b.WriteString(styles.AccentText.Render("[" + e.Component + "]"))
	}

	// Format renders message and fields; only the prefix above is colored.
	rest := logtail.Format(logtail.Entry{Level: e.Level, Message: e.Message, Fields: e.Fields, Error: e.Error})
	rest = strings.TrimPrefix(rest, logtail.LevelTag(e.Level))
	b.WriteString(styles.Text.Render(rest))
	return b.String()
}
