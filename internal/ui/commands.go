package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/todoterm/internal/controller"
	"github.com/five82/todoterm/internal/logtail"
	"github.com/five82/todoterm/internal/prefs"
)

// logTailLines bounds how much of the log file the overlay reads.
const logTailLines = 400

// Messages

type stateChangedMsg struct{}

type createDoneMsg struct {
	err error
}

type opDoneMsg struct {
	op  string
	id  int64
	err error
}

type logsLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

type prefsSavedMsg struct {
	err error
}

// Commands

// waitForChange blocks until the store signals a transition. Update
// re-subscribes after every signal.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func loadCmd(ctx context.Context, ctl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "load", err: ctl.Load(ctx)}
	}
}

func createCmd(ctx context.Context, ctl *controller.Controller, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := ctl.Create(ctx, title)
		return createDoneMsg{err: err}
	}
}

func deleteCmd(ctx context.Context, ctl *controller.Controller, id int64) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "delete", id: id, err: ctl.Delete(ctx, id)}
	}
}

func toggleCmd(ctx context.Context, ctl *controller.Controller, id int64) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "toggle", id: id, err: ctl.Toggle(ctx, id)}
	}
}

// clearCompletedCmd starts the deletes and returns at once; each delete
// reports back through the store.
func clearCompletedCmd(ctx context.Context, ctl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctl.ClearCompleted(ctx)
		return opDoneMsg{op: "clear-completed"}
	}
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logsLoadedMsg{err: err}
		}
		entries := make([]logtail.Entry, 0, len(lines))
		for _, line := range lines {
			entries = append(entries, logtail.Parse(line))
		}
		return logsLoadedMsg{entries: entries}
	}
}

func saveThemeCmd(path, theme string) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, prefs.Prefs{Theme: theme})}
	}
}
