package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/todoterm/internal/controller"
	"github.com/five82/todoterm/internal/logging"
	"github.com/five82/todoterm/internal/logtail"
	"github.com/five82/todoterm/internal/prefs"
	"github.com/five82/todoterm/internal/state"
	"github.com/five82/todoterm/internal/todos"
)

// focusArea is the part of the screen that receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

const inputPlaceholder = "What needs to be done?"

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	ThemeName  string
	PrefsPath  string
	LogFile    string
	Logger     zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctl       *controller.Controller
	log       zerolog.Logger
	keys      keyMap
	prefsPath string
	logFile   string

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	focus  focusArea
	cursor int // index into the visible rows

	// Data state
	snap state.Snapshot

	input   textinput.Model
	spinner spinner.Model

	// Overlays
	showHelp    bool
	showLogs    bool
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Prompt = "❯ "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		ctl:       opts.Controller,
		log:       logging.Component(opts.Logger, "ui"),
		keys:      DefaultKeyMap(),
		prefsPath: prefsPath,
		logFile:   opts.LogFile,
		theme:     GetTheme(themeName),
		focus:     focusInput,
		input:     ti,
		spinner:   sp,
	}
	if m.ctl != nil {
		m.snap = m.ctl.Snapshot()
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.ctl != nil {
		cmds = append(cmds, waitForChange(m.ctl.Changes()), loadCmd(m.ctx, m.ctl))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.resizeLogViewport()
		m.ready = true
		return m, nil

	case stateChangedMsg:
		m.refresh()
		return m, waitForChange(m.ctl.Changes())

	case createDoneMsg:
		// The typed text survives a failed create so it can be retried.
		if msg.err == nil {
			m.input.Reset()
		} else {
			m.logResult("create", 0, msg.err)
		}
		return m, nil

	case opDoneMsg:
		m.logResult(msg.op, msg.id, msg.err)
		return m, nil

	case logsLoadedMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.logViewport.SetContent(m.renderLogContent())
		m.logViewport.GotoBottom()
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("save prefs failed")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	if key.Matches(msg, m.keys.Dismiss) {
		if m.snap.HasError() {
			m.ctl.DismissError()
		}
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.snap.Loading {
			return m, nil
		}
		return m, createCmd(m.ctx, m.ctl, m.input.Value())

	case key.Matches(msg, m.keys.FocusList):
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.snap.Visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.FocusInput):
		m.focus = focusInput
		m.syncInput()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.ShowLogs):
		m.showLogs = true
		m.resizeLogViewport()
		return m, loadLogsCmd(m.logFile)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		return m, saveThemeCmd(m.prefsPath, m.theme.Name)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(visible)-1, 0)

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			return m, deleteCmd(m.ctx, m.ctl, item.ID)
		}
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok {
			return m, toggleCmd(m.ctx, m.ctl, item.ID)
		}

	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.snap.Filter.Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(todos.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(todos.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(todos.FilterCompleted)

	case key.Matches(msg, m.keys.ClearCompleted):
		if m.snap.CanClearCompleted() {
			return m, clearCompletedCmd(m.ctx, m.ctl)
		}
	}
	return m, nil
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.ShowLogs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.HalfPageDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// setFilter applies f and keeps the cursor inside the new visible rows.
func (m *Model) setFilter(f todos.Filter) {
	m.ctl.SetFilter(f)
	m.refresh()
}

// refresh re-reads the controller state.
func (m *Model) refresh() {
	if m.ctl == nil {
		return
	}
	m.snap = m.ctl.Snapshot()
	m.clampCursor()
	m.syncInput()
}

// syncInput blurs the input while a request is in flight.
func (m *Model) syncInput() {
	if m.focus == focusInput && !m.snap.Loading {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

func (m *Model) clampCursor() {
	n := len(m.snap.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (todos.Item, bool) {
	visible := m.snap.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todos.Item{}, false
	}
	return visible[m.cursor], true
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.MutedText
	m.spinner.Style = styles.AccentText
}

func (m Model) logResult(op string, id int64, err error) {
	switch {
	case err == nil:
	case errors.Is(err, controller.ErrEmptyTitle),
		errors.Is(err, controller.ErrPending),
		errors.Is(err, controller.ErrUnknownItem),
		errors.Is(err, controller.ErrCreateInFlight):
		m.log.Debug().Err(err).Str("op", op).Int64("id", id).Msg("action ignored")
	default:
		m.log.Debug().Err(err).Str("op", op).Int64("id", id).Msg("action failed")
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
