// Package tui renders the task editor: the point list with its append row,
// a summary line and a preview canvas. Requests that need a modal
// interaction end the program with a pending Action for the host to run.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/taskedit/internal/core/editor"
	"github.com/colonyops/taskedit/internal/core/task"
	"github.com/colonyops/taskedit/internal/core/units"
)

// ActionKind identifies what the host should do after the program exits.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionEdit
	ActionNewType
	ActionClear
	ActionProperties
	ActionClose
	ActionAbort
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionNewType:
		return "new-type"
	case ActionClear:
		return "clear"
	case ActionProperties:
		return "properties"
	case ActionClose:
		return "close"
	case ActionAbort:
		return "abort"
	default:
		return "none"
	}
}

// Action is the request the program ended with.
type Action struct {
	Kind ActionKind
	Row  int // selected row for ActionEdit
}

// Options configure the model.
type Options struct {
	Title  string         // task name shown in the header
	Unit   units.Distance // distance display unit
	Status string         // one-shot message from the previous round
}

// listWidth is the width of the point list next to the preview.
const listWidth = 50

// headerLines are the lines above the first list row.
const headerLines = 2

// Model is the bubbletea model of one editor round.
type Model struct {
	session  *editor.Session
	opts     Options
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	status   string
	pending  Action
	quitting bool
}

// New returns a model operating on session.
func New(session *editor.Session, opts Options) Model {
	if !opts.Unit.IsValid() {
		opts.Unit = units.Kilometers
	}

	return Model{
		session: session,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		width:   100,
		height:  24,
		status:  opts.Status,
	}
}

// Pending returns the action the program ended with.
func (m Model) Pending() Action { return m.pending }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	selected := m.session.Selected()

	switch {
	case key.Matches(msg, m.keys.Abort):
		return m.finish(Action{Kind: ActionAbort})
	case key.Matches(msg, m.keys.Close):
		if m.session.Fullscreen() && msg.String() == "esc" {
			m.session.ToggleFullscreen()
			return m, nil
		}
		return m.finish(Action{Kind: ActionClose})
	case key.Matches(msg, m.keys.Up):
		m.session.Select(selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.session.Select(selected + 1)
	case key.Matches(msg, m.keys.MoveUp):
		m.session.RequestMove(task.Up)
	case key.Matches(msg, m.keys.MoveDown):
		m.session.RequestMove(task.Down)
	case key.Matches(msg, m.keys.Edit):
		return m.finish(Action{Kind: ActionEdit, Row: selected})
	case key.Matches(msg, m.keys.NewType):
		return m.finish(Action{Kind: ActionNewType})
	case key.Matches(msg, m.keys.Clear):
		return m.finish(Action{Kind: ActionClear})
	case key.Matches(msg, m.keys.Properties):
		return m.finish(Action{Kind: ActionProperties})
	case key.Matches(msg, m.keys.Fullscreen):
		m.session.ToggleFullscreen()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.session.Fullscreen() || msg.X >= listWidth {
		m.session.ToggleFullscreen()
		return m, nil
	}

	if row := msg.Y - headerLines; row >= 0 && row < m.session.ViewModel().RowCount() {
		m.session.Select(row)
	}
	return m, nil
}

func (m Model) finish(a Action) (tea.Model, tea.Cmd) {
	m.pending = a
	m.quitting = true
	return m, tea.Quit
}
