package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/imkarma/tasks/internal/config"
	"github.com/imkarma/tasks/internal/nav"
	"github.com/imkarma/tasks/internal/store"
)

// mode is what the key handler is currently interpreting keys for.
type mode int

const (
	modeBrowse  mode = iota // Moving around a pane
	modeInput               // Typing into the bottom line
	modeConfirm             // Waiting for [y/N]
	modeHistory             // Scrolling a task's event log
)

// inputPurpose is what a submitted input line is applied to.
type inputPurpose int

const (
	inputAdd inputPurpose = iota
	inputDescription
	inputComment
	inputNotes
)

// Options tune the TUI from config.
type Options struct {
	ConfirmDelete bool
	DateFormat    string
}

// DefaultOptions matches config.DefaultConfig.
func DefaultOptions() Options {
	return Options{ConfirmDelete: true, DateFormat: config.DefaultDateFormat}
}

// Model is the top-level bubbletea model.
type Model struct {
	store *store.Store
	opts  Options
	keys  keyMap
	help  help.Model

	// Active pane cursor and the remembered project cursor.
	nav nav.Navigator

	mode    mode
	purpose inputPurpose
	input   textinput.Model
	history viewport.Model

	width  int
	height int

	// Status message at the bottom.
	statusMsg string
	statusErr bool

	quitting bool
}

// New creates a new TUI model over a loaded store.
func New(s *store.Store, opts Options) Model {
	if opts.DateFormat == "" {
		opts.DateFormat = config.DefaultDateFormat
	}

	ti := textinput.New()
	ti.Prompt = "-> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 500
	ti.Width = 60

	return Model{
		store:   s,
		opts:    opts,
		keys:    newKeyMap(),
		help:    help.New(),
		nav:     nav.New(s.ProjectCount()),
		input:   ti,
		history: viewport.New(80, 20),
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Navigator exposes the cursor state, mainly for tests.
func (m Model) Navigator() nav.Navigator {
	return m.nav
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}

// rows returns the list rows of the active pane.
func (m Model) rows() []listable {
	if m.nav.InTasks() {
		tasks := m.store.Tasks(m.nav.ProjectIndex())
		out := make([]listable, len(tasks))
		for i, t := range tasks {
			out[i] = taskRow{task: t, dateFormat: m.opts.DateFormat}
		}
		return out
	}
	projects := m.store.Projects()
	out := make([]listable, len(projects))
	for i, p := range projects {
		out[i] = projectRow{project: p}
	}
	return out
}

// selectedTask returns the task under the cursor in the task pane.
func (m Model) selectedTask() (store.Task, bool) {
	if !m.nav.InTasks() || m.nav.Active.Empty() {
		return store.Task{}, false
	}
	return m.store.Task(m.nav.ProjectIndex(), m.nav.Active.Index()), true
}

// selectedProject returns the project under the cursor, or the open one
// while in the task pane.
func (m Model) selectedProject() (store.Project, bool) {
	if m.store.ProjectCount() == 0 || (!m.nav.InTasks() && m.nav.Active.Empty()) {
		return store.Project{}, false
	}
	return m.store.Project(m.nav.ProjectIndex()), true
}
