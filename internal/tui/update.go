package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/imkarma/tasks/internal/store"
	log "github.com/sirupsen/logrus"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		// Update viewport size.
		m.history.Width = max(msg.Width-4, 20)
		m.history.Height = max(msg.Height-6, 6)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.handleInputKey(msg)
		case modeConfirm:
			return m.handleConfirmKey(msg)
		case modeHistory:
			return m.handleHistoryKey(msg)
		default:
			return m.handleKey(msg)
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys.forPane(m.nav.InTasks())

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, k.Up):
		m.nav.Active = m.nav.Active.Move(-1)

	case key.Matches(msg, k.Down):
		m.nav.Active = m.nav.Active.Move(1)

	case key.Matches(msg, k.Top):
		m.nav.Active = m.nav.Active.JumpToStart()

	case key.Matches(msg, k.Bottom):
		m.nav.Active = m.nav.Active.JumpToEnd()

	case key.Matches(msg, k.SwapUp):
		m.swap(-1)

	case key.Matches(msg, k.SwapDown):
		m.swap(1)

	case key.Matches(msg, k.Enter):
		if !m.nav.Active.Empty() {
			m.nav.Enter(m.store.TaskCount(m.nav.ProjectIndex()))
			m.statusMsg = ""
		}

	case key.Matches(msg, k.Leave):
		m.nav.Leave()
		m.statusMsg = ""

	case key.Matches(msg, k.NextState):
		m.stepState(store.State.Next)

	case key.Matches(msg, k.PrevState):
		m.stepState(store.State.Previous)

	case key.Matches(msg, k.Add):
		return m.startInput(inputAdd, "")

	case key.Matches(msg, k.Delete):
		if m.nav.Active.Empty() {
			return m, nil
		}
		if m.opts.ConfirmDelete {
			m.mode = modeConfirm
			return m, nil
		}
		m.deleteRow()

	case key.Matches(msg, k.Edit):
		if t, ok := m.selectedTask(); ok {
			return m.startInput(inputDescription, t.Description())
		}

	case key.Matches(msg, k.Comment):
		if _, ok := m.selectedTask(); ok {
			return m.startInput(inputComment, "")
		}

	case key.Matches(msg, k.Notes):
		if p, ok := m.selectedProject(); ok {
			return m.startInput(inputNotes, p.Notes)
		}

	case key.Matches(msg, k.Reload):
		m.reload()

	case key.Matches(msg, k.History):
		if t, ok := m.selectedTask(); ok {
			m.history.SetContent(renderHistory(t, m.opts.DateFormat))
			m.history.GotoTop()
			m.mode = modeHistory
		}
	}

	return m, nil
}

// swap exchanges the row under the cursor with its neighbour and keeps the
// cursor on the moved row.
func (m *Model) swap(delta int) {
	next, ok := m.nav.Active.Moved(delta)
	if !ok {
		return
	}
	i, j := m.nav.Active.Index(), next.Index()
	m.nav.Active = next

	var err error
	if m.nav.InTasks() {
		err = m.store.SwapTasks(m.nav.ProjectIndex(), i, j)
	} else {
		err = m.store.SwapProjects(i, j)
	}
	m.report("swap", err, "")
}

// stepState moves the selected task one state along and follows it to its
// regrouped position.
func (m *Model) stepState(step func(store.State) store.State) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	pos, changed, err := m.store.SetTaskState(m.nav.ProjectIndex(), m.nav.Active.Index(), step(t.State()))
	if !changed {
		return
	}
	m.nav.Sync(pos)
	m.report("set state", err, "")
}

// deleteRow removes the row under the cursor. The cursor moves first so it
// never points past the end of the shrunk collection.
func (m *Model) deleteRow() {
	idx := m.nav.Active.Index()
	next, ok := m.nav.Active.Shrink()
	if !ok {
		return
	}

	var err error
	if m.nav.InTasks() {
		project := m.nav.ProjectIndex()
		m.nav.Active = next
		err = m.store.RemoveTask(project, idx)
	} else {
		m.nav.Active = next
		err = m.store.RemoveProject(idx)
	}
	m.report("delete", err, "Deleted")
}

func (m Model) startInput(purpose inputPurpose, value string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.purpose = purpose
	m.statusMsg = ""
	m.input.Placeholder = m.inputPlaceholder()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) inputPlaceholder() string {
	switch m.purpose {
	case inputAdd:
		if m.nav.InTasks() {
			return "task description"
		}
		return "project description"
	case inputDescription:
		return "new description"
	case inputComment:
		return "comment"
	case inputNotes:
		return "project notes"
	}
	return ""
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.endInput()
		m.setStatus("Cancelled")
		return m, nil

	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		text := strings.TrimSpace(m.input.Value())
		if text == "" && m.purpose != inputNotes {
			m.setError("Text cannot be empty")
			return m, nil
		}
		m.endInput()
		m.submit(text)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

// submit applies a confirmed input line to the store.
func (m *Model) submit(text string) {
	switch m.purpose {
	case inputAdd:
		if m.nav.InTasks() {
			m.nav.Active = m.nav.Active.Grow()
			pos, err := m.store.AddTask(m.nav.ProjectIndex(), store.NewTask(text))
			m.nav.Sync(pos)
			m.report("add task", err, "Task added")
			return
		}
		m.nav.Active = m.nav.Active.Grow()
		err := m.store.AddProject(store.NewProject(text))
		m.nav.Sync(m.store.ProjectCount() - 1)
		m.report("add project", err, "Project added")

	case inputDescription:
		if !m.nav.InTasks() || m.nav.Active.Empty() {
			return
		}
		changed, err := m.store.SetTaskDescription(m.nav.ProjectIndex(), m.nav.Active.Index(), text)
		if !changed {
			return
		}
		m.report("edit task", err, "Description updated")

	case inputComment:
		if !m.nav.InTasks() || m.nav.Active.Empty() {
			return
		}
		err := m.store.AddComment(m.nav.ProjectIndex(), m.nav.Active.Index(), text)
		m.report("comment", err, "Comment added")

	case inputNotes:
		if _, ok := m.selectedProject(); !ok {
			return
		}
		err := m.store.SetProjectNotes(m.nav.ProjectIndex(), text)
		m.report("notes", err, "Notes saved")
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	switch msg.String() {
	case "y", "Y":
		m.deleteRow()
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	default:
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "h":
		m.mode = modeBrowse
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// reload re-reads the document from disk, picking up changes made by the
// CLI or another instance, and refits the cursor to the new collections.
// On failure the in-memory state is kept.
func (m *Model) reload() {
	s, err := store.Load(m.store.Path())
	if err != nil {
		log.WithField("path", m.store.Path()).WithError(err).Error("reload failed")
		m.setError(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	m.store = s
	m.nav.Refit(s.ProjectCount(), s.TaskCount)
	log.WithFields(log.Fields{"path": s.Path(), "projects": s.ProjectCount()}).Debug("reloaded")
	m.setStatus("Reloaded")
}

// report logs a failed write and surfaces it on the status line. The
// in-memory change stays applied, so the cursor is never rolled back.
func (m *Model) report(op string, err error, ok string) {
	if err == nil {
		if ok != "" {
			m.setStatus(ok)
		}
		log.WithFields(log.Fields{"op": op, "pane": m.nav.Active.Pane()}).Debug("saved")
		return
	}
	log.WithFields(log.Fields{"op": op, "path": m.store.Path()}).WithError(err).Error("save failed")
	m.setError(fmt.Sprintf("Save failed: %v", err))
}

// renderHistory lists a task's events oldest first.
func renderHistory(t store.Task, layout string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Description()) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("id %s · updated %s", t.ID, t.UpdatedAt().Local().Format(layout))) + "\n\n")
	for _, e := range t.Events {
		ts := dateStyle.Render(e.DateTime.Local().Format(layout))
		kind := fmt.Sprintf("%-11s", e.Kind)
		switch e.Kind {
		case store.KindState:
			kind = stateStyles[e.State].UnsetWidth().UnsetAlign().Render(kind)
		case store.KindComment:
			kind = lipgloss.NewStyle().Foreground(clrCyan).Render(kind)
		default:
			kind = dimStyle.Render(kind)
		}
		fmt.Fprintf(&b, "%s  %s %s\n", ts, kind, e.Data())
	}
	return b.String()
}
