package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the browse-mode commands. Input, confirm and history modes
// read their few keys directly.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	SwapUp    key.Binding
	SwapDown  key.Binding
	Enter     key.Binding
	Leave     key.Binding
	NextState key.Binding
	PrevState key.Binding
	Add       key.Binding
	Delete    key.Binding
	Edit      key.Binding
	Comment   key.Binding
	Notes     key.Binding
	History   key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last"),
		),
		SwapUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "move up"),
		),
		SwapDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open project"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextState: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "next state"),
		),
		PrevState: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "prev state"),
		),
		Add: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "project notes"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Leave, k.Add, k.Delete, k.NextState, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.SwapUp, k.SwapDown, k.Enter, k.Leave},
		{k.Add, k.Delete, k.NextState, k.PrevState},
		{k.Edit, k.Comment, k.Notes, k.History},
		{k.Reload, k.Help, k.Quit},
	}
}

// forPane enables only the bindings that do something in the given pane,
// so the help footer does not advertise dead keys.
func (k keyMap) forPane(inTasks bool) keyMap {
	k.Enter.SetEnabled(!inTasks)
	k.Leave.SetEnabled(inTasks)
	k.NextState.SetEnabled(inTasks)
	k.PrevState.SetEnabled(inTasks)
	k.Edit.SetEnabled(inTasks)
	k.Comment.SetEnabled(inTasks)
	k.History.SetEnabled(inTasks)
	k.Notes.SetEnabled(!inTasks)
	return k
}
