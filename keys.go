package main

import "github.com/charmbracelet/bubbles/key"

// idleKeys are active while no menu or prompt is open
type idleKeys struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Leave key.Binding
	Tab   key.Binding
	Help  key.Binding
}

func (k idleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Leave, k.Tab, k.Help}
}

func (k idleKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// commandKeys are the single-letter commands of the help overlay and menus
type commandKeys struct {
	Quit   key.Binding
	New    key.Binding
	Edit   key.Binding
	Save   key.Binding
	Delete key.Binding

	NewFolder key.Binding
	NewTask   key.Binding

	EditTitle   key.Binding
	EditDetails key.Binding
	EditStatus  key.Binding
}

// promptKeys control an open text prompt
type promptKeys struct {
	Commit key.Binding
	Abort  key.Binding
}

func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Abort}
}

func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	forceQuitKey = key.NewBinding(key.WithKeys("ctrl+c"))

	idleKeyMap = idleKeys{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "open")),
		Leave: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "view")),
		Help:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "commands")),
	}

	commandKeyMap = commandKeys{
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),

		NewFolder: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "folder")),
		NewTask:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "task")),

		EditTitle:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "title")),
		EditDetails: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
		EditStatus:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	}

	promptKeyMap = promptKeys{
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Abort:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
)
