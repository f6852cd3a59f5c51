package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings used while the task list has focus.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Add        key.Binding
	Copy       key.Binding
	FilterAll  key.Binding
	FilterDone key.Binding
	FilterTodo key.Binding
	NextFilter key.Binding
	Focus      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterDone: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "completed")),
		FilterTodo: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "incomplete")),
		NextFilter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.NextFilter, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Focus},
		{k.Add, k.Toggle, k.Edit, k.Delete, k.Copy},
		{k.FilterAll, k.FilterDone, k.FilterTodo, k.NextFilter},
		{k.Help, k.Quit},
	}
}

// inputKeyMap is shown while typing a new task or editing one.
type inputKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
	Focus  key.Binding
}

func (k inputKeyMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, b := range []key.Binding{k.Save, k.Cancel, k.Focus} {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}

func (k inputKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var (
	newTaskKeys = inputKeyMap{
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "to list")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),
	}
	editKeys = inputKeyMap{
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Focus:  key.NewBinding(key.WithDisabled()),
	}
)
