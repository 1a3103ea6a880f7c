package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Detail    key.Binding
	Grid      key.Binding
	NextBoard key.Binding
	NewBoard  key.Binding
	Theme     key.Binding
	Sync      key.Binding
	Quit      key.Binding

	Save        key.Binding
	Cancel      key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	CycleStatus key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "move left")),
		MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "move right")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Detail:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Grid:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid/board")),
		NextBoard: key.NewBinding(key.WithKeys("b", "tab"), key.WithHelp("b", "next board")),
		NewBoard:  key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "new board")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Sync:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "sync")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Save:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		CycleStatus: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "status")),
	}
}

func (k keyMap) boardHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveRight, k.Add, k.Edit, k.Delete, k.Copy, k.Detail, k.Grid, k.NextBoard, k.NewBoard, k.Theme, k.Sync, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.NextField, k.CycleStatus}
}
