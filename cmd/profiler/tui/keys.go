package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	Idea       key.Binding
	Example    key.Binding
	SwitchPane key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Remove     key.Binding
	Plan       key.Binding
	Edit       key.Binding
	Save       key.Binding
	Back       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze")),
		Idea:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "idea")),
		Example:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "example")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Plan:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "action plan")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Save:       key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save & re-analyze")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Idea, k.Example, k.SwitchPane, k.ForceQuit}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Remove, k.Plan, k.SwitchPane, k.Quit}
}

func (k keyMap) detailHelp(editing bool) []key.Binding {
	if editing {
		return []key.Binding{k.Save, k.Back}
	}
	return []key.Binding{k.Edit, k.Remove, k.Back}
}
