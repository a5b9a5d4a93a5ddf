package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the dashboard keybindings.
type keyMap struct {
	Greeting    key.Binding
	Transaction key.Binding
	Reminder    key.Binding
	Alert       key.Binding
	Stop        key.Binding
	Toggle      key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Greeting: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "greeting"),
		),
		Transaction: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "transaction"),
		),
		Reminder: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reminder"),
		),
		Alert: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "routine alert"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop all voice"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle voice"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy last text"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Greeting, k.Transaction, k.Reminder, k.Alert, k.Stop, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Greeting, k.Transaction, k.Reminder, k.Alert},
		{k.Stop, k.Toggle, k.Copy},
		{k.Help, k.Quit},
	}
}
