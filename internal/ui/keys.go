package ui

import "charm.land/bubbles/v2/key"

// KeyMap defines all global keybindings.
type KeyMap struct {
	Quit     key.Binding
	View1    key.Binding
	View2    key.Binding
	View3    key.Binding
	View4    key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		View1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "bars"),
		),
		View2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "lines"),
		),
		View3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "pie"),
		),
		View4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "stream"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// views returns the view switching bindings in navbar order.
func (k KeyMap) views() []key.Binding {
	return []key.Binding{k.View1, k.View2, k.View3, k.View4}
}

// global returns the bindings listed in the help dialog for every view.
func (k KeyMap) global() []key.Binding {
	return append([]key.Binding{k.Tab, k.ShiftTab}, append(k.views(), k.Help, k.Quit)...)
}
