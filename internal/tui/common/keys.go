package common

import "github.com/charmbracelet/bubbles/key"

// ScreenKeyMap defines the key bindings for the map screen chrome.
type ScreenKeyMap struct {
	Menu          key.Binding
	Recenter      key.Binding
	DismissBanner key.Binding
	FindParking   key.Binding
	CreateParking key.Binding
	ExpandPanel   key.Binding
	CollapsePanel key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultScreenKeyMap returns the default map screen key bindings.
func DefaultScreenKeyMap() ScreenKeyMap {
	return ScreenKeyMap{
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Recenter: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "recenter"),
		),
		DismissBanner: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss banner"),
		),
		FindParking: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "find parking"),
		),
		CreateParking: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create spot"),
		),
		ExpandPanel: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "expand panel"),
		),
		CollapsePanel: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "collapse panel"),
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

// ShortHelp returns a short help text for the map screen.
func (k ScreenKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FindParking, k.CreateParking, k.Recenter, k.Quit}
}

// FullHelp returns full help for the map screen.
func (k ScreenKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FindParking, k.CreateParking},
		{k.Menu, k.Recenter, k.DismissBanner},
		{k.ExpandPanel, k.CollapsePanel},
		{k.Help, k.Quit},
	}
}

// PanelKeyMap defines key bindings for the bottom sheet action grid.
type PanelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
}

// DefaultPanelKeyMap returns key bindings for the bottom sheet.
func DefaultPanelKeyMap() PanelKeyMap {
	return PanelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
	}
}

// ListKeyMap defines key bindings for the spot list modal.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultListKeyMap returns key bindings for the spot list.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// FormKeyMap defines key bindings for the create spot form.
type FormKeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Submit   key.Binding
	Close    key.Binding
}

// DefaultFormKeyMap returns key bindings for the create spot form.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
