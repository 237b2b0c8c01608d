package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tool     key.Binding
	Close    key.Binding
	Undo     key.Binding
	Reset    key.Binding
	Fit      key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Level    key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Sidebar  key.Binding
	Open     key.Binding
	Vertices key.Binding
	Paste    key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tool:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "draw/pan")),
		Close:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close")),
		Undo:     key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "undo")),
		Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Fit:      key.NewBinding(key.WithKeys("f", "0"), key.WithHelp("f", "fit")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_")),
		Level:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "zoom level")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "pan")),
		Down:     key.NewBinding(key.WithKeys("down")),
		Left:     key.NewBinding(key.WithKeys("left")),
		Right:    key.NewBinding(key.WithKeys("right")),
		Sidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Vertices: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vertices")),
		Paste:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tool, k.Close, k.Undo, k.ZoomIn, k.Fit, k.Up, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tool, k.Close, k.Undo, k.Reset},
		{k.ZoomIn, k.Level, k.Fit, k.Up},
		{k.Sidebar, k.Open, k.Vertices, k.Paste, k.Export},
		{k.Help, k.Quit},
	}
}
