package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit     key.Binding
	pause    key.Binding
	language key.Binding
	open     key.Binding
	paste    key.Binding
	submit   key.Binding
	cancel   key.Binding
	dismiss  key.Binding
}

var keys = keyMap{
	quit:     key.NewBinding(key.WithKeys("ctrl+c")),
	pause:    key.NewBinding(key.WithKeys("ctrl+p")),
	language: key.NewBinding(key.WithKeys("ctrl+l")),
	open:     key.NewBinding(key.WithKeys("ctrl+o")),
	paste:    key.NewBinding(key.WithKeys("ctrl+v")),
	submit:   key.NewBinding(key.WithKeys("enter")),
	cancel:   key.NewBinding(key.WithKeys("esc")),
	dismiss:  key.NewBinding(key.WithKeys("enter", "esc", " ")),
}
