package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	NewChat    key.Binding
	Copy       key.Binding
	Download   key.Binding
	Theme      key.Binding
	History    key.Binding
	Model      key.Binding
	TempDown   key.Binding
	TempUp     key.Binding
	TokensDown key.Binding
	TokensUp   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		NewChat:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Download:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "download")),
		Theme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		History:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "history")),
		Model:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "model")),
		TempDown:   key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "temp -")),
		TempUp:     key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "temp +")),
		TokensDown: key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("ctrl+↓", "tokens -")),
		TokensUp:   key.NewBinding(key.WithKeys("ctrl+up"), key.WithHelp("ctrl+↑", "tokens +")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Submit, k.NewChat, k.Copy, k.Download, k.Theme, k.History, k.Model, k.TempUp, k.TokensUp, k.Quit}
}
