package viz

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the live view's bindings. It satisfies help.KeyMap.
type keyMap struct {
	White     key.Binding
	WhiteNow  key.Binding
	Resume    key.Binding
	HoverView key.Binding
	Hover     key.Binding
	Theme     key.Binding
	Panel     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		White:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "ease to white")),
		WhiteNow:  key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "jump to white")),
		Resume:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume walk")),
		HoverView: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hover view")),
		Hover:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop hover")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Panel:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "hide panel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.White, k.Resume, k.HoverView, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.White, k.WhiteNow, k.Resume, k.HoverView, k.Hover},
		{k.Theme, k.Panel, k.Help, k.Quit},
	}
}
