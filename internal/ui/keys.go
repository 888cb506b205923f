package ui

import "github.com/charmbracelet/bubbles/key"

// Terminals cannot report shift+enter, so submit is alt+enter or ctrl+s and a
// plain enter stays a newline.
type conversationKeys struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Copy     key.Binding
	Edit     key.Binding
	Like     key.Binding
	Dislike  key.Binding
	Email    key.Binding
	Generate key.Binding

	Focus      key.Binding
	Submit     key.Binding
	Toggle     key.Binding
	InputGen   key.Binding
	Cancel     key.Binding
	Refresh    key.Binding
	NextThread key.Binding
	PrevThread key.Binding
	Quit       key.Binding
}

func newConversationKeys() conversationKeys {
	return conversationKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "older")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "newer")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "oldest")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "newest")),

		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Like:     key.NewBinding(key.WithKeys("+", "l"), key.WithHelp("+", "like")),
		Dislike:  key.NewBinding(key.WithKeys("-", "d"), key.WithHelp("-", "dislike")),
		Email:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "send as email")),
		Generate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "generate with AI")),

		Focus:      key.NewBinding(key.WithKeys("tab", "i"), key.WithHelp("tab", "compose")),
		Submit:     key.NewBinding(key.WithKeys("alt+enter", "ctrl+s"), key.WithHelp("alt+enter/ctrl+s", "send")),
		Toggle:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "assist/manual")),
		InputGen:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate with AI")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextThread: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next thread")),
		PrevThread: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous thread")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
