package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saravenpi/outreach/internal/chat"
)

const (
	inputClient = iota
	inputOwn
)

// composerModel wraps chat.Composer with the text inputs that feed it.
type composerModel struct {
	state   chat.Composer
	client  textarea.Model
	own     textarea.Model
	active  int
	focused bool
	width   int
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	return ta
}

func newComposer() composerModel {
	return composerModel{
		state:  chat.NewComposer(),
		client: newTextarea("Client message..."),
		own:    newTextarea("Your message..."),
		width:  80,
	}
}

func (c *composerModel) setWidth(w int) {
	c.width = w
	c.client.SetWidth(w)
	c.own.SetWidth(w)
}

// height is the number of lines View takes.
func (c composerModel) height() int {
	if c.state.Mode() == chat.ModeManual {
		return 3 + c.client.Height() + c.own.Height()
	}
	return 1 + c.client.Height()
}

func (c *composerModel) focus() tea.Cmd {
	c.focused = true
	if c.active == inputOwn && c.state.Mode() == chat.ModeManual {
		c.client.Blur()
		return c.own.Focus()
	}
	c.active = inputClient
	c.own.Blur()
	return c.client.Focus()
}

func (c *composerModel) blur() {
	c.focused = false
	c.client.Blur()
	c.own.Blur()
}

func (c *composerModel) reset() {
	c.client.Reset()
	c.own.Reset()
}

// toggle flips assist/manual and clears both inputs. It is refused while
// editing.
func (c *composerModel) toggle() bool {
	if !c.state.Toggle() {
		return false
	}
	c.reset()
	c.active = inputClient
	if c.focused {
		c.focus()
	}
	return true
}

func (c *composerModel) beginEdit(id, content string) tea.Cmd {
	c.state.BeginEdit(id, content)
	c.reset()
	c.client.SetValue(content)
	c.active = inputClient
	return c.focus()
}

func (c *composerModel) endEdit() {
	c.state.EndEdit()
	c.reset()
}

// switchInput moves between the two manual-mode inputs, skipping a locked one.
func (c *composerModel) switchInput() bool {
	if c.state.Mode() != chat.ModeManual {
		return false
	}
	client, own := c.client.Value(), c.own.Value()
	next := inputOwn
	if c.active == inputOwn {
		next = inputClient
	}
	if next == inputClient && chat.ClientLocked(client, own) {
		return false
	}
	if next == inputOwn && chat.OwnLocked(client, own) {
		return false
	}
	c.active = next
	c.focus()
	return true
}

func (c composerModel) draft(lastHuman string) chat.Draft {
	d := chat.Draft{
		Mode:       c.state.Mode(),
		ClientText: c.client.Value(),
		OwnText:    c.own.Value(),
		LastHuman:  lastHuman,
	}
	if target, ok := c.state.Editing(); ok {
		d.EditID = target.ID
	}
	return d
}

func (c *composerModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.active == inputOwn && c.state.Mode() == chat.ModeManual {
		c.own, cmd = c.own.Update(msg)
	} else {
		c.client, cmd = c.client.Update(msg)
	}
	return cmd
}

func (c composerModel) View() string {
	var b strings.Builder

	modeLabel := "AI assist"
	if c.state.Mode() == chat.ModeManual {
		modeLabel = "Manual"
	}
	status := inputStyle.Render("Mode: "+modeLabel) + helpStyle.Render(" (ctrl+t to switch)")
	if target, ok := c.state.Editing(); ok {
		status = inputStyle.Render("Editing message") + helpStyle.Render(" "+shortID(target.ID)+" • esc to cancel")
	}
	if c.state.Generating() {
		status += " " + statusStyle.Render("generating...")
	}
	b.WriteString(status + "\n")

	if c.state.Mode() == chat.ModeAssist {
		b.WriteString(c.client.View())
		return b.String()
	}

	client, own := c.client.Value(), c.own.Value()
	label := func(text string, locked bool) string {
		if locked {
			return disabledInputStyle.Render(text + " (clear the other input first)")
		}
		return labelStyle.Render(text)
	}
	b.WriteString(label("Client message", chat.ClientLocked(client, own)) + "\n")
	b.WriteString(c.client.View() + "\n")
	b.WriteString(label("Your message", chat.OwnLocked(client, own)) + "\n")
	b.WriteString(c.own.View())
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
