package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/models"
)

const (
	errEmptyEmail    = "Please enter a message."
	errNoThread      = "Email chat has not been initiated."
	errNoClientEmail = "Client email is unavailable."
)

const errGmailNotConnected = "Connect your Gmail account to send emails."

// emailDialog composes the e-mail that promotes a message to the client's
// inbox.
type emailDialog struct {
	messageID string
	chatID    string
	from      string
	threads   []models.Thread
	thread    int
	body      textarea.Model
	sending   bool
}

func newEmailDialog(m models.Message, c models.Chat, from string, width int) emailDialog {
	body := newTextarea("Enter your message")
	body.SetHeight(8)
	body.SetWidth(width)
	body.SetValue(m.Content)
	body.Focus()

	return emailDialog{
		messageID: m.ID,
		chatID:    c.ID,
		from:      from,
		threads:   c.Threads,
		body:      body,
	}
}

// selected is the chosen thread, the first one by default. It is the zero
// Thread when the chat has none.
func (d emailDialog) selected() models.Thread {
	if d.thread < 0 || d.thread >= len(d.threads) {
		return models.Thread{}
	}
	return d.threads[d.thread]
}

func (d *emailDialog) cycle(delta int) {
	if len(d.threads) == 0 {
		return
	}
	d.thread = (d.thread + delta + len(d.threads)) % len(d.threads)
}

// validate returns the message to show instead of sending, or "".
func (d emailDialog) validate() string {
	t := d.selected()
	switch {
	case strings.TrimSpace(d.body.Value()) == "":
		return errEmptyEmail
	case t.ThreadID == "":
		return errNoThread
	case t.ClientEmail == "":
		return errNoClientEmail
	case d.messageID == "" || d.chatID == "":
		return api.FallbackMessage
	}
	return ""
}

func (d emailDialog) request() api.SendEmailRequest {
	t := d.selected()
	return api.SendEmailRequest{
		RecipientEmail: t.ClientEmail,
		MessageBody:    d.body.Value(),
		Subject:        t.Subject,
		ThreadID:       t.ThreadID,
		MessageID:      d.messageID,
		ChatID:         d.chatID,
	}
}

func (d emailDialog) View(width int) string {
	t := d.selected()
	field := func(label, value string) string {
		return labelStyle.Render(label) + " " + normalStyle.Render(value)
	}

	subject := t.Subject
	if len(d.threads) > 1 {
		subject = fmt.Sprintf("%s  (%d/%d, tab to change)", t.Subject, d.thread+1, len(d.threads))
	}

	lines := []string{
		titleStyle.Render("New message"),
		field("To:", t.ClientEmail),
		field("Subject:", subject),
		field("From:", d.from),
		"",
		d.body.View(),
		"",
	}
	if d.sending {
		lines = append(lines, statusStyle.Render("Sending..."))
	} else {
		lines = append(lines, helpStyle.Render("ctrl+s/alt+enter: send • esc: cancel"))
	}
	return dialogStyle.Width(width).Render(strings.Join(lines, "\n"))
}
