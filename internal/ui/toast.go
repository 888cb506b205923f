package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/saravenpi/outreach/internal/api"
)

type ToastVariant int

const (
	ToastDefault ToastVariant = iota
	ToastSuccess
	ToastDestructive
)

const (
	toastTTL     = 4 * time.Second
	maxToasts    = 3
	toastTitleOK = "Success"
	toastTitleKO = "Error"
)

type Toast struct {
	ID          string
	Title       string
	Description string
	Variant     ToastVariant
}

type toastExpiredMsg struct {
	id string
}

// toasts is a small stack of notifications; each expires on its own timer.
type toasts struct {
	items []Toast
}

func (t *toasts) push(title, description string, variant ToastVariant) tea.Cmd {
	toast := Toast{
		ID:          ulid.Make().String(),
		Title:       title,
		Description: description,
		Variant:     variant,
	}
	t.items = append(t.items, toast)
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: toast.ID}
	})
}

func (t *toasts) success(description string) tea.Cmd {
	return t.push(toastTitleOK, description, ToastSuccess)
}

// failure surfaces err the way every call site does: the server's message,
// then the error text, then the generic fallback.
func (t *toasts) failure(err error) tea.Cmd {
	return t.push(toastTitleKO, api.UserMessage(err), ToastDestructive)
}

func (t *toasts) failureText(description string) tea.Cmd {
	return t.push(toastTitleKO, description, ToastDestructive)
}

func (t *toasts) expire(id string) {
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t toasts) empty() bool {
	return len(t.items) == 0
}

func (t toasts) View(width int) string {
	if len(t.items) == 0 {
		return ""
	}
	if width > 50 {
		width = 50
	}

	parts := make([]string, 0, len(t.items))
	for _, item := range t.items {
		style := toastStyle
		switch item.Variant {
		case ToastSuccess:
			style = toastSuccessStyle
		case ToastDestructive:
			style = toastDestructiveStyle
		}
		body := labelStyle.Render(item.Title)
		if item.Description != "" {
			body += "\n" + item.Description
		}
		parts = append(parts, style.Width(width).Render(body))
	}
	return strings.Join(parts, "\n")
}
