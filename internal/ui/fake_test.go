package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/config"
	"github.com/saravenpi/outreach/internal/logging"
	"github.com/saravenpi/outreach/internal/models"
)

var testNow = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

// fakeBackend serves a single chat from memory.
type fakeBackend struct {
	mu       sync.Mutex
	chat     models.Chat
	messages []models.Message // newest first
	chats    []models.ChatSummary

	getCalls   []int
	sent       []api.SendMessageRequest
	rated      []api.RateRequest
	emails     []api.SendEmailRequest
	rateErr    error
	emailErr   error
	sendErr    error
	listErr    error
	replyCount int
}

func newFakeBackend(n int) *fakeBackend {
	return &fakeBackend{
		chat: models.Chat{
			ID:         "chat-1",
			Client:     "Ana Ruiz",
			Company:    "Acme Logistics",
			SalesOwner: "Dana Scott",
			UpdatedAt:  testNow.Add(-time.Hour),
		},
		messages: conversation(n),
	}
}

// conversation returns n messages newest first. Even turns are AI replies.
func conversation(n int) []models.Message {
	out := make([]models.Message, 0, n)
	for i := n; i >= 1; i-- {
		m := models.Message{
			ID:          fmt.Sprintf("m%d", i),
			Type:        models.TypeHuman,
			MessageFrom: models.FromHuman,
			Content:     fmt.Sprintf("message %d", i),
			CreatedAt:   testNow.Add(-time.Duration(n-i+1) * time.Minute),
		}
		if i%2 == 0 {
			m.Type = models.TypeAI
			m.MessageFrom = models.FromAI
		}
		m.UpdatedAt = m.CreatedAt
		out = append(out, m)
	}
	return out
}

func (f *fakeBackend) ListChats(_ context.Context, _ string) ([]models.ChatSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ChatSummary(nil), f.chats...), f.listErr
}

func (f *fakeBackend) GetChat(_ context.Context, chatID string, page, limit int) (models.Chat, models.Pagination, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, page)
	if chatID != f.chat.ID {
		return models.Chat{}, models.Pagination{}, &api.Error{Status: 404, Message: "Chat not found"}
	}
	c := f.chat
	start := min(page*limit, len(f.messages))
	end := min(start+limit, len(f.messages))
	c.Messages = append([]models.Message(nil), f.messages[start:end]...)
	return c, models.Pagination{Offset: page, TotalCount: len(f.messages)}, nil
}

func (f *fakeBackend) SendMessage(_ context.Context, _ string, req api.SendMessageRequest) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	if f.sendErr != nil {
		return models.Message{}, f.sendErr
	}
	f.replyCount++
	m := models.Message{
		ID:          fmt.Sprintf("srv-%d", f.replyCount),
		Type:        req.MessageType,
		Content:     req.ClientMessage,
		MessageFrom: models.FromHuman,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	if req.UseAI {
		m.Type = models.TypeAI
		m.MessageFrom = models.FromAI
		m.Content = "reply to " + req.ClientMessage
	}
	return m, nil
}

func (f *fakeBackend) EditMessage(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeBackend) RateMessage(_ context.Context, _ string, req api.RateRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rated = append(f.rated, req)
	return f.rateErr
}

func (f *fakeBackend) SendEmail(_ context.Context, _ string, req api.SendEmailRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, req)
	if f.emailErr != nil {
		return "", f.emailErr
	}
	return "Email sent to " + req.RecipientEmail, nil
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (models.User, error) {
	if password != "secret" {
		return models.User{}, &api.Error{Status: 401, Message: "Invalid email or password."}
	}
	return models.User{ID: "u1", Name: "Dana Scott", Email: email, Token: "tok", Role: models.RoleMember}, nil
}

func newTestApp(b *fakeBackend) *App {
	cfg := config.Default()
	cfg.BackfillDelay = 0
	cfg.PageSize = 10
	return &App{
		Config: cfg,
		Logger: logging.Discard(),
		User:   models.User{ID: "u1", Name: "Dana Scott", Email: "dana@outreach.dev", GmailConnected: true},
		API:    b,
		Auth:   b,
		Width:  100,
		Height: 200,
		now:    func() time.Time { return testNow },
	}
}

// collect runs cmd and returns the messages it produces, flattening batches.
// Timers are never run: callers only pass commands built from I/O closures
// and spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

var errBoom = errors.New("boom")
