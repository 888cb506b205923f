package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/chat"
	"github.com/saravenpi/outreach/internal/models"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m MessagesModel, msg tea.Msg) (MessagesModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	mm, ok := updated.(MessagesModel)
	require.True(t, ok, "expected to stay on the conversation view, got %T", updated)
	return mm, cmd
}

// openChat builds a conversation view over b and applies the first page.
func openChat(t *testing.T, b *fakeBackend) MessagesModel {
	t.Helper()
	chat.ResetActive()
	t.Cleanup(chat.ResetActive)

	app := newTestApp(b)
	m := NewMessagesModel(app, models.ChatSummary{ID: b.chat.ID, Client: b.chat.Client, Company: b.chat.Company})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: app.Width, Height: app.Height})
	m, _ = step(t, m, m.loadChatCmd()())
	return m
}

func keys(msgs []models.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Key()
	}
	return out
}

func TestBackfillLoadsEveryPageOnce(t *testing.T) {
	b := newFakeBackend(25)
	m := openChat(t, b)

	require.Equal(t, 10, m.store.Len())
	assert.Equal(t, "m25", m.store.Messages()[0].ID)
	require.True(t, m.backfill.Fetching(), "a short list shows the sentinel and starts a backfill")

	m, _ = step(t, m, m.fetchOlderCmd(1)())
	require.Equal(t, 20, m.store.Len())
	require.True(t, m.backfill.Fetching())

	m, _ = step(t, m, m.fetchOlderCmd(2)())
	require.Equal(t, 25, m.store.Len())
	assert.False(t, m.backfill.Fetching())
	assert.False(t, m.store.HasMore())

	got := keys(m.store.Messages())
	assert.Equal(t, "m25", got[0])
	assert.Equal(t, "m1", got[24])
	seen := map[string]bool{}
	for _, k := range got {
		assert.False(t, seen[k], "duplicate %s", k)
		seen[k] = true
	}
	assert.Equal(t, []int{0, 1, 2}, b.getCalls)
	assert.NotContains(t, m.View(), "older messages")
}

func TestBackfillIgnoresStaleAndRepeatedPages(t *testing.T) {
	b := newFakeBackend(25)
	m := openChat(t, b)

	page := m.fetchOlderCmd(1)().(olderPageMsg)

	stale := page
	stale.viewID = "gone"
	m, _ = step(t, m, stale)
	assert.Equal(t, 10, m.store.Len())

	m, _ = step(t, m, page)
	assert.Equal(t, 20, m.store.Len())

	// The same page again no longer matches the in-flight request.
	m, _ = step(t, m, page)
	assert.Equal(t, 20, m.store.Len())
}

func TestBackfillKeepsViewportPosition(t *testing.T) {
	b := newFakeBackend(25)
	chat.ResetActive()
	t.Cleanup(chat.ResetActive)
	app := newTestApp(b)
	app.Height = 30

	m := NewMessagesModel(app, models.ChatSummary{ID: b.chat.ID, Client: b.chat.Client})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: app.Width, Height: app.Height})
	m, _ = step(t, m, m.loadChatCmd()())
	require.False(t, m.backfill.Fetching(), "the newest rows fill the screen")

	m, _ = step(t, m, keyPress("g"))
	require.True(t, m.backfill.Fetching())

	anchor := "m16"
	line := m.layout.rowStart[anchor] - m.viewport.YOffset
	offset := m.viewport.YOffset

	m, _ = step(t, m, m.fetchOlderCmd(1)())
	require.Equal(t, 20, m.store.Len())
	assert.Greater(t, m.viewport.YOffset, offset)
	assert.Equal(t, line, m.layout.rowStart[anchor]-m.viewport.YOffset)
}

func TestBackfillFailureKeepsCursor(t *testing.T) {
	b := newFakeBackend(25)
	m := openChat(t, b)

	m, _ = step(t, m, olderPageMsg{viewID: m.viewID, chatID: m.summary.ID, page: 1, err: errBoom})
	assert.False(t, m.backfill.Fetching())
	assert.Equal(t, 1, m.store.Offset())
	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, "boom", m.toasts.items[0].Description)
}

func TestStaleChatLoadIsDropped(t *testing.T) {
	b := newFakeBackend(3)
	chat.ResetActive()
	app := newTestApp(b)
	m := NewMessagesModel(app, models.ChatSummary{ID: "chat-1"})

	msg := m.loadChatCmd()().(chatLoadedMsg)
	msg.viewID = "previous-view"
	m, _ = step(t, m, msg)

	assert.True(t, m.loading)
	assert.Equal(t, 0, m.store.Len())

	other := m.loadChatCmd()().(chatLoadedMsg)
	other.chatID = "chat-2"
	m, _ = step(t, m, other)
	assert.Equal(t, 0, m.store.Len())
}

func TestEmptyChat(t *testing.T) {
	b := newFakeBackend(0)
	m := openChat(t, b)

	assert.False(t, m.loading)
	assert.False(t, m.backfill.Fetching())
	assert.Contains(t, m.View(), "No messages in this conversation.")
}

func TestAssistSendPrependsReply(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("i"))
	require.True(t, m.composer.focused)
	m.composer.client.SetValue("Can we talk Tuesday?")

	m, cmd := step(t, m, keyPress("ctrl+s"))
	require.Equal(t, 5, m.store.Len())
	optimistic := m.store.Messages()[0]
	assert.Empty(t, optimistic.ID)
	assert.Equal(t, "Can we talk Tuesday?", optimistic.Content)
	assert.True(t, m.composer.state.Generating())
	assert.Empty(t, m.composer.client.Value())

	sent, ok := find[messageSentMsg](collect(cmd))
	require.True(t, ok)
	require.Len(t, b.sent, 1)
	assert.True(t, b.sent[0].UseAI)
	assert.Equal(t, models.TypeHuman, b.sent[0].MessageType)

	m, _ = step(t, m, sent)
	require.Equal(t, 6, m.store.Len())
	reply := m.store.Messages()[0]
	assert.Equal(t, "srv-1", reply.ID)
	assert.Equal(t, models.FromAI, reply.MessageFrom)
	assert.Equal(t, "srv-1", m.selected)
	assert.False(t, m.composer.state.Generating())

	_, touched := chat.TouchedAt("chat-1")
	assert.True(t, touched)
}

func TestManualSendConfirmsInPlace(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("ctrl+t"))
	require.Equal(t, chat.ModeManual, m.composer.state.Mode())
	m, _ = step(t, m, keyPress("i"))
	m.composer.own.SetValue("Happy to share the deck.")
	m.composer.active = inputOwn

	m, cmd := step(t, m, keyPress("ctrl+s"))
	require.Equal(t, 5, m.store.Len())
	localID := m.store.Messages()[0].LocalID
	require.NotEmpty(t, localID)
	assert.Equal(t, localID, m.selected)
	assert.True(t, m.composer.state.Generating(), "submit stays locked until the server answers")

	sent, ok := find[messageSentMsg](collect(cmd))
	require.True(t, ok)
	assert.False(t, b.sent[0].UseAI)
	assert.Equal(t, models.TypeAI, b.sent[0].MessageType)

	m, _ = step(t, m, sent)
	require.Equal(t, 5, m.store.Len())
	confirmed := m.store.Messages()[0]
	assert.Equal(t, "srv-1", confirmed.ID)
	assert.Equal(t, "srv-1", m.selected)
	assert.False(t, m.composer.state.Generating())
}

func TestManualSendLocksSubmit(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("ctrl+t"))
	m, _ = step(t, m, keyPress("i"))
	m.composer.own.SetValue("Happy to share the deck.")
	m.composer.active = inputOwn

	m, cmd := step(t, m, keyPress("ctrl+s"))
	sent, ok := find[messageSentMsg](collect(cmd))
	require.True(t, ok)

	m.composer.own.SetValue("Happy to share the deck.")
	m, cmd = step(t, m, keyPress("ctrl+s"))
	assert.Nil(t, cmd)
	assert.Len(t, b.sent, 1)
	assert.Equal(t, 5, m.store.Len(), "no second optimistic row")

	m, _ = step(t, m, sent)
	m, cmd = step(t, m, keyPress("ctrl+s"))
	require.NotNil(t, cmd)
	collect(cmd)
	assert.Len(t, b.sent, 2)
}

func TestGenerateUsesLastClientMessage(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, cmd := step(t, m, keyPress("a"))
	assert.Equal(t, 4, m.store.Len(), "generate inserts nothing before the reply")

	sent, ok := find[messageSentMsg](collect(cmd))
	require.True(t, ok)
	require.Len(t, b.sent, 1)
	assert.Equal(t, "message 3", b.sent[0].ClientMessage)
	assert.True(t, b.sent[0].GenerateWithAI)

	// Further submits are refused until the reply lands.
	_, cmd = step(t, m, keyPress("a"))
	assert.Nil(t, cmd)

	m, _ = step(t, m, sent)
	assert.Equal(t, 5, m.store.Len())
	assert.Equal(t, models.FromAI, m.store.Messages()[0].MessageFrom)
}

func TestRefreshWaitsForPendingReply(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)
	viewID := m.viewID

	m, cmd := step(t, m, keyPress("a"))
	sent, ok := find[messageSentMsg](collect(cmd))
	require.True(t, ok)

	m, cmd = step(t, m, keyPress("r"))
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Equal(t, viewID, m.viewID)

	m, _ = step(t, m, sent)
	assert.False(t, m.composer.state.Generating())
	assert.Equal(t, 5, m.store.Len())

	_, cmd = step(t, m, keyPress("a"))
	require.NotNil(t, cmd)
	collect(cmd)
	assert.Len(t, b.sent, 2)
}

func TestRefreshWaitsForPendingEdit(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)
	viewID := m.viewID

	m, _ = step(t, m, keyPress("e"))
	m.composer.client.SetValue("message 4, revised")
	m, cmd := step(t, m, keyPress("ctrl+s"))
	edited, ok := find[messageEditedMsg](collect(cmd))
	require.True(t, ok)
	require.True(t, m.saving)

	m, _ = step(t, m, keyPress("esc"))
	m, cmd = step(t, m, keyPress("r"))
	assert.Nil(t, cmd)
	assert.Equal(t, viewID, m.viewID)

	m, _ = step(t, m, edited)
	assert.False(t, m.saving)
	got, _ := m.store.Message("m4")
	assert.Equal(t, "message 4, revised", got.Content)
}

func TestAssistSendFailureKeepsHumanMessage(t *testing.T) {
	b := newFakeBackend(4)
	b.sendErr = &api.Error{Status: 500, Message: "AI unavailable"}
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("i"))
	m.composer.client.SetValue("Can we talk Tuesday?")
	m, cmd := step(t, m, keyPress("ctrl+s"))
	sent, ok := find[messageSentMsg](collect(cmd))
	require.True(t, ok)

	m, _ = step(t, m, sent)
	require.Equal(t, 5, m.store.Len())
	msgs := m.store.Messages()
	assert.Equal(t, "Can we talk Tuesday?", msgs[0].Content)
	assert.Equal(t, models.TypeHuman, msgs[0].Type)
	assert.Empty(t, msgs[0].ID)
	assert.Equal(t, "m4", msgs[1].ID, "no reply row was added")
	assert.False(t, m.composer.state.Generating())

	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, "AI unavailable", m.toasts.items[0].Description)
	assert.Equal(t, ToastDestructive, m.toasts.items[0].Variant)
}

func TestFeedbackRevertsOnFailure(t *testing.T) {
	b := newFakeBackend(4)
	b.rateErr = &api.Error{Status: 500, Message: "Rating failed"}
	m := openChat(t, b)
	require.Equal(t, "m4", m.selected)

	m, cmd := step(t, m, keyPress("+"))
	got, _ := m.store.Message("m4")
	require.NotNil(t, got.Feedback)
	assert.Equal(t, 1, *got.Feedback)

	sent, ok := find[feedbackSentMsg](collect(cmd))
	require.True(t, ok)
	require.Len(t, b.rated, 1)
	assert.Equal(t, 1, b.rated[0].Value)
	assert.Equal(t, "u1", b.rated[0].UserID)

	m, _ = step(t, m, sent)
	got, _ = m.store.Message("m4")
	assert.Nil(t, got.Feedback)
	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, "Rating failed", m.toasts.items[0].Description)
	assert.Equal(t, ToastDestructive, m.toasts.items[0].Variant)
}

func TestFeedbackIgnoresClientRows(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("k"))
	require.Equal(t, "m3", m.selected)

	_, cmd := step(t, m, keyPress("+"))
	assert.Nil(t, cmd)
	assert.Empty(t, b.rated)
}

func TestEmailDialogValidates(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("m"))
	require.NotNil(t, m.email)
	assert.Equal(t, "message 4", m.email.body.Value())

	m, _ = step(t, m, keyPress("ctrl+s"))
	assert.Empty(t, b.emails)
	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, "Email chat has not been initiated.", m.toasts.items[0].Description)
	assert.NotNil(t, m.email, "the dialog stays open")

	m, _ = step(t, m, keyPress("esc"))
	assert.Nil(t, m.email)
}

func TestEmailSendPromotesMessage(t *testing.T) {
	b := newFakeBackend(4)
	b.chat.Threads = []models.Thread{{ThreadID: "thread-1", Subject: "Intro", ClientEmail: "ana@acme.example"}}
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("m"))
	require.NotNil(t, m.email)

	m, cmd := step(t, m, keyPress("ctrl+s"))
	assert.True(t, m.email.sending)

	sent, ok := find[emailSentMsg](collect(cmd))
	require.True(t, ok)
	require.Len(t, b.emails, 1)
	assert.Equal(t, "thread-1", b.emails[0].ThreadID)
	assert.Equal(t, "m4", b.emails[0].MessageID)
	assert.Equal(t, "chat-1", b.emails[0].ChatID)

	m, _ = step(t, m, sent)
	assert.Nil(t, m.email)
	got, _ := m.store.Message("m4")
	assert.Equal(t, models.FromEmail, got.MessageFrom)
	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, "Email sent to ana@acme.example", m.toasts.items[0].Description)
	assert.Equal(t, ToastSuccess, m.toasts.items[0].Variant)
}

func TestEmailSendFailureKeepsDialog(t *testing.T) {
	b := newFakeBackend(4)
	b.chat.Threads = []models.Thread{{ThreadID: "thread-1", Subject: "Intro", ClientEmail: "ana@acme.example"}}
	b.emailErr = &api.Error{Status: 502, Message: "Gmail rejected the message"}
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("m"))
	m, cmd := step(t, m, keyPress("ctrl+s"))
	sent, ok := find[emailSentMsg](collect(cmd))
	require.True(t, ok)

	m, _ = step(t, m, sent)
	require.NotNil(t, m.email, "the dialog stays open for another try")
	assert.False(t, m.email.sending)
	got, _ := m.store.Message("m4")
	assert.Equal(t, models.FromAI, got.MessageFrom)
	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, "Gmail rejected the message", m.toasts.items[0].Description)
	assert.Equal(t, ToastDestructive, m.toasts.items[0].Variant)
}

func TestEmailNeedsGmail(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)
	m.app.User.GmailConnected = false

	m, _ = step(t, m, keyPress("m"))
	assert.Nil(t, m.email)
	require.Len(t, m.toasts.items, 1)
	assert.Equal(t, errGmailNotConnected, m.toasts.items[0].Description)
}

func TestEmailOnlyFromLatestReply(t *testing.T) {
	b := newFakeBackend(6)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("k"))
	m, _ = step(t, m, keyPress("k"))
	require.Equal(t, "m4", m.selected)

	m, _ = step(t, m, keyPress("m"))
	assert.Nil(t, m.email)
}

func TestEditSavesContent(t *testing.T) {
	b := newFakeBackend(4)
	m := openChat(t, b)

	m, _ = step(t, m, keyPress("e"))
	target, editing := m.composer.state.Editing()
	require.True(t, editing)
	assert.Equal(t, "m4", target.ID)
	assert.Equal(t, "message 4", m.composer.client.Value())

	m.composer.client.SetValue("message 4, revised")
	m, cmd := step(t, m, keyPress("ctrl+s"))
	edited, ok := find[messageEditedMsg](collect(cmd))
	require.True(t, ok)

	m, _ = step(t, m, edited)
	got, _ := m.store.Message("m4")
	assert.Equal(t, "message 4, revised", got.Content)
	_, editing = m.composer.state.Editing()
	assert.False(t, editing)
}

func TestEscLeavesConversation(t *testing.T) {
	b := newFakeBackend(2)
	m := openChat(t, b)
	chat.SetActive("chat-1")

	updated, _ := m.Update(keyPress("esc"))
	_, ok := updated.(ConversationsModel)
	assert.True(t, ok)
	assert.Equal(t, "", chat.Active())
}
