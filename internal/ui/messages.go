package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/chat"
	"github.com/saravenpi/outreach/internal/models"
)

const copiedFor = 3 * time.Second

// Every async result carries the view and chat it was issued for. A result
// whose view id no longer matches belongs to a torn-down view and is dropped.

type chatLoadedMsg struct {
	viewID string
	chatID string
	chat   models.Chat
	page   models.Pagination
	err    error
}

type olderPageMsg struct {
	viewID   string
	chatID   string
	page     int
	messages []models.Message
	total    int
	err      error
}

type messageSentMsg struct {
	viewID  string
	chatID  string
	intent  chat.Intent
	message models.Message
	err     error
}

type messageEditedMsg struct {
	viewID    string
	chatID    string
	messageID string
	content   string
	err       error
}

type feedbackSentMsg struct {
	viewID string
	chatID string
	change chat.FeedbackChange
	err    error
}

type emailSentMsg struct {
	viewID    string
	chatID    string
	messageID string
	body      string
	status    string
	err       error
}

type copiedMsg struct {
	viewID string
	key    string
	err    error
}

type copiedExpiredMsg struct {
	viewID string
	key    string
}

// MessagesModel is the conversation view: the message list with its backfill,
// row actions, the composer and the send-as-email dialog.
type MessagesModel struct {
	app      *App
	summary  models.ChatSummary
	viewID   string
	store    *chat.Store
	backfill *chat.Backfill
	composer composerModel
	viewport viewport.Model
	spinner  spinner.Model
	toasts   toasts
	email    *emailDialog
	keys     conversationKeys
	layout   layout

	loading   bool
	saving    bool
	err       error
	selected  string
	copied    string
	scrollSeq int

	windowWidth  int
	windowHeight int
}

func NewMessagesModel(app *App, summary models.ChatSummary) MessagesModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	vp := viewport.New(80, 20)

	return MessagesModel{
		app:          app,
		summary:      summary,
		viewID:       uuid.NewString(),
		store:        chat.NewStore(app.Logger.With("component", "chat", "chat_id", summary.ID)),
		backfill:     chat.NewBackfill(),
		composer:     newComposer(),
		viewport:     vp,
		spinner:      s,
		keys:         newConversationKeys(),
		loading:      true,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m MessagesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadChatCmd())
}

func (m MessagesModel) current(viewID, chatID string) bool {
	return viewID == m.viewID && chatID == m.summary.ID
}

func (m MessagesModel) loadChatCmd() tea.Cmd {
	app, viewID, chatID := m.app, m.viewID, m.summary.ID
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		c, page, err := app.API.GetChat(ctx, chatID, 0, app.pageSize())
		return chatLoadedMsg{viewID: viewID, chatID: chatID, chat: c, page: page, err: err}
	}
}

// fetchOlderCmd requests page and holds the result back until the configured
// backfill delay has passed.
func (m MessagesModel) fetchOlderCmd(page int) tea.Cmd {
	app, viewID, chatID := m.app, m.viewID, m.summary.ID
	delay := app.Config.BackfillDelay
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := app.requestContext()
		defer cancel()
		c, pg, err := app.API.GetChat(ctx, chatID, page, app.pageSize())
		if wait := delay - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
		return olderPageMsg{viewID: viewID, chatID: chatID, page: page, messages: c.Messages, total: pg.TotalCount, err: err}
	}
}

func (m MessagesModel) sendCmd(intent chat.Intent) tea.Cmd {
	app, viewID, chatID := m.app, m.viewID, m.summary.ID
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		msg, err := app.API.SendMessage(ctx, chatID, api.SendMessageRequest{
			ClientMessage:  intent.Text,
			UseAI:          intent.UseAI,
			MessageType:    intent.MessageType,
			GenerateWithAI: intent.GenerateWithAI,
		})
		return messageSentMsg{viewID: viewID, chatID: chatID, intent: intent, message: msg, err: err}
	}
}

func (m MessagesModel) editCmd(messageID, content string) tea.Cmd {
	app, viewID, chatID := m.app, m.viewID, m.summary.ID
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		err := app.API.EditMessage(ctx, messageID, content)
		return messageEditedMsg{viewID: viewID, chatID: chatID, messageID: messageID, content: content, err: err}
	}
}

func (m MessagesModel) rateCmd(change chat.FeedbackChange) tea.Cmd {
	app, viewID, chatID := m.app, m.viewID, m.summary.ID
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		err := app.API.RateMessage(ctx, change.MessageID, api.RateRequest{
			Value:   change.Next.Value(),
			Message: change.Content,
			UserID:  app.User.ID,
		})
		return feedbackSentMsg{viewID: viewID, chatID: chatID, change: change, err: err}
	}
}

func (m MessagesModel) sendEmailCmd(req api.SendEmailRequest) tea.Cmd {
	app, viewID, chatID := m.app, m.viewID, m.summary.ID
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		status, err := app.API.SendEmail(ctx, app.User.Email, req)
		return emailSentMsg{viewID: viewID, chatID: chatID, messageID: req.MessageID, body: req.MessageBody, status: status, err: err}
	}
}

func (m MessagesModel) copyCmd(key, content string) tea.Cmd {
	viewID := m.viewID
	return func() tea.Msg {
		return copiedMsg{viewID: viewID, key: key, err: clipboard.WriteAll(content)}
	}
}

func (m *MessagesModel) resize() {
	w := m.windowWidth - 4
	if w < 20 {
		w = 20
	}
	m.composer.setWidth(w)

	headerHeight := 3
	helpHeight := 2
	h := m.windowHeight - headerHeight - helpHeight - m.composer.height() - 1
	if h < 3 {
		h = 3
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

func (m MessagesModel) rowContext() rowContext {
	c := m.store.Chat()
	client := c.Client
	if client == "" {
		client = m.summary.Client
	}
	return rowContext{
		Client:         client,
		SalesOwner:     c.SalesOwner,
		ActionableID:   m.store.LatestActionableID(),
		SelectedKey:    m.selected,
		CopiedKey:      m.copied,
		Width:          m.viewport.Width,
		Now:            m.app.Now(),
		GmailConnected: m.app.User.GmailConnected,
	}
}

func (m MessagesModel) sentinelText() string {
	if !m.store.HasMore() {
		return ""
	}
	if m.backfill.Fetching() {
		return m.spinner.View() + " Loading older messages..."
	}
	return fmt.Sprintf("↑ %d older messages", m.store.TotalCount()-m.store.Len())
}

// refresh re-renders the list into the viewport and follows the store's
// scroll-to-newest requests.
func (m *MessagesModel) refresh() {
	m.layout = layoutMessages(m.store.Messages(), m.rowContext(), m.sentinelText())
	m.viewport.SetContent(m.layout.content)
	if seq := m.store.ScrollSeq(); seq != m.scrollSeq {
		m.scrollSeq = seq
		m.viewport.GotoBottom()
	}
}

// checkSentinel starts a backfill when the marker above the oldest message
// is on screen.
func (m *MessagesModel) checkSentinel() tea.Cmd {
	visible := m.layout.sentinel > 0 &&
		chat.SentinelVisible(m.viewport.YOffset, m.layout.sentinel, m.backfill.Threshold)
	page, ok := m.backfill.Trigger(visible, m.store, m.viewport.YOffset)
	if !ok {
		return nil
	}
	m.app.Logger.Debug("backfill", "chat_id", m.summary.ID, "page", page)
	m.refresh()
	return tea.Batch(m.spinner.Tick, m.fetchOlderCmd(page))
}

func (m *MessagesModel) scrollTo(offset int) tea.Cmd {
	if m.backfill.Fetching() {
		return nil
	}
	m.viewport.SetYOffset(offset)
	return m.checkSentinel()
}

// ensureVisible scrolls the least amount that brings row key on screen. The
// oldest loaded row scrolls to the very top so the sentinel shows with it.
func (m *MessagesModel) ensureVisible(key string) tea.Cmd {
	start, ok := m.layout.rowStart[key]
	if !ok {
		return nil
	}
	end := m.layout.rowEnd[key]
	top := m.viewport.YOffset
	switch {
	case start < top:
		top = start
	case end > top+m.viewport.Height:
		top = min(end-m.viewport.Height, start)
	}
	if msgs := m.store.Messages(); len(msgs) > 0 && msgs[len(msgs)-1].Key() == key {
		top = 0
	}
	return m.scrollTo(top)
}

func (m MessagesModel) selectedMessage() (models.Message, int, bool) {
	msgs := m.store.Messages()
	for i, msg := range msgs {
		if msg.Key() == m.selected {
			return msg, i, true
		}
	}
	return models.Message{}, -1, false
}

// moveSelection steps towards older (+1) or newer (-1) messages.
func (m *MessagesModel) moveSelection(delta int) tea.Cmd {
	if m.backfill.Fetching() {
		return nil
	}
	msgs := m.store.Messages()
	if len(msgs) == 0 {
		return nil
	}
	_, i, ok := m.selectedMessage()
	if !ok {
		i = 0
	} else {
		i += delta
	}
	i = max(0, min(i, len(msgs)-1))
	m.selected = msgs[i].Key()
	m.refresh()
	return m.ensureVisible(m.selected)
}

// actionTarget is the selected message when it offers row actions: an AI-side
// row the server has confirmed.
func (m MessagesModel) actionTarget() (models.Message, bool) {
	msg, _, ok := m.selectedMessage()
	if !ok || msg.IsHuman() || msg.ID == "" {
		return models.Message{}, false
	}
	return msg, true
}

func (m *MessagesModel) submit(generate bool) tea.Cmd {
	if !m.composer.state.CanSubmit() || m.saving {
		return nil
	}
	d := m.composer.draft(m.store.LastHumanContent())
	if generate {
		if d.EditID != "" {
			return nil
		}
		d.Generate = true
	}

	intent, err := d.Intent(m.app.Now(), uuid.NewString)
	if errors.Is(err, chat.ErrEmptyDraft) {
		return nil
	}

	if intent.Kind == chat.IntentEdit {
		m.saving = true
		return tea.Batch(m.spinner.Tick, m.editCmd(intent.EditID, intent.Text))
	}

	if intent.Optimistic != nil {
		m.store.Prepend(*intent.Optimistic)
		m.selected = intent.Optimistic.Key()
	}
	// Every send keeps submit locked until its response lands.
	m.composer.state.SetGenerating(true)
	if !generate {
		m.composer.reset()
	}
	m.refresh()
	return tea.Batch(m.spinner.Tick, m.sendCmd(intent))
}

func (m *MessagesModel) rate(button chat.Rating) tea.Cmd {
	msg, ok := m.actionTarget()
	if !ok {
		return nil
	}
	change, ok := chat.Rate(m.store, msg.ID, button)
	if !ok {
		return nil
	}
	m.refresh()
	return m.rateCmd(change)
}

func (m MessagesModel) back() (tea.Model, tea.Cmd) {
	chat.SetActive("")
	return sized(m.app, NewConversationsModel(m.app))
}

func (m MessagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.app.Width, m.app.Height = msg.Width, msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case chatLoadedMsg:
		if !m.current(msg.viewID, msg.chatID) {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, m.toasts.failure(msg.err)
		}
		m.err = nil
		m.store.Initialize(msg.chat, msg.page.TotalCount)
		if m.store.Len() > 0 {
			m.selected = m.store.Messages()[0].Key()
		}
		m.refresh()
		return m, m.checkSentinel()

	case olderPageMsg:
		if !m.current(msg.viewID, msg.chatID) {
			return m, nil
		}
		if msg.err != nil {
			m.backfill.Fail(msg.page)
			m.refresh()
			return m, m.toasts.failure(msg.err)
		}
		msgs := m.store.Messages()
		anchor := ""
		if len(msgs) > 0 {
			anchor = msgs[len(msgs)-1].Key()
		}
		before := m.layout.rowStart[anchor]
		if !m.backfill.Complete(m.store, msg.page, msg.messages, msg.total) {
			return m, nil
		}
		m.refresh()
		inserted := m.layout.rowStart[anchor] - before
		m.viewport.SetYOffset(m.backfill.Restore(inserted))
		return m, m.checkSentinel()

	case messageSentMsg:
		if !m.current(msg.viewID, msg.chatID) {
			return m, nil
		}
		m.composer.state.SetGenerating(false)
		if msg.err != nil {
			m.refresh()
			return m, m.toasts.failure(msg.err)
		}

		stored := msg.message
		switch {
		case msg.intent.ExpectReply:
			if msg.intent.Kind == chat.IntentGenerate {
				stored.MessageFrom = models.FromAI
			}
			m.store.Prepend(stored)
			m.selected = stored.Key()
		case msg.intent.Optimistic != nil:
			localID := msg.intent.Optimistic.LocalID
			if m.store.Confirm(localID, stored) && m.selected == localID {
				m.selected = stored.Key()
			}
		}
		touched := stored.CreatedAt
		if touched.IsZero() {
			touched = m.app.Now()
		}
		chat.Touch(msg.chatID, touched)
		m.refresh()
		return m, nil

	case messageEditedMsg:
		if !m.current(msg.viewID, msg.chatID) {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			return m, m.toasts.failure(msg.err)
		}
		m.store.EditContent(msg.messageID, msg.content)
		m.composer.endEdit()
		m.refresh()
		return m, m.toasts.success("Message updated")

	case feedbackSentMsg:
		if !m.current(msg.viewID, msg.chatID) {
			return m, nil
		}
		if msg.err != nil {
			msg.change.Revert(m.store)
			m.refresh()
			return m, m.toasts.failure(msg.err)
		}
		return m, nil

	case emailSentMsg:
		if !m.current(msg.viewID, msg.chatID) {
			return m, nil
		}
		if msg.err != nil {
			if m.email != nil {
				m.email.sending = false
			}
			return m, m.toasts.failure(msg.err)
		}
		m.store.EditContent(msg.messageID, msg.body, models.FromEmail)
		chat.Touch(msg.chatID, m.app.Now())
		m.email = nil
		m.refresh()
		return m, m.toasts.success(msg.status)

	case copiedMsg:
		if msg.viewID != m.viewID {
			return m, nil
		}
		if msg.err != nil {
			return m, m.toasts.failure(msg.err)
		}
		m.copied = msg.key
		m.refresh()
		viewID, key := m.viewID, msg.key
		return m, tea.Tick(copiedFor, func(time.Time) tea.Msg {
			return copiedExpiredMsg{viewID: viewID, key: key}
		})

	case copiedExpiredMsg:
		if msg.viewID == m.viewID && m.copied == msg.key {
			m.copied = ""
			m.refresh()
		}
		return m, nil

	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case spinner.TickMsg:
		busy := m.loading || m.saving || m.backfill.Fetching() || m.composer.state.Generating() ||
			(m.email != nil && m.email.sending)
		if !busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.backfill.Fetching() {
			m.refresh()
		}
		return m, cmd

	case tea.MouseMsg:
		if m.email != nil || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.scrollTo(m.viewport.YOffset - 3)
		case tea.MouseButtonWheelDown:
			return m, m.scrollTo(m.viewport.YOffset + 3)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.email != nil {
			return m.updateEmail(msg)
		}
		if m.composer.focused {
			return m.updateComposer(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m MessagesModel) updateEmail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if !m.email.sending {
			m.email = nil
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.email.sending {
			return m, nil
		}
		if problem := m.email.validate(); problem != "" {
			return m, m.toasts.failureText(problem)
		}
		m.email.sending = true
		return m, tea.Batch(m.spinner.Tick, m.sendEmailCmd(m.email.request()))
	case key.Matches(msg, m.keys.NextThread):
		m.email.cycle(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevThread):
		m.email.cycle(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.email.body, cmd = m.email.body.Update(msg)
	return m, cmd
}

func (m MessagesModel) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if _, editing := m.composer.state.Editing(); editing {
			m.composer.endEdit()
		}
		m.composer.blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit(false)
	case key.Matches(msg, m.keys.InputGen):
		return m, m.submit(true)
	case key.Matches(msg, m.keys.Toggle):
		if m.composer.toggle() {
			m.resize()
			m.refresh()
		}
		return m, nil
	case msg.String() == "tab":
		if !m.composer.switchInput() {
			m.composer.blur()
		}
		return m, nil
	}
	return m, m.composer.update(msg)
}

func (m MessagesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.back()
	case key.Matches(msg, m.keys.Focus):
		return m, m.composer.focus()
	case key.Matches(msg, m.keys.Toggle):
		if m.composer.toggle() {
			m.resize()
			m.refresh()
		}
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		// A new view id would orphan in-flight responses and leave the
		// composer locked.
		if m.backfill.Fetching() || m.composer.state.Generating() || m.saving {
			return m, nil
		}
		m.viewID = uuid.NewString()
		m.backfill = chat.NewBackfill()
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadChatCmd())

	case key.Matches(msg, m.keys.Up):
		return m, m.moveSelection(1)
	case key.Matches(msg, m.keys.Down):
		return m, m.moveSelection(-1)
	case key.Matches(msg, m.keys.PageUp):
		return m, m.scrollTo(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		return m, m.scrollTo(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.Top):
		return m, m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		if m.backfill.Fetching() {
			return m, nil
		}
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		return m, m.submit(true)

	case key.Matches(msg, m.keys.Copy):
		target, ok := m.actionTarget()
		if !ok {
			return m, nil
		}
		return m, m.copyCmd(target.Key(), target.Content)

	case key.Matches(msg, m.keys.Edit):
		target, ok := m.actionTarget()
		if !ok {
			return m, nil
		}
		cmd := m.composer.beginEdit(target.ID, target.Content)
		m.resize()
		m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Like):
		return m, m.rate(chat.Liked)
	case key.Matches(msg, m.keys.Dislike):
		return m, m.rate(chat.Disliked)

	case key.Matches(msg, m.keys.Email):
		target, ok := m.actionTarget()
		if !ok || target.ID != m.store.LatestActionableID() {
			return m, nil
		}
		if !m.app.User.GmailConnected {
			return m, m.toasts.failureText(errGmailNotConnected)
		}
		d := newEmailDialog(target, m.store.Chat(), m.app.User.Email, m.viewport.Width-4)
		m.email = &d
		return m, nil
	}

	return m, nil
}

func (m MessagesModel) header() string {
	c := m.store.Chat()
	name := c.Client
	if name == "" {
		name = m.summary.Client
	}
	company := c.Company
	if company == "" {
		company = m.summary.Company
	}

	title := "💬 " + name
	if company != "" {
		title += " · " + company
	}
	s := titleStyle.MarginBottom(0).Render(title)

	var meta []string
	if !c.UpdatedAt.IsZero() {
		meta = append(meta, "updated "+humanize.Time(c.UpdatedAt))
	}
	if m.store.TotalCount() > 0 {
		meta = append(meta, fmt.Sprintf("%d of %d messages loaded", m.store.Len(), m.store.TotalCount()))
	}
	if c.LinkedInProfile != "" {
		meta = append(meta, c.LinkedInProfile)
	}
	return s + "\n" + helpStyle.Render(strings.Join(meta, " • ")) + "\n"
}

func (m MessagesModel) helpText() string {
	if m.composer.focused {
		return helpLine(m.keys.Submit, m.keys.InputGen, m.keys.Toggle) + " • tab: switch • esc: leave input"
	}
	return helpLine(m.keys.Up, m.keys.Down, m.keys.Focus, m.keys.Generate, m.keys.Copy, m.keys.Edit,
		m.keys.Like, m.keys.Dislike, m.keys.Email, m.keys.Refresh, m.keys.Cancel)
}

func (m MessagesModel) View() string {
	if m.loading && m.store.Len() == 0 {
		return fmt.Sprintf("\n  %s Loading messages...\n", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(m.header() + "\n")

	if m.email != nil {
		b.WriteString(m.email.View(m.viewport.Width))
		return overlayToasts(b.String(), m.toasts, m.windowWidth)
	}

	switch {
	case m.err != nil && m.store.Len() == 0:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", api.UserMessage(m.err))) + "\n")
		b.WriteString(helpStyle.Render("r: retry • esc: back"))
		return overlayToasts(b.String(), m.toasts, m.windowWidth)
	case m.store.Len() == 0:
		b.WriteString(normalStyle.Render("  No messages in this conversation.") + "\n")
		b.WriteString(strings.Repeat("\n", max(0, m.viewport.Height-1)))
	default:
		b.WriteString(m.viewport.View() + "\n")
	}

	b.WriteString(m.composer.View() + "\n")
	b.WriteString(helpStyle.Render(m.helpText()))
	return overlayToasts(b.String(), m.toasts, m.windowWidth)
}

// overlayToasts draws the toast stack over the top right of view.
func overlayToasts(view string, t toasts, width int) string {
	if t.empty() {
		return view
	}
	lines := strings.Split(view, "\n")
	stack := strings.Split(t.View(width/2), "\n")
	for i, line := range stack {
		if i+1 >= len(lines) {
			lines = append(lines, "")
		}
		lines[i+1] = lipgloss.PlaceHorizontal(width, lipgloss.Right, line)
	}
	return strings.Join(lines, "\n")
}
