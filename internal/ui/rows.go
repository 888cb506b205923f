package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/saravenpi/outreach/internal/chat"
	"github.com/saravenpi/outreach/internal/models"
)

// sentinelHeight is the number of lines the "older messages" marker takes at
// the top of the list.
const sentinelHeight = 2

// rowContext is the conversation-level input to every row.
type rowContext struct {
	Client       string
	SalesOwner   string
	ActionableID string
	SelectedKey  string
	CopiedKey    string
	Width        int
	Now          time.Time

	// GmailConnected is false when the signed-in user cannot send e-mail.
	GmailConnected bool
}

func badge(from models.MessageFrom) string {
	switch from {
	case models.FromAI:
		return badgeAIStyle.Render("AI")
	case models.FromEmail:
		return badgeEmailStyle.Render("Gmail")
	case models.FromLinkedIn:
		return badgeLinkedInStyle.Render("LinkedIn")
	default:
		return ""
	}
}

func senderName(m models.Message, rc rowContext) string {
	if m.IsHuman() {
		if rc.Client != "" {
			return rc.Client
		}
		return "Client"
	}
	if rc.SalesOwner != "" {
		return rc.SalesOwner
	}
	return "You"
}

func feedbackMark(m models.Message) string {
	switch chat.RatingOf(m.Feedback) {
	case chat.Liked:
		return likedStyle.Render("▲ liked")
	case chat.Disliked:
		return dislikedStyle.Render("▼ disliked")
	default:
		return ""
	}
}

// actionBar lists the keys that act on the selected row. Only AI-side rows
// get actions.
func actionBar(m models.Message, rc rowContext) string {
	rating := chat.RatingOf(m.Feedback)

	like := actionStyle.Render("+ like")
	if rating == chat.Liked {
		like = likedStyle.Render("+ liked")
	}
	dislike := actionStyle.Render("- dislike")
	if rating == chat.Disliked {
		dislike = dislikedStyle.Render("- disliked")
	}

	copyLabel := actionStyle.Render("c copy")
	if rc.CopiedKey != "" && rc.CopiedKey == m.Key() {
		copyLabel = copiedStyle.Render("✓ copied")
	}

	parts := []string{copyLabel, actionStyle.Render("e edit"), like, dislike}
	if m.ID != "" && m.ID == rc.ActionableID {
		if rc.GmailConnected {
			parts = append(parts, actionStyle.Render("m send as email"))
		} else {
			parts = append(parts, disabledInputStyle.Render("m send as email (connect Gmail first)"))
		}
	}
	return strings.Join(parts, actionStyle.Render(" · "))
}

// renderRow draws one message. It depends on nothing but its arguments.
func renderRow(m models.Message, rc rowContext) string {
	width := rc.Width
	if width < 20 {
		width = 20
	}
	inner := width - 2
	textWidth := inner * 4 / 5
	if textWidth < 10 {
		textWidth = 10
	}

	header := messageHeaderStyle.Render(senderName(m, rc) + " • " + m.CreatedAt.In(rc.Now.Location()).Format("3:04 PM"))
	if b := badge(m.MessageFrom); b != "" {
		header += " " + b
	}
	if mark := feedbackMark(m); mark != "" {
		header += " " + mark
	}

	bodyStyle := messageFromOwnerStyle
	if m.IsHuman() {
		bodyStyle = messageFromClientStyle
	}
	body := bodyStyle.Render(wordwrap.String(m.Content, textWidth))

	lines := []string{header, body}
	selected := rc.SelectedKey != "" && rc.SelectedKey == m.Key()
	if selected && !m.IsHuman() {
		lines = append(lines, actionBar(m, rc))
	} else if !m.IsHuman() && rc.CopiedKey != "" && rc.CopiedKey == m.Key() {
		lines = append(lines, copiedStyle.Render("✓ copied"))
	}

	align := lipgloss.Left
	if !m.IsHuman() {
		align = lipgloss.Right
	}
	block := lipgloss.NewStyle().Width(inner).Align(align).Render(lipgloss.JoinVertical(align, lines...))

	if selected {
		return selectedRowStyle.Render(block)
	}
	return plainRowStyle.Render(block)
}

func renderSeparator(label string, width int) string {
	return separatorStyle.Width(width).Render("── " + label + " ──")
}

// layout is the rendered message list plus where each row starts.
type layout struct {
	content  string
	lines    int
	rowStart map[string]int
	rowEnd   map[string]int
	sentinel int
}

// layoutMessages renders msgs (newest first) oldest at the top. sentinel, when
// non-empty, is drawn above the oldest message.
func layoutMessages(msgs []models.Message, rc rowContext, sentinel string) layout {
	l := layout{
		rowStart: make(map[string]int, len(msgs)),
		rowEnd:   make(map[string]int, len(msgs)),
	}

	var b strings.Builder
	line := 0
	write := func(s string) {
		if line > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
		line += lipgloss.Height(s)
	}

	if sentinel != "" {
		write(helpStyle.Width(rc.Width).Align(lipgloss.Center).Render(sentinel))
		write("")
		l.sentinel = sentinelHeight
	}

	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if i == len(msgs)-1 || !chat.SameDay(msgs[i+1].CreatedAt.In(rc.Now.Location()), m.CreatedAt) {
			write(renderSeparator(chat.DayLabel(m.CreatedAt, rc.Now), rc.Width))
		}
		l.rowStart[m.Key()] = line
		write(renderRow(m, rc))
		l.rowEnd[m.Key()] = line
	}

	l.content = b.String()
	l.lines = line
	return l
}
