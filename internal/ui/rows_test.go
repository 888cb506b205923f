package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/saravenpi/outreach/internal/models"
)

func testRowContext() rowContext {
	return rowContext{
		Client:     "Ana Ruiz",
		SalesOwner: "Dana Scott",
		Width:      80,
		Now:        testNow,
	}
}

func TestRenderRowNames(t *testing.T) {
	rc := testRowContext()

	human := models.Message{ID: "h1", Type: models.TypeHuman, MessageFrom: models.FromHuman, Content: "Hi there", CreatedAt: testNow}
	out := renderRow(human, rc)
	assert.Contains(t, out, "Ana Ruiz")
	assert.Contains(t, out, "Hi there")
	assert.Contains(t, out, "3:00 PM")

	ai := models.Message{ID: "a1", Type: models.TypeAI, MessageFrom: models.FromAI, Content: "Hello Ana", CreatedAt: testNow}
	out = renderRow(ai, rc)
	assert.Contains(t, out, "Dana Scott")
	assert.Contains(t, out, "AI")

	rc.Client, rc.SalesOwner = "", ""
	assert.Contains(t, renderRow(human, rc), "Client")
	assert.Contains(t, renderRow(ai, rc), "You")
}

func TestRenderRowBadges(t *testing.T) {
	rc := testRowContext()
	for from, want := range map[models.MessageFrom]string{
		models.FromEmail:    "Gmail",
		models.FromLinkedIn: "LinkedIn",
		models.FromAI:       "AI",
	} {
		m := models.Message{ID: "x", Type: models.TypeAI, MessageFrom: from, Content: "body", CreatedAt: testNow}
		assert.Contains(t, renderRow(m, rc), want, string(from))
	}
	assert.Empty(t, badge(models.FromHuman))
}

func TestActionsOnlyOnSelectedReplies(t *testing.T) {
	rc := testRowContext()
	ai := models.Message{ID: "a1", Type: models.TypeAI, MessageFrom: models.FromAI, Content: "Hello", CreatedAt: testNow}
	human := models.Message{ID: "h1", Type: models.TypeHuman, MessageFrom: models.FromHuman, Content: "Hi", CreatedAt: testNow}

	assert.NotContains(t, renderRow(ai, rc), "c copy")

	rc.SelectedKey = "a1"
	out := renderRow(ai, rc)
	assert.Contains(t, out, "c copy")
	assert.Contains(t, out, "e edit")
	assert.NotContains(t, out, "send as email", "only the actionable row offers email")

	rc.ActionableID = "a1"
	assert.Contains(t, renderRow(ai, rc), "connect Gmail first")

	rc.GmailConnected = true
	out = renderRow(ai, rc)
	assert.Contains(t, out, "m send as email")
	assert.NotContains(t, out, "connect Gmail first")

	rc.SelectedKey = "h1"
	assert.NotContains(t, renderRow(human, rc), "c copy")
}

func TestActionBarReflectsState(t *testing.T) {
	rc := testRowContext()
	rc.SelectedKey = "a1"
	liked := models.Message{ID: "a1", Type: models.TypeAI, MessageFrom: models.FromAI, Feedback: models.IntPtr(1), CreatedAt: testNow}

	out := renderRow(liked, rc)
	assert.Contains(t, out, "+ liked")
	assert.Contains(t, out, "▲ liked")

	rc.CopiedKey = "a1"
	assert.Contains(t, renderRow(liked, rc), "✓ copied")

	rc.SelectedKey = ""
	assert.Contains(t, renderRow(liked, rc), "✓ copied")
}

func TestLayoutMessages(t *testing.T) {
	rc := testRowContext()
	yesterday := testNow.Add(-24 * time.Hour)
	msgs := []models.Message{
		{ID: "m3", Type: models.TypeAI, MessageFrom: models.FromAI, Content: "third", CreatedAt: testNow},
		{ID: "m2", Type: models.TypeHuman, MessageFrom: models.FromHuman, Content: "second", CreatedAt: testNow.Add(-time.Minute)},
		{ID: "m1", Type: models.TypeHuman, MessageFrom: models.FromHuman, Content: "first", CreatedAt: yesterday},
	}

	l := layoutMessages(msgs, rc, "↑ 4 older messages")
	assert.Equal(t, sentinelHeight, l.sentinel)
	assert.Equal(t, 2, strings.Count(l.content, "──")/2, "one separator per day")
	assert.Contains(t, l.content, "Yesterday")
	assert.Contains(t, l.content, "Today")

	assert.Less(t, l.rowStart["m1"], l.rowStart["m2"])
	assert.Less(t, l.rowStart["m2"], l.rowStart["m3"])
	assert.Greater(t, l.rowStart["m1"], l.sentinel)
	assert.Equal(t, l.lines, l.rowEnd["m3"])

	noSentinel := layoutMessages(msgs, rc, "")
	assert.Equal(t, 0, noSentinel.sentinel)
	assert.Equal(t, l.rowStart["m1"]-sentinelHeight, noSentinel.rowStart["m1"])
}
