package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saravenpi/outreach/internal/models"
)

func fixedID() string { return "local-1" }

func TestComposerToggleAndEditLock(t *testing.T) {
	c := NewComposer()
	assert.Equal(t, ModeAssist, c.Mode())

	require.True(t, c.Toggle())
	assert.Equal(t, ModeManual, c.Mode())

	c.BeginEdit("m1", "old text")
	assert.Equal(t, ModeAssist, c.Mode(), "editing forces assist mode")
	assert.False(t, c.Toggle(), "the switch is locked while editing")

	target, ok := c.Editing()
	require.True(t, ok)
	assert.Equal(t, EditTarget{ID: "m1", Content: "old text"}, target)

	c.EndEdit()
	_, ok = c.Editing()
	assert.False(t, ok)
	assert.True(t, c.Toggle())
}

func TestComposerGenerating(t *testing.T) {
	c := NewComposer()
	assert.True(t, c.CanSubmit())
	c.SetGenerating(true)
	assert.False(t, c.CanSubmit())
	c.SetGenerating(false)
	assert.True(t, c.CanSubmit())
}

func TestManualInputsLockEachOther(t *testing.T) {
	assert.False(t, ClientLocked("", ""))
	assert.False(t, OwnLocked("", ""))
	assert.True(t, ClientLocked("", "mine"))
	assert.True(t, OwnLocked("theirs", ""))
	assert.False(t, ClientLocked("theirs", "mine"))
}

func TestDraftAssist(t *testing.T) {
	now := time.Now()
	in, err := Draft{Mode: ModeAssist, ClientText: "  hello  "}.Intent(now, fixedID)
	require.NoError(t, err)

	assert.Equal(t, IntentSend, in.Kind)
	assert.Equal(t, "hello", in.Text)
	assert.True(t, in.UseAI)
	assert.True(t, in.ExpectReply)
	assert.Equal(t, models.TypeHuman, in.MessageType)
	require.NotNil(t, in.Optimistic)
	assert.Equal(t, "local-1", in.Optimistic.LocalID)
	assert.Empty(t, in.Optimistic.ID)
	assert.Equal(t, models.FromHuman, in.Optimistic.MessageFrom)
	assert.Equal(t, now, in.Optimistic.CreatedAt)
}

func TestDraftEmptyIsRejected(t *testing.T) {
	for _, d := range []Draft{
		{Mode: ModeAssist, ClientText: "   "},
		{Mode: ModeManual},
		{EditID: "m1", ClientText: "\n"},
	} {
		_, err := d.Intent(time.Now(), fixedID)
		assert.ErrorIs(t, err, ErrEmptyDraft)
	}
}

func TestDraftGenerate(t *testing.T) {
	in, err := Draft{Generate: true, LastHuman: "Are you free Monday?"}.Intent(time.Now(), fixedID)
	require.NoError(t, err)
	assert.Equal(t, IntentGenerate, in.Kind)
	assert.Equal(t, "Are you free Monday?", in.Text)
	assert.True(t, in.GenerateWithAI)
	assert.True(t, in.UseAI)
	assert.Nil(t, in.Optimistic, "generation has no local insert")

	in, err = Draft{Generate: true}.Intent(time.Now(), fixedID)
	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt, in.Text)
}

func TestDraftManual(t *testing.T) {
	in, err := Draft{Mode: ModeManual, ClientText: "from client"}.Intent(time.Now(), fixedID)
	require.NoError(t, err)
	assert.False(t, in.UseAI)
	assert.False(t, in.ExpectReply)
	assert.Equal(t, models.TypeHuman, in.MessageType)
	assert.Equal(t, models.TypeHuman, in.Optimistic.Type)

	in, err = Draft{Mode: ModeManual, OwnText: "from me"}.Intent(time.Now(), fixedID)
	require.NoError(t, err)
	assert.False(t, in.UseAI)
	assert.Equal(t, models.TypeAI, in.MessageType)
	assert.Equal(t, models.TypeAI, in.Optimistic.Type)
	assert.Equal(t, models.FromHuman, in.Optimistic.MessageFrom)
	assert.Equal(t, "from me", in.Optimistic.Content)
}

func TestDraftEdit(t *testing.T) {
	in, err := Draft{EditID: "m1", ClientText: "better words "}.Intent(time.Now(), fixedID)
	require.NoError(t, err)
	assert.Equal(t, IntentEdit, in.Kind)
	assert.Equal(t, "m1", in.EditID)
	assert.Equal(t, "better words", in.Text)
	assert.Nil(t, in.Optimistic)
}
