package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/saravenpi/outreach/internal/models"
)

// ErrEmptyDraft is returned for submissions with nothing to send. No request
// is made for them.
var ErrEmptyDraft = errors.New("nothing to send")

type Mode int

const (
	// ModeAssist sends the client's message and asks the server for an AI reply.
	ModeAssist Mode = iota
	// ModeManual offers a client-message input and a your-message input and
	// never asks for an AI reply.
	ModeManual
)

type EditTarget struct {
	ID      string
	Content string
}

// Composer is the non-visual state of the message composer.
type Composer struct {
	mode       Mode
	editing    *EditTarget
	generating bool
}

func NewComposer() Composer {
	return Composer{mode: ModeAssist}
}

func (c Composer) Mode() Mode {
	return c.mode
}

// Toggle flips between assist and manual mode. The switch is locked while a
// message is being edited.
func (c *Composer) Toggle() bool {
	if c.editing != nil {
		return false
	}
	if c.mode == ModeAssist {
		c.mode = ModeManual
	} else {
		c.mode = ModeAssist
	}
	return true
}

// BeginEdit takes over a message's content. Editing always happens in assist
// mode's single input.
func (c *Composer) BeginEdit(id, content string) {
	c.mode = ModeAssist
	c.editing = &EditTarget{ID: id, Content: content}
}

func (c *Composer) EndEdit() {
	c.editing = nil
}

func (c Composer) Editing() (EditTarget, bool) {
	if c.editing == nil {
		return EditTarget{}, false
	}
	return *c.editing, true
}

func (c *Composer) SetGenerating(v bool) {
	c.generating = v
}

func (c Composer) Generating() bool {
	return c.generating
}

// CanSubmit is false while a generation request is outstanding.
func (c Composer) CanSubmit() bool {
	return !c.generating
}

// ClientLocked reports whether the client-message input is disabled in manual
// mode: the other input has text and this one is empty.
func ClientLocked(client, own string) bool {
	return own != "" && client == ""
}

// OwnLocked is the mirror of ClientLocked.
func OwnLocked(client, own string) bool {
	return client != "" && own == ""
}

// Draft is what the composer holds at submit time.
type Draft struct {
	Mode       Mode
	ClientText string
	OwnText    string
	// Generate asks for an AI reply to LastHuman without new input.
	Generate  bool
	LastHuman string
	EditID    string
}

type IntentKind int

const (
	IntentSend IntentKind = iota
	IntentGenerate
	IntentEdit
)

// Intent describes one submission: the request to make and the local insert
// that goes with it.
type Intent struct {
	Kind           IntentKind
	Text           string
	UseAI          bool
	MessageType    models.MessageType
	GenerateWithAI bool
	EditID         string

	// Optimistic is prepended before the request is made and is never rolled
	// back.
	Optimistic *models.Message
	// ExpectReply means the response is a new AI message to prepend. When
	// false the response confirms Optimistic.
	ExpectReply bool
}

// Intent turns the draft into a submission. newID names optimistic messages.
func (d Draft) Intent(now time.Time, newID func() string) (Intent, error) {
	if d.EditID != "" {
		text := strings.TrimSpace(d.ClientText)
		if text == "" {
			return Intent{}, ErrEmptyDraft
		}
		return Intent{Kind: IntentEdit, Text: text, EditID: d.EditID}, nil
	}

	if d.Generate {
		prompt := d.LastHuman
		if strings.TrimSpace(prompt) == "" {
			prompt = DefaultPrompt
		}
		return Intent{
			Kind:           IntentGenerate,
			Text:           prompt,
			UseAI:          true,
			MessageType:    models.TypeHuman,
			GenerateWithAI: true,
			ExpectReply:    true,
		}, nil
	}

	client := strings.TrimSpace(d.ClientText)
	own := strings.TrimSpace(d.OwnText)

	optimistic := func(text string, typ models.MessageType) *models.Message {
		return &models.Message{
			LocalID:     newID(),
			Type:        typ,
			Content:     text,
			MessageFrom: models.FromHuman,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	if d.Mode == ModeAssist {
		if client == "" {
			return Intent{}, ErrEmptyDraft
		}
		return Intent{
			Kind:        IntentSend,
			Text:        client,
			UseAI:       true,
			MessageType: models.TypeHuman,
			Optimistic:  optimistic(client, models.TypeHuman),
			ExpectReply: true,
		}, nil
	}

	switch {
	case client != "":
		return Intent{
			Kind:        IntentSend,
			Text:        client,
			MessageType: models.TypeHuman,
			Optimistic:  optimistic(client, models.TypeHuman),
		}, nil
	case own != "":
		return Intent{
			Kind:        IntentSend,
			Text:        own,
			MessageType: models.TypeAI,
			Optimistic:  optimistic(own, models.TypeAI),
		}, nil
	default:
		return Intent{}, ErrEmptyDraft
	}
}
