package chat

import (
	"log/slog"
	"time"

	"github.com/saravenpi/outreach/internal/models"
)

// DefaultPrompt stands in for the last human message when a conversation has
// none yet.
const DefaultPrompt = "How can I help you?"

// Store holds the open conversation: its messages, newest first, and the
// page cursor. Mutations only ever insert at the head or the tail; existing
// entries keep their positions.
//
// Store is owned by a single Bubble Tea model and is not safe for concurrent
// use.
type Store struct {
	chat       models.Chat
	messages   []models.Message
	offset     int
	totalCount int
	scrollSeq  int
	now        func() time.Time
	logger     *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{now: time.Now, logger: logger}
}

// Initialize replaces the state with the first fetched page.
func (s *Store) Initialize(chat models.Chat, totalCount int) {
	s.messages = append([]models.Message(nil), chat.Messages...)
	chat.Messages = nil
	s.chat = chat
	s.totalCount = totalCount
	s.offset = 1
	s.scrollSeq++
}

// Prepend inserts m as the newest message and asks the view to scroll to it.
func (s *Store) Prepend(m models.Message) {
	s.messages = append([]models.Message{m}, s.messages...)
	s.scrollSeq++
}

// AppendOlderPage adds a backfilled page at the oldest end and advances the
// cursor.
func (s *Store) AppendOlderPage(page []models.Message) {
	s.messages = append(s.messages, page...)
	s.offset++
}

// Confirm swaps an optimistic entry for the record the server stored. The
// entry keeps its position.
func (s *Store) Confirm(localID string, confirmed models.Message) bool {
	for i := range s.messages {
		if s.messages[i].LocalID != "" && s.messages[i].LocalID == localID {
			confirmed.LocalID = localID
			s.messages[i] = confirmed
			return true
		}
	}
	s.logger.Debug("confirm for unknown message", "local_id", localID, "chat_id", s.chat.ID)
	return false
}

// EditContent replaces the content of message id. When from is given the
// provenance changes too. updatedAt is refreshed on every edit.
func (s *Store) EditContent(id, content string, from ...models.MessageFrom) bool {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("edit for unknown message", "message_id", id, "chat_id", s.chat.ID)
		return false
	}
	s.messages[i].Content = content
	if len(from) > 0 {
		s.messages[i].MessageFrom = from[0]
	}
	s.messages[i].UpdatedAt = s.now()
	return true
}

// SetFeedback records a rating locally. nil clears it.
func (s *Store) SetFeedback(id string, value *int) bool {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("feedback for unknown message", "message_id", id, "chat_id", s.chat.ID)
		return false
	}
	if value == nil {
		s.messages[i].Feedback = nil
	} else {
		s.messages[i].Feedback = models.IntPtr(*value)
	}
	return true
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

// Chat returns the conversation metadata without its messages.
func (s *Store) Chat() models.Chat {
	return s.chat
}

// Messages returns a copy of the list, newest first.
func (s *Store) Messages() []models.Message {
	return append([]models.Message(nil), s.messages...)
}

func (s *Store) Message(id string) (models.Message, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Message{}, false
	}
	return s.messages[i], true
}

func (s *Store) Len() int {
	return len(s.messages)
}

// Offset is the next page to request.
func (s *Store) Offset() int {
	return s.offset
}

func (s *Store) TotalCount() int {
	return s.totalCount
}

// SetTotalCount records the server's latest total.
func (s *Store) SetTotalCount(n int) {
	s.totalCount = n
}

func (s *Store) HasMore() bool {
	return len(s.messages) < s.totalCount
}

// ScrollSeq changes whenever the view should jump to the newest message.
func (s *Store) ScrollSeq() int {
	return s.scrollSeq
}

// LatestActionableID is the message that carries the send-as-email action:
// the newest message, when it is an AI turn written by the AI or a human.
func (s *Store) LatestActionableID() string {
	if len(s.messages) == 0 {
		return ""
	}
	head := s.messages[0]
	if head.Type != models.TypeAI {
		return ""
	}
	if head.MessageFrom != models.FromAI && head.MessageFrom != models.FromHuman {
		return ""
	}
	return head.ID
}

// LastHumanContent is what "Generate with AI" replies to.
func (s *Store) LastHumanContent() string {
	for _, m := range s.messages {
		if m.Type == models.TypeHuman {
			return m.Content
		}
	}
	return DefaultPrompt
}
