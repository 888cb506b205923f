package chat

import "github.com/saravenpi/outreach/internal/models"

// Rating is the per-message feedback state.
type Rating int

const (
	Unrated Rating = iota
	Liked
	Disliked
)

func (r Rating) String() string {
	switch r {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "unrated"
	}
}

// RatingOf reads a stored feedback value. Absent and zero are both unrated.
func RatingOf(feedback *int) Rating {
	if feedback == nil {
		return Unrated
	}
	switch *feedback {
	case 1:
		return Liked
	case -1:
		return Disliked
	default:
		return Unrated
	}
}

// Value is the number sent to the server: 1, -1, or 0 for a withdrawn rating.
func (r Rating) Value() int {
	switch r {
	case Liked:
		return 1
	case Disliked:
		return -1
	default:
		return 0
	}
}

// Press returns the state after the like (Liked) or dislike (Disliked)
// button is pressed. Pressing the active button withdraws the rating.
func (r Rating) Press(button Rating) Rating {
	if button == Unrated || r == button {
		return Unrated
	}
	return button
}

// FeedbackChange is a speculative rating: applied locally before the server
// confirms it and reverted if the server refuses.
type FeedbackChange struct {
	MessageID string
	Content   string
	Prev      Rating
	Next      Rating

	prevValue *int
}

// Rate applies a button press to message id and returns the change to send.
func Rate(s *Store, id string, button Rating) (FeedbackChange, bool) {
	m, ok := s.Message(id)
	if !ok {
		s.logger.Debug("rating for unknown message", "message_id", id)
		return FeedbackChange{}, false
	}

	change := FeedbackChange{
		MessageID: id,
		Content:   m.Content,
		Prev:      RatingOf(m.Feedback),
	}
	if m.Feedback != nil {
		change.prevValue = models.IntPtr(*m.Feedback)
	}
	change.Next = change.Prev.Press(button)

	s.SetFeedback(id, models.IntPtr(change.Next.Value()))
	return change, true
}

// Revert restores the feedback the message had before the change.
func (c FeedbackChange) Revert(s *Store) {
	s.SetFeedback(c.MessageID, c.prevValue)
}
