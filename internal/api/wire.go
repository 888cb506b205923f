package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/saravenpi/outreach/internal/models"
)

// ObjectID decodes ids sent either as a plain string or as {"$oid": "..."}.
type ObjectID string

func (o ObjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"$oid": string(o)})
}

func (o *ObjectID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = ObjectID(s)
		return nil
	}

	var wrapped struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("failed to decode object id: %w", err)
	}
	*o = ObjectID(wrapped.OID)
	return nil
}

// Date decodes timestamps sent as an RFC3339 string, {"$date": "<RFC3339>"},
// {"$date": <millis>} or {"$date": {"$numberLong": "<millis>"}}.
type Date time.Time

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"$date": time.Time(d).UTC().Format(time.RFC3339Nano)})
}

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		t, err := parseTimeString(data)
		if err != nil {
			return err
		}
		*d = Date(t)
		return nil
	}

	var wrapped struct {
		Date json.RawMessage `json:"$date"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("failed to decode date: %w", err)
	}
	raw := bytes.TrimSpace(wrapped.Date)
	if len(raw) == 0 {
		*d = Date{}
		return nil
	}

	switch raw[0] {
	case '"':
		t, err := parseTimeString(raw)
		if err != nil {
			return err
		}
		*d = Date(t)
	case '{':
		var long struct {
			NumberLong string `json:"$numberLong"`
		}
		if err := json.Unmarshal(raw, &long); err != nil {
			return fmt.Errorf("failed to decode date: %w", err)
		}
		ms, err := strconv.ParseInt(long.NumberLong, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to decode date: %w", err)
		}
		*d = Date(time.UnixMilli(ms))
	default:
		var ms int64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return fmt.Errorf("failed to decode date: %w", err)
		}
		*d = Date(time.UnixMilli(ms))
	}
	return nil
}

func parseTimeString(data []byte) (time.Time, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

type MessageDTO struct {
	ID          ObjectID `json:"_id,omitempty"`
	Type        string   `json:"type"`
	Content     string   `json:"content"`
	Feedback    *int     `json:"feedback,omitempty"`
	MessageFrom string   `json:"message_from"`
	CreatedAt   Date     `json:"createdAt"`
	UpdatedAt   Date     `json:"updatedAt"`
}

type ThreadDTO struct {
	ThreadID    string `json:"thread_id"`
	Subject     string `json:"subject"`
	ClientEmail string `json:"client_email"`
}

type ChatDTO struct {
	ID              ObjectID     `json:"_id"`
	Client          string       `json:"client"`
	Company         string       `json:"company"`
	SalesOwner      string       `json:"sales_owner"`
	LinkedInProfile string       `json:"linkedin_profile,omitempty"`
	Messages        []MessageDTO `json:"messages"`
	Threads         []ThreadDTO  `json:"threads,omitempty"`
	CreatedAt       Date         `json:"createdAt"`
	UpdatedAt       Date         `json:"updatedAt"`
}

type ChatSummaryDTO struct {
	ID        ObjectID `json:"_id"`
	Client    string   `json:"client"`
	Company   string   `json:"company"`
	UpdatedAt Date     `json:"updatedAt"`
}

type PaginationDTO struct {
	Offset     int `json:"offset"`
	TotalCount int `json:"total_count"`
}

type ChatPage struct {
	Data       ChatDTO       `json:"data"`
	Pagination PaginationDTO `json:"pagination"`
}

type LoginResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Token            string `json:"token"`
	Role             string `json:"role"`
	IsGmailConnected bool   `json:"is_gmail_connected"`
}

func (m MessageDTO) Model() models.Message {
	msg := models.Message{
		ID:          string(m.ID),
		Type:        models.MessageType(m.Type),
		Content:     m.Content,
		MessageFrom: models.MessageFrom(m.MessageFrom),
		CreatedAt:   m.CreatedAt.Time(),
		UpdatedAt:   m.UpdatedAt.Time(),
	}
	if m.Feedback != nil {
		msg.Feedback = models.IntPtr(*m.Feedback)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = msg.UpdatedAt
	}
	return msg
}

func MessageFromModel(m models.Message) MessageDTO {
	dto := MessageDTO{
		ID:          ObjectID(m.ID),
		Type:        string(m.Type),
		Content:     m.Content,
		MessageFrom: string(m.MessageFrom),
		CreatedAt:   Date(m.CreatedAt),
		UpdatedAt:   Date(m.UpdatedAt),
	}
	if m.Feedback != nil {
		dto.Feedback = models.IntPtr(*m.Feedback)
	}
	return dto
}

func (c ChatDTO) Model() models.Chat {
	chat := models.Chat{
		ID:              string(c.ID),
		Client:          c.Client,
		Company:         c.Company,
		SalesOwner:      c.SalesOwner,
		LinkedInProfile: c.LinkedInProfile,
		CreatedAt:       c.CreatedAt.Time(),
		UpdatedAt:       c.UpdatedAt.Time(),
		Messages:        make([]models.Message, 0, len(c.Messages)),
	}
	for _, m := range c.Messages {
		chat.Messages = append(chat.Messages, m.Model())
	}
	for _, t := range c.Threads {
		chat.Threads = append(chat.Threads, models.Thread{
			ThreadID:    t.ThreadID,
			Subject:     t.Subject,
			ClientEmail: t.ClientEmail,
		})
	}
	return chat
}

func ChatFromModel(c models.Chat) ChatDTO {
	dto := ChatDTO{
		ID:              ObjectID(c.ID),
		Client:          c.Client,
		Company:         c.Company,
		SalesOwner:      c.SalesOwner,
		LinkedInProfile: c.LinkedInProfile,
		CreatedAt:       Date(c.CreatedAt),
		UpdatedAt:       Date(c.UpdatedAt),
		Messages:        make([]MessageDTO, 0, len(c.Messages)),
	}
	for _, m := range c.Messages {
		dto.Messages = append(dto.Messages, MessageFromModel(m))
	}
	for _, t := range c.Threads {
		dto.Threads = append(dto.Threads, ThreadDTO{
			ThreadID:    t.ThreadID,
			Subject:     t.Subject,
			ClientEmail: t.ClientEmail,
		})
	}
	return dto
}

func (s ChatSummaryDTO) Model() models.ChatSummary {
	return models.ChatSummary{
		ID:        string(s.ID),
		Client:    s.Client,
		Company:   s.Company,
		UpdatedAt: s.UpdatedAt.Time(),
	}
}

func (l LoginResponse) User() models.User {
	return models.User{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Token:          l.Token,
		Role:           models.Role(l.Role),
		GmailConnected: l.IsGmailConnected,
	}
}

func SummaryFromModel(s models.ChatSummary) ChatSummaryDTO {
	return ChatSummaryDTO{
		ID:        ObjectID(s.ID),
		Client:    s.Client,
		Company:   s.Company,
		UpdatedAt: Date(s.UpdatedAt),
	}
}

func LoginResponseFromModel(u models.User) LoginResponse {
	return LoginResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Token:            u.Token,
		Role:             string(u.Role),
		IsGmailConnected: u.GmailConnected,
	}
}
