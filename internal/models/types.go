package models

import "time"

// MessageType is the conversational role of a message.
type MessageType string

const (
	TypeHuman MessageType = "human"
	TypeAI    MessageType = "ai"
)

// MessageFrom is the channel a message came from. It is independent of
// MessageType: a human-typed message may still carry FromAI.
type MessageFrom string

const (
	FromEmail    MessageFrom = "email"
	FromAI       MessageFrom = "ai"
	FromLinkedIn MessageFrom = "linkedin"
	FromHuman    MessageFrom = "human"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

type Message struct {
	ID          string
	LocalID     string
	Type        MessageType
	Content     string
	MessageFrom MessageFrom
	Feedback    *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key identifies a message in a rendered list whether or not the server has
// confirmed it yet.
func (m Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.LocalID
}

func (m Message) IsHuman() bool {
	return m.Type == TypeHuman
}

type Thread struct {
	ThreadID    string
	Subject     string
	ClientEmail string
}

type Chat struct {
	ID              string
	Client          string
	Company         string
	SalesOwner      string
	LinkedInProfile string
	Messages        []Message
	Threads         []Thread
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ChatSummary is a conversation as listed in the sidebar.
type ChatSummary struct {
	ID        string
	Client    string
	Company   string
	UpdatedAt time.Time
}

type Pagination struct {
	Offset     int
	TotalCount int
}

type User struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Email          string    `yaml:"email"`
	Token          string    `yaml:"token"`
	Role           Role      `yaml:"role"`
	GmailConnected bool      `yaml:"gmail_connected"`
	ExpiresAt      time.Time `yaml:"expires_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IntPtr is a helper for optional feedback values.
func IntPtr(v int) *int {
	return &v
}
