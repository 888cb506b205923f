package mockapi

import (
	"context"
	"fmt"
	"time"

	"github.com/saravenpi/outreach/internal/models"
)

const (
	DemoEmail    = "demo@outreach.dev"
	DemoPassword = "outreach"
	DemoName     = "Dana Scott"
)

var clientLines = []string{
	"Hi, I saw your post about pipeline automation. What does it cost?",
	"We are a team of twelve, mostly inbound leads.",
	"Does it integrate with HubSpot?",
	"Can you send over a case study?",
	"Thursday afternoon works for me.",
}

// Seed fills an empty database with a demo user and a few conversations.
// It does nothing when users already exist.
func Seed(ctx context.Context, r *Repo) error {
	if _, err := r.UserByEmail(ctx, DemoEmail); err == nil {
		return nil
	}

	hash, err := HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	owner, err := r.CreateUser(ctx, models.User{
		Name:           DemoName,
		Email:          DemoEmail,
		Role:           models.RoleAdmin,
		GmailConnected: true,
	}, hash)
	if err != nil {
		return err
	}

	now := r.now()
	chats := []models.Chat{
		{
			Client:          "Ana Ruiz",
			Company:         "Acme Logistics",
			SalesOwner:      owner.Name,
			LinkedInProfile: "https://www.linkedin.com/in/ana-ruiz",
			Threads: []models.Thread{
				{ThreadID: "thread-acme-1", Subject: "Pipeline automation", ClientEmail: "ana@acme.example"},
				{ThreadID: "thread-acme-2", Subject: "Case study", ClientEmail: "ana@acme.example"},
			},
			Messages: conversation(now.Add(-72*time.Hour), 25),
		},
		{
			Client:     "Tom Becker",
			Company:    "Northwind",
			SalesOwner: owner.Name,
			Messages:   conversation(now.Add(-26*time.Hour), 4),
		},
		{
			Client:     "Lea Martin",
			Company:    "Globex",
			SalesOwner: owner.Name,
		},
	}

	for _, c := range chats {
		if len(c.Messages) > 0 {
			c.UpdatedAt = c.Messages[len(c.Messages)-1].CreatedAt
		}
		if _, err := r.CreateChat(ctx, c); err != nil {
			return fmt.Errorf("failed to seed chat %s: %w", c.Client, err)
		}
	}
	return nil
}

// conversation alternates client and AI turns, oldest first, 35 minutes apart.
func conversation(start time.Time, n int) []models.Message {
	out := make([]models.Message, 0, n)
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * 35 * time.Minute)
		m := models.Message{CreatedAt: at, UpdatedAt: at}
		if i%2 == 0 {
			m.Type = models.TypeHuman
			m.MessageFrom = models.FromHuman
			m.Content = clientLines[(i/2)%len(clientLines)]
		} else {
			m.Type = models.TypeAI
			m.MessageFrom = models.FromAI
			if i%5 == 0 {
				m.MessageFrom = models.FromLinkedIn
			}
			m.Content = fmt.Sprintf("Thanks for the question. Here is answer number %d with the details you asked for.", i/2+1)
		}
		out = append(out, m)
	}
	return out
}
