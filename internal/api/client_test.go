package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/logging"
	"github.com/saravenpi/outreach/internal/mockapi"
	"github.com/saravenpi/outreach/internal/models"
)

func newAPI(t *testing.T) (*api.Client, models.User) {
	t.Helper()

	repo, err := mockapi.OpenRepo(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, mockapi.Seed(context.Background(), repo))

	srv := httptest.NewServer(mockapi.NewServer(repo, mockapi.NewTokens("secret", time.Hour), mockapi.WithLogger(logging.Discard())).Handler())
	t.Cleanup(srv.Close)

	anon := api.NewClient(srv.URL + "/api/")
	user, err := anon.Login(context.Background(), mockapi.DemoEmail, mockapi.DemoPassword)
	require.NoError(t, err)

	return api.NewClient(srv.URL+"/api", api.WithToken(user.Token), api.WithRateLimit(100)), user
}

func findChat(t *testing.T, c *api.Client, owner, client string) string {
	t.Helper()
	chats, err := c.ListChats(context.Background(), owner)
	require.NoError(t, err)
	for _, s := range chats {
		if s.Client == client {
			return s.ID
		}
	}
	t.Fatalf("chat for %s not listed", client)
	return ""
}

func TestLoginReturnsUser(t *testing.T) {
	_, user := newAPI(t)
	assert.Equal(t, mockapi.DemoEmail, user.Email)
	assert.Equal(t, mockapi.DemoName, user.Name)
	assert.True(t, user.IsAdmin())
	assert.True(t, user.GmailConnected)
	assert.NotEmpty(t, user.Token)
}

func TestLoginRejected(t *testing.T) {
	c, _ := newAPI(t)
	_, err := c.Login(context.Background(), mockapi.DemoEmail, "wrong")
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "Invalid email or password.", api.UserMessage(err))
}

func TestPaginationAgainstServer(t *testing.T) {
	c, user := newAPI(t)
	id := findChat(t, c, user.Name, "Ana Ruiz")
	ctx := context.Background()

	first, pg, err := c.GetChat(ctx, id, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, pg.TotalCount)
	require.Len(t, first.Messages, 10)
	assert.Len(t, first.Threads, 2)

	var all []models.Message
	all = append(all, first.Messages...)
	for page := 1; ; page++ {
		chat, _, err := c.GetChat(ctx, id, page, 10)
		require.NoError(t, err)
		if len(chat.Messages) == 0 {
			break
		}
		all = append(all, chat.Messages...)
	}
	require.Len(t, all, 25)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i].CreatedAt.Before(all[i-1].CreatedAt), "newest first across pages")
	}
}

func TestMessageRoundTrip(t *testing.T) {
	c, user := newAPI(t)
	id := findChat(t, c, user.Name, "Tom Becker")
	ctx := context.Background()

	reply, err := c.SendMessage(ctx, id, api.SendMessageRequest{
		ClientMessage: "What are your prices?",
		UseAI:         true,
		MessageType:   models.TypeHuman,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeAI, reply.Type)
	assert.Equal(t, models.FromAI, reply.MessageFrom)
	require.NotEmpty(t, reply.ID)

	require.NoError(t, c.EditMessage(ctx, reply.ID, "Our plans start at 49 EUR."))
	require.NoError(t, c.RateMessage(ctx, reply.ID, api.RateRequest{Value: 1, Message: "Our plans start at 49 EUR.", UserID: user.ID}))

	chat, pg, err := c.GetChat(ctx, id, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, pg.TotalCount)
	head := chat.Messages[0]
	assert.Equal(t, reply.ID, head.ID)
	assert.Equal(t, "Our plans start at 49 EUR.", head.Content)
	require.NotNil(t, head.Feedback)
	assert.Equal(t, 1, *head.Feedback)

	msg, err := c.SendEmail(ctx, user.Email, api.SendEmailRequest{
		RecipientEmail: "tom@northwind.example",
		MessageBody:    head.Content,
		ThreadID:       "t-1",
		MessageID:      head.ID,
		ChatID:         id,
	})
	require.NoError(t, err)
	assert.Equal(t, "Email sent to tom@northwind.example", msg)

	chat, _, err = c.GetChat(ctx, id, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, models.FromEmail, chat.Messages[0].MessageFrom)
}

func TestCanceledContext(t *testing.T) {
	c, _ := newAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListChats(ctx, "")
	assert.Error(t, err)
}
