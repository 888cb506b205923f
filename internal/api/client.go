package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/saravenpi/outreach/internal/models"
)

const defaultBurst = 5

// Client talks to the outreach platform API. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), defaultBurst) }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Inf, defaultBurst),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type SendMessageRequest struct {
	ClientMessage  string             `json:"client_message"`
	UseAI          bool               `json:"use_ai"`
	MessageType    models.MessageType `json:"message_type"`
	GenerateWithAI bool               `json:"generate_with_ai,omitempty"`
}

type EditMessageRequest struct {
	ClientMessage string `json:"client_message"`
}

type RateRequest struct {
	Value   int    `json:"value"`
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type SendEmailRequest struct {
	RecipientEmail string `json:"recipient_email"`
	MessageBody    string `json:"message_body"`
	Subject        string `json:"subject"`
	ThreadID       string `json:"thread_id"`
	MessageID      string `json:"message_id"`
	ChatID         string `json:"chat_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageEnvelope struct {
	Data MessageDTO `json:"data"`
}

type chatListEnvelope struct {
	Data []ChatSummaryDTO `json:"data"`
}

type statusEnvelope struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a user record carrying a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return models.User{}, err
	}
	return resp.User(), nil
}

// ListChats returns the conversations owned by salesOwner.
func (c *Client) ListChats(ctx context.Context, salesOwner string) ([]models.ChatSummary, error) {
	query := url.Values{}
	query.Set("sales_owner", salesOwner)

	var resp chatListEnvelope
	if err := c.do(ctx, http.MethodGet, "/chat/list", query, nil, &resp); err != nil {
		return nil, err
	}

	chats := make([]models.ChatSummary, 0, len(resp.Data))
	for _, s := range resp.Data {
		chats = append(chats, s.Model())
	}
	return chats, nil
}

// GetChat fetches one page of a conversation. page counts pages, not messages;
// messages within the page are newest first.
func (c *Client) GetChat(ctx context.Context, chatID string, page, limit int) (models.Chat, models.Pagination, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp ChatPage
	if err := c.do(ctx, http.MethodGet, "/chat/"+url.PathEscape(chatID), query, nil, &resp); err != nil {
		return models.Chat{}, models.Pagination{}, err
	}

	return resp.Data.Model(), models.Pagination{
		Offset:     resp.Pagination.Offset,
		TotalCount: resp.Pagination.TotalCount,
	}, nil
}

// SendMessage posts a message and returns the record the server produced: the
// AI reply when one was requested, otherwise the stored message itself.
func (c *Client) SendMessage(ctx context.Context, chatID string, req SendMessageRequest) (models.Message, error) {
	var resp messageEnvelope
	if err := c.do(ctx, http.MethodPost, "/chat/"+url.PathEscape(chatID), nil, req, &resp); err != nil {
		return models.Message{}, err
	}
	return resp.Data.Model(), nil
}

func (c *Client) EditMessage(ctx context.Context, messageID, content string) error {
	return c.do(ctx, http.MethodPatch, "/chat/"+url.PathEscape(messageID), nil, EditMessageRequest{ClientMessage: content}, nil)
}

func (c *Client) RateMessage(ctx context.Context, messageID string, req RateRequest) error {
	return c.do(ctx, http.MethodPost, "/chat/"+url.PathEscape(messageID)+"/rate", nil, req, nil)
}

// SendEmail sends body through the sender's connected Gmail account and
// returns the server's confirmation text.
func (c *Client) SendEmail(ctx context.Context, senderEmail string, req SendEmailRequest) (string, error) {
	var resp statusEnvelope
	if err := c.do(ctx, http.MethodPost, "/gmail/send/"+url.PathEscape(senderEmail), nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "err", err)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Body: string(respBody)}
		var env statusEnvelope
		if json.Unmarshal(respBody, &env) == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
