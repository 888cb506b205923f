// Package mockapi is a local stand-in for the outreach platform API. It keeps
// its data in SQLite and answers AI requests with canned text.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/models"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Replier produces the AI turn for prompt in chat c.
type Replier func(c models.Chat, prompt string) string

// CannedReply is the default Replier.
func CannedReply(c models.Chat, prompt string) string {
	name := c.Client
	if name == "" {
		name = "there"
	}
	topic := strings.TrimSpace(prompt)
	if len(topic) > 60 {
		topic = topic[:60] + "..."
	}
	return "Hi " + name + ", thanks for your message (\"" + topic + "\"). " +
		"I'd be glad to walk you through how we can help" + companySuffix(c.Company) +
		". Would a short call this week work for you?"
}

func companySuffix(company string) string {
	if company == "" {
		return ""
	}
	return " at " + company
}

type Server struct {
	repo   *Repo
	tokens *Tokens
	reply  Replier
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Server)

func WithReplier(r Replier) Option {
	return func(s *Server) { s.reply = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func NewServer(repo *Repo, tokens *Tokens, opts ...Option) *Server {
	s := &Server{
		repo:   repo,
		tokens: tokens,
		reply:  CannedReply,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler serves the API under /api.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(s.requestLogger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/chat/list", s.handleListChats)
			r.Get("/chat/{id}", s.handleGetChat)
			r.Post("/chat/{id}", s.handleSendMessage)
			r.Patch("/chat/{id}", s.handleEditMessage)
			r.Post("/chat/{id}/rate", s.handleRateMessage)
			r.Post("/gmail/send/{email}", s.handleSendEmail)
		})
	})
	return router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := s.tokens.Validate(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Session expired, please log in again.")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func (s *Server) respondRepoError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, what+" not found")
		return
	}
	s.logger.Error("repository error", "err", err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	rec, err := s.repo.userByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.respondRepoError(w, err, "User")
		return
	}
	if err != nil || !checkPassword(rec.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	user := rec.User
	user.Token, err = s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("failed to issue token", "err", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, api.LoginResponseFromModel(user))
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := s.repo.ListChats(r.Context(), r.URL.Query().Get("sales_owner"))
	if err != nil {
		s.respondRepoError(w, err, "Chat")
		return
	}
	data := make([]api.ChatSummaryDTO, 0, len(chats))
	for _, c := range chats {
		data = append(data, api.SummaryFromModel(c))
	}
	respondJSON(w, http.StatusOK, map[string]any{"data": data})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
		return v
	}
	return def
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", defaultLimit)
	if limit == 0 || limit > maxLimit {
		limit = defaultLimit
	}

	c, total, err := s.repo.Chat(r.Context(), chi.URLParam(r, "id"), page, limit)
	if err != nil {
		s.respondRepoError(w, err, "Chat")
		return
	}
	respondJSON(w, http.StatusOK, api.ChatPage{
		Data:       api.ChatFromModel(c),
		Pagination: api.PaginationDTO{Offset: page, TotalCount: total},
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")

	var req api.SendMessageRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.ClientMessage) == "" {
		respondError(w, http.StatusBadRequest, "Message is required.")
		return
	}

	ctx := r.Context()
	c, _, err := s.repo.Chat(ctx, chatID, 0, 1)
	if err != nil {
		s.respondRepoError(w, err, "Chat")
		return
	}

	if !req.UseAI {
		typ := req.MessageType
		if typ != models.TypeAI {
			typ = models.TypeHuman
		}
		stored, err := s.repo.AddMessage(ctx, chatID, models.Message{
			Type:        typ,
			Content:     req.ClientMessage,
			MessageFrom: models.FromHuman,
			CreatedAt:   s.now(),
		})
		if err != nil {
			s.respondRepoError(w, err, "Chat")
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"data": api.MessageFromModel(stored)})
		return
	}

	if !req.GenerateWithAI {
		if _, err := s.repo.AddMessage(ctx, chatID, models.Message{
			Type:        models.TypeHuman,
			Content:     req.ClientMessage,
			MessageFrom: models.FromHuman,
			CreatedAt:   s.now(),
		}); err != nil {
			s.respondRepoError(w, err, "Chat")
			return
		}
	}

	reply, err := s.repo.AddMessage(ctx, chatID, models.Message{
		Type:        models.TypeAI,
		Content:     s.reply(c, req.ClientMessage),
		MessageFrom: models.FromAI,
		CreatedAt:   s.now(),
	})
	if err != nil {
		s.respondRepoError(w, err, "Chat")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"data": api.MessageFromModel(reply)})
}

func (s *Server) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	var req api.EditMessageRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.ClientMessage) == "" {
		respondError(w, http.StatusBadRequest, "Message is required.")
		return
	}
	if err := s.repo.UpdateContent(r.Context(), chi.URLParam(r, "id"), req.ClientMessage, ""); err != nil {
		s.respondRepoError(w, err, "Message")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Message updated"})
}

func (s *Server) handleRateMessage(w http.ResponseWriter, r *http.Request) {
	var req api.RateRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value < -1 || req.Value > 1 {
		respondError(w, http.StatusBadRequest, "Rating must be -1, 0 or 1.")
		return
	}
	if err := s.repo.SetFeedback(r.Context(), chi.URLParam(r, "id"), req.Value); err != nil {
		s.respondRepoError(w, err, "Message")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Feedback saved"})
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req api.SendEmailRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	switch {
	case strings.TrimSpace(req.MessageBody) == "":
		respondError(w, http.StatusBadRequest, "Please enter a message.")
		return
	case req.ThreadID == "":
		respondError(w, http.StatusBadRequest, "Email chat has not been initiated.")
		return
	case req.RecipientEmail == "":
		respondError(w, http.StatusBadRequest, "Client email is unavailable.")
		return
	}

	ctx := r.Context()
	sender, err := s.repo.UserByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		s.respondRepoError(w, err, "User")
		return
	}
	if !sender.GmailConnected {
		respondError(w, http.StatusBadRequest, "Gmail account is not connected.")
		return
	}

	if err := s.repo.UpdateContent(ctx, req.MessageID, req.MessageBody, models.FromEmail); err != nil {
		s.respondRepoError(w, err, "Message")
		return
	}
	if req.ChatID != "" {
		if err := s.repo.TouchChat(ctx, req.ChatID, s.now()); err != nil {
			s.logger.Warn("failed to touch chat", "chat_id", req.ChatID, "err", err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email sent to " + req.RecipientEmail})
}
