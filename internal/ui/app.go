package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/config"
	"github.com/saravenpi/outreach/internal/models"
	"github.com/saravenpi/outreach/internal/session"
)

// Backend is the part of the platform API the screens use. *api.Client
// implements it.
type Backend interface {
	ListChats(ctx context.Context, salesOwner string) ([]models.ChatSummary, error)
	GetChat(ctx context.Context, chatID string, page, limit int) (models.Chat, models.Pagination, error)
	SendMessage(ctx context.Context, chatID string, req api.SendMessageRequest) (models.Message, error)
	EditMessage(ctx context.Context, messageID, content string) error
	RateMessage(ctx context.Context, messageID string, req api.RateRequest) error
	SendEmail(ctx context.Context, senderEmail string, req api.SendEmailRequest) (string, error)
}

// Authenticator exchanges credentials for a user.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.User, error)
}

// App is shared by every screen. Screens are values and are rebuilt on
// navigation; App carries what outlives them.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Sessions *session.Store
	User     models.User
	API      Backend
	Auth     Authenticator

	// Last known terminal size, handed to freshly built screens.
	Width  int
	Height int

	now func() time.Time
}

func NewApp(cfg config.Config, logger *slog.Logger, sessions *session.Store) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Width:    80,
		Height:   30,
		now:      time.Now,
	}
	a.Auth = api.NewClient(cfg.APIURL, a.clientOptions("")...)
	return a
}

func (a *App) clientOptions(token string) []api.Option {
	opts := []api.Option{
		api.WithTimeout(a.Config.HTTPTimeout),
		api.WithRateLimit(a.Config.RequestsPerSecond),
		api.WithLogger(a.Logger.With("component", "api")),
	}
	if token != "" {
		opts = append(opts, api.WithToken(token))
	}
	return opts
}

// SignIn makes user the current user and points the API at their token.
func (a *App) SignIn(user models.User) {
	a.User = user
	a.API = api.NewClient(a.Config.APIURL, a.clientOptions(user.Token)...)
}

// SignOut forgets the current user and removes the stored session.
func (a *App) SignOut() error {
	a.User = models.User{}
	a.API = nil
	if a.Sessions == nil {
		return nil
	}
	return a.Sessions.Clear()
}

// Now is the clock every screen reads.
func (a *App) Now() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

func (a *App) pageSize() int {
	if a.Config.PageSize > 0 {
		return a.Config.PageSize
	}
	return config.DefaultPageSize
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	timeout := a.Config.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// Start returns the first screen: the menu for a valid session, the login
// form otherwise.
func (a *App) Start() tea.Model {
	if a.Sessions != nil {
		user, err := a.Sessions.Load()
		if err == nil {
			a.SignIn(user)
			return NewMenuModel(a)
		}
		a.Logger.Info("no usable session", "err", err)
	}
	return NewLoginModel(a, "")
}

// sized feeds the last window size to a freshly built screen.
func sized(a *App, m tea.Model) (tea.Model, tea.Cmd) {
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: a.Width, Height: a.Height})
	return updated, tea.Batch(updated.Init(), cmd)
}
