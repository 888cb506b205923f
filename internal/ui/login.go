package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/models"
)

var errMissingCredentials = errors.New("email and password are required")

type loggedInMsg struct {
	user models.User
	err  error
}

type LoginModel struct {
	app           *App
	emailInput    textinput.Model
	passwordInput textinput.Model
	spinner       spinner.Model
	focusIndex    int
	submitting    bool
	err           error
}

// NewLoginModel creates the sign-in form, prefilled with email when known.
func NewLoginModel(app *App, email string) LoginModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@company.com"
	emailInput.CharLimit = 254
	emailInput.Width = 50
	emailInput.SetValue(email)

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Password"
	passwordInput.CharLimit = 128
	passwordInput.Width = 50
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	m := LoginModel{
		app:           app,
		emailInput:    emailInput,
		passwordInput: passwordInput,
		spinner:       s,
	}
	if email != "" {
		m.focusIndex = 1
	}
	m.updateFocus()
	return m
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) updateFocus() {
	m.emailInput.Blur()
	m.passwordInput.Blur()
	if m.focusIndex == 0 {
		m.emailInput.Focus()
	} else {
		m.passwordInput.Focus()
	}
}

func (m LoginModel) loginCmd() tea.Cmd {
	app := m.app
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	return func() tea.Msg {
		if email == "" || password == "" {
			return loggedInMsg{err: errMissingCredentials}
		}
		ctx, cancel := app.requestContext()
		defer cancel()
		user, err := app.Auth.Login(ctx, email, password)
		return loggedInMsg{user: user, err: err}
	}
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.app.Width, m.app.Height = msg.Width, msg.Height
		return m, nil

	case loggedInMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.passwordInput.Reset()
			m.focusIndex = 1
			m.updateFocus()
			return m, nil
		}
		if m.app.Sessions != nil {
			if err := m.app.Sessions.Save(msg.user); err != nil {
				m.app.Logger.Warn("save session", "err", err)
			}
		}
		m.app.SignIn(msg.user)
		m.app.Logger.Info("signed in", "email", msg.user.Email, "role", msg.user.Role)
		return sized(m.app, NewMenuModel(m.app))

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focusIndex = 1 - m.focusIndex
			m.updateFocus()
			return m, nil
		case "enter":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.updateFocus()
				return m, nil
			}
			m.err = nil
			m.submitting = true
			return m, tea.Batch(m.spinner.Tick, m.loginCmd())
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	cmds = append(cmds, cmd)
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Outreach - Sign in") + "\n\n")

	blurredStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	renderInput := func(input textinput.Model, label string, focused bool) {
		style := blurredStyle
		if focused {
			style = selectedStyle
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(input.View() + "\n\n")
	}

	renderInput(m.emailInput, "Email:", m.focusIndex == 0)
	renderInput(m.passwordInput, "Password:", m.focusIndex == 1)

	if m.submitting {
		b.WriteString(fmt.Sprintf("%s Signing in...\n\n", m.spinner.View()))
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", api.UserMessage(m.err))) + "\n\n")
	}

	b.WriteString(helpStyle.Render("tab/↑↓: navigate • enter: sign in • esc: quit"))

	return b.String()
}
