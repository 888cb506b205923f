package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	menuConversations = "💬 Conversations"
	menuLogout        = "🔓 Log out"
)

type menuItem struct {
	title string
	desc  string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

type MenuModel struct {
	app          *App
	list         list.Model
	err          error
	windowWidth  int
	windowHeight int
}

// NewMenuModel creates the main menu shown after sign-in.
func NewMenuModel(app *App) MenuModel {
	items := []list.Item{
		menuItem{title: menuConversations, desc: "Open a client conversation"},
		menuItem{title: menuLogout, desc: "Sign out of " + app.User.Email},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New(items, delegate, 80, 14)
	l.Title = "Outreach"
	if app.User.Name != "" {
		l.Title = "Outreach - " + app.User.Name
	}
	if !app.User.GmailConnected {
		l.Title += " (Gmail not connected)"
	}
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return MenuModel{
		app:          app,
		list:         l,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.app.Width, m.app.Height = msg.Width, msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

		if msg.String() == "enter" {
			selectedItem, ok := m.list.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}

			switch selectedItem.title {
			case menuConversations:
				return sized(m.app, NewConversationsModel(m.app))
			case menuLogout:
				email := m.app.User.Email
				if err := m.app.SignOut(); err != nil {
					m.err = err
					return m, nil
				}
				m.app.Logger.Info("signed out", "email", email)
				return sized(m.app, NewLoginModel(m.app, email))
			}
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	s := m.list.View() + "\n"
	if m.err != nil {
		s += errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	s += helpStyle.Render("↑↓/jk: navigate • enter: select • q: quit")
	return s
}
