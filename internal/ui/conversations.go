package ui

import (
	"fmt"
	"regexp"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saravenpi/outreach/internal/api"
	"github.com/saravenpi/outreach/internal/chat"
	"github.com/saravenpi/outreach/internal/models"
)

type chatItem struct {
	summary models.ChatSummary
	now     time.Time
}

type chatsFetchedMsg struct {
	chats []models.ChatSummary
	err   error
}

func (i chatItem) Title() string {
	title := i.summary.Client
	if chat.IsActive(i.summary.ID) {
		title = "● " + title
	}
	return title
}

func (i chatItem) Description() string {
	label := chat.ListLabel(lastUpdate(i.summary), i.now)
	if i.summary.Company == "" {
		return label
	}
	return fmt.Sprintf("%s • %s", i.summary.Company, label)
}

func (i chatItem) FilterValue() string {
	return i.summary.Client + " " + i.summary.Company
}

// lastUpdate is the later of the server's timestamp and any local activity
// recorded since the list was fetched.
func lastUpdate(s models.ChatSummary) time.Time {
	if t, ok := chat.TouchedAt(s.ID); ok && t.After(s.UpdatedAt) {
		return t
	}
	return s.UpdatedAt
}

// regexFilter matches the search term as a case-insensitive regular
// expression against client and company. A term that does not compile is
// matched literally.
func regexFilter(term string, targets []string) []list.Rank {
	re, err := regexp.Compile("(?i)" + term)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	}

	var ranks []list.Rank
	for i, target := range targets {
		loc := re.FindStringIndex(target)
		if loc == nil {
			continue
		}
		start := utf8.RuneCountInString(target[:loc[0]])
		n := utf8.RuneCountInString(target[loc[0]:loc[1]])
		matched := make([]int, n)
		for j := range matched {
			matched[j] = start + j
		}
		ranks = append(ranks, list.Rank{Index: i, MatchedIndexes: matched})
	}
	return ranks
}

// sortSummaries orders chats most recently updated first.
func sortSummaries(chats []models.ChatSummary) {
	sort.SliceStable(chats, func(i, j int) bool {
		return lastUpdate(chats[i]).After(lastUpdate(chats[j]))
	})
}

type ConversationsModel struct {
	app          *App
	chats        []models.ChatSummary
	list         list.Model
	loading      bool
	err          error
	spinner      spinner.Model
	windowWidth  int
	windowHeight int
}

func NewConversationsModel(app *App) ConversationsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Conversations"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Filter = regexFilter
	l.SetShowHelp(false)

	return ConversationsModel{
		app:          app,
		list:         l,
		loading:      true,
		spinner:      s,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m ConversationsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchChatsCmd())
}

func (m ConversationsModel) fetchChatsCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx, cancel := app.requestContext()
		defer cancel()
		owner := app.User.Name
		if app.User.IsAdmin() {
			owner = ""
		}
		chats, err := app.API.ListChats(ctx, owner)
		return chatsFetchedMsg{chats: chats, err: err}
	}
}

func (m *ConversationsModel) setItems() {
	sortSummaries(m.chats)
	now := m.app.Now()
	items := make([]list.Item, len(m.chats))
	for i, c := range m.chats {
		items[i] = chatItem{summary: c, now: now}
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Conversations - %d chats", len(m.chats))
}

func (m ConversationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.app.Width, m.app.Height = msg.Width, msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case chatsFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.app.Logger.Warn("list chats", "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.chats = msg.chats
		m.setItems()
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			return sized(m.app, NewMenuModel(m.app))
		case "r":
			if !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.fetchChatsCmd())
			}
			return m, nil
		case "enter":
			if m.loading || len(m.chats) == 0 {
				return m, nil
			}
			if item, ok := m.list.SelectedItem().(chatItem); ok {
				chat.SetActive(item.summary.ID)
				return sized(m.app, NewMessagesModel(m.app, item.summary))
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ConversationsModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading conversations...\n", m.spinner.View())
	}

	if m.err != nil {
		s := titleStyle.Render("Conversations") + "\n\n"
		s += errorStyle.Render(fmt.Sprintf("Error: %s", api.UserMessage(m.err))) + "\n\n"
		s += helpStyle.Render("r: retry • esc: back • q: quit")
		return s
	}

	if len(m.chats) == 0 {
		s := titleStyle.Render("Conversations") + "\n\n"
		s += normalStyle.Render("  No conversations found.") + "\n"
		s += "\n" + helpStyle.Render("r: refresh • esc: back • q: quit")
		return s
	}

	s := m.list.View() + "\n"
	s += helpStyle.Render("↑↓/jk: navigate • enter: open • /: search • r: refresh • esc: back • q: quit")

	return s
}
