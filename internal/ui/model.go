package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/obrolan/chatbot-api/internal/app/chat"
	"github.com/obrolan/chatbot-api/internal/domain"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1)
	userLabel     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	botLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	inputBarStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(lipgloss.Color("240"))
)

type keyMap struct {
	Send    key.Binding
	Topics  key.Binding
	NewChat key.Binding
	Delete  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "kirim")),
		Topics:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "riwayat")),
		NewChat: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "chat baru")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "hapus")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "kembali")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "keluar")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Topics, k.NewChat, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Topics, k.NewChat}, {k.Delete, k.Back, k.Quit}}
}

type topicItem struct {
	t *domain.Topic
}

func (i topicItem) Title() string {
	return runewidth.Truncate(i.t.Title, 32, "…")
}

func (i topicItem) Description() string {
	return fmt.Sprintf("%s | %d pesan", i.t.CreatedAt.Format("02 Jan 15:04"), len(i.t.Messages))
}

func (i topicItem) FilterValue() string {
	return strings.ToLower(i.t.Title)
}

type topicsLoadedMsg struct {
	topics  []*domain.Topic
	loadErr error
}

type turnDoneMsg struct {
	bot domain.Message
	err error
}

type persistedMsg struct {
	topics []*domain.Topic
	err    error
}

type Model struct {
	svc     *chat.Service
	store   domain.TopicStore
	session *chat.Session

	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	topicList list.Model
	help      help.Model
	keys      keyMap

	topics      []*domain.Topic
	sidebarOpen bool
	previewDir  string
	status      string

	width  int
	height int
	ready  bool
}

func NewModel(svc *chat.Service, store domain.TopicStore, session *chat.Session, previewDir string) Model {
	ti := textinput.New()
	ti.Placeholder = "Ketik pesan, atau /file <path> untuk melampirkan..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Recent"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return Model{
		svc:        svc,
		store:      store,
		session:    session,
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		topicList:  l,
		help:       help.New(),
		keys:       defaultKeyMap(),
		previewDir: previewDir,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTopicsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 6
		m.topicList.SetSize(msg.Width-4, msg.Height-4)
		m.ready = true
		m.refreshThread()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshThread()
		return m, cmd

	case topicsLoadedMsg:
		m.setTopics(msg.topics)
		if msg.loadErr != nil {
			// corrupt store resets to empty; tell the user, keep going
			m.status = "Riwayat tersimpan tidak terbaca, memulai dari kosong."
		}
		return m, nil

	case turnDoneMsg:
		m.session.EndTurn()
		if msg.err != nil {
			m.session.Append(domain.Message{
				ID:        domain.MessageID(domain.NewID()),
				Text:      chat.UserFacingMessage(msg.err),
				Author:    domain.RoleBot,
				CreatedAt: time.Now(),
			})
		} else {
			m.session.Append(msg.bot)
		}
		m.refreshThread()
		return m, m.persistCmd()

	case persistedMsg:
		if msg.err != nil {
			m.status = "Gagal menyimpan riwayat percakapan."
			return m, nil
		}
		m.setTopics(msg.topics)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.sidebarOpen {
			return m.updateSidebar(msg)
		}
		return m.updateChat(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Topics):
		m.sidebarOpen = true
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.session.Reset()
		m.status = ""
		m.refreshThread()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.submitTurn()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.topicList.FilterState() == list.Filtering

	switch {
	case key.Matches(msg, m.keys.Back) && !filtering:
		m.sidebarOpen = false
		return m, nil

	case key.Matches(msg, m.keys.Send) && !filtering:
		if it, ok := m.topicList.SelectedItem().(topicItem); ok {
			m.session.LoadTopic(it.t)
			m.sidebarOpen = false
			m.status = ""
			m.refreshThread()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete) && !filtering:
		if it, ok := m.topicList.SelectedItem().(topicItem); ok {
			if it.t.ID == m.session.TopicID() {
				m.session.Reset()
				m.refreshThread()
			}
			return m, m.deleteCmd(it.t.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.topicList, cmd = m.topicList.Update(msg)
	return m, cmd
}

func (m Model) submitTurn() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	text, attachPath := parseInput(raw)

	var att *domain.AttachmentRef
	if attachPath != "" {
		var err error
		att, err = buildAttachment(attachPath, m.previewDir)
		if err != nil {
			m.status = "File tidak bisa dilampirkan: " + attachPath
			return m, nil
		}
	}

	if strings.TrimSpace(text) == "" && att == nil {
		m.status = chat.UserFacingMessage(domain.ErrEmptyTurn)
		return m, nil
	}

	// single in-flight turn; rejected, not queued
	if !m.session.BeginTurn() {
		m.status = "Tunggu balasan sebelumnya selesai."
		return m, nil
	}

	history := m.session.Messages()

	m.session.Append(domain.Message{
		ID:         domain.MessageID(domain.NewID()),
		Text:       displayText(text, att),
		Author:     domain.RoleUser,
		CreatedAt:  time.Now(),
		Attachment: att,
	})

	m.input.Reset()
	m.status = ""
	m.refreshThread()

	in := chat.SubmitTurnInput{Text: text, Attachment: att, History: history}
	return m, tea.Batch(m.spinner.Tick, m.submitCmd(in))
}

// ─────────────────────────────────────────────
// Commands
// ─────────────────────────────────────────────

func (m Model) submitCmd(in chat.SubmitTurnInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.svc.SubmitTurn(context.Background(), in)
		if err != nil {
			return turnDoneMsg{err: err}
		}
		return turnDoneMsg{bot: out.BotMessage}
	}
}

func (m Model) loadTopicsCmd() tea.Cmd {
	return func() tea.Msg {
		topics, err := m.store.Load()
		return topicsLoadedMsg{topics: topics, loadErr: err}
	}
}

func (m *Model) persistCmd() tea.Cmd {
	if m.session.TopicID() == "" {
		m.session.SetTopicID(domain.TopicID(domain.NewID()))
	}
	snap := m.session.Snapshot()
	snap.CreatedAt = time.Now()

	return func() tea.Msg {
		topics, err := m.store.Upsert(snap)
		return persistedMsg{topics: topics, err: err}
	}
}

func (m Model) deleteCmd(id domain.TopicID) tea.Cmd {
	return func() tea.Msg {
		topics, err := m.store.Remove(id)
		return persistedMsg{topics: topics, err: err}
	}
}

// ─────────────────────────────────────────────
// Rendering
// ─────────────────────────────────────────────

func (m *Model) setTopics(topics []*domain.Topic) {
	m.topics = topics
	items := make([]list.Item, 0, len(topics))
	for _, t := range topics {
		items = append(items, topicItem{t: t})
	}
	m.topicList.SetItems(items)
}

func (m *Model) refreshThread() {
	m.viewport.SetContent(m.renderThread())
	m.viewport.GotoBottom()
}

func (m *Model) renderThread() string {
	msgs := m.session.Messages()
	if len(msgs) == 0 && !m.session.Busy() {
		return emptyStyle.Render("Mulai percakapan dengan mengetik pesan...")
	}

	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width)

	var blocks []string
	for _, msg := range msgs {
		label := botLabel.Render("ChatBot AI")
		if msg.Author == domain.RoleUser {
			label = userLabel.Render("Kamu")
		}
		blocks = append(blocks, label+"\n"+body.Render(msg.Text))
	}
	if m.session.Busy() {
		blocks = append(blocks, botLabel.Render("ChatBot AI")+"\n"+m.spinner.View()+" mengetik...")
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) View() string {
	if !m.ready {
		return "memuat..."
	}

	header := headerStyle.Render("ChatBot AI")

	if m.sidebarOpen {
		hint := statusStyle.Render("enter: buka | d: hapus | esc: kembali")
		return lipgloss.JoinVertical(lipgloss.Left, header, m.topicList.View(), hint)
	}

	status := ""
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		status,
		inputBarStyle.Width(m.width).Render(m.input.View()),
		m.help.View(m.keys),
	)
}

// Run starts the interactive program and blocks until it exits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
