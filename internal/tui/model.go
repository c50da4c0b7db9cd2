package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/ragchat/internal/errors"
	"github.com/diogo/ragchat/internal/history"
	"github.com/diogo/ragchat/internal/models"
	"github.com/diogo/ragchat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// refreshMsg is sent whenever the session mutates its message list
	refreshMsg struct{}
	// doneMsg is sent when an exchange completes successfully
	doneMsg struct{}
	errMsg  struct {
		err error
	}
)

// SessionInterface defines the session operations needed by the TUI
type SessionInterface interface {
	Submit(query string, onUpdate func()) error
	Messages() []models.Message
	Loading() bool
	Streaming() bool
	LastAnswer() string
	SetMessages(messages []models.Message)
}

// HistoryStoreInterface defines the history operations needed by the TUI
type HistoryStoreInterface interface {
	SetMessages(id string, messages []models.Message) error
}

// Model represents the TUI state
type Model struct {
	session  SessionInterface
	endpoint string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading        bool
	ready          bool
	err            error
	animationFrame int
	events         chan tea.Msg

	// History/conversation state
	conversation *history.Conversation
	historyStore HistoryStoreInterface

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(session SessionInterface, endpoint string) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask the knowledge base..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:  session,
		endpoint: endpoint,
		textarea: ta,
		spinner:  s,
	}
}

// NewChatModelWithConversation creates a chat TUI model that persists the
// conversation to the given store
func NewChatModelWithConversation(session SessionInterface, endpoint string, conv *history.Conversation, store HistoryStoreInterface) Model {
	m := NewChatModel(session, endpoint)
	m.conversation = conv
	m.historyStore = store

	// Resume saved messages into the session
	if conv != nil && len(conv.Messages) > 0 {
		session.SetMessages(conv.Messages)
	}

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// waitForEvent returns a command that relays the next session event
func waitForEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.loading {
				return m, tea.Quit
			}

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
					return m, tea.Quit
				}

				m.loading = true
				m.err = nil
				m.animationFrame = 0
				m.textarea.Reset()

				return m, tea.Batch(
					m.submit(input),
					m.spinner.Tick,
					animationTick(),
				)
			}
		}

	case refreshMsg:
		m.updateViewport()
		m.viewport.GotoBottom()
		cmds = append(cmds, waitForEvent(m.events))

	case doneMsg:
		m.loading = false
		m.updateViewport()
		m.viewport.GotoBottom()
		m.saveConversation()

	case errMsg:
		m.loading = false
		m.err = msg.err
		// The session has already replaced the trailing bot message with
		// the apology text
		m.updateViewport()
		m.viewport.GotoBottom()
		m.saveConversation()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to the textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit starts the exchange in the background and wires its updates into
// the bubbletea event loop
func (m *Model) submit(query string) tea.Cmd {
	events := make(chan tea.Msg, 64)
	m.events = events

	session := m.session
	go func() {
		err := session.Submit(query, func() {
			// Coalesce refreshes: dropping one is fine, the next
			// update or the final message repaints everything
			select {
			case events <- refreshMsg{}:
			default:
			}
		})
		if err != nil {
			events <- errMsg{err: err}
			return
		}
		events <- doneMsg{}
	}()

	return waitForEvent(events)
}

// saveConversation persists the current messages when a store is attached
func (m *Model) saveConversation() {
	if m.historyStore == nil || m.conversation == nil {
		return
	}
	_ = m.historyStore.SetMessages(m.conversation.ID, m.session.Messages())
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ ragchat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.endpoint),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.session.Messages()) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error display
	if m.err != nil {
		sections = append(sections, m.formatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to ragchat")
	subtitle := welcomeStyle.Width(width).Render("Ask a question about your documents below")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	label := " Waiting for answer "
	if m.session.Streaming() {
		label = " Answer streaming in "
	}
	text := lipgloss.NewStyle().Foreground(colorText).Render(label)

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	messages := m.session.Messages()
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Sender == models.SenderUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := botLabelStyle.Render("✦ Assistant")
			content.WriteString(label + "\n")

			text := msg.Text
			if text == "" && m.loading && i == len(messages)-1 {
				text = "…"
			}

			rendered, err := render.MarkdownWithWidth(text, bubbleWidth-4)
			if err != nil {
				rendered = text
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := botBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// formatError formats an error with structured details for display
func (m Model) formatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(errorStyle.Render(fmt.Sprintf("⚠ Error: %v", err)))

	detailStyle := lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(2)

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render(fmt.Sprintf("HTTP Status: %d", status)))
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render("Endpoint: " + endpoint))
	}

	hint := lipgloss.NewStyle().Foreground(colorPrimary).PaddingLeft(2)
	switch {
	case apierrors.IsNetworkError(err):
		sb.WriteString("\n")
		sb.WriteString(hint.Render("💡 Check that the backend is running and reachable"))
	case apierrors.IsAPIError(err):
		sb.WriteString("\n")
		sb.WriteString(hint.Render("💡 The backend reported a failure. Try again"))
	case apierrors.IsContentTypeError(err):
		sb.WriteString("\n")
		sb.WriteString(hint.Render("💡 The endpoint did not answer like a ragchat backend. Check the configured URL"))
	}

	return sb.String()
}

// RunChat starts the chat TUI
func RunChat(session SessionInterface, endpoint string) error {
	m := NewChatModel(session, endpoint)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// RunChatWithConversation starts the chat TUI with history persistence
func RunChatWithConversation(session SessionInterface, endpoint string, conv *history.Conversation, store HistoryStoreInterface) error {
	m := NewChatModelWithConversation(session, endpoint, conv, store)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
