package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/ui/prefix"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// MessageOverlay shows the full message of one commit
type MessageOverlay struct {
	commit   app.CommitSummary
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewMessageOverlay creates the overlay for commit
func NewMessageOverlay(commit app.CommitSummary) *MessageOverlay {
	return &MessageOverlay{commit: commit}
}

func (m *MessageOverlay) Init() tea.Cmd {
	return nil
}

func (m *MessageOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			m.viewport.LineDown(3)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.viewport.LineUp(1)
		case "down", "j":
			m.viewport.LineDown(1)
		case "pgup", "ctrl+u":
			m.viewport.HalfViewUp()
		case "pgdown", "ctrl+d":
			m.viewport.HalfViewDown()
		}
	}
	return m, nil
}

func (m *MessageOverlay) View() string {
	b := m.box()
	if !m.ready {
		return b.center("Initializing...", m.width, m.height)
	}
	return b.center(m.viewport.View(), m.width, m.height)
}

func (m *MessageOverlay) box() box {
	return dialog("Commit "+prefix.NewIDSet([]string{m.commit.SHA1}).Short(m.commit.SHA1), m.width, m.height, 80, m.height-4)
}

func (m *MessageOverlay) SetSize(width, height int) {
	m.width = width
	m.height = height

	b := m.box()
	contentWidth := max(b.width-4, 0)
	contentHeight := max(b.height-2, 0)

	if !m.ready {
		m.viewport = viewport.New(contentWidth, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = contentHeight
	}
	m.viewport.SetContent(m.render(contentWidth))
}

func (m *MessageOverlay) render(width int) string {
	lines := []string{
		theme.SHAPrefixStyle.Render(m.commit.SHA1),
		"",
		theme.SummaryStyle.Bold(true).Render(m.commit.Summary),
	}
	for _, line := range wrapText(m.commit.Body, width) {
		lines = append(lines, theme.NormalItemStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

// Commit returns the commit shown.
func (m *MessageOverlay) Commit() app.CommitSummary {
	return m.commit
}
