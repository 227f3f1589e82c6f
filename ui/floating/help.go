package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// HelpOverlay is a floating window showing help information
type HelpOverlay struct {
	viewport viewport.Model
	help     help.Model
	keymap   help.KeyMap
	width    int
	height   int
	ready    bool
}

// NewHelpOverlay creates a new floating help window
func NewHelpOverlay(keymap help.KeyMap) *HelpOverlay {
	h := help.New()
	h.ShowAll = true
	return &HelpOverlay{
		help:   h,
		keymap: keymap,
	}
}

func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			h.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			h.viewport.LineDown(3)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.LineUp(1)
		case "down", "j":
			h.viewport.LineDown(1)
		case "pgup", "ctrl+u":
			h.viewport.HalfViewUp()
		case "pgdown", "ctrl+d":
			h.viewport.HalfViewDown()
		case "g", "home":
			h.viewport.GotoTop()
		case "G", "end":
			h.viewport.GotoBottom()
		}
	}
	return h, nil
}

func (h *HelpOverlay) View() string {
	b := box{title: "Help", width: h.width, height: h.height, color: theme.ColorBlue}
	if !h.ready {
		return b.frame("Initializing...")
	}
	return b.frame(h.viewport.View())
}

func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height

	contentWidth := max(width-2, 0)
	contentHeight := max(height-2, 0)

	if !h.ready {
		h.viewport = viewport.New(contentWidth, contentHeight)
		h.ready = true
	} else {
		h.viewport.Width = contentWidth
		h.viewport.Height = contentHeight
	}
	h.viewport.SetContent(h.renderHelp())
}

func (h *HelpOverlay) renderHelp() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow).MarginTop(1)
	text := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	h.help.Width = h.viewport.Width
	sections := []string{
		lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render("repobrowse"),
		text.Render("Browse the repositories of a git server: commits, diffs and files."),
		"",
		h.help.View(h.keymap),
		heading.Render("Panels"),
		text.Render("• 1 Repositories: repositories on the server, / filters, n creates, d deletes\n" +
			"• 2 Commits: commit log of the selected repository, newest first\n" +
			"• 3 Files: directory tree of the selected commit, .. goes up\n" +
			"• 0 View: diff of the selected commit, or the open file"),
		heading.Render("Commits"),
		text.Render("• y copies the commit id to the clipboard\n" +
			"• m shows the full commit message"),
		heading.Render("Loading"),
		text.Render("• Nothing is retried automatically; press r to reload\n" +
			"• Press esc or ? to close overlays"),
	}
	return strings.Join(sections, "\n")
}
