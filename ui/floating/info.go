package floating

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// InfoOverlay is a floating information/error dialog with OK button
type InfoOverlay struct {
	title   string
	message string
	width   int
	height  int
}

// NewInfoOverlay creates a new information dialog
func NewInfoOverlay(title, message string) *InfoOverlay {
	return &InfoOverlay{
		title:   title,
		message: message,
	}
}

func (i *InfoOverlay) Init() tea.Cmd {
	return nil
}

// Update does nothing; any key closes the dialog and that is up to the
// caller.
func (i *InfoOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return i, nil
}

func (i *InfoOverlay) View() string {
	b := dialog(i.title, i.width, i.height, 60, 12)

	lines := []string{""}
	for _, line := range wrapText(i.message, b.width-6) {
		lines = append(lines, "  "+line)
	}
	lines = append(lines, "", "        "+theme.SelectedItemStyle.Render("[ OK ]"))
	return b.center(strings.Join(lines, "\n"), i.width, i.height)
}

func (i *InfoOverlay) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// Message returns the text shown.
func (i *InfoOverlay) Message() string {
	return i.message
}
