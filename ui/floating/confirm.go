package floating

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// ConfirmOverlay is a floating Yes/No confirmation dialog
type ConfirmOverlay struct {
	title    string
	message  string
	subject  string // what the confirmation is about, e.g. a repository name
	width    int
	height   int
	selected int // 0 = Yes, 1 = No
}

// NewConfirmOverlay creates a new confirmation dialog about subject
func NewConfirmOverlay(title, message, subject string) *ConfirmOverlay {
	return &ConfirmOverlay{
		title:    title,
		message:  message,
		subject:  subject,
		selected: 1, // No
	}
}

// NewDeleteRepositoryOverlay asks before deleting a repository.
func NewDeleteRepositoryOverlay(name string) *ConfirmOverlay {
	return NewConfirmOverlay("Delete repository", "Delete repository "+name+"? This cannot be undone.", name)
}

func (c *ConfirmOverlay) Init() tea.Cmd {
	return nil
}

func (c *ConfirmOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "h", "y", "Y":
			c.selected = 0
		case "right", "l", "n", "N":
			c.selected = 1
		case "tab":
			c.selected = (c.selected + 1) % 2
		}
	}
	return c, nil
}

func (c *ConfirmOverlay) View() string {
	yesStyle := theme.HelpDescStyle
	noStyle := theme.HelpDescStyle
	if c.selected == 0 {
		yesStyle = theme.SelectedItemStyle
	} else {
		noStyle = theme.SelectedItemStyle
	}

	b := dialog(c.title, c.width, c.height, 60, 9)
	lines := []string{""}
	for _, line := range wrapText(c.message, b.width-6) {
		lines = append(lines, "  "+line)
	}
	lines = append(lines, "", "        "+yesStyle.Render("[ Yes ]")+"    "+noStyle.Render("[ No ]"))
	return b.center(strings.Join(lines, "\n"), c.width, c.height)
}

func (c *ConfirmOverlay) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Confirmed returns true if Yes is selected
func (c *ConfirmOverlay) Confirmed() bool {
	return c.selected == 0
}

// Subject returns what is being confirmed.
func (c *ConfirmOverlay) Subject() string {
	return c.subject
}
