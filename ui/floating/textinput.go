package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// TextInputOverlay is a floating window for text input
type TextInputOverlay struct {
	textInput textinput.Model
	title     string
	validate  func(string) error
	err       string
	width     int
	height    int
}

// NewTextInputOverlay creates a new floating text input window. validate,
// if set, is checked by Submit.
func NewTextInputOverlay(title, placeholder string, validate func(string) error) *TextInputOverlay {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &TextInputOverlay{
		textInput: ti,
		title:     title,
		validate:  validate,
	}
}

func (t *TextInputOverlay) Init() tea.Cmd {
	return textinput.Blink
}

func (t *TextInputOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	t.textInput, cmd = t.textInput.Update(msg)
	t.err = ""
	return t, cmd
}

// Submit returns the trimmed value when it is valid. Otherwise the error
// is shown in the window.
func (t *TextInputOverlay) Submit() (string, bool) {
	value := strings.TrimSpace(t.textInput.Value())
	if t.validate != nil {
		if err := t.validate(value); err != nil {
			t.err = err.Error()
			return "", false
		}
	}
	return value, true
}

func (t *TextInputOverlay) View() string {
	lines := []string{"", "  " + t.textInput.View(), ""}
	if t.err != "" {
		lines = append(lines, "  "+theme.ErrorStyle.Render(t.err))
	} else {
		lines = append(lines, theme.HelpDescStyle.Render("  enter create • esc cancel"))
	}

	b := dialog(t.title, t.width, t.height, 60, 8)
	return b.center(strings.Join(lines, "\n"), t.width, t.height)
}

func (t *TextInputOverlay) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.textInput.Width = max(min(50, width-12), 10)
}

func (t *TextInputOverlay) Value() string {
	return t.textInput.Value()
}
