package panels

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/ui/borders"
)

// Panel defines the interface for all panels
type Panel interface {
	tea.Model
	Title() string
	SetFocused(bool)
	IsFocused() bool
	SetSize(width, height int)
}

// BasePanel provides the frame, the cursor and the scrolling viewport
// shared by the list panels.
type BasePanel struct {
	title    string
	focused  bool
	width    int
	height   int
	cursor   int
	viewport viewport.Model
	ready    bool
}

// NewBasePanel creates a new base panel
func NewBasePanel(title string) BasePanel {
	return BasePanel{title: title}
}

func (b *BasePanel) Title() string {
	return b.title
}

func (b *BasePanel) SetFocused(focused bool) {
	b.focused = focused
}

func (b *BasePanel) IsFocused() bool {
	return b.focused
}

func (b *BasePanel) Cursor() int {
	return b.cursor
}

// ContentHeight returns the height inside the border
func (b *BasePanel) ContentHeight() int {
	return max(b.height-2, 0)
}

// ContentWidth returns the width inside the border
func (b *BasePanel) ContentWidth() int {
	return max(b.width-2, 0)
}

// RenderFrame renders the panel frame with title embedded in border
func (b *BasePanel) RenderFrame(content string) string {
	return borders.RenderTitledBorder(content, b.title, b.width, b.height, b.focused)
}

// resize sets the frame size and creates the viewport on first use.
func (b *BasePanel) resize(width, height int, content string) {
	b.width = width
	b.height = height
	if !b.ready {
		b.viewport = viewport.New(b.ContentWidth(), b.ContentHeight())
		b.ready = true
	} else {
		b.viewport.Width = b.ContentWidth()
		b.viewport.Height = b.ContentHeight()
	}
	b.viewport.SetContent(content)
	b.ensureCursorVisible()
}

func (b *BasePanel) setContent(content string) {
	if b.ready {
		b.viewport.SetContent(content)
	}
}

// view renders the viewport in the frame, or placeholder before the first
// resize.
func (b *BasePanel) view(placeholder string) string {
	if !b.ready {
		return b.RenderFrame(placeholder)
	}
	return b.RenderFrame(b.viewport.View())
}

// CursorUp moves the cursor up within bounds
func (b *BasePanel) CursorUp() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// CursorDown moves the cursor down within bounds
func (b *BasePanel) CursorDown(itemCount int) {
	if b.cursor < itemCount-1 {
		b.cursor++
	}
}

// CursorHome moves the cursor to the first item
func (b *BasePanel) CursorHome() {
	b.cursor = 0
}

// CursorEnd moves the cursor to the last item
func (b *BasePanel) CursorEnd(itemCount int) {
	if itemCount > 0 {
		b.cursor = itemCount - 1
	}
}

// clampCursor keeps the cursor on an item after the list changed.
func (b *BasePanel) clampCursor(itemCount int) {
	if b.cursor >= itemCount {
		b.cursor = max(itemCount-1, 0)
	}
}

// moveCursor handles the list movement keys. It reports whether key was
// one of them.
func (b *BasePanel) moveCursor(key string, itemCount int) bool {
	switch key {
	case "up", "k":
		b.CursorUp()
	case "down", "j":
		b.CursorDown(itemCount)
	case "g", "home":
		b.CursorHome()
	case "G", "end":
		b.CursorEnd(itemCount)
	case "ctrl+u", "pgup":
		b.cursor = max(b.cursor-b.viewport.Height/2, 0)
	case "ctrl+d", "pgdown":
		b.cursor = max(min(b.cursor+b.viewport.Height/2, itemCount-1), 0)
	default:
		return false
	}
	b.ensureCursorVisible()
	return true
}

// handleMouse moves the cursor to a clicked row or scrolls. It reports
// whether a row was clicked.
func (b *BasePanel) handleMouse(msg tea.MouseMsg, itemCount int) bool {
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return false
		}
		// 1 for the top border
		index := msg.Y - 1 + b.viewport.YOffset
		if index >= 0 && index < itemCount {
			b.cursor = index
			b.ensureCursorVisible()
			return true
		}
	case tea.MouseButtonWheelUp:
		b.viewport.LineUp(3)
	case tea.MouseButtonWheelDown:
		b.viewport.LineDown(3)
	}
	return false
}

func (b *BasePanel) ensureCursorVisible() {
	if !b.ready || b.viewport.Height <= 0 {
		return
	}
	if b.cursor < b.viewport.YOffset {
		b.viewport.SetYOffset(b.cursor)
	} else if b.cursor >= b.viewport.YOffset+b.viewport.Height {
		b.viewport.SetYOffset(b.cursor - b.viewport.Height + 1)
	}
}

// selected reports whether row i is the highlighted cursor row.
func (b *BasePanel) selected(i int) bool {
	return i == b.cursor && b.focused
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
