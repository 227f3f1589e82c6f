package panels

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/ui/borders"
	"github.com/gerunddev/repobrowse/ui/messages"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// FilesPanel browses the directory tree of the selected commit
type FilesPanel struct {
	BasePanel
	nav     app.Navigation
	entries []app.Entry
	err     error
}

// NewFilesPanel creates a new files panel
func NewFilesPanel() *FilesPanel {
	return &FilesPanel{
		BasePanel: NewBasePanel("3 Files"),
	}
}

// SetNavigation shows the browser state. The cursor returns to the top
// whenever the folder changes.
func (p *FilesPanel) SetNavigation(nav app.Navigation) {
	if nav.Token() != p.nav.Token() || !slices.Equal(nav.Path(), p.nav.Path()) {
		p.cursor = 0
		if p.ready {
			p.viewport.GotoTop()
		}
	}
	p.nav = nav
	p.entries, p.err = nav.Listing()
	p.clampCursor(len(p.entries))
	p.setContent(p.renderContent())
}

func (p *FilesPanel) Init() tea.Cmd {
	return nil
}

func (p *FilesPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if p.handleMouse(msg, len(p.entries)) {
			p.setContent(p.renderContent())
			return p, p.openCmd()
		}

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch msg.String() {
		case "enter", "right", "l":
			return p, p.openCmd()
		case "backspace", "left", "h":
			if p.nav.State() == app.ViewingFile {
				return p, func() tea.Msg { return messages.CloseFileMsg{} }
			}
			return p, func() tea.Msg { return messages.GoUpMsg{} }
		default:
			if p.moveCursor(msg.String(), len(p.entries)) {
				p.setContent(p.renderContent())
			}
		}
	}
	return p, nil
}

func (p *FilesPanel) openCmd() tea.Cmd {
	e, ok := p.SelectedEntry()
	if !ok {
		return nil
	}
	return func() tea.Msg { return messages.EntrySelectedMsg{Entry: e} }
}

func (p *FilesPanel) View() string {
	if !p.ready {
		return p.RenderFrame("")
	}
	return p.RenderFrame(p.viewport.View())
}

// RenderFrame puts the current folder in the title.
func (p *FilesPanel) RenderFrame(content string) string {
	title := p.title
	if path := p.nav.Path(); len(path) > 0 {
		title += " /" + strings.Join(path, "/")
	}
	return borders.RenderTitledBorder(content, title, p.width, p.height, p.focused)
}

func (p *FilesPanel) SetSize(width, height int) {
	p.resize(width, height, p.renderContent())
}

func (p *FilesPanel) renderContent() string {
	if p.err != nil {
		return theme.ErrorStyle.Render("Tree error: " + p.err.Error() + "\nPress r to reload.")
	}
	if !p.nav.Identity().Valid() {
		return theme.DimmedStyle.Render("Select a commit")
	}
	if p.nav.State() == app.Loading {
		if msg := p.nav.Err(); msg != "" {
			return theme.ErrorStyle.Render(msg)
		}
		return theme.DimmedStyle.Render("Loading...")
	}

	maxLen := p.ContentWidth() - 1
	lines := make([]string, 0, len(p.entries)+1)
	for i, e := range p.entries {
		name := e.Name
		style := theme.FileStyle
		if e.Dir && !e.Up {
			name += "/"
			style = theme.DirStyle
		}
		if e.Up {
			style = theme.DimmedStyle
		}
		name = truncate(name, maxLen)
		if p.selected(i) {
			lines = append(lines, theme.SelectedItemStyle.Render(name))
		} else {
			lines = append(lines, style.Render(name))
		}
	}
	if pending := p.nav.Pending(); pending != "" {
		lines = append(lines, theme.DimmedStyle.Render("Loading "+pending+"..."))
	} else if msg := p.nav.Err(); msg != "" {
		lines = append(lines, theme.ErrorStyle.Render(msg))
	}
	return strings.Join(lines, "\n")
}

// SelectedEntry returns the entry under the cursor
func (p *FilesPanel) SelectedEntry() (app.Entry, bool) {
	if p.cursor >= 0 && p.cursor < len(p.entries) {
		return p.entries[p.cursor], true
	}
	return app.Entry{}, false
}

// Count returns the number of rows
func (p *FilesPanel) Count() int {
	return len(p.entries)
}

// Ensure FilesPanel implements Panel
var _ Panel = (*FilesPanel)(nil)
