package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/ui/borders"
	"github.com/gerunddev/repobrowse/ui/messages"
	"github.com/gerunddev/repobrowse/ui/theme"
	"github.com/sahilm/fuzzy"
)

// ReposPanel lists the repositories on the server. Typing / starts a
// fuzzy filter over the names.
type ReposPanel struct {
	BasePanel
	repos     app.Repositories
	active    string // repository whose commits are shown
	filter    textinput.Model
	filtering bool
	rows      []fuzzy.Match
}

// NewReposPanel creates a new repositories panel
func NewReposPanel() *ReposPanel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "filter"
	ti.CharLimit = 100

	return &ReposPanel{
		BasePanel: NewBasePanel("1 Repositories"),
		filter:    ti,
	}
}

// SetRepositories replaces the list. active is the selected repository.
func (p *ReposPanel) SetRepositories(repos app.Repositories, active string) {
	p.repos = repos
	p.active = active
	p.refilter()
}

// Capturing reports whether keys are going to the filter input.
func (p *ReposPanel) Capturing() bool {
	return p.filtering
}

// Filter returns the current filter text.
func (p *ReposPanel) Filter() string {
	return p.filter.Value()
}

func (p *ReposPanel) refilter() {
	pattern := p.filter.Value()
	if pattern == "" {
		p.rows = make([]fuzzy.Match, len(p.repos.Items))
		for i, name := range p.repos.Items {
			p.rows[i] = fuzzy.Match{Str: name, Index: i}
		}
	} else {
		p.rows = fuzzy.Find(pattern, p.repos.Items)
	}
	p.clampCursor(len(p.rows))
	p.setContent(p.renderContent())
}

func (p *ReposPanel) Init() tea.Cmd {
	return nil
}

func (p *ReposPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if p.handleMouse(msg, len(p.rows)) {
			p.setContent(p.renderContent())
			return p, p.selectCmd()
		}

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		if p.filtering {
			return p, p.updateFilter(msg)
		}
		switch msg.String() {
		case "enter", "right", "l":
			return p, p.selectCmd()
		case "/":
			p.filtering = true
			p.filter.Focus()
			return p, textinput.Blink
		case "esc":
			p.filter.SetValue("")
			p.refilter()
		case "n":
			return p, func() tea.Msg { return messages.CreateRequestedMsg{} }
		case "d", "delete":
			if name := p.SelectedName(); name != "" {
				return p, func() tea.Msg { return messages.DeleteRequestedMsg{Name: name} }
			}
		default:
			if p.moveCursor(msg.String(), len(p.rows)) {
				p.setContent(p.renderContent())
			}
		}
	}
	return p, nil
}

func (p *ReposPanel) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.filtering = false
		p.filter.Blur()
		p.filter.SetValue("")
		p.refilter()
		return nil
	case "enter":
		p.filtering = false
		p.filter.Blur()
		return p.selectCmd()
	case "up", "down":
		p.moveCursor(msg.String(), len(p.rows))
		p.setContent(p.renderContent())
		return nil
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.cursor = 0
	p.refilter()
	return cmd
}

func (p *ReposPanel) selectCmd() tea.Cmd {
	name := p.SelectedName()
	if name == "" {
		return nil
	}
	return func() tea.Msg { return messages.RepositorySelectedMsg{Name: name} }
}

func (p *ReposPanel) View() string {
	return p.view("Loading...")
}

// RenderFrame shows the filter in the title while one is set.
func (p *ReposPanel) RenderFrame(content string) string {
	title := p.title
	if p.filtering || p.filter.Value() != "" {
		title += " /" + p.filter.Value()
		if p.filtering {
			title += "_"
		}
	}
	return borders.RenderTitledBorder(content, title, p.width, p.height, p.focused)
}

func (p *ReposPanel) view(placeholder string) string {
	if !p.ready {
		return p.RenderFrame(placeholder)
	}
	return p.RenderFrame(p.viewport.View())
}

func (p *ReposPanel) SetSize(width, height int) {
	p.resize(width, height, p.renderContent())
}

func (p *ReposPanel) renderContent() string {
	switch {
	case p.repos.Err != "":
		return theme.ErrorStyle.Render(p.repos.Err)
	case p.repos.Loading && len(p.repos.Items) == 0:
		return theme.DimmedStyle.Render("Loading...")
	case len(p.repos.Items) == 0:
		return theme.DimmedStyle.Render("No repositories. Press n to create one.")
	case len(p.rows) == 0:
		return theme.DimmedStyle.Render("No match")
	}

	maxLen := p.ContentWidth() - 2
	lines := make([]string, len(p.rows))
	for i, row := range p.rows {
		marker := "  "
		if row.Str == p.active {
			marker = theme.SelectedRepoMarker
		}
		name := truncate(row.Str, maxLen)
		if p.selected(i) {
			lines[i] = marker + theme.SelectedItemStyle.Render(name)
		} else {
			lines[i] = marker + highlightMatches(name, row.MatchedIndexes)
		}
	}
	return strings.Join(lines, "\n")
}

// highlightMatches styles the bytes of s at the matched indexes.
func highlightMatches(s string, matched []int) string {
	if len(matched) == 0 {
		return theme.NormalItemStyle.Render(s)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(theme.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(theme.NormalItemStyle.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedName returns the repository under the cursor
func (p *ReposPanel) SelectedName() string {
	if p.cursor >= 0 && p.cursor < len(p.rows) {
		return p.rows[p.cursor].Str
	}
	return ""
}

// Count returns the number of visible repositories
func (p *ReposPanel) Count() int {
	return len(p.rows)
}

var _ Panel = (*ReposPanel)(nil)
