package panels

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/ui/messages"
	"github.com/gerunddev/repobrowse/ui/prefix"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// shaWidth is how much of a commit id is shown, prefix included.
const shaWidth = 10

// copyToClipboard is swapped in tests.
var copyToClipboard = clipboard.WriteAll

// CommitsPanel shows the commit log of the selected repository in backend
// order. Moving the cursor selects the commit.
type CommitsPanel struct {
	BasePanel
	commits app.List[app.CommitSummary]
	ids     *prefix.IDSet
}

// NewCommitsPanel creates a new commits panel
func NewCommitsPanel() *CommitsPanel {
	return &CommitsPanel{
		BasePanel: NewBasePanel("2 Commits"),
		ids:       prefix.NewIDSet(nil),
	}
}

// SetCommits replaces the list. active is the selected commit; once it is
// in the list the cursor sits on it. Otherwise the cursor returns to the
// top when the list is for another repository.
func (p *CommitsPanel) SetCommits(commits app.List[app.CommitSummary], active string) {
	if commits.Key != p.commits.Key {
		p.cursor = 0
		if p.ready {
			p.viewport.GotoTop()
		}
	}
	p.commits = commits

	shas := make([]string, len(commits.Items))
	for i, c := range commits.Items {
		shas[i] = c.SHA1
		if active != "" && c.SHA1 == active {
			p.cursor = i
		}
	}
	p.ids = prefix.NewIDSet(shas)
	p.clampCursor(len(commits.Items))
	p.setContent(p.renderContent())
	p.ensureCursorVisible()
}

func (p *CommitsPanel) Init() tea.Cmd {
	return nil
}

func (p *CommitsPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	prevCursor := p.cursor
	count := len(p.commits.Items)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if p.handleMouse(msg, count) {
			p.setContent(p.renderContent())
			return p, p.selectCmd()
		}

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch msg.String() {
		case "enter", "right", "l":
			return p, p.selectCmd()
		case "y":
			return p, p.copySHA()
		case "m":
			if c, ok := p.SelectedCommit(); ok {
				return p, func() tea.Msg { return messages.ShowCommitMsg{Commit: c} }
			}
		default:
			p.moveCursor(msg.String(), count)
		}
	}

	p.setContent(p.renderContent())
	if p.cursor != prevCursor {
		return p, p.selectCmd()
	}
	return p, nil
}

func (p *CommitsPanel) selectCmd() tea.Cmd {
	c, ok := p.SelectedCommit()
	if !ok {
		return nil
	}
	return func() tea.Msg { return messages.CommitSelectedMsg{SHA1: c.SHA1} }
}

func (p *CommitsPanel) copySHA() tea.Cmd {
	c, ok := p.SelectedCommit()
	if !ok {
		return nil
	}
	short := p.ids.Short(c.SHA1)
	return func() tea.Msg {
		if err := copyToClipboard(c.SHA1); err != nil {
			return messages.StatusMsg{Text: "Could not copy to clipboard: " + err.Error(), Err: true}
		}
		return messages.StatusMsg{Text: "Copied " + short}
	}
}

func (p *CommitsPanel) View() string {
	return p.view("Loading...")
}

func (p *CommitsPanel) SetSize(width, height int) {
	p.resize(width, height, p.renderContent())
}

func (p *CommitsPanel) renderContent() string {
	switch {
	case p.commits.Key == "":
		return theme.DimmedStyle.Render("Select a repository")
	case p.commits.Err != "":
		return theme.ErrorStyle.Render(p.commits.Err)
	case p.commits.Loading:
		return theme.DimmedStyle.Render("Loading...")
	case len(p.commits.Items) == 0:
		return theme.DimmedStyle.Render("No commits")
	}

	summaryWidth := p.ContentWidth() - shaWidth - 1
	lines := make([]string, len(p.commits.Items))
	for i, c := range p.commits.Items {
		sha := p.ids.Format(c.SHA1, shaWidth, theme.SHAPrefixStyle, theme.SHARestStyle)
		pad := strings.Repeat(" ", max(shaWidth-min(len(c.SHA1), shaWidth), 0))
		summary := truncate(c.Summary, summaryWidth)
		if p.selected(i) {
			summary = theme.SelectedItemStyle.Render(summary)
		} else {
			summary = theme.SummaryStyle.Render(summary)
		}
		lines[i] = sha + pad + " " + summary
	}
	return strings.Join(lines, "\n")
}

// SelectedCommit returns the commit under the cursor
func (p *CommitsPanel) SelectedCommit() (app.CommitSummary, bool) {
	if p.cursor >= 0 && p.cursor < len(p.commits.Items) {
		return p.commits.Items[p.cursor], true
	}
	return app.CommitSummary{}, false
}

// Count returns the number of commits
func (p *CommitsPanel) Count() int {
	return len(p.commits.Items)
}

var _ Panel = (*CommitsPanel)(nil)
