package panels

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/config"
	"github.com/gerunddev/repobrowse/ui/borders"
	"github.com/gerunddev/repobrowse/ui/messages"
	"github.com/gerunddev/repobrowse/ui/theme"
)

type viewMode int

const (
	viewEmpty viewMode = iota
	viewDiff
	viewFile
)

// Viewer is the main area: the diffs of the selected commit, or the
// contents of the open file.
type Viewer struct {
	BasePanel
	style string
	mode  viewMode

	sha   string
	diffs app.List[string]

	path     string
	contents string
}

// NewViewer creates the viewer. style names a chroma style; unknown names
// fall back to chroma's default.
func NewViewer(style string) *Viewer {
	if style == "" {
		style = config.DefaultHighlightStyle
	}
	return &Viewer{
		BasePanel: NewBasePanel("0 View"),
		style:     style,
	}
}

// ShowDiffs shows the diffs of commit sha. An empty sha clears the view.
func (v *Viewer) ShowDiffs(sha string, diffs app.List[string]) {
	mode := viewDiff
	if sha == "" {
		mode = viewEmpty
	}
	if v.mode == mode && v.sha == sha && v.diffs.Token == diffs.Token &&
		v.diffs.Loading == diffs.Loading && v.diffs.Err == diffs.Err {
		return
	}
	v.mode = mode
	v.sha = sha
	v.diffs = diffs
	v.path, v.contents = "", ""
	v.refresh()
}

// ShowFile shows the contents of path.
func (v *Viewer) ShowFile(path, contents string) {
	if v.mode == viewFile && v.path == path && v.contents == contents {
		return
	}
	v.mode = viewFile
	v.path = path
	v.contents = contents
	v.refresh()
}

// ViewingFile reports whether a file is shown.
func (v *Viewer) ViewingFile() bool {
	return v.mode == viewFile
}

func (v *Viewer) refresh() {
	if v.ready {
		v.viewport.SetContent(v.render())
		v.viewport.GotoTop()
	}
}

func (v *Viewer) Init() tea.Cmd {
	return nil
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			v.viewport.LineDown(3)
		}

	case tea.KeyMsg:
		if !v.focused {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			v.viewport.LineUp(1)
		case "down", "j":
			v.viewport.LineDown(1)
		case "pgup", "ctrl+u":
			v.viewport.HalfViewUp()
		case "pgdown", "ctrl+d", " ":
			v.viewport.HalfViewDown()
		case "g", "home":
			v.viewport.GotoTop()
		case "G", "end":
			v.viewport.GotoBottom()
		case "backspace", "left", "h":
			if v.mode == viewFile {
				return v, func() tea.Msg { return messages.CloseFileMsg{} }
			}
		}
	}
	return v, nil
}

func (v *Viewer) View() string {
	if !v.ready {
		return v.RenderFrame("Initializing...")
	}
	return v.RenderFrame(v.viewport.View())
}

func (v *Viewer) SetSize(width, height int) {
	v.resize(width, height, v.render())
}

// RenderFrame names what is shown and how far it is scrolled.
func (v *Viewer) RenderFrame(content string) string {
	title := v.title
	switch v.mode {
	case viewDiff:
		title += " Diff " + app.ShortSHA(v.sha)
	case viewFile:
		title += " File " + v.path
	}
	if v.ready && v.viewport.TotalLineCount() > v.viewport.Height {
		title = fmt.Sprintf("%s (%d%%)", title, int(v.viewport.ScrollPercent()*100))
	}
	return borders.RenderTitledBorder(content, title, v.width, v.height, v.focused)
}

func (v *Viewer) render() string {
	switch v.mode {
	case viewDiff:
		switch {
		case v.diffs.Err != "":
			return theme.ErrorStyle.Render(v.diffs.Err)
		case v.diffs.Loading:
			return theme.DimmedStyle.Render("Loading...")
		case len(v.diffs.Items) == 0:
			return theme.DimmedStyle.Render("No changes")
		}
		return renderDiffs(v.diffs.Items, v.ContentWidth()-1)
	case viewFile:
		return highlight(v.path, v.contents, v.style)
	}
	return theme.DimmedStyle.Render("Select a repository and a commit")
}

// renderDiffs colours each diff line by its kind. Header lines get their
// own style.
func renderDiffs(diffs []string, maxWidth int) string {
	var lines []string
	for i, diff := range diffs {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, line := range app.ClassifyDiff(strings.TrimRight(diff, "\n")) {
			lines = append(lines, diffLineStyle(line).MaxWidth(max(maxWidth, 1)).Render(line.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func diffLineStyle(line app.DiffLine) lipgloss.Style {
	switch {
	case strings.HasPrefix(line.Text, "+++ "), strings.HasPrefix(line.Text, "--- "),
		strings.HasPrefix(line.Text, "diff --git"), strings.HasPrefix(line.Text, "index "):
		return theme.DiffFileHeader
	case strings.HasPrefix(line.Text, "@@"):
		return theme.DiffHunkHeader
	}
	switch line.Kind {
	case app.Addition:
		return theme.DiffAddLine
	case app.Deletion:
		return theme.DiffRemoveLine
	}
	return theme.DiffContextLine
}

// highlight colours contents with the lexer matching the file name, or
// the one chroma guesses from the contents.
func highlight(file, contents, styleName string) string {
	lexer := lexers.Match(path.Base(file))
	if lexer == nil {
		lexer = lexers.Analyse(contents)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, contents)
	if err != nil {
		return contents
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return contents
	}
	return buf.String()
}

// Ensure Viewer implements Panel
var _ Panel = (*Viewer)(nil)
