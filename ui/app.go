package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repobrowse/app"
	"github.com/gerunddev/repobrowse/ui/floating"
	"github.com/gerunddev/repobrowse/ui/messages"
	"github.com/gerunddev/repobrowse/ui/panels"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// PanelBound defines the screen coordinates of a panel for mouse detection
type PanelBound struct {
	X1, Y1, X2, Y2 int
	PanelIndex     int
}

// overlay is a floating window drawn over the main view
type overlay interface {
	tea.Model
	SetSize(width, height int)
}

// Option configures an App.
type Option func(*App)

// WithRoute opens the browser at r instead of the repository list.
func WithRoute(r app.Route) Option {
	return func(a *App) { a.route = r }
}

// WithHighlightStyle sets the chroma style used for file contents.
func WithHighlightStyle(style string) Option {
	return func(a *App) { a.highlightStyle = style }
}

// App is the main application model
type App struct {
	store   *app.Store
	effects effects

	// Panels
	reposPanel   *panels.ReposPanel
	commitsPanel *panels.CommitsPanel
	filesPanel   *panels.FilesPanel
	viewer       *panels.Viewer

	// Floating window, nil when none is open
	overlay overlay

	// State
	route          app.Route
	highlightStyle string
	focusedPanel   int // 0=view, 1=repositories, 2=commits, 3=files
	keys           KeyMap
	width          int
	height         int
	ready          bool

	status     string
	statusErr  bool
	lastResult string // repository status already reported

	// Panel bounds for mouse coordinate mapping
	panelBounds []PanelBound
}

// NewApp creates a new application talking to backend
func NewApp(backend Backend, opts ...Option) *App {
	a := &App{
		store:        app.NewStore(),
		effects:      effects{backend: backend},
		reposPanel:   panels.NewReposPanel(),
		commitsPanel: panels.NewCommitsPanel(),
		filesPanel:   panels.NewFilesPanel(),
		focusedPanel: PanelRepositories,
		keys:         DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.viewer = panels.NewViewer(a.highlightStyle)
	a.reposPanel.SetFocused(true)
	return a
}

// State returns the application state.
func (a *App) State() app.State {
	return a.store.State()
}

func (a *App) Init() tea.Cmd {
	cmd := a.dispatch(app.RefreshRepositories{})
	if a.route.Repo != "" {
		cmd = tea.Batch(cmd, a.dispatch(app.Navigate{Route: a.route}))
		if a.route.SHA1 != "" {
			a.setFocus(PanelFiles)
		} else {
			a.setFocus(PanelCommits)
		}
	}
	return cmd
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		a.ready = true
		return a, nil

	case messages.ResultMsg:
		return a, a.dispatch(msg.Action)

	case messages.RepositorySelectedMsg:
		cmd := a.dispatch(app.SelectRepository{Name: msg.Name})
		a.setFocus(PanelCommits)
		return a, cmd

	case messages.CommitSelectedMsg:
		if msg.SHA1 == a.store.State().Commit {
			return a, nil
		}
		return a, a.dispatch(app.SelectCommit{SHA1: msg.SHA1})

	case messages.EntrySelectedMsg:
		return a, a.dispatch(app.EnterEntry{Entry: msg.Entry})

	case messages.GoUpMsg:
		return a, a.dispatch(app.GoUp{})

	case messages.CloseFileMsg:
		return a, a.dispatch(app.CloseFile{})

	case messages.CreateRequestedMsg:
		input := floating.NewTextInputOverlay("New repository", "name", app.ValidateRepositoryName)
		a.openOverlay(input)
		return a, input.Init()

	case messages.DeleteRequestedMsg:
		a.openOverlay(floating.NewDeleteRepositoryOverlay(msg.Name))
		return a, nil

	case messages.ShowCommitMsg:
		a.openOverlay(floating.NewMessageOverlay(msg.Commit))
		return a, nil

	case messages.StatusMsg:
		a.status = msg.Text
		a.statusErr = msg.Err
		return a, nil

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if a.overlay != nil {
			return a.handleOverlayKey(msg)
		}
		a.status = ""
		return a.handleKey(msg)
	}

	// Anything else (cursor blinks) belongs to the open text input.
	if a.overlay != nil {
		_, cmd := a.overlay.Update(msg)
		return a, cmd
	}
	var cmd tea.Cmd
	if a.reposPanel.Capturing() {
		_, cmd = a.reposPanel.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The filter takes every key until it is closed.
	if a.focusedPanel == PanelRepositories && a.reposPanel.Capturing() {
		_, cmd := a.reposPanel.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.openOverlay(floating.NewHelpOverlay(a.keys))
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		return a, a.dispatch(app.Reload{})

	case key.Matches(msg, a.keys.Panel0):
		a.setFocus(PanelView)
		return a, nil

	case key.Matches(msg, a.keys.Panel1):
		a.setFocus(PanelRepositories)
		return a, nil

	case key.Matches(msg, a.keys.Panel2):
		a.setFocus(PanelCommits)
		return a, nil

	case key.Matches(msg, a.keys.Panel3):
		a.setFocus(PanelFiles)
		return a, nil

	case key.Matches(msg, a.keys.NextPanel):
		a.setFocus((a.focusedPanel + 1) % panelCount)
		return a, nil

	case key.Matches(msg, a.keys.PrevPanel):
		a.setFocus((a.focusedPanel + panelCount - 1) % panelCount)
		return a, nil
	}

	_, cmd := a.panel(a.focusedPanel).Update(msg)
	return a, cmd
}

func (a *App) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch o := a.overlay.(type) {
	case *floating.TextInputOverlay:
		switch msg.String() {
		case "esc":
			a.closeOverlay()
			return a, nil
		case "enter":
			name, ok := o.Submit()
			if !ok {
				return a, nil
			}
			a.closeOverlay()
			return a, a.dispatch(app.CreateRepository{Name: name})
		}

	case *floating.ConfirmOverlay:
		switch msg.String() {
		case "esc", "q":
			a.closeOverlay()
			return a, nil
		case "enter":
			a.closeOverlay()
			if o.Confirmed() {
				return a, a.dispatch(app.DeleteRepository{Name: o.Subject()})
			}
			return a, nil
		}

	case *floating.InfoOverlay:
		a.closeOverlay()
		return a, nil

	case *floating.HelpOverlay:
		if key.Matches(msg, a.keys.Escape, a.keys.Help, a.keys.Quit) {
			a.closeOverlay()
			return a, nil
		}

	case *floating.MessageOverlay:
		if key.Matches(msg, a.keys.Escape, a.keys.Message, a.keys.Quit) {
			a.closeOverlay()
			return a, nil
		}
	}

	_, cmd := a.overlay.Update(msg)
	return a, cmd
}

func (a *App) openOverlay(o overlay) {
	o.SetSize(a.width, max(a.height-1, 0))
	a.overlay = o
}

func (a *App) closeOverlay() {
	a.overlay = nil
}

// dispatch applies an action to the store, pushes the new state into the
// panels and starts the fetches it asked for.
func (a *App) dispatch(action app.Action) tea.Cmd {
	reqs := a.store.Dispatch(action)
	a.sync()
	return a.effects.run(reqs)
}

func (a *App) sync() {
	s := a.store.State()

	a.reposPanel.SetRepositories(s.Repositories, s.Repo)
	a.commitsPanel.SetCommits(s.Commits, s.Commit)
	a.filesPanel.SetNavigation(s.Tree)

	if s.Tree.State() == app.ViewingFile {
		a.viewer.ShowFile(s.Tree.File(), s.Tree.Contents())
	} else {
		a.viewer.ShowDiffs(s.Commit, s.Diffs)
	}

	// Create and delete outcomes: successes go to the status line,
	// failures get a dialog.
	if s.Repositories.Status != a.lastResult {
		a.lastResult = s.Repositories.Status
		switch {
		case s.Repositories.Status == "":
		case s.Repositories.Failed:
			a.openOverlay(floating.NewInfoOverlay("Error", s.Repositories.Status))
		default:
			a.status = s.Repositories.Status
			a.statusErr = false
		}
	}

	if a.ready {
		a.updateLayout()
	}
}

func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	// Build sidebar (stacked panels)
	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		a.reposPanel.View(),
		a.commitsPanel.View(),
		a.filesPanel.View(),
	)

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar,
		a.viewer.View(),
	)

	fullView := lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())

	if a.overlay != nil {
		fullView = overlayView(fullView, a.overlay.View())
	}
	return fullView
}

func (a *App) panel(index int) panels.Panel {
	switch index {
	case PanelRepositories:
		return a.reposPanel
	case PanelCommits:
		return a.commitsPanel
	case PanelFiles:
		return a.filesPanel
	}
	return a.viewer
}

func (a *App) setFocus(panel int) {
	for i := range panelCount {
		a.panel(i).SetFocused(i == panel)
	}
	a.focusedPanel = panel
}

func (a *App) updateLayout() {
	sidebarWidth := theme.SidebarWidth
	if a.width < 100 {
		sidebarWidth = theme.SidebarMinWidth
	} else if a.width > 200 {
		sidebarWidth = theme.SidebarMaxWidth
	}

	viewWidth := a.width - sidebarWidth
	contentHeight := a.height - 1 // Leave room for help bar

	// Repositories take what they need up to a third of the height; the
	// commits and files panels split the rest.
	reposLines := min(max(a.reposPanel.Count(), 1), contentHeight/3-2)
	reposHeight := max(reposLines+2, theme.PanelMinHeight)
	remaining := contentHeight - reposHeight
	commitsHeight := max(remaining/2, theme.PanelMinHeight)
	filesHeight := max(remaining-commitsHeight, theme.PanelMinHeight)

	a.reposPanel.SetSize(sidebarWidth, reposHeight)
	a.commitsPanel.SetSize(sidebarWidth, commitsHeight)
	a.filesPanel.SetSize(sidebarWidth, filesHeight)
	a.viewer.SetSize(viewWidth, contentHeight)

	reposY := 0
	commitsY := reposY + reposHeight
	filesY := commitsY + commitsHeight

	a.panelBounds = []PanelBound{
		{X1: sidebarWidth, Y1: 0, X2: a.width - 1, Y2: contentHeight - 1, PanelIndex: PanelView},
		{X1: 0, Y1: reposY, X2: sidebarWidth - 1, Y2: reposY + reposHeight - 1, PanelIndex: PanelRepositories},
		{X1: 0, Y1: commitsY, X2: sidebarWidth - 1, Y2: commitsY + commitsHeight - 1, PanelIndex: PanelCommits},
		{X1: 0, Y1: filesY, X2: sidebarWidth - 1, Y2: filesY + filesHeight - 1, PanelIndex: PanelFiles},
	}

	if a.overlay != nil {
		a.overlay.SetSize(a.width, max(a.height-1, 0))
	}
}

func (a *App) helpBarContext() HelpBarContext {
	nav := a.store.State().Tree
	return HelpBarContext{
		FocusedPanel: a.focusedPanel,
		Filtering:    a.focusedPanel == PanelRepositories && a.reposPanel.Capturing(),
		ViewingFile:  nav.State() == app.ViewingFile,
		InFolder:     len(nav.Path()) > 0,
		Status:       a.status,
		StatusErr:    a.statusErr,
	}
}

func (a *App) renderHelpBar() string {
	return RenderContextualHelpBar(a.helpBarContext(), a.width)
}

// overlayView lays the non-blank lines of top over background.
func overlayView(background, top string) string {
	bgLines := strings.Split(background, "\n")
	for i, line := range strings.Split(top, "\n") {
		if i < len(bgLines) && strings.TrimSpace(line) != "" {
			bgLines[i] = line
		}
	}
	return strings.Join(bgLines, "\n")
}

// handleMouse processes mouse events for panel focus and interaction
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.overlay != nil {
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			_, cmd := a.overlay.Update(msg)
			return a, cmd
		case tea.MouseButtonLeft:
			// A click dismisses read-only windows; dialogs wait for keys.
			if msg.Action == tea.MouseActionPress {
				switch a.overlay.(type) {
				case *floating.HelpOverlay, *floating.MessageOverlay, *floating.InfoOverlay:
					a.closeOverlay()
				}
			}
		}
		return a, nil
	}

	panelIndex := a.panelAtPoint(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			if panelIndex >= 0 && panelIndex != a.focusedPanel {
				a.setFocus(panelIndex)
			}
			return a.forwardMouseToPanel(panelIndex, msg)
		}

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		return a.forwardMouseToPanel(panelIndex, msg)
	}

	return a, nil
}

// panelAtPoint returns the panel index at the given screen coordinates
func (a *App) panelAtPoint(x, y int) int {
	for _, bound := range a.panelBounds {
		if x >= bound.X1 && x <= bound.X2 && y >= bound.Y1 && y <= bound.Y2 {
			return bound.PanelIndex
		}
	}
	return -1
}

// forwardMouseToPanel forwards a mouse event to the appropriate panel
// with panel-relative coordinates
func (a *App) forwardMouseToPanel(panelIndex int, msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if panelIndex < 0 {
		return a, nil
	}
	for _, bound := range a.panelBounds {
		if bound.PanelIndex == panelIndex {
			msg.Y -= bound.Y1
			msg.X -= bound.X1
			break
		}
	}
	_, cmd := a.panel(panelIndex).Update(msg)
	return a, cmd
}
