// Package theme holds the colours, styles and layout sizes shared by every
// part of the UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorYellow     = lipgloss.Color("#e5c07b")
	ColorOrange     = lipgloss.Color("#d19a66")
	ColorRed        = lipgloss.Color("#e06c75")
	ColorMagenta    = lipgloss.Color("#c678dd")
	ColorBlue       = lipgloss.Color("#61afef")
	ColorGreen      = lipgloss.Color("#98c379")
	ColorCyan       = lipgloss.Color("#56b6c2")
	ColorWhite      = lipgloss.Color("#dcdfe4")
	ColorDimWhite   = lipgloss.Color("#7f848e")
	ColorBackground = lipgloss.Color("#282c34")
	ColorSurface    = lipgloss.Color("#3e4451")
)

// Panel frames
var (
	FocusedBorder   = ColorGreen
	UnfocusedBorder = ColorDimWhite

	TitleStyle        = lipgloss.NewStyle().Foreground(ColorDimWhite)
	FocusedTitleStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
)

// List items
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorBackground).
				Background(ColorBlue).
				Bold(true)
	NormalItemStyle = lipgloss.NewStyle().Foreground(ColorWhite)
	DimmedStyle     = lipgloss.NewStyle().Foreground(ColorDimWhite)
	ErrorStyle      = lipgloss.NewStyle().Foreground(ColorRed)
	MatchStyle      = lipgloss.NewStyle().Foreground(ColorYellow).Underline(true)

	DirStyle  = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	FileStyle = lipgloss.NewStyle().Foreground(ColorWhite)

	SelectedRepoMarker = lipgloss.NewStyle().Foreground(ColorGreen).Render("● ")
)

// Commit ids
var (
	SHAPrefixStyle = lipgloss.NewStyle().Foreground(ColorMagenta).Bold(true)
	SHARestStyle   = lipgloss.NewStyle().Foreground(ColorDimWhite)
	SummaryStyle   = lipgloss.NewStyle().Foreground(ColorWhite)
)

// Diffs
var (
	DiffAddLine     = lipgloss.NewStyle().Foreground(ColorGreen)
	DiffRemoveLine  = lipgloss.NewStyle().Foreground(ColorRed)
	DiffContextLine = lipgloss.NewStyle().Foreground(ColorWhite)
	DiffHunkHeader  = lipgloss.NewStyle().Foreground(ColorCyan)
	DiffFileHeader  = lipgloss.NewStyle().Foreground(ColorDimWhite).Bold(true)
)

// Floating windows
var (
	FloatingWindowStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorYellow)
	FloatingTitleStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)

// Help bar
var (
	HelpBarStyle   = lipgloss.NewStyle().Foreground(ColorDimWhite)
	HelpKeyStyle   = lipgloss.NewStyle().Foreground(ColorBlue)
	HelpDescStyle  = lipgloss.NewStyle().Foreground(ColorDimWhite)
	StatusOKStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	StatusErrStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// Layout
const (
	SidebarWidth    = 44
	SidebarMinWidth = 30
	SidebarMaxWidth = 60
	PanelMinHeight  = 3
)
