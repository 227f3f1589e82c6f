// Package borders draws rounded frames with the title set into the top edge.
package borders

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// Rounded border runes.
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
)

// TitledTop renders a top edge of the given width with title embedded
// after the corner. The title is dropped when it does not fit.
func TitledTop(title string, width int, border, titleStyle lipgloss.Style) string {
	if width < 2 {
		return ""
	}
	styled := ""
	if title != "" {
		styled = titleStyle.Render(" " + title + " ")
	}
	rest := width - 3 - lipgloss.Width(styled)
	if rest < 0 {
		styled = ""
		rest = max(width-3, 0)
	}
	if width < 3 {
		return border.Render(TopLeft + TopRight)
	}
	return border.Render(TopLeft+Horizontal) + styled + border.Render(strings.Repeat(Horizontal, rest)+TopRight)
}

// RenderTitledBorder frames content in a width x height box. Content is
// clipped or padded to fit the inside of the box.
func RenderTitledBorder(content, title string, width, height int, focused bool) string {
	if width < 2 || height < 2 {
		return ""
	}

	borderColor := theme.UnfocusedBorder
	titleStyle := theme.TitleStyle
	if focused {
		borderColor = theme.FocusedBorder
		titleStyle = theme.FocusedTitleStyle
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := width - 2
	innerHeight := height - 2

	lines := strings.Split(content, "\n")
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	clip := lipgloss.NewStyle().MaxWidth(innerWidth)
	side := border.Render(Vertical)

	out := make([]string, 0, height)
	out = append(out, TitledTop(title, width, border, titleStyle))
	for _, line := range lines {
		line = clip.Render(line)
		pad := max(innerWidth-lipgloss.Width(line), 0)
		out = append(out, side+line+strings.Repeat(" ", pad)+side)
	}
	out = append(out, border.Render(BottomLeft+strings.Repeat(Horizontal, innerWidth)+BottomRight))
	return strings.Join(out, "\n")
}
