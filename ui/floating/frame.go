package floating

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repobrowse/ui/borders"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// box is the size and colour of a dialog window.
type box struct {
	title  string
	width  int
	height int
	color  lipgloss.Color
}

// frame renders content in a rounded window with the title in its top
// edge.
func (b box) frame(content string) string {
	bordered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(b.color).
		Width(max(b.width-2, 0)).
		Height(max(b.height-2, 0)).
		Render(content)

	lines := strings.Split(bordered, "\n")
	if len(lines) > 0 {
		border := lipgloss.NewStyle().Foreground(b.color)
		lines[0] = borders.TitledTop(b.title, b.width, border, theme.FloatingTitleStyle)
	}
	return strings.Join(lines, "\n")
}

// center renders the window centred on a screenWidth x screenHeight
// screen. The result is meant to be laid over the main view.
func (b box) center(content string, screenWidth, screenHeight int) string {
	window := b.frame(content)

	x := max((screenWidth-b.width)/2, 0)
	y := max((screenHeight-b.height)/2, 0)

	paddingLeft := strings.Repeat(" ", x)
	lines := strings.Split(window, "\n")
	for i := range lines {
		lines[i] = paddingLeft + lines[i]
	}
	return strings.Repeat("\n", y) + strings.Join(lines, "\n")
}

// dialog sizes a small centred window for a screen.
func dialog(title string, screenWidth, screenHeight, width, height int) box {
	return box{
		title:  title,
		width:  max(min(width, screenWidth-4), 10),
		height: max(min(height, screenHeight-2), 4),
		color:  theme.ColorYellow,
	}
}

// wrapText wraps text to a maximum width, keeping explicit line breaks
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var current strings.Builder
		for _, word := range words {
			if current.Len() == 0 {
				current.WriteString(word)
			} else if current.Len()+1+len(word) <= maxWidth {
				current.WriteString(" ")
				current.WriteString(word)
			} else {
				lines = append(lines, current.String())
				current.Reset()
				current.WriteString(word)
			}
		}
		lines = append(lines, current.String())
	}
	return lines
}
