package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repobrowse/ui/theme"
)

// Panel indices, also the number keys that focus them.
const (
	PanelView = iota
	PanelRepositories
	PanelCommits
	PanelFiles
	panelCount
)

// HelpBarContext captures the current UI state for help bar rendering
type HelpBarContext struct {
	FocusedPanel int
	Filtering    bool // repository filter is taking keys
	ViewingFile  bool
	InFolder     bool // files panel is below the tree root

	// Status replaces the action hints while set.
	Status    string
	StatusErr bool
}

// HelpHint represents a single hint (key + description)
type HelpHint struct {
	Key  string
	Desc string
}

// Format renders a hint as "key desc" in uniform dim color
func (h HelpHint) Format() string {
	return theme.HelpDescStyle.Render(h.Key + " " + h.Desc)
}

// getActionHints returns context-specific action hints (left section)
func getActionHints(ctx HelpBarContext) []HelpHint {
	switch ctx.FocusedPanel {
	case PanelRepositories:
		if ctx.Filtering {
			return nil
		}
		return []HelpHint{
			{Key: "n", Desc: "new"},
			{Key: "d", Desc: "delete"},
			{Key: "/", Desc: "filter"},
		}
	case PanelCommits:
		return []HelpHint{
			{Key: "y", Desc: "copy id"},
			{Key: "m", Desc: "message"},
		}
	}
	return nil
}

// getNavigationHints returns context-specific navigation hints (center section)
func getNavigationHints(ctx HelpBarContext) []HelpHint {
	switch ctx.FocusedPanel {
	case PanelView:
		if ctx.ViewingFile {
			return []HelpHint{
				{Key: "←", Desc: "back"},
				{Key: "↑↓", Desc: "scroll"},
			}
		}
		return []HelpHint{{Key: "↑↓", Desc: "scroll"}}
	case PanelRepositories:
		if ctx.Filtering {
			return []HelpHint{
				{Key: "↵", Desc: "select"},
				{Key: "esc", Desc: "clear"},
			}
		}
		return []HelpHint{
			{Key: "↑↓", Desc: "select"},
			{Key: "↵", Desc: "open"},
		}
	case PanelCommits:
		return []HelpHint{{Key: "↑↓", Desc: "select"}}
	case PanelFiles:
		switch {
		case ctx.ViewingFile:
			return []HelpHint{
				{Key: "←", Desc: "back"},
				{Key: "↑↓", Desc: "select"},
				{Key: "↵", Desc: "open"},
			}
		case ctx.InFolder:
			return []HelpHint{
				{Key: "←", Desc: "up"},
				{Key: "↑↓", Desc: "select"},
				{Key: "↵", Desc: "open"},
			}
		}
		return []HelpHint{
			{Key: "↑↓", Desc: "select"},
			{Key: "↵", Desc: "open"},
		}
	}
	return nil
}

// getAlwaysHints returns hints that are always shown (right section).
// Nothing is shown while the filter takes every key.
func getAlwaysHints(ctx HelpBarContext) []HelpHint {
	if ctx.Filtering {
		return nil
	}
	return []HelpHint{
		{Key: "r", Desc: "reload"},
		{Key: "tab", Desc: "↻"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// formatHints joins hints with double spaces
func formatHints(hints []HelpHint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.Format()
	}
	return strings.Join(parts, "  ")
}

func formatStatus(ctx HelpBarContext) string {
	if ctx.StatusErr {
		return theme.StatusErrStyle.Render(ctx.Status)
	}
	return theme.StatusOKStyle.Render(ctx.Status)
}

// RenderContextualHelpBar renders the three-section help bar:
// [left].....[center].....[right]
func RenderContextualHelpBar(ctx HelpBarContext, width int) string {
	leftSection := formatHints(getActionHints(ctx))
	if ctx.Status != "" {
		leftSection = formatStatus(ctx)
	}
	centerSection := formatHints(getNavigationHints(ctx))
	rightSection := formatHints(getAlwaysHints(ctx))

	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)

	if width-(leftWidth+centerWidth+rightWidth) < 6 {
		return theme.HelpBarStyle.Width(width).Render(
			leftSection + "  " + centerSection + "  " + rightSection,
		)
	}

	// center is centred on the screen, right is flush right
	centerStart := width/2 - centerWidth/2
	centerToRight := max(width-rightWidth-(centerStart+centerWidth), 2)

	var bar string
	if leftWidth > 0 {
		leftToCenter := max(centerStart-leftWidth, 2)
		bar = leftSection + strings.Repeat(" ", leftToCenter) + centerSection + strings.Repeat(" ", centerToRight) + rightSection
	} else {
		bar = strings.Repeat(" ", max(centerStart, 0)) + centerSection + strings.Repeat(" ", centerToRight) + rightSection
	}

	return theme.HelpBarStyle.Width(width).Render(bar)
}
