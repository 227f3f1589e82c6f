package app

import "strings"

// LineKind classifies one line of a diff by its first character.
type LineKind int

const (
	Context LineKind = iota
	Addition
	Deletion
)

func (k LineKind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Deletion:
		return "deletion"
	default:
		return "context"
	}
}

// DiffLine is one classified line. The classification is for display
// only; hunks are not parsed.
type DiffLine struct {
	Kind LineKind
	Text string
}

// ClassifyDiff splits a diff text into lines: '+' is an addition, '-' a
// deletion, anything else context.
func ClassifyDiff(text string) []DiffLine {
	lines := strings.Split(text, "\n")
	out := make([]DiffLine, len(lines))
	for i, line := range lines {
		kind := Context
		switch {
		case strings.HasPrefix(line, "+"):
			kind = Addition
		case strings.HasPrefix(line, "-"):
			kind = Deletion
		}
		out[i] = DiffLine{Kind: kind, Text: line}
	}
	return out
}
