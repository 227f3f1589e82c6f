// Package prefix abbreviates commit ids to the shortest prefix that stays
// unique within a commit list.
package prefix

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// MinPrefixLen matches git's default abbreviation.
const MinPrefixLen = 7

// ComputeUniquePrefixes returns id -> shortest unique prefix length, never
// shorter than MinPrefixLen and never longer than the id. After sorting,
// the closest neighbours of an id share its longest common prefixes, so
// only they need comparing.
func ComputeUniquePrefixes(ids []string) map[string]int {
	sorted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			sorted = append(sorted, id)
		}
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	result := make(map[string]int, len(sorted))
	for i, id := range sorted {
		need := MinPrefixLen
		if i > 0 {
			need = max(need, commonPrefixLen(id, sorted[i-1])+1)
		}
		if i < len(sorted)-1 {
			need = max(need, commonPrefixLen(id, sorted[i+1])+1)
		}
		result[id] = min(need, len(id))
	}
	return result
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// IDSet holds the unique prefix lengths of one commit list.
type IDSet struct {
	prefixes map[string]int
}

// NewIDSet computes prefixes for ids.
func NewIDSet(ids []string) *IDSet {
	return &IDSet{prefixes: ComputeUniquePrefixes(ids)}
}

// PrefixLen returns the unique prefix length of id, or MinPrefixLen for
// ids outside the set.
func (s *IDSet) PrefixLen(id string) int {
	if n, ok := s.prefixes[id]; ok {
		return n
	}
	return min(MinPrefixLen, len(id))
}

// Short returns the unique prefix of id.
func (s *IDSet) Short(id string) string {
	return id[:s.PrefixLen(id)]
}

// Format renders the unique prefix of id in prefixStyle. Only the prefix
// is shown; width caps how much of the rest follows it in restStyle.
func (s *IDSet) Format(id string, width int, prefixStyle, restStyle lipgloss.Style) string {
	if id == "" {
		return ""
	}
	n := s.PrefixLen(id)
	out := prefixStyle.Render(id[:n])
	if width > n {
		out += restStyle.Render(id[n:min(width, len(id))])
	}
	return out
}
