package prefix

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestComputeUniquePrefixes(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want map[string]int
	}{
		{
			name: "distinct ids use the minimum",
			ids:  []string{"aaaaaaaaaa", "bbbbbbbbbb"},
			want: map[string]int{"aaaaaaaaaa": 7, "bbbbbbbbbb": 7},
		},
		{
			name: "shared prefix beyond the minimum",
			ids:  []string{"abcdef0123", "abcdef0124", "ffffffffff"},
			want: map[string]int{"abcdef0123": 10, "abcdef0124": 10, "ffffffffff": 7},
		},
		{
			name: "short ids are capped",
			ids:  []string{"c1", "c2"},
			want: map[string]int{"c1": 2, "c2": 2},
		},
		{
			name: "empty and duplicate ids",
			ids:  []string{"", "1234567890", "1234567890"},
			want: map[string]int{"1234567890": 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeUniquePrefixes(tt.ids)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %v", len(tt.want), got)
			}
			for id, n := range tt.want {
				if got[id] != n {
					t.Errorf("%s: expected %d, got %d", id, n, got[id])
				}
			}
		})
	}
}

func TestIDSet(t *testing.T) {
	set := NewIDSet([]string{"abcdef0123aa", "abcdef0999bb"})

	if got := set.Short("abcdef0123aa"); got != "abcdef01" {
		t.Errorf("Short = %q", got)
	}
	if got := set.PrefixLen("unknown-id"); got != MinPrefixLen {
		t.Errorf("PrefixLen of unknown id = %d", got)
	}
	if got := set.PrefixLen("abc"); got != 3 {
		t.Errorf("PrefixLen of short unknown id = %d", got)
	}

	plain := lipgloss.NewStyle()
	if got := set.Format("abcdef0123aa", 10, plain, plain); got != "abcdef0123" {
		t.Errorf("Format = %q", got)
	}
	if got := set.Format("abcdef0123aa", 0, plain, plain); got != "abcdef01" {
		t.Errorf("Format without width = %q", got)
	}
	if got := set.Format("", 10, plain, plain); got != "" {
		t.Errorf("Format of empty id = %q", got)
	}
}
