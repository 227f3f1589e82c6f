package floating

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repobrowse/api"
	"github.com/gerunddev/repobrowse/app"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{
			name:     "fits",
			text:     "short line",
			maxWidth: 20,
			want:     []string{"short line"},
		},
		{
			name:     "wraps at words",
			text:     "one two three four",
			maxWidth: 9,
			want:     []string{"one two", "three", "four"},
		},
		{
			name:     "keeps line breaks",
			text:     "first\n\nsecond",
			maxWidth: 20,
			want:     []string{"first", "", "second"},
		},
		{
			name:     "long word stays whole",
			text:     "abcdefghij",
			maxWidth: 4,
			want:     []string{"abcdefghij"},
		},
		{
			name:     "no width",
			text:     "a b\nc",
			maxWidth: 0,
			want:     []string{"a b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.maxWidth)
			if !slices.Equal(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestDialogClampsToScreen(t *testing.T) {
	b := dialog("x", 30, 6, 60, 9)
	if b.width != 26 || b.height != 4 {
		t.Errorf("dialog size = %dx%d, want 26x4", b.width, b.height)
	}

	b = dialog("x", 200, 50, 60, 9)
	if b.width != 60 || b.height != 9 {
		t.Errorf("dialog size = %dx%d, want 60x9", b.width, b.height)
	}
}

func TestConfirmOverlay(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{name: "defaults to no", want: false},
		{name: "y selects yes", keys: []string{"y"}, want: true},
		{name: "left selects yes", keys: []string{"left"}, want: true},
		{name: "n after y", keys: []string{"y", "n"}, want: false},
		{name: "tab toggles", keys: []string{"tab"}, want: true},
		{name: "tab twice", keys: []string{"tab", "tab"}, want: false},
		{name: "other keys ignored", keys: []string{"x"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDeleteRepositoryOverlay("alpha")
			for _, k := range tt.keys {
				c.Update(key(k))
			}
			if c.Confirmed() != tt.want {
				t.Errorf("Confirmed() = %v, want %v", c.Confirmed(), tt.want)
			}
			if c.Subject() != "alpha" {
				t.Errorf("Subject() = %q", c.Subject())
			}
		})
	}
}

func TestConfirmOverlayView(t *testing.T) {
	c := NewDeleteRepositoryOverlay("alpha")
	c.SetSize(100, 30)
	view := c.View()
	for _, want := range []string{"Delete repository", "alpha", "[ Yes ]", "[ No ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTextInputSubmit(t *testing.T) {
	errBad := errors.New("bad name")
	validate := func(s string) error {
		if s == "bad" {
			return errBad
		}
		return nil
	}

	tests := []struct {
		name   string
		value  string
		want   string
		wantOK bool
	}{
		{name: "valid", value: "alpha", want: "alpha", wantOK: true},
		{name: "trimmed", value: "  alpha  ", want: "alpha", wantOK: true},
		{name: "invalid", value: "bad", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ti := NewTextInputOverlay("New repository", "name", validate)
			ti.SetSize(100, 30)
			ti.textInput.SetValue(tt.value)

			got, ok := ti.Submit()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Submit() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
			if !tt.wantOK && !strings.Contains(ti.View(), "bad name") {
				t.Error("expected the validation error in the view")
			}
		})
	}
}

func TestTextInputEditClearsError(t *testing.T) {
	ti := NewTextInputOverlay("New repository", "name", func(string) error { return errors.New("nope") })
	ti.SetSize(100, 30)
	if _, ok := ti.Submit(); ok {
		t.Fatal("expected Submit to fail")
	}

	ti.Update(key("a"))
	if ti.err != "" {
		t.Errorf("error not cleared after typing: %q", ti.err)
	}
	if ti.Value() != "a" {
		t.Errorf("Value() = %q, want %q", ti.Value(), "a")
	}
}

func TestTextInputWithoutValidator(t *testing.T) {
	ti := NewTextInputOverlay("Title", "", nil)
	ti.textInput.SetValue("anything")
	if got, ok := ti.Submit(); !ok || got != "anything" {
		t.Errorf("Submit() = %q, %v", got, ok)
	}
}

func TestInfoOverlay(t *testing.T) {
	i := NewInfoOverlay("Error", app.MsgUnreachable)
	i.SetSize(100, 30)
	if i.Message() != app.MsgUnreachable {
		t.Errorf("Message() = %q", i.Message())
	}
	view := i.View()
	if !strings.Contains(view, "[ OK ]") || !strings.Contains(view, "Could not reach server.") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestMessageOverlay(t *testing.T) {
	commit := app.Summarize(api.Commit{SHA1: "aaaaaaa1111", Message: "Add parser\n\nHandles nested folders."})
	m := NewMessageOverlay(commit)
	m.SetSize(100, 30)
	view := m.View()
	for _, want := range []string{"Add parser", "Handles nested folders."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if m.Commit().SHA1 != "aaaaaaa1111" {
		t.Errorf("Commit() = %+v", m.Commit())
	}
}
