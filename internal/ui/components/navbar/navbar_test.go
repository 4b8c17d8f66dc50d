package navbar

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"
)

func TestViewDimensions(t *testing.T) {
	views := []ViewInfo{{Name: "Bar"}, {Name: "Line"}, {Name: "Pie"}, {Name: "Stream"}}
	quit := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))

	tests := map[string]struct {
		width     int
		wantEmpty bool
	}{
		"zero width": {width: 0, wantEmpty: true},
		"narrow":     {width: 20, wantEmpty: false},
		"wide":       {width: 80, wantEmpty: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := New(WithWidth(tc.width), WithViews(views), WithHints([]key.Binding{quit}))
			output := m.View()
			if tc.wantEmpty {
				if output != "" {
					t.Fatalf("expected empty output, got %q", output)
				}
				return
			}
			if w := ansi.StringWidth(output); w != tc.width {
				t.Fatalf("expected width %d, got %d", tc.width, w)
			}
		})
	}
}

func TestViewsAndHintsRendered(t *testing.T) {
	views := []ViewInfo{{Name: "Bar"}, {Name: "Stream"}}
	quit := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	hidden := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"), key.WithDisabled())

	m := New(WithWidth(80), WithViews(views), WithHints([]key.Binding{quit, hidden}))
	m.SetActive(1)
	output := ansi.Strip(m.View())

	for _, want := range []string{"1 Bar", "2 Stream", "q quit"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q to be rendered, got %q", want, output)
		}
	}
	if strings.Contains(output, "hidden") {
		t.Fatalf("disabled hint rendered: %q", output)
	}
	if m.Active() != 1 {
		t.Fatalf("Active() = %d, want 1", m.Active())
	}
}
