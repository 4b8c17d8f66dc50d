package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazychart/internal/bucket"
	"github.com/kpumuk/lazychart/internal/dataset"
	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
	"github.com/kpumuk/lazychart/internal/ui/dialogs"
	"github.com/kpumuk/lazychart/internal/ui/views"
)

func newTestApp(t *testing.T) App {
	t.Helper()

	a := New(Config{
		Dataset: dataset.Sample(),
		Range:   10 * time.Second,
		Now:     fixedClock(1_000_000),
	})
	t.Cleanup(a.Close)
	return update(a, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

func statusValue(items []statusbar.Item, label string) string {
	for _, it := range items {
		if it.Label == label {
			return it.Value
		}
	}
	return ""
}

func TestAppSwitchesViews(t *testing.T) {
	tests := map[string]struct {
		keys []tea.KeyPressMsg
		want int
	}{
		"number key": {
			keys: []tea.KeyPressMsg{{Code: '3', Text: "3"}},
			want: 2,
		},
		"tab wraps": {
			keys: []tea.KeyPressMsg{{Code: '4', Text: "4"}, {Code: tea.KeyTab}},
			want: 0,
		},
		"shift tab wraps": {
			keys: []tea.KeyPressMsg{{Code: tea.KeyTab, Mod: tea.ModShift}},
			want: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := newTestApp(t)
			for _, k := range tt.keys {
				a = update(a, k)
			}
			if got := a.ActiveView(); got != tt.want {
				t.Fatalf("ActiveView() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAppResizeIsDebounced(t *testing.T) {
	a := newTestApp(t)
	bar := a.Views()[0].(*views.Bar)
	before, ok := bar.Chart().Layout()
	if !ok {
		t.Fatalf("bar chart not laid out after the first size")
	}

	a = update(a, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got, _ := bar.Chart().Layout(); got.Plot != before.Plot {
		t.Fatalf("layout changed before the debounce elapsed")
	}

	a = update(a, resizeMsg{gen: a.resizeGen - 1})
	if got, _ := bar.Chart().Layout(); got.Plot != before.Plot {
		t.Fatalf("stale resize applied")
	}

	update(a, resizeMsg{gen: a.resizeGen})
	if got, _ := bar.Chart().Layout(); !(got.Plot.W > before.Plot.W) {
		t.Fatalf("plot width after resize = %v, want more than %v", got.Plot.W, before.Plot.W)
	}
}

func TestAppRoutesPointsToStream(t *testing.T) {
	a := newTestApp(t)
	a = update(a, tea.KeyPressMsg{Code: '4', Text: "4"})
	a = update(a, views.PointsMsg{Points: []bucket.Point{
		{Time: time.UnixMilli(995_000)},
		{Time: time.UnixMilli(999_000)},
	}})

	stream := a.Views()[3].(*views.Stream)
	if got := statusValue(stream.Status(), "Events"); got != "2" {
		t.Fatalf("Events = %q, want 2", got)
	}
	if got := len(stream.Chart().Buckets()); got != 2 {
		t.Fatalf("len(Buckets()) = %d, want 2", got)
	}
}

func TestAppSourceError(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.currentError(); err != nil {
		t.Fatalf("currentError() = %v before any failure", err)
	}

	a = update(a, sourceDoneMsg{err: errors.New("connection refused")})
	title, err := a.currentError()
	if err == nil || title != "Event source stopped" {
		t.Fatalf("currentError() = %q, %v, want the source error", title, err)
	}
}

func TestAppChartErrorForTinyTerminal(t *testing.T) {
	a := newTestApp(t)
	a = update(a, tea.WindowSizeMsg{Width: 6, Height: 5})
	a = update(a, resizeMsg{gen: a.resizeGen})

	title, err := a.currentError()
	if err == nil {
		t.Fatalf("currentError() = nil for a 6x5 terminal")
	}
	if title != "Cannot draw Bars" {
		t.Fatalf("title = %q, want Cannot draw Bars", title)
	}
	if errorHint(err) != "Enlarge the terminal" {
		t.Fatalf("errorHint(%v) = %q, want Enlarge the terminal", err, errorHint(err))
	}
}

func TestAppHostMessagesRunFrames(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	a := New(Config{
		Dataset: dataset.Sample(),
		Now:     func() time.Time { return now },
	})
	t.Cleanup(a.Close)
	a = update(a, tea.WindowSizeMsg{Width: 80, Height: 24})

	bar := a.Views()[0].(*views.Bar)
	if !bar.Chart().Animating() || a.Host().PendingFrames() == 0 {
		t.Fatalf("grow-in animation not scheduled after the first size")
	}

	now = now.Add(10 * time.Second)
	a = update(a, frameMsg{})
	if bar.Chart().Animating() {
		t.Fatalf("animation still running after its duration")
	}
}

func TestAppHelpDialog(t *testing.T) {
	a := newTestApp(t)
	a = update(a, a.openHelp()())

	view := ansi.Strip(a.render())
	for _, want := range []string{"Help", "Global", "next view", "Bars"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	// Keys go to the dialog while it is open.
	a = update(a, tea.KeyPressMsg{Code: '3', Text: "3"})
	if a.ActiveView() != 0 {
		t.Fatalf("ActiveView() = %d, want 0 while help is open", a.ActiveView())
	}

	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEsc})
	a = update(a, findMsg[dialogs.CloseMsg](t, cmd))
	if a.dialogs.Open() {
		t.Fatal("help still open after esc")
	}
	a = update(a, tea.KeyPressMsg{Code: '3', Text: "3"})
	if a.ActiveView() != 2 {
		t.Fatalf("ActiveView() = %d, want 2", a.ActiveView())
	}
}

// findMsg runs cmd, descending into batches, and returns the first T.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	if cmd == nil {
		t.Fatalf("no command, want %T", zero)
	}
	switch msg := cmd().(type) {
	case T:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(T); ok {
				return m
			}
		}
	}
	t.Fatalf("command did not produce %T", zero)
	return zero
}
