package dialogs

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

type testDialog struct {
	id        DialogID
	initCalls int
	updates   []tea.Msg
	width     int
	height    int
	row, col  int
	view      string
}

func (d *testDialog) Init() tea.Cmd {
	d.initCalls++
	return nil
}

func (d *testDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	d.updates = append(d.updates, msg)
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = size.Width
		d.height = size.Height
	}
	return d, nil
}

func (d *testDialog) View() string         { return d.view }
func (d *testDialog) Position() (int, int) { return d.row, d.col }
func (d *testDialog) ID() DialogID         { return d.id }

func TestStackOpenClose(t *testing.T) {
	t.Parallel()

	var s Stack
	s.SetSize(80, 24)

	d := &testDialog{id: "a"}
	if ok, _ := s.Update(OpenMsg{Dialog: d}); !ok {
		t.Fatal("OpenMsg not consumed")
	}
	if !s.Open() {
		t.Fatal("expected an open dialog")
	}
	if d.initCalls != 1 {
		t.Fatalf("init calls = %d, want 1", d.initCalls)
	}
	if d.width != 80 || d.height != 24 {
		t.Fatalf("dialog size = %dx%d, want 80x24", d.width, d.height)
	}

	s.Update(CloseMsg{})
	if s.Open() {
		t.Fatal("expected the stack to be empty")
	}
	if ok, _ := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); ok {
		t.Fatal("empty stack consumed a key")
	}
}

func TestStackRaisesExistingDialog(t *testing.T) {
	t.Parallel()

	var s Stack
	a := &testDialog{id: "a"}
	s.Update(OpenMsg{Dialog: a})
	s.Update(OpenMsg{Dialog: &testDialog{id: "b"}})
	s.Update(OpenMsg{Dialog: &testDialog{id: "a"}})

	if got := s.Active(); got != a {
		t.Fatalf("Active() = %p, want %p", got, a)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	s.Update(OpenMsg{Dialog: a})
	if a.initCalls != 1 {
		t.Fatalf("init calls = %d, want 1", a.initCalls)
	}
}

func TestStackForwardsToTop(t *testing.T) {
	t.Parallel()

	var s Stack
	a := &testDialog{id: "a"}
	b := &testDialog{id: "b"}
	s.Update(OpenMsg{Dialog: a})
	s.Update(OpenMsg{Dialog: b})

	msg := tea.KeyPressMsg{Code: 'x', Text: "x"}
	if ok, _ := s.Update(msg); !ok {
		t.Fatal("key not consumed")
	}
	if len(a.updates) != 1 {
		t.Fatalf("a updates = %d, want 1", len(a.updates))
	}
	if got := b.updates[len(b.updates)-1]; got != msg {
		t.Fatalf("b last update = %T, want the key", got)
	}
}

func TestStackRender(t *testing.T) {
	t.Parallel()

	var s Stack
	s.Update(OpenMsg{Dialog: &testDialog{id: "a", row: 1, col: 1, view: "ab"}})
	s.Update(OpenMsg{Dialog: &testDialog{id: "b", row: 1, col: 2, view: "c"}})

	got := s.Render("....\n....\n....")
	want := "....\n.ac.\n...."
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}
