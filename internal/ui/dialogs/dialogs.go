// Package dialogs provides a stack of modal dialogs drawn over the content.
package dialogs

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazychart/internal/ui/charts"
)

// DialogID identifies a dialog instance.
type DialogID string

// Dialog is a modal component. Position is the top-left cell relative to
// the area the stack was sized to.
type Dialog interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string
	Position() (row, col int)
	ID() DialogID
}

// OpenMsg opens a dialog, or raises it if one with the same ID is open.
type OpenMsg struct {
	Dialog Dialog
}

// CloseMsg closes the topmost dialog.
type CloseMsg struct{}

// Close returns a command closing the topmost dialog.
func Close() tea.Msg {
	return CloseMsg{}
}

// Stack holds open dialogs; the last one receives input.
type Stack struct {
	width, height int
	dialogs       []Dialog
}

// Open reports whether any dialog is showing.
func (s *Stack) Open() bool {
	return len(s.dialogs) > 0
}

// Active returns the topmost dialog, or nil.
func (s *Stack) Active() Dialog {
	if len(s.dialogs) == 0 {
		return nil
	}
	return s.dialogs[len(s.dialogs)-1]
}

// Len returns the number of open dialogs.
func (s *Stack) Len() int {
	return len(s.dialogs)
}

// SetSize resizes every dialog to the area it is drawn over.
func (s *Stack) SetSize(width, height int) tea.Cmd {
	s.width, s.height = width, height
	cmds := make([]tea.Cmd, 0, len(s.dialogs))
	for i := range s.dialogs {
		var cmd tea.Cmd
		s.dialogs[i], cmd = s.dialogs[i].Update(s.sizeMsg())
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update opens and closes dialogs and forwards everything else to the
// topmost one. It reports whether the stack consumed msg.
func (s *Stack) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenMsg:
		return true, s.open(msg.Dialog)
	case CloseMsg:
		if len(s.dialogs) > 0 {
			s.dialogs = s.dialogs[:len(s.dialogs)-1]
		}
		return true, nil
	}
	if len(s.dialogs) == 0 {
		return false, nil
	}
	top := len(s.dialogs) - 1
	var cmd tea.Cmd
	s.dialogs[top], cmd = s.dialogs[top].Update(msg)
	return true, cmd
}

func (s *Stack) open(d Dialog) tea.Cmd {
	idx := slices.IndexFunc(s.dialogs, func(o Dialog) bool { return o.ID() == d.ID() })
	if idx >= 0 {
		// Raise the open instance, keeping its scroll state.
		existing := s.dialogs[idx]
		s.dialogs = append(slices.Delete(s.dialogs, idx, idx+1), existing)
		return nil
	}

	s.dialogs = append(s.dialogs, d)
	initCmd := d.Init()
	var cmd tea.Cmd
	s.dialogs[len(s.dialogs)-1], cmd = d.Update(s.sizeMsg())
	return tea.Batch(initCmd, cmd)
}

func (s *Stack) sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: s.width, Height: s.height}
}

// Render draws the dialogs over background, bottom first.
func (s *Stack) Render(background string) string {
	for _, d := range s.dialogs {
		row, col := d.Position()
		background = charts.Overlay(background, d.View(), col, row)
	}
	return background
}
