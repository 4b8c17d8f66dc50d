// Package frame renders a titled bordered box around a chart pane.
package frame

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// StyleState holds styles for a focus state.
type StyleState struct {
	Title  lipgloss.Style
	Border lipgloss.Style
}

// Styles holds focus-aware styles for a frame.
type Styles struct {
	Focused StyleState
	Blurred StyleState
}

// DefaultStyles returns default styles for a frame.
func DefaultStyles() Styles {
	state := StyleState{
		Title:  lipgloss.NewStyle().Bold(true),
		Border: lipgloss.NewStyle(),
	}
	return Styles{
		Focused: state,
		Blurred: state,
	}
}

// Model defines state for the frame component.
type Model struct {
	styles  Styles
	title   string
	meta    string
	content string
	width   int
	height  int
	focused bool
	border  lipgloss.Border
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new frame model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		border: lipgloss.RoundedBorder(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithMeta sets the text shown on the right of the top border.
func WithMeta(meta string) Option {
	return func(m *Model) {
		m.meta = meta
	}
}

// WithContent sets the content.
func WithContent(content string) Option {
	return func(m *Model) {
		m.content = content
	}
}

// WithSize sets the outer width and height.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithFocused sets the focus state.
func WithFocused(focused bool) Option {
	return func(m *Model) {
		m.focused = focused
	}
}

// Inner returns the content size for an outer size.
func Inner(width, height int) (int, int) {
	return max(width-2, 0), max(height-2, 0)
}

// View renders the frame with the current content. Content lines are cut
// or padded to the inner size.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}

	state := m.styles.Blurred
	if m.focused {
		state = m.styles.Focused
	}
	innerWidth, innerHeight := Inner(m.width, m.height)

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTop(state, innerWidth))

	content := strings.Split(m.content, "\n")
	vBar := state.Border.Render(m.border.Left)
	vBarRight := state.Border.Render(m.border.Right)
	for i := range innerHeight {
		var line string
		if i < len(content) {
			line = ansi.Truncate(content[i], innerWidth, "")
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		lines = append(lines, vBar+line+vBarRight)
	}

	lines = append(lines, state.Border.Render(m.border.BottomLeft)+
		strings.Repeat(state.Border.Render(m.border.Bottom), innerWidth)+
		state.Border.Render(m.border.BottomRight))
	return strings.Join(lines, "\n")
}

func (m Model) renderTop(state StyleState, innerWidth int) string {
	hBar := state.Border.Render(m.border.Top)
	available := max(innerWidth-2, 0)

	title := ""
	if m.title != "" {
		title = " " + m.title + " "
	}
	meta := ""
	if m.meta != "" {
		meta = " " + m.meta + " "
	}
	if ansi.StringWidth(title)+ansi.StringWidth(meta) > available {
		meta = ""
	}
	title = ansi.Truncate(title, available, "…")

	styledTitle := state.Title.Render(title)
	styledMeta := state.Border.Render(meta)
	remaining := max(available-lipgloss.Width(styledTitle)-lipgloss.Width(styledMeta), 0)

	top := strings.Repeat(hBar, min(innerWidth, 1)) + styledTitle +
		strings.Repeat(hBar, remaining) + styledMeta
	if innerWidth > 1 {
		top += hBar
	}
	return state.Border.Render(m.border.TopLeft) + top + state.Border.Render(m.border.TopRight)
}
