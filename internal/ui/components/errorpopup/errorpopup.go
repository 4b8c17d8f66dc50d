// Package errorpopup renders an error box centered over other content.
package errorpopup

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// maxWidth caps the popup width.
const maxWidth = 60

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.Color("#FF0000")
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// Model defines state for the error popup component.
type Model struct {
	styles     Styles
	title      string
	message    string
	hint       string
	background string
	width      int
	height     int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		title:  "Error",
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

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetError sets the title, message and hint at once.
func (m *Model) SetError(title, msg, hint string) {
	m.title = title
	m.message = msg
	m.hint = hint
}

// SetBackground sets the background content to overlay on.
func (m *Model) SetBackground(content string) {
	m.background = content
}

// Message returns the current error message.
func (m Model) Message() string {
	return m.message
}

// HasError returns true if there is an error message to display.
func (m Model) HasError() bool {
	return m.message != ""
}

// View renders the error popup overlaid on the background content. Without
// a background only the popup is returned.
func (m Model) View() string {
	if m.message == "" || m.width < 2 || m.height <= 0 {
		return m.background
	}

	body := m.styles.Message.Render(m.message)
	if m.hint != "" {
		body += "\n\n" + m.styles.Message.Render(m.hint)
	}
	panel := strings.Split(m.renderBox(body, min(m.width, maxWidth)), "\n")
	if len(panel) > m.height {
		panel = append(panel[:m.height-1], panel[len(panel)-1])
	}

	if m.background == "" {
		return strings.Join(panel, "\n")
	}

	lines := strings.Split(m.background, "\n")
	start := (m.height - len(panel)) / 2
	for i, line := range panel {
		row := start + i
		if row >= 0 && row < len(lines) {
			lines[row] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
		}
	}
	return strings.Join(lines, "\n")
}

// renderBox renders content in a box with the title on the top border.
func (m Model) renderBox(content string, width int) string {
	border := lipgloss.RoundedBorder()
	hBar := m.styles.Border.Render(border.Top)

	title := m.styles.Title.Render(" " + m.title + " ")
	rightPad := max(width-2-1-lipgloss.Width(title), 0)
	top := m.styles.Border.Render(border.TopLeft) + hBar + title +
		strings.Repeat(hBar, rightPad) + m.styles.Border.Render(border.TopRight)
	if w := lipgloss.Width(top); w > width {
		top = m.styles.Border.Render(border.TopLeft) + strings.Repeat(hBar, width-2) + m.styles.Border.Render(border.TopRight)
	}

	inner := width - 2
	rendered := lipgloss.NewStyle().Width(inner).Padding(0, 1).Render(content)

	vBar := m.styles.Border.Render(border.Left)
	vBarRight := m.styles.Border.Render(border.Right)
	var out []string
	out = append(out, top)
	for _, line := range strings.Split(rendered, "\n") {
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		out = append(out, vBar+line+vBarRight)
	}
	out = append(out, m.styles.Border.Render(border.BottomLeft)+
		strings.Repeat(hBar, inner)+
		m.styles.Border.Render(border.BottomRight))
	return strings.Join(out, "\n")
}
