// Package tooltip renders a chart tooltip as a small bordered box.
package tooltip

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazychart/internal/chart"
)

// Marker precedes every row and takes the row color.
const Marker = "■"

// Styles holds the styles needed by the tooltip.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns default styles for the tooltip.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Label:  lipgloss.NewStyle().Faint(true),
		Value:  lipgloss.NewStyle().Bold(true),
		Border: lipgloss.NewStyle(),
	}
}

// Model defines state for the tooltip component.
type Model struct {
	styles Styles
	tip    chart.Tooltip
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new tooltip model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
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

// WithTooltip sets the content.
func WithTooltip(t chart.Tooltip) Option {
	return func(m *Model) {
		m.tip = t
	}
}

// SetTooltip replaces the content.
func (m *Model) SetTooltip(t chart.Tooltip) {
	m.tip = t
}

// Size returns the rendered width and height in cells.
func (m Model) Size() (int, int) {
	view := m.View()
	return lipgloss.Width(view), lipgloss.Height(view)
}

// View renders the tooltip box: the title on the top border and one row per
// item with a colored marker, the label and the right-aligned value.
func (m Model) View() string {
	var labelWidth, valueWidth int
	for _, it := range m.tip.Items {
		labelWidth = max(labelWidth, ansi.StringWidth(it.Label))
		valueWidth = max(valueWidth, ansi.StringWidth(it.Value))
	}

	rows := make([]string, 0, len(m.tip.Items))
	for _, it := range m.tip.Items {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render(Marker)
		label := it.Label + strings.Repeat(" ", labelWidth-ansi.StringWidth(it.Label))
		value := strings.Repeat(" ", valueWidth-ansi.StringWidth(it.Value)) + it.Value
		rows = append(rows, marker+" "+m.styles.Label.Render(label)+"  "+m.styles.Value.Render(value))
	}

	rowWidth := 0
	if len(rows) > 0 {
		rowWidth = lipgloss.Width(rows[0])
	}
	title := ""
	if m.tip.Title != "" {
		title = " " + m.tip.Title + " "
	}
	inner := max(rowWidth+2, ansi.StringWidth(title)+2)

	border := lipgloss.RoundedBorder()
	hBar := m.styles.Border.Render(border.Top)
	styledTitle := m.styles.Title.Render(title)
	top := m.styles.Border.Render(border.TopLeft) + hBar + styledTitle +
		strings.Repeat(hBar, inner-1-lipgloss.Width(styledTitle)) +
		m.styles.Border.Render(border.TopRight)

	vBar := m.styles.Border.Render(border.Left)
	vBarRight := m.styles.Border.Render(border.Right)
	lines := []string{top}
	for _, row := range rows {
		pad := inner - 1 - lipgloss.Width(row)
		lines = append(lines, vBar+" "+row+strings.Repeat(" ", pad)+vBarRight)
	}
	lines = append(lines, m.styles.Border.Render(border.BottomLeft)+
		strings.Repeat(hBar, inner)+
		m.styles.Border.Render(border.BottomRight))
	return strings.Join(lines, "\n")
}
