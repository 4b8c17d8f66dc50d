// Package statusbar renders the top bar of labelled values.
package statusbar

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Item is one labelled value.
type Item struct {
	Label string
	Value string
}

// Styles holds the styles needed by the status bar.
type Styles struct {
	Bar       lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns default styles for the status bar.
func DefaultStyles() Styles {
	return Styles{
		Bar:       lipgloss.NewStyle().Padding(0, 1),
		Label:     lipgloss.NewStyle().Faint(true),
		Value:     lipgloss.NewStyle().Bold(true),
		Separator: lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the status bar component.
type Model struct {
	styles Styles
	items  []Item
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new status bar model.
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

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// WithItems sets the initial items.
func WithItems(items []Item) Option {
	return func(m *Model) {
		m.items = items
	}
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetItems replaces the items.
func (m *Model) SetItems(items []Item) {
	m.items = items
}

// Items returns the current items.
func (m Model) Items() []Item {
	return m.items
}

// Height returns the height of the status bar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the status bar. Items that do not fit are cut.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	parts := make([]string, 0, len(m.items))
	for _, it := range m.items {
		parts = append(parts, m.styles.Label.Render(it.Label+": ")+m.styles.Value.Render(it.Value))
	}
	content := strings.Join(parts, m.styles.Separator.Render(" │ "))

	inner := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	content = ansi.Truncate(content, inner, "…")
	return m.styles.Bar.Width(m.width).Render(content)
}
