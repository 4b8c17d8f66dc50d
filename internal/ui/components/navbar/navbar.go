// Package navbar renders the bottom navigation bar.
package navbar

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ViewInfo holds information about a view for display in the navbar.
type ViewInfo struct {
	Name string
}

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar    lipgloss.Style
	Key    lipgloss.Style
	Item   lipgloss.Style
	Active lipgloss.Style
	Quit   lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:    lipgloss.NewStyle().Padding(0, 1),
		Key:    lipgloss.NewStyle().Padding(0, 1),
		Item:   lipgloss.NewStyle().PaddingRight(1),
		Active: lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Quit:   lipgloss.NewStyle().PaddingRight(1),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles Styles
	views  []ViewInfo
	active int
	hints  []key.Binding
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
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

// WithViews sets the views to display.
func WithViews(views []ViewInfo) Option {
	return func(m *Model) {
		m.views = views
	}
}

// WithHints sets the key hints shown after the views.
func WithHints(hints []key.Binding) Option {
	return func(m *Model) {
		m.hints = hints
	}
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetHints replaces the key hints.
func (m *Model) SetHints(hints []key.Binding) {
	m.hints = hints
}

// SetActive marks the view at index i as the current one.
func (m *Model) SetActive(i int) {
	m.active = i
}

// Active returns the index of the current view.
func (m Model) Active() int {
	return m.active
}

// Height returns the height of the navbar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the navbar.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	items := ""
	for i, v := range m.views {
		items += m.styles.Key.Render(strconv.Itoa(i + 1))
		if i == m.active {
			items += m.styles.Active.Render(v.Name)
		} else {
			items += m.styles.Item.Render(v.Name)
		}
	}
	for _, h := range m.hints {
		if !h.Enabled() {
			continue
		}
		help := h.Help()
		items += m.styles.Key.Render(help.Key) + m.styles.Quit.Render(help.Desc)
	}

	inner := max(m.width-m.styles.Bar.GetHorizontalFrameSize(), 0)
	items = ansi.Truncate(items, inner, "")
	return m.styles.Bar.Width(m.width).MaxWidth(m.width).Render(items)
}
