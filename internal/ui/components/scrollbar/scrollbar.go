// Package scrollbar renders a one-column vertical scrollbar.
package scrollbar

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	thumbGlyph = "█"
	trackGlyph = "░"
)

// Styles holds the styles needed for the scrollbar.
type Styles struct {
	Track lipgloss.Style
	Thumb lipgloss.Style
}

// Model is a vertical scrollbar over a window of visible lines.
type Model struct {
	styles  Styles
	height  int
	total   int
	visible int
	offset  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new scrollbar model.
func New(opts ...Option) Model {
	var m Model
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the scrollbar styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithHeight sets the height in rows.
func WithHeight(height int) Option {
	return func(m *Model) {
		m.height = height
	}
}

// WithRange sets the total line count, the visible count and the offset of
// the first visible line.
func WithRange(total, visible, offset int) Option {
	return func(m *Model) {
		m.total = total
		m.visible = visible
		m.offset = offset
	}
}

// Rows renders one cell per row. All rows are blank when everything fits.
func (m Model) Rows() []string {
	if m.height <= 0 {
		return nil
	}
	rows := make([]string, m.height)
	if m.total <= m.visible || m.visible <= 0 {
		for i := range rows {
			rows[i] = " "
		}
		return rows
	}

	ratio := float64(m.height) / float64(m.total)
	thumbHeight := max(1, int(math.Round(float64(m.visible)*ratio)))
	thumbOffset := min(max(int(math.Round(float64(m.offset)*ratio)), 0), m.height-thumbHeight)
	for i := range rows {
		if i >= thumbOffset && i < thumbOffset+thumbHeight {
			rows[i] = m.styles.Thumb.Render(thumbGlyph)
		} else {
			rows[i] = m.styles.Track.Render(trackGlyph)
		}
	}
	return rows
}

// View renders the scrollbar rows joined by newlines.
func (m Model) View() string {
	return strings.Join(m.Rows(), "\n")
}
