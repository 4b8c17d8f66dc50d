// Package help provides the keybindings help dialog.
package help

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazychart/internal/ui/components/frame"
	"github.com/kpumuk/lazychart/internal/ui/components/scrollbar"
	"github.com/kpumuk/lazychart/internal/ui/dialogs"
)

// DialogID identifies the help dialog.
const DialogID dialogs.DialogID = "help"

const (
	minWidth  = 40
	columnGap = 4
)

// Section groups bindings or free text under a title.
type Section struct {
	Title    string
	Bindings []key.Binding
	Lines    []string
}

// Styles holds the styles used by the help dialog.
type Styles struct {
	Title   lipgloss.Style
	Border  lipgloss.Style
	Section lipgloss.Style
	Key     lipgloss.Style
	Desc    lipgloss.Style
	Track   lipgloss.Style
	Thumb   lipgloss.Style
}

// Model defines state for the help dialog.
type Model struct {
	styles   Styles
	sections []Section

	areaWidth, areaHeight int
	width, height         int
	row, col              int
	yOffset               int
}

// Option configures the help dialog.
type Option func(*Model)

// New creates a help dialog.
func New(opts ...Option) *Model {
	m := &Model{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSections sets the sections.
func WithSections(sections []Section) Option {
	return func(m *Model) { m.sections = sections }
}

// Init implements dialogs.Dialog.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements dialogs.Dialog.
func (m *Model) Update(msg tea.Msg) (dialogs.Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.areaWidth, m.areaHeight = msg.Width, msg.Height
		m.layout()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "?", "esc":
			return m, dialogs.Close
		case "up", "k":
			m.scrollTo(m.yOffset - 1)
		case "down", "j":
			m.scrollTo(m.yOffset + 1)
		case "pgup":
			m.scrollTo(m.yOffset - m.visible())
		case "pgdown":
			m.scrollTo(m.yOffset + m.visible())
		case "home":
			m.scrollTo(0)
		case "end":
			m.scrollTo(m.maxOffset())
		}
	}
	return m, nil
}

// View implements dialogs.Dialog.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	all := m.lines()
	end := min(m.yOffset+m.visible(), len(all))
	lines := all[min(m.yOffset, end):end]
	bar := scrollbar.New(
		scrollbar.WithStyles(scrollbar.Styles{Track: m.styles.Track, Thumb: m.styles.Thumb}),
		scrollbar.WithHeight(len(lines)),
		scrollbar.WithRange(len(all), m.visible(), m.yOffset),
	).Rows()
	for i, line := range lines {
		lines[i] = " " + padRight(line, m.textWidth()) + bar[i]
	}

	meta := ""
	if m.maxOffset() > 0 {
		meta = "j/k to scroll"
	}
	state := frame.StyleState{Title: m.styles.Title, Border: m.styles.Border}
	return frame.New(
		frame.WithStyles(frame.Styles{Focused: state, Blurred: state}),
		frame.WithTitle("Help"),
		frame.WithMeta(meta),
		frame.WithContent(strings.Join(lines, "\n")),
		frame.WithSize(m.width, m.height),
		frame.WithFocused(true),
	).View()
}

// Position implements dialogs.Dialog.
func (m *Model) Position() (int, int) {
	return m.row, m.col
}

// ID implements dialogs.Dialog.
func (m *Model) ID() dialogs.DialogID {
	return DialogID
}

// layout centers the dialog, sized to its content where the area allows.
func (m *Model) layout() {
	if m.areaWidth <= 0 || m.areaHeight <= 0 {
		m.width, m.height = 0, 0
		return
	}
	m.width = min(max(m.areaWidth*2/3, minWidth), m.areaWidth)
	m.height = min(len(m.lines())+2, m.areaHeight)
	m.row = (m.areaHeight - m.height) / 2
	m.col = (m.areaWidth - m.width) / 2
	m.scrollTo(m.yOffset)
}

// textWidth is the room inside the border, the left padding and the
// scrollbar column.
func (m *Model) textWidth() int {
	return max(m.width-4, 1)
}

func (m *Model) visible() int {
	return max(m.height-2, 0)
}

func (m *Model) maxOffset() int {
	return max(len(m.lines())-m.visible(), 0)
}

func (m *Model) scrollTo(offset int) {
	m.yOffset = min(max(offset, 0), m.maxOffset())
}

// lines lays the sections out in two columns, or one when narrow.
func (m *Model) lines() []string {
	width := m.textWidth()
	columnWidth := (width - columnGap) / 2
	if columnWidth < minWidth/2 {
		return renderSections(m.sections, width, m.styles)
	}

	left, right := splitSections(m.sections)
	leftLines := renderSections(left, columnWidth, m.styles)
	rightLines := renderSections(right, columnWidth, m.styles)
	lines := make([]string, max(len(leftLines), len(rightLines)))
	for i := range lines {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		lines[i] = padRight(l, columnWidth) + strings.Repeat(" ", columnGap) + r
	}
	return lines
}

// splitSections balances sections between two columns by height, keeping
// their order within each column.
func splitSections(sections []Section) (left, right []Section) {
	var lh, rh int
	for _, s := range sections {
		h := sectionHeight(s)
		if lh <= rh {
			left = append(left, s)
			lh += h
		} else {
			right = append(right, s)
			rh += h
		}
	}
	return left, right
}

func sectionHeight(s Section) int {
	h := len(s.Lines) + 1
	for _, b := range s.Bindings {
		if b.Enabled() && b.Help().Key != "" {
			h++
		}
	}
	return h
}

func renderSections(sections []Section, width int, styles Styles) []string {
	var lines []string
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, ansi.Truncate(styles.Section.Render(section.Title), width, ""))
		}
		for _, line := range section.Lines {
			lines = append(lines, ansi.Truncate(line, width, ""))
		}

		keyWidth := 0
		for _, b := range section.Bindings {
			if b.Enabled() {
				keyWidth = max(keyWidth, ansi.StringWidth(b.Help().Key))
			}
		}
		for _, b := range section.Bindings {
			h := b.Help()
			if !b.Enabled() || h.Key == "" {
				continue
			}
			line := styles.Key.Render(padRight(h.Key, keyWidth))
			if h.Desc != "" {
				line += " " + styles.Desc.Render(h.Desc)
			}
			lines = append(lines, ansi.Truncate(line, width, ""))
		}
	}
	return lines
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
