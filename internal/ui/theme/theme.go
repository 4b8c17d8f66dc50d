package theme

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"

	"github.com/kpumuk/lazychart/internal/chart"
)

// Pair is a hex color for light and dark terminal backgrounds. Chart colors
// are plain strings handed to the surface, so they are resolved up front
// rather than through compat.
type Pair struct {
	Light string
	Dark  string
}

// Pick returns the variant for the background.
func (p Pair) Pick(dark bool) string {
	if dark {
		return p.Dark
	}
	return p.Light
}

// Theme defines all colors used throughout the UI.
type Theme struct {
	// Base colors
	Primary compat.CompleteAdaptiveColor

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Border colors
	Border      compat.AdaptiveColor
	BorderFocus compat.CompleteAdaptiveColor

	// Status bar
	StatusBg   compat.CompleteAdaptiveColor
	StatusText compat.CompleteAdaptiveColor

	Error compat.AdaptiveColor

	// Chart furniture and series
	ChartAxis  Pair
	ChartGrid  Pair
	ChartText  Pair
	ChartFocus Pair
	Series     []Pair
}

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1864AB"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4DABF7"), ANSI256: lipgloss.Color("75"), ANSI: lipgloss.Color("12")},
	},

	// Text
	Text: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#111827"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F9FAFB"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	},
	TextMuted: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#6B7280"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9CA3AF"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	},

	// Borders
	Border: compat.AdaptiveColor{
		Light: lipgloss.Color("#D1D5DB"), // Gray-300
		Dark:  lipgloss.Color("#374151"), // Gray-700
	},
	BorderFocus: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1864AB"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4DABF7"), ANSI256: lipgloss.Color("75"), ANSI: lipgloss.Color("12")},
	},

	StatusBg: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1c7ed6"), ANSI256: lipgloss.Color("33"), ANSI: lipgloss.Color("12")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#1864AB"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
	},
	StatusText: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#f8f9fa"), ANSI256: lipgloss.Color("255"), ANSI: lipgloss.Color("15")},
	},

	Error: compat.AdaptiveColor{
		Light: lipgloss.Color("#E03131"),
		Dark:  lipgloss.Color("#FF6B6B"),
	},

	ChartAxis:  Pair{Light: "#495057", Dark: "#CED4DA"},
	ChartGrid:  Pair{Light: "#DEE2E6", Dark: "#343A40"},
	ChartText:  Pair{Light: "#212529", Dark: "#F1F3F5"},
	ChartFocus: Pair{Light: "#000000", Dark: "#FFFFFF"},
	Series: []Pair{
		{Light: "#1971C2", Dark: "#4DABF7"}, // blue
		{Light: "#E8590C", Dark: "#FF922B"}, // orange
		{Light: "#2F9E44", Dark: "#69DB7C"}, // green
		{Light: "#C2255C", Dark: "#F783AC"}, // pink
		{Light: "#6741D9", Dark: "#9775FA"}, // violet
		{Light: "#0C8599", Dark: "#3BC9DB"}, // cyan
		{Light: "#E67700", Dark: "#FFD43B"}, // yellow
		{Light: "#5C940D", Dark: "#A9E34B"}, // lime
	},
}

// Chart returns the chart furniture colors for the background.
func (t Theme) Chart(dark bool) chart.Theme {
	return chart.Theme{
		Axis:   t.ChartAxis.Pick(dark),
		Grid:   t.ChartGrid.Pick(dark),
		Text:   t.ChartText.Pick(dark),
		Focus:  t.ChartFocus.Pick(dark),
		Legend: t.ChartText.Pick(dark),
	}
}

// SeriesColor returns the i-th palette color, cycling through the palette.
func (t Theme) SeriesColor(i int, dark bool) string {
	if len(t.Series) == 0 {
		return t.ChartText.Pick(dark)
	}
	return t.Series[i%len(t.Series)].Pick(dark)
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	// Status bar
	StatusBar   lipgloss.Style
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style
	StatusSep   lipgloss.Style

	// Navbar
	NavBar    lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavKey    lipgloss.Style
	NavQuit   lipgloss.Style

	// Content
	ViewTitle lipgloss.Style
	ViewText  lipgloss.Style
	ViewMuted lipgloss.Style

	// Layout helpers
	BorderStyle lipgloss.Style
	FocusBorder lipgloss.Style

	// Tooltip
	TooltipTitle  lipgloss.Style
	TooltipBorder lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		// Status bar
		StatusBar: lipgloss.NewStyle().
			Foreground(t.StatusText).
			Background(t.StatusBg).
			Padding(0, 1),

		StatusLabel: lipgloss.NewStyle().
			Foreground(t.StatusText).
			Background(t.StatusBg),

		StatusValue: lipgloss.NewStyle().
			Foreground(t.StatusText).
			Background(t.StatusBg).
			Bold(true),

		StatusSep: lipgloss.NewStyle().
			Foreground(t.StatusText).
			Background(t.StatusBg).
			Faint(true),

		// Navbar
		NavBar: lipgloss.NewStyle().
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(1),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		NavQuit: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		// Content
		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Layout helpers
		BorderStyle: lipgloss.NewStyle().
			Foreground(t.Border),

		FocusBorder: lipgloss.NewStyle().
			Foreground(t.BorderFocus),

		TooltipTitle: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		TooltipBorder: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
