package views

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
)

// Styles holds the view-related styles from the theme
type Styles struct {
	Text          lipgloss.Style
	Muted         lipgloss.Style
	Title         lipgloss.Style
	BorderStyle   lipgloss.Style
	FocusBorder   lipgloss.Style
	TooltipTitle  lipgloss.Style
	TooltipBorder lipgloss.Style
}

// View defines the interface that all views must implement
type View interface {
	// Init returns an initial command for the view
	Init() tea.Cmd

	// Update handles messages and returns the updated view and any commands
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the view as a string
	View() string

	// Name returns the display name for this view (shown in navbar)
	Name() string

	// ShortHelp returns keybindings to show in the navbar
	ShortHelp() []key.Binding

	// SetSize updates the view dimensions
	SetSize(width, height int) View

	// SetStyles updates the view styles
	SetStyles(styles Styles) View
}

// StatusProvider is implemented by views that add items to the status bar.
type StatusProvider interface {
	Status() []statusbar.Item
}

// ErrorProvider is implemented by views that can fail to draw.
type ErrorProvider interface {
	Err() error
}
