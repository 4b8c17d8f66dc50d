// Package ui renders the Bubble Tea application UI.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kpumuk/lazychart/internal/bucket"
	"github.com/kpumuk/lazychart/internal/charterr"
	"github.com/kpumuk/lazychart/internal/dataset"
	"github.com/kpumuk/lazychart/internal/source"
	"github.com/kpumuk/lazychart/internal/ui/components/errorpopup"
	"github.com/kpumuk/lazychart/internal/ui/components/navbar"
	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
	"github.com/kpumuk/lazychart/internal/ui/dialogs"
	"github.com/kpumuk/lazychart/internal/ui/dialogs/help"
	"github.com/kpumuk/lazychart/internal/ui/format"
	"github.com/kpumuk/lazychart/internal/ui/theme"
	"github.com/kpumuk/lazychart/internal/ui/views"
)

// resizeDebounce delays chart re-layout until the terminal stops resizing.
const resizeDebounce = 100 * time.Millisecond

// resizeMsg applies the latest terminal size if no newer one arrived.
type resizeMsg struct {
	gen uint64
}

// sourceDoneMsg reports that the event source stopped.
type sourceDoneMsg struct {
	err error
}

// Config describes what the application shows.
type Config struct {
	Dataset      dataset.Dataset
	Source       source.Source
	Range        time.Duration
	DrawInterval time.Duration
	Logger       *slog.Logger
	Now          func() time.Time
}

// App is the main application model.
type App struct {
	keys       KeyMap
	width      int
	height     int
	ready      bool
	activeView int
	views      []views.View
	statusbar  statusbar.Model
	navbar     navbar.Model
	errorPopup errorpopup.Model
	dialogs    dialogs.Stack
	styles     theme.Styles
	host       *Host
	logger     *slog.Logger

	source    source.Source
	points    chan []bucket.Point
	ctx       context.Context
	cancel    context.CancelFunc
	sourceErr error

	resizeGen     uint64
	pendingWidth  int
	pendingHeight int
}

// New creates a new App instance.
func New(cfg Config) App {
	styles := theme.NewStyles()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	host := NewHost(cfg.Now)

	env := views.Env{
		Host:   host,
		Theme:  theme.DefaultTheme,
		Format: format.Chart{},
		Logger: logger,
	}
	sourceName := "none"
	if cfg.Source != nil {
		sourceName = cfg.Source.Name()
	}
	viewList := []views.View{
		views.NewBar(env, cfg.Dataset),
		views.NewLine(env, cfg.Dataset),
		views.NewPie(env, cfg.Dataset),
		views.NewStream(env, views.StreamOptions{
			Source:       sourceName,
			Range:        cfg.Range,
			DrawInterval: cfg.DrawInterval,
		}),
	}

	// Apply styles to views
	viewStyles := views.Styles{
		Text:          styles.ViewText,
		Muted:         styles.ViewMuted,
		Title:         styles.ViewTitle,
		BorderStyle:   styles.BorderStyle,
		FocusBorder:   styles.FocusBorder,
		TooltipTitle:  styles.TooltipTitle,
		TooltipBorder: styles.TooltipBorder,
	}
	for i := range viewList {
		viewList[i] = viewList[i].SetStyles(viewStyles)
	}

	// Build navbar view infos
	navViews := make([]navbar.ViewInfo, len(viewList))
	for i, v := range viewList {
		navViews[i] = navbar.ViewInfo{Name: v.Name()}
	}

	ctx, cancel := context.WithCancel(context.Background())
	keys := DefaultKeyMap()
	a := App{
		keys:  keys,
		views: viewList,
		statusbar: statusbar.New(
			statusbar.WithStyles(statusbar.Styles{
				Bar:       styles.StatusBar,
				Label:     styles.StatusLabel,
				Value:     styles.StatusValue,
				Separator: styles.StatusSep,
			}),
		),
		navbar: navbar.New(
			navbar.WithStyles(navbar.Styles{
				Bar:    styles.NavBar,
				Key:    styles.NavKey,
				Item:   styles.NavItem,
				Active: styles.NavActive,
				Quit:   styles.NavQuit,
			}),
			navbar.WithViews(navViews),
		),
		errorPopup: errorpopup.New(
			errorpopup.WithStyles(errorpopup.Styles{
				Title:   styles.ErrorTitle,
				Message: styles.ViewMuted,
				Border:  styles.ErrorBorder,
			}),
		),
		styles: styles,
		host:   host,
		logger: logger,
		source: cfg.Source,
		points: make(chan []bucket.Point, 16),
		ctx:    ctx,
		cancel: cancel,
	}
	a.navbar.SetHints(a.hints())
	return a
}

// Close stops the event source.
func (a App) Close() {
	a.cancel()
}

// Host returns the scheduler driving chart animations and timers.
func (a App) Host() *Host {
	return a.host
}

// ActiveView returns the index of the visible view.
func (a App) ActiveView() int {
	return a.activeView
}

// Views returns all views in navbar order.
func (a App) Views() []views.View {
	return a.views
}

func (a App) hints() []key.Binding {
	hints := a.views[a.activeView].ShortHelp()
	return append(hints, a.keys.Help, a.keys.Quit)
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.RequestBackgroundColor,
		a.views[a.activeView].Init(),
	}
	if a.source != nil {
		cmds = append(cmds, a.runSource(), a.waitForPoints())
	}
	return tea.Batch(cmds...)
}

// runSource runs the source until it stops and reports why.
func (a App) runSource() tea.Cmd {
	src, ctx, out := a.source, a.ctx, a.points
	return func() tea.Msg {
		return sourceDoneMsg{err: src.Run(ctx, out)}
	}
}

// waitForPoints delivers the next batch of events.
func (a App) waitForPoints() tea.Cmd {
	ctx, in := a.ctx, a.points
	return func() tea.Msg {
		select {
		case batch := <-in:
			return views.PointsMsg{Points: batch}
		case <-ctx.Done():
			return nil
		}
	}
}

// streamView returns the index of the view that consumes events.
func (a App) streamView() int {
	for i, v := range a.views {
		if _, ok := v.(*views.Stream); ok {
			return i
		}
	}
	return -1
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.host.Update(msg) {
		return a, a.host.Cmd()
	}

	var cmds []tea.Cmd

	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, a.keys.Quit) {
		a.cancel()
		return a, tea.Quit
	}
	switch msg.(type) {
	case dialogs.OpenMsg, dialogs.CloseMsg, tea.KeyMsg:
		if ok, cmd := a.dialogs.Update(msg); ok {
			return a, tea.Batch(cmd, a.host.Cmd())
		}
	}

	switch msg := msg.(type) {
	case views.PointsMsg:
		if i := a.streamView(); i >= 0 {
			updatedView, cmd := a.views[i].Update(msg)
			a.views[i] = updatedView
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, a.waitForPoints())

	case sourceDoneMsg:
		if msg.err != nil {
			a.logger.Error("event source stopped", "source", a.source.Name(), "error", msg.err)
			a.sourceErr = msg.err
		}

	case tea.BackgroundColorMsg:
		bg := views.BackgroundMsg{Dark: msg.IsDark()}
		for i := range a.views {
			updatedView, cmd := a.views[i].Update(bg)
			a.views[i] = updatedView
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Help):
			cmds = append(cmds, a.openHelp())

		case key.Matches(msg, a.keys.Tab):
			cmds = append(cmds, a.activate((a.activeView+1)%len(a.views)))

		case key.Matches(msg, a.keys.ShiftTab):
			cmds = append(cmds, a.activate((a.activeView+len(a.views)-1)%len(a.views)))

		default:
			switched := false
			for i, b := range a.keys.views() {
				if i < len(a.views) && key.Matches(msg, b) {
					cmds = append(cmds, a.activate(i))
					switched = true
					break
				}
			}
			if !switched {
				// Pass to active view
				updatedView, cmd := a.views[a.activeView].Update(msg)
				a.views[a.activeView] = updatedView
				cmds = append(cmds, cmd)
			}
		}

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		top := a.statusbar.Height()
		var pointer tea.Msg = views.PointerLeaveMsg{}
		if mouse.Y >= top && mouse.Y < a.height-a.navbar.Height() {
			pointer = views.PointerMsg{X: mouse.X, Y: mouse.Y - top}
		}
		updatedView, cmd := a.views[a.activeView].Update(pointer)
		a.views[a.activeView] = updatedView
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.statusbar.SetWidth(msg.Width)
		a.navbar.SetWidth(msg.Width)
		if !a.ready {
			a.ready = true
			a.resizeViews()
			break
		}
		a.resizeGen++
		gen := a.resizeGen
		cmds = append(cmds, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return resizeMsg{gen: gen}
		}))

	case resizeMsg:
		if msg.gen == a.resizeGen {
			a.resizeViews()
		}

	default:
		// Pass to active view
		updatedView, cmd := a.views[a.activeView].Update(msg)
		a.views[a.activeView] = updatedView
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, a.host.Cmd())
	return a, tea.Batch(cmds...)
}

// activate switches to view i and lets it replay its entry animation.
func (a *App) activate(i int) tea.Cmd {
	if i == a.activeView {
		return nil
	}
	updatedView, _ := a.views[a.activeView].Update(views.PointerLeaveMsg{})
	a.views[a.activeView] = updatedView
	a.activeView = i
	a.navbar.SetActive(i)
	a.navbar.SetHints(a.hints())
	return a.views[i].Init()
}

func (a *App) contentSize() (int, int) {
	return a.width, max(a.height-a.statusbar.Height()-a.navbar.Height(), 0)
}

func (a *App) resizeViews() {
	width, height := a.contentSize()
	for i := range a.views {
		a.views[i] = a.views[i].SetSize(width, height)
	}
	a.errorPopup.SetSize(width, height)
	a.dialogs.SetSize(width, height)
}

// openHelp lists the global keys and those of the active view.
func (a App) openHelp() tea.Cmd {
	active := a.views[a.activeView]
	sections := []help.Section{
		{Title: "Global", Bindings: a.keys.global()},
		{Title: active.Name(), Bindings: active.ShortHelp()},
		{Title: "Mouse", Lines: []string{"Hover a bar, point or slice", "to see its values"}},
	}
	dialog := help.New(
		help.WithSections(sections),
		help.WithStyles(help.Styles{
			Title:   a.styles.ViewTitle,
			Border:  a.styles.FocusBorder,
			Section: a.styles.ViewTitle,
			Key:     a.styles.ViewText.Bold(true),
			Desc:    a.styles.ViewMuted,
			Track:   a.styles.BorderStyle,
			Thumb:   a.styles.FocusBorder,
		}),
	)
	return func() tea.Msg { return dialogs.OpenMsg{Dialog: dialog} }
}

// currentError returns the error to show over the content, if any.
func (a App) currentError() (string, error) {
	if a.sourceErr != nil {
		return "Event source stopped", a.sourceErr
	}
	if p, ok := a.views[a.activeView].(views.ErrorProvider); ok {
		if err := p.Err(); err != nil {
			return "Cannot draw " + a.views[a.activeView].Name(), err
		}
	}
	return "", nil
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	if !a.ready {
		v.SetContent("Initializing...")
		return v
	}
	v.SetContent(a.render())
	return v
}

// render lays out the status bar, the active view and the navbar.
func (a App) render() string {
	if p, ok := a.views[a.activeView].(views.StatusProvider); ok {
		a.statusbar.SetItems(p.Status())
	} else {
		a.statusbar.SetItems(nil)
	}

	content := a.views[a.activeView].View()
	if title, err := a.currentError(); err != nil {
		a.errorPopup.SetError(title, err.Error(), errorHint(err))
		a.errorPopup.SetBackground(content)
		content = a.errorPopup.View()
	}
	content = a.dialogs.Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.statusbar.View(),
		content,
		a.navbar.View(),
	)
}

// errorHint suggests a fix for a chart or source error.
func errorHint(err error) string {
	var layout *charterr.InvalidLayoutError
	var degenerate *charterr.DegenerateRangeError
	switch {
	case errors.As(err, &layout), errors.As(err, &degenerate):
		return "Enlarge the terminal"
	case errors.Is(err, context.DeadlineExceeded):
		return "Check that the source is reachable"
	default:
		return ""
	}
}
