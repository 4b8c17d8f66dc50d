package views

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazychart/internal/chart/linechart"
	"github.com/kpumuk/lazychart/internal/dataset"
	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
)

// Line shows the multi-series line chart.
type Line struct {
	env  Env
	data dataset.Dataset
	dark bool
	pane pane

	chart *linechart.Chart
	err   error
}

// NewLine creates a line chart view over ds.Line.
func NewLine(env Env, ds dataset.Dataset) *Line {
	l := &Line{
		env:  env.withDefaults(),
		data: ds,
		dark: true,
		pane: newPane("Lines"),
	}
	l.chart = linechart.New(l.env.Host, l.pane.canvas)
	return l
}

// Init implements View. Every activation replays the draw-in animation.
func (l *Line) Init() tea.Cmd {
	l.render()
	return nil
}

func (l *Line) render() {
	width, height := l.pane.size()
	if width == 0 || height == 0 {
		return
	}
	th, m := l.env.chartTheme(l.dark)
	data := l.data.WithPalette(func(i int) string { return l.env.Theme.SeriesColor(i, l.dark) })
	l.err = l.chart.Render(linechart.Config{
		Data:    data.Line,
		Colors:  data.LineColors,
		Width:   width,
		Height:  height,
		Theme:   th,
		Metrics: m,
		Format:  l.env.Format,
	})
	if l.err != nil {
		l.env.Logger.Warn("line chart render failed", "error", l.err)
	}
}

// Update implements View.
func (l *Line) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case PointerMsg:
		l.pane.movePointer(l.chart, msg)
	case PointerLeaveMsg:
		l.chart.PointerLeave()
	case BackgroundMsg:
		if msg.Dark != l.dark {
			l.dark = msg.Dark
			l.render()
		}
	case tea.KeyMsg:
		if key.Matches(msg, replayKey) {
			l.render()
		}
	}
	return l, nil
}

// View implements View.
func (l *Line) View() string {
	return l.pane.render(l.chart, strconv.Itoa(len(l.data.Line))+" points")
}

// Name implements View.
func (l *Line) Name() string {
	return "Lines"
}

// ShortHelp implements View.
func (l *Line) ShortHelp() []key.Binding {
	return []key.Binding{replayKey}
}

// SetSize implements View.
func (l *Line) SetSize(width, height int) View {
	if l.pane.setSize(width, height) {
		l.render()
	}
	return l
}

// SetStyles implements View.
func (l *Line) SetStyles(styles Styles) View {
	l.pane.styles = styles
	return l
}

// Status implements StatusProvider.
func (l *Line) Status() []statusbar.Item {
	series := linechart.BuildSeries(l.data.Line, nil)
	gaps := 0
	for _, s := range series {
		for _, v := range s.Values {
			if !v.Valid {
				gaps++
			}
		}
	}
	return []statusbar.Item{
		{Label: "Series", Value: strconv.Itoa(len(series))},
		{Label: "Gaps", Value: strconv.Itoa(gaps)},
	}
}

// Err implements ErrorProvider.
func (l *Line) Err() error {
	return l.err
}

// Chart returns the underlying chart.
func (l *Line) Chart() *linechart.Chart {
	return l.chart
}
