package views

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazychart/internal/chart/barchart"
	"github.com/kpumuk/lazychart/internal/dataset"
	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
)

// Bar shows the stacked bar chart.
type Bar struct {
	env  Env
	data dataset.Dataset
	dark bool
	pane pane

	chart *barchart.Chart
	err   error
}

// NewBar creates a bar chart view over ds.Bar.
func NewBar(env Env, ds dataset.Dataset) *Bar {
	b := &Bar{
		env:  env.withDefaults(),
		data: ds,
		dark: true,
		pane: newPane("Stacked bars"),
	}
	b.chart = barchart.New(b.env.Host, b.pane.canvas)
	return b
}

// Init implements View. Every activation replays the grow-in animation.
func (b *Bar) Init() tea.Cmd {
	b.render()
	return nil
}

func (b *Bar) render() {
	width, height := b.pane.size()
	if width == 0 || height == 0 {
		return
	}
	th, m := b.env.chartTheme(b.dark)
	data := b.data.WithPalette(func(i int) string { return b.env.Theme.SeriesColor(i, b.dark) })
	b.err = b.chart.Render(barchart.Config{
		Data:    data.Bar,
		Width:   width,
		Height:  height,
		Theme:   th,
		Metrics: m,
		Format:  b.env.Format,
	})
	if b.err != nil {
		b.env.Logger.Warn("bar chart render failed", "error", b.err)
	}
}

// Update implements View.
func (b *Bar) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case PointerMsg:
		b.pane.movePointer(b.chart, msg)
	case PointerLeaveMsg:
		b.chart.PointerLeave()
	case BackgroundMsg:
		if msg.Dark != b.dark {
			b.dark = msg.Dark
			b.render()
		}
	case tea.KeyMsg:
		if key.Matches(msg, replayKey) {
			b.render()
		}
	}
	return b, nil
}

// View implements View.
func (b *Bar) View() string {
	return b.pane.render(b.chart, strconv.Itoa(len(b.data.Bar))+" categories")
}

// Name implements View.
func (b *Bar) Name() string {
	return "Bars"
}

// ShortHelp implements View.
func (b *Bar) ShortHelp() []key.Binding {
	return []key.Binding{replayKey}
}

// SetSize implements View.
func (b *Bar) SetSize(width, height int) View {
	if b.pane.setSize(width, height) {
		b.render()
	}
	return b
}

// SetStyles implements View.
func (b *Bar) SetStyles(styles Styles) View {
	b.pane.styles = styles
	return b
}

// Status implements StatusProvider.
func (b *Bar) Status() []statusbar.Item {
	series := map[string]struct{}{}
	var total float64
	for _, d := range b.data.Bar {
		for _, v := range d.Values {
			series[v.Name] = struct{}{}
		}
		total += d.Sum()
	}
	return []statusbar.Item{
		{Label: "Series", Value: strconv.Itoa(len(series))},
		{Label: "Total", Value: b.env.Format.Value(total)},
	}
}

// Err implements ErrorProvider.
func (b *Bar) Err() error {
	return b.err
}

// Chart returns the underlying chart.
func (b *Bar) Chart() *barchart.Chart {
	return b.chart
}
