package views

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kpumuk/lazychart/internal/chart/piechart"
	"github.com/kpumuk/lazychart/internal/dataset"
	"github.com/kpumuk/lazychart/internal/ui/components/statusbar"
)

// Pie shows the pie or donut chart with its legend.
type Pie struct {
	env  Env
	data dataset.Dataset
	dark bool
	pane pane

	chart *piechart.Chart
	err   error
}

// NewPie creates a pie chart view over ds.Pie.
func NewPie(env Env, ds dataset.Dataset) *Pie {
	p := &Pie{
		env:  env.withDefaults(),
		data: ds,
		dark: true,
		pane: newPane("Pie"),
	}
	if ds.InnerRadius > 0 {
		p.pane.title = "Donut"
	}
	p.chart = piechart.New(p.env.Host, p.pane.canvas)
	return p
}

// Init implements View. Every activation replays the sweep animation.
func (p *Pie) Init() tea.Cmd {
	p.render()
	return nil
}

func (p *Pie) render() {
	width, height := p.pane.size()
	if width == 0 || height == 0 {
		return
	}
	th, m := p.env.chartTheme(p.dark)
	data := p.data.WithPalette(func(i int) string { return p.env.Theme.SeriesColor(i, p.dark) })
	p.err = p.chart.Render(piechart.Config{
		Data:        data.Pie,
		InnerRadius: data.InnerRadius,
		Width:       width,
		Height:      height,
		Theme:       th,
		Metrics:     m,
		Format:      p.env.Format,
	})
	if p.err != nil {
		p.env.Logger.Warn("pie chart render failed", "error", p.err)
	}
}

// Update implements View.
func (p *Pie) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case PointerMsg:
		p.pane.movePointer(p.chart, msg)
	case PointerLeaveMsg:
		p.chart.PointerLeave()
	case BackgroundMsg:
		if msg.Dark != p.dark {
			p.dark = msg.Dark
			p.render()
		}
	case tea.KeyMsg:
		if key.Matches(msg, replayKey) {
			p.render()
		}
	}
	return p, nil
}

// View implements View.
func (p *Pie) View() string {
	return p.pane.render(p.chart, strconv.Itoa(len(p.data.Pie))+" slices")
}

// Name implements View.
func (p *Pie) Name() string {
	return "Pie"
}

// ShortHelp implements View.
func (p *Pie) ShortHelp() []key.Binding {
	return []key.Binding{replayKey}
}

// SetSize implements View.
func (p *Pie) SetSize(width, height int) View {
	if p.pane.setSize(width, height) {
		p.render()
	}
	return p
}

// SetStyles implements View.
func (p *Pie) SetStyles(styles Styles) View {
	p.pane.styles = styles
	return p
}

// Status implements StatusProvider.
func (p *Pie) Status() []statusbar.Item {
	var total float64
	for _, d := range p.data.Pie {
		total += d.Value
	}
	return []statusbar.Item{
		{Label: "Total", Value: p.env.Format.Value(total)},
		{Label: "Inner radius", Value: p.env.Format.Value(p.data.InnerRadius)},
	}
}

// Err implements ErrorProvider.
func (p *Pie) Err() error {
	return p.err
}

// Chart returns the underlying chart.
func (p *Pie) Chart() *piechart.Chart {
	return p.chart
}
