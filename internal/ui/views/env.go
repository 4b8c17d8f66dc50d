package views

import (
	"log/slog"

	"github.com/kpumuk/lazychart/internal/chart"
	"github.com/kpumuk/lazychart/internal/ui/charts"
	"github.com/kpumuk/lazychart/internal/ui/format"
	"github.com/kpumuk/lazychart/internal/ui/theme"
)

// Env is what every chart view shares: the scheduling host, colors and
// formatting.
type Env struct {
	Host   chart.Host
	Theme  theme.Theme
	Format chart.Formatter
	Logger *slog.Logger
}

func (e Env) withDefaults() Env {
	if e.Theme.Series == nil {
		e.Theme = theme.DefaultTheme
	}
	if e.Format == nil {
		e.Format = format.Chart{}
	}
	if e.Logger == nil {
		e.Logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// chartTheme returns the chart furniture colors and metrics for a terminal
// background.
func (e Env) chartTheme(dark bool) (chart.Theme, chart.Metrics) {
	return e.Theme.Chart(dark), charts.Metrics()
}
