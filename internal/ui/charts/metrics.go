package charts

import "github.com/kpumuk/lazychart/internal/chart"

// Metrics returns layout metrics in braille dots: text is one cell row tall
// and two dots wide per column.
func Metrics() chart.Metrics {
	return chart.Metrics{
		Margin:         DotsY,
		Font:           chart.Font{Size: 1},
		FontHeight:     DotsY,
		AxisWidth:      1,
		TickLength:     DotsX,
		TickSpacing:    3 * DotsY,
		ValueGap:       2 * DotsX,
		ValueLabelGap:  2 * DotsX,
		CategoryOffset: 1.5 * DotsY,
		BarRadius:      0,
		DotRadius:      1,
		FocusDotRadius: 2,
		FocusOpacity:   0.4,
		DimOpacity:     0.3,
		GuideDash:      []float64{2, 2},
		FocusStroke:    1,
		LegendRow:      DotsY,
		LegendMarker:   DotsX,
		LegendGap:      2 * DotsX,
		LegendShare:    0.2,
		MinBarWidth:    2 * DotsX,
	}
}
