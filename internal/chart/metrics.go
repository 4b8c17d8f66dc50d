package chart

// Theme holds the colors of chart furniture.
type Theme struct {
	Axis   string
	Grid   string
	Text   string
	Focus  string
	Legend string
}

// DefaultTheme draws everything in white.
func DefaultTheme() Theme {
	return Theme{
		Axis:   "#FFFFFF",
		Grid:   "#FFFFFF",
		Text:   "#FFFFFF",
		Focus:  "#FFFFFF",
		Legend: "#FFFFFF",
	}
}

// Metrics holds the pixel constants of chart layout.
type Metrics struct {
	Margin         float64
	Font           Font
	FontHeight     float64
	AxisWidth      float64
	TickLength     float64
	TickSpacing    float64
	ValueGap       float64 // between the widest value label and the plot
	ValueLabelGap  float64 // between the y axis and the right edge of value labels
	CategoryOffset float64 // between the x axis and category labels
	BarRadius      float64
	DotRadius      float64
	FocusDotRadius float64
	FocusOpacity   float64
	DimOpacity     float64
	GuideDash      []float64
	FocusStroke    float64
	LegendRow      float64
	LegendMarker   float64
	LegendGap      float64
	LegendShare    float64 // max share of the width taken by one legend column
	MinBarWidth    float64 // pixel budget of one stream bucket
}

// DefaultMetrics returns metrics for a raster surface measured in CSS pixels.
func DefaultMetrics() Metrics {
	return Metrics{
		Margin:         30,
		Font:           Font{Size: 14},
		FontHeight:     14,
		AxisWidth:      0.5,
		TickLength:     5,
		TickSpacing:    40,
		ValueGap:       20,
		ValueLabelGap:  15,
		CategoryOffset: 20,
		BarRadius:      5,
		DotRadius:      4,
		FocusDotRadius: 8,
		FocusOpacity:   0.4,
		DimOpacity:     0.3,
		GuideDash:      []float64{5, 10},
		FocusStroke:    3,
		LegendRow:      20,
		LegendMarker:   10,
		LegendGap:      10,
		LegendShare:    0.2,
		MinBarWidth:    20,
	}
}

// AxisLine returns the stroke used for axes and ticks.
func (m Metrics) AxisLine(t Theme) LineStyle {
	return LineStyle{Paint: Solid(t.Axis), Width: m.AxisWidth}
}

// GridLine returns the stroke used for grid lines.
func (m Metrics) GridLine(t Theme) LineStyle {
	return LineStyle{Paint: Solid(t.Grid), Width: m.AxisWidth}
}
