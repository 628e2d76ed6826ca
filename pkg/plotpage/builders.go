package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	pieInnerRadius = "35%"
	pieOuterRadius = "65%"
	scatterSymbol  = 10
)

// SeriesData is one numeric value; int and float64 are both accepted.
type SeriesData any

// BarSeries is one series of a bar chart.
type BarSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, palette color when empty.
	Stack string // Optional, stack grouping.
}

// LineSeries is one series of a line chart.
type LineSeries struct {
	Name        string
	Data        []SeriesData
	Color       string  // Optional, palette color when empty.
	AreaOpacity float32 // Optional, fills the area under the line.
	YAxisIndex  int     // Optional, 1 plots against a secondary y axis.
}

// PieSlice is one named slice of a pie chart.
type PieSlice struct {
	Name  string
	Value SeriesData
}

// ScatterPoint is one labelled (x, y) point.
type ScatterPoint struct {
	Name string
	X    SeriesData
	Y    SeriesData
}

// Ints converts a slice of ints to series data.
func Ints(values []int) []SeriesData {
	out := make([]SeriesData, len(values))

	for i, v := range values {
		out[i] = v
	}

	return out
}

// Floats converts a slice of float64 to series data.
func Floats(values []float64) []SeriesData {
	out := make([]SeriesData, len(values))

	for i, v := range values {
		out[i] = v
	}

	return out
}

// BuildBarChart builds a bar chart over category labels. A nil cOpts
// selects DefaultChartOpts. rotate tilts the x labels.
func BuildBarChart(cOpts *ChartOpts, labels []string, series []BarSeries, yAxisLabel string, rotate float64) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis("", rotate)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	bar.SetXAxis(labels)

	for i, s := range series {
		data := make([]opts.BarData, len(s.Data))
		for j, v := range s.Data {
			data[j] = opts.BarData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = SeriesColor(cOpts.Theme(), i)
		}

		seriesOpts := []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: color})}
		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}))
		}

		bar.AddSeries(s.Name, data, seriesOpts...)
	}

	return bar
}

// BuildLineChart builds a line chart over category labels.
func BuildLineChart(cOpts *ChartOpts, labels []string, series []LineSeries, yAxisLabel string) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis("", 0)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for i, s := range series {
		data := make([]opts.LineData, len(s.Data))
		for j, v := range s.Data {
			data[j] = opts.LineData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = SeriesColor(cOpts.Theme(), i)
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: color}),
		}

		if s.AreaOpacity > 0 {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(s.AreaOpacity)}))
		}

		if s.YAxisIndex > 0 {
			seriesOpts = append(seriesOpts, charts.WithLineChartOpts(opts.LineChart{YAxisIndex: s.YAxisIndex}))
		}

		line.AddSeries(s.Name, data, seriesOpts...)
	}

	return line
}

// BuildBarLineChart overlays line series on a bar chart. The lines are
// plotted against a secondary y axis named y2AxisLabel and take palette
// colors after the bars.
func BuildBarLineChart(cOpts *ChartOpts, labels []string, bars []BarSeries, lines []LineSeries,
	yAxisLabel, y2AxisLabel string, rotate float64,
) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := BuildBarChart(cOpts, labels, bars, yAxisLabel, rotate)
	bar.ExtendYAxis(cOpts.YAxis(y2AxisLabel))

	overlay := make([]LineSeries, len(lines))

	for i, s := range lines {
		s.YAxisIndex = 1
		if s.Color == "" {
			s.Color = SeriesColor(cOpts.Theme(), len(bars)+i)
		}

		overlay[i] = s
	}

	bar.Overlap(BuildLineChart(cOpts, labels, overlay, y2AxisLabel))

	return bar
}

// BuildPieChart builds a donut chart with percentage labels.
func BuildPieChart(cOpts *ChartOpts, name string, slices []PieSlice) *charts.Pie {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	data := make([]opts.PieData, len(slices))

	for i, s := range slices {
		data[i] = opts.PieData{
			Name:      s.Name,
			Value:     s.Value,
			ItemStyle: &opts.ItemStyle{Color: SeriesColor(cOpts.Theme(), i)},
		}
	}

	pie.AddSeries(name, data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{pieInnerRadius, pieOuterRadius}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)

	return pie
}

// BuildScatterChart builds a scatter chart with numeric axes. Each point is
// named so the tooltip identifies it.
func BuildScatterChart(cOpts *ChartOpts, name string, points []ScatterPoint, xAxisLabel, yAxisLabel string) *charts.Scatter {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(defaultChartWidth, defaultChartHeight)),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.ValueXAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	data := make([]opts.ScatterData, len(points))

	for i, p := range points {
		data[i] = opts.ScatterData{
			Name:       p.Name,
			Value:      []SeriesData{p.X, p.Y},
			SymbolSize: scatterSymbol,
		}
	}

	scatter.AddSeries(name, data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: SeriesColor(cOpts.Theme(), 0)}),
	)

	return scatter
}
