package plotpage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
)

func TestBuildBarChart(t *testing.T) {
	t.Parallel()

	labels := []string{"q001", "q002", "sq010"}
	series := []plotpage.BarSeries{
		{Name: "choice", Data: plotpage.Ints([]int{1, 2, 3}), Stack: "sections"},
		{Name: "normal", Data: plotpage.Ints([]int{4, 5, 6}), Stack: "sections", Color: "#ff0000"},
	}

	chart := plotpage.BuildBarChart(plotpage.NewChartOpts(plotpage.ThemeLight), labels, series, "Sections", 45)
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "choice", chart.MultiSeries[0].Name)
	assert.Equal(t, "normal", chart.MultiSeries[1].Name)
}

func TestBuildBarChart_NilOpts(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildBarChart(nil, []string{"a"}, []plotpage.BarSeries{
		{Name: "lines", Data: plotpage.Ints([]int{7})},
	}, "Lines", 0)

	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}

func TestBuildLineChart(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildLineChart(nil, []string{"a", "b"}, []plotpage.LineSeries{
		{Name: "avg", Data: plotpage.Floats([]float64{1.5, 2.5}), AreaOpacity: 0.2},
	}, "Lines")

	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	assert.Equal(t, "avg", chart.MultiSeries[0].Name)
}

func TestBuildBarLineChart(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildBarLineChart(nil, []string{"a", "b"},
		[]plotpage.BarSeries{{Name: "scenes", Data: plotpage.Ints([]int{2, 1})}},
		[]plotpage.LineSeries{{Name: "lines", Data: plotpage.Ints([]int{40, 12})}},
		"Scenes", "Lines", 0)

	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "bar", chart.MultiSeries[0].Type)
	assert.Equal(t, "line", chart.MultiSeries[1].Type)
	assert.Equal(t, 1, chart.MultiSeries[1].YAxisIndex)
	assert.Len(t, chart.YAxisList, 2)
	assert.Equal(t, "Lines", chart.YAxisList[1].Name)
}

func TestBuildPieChart(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildPieChart(nil, "Task types", []plotpage.PieSlice{
		{Name: "main", Value: 10},
		{Name: "side/minor", Value: 5},
	})

	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
	assert.Equal(t, "Task types", chart.MultiSeries[0].Name)
}

func TestBuildScatterChart(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildScatterChart(nil, "Scenes", []plotpage.ScatterPoint{
		{Name: "q001", X: 3, Y: 40},
		{Name: "q002", X: 1, Y: 12},
	}, "Scenes", "Lines")

	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}

func TestSeriesColorCycles(t *testing.T) {
	t.Parallel()

	palette := plotpage.Palette(plotpage.ThemeDark)
	require.NotEmpty(t, palette)

	assert.Equal(t, palette[0], plotpage.SeriesColor(plotpage.ThemeDark, len(palette)))
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	th, err := plotpage.ParseTheme("Light")
	require.NoError(t, err)
	assert.Equal(t, plotpage.ThemeLight, th)

	_, err = plotpage.ParseTheme("neon")
	require.ErrorIs(t, err, plotpage.ErrUnknownTheme)
}
