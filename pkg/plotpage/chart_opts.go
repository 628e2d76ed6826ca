package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	dataZoomEndPercent = 100
	labelFontSize      = 10

	defaultChartWidth  = "100%"
	defaultChartHeight = "500px"
)

// ChartOpts provides chart options colored for a theme.
type ChartOpts struct {
	theme Theme
	cfg   ThemeConfig
}

// NewChartOpts creates ChartOpts for theme.
func NewChartOpts(theme Theme) *ChartOpts {
	return &ChartOpts{theme: theme, cfg: GetThemeConfig(theme)}
}

// DefaultChartOpts returns chart options for the dark theme.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeDark)
}

// Theme returns the theme the options were built for.
func (c *ChartOpts) Theme() Theme {
	return c.theme
}

// Init returns initialization options with a themed background.
func (c *ChartOpts) Init(width, height string) opts.Initialization {
	return opts.Initialization{
		Width:           width,
		Height:          height,
		BackgroundColor: c.cfg.ChartBackground,
		Theme:           c.cfg.EChartsTheme,
	}
}

// Title returns centered title options.
func (c *ChartOpts) Title(title, subtitle string) opts.Title {
	return opts.Title{
		Title:         title,
		Subtitle:      subtitle,
		Left:          "center",
		TitleStyle:    &opts.TextStyle{Color: c.cfg.ChartText},
		SubtitleStyle: &opts.TextStyle{Color: c.cfg.ChartTextMuted},
	}
}

// Legend returns a scrollable legend.
func (c *ChartOpts) Legend() opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(true),
		Type:      "scroll",
		Top:       "5%",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.cfg.ChartTextMuted},
	}
}

// XAxis returns category axis options; rotate tilts long labels.
func (c *ChartOpts) XAxis(name string, rotate float64) opts.XAxis {
	return opts.XAxis{
		Name: name,
		AxisLabel: &opts.AxisLabel{
			Color:    c.cfg.ChartTextMuted,
			Rotate:   rotate,
			Interval: "0",
			FontSize: labelFontSize,
		},
		AxisLine: &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.cfg.ChartAxis}},
	}
}

// ValueXAxis returns options for a numeric x axis.
func (c *ChartOpts) ValueXAxis(name string) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		Type:      "value",
		AxisLabel: &opts.AxisLabel{Color: c.cfg.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.cfg.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.cfg.ChartGrid},
		},
	}
}

// YAxis returns value axis options.
func (c *ChartOpts) YAxis(name string) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		AxisLabel: &opts.AxisLabel{Color: c.cfg.ChartTextMuted},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.cfg.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.cfg.ChartGrid},
		},
	}
}

// Grid returns grid options leaving room for the legend and rotated labels.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Top:          "15%",
		Bottom:       "18%",
		Left:         "5%",
		Right:        "5%",
		ContainLabel: opts.Bool(true),
	}
}

// DataZoom returns slider and wheel zoom options.
func (c *ChartOpts) DataZoom() []opts.DataZoom {
	return []opts.DataZoom{
		{Type: "slider", Start: 0, End: dataZoomEndPercent},
		{Type: "inside"},
	}
}

// Tooltip returns tooltip options for trigger ("axis" or "item").
func (c *ChartOpts) Tooltip(trigger string) opts.Tooltip {
	return opts.Tooltip{Show: opts.Bool(true), Trigger: trigger}
}
