package plotpage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTheme is returned by ParseTheme.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a page color theme.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// ThemeConfig holds the page and chart colors of a theme.
type ThemeConfig struct {
	Background  string
	Surface     string
	Border      string
	TextPrimary string
	TextMuted   string
	Accent      string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// EChartsTheme is the go-echarts built-in theme name; empty for the default.
	EChartsTheme string
}

// GetThemeConfig returns the configuration for theme. Unknown themes fall back to light.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// Palette returns the series colors for theme.
func Palette(theme Theme) []string {
	if theme == ThemeDark {
		return darkPalette
	}

	return lightPalette
}

// SeriesColor returns the i-th palette color, cycling.
func SeriesColor(theme Theme, i int) string {
	p := Palette(theme)

	return p[i%len(p)]
}

var lightTheme = ThemeConfig{
	Background:  "#f8fafc", // slate-50.
	Surface:     "#ffffff",
	Border:      "#e2e8f0", // slate-200.
	TextPrimary: "#0f172a", // slate-900.
	TextMuted:   "#64748b", // slate-500.
	Accent:      "#0f766e", // teal-700.

	ChartBackground: "transparent",
	ChartGrid:       "#e2e8f0",
	ChartAxis:       "#94a3b8", // slate-400.
	ChartText:       "#334155", // slate-700.
	ChartTextMuted:  "#64748b",
}

var darkTheme = ThemeConfig{
	Background:  "#020617", // slate-950.
	Surface:     "#0f172a", // slate-900.
	Border:      "#334155", // slate-700.
	TextPrimary: "#f1f5f9", // slate-100.
	TextMuted:   "#94a3b8", // slate-400.
	Accent:      "#2dd4bf", // teal-400.

	ChartBackground: "transparent",
	ChartGrid:       "#334155",
	ChartAxis:       "#475569", // slate-600.
	ChartText:       "#cbd5e1", // slate-300.
	ChartTextMuted:  "#94a3b8",
}

var lightPalette = []string{
	"#0f766e", // teal-700.
	"#b45309", // amber-700.
	"#1d4ed8", // blue-700.
	"#be123c", // rose-700.
	"#4d7c0f", // lime-700.
	"#7e22ce", // purple-700.
	"#c2410c", // orange-700.
	"#0e7490", // cyan-700.
}

var darkPalette = []string{
	"#2dd4bf", // teal-400.
	"#fbbf24", // amber-400.
	"#60a5fa", // blue-400.
	"#fb7185", // rose-400.
	"#a3e635", // lime-400.
	"#c084fc", // purple-400.
	"#fb923c", // orange-400.
	"#22d3ee", // cyan-400.
}
