package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPlot Format = "plot"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatXLSX, FormatPlot}

// ParseFormat validates a format name. Empty selects FormatText; "yml",
// "excel" and "html" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	case "excel":
		return FormatXLSX, nil
	case "html":
		return FormatPlot, nil
	case FormatText, FormatJSON, FormatYAML, FormatCSV, FormatXLSX, FormatPlot:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, s, FormatNames())
	}
}

// FormatNames returns the supported names joined for help text.
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}

	return strings.Join(names, ", ")
}

// Extension returns the default file extension of the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatPlot:
		return ".html"
	default:
		return "." + string(f)
	}
}

// WritesFile reports whether the format always needs a file or directory
// destination.
func (f Format) WritesFile() bool {
	return f == FormatXLSX || f == FormatCSV || f == FormatPlot
}
