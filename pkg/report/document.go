// Package report renders tabular documents as terminal text, CSV files,
// spreadsheet workbooks and JSON/YAML.
package report

import "fmt"

// Metric is one labelled value of a document summary.
type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

// Share is one bar of a distribution.
type Share struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Distribution is a titled set of shares drawn as percent bars.
type Distribution struct {
	Title  string  `json:"title" yaml:"title"`
	Shares []Share `json:"shares" yaml:"shares"`
}

// Total sums every share.
func (d Distribution) Total() int {
	n := 0
	for _, s := range d.Shares {
		n += s.Count
	}

	return n
}

// Table is a named grid. Name identifies the table in file names and sheet
// names; Title is shown to readers.
type Table struct {
	Name   string   `json:"name" yaml:"name"`
	Title  string   `json:"title" yaml:"title"`
	Header []string `json:"header" yaml:"header"`
	Rows   [][]any  `json:"rows" yaml:"rows"`
}

// NewTable returns an empty table with the given header.
func NewTable(name, title string, header ...string) *Table {
	return &Table{Name: name, Title: title, Header: header}
}

// Append adds one row.
func (t *Table) Append(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Document is a complete report.
type Document struct {
	Title         string         `json:"title" yaml:"title"`
	Subtitle      string         `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Metrics       []Metric       `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Distributions []Distribution `json:"distributions,omitempty" yaml:"distributions,omitempty"`
	Tables        []*Table       `json:"tables" yaml:"tables"`
}

// AddMetric appends a summary metric.
func (d *Document) AddMetric(label string, value any) {
	d.Metrics = append(d.Metrics, Metric{Label: label, Value: value})
}

// AddTable appends a table and returns it.
func (d *Document) AddTable(t *Table) *Table {
	d.Tables = append(d.Tables, t)

	return t
}

// Table returns the table with the given name.
func (d *Document) Table(name string) (*Table, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}

	return nil, false
}

// CellString renders a cell for text-based formats.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return fmt.Sprintf("%.2f", c)
	case float32:
		return fmt.Sprintf("%.2f", c)
	default:
		return fmt.Sprint(c)
	}
}
