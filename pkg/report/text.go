package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Text layout.
const (
	DistributionBarWidth = 30
	distLabelMin         = 12
	metricIndent         = "  "
)

// TextOptions configure WriteText.
type TextOptions struct {
	// MaxRows truncates every table; <= 0 prints all rows.
	MaxRows int
	// Width is the header width; <= 0 selects DetectWidth.
	Width int
	// NoColor disables ANSI colors regardless of the terminal.
	NoColor bool
}

// WriteText renders doc for a terminal: a title box, the metrics block,
// distributions as percent bars and every table.
func WriteText(w io.Writer, doc *Document, opts TextOptions) error {
	width := opts.Width
	if width <= 0 {
		width = DetectWidth()
	}

	title := color.New(color.FgCyan, color.Bold)
	heading := color.New(color.Bold)
	faint := color.New(color.Faint)

	if opts.NoColor {
		for _, c := range []*color.Color{title, heading, faint} {
			c.DisableColor()
		}
	}

	p := &printer{w: w}

	p.println(title.Sprint(DrawHeader(strings.ToUpper(doc.Title), doc.Subtitle, width)))

	if len(doc.Metrics) > 0 {
		p.println()

		labelWidth := 0
		for _, m := range doc.Metrics {
			labelWidth = max(labelWidth, displayLen(m.Label))
		}

		for _, m := range doc.Metrics {
			p.println(metricIndent + PadRight(m.Label+":", labelWidth+1) + " " + FormatValue(m.Value))
		}
	}

	for _, d := range doc.Distributions {
		p.println()
		p.println(heading.Sprint(d.Title))

		labelWidth := distLabelMin
		for _, s := range d.Shares {
			labelWidth = max(labelWidth, displayLen(s.Label))
		}

		total := d.Total()

		for _, s := range d.Shares {
			fraction := 0.0
			if total > 0 {
				fraction = float64(s.Count) / float64(total)
			}

			p.println(metricIndent + DrawPercentBar(s.Label, fraction, humanize.Comma(int64(s.Count)), labelWidth, DistributionBarWidth))
		}
	}

	for _, t := range doc.Tables {
		p.println()
		p.println(heading.Sprint(tableTitle(t)))
		p.println(faint.Sprint(DrawSeparator(min(width, displayLen(tableTitle(t))))))
		p.println(renderTable(t, opts.MaxRows))
	}

	return p.err
}

// FormatValue renders a metric value: integers with thousands separators,
// floats with two decimals.
func FormatValue(v any) string {
	switch n := v.(type) {
	case int:
		return humanize.Comma(int64(n))
	case int64:
		return humanize.Comma(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "0.00"
		}

		return humanize.CommafWithDigits(n, 2)
	default:
		return CellString(v)
	}
}

func tableTitle(t *Table) string {
	if t.Title != "" {
		return t.Title
	}

	return t.Name
}

func renderTable(t *Table, maxRows int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.DrawBorder = false
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}

	tw.AppendHeader(header)

	rows := t.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = textCell(c)
		}

		tw.AppendRow(row)
	}

	footer := fmt.Sprintf("Total: %s rows", humanize.Comma(int64(len(t.Rows))))
	if len(rows) < len(t.Rows) {
		footer = fmt.Sprintf("Showing %d of %s rows", len(rows), humanize.Comma(int64(len(t.Rows))))
	}

	tw.AppendFooter(table.Row{footer})

	return tw.Render()
}

func textCell(v any) any {
	switch n := v.(type) {
	case int:
		return humanize.Comma(int64(n))
	case float64:
		return fmt.Sprintf("%.2f", n)
	default:
		return CellString(v)
	}
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(s ...string) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintln(p.w, strings.Join(s, ""))
}
