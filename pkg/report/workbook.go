package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook limits.
const (
	MaxSheetName = 31
	MaxCellChars = 32767

	summarySheet = "Summary"
	defaultSheet = "Sheet1"
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
)

// SheetName sanitises name for use as a worksheet name: forbidden
// characters are replaced, surrounding apostrophes removed and the result
// cut to MaxSheetName characters.
func SheetName(name string) string {
	s := strings.Trim(sheetNameReplacer.Replace(name), "' ")
	if s == "" {
		s = "Sheet"
	}

	if r := []rune(s); len(r) > MaxSheetName {
		s = string(r[:MaxSheetName])
	}

	return s
}

// UniqueSheetNames sanitises every name and disambiguates collisions with a
// numeric suffix, comparing case-insensitively as spreadsheet apps do.
func UniqueSheetNames(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))

	for i, name := range names {
		base := SheetName(name)
		candidate := base

		for n := 2; used[strings.ToLower(candidate)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)

			r := []rune(base)
			if len(r)+len(suffix) > MaxSheetName {
				r = r[:MaxSheetName-len(suffix)]
			}

			candidate = string(r) + suffix
		}

		used[strings.ToLower(candidate)] = true
		out[i] = candidate
	}

	return out
}

// WriteWorkbook writes doc to an .xlsx file: a summary sheet when the
// document has metrics, then one sheet per table with a bold, frozen header.
func WriteWorkbook(path string, doc *Document) (err error) {
	f := excelize.NewFile()

	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}

	tables := doc.Tables

	if len(doc.Metrics) > 0 {
		summary := NewTable(summarySheet, doc.Title, "Metric", "Value")
		for _, m := range doc.Metrics {
			summary.Append(m.Label, m.Value)
		}

		tables = append([]*Table{summary}, tables...)
	}

	if len(tables) == 0 {
		tables = []*Table{NewTable(summarySheet, doc.Title)}
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}

	sheets := UniqueSheetNames(names)

	for i, t := range tables {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, sheets[i])
		} else {
			_, err = f.NewSheet(sheets[i])
		}

		if err != nil {
			return fmt.Errorf("sheet %q: %w", sheets[i], err)
		}

		if err = writeSheet(f, sheets[i], t, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, t *Table, headerStyle int) error {
	if len(t.Header) == 0 {
		return nil
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("sheet %q header: %w", sheet, err)
	}

	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("sheet %q header style: %w", sheet, err)
	}

	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = workbookCell(c)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}

		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
	}

	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("sheet %q panes: %w", sheet, err)
	}

	return nil
}

// workbookCell keeps numbers numeric and cuts strings to the cell limit.
func workbookCell(v any) any {
	switch c := v.(type) {
	case int, int64, float64, bool:
		return c
	case nil:
		return ""
	default:
		s := CellString(c)
		if r := []rune(s); len(r) > MaxCellChars {
			s = string(r[:MaxCellChars])
		}

		return s
	}
}
