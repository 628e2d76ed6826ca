package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the header and every row of t to w, prefixed by a UTF-8
// byte-order mark.
func WriteCSV(w io.Writer, t *Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, 0, len(t.Header))

	for _, row := range t.Rows {
		record = record[:0]
		for _, c := range row {
			record = append(record, CellString(c))
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// WriteCSVFile writes t to path, creating parent directories.
func WriteCSVFile(path string, t *Table) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return WriteCSV(f, t)
}

// WriteCSVSet writes every table of doc to dir as <base>_<table>.csv and
// returns the written paths in table order.
func WriteCSVSet(dir, base string, doc *Document) ([]string, error) {
	paths := make([]string, 0, len(doc.Tables))

	for _, t := range doc.Tables {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", base, FileSlug(t.Name)))

		if err := WriteCSVFile(path, t); err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// FileSlug lower-cases name and collapses everything but letters and digits
// into single underscores.
func FileSlug(name string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "table"
	}

	return slug
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	return f, nil
}
