package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depotstat/pkg/plotpage"
	"github.com/Sumatoshi-tech/depotstat/pkg/report"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

const outputDirPerm = 0o750

// ErrFormatUnsupported is returned when a command cannot render a format.
var ErrFormatUnsupported = errors.New("format not supported by this command")

// outputFlags are the --format and --output flags shared by report commands.
type outputFlags struct {
	format string
	output string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", string(report.FormatText), "output format: "+report.FormatNames())
	cmd.Flags().StringVarP(&o.output, "output", "o", "",
		"output file (directory for csv); stdout for text/json/yaml, <command>.<ext> otherwise")
}

// rendering is everything a command can emit.
type rendering struct {
	// name is the base of generated file names.
	name string
	doc  *report.Document
	// data is encoded as-is for json and yaml.
	data any
	// page builds the chart page; nil when the command has no charts.
	page func(theme plotpage.Theme) *plotpage.Page
	// formats restricts the accepted formats; nil accepts all.
	formats []report.Format
}

func (a *app) render(cmd *cobra.Command, o outputFlags, r rendering) error {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}

	if (r.formats != nil && !slices.Contains(r.formats, format)) || (format == report.FormatPlot && r.page == nil) {
		return fmt.Errorf("%w: %s does not support %s", ErrFormatUnsupported, cmd.Name(), format)
	}

	switch format {
	case report.FormatCSV:
		dir := o.output
		if dir == "" {
			dir = "."
		}

		paths, csvErr := report.WriteCSVSet(dir, r.name, r.doc)
		if csvErr != nil {
			return csvErr
		}

		for _, p := range paths {
			slog.InfoContext(cmd.Context(), "report written", "path", p)
		}

		return nil
	case report.FormatXLSX:
		path := outputPath(o, r.name, format)

		wbErr := report.WriteWorkbook(path, r.doc)
		if wbErr != nil {
			return wbErr
		}

		slog.InfoContext(cmd.Context(), "report written", "path", path)

		return nil
	case report.FormatPlot:
		return a.writeTo(cmd, outputPath(o, r.name, format), func(w io.Writer) error {
			theme, themeErr := plotpage.ParseTheme(a.cfg.Output.Theme)
			if themeErr != nil {
				return themeErr
			}

			return r.page(theme).Render(w)
		})
	case report.FormatJSON:
		return a.writeTo(cmd, outputPath(o, r.name, format), func(w io.Writer) error { return report.WriteJSON(w, r.data) })
	case report.FormatYAML:
		return a.writeTo(cmd, outputPath(o, r.name, format), func(w io.Writer) error { return report.WriteYAML(w, r.data) })
	default:
		return a.writeTo(cmd, outputPath(o, r.name, format), func(w io.Writer) error {
			return report.WriteText(w, r.doc, report.TextOptions{
				MaxRows: a.cfg.Output.MaxRows,
				NoColor: a.noColor || o.output != "",
			})
		})
	}
}

// outputPath returns the destination of format: the --output value, else
// <name><ext> for file formats and "" (stdout) for stream formats.
func outputPath(o outputFlags, name string, format report.Format) string {
	if o.output != "" || !format.WritesFile() {
		return o.output
	}

	return name + format.Extension()
}

// writeTo runs write against path, or against the command's stdout when
// path is empty. Parent directories are created.
func (a *app) writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, outputDirPerm); mkErr != nil {
			return fmt.Errorf("create output dir: %w", mkErr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	err = write(f)
	if err != nil {
		return err
	}

	slog.InfoContext(cmd.Context(), "report written", "path", path)

	return nil
}

// failureTable lists inputs that were found but skipped.
func missingTable(title string, paths []string) *report.Table {
	t := report.NewTable("missing", title, "Path")

	for _, p := range paths {
		t.Append(p)
	}

	return t
}

func failureTable(failures []walker.Failure) *report.Table {
	t := report.NewTable("failures", "Skipped files", "Path", "Error")

	for _, f := range failures {
		t.Append(f.Path, f.Error)
	}

	return t
}
