package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Sumatoshi-tech/depotstat/pkg/observability"
	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// Defaults for Options.
const (
	DefaultSuffix = ".scnlocjson"
	metricsKind   = "scene"
	progressEvery = 50
)

// DefaultExcludeDirs are skipped unless Options.ExcludeDirs is set.
var DefaultExcludeDirs = []string{"versions"}

// Options configure Analyze.
type Options struct {
	GroupBy     GroupBy
	Suffix      string   // Empty selects DefaultSuffix.
	ExcludeDirs []string // Nil selects DefaultExcludeDirs.
	Threshold   int      // Speaker frequency threshold; <= 0 selects the tally default.
	Metrics     *observability.ScanMetrics
}

func (o Options) filter() walker.Filter {
	suffix := o.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	exclude := o.ExcludeDirs
	if exclude == nil {
		exclude = DefaultExcludeDirs
	}

	return walker.Filter{Suffixes: []string{suffix}, ExcludeDirs: exclude}
}

// Analyze walks every root, parses each scene file and folds the records.
// Missing roots are logged and listed in Analysis.Missing; unreadable and
// malformed files are logged and listed in Analysis.Failures. Neither
// affects the tallies. A scan whose roots are all missing yields an empty
// analysis.
func Analyze(ctx context.Context, roots []string, opts Options) (*Analysis, error) {
	start := time.Now()
	filter := opts.filter()

	var (
		records  []Record
		failures []walker.Failure
		missing  []string
		seen     int
	)

	for _, root := range roots {
		files, err := walker.Walk(root, filter)
		if err != nil {
			if !errors.Is(err, walker.ErrRootNotFound) {
				return nil, err
			}

			slog.WarnContext(ctx, "scan root missing, skipping", "path", root, "error", err)
			opts.Metrics.FileSkipped(ctx, metricsKind, observability.ReasonMissing)

			missing = append(missing, root)

			continue
		}

		for _, f := range files {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("scene scan: %w", ctxErr)
			}

			seen++
			if seen%progressEvery == 0 {
				slog.DebugContext(ctx, "scene scan progress", "files", seen, "records", len(records))
			}

			rec, failure, ok := loadRecord(ctx, f, opts.Metrics)
			if !ok {
				failures = append(failures, failure)

				continue
			}

			records = append(records, rec)
		}
	}

	if len(roots) > 0 && len(missing) == len(roots) {
		slog.WarnContext(ctx, "no scan root exists, reporting an empty scan", "roots", roots)
	}

	a := NewAnalysis(records, failures, opts.GroupBy, opts.Threshold)
	a.Roots = roots
	a.Missing = missing

	opts.Metrics.RecordsTallied(ctx, metricsKind, len(records))
	opts.Metrics.ScanDuration(ctx, metricsKind, time.Since(start))

	slog.InfoContext(ctx, "scene scan complete",
		"files", seen, "scenes", len(records), "failures", len(failures), "missing_roots", len(missing))

	return a, nil
}

func loadRecord(ctx context.Context, f walker.File, sm *observability.ScanMetrics) (Record, walker.Failure, bool) {
	sm.FileScanned(ctx, metricsKind)

	data, err := textutil.ReadFile(f.Path)
	if err != nil {
		slog.WarnContext(ctx, "unreadable scene file, skipping", "path", f.Path, "error", err)
		sm.FileSkipped(ctx, metricsKind, observability.ReasonUnreadable)

		return Record{}, walker.NewFailure(f.Path, err), false
	}

	rec, err := Parse(data)
	if err != nil {
		slog.WarnContext(ctx, "malformed scene file, skipping", "path", f.Path, "error", err)
		sm.FileSkipped(ctx, metricsKind, observability.ReasonMalformed)

		return Record{}, walker.NewFailure(f.Path, err), false
	}

	rec.Path = f.Path
	if abs, absErr := filepath.Abs(f.Path); absErr == nil {
		rec.Path = abs
	}

	rec.Rel = f.Rel

	return rec, walker.Failure{}, true
}
