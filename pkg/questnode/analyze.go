package questnode

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/Sumatoshi-tech/depotstat/pkg/observability"
	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

const metricsKind = "questnode"

// Options configure Analyze.
type Options struct {
	// TargetPrefixes select the phases counted by name. Nil selects
	// DefaultTargetPrefixes.
	TargetPrefixes []string
	// Threshold is the high-frequency cut-off; <= 0 selects the tally default.
	Threshold int
	// Separator joins node fields in phase summaries; empty selects
	// DefaultSeparator.
	Separator string
	Metrics   *observability.ScanMetrics
}

// Analyze loads every dump in order and accumulates its phases. Missing
// files are logged and listed in Analysis.Missing; unreadable and malformed
// files are logged and listed in Analysis.Failures.
func Analyze(ctx context.Context, files []string, opts Options) (*Analysis, error) {
	start := time.Now()
	a := NewAnalysis(opts.TargetPrefixes, opts.Threshold)
	a.SetSeparator(opts.Separator)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("quest-node scan: %w", err)
		}

		opts.Metrics.FileScanned(ctx, metricsKind)

		data, err := textutil.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.WarnContext(ctx, "dump file missing, skipping", "path", path, "error", err)
				opts.Metrics.FileSkipped(ctx, metricsKind, observability.ReasonMissing)

				a.Missing = append(a.Missing, path)

				continue
			}

			slog.WarnContext(ctx, "unreadable dump file, skipping", "path", path, "error", err)
			opts.Metrics.FileSkipped(ctx, metricsKind, observability.ReasonUnreadable)

			a.Failures = append(a.Failures, walker.NewFailure(path, err))

			continue
		}

		phases, err := Parse(data)
		if err != nil {
			slog.WarnContext(ctx, "malformed dump file, skipping", "path", path, "error", err)
			opts.Metrics.FileSkipped(ctx, metricsKind, observability.ReasonMalformed)

			a.Failures = append(a.Failures, walker.NewFailure(path, err))

			continue
		}

		a.Add(path, phases)
		opts.Metrics.RecordsTallied(ctx, metricsKind, len(phases))

		slog.DebugContext(ctx, "dump loaded", "path", path, "phases", len(phases))
	}

	if len(files) > 0 && len(a.Missing) == len(files) {
		slog.WarnContext(ctx, "no dump file exists, reporting an empty analysis", "files", files)
	}

	opts.Metrics.ScanDuration(ctx, metricsKind, time.Since(start))

	s := a.Summary()
	slog.InfoContext(ctx, "quest-node scan complete",
		"files", s.Files, "phases", s.Phases, "target_phases", s.TargetPhases,
		"distinct_names", s.DistinctNames, "classes", s.Classes,
		"high_frequency", s.HighFrequency, "failures", s.Failures)

	return a, nil
}
