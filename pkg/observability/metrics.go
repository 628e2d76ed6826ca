package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesScanned   = "depotstat.files.scanned"
	metricFilesSkipped   = "depotstat.files.skipped"
	metricRecordsTallied = "depotstat.records.tallied"
	metricScanDuration   = "depotstat.scan.duration.seconds"

	attrKind   = "kind"
	attrReason = "reason"
)

// Skip reasons reported on depotstat.files.skipped.
const (
	ReasonMissing    = "missing"
	ReasonUnreadable = "unreadable"
	ReasonMalformed  = "malformed"
)

// durationBucketBoundaries covers 1ms to 10 minutes.
var durationBucketBoundaries = []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// ScanMetrics holds the instruments recorded while scanning an asset tree.
// A nil *ScanMetrics records nothing.
type ScanMetrics struct {
	scanned  metric.Int64Counter
	skipped  metric.Int64Counter
	tallied  metric.Int64Counter
	duration metric.Float64Histogram
}

// NewScanMetrics creates the scan instruments from the given meter.
func NewScanMetrics(mt metric.Meter) (*ScanMetrics, error) {
	scanned, err := mt.Int64Counter(metricFilesScanned,
		metric.WithDescription("Files read during a scan"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesScanned, err)
	}

	skipped, err := mt.Int64Counter(metricFilesSkipped,
		metric.WithDescription("Inputs skipped because they were missing, unreadable or malformed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesSkipped, err)
	}

	tallied, err := mt.Int64Counter(metricRecordsTallied,
		metric.WithDescription("Records folded into tallies"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRecordsTallied, err)
	}

	duration, err := mt.Float64Histogram(metricScanDuration,
		metric.WithDescription("Wall time of a complete scan"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricScanDuration, err)
	}

	return &ScanMetrics{
		scanned:  scanned,
		skipped:  skipped,
		tallied:  tallied,
		duration: duration,
	}, nil
}

// FileScanned counts one file read for kind.
func (sm *ScanMetrics) FileScanned(ctx context.Context, kind string) {
	if sm == nil {
		return
	}

	sm.scanned.Add(ctx, 1, metric.WithAttributes(attribute.String(attrKind, kind)))
}

// FileSkipped counts one skipped input for kind with the given reason.
func (sm *ScanMetrics) FileSkipped(ctx context.Context, kind, reason string) {
	if sm == nil {
		return
	}

	sm.skipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrKind, kind),
		attribute.String(attrReason, reason),
	))
}

// RecordsTallied counts n records folded for kind.
func (sm *ScanMetrics) RecordsTallied(ctx context.Context, kind string, n int) {
	if sm == nil || n <= 0 {
		return
	}

	sm.tallied.Add(ctx, int64(n), metric.WithAttributes(attribute.String(attrKind, kind)))
}

// ScanDuration records the wall time of a scan of kind.
func (sm *ScanMetrics) ScanDuration(ctx context.Context, kind string, d time.Duration) {
	if sm == nil {
		return
	}

	sm.duration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String(attrKind, kind)))
}
