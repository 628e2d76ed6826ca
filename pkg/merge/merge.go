// Package merge concatenates the text reports of a directory into one
// file with a header block and per-file separators.
package merge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

// Sentinel errors.
var (
	ErrDirNotFound = errors.New("input directory not found")
	ErrNoFiles     = errors.New("no text files found")
	ErrBinary      = errors.New("binary content")
)

// Suffix selects the files to merge.
const Suffix = ".txt"

const (
	timeLayout   = "2006-01-02 15:04:05"
	headerRule   = "============================="
	fileRule     = "=================================================="
	contentRule  = "--------------------------------------------------"
	headerBanner = "===== merged text files ====="
)

// Options configure Merge.
type Options struct {
	// Recursive includes files in subdirectories.
	Recursive bool
	// Now stamps the header; nil uses time.Now.
	Now func() time.Time
	// Skip lists paths never merged, typically the output file itself.
	Skip []string
}

// Result describes a finished merge.
type Result struct {
	Files  int
	Failed int
	// Lines counts the lines of every merged file.
	Lines int
}

// Merge writes every text file of dir to w in lexical order. Files that
// cannot be read or decoded, or that hold binary content, are replaced by an
// inline failure entry and counted in Result.Failed.
func Merge(w io.Writer, dir string, opts Options) (Result, error) {
	filter := walker.Filter{Suffixes: []string{Suffix}}
	if !opts.Recursive {
		filter.MaxDepth = 1
	}

	files, err := walker.Walk(dir, filter)
	if err != nil {
		if errors.Is(err, walker.ErrRootNotFound) {
			return Result{}, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}

		return Result{}, err
	}

	skip := absAll(opts.Skip)
	files = slices.DeleteFunc(files, func(f walker.File) bool {
		return slices.Contains(skip, absPath(f.Path))
	})

	if len(files) == 0 {
		return Result{}, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	recursive := "no"
	if opts.Recursive {
		recursive = "yes"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headerBanner)
	fmt.Fprintf(&b, "Merged at: %s\n", now().Format(timeLayout))
	fmt.Fprintf(&b, "Source: %s\n", dir)
	fmt.Fprintf(&b, "Files: %d\n", len(files))
	fmt.Fprintf(&b, "Recursive: %s\n", recursive)
	fmt.Fprintf(&b, "%s\n\n", headerRule)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return Result{}, fmt.Errorf("write merge header: %w", err)
	}

	res := Result{Files: len(files)}

	for i, f := range files {
		b.Reset()

		data, readErr := textutil.ReadFile(f.Path)
		if readErr == nil && textutil.IsBinary(data) {
			readErr = fmt.Errorf("%w: %s", ErrBinary, f.Path)
		}

		if readErr != nil {
			slog.Warn("unreadable text file, recording failure", "path", f.Path, "error", readErr)

			res.Failed++

			fmt.Fprintf(&b, "[%d/%d] Failed: %s\n", i+1, len(files), f.Path)
			fmt.Fprintf(&b, "Error: %v\n\n", readErr)
		} else {
			lines := textutil.CountLines(data)
			res.Lines += lines

			fmt.Fprintf(&b, "[%d/%d] File: %s\n", i+1, len(files), f.Name())
			fmt.Fprintf(&b, "Path: %s\n", f.Path)
			fmt.Fprintf(&b, "Lines: %d\n", lines)
			fmt.Fprintf(&b, "%s\n", contentRule)
			b.Write(data)
			fmt.Fprintf(&b, "\n\n%s\n\n", fileRule)

			slog.Debug("merged text file", "path", f.Path, "bytes", len(data), "lines", lines)
		}

		if _, err := io.WriteString(w, b.String()); err != nil {
			return res, fmt.Errorf("write %s: %w", f.Path, err)
		}
	}

	return res, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}

	return filepath.Clean(p)
}

func absAll(ps []string) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if p != "" {
			out = append(out, absPath(p))
		}
	}

	return out
}
