// Package walker enumerates asset files under a root directory.
//
// Traversal is recursive and lexical. Unreadable subdirectories are logged
// and skipped; only a missing or unreadable root is an error.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrRootNotFound is returned when the walk root does not exist or is not a directory.
var ErrRootNotFound = errors.New("root not found")

// Filter selects files during a walk.
type Filter struct {
	// Suffixes keeps files whose name ends with any entry, compared
	// case-insensitively. Empty keeps every file.
	Suffixes []string
	// ExcludeDirs names directories, compared case-insensitively, that are
	// skipped together with their subtree.
	ExcludeDirs []string
	// MaxDepth limits descent: 1 keeps only files directly under the root.
	// Zero means unlimited.
	MaxDepth int
}

// File is one matched file.
type File struct {
	Path string // Path as seen by the walk (root joined with Rel).
	Rel  string // Path relative to the root, forward slashes.
	Size int64
}

// Name returns the base name of the file.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Dir is one first-level subdirectory returned by Subdirs.
type Dir struct {
	Name string
	Path string
}

// Walk returns every regular file under root that passes the filter.
func Walk(root string, filter Filter) ([]File, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	exclude := lowerAll(filter.ExcludeDirs)
	suffixes := lowerAll(filter.Suffixes)

	var files []File

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			slog.Warn("skipping unreadable path", "path", path, "error", err)

			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}

			if slices.Contains(exclude, strings.ToLower(d.Name())) || tooDeep(root, path, filter.MaxDepth) {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() || !HasSuffix(d.Name(), suffixes) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", infoErr)

			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		files = append(files, File{Path: path, Rel: filepath.ToSlash(rel), Size: info.Size()})

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	return files, nil
}

// Subdirs returns the first-level directories of root whose names start
// with any of prefixes (every directory when prefixes is empty), sorted by
// name. Symlinks are not followed.
func Subdirs(root string, prefixes []string) ([]Dir, error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var dirs []Dir

	for _, e := range entries {
		if !e.IsDir() || e.Type()&fs.ModeSymlink != 0 {
			continue
		}

		if len(prefixes) > 0 && !hasPrefix(e.Name(), prefixes) {
			continue
		}

		dirs = append(dirs, Dir{Name: e.Name(), Path: filepath.Join(root, e.Name())})
	}

	return dirs, nil
}

// CountBySuffix counts the files under root ending with each suffix. Every
// requested suffix is present in the result, zero when absent. A file is
// counted under the first suffix it matches.
func CountBySuffix(root string, suffixes []string) (map[string]int, error) {
	files, err := Walk(root, Filter{Suffixes: suffixes})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(suffixes))
	for _, s := range suffixes {
		counts[s] = 0
	}

	for _, f := range files {
		name := strings.ToLower(f.Name())

		for _, s := range suffixes {
			if strings.HasSuffix(name, strings.ToLower(s)) {
				counts[s]++

				break
			}
		}
	}

	return counts, nil
}

// HasSuffix reports whether name ends with any suffix, ignoring case. An
// empty suffix list matches everything.
func HasSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}

	lower := strings.ToLower(name)

	for _, s := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}

	return false
}

// tooDeep reports whether files inside dir would exceed maxDepth.
func tooDeep(root, dir string, maxDepth int) bool {
	if maxDepth <= 0 {
		return false
	}

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}

	return strings.Count(filepath.ToSlash(rel), "/")+1 >= maxDepth
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}

	return false
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}

		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	return nil
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))

	for i, s := range in {
		out[i] = strings.ToLower(s)
	}

	return out
}
