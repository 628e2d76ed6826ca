package merge_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/merge"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestMerge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "second\nthird\n")
	writeFile(t, filepath.Join(dir, "a.TXT"), "\xEF\xBB\xBFfirst")
	writeFile(t, filepath.Join(dir, "skip.csv"), "nope")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "nested")

	var buf bytes.Buffer

	res, err := merge.Merge(&buf, dir, merge.Options{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, merge.Result{Files: 2, Lines: 3}, res)

	out := buf.String()
	assert.Contains(t, out, "Merged at: 2026-03-04 05:06:07")
	assert.Contains(t, out, "Files: 2\n")
	assert.Contains(t, out, "Recursive: no")
	assert.Contains(t, out, "[1/2] File: a.TXT")
	assert.Contains(t, out, "[2/2] File: b.txt")
	assert.Contains(t, out, "Lines: 2\n")
	assert.NotContains(t, out, "nested")
	assert.NotContains(t, out, "nope")
	assert.NotContains(t, out, "\xEF\xBB\xBF")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

func TestMerge_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "top")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "nested")

	var buf bytes.Buffer

	res, err := merge.Merge(&buf, dir, merge.Options{Recursive: true, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Contains(t, buf.String(), "nested")
	assert.Contains(t, buf.String(), "Recursive: yes")
}

func TestMerge_FailureEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.txt"), "\xff\xff\xff invalid")
	writeFile(t, filepath.Join(dir, "good.txt"), "ok")

	var buf bytes.Buffer

	res, err := merge.Merge(&buf, dir, merge.Options{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, merge.Result{Files: 2, Failed: 1, Lines: 1}, res)
	assert.Contains(t, buf.String(), "[1/2] Failed: ")
	assert.Contains(t, buf.String(), "[2/2] File: good.txt")
}

func TestMerge_BinaryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dump.txt"), "head\x00tail")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ok")

	var buf bytes.Buffer

	res, err := merge.Merge(&buf, dir, merge.Options{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, merge.Result{Files: 2, Failed: 1, Lines: 1}, res)

	out := buf.String()
	assert.Contains(t, out, "[1/2] Failed: ")
	assert.Contains(t, out, merge.ErrBinary.Error())
	assert.NotContains(t, out, "tail")
}

func TestMerge_SkipsOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "merged.txt")
	writeFile(t, out, "previous run")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")

	var buf bytes.Buffer

	res, err := merge.Merge(&buf, dir, merge.Options{Skip: []string{out}, Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.NotContains(t, buf.String(), "previous run")
}

func TestMerge_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	_, err := merge.Merge(&buf, filepath.Join(t.TempDir(), "missing"), merge.Options{})
	require.ErrorIs(t, err, merge.ErrDirNotFound)

	empty := t.TempDir()
	writeFile(t, filepath.Join(empty, "data.csv"), "x")

	_, err = merge.Merge(&buf, empty, merge.Options{})
	require.ErrorIs(t, err, merge.ErrNoFiles)
}
