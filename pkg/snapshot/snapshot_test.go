package snapshot_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/scene"
	"github.com/Sumatoshi-tech/depotstat/pkg/snapshot"
	"github.com/Sumatoshi-tech/depotstat/pkg/walker"
)

func sampleSnapshot() *scene.Snapshot {
	return &scene.Snapshot{
		Version:   scene.SnapshotVersion,
		Roots:     []string{"/depot/base/quest"},
		GroupBy:   scene.GroupByCategory,
		Threshold: 10,
		Scenes: []scene.Record{
			{Name: "a", Path: "/depot/base/quest/side_quests/sq001/scenes/a.scnlocjson", Rel: "side_quests/sq001/scenes/a.scnlocjson", Sections: 2, Lines: 5, Speakers: []string{"Judy"}},
			{Name: "b", Path: "/depot/base/quest/side_quests/sq001/scenes/b.scnlocjson", Rel: "side_quests/sq001/scenes/b.scnlocjson", Sections: 1, ChoiceSections: 1, Lines: 0, Speakers: []string{}},
		},
		Failures: []walker.Failure{{Path: "/depot/x.scnlocjson", Error: "malformed"}},
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"scan.json", "scan.json.lz4", "nested/dir/scan.LZ4"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			want := sampleSnapshot()

			written, err := snapshot.Save(path, want)
			require.NoError(t, err)
			assert.Equal(t, path, written)

			got, err := snapshot.Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSave_LZ4IsCompressed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	snap := sampleSnapshot()

	for range 200 {
		snap.Scenes = append(snap.Scenes, snap.Scenes[0])
	}

	plain := filepath.Join(dir, "scan.json")
	packed := filepath.Join(dir, "scan.json.lz4")

	_, err := snapshot.Save(plain, snap)
	require.NoError(t, err)

	_, err = snapshot.Save(packed, snap)
	require.NoError(t, err)

	plainInfo, err := os.Stat(plain)
	require.NoError(t, err)

	packedInfo, err := os.Stat(packed)
	require.NoError(t, err)

	assert.Less(t, packedInfo.Size(), plainInfo.Size())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := snapshot.Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	_, err = snapshot.Load(bad)
	require.Error(t, err)

	future := filepath.Join(dir, "future.json")
	require.NoError(t, os.WriteFile(future, []byte(`{"version": 99}`), 0o600))

	_, err = snapshot.Load(future)
	require.ErrorIs(t, err, snapshot.ErrVersion)
}

func TestSave_AddsExtension(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "scan")

	written, err := snapshot.Save(base, sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, base+".json", written)

	got, err := snapshot.Load(written)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestCodecFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".json", snapshot.CodecFor("x.json").Extension())
	assert.Equal(t, ".json.lz4", snapshot.CodecFor("x.json.lz4").Extension())
}

func TestJSONCodec_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, (&snapshot.JSONCodec{}).Encode(&buf, sampleSnapshot()))
	assert.LessOrEqual(t, strings.Count(buf.String(), "\n"), 1)
}
