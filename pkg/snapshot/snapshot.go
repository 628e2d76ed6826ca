package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/depotstat/pkg/scene"
)

// ErrVersion is returned when a snapshot was written by an incompatible
// layout version.
var ErrVersion = errors.New("unsupported snapshot version")

// Save writes snap to path using the codec chosen by CodecFor and returns
// the path written. A path without an extension gets the codec's one.
// Parent directories are created.
func Save(path string, snap *scene.Snapshot) (string, error) {
	codec := CodecFor(path)
	if filepath.Ext(path) == "" {
		path += codec.Extension()
	}

	return path, SaveFile(path, codec, snap)
}

// Load reads a scene snapshot written by Save.
func Load(path string) (*scene.Snapshot, error) {
	var snap scene.Snapshot

	if err := LoadFile(path, CodecFor(path), &snap); err != nil {
		return nil, err
	}

	if snap.Version != scene.SnapshotVersion {
		return nil, fmt.Errorf("%w: %d in %s (want %d)", ErrVersion, snap.Version, path, scene.SnapshotVersion)
	}

	return &snap, nil
}

// SaveFile encodes v to path with codec.
func SaveFile(path string, codec Codec, v any) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return fmt.Errorf("create snapshot dir: %w", mkErr)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close snapshot file: %w", closeErr)
		}
	}()

	if err = codec.Encode(file, v); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return nil
}

// LoadFile decodes path into v, which must be a pointer.
func LoadFile(path string, codec Codec, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot file: %w", err)
	}
	defer file.Close()

	if err := codec.Decode(file, v); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	return nil
}
