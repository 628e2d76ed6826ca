package textutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/depotstat/pkg/textutil"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "plain", in: []byte(`{"a":1}`), want: `{"a":1}`},
		{name: "utf8 bom", in: append([]byte{0xEF, 0xBB, 0xBF}, []byte("场景")...), want: "场景"},
		{name: "utf16le bom", in: []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, want: "hi"},
		{name: "utf16be bom", in: []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, want: "hi"},
		{name: "empty", in: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := textutil.Decode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := textutil.Decode([]byte{'a', 0xC3, 0x28})
	require.ErrorIs(t, err, textutil.ErrInvalidText)
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFline\n"), 0o600))

	got, err := textutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(got))

	_, err = textutil.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	assert.False(t, textutil.IsBinary(nil))
	assert.False(t, textutil.IsBinary([]byte("hello\n")))
	assert.True(t, textutil.IsBinary([]byte("he\x00llo")))

	data := make([]byte, textutil.BinarySniffLength+10)
	for i := range data {
		data[i] = 'a'
	}

	data[textutil.BinarySniffLength+5] = 0
	assert.False(t, textutil.IsBinary(data))
}

func TestCountLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, textutil.CountLines(nil))
	assert.Equal(t, 1, textutil.CountLines([]byte("a")))
	assert.Equal(t, 2, textutil.CountLines([]byte("a\nb\n")))
	assert.Equal(t, 3, textutil.CountLines([]byte("a\n\nb")))
}
