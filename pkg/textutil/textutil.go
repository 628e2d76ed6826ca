// Package textutil reads text dumps exported by asset tools: byte-order-mark
// handling, UTF-16 transcoding and line counting.
package textutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidText is returned when data is neither valid UTF-8 nor BOM-marked UTF-16.
var ErrInvalidText = errors.New("invalid text encoding")

// BinarySniffLength is the number of leading bytes scanned by IsBinary.
const BinarySniffLength = 8000

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns data as UTF-8 without a byte-order mark. UTF-16 input is
// accepted when it starts with a BOM; anything else must be valid UTF-8.
func Decode(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.UTF8Validator), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}

	return out, nil
}

// ReadFile reads path and decodes it with Decode.
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	out, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return out, nil
}

// IsBinary reports whether data holds a NUL byte within the first
// BinarySniffLength bytes.
func IsBinary(data []byte) bool {
	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// CountLines returns the number of lines in data. A trailing partial line
// counts; empty data has zero lines.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}
