// Package snapshot persists scene scans so that reports can be rendered
// again without walking the asset tree.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// File extensions for supported codecs.
const (
	jsonExtension = ".json"
	lz4Extension  = ".lz4"
)

const defaultIndent = "  "

// Codec defines how a snapshot is serialized and deserialized.
type Codec interface {
	// Encode writes v to the writer.
	Encode(w io.Writer, v any) error
	// Decode reads into v from the reader.
	Decode(r io.Reader, v any) error
	// Extension returns the file extension for this codec.
	Extension() string
}

// JSONCodec encodes snapshots as JSON with optional indentation.
type JSONCodec struct {
	// Indent is the indentation string. Empty means compact JSON.
	Indent string
}

// NewJSONCodec creates a JSON codec with 2-space indentation.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: defaultIndent}
}

// Encode implements Codec.
func (c *JSONCodec) Encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if c.Indent != "" {
		encoder.SetIndent("", c.Indent)
	}

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// Decode implements Codec.
func (c *JSONCodec) Decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

// Extension implements Codec.
func (c *JSONCodec) Extension() string {
	return jsonExtension
}

// LZ4Codec wraps another codec in an LZ4 frame.
type LZ4Codec struct {
	Inner Codec
}

// NewLZ4Codec creates an LZ4 codec around compact JSON.
func NewLZ4Codec() *LZ4Codec {
	return &LZ4Codec{Inner: &JSONCodec{}}
}

// Encode implements Codec.
func (c *LZ4Codec) Encode(w io.Writer, v any) error {
	zw := lz4.NewWriter(w)

	if err := c.Inner.Encode(zw, v); err != nil {
		return err
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("lz4 close: %w", err)
	}

	return nil
}

// Decode implements Codec.
func (c *LZ4Codec) Decode(r io.Reader, v any) error {
	return c.Inner.Decode(lz4.NewReader(r), v)
}

// Extension implements Codec.
func (c *LZ4Codec) Extension() string {
	return c.Inner.Extension() + lz4Extension
}

// CodecFor picks the codec for a file name: LZ4-framed JSON when the name
// ends with .lz4, plain JSON otherwise.
func CodecFor(path string) Codec {
	if strings.HasSuffix(strings.ToLower(path), lz4Extension) {
		return NewLZ4Codec()
	}

	return NewJSONCodec()
}
