package record

import (
	"bytes"
	"errors"
	"io"

	"github.com/pierrec/lz4/v4"
)

var (
	ErrCompressionFailed   = errors.New("record: compression failed")
	ErrDecompressionFailed = errors.New("record: decompression failed")
)

// Compress wraps data in a single LZ4 frame at the highest level with a
// content checksum, so a damaged archive is detected on read.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(
		lz4.CompressionLevelOption(lz4.Level9),
		lz4.ChecksumOption(true),
	); err != nil {
		return nil, ErrCompressionFailed
	}
	if _, err := zw.Write(data); err != nil {
		return nil, ErrCompressionFailed
	}
	if err := zw.Close(); err != nil {
		return nil, ErrCompressionFailed
	}
	return buf.Bytes(), nil
}

// Decompress reads back a frame written by Compress.
func Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, ErrDecompressionFailed
	}
	return out, nil
}
