package compress

import (
	"fmt"

	"github.com/statforge/drawset/errs"
	"github.com/statforge/drawset/format"
)

// Compressor compresses an archive payload section.
//
// Payloads are either the varint-prefixed name table or a chain's raw
// little-endian float64 column block, typically a few KB to a few MB.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an archive payload section.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// Compressor. Returns an error for corrupted or incompatible input.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given compression type.
func NewCodec(typ format.CompressionType) (Codec, error) {
	switch typ {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidCompression, typ)
	}
}
