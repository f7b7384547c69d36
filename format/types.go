// Package format defines the wire-level constants shared by the archive
// encoder and decoder.
package format

// CompressionType identifies the codec applied to archive payload sections.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores payloads uncompressed.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4 block compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}

// Archive format identity.
const (
	// MagicNumber marks the start of a drawset archive.
	MagicNumber uint32 = 0x44525721 // "DRW!"

	// Version is the current archive format version.
	Version uint8 = 1
)
